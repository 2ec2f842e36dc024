// Package clock drives the simulation at a fixed cadence.
package clock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRunning is returned when starting a scheduler that is already running.
var ErrRunning = errors.New("clock: already running")

// Scheduler invokes a callback once per tick until stopped.
type Scheduler interface {
	Start(ctx context.Context, fn func()) error
	Stop()
	Running() bool
}

var (
	_ Scheduler = (*Ticker)(nil)
	_ Scheduler = (*Manual)(nil)
)

// Ticker is a Scheduler backed by time.Ticker. Callbacks run sequentially on
// a single goroutine, so the callback may touch the game without locking as
// long as nothing else does.
type Ticker struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	ticks  uint64
}

// NewTicker creates a stopped ticker.
func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{interval: interval}
}

// Start begins calling fn every interval. The loop ends when ctx is
// cancelled or Stop is called.
func (t *Ticker) Start(ctx context.Context, fn func()) error {
	if t.interval <= 0 {
		return errors.New("clock: interval must be positive")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done != nil && !closed(t.done) {
		return ErrRunning
	}
	if t.cancel != nil {
		t.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.loop(ctx, fn, t.done)
	return nil
}

func (t *Ticker) loop(ctx context.Context, fn func(), done chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both cases may be ready at once
			if ctx.Err() != nil {
				return
			}
			fn()
			t.mu.Lock()
			t.ticks++
			t.mu.Unlock()
		}
	}
}

// Stop halts the loop and waits for it to exit. No callback runs after Stop
// returns. Stop must not be called from the callback; cancel the context
// passed to Start instead.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the loop exits, e.g. after the Start context is cancelled.
func (t *Ticker) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Running reports whether the loop is active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	return done != nil && !closed(done)
}

func closed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// Ticks returns how many callbacks have completed.
func (t *Ticker) Ticks() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticks
}

// Interval returns the tick cadence.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Manual is a Scheduler driven by explicit Fire calls, for tests.
type Manual struct {
	ctx context.Context
	fn  func()
}

// Start records the callback.
func (m *Manual) Start(ctx context.Context, fn func()) error {
	if m.fn != nil {
		return ErrRunning
	}
	m.ctx, m.fn = ctx, fn
	return nil
}

// Stop forgets the callback.
func (m *Manual) Stop() {
	m.ctx, m.fn = nil, nil
}

// Running reports whether a callback is registered and its context is live.
func (m *Manual) Running() bool {
	return m.fn != nil && m.ctx.Err() == nil
}

// Fire runs n ticks and returns how many actually ran. It stops early once
// the scheduler is stopped or its context is cancelled.
func (m *Manual) Fire(n int) int {
	fired := 0
	for range n {
		if !m.Running() {
			break
		}
		m.fn()
		fired++
	}
	return fired
}
