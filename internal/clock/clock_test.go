package clock

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerCallsRepeatedly(t *testing.T) {
	tk := NewTicker(time.Millisecond)
	var n atomic.Int64
	got := make(chan struct{})

	err := tk.Start(context.Background(), func() {
		if n.Add(1) == 5 {
			close(got)
		}
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer tk.Stop()

	select {
	case <-got:
	case <-time.After(5 * time.Second):
		t.Fatalf("only %d ticks after 5s", n.Load())
	}
	if !tk.Running() {
		t.Error("Running() = false while ticking")
	}
}

func TestTickerNoCallbackAfterStop(t *testing.T) {
	tk := NewTicker(time.Millisecond)
	var n atomic.Int64
	if err := tk.Start(context.Background(), func() { n.Add(1) }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	tk.Stop()

	stopped := n.Load()
	time.Sleep(20 * time.Millisecond)
	if got := n.Load(); got != stopped {
		t.Errorf("callbacks after Stop: %d -> %d", stopped, got)
	}
	if tk.Running() {
		t.Error("Running() = true after Stop")
	}
	if uint64(stopped) != tk.Ticks() {
		t.Errorf("Ticks() = %d, want %d", tk.Ticks(), stopped)
	}
}

func TestTickerStartTwice(t *testing.T) {
	tk := NewTicker(time.Hour)
	if err := tk.Start(context.Background(), func() {}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer tk.Stop()

	if err := tk.Start(context.Background(), func() {}); !errors.Is(err, ErrRunning) {
		t.Errorf("second Start() error = %v, want ErrRunning", err)
	}
}

func TestTickerRejectsZeroInterval(t *testing.T) {
	if err := NewTicker(0).Start(context.Background(), func() {}); err == nil {
		t.Error("Start() with zero interval should fail")
	}
}

func TestTickerContextCancelFromCallback(t *testing.T) {
	tk := NewTicker(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	var n atomic.Int64

	err := tk.Start(ctx, func() {
		if n.Add(1) == 3 {
			cancel()
		}
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tk.Wait()

	if got := n.Load(); got != 3 {
		t.Errorf("callbacks = %d, want 3", got)
	}
	if tk.Running() {
		t.Error("Running() = true after context cancel")
	}

	// A finished ticker can be started again
	if err := tk.Start(context.Background(), func() {}); err != nil {
		t.Errorf("restart error = %v", err)
	}
	tk.Stop()
}

func TestTickerStopIdempotent(t *testing.T) {
	tk := NewTicker(time.Millisecond)
	tk.Stop()
	if err := tk.Start(context.Background(), func() {}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tk.Stop()
	tk.Stop()
}

func TestManual(t *testing.T) {
	var m Manual
	var n int
	var _ Scheduler = &m

	if got := m.Fire(3); got != 0 {
		t.Errorf("Fire before Start ran %d ticks", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := m.Start(ctx, func() {
		n++
		if n == 4 {
			cancel()
		}
	}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := m.Start(ctx, func() {}); !errors.Is(err, ErrRunning) {
		t.Errorf("second Start() error = %v, want ErrRunning", err)
	}

	if got := m.Fire(2); got != 2 || n != 2 {
		t.Errorf("Fire(2) = %d, n = %d", got, n)
	}
	if got := m.Fire(10); got != 2 || n != 4 {
		t.Errorf("Fire(10) after cancel at 4 = %d, n = %d", got, n)
	}
	if m.Running() {
		t.Error("Running() = true after cancel")
	}

	m.Stop()
	if m.Running() {
		t.Error("Running() = true after Stop")
	}
}
