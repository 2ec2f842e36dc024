// Package headless drives a game without a terminal: a Controller picks the
// actions and a clock.Scheduler supplies the ticks.
package headless

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-ball/internal/clock"
	"github.com/vovakirdan/flappy-ball/internal/core"
	"github.com/vovakirdan/flappy-ball/internal/games/flappy"
)

// Result describes one finished run.
type Result struct {
	Run     int // 1-based
	Score   int
	Best    int
	NewBest bool
	Ticks   int
	SaveErr error
}

// Runner plays runs back to back until enough have finished or the context
// is cancelled.
type Runner struct {
	game   *flappy.Game
	ctrl   flappy.Controller
	sched  clock.Scheduler
	runs   int
	logger *log.Logger
	onRun  func(Result)

	mu      sync.Mutex
	results []Result
	ticks   int
	done    chan struct{}
	cancel  context.CancelFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithRuns stops the runner after n finished runs. Zero plays until the
// context is cancelled.
func WithRuns(n int) Option {
	return func(r *Runner) {
		r.runs = n
	}
}

// WithLogger sets the logger for run summaries.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// OnRun registers a callback invoked on the ticking goroutine after each run.
func OnRun(fn func(Result)) Option {
	return func(r *Runner) {
		r.onRun = fn
	}
}

// New creates a runner.
func New(game *flappy.Game, ctrl flappy.Controller, sched clock.Scheduler, opts ...Option) *Runner {
	r := &Runner{
		game:   game,
		ctrl:   ctrl,
		sched:  sched,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins ticking. Done is closed once the runner finishes.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.done != nil {
		r.mu.Unlock()
		return errors.New("headless: runner already started")
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	if err := r.sched.Start(ctx, r.step); err != nil {
		cancel()
		close(done)
		return err
	}
	go func() {
		<-ctx.Done()
		close(done)
	}()
	return nil
}

// step is one scheduler callback: decide, apply, tick.
func (r *Runner) step() {
	r.game.Apply(r.ctrl.Decide(r.game.Snapshot()))

	res := r.game.Tick()
	if !res.State.Running() && !res.Has(core.EventGameOver) {
		return
	}

	r.mu.Lock()
	r.ticks++
	r.mu.Unlock()

	if res.Has(core.EventMilestone) {
		r.logger.Debug("difficulty raised", "score", res.State.Score)
	}
	if res.Has(core.EventGameOver) {
		r.finishRun(res)
	}
}

func (r *Runner) finishRun(res core.StepResult) {
	r.mu.Lock()
	result := Result{
		Run:     len(r.results) + 1,
		Score:   res.State.Score,
		Best:    res.State.BestScore,
		NewBest: res.Has(core.EventNewBest),
		Ticks:   r.ticks,
		SaveErr: r.game.SaveErr(),
	}
	r.results = append(r.results, result)
	r.ticks = 0
	finished := r.runs > 0 && len(r.results) >= r.runs
	r.mu.Unlock()

	r.logger.Info("run finished",
		"run", result.Run,
		"score", result.Score,
		"best", result.Best,
		"new_best", result.NewBest,
	)
	if result.SaveErr != nil {
		r.logger.Warn("could not save best score", "error", result.SaveErr)
	}
	if r.onRun != nil {
		r.onRun(result)
	}
	if finished {
		r.cancel()
	}
}

// Done returns a channel closed when the runner has finished. It is nil
// before Start.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Stop cancels the runner and halts its scheduler.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	r.sched.Stop()
}

// Results returns the finished runs so far.
func (r *Runner) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Result, len(r.results))
	copy(out, r.results)
	return out
}
