// Package flappy implements the Flappy Ball simulation.
// A ball falls under gravity and is kicked upward on a jump while pipes scroll
// toward it. The package holds the fixed-tick engine only: the platform owns
// the clock, input devices, rendering surface, audio and storage.
package flappy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/flappy-ball/internal/config"
	"github.com/vovakirdan/flappy-ball/internal/core"
)

// Game is the simulation controller. It owns all run state; nothing about a
// run lives in package globals. Game is not safe for concurrent use: the
// platform must serialise Tick and the input methods.
type Game struct {
	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager
	hitbox     hitbox
	rng        RandSource
	store      BestScoreStore
	audio      AudioSink

	bird        Bird
	pipes       *PipeQueue
	params      config.DifficultyParams
	phase       core.Phase
	score       int
	best        int
	jumpPending bool
	paused      bool

	loadErr error // Error from the initial best score load
	saveErr error // Error from the last best score save
}

// Option configures a Game.
type Option func(*Game)

// WithRand injects the gap placement randomness, e.g. a seeded *rand.Rand in tests.
func WithRand(r RandSource) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithStore sets the best score persistence.
func WithStore(s BestScoreStore) Option {
	return func(g *Game) {
		if s != nil {
			g.store = s
		}
	}
}

// WithAudio sets the music sink.
func WithAudio(a AudioSink) Option {
	return func(g *Game) {
		if a != nil {
			g.audio = a
		}
	}
}

// New validates the configuration, loads the best score and returns a game
// waiting for Start. A failed or malformed best score load is not fatal; the
// best score starts at 0 and the error is available from LoadErr.
func New(cfg config.FlappyConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}

	g := &Game{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Physics, cfg.Difficulty),
		hitbox: hitbox{
			x:       cfg.Bird.X,
			size:    cfg.Bird.Size,
			pipeW:   cfg.Pipes.Width,
			gapSize: cfg.Pipes.GapHeight,
		},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		store: nopStore{},
		audio: nopAudio{},
		pipes: NewPipeQueue(cfg),
		phase: core.PhaseNotStarted,
	}
	for _, opt := range opts {
		opt(g)
	}

	best, err := g.store.LoadBestScore()
	if err != nil || best < 0 {
		g.loadErr = err
		best = 0
	}
	g.best = best
	g.resetRun()

	return g, nil
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Ball"
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Start begins the first run. It only applies before any run has started.
func (g *Game) Start() bool {
	if g.phase != core.PhaseNotStarted {
		return false
	}
	g.begin()
	return true
}

// Restart begins a new run after game over. The best score is kept.
func (g *Game) Restart() bool {
	if g.phase != core.PhaseOver {
		return false
	}
	g.begin()
	return true
}

// RequestJump latches a jump for the next tick. Requests outside a running
// run are ignored, and several requests within one tick count as one.
func (g *Game) RequestJump() bool {
	if g.phase != core.PhaseRunning || g.paused {
		return false
	}
	g.jumpPending = true
	return true
}

// TogglePause pauses or resumes a running run.
func (g *Game) TogglePause() bool {
	if g.phase != core.PhaseRunning {
		return false
	}
	g.paused = !g.paused
	return true
}

// Apply dispatches a platform action. It returns whether the action had an
// effect; ignored actions are never errors.
func (g *Game) Apply(a core.Action) bool {
	switch a {
	case core.ActionStart:
		return g.Start()
	case core.ActionRestart:
		return g.Restart()
	case core.ActionJump:
		return g.RequestJump()
	case core.ActionPause:
		return g.TogglePause()
	}
	return false
}

func (g *Game) begin() {
	g.syncBest()
	g.resetRun()
	g.phase = core.PhaseRunning
	g.audio.StartMusic()
}

func (g *Game) resetRun() {
	g.bird = Bird{Y: g.cfg.Bird.StartY}
	g.pipes.Reset()
	g.params = g.difficulty.Baseline()
	g.score = 0
	g.jumpPending = false
	g.paused = false
	g.saveErr = nil
}

// Tick advances the simulation by one fixed step. Outside a running,
// unpaused run it changes nothing.
//
// Order: bird motion, gravity, latched jump, pipe scroll and purge, pipe
// spawn, score. Collisions are then checked against the new state, the
// difficulty is recomputed from the new score, and a game over persists a
// new best score.
func (g *Game) Tick() core.StepResult {
	if g.phase != core.PhaseRunning || g.paused {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event

	// Physics
	hitFloor := g.bird.fall(g.params.Gravity, g.cfg.FloorY())
	if g.jumpPending {
		g.bird.Velocity = g.params.JumpImpulse
		g.jumpPending = false
	}
	if g.pipes.Advance(g.params.ScrollSpeed, g.rng) {
		events = append(events, core.EventPipeSpawned)
	}
	g.score++

	// Collisions
	over := false
	if hitFloor {
		events = append(events, core.EventFloorHit)
		over = true
	} else if _, hit := g.hitbox.firstHit(g.bird, g.pipes.pipes); hit {
		events = append(events, core.EventPipeHit)
		over = true
	}

	// Difficulty
	if g.difficulty.IsMilestone(g.score) {
		events = append(events, core.EventMilestone)
	}
	g.params = g.difficulty.Params(g.score)

	if over {
		events = append(events, g.finish()...)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// finish moves the run into Over and persists a new best score exactly once.
func (g *Game) finish() []core.Event {
	g.phase = core.PhaseOver
	g.jumpPending = false
	g.audio.StopMusic()

	events := []core.Event{core.EventGameOver}
	g.syncBest()
	if g.score > g.best {
		g.best = g.score
		g.saveErr = g.store.SaveBestScore(g.best)
		events = append(events, core.EventNewBest)
	}
	return events
}

// syncBest picks up a higher best score saved by another game sharing the
// store. Load errors keep the in-memory value.
func (g *Game) syncBest() {
	if best, err := g.store.LoadBestScore(); err == nil && best > g.best {
		g.best = best
	}
}

// State returns the compact game status.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:     g.phase,
		Score:     g.score,
		BestScore: g.best,
		Paused:    g.paused,
	}
}

// LoadErr returns the error from loading the best score at construction.
func (g *Game) LoadErr() error {
	return g.loadErr
}

// SaveErr returns the error from persisting the best score of the last run.
func (g *Game) SaveErr() error {
	return g.saveErr
}
