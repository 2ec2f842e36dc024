package flappy

import (
	"github.com/vovakirdan/flappy-ball/internal/config"
	"github.com/vovakirdan/flappy-ball/internal/core"
)

// Controller decides the next action from a snapshot. The TUI uses the
// keyboard directly; Controller is for headless play.
type Controller interface {
	Decide(s Snapshot) core.Action
}

// Autopilot is a heuristic controller that keeps the ball just above the
// bottom of the next gap.
type Autopilot struct {
	birdX   float64
	size    float64
	pipeW   float64
	gap     float64
	center  float64
	Slack   float64 // Distance kept above the lower pipe
	Restart bool    // Start a new run after game over
}

// NewAutopilot creates an autopilot for the given geometry.
func NewAutopilot(cfg config.FlappyConfig) *Autopilot {
	return &Autopilot{
		birdX:  cfg.Bird.X,
		size:   cfg.Bird.Size,
		pipeW:  cfg.Pipes.Width,
		gap:    cfg.Pipes.GapHeight,
		center: cfg.Field.Height / 2,
		Slack:  cfg.Pipes.GapHeight / 5,
	}
}

// Decide implements Controller.
func (a *Autopilot) Decide(s Snapshot) core.Action {
	switch s.Phase {
	case core.PhaseNotStarted:
		return core.ActionStart
	case core.PhaseOver:
		if a.Restart {
			return core.ActionRestart
		}
		return core.ActionNone
	}
	if s.Run.Paused || s.JumpQueued {
		return core.ActionNone
	}

	// Only jump while falling, otherwise repeated jumps stack the ball
	// against the ceiling.
	if s.Bird.Velocity < 0 {
		return core.ActionNone
	}
	if s.Bird.Y > a.target(s.Pipes) {
		return core.ActionJump
	}
	return core.ActionNone
}

// target returns the lowest Y the ball should sink to.
func (a *Autopilot) target(pipes []Pipe) float64 {
	for _, p := range pipes {
		if p.X+a.pipeW <= a.birdX {
			continue // Already passed
		}
		return p.GapTop + a.gap - a.size - a.Slack
	}
	return a.center
}
