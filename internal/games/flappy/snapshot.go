package flappy

import (
	"github.com/vovakirdan/flappy-ball/internal/config"
	"github.com/vovakirdan/flappy-ball/internal/core"
)

// RunState is the score and lifecycle part of a snapshot.
type RunState struct {
	Score     int
	BestScore int
	Running   bool // A run has been started (stays true after game over)
	Over      bool // The current run has ended
	Paused    bool
}

// Snapshot is a read-only copy of everything the presentation layer needs.
// Mutating it does not affect the game.
type Snapshot struct {
	Phase      core.Phase
	Bird       Bird
	Pipes      []Pipe
	Run        RunState
	Difficulty config.DifficultyParams
	JumpQueued bool
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Phase: g.phase,
		Bird:  g.bird,
		Pipes: g.pipes.Pipes(),
		Run: RunState{
			Score:     g.score,
			BestScore: g.best,
			Running:   g.phase != core.PhaseNotStarted,
			Over:      g.phase == core.PhaseOver,
			Paused:    g.paused,
		},
		Difficulty: g.params,
		JumpQueued: g.jumpPending,
	}
}
