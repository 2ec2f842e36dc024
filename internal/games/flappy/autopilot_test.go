package flappy

import (
	"testing"

	"github.com/vovakirdan/flappy-ball/internal/config"
	"github.com/vovakirdan/flappy-ball/internal/core"
)

func TestAutopilotDecide(t *testing.T) {
	ap := NewAutopilot(config.DefaultFlappyConfig())
	running := func(y, v float64, pipes ...Pipe) Snapshot {
		return Snapshot{Phase: core.PhaseRunning, Bird: Bird{Y: y, Velocity: v}, Pipes: pipes}
	}

	// Target for a gap at 100: 100 + 150 - 35 - 30 = 185
	tests := []struct {
		name string
		snap Snapshot
		want core.Action
	}{
		{"starts a new game", Snapshot{Phase: core.PhaseNotStarted}, core.ActionStart},
		{"waits after game over", Snapshot{Phase: core.PhaseOver}, core.ActionNone},
		{"below target while falling", running(190, 1, Pipe{X: 300, GapTop: 100}), core.ActionJump},
		{"above target", running(150, 1, Pipe{X: 300, GapTop: 100}), core.ActionNone},
		{"below target while rising", running(190, -2, Pipe{X: 300, GapTop: 100}), core.ActionNone},
		{"ignores passed pipes", running(190, 1, Pipe{X: 0, GapTop: 300}, Pipe{X: 300, GapTop: 100}), core.ActionJump},
		{"no pipes aims at center", running(260, 1), core.ActionJump},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ap.Decide(tt.snap); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAutopilotRestart(t *testing.T) {
	ap := NewAutopilot(config.DefaultFlappyConfig())
	ap.Restart = true

	if got := ap.Decide(Snapshot{Phase: core.PhaseOver}); got != core.ActionRestart {
		t.Errorf("Decide() = %v, want Restart", got)
	}
}

func TestAutopilotOutlivesIdleRun(t *testing.T) {
	g := newTestGame(t)
	ap := NewAutopilot(g.Config())

	ticks := 0
	for ticks < 5000 {
		g.Apply(ap.Decide(g.Snapshot()))
		if g.Tick().State.GameOver() {
			break
		}
		ticks++
	}
	// Without input the run ends after 30 ticks
	if ticks <= 30 {
		t.Errorf("autopilot survived %d ticks, want more than an idle run", ticks)
	}
}
