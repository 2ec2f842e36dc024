package core

// RuntimeConfig contains the platform parameters passed to the game.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
}

// DefaultConfig returns a RuntimeConfig for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// Phase is the run lifecycle: NotStarted -> Running -> Over -> Running.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// GameState is the compact status the platform needs every tick.
type GameState struct {
	Phase     Phase
	Score     int
	BestScore int
	Paused    bool
}

// Running reports whether ticks currently advance the simulation.
func (s GameState) Running() bool {
	return s.Phase == PhaseRunning && !s.Paused
}

// GameOver reports whether the run has ended.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseOver
}

// Event is something noteworthy that happened during a tick.
type Event int

const (
	EventPipeSpawned Event = iota + 1
	EventMilestone          // Score crossed a difficulty milestone
	EventFloorHit           // Bird crossed the floor
	EventPipeHit            // Bird overlapped a solid pipe section
	EventGameOver           // Transition into Over
	EventNewBest            // Best score raised and persisted
)

// StepResult is returned after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the given event occurred during the tick.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
