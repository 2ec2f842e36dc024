package flappy

import (
	"github.com/vovakirdan/flappy-ball/internal/config"
	"github.com/vovakirdan/flappy-ball/internal/core"
)

// Pipe represents a vertical obstacle with a gap for the bird to pass through.
type Pipe struct {
	X      float64 // Left edge, decreases every tick
	GapTop float64 // Top of the passable gap, fixed at spawn
}

// Columns returns the horizontal extent of the pipe.
func (p Pipe) Columns(width float64) core.Span {
	return core.NewSpan(p.X, width)
}

// Gap returns the passable vertical extent of the pipe.
func (p Pipe) Gap(gapHeight float64) core.Span {
	return core.NewSpan(p.GapTop, gapHeight)
}

// PipeQueue handles spawning, movement, and removal of pipes.
// Pipes are kept in spawn order, oldest first, so the newest pipe is last and
// has the largest X.
type PipeQueue struct {
	pipes   []Pipe
	fieldW  float64
	width   float64
	spacing float64
	gapTops core.Span // Range the top of a new gap is drawn from
}

// NewPipeQueue creates an empty queue for the given configuration.
func NewPipeQueue(cfg config.FlappyConfig) *PipeQueue {
	lo, hi := cfg.GapTopRange()
	return &PipeQueue{
		pipes:   make([]Pipe, 0, 8),
		fieldW:  cfg.Field.Width,
		width:   cfg.Pipes.Width,
		spacing: cfg.Pipes.SpawnSpacing,
		gapTops: core.Span{Lo: lo, Hi: hi},
	}
}

// Reset clears all pipes.
func (q *PipeQueue) Reset() {
	q.pipes = q.pipes[:0]
}

// Advance scrolls every pipe left by speed, drops the ones that left the
// field and spawns a new pipe at the right edge when there is room.
// Returns true if a pipe was spawned.
func (q *PipeQueue) Advance(speed float64, rng RandSource) bool {
	// Move pipes left
	for i := range q.pipes {
		q.pipes[i].X -= speed
	}

	// Remove pipes that have moved off the left side
	valid := q.pipes[:0]
	for _, p := range q.pipes {
		if p.X+q.width > 0 {
			valid = append(valid, p)
		}
	}
	q.pipes = valid

	if !q.shouldSpawn() {
		return false
	}
	q.pipes = append(q.pipes, Pipe{
		X:      q.fieldW,
		GapTop: q.gapTops.Lo + rng.Float64()*q.gapTops.Length(),
	})
	return true
}

// shouldSpawn reports whether the queue is empty or the newest pipe has
// scrolled past the spawn threshold.
func (q *PipeQueue) shouldSpawn() bool {
	newest, ok := q.Newest()
	return !ok || newest.X < q.fieldW-q.spacing
}

// Newest returns the most recently spawned pipe.
func (q *PipeQueue) Newest() (Pipe, bool) {
	if len(q.pipes) == 0 {
		return Pipe{}, false
	}
	return q.pipes[len(q.pipes)-1], true
}

// Len returns the number of pipes on the field.
func (q *PipeQueue) Len() int {
	return len(q.pipes)
}

// Pipes returns a copy of the current pipes, oldest first.
func (q *PipeQueue) Pipes() []Pipe {
	out := make([]Pipe, len(q.pipes))
	copy(out, q.pipes)
	return out
}
