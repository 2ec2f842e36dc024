package flappy

import "github.com/vovakirdan/flappy-ball/internal/core"

// hitbox describes the bird's fixed horizontal band and its size.
type hitbox struct {
	x       float64
	size    float64
	pipeW   float64
	gapSize float64
}

// band returns the columns the bird occupies.
func (h hitbox) band() core.Span {
	return core.NewSpan(h.x, h.size)
}

// hitsPipe reports whether the bird overlaps a solid section of the pipe:
// the pipe must share columns with the bird and the bird's vertical span must
// leave the gap.
func (h hitbox) hitsPipe(b Bird, p Pipe) bool {
	if !p.Columns(h.pipeW).Overlaps(h.band()) {
		return false
	}
	return !core.NewSpan(b.Y, h.size).Within(p.Gap(h.gapSize))
}

// firstHit returns the first pipe the bird collides with.
func (h hitbox) firstHit(b Bird, pipes []Pipe) (Pipe, bool) {
	for _, p := range pipes {
		if h.hitsPipe(b, p) {
			return p, true
		}
	}
	return Pipe{}, false
}
