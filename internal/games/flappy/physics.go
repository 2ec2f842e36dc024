package flappy

import "github.com/vovakirdan/flappy-ball/internal/core"

// Bird is the player entity. Y grows downward from the top of the field.
type Bird struct {
	Y        float64 // Top of the hitbox, in [0, floor]
	Velocity float64 // Pixels per tick, negative is up
}

// fall moves the bird by its current velocity, clamps it to [0, floor] and
// then accumulates gravity, so acceleration shows up on the next tick.
// It reports whether the bird crossed the floor; touching the ceiling is
// clamped silently.
func (b *Bird) fall(gravity, floor float64) (hitFloor bool) {
	b.Y += b.Velocity
	hitFloor = b.Y > floor
	b.Y = core.ClampF(b.Y, 0, floor)
	b.Velocity += gravity
	return hitFloor
}
