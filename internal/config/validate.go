package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate reports the first configuration problem that would make the
// simulation ill-defined. It must pass before any run starts.
func (c FlappyConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return invalidf("field dimensions must be positive, got %gx%g", c.Field.Width, c.Field.Height)
	case c.Field.Margin < 0:
		return invalidf("field margin must not be negative, got %g", c.Field.Margin)
	case c.Bird.Size <= 0 || c.Bird.Size >= c.Field.Height:
		return invalidf("bird size must be in (0, %g), got %g", c.Field.Height, c.Bird.Size)
	case c.Bird.StartY < 0 || c.Bird.StartY > c.FloorY():
		return invalidf("bird start_y must be in [0, %g], got %g", c.FloorY(), c.Bird.StartY)
	case c.Pipes.Width <= 0:
		return invalidf("pipe width must be positive, got %g", c.Pipes.Width)
	case c.Pipes.GapHeight <= 0 || c.Pipes.GapHeight > c.Field.Height:
		return invalidf("gap height must be in (0, %g], got %g", c.Field.Height, c.Pipes.GapHeight)
	case c.Pipes.GapHeight+2*c.Field.Margin > c.Field.Height:
		return invalidf("gap height %g plus margins %g does not fit in field height %g",
			c.Pipes.GapHeight, 2*c.Field.Margin, c.Field.Height)
	case c.Pipes.SpawnSpacing < 0:
		return invalidf("spawn spacing must not be negative, got %g", c.Pipes.SpawnSpacing)
	case c.Clock.TickMS <= 0:
		return invalidf("tick interval must be positive, got %dms", c.Clock.TickMS)
	case c.Difficulty.Every <= 0:
		return invalidf("difficulty interval must be positive, got %d", c.Difficulty.Every)
	case c.Difficulty.InitialSteps < 0:
		return invalidf("initial difficulty steps must not be negative, got %d", c.Difficulty.InitialSteps)
	}

	params := []struct {
		name string
		p    ScaledParam
	}{
		{"gravity", c.Physics.Gravity},
		{"scroll_speed", c.Physics.ScrollSpeed},
		{"jump_impulse", c.Physics.JumpImpulse},
	}
	for _, np := range params {
		if np.p.Min > np.p.Max {
			return invalidf("%s: min %g is greater than max %g", np.name, np.p.Min, np.p.Max)
		}
		if np.p.Base < np.p.Min || np.p.Base > np.p.Max {
			return invalidf("%s: base %g outside [%g, %g]", np.name, np.p.Base, np.p.Min, np.p.Max)
		}
	}
	if c.Physics.ScrollSpeed.Min <= 0 {
		return invalidf("scroll_speed must stay positive, min is %g", c.Physics.ScrollSpeed.Min)
	}
	return nil
}
