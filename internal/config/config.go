// Package config provides YAML-based game configuration loading, validation
// and difficulty management.
package config

import "time"

// FlappyConfig contains every tunable constant of the game.
// All distances are field pixels; the renderer scales them to terminal cells.
type FlappyConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Bird       BirdConfig       `yaml:"bird"`
	Pipes      PipesConfig      `yaml:"pipes"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Clock      ClockConfig      `yaml:"clock"`
}

// FieldConfig defines the playfield.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"` // Minimum distance between a gap and the field edge
}

// BirdConfig defines the player entity.
type BirdConfig struct {
	X      float64 `yaml:"x"`
	Size   float64 `yaml:"size"`
	StartY float64 `yaml:"start_y"`
}

// PipesConfig defines obstacle geometry.
type PipesConfig struct {
	Width        float64 `yaml:"width"`
	GapHeight    float64 `yaml:"gap_height"`
	SpawnSpacing float64 `yaml:"spawn_spacing"`
}

// PhysicsConfig holds the three difficulty-scaled parameters.
type PhysicsConfig struct {
	Gravity     ScaledParam `yaml:"gravity"`
	ScrollSpeed ScaledParam `yaml:"scroll_speed"`
	JumpImpulse ScaledParam `yaml:"jump_impulse"`
}

// ScaledParam is a value that moves by Step at every difficulty milestone and
// is clamped to [Min, Max].
type ScaledParam struct {
	Base float64 `yaml:"base"`
	Step float64 `yaml:"step"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// DifficultyConfig defines when milestones occur.
type DifficultyConfig struct {
	Enabled      bool `yaml:"enabled"`
	Every        int  `yaml:"every"`         // Score interval between milestones
	InitialSteps int  `yaml:"initial_steps"` // Steps already applied at score 0
}

// ClockConfig defines the simulation cadence.
type ClockConfig struct {
	TickMS int `yaml:"tick_ms"`
}

// TickInterval returns the tick cadence as a duration.
func (c ClockConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// GapTopRange returns the interval from which a pipe's gap top is drawn.
func (c FlappyConfig) GapTopRange() (lo, hi float64) {
	return c.Field.Margin, c.Field.Height - c.Pipes.GapHeight - c.Field.Margin
}

// FloorY returns the largest legal bird position.
func (c FlappyConfig) FloorY() float64 {
	return c.Field.Height - c.Bird.Size
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", invalidf("unknown difficulty preset %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
// Every preset keeps linear step scaling; they only move where it starts or
// how often it advances.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.Every *= 2
		cfg.Difficulty.InitialSteps = 0
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialSteps = 5
	default:
		cfg.Difficulty.Enabled = true
	}
}
