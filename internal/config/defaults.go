package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the hard-coded default configuration.
// It mirrors defaults/flappy.yaml and is the last fallback of the loader.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 500,
			Margin: 50,
		},
		Bird: BirdConfig{
			X:      70,
			Size:   35,
			StartY: 250,
		},
		Pipes: PipesConfig{
			Width:        50,
			GapHeight:    150,
			SpawnSpacing: 300,
		},
		Physics: PhysicsConfig{
			Gravity:     ScaledParam{Base: 0.5, Step: 0.05, Min: 0.5, Max: 0.8},
			ScrollSpeed: ScaledParam{Base: 5, Step: 0.3, Min: 5, Max: 15},
			JumpImpulse: ScaledParam{Base: -5, Step: -0.2, Min: -12, Max: -5},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			Every:        100,
			InitialSteps: 0,
		},
		Clock: ClockConfig{
			TickMS: 30,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
