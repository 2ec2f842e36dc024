package config

import "github.com/vovakirdan/flappy-ball/internal/core"

// DifficultyParams are the physics values in effect for a tick.
type DifficultyParams struct {
	ScrollSpeed float64
	Gravity     float64
	JumpImpulse float64
}

// DifficultyManager derives physics parameters from the score.
// The result depends only on the score, never on how many times it was asked,
// so evaluating a milestone twice within one tick cannot double-apply it.
type DifficultyManager struct {
	physics PhysicsConfig
	cfg     DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(physics PhysicsConfig, cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		physics: physics,
		cfg:     cfg,
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Every > 0
}

// Steps returns how many milestone steps apply at the given score.
func (d *DifficultyManager) Steps(score int) int {
	steps := d.cfg.InitialSteps
	if d.IsEnabled() && score > 0 {
		steps += score / d.cfg.Every
	}
	return steps
}

// IsMilestone reports whether score is a positive multiple of the interval.
func (d *DifficultyManager) IsMilestone(score int) bool {
	return d.IsEnabled() && score > 0 && score%d.cfg.Every == 0
}

// Baseline returns the parameters at the start of a run.
func (d *DifficultyManager) Baseline() DifficultyParams {
	return d.Params(0)
}

// Params returns the parameters in effect at the given score.
func (d *DifficultyManager) Params(score int) DifficultyParams {
	steps := d.Steps(score)
	return DifficultyParams{
		ScrollSpeed: scale(d.physics.ScrollSpeed, steps),
		Gravity:     scale(d.physics.Gravity, steps),
		JumpImpulse: scale(d.physics.JumpImpulse, steps),
	}
}

// scale applies n steps and clamps. Because every step moves in the same
// direction, clamping once equals clamping after each step.
func scale(p ScaledParam, n int) float64 {
	return core.ClampF(p.Base+float64(n)*p.Step, p.Min, p.Max)
}
