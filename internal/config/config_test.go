package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Decode(DefaultYAML())
	if err != nil {
		t.Fatalf("Decode(embedded) failed: %v", err)
	}
	if cfg != DefaultFlappyConfig() {
		t.Errorf("embedded YAML and DefaultFlappyConfig differ:\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultFlappyConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
	}{
		{"zero width", func(c *FlappyConfig) { c.Field.Width = 0 }},
		{"negative height", func(c *FlappyConfig) { c.Field.Height = -500 }},
		{"gap taller than field", func(c *FlappyConfig) { c.Pipes.GapHeight = 600 }},
		{"gap and margins overflow", func(c *FlappyConfig) { c.Field.Margin = 200 }},
		{"bird larger than field", func(c *FlappyConfig) { c.Bird.Size = 500 }},
		{"start below floor", func(c *FlappyConfig) { c.Bird.StartY = 480 }},
		{"zero pipe width", func(c *FlappyConfig) { c.Pipes.Width = 0 }},
		{"zero tick", func(c *FlappyConfig) { c.Clock.TickMS = 0 }},
		{"zero milestone interval", func(c *FlappyConfig) { c.Difficulty.Every = 0 }},
		{"inverted clamp", func(c *FlappyConfig) { c.Physics.Gravity.Min = 1 }},
		{"base outside clamp", func(c *FlappyConfig) { c.Physics.JumpImpulse.Base = -20 }},
		{"non-positive scroll", func(c *FlappyConfig) {
			c.Physics.ScrollSpeed = ScaledParam{Base: 0, Min: 0, Max: 1}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestDecodePartialOverride(t *testing.T) {
	cfg, err := Decode([]byte("pipes:\n  gap_height: 180\nclock:\n  tick_ms: 16\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if cfg.Pipes.GapHeight != 180 {
		t.Errorf("GapHeight = %g, expected 180", cfg.Pipes.GapHeight)
	}
	if cfg.Clock.TickMS != 16 {
		t.Errorf("TickMS = %d, expected 16", cfg.Clock.TickMS)
	}
	// Untouched keys keep their defaults
	if cfg.Pipes.Width != 50 || cfg.Field.Width != 800 {
		t.Errorf("untouched keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadFlappyCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	if err := os.WriteFile(path, []byte("field:\n  width: 640\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy failed: %v", err)
	}
	if cfg.Field.Width != 640 {
		t.Errorf("Field.Width = %g, expected 640", cfg.Field.Width)
	}
}

func TestLoadFlappyInvalidFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("field:\n  height: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFlappy(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadFlappyMissingCustomPath(t *testing.T) {
	if _, err := LoadFlappy(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing custom config should be an error")
	}
}

func TestEncodeRoundTripsThroughDecode(t *testing.T) {
	data, err := Encode(DefaultFlappyConfig())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(string(data), "spawn_spacing: 300") {
		t.Errorf("encoded YAML should use snake_case keys:\n%s", data)
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", name, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown names")
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyEasy)
	if cfg.Difficulty.Every != 200 {
		t.Errorf("easy preset should double the interval, got %d", cfg.Difficulty.Every)
	}

	cfg = DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyHard)
	if cfg.Difficulty.InitialSteps != 5 {
		t.Errorf("hard preset should start 5 steps in, got %d", cfg.Difficulty.InitialSteps)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset config should stay valid: %v", err)
	}
}
