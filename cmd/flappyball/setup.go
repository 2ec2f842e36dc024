package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-ball/internal/config"
	"github.com/vovakirdan/flappy-ball/internal/games/flappy"
	"github.com/vovakirdan/flappy-ball/internal/platform/tui"
	"github.com/vovakirdan/flappy-ball/internal/storage"
)

// loadGameConfig loads the config file and applies the difficulty preset.
func loadGameConfig() (config.FlappyConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.FlappyConfig{}, "", err
	}
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	config.ApplyFlappyPreset(&cfg, preset)
	return cfg, preset, nil
}

// newRand returns the gap placement source for --seed.
func newRand() flappy.RandSource {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// newLogger creates a logger at --log-level writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the scores database. If it cannot be opened the game
// still runs on an in-memory store and nothing persists.
func openStore(logger *log.Logger) (tui.Store, func()) {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not persist", "error", err)
		return storage.NewMemoryStore(), func() {}
	}
	return db, func() {
		if err := db.Close(); err != nil {
			logger.Warn("could not close scores database", "error", err)
		}
	}
}

// exitf prints an error and exits.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
