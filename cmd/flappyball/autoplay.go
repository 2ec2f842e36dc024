package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-ball/internal/clock"
	"github.com/vovakirdan/flappy-ball/internal/games/flappy"
	"github.com/vovakirdan/flappy-ball/internal/platform/headless"
	"github.com/vovakirdan/flappy-ball/internal/storage"
)

var (
	flagRuns     int
	flagFast     bool
	flagDuration time.Duration
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let the autopilot play headless",
	Long: `Run the game without a screen, driven by the built-in autopilot.

Ticks come from a real-time clock at the configured rate; --fast runs them
back to back. Finished runs are logged and saved like normal play, so a new
best score is persisted.

Examples:
  flappyball autoplay --runs 3
  flappyball autoplay --fast --runs 100 --seed 42
  flappyball autoplay --duration 1m --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagRuns, "runs", 1, "Stop after this many runs (0 = until interrupted)")
	autoplayCmd.Flags().BoolVar(&flagFast, "fast", false, "Tick as fast as possible instead of in real time")
	autoplayCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Stop after this long (0 = no limit)")
}

func runAutoplay(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "autoplay")

	cfg, preset, err := loadGameConfig()
	if err != nil {
		exitf("%v", err)
	}

	store, closeStore := openStore(logger)
	defer closeStore()

	game, err := flappy.New(cfg, flappy.WithRand(newRand()), flappy.WithStore(store))
	if err != nil {
		exitf("creating game: %v", err)
	}

	pilot := flappy.NewAutopilot(cfg)
	pilot.Restart = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if flagDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagDuration)
		defer cancel()
	}

	var sched clock.Scheduler = clock.NewTicker(cfg.Clock.TickInterval())
	manual := &clock.Manual{}
	if flagFast {
		sched = manual
	}

	runner := headless.New(game, pilot, sched,
		headless.WithRuns(flagRuns),
		headless.WithLogger(logger),
		headless.OnRun(func(res headless.Result) {
			if res.Score <= 0 {
				return
			}
			_, err := store.SaveRun(storage.Run{
				Score:      res.Score,
				Difficulty: string(preset),
				Player:     "autopilot",
			})
			if err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}),
	)

	logger.Info("autopilot starting", "difficulty", preset, "runs", flagRuns, "fast", flagFast)
	if err := runner.Start(ctx); err != nil {
		exitf("starting autopilot: %v", err)
	}
	if flagFast {
		for manual.Running() {
			manual.Fire(1024)
		}
	}
	<-runner.Done()
	runner.Stop()

	results := runner.Results()
	best := game.State().BestScore
	var total int
	for _, r := range results {
		total += r.Score
	}
	fmt.Printf("Runs: %d  Best: %d", len(results), best)
	if len(results) > 0 {
		fmt.Printf("  Average: %.1f", float64(total)/float64(len(results)))
	}
	fmt.Println()
}
