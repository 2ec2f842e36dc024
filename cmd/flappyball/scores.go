package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-ball/internal/platform/tui"
	"github.com/vovakirdan/flappy-ball/internal/storage"
)

var (
	flagScoresPlain bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display recorded runs, best first.

In a terminal the scoreboard opens as a scrollable table; with --plain (or
when output is not a terminal) the top runs are printed as text.

Examples:
  flappyball scores
  flappyball scores --plain --limit 5
  flappyball scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print scores as text instead of the interactive table")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to print with --plain")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs and the best score")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			exitf("clearing scores: %v", err)
		}
		fmt.Println("All scores cleared.")
		return
	}

	width, height, termErr := term.GetSize(int(os.Stdout.Fd()))
	if !flagScoresPlain && termErr == nil {
		if err := tui.RunScoreboard(store, width, height); err != nil {
			exitf("running scoreboard: %v", err)
		}
		return
	}

	printScores(store)
}

func printScores(store *storage.Store) {
	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		exitf("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - Flappy Ball")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappyball play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %-12s  %s\n", "Rank", "Score", "Mode", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-12s  %s\n", "----", "-----", "----", "------", "----")

	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-8s  %-12s  %s\n", i+1, r.Score, r.Difficulty, r.Player, dateStr)
	}

	fmt.Println()
	if best, err := store.LoadBestScore(); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Runs: %d  Average: %.1f\n", stats.Runs, stats.AvgScore)
	}
}
