// flappyball is a Flappy Bird style game for the terminal.
//
// Usage:
//
//	flappyball play          - Play in this terminal (default)
//	flappyball autoplay      - Let the autopilot play without a screen
//	flappyball serve         - Start SSH server for remote play
//	flappyball scores        - Show the run history
//	flappyball config        - Print the effective game configuration
//
// Global flags:
//
//	--db <path>          - Set database path (default: ~/.flappyball/scores.db)
//	--config <path>      - Load game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--seed <value>       - Set RNG seed for reproducible pipes
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappyball",
	Short: "Flappy Ball - keep the ball between the pipes",
	Long: `Flappy Ball is a terminal take on the classic side-scroller: the ball
falls, a jump kicks it upward, and every tick survived is a point.

Available commands:
  play      - Play in this terminal
  autoplay  - Let the autopilot play headless
  serve     - Start SSH server for remote play
  scores    - View the run history
  config    - Print the effective configuration

Examples:
  flappyball
  flappyball play --difficulty hard
  flappyball autoplay --runs 5
  flappyball serve --ssh :2222
  flappyball scores`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappyball/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
