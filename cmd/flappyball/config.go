package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-ball/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration the game would run with, after the config file
and the difficulty preset are applied. The output is valid YAML and can be
saved as a starting point for --config.

Examples:
  flappyball config > my-flappy.yaml
  flappyball config --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, _, err := loadGameConfig()
	if err != nil {
		exitf("%v", err)
	}
	data, err := config.Encode(cfg)
	if err != nil {
		exitf("encoding config: %v", err)
	}
	fmt.Print(string(data))
}
