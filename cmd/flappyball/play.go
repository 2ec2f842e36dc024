package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-ball/internal/audio"
	"github.com/vovakirdan/flappy-ball/internal/core"
	"github.com/vovakirdan/flappy-ball/internal/games/flappy"
	"github.com/vovakirdan/flappy-ball/internal/platform/tui"
)

var (
	flagMute  bool
	flagMusic string
	flagLog   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start Flappy Ball in this terminal.

Controls:
  Enter/Space  - Start
  Space/Up/W   - Jump (mouse click works too)
  P/Esc        - Pause
  R/Enter      - Play again (after game over)
  Tab          - High scores
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Speeds up half as often
  normal - Speeds up every 100 points
  hard   - Starts five steps in
  fixed  - Never speeds up

Music:
  Plays while a run is in progress. --music plays an mp3 file instead of
  the built-in tune. FLAPPYBALL_AUDIO_ENABLED and FLAPPYBALL_MASTER_VOLUME
  (0-100) are read from the environment.

Examples:
  flappyball play
  flappyball play --difficulty hard
  flappyball play --config ./my-flappy.yaml
  flappyball play --music ./theme.mp3
  flappyball play --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable music")
	playCmd.Flags().StringVar(&flagMusic, "music", "", "Path to an mp3 file to loop during runs")
	playCmd.Flags().StringVar(&flagLog, "log-file", "~/.flappyball/flappyball.log", "Log file (the terminal is taken by the game)")
}

func runPlay(_ *cobra.Command, _ []string) {
	// The alt screen owns the terminal, so logs go to a file
	logFile, err := openLogFile(flagLog)
	if err != nil {
		exitf("cannot open log file: %v", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "flappyball")

	cfg, preset, err := loadGameConfig()
	if err != nil {
		exitf("%v", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, closeStore := openStore(logger)
	defer closeStore()

	sink, closeAudio := startAudio(logger)
	defer closeAudio()

	game, err := flappy.New(cfg,
		flappy.WithRand(newRand()),
		flappy.WithStore(store),
		flappy.WithAudio(sink),
	)
	if err != nil {
		exitf("creating game: %v", err)
	}

	logger.Info("starting", "difficulty", preset, "tick", cfg.Clock.TickInterval(), "best", game.State().BestScore)

	runErr := tui.Run(game, store, core.RuntimeConfig{ScreenW: width, ScreenH: height}, tui.Session{
		Player:     currentPlayer(),
		Difficulty: string(preset),
		Logger:     logger,
	})
	if runErr != nil {
		exitf("running game: %v", runErr)
	}
}

// startAudio opens the speaker. Any failure leaves the game silent.
func startAudio(logger *log.Logger) (flappy.AudioSink, func()) {
	audioCfg := audio.LoadConfig()
	if flagMute {
		audioCfg.Enabled = false
	}
	if flagMusic != "" {
		audioCfg.MusicPath = expandHome(flagMusic)
	}
	if !audioCfg.Enabled {
		return audio.Silent{}, func() {}
	}

	player := audio.NewPlayer(audioCfg)
	if err := player.Init(); err != nil {
		logger.Warn("audio unavailable, playing silently", "error", err)
		return audio.Silent{}, func() {}
	}
	return player, player.Close
}

func openLogFile(path string) (*os.File, error) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// currentPlayer names local runs after the OS user.
func currentPlayer() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(key); name != "" {
			return name
		}
	}
	return "local"
}
