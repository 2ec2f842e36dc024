package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-ball/internal/core"
	"github.com/vovakirdan/flappy-ball/internal/games/flappy"
	"github.com/vovakirdan/flappy-ball/internal/storage"
)

// Store is the persistence the game screen needs: the best score for the
// engine plus the run history.
type Store interface {
	flappy.BestScoreStore
	History
	SaveRun(run storage.Run) (int64, error)
}

// Session describes who is playing and how.
type Session struct {
	Player     string // Recorded with each run
	Difficulty string // Preset name recorded with each run
	Logger     *log.Logger
}

// Model is the Bubble Tea model for a Flappy Ball session.
//
// The engine only advances on TickMsg. Ticks are scheduled one at a time and
// tagged with a generation; pausing, game over and restarts bump or stop the
// generation so a late tick from an old loop never reaches the engine.
type Model struct {
	game       *flappy.Game
	screen     *core.Screen
	store      Store
	session    Session
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	interval   time.Duration
	gen        int
	ticking    bool
	scoreboard ScoreboardModel
	showScores bool
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *flappy.Game, store Store, cfg core.RuntimeConfig, sess Session) Model {
	logger := sess.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := game.LoadErr(); err != nil {
		logger.Warn("best score unreadable, starting from 0", "error", err)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:    store,
		session:  sess,
		logger:   logger,
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     h,
		interval: game.Config().Clock.TickInterval(),
	}
}

// Init shows the start screen; ticking begins with the first run.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showScores {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.showScores {
			return m, nil
		}
		return m.apply(MouseAction(msg, m.game.State().Phase))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}
	return m.apply(m.keys.Action(msg, m.game.State().Phase))
}

// apply forwards an action to the game and adjusts the tick loop.
func (m Model) apply(a core.Action) (tea.Model, tea.Cmd) {
	switch a {
	case core.ActionQuit:
		m.quitting = true
		m.stopTicking()
		return m, tea.Quit

	case core.ActionScoreboard:
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.showScores = true
		return m, nil

	case core.ActionStart, core.ActionRestart:
		if m.game.Apply(a) {
			return m, m.startTicking()
		}

	case core.ActionPause:
		if !m.game.Apply(a) {
			return m, nil
		}
		if m.game.State().Paused {
			m.stopTicking()
			return m, nil
		}
		return m, m.startTicking()

	case core.ActionJump:
		m.game.Apply(a)
	}
	return m, nil
}

func (m *Model) startTicking() tea.Cmd {
	m.gen++
	m.ticking = true
	return tickCmd(m.interval, m.gen)
}

func (m *Model) stopTicking() {
	m.gen++
	m.ticking = false
}

// handleTick processes simulation ticks.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.ticking || msg.Gen != m.gen {
		return m, nil
	}

	res := m.game.Tick()
	if res.State.GameOver() {
		m.stopTicking()
		m.recordRun(res)
		return m, nil
	}

	return m, tickCmd(m.interval, m.gen)
}

// recordRun stores the finished run. Failures are logged; play continues.
func (m *Model) recordRun(res core.StepResult) {
	m.logger.Debug("run finished",
		"score", res.State.Score,
		"best", res.State.BestScore,
		"new_best", res.Has(core.EventNewBest),
	)

	if err := m.game.SaveErr(); err != nil {
		m.logger.Warn("could not save best score", "error", err)
	}
	if m.store == nil || res.State.Score <= 0 {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		Score:      res.State.Score,
		Difficulty: m.session.Difficulty,
		Player:     m.session.Player,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// updateScoreboard forwards input to the scoreboard until the user leaves it.
func (m Model) updateScoreboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	updated, cmd := m.scoreboard.Update(msg)
	if sb, ok := updated.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.showScores = false
	}
	return m, cmd
}

// handleResize processes window resize events. The field is scaled, so the
// run keeps going at any size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	if m.showScores {
		m.scoreboard.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".flappyball", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scoreboard.View()
	}

	m.game.Render(m.screen)
	keys := m.keys.forPhase(m.game.State().Phase)
	return RenderScreen(m.screen) + "\n" + m.help.View(keys)
}

// Run starts the Bubble Tea program with the given model.
func Run(game *flappy.Game, store Store, cfg core.RuntimeConfig, sess Session) error {
	model := NewModel(game, store, cfg, sess)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Click to jump
	)

	_, err := p.Run()
	return err
}
