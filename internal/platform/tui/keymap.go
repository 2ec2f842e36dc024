package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-ball/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Jump       key.Binding
	Start      key.Binding
	Restart    key.Binding
	Pause      key.Binding
	Scores     key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w", "k"),
			key.WithHelp("space", "jump"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "play again"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// forPhase enables only the bindings that do something in the given phase,
// so the help bar shows what the player can do right now.
func (k KeyMap) forPhase(phase core.Phase) KeyMap {
	k.Start.SetEnabled(phase == core.PhaseNotStarted)
	k.Jump.SetEnabled(phase == core.PhaseRunning)
	k.Pause.SetEnabled(phase == core.PhaseRunning)
	k.Restart.SetEnabled(phase == core.PhaseOver)
	k.Scores.SetEnabled(phase != core.PhaseRunning)
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Jump, k.Pause, k.Restart, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Jump, k.Pause, k.Restart},
		{k.Scores, k.Screenshot, k.Quit},
	}
}

// Action translates a key press to a game action for the given phase.
// Space both starts the first run and jumps.
func (k KeyMap) Action(msg tea.KeyMsg, phase core.Phase) core.Action {
	km := k.forPhase(phase)

	switch {
	case key.Matches(msg, km.Quit):
		return core.ActionQuit
	case key.Matches(msg, km.Start):
		return core.ActionStart
	case key.Matches(msg, km.Restart):
		return core.ActionRestart
	case key.Matches(msg, km.Jump):
		return core.ActionJump
	case key.Matches(msg, km.Pause):
		return core.ActionPause
	case key.Matches(msg, km.Scores):
		return core.ActionScoreboard
	}
	return core.ActionNone
}

// MouseAction translates a mouse click to a game action. A left click jumps
// while running and starts or restarts otherwise.
func MouseAction(msg tea.MouseMsg, phase core.Phase) core.Action {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.ActionNone
	}
	switch phase {
	case core.PhaseNotStarted:
		return core.ActionStart
	case core.PhaseRunning:
		return core.ActionJump
	default:
		return core.ActionRestart
	}
}
