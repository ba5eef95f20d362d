package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappish/internal/core"
	"github.com/vovakirdan/flappish/internal/registry"
	"github.com/vovakirdan/flappish/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
)

// SessionModel manages the full flow in one program: start screen, game,
// scoreboard and back. It backs both the menu command and SSH sessions.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	screen     sessionScreen
	menu       MenuModel
	game       *GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.config)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().Variant)
		if err != nil {
			// Shouldn't happen since menu only shows registered games
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}
		gm := NewGameModel(game, m.config, GameOptions{Store: m.store})
		m.game = &gm
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		return m.toMenu()
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}

	return m, cmd
}

// toMenu rebuilds the menu so high scores are current.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.game = nil
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven flow until the player quits.
func RunSession(store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
