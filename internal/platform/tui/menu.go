package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappish/internal/core"
	"github.com/vovakirdan/flappish/internal/registry"
	"github.com/vovakirdan/flappish/internal/storage"
)

// MenuItem represents a selectable entry on the start screen.
type MenuItem struct {
	Variant    string // Empty for the scoreboard entry
	Title      string
	Best       int  // Stored high score, 0 if none
	Scoreboard bool // Opens the scoreboard instead of a game
}

// MenuModel is the start screen: pick a variant or open the scoreboard.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewMenuModel creates a new menu model listing every registered variant.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	variants := registry.List()
	items := make([]MenuItem, 0, len(variants)+1)

	for _, v := range variants {
		item := MenuItem{Variant: v.ID, Title: v.Title}
		if store != nil {
			if best, err := store.HighScore(v.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}
	items = append(items, MenuItem{Title: "High Scores", Scoreboard: true})

	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		selected := m.items[m.cursor]
		if selected.Scoreboard {
			m.openScoreboard = true
			return m, tea.Quit
		}
		m.selected = &selected
		return m, tea.Quit // Exit menu to start game

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("F L A P P I S H"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Welcome! Let's Play!", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if item.Best > 0 {
			line += fmt.Sprintf("  (best %d)", item.Best)
		}
		if i == m.cursor {
			line = menuCursor.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
