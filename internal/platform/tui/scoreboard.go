package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappish/internal/core"
	"github.com/vovakirdan/flappish/internal/registry"
	"github.com/vovakirdan/flappish/internal/storage"
)

const (
	maxScores     = 100 // Runs loaded per variant
	seedColumnMin = 70  // Terminal width from which the seed column is shown
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = boardTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists the stored runs of one variant at a time together
// with that variant's totals: runs, best, average and time in the air.
type ScoreboardModel struct {
	store     *storage.Store
	variants  []registry.VariantInfo
	cursor    int
	tickRate  int
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first variant.
// The tick rate converts stored tick counts to flight time.
func NewScoreboardModel(store *storage.Store, cfg core.RuntimeConfig) ScoreboardModel {
	h := help.New()
	h.Width = cfg.ScreenW

	m := ScoreboardModel{
		store:    store,
		variants: registry.List(),
		tickRate: cfg.TickRate,
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
	}
	if m.tickRate <= 0 {
		m.tickRate = core.DefaultConfig().TickRate
	}
	m.table = m.newTable()
	m.load()
	return m
}

// Variant returns the ID of the variant on display, or "" if none is registered.
func (m ScoreboardModel) Variant() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.cursor].ID
}

func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Flight", Width: 9},
		{Title: "Date", Width: 13},
	}
	if m.width >= seedColumnMin {
		columns = append(columns, table.Column{Title: "Seed", Width: 20})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)), // Title, tabs, stats panel and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the runs and totals of the current variant.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if variant := m.Variant(); m.store != nil && variant != "" {
		if scores, err := m.store.TopScores(variant, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.Stats(variant); err == nil {
			m.stats = stats
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	withSeed := len(m.table.Columns()) > 4
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			m.flight(int64(s.Ticks)),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
		if withSeed {
			row = append(row, fmt.Sprintf("%d", s.Seed))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// flight formats a tick count as time in the air.
func (m ScoreboardModel) flight(ticks int64) string {
	d := time.Duration(ticks) * time.Second / time.Duration(m.tickRate)
	return d.Round(100 * time.Millisecond).String()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			if n := len(m.variants); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if n := len(m.variants); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
		return m, nil
	}

	// Scrolling keys go to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderStats(), m.width))
	b.WriteString("\n")

	if len(m.scores) == 0 {
		b.WriteString(centerText(boardDimStyle.Italic(true).Render(
			"No runs recorded yet. Fly through a few pipes to set one!"), m.width))
		b.WriteString("\n")
	} else {
		b.WriteString(centerText(boardPanelStyle.Render(m.table.View()), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.cursor {
			tabs[i] = boardActiveTab.Render(v.Title)
		} else {
			tabs[i] = boardTabStyle.Render(v.Title)
		}
	}
	return strings.Join(tabs, " ")
}

// renderStats draws the totals line of the current variant.
func (m ScoreboardModel) renderStats() string {
	s := m.stats
	if s == nil {
		s = &storage.GameStats{}
	}
	stat := func(label, value string) string {
		return boardLabelStyle.Render(label+" ") + boardValueStyle.Render(value)
	}
	last := "never"
	if !s.LastPlayed.IsZero() {
		last = s.LastPlayed.Format("Jan 02 15:04")
	}
	return strings.Join([]string{
		stat("Runs", fmt.Sprintf("%d", s.GamesCount)),
		stat("Best", fmt.Sprintf("%d", s.HighScore)),
		stat("Avg", fmt.Sprintf("%.1f", s.AvgScore)),
		stat("Airtime", m.flight(s.TotalTicks)),
		stat("Last", last),
	}, boardDimStyle.Render("  |  "))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard on its own.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, cfg core.RuntimeConfig) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
