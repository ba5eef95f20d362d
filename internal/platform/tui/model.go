package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappish/internal/core"
	"github.com/vovakirdan/flappish/internal/games/flappy"
	"github.com/vovakirdan/flappish/internal/registry"
	"github.com/vovakirdan/flappish/internal/replay"
	"github.com/vovakirdan/flappish/internal/storage"
)

// GameOptions configures a GameModel.
type GameOptions struct {
	// Store receives finished runs. May be nil.
	Store *storage.Store
	// RecordPath, when set, writes a replay of the whole session there on exit.
	RecordPath string
	// Standalone models quit the program on back instead of handing control to a menu.
	Standalone bool
}

// GameModel runs one game inside Bubble Tea: ticks, key mapping, score
// saving and the way out (quit or back to menu).
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       GameOptions
	keys       GameKeyMap
	recorder   *replay.Recorder
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	replayErr  error
	tickID     uint64
}

// NewGameModel creates a model for the given game and resets it.
// A zero seed picks a time-based seed and a fresh one for every restart;
// an explicit seed is reused on restart so runs stay reproducible.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		keys:       DefaultGameKeyMap(),
		inputFrame: core.NewInputFrame(),
		tickID:     newTickID(),
	}

	fg, isFlappy := game.(*flappy.Game)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
		if isFlappy {
			fg.SetReseed(func() int64 { return time.Now().UnixNano() })
		}
	}
	m.config = cfg
	game.Reset(cfg)

	if isFlappy && opts.RecordPath != "" {
		m.recorder = replay.NewRecorder(game.ID(), fg.Session())
		fg.SetObserver(m.recorder)
	}
	m.gameState = game.State()
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.tickID)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The renderer scales the world to the screen, so the run survives a resize.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.ID != m.tickID || m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.finish()
		m.backToMenu = true
		if m.opts.Standalone {
			return m, tea.Quit
		}
		return m, nil

	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}

	case core.ActionNone:

	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	restarting := m.inputFrame.Has(core.ActionRestart)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if restarting {
		m.scoreSaved = false
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.tickID)
}

// saveScore records the finished run. Zero scores are not worth a row.
func (m GameModel) saveScore() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	run := storage.Run{Variant: m.game.ID(), Score: m.gameState.Score}
	if fg, ok := m.game.(*flappy.Game); ok {
		s := fg.Session()
		run.Ticks = s.Tick()
		run.Seed = s.Seed()
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.opts.Store.SaveScore(run)
}

// finish writes the replay, if one is being recorded.
func (m *GameModel) finish() {
	if m.recorder == nil {
		return
	}
	fg := m.game.(*flappy.Game)
	m.replayErr = replay.Save(m.opts.RecordPath, m.recorder.Finish(fg.Session()))
	m.recorder = nil
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".flappish", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// GameResult describes how a standalone game ended.
type GameResult struct {
	BackToMenu bool
	Score      int
	ReplayErr  error // Set when a requested replay could not be written
}

// RunGame plays a single game until the player quits or asks for the menu.
func RunGame(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (GameResult, error) {
	opts.Standalone = true
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return GameResult{}, err
	}

	m, ok := final.(GameModel)
	if !ok {
		return GameResult{}, nil
	}
	if m.recorder != nil {
		// Interrupted without a key press; still keep the recording.
		m.finish()
	}
	return GameResult{
		BackToMenu: m.backToMenu,
		Score:      m.gameState.Score,
		ReplayErr:  m.replayErr,
	}, nil
}
