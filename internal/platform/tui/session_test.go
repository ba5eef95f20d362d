package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappish/internal/core"
)

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 120, Seed: 3})
}

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm, cmd
}

func TestSessionStartsAtMenu(t *testing.T) {
	m := newTestSession(t)
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.View() == "" {
		t.Error("menu view should not be empty")
	}
}

func TestSessionPlayAndBack(t *testing.T) {
	m := newTestSession(t)

	m, cmd := sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if cmd == nil {
		t.Error("starting a game should schedule the first tick")
	}

	m, _ = sendSession(t, m, TickMsg{ID: m.game.tickID})
	if got := session(*m.game).Tick(); got != 1 {
		t.Errorf("Tick() = %d, want 1", got)
	}

	m, _ = sendSession(t, m, runeKey('b'))
	if m.screen != screenMenu {
		t.Errorf("screen = %v after back, want menu", m.screen)
	}
	if m.game != nil {
		t.Error("game should be dropped after returning to menu")
	}
	if m.quitting {
		t.Error("back should not quit the session")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newTestSession(t)

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScoreboard {
		t.Fatalf("screen = %v, want scoreboard", m.screen)
	}

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %v after back, want menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t)

	m, cmd := sendSession(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("session should be quitting")
	}
	if cmd == nil {
		t.Error("quit should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestSessionResizeReachesGame(t *testing.T) {
	m := newTestSession(t)

	m, _ = sendSession(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game == nil {
		t.Fatal("game not started")
	}
	if w, h := m.game.screen.Width(), m.game.screen.Height(); w != 100 || h != 30 {
		t.Errorf("game screen = %dx%d, want 100x30", w, h)
	}
}
