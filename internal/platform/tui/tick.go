// Package tui is the Bubble Tea front end: it maps keys to actions, paces the
// simulation with tick messages and draws core.Screen buffers with lipgloss.
// The same models back local play and SSH sessions.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// ID ties the message to the game model that scheduled it, so a tick still in
// flight when the player leaves a game cannot drive the next one.
type TickMsg struct {
	Time time.Time
	ID   uint64
}

var tickIDs atomic.Uint64

// newTickID returns a fresh tick chain identifier.
func newTickID() uint64 {
	return tickIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, id uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 120
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id}
	})
}
