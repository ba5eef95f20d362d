package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappish/internal/core"
	"github.com/vovakirdan/flappish/internal/games/flappy"
)

// colorStyles maps each scene role to an ANSI 256-colour style.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorPipe:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorPipeCap:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBird:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBirdEye:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorCrashed:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGround:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGroundEdge: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorText:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		renderRow(&sb, s, y)
	}
	return sb.String()
}

// renderRow writes one row, styling each run of same-coloured cells once
// to keep the number of escape sequences down.
func renderRow(sb *strings.Builder, s *core.Screen, y int) {
	var run strings.Builder
	runColor := core.ColorDefault

	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(styleFor(runColor).Render(run.String()))
		run.Reset()
	}

	for x, w := 0, s.Width(); x < w; x++ {
		cell := s.GetCell(x, y)
		if cell.Color != runColor {
			flush()
			runColor = cell.Color
		}
		run.WriteRune(cell.Rune)
	}
	flush()
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// ScreenRenderer draws snapshots straight to a terminal writer without a
// Bubble Tea program. It implements flappy.Renderer and is used to watch
// replays.
type ScreenRenderer struct {
	out    io.Writer
	screen *core.Screen
}

// NewScreenRenderer creates a renderer for a width*height terminal.
func NewScreenRenderer(out io.Writer, width, height int) *ScreenRenderer {
	return &ScreenRenderer{out: out, screen: core.NewScreen(width, height)}
}

// RenderFrame implements flappy.Renderer.
func (r *ScreenRenderer) RenderFrame(snap flappy.Snapshot) {
	r.screen.Clear()
	flappy.DrawSnapshot(r.screen, snap, false)
	// Home the cursor and overwrite the previous frame in place.
	//nolint:errcheck // A dropped frame is not worth stopping playback
	io.WriteString(r.out, "\x1b[H"+RenderScreen(r.screen))
}
