package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappish/internal/core"
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	BirdEyeChar   = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▄' // Cap of a bottom pipe, facing up
	PipeCapBottom = '▀' // Cap of a top pipe, facing down
	GroundEdge    = '▀'
)

// groundPattern is tiled across the floor and shifted by the scroll offset.
var groundPattern = []rune("▓▒░▒")

// viewport maps world coordinates onto screen cells.
type viewport struct {
	worldW, worldH int
	cellW, cellH   int
}

func (v viewport) x(wx int) int { return floorDiv(wx*v.cellW, v.worldW) }
func (v viewport) y(wy int) int { return floorDiv(wy*v.cellH, v.worldH) }

// rect scales a world rectangle. Non-empty rectangles keep at least one cell.
func (v viewport) rect(r core.Rect) core.Rect {
	if r.Empty() {
		return core.Rect{}
	}
	x0, y0 := v.x(r.X), v.y(r.Y)
	x1, y1 := v.x(r.Right()), v.y(r.Bottom())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorOffset is the scroll position of the floor strip in world units. The
// floor moves one unit per simulated tick and wraps at the playfield width,
// so it stops with the run and restarts with it.
func FloorOffset(snap Snapshot) int {
	if snap.Width <= 0 {
		return 0
	}
	return -int(snap.Tick % uint64(snap.Width))
}

// DrawSnapshot renders a snapshot scaled to fit dst. The caller clears dst.
func DrawSnapshot(dst *core.Screen, snap Snapshot, paused bool) {
	if dst.Width() == 0 || dst.Height() == 0 || snap.Width <= 0 || snap.Height <= 0 {
		return
	}
	vp := viewport{worldW: snap.Width, worldH: snap.Height, cellW: dst.Width(), cellH: dst.Height()}
	floorRow := vp.y(snap.FloorLine)

	for _, o := range snap.Obstacles {
		drawPipe(dst, vp.rect(o.Top), floorRow, PipeCapBottom, false)
		drawPipe(dst, vp.rect(o.Bottom), floorRow, PipeCapTop, true)
	}

	drawGround(dst, floorRow, vp.x(FloorOffset(snap)))
	drawBird(dst, vp.rect(snap.Player), snap.State == StateGameOver)

	dst.DrawTextColor(1, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorText)

	switch {
	case snap.State == StateGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d", snap.Score),
			"R: play again  B: menu  Q: exit")
	case paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawPipe fills a pipe half above the floor and marks the end facing the gap.
func drawPipe(dst *core.Screen, r core.Rect, floorRow int, capChar rune, capAtTop bool) {
	if r.Empty() {
		return
	}
	clip := r.Intersection(core.NewRect(0, 0, dst.Width(), floorRow))
	dst.DrawRect(clip, PipeChar, core.ColorPipe)

	capY := r.Bottom() - 1
	if capAtTop {
		capY = r.Y
	}
	if capY < 0 || capY >= floorRow {
		return
	}
	// The cap overhangs the body by one cell on each side.
	dst.DrawHLine(r.X-1, capY, r.W+2, capChar, core.ColorPipeCap)
}

// drawGround draws the floor strip from floorRow to the bottom of the screen.
func drawGround(dst *core.Screen, floorRow, offset int) {
	n := len(groundPattern)
	for y := floorRow; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if y == floorRow {
				dst.SetColor(x, y, GroundEdge, core.ColorGroundEdge)
				continue
			}
			i := ((x-offset)%n + n) % n
			dst.SetColor(x, y, groundPattern[i], core.ColorGround)
		}
	}
}

// drawBird draws the bird facing right, in the crash colour once the run is over.
func drawBird(dst *core.Screen, r core.Rect, crashed bool) {
	body, eye := core.ColorBird, core.ColorBirdEye
	if crashed {
		body, eye = core.ColorCrashed, core.ColorCrashed
	}
	dst.DrawRect(r, BirdChar, body)
	dst.SetColor(r.Right()-1, r.Y, BirdEyeChar, eye)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorText)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l)
	}
}
