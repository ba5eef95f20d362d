package flappy

import (
	"github.com/vovakirdan/flappish/internal/config"
	"github.com/vovakirdan/flappish/internal/core"
)

// Mask is a per-cell solidity map of a sprite, indexed [y*W+x].
type Mask struct {
	W, H  int
	solid []bool
}

// NewMask creates an empty mask.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, solid: make([]bool, w*h)}
}

// At reports whether the cell at (x, y) is solid. Out-of-range cells are empty.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.solid[y*m.W+x]
}

// Set marks the cell at (x, y).
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.solid[y*m.W+x] = v
}

// Overlaps reports whether mask a placed at ra and mask b placed at rb share a
// solid cell. Only the intersection of the two placements is scanned.
func Overlaps(a *Mask, ra core.Rect, b *Mask, rb core.Rect) bool {
	area := ra.Intersection(rb)
	if area.Empty() {
		return false
	}
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			if a.At(x-ra.X, y-ra.Y) && b.At(x-rb.X, y-rb.Y) {
				return true
			}
		}
	}
	return false
}

// EllipseMask fills the ellipse inscribed in a w*h box.
func EllipseMask(w, h int) *Mask {
	m := NewMask(w, h)
	// Work in doubled coordinates so the centre lands on cell boundaries.
	cx, cy := float64(w), float64(h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(2*x+1) - cx) / cx
			dy := (float64(2*y+1) - cy) / cy
			m.Set(x, y, dx*dx+dy*dy <= 1.0)
		}
	}
	return m
}

// PipeMask builds a pipe sprite: a full-width cap at the gap end and a body
// inset on both sides. capAtTop selects which end faces the gap.
func PipeMask(w, h int, capAtTop bool) *Mask {
	m := NewMask(w, h)
	capH := core.Max(1, w/4)
	inset := w / 10

	for y := 0; y < h; y++ {
		inCap := y < capH
		if !capAtTop {
			inCap = y >= h-capH
		}
		x0, x1 := inset, w-inset
		if inCap {
			x0, x1 = 0, w
		}
		for x := x0; x < x1; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

// maskSet holds the sprites used by per-cell collision.
type maskSet struct {
	bird       *Mask
	pipeTop    *Mask // Upper half: cap at its bottom edge
	pipeBottom *Mask // Lower half: cap at its top edge
}

func newMaskSet(cfg config.FlappyConfig) *maskSet {
	w, h := cfg.Obstacles.PipeWidth, cfg.Obstacles.PipeHeight
	return &maskSet{
		bird:       EllipseMask(cfg.Player.Width, cfg.Player.Height),
		pipeTop:    PipeMask(w, h, false),
		pipeBottom: PipeMask(w, h, true),
	}
}

func (m *maskSet) hitsTop(bird, pipe core.Rect) bool {
	return Overlaps(m.bird, bird, m.pipeTop, pipe)
}

func (m *maskSet) hitsBottom(bird, pipe core.Rect) bool {
	return Overlaps(m.bird, bird, m.pipeBottom, pipe)
}
