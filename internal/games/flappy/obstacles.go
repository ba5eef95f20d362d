package flappy

import (
	"github.com/vovakirdan/flappish/internal/core"
)

// Obstacle is a pipe pair: a top and a bottom half sharing one horizontal
// position and one gap anchor.
type Obstacle struct {
	X         int  // Left edge of both halves
	GapAnchor int  // Vertical centre of the gap
	GapSize   int  // Distance between the halves
	Width     int  // Pipe width
	Height    int  // Height of each half
	Scored    bool // The pair has already counted towards the score
}

// Top returns the rectangle of the upper pipe; its bottom edge is the top of the gap.
func (o Obstacle) Top() core.Rect {
	gapTop := o.GapAnchor - o.GapSize/2
	return core.NewRect(o.X, gapTop-o.Height, o.Width, o.Height)
}

// Bottom returns the rectangle of the lower pipe; its top edge is the bottom of the gap.
func (o Obstacle) Bottom() core.Rect {
	gapBottom := o.GapAnchor - o.GapSize/2 + o.GapSize
	return core.NewRect(o.X, gapBottom, o.Width, o.Height)
}

// Right returns the x-coordinate of the right edge.
func (o Obstacle) Right() int {
	return o.X + o.Width
}

// CenterX returns the horizontal reference point used for scoring.
func (o Obstacle) CenterX() int {
	return o.X + o.Width/2
}

// Obstacles returns a copy of the active obstacle collection, oldest first.
func (s *Session) Obstacles() []Obstacle {
	out := make([]Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// spawnTick advances the spawn timer and appends a new pair when it expires.
func (s *Session) spawnTick() {
	s.sinceSpawn++
	if s.sinceSpawn < s.spawnPeriod() {
		return
	}
	s.sinceSpawn = 0
	s.obstacles = append(s.obstacles, s.newObstacle())
}

// spawnPeriod returns the current spawn period in ticks.
func (s *Session) spawnPeriod() int {
	return s.difficulty.SpawnTicks(s.basePeriod, s.score, s.tick)
}

// newObstacle creates a pair centred on the spawn line with a random gap anchor.
func (s *Session) newObstacle() Obstacle {
	o := s.cfg.Obstacles

	spawnX := o.SpawnX
	if spawnX == 0 {
		spawnX = s.cfg.Screen.Width
	}

	return Obstacle{
		X:         spawnX - o.PipeWidth/2,
		GapAnchor: s.pickAnchor(),
		GapSize:   s.difficulty.GapSize(o.GapSize, s.minGapHeight, s.score, s.tick),
		Width:     o.PipeWidth,
		Height:    o.PipeHeight,
	}
}

// pickAnchor draws a gap anchor uniformly from the configured range, or from
// the fixed candidate set when no range is configured.
func (s *Session) pickAnchor() int {
	o := s.cfg.Obstacles
	if r := o.GapAnchorRange; r != nil {
		return r.Min + s.rng.Intn(r.Max-r.Min+1)
	}
	return o.GapAnchors[s.rng.Intn(len(o.GapAnchors))]
}

// scrollObstacles moves every pair left and retires pairs that left the screen.
func (s *Session) scrollObstacles() {
	speed := s.difficulty.Speed(s.cfg.Physics.ScrollSpeed, s.score, s.tick)
	for i := range s.obstacles {
		s.obstacles[i].X -= speed
	}

	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.Right() > 0 {
			kept = append(kept, o)
		}
	}
	s.obstacles = kept
}
