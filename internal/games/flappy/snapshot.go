package flappy

import (
	"github.com/vovakirdan/flappish/internal/core"
)

// ObstacleView is the read-only view of a pipe pair handed to renderers.
type ObstacleView struct {
	Top       core.Rect
	Bottom    core.Rect
	GapAnchor int
	Scored    bool
}

// Snapshot is a copy of everything a renderer needs to draw one frame.
// Mutating it has no effect on the session.
type Snapshot struct {
	Tick      uint64
	State     State
	Score     int
	Seed      int64
	Player    core.Rect
	Velocity  float64
	Obstacles []ObstacleView
	Width     int
	Height    int
	FloorLine int
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	views := make([]ObstacleView, len(s.obstacles))
	for i, o := range s.obstacles {
		views[i] = ObstacleView{
			Top:       o.Top(),
			Bottom:    o.Bottom(),
			GapAnchor: o.GapAnchor,
			Scored:    o.Scored,
		}
	}
	return Snapshot{
		Tick:      s.tick,
		State:     s.state,
		Score:     s.score,
		Seed:      s.seed,
		Player:    s.player.Rect(),
		Velocity:  s.player.Velocity,
		Obstacles: views,
		Width:     s.cfg.Screen.Width,
		Height:    s.cfg.Screen.Height,
		FloorLine: s.cfg.Screen.FloorLine(),
	}
}
