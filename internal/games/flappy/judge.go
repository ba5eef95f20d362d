package flappy

import (
	"github.com/vovakirdan/flappish/internal/config"
)

// collides reports whether the bird touches any pipe half this tick.
// The search stops at the first hit.
func (s *Session) collides() bool {
	bird := s.player.Rect()

	if s.cfg.Collision.FatalBounds {
		if bird.Y <= 0 || bird.Bottom() >= s.cfg.Screen.FloorLine() {
			return true
		}
	}

	for _, o := range s.obstacles {
		top, bottom := o.Top(), o.Bottom()
		if s.masks != nil {
			if s.masks.hitsTop(bird, top) || s.masks.hitsBottom(bird, bottom) {
				return true
			}
			continue
		}
		if bird.Intersects(top) || bird.Intersects(bottom) {
			return true
		}
	}
	return false
}

// scorePasses counts pairs whose centre is left of the bird's centre.
// In "once" mode each pair counts a single time; "every_tick" counts a pair
// on every tick it stays behind the bird.
func (s *Session) scorePasses() int {
	birdX := s.player.Rect().CenterX()
	everyTick := s.cfg.Scoring.Mode == config.ScoringEveryTick

	scored := 0
	for i := range s.obstacles {
		o := &s.obstacles[i]
		if o.CenterX() >= birdX {
			continue
		}
		if everyTick || !o.Scored {
			scored++
		}
		o.Scored = true
	}
	s.score += scored
	return scored
}
