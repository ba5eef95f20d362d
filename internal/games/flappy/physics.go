package flappy

import "github.com/vovakirdan/flappish/internal/core"

// integratePlayer applies gravity and the flap impulse, then moves the bird.
// A flap replaces the velocity rather than adding to it, and the position
// advances by the velocity truncated toward zero.
func (s *Session) integratePlayer(jump bool) {
	p := &s.player
	phys := s.cfg.Physics

	p.Velocity += phys.Gravity
	if phys.MaxFallSpeed > 0 && p.Velocity > phys.MaxFallSpeed {
		p.Velocity = phys.MaxFallSpeed
	}
	if jump {
		p.Velocity = phys.JumpImpulse
	}

	p.Y += int(p.Velocity)
}

// clampPlayer pins the bird between the ceiling and the floor line.
// Only called when the tick ended without a collision.
func (s *Session) clampPlayer() {
	p := &s.player
	p.Y = core.Clamp(p.Y, 0, s.cfg.Screen.FloorLine()-p.H)
}
