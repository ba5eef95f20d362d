// Package flappy implements the flappish game core: a bird falling under
// gravity, pipe pairs scrolling in from the right, and a judge that ends the
// run on the first collision.
//
// A Session is the complete mutable state of one play-through. It is driven
// one fixed tick at a time by Step and is deterministic for a given config,
// tick rate, seed and input sequence. Everything outside the Session (input
// polling, pacing, drawing) belongs to the caller.
package flappy

import (
	"math/rand"

	"github.com/vovakirdan/flappish/internal/config"
	"github.com/vovakirdan/flappish/internal/core"
)

// State is the session state machine: Active -> GameOver -> (restart) -> Active.
type State int

const (
	StateActive State = iota
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Player is the bird. X never changes; Y and Velocity are integrated every tick.
type Player struct {
	X, Y     int
	W, H     int
	Velocity float64 // Positive is downward
}

// Rect returns the player's bounding box.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// TickResult reports what happened during one Step.
type TickResult struct {
	Collided bool // The run ended this tick
	Scored   int  // Points gained this tick
}

// Session holds the full mutable game state for one play-through.
type Session struct {
	cfg        config.FlappyConfig
	tickRate   int
	seed       int64
	difficulty *config.DifficultyManager
	masks      *maskSet // nil unless collision mode is "mask"

	player    Player
	obstacles []Obstacle
	score     int
	state     State
	tick      uint64

	rng          *rand.Rand
	sinceSpawn   int // Ticks since the last spawn
	basePeriod   int // Spawn period in ticks at base difficulty
	minGapHeight int
}

// NewSession creates an Active session with the player at its start position.
func NewSession(cfg config.FlappyConfig, tickRate int, seed int64) *Session {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	s := &Session{
		cfg:          cfg,
		tickRate:     tickRate,
		difficulty:   config.NewDifficultyManager(cfg.Difficulty),
		basePeriod:   cfg.Obstacles.SpawnTicks(tickRate),
		minGapHeight: cfg.Player.Height * 2,
		obstacles:    make([]Obstacle, 0, 8),
	}
	if cfg.Collision.Mode == config.CollisionMask {
		s.masks = newMaskSet(cfg)
	}
	s.RestartWithSeed(seed)
	return s
}

// Restart starts a new run with the session's seed. The result is
// indistinguishable from a freshly created session.
func (s *Session) Restart() {
	s.RestartWithSeed(s.seed)
}

// RestartWithSeed starts a new run with a different RNG seed.
func (s *Session) RestartWithSeed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
	s.player = Player{
		X: s.cfg.Player.X,
		Y: s.cfg.Player.StartY,
		W: s.cfg.Player.Width,
		H: s.cfg.Player.Height,
	}
	s.obstacles = s.obstacles[:0]
	s.score = 0
	s.state = StateActive
	s.tick = 0
	s.sinceSpawn = 0
}

// Step advances the session by one tick. It does nothing once the run is over.
//
// Order: player physics, spawner, scroll and retire, judge at the unclamped
// position, then clamp if the run continues.
func (s *Session) Step(in core.InputFrame) TickResult {
	if s.state == StateGameOver {
		return TickResult{}
	}
	s.tick++

	s.integratePlayer(in.Has(core.ActionJump))
	s.spawnTick()
	s.scrollObstacles()

	if s.collides() {
		s.state = StateGameOver
		return TickResult{Collided: true}
	}
	scored := s.scorePasses()
	s.clampPlayer()

	return TickResult{Scored: scored}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Tick returns the number of ticks simulated in this run.
func (s *Session) Tick() uint64 {
	return s.tick
}

// Seed returns the seed of the current run.
func (s *Session) Seed() int64 {
	return s.seed
}

// Player returns a copy of the player.
func (s *Session) Player() Player {
	return s.player
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.FlappyConfig {
	return s.cfg
}

// TickRate returns the tick rate used to convert the spawn interval.
func (s *Session) TickRate() int {
	return s.tickRate
}
