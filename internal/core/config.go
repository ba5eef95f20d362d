package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	TickRate int   // Simulation ticks per second (default 120)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 120,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the externally visible status of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Collided is true only on the tick the run ended.
	Collided bool
	// Scored is the number of points gained this tick.
	Scored int
}
