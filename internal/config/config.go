// Package config provides YAML-based game configuration loading, validation
// and difficulty management for flappish.
//
// One FlappyConfig describes a whole variant of the game: playfield size,
// physics constants, pipe geometry and spawn cadence, bird hitbox, collision
// and scoring rules. All units are world units (the original pixel grid); the
// terminal renderer scales them down.
package config

import (
	"math"
	"time"
)

// FlappyConfig contains all configuration for one game variant.
type FlappyConfig struct {
	Screen     ScreenConfig     `yaml:"screen" msgpack:"screen"`
	Physics    PhysicsConfig    `yaml:"physics" msgpack:"physics"`
	Obstacles  ObstacleConfig   `yaml:"obstacles" msgpack:"obstacles"`
	Player     PlayerConfig     `yaml:"player" msgpack:"player"`
	Collision  CollisionConfig  `yaml:"collision" msgpack:"collision"`
	Scoring    ScoringConfig    `yaml:"scoring" msgpack:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty" msgpack:"difficulty"`
}

// ScreenConfig defines the playfield.
type ScreenConfig struct {
	Width       int `yaml:"width" msgpack:"width"`
	Height      int `yaml:"height" msgpack:"height"`
	FloorHeight int `yaml:"floor_height" msgpack:"floor_height"` // Floor strip at the bottom
}

// FloorLine returns the y coordinate the bird's bottom edge is clamped to.
func (s ScreenConfig) FloorLine() int {
	return s.Height - s.FloorHeight
}

// PhysicsConfig defines the bird's vertical motion and the scroll speed.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity" msgpack:"gravity"`               // Added to velocity every tick
	JumpImpulse  float64 `yaml:"jump_impulse" msgpack:"jump_impulse"`     // Velocity after a flap (negative = up)
	MaxFallSpeed float64 `yaml:"max_fall_speed" msgpack:"max_fall_speed"` // 0 = unbounded
	ScrollSpeed  int     `yaml:"scroll_speed" msgpack:"scroll_speed"`     // Pipe movement per tick
}

// ObstacleConfig defines pipe geometry and spawning.
type ObstacleConfig struct {
	PipeWidth     int           `yaml:"pipe_width" msgpack:"pipe_width"`
	PipeHeight    int           `yaml:"pipe_height" msgpack:"pipe_height"`
	GapSize       int           `yaml:"gap_size" msgpack:"gap_size"`
	SpawnInterval time.Duration `yaml:"spawn_interval" msgpack:"spawn_interval"`
	SpawnX        int           `yaml:"spawn_x" msgpack:"spawn_x"` // Horizontal centre of new pipes; 0 = screen width

	// GapAnchors lists the candidate gap centres. Ignored when GapAnchorRange is set.
	GapAnchors     []int        `yaml:"gap_anchors" msgpack:"gap_anchors"`
	GapAnchorRange *AnchorRange `yaml:"gap_anchor_range,omitempty" msgpack:"gap_anchor_range,omitempty"`
}

// AnchorRange is an inclusive range of gap centres.
type AnchorRange struct {
	Min int `yaml:"min" msgpack:"min"`
	Max int `yaml:"max" msgpack:"max"`
}

// SpawnTicks converts the spawn interval to a tick count at the given rate.
// The result is at least one tick.
func (o ObstacleConfig) SpawnTicks(tickRate int) int {
	ticks := int(math.Round(o.SpawnInterval.Seconds() * float64(tickRate)))
	if ticks < 1 {
		return 1
	}
	return ticks
}

// PlayerConfig defines the bird's hitbox and start position (top-left corner).
type PlayerConfig struct {
	X      int `yaml:"x" msgpack:"x"`
	StartY int `yaml:"start_y" msgpack:"start_y"`
	Width  int `yaml:"width" msgpack:"width"`
	Height int `yaml:"height" msgpack:"height"`
}

// Collision modes.
const (
	CollisionAABB = "aabb"
	CollisionMask = "mask"
)

// CollisionConfig selects how the bird is tested against pipes.
type CollisionConfig struct {
	Mode        string `yaml:"mode" msgpack:"mode"`                 // "aabb" or "mask"
	FatalBounds bool   `yaml:"fatal_bounds" msgpack:"fatal_bounds"` // Ceiling and floor end the run
}

// Scoring modes.
const (
	ScoringOnce      = "once"
	ScoringEveryTick = "every_tick"
)

// ScoringConfig selects the pass-counting rule.
type ScoringConfig struct {
	Mode string `yaml:"mode" msgpack:"mode"` // "once" or "every_tick"
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" msgpack:"enabled"`
	InitialLevel float64           `yaml:"initial_level" msgpack:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" msgpack:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" msgpack:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type" msgpack:"type"`     // "score", "time", or "none"
	MaxAt int    `yaml:"max_at" msgpack:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" msgpack:"speed_multiplier"` // Added to scroll speed factor at max difficulty
	GapReduction    int     `yaml:"gap_reduction" msgpack:"gap_reduction"`       // Gap size reduction at max difficulty
	SpawnReduction  float64 `yaml:"spawn_reduction" msgpack:"spawn_reduction"`   // Fraction of spawn interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
