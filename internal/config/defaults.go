package config

import (
	_ "embed"
	"time"
)

// Variant names. Each one is a complete FlappyConfig.
const (
	VariantFlappish   = "flappish"
	VariantKintilberd = "kintilberd"
	VariantClassic    = "classic"
)

//go:embed defaults/flappish.yaml
var defaultFlappishYAML []byte

//go:embed defaults/kintilberd.yaml
var defaultKintilberdYAML []byte

//go:embed defaults/classic.yaml
var defaultClassicYAML []byte

// Variants lists the built-in variant names in display order.
func Variants() []string {
	return []string{VariantFlappish, VariantKintilberd, VariantClassic}
}

// DefaultFlappyConfig returns the hard-coded configuration of a variant.
// Unknown variants fall back to flappish.
func DefaultFlappyConfig(variant string) FlappyConfig {
	switch variant {
	case VariantKintilberd:
		return defaultKintilberd()
	case VariantClassic:
		return defaultClassic()
	default:
		return defaultFlappish()
	}
}

func defaultFlappish() FlappyConfig {
	return FlappyConfig{
		Screen: ScreenConfig{
			Width:       1100,
			Height:      706,
			FloorHeight: 100,
		},
		Physics: PhysicsConfig{
			Gravity:      0.4,
			JumpImpulse:  -10,
			MaxFallSpeed: 0,
			ScrollSpeed:  5,
		},
		Obstacles: ObstacleConfig{
			PipeWidth:     100,
			PipeHeight:    700,
			GapSize:       300,
			SpawnInterval: 600 * time.Millisecond,
			GapAnchors:    []int{250, 300, 350},
		},
		Player: PlayerConfig{
			X:      75,
			StartY: 283,
			Width:  50,
			Height: 70,
		},
		Collision: CollisionConfig{Mode: CollisionAABB},
		Scoring:   ScoringConfig{Mode: ScoringOnce},
		Difficulty: DifficultyConfig{
			Enabled: false,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				GapReduction:    60,
				SpawnReduction:  0.4,
			},
		},
	}
}

func defaultKintilberd() FlappyConfig {
	return FlappyConfig{
		Screen: ScreenConfig{
			Width:       576,
			Height:      700,
			FloorHeight: 100,
		},
		Physics: PhysicsConfig{
			Gravity:     0.4,
			JumpImpulse: -10,
			ScrollSpeed: 5,
		},
		Obstacles: ObstacleConfig{
			PipeWidth:     100,
			PipeHeight:    700,
			GapSize:       200,
			SpawnInterval: 500 * time.Millisecond,
			SpawnX:        600,
			GapAnchors:    []int{200, 300, 400},
		},
		Player: PlayerConfig{
			X:      75,
			StartY: 232,
			Width:  50,
			Height: 70,
		},
		Collision: CollisionConfig{Mode: CollisionMask},
		Scoring:   ScoringConfig{Mode: ScoringOnce},
		Difficulty: DifficultyConfig{
			Enabled: false,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
				GapReduction:    40,
				SpawnReduction:  0.3,
			},
		},
	}
}

// defaultClassic pipes spawn just past the right edge and touching the
// ceiling or the floor ends the run.
func defaultClassic() FlappyConfig {
	return FlappyConfig{
		Screen: ScreenConfig{
			Width:       1100,
			Height:      706,
			FloorHeight: 100,
		},
		Physics: PhysicsConfig{
			Gravity:     0.4,
			JumpImpulse: -10,
			ScrollSpeed: 3,
		},
		Obstacles: ObstacleConfig{
			PipeWidth:     80,
			PipeHeight:    700,
			GapSize:       250,
			SpawnInterval: 1800 * time.Millisecond,
			SpawnX:        1140,
			GapAnchors:    []int{275, 325, 375},
		},
		Player: PlayerConfig{
			X:      100,
			StartY: 353,
			Width:  50,
			Height: 70,
		},
		Collision: CollisionConfig{Mode: CollisionAABB, FatalBounds: true},
		Scoring:   ScoringConfig{Mode: ScoringOnce},
		Difficulty: DifficultyConfig{
			Enabled: false,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 30,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				GapReduction:    50,
				SpawnReduction:  0.4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case VariantFlappish:
		return defaultFlappishYAML
	case VariantKintilberd:
		return defaultKintilberdYAML
	case VariantClassic:
		return defaultClassicYAML
	default:
		return nil
	}
}
