package config

import (
	"math"

	"github.com/vovakirdan/flappish/internal/core"
)

// DifficultyManager calculates dynamic game parameters based on score/time.
// When progression is disabled every method returns its base value unchanged,
// which keeps the scroll speed constant.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d != nil && d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return 0
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = core.ClampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the scroll speed for the current level, at least 1 so pipes
// always reach the left edge.
func (d *DifficultyManager) Speed(base int, score int, ticks uint64) int {
	if !d.IsEnabled() {
		return base
	}
	level := d.Level(score, ticks)
	return max(1, int(math.Round(float64(base)*(1.0+level*d.cfg.Scaling.SpeedMultiplier))))
}

// GapSize returns the gap size for the current level, never below minGap.
func (d *DifficultyManager) GapSize(base, minGap int, score int, ticks uint64) int {
	if !d.IsEnabled() {
		return base
	}
	level := d.Level(score, ticks)
	result := base - int(level*float64(d.cfg.Scaling.GapReduction))
	if result < minGap {
		result = minGap
	}
	return result
}

// SpawnTicks returns the spawn period in ticks for the current level, at least one tick.
func (d *DifficultyManager) SpawnTicks(base int, score int, ticks uint64) int {
	if !d.IsEnabled() {
		return base
	}
	level := d.Level(score, ticks)
	reduction := core.ClampF(d.cfg.Scaling.SpawnReduction, 0.0, 0.9)
	result := int(math.Round(float64(base) * (1.0 - level*reduction)))
	if result < 1 {
		result = 1
	}
	return result
}
