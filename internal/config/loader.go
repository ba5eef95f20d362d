package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Source describes where a loaded config came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// Load loads the configuration of a variant.
// Search order: customPath -> ~/.flappish/configs/<variant>.yaml -> ./configs/<variant>.yaml -> embedded default.
// Files override the variant's defaults field by field. A custom path that cannot be read,
// parsed or validated is an error; the other locations are skipped silently when broken.
func Load(variant, customPath string) (FlappyConfig, Source, error) {
	if customPath != "" {
		cfg := DefaultFlappyConfig(variant)
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, SourceCustom, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, SourceCustom, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, SourceCustom, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	filename := variant + ".yaml"
	candidates := []struct {
		path   string
		source Source
	}{
		{userConfigPath(filename), SourceUser},
		{filepath.Join("configs", filename), SourceLocal},
	}
	for _, c := range candidates {
		if c.path == "" {
			continue
		}
		if cfg, ok := loadFile(variant, c.path); ok {
			return cfg, c.source, nil
		}
	}

	cfg := DefaultFlappyConfig(variant)
	if data := GetDefaultYAML(variant); data != nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, SourceEmbedded, nil
		}
	}
	return DefaultFlappyConfig(variant), SourceBuiltin, nil
}

func loadFile(variant, path string) (FlappyConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FlappyConfig{}, false
	}
	cfg := DefaultFlappyConfig(variant)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return FlappyConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappish", "configs", filename)
}

// Validate checks that the configuration describes a playable game.
func (c FlappyConfig) Validate() error {
	s, p, o, pl := c.Screen, c.Physics, c.Obstacles, c.Player

	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, s.Width, s.Height)
	case s.FloorHeight < 0 || s.FloorHeight >= s.Height:
		return fmt.Errorf("%w: floor_height %d", ErrInvalid, s.FloorHeight)
	case p.ScrollSpeed <= 0:
		return fmt.Errorf("%w: scroll_speed must be positive", ErrInvalid)
	case p.MaxFallSpeed < 0:
		return fmt.Errorf("%w: max_fall_speed must not be negative", ErrInvalid)
	case o.PipeWidth <= 0 || o.PipeHeight <= 0:
		return fmt.Errorf("%w: pipe size %dx%d", ErrInvalid, o.PipeWidth, o.PipeHeight)
	case o.GapSize <= 0 || o.GapSize >= s.FloorLine():
		return fmt.Errorf("%w: gap_size %d does not fit playfield", ErrInvalid, o.GapSize)
	case o.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn_interval must be positive", ErrInvalid)
	case pl.Width <= 0 || pl.Height <= 0:
		return fmt.Errorf("%w: player size %dx%d", ErrInvalid, pl.Width, pl.Height)
	case pl.Height > s.FloorLine():
		return fmt.Errorf("%w: player taller than playfield", ErrInvalid)
	}

	// Every anchor must keep the whole gap between ceiling and floor.
	lo, hi := o.GapSize/2, s.FloorLine()-o.GapSize/2
	if r := o.GapAnchorRange; r != nil {
		if r.Min > r.Max {
			return fmt.Errorf("%w: gap_anchor_range min %d > max %d", ErrInvalid, r.Min, r.Max)
		}
		if r.Min < lo || r.Max > hi {
			return fmt.Errorf("%w: gap_anchor_range [%d, %d] outside [%d, %d]", ErrInvalid, r.Min, r.Max, lo, hi)
		}
	} else {
		if len(o.GapAnchors) == 0 {
			return fmt.Errorf("%w: gap_anchors is empty", ErrInvalid)
		}
		for _, a := range o.GapAnchors {
			if a < lo || a > hi {
				return fmt.Errorf("%w: gap anchor %d outside [%d, %d]", ErrInvalid, a, lo, hi)
			}
		}
	}

	sc := c.Difficulty.Scaling
	switch {
	case sc.SpeedMultiplier < 0:
		return fmt.Errorf("%w: speed_multiplier must not be negative", ErrInvalid)
	case sc.GapReduction < 0:
		return fmt.Errorf("%w: gap_reduction must not be negative", ErrInvalid)
	case sc.SpawnReduction < 0 || sc.SpawnReduction >= 1:
		return fmt.Errorf("%w: spawn_reduction %.2f not in [0, 1)", ErrInvalid, sc.SpawnReduction)
	}

	switch c.Collision.Mode {
	case CollisionAABB, CollisionMask:
	default:
		return fmt.Errorf("%w: collision mode %q", ErrInvalid, c.Collision.Mode)
	}
	switch c.Scoring.Mode {
	case ScoringOnce, ScoringEveryTick:
	default:
		return fmt.Errorf("%w: scoring mode %q", ErrInvalid, c.Scoring.Mode)
	}
	return nil
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
