package flappy

import (
	"github.com/vovakirdan/flappish/internal/config"
	"github.com/vovakirdan/flappish/internal/core"
	"github.com/vovakirdan/flappish/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the config's own difficulty section.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig resolves the configuration for a variant using the CLI settings.
func LoadConfig(variant string) (config.FlappyConfig, config.Source, error) {
	cfg, src, err := config.Load(variant, configPath)
	if err != nil {
		return cfg, src, err
	}
	config.ApplyPreset(&cfg, difficultyPreset)
	return cfg, src, nil
}

// Game adapts a Session to the registry.Game interface used by the platform.
// Pausing and restarts go through a Driver; drawing adds the scrolling floor,
// the HUD and the pause and game-over overlays.
type Game struct {
	variant string
	title   string
	driver  *Driver

	observer StepObserver
	reseed   func() int64
}

// New creates a game for the given variant.
func New(variant string) *Game {
	return &Game{variant: variant, title: variantTitle(variant)}
}

func variantTitle(variant string) string {
	switch variant {
	case config.VariantKintilberd:
		return "Kintilberd"
	case config.VariantClassic:
		return "Classic"
	default:
		return "Flappish"
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// SetObserver attaches an observer to the current and all future runs.
func (g *Game) SetObserver(o StepObserver) {
	g.observer = o
	if g.driver != nil {
		g.driver.Observer = o
	}
}

// SetReseed sets the seed source used when the player restarts.
func (g *Game) SetReseed(f func() int64) {
	g.reseed = f
	if g.driver != nil {
		g.driver.Reseed = f
	}
}

// Reset builds a fresh session. A config that fails to load falls back to
// the variant's defaults.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, _, err := LoadConfig(g.variant)
	if err != nil {
		cfg = config.DefaultFlappyConfig(g.variant)
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	g.ResetWith(cfg, rc.TickRate, rc.Seed)
}

// ResetWith builds a fresh session from an explicit config.
func (g *Game) ResetWith(cfg config.FlappyConfig, tickRate int, seed int64) {
	g.driver = NewDriver(NewSession(cfg, tickRate, seed))
	g.driver.Observer = g.observer
	g.driver.Reseed = g.reseed
}

// Session returns the current session, or nil before the first Reset.
func (g *Game) Session() *Session {
	if g.driver == nil {
		return nil
	}
	return g.driver.Session()
}

// Driver returns the driver of the current session.
func (g *Game) Driver() *Driver {
	return g.driver
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.driver == nil {
		g.Reset(core.DefaultConfig())
	}

	res := g.driver.Apply(in)
	return core.StepResult{
		State:    g.State(),
		Collided: res.Collided,
		Scored:   res.Scored,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.driver == nil {
		return core.GameState{}
	}
	s := g.driver.Session()
	return core.GameState{
		Score:    s.Score(),
		GameOver: s.State() == StateGameOver,
		Paused:   g.driver.Paused(),
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.driver == nil {
		return
	}
	DrawSnapshot(dst, g.driver.Session().Snapshot(), g.driver.Paused())
}

// Register every built-in variant with the registry in display order.
func init() {
	for _, v := range config.Variants() {
		v := v
		registry.Register(v, func() registry.Game {
			return New(v)
		})
	}
}
