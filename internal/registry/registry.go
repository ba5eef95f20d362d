// Package registry keeps the playable variants. Each variant is a tuning of
// the same flappy core (playfield, physics, pipes, collision) registered
// under its config name, so the CLI, menu and scoreboard can list and start
// variants without knowing how they are built.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/flappish/internal/core"
)

// ErrUnknownVariant is returned by Create for names that were never registered.
var ErrUnknownVariant = errors.New("registry: unknown variant")

// Game is one running instance of a variant as the platform drives it.
// Implementations hold pure simulation state; the platform owns input
// mapping, tick timing and terminal output.
type Game interface {
	// ID returns the variant name (e.g. "flappish", "kintilberd").
	// Scores and replays are keyed by it.
	ID() string

	// Title returns the name shown in menus and score tabs.
	Title() string

	// Reset starts a new run for the given screen size, tick rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the run by one tick with the actions pressed during it.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current run into a cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, tick and whether the run is over.
	State() core.GameState
}

// VariantInfo describes a registered variant.
type VariantInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh Game for one variant.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	variants  []VariantInfo // registration order
)

// Register adds a variant. Variants are listed in the order they were
// registered. Registering the same name twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}

	factories[id] = f
	variants = append(variants, VariantInfo{ID: id, Title: f().Title()})
}

// List returns the registered variants in registration order.
func List() []VariantInfo {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Clone(variants)
}

// Create builds a new Game for the named variant.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}
	return f(), nil
}

// Exists reports whether a variant with the given name is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
