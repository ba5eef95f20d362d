package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappish/internal/core"
	"github.com/vovakirdan/flappish/internal/games/flappy"
	"github.com/vovakirdan/flappish/internal/platform/tui"
	"github.com/vovakirdan/flappish/internal/registry"
)

var flagRecord string

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Start playing the specified variant.

Controls:
  Space/Up/W/K  - Flap
  P             - Pause
  R/Enter       - Play again (after game over)
  B/Esc         - Back to the start screen
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  flappish play flappish
  flappish play kintilberd --seed 42
  flappish play flappish --difficulty hard
  flappish play flappish --config ./my-flappish.yaml
  flappish play flappish --record run.replay`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the session to this file")
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) {
	variant := args[0]

	// Check if variant exists
	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'flappish list' to see available variants.")
		os.Exit(1)
	}

	// A broken custom config is reported here; the game itself falls back to defaults.
	if _, src, err := flappy.LoadConfig(variant); err != nil {
		logger.Warn("invalid config, using defaults", "variant", variant, "error", err)
	} else {
		logger.Debug("config loaded", "variant", variant, "source", src)
	}

	game, err := registry.Create(variant)
	if err != nil {
		logger.Fatal("cannot create game", "error", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	result, err := tui.RunGame(game, cfg, tui.GameOptions{
		Store:      store,
		RecordPath: flagRecord,
	})
	if err != nil {
		logger.Error("game failed", "error", err)
		return
	}

	if flagRecord != "" {
		if result.ReplayErr != nil {
			logger.Error("replay not saved", "path", flagRecord, "error", result.ReplayErr)
		} else {
			logger.Info("replay saved", "path", flagRecord, "score", result.Score)
		}
	}

	if result.BackToMenu {
		if err := tui.RunSession(store, cfg); err != nil {
			logger.Error("menu failed", "error", err)
		}
	}
}
