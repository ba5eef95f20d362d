// flappish is a side-scrolling flappy-bird game for the terminal.
//
// Usage:
//
//	flappish list               - List available variants
//	flappish play <variant>     - Play a variant
//	flappish menu               - Start screen to pick a variant interactively
//	flappish serve              - Start SSH server for remote play
//	flappish scores <variant>   - Show high scores for a variant
//	flappish replay <file>      - Verify or watch a recorded session
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 120)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.flappish/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappish/internal/config"
	"github.com/vovakirdan/flappish/internal/core"
	"github.com/vovakirdan/flappish/internal/games/flappy"
	"github.com/vovakirdan/flappish/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "flappish",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappish",
	Short: "Flappish - a flappy bird for your terminal",
	Long: `Flappish is a side-scrolling arcade game: flap to stay airborne and
fly through the gaps between pipes. Every pipe pair you pass scores a point.

Available commands:
  list     - Show all available variants
  play     - Play a specific variant directly
  menu     - Interactive start screen
  serve    - Start SSH server for remote play
  scores   - View high scores
  replay   - Verify or watch a recorded session

Examples:
  flappish list
  flappish play flappish
  flappish play kintilberd --record run.replay
  flappish menu
  flappish serve --ssh :2222
  flappish scores flappish
  flappish replay run.replay`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup applies the global flags before any subcommand runs.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	flappy.SetConfigPath(flagConfig)
	flappy.SetDifficultyPreset(flagDifficulty)
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		logger.Warn("unknown difficulty preset, using config", "difficulty", flagDifficulty)
	}
	return nil
}

// openStore opens the score database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
