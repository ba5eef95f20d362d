package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappish/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the variant picker",
	Long: `Start flappish at the start screen.

Use arrow keys or j/k to navigate, Enter to select a variant.
After a run ends, press B to return to the start screen.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - High scores
  Q            - Quit

Examples:
  flappish menu
  flappish menu --fps 60
  flappish menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, terminalConfig()); err != nil {
		logger.Error("menu failed", "error", err)
	}
}
