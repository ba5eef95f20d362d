package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappish/internal/platform/tui"
	"github.com/vovakirdan/flappish/internal/registry"
	"github.com/vovakirdan/flappish/internal/storage"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores for a variant",
	Long: `Display the top high scores for the specified variant.

Without a variant and with --interactive, opens the scoreboard browser.

Examples:
  flappish scores flappish
  flappish scores kintilberd --limit 20
  flappish scores --interactive
  flappish scores flappish --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in the scoreboard view")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the variant")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive || len(args) == 0 {
		cfg := terminalConfig()
		if _, err := tui.RunScoreboard(store, cfg); err != nil {
			logger.Error("scoreboard failed", "error", err)
		}
		return
	}

	variant := args[0]
	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'flappish list' to see available variants.")
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearScores(variant); err != nil {
			logger.Error("cannot clear scores", "variant", variant, "error", err)
			return
		}
		logger.Info("scores cleared", "variant", variant)
		return
	}

	game, err := registry.Create(variant)
	if err != nil {
		logger.Fatal("cannot create game", "error", err)
	}

	scores, err := store.TopScores(variant, flagScoresLimit)
	if err != nil {
		logger.Error("cannot retrieve scores", "error", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'flappish play %s' to set the first high score!\n", variant)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Ticks", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-8d  %s\n", i+1, entry.Score, entry.Ticks, dateStr)
	}

	stats, err := store.Stats(variant)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Best: %d   Games: %d   Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
