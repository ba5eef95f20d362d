package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappish/internal/games/flappy"
	"github.com/vovakirdan/flappish/internal/platform/tui"
	"github.com/vovakirdan/flappish/internal/replay"
)

var (
	flagWatch bool
	flagSpeed float64
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Verify or watch a recorded session",
	Long: `Re-simulate a replay recorded with 'flappish play --record'.

By default the replay runs headless as fast as possible and the final
score and tick count are checked against the recording. With --watch the
session is drawn in the terminal at the recorded tick rate.

Examples:
  flappish replay run.replay
  flappish replay run.replay --watch
  flappish replay run.replay --watch --speed 2`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Draw the replay in the terminal")
	replayCmd.Flags().Float64Var(&flagSpeed, "speed", 1, "Playback speed multiplier for --watch")
}

func runReplay(cmd *cobra.Command, args []string) {
	rep, err := replay.Load(args[0])
	if err != nil {
		logger.Fatal("cannot load replay", "path", args[0], "error", err)
	}
	logger.Info("replay loaded",
		"variant", rep.Variant,
		"seed", rep.Seed,
		"frames", rep.Frames,
		"restarts", len(rep.Restarts),
		"recorded", rep.CreatedAt.Format("2006-01-02 15:04"),
	)

	if flagWatch {
		watchReplay(cmd.Context(), rep)
		return
	}

	res, err := replay.Verify(cmd.Context(), rep)
	if err != nil {
		logger.Error("replay verification failed", "error", err)
		os.Exit(1)
	}
	logger.Info("replay verified", "score", res.Score, "ticks", res.Ticks, "state", res.State)
}

func watchReplay(ctx context.Context, rep *replay.Replay) {
	cfg := terminalConfig()
	rate := rep.TickRate
	if flagSpeed > 0 {
		rate = max(1, int(float64(rate)*flagSpeed))
	}

	// Hide cursor and clear the terminal for the duration of playback.
	fmt.Print("\x1b[?25l\x1b[2J")
	defer fmt.Print("\x1b[?25h\n")

	renderer := &scoreLogger{
		next:   tui.NewScreenRenderer(os.Stdout, cfg.ScreenW, cfg.ScreenH),
		logger: logger,
	}
	d, outcome := replay.Play(ctx, rep, renderer, rate)
	s := d.Session()
	logger.Info("replay finished", "outcome", outcome, "score", s.Score(), "ticks", s.Tick())
}

// scoreLogger forwards frames and logs score changes and game overs at debug level.
type scoreLogger struct {
	next   flappy.Renderer
	logger *log.Logger
	score  int
	state  flappy.State
}

func (r *scoreLogger) RenderFrame(snap flappy.Snapshot) {
	if r.next != nil {
		r.next.RenderFrame(snap)
	}
	if snap.Score != r.score {
		r.logger.Debug("scored", "tick", snap.Tick, "score", snap.Score)
	}
	if snap.State != r.state && snap.State == flappy.StateGameOver {
		r.logger.Debug("game over", "tick", snap.Tick, "score", snap.Score)
	}
	r.score = snap.Score
	r.state = snap.State
}
