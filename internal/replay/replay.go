// Package replay records the input of a play session and re-simulates it.
//
// A replay stores the seed, tick rate and full configuration of the recorded
// run plus every non-empty input frame. Because the game core is
// deterministic, feeding those frames back through flappy.Loop reproduces the
// recorded result exactly. Files are MessagePack encoded.
package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/flappish/internal/config"
	"github.com/vovakirdan/flappish/internal/core"
	"github.com/vovakirdan/flappish/internal/games/flappy"
)

// Version is the current replay file format.
const Version = 1

var (
	// ErrVersion is returned when a file was written by an unknown format version.
	ErrVersion = errors.New("replay: unsupported version")
	// ErrMismatch is returned when re-simulation does not reproduce the recording.
	ErrMismatch = errors.New("replay: result mismatch")
)

// TickInput is the input of a single frame.
type TickInput struct {
	Frame   uint64        `msgpack:"f"`
	Actions []core.Action `msgpack:"a"`
}

// Replay is a recorded session.
type Replay struct {
	Version   int                 `msgpack:"version"`
	CreatedAt time.Time           `msgpack:"created_at"`
	Variant   string              `msgpack:"variant"`
	Seed      int64               `msgpack:"seed"`
	TickRate  int                 `msgpack:"tick_rate"`
	Config    config.FlappyConfig `msgpack:"config"`

	Inputs   []TickInput `msgpack:"inputs"`
	Restarts []int64     `msgpack:"restarts"` // Seeds chosen at each restart, in order

	// Result of the recording, checked by Verify.
	Frames uint64 `msgpack:"frames"`
	Score  int    `msgpack:"score"`
	Ticks  uint64 `msgpack:"ticks"`
}

// Encode writes the replay to w.
func (r *Replay) Encode(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Decode reads a replay from rd and checks its version.
func Decode(rd io.Reader) (*Replay, error) {
	var r Replay
	if err := msgpack.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if r.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	return &r, nil
}

// Save writes the replay to path, creating parent directories.
func Save(path string, r *Replay) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("replay: failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: failed to create %s: %w", path, err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a replay file.
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Input feeds recorded frames back to a loop.
type Input struct {
	frames  uint64
	byFrame map[uint64]core.InputFrame
}

// NewInput creates an input source for the replay.
func NewInput(r *Replay) *Input {
	in := &Input{
		frames:  r.Frames,
		byFrame: make(map[uint64]core.InputFrame, len(r.Inputs)),
	}
	for _, ti := range r.Inputs {
		in.byFrame[ti.Frame] = core.FrameOf(ti.Actions...)
	}
	return in
}

// NextFrame implements flappy.InputSource.
func (in *Input) NextFrame(frame uint64) (core.InputFrame, bool) {
	if frame >= in.frames {
		return core.InputFrame{}, false
	}
	if f, ok := in.byFrame[frame]; ok {
		return f, true
	}
	return core.NewInputFrame(), true
}

// Play re-simulates the replay and returns the final driver. A tickRate of
// zero or less runs unpaced; r may be nil.
func Play(ctx context.Context, rep *Replay, r flappy.Renderer, tickRate int) (*flappy.Driver, flappy.Outcome) {
	d := flappy.NewDriver(flappy.NewSession(rep.Config, rep.TickRate, rep.Seed))

	seeds := rep.Restarts
	d.Reseed = func() int64 {
		if len(seeds) == 0 {
			return rep.Seed
		}
		seed := seeds[0]
		seeds = seeds[1:]
		return seed
	}

	out := flappy.Loop(ctx, d, NewInput(rep), r, tickRate)
	return d, out
}

// Result is the outcome of a verification run.
type Result struct {
	Frames uint64
	Score  int
	Ticks  uint64
	State  flappy.State
}

// Verify re-simulates the replay and checks that it reproduces the recorded
// score and tick count. A mismatch wraps ErrMismatch.
func Verify(ctx context.Context, rep *Replay) (Result, error) {
	d, out := Play(ctx, rep, nil, 0)
	if out == flappy.OutcomeCanceled {
		return Result{}, ctx.Err()
	}

	s := d.Session()
	res := Result{
		Frames: d.Frame(),
		Score:  s.Score(),
		Ticks:  s.Tick(),
		State:  s.State(),
	}
	if res.Score != rep.Score || res.Ticks != rep.Ticks {
		return res, fmt.Errorf("%w: got score %d after %d ticks, recorded score %d after %d ticks",
			ErrMismatch, res.Score, res.Ticks, rep.Score, rep.Ticks)
	}
	return res, nil
}
