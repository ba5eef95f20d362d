package flappy

import (
	"context"
	"time"

	"github.com/vovakirdan/flappish/internal/core"
)

// Renderer draws one frame from a snapshot. It must not hold on to the
// snapshot's slices past the call.
type Renderer interface {
	RenderFrame(snap Snapshot)
}

// InputSource yields the input for a given frame. ok is false once the source
// has no more frames to deliver.
type InputSource interface {
	NextFrame(frame uint64) (in core.InputFrame, ok bool)
}

// StepObserver is told about every frame a Driver applies. Recorders use it
// to capture a run without the game knowing about file formats.
type StepObserver interface {
	ObserveInput(frame uint64, in core.InputFrame)
	ObserveRestart(frame uint64, seed int64)
}

// Driver applies input frames to a session. It owns the pieces of play that
// sit above a single run: pausing, restarts and the frame counter. The TUI
// and the headless loop both go through a Driver, so the same input stream
// produces the same result in either.
type Driver struct {
	session *Session
	paused  bool
	frame   uint64

	// Reseed picks the seed for a restarted run. Nil restarts with the
	// current seed.
	Reseed func() int64
	// Observer, when set, sees every applied frame.
	Observer StepObserver
}

// NewDriver creates a driver for the session.
func NewDriver(s *Session) *Driver {
	return &Driver{session: s}
}

// Session returns the driven session.
func (d *Driver) Session() *Session {
	return d.session
}

// Frame returns the number of frames applied so far.
func (d *Driver) Frame() uint64 {
	return d.frame
}

// Paused reports whether simulation is suspended.
func (d *Driver) Paused() bool {
	return d.paused
}

// Apply consumes one frame of input.
//
// Restart starts a new run and skips the tick. Pause toggles suspension of an
// active run. Anything else is passed to Session.Step unless paused.
func (d *Driver) Apply(in core.InputFrame) TickResult {
	frame := d.frame
	d.frame++
	if d.Observer != nil {
		d.Observer.ObserveInput(frame, in)
	}

	s := d.session
	if in.Has(core.ActionRestart) {
		seed := s.Seed()
		if d.Reseed != nil {
			seed = d.Reseed()
		}
		s.RestartWithSeed(seed)
		d.paused = false
		if d.Observer != nil {
			d.Observer.ObserveRestart(frame, seed)
		}
		return TickResult{}
	}

	// A pause toggle consumes its frame in both directions.
	if in.Has(core.ActionPause) && s.State() == StateActive {
		d.paused = !d.paused
		return TickResult{}
	}
	if d.paused {
		return TickResult{}
	}
	return s.Step(in)
}

// Outcome says why Loop returned.
type Outcome int

const (
	OutcomeQuit      Outcome = iota // The player asked to quit
	OutcomeMenu                     // The player asked to go back to the menu
	OutcomeExhausted                // The input source ran dry
	OutcomeCanceled                 // The context was canceled
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "quit"
	case OutcomeMenu:
		return "menu"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Loop runs the driver at a fixed tick rate until the player quits or leaves
// for the menu, the input source is exhausted or ctx is done. Each iteration
// polls input, applies it and renders one frame. A tickRate of zero or less
// runs as fast as possible, which is what replays and tests want.
//
// r may be nil.
func Loop(ctx context.Context, d *Driver, src InputSource, r Renderer, tickRate int) Outcome {
	var tick <-chan time.Time
	if tickRate > 0 {
		t := time.NewTicker(time.Second / time.Duration(tickRate))
		defer t.Stop()
		tick = t.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return OutcomeCanceled
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return OutcomeCanceled
		}

		in, ok := src.NextFrame(d.Frame())
		if !ok {
			return OutcomeExhausted
		}
		if in.Has(core.ActionQuit) {
			return OutcomeQuit
		}
		if in.Has(core.ActionBack) {
			return OutcomeMenu
		}

		d.Apply(in)
		if r != nil {
			r.RenderFrame(d.Session().Snapshot())
		}
	}
}

// ScriptedInput is an InputSource backed by a fixed list of frames.
// Frames past the end of the script are reported as exhausted.
type ScriptedInput []core.InputFrame

// NextFrame implements InputSource.
func (s ScriptedInput) NextFrame(frame uint64) (core.InputFrame, bool) {
	if frame >= uint64(len(s)) {
		return core.InputFrame{}, false
	}
	return s[frame], true
}
