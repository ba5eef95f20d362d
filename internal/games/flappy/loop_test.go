package flappy

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/flappish/internal/core"
)

type countingRenderer struct {
	frames int
	last   Snapshot
}

func (r *countingRenderer) RenderFrame(snap Snapshot) {
	r.frames++
	r.last = snap
}

type recordingObserver struct {
	inputs   []uint64
	restarts []int64
}

func (o *recordingObserver) ObserveInput(frame uint64, in core.InputFrame) {
	o.inputs = append(o.inputs, frame)
}

func (o *recordingObserver) ObserveRestart(frame uint64, seed int64) {
	o.restarts = append(o.restarts, seed)
}

func script(n int, at map[int]core.Action) ScriptedInput {
	frames := make(ScriptedInput, n)
	for i := range frames {
		frames[i] = core.NewInputFrame()
		if a, ok := at[i]; ok {
			frames[i].Set(a)
		}
	}
	return frames
}

func TestLoopExhaustsInput(t *testing.T) {
	d := NewDriver(NewSession(testConfig(), testTickRate, 1))
	r := &countingRenderer{}

	out := Loop(context.Background(), d, script(50, nil), r, 0)
	if out != OutcomeExhausted {
		t.Errorf("outcome = %v, want exhausted", out)
	}
	if d.Frame() != 50 || r.frames != 50 {
		t.Errorf("frames applied=%d rendered=%d, want 50", d.Frame(), r.frames)
	}
	if r.last.Tick != 50 {
		t.Errorf("last rendered tick = %d, want 50", r.last.Tick)
	}
}

func TestLoopQuitAndMenu(t *testing.T) {
	tests := []struct {
		action core.Action
		want   Outcome
	}{
		{core.ActionQuit, OutcomeQuit},
		{core.ActionBack, OutcomeMenu},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.want.String(), func(t *testing.T) {
			d := NewDriver(NewSession(testConfig(), testTickRate, 1))
			out := Loop(context.Background(), d, script(20, map[int]core.Action{10: tt.action}), nil, 0)
			if out != tt.want {
				t.Errorf("outcome = %v, want %v", out, tt.want)
			}
			if d.Frame() != 10 {
				t.Errorf("frames applied = %d, want 10", d.Frame())
			}
		})
	}
}

func TestLoopCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDriver(NewSession(testConfig(), testTickRate, 1))
	if out := Loop(ctx, d, script(10, nil), nil, 0); out != OutcomeCanceled {
		t.Errorf("outcome = %v, want canceled", out)
	}
	if d.Frame() != 0 {
		t.Errorf("frames applied = %d, want 0", d.Frame())
	}
}

func TestLoopPaced(t *testing.T) {
	d := NewDriver(NewSession(testConfig(), testTickRate, 1))

	start := time.Now()
	out := Loop(context.Background(), d, script(5, nil), nil, 100)
	if out != OutcomeExhausted {
		t.Fatalf("outcome = %v, want exhausted", out)
	}
	// Five frames at 100 Hz need at least five ticker intervals.
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("paced loop finished in %v", elapsed)
	}
}

func TestDriverPause(t *testing.T) {
	d := NewDriver(NewSession(testConfig(), testTickRate, 1))

	d.Apply(core.FrameOf(core.ActionPause))
	if !d.Paused() {
		t.Fatal("expected paused")
	}
	tick := d.Session().Tick()
	for i := 0; i < 5; i++ {
		d.Apply(noInput())
	}
	if d.Session().Tick() != tick {
		t.Error("session advanced while paused")
	}

	d.Apply(core.FrameOf(core.ActionPause))
	if d.Paused() {
		t.Fatal("expected unpaused")
	}
	if d.Session().Tick() != tick {
		t.Error("resuming frame advanced the session")
	}
	d.Apply(noInput())
	if d.Session().Tick() != tick+1 {
		t.Error("session did not resume")
	}
}

func TestDriverRestart(t *testing.T) {
	s := NewSession(testConfig(), testTickRate, 1)
	d := NewDriver(s)
	obs := &recordingObserver{}
	d.Observer = obs
	d.Reseed = func() int64 { return 77 }

	for i := 0; i < 30; i++ {
		d.Apply(noInput())
	}
	res := d.Apply(core.FrameOf(core.ActionRestart))
	if res.Collided || res.Scored != 0 {
		t.Errorf("restart frame returned %+v", res)
	}

	if !reflect.DeepEqual(s.Snapshot(), NewSession(testConfig(), testTickRate, 77).Snapshot()) {
		t.Error("restart should equal a fresh session with the new seed")
	}
	if len(obs.inputs) != 31 {
		t.Errorf("observed %d frames, want 31", len(obs.inputs))
	}
	if !reflect.DeepEqual(obs.restarts, []int64{77}) {
		t.Errorf("observed restarts %v, want [77]", obs.restarts)
	}
	if d.Frame() != 31 {
		t.Errorf("frame = %d, want 31", d.Frame())
	}
}

func TestDriverRestartKeepsSeed(t *testing.T) {
	s := NewSession(testConfig(), testTickRate, 8)
	d := NewDriver(s)
	d.Apply(noInput())
	d.Apply(core.FrameOf(core.ActionRestart))
	if s.Seed() != 8 || s.Tick() != 0 {
		t.Errorf("seed=%d tick=%d after restart, want 8 and 0", s.Seed(), s.Tick())
	}
}

func TestOutcomeString(t *testing.T) {
	for o, want := range map[Outcome]string{
		OutcomeQuit: "quit", OutcomeMenu: "menu", OutcomeExhausted: "exhausted", OutcomeCanceled: "canceled",
	} {
		if o.String() != want {
			t.Errorf("%d.String() = %q, want %q", o, o.String(), want)
		}
	}
}
