package replay

import (
	"time"

	"github.com/vovakirdan/flappish/internal/core"
	"github.com/vovakirdan/flappish/internal/games/flappy"
)

// Recorder captures a session's input as it is played.
// It implements flappy.StepObserver.
type Recorder struct {
	rep Replay
}

// NewRecorder starts recording a session that has not advanced yet.
func NewRecorder(variant string, s *flappy.Session) *Recorder {
	return &Recorder{rep: Replay{
		Version:   Version,
		CreatedAt: time.Now().UTC(),
		Variant:   variant,
		Seed:      s.Seed(),
		TickRate:  s.TickRate(),
		Config:    s.Config(),
	}}
}

// ObserveInput records a frame. Empty frames only advance the frame count.
func (r *Recorder) ObserveInput(frame uint64, in core.InputFrame) {
	r.rep.Frames = frame + 1
	if in.Empty() {
		return
	}
	r.rep.Inputs = append(r.rep.Inputs, TickInput{Frame: frame, Actions: in.List()})
}

// ObserveRestart records the seed chosen for a new run.
func (r *Recorder) ObserveRestart(frame uint64, seed int64) {
	r.rep.Restarts = append(r.rep.Restarts, seed)
}

// Finish stamps the session's current result and returns the replay.
func (r *Recorder) Finish(s *flappy.Session) *Replay {
	rep := r.rep
	rep.Score = s.Score()
	rep.Ticks = s.Tick()
	rep.Inputs = append([]TickInput(nil), r.rep.Inputs...)
	rep.Restarts = append([]int64(nil), r.rep.Restarts...)
	return &rep
}
