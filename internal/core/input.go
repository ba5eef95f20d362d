package core

import "sort"

// Action represents a semantic input event, abstracted from physical key presses.
// The game core consumes these once per tick; it has no polling logic of its own.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - menu navigation
	ActionDown           // S, J, Down arrow - menu navigation
	ActionJump           // Space, W, Up - flap
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - exit to menu
	ActionRestart        // R key - start a new session after game over
	ActionQuit           // Q, Ctrl+C - terminate the program
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input events delivered during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// List returns the triggered actions in ascending order.
// Replays store this form so that encoding is stable.
func (f InputFrame) List() []Action {
	out := make([]Action, 0, len(f.Actions))
	for a, v := range f.Actions {
		if v {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
