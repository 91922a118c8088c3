package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - run left (held)
	ActionRight          // D, Right arrow - run right (held)
	ActionJump           // Space, W, Up - jump (held, rising edge triggers)
	ActionPause          // P - pause/unpause game
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart the current level
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionAnswer1        // 1 - first quiz option
	ActionAnswer2        // 2 - second quiz option
	ActionAnswer3        // 3 - third quiz option
	ActionAnswer4        // 4 - fourth quiz option
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionAnswer1, ActionAnswer2, ActionAnswer3, ActionAnswer4:
		return "Answer" + string(rune('1'+a-ActionAnswer1))
	default:
		return "Unknown"
	}
}

// AnswerIndex returns the zero-based quiz option for an answer action.
func (a Action) AnswerIndex() (int, bool) {
	if a < ActionAnswer1 || a > ActionAnswer4 {
		return 0, false
	}
	return int(a - ActionAnswer1), true
}

// InputFrame represents the input state for a single simulation tick.
// Actions holds everything that is pressed or held during this frame;
// Axis carries an optional analog horizontal value in [-1, 1].
type InputFrame struct {
	Actions map[Action]bool
	Axis    float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
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

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Axis = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Axis = f.Axis
	return clone
}
