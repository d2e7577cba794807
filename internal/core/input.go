package core

// Action represents a semantic game action, abstracted from physical key presses.
// Hosts translate keys (or joystick axes) into actions; the simulation only sees actions.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // W, Up arrow
	ActionDown                // S, Down arrow
	ActionLeft                // A, Left arrow
	ActionRight               // D, Right arrow
	ActionUseRepellent        // Space
	ActionUsePotion           // E, Right Shift
	ActionPause               // P, Escape
	ActionSave                // Ctrl+S
	ActionRestart             // R after game over
	ActionQuit                // Q, Ctrl+C
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
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUseRepellent:
		return "UseRepellent"
	case ActionUsePotion:
		return "UsePotion"
	case ActionPause:
		return "Pause"
	case ActionSave:
		return "Save"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input for a single simulation tick.
// Move is the player's movement intent; Actions are discrete events.
type InputFrame struct {
	Actions map[Action]bool
	Move    Vec2
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

// Clear resets all actions and the move intent for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Move = Vec2{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Move = f.Move
	return clone
}

// MoveIntent returns the movement intent for this frame.
// An explicit Move vector wins; otherwise it is derived from directional actions.
// The result is not normalized, the simulation normalizes before scaling by speed.
func (f InputFrame) MoveIntent() Vec2 {
	if !f.Move.IsZero() {
		return f.Move
	}
	var v Vec2
	if f.Has(ActionLeft) {
		v.X--
	}
	if f.Has(ActionRight) {
		v.X++
	}
	if f.Has(ActionUp) {
		v.Y--
	}
	if f.Has(ActionDown) {
		v.Y++
	}
	return v
}
