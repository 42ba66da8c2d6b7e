package frame

import (
	"context"
)

// Action is what a run loop does with a key press.
type Action int

const (
	ActionCommand Action = iota
	ActionTogglePause
	ActionSingleStep
	ActionExit
)

// Classify maps a key press to an Action. Ctrl+P toggles pause, Ctrl+O steps
// once while paused and Ctrl+X exits; everything else is a command.
func Classify(code int, ctrl bool) Action {
	if !ctrl {
		return ActionCommand
	}
	switch code {
	case 'p', 'P':
		return ActionTogglePause
	case 'o', 'O':
		return ActionSingleStep
	case 'x', 'X':
		return ActionExit
	}
	return ActionCommand
}

// State is the pause and exit state shared by run loops.
type State struct {
	Paused bool
	Exit   bool
	Frames uint64

	singleStep bool
}

// NewState returns the initial loop state for opts.
func NewState(opts Options) *State {
	return &State{Paused: opts.Pause}
}

// Key handles a key press, forwarding commands to d.
func (s *State) Key(d Driver, code int, ctrl bool) {
	switch Classify(code, ctrl) {
	case ActionTogglePause:
		s.Paused = !s.Paused
	case ActionSingleStep:
		if s.Paused {
			s.singleStep = true
		}
	case ActionExit:
		s.Exit = true
	default:
		d.OnCommand(code)
	}
}

// Frame runs the step phase of one frame.
func (s *State) Frame(d Driver) error {
	paused := s.Paused && !s.singleStep
	s.singleStep = false
	s.Frames++
	return d.OnStep(paused)
}

// RunHeadless drives d without a window: OnStart with a discarding viewpoint,
// then up to steps frames. It stops on the first OnStep error or when ctx is
// done, and returns the number of frames run.
func RunHeadless(ctx context.Context, d Driver, steps int, opts Options) (int, error) {
	d.OnStart(&Camera{})
	st := NewState(opts)
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := st.Frame(d); err != nil {
			return i, err
		}
	}
	return steps, nil
}
