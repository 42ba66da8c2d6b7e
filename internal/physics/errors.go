package physics

import "errors"

var (
	// ErrDiverged is returned by World.Step when a body's state stops being finite.
	ErrDiverged = errors.New("physics: integration diverged")
	// ErrInvalidStep is returned for non-positive or non-finite step sizes.
	ErrInvalidStep = errors.New("physics: invalid step size")
	// ErrWorldDestroyed is returned when stepping a destroyed world.
	ErrWorldDestroyed = errors.New("physics: world destroyed")
)
