package sim

import "errors"

var (
	// ErrAlreadyInitialized is returned by Initialize when called twice without Shutdown.
	ErrAlreadyInitialized = errors.New("simulation already initialized")
	// ErrNotInitialized is returned when the simulation is used before Initialize.
	ErrNotInitialized = errors.New("simulation not initialized")
	// ErrInvalidObject is returned for object specs with non-positive dimensions or mass.
	ErrInvalidObject = errors.New("invalid object")
	// ErrForeignObject is returned for objects that do not belong to the simulation.
	ErrForeignObject = errors.New("object not owned by this simulation")
)
