package sim

import "math"

// ContactPolicy parameterizes the contact constraints created for colliding pairs.
type ContactPolicy struct {
	// MaxContacts bounds the contact points generated per geometry pair.
	MaxContacts int
	// Mu is the friction coefficient; math.Inf(1) means no sliding.
	Mu float64
	// Bounce is the restitution coefficient.
	Bounce float64
	// BounceVel is the approach speed below which restitution is suppressed.
	BounceVel float64
	// GroundOnly restricts constraints to pairs involving the ground plane.
	GroundOnly bool
	// Approx1 bounds friction by Mu times the normal impulse.
	Approx1 bool
	// SoftCFM, when positive, replaces the world CFM on contact normal rows
	// so resting bodies sink slightly into each other.
	SoftCFM float64
}

// View is the initial viewpoint handed to the run loop.
type View struct {
	XYZ           [3]float32
	HPR           [3]float32
	SphereQuality int
}

// Config holds the simulation parameters.
type Config struct {
	// StepSize is the fixed time increment in seconds.
	StepSize float64
	// Gravity is the z component of gravity (z-up, negative pulls down).
	Gravity float64
	// CellSize is the hash space cell edge length.
	CellSize   float64
	ERP        float64
	CFM        float64
	Iterations int
	Contact    ContactPolicy
	View       View
}

// DefaultContactPolicy returns the reference contact parameters: up to 10
// points per pair, no sliding, restitution 0.2 at any approach speed.
func DefaultContactPolicy() ContactPolicy {
	return ContactPolicy{
		MaxContacts: 10,
		Mu:          math.Inf(1),
		Bounce:      0.2,
		BounceVel:   0,
	}
}

// DefaultConfig returns a 0.01 s step under standard gravity.
func DefaultConfig() Config {
	return Config{
		StepSize:   0.01,
		Gravity:    -9.81,
		CellSize:   1,
		ERP:        0.2,
		CFM:        1e-5,
		Iterations: 20,
		Contact:    DefaultContactPolicy(),
		View: View{
			XYZ:           [3]float32{0, 2, 0.8},
			HPR:           [3]float32{-90, 0, 0},
			SphereQuality: 3,
		},
	}
}
