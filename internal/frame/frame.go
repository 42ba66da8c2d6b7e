// Package frame is the boundary between a simulation and the run loop that
// drives it: the per-frame callback capability, the viewpoint hand-off and the
// drawstuff-style run-loop options shared by every viewer.
package frame

import "rigid-sim/internal/physics"

// Driver is called back by a run loop. OnStart runs once before the first
// frame; OnStep runs exactly once per frame, before anything is drawn;
// OnCommand receives key codes the run loop does not handle itself.
type Driver interface {
	OnStart(v Viewpoint)
	OnStep(paused bool) error
	OnCommand(code int)
}

// Viewpoint receives the initial camera pose and visual quality from OnStart.
// hpr is heading, pitch and roll in degrees.
type Viewpoint interface {
	SetViewpoint(xyz, hpr [3]float32)
	SetSphereQuality(n int)
}

// Scene exposes the geometry to draw after a step.
type Scene interface {
	EachGeom(fn func(g *physics.Geom))
}

// Camera is a Viewpoint that records what it is given.
type Camera struct {
	XYZ           [3]float32
	HPR           [3]float32
	SphereQuality int
}

// SetViewpoint implements Viewpoint.
func (c *Camera) SetViewpoint(xyz, hpr [3]float32) {
	c.XYZ = xyz
	c.HPR = hpr
}

// SetSphereQuality implements Viewpoint.
func (c *Camera) SetSphereQuality(n int) {
	c.SphereQuality = n
}
