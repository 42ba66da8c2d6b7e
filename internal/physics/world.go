package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Solver defaults.
const (
	DefaultERP        = 0.2
	DefaultCFM        = 1e-5
	DefaultIterations = 20
)

type stepInfo struct {
	dt               float64
	erp              float64
	cfm              float64
	maxCorrectingVel float64
	surfaceLayer     float64
}

// World holds bodies and joints and advances them with a fixed-step
// constrained integrator: external forces and gravity first, then projected
// Gauss-Seidel over every joint row, then positions and orientations.
type World struct {
	gravity mgl64.Vec3

	// ERP is the fraction of joint error corrected per step.
	ERP float64
	// CFM softens every constraint (force units).
	CFM float64
	// Iterations is the number of solver sweeps per step.
	Iterations int
	// MaxCorrectingVel caps the velocity used to remove contact penetration.
	MaxCorrectingVel float64
	// SurfaceLayer is the penetration depth tolerated without correction.
	SurfaceLayer float64

	bodies []*Body
	joints []Joint
	dirty  bool
	rows   []row

	time  float64
	steps uint64
	dead  bool
}

// NewWorld returns an empty world without gravity.
func NewWorld() *World {
	return &World{
		ERP:              DefaultERP,
		CFM:              DefaultCFM,
		Iterations:       DefaultIterations,
		MaxCorrectingVel: math.Inf(1),
	}
}

// SetGravity sets the gravity vector, e.g. (0, 0, -9.81) for a z-up world.
func (w *World) SetGravity(g mgl64.Vec3) {
	w.gravity = g
}

// Gravity returns the gravity vector.
func (w *World) Gravity() mgl64.Vec3 {
	return w.gravity
}

// Time returns the simulated time advanced by Step.
func (w *World) Time() float64 {
	return w.time
}

// Steps returns the number of completed steps.
func (w *World) Steps() uint64 {
	return w.steps
}

// Bodies returns the world's bodies in creation order. The slice must not be
// modified.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// NumJoints returns the number of live joints, group members included.
func (w *World) NumJoints() int {
	w.compactJoints()
	return len(w.joints)
}

// Destroy releases every joint and body. The world cannot be stepped
// afterwards.
func (w *World) Destroy() {
	if w.dead {
		return
	}
	for _, j := range w.joints {
		j.Destroy()
	}
	w.joints = nil
	for len(w.bodies) > 0 {
		w.bodies[len(w.bodies)-1].Destroy()
	}
	w.rows = nil
	w.dead = true
}

// Step advances the world by dt.
func (w *World) Step(dt float64) error {
	if w.dead {
		return ErrWorldDestroyed
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidStep, dt)
	}
	w.compactJoints()

	info := stepInfo{
		dt:               dt,
		erp:              w.ERP,
		cfm:              w.CFM,
		maxCorrectingVel: w.MaxCorrectingVel,
		surfaceLayer:     w.SurfaceLayer,
	}

	// Rows are built from start-of-step velocities so restitution sees the
	// approach speed before gravity is applied.
	for _, b := range w.bodies {
		b.invIWorld = b.invInertiaWorld()
	}
	w.rows = w.rows[:0]
	for _, j := range w.joints {
		w.rows = j.appendRows(w.rows, &info)
	}

	for _, b := range w.bodies {
		acc := b.force.Mul(b.invMass)
		if b.GravityMode {
			acc = acc.Add(w.gravity)
		}
		b.LinearVelocity = b.LinearVelocity.Add(acc.Mul(dt))
		b.AngularVelocity = b.AngularVelocity.Add(b.invIWorld.Mul3x1(b.torque).Mul(dt))
	}

	w.solve(dt)

	for _, b := range w.bodies {
		b.Position = b.Position.Add(b.LinearVelocity.Mul(dt))
		spin := mgl64.Quat{W: 0, V: b.AngularVelocity}.Mul(b.Rotation).Scale(0.5 * dt)
		b.Rotation = b.Rotation.Add(spin).Normalize()
		b.force = mgl64.Vec3{}
		b.torque = mgl64.Vec3{}
	}
	w.time += dt
	w.steps++

	for i, b := range w.bodies {
		if !b.finite() {
			return fmt.Errorf("%w: body %d at step %d", ErrDiverged, i, w.steps)
		}
	}
	return nil
}

func (w *World) solve(dt float64) {
	rows := w.rows
	for i := range rows {
		rows[i].prepare(dt)
	}
	for it := 0; it < w.Iterations; it++ {
		for i := range rows {
			r := &rows[i]
			if r.invDiag == 0 {
				continue
			}
			lo, hi := r.lo, r.hi
			if r.findex >= 0 {
				hi = r.mu * math.Abs(rows[r.findex].lambda)
				lo = -hi
			}
			delta := (r.rhs - r.velocity() - r.cfm*r.lambda) * r.invDiag
			next := mgl64.Clamp(r.lambda+delta, lo, hi)
			delta = next - r.lambda
			r.lambda = next
			r.apply(delta)
		}
	}
}

func (w *World) removeBody(b *Body) {
	for i, k := range w.bodies {
		if k == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

func (w *World) compactJoints() {
	if !w.dirty {
		return
	}
	live := w.joints[:0]
	for _, j := range w.joints {
		if !j.base().dead {
			live = append(live, j)
		}
	}
	clear(w.joints[len(live):])
	w.joints = live
	w.dirty = false
}
