package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a rigid body owned by a World. Bodies are created with NewBody and
// released with Destroy (or all at once by World.Destroy).
type Body struct {
	world *World

	mass    Mass
	invMass float64
	invI    mgl64.Mat3 // body frame

	invIWorld mgl64.Mat3

	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3

	force  mgl64.Vec3
	torque mgl64.Vec3

	// GravityMode disables gravity for this body when false.
	GravityMode bool

	joints []Joint
	Data   any
}

// NewBody creates a body at the origin with unit sphere-like mass.
func NewBody(w *World) *Body {
	b := &Body{
		world:       w,
		Rotation:    mgl64.QuatIdent(),
		GravityMode: true,
	}
	b.SetMass(Mass{Mass: 1, I: mgl64.Ident3()})
	w.bodies = append(w.bodies, b)
	return b
}

// World returns the world the body belongs to, or nil once destroyed.
func (b *Body) World() *World {
	return b.world
}

// SetMass sets the mass parameters. Invalid masses are ignored.
func (b *Body) SetMass(m Mass) {
	if !m.Valid() {
		return
	}
	b.mass = m
	b.invMass = 1 / m.Mass
	b.invI = m.I.Inv()
}

// Mass returns the body's mass parameters.
func (b *Body) Mass() Mass {
	return b.mass
}

// SetPosition places the body's center of mass at p.
func (b *Body) SetPosition(p mgl64.Vec3) {
	b.Position = p
}

// SetRotation sets the orientation; q is normalized.
func (b *Body) SetRotation(q mgl64.Quat) {
	b.Rotation = q.Normalize()
}

// SetLinearVel sets the linear velocity.
func (b *Body) SetLinearVel(v mgl64.Vec3) {
	b.LinearVelocity = v
}

// SetAngularVel sets the angular velocity.
func (b *Body) SetAngularVel(w mgl64.Vec3) {
	b.AngularVelocity = w
}

// AddForce accumulates a force at the center of mass for the next step.
func (b *Body) AddForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

// AddTorque accumulates a torque for the next step.
func (b *Body) AddTorque(t mgl64.Vec3) {
	b.torque = b.torque.Add(t)
}

// Joints returns the joints currently attached to the body.
func (b *Body) Joints() []Joint {
	return b.joints
}

// RotationMatrix returns the body's orientation as a 3x3 matrix.
func (b *Body) RotationMatrix() mgl64.Mat3 {
	return b.Rotation.Mat4().Mat3()
}

// PointVelocity returns the velocity of the world point p attached to the body.
func (b *Body) PointVelocity(p mgl64.Vec3) mgl64.Vec3 {
	return b.LinearVelocity.Add(b.AngularVelocity.Cross(p.Sub(b.Position)))
}

// Destroy removes the body from its world. Attached joints are detached from
// it but stay alive, like ODE's limbo joints.
func (b *Body) Destroy() {
	if b.world == nil {
		return
	}
	for len(b.joints) > 0 {
		j := b.joints[len(b.joints)-1]
		b1, b2 := j.base().b1, j.base().b2
		if b1 == b {
			b1 = nil
		}
		if b2 == b {
			b2 = nil
		}
		j.Attach(b1, b2)
	}
	b.world.removeBody(b)
	b.world = nil
}

// invInertiaWorld returns R * I^-1 * R^T.
func (b *Body) invInertiaWorld() mgl64.Mat3 {
	r := b.RotationMatrix()
	return r.Mul3(b.invI).Mul3(r.Transpose())
}

func (b *Body) finite() bool {
	for _, v := range []mgl64.Vec3{b.Position, b.LinearVelocity, b.AngularVelocity, b.Rotation.V} {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return !math.IsNaN(b.Rotation.W) && !math.IsInf(b.Rotation.W, 0)
}

func (b *Body) detachJoint(j Joint) {
	for i, k := range b.joints {
		if k == j {
			b.joints = append(b.joints[:i], b.joints[i+1:]...)
			return
		}
	}
}

// AreConnected reports whether b1 and b2 share any joint.
func AreConnected(b1, b2 *Body) bool {
	return AreConnectedExcluding(b1, b2, JointTypeNone)
}

// AreConnectedExcluding reports whether b1 and b2 share a joint whose type is
// not excluded.
func AreConnectedExcluding(b1, b2 *Body, excluded JointType) bool {
	if b1 == nil || b2 == nil {
		return false
	}
	for _, j := range b1.joints {
		if j.Type() == excluded {
			continue
		}
		jb := j.base()
		if (jb.b1 == b1 && jb.b2 == b2) || (jb.b1 == b2 && jb.b2 == b1) {
			return true
		}
	}
	return false
}
