package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// JointType identifies a joint kind.
type JointType int

const (
	JointTypeNone JointType = iota
	JointTypeBall
	JointTypeContact
	JointTypeFixed
)

func (t JointType) String() string {
	switch t {
	case JointTypeBall:
		return "ball"
	case JointTypeContact:
		return "contact"
	case JointTypeFixed:
		return "fixed"
	}
	return "none"
}

// Joint constrains the relative motion of up to two bodies. A nil body stands
// for the static environment.
type Joint interface {
	Type() JointType
	Body(i int) *Body
	Attach(b1, b2 *Body)
	Destroy()

	base() *jointBase
	appendRows(rows []row, info *stepInfo) []row
}

type jointBase struct {
	world  *World
	self   Joint
	b1, b2 *Body
	dead   bool
}

func (j *jointBase) init(w *World, g *JointGroup, self Joint) {
	j.world = w
	j.self = self
	w.joints = append(w.joints, self)
	if g != nil {
		g.joints = append(g.joints, self)
	}
}

func (j *jointBase) base() *jointBase {
	return j
}

// Body returns the first (i == 0) or second attached body.
func (j *jointBase) Body(i int) *Body {
	if i == 0 {
		return j.b1
	}
	return j.b2
}

// Attach connects the joint to b1 and b2, detaching it from previous bodies.
func (j *jointBase) Attach(b1, b2 *Body) {
	if j.dead {
		return
	}
	if j.b1 != nil {
		j.b1.detachJoint(j.self)
	}
	if j.b2 != nil && j.b2 != j.b1 {
		j.b2.detachJoint(j.self)
	}
	j.b1, j.b2 = b1, b2
	if b1 != nil {
		b1.joints = append(b1.joints, j.self)
	}
	if b2 != nil && b2 != b1 {
		b2.joints = append(b2.joints, j.self)
	}
}

// Destroy detaches the joint and removes it from its world.
func (j *jointBase) Destroy() {
	if j.dead {
		return
	}
	j.Attach(nil, nil)
	j.dead = true
	if j.world != nil {
		j.world.dirty = true
	}
}

// JointGroup owns a set of joints so they can be destroyed together. Empty
// keeps the backing storage for reuse.
type JointGroup struct {
	joints []Joint
}

// NewJointGroup returns an empty group with room for capacity joints.
func NewJointGroup(capacity int) *JointGroup {
	return &JointGroup{joints: make([]Joint, 0, max(capacity, 0))}
}

// Len returns the number of live joints in the group.
func (g *JointGroup) Len() int {
	return len(g.joints)
}

// Each calls fn for every joint in creation order.
func (g *JointGroup) Each(fn func(Joint)) {
	for _, j := range g.joints {
		fn(j)
	}
}

// Empty destroys every joint in the group.
func (g *JointGroup) Empty() {
	for _, j := range g.joints {
		j.Destroy()
	}
	clear(g.joints)
	g.joints = g.joints[:0]
}

// Destroy empties the group and releases its storage.
func (g *JointGroup) Destroy() {
	g.Empty()
	g.joints = nil
}

// row is one scalar constraint J·v = rhs with impulse bounds [lo, hi].
type row struct {
	b1, b2                 *Body
	lin1, ang1, lin2, ang2 mgl64.Vec3

	rhs    float64
	cfm    float64
	lo, hi float64
	findex int // row whose impulse scales the bounds of this one, or -1
	mu     float64

	lambda  float64
	invDiag float64
	m1l     mgl64.Vec3
	m1a     mgl64.Vec3
	m2l     mgl64.Vec3
	m2a     mgl64.Vec3
}

// newRow builds a row restricting the relative velocity of the points
// b1+r1 and b2+r2 along dir.
func newRow(b1, b2 *Body, dir, r1, r2 mgl64.Vec3) row {
	return row{
		b1:     b1,
		b2:     b2,
		lin1:   dir,
		ang1:   r1.Cross(dir),
		lin2:   dir.Mul(-1),
		ang2:   r2.Cross(dir).Mul(-1),
		lo:     math.Inf(-1),
		hi:     math.Inf(1),
		findex: -1,
	}
}

// angularRow restricts the relative angular velocity of b1 and b2 about axis.
func angularRow(b1, b2 *Body, axis mgl64.Vec3) row {
	return row{
		b1:     b1,
		b2:     b2,
		ang1:   axis,
		ang2:   axis.Mul(-1),
		lo:     math.Inf(-1),
		hi:     math.Inf(1),
		findex: -1,
	}
}

// velocity returns J·v for the current body velocities.
func (r *row) velocity() float64 {
	var v float64
	if r.b1 != nil {
		v += r.lin1.Dot(r.b1.LinearVelocity) + r.ang1.Dot(r.b1.AngularVelocity)
	}
	if r.b2 != nil {
		v += r.lin2.Dot(r.b2.LinearVelocity) + r.ang2.Dot(r.b2.AngularVelocity)
	}
	return v
}

func (r *row) prepare(dt float64) {
	var diag float64
	if r.b1 != nil {
		r.m1l = r.lin1.Mul(r.b1.invMass)
		r.m1a = r.b1.invIWorld.Mul3x1(r.ang1)
		diag += r.lin1.Dot(r.m1l) + r.ang1.Dot(r.m1a)
	}
	if r.b2 != nil {
		r.m2l = r.lin2.Mul(r.b2.invMass)
		r.m2a = r.b2.invIWorld.Mul3x1(r.ang2)
		diag += r.lin2.Dot(r.m2l) + r.ang2.Dot(r.m2a)
	}
	r.cfm /= dt
	diag += r.cfm
	if diag > 0 {
		r.invDiag = 1 / diag
	}
}

func (r *row) apply(delta float64) {
	if r.b1 != nil {
		r.b1.LinearVelocity = r.b1.LinearVelocity.Add(r.m1l.Mul(delta))
		r.b1.AngularVelocity = r.b1.AngularVelocity.Add(r.m1a.Mul(delta))
	}
	if r.b2 != nil {
		r.b2.LinearVelocity = r.b2.LinearVelocity.Add(r.m2l.Mul(delta))
		r.b2.AngularVelocity = r.b2.AngularVelocity.Add(r.m2a.Mul(delta))
	}
}

func bodyPose(b *Body) (mgl64.Vec3, mgl64.Quat) {
	if b == nil {
		return mgl64.Vec3{}, mgl64.QuatIdent()
	}
	return b.Position, b.Rotation
}
