package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Class identifies the shape of a geometry.
type Class int

const (
	SphereClass Class = iota
	BoxClass
	CapsuleClass
	PlaneClass
)

func (c Class) String() string {
	switch c {
	case SphereClass:
		return "sphere"
	case BoxClass:
		return "box"
	case CapsuleClass:
		return "capsule"
	case PlaneClass:
		return "plane"
	}
	return "unknown"
}

// AABB is an axis aligned bounding box.
type AABB struct {
	Min, Max mgl64.Vec3
}

// Overlaps reports whether the two boxes intersect (touching counts).
func (a AABB) Overlaps(b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Min[i] > b.Max[i] || b.Min[i] > a.Max[i] {
			return false
		}
	}
	return true
}

// Infinite reports whether any bound of the box is unbounded.
func (a AABB) Infinite() bool {
	for i := 0; i < 3; i++ {
		if math.IsInf(a.Min[i], 0) || math.IsInf(a.Max[i], 0) {
			return true
		}
	}
	return false
}

// Geom is a collision shape. A geom attached to a body follows the body's
// pose; a geom without a body is static and keeps its own pose.
type Geom struct {
	class Class

	radius  float64    // sphere, capsule
	length  float64    // capsule cylinder length along local z
	lengths mgl64.Vec3 // box side lengths
	normal  mgl64.Vec3 // plane
	offset  float64    // plane: normal·x = offset

	body     *Body
	position mgl64.Vec3
	rotation mgl64.Quat

	space *Space
	Data  any
}

func newGeom(space *Space, class Class) *Geom {
	g := &Geom{class: class, rotation: mgl64.QuatIdent()}
	if space != nil {
		space.Add(g)
	}
	return g
}

// NewSphere creates a sphere geometry and inserts it into space (which may be nil).
func NewSphere(space *Space, radius float64) *Geom {
	g := newGeom(space, SphereClass)
	g.radius = radius
	return g
}

// NewBox creates a box geometry with the given side lengths.
func NewBox(space *Space, lx, ly, lz float64) *Geom {
	g := newGeom(space, BoxClass)
	g.lengths = mgl64.Vec3{lx, ly, lz}
	return g
}

// NewCapsule creates a capsule aligned with the local z axis. length excludes
// the two hemispherical caps.
func NewCapsule(space *Space, radius, length float64) *Geom {
	g := newGeom(space, CapsuleClass)
	g.radius = radius
	g.length = length
	return g
}

// NewPlane creates the infinite plane a*x + b*y + c*z = d. The normal (a, b, c)
// is normalized; the plane is always static.
func NewPlane(space *Space, a, b, c, d float64) *Geom {
	g := newGeom(space, PlaneClass)
	n := mgl64.Vec3{a, b, c}
	l := n.Len()
	if l == 0 {
		n, l = mgl64.Vec3{0, 0, 1}, 1
	}
	g.normal = n.Mul(1 / l)
	g.offset = d / l
	return g
}

// Class returns the geometry's shape class.
func (g *Geom) Class() Class {
	return g.class
}

// Radius returns the radius of a sphere or capsule.
func (g *Geom) Radius() float64 {
	return g.radius
}

// Length returns the cylinder length of a capsule.
func (g *Geom) Length() float64 {
	return g.length
}

// Lengths returns the side lengths of a box.
func (g *Geom) Lengths() mgl64.Vec3 {
	return g.lengths
}

// Plane returns the unit normal and offset of a plane.
func (g *Geom) Plane() (mgl64.Vec3, float64) {
	return g.normal, g.offset
}

// SetBody attaches the geometry to b. Planes cannot be attached.
func (g *Geom) SetBody(b *Body) {
	if g.class == PlaneClass {
		return
	}
	if b == nil && g.body != nil {
		g.position = g.body.Position
		g.rotation = g.body.Rotation
	}
	g.body = b
}

// Body returns the attached body, or nil for static geometry.
func (g *Geom) Body() *Body {
	return g.body
}

// Space returns the space the geometry is registered in.
func (g *Geom) Space() *Space {
	return g.space
}

// Position returns the world position of the geometry.
func (g *Geom) Position() mgl64.Vec3 {
	if g.body != nil {
		return g.body.Position
	}
	return g.position
}

// Rotation returns the world orientation of the geometry.
func (g *Geom) Rotation() mgl64.Quat {
	if g.body != nil {
		return g.body.Rotation
	}
	return g.rotation
}

// SetPosition moves the geometry, or its body when attached.
func (g *Geom) SetPosition(p mgl64.Vec3) {
	if g.body != nil {
		g.body.SetPosition(p)
		return
	}
	g.position = p
}

// SetRotation orients the geometry, or its body when attached.
func (g *Geom) SetRotation(q mgl64.Quat) {
	if g.body != nil {
		g.body.SetRotation(q)
		return
	}
	g.rotation = q.Normalize()
}

func (g *Geom) rotationMatrix() mgl64.Mat3 {
	return g.Rotation().Mat4().Mat3()
}

// Segment returns the end points of a capsule's core segment.
func (g *Geom) Segment() (mgl64.Vec3, mgl64.Vec3) {
	p := g.Position()
	axis := g.rotationMatrix().Col(2).Mul(g.length / 2)
	return p.Sub(axis), p.Add(axis)
}

// AABB returns the world bounding box. Planes are unbounded.
func (g *Geom) AABB() AABB {
	p := g.Position()
	switch g.class {
	case SphereClass:
		r := mgl64.Vec3{g.radius, g.radius, g.radius}
		return AABB{Min: p.Sub(r), Max: p.Add(r)}
	case CapsuleClass:
		a, b := g.Segment()
		r := mgl64.Vec3{g.radius, g.radius, g.radius}
		return AABB{Min: minVec(a, b).Sub(r), Max: maxVec(a, b).Add(r)}
	case BoxClass:
		rot := g.rotationMatrix()
		half := g.lengths.Mul(0.5)
		var ext mgl64.Vec3
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				ext[i] += math.Abs(rot.At(i, j)) * half[j]
			}
		}
		return AABB{Min: p.Sub(ext), Max: p.Add(ext)}
	}
	inf := math.Inf(1)
	return AABB{Min: mgl64.Vec3{-inf, -inf, -inf}, Max: mgl64.Vec3{inf, inf, inf}}
}

// Destroy removes the geometry from its space.
func (g *Geom) Destroy() {
	if g.space != nil {
		g.space.Remove(g)
	}
	g.body = nil
}

func minVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

func maxVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}
