package sim

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"rigid-sim/internal/physics"
)

// Object is a dynamic body paired with its collision geometry. W, H, L, R
// and M are the construction parameters (width, height, length, radius,
// mass) and are never changed by the simulation.
type Object struct {
	Name  string
	Shape physics.Class
	Body  *physics.Body
	Geom  *physics.Geom

	W, H, L, R, M float64
}

// ObjectSpec describes an object to build. Boxes use L, W, H along x, y, z;
// spheres use R; capsules use R and L (along local z). A zero Rotation is
// the identity.
type ObjectSpec struct {
	Name     string
	Shape    physics.Class
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Velocity mgl64.Vec3

	W, H, L, R, M float64
}

// AddObject creates a body and its geometry in the simulation.
func (s *Simulation) AddObject(spec ObjectSpec) (*Object, error) {
	if s.world == nil {
		return nil, ErrNotInitialized
	}
	if !(spec.M > 0) {
		return nil, fmt.Errorf("%w: %q mass %v", ErrInvalidObject, spec.Name, spec.M)
	}

	var (
		mass physics.Mass
		geom *physics.Geom
	)
	switch spec.Shape {
	case physics.SphereClass:
		if !(spec.R > 0) {
			return nil, fmt.Errorf("%w: %q radius %v", ErrInvalidObject, spec.Name, spec.R)
		}
		mass = physics.SphereMass(1, spec.R)
		geom = physics.NewSphere(s.space, spec.R)
	case physics.BoxClass:
		if !(spec.L > 0 && spec.W > 0 && spec.H > 0) {
			return nil, fmt.Errorf("%w: %q sides %v %v %v", ErrInvalidObject, spec.Name, spec.L, spec.W, spec.H)
		}
		mass = physics.BoxMass(1, spec.L, spec.W, spec.H)
		geom = physics.NewBox(s.space, spec.L, spec.W, spec.H)
	case physics.CapsuleClass:
		if !(spec.R > 0 && spec.L >= 0) {
			return nil, fmt.Errorf("%w: %q radius %v length %v", ErrInvalidObject, spec.Name, spec.R, spec.L)
		}
		mass = physics.CapsuleMass(1, spec.R, spec.L)
		geom = physics.NewCapsule(s.space, spec.R, spec.L)
	default:
		return nil, fmt.Errorf("%w: %q has shape %v", ErrInvalidObject, spec.Name, spec.Shape)
	}

	body := physics.NewBody(s.world)
	body.SetMass(mass.Adjust(spec.M))
	body.SetPosition(spec.Position)
	if spec.Rotation != (mgl64.Quat{}) {
		body.SetRotation(spec.Rotation)
	}
	body.SetLinearVel(spec.Velocity)
	geom.SetBody(body)

	o := &Object{
		Name:  spec.Name,
		Shape: spec.Shape,
		Body:  body,
		Geom:  geom,
		W:     spec.W,
		H:     spec.H,
		L:     spec.L,
		R:     spec.R,
		M:     spec.M,
	}
	body.Data = o
	geom.Data = o
	s.objects = append(s.objects, o)
	return o, nil
}

// AddSphere creates a sphere of radius r and mass m at p.
func (s *Simulation) AddSphere(name string, p mgl64.Vec3, r, m float64) (*Object, error) {
	return s.AddObject(ObjectSpec{Name: name, Shape: physics.SphereClass, Position: p, R: r, M: m})
}

// AddBox creates a box with sides l, w, h and mass m at p.
func (s *Simulation) AddBox(name string, p mgl64.Vec3, l, w, h, m float64) (*Object, error) {
	return s.AddObject(ObjectSpec{Name: name, Shape: physics.BoxClass, Position: p, L: l, W: w, H: h, M: m})
}

// AddCapsule creates a capsule of radius r, axis length l and mass m at p.
func (s *Simulation) AddCapsule(name string, p mgl64.Vec3, r, l, m float64) (*Object, error) {
	return s.AddObject(ObjectSpec{Name: name, Shape: physics.CapsuleClass, Position: p, R: r, L: l, M: m})
}

// DestroyObject destroys the object's geometry, then its body.
func (s *Simulation) DestroyObject(o *Object) error {
	i := slices.Index(s.objects, o)
	if i < 0 {
		return ErrForeignObject
	}
	o.Geom.Destroy()
	o.Body.Destroy()
	s.objects = slices.Delete(s.objects, i, i+1)
	return nil
}

// Object returns the first live object called name.
func (s *Simulation) Object(name string) (*Object, bool) {
	for _, o := range s.objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// AddFixedJoint locks a to b in their current relative pose. A nil b fixes a
// to the environment.
func (s *Simulation) AddFixedJoint(a, b *Object) (*physics.FixedJoint, error) {
	b1, b2, err := s.jointBodies(a, b)
	if err != nil {
		return nil, err
	}
	j := physics.NewFixedJoint(s.world, nil)
	j.Attach(b1, b2)
	j.SetFixed()
	return j, nil
}

// AddBallJoint joins a and b (or a and the environment) at the world point anchor.
func (s *Simulation) AddBallJoint(a, b *Object, anchor mgl64.Vec3) (*physics.BallJoint, error) {
	b1, b2, err := s.jointBodies(a, b)
	if err != nil {
		return nil, err
	}
	j := physics.NewBallJoint(s.world, nil)
	j.Attach(b1, b2)
	j.SetAnchor(anchor)
	return j, nil
}

func (s *Simulation) jointBodies(a, b *Object) (*physics.Body, *physics.Body, error) {
	if s.world == nil {
		return nil, nil, ErrNotInitialized
	}
	if a == nil || !slices.Contains(s.objects, a) {
		return nil, nil, ErrForeignObject
	}
	if b == nil {
		return a.Body, nil, nil
	}
	if !slices.Contains(s.objects, b) {
		return nil, nil, ErrForeignObject
	}
	return a.Body, b.Body, nil
}

// EachGeom calls fn for every geometry in the space, ground included.
func (s *Simulation) EachGeom(fn func(g *physics.Geom)) {
	if s.space == nil {
		return
	}
	s.space.Each(fn)
}
