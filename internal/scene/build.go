package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"

	"rigid-sim/internal/physics"
	"rigid-sim/internal/sim"
)

func (s Shape) class() (physics.Class, error) {
	switch s {
	case ShapeSphere:
		return physics.SphereClass, nil
	case ShapeBox:
		return physics.BoxClass, nil
	case ShapeCapsule:
		return physics.CapsuleClass, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, string(s))
}

var shapeConverter = copier.TypeConverter{
	SrcType: Shape(""),
	DstType: physics.Class(0),
	Fn: func(src interface{}) (interface{}, error) {
		return src.(Shape).class()
	},
}

// Spec converts a definition into an object spec for sim.AddObject.
func (o ObjectDef) Spec() (sim.ObjectSpec, error) {
	var spec sim.ObjectSpec
	err := copier.CopyWithOption(&spec, &o, copier.Option{Converters: []copier.TypeConverter{shapeConverter}})
	if err != nil {
		return spec, fmt.Errorf("%s: %w", o.Name, err)
	}
	if o.HPR != ([3]float64{}) {
		spec.Rotation = mgl64.AnglesToQuat(
			mgl64.DegToRad(o.HPR[0]),
			mgl64.DegToRad(o.HPR[1]),
			mgl64.DegToRad(o.HPR[2]),
			mgl64.ZYX,
		)
	}
	return spec, nil
}

// Build adds the file's objects, its generated objects and its joints to s,
// in that order. s must be initialized.
func Build(s *sim.Simulation, f *File) ([]*sim.Object, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	defs := f.Objects
	if f.Generate != nil {
		defs = append(defs[:len(defs):len(defs)], Generate(*f.Generate)...)
		if err := uniqueNames(defs); err != nil {
			return nil, err
		}
	}

	objs := make([]*sim.Object, 0, len(defs))
	byName := make(map[string]*sim.Object, len(defs))
	for _, d := range defs {
		spec, err := d.Spec()
		if err != nil {
			return objs, err
		}
		o, err := s.AddObject(spec)
		if err != nil {
			return objs, err
		}
		objs = append(objs, o)
		if d.Name != "" {
			byName[d.Name] = o
		}
	}

	for i, j := range f.Joints {
		a, ok := byName[j.A]
		if !ok {
			return objs, fmt.Errorf("joint %d: %w: %q", i, ErrUnknownObject, j.A)
		}
		var b *sim.Object
		if j.B != "" {
			if b, ok = byName[j.B]; !ok {
				return objs, fmt.Errorf("joint %d: %w: %q", i, ErrUnknownObject, j.B)
			}
		}
		var err error
		switch j.Type {
		case "fixed":
			_, err = s.AddFixedJoint(a, b)
		case "ball":
			_, err = s.AddBallJoint(a, b, j.Anchor)
		}
		if err != nil {
			return objs, fmt.Errorf("joint %d: %w", i, err)
		}
	}
	return objs, nil
}
