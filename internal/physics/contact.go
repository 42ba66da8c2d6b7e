package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Surface mode flags.
const (
	// ContactBounce enables restitution.
	ContactBounce = 1 << iota
	// ContactSoftCFM uses Surface.SoftCFM as the normal row's mixing term.
	ContactSoftCFM
	// ContactApprox1 bounds friction by Mu times the normal impulse.
	ContactApprox1
)

// Surface holds the contact parameters of one contact point.
type Surface struct {
	Mode int
	// Mu is the friction coefficient; math.Inf(1) disables sliding and 0
	// disables friction.
	Mu float64
	// Bounce is the restitution coefficient in [0, 1].
	Bounce float64
	// BounceVel is the approach speed below which restitution is suppressed.
	BounceVel float64
	SoftCFM   float64
}

// Contact pairs surface parameters with the contact geometry.
type Contact struct {
	Surface Surface
	Geom    ContactGeom
}

// ContactJoint is a one-step constraint created for each contact point.
type ContactJoint struct {
	jointBase
	contact Contact
}

// NewContactJoint creates a contact joint in w, owned by group g.
func NewContactJoint(w *World, g *JointGroup, c Contact) *ContactJoint {
	j := &ContactJoint{contact: c}
	j.init(w, g, j)
	return j
}

// Type implements Joint.
func (j *ContactJoint) Type() JointType {
	return JointTypeContact
}

// Contact returns the joint's contact description.
func (j *ContactJoint) Contact() Contact {
	return j.contact
}

func (j *ContactJoint) appendRows(rows []row, info *stepInfo) []row {
	b1, b2 := j.b1, j.b2
	if b1 == nil && b2 == nil {
		return rows
	}
	geom := j.contact.Geom
	surf := j.contact.Surface
	n := geom.Normal

	var r1, r2 mgl64.Vec3
	if b1 != nil {
		r1 = geom.Position.Sub(b1.Position)
	}
	if b2 != nil {
		r2 = geom.Position.Sub(b2.Position)
	}

	normal := newRow(b1, b2, n, r1, r2)
	depth := math.Max(geom.Depth-info.surfaceLayer, 0)
	rhs := math.Min(info.erp*depth/info.dt, info.maxCorrectingVel)
	if surf.Mode&ContactBounce != 0 {
		outgoing := normal.velocity()
		if -outgoing > surf.BounceVel {
			if v := -surf.Bounce * outgoing; v > rhs {
				rhs = v
			}
		}
	}
	normal.rhs = rhs
	normal.lo = 0
	normal.cfm = info.cfm
	if surf.Mode&ContactSoftCFM != 0 {
		normal.cfm = surf.SoftCFM
	}
	idx := len(rows)
	rows = append(rows, normal)

	if surf.Mu == 0 {
		return rows
	}
	t1, t2 := planeSpace(n)
	for _, t := range []mgl64.Vec3{t1, t2} {
		fr := newRow(b1, b2, t, r1, r2)
		switch {
		case math.IsInf(surf.Mu, 1):
		case surf.Mode&ContactApprox1 != 0:
			fr.findex = idx
			fr.mu = surf.Mu
		default:
			fr.lo, fr.hi = -surf.Mu*info.dt, surf.Mu*info.dt
		}
		rows = append(rows, fr)
	}
	return rows
}

// planeSpace returns two unit vectors orthogonal to n and to each other.
func planeSpace(n mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	if math.Abs(n[2]) > math.Sqrt2/2 {
		a := n[1]*n[1] + n[2]*n[2]
		k := 1 / math.Sqrt(a)
		p := mgl64.Vec3{0, -n[2] * k, n[1] * k}
		return p, mgl64.Vec3{a * k, -n[0] * p[2], n[0] * p[1]}
	}
	a := n[0]*n[0] + n[1]*n[1]
	k := 1 / math.Sqrt(a)
	p := mgl64.Vec3{-n[1] * k, n[0] * k, 0}
	return p, mgl64.Vec3{-n[2] * p[1], n[2] * p[0], a * k}
}
