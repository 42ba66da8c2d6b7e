package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mass holds the total mass and the body-frame inertia tensor of a body.
// The center of mass always coincides with the body origin.
type Mass struct {
	Mass float64
	I    mgl64.Mat3
}

// SphereMass returns the mass of a solid sphere of the given density and radius.
func SphereMass(density, radius float64) Mass {
	m := density * (4.0 / 3.0) * math.Pi * radius * radius * radius
	i := 0.4 * m * radius * radius
	return Mass{Mass: m, I: mgl64.Diag3(mgl64.Vec3{i, i, i})}
}

// BoxMass returns the mass of a solid box with side lengths lx, ly, lz.
func BoxMass(density, lx, ly, lz float64) Mass {
	m := density * lx * ly * lz
	return Mass{
		Mass: m,
		I: mgl64.Diag3(mgl64.Vec3{
			m / 12 * (ly*ly + lz*lz),
			m / 12 * (lx*lx + lz*lz),
			m / 12 * (lx*lx + ly*ly),
		}),
	}
}

// CapsuleMass returns the mass of a capsule whose cylinder part has the given
// length along the local z axis, capped by two hemispheres of the given radius.
func CapsuleMass(density, radius, length float64) Mass {
	r2 := radius * radius
	m1 := math.Pi * r2 * length * density
	m2 := (4.0 / 3.0) * math.Pi * r2 * radius * density
	ia := m1*(0.25*r2+length*length/12) + m2*(0.4*r2+0.375*radius*length+0.25*length*length)
	ib := (m1*0.5 + m2*0.4) * r2
	return Mass{Mass: m1 + m2, I: mgl64.Diag3(mgl64.Vec3{ia, ia, ib})}
}

// Adjust scales the mass and inertia so that the total mass becomes total.
func (m Mass) Adjust(total float64) Mass {
	if m.Mass <= 0 {
		return m
	}
	scale := total / m.Mass
	return Mass{Mass: total, I: m.I.Mul(scale)}
}

// Valid reports whether the mass is positive and the inertia tensor invertible.
func (m Mass) Valid() bool {
	if !(m.Mass > 0) || math.IsInf(m.Mass, 0) {
		return false
	}
	return m.I.Det() > 0
}
