package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func vec3AlmostEqual(a, b mgl64.Vec3, tol float64) bool {
	return almostEqual(a[0], b[0], tol) && almostEqual(a[1], b[1], tol) && almostEqual(a[2], b[2], tol)
}

// newDynamic creates a body with a sphere geometry of radius r at p.
func newDynamic(w *World, s *Space, p mgl64.Vec3, r float64) (*Body, *Geom) {
	b := NewBody(w)
	b.SetMass(SphereMass(1, r).Adjust(1))
	b.SetPosition(p)
	g := NewSphere(s, r)
	g.SetBody(b)
	return b, g
}
