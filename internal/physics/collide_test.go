package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCollide_SpherePlane(t *testing.T) {
	tests := []struct {
		name      string
		z         float64
		wantCount int
		wantDepth float64
	}{
		{name: "above", z: 1.5, wantCount: 0},
		{name: "touching", z: 0.5, wantCount: 1, wantDepth: 0},
		{name: "penetrating", z: 0.4, wantCount: 1, wantDepth: 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ground := NewPlane(nil, 0, 0, 1, 0)
			s := NewSphere(nil, 0.5)
			s.SetPosition(mgl64.Vec3{0, 0, tt.z})

			contacts := Collide(s, ground, 10)
			if len(contacts) != tt.wantCount {
				t.Fatalf("len(contacts) = %d, want %d", len(contacts), tt.wantCount)
			}
			if tt.wantCount == 0 {
				return
			}
			c := contacts[0]
			if !almostEqual(c.Depth, tt.wantDepth, 1e-12) {
				t.Errorf("Depth = %v, want %v", c.Depth, tt.wantDepth)
			}
			if !vec3AlmostEqual(c.Normal, mgl64.Vec3{0, 0, 1}, 1e-12) {
				t.Errorf("Normal = %v, want +z", c.Normal)
			}
			if c.G1 != s || c.G2 != ground {
				t.Error("contact geoms not in argument order")
			}
		})
	}
}

func TestCollide_SwappedArgumentsFlipNormal(t *testing.T) {
	ground := NewPlane(nil, 0, 0, 1, 0)
	s := NewSphere(nil, 0.5)
	s.SetPosition(mgl64.Vec3{0, 0, 0.25})

	contacts := Collide(ground, s, 10)
	if len(contacts) != 1 {
		t.Fatalf("len(contacts) = %d, want 1", len(contacts))
	}
	c := contacts[0]
	if c.G1 != ground || c.G2 != s {
		t.Error("G1/G2 should follow argument order")
	}
	if !vec3AlmostEqual(c.Normal, mgl64.Vec3{0, 0, -1}, 1e-12) {
		t.Errorf("Normal = %v, want -z", c.Normal)
	}
}

func TestCollide_BoxPlaneRestingFace(t *testing.T) {
	ground := NewPlane(nil, 0, 0, 1, 0)
	b := NewBox(nil, 1, 1, 1)
	b.SetPosition(mgl64.Vec3{0, 0, 0.49})

	contacts := Collide(b, ground, 10)
	if len(contacts) != 4 {
		t.Fatalf("len(contacts) = %d, want 4 bottom corners", len(contacts))
	}
	for _, c := range contacts {
		if !almostEqual(c.Depth, 0.01, 1e-9) {
			t.Errorf("Depth = %v, want 0.01", c.Depth)
		}
	}
}

func TestCollide_MaxContactsKeepsDeepest(t *testing.T) {
	ground := NewPlane(nil, 0, 0, 1, 0)
	b := NewBox(nil, 1, 1, 1)
	b.SetRotation(mgl64.QuatRotate(0.1, mgl64.Vec3{1, 0, 0}))
	b.SetPosition(mgl64.Vec3{0, 0, 0.3})

	all := Collide(b, ground, 10)
	two := Collide(b, ground, 2)
	if len(two) != 2 {
		t.Fatalf("len(contacts) = %d, want 2", len(two))
	}
	deepest := 0.0
	for _, c := range all {
		deepest = math.Max(deepest, c.Depth)
	}
	if two[0].Depth != deepest {
		t.Errorf("first contact depth = %v, want deepest %v", two[0].Depth, deepest)
	}
	if Collide(b, ground, 0) != nil {
		t.Error("max 0 should produce no contacts")
	}
}

func TestCollide_SphereSphere(t *testing.T) {
	a := NewSphere(nil, 1)
	b := NewSphere(nil, 1)
	a.SetPosition(mgl64.Vec3{1.5, 0, 0})

	contacts := Collide(a, b, 10)
	if len(contacts) != 1 {
		t.Fatalf("len(contacts) = %d, want 1", len(contacts))
	}
	if !almostEqual(contacts[0].Depth, 0.5, 1e-12) {
		t.Errorf("Depth = %v, want 0.5", contacts[0].Depth)
	}
	if !vec3AlmostEqual(contacts[0].Normal, mgl64.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("Normal = %v, want +x (from b to a)", contacts[0].Normal)
	}

	a.SetPosition(mgl64.Vec3{3, 0, 0})
	if n := len(Collide(a, b, 10)); n != 0 {
		t.Errorf("separated spheres produced %d contacts", n)
	}
}

func TestCollide_SphereBox(t *testing.T) {
	box := NewBox(nil, 2, 2, 2)
	s := NewSphere(nil, 0.5)

	s.SetPosition(mgl64.Vec3{0, 0, 1.4})
	contacts := Collide(s, box, 10)
	if len(contacts) != 1 {
		t.Fatalf("face contact: len = %d, want 1", len(contacts))
	}
	if !almostEqual(contacts[0].Depth, 0.1, 1e-9) {
		t.Errorf("Depth = %v, want 0.1", contacts[0].Depth)
	}
	if !vec3AlmostEqual(contacts[0].Normal, mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("Normal = %v, want +z", contacts[0].Normal)
	}

	s.SetPosition(mgl64.Vec3{0, 0, 0.8})
	contacts = Collide(s, box, 10)
	if len(contacts) != 1 || !almostEqual(contacts[0].Depth, 0.7, 1e-9) {
		t.Errorf("center inside box: got %+v, want depth 0.7", contacts)
	}
}

func TestCollide_CapsuleLyingOnPlane(t *testing.T) {
	ground := NewPlane(nil, 0, 0, 1, 0)
	c := NewCapsule(nil, 0.2, 1)
	c.SetRotation(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}))
	c.SetPosition(mgl64.Vec3{0, 0, 0.19})

	contacts := Collide(c, ground, 10)
	if len(contacts) != 2 {
		t.Fatalf("len(contacts) = %d, want both caps", len(contacts))
	}
	for _, ct := range contacts {
		if !almostEqual(ct.Depth, 0.01, 1e-9) {
			t.Errorf("Depth = %v, want 0.01", ct.Depth)
		}
	}
}

func TestCollide_BoxBoxStacked(t *testing.T) {
	lower := NewBox(nil, 1, 1, 1)
	upper := NewBox(nil, 0.5, 0.5, 0.5)
	upper.SetPosition(mgl64.Vec3{0, 0, 0.74})

	contacts := Collide(upper, lower, 10)
	if len(contacts) != 4 {
		t.Fatalf("len(contacts) = %d, want 4", len(contacts))
	}
	for _, c := range contacts {
		if !vec3AlmostEqual(c.Normal, mgl64.Vec3{0, 0, 1}, 1e-9) {
			t.Errorf("Normal = %v, want +z", c.Normal)
		}
	}
}

func TestCollide_BoxBoxEqualFootprint(t *testing.T) {
	lower := NewBox(nil, 0.5, 0.5, 0.5)
	lower.SetPosition(mgl64.Vec3{0, 0, 0.25})
	upper := NewBox(nil, 0.5, 0.5, 0.5)
	upper.SetPosition(mgl64.Vec3{0, 0, 0.749})

	tests := []struct {
		name   string
		g1, g2 *Geom
		normal mgl64.Vec3
	}{
		{"upper first", upper, lower, mgl64.Vec3{0, 0, 1}},
		{"lower first", lower, upper, mgl64.Vec3{0, 0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts := Collide(tt.g1, tt.g2, 10)
			if len(contacts) != 4 {
				t.Fatalf("len(contacts) = %d, want 4", len(contacts))
			}
			for _, c := range contacts {
				if !vec3AlmostEqual(c.Normal, tt.normal, 1e-9) {
					t.Errorf("Normal = %v, want %v", c.Normal, tt.normal)
				}
				if !almostEqual(c.Depth, 0.001, 1e-9) {
					t.Errorf("Depth = %v, want 0.001", c.Depth)
				}
				if !almostEqual(math.Abs(c.Position[0]), 0.25, 1e-9) || !almostEqual(math.Abs(c.Position[1]), 0.25, 1e-9) {
					t.Errorf("Position = %v, want a corner of the footprint", c.Position)
				}
			}
		})
	}
}

func TestCollide_BoxBoxOffsetFootprint(t *testing.T) {
	lower := NewBox(nil, 0.5, 0.5, 0.5)
	lower.SetPosition(mgl64.Vec3{0, 0, 0.25})
	upper := NewBox(nil, 0.5, 0.5, 0.5)
	upper.SetPosition(mgl64.Vec3{0.1, 0, 0.745})

	contacts := Collide(upper, lower, 10)
	if len(contacts) != 4 {
		t.Fatalf("len(contacts) = %d, want 4", len(contacts))
	}
	for _, c := range contacts {
		if !vec3AlmostEqual(c.Normal, mgl64.Vec3{0, 0, 1}, 1e-9) || !almostEqual(c.Depth, 0.005, 1e-9) {
			t.Errorf("contact = %+v, want +z normal and depth 0.005", c)
		}
		if c.Position[0] < -0.15-1e-9 || c.Position[0] > 0.25+1e-9 {
			t.Errorf("Position = %v, want inside the overlap", c.Position)
		}
	}
}

func TestCollide_BoxBoxEdgeOnEdge(t *testing.T) {
	h := math.Sqrt2 / 2
	lower := NewBox(nil, 1, 1, 1)
	lower.SetRotation(mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0}))
	upper := NewBox(nil, 1, 1, 1)
	upper.SetRotation(mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{1, 0, 0}))
	upper.SetPosition(mgl64.Vec3{0, 0, 2*h - 0.01})

	contacts := Collide(upper, lower, 10)
	if len(contacts) != 1 {
		t.Fatalf("len(contacts) = %d, want 1", len(contacts))
	}
	c := contacts[0]
	if !vec3AlmostEqual(c.Normal, mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("Normal = %v, want +z", c.Normal)
	}
	if !almostEqual(c.Depth, 0.01, 1e-9) {
		t.Errorf("Depth = %v, want 0.01", c.Depth)
	}
	if !vec3AlmostEqual(c.Position, mgl64.Vec3{0, 0, h - 0.005}, 1e-9) {
		t.Errorf("Position = %v, want (0, 0, %v)", c.Position, h-0.005)
	}
}

func TestCollide_BoxBoxSeparated(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl64.Vec3
	}{
		{"above", mgl64.Vec3{0, 0, 0.51}},
		{"beside", mgl64.Vec3{0.51, 0, 0}},
		{"diagonal", mgl64.Vec3{0.51, 0.51, 0.51}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewBox(nil, 0.5, 0.5, 0.5)
			b := NewBox(nil, 0.5, 0.5, 0.5)
			b.SetPosition(tt.pos)
			if contacts := Collide(a, b, 10); len(contacts) != 0 {
				t.Errorf("separated boxes produced %d contacts", len(contacts))
			}
		})
	}
}

func TestClipPolygon(t *testing.T) {
	square := []mgl64.Vec3{{1, 1, 0}, {-1, 1, 0}, {-1, -1, 0}, {1, -1, 0}}
	got := clipPolygon(square, mgl64.Vec3{1, 0, 0}, 0.5)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4: %v", len(got), got)
	}
	for _, p := range got {
		if p[0] > 0.5+1e-12 {
			t.Errorf("point %v lies outside x <= 0.5", p)
		}
	}
	if got := clipPolygon(square, mgl64.Vec3{1, 0, 0}, -2); len(got) != 0 {
		t.Errorf("fully clipped polygon kept %v", got)
	}
}

func TestCollide_PlanePlaneUnsupported(t *testing.T) {
	a := NewPlane(nil, 0, 0, 1, 0)
	b := NewPlane(nil, 0, 1, 0, 0)
	if contacts := Collide(a, b, 10); len(contacts) != 0 {
		t.Errorf("plane pair produced %d contacts", len(contacts))
	}
}

func TestClosestBetweenSegments(t *testing.T) {
	p1, p2 := closestBetweenSegments(
		mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, -1, 1}, mgl64.Vec3{0, 1, 1},
	)
	if !vec3AlmostEqual(p1, mgl64.Vec3{0, 0, 0}, 1e-12) || !vec3AlmostEqual(p2, mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("closest points = %v, %v", p1, p2)
	}
}
