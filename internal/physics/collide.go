package physics

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// ContactGeom describes one contact point between two geometries. Moving G1
// along Normal by Depth separates the pair.
type ContactGeom struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Depth    float64
	G1, G2   *Geom
}

type collider func(a, b *Geom) []ContactGeom

var colliders = map[[2]Class]collider{
	{SphereClass, PlaneClass}:    collideSpherePlane,
	{BoxClass, PlaneClass}:       collideBoxPlane,
	{CapsuleClass, PlaneClass}:   collideCapsulePlane,
	{SphereClass, SphereClass}:   collideSphereSphere,
	{SphereClass, BoxClass}:      collideSphereBox,
	{CapsuleClass, SphereClass}:  collideCapsuleSphere,
	{CapsuleClass, CapsuleClass}: collideCapsuleCapsule,
	{CapsuleClass, BoxClass}:     collideCapsuleBox,
	{BoxClass, BoxClass}:         collideBoxBox,
}

// Collide runs the narrow phase between g1 and g2 and returns at most max
// contacts, deepest first. Unsupported pairs (plane against plane) produce
// none.
func Collide(g1, g2 *Geom, max int) []ContactGeom {
	if max <= 0 || g1 == nil || g2 == nil || g1 == g2 {
		return nil
	}
	var contacts []ContactGeom
	if fn, ok := colliders[[2]Class{g1.class, g2.class}]; ok {
		contacts = fn(g1, g2)
	} else if fn, ok := colliders[[2]Class{g2.class, g1.class}]; ok {
		contacts = fn(g2, g1)
		for i := range contacts {
			c := &contacts[i]
			c.Normal = c.Normal.Mul(-1)
			c.G1, c.G2 = g1, g2
		}
	}
	if len(contacts) > max {
		sort.SliceStable(contacts, func(i, j int) bool {
			return contacts[i].Depth > contacts[j].Depth
		})
		contacts = contacts[:max]
	}
	return contacts
}

func collideSpherePlane(s, p *Geom) []ContactGeom {
	n, d := p.Plane()
	c := s.Position()
	depth := s.radius - (n.Dot(c) - d)
	if depth < 0 {
		return nil
	}
	return []ContactGeom{{
		Position: c.Sub(n.Mul(s.radius)),
		Normal:   n,
		Depth:    depth,
		G1:       s,
		G2:       p,
	}}
}

func collideBoxPlane(b, p *Geom) []ContactGeom {
	n, d := p.Plane()
	var out []ContactGeom
	for _, v := range boxVertices(b) {
		depth := d - n.Dot(v)
		if depth < 0 {
			continue
		}
		out = append(out, ContactGeom{Position: v, Normal: n, Depth: depth, G1: b, G2: p})
	}
	return out
}

func collideCapsulePlane(c, p *Geom) []ContactGeom {
	n, d := p.Plane()
	a, b := c.Segment()
	var out []ContactGeom
	for _, e := range []mgl64.Vec3{a, b} {
		depth := c.radius - (n.Dot(e) - d)
		if depth < 0 {
			continue
		}
		out = append(out, ContactGeom{Position: e.Sub(n.Mul(c.radius)), Normal: n, Depth: depth, G1: c, G2: p})
	}
	return out
}

// spherePoint collides two spheres given by center and radius.
func spherePoint(c1 mgl64.Vec3, r1 float64, c2 mgl64.Vec3, r2 float64, g1, g2 *Geom) []ContactGeom {
	delta := c1.Sub(c2)
	dist := delta.Len()
	depth := r1 + r2 - dist
	if depth < 0 {
		return nil
	}
	n := mgl64.Vec3{1, 0, 0}
	if dist > 1e-12 {
		n = delta.Mul(1 / dist)
	}
	return []ContactGeom{{
		Position: c2.Add(n.Mul(r2 - 0.5*depth)),
		Normal:   n,
		Depth:    depth,
		G1:       g1,
		G2:       g2,
	}}
}

func collideSphereSphere(a, b *Geom) []ContactGeom {
	return spherePoint(a.Position(), a.radius, b.Position(), b.radius, a, b)
}

func collideCapsuleSphere(c, s *Geom) []ContactGeom {
	a, b := c.Segment()
	p := closestOnSegment(a, b, s.Position())
	return spherePoint(p, c.radius, s.Position(), s.radius, c, s)
}

func collideCapsuleCapsule(c1, c2 *Geom) []ContactGeom {
	a1, b1 := c1.Segment()
	a2, b2 := c2.Segment()
	p1, p2 := closestBetweenSegments(a1, b1, a2, b2)
	return spherePoint(p1, c1.radius, p2, c2.radius, c1, c2)
}

// sphereBox collides a sphere (center, radius) against box b. The normal
// points from the box towards the sphere.
func sphereBox(center mgl64.Vec3, radius float64, b *Geom, g1 *Geom) (ContactGeom, bool) {
	rot := b.rotationMatrix()
	pos := b.Position()
	half := b.lengths.Mul(0.5)
	local := rot.Transpose().Mul3x1(center.Sub(pos))

	clamped := local
	inside := true
	for i := 0; i < 3; i++ {
		if clamped[i] < -half[i] {
			clamped[i], inside = -half[i], false
		} else if clamped[i] > half[i] {
			clamped[i], inside = half[i], false
		}
	}

	if inside {
		axis, best := 0, math.Inf(1)
		for i := 0; i < 3; i++ {
			if gap := half[i] - math.Abs(local[i]); gap < best {
				axis, best = i, gap
			}
		}
		var ln mgl64.Vec3
		ln[axis] = 1
		if local[axis] < 0 {
			ln[axis] = -1
		}
		return ContactGeom{
			Position: center,
			Normal:   rot.Mul3x1(ln),
			Depth:    radius + best,
			G1:       g1,
			G2:       b,
		}, true
	}

	diff := local.Sub(clamped)
	dist := diff.Len()
	depth := radius - dist
	if depth < 0 || dist == 0 {
		return ContactGeom{}, false
	}
	return ContactGeom{
		Position: pos.Add(rot.Mul3x1(clamped)),
		Normal:   rot.Mul3x1(diff.Mul(1 / dist)),
		Depth:    depth,
		G1:       g1,
		G2:       b,
	}, true
}

func collideSphereBox(s, b *Geom) []ContactGeom {
	if c, ok := sphereBox(s.Position(), s.radius, b, s); ok {
		return []ContactGeom{c}
	}
	return nil
}

func collideCapsuleBox(c, b *Geom) []ContactGeom {
	a, e := c.Segment()
	center := b.Position()

	// Alternate between the segment and the box to approach the closest pair.
	p := closestOnSegment(a, e, center)
	for i := 0; i < 4; i++ {
		p = closestOnSegment(a, e, closestOnBox(b, p))
	}

	var out []ContactGeom
	for _, q := range []mgl64.Vec3{a, e, p} {
		ct, ok := sphereBox(q, c.radius, b, c)
		if !ok {
			continue
		}
		dup := false
		for _, o := range out {
			if o.Position.Sub(ct.Position).Len() < 1e-6 {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, ct)
		}
	}
	return out
}

// collideBoxBox reports vertex-in-box contacts in both directions. Edge-edge
// crossings without a penetrating vertex are not detected.
// Separating-axis tolerances for box pairs. An edge axis must beat the best
// face axis by a margin so resting boxes keep a face manifold.
const (
	edgeAxisFactor = 1.05
	edgeAxisSlop   = 1e-6
	clipSlop       = 1e-9
)

// collideBoxBox tests the 15 separating axes of two boxes. The axis of least
// overlap gives the normal; a face axis yields the incident face clipped to
// the reference face, an edge axis a single point between the two edges.
func collideBoxBox(b1, b2 *Geom) []ContactGeom {
	r1, r2 := b1.rotationMatrix(), b2.rotationMatrix()
	h1, h2 := b1.lengths.Mul(0.5), b2.lengths.Mul(0.5)
	d := b1.Position().Sub(b2.Position())
	var a1, a2 [3]mgl64.Vec3
	for i := 0; i < 3; i++ {
		a1[i], a2[i] = r1.Col(i), r2.Col(i)
	}
	overlap := func(l mgl64.Vec3) float64 {
		var e1, e2 float64
		for i := 0; i < 3; i++ {
			e1 += h1[i] * math.Abs(a1[i].Dot(l))
			e2 += h2[i] * math.Abs(a2[i].Dot(l))
		}
		return e1 + e2 - math.Abs(d.Dot(l))
	}

	const (
		faceOf1 = iota
		faceOf2
		edges
	)
	best, kind, face := math.Inf(1), -1, 0
	var axis mgl64.Vec3
	for k, set := range [2][3]mgl64.Vec3{a1, a2} {
		for i, l := range set {
			o := overlap(l)
			if o < 0 {
				return nil
			}
			if o < best {
				best, kind, face, axis = o, k, i, l
			}
		}
	}
	faceBest := best
	var e1, e2 int
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			l := a1[i].Cross(a2[j])
			n := l.Len()
			if n < 1e-6 {
				continue
			}
			l = l.Mul(1 / n)
			o := overlap(l)
			if o < 0 {
				return nil
			}
			if o*edgeAxisFactor+edgeAxisSlop < faceBest && o < best {
				best, kind, axis, e1, e2 = o, edges, l, i, j
			}
		}
	}

	// n points from b2 into b1.
	n := axis
	if n.Dot(d) < 0 {
		n = n.Mul(-1)
	}
	switch kind {
	case faceOf1:
		return faceContacts(b1, face, n.Mul(-1), b2, n, b1, b2)
	case faceOf2:
		return faceContacts(b2, face, n, b1, n, b1, b2)
	}

	p1 := boxEdge(b1, e1, n.Mul(-1))
	p2 := boxEdge(b2, e2, n)
	q1, q2 := closestBetweenSegments(p1[0], p1[1], p2[0], p2[1])
	return []ContactGeom{{Position: q1.Add(q2).Mul(0.5), Normal: n, Depth: best, G1: b1, G2: b2}}
}

// faceContacts clips the face of inc most opposed to refNormal against the
// side planes of ref's face refAxis and keeps the points below that face.
func faceContacts(ref *Geom, refAxis int, refNormal mgl64.Vec3, inc *Geom, normal mgl64.Vec3, g1, g2 *Geom) []ContactGeom {
	rr, ri := ref.rotationMatrix(), inc.rotationMatrix()
	hr, hi := ref.lengths.Mul(0.5), inc.lengths.Mul(0.5)

	k, dot := 0, 0.0
	for i := 0; i < 3; i++ {
		if c := ri.Col(i).Dot(refNormal); math.Abs(c) > math.Abs(dot) {
			k, dot = i, c
		}
	}
	fn := ri.Col(k)
	if dot > 0 {
		fn = fn.Mul(-1)
	}
	center := inc.Position().Add(fn.Mul(hi[k]))
	eu := ri.Col((k + 1) % 3).Mul(hi[(k+1)%3])
	ev := ri.Col((k + 2) % 3).Mul(hi[(k+2)%3])
	poly := []mgl64.Vec3{
		center.Add(eu).Add(ev),
		center.Sub(eu).Add(ev),
		center.Sub(eu).Sub(ev),
		center.Add(eu).Sub(ev),
	}

	c := ref.Position()
	for _, j := range [2]int{(refAxis + 1) % 3, (refAxis + 2) % 3} {
		t := rr.Col(j)
		off := t.Dot(c)
		poly = clipPolygon(poly, t, off+hr[j]+clipSlop)
		poly = clipPolygon(poly, t.Mul(-1), -off+hr[j]+clipSlop)
	}

	plane := refNormal.Dot(c) + hr[refAxis]
	var out []ContactGeom
	for _, p := range poly {
		sep := refNormal.Dot(p) - plane
		if sep > clipSlop {
			continue
		}
		out = append(out, ContactGeom{Position: p, Normal: normal, Depth: math.Max(-sep, 0), G1: g1, G2: g2})
	}
	return out
}

// clipPolygon keeps the part of poly where n·x <= offset.
func clipPolygon(poly []mgl64.Vec3, n mgl64.Vec3, offset float64) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, len(poly)+1)
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		da, db := n.Dot(a)-offset, n.Dot(b)-offset
		if da <= 0 {
			out = append(out, a)
		}
		if (da < 0 && db > 0) || (da > 0 && db < 0) {
			out = append(out, a.Add(b.Sub(a).Mul(da/(da-db))))
		}
	}
	return out
}

// boxEdge returns the end points of the edge of b parallel to local axis i
// that lies furthest along dir.
func boxEdge(b *Geom, i int, dir mgl64.Vec3) [2]mgl64.Vec3 {
	rot := b.rotationMatrix()
	half := b.lengths.Mul(0.5)
	c := b.Position()
	for k := 0; k < 3; k++ {
		if k == i {
			continue
		}
		ax := rot.Col(k)
		if ax.Dot(dir) < 0 {
			ax = ax.Mul(-1)
		}
		c = c.Add(ax.Mul(half[k]))
	}
	e := rot.Col(i).Mul(half[i])
	return [2]mgl64.Vec3{c.Sub(e), c.Add(e)}
}

func closestOnBox(b *Geom, p mgl64.Vec3) mgl64.Vec3 {
	rot := b.rotationMatrix()
	half := b.lengths.Mul(0.5)
	local := rot.Transpose().Mul3x1(p.Sub(b.Position()))
	for i := 0; i < 3; i++ {
		local[i] = mgl64.Clamp(local[i], -half[i], half[i])
	}
	return b.Position().Add(rot.Mul3x1(local))
}

func boxVertices(b *Geom) [8]mgl64.Vec3 {
	rot := b.rotationMatrix()
	pos := b.Position()
	half := b.lengths.Mul(0.5)
	var out [8]mgl64.Vec3
	for i := 0; i < 8; i++ {
		local := mgl64.Vec3{half[0], half[1], half[2]}
		if i&1 != 0 {
			local[0] = -local[0]
		}
		if i&2 != 0 {
			local[1] = -local[1]
		}
		if i&4 != 0 {
			local[2] = -local[2]
		}
		out[i] = pos.Add(rot.Mul3x1(local))
	}
	return out
}

func closestOnSegment(a, b, p mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-18 {
		return a
	}
	t := mgl64.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return a.Add(ab.Mul(t))
}

// closestBetweenSegments returns the closest points on segments p1q1 and
// p2q2.
func closestBetweenSegments(p1, q1, p2, q2 mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	const eps = 1e-12
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a <= eps && e <= eps:
		return p1, p2
	case a <= eps:
		t = mgl64.Clamp(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e <= eps {
			s = mgl64.Clamp(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom > eps {
				s = mgl64.Clamp((b*f-c*e)/denom, 0, 1)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = mgl64.Clamp(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = mgl64.Clamp((b-c)/a, 0, 1)
			}
		}
	}
	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t))
}
