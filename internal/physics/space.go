package physics

import (
	"math"
	"sort"
)

// NearCallback is invoked by Space.Collide once per candidate pair whose
// bounding boxes overlap. It decides whether and how to constrain the pair.
type NearCallback func(data any, g1, g2 *Geom)

// maxCellsPerGeom caps how many hash cells one geometry may occupy; bigger
// geometries are tested against everything instead.
const maxCellsPerGeom = 512

type cellKey struct {
	x, y, z int64
}

// Space is a hash space: a uniform grid over geometry bounding boxes used to
// enumerate candidate colliding pairs. It indexes geometries but owns none of
// their bodies.
type Space struct {
	geoms    []*Geom
	cellSize float64

	cells map[cellKey][]int
	pairs map[[2]int]struct{}
}

// NewHashSpace returns an empty space. cellSize <= 0 selects 1.
func NewHashSpace(cellSize float64) *Space {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Space{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
		pairs:    make(map[[2]int]struct{}),
	}
}

// Add registers g in the space, removing it from any previous space.
func (s *Space) Add(g *Geom) {
	if g.space == s {
		return
	}
	if g.space != nil {
		g.space.Remove(g)
	}
	g.space = s
	s.geoms = append(s.geoms, g)
}

// Remove unregisters g. Registration order of the remaining geoms is kept.
func (s *Space) Remove(g *Geom) {
	if g.space != s {
		return
	}
	for i, k := range s.geoms {
		if k == g {
			s.geoms = append(s.geoms[:i], s.geoms[i+1:]...)
			break
		}
	}
	g.space = nil
}

// NumGeoms returns the number of registered geometries.
func (s *Space) NumGeoms() int {
	return len(s.geoms)
}

// Geom returns the i-th geometry in registration order.
func (s *Space) Geom(i int) *Geom {
	return s.geoms[i]
}

// Each calls fn for every geometry in registration order.
func (s *Space) Each(fn func(*Geom)) {
	for _, g := range s.geoms {
		fn(g)
	}
}

// Contains reports whether g is registered in the space.
func (s *Space) Contains(g *Geom) bool {
	return g != nil && g.space == s
}

// Destroy releases every geometry the space indexes and empties it.
func (s *Space) Destroy() {
	for len(s.geoms) > 0 {
		s.geoms[len(s.geoms)-1].Destroy()
	}
	clear(s.cells)
	clear(s.pairs)
}

// Collide calls cb for every candidate pair. Pairs sharing a body and pairs
// where neither geometry has a body are never reported. The order is
// deterministic: (i, j) with i < j in registration order.
func (s *Space) Collide(data any, cb NearCallback) {
	for _, pair := range s.candidates() {
		cb(data, s.geoms[pair[0]], s.geoms[pair[1]])
	}
}

func (s *Space) candidates() [][2]int {
	clear(s.cells)
	clear(s.pairs)

	boxes := make([]AABB, len(s.geoms))
	var large []int
	for i, g := range s.geoms {
		boxes[i] = g.AABB()
		lo, hi, ok := s.cellRange(boxes[i])
		if !ok {
			large = append(large, i)
			continue
		}
		for x := lo.x; x <= hi.x; x++ {
			for y := lo.y; y <= hi.y; y++ {
				for z := lo.z; z <= hi.z; z++ {
					k := cellKey{x, y, z}
					s.cells[k] = append(s.cells[k], i)
				}
			}
		}
	}

	for _, members := range s.cells {
		for a := 0; a < len(members); a++ {
			for b := a + 1; b < len(members); b++ {
				s.consider(members[a], members[b], boxes)
			}
		}
	}
	for _, i := range large {
		for j := range s.geoms {
			if i != j {
				s.consider(i, j, boxes)
			}
		}
	}

	out := make([][2]int, 0, len(s.pairs))
	for p := range s.pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a][0] != out[b][0] {
			return out[a][0] < out[b][0]
		}
		return out[a][1] < out[b][1]
	})
	return out
}

func (s *Space) consider(i, j int, boxes []AABB) {
	if i > j {
		i, j = j, i
	}
	key := [2]int{i, j}
	if _, seen := s.pairs[key]; seen {
		return
	}
	b1, b2 := s.geoms[i].body, s.geoms[j].body
	if b1 == nil && b2 == nil {
		return
	}
	if b1 == b2 {
		return
	}
	if !boxes[i].Overlaps(boxes[j]) {
		return
	}
	s.pairs[key] = struct{}{}
}

func (s *Space) cellRange(box AABB) (cellKey, cellKey, bool) {
	if box.Infinite() {
		return cellKey{}, cellKey{}, false
	}
	lo := cellKey{s.cell(box.Min[0]), s.cell(box.Min[1]), s.cell(box.Min[2])}
	hi := cellKey{s.cell(box.Max[0]), s.cell(box.Max[1]), s.cell(box.Max[2])}
	n := (hi.x - lo.x + 1) * (hi.y - lo.y + 1) * (hi.z - lo.z + 1)
	if n <= 0 || n > maxCellsPerGeom {
		return cellKey{}, cellKey{}, false
	}
	return lo, hi, true
}

func (s *Space) cell(v float64) int64 {
	return int64(math.Floor(v / s.cellSize))
}
