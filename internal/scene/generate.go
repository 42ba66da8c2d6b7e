package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
)

// Noise sampling parameters for Generate.
const (
	noiseOctaves    = 3
	noiseFrequency  = 0.35
	noiseLacunarity = 2.0
	noiseGain       = 0.5
)

var mixedShapes = [...]Shape{ShapeSphere, ShapeBox, ShapeCapsule}

// Generate expands def into objects laid out on a square grid centered on
// the origin. Fractal value noise jitters each body's position, drop height,
// size and orientation so the same seed always gives the same scene.
func Generate(def GenerateDef) []ObjectDef {
	if def.Count <= 0 {
		return nil
	}
	if def.Spread <= 0 {
		def.Spread = 1
	}
	if def.Height <= 0 {
		def.Height = 1
	}
	if def.Size <= 0 {
		def.Size = 0.25
	}
	if def.Mass <= 0 {
		def.Mass = 1
	}
	if def.Shape == "" {
		def.Shape = ShapeMixed
	}
	seed := def.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	noise := newDropNoise(seed)

	side := int(math.Ceil(math.Sqrt(float64(def.Count))))
	start := -float64(side-1) * def.Spread / 2
	objs := make([]ObjectDef, 0, def.Count)
	for i := 0; i < def.Count; i++ {
		gx, gy := i%side, i/side
		n := [4]float32{}
		for k := range n {
			n[k] = noise.sample(gx, gy, k)
		}

		jitter := def.Spread * 0.25
		pos := mgl64.Vec3{
			start + float64(gx)*def.Spread + (float64(n[0])-0.5)*jitter,
			start + float64(gy)*def.Spread + (float64(n[1])-0.5)*jitter,
			def.Height + float64(n[2])*def.Height,
		}
		size := def.Size * (0.75 + 0.5*float64(n[3]))

		shape := def.Shape
		if shape == ShapeMixed {
			shape = mixedShapes[int(n[3]*float32(len(mixedShapes)*16))%len(mixedShapes)]
		}
		o := ObjectDef{
			Name:     fmt.Sprintf("gen-%d", i),
			Shape:    shape,
			Position: pos,
			HPR:      [3]float64{float64(n[0]) * 360, float64(n[1]) * 90, float64(n[2]) * 90},
			M:        def.Mass,
		}
		switch shape {
		case ShapeSphere:
			o.R = size / 2
		case ShapeBox:
			o.L, o.W, o.H = size, size*0.75, size*0.5
		case ShapeCapsule:
			o.R, o.L = size/4, size
		}
		objs = append(objs, o)
	}
	return objs
}

// dropNoise is fractal value noise sampled at drop grid cells. Each channel
// (x jitter, y jitter, height, size) reads its own lattice.
type dropNoise struct {
	seed int32
}

func newDropNoise(seed int64) dropNoise {
	return dropNoise{seed: int32(seed ^ seed>>32)}
}

// sample returns a value in [0, 1) for grid cell (gx, gy).
func (d dropNoise) sample(gx, gy, channel int) float32 {
	x, y := float32(gx)*noiseFrequency, float32(gy)*noiseFrequency
	seed := d.seed + int32(channel)*7919
	var sum, norm float32
	amp := float32(1)
	for i := 0; i < noiseOctaves; i++ {
		sum += amp * lattice(x, y, seed+int32(i))
		norm += amp
		amp *= noiseGain
		x, y = x*noiseLacunarity, y*noiseLacunarity
	}
	return sum / norm
}

// lattice blends the corner values of the unit cell holding (x, y).
func lattice(x, y float32, seed int32) float32 {
	fx, fy := math32.Floor(x), math32.Floor(y)
	x0, y0 := int32(fx), int32(fy)
	u, v := fade(x-fx), fade(y-fy)
	top := mix(corner(x0, y0, seed), corner(x0+1, y0, seed), u)
	bottom := mix(corner(x0, y0+1, seed), corner(x0+1, y0+1, seed), u)
	return mix(top, bottom, v)
}

// corner hashes a lattice point to [0, 1).
func corner(x, y, seed int32) float32 {
	h := uint32(x)*0x27d4eb2d ^ uint32(y)*0x165667b1 ^ uint32(seed)*0x9e3779b9
	h ^= h >> 15
	h *= 0x85ebca6b
	h ^= h >> 13
	return float32(h>>8) / (1 << 24)
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3; t is already in [0, 1).
func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}
