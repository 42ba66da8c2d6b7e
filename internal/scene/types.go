package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// File is a scene description (e.g. scenes/demo.yaml).
type File struct {
	Objects  []ObjectDef  `yaml:"objects"`
	Joints   []JointDef   `yaml:"joints,omitempty"`
	Generate *GenerateDef `yaml:"generate,omitempty"`
}

// Shape names a body shape in scene files: sphere, box or capsule.
type Shape string

const (
	ShapeSphere  Shape = "sphere"
	ShapeBox     Shape = "box"
	ShapeCapsule Shape = "capsule"
	// ShapeMixed is only valid in GenerateDef; it cycles through the others.
	ShapeMixed Shape = "mixed"
)

// ObjectDef is one body. W, H, L, R and M are width, height, length, radius
// and mass; boxes use L x W x H, capsules R and L. HPR is heading, pitch and
// roll in degrees.
type ObjectDef struct {
	Name     string     `yaml:"name"`
	Shape    Shape      `yaml:"shape"`
	Position mgl64.Vec3 `yaml:"position"`
	HPR      [3]float64 `yaml:"rotation,omitempty"`
	Velocity mgl64.Vec3 `yaml:"velocity,omitempty"`
	W        float64    `yaml:"w,omitempty"`
	H        float64    `yaml:"h,omitempty"`
	L        float64    `yaml:"l,omitempty"`
	R        float64    `yaml:"r,omitempty"`
	M        float64    `yaml:"m"`
}

// JointDef joins object A to object B, or to the environment when B is empty.
type JointDef struct {
	Type   string     `yaml:"type"`
	A      string     `yaml:"a"`
	B      string     `yaml:"b,omitempty"`
	Anchor mgl64.Vec3 `yaml:"anchor,omitempty"`
}

// GenerateDef drops Count bodies on a jittered grid above the ground.
// Spread is the grid spacing, Height the lowest drop height and Size the
// nominal body size. Seed == 0 uses a time-based seed.
type GenerateDef struct {
	Count  int     `yaml:"count"`
	Seed   int64   `yaml:"seed"`
	Spread float64 `yaml:"spread"`
	Height float64 `yaml:"height"`
	Size   float64 `yaml:"size"`
	Mass   float64 `yaml:"mass"`
	Shape  Shape   `yaml:"shape"`
}
