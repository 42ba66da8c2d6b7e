package viewer

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"rigid-sim/internal/frame"
	"rigid-sim/internal/physics"
)

const (
	groundExtent   = 20
	gridMajorStep  = 5
	shadowLift     = 0.002
	capsuleShadows = 5
)

var (
	skyColor    = rl.NewColor(102, 153, 204, 255)
	groundColor = rl.NewColor(128, 115, 90, 255)
	bodyColors  = []rl.Color{
		rl.NewColor(230, 160, 60, 255),
		rl.NewColor(90, 170, 220, 255),
		rl.NewColor(200, 90, 90, 255),
		rl.NewColor(120, 200, 110, 255),
	}
	shadowColor = rl.NewColor(0, 0, 0, 90)
	lightDir    = [3]float32{0.3, -0.4, 1}
	ambient     = [4]float32{0.35, 0.35, 0.38, 1}
)

// Texture files are tried in order under the texture path. raylib cannot
// read the .ppm files drawstuff ships, so PNG comes first.
var (
	groundTextures = []string{"ground.png", "ground.jpg", "ground.bmp"}
	skyTextures    = []string{"sky.png", "sky.jpg", "sky.bmp"}
)

// renderer owns the GPU resources. They are created after the window exists.
type renderer struct {
	opts           frame.Options
	rings, slices  int32
	box            rl.Mesh
	boxMtl         rl.Material
	shadowMtl      rl.Material
	ground         rl.Mesh
	groundMtl      rl.Material
	groundTex      rl.Texture2D
	skyTex         rl.Texture2D
	lightDirLoc    int32
	ambientLoc     int32
	litShader      rl.Shader
	groundTextured bool
}

func newRenderer(opts frame.Options, quality int) *renderer {
	r := &renderer{opts: opts}
	r.rings, r.slices = frame.SphereSegments(quality)

	r.box = rl.GenMeshCube(1, 1, 1)
	r.boxMtl = rl.LoadMaterialDefault()
	r.litShader = rl.LoadShaderFromMemory(litVS, litFS)
	if rl.IsShaderValid(r.litShader) {
		r.boxMtl.Shader = r.litShader
		r.lightDirLoc = rl.GetShaderLocation(r.litShader, "lightDir")
		r.ambientLoc = rl.GetShaderLocation(r.litShader, "ambient")
	}
	r.shadowMtl = rl.LoadMaterialDefault()
	setAlbedo(&r.shadowMtl, shadowColor)

	r.ground = rl.GenMeshPlane(2*groundExtent, 2*groundExtent, 1, 1)
	r.groundMtl = rl.LoadMaterialDefault()
	setAlbedo(&r.groundMtl, groundColor)
	if !opts.NoTextures {
		if tex, ok := loadTexture(opts.TexturePath, groundTextures); ok {
			rl.SetTextureWrap(tex, rl.TextureWrapRepeat)
			rl.SetMaterialTexture(&r.groundMtl, rl.MapAlbedo, tex)
			setAlbedo(&r.groundMtl, rl.White)
			r.groundTex = tex
			r.groundTextured = true
		}
		if tex, ok := loadTexture(opts.TexturePath, skyTextures); ok {
			r.skyTex = tex
		}
	}
	return r
}

func loadTexture(dir string, names []string) (rl.Texture2D, bool) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		tex := rl.LoadTexture(path)
		if rl.IsTextureValid(tex) {
			return tex, true
		}
	}
	return rl.Texture2D{}, false
}

func setAlbedo(m *rl.Material, c rl.Color) {
	if albedo := m.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = c
	}
}

func (r *renderer) unload() {
	rl.UnloadMesh(&r.box)
	rl.UnloadMesh(&r.ground)
	if rl.IsTextureValid(r.groundTex) {
		rl.UnloadTexture(r.groundTex)
	}
	if rl.IsTextureValid(r.skyTex) {
		rl.UnloadTexture(r.skyTex)
	}
}

func (r *renderer) draw(cam rl.Camera3D, scene frame.Scene) {
	rl.ClearBackground(skyColor)
	if rl.IsTextureValid(r.skyTex) {
		src := rl.NewRectangle(0, 0, float32(r.skyTex.Width), float32(r.skyTex.Height))
		dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		rl.DrawTexturePro(r.skyTex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	}
	if rl.IsShaderValid(r.litShader) {
		ld, amb := lightDir, ambient
		rl.SetShaderValue(r.litShader, r.lightDirLoc, ld[:], rl.ShaderUniformVec3)
		rl.SetShaderValue(r.litShader, r.ambientLoc, amb[:], rl.ShaderUniformVec4)
	}

	rl.BeginMode3D(cam)
	i := 0
	scene.EachGeom(func(g *physics.Geom) {
		if g.Class() == physics.PlaneClass {
			r.drawPlane(g)
			return
		}
		if !r.opts.NoShadows {
			r.drawShadow(g)
		}
		r.drawBody(g, bodyColors[i%len(bodyColors)])
		i++
	})
	rl.EndMode3D()
}

// drawPlane draws a finite patch of a plane around its closest point to the origin.
func (r *renderer) drawPlane(g *physics.Geom) {
	n, d := g.Plane()
	center := n.Mul(d)
	// raylib planes lie in XZ; rotate +y onto the plane normal.
	q := mgl64.QuatBetweenVectors(mgl64.Vec3{0, 1, 0}, n)
	transform := rl.MatrixMultiply(toMatrix(q), rl.MatrixTranslate(float32(center[0]), float32(center[1]), float32(center[2])))
	rl.DrawMesh(r.ground, r.groundMtl, transform)
	if !r.groundTextured && n == (mgl64.Vec3{0, 0, 1}) {
		drawGrid(float32(d))
	}
}

func (r *renderer) drawBody(g *physics.Geom, c rl.Color) {
	p := vec(g.Position())
	switch g.Class() {
	case physics.SphereClass:
		rl.DrawSphereEx(p, float32(g.Radius()), r.rings, r.slices, c)
	case physics.BoxClass:
		setAlbedo(&r.boxMtl, c)
		rl.DrawMesh(r.box, r.boxMtl, boxTransform(g, rl.MatrixIdentity()))
	case physics.CapsuleClass:
		a, b := g.Segment()
		rl.DrawCapsule(vec(a), vec(b), float32(g.Radius()), r.slices, r.rings/2, c)
	}
}

// drawShadow projects g straight down onto z = 0.
func (r *renderer) drawShadow(g *physics.Geom) {
	switch g.Class() {
	case physics.SphereClass:
		drawDisc(g.Position(), g.Radius(), r.slices)
	case physics.BoxClass:
		flatten := rl.MatrixScale(1, 1, 0)
		t := boxTransform(g, flatten)
		t.M14 = shadowLift
		rl.DrawMesh(r.box, r.shadowMtl, t)
	case physics.CapsuleClass:
		a, b := g.Segment()
		for k := 0; k < capsuleShadows; k++ {
			f := float64(k) / (capsuleShadows - 1)
			drawDisc(a.Add(b.Sub(a).Mul(f)), g.Radius(), r.slices)
		}
	}
}

func drawDisc(center mgl64.Vec3, radius float64, slices int32) {
	bottom := rl.NewVector3(float32(center[0]), float32(center[1]), shadowLift/2)
	top := rl.NewVector3(float32(center[0]), float32(center[1]), shadowLift)
	rl.DrawCylinderEx(bottom, top, float32(radius), float32(radius), slices, shadowColor)
}

// boxTransform scales the unit cube to the box size, rotates it, applies
// post, then moves it into place.
func boxTransform(g *physics.Geom, post rl.Matrix) rl.Matrix {
	l := g.Lengths()
	p := g.Position()
	m := rl.MatrixMultiply(rl.MatrixScale(float32(l[0]), float32(l[1]), float32(l[2])), toMatrix(g.Rotation()))
	m = rl.MatrixMultiply(m, post)
	return rl.MatrixMultiply(m, rl.MatrixTranslate(float32(p[0]), float32(p[1]), float32(p[2])))
}

func toMatrix(q mgl64.Quat) rl.Matrix {
	return rl.QuaternionToMatrix(rl.NewQuaternion(float32(q.V[0]), float32(q.V[1]), float32(q.V[2]), float32(q.W)))
}

func vec(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

// drawGrid draws major and minor lines on the plane z = h with x (red) and y (green) axes.
func drawGrid(h float32) {
	minor := rl.NewColor(60, 60, 60, 80)
	major := rl.NewColor(40, 40, 40, 140)
	var start, end rl.Vector3
	for i := -groundExtent; i <= groundExtent; i++ {
		c := minor
		if i%gridMajorStep == 0 {
			c = major
		}
		start.X, start.Y, start.Z = float32(i), -groundExtent, h+shadowLift
		end.X, end.Y, end.Z = float32(i), groundExtent, h+shadowLift
		rl.DrawLine3D(start, end, c)
		start.X, start.Y = -groundExtent, float32(i)
		end.X, end.Y = groundExtent, float32(i)
		rl.DrawLine3D(start, end, c)
	}
	rl.DrawLine3D(rl.NewVector3(0, 0, h+2*shadowLift), rl.NewVector3(1, 0, h+2*shadowLift), rl.Red)
	rl.DrawLine3D(rl.NewVector3(0, 0, h+2*shadowLift), rl.NewVector3(0, 1, h+2*shadowLift), rl.Green)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 fragNormal;
void main() {
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 lightDir;
uniform vec4 ambient;
out vec4 finalColor;
void main() {
  float NdotL = max(dot(normalize(fragNormal), normalize(lightDir)), 0.0);
  finalColor = vec4(colDiffuse.rgb * (ambient.rgb + NdotL * 0.7), colDiffuse.a);
}
`
)
