package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"stickview/internal/geometry"
)

// cached holds mesh and material for a primitive type. Created lazily on first draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry draws lit cylinders and boxes. Meshes are created on first use so that GPU
// resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache    map[string]cached
	slices   int32
	viewPos  [3]float32 // camera position, set each frame for specular
	lightPos [3]float32 // point light position, set each frame
	ambient  float32
}

// NewRegistry returns a registry whose cylinders have the given number of radial segments.
func NewRegistry(cylinderSlices int) *Registry {
	if cylinderSlices < 3 {
		cylinderSlices = defaultCylinderSlices
	}
	return &Registry{
		cache:    make(map[string]cached),
		slices:   int32(cylinderSlices),
		lightPos: [3]float32{10, 10, 10},
		ambient:  0.5,
	}
}

// SetLights sets camera position, point light position and ambient intensity (0-1) for this
// frame. Call once per frame before drawing.
func (r *Registry) SetLights(viewPos, lightPos [3]float32, ambient float32) {
	r.viewPos = viewPos
	r.lightPos = lightPos
	r.ambient = ambient
}

const defaultCylinderSlices = 32

func (r *Registry) ensure(key string) cached {
	if c, ok := r.cache[key]; ok {
		return c
	}
	var mesh rl.Mesh
	switch key {
	case "cylinder":
		// Unit radius and height, base at Y=0 and top at Y=1; scaled and rotated per member.
		mesh = rl.GenMeshCylinder(1, 1, int(r.slices))
	default:
		mesh = rl.GenMeshCube(1, 1, 1)
	}
	mtl := rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[key] = c
	return c
}

// DrawCylinder draws a cylinder of the given radius whose axis runs along seg.
// Must be called between BeginMode3D and EndMode3D.
func (r *Registry) DrawCylinder(seg geometry.Segment, radius float32, color rl.Color) {
	c := r.ensure("cylinder")
	axis, angle := geometry.AlignY(seg.Dir)
	scaleM := rl.MatrixScale(radius, float32(seg.Length), radius)
	rotM := rl.MatrixRotate(rl.NewVector3(float32(axis.X), float32(axis.Y), float32(axis.Z)), float32(angle))
	transM := rl.MatrixTranslate(float32(seg.Start.X), float32(seg.Start.Y), float32(seg.Start.Z))
	// Order: scale the unit cylinder, orient +Y along the segment, move its base to the start node.
	transform := rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rotM), transM)
	r.drawMesh(c, transform, color)
}

// DrawBox draws an axis-aligned cube of side size centered on center.
func (r *Registry) DrawBox(center rl.Vector3, size float32, color rl.Color) {
	c := r.ensure("cube")
	transform := rl.MatrixMultiply(rl.MatrixScale(size, size, size), rl.MatrixTranslate(center.X, center.Y, center.Z))
	r.drawMesh(c, transform, color)
}

func (r *Registry) drawMesh(c cached, transform rl.Matrix, color rl.Color) {
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// Unload frees GPU resources. Call before the window closes.
func (r *Registry) Unload() {
	for key, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadMaterial(c.mtl)
		delete(r.cache, key)
	}
}
