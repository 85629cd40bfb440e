package scene

import (
	"strings"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"stickview/internal/geometry"
	"stickview/internal/model"
	"stickview/internal/orbit"
	"stickview/internal/primitives"
)

const (
	gridMinExtent  = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	// gridMaxLines caps lines per direction so a very large model does not flood the frame.
	gridMaxLines = 400
)

// Style controls member and support appearance.
type Style struct {
	MemberRadius  float32
	MemberSlices  int
	MemberColor   rl.Color
	SupportSize   float32
	SupportColor  rl.Color
	SupportColors map[string]rl.Color // by lower-cased support type; falls back to SupportColor
}

// Lights is the scene lighting: an ambient term and one point light.
type Lights struct {
	Ambient    float32
	PointLight [3]float32
}

type support struct {
	pos   rl.Vector3
	color rl.Color
}

// Scene holds the orbit camera and the drawable form of the current model.
// Update runs camera input; Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Orbit       *orbit.Controller
	GridVisible bool
	// OrbitSpeed is degrees per pixel of drag; ZoomStep is the fraction of distance per wheel notch.
	OrbitSpeed float32
	ZoomStep   float32

	style    Style
	lights   Lights
	prims    *primitives.Registry
	members  []geometry.Segment
	supports []support
	bounds   geometry.Bounds
	grid     float32 // grid half-extent in world units
}

// New returns an empty scene viewed through ctrl.
func New(ctrl *orbit.Controller, style Style, lights Lights) *Scene {
	return &Scene{
		Orbit:       ctrl,
		GridVisible: true,
		OrbitSpeed:  0.3,
		ZoomStep:    0.1,
		style:       style,
		lights:      lights,
		prims:       primitives.NewRegistry(style.MemberSlices),
		grid:        gridMinExtent,
	}
}

// SetModel replaces what is drawn. The previous model is dropped.
func (s *Scene) SetModel(r model.Resolved) {
	s.members = s.members[:0]
	for _, m := range r.Members {
		s.members = append(s.members, m.Segment)
	}
	s.supports = s.supports[:0]
	for _, sp := range r.Supports {
		s.supports = append(s.supports, support{pos: vec(sp.Pos), color: s.supportColor(sp.Type)})
	}
	s.bounds = r.Bounds
	s.grid = gridExtent(r.Bounds)
}

// Clear drops the current model.
func (s *Scene) Clear() {
	s.SetModel(model.Resolved{})
}

func (s *Scene) supportColor(typ string) rl.Color {
	if c, ok := s.style.SupportColors[strings.ToLower(strings.TrimSpace(typ))]; ok {
		return c
	}
	return s.style.SupportColor
}

// gridExtent sizes the grid to cover the model footprint, in whole major steps.
func gridExtent(b geometry.Bounds) float32 {
	if b.Empty() {
		return gridMinExtent
	}
	reach := math32.Max(
		math32.Max(math32.Abs(float32(b.Min.X)), math32.Abs(float32(b.Max.X))),
		math32.Max(math32.Abs(float32(b.Min.Z)), math32.Abs(float32(b.Max.Z))),
	)
	ext := math32.Ceil(reach*1.2/gridMajorStep) * gridMajorStep
	return math32.Min(math32.Max(ext, gridMinExtent), gridMaxLines/2*gridMinorStep*gridMajorStep)
}

// Bounds returns the box around the model's nodes.
func (s *Scene) Bounds() geometry.Bounds {
	return s.bounds
}

// Counts returns how many members and supports are drawn.
func (s *Scene) Counts() (members, supports int) {
	return len(s.members), len(s.supports)
}

// SetGridVisible sets whether the ground grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Fit frames the whole model.
func (s *Scene) Fit() {
	s.Orbit.Fit(s.bounds)
}

// Update runs once per frame. When input is enabled: left drag orbits, right drag pans,
// the wheel zooms.
func (s *Scene) Update(inputEnabled bool) {
	if !inputEnabled {
		return
	}
	delta := rl.GetMouseDelta()
	switch {
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		s.Orbit.Orbit(float64(-delta.X*s.OrbitSpeed), float64(delta.Y*s.OrbitSpeed))
	case rl.IsMouseButtonDown(rl.MouseButtonRight), rl.IsMouseButtonDown(rl.MouseButtonMiddle):
		k := s.Orbit.PanScale(float64(rl.GetScreenHeight()))
		s.Orbit.Pan(float64(-delta.X)*k, float64(delta.Y)*k)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.Orbit.Zoom(float64(wheel * s.ZoomStep))
	}
}

// Camera returns the raylib camera for the current orbit pose.
func (s *Scene) Camera() rl.Camera3D {
	return rl.Camera3D{
		Position:   vec(s.Orbit.Position),
		Target:     vec(s.Orbit.Target),
		Up:         vec(s.Orbit.Up),
		Fovy:       float32(s.Orbit.Fovy),
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the 3D scene. Call after ClearBackground and before 2D overlays.
func (s *Scene) Draw() {
	cam := s.Camera()
	s.prims.SetLights(
		[3]float32{cam.Position.X, cam.Position.Y, cam.Position.Z},
		s.lights.PointLight,
		s.lights.Ambient,
	)
	rl.BeginMode3D(cam)
	if s.GridVisible {
		drawGrid(s.grid)
	}
	for _, seg := range s.members {
		s.prims.DrawCylinder(seg, s.style.MemberRadius, s.style.MemberColor)
	}
	for _, sp := range s.supports {
		s.prims.DrawBox(sp.pos, s.style.SupportSize, sp.color)
	}
	rl.EndMode3D()
}

// Unload frees GPU resources.
func (s *Scene) Unload() {
	s.prims.Unload()
}

func vec(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// drawGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid(extent float32) {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	ext := int(extent)
	// Large grids only draw major lines.
	step := gridMinorStep
	if 2*ext/gridMinorStep > gridMaxLines {
		step = gridMajorStep
	}
	var start, end rl.Vector3
	for i := -ext; i <= ext; i += step {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), 0, -extent
		end.X, end.Y, end.Z = float32(i), 0, extent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -extent, 0, float32(i)
		end.X, end.Y, end.Z = extent, 0, float32(i)
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	rl.DrawLine3D(rl.NewVector3(-extent, 0, 0), rl.NewVector3(extent, 0, 0), axisX)
	rl.DrawLine3D(rl.NewVector3(0, -extent, 0), rl.NewVector3(0, extent, 0), axisY)
	rl.DrawLine3D(rl.NewVector3(0, 0, -extent), rl.NewVector3(0, 0, extent), axisZ)
}
