// Package orbit implements orbit-style camera controls: the camera circles a target point,
// zooms toward it and pans with it. The math is kept free of the renderer so it can be tested.
package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"stickview/internal/geometry"
)

const (
	// minDistance keeps the camera from collapsing onto the target.
	minDistance = 0.01
	// maxPitch stops the view vector from lining up with the up axis, where the
	// orbit would flip.
	maxPitch = 89.0
)

// Controller is an orbit camera. Position and Target are in world space; Up is +Y.
type Controller struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
	Fovy     float64

	home     r3.Vec
	homeTgt  r3.Vec
	homeFovy float64
}

// New returns a controller at position looking at target. Reset returns to this pose.
func New(position, target r3.Vec, fovy float64) *Controller {
	c := &Controller{
		Position: position,
		Target:   target,
		Up:       r3.Vec{Y: 1},
		Fovy:     fovy,
		home:     position,
		homeTgt:  target,
		homeFovy: fovy,
	}
	c.clampDistance()
	c.Position = r3.Add(c.Target, c.offPole(r3.Sub(c.Position, c.Target)))
	c.home = c.Position
	return c
}

// Reset restores the initial pose.
func (c *Controller) Reset() {
	c.Position, c.Target, c.Fovy = c.home, c.homeTgt, c.homeFovy
	c.Up = r3.Vec{Y: 1}
}

// Distance is the camera's distance from the target.
func (c *Controller) Distance() float64 {
	return r3.Norm(r3.Sub(c.Position, c.Target))
}

// Orbit rotates the camera around the target: delX degrees about the up axis (yaw),
// delY degrees about the camera's right axis (pitch). Pitch stops short of the poles.
func (c *Controller) Orbit(delX, delY float64) {
	view := r3.Sub(c.Position, c.Target)
	if r3.Norm(view) < minDistance {
		view = r3.Vec{Z: minDistance}
	}
	view = c.offPole(view)
	view = r3.NewRotation(degToRad(delX), c.Up).Rotate(view)

	dir := r3.Unit(view)
	pitch := radToDeg(math.Asin(clamp(r3.Dot(dir, c.Up), -1, 1)))
	delY = clamp(pitch+delY, -maxPitch, maxPitch) - pitch
	if delY != 0 {
		right := c.rightOf(dir)
		// positive delY raises the camera
		view = r3.NewRotation(-degToRad(delY), right).Rotate(view)
	}
	c.Position = r3.Add(c.Target, view)
}

// Zoom moves the camera toward (pct > 0) or away from (pct < 0) the target by a fraction
// of the current distance. The camera never reaches the target.
func (c *Controller) Zoom(pct float64) {
	pct = math.Min(pct, 0.9)
	view := r3.Sub(c.Position, c.Target)
	c.Position = r3.Add(c.Target, r3.Scale(1-pct, view))
	c.clampDistance()
}

// Pan slides camera and target together in the view plane. delX moves right, delY moves up,
// both in world units.
func (c *Controller) Pan(delX, delY float64) {
	forward := r3.Unit(r3.Sub(c.Target, c.Position))
	right := c.rightOf(r3.Scale(-1, forward))
	up := r3.Cross(right, forward)
	d := r3.Add(r3.Scale(delX, right), r3.Scale(delY, up))
	c.Position = r3.Add(c.Position, d)
	c.Target = r3.Add(c.Target, d)
}

// Fit re-targets the camera on b and backs it off along the current view direction until
// the whole box fits in the vertical field of view.
func (c *Controller) Fit(b geometry.Bounds) {
	if b.Empty() {
		return
	}
	dir := r3.Sub(c.Position, c.Target)
	if r3.Norm(dir) < minDistance {
		dir = r3.Vec{X: 1, Y: 1, Z: 1}
	}
	radius := math.Max(b.Radius(), 1)
	half := degToRad(c.Fovy) / 2
	dist := radius / math.Sin(half)
	c.Target = b.Center()
	c.Position = r3.Add(c.Target, r3.Scale(dist, r3.Unit(dir)))
}

// PanScale converts a pixel drag into world units at the target's depth for a viewport
// screenHeight pixels tall.
func (c *Controller) PanScale(screenHeight float64) float64 {
	if screenHeight <= 0 {
		return 0
	}
	visible := 2 * c.Distance() * math.Tan(degToRad(c.Fovy)/2)
	return visible / screenHeight
}

func (c *Controller) clampDistance() {
	view := r3.Sub(c.Position, c.Target)
	d := r3.Norm(view)
	if d >= minDistance {
		return
	}
	if d == 0 {
		view = r3.Vec{Z: 1}
		d = 1
	}
	c.Position = r3.Add(c.Target, r3.Scale(minDistance/d, view))
}

// rightOf is the camera's right axis for a view vector dir pointing from the target to the
// camera. Straight above or below the target it falls back to +X.
func (c *Controller) rightOf(dir r3.Vec) r3.Vec {
	right := r3.Cross(c.Up, dir)
	if r3.Norm(right) < 1e-9 {
		return r3.Vec{X: 1}
	}
	return r3.Unit(right)
}

// offPole tilts a view vector that is steeper than maxPitch back to maxPitch, keeping its
// length and heading. A vector along the up axis is tilted towards +Z.
func (c *Controller) offPole(view r3.Vec) r3.Vec {
	d := r3.Norm(view)
	if d == 0 {
		return view
	}
	along := r3.Dot(view, c.Up)
	if math.Abs(along)/d <= math.Sin(degToRad(maxPitch)) {
		return view
	}
	flat := r3.Sub(view, r3.Scale(along, c.Up))
	if r3.Norm(flat) < 1e-9*d {
		flat = r3.Cross(r3.Vec{X: 1}, c.Up)
	}
	pitch := degToRad(math.Copysign(maxPitch, along))
	return r3.Scale(d, r3.Add(
		r3.Scale(math.Cos(pitch), r3.Unit(flat)),
		r3.Scale(math.Sin(pitch), c.Up),
	))
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
