package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon is the shortest segment still considered drawable.
const epsilon = 1e-9

// Segment is a straight run between two points in world space, e.g. one member.
// Dir is the unit vector from Start to End; Mid is where a centered primitive is placed.
type Segment struct {
	Start  r3.Vec
	End    r3.Vec
	Mid    r3.Vec
	Length float64
	Dir    r3.Vec
}

// NewSegment builds the segment from a to b. ok is false when the points coincide
// or a coordinate is not finite; such segments have no orientation and are not drawn.
func NewSegment(a, b r3.Vec) (s Segment, ok bool) {
	if !Finite(a) || !Finite(b) {
		return Segment{}, false
	}
	d := r3.Sub(b, a)
	l := r3.Norm(d)
	if l < epsilon {
		return Segment{}, false
	}
	return Segment{
		Start:  a,
		End:    b,
		Mid:    r3.Scale(0.5, r3.Add(a, b)),
		Length: l,
		Dir:    r3.Scale(1/l, d),
	}, true
}

// Finite reports whether every component of p is a finite number.
func Finite(p r3.Vec) bool {
	for _, c := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// AlignY returns the axis and angle (radians) of the rotation that takes +Y onto dir.
// Meshes such as cylinders are generated along +Y, so this orients them along a segment.
// dir must be a unit vector.
func AlignY(dir r3.Vec) (axis r3.Vec, angle float64) {
	up := r3.Vec{Y: 1}
	cos := r3.Dot(up, dir)
	switch {
	case cos > 1-epsilon:
		return r3.Vec{X: 1}, 0
	case cos < -1+epsilon:
		// Any axis perpendicular to Y flips it.
		return r3.Vec{X: 1}, math.Pi
	}
	return r3.Unit(r3.Cross(up, dir)), math.Acos(cos)
}

// Bounds is an axis-aligned box grown point by point. The zero value is empty.
type Bounds struct {
	Min r3.Vec
	Max r3.Vec
	n   int
}

// Extend grows b to contain p. Non-finite points are ignored.
func (b *Bounds) Extend(p r3.Vec) {
	if !Finite(p) {
		return
	}
	if b.n == 0 {
		b.Min, b.Max = p, p
	} else {
		b.Min = r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
		b.Max = r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	}
	b.n++
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return b.n == 0
}

// Center returns the middle of the box (origin when empty).
func (b Bounds) Center() r3.Vec {
	if b.n == 0 {
		return r3.Vec{}
	}
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Size returns the box extents along each axis.
func (b Bounds) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Radius is half the box diagonal: the radius of a sphere around Center that holds every point.
func (b Bounds) Radius() float64 {
	if b.n == 0 {
		return 0
	}
	return 0.5 * r3.Norm(b.Size())
}
