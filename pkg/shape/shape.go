// Package shape holds the simple bounded shapes that planes classify and
// intersect: segments, spheres and axis-aligned boxes.
package shape

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Segment is the straight path between two points.
type Segment struct {
	P1, P2 v3.Vec
}

// NewSegment returns the segment from p1 to p2.
func NewSegment(p1, p2 v3.Vec) Segment {
	return Segment{P1: p1, P2: p2}
}

// Direction returns P2 - P1.
func (s Segment) Direction() v3.Vec {
	return s.P2.Sub(s.P1)
}

// Length returns the distance between the endpoints.
func (s Segment) Length() float64 {
	return s.Direction().Length()
}

// At returns the point P1 + t·(P2-P1).
func (s Segment) At(t float64) v3.Vec {
	return s.P1.Add(s.Direction().MulScalar(t))
}

// Reverse returns the segment with its endpoints swapped.
func (s Segment) Reverse() Segment {
	return Segment{P1: s.P2, P2: s.P1}
}

func (s Segment) String() string {
	return fmt.Sprintf("segment (%g %g %g)-(%g %g %g)", s.P1.X, s.P1.Y, s.P1.Z, s.P2.X, s.P2.Y, s.P2.Z)
}

// Sphere is a ball given by center and radius.
type Sphere struct {
	Center v3.Vec
	Radius float64
}

func (s Sphere) String() string {
	return fmt.Sprintf("sphere (%g %g %g) r=%g", s.Center.X, s.Center.Y, s.Center.Z, s.Radius)
}

// Bounds returns the axis-aligned box enclosing the sphere.
func (s Sphere) Bounds() sdf.Box3 {
	r := v3.Vec{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return sdf.Box3{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// NewBox returns the box spanning two opposite corners given in any order.
func NewBox(a, b v3.Vec) sdf.Box3 {
	return sdf.Box3{
		Min: v3.Vec{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: v3.Vec{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// Corners returns the eight vertices of a box.
func Corners(b sdf.Box3) [8]v3.Vec {
	return [8]v3.Vec{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Support returns the box corners minimizing and maximizing the dot product
// with n. They are the extreme points of the box along n.
func Support(b sdf.Box3, n v3.Vec) (lo, hi v3.Vec) {
	lo, hi = b.Min, b.Max
	if n.X < 0 {
		lo.X, hi.X = b.Max.X, b.Min.X
	}
	if n.Y < 0 {
		lo.Y, hi.Y = b.Max.Y, b.Min.Y
	}
	if n.Z < 0 {
		lo.Z, hi.Z = b.Max.Z, b.Min.Z
	}
	return lo, hi
}
