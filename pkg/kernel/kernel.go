// Package kernel defines the abstract geometry kernel interface used to
// turn scene solids into meshes. The sdfx subpackage provides the
// implementation; the rest of planekit only sees this interface.
package kernel

import (
	"github.com/chazu/planekit/pkg/plane"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Sphere(radius float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Cut keeps the part of s in front of p.
	Cut(s Solid, p plane.Surface) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}

// Bounds returns the bounding box of s as an sdf.Box3.
func Bounds(s Solid) sdf.Box3 {
	lo, hi := s.BoundingBox()
	return sdf.Box3{
		Min: v3.Vec{X: lo[0], Y: lo[1], Z: lo[2]},
		Max: v3.Vec{X: hi[0], Y: hi[1], Z: hi[2]},
	}
}

// Side classifies the bounding box of s against p.
func Side(p plane.Surface, s Solid) plane.Classification {
	return p.ClassifyBox(Bounds(s))
}
