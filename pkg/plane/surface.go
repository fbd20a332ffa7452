package plane

import (
	"github.com/chazu/planekit/pkg/coords"
	"github.com/chazu/planekit/pkg/shape"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Surface is implemented by Plane and AxisPlane only.
type Surface interface {
	// Coefficients returns (a, b, c, d) of the plane equation.
	Coefficients() (a, b, c, d float64)
	// Normal returns (a, b, c).
	Normal() v3.Vec
	// General materializes the surface as a general plane.
	General() Plane

	// Pivot returns the point of the plane closest to the origin.
	Pivot() v3.Vec
	// DistanceTo returns the signed distance a·x + b·y + c·z + d.
	DistanceTo(p v3.Vec) float64
	// Projection returns the orthogonal projection of p onto the plane.
	Projection(p v3.Vec) v3.Vec

	Classify(p v3.Vec) Classification
	ClassifySphere(s shape.Sphere) Classification
	ClassifyBox(b sdf.Box3) Classification
	ClassifySegment(s shape.Segment) Classification

	// SegmentIntersectionFactor returns the parameter t in [0,1] at which the
	// segment crosses the plane, +Inf when the segment lies in the plane, or
	// NaN when there is no crossing.
	SegmentIntersectionFactor(s shape.Segment) float64
	// IntersectSegment returns the crossing point, or the first endpoint
	// when the segment lies in the plane.
	IntersectSegment(s shape.Segment) (v3.Vec, bool)
	// IntersectPlane returns the line shared with other. The line direction
	// follows the handedness of cs; the origin does not depend on it.
	IntersectPlane(other Surface, cs coords.System) (Line, bool)

	// Geogebra renders the equation in GeoGebra input syntax.
	Geogebra() string
	String() string

	surface()
}

var (
	_ Surface = Plane{}
	_ Surface = AxisPlane{}
)

// IntersectsPoint reports whether p lies on s.
func IntersectsPoint(s Surface, p v3.Vec) bool {
	return s.Classify(p) == Coincident
}

// IntersectsSphere reports whether the sphere touches s.
func IntersectsSphere(s Surface, sp shape.Sphere) bool {
	return s.ClassifySphere(sp) == Coincident
}

// IntersectsBox reports whether the box touches s.
func IntersectsBox(s Surface, b sdf.Box3) bool {
	return s.ClassifyBox(b) == Coincident
}

// IntersectsSegment reports whether the segment touches s.
func IntersectsSegment(s Surface, seg shape.Segment) bool {
	return s.ClassifySegment(seg) == Coincident
}

// DistanceToSphere returns 0 when the sphere touches s, otherwise the
// signed gap between the plane and the sphere surface.
func DistanceToSphere(s Surface, sp shape.Sphere) float64 {
	dist := s.DistanceTo(sp.Center)
	switch {
	case dist > sp.Radius:
		return dist - sp.Radius
	case dist < -sp.Radius:
		return dist + sp.Radius
	}
	return 0
}

// DistanceToBox returns 0 when the box straddles s, otherwise the signed
// distance of the box corner nearest to the plane.
func DistanceToBox(s Surface, b sdf.Box3) float64 {
	lo, hi := shape.Support(b, s.Normal())
	if dlo := s.DistanceTo(lo); dlo > 0 {
		return dlo
	}
	if dhi := s.DistanceTo(hi); dhi < 0 {
		return dhi
	}
	return 0
}

// DistanceToPlane returns the distance between two parallel surfaces, and 0
// when they are not parallel.
func DistanceToPlane(s, other Surface) float64 {
	a1, b1, c1, d1 := s.Coefficients()
	a2, b2, c2, d2 := other.Coefficients()
	n1 := v3.Vec{X: a1, Y: b1, Z: c1}
	n2 := v3.Vec{X: a2, Y: b2, Z: c2}
	l1, l2 := n1.Length(), n2.Length()
	n1 = n1.DivScalar(l1)
	n2 = n2.DivScalar(l2)
	if n1.Cross(n2).Length() > Epsilon {
		return 0
	}
	d1 /= l1
	d2 /= l2
	if n1.Dot(n2) < 0 {
		d2 = -d2
	}
	if d1 <= d2 {
		return d2 - d1
	}
	return d1 - d2
}
