package plane

import (
	"fmt"

	"github.com/chazu/planekit/pkg/coords"
	"github.com/chazu/planekit/pkg/shape"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Plane is the general plane A·x + B·y + C·z + D = 0. The normal (A,B,C)
// is not required to be unit length; the zero value is not a valid plane.
type Plane struct {
	A, B, C, D float64
}

// New returns the plane with the given coefficients, stored as is.
func New(a, b, c, d float64) Plane {
	return Plane{A: a, B: b, C: c, D: d}
}

// FromPointNormal returns the plane through pivot with the unit normal
// derived from n.
func FromPointNormal(pivot, n v3.Vec) Plane {
	n = n.Normalize()
	return Plane{A: n.X, B: n.Y, C: n.Z, D: -n.Dot(pivot)}
}

// FromVectors returns the plane through pivot spanned by v1 and v2. The
// normal is v1×v2 as seen in cs.
func FromVectors(pivot, v1, v2 v3.Vec, cs coords.System) Plane {
	n := cs.Cross(v1, v2)
	return Plane{A: n.X, B: n.Y, C: n.Z, D: -n.Dot(pivot)}
}

// FromPoints returns the plane through three points. The normal is
// (p2-p1)×(p3-p1) as seen in cs, so the winding of the points and the
// handedness of cs together decide which side is in front.
func FromPoints(p1, p2, p3 v3.Vec, cs coords.System) Plane {
	return FromVectors(p1, p2.Sub(p1), p3.Sub(p1), cs)
}

func (p Plane) surface() {}

// Coefficients returns (A, B, C, D).
func (p Plane) Coefficients() (a, b, c, d float64) {
	return p.A, p.B, p.C, p.D
}

// Normal returns (A, B, C).
func (p Plane) Normal() v3.Vec {
	return v3.Vec{X: p.A, Y: p.B, Z: p.C}
}

// General returns p.
func (p Plane) General() Plane {
	return p
}

// IsValid reports whether the normal is non-zero.
func (p Plane) IsValid() bool {
	return p.A != 0 || p.B != 0 || p.C != 0
}

// IsNormalized reports whether the normal has unit length within Epsilon.
func (p Plane) IsNormalized() bool {
	return isZero(p.Normal().Length2() - 1)
}

// Set stores the coefficients without normalizing them.
func (p *Plane) Set(a, b, c, d float64) {
	p.A, p.B, p.C, p.D = a, b, c, d
}

// SetSurface copies the materialized equation of s.
func (p *Plane) SetSurface(s Surface) {
	p.Set(s.Coefficients())
}

// Normalize scales all four coefficients so the normal has unit length.
// The normal must be non-zero.
func (p *Plane) Normalize() *Plane {
	l := p.Normal().Length()
	p.A /= l
	p.B /= l
	p.C /= l
	p.D /= l
	return p
}

// Negate flips all four coefficients, reversing the orientation of the
// plane without moving it.
func (p *Plane) Negate() {
	p.Set(-p.A, -p.B, -p.C, -p.D)
}

// Absolute negates the whole equation when any normal component is
// negative. The surface is unchanged; its front and back may swap.
func (p *Plane) Absolute() {
	if p.A < 0 || p.B < 0 || p.C < 0 {
		p.Negate()
	}
}

// Clear resets the plane to x = 0.
func (p *Plane) Clear() {
	p.Set(1, 0, 0, 0)
}

// Pivot returns the point of the plane closest to the origin.
func (p Plane) Pivot() v3.Vec {
	n := p.Normal()
	return n.MulScalar(-p.D / n.Length2())
}

// SetPivot moves the plane along its normal until it passes through pt.
func (p *Plane) SetPivot(pt v3.Vec) {
	p.D = -p.Normal().Dot(pt)
}

// DistanceTo returns A·x + B·y + C·z + D.
func (p Plane) DistanceTo(pt v3.Vec) float64 {
	return p.A*pt.X + p.B*pt.Y + p.C*pt.Z + p.D
}

// Projection returns pt moved onto the plane along the normal.
func (p Plane) Projection(pt v3.Vec) v3.Vec {
	return pt.Sub(p.Normal().MulScalar(p.DistanceTo(pt)))
}

// Translate moves the plane by v.
func (p *Plane) Translate(v v3.Vec) {
	p.D -= p.Normal().Dot(v)
}

// TranslateAlongNormal moves the plane by dist along its normal.
func (p *Plane) TranslateAlongNormal(dist float64) {
	p.D -= dist * p.Normal().Length()
}

// Classify reports the side of p that pt lies on.
func (p Plane) Classify(pt v3.Vec) Classification {
	return classifyDistance(p.DistanceTo(pt), Epsilon)
}

// ClassifySphere is Coincident when the sphere touches p, else the side of its center.
func (p Plane) ClassifySphere(s shape.Sphere) Classification {
	return classifyDistance(p.DistanceTo(s.Center), s.Radius)
}

// ClassifyBox tests the two support points of b along the normal.
func (p Plane) ClassifyBox(b sdf.Box3) Classification {
	lo, hi := shape.Support(b, p.Normal())
	return classifyRange(p.DistanceTo(lo), p.DistanceTo(hi))
}

// ClassifySegment tests both endpoints of s.
func (p Plane) ClassifySegment(s shape.Segment) Classification {
	return classifyRange(p.DistanceTo(s.P1), p.DistanceTo(s.P2))
}

// SegmentIntersectionFactor returns t in [0,1], NaN for no crossing or
// +Inf when s lies in p.
func (p Plane) SegmentIntersectionFactor(s shape.Segment) float64 {
	dir := s.Direction()
	return segmentFactor(p.DistanceTo(s.P1), p.A*dir.X+p.B*dir.Y+p.C*dir.Z)
}

// IntersectSegment returns the crossing point of s with p.
func (p Plane) IntersectSegment(s shape.Segment) (v3.Vec, bool) {
	return pointAtFactor(s, p.SegmentIntersectionFactor(s))
}

// IntersectPlane returns the line shared with other, oriented by cs.
func (p Plane) IntersectPlane(other Surface, cs coords.System) (Line, bool) {
	return intersectEquations(p, other.General(), cs)
}

// Geogebra renders p as a GeoGebra equation.
func (p Plane) Geogebra() string {
	return geogebra(p.A, p.B, p.C, p.D)
}

func (p Plane) String() string {
	return fmt.Sprintf("plane (%g %g %g %g)", p.A, p.B, p.C, p.D)
}
