package plane

import (
	"fmt"

	"github.com/chazu/planekit/pkg/coords"
	"github.com/chazu/planekit/pkg/shape"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Axis names the coordinate axis an AxisPlane's normal lies along.
type Axis int

const (
	AxisX Axis = iota // YZ planes
	AxisY             // XZ planes
	AxisZ             // XY planes
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// of returns the component of v along a.
func (a Axis) of(v v3.Vec) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	}
	return v.Z
}

// with returns v with its component along a replaced by x.
func (a Axis) with(v v3.Vec, x float64) v3.Vec {
	switch a {
	case AxisX:
		v.X = x
	case AxisY:
		v.Y = x
	default:
		v.Z = x
	}
	return v
}

// AxisPlane is a plane perpendicular to a coordinate axis. With Positive
// set the normal points toward +Axis and the equation is axis - Offset = 0;
// otherwise the normal points toward -Axis and the equation is
// Offset - axis = 0.
type AxisPlane struct {
	Axis     Axis
	Positive bool
	Offset   float64
}

// NewXY returns the plane z = z0.
func NewXY(positive bool, z0 float64) AxisPlane {
	return AxisPlane{Axis: AxisZ, Positive: positive, Offset: z0}
}

// NewXZ returns the plane y = y0.
func NewXZ(positive bool, y0 float64) AxisPlane {
	return AxisPlane{Axis: AxisY, Positive: positive, Offset: y0}
}

// NewYZ returns the plane x = x0.
func NewYZ(positive bool, x0 float64) AxisPlane {
	return AxisPlane{Axis: AxisX, Positive: positive, Offset: x0}
}

func (p AxisPlane) surface() {}

func (p AxisPlane) sign() float64 {
	if p.Positive {
		return 1
	}
	return -1
}

// Name returns "xy", "xz" or "yz".
func (p AxisPlane) Name() string {
	switch p.Axis {
	case AxisX:
		return "yz"
	case AxisY:
		return "xz"
	}
	return "xy"
}

// Normal returns the unit normal, ±Axis.
func (p AxisPlane) Normal() v3.Vec {
	return p.Axis.with(v3.Vec{}, p.sign())
}

// Coefficients returns the equivalent (a, b, c, d).
func (p AxisPlane) Coefficients() (a, b, c, d float64) {
	n := p.Normal()
	d = p.Offset
	if p.Positive {
		d = -p.Offset
	}
	return n.X, n.Y, n.Z, d
}

// General materializes p as a Plane.
func (p AxisPlane) General() Plane {
	return New(p.Coefficients())
}

// Set absorbs an equation whose normal lies along p.Axis. The polarity
// follows the sign of that component and the other components are ignored.
// The component along p.Axis must be non-zero; otherwise Offset is
// undefined (±Inf or NaN).
func (p *AxisPlane) Set(a, b, c, d float64) {
	k := p.Axis.of(v3.Vec{X: a, Y: b, Z: c})
	p.Positive = k > 0
	p.Offset = -d / k
}

// Clear resets the plane to pass through the origin facing +Axis.
func (p *AxisPlane) Clear() {
	p.Positive = true
	p.Offset = 0
}

// Negate reverses the orientation without moving the plane.
func (p *AxisPlane) Negate() {
	p.Positive = !p.Positive
}

// Absolute makes the normal point toward +Axis.
func (p *AxisPlane) Absolute() {
	p.Positive = true
}

// SetPivot moves the plane along its axis until it passes through pt.
func (p *AxisPlane) SetPivot(pt v3.Vec) {
	p.Offset = p.Axis.of(pt)
}

// Translate moves the plane by the component of v along its axis.
func (p *AxisPlane) Translate(v v3.Vec) {
	p.Offset += p.Axis.of(v)
}

// TranslateAlongNormal moves the plane by dist along its normal.
func (p *AxisPlane) TranslateAlongNormal(dist float64) {
	p.Offset += p.sign() * dist
}

// Pivot returns the point of p on its axis.
func (p AxisPlane) Pivot() v3.Vec {
	return p.Axis.with(v3.Vec{}, p.Offset)
}

// DistanceTo returns the signed distance from p to pt.
func (p AxisPlane) DistanceTo(pt v3.Vec) float64 {
	if p.Positive {
		return p.Axis.of(pt) - p.Offset
	}
	return p.Offset - p.Axis.of(pt)
}

// Projection returns pt moved onto p along the axis.
func (p AxisPlane) Projection(pt v3.Vec) v3.Vec {
	return p.Axis.with(pt, p.Offset)
}

// Classify reports the side of p that pt lies on.
func (p AxisPlane) Classify(pt v3.Vec) Classification {
	return classifyDistance(p.DistanceTo(pt), Epsilon)
}

// ClassifySphere is Coincident when the sphere touches p.
func (p AxisPlane) ClassifySphere(s shape.Sphere) Classification {
	return classifyDistance(p.DistanceTo(s.Center), s.Radius)
}

// ClassifyBox only needs the min and max corners.
func (p AxisPlane) ClassifyBox(b sdf.Box3) Classification {
	return classifyRange(p.DistanceTo(b.Min), p.DistanceTo(b.Max))
}

// ClassifySegment tests both endpoints of s.
func (p AxisPlane) ClassifySegment(s shape.Segment) Classification {
	return classifyRange(p.DistanceTo(s.P1), p.DistanceTo(s.P2))
}

// SegmentIntersectionFactor matches Plane.SegmentIntersectionFactor.
func (p AxisPlane) SegmentIntersectionFactor(s shape.Segment) float64 {
	return segmentFactor(p.DistanceTo(s.P1), p.sign()*p.Axis.of(s.Direction()))
}

// IntersectSegment returns the crossing point of s with p.
func (p AxisPlane) IntersectSegment(s shape.Segment) (v3.Vec, bool) {
	return pointAtFactor(s, p.SegmentIntersectionFactor(s))
}

// IntersectPlane takes the fast path when other is an AxisPlane.
func (p AxisPlane) IntersectPlane(other Surface, cs coords.System) (Line, bool) {
	q, ok := other.(AxisPlane)
	if !ok {
		return intersectEquations(p.General(), other.General(), cs)
	}
	if q.Axis == p.Axis {
		return Line{}, false
	}
	origin := q.Axis.with(p.Axis.with(v3.Vec{}, p.Offset), q.Offset)
	return Line{Origin: origin, Direction: cs.Cross(p.Normal(), q.Normal())}, true
}

// Geogebra renders p as a GeoGebra equation.
func (p AxisPlane) Geogebra() string {
	return geogebra(p.Coefficients())
}

func (p AxisPlane) String() string {
	sign := "+"
	if !p.Positive {
		sign = "-"
	}
	return fmt.Sprintf("plane-%s (%s%s %g)", p.Name(), sign, p.Axis, p.Offset)
}
