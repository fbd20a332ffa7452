package plane

import (
	"fmt"
	"math"

	"github.com/chazu/planekit/pkg/coords"
	"github.com/chazu/planekit/pkg/shape"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Line is the intersection of two planes: the points Origin + t·Direction.
// Origin is the point of the line closest to the world origin. Direction is
// not normalized.
type Line struct {
	Origin    v3.Vec
	Direction v3.Vec
}

// At returns Origin + t·Direction.
func (l Line) At(t float64) v3.Vec {
	return l.Origin.Add(l.Direction.MulScalar(t))
}

// Segment returns the segment from Origin to Origin + Direction.
func (l Line) Segment() shape.Segment {
	return shape.NewSegment(l.Origin, l.At(1))
}

func (l Line) String() string {
	return fmt.Sprintf("line (%g %g %g) dir (%g %g %g)",
		l.Origin.X, l.Origin.Y, l.Origin.Z, l.Direction.X, l.Direction.Y, l.Direction.Z)
}

// ClipBox returns the part of the line inside b, ordered along Direction.
// It reports false when the line misses the box.
func (l Line) ClipBox(b sdf.Box3) (shape.Segment, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for _, ax := range []Axis{AxisX, AxisY, AxisZ} {
		o, d := ax.of(l.Origin), ax.of(l.Direction)
		lo, hi := ax.of(b.Min), ax.of(b.Max)
		if isZero(d) {
			if o < lo || o > hi {
				return shape.Segment{}, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return shape.Segment{}, false
		}
	}
	if math.IsInf(tmin, 0) || math.IsInf(tmax, 0) {
		// zero direction
		return shape.Segment{}, false
	}
	return shape.NewSegment(l.At(tmin), l.At(tmax)), true
}

// segmentFactor solves dist1 + t·denom = 0 where dist1 is the signed
// distance of the first endpoint and denom is n·(P2-P1).
func segmentFactor(dist1, denom float64) float64 {
	if isZero(denom) {
		if isZero(dist1) {
			return math.Inf(1)
		}
		return math.NaN()
	}
	// Endpoints inside the epsilon band hit at any slope.
	switch {
	case isZero(dist1):
		return 0
	case isZero(dist1 + denom):
		return 1
	}
	t := -dist1 / denom
	switch {
	case t >= 0 && t <= 1:
		return t
	case t < 0 && t >= -Epsilon:
		return 0
	case t > 1 && t <= 1+Epsilon:
		return 1
	}
	return math.NaN()
}

// pointAtFactor turns a factor from segmentFactor into a point.
func pointAtFactor(s shape.Segment, t float64) (v3.Vec, bool) {
	switch {
	case math.IsNaN(t):
		return v3.Vec{}, false
	case math.IsInf(t, 0):
		return s.P1, true
	}
	return s.At(t), true
}

// intersectEquations intersects two general planes. The origin of the
// line is ((d2·n1 - d1·n2) × u) / |u|² with u = n1×n2, which is the same in
// both handedness conventions because the sign of u cancels out.
func intersectEquations(p, q Plane, cs coords.System) (Line, bool) {
	n1, n2 := p.Normal(), q.Normal()
	u := n1.Cross(n2)
	u2 := u.Length2()
	if isZero(u2) {
		return Line{}, false
	}
	v := n1.MulScalar(q.D).Sub(n2.MulScalar(p.D))
	origin := v.Cross(u).DivScalar(u2)
	return Line{Origin: origin, Direction: cs.Cross(n1, n2)}, true
}
