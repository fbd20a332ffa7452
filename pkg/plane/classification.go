package plane

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance band around zero used by every classification
// and degeneracy test in the package.
const Epsilon = 1e-10

// Classification is the side of a plane a point or shape lies on.
type Classification int

const (
	InFrontOf  Classification = iota // positive signed distance
	Behind                            // negative signed distance
	Coincident                        // on or straddling the plane
)

func (c Classification) String() string {
	switch c {
	case InFrontOf:
		return "in-front-of"
	case Behind:
		return "behind"
	case Coincident:
		return "coincident"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

// Opposite returns the classification seen from the negated plane.
func (c Classification) Opposite() Classification {
	switch c {
	case InFrontOf:
		return Behind
	case Behind:
		return InFrontOf
	}
	return c
}

func isZero(v float64) bool {
	return math.Abs(v) <= Epsilon
}

// classifyDistance classifies a single signed distance, with tol as the
// width of the coincident band.
func classifyDistance(s, tol float64) Classification {
	if math.Abs(s) <= tol {
		return Coincident
	}
	if s > 0 {
		return InFrontOf
	}
	return Behind
}

// classifyRange classifies the signed distances of two extreme points of a
// shape. The shape is coincident when either point is on the plane or the
// points lie on opposite sides.
func classifyRange(s1, s2 float64) Classification {
	if isZero(s1) || isZero(s2) {
		return Coincident
	}
	lo, hi := min(s1, s2), max(s1, s2)
	if lo > 0 {
		return InFrontOf
	}
	if hi < 0 {
		return Behind
	}
	return Coincident
}
