// Package plane implements the plane algebra used by the rest of planekit.
//
// A plane is the set of points satisfying a·x + b·y + c·z + d = 0, where
// (a,b,c) is the normal. Two representations are provided: the general
// Plane, storing all four coefficients, and AxisPlane, a plane
// perpendicular to one coordinate axis that stores only a polarity and an
// offset. Both satisfy the Surface interface, and every query on an
// AxisPlane returns the same answer as the same query on its General form.
//
// Metric queries (distance, projection, classification) use the raw
// coefficients. They are exact only for normalized planes; call Normalize
// first when the normal is not unit length.
//
// Degenerate inputs are reported through return values and never through
// errors or panics: (value, false) results for missing intersections, and
// NaN or +Inf sentinels from SegmentIntersectionFactor.
package plane
