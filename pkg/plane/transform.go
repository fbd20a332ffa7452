package plane

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

func toMgl(v v3.Vec) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) v3.Vec {
	return v3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// Quat returns the rotation of angle radians around axis. The axis does
// not need to be unit length.
func Quat(axis v3.Vec, angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, toMgl(axis.Normalize()))
}

// Rotate rotates the plane by q around its own pivot.
func (p *Plane) Rotate(q mgl64.Quat) {
	p.RotateAround(q, p.Pivot())
}

// RotateAround rotates the plane by q around pivot: the normal is rotated
// and the plane is moved so it passes through the rotated image of its
// current pivot.
func (p *Plane) RotateAround(q mgl64.Quat, pivot v3.Vec) {
	ref := p.Pivot()
	n := fromMgl(q.Rotate(toMgl(p.Normal())))
	moved := pivot.Add(fromMgl(q.Rotate(toMgl(ref.Sub(pivot)))))
	p.Set(n.X, n.Y, n.Z, -n.Dot(moved))
}

// RotateAxisAngle rotates the plane by angle radians around axis, pivoting
// on the plane's own pivot.
func (p *Plane) RotateAxisAngle(axis v3.Vec, angle float64) {
	p.Rotate(Quat(axis, angle))
}

// Transform applies the affine transform m around the plane's own pivot.
func (p *Plane) Transform(m sdf.M44) {
	p.TransformAround(m, p.Pivot())
}

// TransformAround applies m with pivot as the fixed point of its linear
// part. The normal is transformed as a direction and the current pivot as
// a position relative to pivot.
func (p *Plane) TransformAround(m sdf.M44, pivot v3.Vec) {
	ref := p.Pivot()
	n := m.MulPosition(p.Normal()).Sub(m.MulPosition(v3.Vec{}))
	moved := pivot.Add(m.MulPosition(ref.Sub(pivot)))
	p.Set(n.X, n.Y, n.Z, -n.Dot(moved))
}
