package scene

import (
	"fmt"
	"math"

	"github.com/chazu/planekit/pkg/coords"
	"github.com/chazu/planekit/pkg/plane"
	"github.com/chazu/planekit/pkg/shape"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// SolidKind enumerates the solid primitives a scene can hold.
type SolidKind int

const (
	SolidBox SolidKind = iota
	SolidSphere
	SolidCylinder
)

func (k SolidKind) String() string {
	switch k {
	case SolidBox:
		return "box"
	case SolidSphere:
		return "sphere"
	case SolidCylinder:
		return "cylinder"
	default:
		return fmt.Sprintf("SolidKind(%d)", int(k))
	}
}

// Solid is a primitive placed in the scene. Boxes have their minimum corner
// at the local origin; spheres and cylinders are centered on it, with the
// cylinder axis along Z. Rotation holds Euler angles in degrees applied
// X first, then Y, then Z, before Translation.
type Solid struct {
	Name        string
	Kind        SolidKind
	Size        v3.Vec // box dimensions
	Radius      float64
	Height      float64
	Rotation    v3.Vec
	Translation v3.Vec
}

// LocalBounds returns the bounding box before rotation and translation.
func (s Solid) LocalBounds() sdf.Box3 {
	switch s.Kind {
	case SolidSphere:
		r := v3.Vec{X: s.Radius, Y: s.Radius, Z: s.Radius}
		return sdf.Box3{Min: r.Neg(), Max: r}
	case SolidCylinder:
		e := v3.Vec{X: s.Radius, Y: s.Radius, Z: s.Height / 2}
		return sdf.Box3{Min: e.Neg(), Max: e}
	}
	return sdf.Box3{Max: s.Size}
}

// Transform returns the placement matrix of the solid.
func (s Solid) Transform() sdf.M44 {
	rad := s.Rotation.MulScalar(math.Pi / 180)
	rot := sdf.RotateZ(rad.Z).Mul(sdf.RotateY(rad.Y)).Mul(sdf.RotateX(rad.X))
	return sdf.Translate3d(s.Translation).Mul(rot)
}

// Bounds returns the world-space axis-aligned box enclosing the placed
// local bounds.
func (s Solid) Bounds() sdf.Box3 {
	m := s.Transform()
	corners := shape.Corners(s.LocalBounds())
	first := m.MulPosition(corners[0])
	b := sdf.Box3{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := m.MulPosition(c)
		b.Min = v3.Vec{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = v3.Vec{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}

// NamedPlane is a plane registered under a name.
type NamedPlane struct {
	Name    string
	Surface plane.Surface
}

// Scene is the mutable result of evaluating a script. Planes and solids
// keep their insertion order. The zero value is an empty right-handed
// XYZ scene.
type Scene struct {
	System coords.System
	Planes []NamedPlane
	Solids []Solid
	Clips  []string

	byName map[string]int
}

// New creates an empty scene using cs.
func New(cs coords.System) *Scene {
	return &Scene{System: cs, byName: make(map[string]int)}
}

// AddPlane registers s under name. A later plane with the same name
// replaces the earlier one for lookups; both are kept so validation can
// report the duplicate.
func (sc *Scene) AddPlane(name string, s plane.Surface) {
	if sc.byName == nil {
		sc.byName = make(map[string]int)
	}
	sc.Planes = append(sc.Planes, NamedPlane{Name: name, Surface: s})
	sc.byName[name] = len(sc.Planes) - 1
}

// Plane returns the plane registered under name.
func (sc *Scene) Plane(name string) (plane.Surface, bool) {
	i, ok := sc.byName[name]
	if !ok {
		return nil, false
	}
	return sc.Planes[i].Surface, true
}

// AddSolid appends a solid.
func (sc *Scene) AddSolid(s Solid) {
	sc.Solids = append(sc.Solids, s)
}

// Solid returns the first solid named name.
func (sc *Scene) Solid(name string) (Solid, bool) {
	for _, s := range sc.Solids {
		if s.Name == name {
			return s, true
		}
	}
	return Solid{}, false
}

// AddClip marks the plane called name as a clip plane. Solids keep only the
// part in front of every clip plane.
func (sc *Scene) AddClip(name string) {
	sc.Clips = append(sc.Clips, name)
}

// ClipPlanes returns the clip planes that resolve to registered planes, in
// the order they were added.
func (sc *Scene) ClipPlanes() []NamedPlane {
	var out []NamedPlane
	for _, name := range sc.Clips {
		if s, ok := sc.Plane(name); ok {
			out = append(out, NamedPlane{Name: name, Surface: s})
		}
	}
	return out
}

// PlaneCount returns the number of registered planes.
func (sc *Scene) PlaneCount() int {
	return len(sc.Planes)
}

// SolidCount returns the number of solids.
func (sc *Scene) SolidCount() int {
	return len(sc.Solids)
}
