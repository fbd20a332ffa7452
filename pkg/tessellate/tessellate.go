// Package tessellate turns the solids of a scene into triangle meshes using
// a geometry kernel. Clip planes trim each solid before meshing, and solids
// entirely behind a clip plane are culled. One mesh is produced per
// surviving solid.
package tessellate

import (
	"fmt"

	"github.com/chazu/planekit/pkg/kernel"
	"github.com/chazu/planekit/pkg/plane"
	"github.com/chazu/planekit/pkg/scene"
)

// Result holds the meshes produced for a scene.
type Result struct {
	Meshes []*kernel.Mesh
	// Culled lists the solids dropped because a clip plane had them
	// entirely behind it.
	Culled []string
}

// part is a kernel solid that survived clipping.
type part struct {
	name  string
	solid kernel.Solid
}

// Tessellate builds every solid of sc with k, applies the clip planes and
// meshes what remains. The scene is never mutated.
func Tessellate(sc *scene.Scene, k kernel.Kernel) (*Result, error) {
	res := &Result{}
	if sc == nil {
		return res, nil
	}

	parts, culled, err := build(sc, k)
	if err != nil {
		return nil, err
	}
	res.Culled = culled

	for _, p := range parts {
		mesh, err := k.ToMesh(p.solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for solid %q: %w", p.name, err)
		}
		mesh.PartName = p.name
		res.Meshes = append(res.Meshes, mesh)
	}
	return res, nil
}

// Merge unions every surviving solid of sc into a single mesh named name.
// It returns nil when nothing survives.
func Merge(sc *scene.Scene, k kernel.Kernel, name string) (*kernel.Mesh, error) {
	if sc == nil {
		return nil, nil
	}
	parts, _, err := build(sc, k)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, nil
	}

	merged := parts[0].solid
	for _, p := range parts[1:] {
		merged = k.Union(merged, p.solid)
	}
	mesh, err := k.ToMesh(merged)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for merged scene: %w", err)
	}
	mesh.PartName = name
	return mesh, nil
}

// build places every solid and runs it through the clip planes.
func build(sc *scene.Scene, k kernel.Kernel) ([]part, []string, error) {
	clips := sc.ClipPlanes()

	var parts []part
	var culled []string
	for _, s := range sc.Solids {
		solid, err := placeSolid(k, s)
		if err != nil {
			return nil, nil, err
		}
		solid, keep := clip(k, solid, clips)
		if !keep {
			culled = append(culled, s.Name)
			continue
		}
		parts = append(parts, part{name: s.Name, solid: solid})
	}
	return parts, culled, nil
}

// placeSolid creates the kernel primitive for s, then applies its rotation
// followed by its translation.
func placeSolid(k kernel.Kernel, s scene.Solid) (kernel.Solid, error) {
	var solid kernel.Solid
	switch s.Kind {
	case scene.SolidBox:
		solid = k.Box(s.Size.X, s.Size.Y, s.Size.Z)
	case scene.SolidSphere:
		solid = k.Sphere(s.Radius)
	case scene.SolidCylinder:
		solid = k.Cylinder(s.Height, s.Radius)
	default:
		return nil, fmt.Errorf("tessellate: solid %q has unsupported kind %v", s.Name, s.Kind)
	}

	rot := s.Rotation
	if rot.X != 0 || rot.Y != 0 || rot.Z != 0 {
		solid = k.Rotate(solid, rot.X, rot.Y, rot.Z)
	}

	trans := s.Translation
	if trans.X != 0 || trans.Y != 0 || trans.Z != 0 {
		solid = k.Translate(solid, trans.X, trans.Y, trans.Z)
	}
	return solid, nil
}

// clip trims solid by each clip plane in turn. It reports false as soon as
// the solid lies entirely behind one of them. Solids entirely in front of a
// plane are left untouched by it.
func clip(k kernel.Kernel, solid kernel.Solid, clips []scene.NamedPlane) (kernel.Solid, bool) {
	for _, c := range clips {
		switch kernel.Side(c.Surface, solid) {
		case plane.Behind:
			return nil, false
		case plane.Coincident:
			solid = k.Cut(solid, c.Surface)
		}
	}
	return solid, true
}
