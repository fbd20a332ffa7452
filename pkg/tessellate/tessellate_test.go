package tessellate_test

import (
	"testing"

	"github.com/chazu/planekit/pkg/coords"
	"github.com/chazu/planekit/pkg/kernel"
	"github.com/chazu/planekit/pkg/kernel/sdfx"
	"github.com/chazu/planekit/pkg/plane"
	"github.com/chazu/planekit/pkg/scene"
	"github.com/chazu/planekit/pkg/tessellate"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// newKernel returns a coarse sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return sdfx.NewWithCells(32)
}

// makeBox creates a box solid with the given name and dimensions.
func makeBox(name string, x, y, z float64) scene.Solid {
	return scene.Solid{
		Name: name,
		Kind: scene.SolidBox,
		Size: v3.Vec{X: x, Y: y, Z: z},
	}
}

func TestSingleBox(t *testing.T) {
	sc := scene.New(coords.XYZRightHand)
	sc.AddSolid(makeBox("shelf", 60, 30, 2))

	res, err := tessellate.Tessellate(sc, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(res.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(res.Meshes))
	}

	m := res.Meshes[0]
	if m.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}
	if m.PartName != "shelf" {
		t.Errorf("expected PartName %q, got %q", "shelf", m.PartName)
	}
	if len(res.Culled) != 0 {
		t.Errorf("Culled = %v, want none", res.Culled)
	}
}

func TestAllKinds(t *testing.T) {
	sc := scene.New(coords.XYZRightHand)
	sc.AddSolid(makeBox("box", 10, 10, 10))
	sc.AddSolid(scene.Solid{Name: "ball", Kind: scene.SolidSphere, Radius: 5})
	sc.AddSolid(scene.Solid{Name: "rod", Kind: scene.SolidCylinder, Radius: 2, Height: 20})

	res, err := tessellate.Tessellate(sc, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(res.Meshes) != 3 {
		t.Fatalf("expected 3 meshes, got %d", len(res.Meshes))
	}
	for i, want := range []string{"box", "ball", "rod"} {
		if res.Meshes[i].PartName != want {
			t.Errorf("mesh %d PartName = %q, want %q", i, res.Meshes[i].PartName, want)
		}
		if res.Meshes[i].IsEmpty() {
			t.Errorf("mesh %q should not be empty", want)
		}
	}
}

func TestSolidWithTransform(t *testing.T) {
	sc := scene.New(coords.XYZRightHand)
	s := makeBox("shelf", 100, 50, 10)
	s.Translation = v3.Vec{X: 200, Y: 100, Z: 50}
	sc.AddSolid(s)

	res, err := tessellate.Tessellate(sc, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(res.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(res.Meshes))
	}

	// A 100x50x10 box placed at (200,100,50) spans (200,100,50)-(300,150,60).
	cx, cy, cz := centroid(res.Meshes[0])

	// Use a generous tolerance since marching cubes is approximate.
	const tol = 20.0
	if abs(cx-250) > tol {
		t.Errorf("centroid X = %.1f, expected near 250", cx)
	}
	if abs(cy-125) > tol {
		t.Errorf("centroid Y = %.1f, expected near 125", cy)
	}
	if abs(cz-55) > tol {
		t.Errorf("centroid Z = %.1f, expected near 55", cz)
	}
}

func TestClipCutsStraddlingSolid(t *testing.T) {
	sc := scene.New(coords.XYZRightHand)
	sc.AddPlane("floor", plane.NewXY(true, 4))
	sc.AddClip("floor")
	sc.AddSolid(makeBox("cube", 10, 10, 10))

	res, err := tessellate.Tessellate(sc, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(res.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(res.Meshes))
	}

	m := res.Meshes[0]
	if m.IsEmpty() {
		t.Fatal("clipped mesh should not be empty")
	}
	const tol = 0.5
	for i := 0; i < m.VertexCount(); i++ {
		if z := float64(m.Vertices[i*3+2]); z < 4-tol {
			t.Fatalf("vertex %d has z = %.3f, want >= 4", i, z)
		}
	}
}

func TestClipCullsSolidBehind(t *testing.T) {
	sc := scene.New(coords.XYZRightHand)
	sc.AddPlane("floor", plane.NewXY(true, 0))
	sc.AddClip("floor")
	sc.AddSolid(makeBox("kept", 10, 10, 10))
	sc.AddSolid(scene.Solid{
		Name:        "sunk",
		Kind:        scene.SolidSphere,
		Radius:      2,
		Translation: v3.Vec{Z: -10},
	})

	res, err := tessellate.Tessellate(sc, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(res.Meshes) != 1 || res.Meshes[0].PartName != "kept" {
		t.Fatalf("expected only mesh %q, got %d meshes", "kept", len(res.Meshes))
	}
	if len(res.Culled) != 1 || res.Culled[0] != "sunk" {
		t.Errorf("Culled = %v, want [sunk]", res.Culled)
	}
}

func TestClipLeavesSolidInFront(t *testing.T) {
	k := newKernel()

	plain := scene.New(coords.XYZRightHand)
	plain.AddSolid(makeBox("cube", 10, 10, 10))

	clipped := scene.New(coords.XYZRightHand)
	clipped.AddPlane("below", plane.FromPointNormal(v3.Vec{X: -5, Y: -5, Z: -5}, v3.Vec{X: 1, Y: 1, Z: 1}))
	clipped.AddClip("below")
	clipped.AddSolid(makeBox("cube", 10, 10, 10))

	want, err := tessellate.Tessellate(plain, k)
	if err != nil {
		t.Fatalf("Tessellate(plain) failed: %v", err)
	}
	got, err := tessellate.Tessellate(clipped, k)
	if err != nil {
		t.Fatalf("Tessellate(clipped) failed: %v", err)
	}
	if got.Meshes[0].TriangleCount() != want.Meshes[0].TriangleCount() {
		t.Errorf("triangle count = %d, want %d", got.Meshes[0].TriangleCount(), want.Meshes[0].TriangleCount())
	}
}

func TestUnknownClipIgnored(t *testing.T) {
	sc := scene.New(coords.XYZRightHand)
	sc.AddClip("missing")
	sc.AddSolid(makeBox("cube", 10, 10, 10))

	res, err := tessellate.Tessellate(sc, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(res.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(res.Meshes))
	}
}

func TestUnsupportedKind(t *testing.T) {
	sc := scene.New(coords.XYZRightHand)
	sc.AddSolid(scene.Solid{Name: "odd", Kind: scene.SolidKind(9)})

	if _, err := tessellate.Tessellate(sc, newKernel()); err == nil {
		t.Fatal("expected error for unsupported solid kind")
	}
}

func TestEmptyScene(t *testing.T) {
	res, err := tessellate.Tessellate(scene.New(coords.XYZRightHand), newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(res.Meshes) != 0 {
		t.Fatalf("expected 0 meshes, got %d", len(res.Meshes))
	}

	res, err = tessellate.Tessellate(nil, newKernel())
	if err != nil {
		t.Fatalf("Tessellate(nil) failed: %v", err)
	}
	if len(res.Meshes) != 0 {
		t.Fatalf("expected 0 meshes for nil scene, got %d", len(res.Meshes))
	}
}

func TestMerge(t *testing.T) {
	k := newKernel()
	sc := scene.New(coords.XYZRightHand)
	sc.AddSolid(makeBox("left", 10, 10, 10))
	right := makeBox("right", 10, 10, 10)
	right.Translation = v3.Vec{X: 20}
	sc.AddSolid(right)

	m, err := tessellate.Merge(sc, k, "assembly")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if m == nil || m.IsEmpty() {
		t.Fatal("merged mesh should not be empty")
	}
	if m.PartName != "assembly" {
		t.Errorf("PartName = %q, want %q", m.PartName, "assembly")
	}

	m, err = tessellate.Merge(scene.New(coords.XYZRightHand), k, "none")
	if err != nil {
		t.Fatalf("Merge(empty) failed: %v", err)
	}
	if m != nil {
		t.Errorf("Merge(empty) = %v, want nil", m)
	}
}

func centroid(m *kernel.Mesh) (cx, cy, cz float64) {
	n := m.VertexCount()
	for i := 0; i < n; i++ {
		cx += float64(m.Vertices[i*3])
		cy += float64(m.Vertices[i*3+1])
		cz += float64(m.Vertices[i*3+2])
	}
	return cx / float64(n), cy / float64(n), cz / float64(n)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
