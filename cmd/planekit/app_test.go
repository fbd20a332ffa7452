package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/chazu/planekit/pkg/coords"
	"github.com/chazu/planekit/pkg/engine"
	"github.com/chazu/planekit/pkg/kernel/sdfx"
)

func newTestApp(mesh bool) *App {
	app := NewApp(engine.NewEngine(coords.XYZRightHand), sdfx.NewWithCells(24))
	app.Mesh = mesh
	return app
}

// TestE2EClippedRoom runs the example script through evaluation,
// validation and tessellation.
func TestE2EClippedRoom(t *testing.T) {
	app := newTestApp(true)

	source, err := os.ReadFile("examples/clipped_room.planekit")
	if err != nil {
		t.Fatalf("failed to read clipped_room.planekit: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	m := result.Meshes[0]
	if m.PartName != "cube" {
		t.Errorf("PartName = %q, want %q", m.PartName, "cube")
	}
	if m.Triangles == 0 {
		t.Error("cube mesh has no triangles")
	}
	if m.Color == "" {
		t.Error("cube mesh has no color")
	}

	if len(result.Culled) != 1 || result.Culled[0] != "buried" {
		t.Errorf("Culled = %v, want [buried]", result.Culled)
	}

	var warnedBuried bool
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "buried") {
			warnedBuried = true
		}
	}
	if !warnedBuried {
		t.Errorf("expected a culling warning for buried, got %v", result.Warnings)
	}

	if len(result.Output) != 3 {
		t.Fatalf("expected 3 output lines, got %d: %q", len(result.Output), result.Output)
	}
	if want := "corner in-front-of"; result.Output[1] != want {
		t.Errorf("Output[1] = %q, want %q", result.Output[1], want)
	}
	if !strings.HasPrefix(result.Output[2], "edge segment") {
		t.Errorf("Output[2] = %q, want an edge segment", result.Output[2])
	}
	if len(result.Planes) != 2 {
		t.Errorf("Planes = %v, want 2 entries", result.Planes)
	}
	if result.System != "xyz-right-hand" {
		t.Errorf("System = %q", result.System)
	}
}

// TestE2EPlanesExample runs the plane-only example without meshing.
func TestE2EPlanesExample(t *testing.T) {
	app := newTestApp(false)

	source, err := os.ReadFile("examples/planes.planekit")
	if err != nil {
		t.Fatalf("failed to read planes.planekit: %v", err)
	}

	result := app.Evaluate(string(source))
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Output) != 6 {
		t.Fatalf("expected 6 output lines, got %d: %q", len(result.Output), result.Output)
	}
	if !strings.HasPrefix(result.Value, "line (0.625 0.625 1.25)") {
		t.Errorf("Value = %q, want the line through (0.625 0.625 1.25)", result.Value)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected no meshes without -mesh, got %d", len(result.Meshes))
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := newTestApp(true)
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := newTestApp(true)
	result := app.Evaluate(`(defplane "floor"`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}

	data, err := json.Marshal(result.Errors[0])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"line":`) || !strings.Contains(out, `"message":`) {
		t.Errorf("error JSON = %s, want line and message", out)
	}
	if strings.Contains(out, `"col"`) {
		t.Errorf("error JSON = %s, want no col field", out)
	}
}

// TestE2EValidationBlocksMeshing ensures validation errors stop
// tessellation.
func TestE2EValidationBlocksMeshing(t *testing.T) {
	app := newTestApp(true)
	result := app.Evaluate(`
(solid-box "flat" :size (vec3 10 10 0))
(clip "missing")
`)
	if len(result.Errors) < 2 {
		t.Fatalf("expected errors for the flat box and the missing clip, got %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes, got %d", len(result.Meshes))
	}
}

// TestE2EMerge ensures -merge appends a union mesh.
func TestE2EMerge(t *testing.T) {
	app := newTestApp(true)
	app.Merge = true
	result := app.Evaluate(`
(solid-box "a" :size (vec3 4 4 4))
(solid-box "b" :size (vec3 4 4 4) :at (vec3 6 0 0))
`)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 3 {
		t.Fatalf("expected 3 meshes, got %d", len(result.Meshes))
	}
	if last := result.Meshes[2]; last.PartName != "merged" || last.Triangles == 0 {
		t.Errorf("merged mesh = %+v", last)
	}
}

// TestE2EColorPaletteWrapping ensures colors cycle through the palette.
func TestE2EColorPaletteWrapping(t *testing.T) {
	app := newTestApp(true)

	var sb strings.Builder
	for i := 0; i < len(colorPalette)+1; i++ {
		fmt.Fprintf(&sb, "(solid-sphere \"s%d\" :radius 1 :at (vec3 %d 0 0))\n", i, 3*i)
	}
	result := app.Evaluate(sb.String())
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	n := len(colorPalette)
	if len(result.Meshes) != n+1 {
		t.Fatalf("expected %d meshes, got %d", n+1, len(result.Meshes))
	}
	if result.Meshes[0].Color != result.Meshes[n].Color {
		t.Errorf("color %d = %q, want wrap to %q", n, result.Meshes[n].Color, result.Meshes[0].Color)
	}
}

func TestPrintReport(t *testing.T) {
	var sb strings.Builder
	printReport(&sb, Report{
		System:   "xyz-right-hand",
		Value:    "42",
		Output:   []string{"hello"},
		Planes:   []string{"floor: plane-xy (+z 0)"},
		Meshes:   []MeshData{{PartName: "cube", Triangles: 12}},
		Culled:   []string{"ball"},
		Warnings: []EvalErrorData{{Message: "cube: careful"}},
		Errors:   []EvalErrorData{{Line: 3, Message: "bad"}},
	})
	out := sb.String()
	for _, want := range []string{
		"hello\n",
		"=> 42\n",
		"Planes (xyz-right-hand):",
		"floor: plane-xy (+z 0)",
		"cube",
		"12 triangles",
		"Culled: ball",
		"warning: cube: careful",
		"error: line 3: bad",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
