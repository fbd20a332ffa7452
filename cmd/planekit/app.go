package main

import (
	"log"

	"github.com/chazu/planekit/pkg/engine"
	"github.com/chazu/planekit/pkg/kernel"
	"github.com/chazu/planekit/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App runs scripts through the engine and, when meshing is enabled, the
// geometry kernel.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	// Mesh enables tessellation of the scene's solids.
	Mesh bool
	// Merge unions every surviving solid into one extra mesh.
	Merge bool
}

// MeshData summarizes one tessellated solid.
type MeshData struct {
	PartName  string `json:"partName"`
	Color     string `json:"color"`
	Vertices  int    `json:"vertices"`
	Triangles int    `json:"triangles"`
}

// EvalErrorData is a JSON-serializable eval error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Report is the full result of running one script.
type Report struct {
	System   string          `json:"coordinateSystem"`
	Value    string          `json:"value,omitempty"`
	Output   []string        `json:"output"`
	Planes   []string        `json:"planes"`
	Meshes   []MeshData      `json:"meshes"`
	Culled   []string        `json:"culled,omitempty"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates an App from an engine and a kernel.
func NewApp(eng *engine.Engine, k kernel.Kernel) *App {
	return &App{engine: eng, kernel: k}
}

// Evaluate runs source and returns the report. Meshing is skipped when
// evaluation or validation reports errors.
func (a *App) Evaluate(source string) Report {
	report := Report{
		Output:   []string{},
		Planes:   []string{},
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate and validate.
	er, err := a.engine.Check(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		report.Errors = append(report.Errors, EvalErrorData{Message: err.Error()})
		return report
	}

	for _, e := range er.Errors {
		report.Errors = append(report.Errors, EvalErrorData{
			Line:    e.Line,
			Message: e.Message,
		})
	}
	for _, w := range er.Warnings {
		report.Warnings = append(report.Warnings, EvalErrorData{Message: w.String()})
	}
	if er.Result == nil {
		return report
	}

	// Step 2: Copy the script results.
	sc := er.Scene
	report.System = sc.System.String()
	report.Value = er.Value
	report.Output = append(report.Output, er.Output...)
	for _, np := range sc.Planes {
		report.Planes = append(report.Planes, np.Name+": "+np.Surface.String())
	}

	if !a.Mesh || len(report.Errors) > 0 {
		return report
	}

	// Step 3: Tessellate the scene's solids.
	res, err := tessellate.Tessellate(sc, a.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		report.Errors = append(report.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return report
	}
	report.Culled = res.Culled
	for i, m := range res.Meshes {
		report.Meshes = append(report.Meshes, meshData(m, colorPalette[i%len(colorPalette)]))
	}

	if a.Merge {
		merged, err := tessellate.Merge(sc, a.kernel, "merged")
		if err != nil {
			log.Printf("Merge error: %v", err)
			report.Errors = append(report.Errors, EvalErrorData{
				Message: "merge failed: " + err.Error(),
			})
			return report
		}
		if merged != nil {
			report.Meshes = append(report.Meshes, meshData(merged, colorPalette[len(report.Meshes)%len(colorPalette)]))
		}
	}

	return report
}

func meshData(m *kernel.Mesh, color string) MeshData {
	return MeshData{
		PartName:  m.PartName,
		Color:     color,
		Vertices:  m.VertexCount(),
		Triangles: m.TriangleCount(),
	}
}
