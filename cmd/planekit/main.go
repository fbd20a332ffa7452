// Command planekit evaluates a plane script and reports the values it
// shows, the planes it defines and any validation findings. With -mesh it
// also tessellates the scene's solids against its clip planes.
//
// Usage:
//
//	planekit [-config planekit.json] [-cs xyz-left-hand] [-mesh] script.planekit
//
// The script is read from stdin when no path is given.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chazu/planekit/pkg/config"
	"github.com/chazu/planekit/pkg/engine"
	"github.com/chazu/planekit/pkg/kernel/sdfx"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	cs := flag.String("cs", "", "Coordinate system (default: xyz-right-hand)")
	timeout := flag.Duration("timeout", 0, "Evaluation timeout (default: 5s)")
	mesh := flag.Bool("mesh", false, "Tessellate the scene's solids")
	merge := flag.Bool("merge", false, "With -mesh, also union all solids into one mesh")
	cells := flag.Int("cells", 0, "Marching cubes resolution (default: 200)")
	asJSON := flag.Bool("json", false, "Print the report as JSON")

	flag.Parse()

	// Load config
	cfg := config.Config{}
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Printf("Error loading config: %v", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		CoordinateSystem: *cs,
		Timeout:          *timeout,
		MeshCells:        *cells,
	})

	system, err := cfg.System()
	if err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}

	source, err := readSource(flag.Args())
	if err != nil {
		log.Printf("Error reading script: %v", err)
		os.Exit(1)
	}

	eng := engine.NewEngine(system)
	eng.Timeout = cfg.EvalTimeout()

	app := NewApp(eng, sdfx.NewWithCells(cfg.MeshCells))
	app.Mesh = *mesh
	app.Merge = *merge

	report := app.Evaluate(source)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Printf("Error encoding report: %v", err)
			os.Exit(1)
		}
	} else {
		printReport(os.Stdout, report)
	}

	if len(report.Errors) > 0 {
		os.Exit(1)
	}
}

// readSource reads the script at args[0], or stdin when args is empty.
func readSource(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// printReport writes the human-readable form of r.
func printReport(w io.Writer, r Report) {
	for _, line := range r.Output {
		fmt.Fprintln(w, line)
	}
	if r.Value != "" {
		fmt.Fprintf(w, "=> %s\n", r.Value)
	}
	if len(r.Planes) > 0 {
		fmt.Fprintf(w, "\nPlanes (%s):\n", r.System)
		for _, p := range r.Planes {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	if len(r.Meshes) > 0 {
		fmt.Fprintln(w, "\nMeshes:")
		for _, m := range r.Meshes {
			fmt.Fprintf(w, "  %-16s %6d triangles\n", m.PartName, m.Triangles)
		}
	}
	if len(r.Culled) > 0 {
		fmt.Fprintf(w, "\nCulled: %s\n", strings.Join(r.Culled, ", "))
	}
	for _, wn := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", wn.Message)
	}
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(w, "error: %s\n", e.Message)
		}
	}
}
