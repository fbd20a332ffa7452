// Package config loads planekit settings from a JSON file and merges CLI
// flag overrides on top.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chazu/planekit/pkg/coords"
)

// Defaults applied by Resolve.
const (
	DefaultEvalTimeoutMS = 5000
	DefaultMeshCells     = 200
)

// Config holds all configurable settings.
type Config struct {
	// CoordinateSystem names the system scripts start in, e.g.
	// "xyz-right-hand".
	CoordinateSystem string `json:"coordinate_system"`

	// Evaluation and meshing
	EvalTimeoutMS int `json:"eval_timeout_ms"`
	MeshCells     int `json:"mesh_cells"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	CoordinateSystem string
	Timeout          time.Duration
	MeshCells        int
}

// Default returns the configuration used when no file is given.
func Default() Config {
	c := Config{}
	c.Resolve(Flags{})
	return c
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies flag overrides, then fills empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.CoordinateSystem != "" {
		c.CoordinateSystem = flags.CoordinateSystem
	}
	if flags.Timeout > 0 {
		c.EvalTimeoutMS = int(flags.Timeout / time.Millisecond)
	}
	if flags.MeshCells > 0 {
		c.MeshCells = flags.MeshCells
	}

	if c.CoordinateSystem == "" {
		c.CoordinateSystem = coords.XYZRightHand.String()
	}
	if c.EvalTimeoutMS <= 0 {
		c.EvalTimeoutMS = DefaultEvalTimeoutMS
	}
	if c.MeshCells <= 0 {
		c.MeshCells = DefaultMeshCells
	}
}

// System parses CoordinateSystem.
func (c Config) System() (coords.System, error) {
	cs, err := coords.Parse(c.CoordinateSystem)
	if err != nil {
		return 0, fmt.Errorf("config: coordinate_system: %w", err)
	}
	return cs, nil
}

// EvalTimeout returns EvalTimeoutMS as a duration.
func (c Config) EvalTimeout() time.Duration {
	return time.Duration(c.EvalTimeoutMS) * time.Millisecond
}
