// Package coords describes 3D coordinate systems and the handedness-aware
// operations that depend on them.
//
// There is no package-level default: every operation that needs handedness
// takes a System argument, so callers working in different conventions can
// share the same geometry code.
package coords

import (
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// System identifies the axis layout and handedness of a 3D space.
type System int

const (
	XYZRightHand System = iota // Z up, right-handed (default)
	XYZLeftHand                // Z up, left-handed
	XZYRightHand               // Y up, right-handed
	XZYLeftHand                // Y up, left-handed
)

// Systems lists every known coordinate system in declaration order.
var Systems = []System{XYZRightHand, XYZLeftHand, XZYRightHand, XZYLeftHand}

var systemNames = map[System]string{
	XYZRightHand: "xyz-right-hand",
	XYZLeftHand:  "xyz-left-hand",
	XZYRightHand: "xzy-right-hand",
	XZYLeftHand:  "xzy-left-hand",
}

func (s System) String() string {
	if name, ok := systemNames[s]; ok {
		return name
	}
	return fmt.Sprintf("System(%d)", int(s))
}

// IsLeftHanded reports whether the system is left-handed.
func (s System) IsLeftHanded() bool {
	return s == XYZLeftHand || s == XZYLeftHand
}

// IsRightHanded reports whether the system is right-handed.
func (s System) IsRightHanded() bool {
	return !s.IsLeftHanded()
}

// Up returns the unit vector pointing up in the system.
func (s System) Up() v3.Vec {
	if s == XZYRightHand || s == XZYLeftHand {
		return v3.Vec{Y: 1}
	}
	return v3.Vec{Z: 1}
}

// Cross returns the cross product a×b as seen in the system. Left-handed
// systems negate the right-handed result.
func (s System) Cross(a, b v3.Vec) v3.Vec {
	c := a.Cross(b)
	if s.IsLeftHanded() {
		return c.Neg()
	}
	return c
}

// Parse maps a system name to a System. Names are case-insensitive and
// accept either hyphens or underscores ("XYZ_RIGHT_HAND", "xzy-left-hand").
func Parse(name string) (System, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for s, n := range systemNames {
		if n == key {
			return s, nil
		}
	}
	return XYZRightHand, fmt.Errorf("unknown coordinate system %q", name)
}
