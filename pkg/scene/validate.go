package scene

import (
	"fmt"

	"github.com/chazu/planekit/pkg/plane"
)

// ValidationSeverity indicates whether a validation finding blocks meshing
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks meshing
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Subject  string             // plane or solid name (empty if scene-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Subject, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Subject string
	Message string
}

func (w ValidationWarning) String() string {
	if w.Subject == "" {
		return w.Message
	}
	return w.Subject + ": " + w.Message
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the Tier 1 structural checks: names and clip references.
// The scene is never mutated.
func Validate(sc *Scene) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validatePlaneNames(sc)...)
	errs = append(errs, validateSolidNames(sc)...)
	errs = append(errs, validateClipReferences(sc)...)
	return errs
}

// ValidateAll runs all validation tiers (structural, geometric, clipping)
// and returns a ValidationResult with separated errors and warnings.
func ValidateAll(sc *Scene) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(sc) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{Subject: e.Subject, Message: e.Message})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}

	// Tier 2: geometry of planes and solids.
	geomErrs, geomWarnings := validateGeometry(sc)
	result.Errors = append(result.Errors, geomErrs...)
	result.Warnings = append(result.Warnings, geomWarnings...)

	// Tier 3: clip plane interactions. Skipped when a clip plane is
	// degenerate since its classifications are meaningless.
	if len(geomErrs) == 0 {
		result.Warnings = append(result.Warnings, validateClipping(sc)...)
	}
	return result
}

func validatePlaneNames(sc *Scene) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for _, np := range sc.Planes {
		if np.Name == "" {
			errs = append(errs, ValidationError{
				Message:  "plane has an empty name",
				Severity: SeverityError,
			})
			continue
		}
		if seen[np.Name] {
			errs = append(errs, ValidationError{
				Subject:  np.Name,
				Message:  "plane name defined more than once; the last definition wins",
				Severity: SeverityWarning,
			})
		}
		seen[np.Name] = true
	}
	return errs
}

func validateSolidNames(sc *Scene) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for _, s := range sc.Solids {
		if s.Name == "" {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("%s solid has an empty name", s.Kind),
				Severity: SeverityError,
			})
			continue
		}
		if seen[s.Name] {
			errs = append(errs, ValidationError{
				Subject:  s.Name,
				Message:  "duplicate solid name",
				Severity: SeverityError,
			})
		}
		seen[s.Name] = true
	}
	return errs
}

func validateClipReferences(sc *Scene) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for _, name := range sc.Clips {
		if _, ok := sc.Plane(name); !ok {
			errs = append(errs, ValidationError{
				Subject:  name,
				Message:  "clip references an undefined plane",
				Severity: SeverityError,
			})
			continue
		}
		if seen[name] {
			errs = append(errs, ValidationError{
				Subject:  name,
				Message:  "plane is clipped more than once",
				Severity: SeverityWarning,
			})
		}
		seen[name] = true
	}
	return errs
}

// validateGeometry checks plane normals and solid dimensions.
func validateGeometry(sc *Scene) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	for _, np := range sc.Planes {
		g := np.Surface.General()
		if !g.IsValid() {
			errs = append(errs, ValidationError{
				Subject:  np.Name,
				Message:  "plane normal is zero",
				Severity: SeverityError,
			})
			continue
		}
		if !g.IsNormalized() {
			warnings = append(warnings, ValidationWarning{
				Subject: np.Name,
				Message: fmt.Sprintf("plane normal has length %.4f; distances are scaled", g.Normal().Length()),
			})
		}
	}

	for _, s := range sc.Solids {
		errs = append(errs, validateDimensions(s)...)
	}
	return errs, warnings
}

func validateDimensions(s Solid) []ValidationError {
	positive := func(what string, v float64) []ValidationError {
		if v > 0 {
			return nil
		}
		return []ValidationError{{
			Subject:  s.Name,
			Message:  fmt.Sprintf("%s %s is %.4f, must be positive", s.Kind, what, v),
			Severity: SeverityError,
		}}
	}
	var errs []ValidationError
	switch s.Kind {
	case SolidBox:
		errs = append(errs, positive("dimension X", s.Size.X)...)
		errs = append(errs, positive("dimension Y", s.Size.Y)...)
		errs = append(errs, positive("dimension Z", s.Size.Z)...)
	case SolidSphere:
		errs = append(errs, positive("radius", s.Radius)...)
	case SolidCylinder:
		errs = append(errs, positive("radius", s.Radius)...)
		errs = append(errs, positive("height", s.Height)...)
	}
	return errs
}

// validateClipping warns about clip planes that leave nothing to mesh.
func validateClipping(sc *Scene) []ValidationWarning {
	var warnings []ValidationWarning
	clips := sc.ClipPlanes()

	for i := 0; i < len(clips); i++ {
		for j := i + 1; j < len(clips); j++ {
			p, q := clips[i], clips[j]
			if _, ok := p.Surface.IntersectPlane(q.Surface, sc.System); ok {
				continue
			}
			if p.Surface.Classify(q.Surface.Pivot()) == plane.Behind &&
				q.Surface.Classify(p.Surface.Pivot()) == plane.Behind {
				warnings = append(warnings, ValidationWarning{
					Subject: p.Name,
					Message: fmt.Sprintf("clip planes %q and %q keep disjoint half-spaces %.4f apart",
						p.Name, q.Name, plane.DistanceToPlane(p.Surface, q.Surface)),
				})
			}
		}
	}

	for _, s := range sc.Solids {
		b := s.Bounds()
		for _, c := range clips {
			if c.Surface.ClassifyBox(b) == plane.Behind {
				warnings = append(warnings, ValidationWarning{
					Subject: s.Name,
					Message: fmt.Sprintf("solid lies entirely behind clip plane %q and will be culled", c.Name),
				})
				break
			}
		}
	}
	return warnings
}
