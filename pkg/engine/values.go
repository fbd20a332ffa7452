package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/planekit/pkg/plane"
	"github.com/chazu/planekit/pkg/scene"
	"github.com/chazu/planekit/pkg/shape"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// Custom Sexp types carry geometry values between builtins.

type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

type sexpPlane struct {
	surface plane.Surface
}

func (p *sexpPlane) SexpString(ps *zygo.PrintState) string { return p.surface.String() }
func (p *sexpPlane) Type() *zygo.RegisteredType            { return nil }

type sexpSegment struct {
	seg shape.Segment
}

func (s *sexpSegment) SexpString(ps *zygo.PrintState) string { return s.seg.String() }
func (s *sexpSegment) Type() *zygo.RegisteredType            { return nil }

type sexpSphere struct {
	sphere shape.Sphere
}

func (s *sexpSphere) SexpString(ps *zygo.PrintState) string { return s.sphere.String() }
func (s *sexpSphere) Type() *zygo.RegisteredType            { return nil }

type sexpBox struct {
	box sdf.Box3
}

func (b *sexpBox) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("box (%g %g %g)-(%g %g %g)",
		b.box.Min.X, b.box.Min.Y, b.box.Min.Z, b.box.Max.X, b.box.Max.Y, b.box.Max.Z)
}
func (b *sexpBox) Type() *zygo.RegisteredType { return nil }

type sexpLine struct {
	line plane.Line
}

func (l *sexpLine) SexpString(ps *zygo.PrintState) string { return l.line.String() }
func (l *sexpLine) Type() *zygo.RegisteredType            { return nil }

// sexpSolid refers to a solid added to the scene.
type sexpSolid struct {
	solid scene.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(solid-%s %q)", s.solid.Kind, s.solid.Name)
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// Value extraction helpers.

func describe(s zygo.Sexp) string {
	return fmt.Sprintf("%T (%s)", s, s.SexpString(nil))
}

// toFloat64 extracts a float64 from a SexpInt or SexpFloat.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", describe(s))
}

func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected boolean, got %s", describe(s))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %s", describe(s))
}

// toKeywordString accepts both :name and "name".
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %s", describe(s))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toVec3 accepts a vec3 value or an array of three numbers.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	switch v := s.(type) {
	case *sexpVec3:
		return v.vec, nil
	case *zygo.SexpArray:
		if len(v.Val) != 3 {
			return v3.Vec{}, fmt.Errorf("expected 3 components, got %d", len(v.Val))
		}
		var c [3]float64
		for i, e := range v.Val {
			f, err := toFloat64(e)
			if err != nil {
				return v3.Vec{}, fmt.Errorf("component %d: %w", i, err)
			}
			c[i] = f
		}
		return v3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %s", describe(s))
}

func toSurface(s zygo.Sexp) (plane.Surface, error) {
	if p, ok := s.(*sexpPlane); ok {
		return p.surface, nil
	}
	return nil, fmt.Errorf("expected plane, got %s", describe(s))
}

func toSegment(s zygo.Sexp) (shape.Segment, error) {
	if seg, ok := s.(*sexpSegment); ok {
		return seg.seg, nil
	}
	return shape.Segment{}, fmt.Errorf("expected segment, got %s", describe(s))
}

func toBox(s zygo.Sexp) (sdf.Box3, error) {
	if b, ok := s.(*sexpBox); ok {
		return b.box, nil
	}
	return sdf.Box3{}, fmt.Errorf("expected box, got %s", describe(s))
}

// floatArg reads an optional numeric keyword argument.
func floatArg(pa kwArgs, name string, def float64) (float64, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// vecArg reads an optional vec3 keyword argument.
func vecArg(pa kwArgs, name string) (v3.Vec, bool, error) {
	v, ok := pa.kw[name]
	if !ok {
		return v3.Vec{}, false, nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return v3.Vec{}, false, fmt.Errorf("%s: %w", name, err)
	}
	return vec, true, nil
}

// display renders a value for show: strings print bare.
func display(s zygo.Sexp) string {
	if str, ok := s.(*zygo.SexpStr); ok {
		return strings.TrimPrefix(str.S, kwPrefix)
	}
	return s.SexpString(nil)
}

func newFloat(f float64) zygo.Sexp { return &zygo.SexpFloat{Val: f} }
func newBool(b bool) zygo.Sexp     { return &zygo.SexpBool{Val: b} }
func newStr(s string) zygo.Sexp    { return &zygo.SexpStr{S: s} }
func newVec(v v3.Vec) zygo.Sexp    { return &sexpVec3{vec: v} }
