package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/planekit/pkg/coords"
	"github.com/chazu/planekit/pkg/plane"
	"github.com/chazu/planekit/pkg/scene"
	"github.com/chazu/planekit/pkg/shape"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// session is the state one evaluation builds up.
type session struct {
	scene  *scene.Scene
	output []string
}

func (s *session) system() coords.System {
	return s.scene.System
}

// builtinFunc is the zygomys user function signature.
type builtinFunc = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// planeOp adapts a plane operation to both surface kinds. Axis planes are
// updated in place when onAxis is given; otherwise they are widened to a
// general plane first.
func planeOp(s plane.Surface, onPlane func(*plane.Plane), onAxis func(*plane.AxisPlane)) plane.Surface {
	switch p := s.(type) {
	case plane.AxisPlane:
		if onAxis != nil {
			onAxis(&p)
			return p
		}
		g := p.General()
		onPlane(&g)
		return g
	case plane.Plane:
		onPlane(&p)
		return p
	}
	g := s.General()
	onPlane(&g)
	return g
}

// unaryPlane registers a builtin of the form (name p) that returns an
// updated copy of p.
func unaryPlane(op string, onPlane func(*plane.Plane), onAxis func(*plane.AxisPlane)) builtinFunc {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("%s requires a plane", op)
		}
		s, err := toSurface(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
		}
		return &sexpPlane{surface: planeOp(s, onPlane, onAxis)}, nil
	}
}

// eulerMatrix builds the rotation Z·Y·X from angles in degrees.
func eulerMatrix(deg v3.Vec) sdf.M44 {
	rad := deg.MulScalar(math.Pi / 180)
	return sdf.RotateZ(rad.Z).Mul(sdf.RotateY(rad.Y)).Mul(sdf.RotateX(rad.X))
}

// registerBuiltins installs the plane DSL into env. Source must be run
// through preprocessSource first so keywords and kebab-case names match.
func registerBuiltins(env *zygo.Zlisp, st *session) {

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			c[i] = f
		}
		return newVec(v3.Vec{X: c[0], Y: c[1], Z: c[2]}), nil
	})

	// (cross a b) follows the handedness of the current coordinate system.
	env.AddFunction("cross", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoVecs("cross", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return newVec(st.system().Cross(a, b)), nil
	})

	// (dot a b)
	env.AddFunction("dot", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoVecs("dot", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return newFloat(a.Dot(b)), nil
	})

	// (segment (vec3 0 0 0) (vec3 1 1 1))
	env.AddFunction("segment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoVecs("segment", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSegment{seg: shape.NewSegment(a, b)}, nil
	})

	// (sphere (vec3 0 0 0) 2)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("sphere requires a center and a radius")
		}
		c, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: center: %w", err)
		}
		r, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		return &sexpSphere{sphere: shape.Sphere{Center: c, Radius: r}}, nil
	})

	// (box (vec3 0 0 0) (vec3 1 1 1)); corners may come in any order.
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoVecs("box", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpBox{box: shape.NewBox(a, b)}, nil
	})

	// (plane a b c d)
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("plane requires exactly 4 coefficients, got %d", len(args))
		}
		var c [4]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("plane: %c: %w", "abcd"[i], err)
			}
			c[i] = f
		}
		return &sexpPlane{surface: plane.New(c[0], c[1], c[2], c[3])}, nil
	})

	// (plane-xy 1.25 :positive false), likewise plane-xz and plane-yz.
	axisCtors := map[string]func(bool, float64) plane.AxisPlane{
		"plane_xy": plane.NewXY,
		"plane_xz": plane.NewXZ,
		"plane_yz": plane.NewYZ,
	}
	for fname, ctor := range axisCtors {
		label := strings.ReplaceAll(fname, "_", "-")
		env.AddFunction(fname, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			offset := 0.0
			if len(pa.positional) > 0 {
				f, err := toFloat64(pa.positional[0])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: offset: %w", label, err)
				}
				offset = f
			}
			positive := true
			if v, ok := pa.kw["positive"]; ok {
				b, err := toBool(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: positive: %w", label, err)
				}
				positive = b
			}
			return &sexpPlane{surface: ctor(positive, offset)}, nil
		})
	}

	// (plane-points p1 p2 p3): normal (p2-p1)×(p3-p1) in the current system.
	env.AddFunction("plane_points", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("plane-points requires exactly 3 points, got %d", len(args))
		}
		var pts [3]v3.Vec
		for i, a := range args {
			v, err := toVec3(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("plane-points: point %d: %w", i+1, err)
			}
			pts[i] = v
		}
		return &sexpPlane{surface: plane.FromPoints(pts[0], pts[1], pts[2], st.system())}, nil
	})

	// (plane-vectors pivot v1 v2): normal v1×v2 in the current system.
	env.AddFunction("plane_vectors", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("plane-vectors requires a pivot and two vectors")
		}
		var vs [3]v3.Vec
		for i, a := range args {
			v, err := toVec3(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("plane-vectors: argument %d: %w", i+1, err)
			}
			vs[i] = v
		}
		return &sexpPlane{surface: plane.FromVectors(vs[0], vs[1], vs[2], st.system())}, nil
	})

	// (plane-normal pivot normal): the normal is normalized.
	env.AddFunction("plane_normal", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p, n, err := twoVecs("plane-normal", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if n.Length2() == 0 {
			return zygo.SexpNull, fmt.Errorf("plane-normal: normal must not be zero")
		}
		return &sexpPlane{surface: plane.FromPointNormal(p, n)}, nil
	})

	env.AddFunction("normalize", unaryPlane("normalize",
		func(p *plane.Plane) { p.Normalize() },
		func(*plane.AxisPlane) {}))
	env.AddFunction("negate", unaryPlane("negate",
		func(p *plane.Plane) { p.Negate() },
		func(p *plane.AxisPlane) { p.Negate() }))
	env.AddFunction("absolute", unaryPlane("absolute",
		func(p *plane.Plane) { p.Absolute() },
		func(p *plane.AxisPlane) { p.Absolute() }))

	// (normal p)
	env.AddFunction("normal", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, err := onePlane("normal", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return newVec(s.Normal()), nil
	})

	// (pivot p)
	env.AddFunction("pivot", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, err := onePlane("pivot", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return newVec(s.Pivot()), nil
	})

	// (set-pivot p pt)
	env.AddFunction("set_pivot", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("set-pivot requires a plane and a point")
		}
		s, err := toSurface(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-pivot: %w", err)
		}
		pt, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-pivot: point: %w", err)
		}
		return &sexpPlane{surface: planeOp(s,
			func(p *plane.Plane) { p.SetPivot(pt) },
			func(p *plane.AxisPlane) { p.SetPivot(pt) })}, nil
	})

	// (translate p (vec3 1 2 3)) moves by a vector; (translate p 2) moves
	// along the normal.
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("translate requires a plane and an offset")
		}
		s, err := toSurface(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		if dist, err := toFloat64(args[1]); err == nil {
			return &sexpPlane{surface: planeOp(s,
				func(p *plane.Plane) { p.TranslateAlongNormal(dist) },
				func(p *plane.AxisPlane) { p.TranslateAlongNormal(dist) })}, nil
		}
		v, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: offset: %w", err)
		}
		return &sexpPlane{surface: planeOp(s,
			func(p *plane.Plane) { p.Translate(v) },
			func(p *plane.AxisPlane) { p.Translate(v) })}, nil
	})

	// (rotate p axis degrees :pivot pt). Axis planes become general planes.
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a plane, an axis and an angle")
		}
		s, err := toSurface(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		axis, err := toVec3(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: axis: %w", err)
		}
		if axis.Length2() == 0 {
			return zygo.SexpNull, fmt.Errorf("rotate: axis must not be zero")
		}
		deg, err := toFloat64(pa.positional[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: angle: %w", err)
		}
		pivot, hasPivot, err := vecArg(pa, "pivot")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		q := plane.Quat(axis, deg*math.Pi/180)
		return &sexpPlane{surface: planeOp(s, func(p *plane.Plane) {
			if hasPivot {
				p.RotateAround(q, pivot)
			} else {
				p.Rotate(q)
			}
		}, nil)}, nil
	})

	// (transform p :rotate (vec3 rx ry rz) :at (vec3 tx ty tz) :pivot pt)
	// applies Translate(at)·Rz·Ry·Rx, angles in degrees.
	env.AddFunction("transform", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("transform requires a plane")
		}
		s, err := toSurface(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("transform: %w", err)
		}
		rot, _, err := vecArg(pa, "rotate")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("transform: %w", err)
		}
		at, _, err := vecArg(pa, "at")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("transform: %w", err)
		}
		pivot, hasPivot, err := vecArg(pa, "pivot")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("transform: %w", err)
		}
		m := sdf.Translate3d(at).Mul(eulerMatrix(rot))
		return &sexpPlane{surface: planeOp(s, func(p *plane.Plane) {
			if hasPivot {
				p.TransformAround(m, pivot)
			} else {
				p.Transform(m)
			}
		}, nil)}, nil
	})

	// (distance p x) for a point, sphere, box or parallel plane.
	env.AddFunction("distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, x, err := planeAnd("distance", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		switch v := x.(type) {
		case *sexpSphere:
			return newFloat(plane.DistanceToSphere(s, v.sphere)), nil
		case *sexpBox:
			return newFloat(plane.DistanceToBox(s, v.box)), nil
		case *sexpPlane:
			return newFloat(plane.DistanceToPlane(s, v.surface)), nil
		}
		pt, err := toVec3(x)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: expected point, sphere, box or plane, got %s", describe(x))
		}
		return newFloat(s.DistanceTo(pt)), nil
	})

	// (project p pt)
	env.AddFunction("project", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, x, err := planeAnd("project", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		pt, err := toVec3(x)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("project: %w", err)
		}
		return newVec(s.Projection(pt)), nil
	})

	// (classify p x) returns "in-front-of", "behind" or "coincident".
	env.AddFunction("classify", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, x, err := planeAnd("classify", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		c, err := classify(s, x)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("classify: %w", err)
		}
		return newStr(c.String()), nil
	})

	// (intersects p x) reports whether x touches p.
	env.AddFunction("intersects", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, x, err := planeAnd("intersects", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		hit, err := intersects(s, x)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersects: %w", err)
		}
		return newBool(hit), nil
	})

	// (intersect p seg) returns the crossing point or nil.
	// (intersect p q :within box) returns the shared line, clipped to box
	// as a segment when :within is given, or nil.
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		s, x, err := planeAnd("intersect", pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		switch v := x.(type) {
		case *sexpSegment:
			pt, ok := s.IntersectSegment(v.seg)
			if !ok {
				return zygo.SexpNull, nil
			}
			return newVec(pt), nil
		case *sexpPlane:
			line, ok := s.IntersectPlane(v.surface, st.system())
			if !ok {
				return zygo.SexpNull, nil
			}
			w, within := pa.kw["within"]
			if !within {
				return &sexpLine{line: line}, nil
			}
			b, err := toBox(w)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("intersect: within: %w", err)
			}
			seg, ok := line.ClipBox(b)
			if !ok {
				return zygo.SexpNull, nil
			}
			return &sexpSegment{seg: seg}, nil
		}
		return zygo.SexpNull, fmt.Errorf("intersect: expected segment or plane, got %s", describe(x))
	})

	// (factor p seg) returns the crossing parameter, NaN for no crossing
	// and +Inf for a segment lying in the plane.
	env.AddFunction("factor", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, x, err := planeAnd("factor", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		seg, err := toSegment(x)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("factor: %w", err)
		}
		return newFloat(s.SegmentIntersectionFactor(seg)), nil
	})

	// (geogebra p)
	env.AddFunction("geogebra", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, err := onePlane("geogebra", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return newStr(s.Geogebra()), nil
	})

	// (coordinate-system) returns the current system name;
	// (coordinate-system "xyz-left-hand") switches it for the rest of the
	// evaluation.
	env.AddFunction("coordinate_system", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) > 1 {
			return zygo.SexpNull, fmt.Errorf("coordinate-system takes at most one argument")
		}
		if len(args) == 1 {
			n, err := toKeywordString(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("coordinate-system: %w", err)
			}
			cs, err := coords.Parse(n)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("coordinate-system: %w", err)
			}
			st.scene.System = cs
		}
		return newStr(st.system().String()), nil
	})

	// (defplane "floor" p) registers p in the scene and returns it.
	env.AddFunction("defplane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defplane requires a name and a plane")
		}
		pname, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defplane: name: %w", err)
		}
		s, err := toSurface(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defplane: %w", err)
		}
		st.scene.AddPlane(pname, s)
		return args[1], nil
	})

	// (plane-ref "floor")
	env.AddFunction("plane_ref", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("plane-ref requires a name")
		}
		pname, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plane-ref: name: %w", err)
		}
		s, ok := st.scene.Plane(pname)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("plane-ref: no plane named %q", pname)
		}
		return &sexpPlane{surface: s}, nil
	})

	// (clip "floor" "wall") marks planes as clip planes. Names are resolved
	// when the scene is validated or meshed.
	env.AddFunction("clip", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("clip requires at least one plane name")
		}
		for i, a := range args {
			pname, err := toString(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("clip: argument %d: %w", i+1, err)
			}
			st.scene.AddClip(pname)
		}
		return zygo.SexpNull, nil
	})

	// (solid-box "name" :size (vec3 10 10 10) :at (vec3 ...) :rotate (vec3 ...))
	env.AddFunction("solid_box", solidBuiltin(st, "solid-box", scene.SolidBox))
	// (solid-sphere "name" :radius 5 :at ...)
	env.AddFunction("solid_sphere", solidBuiltin(st, "solid-sphere", scene.SolidSphere))
	// (solid-cylinder "name" :radius 2 :height 10 :at ... :rotate ...)
	env.AddFunction("solid_cylinder", solidBuiltin(st, "solid-cylinder", scene.SolidCylinder))

	// (show x ...) appends one output line.
	env.AddFunction("show", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = display(a)
		}
		st.output = append(st.output, strings.Join(parts, " "))
		if len(args) == 0 {
			return zygo.SexpNull, nil
		}
		return args[len(args)-1], nil
	})
}

// solidBuiltin returns the builtin that adds a solid of kind to the scene.
func solidBuiltin(st *session, op string, kind scene.SolidKind) builtinFunc {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("%s requires a name", op)
		}
		sname, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: name: %w", op, err)
		}

		s := scene.Solid{Name: sname, Kind: kind}
		switch kind {
		case scene.SolidBox:
			size, ok, err := vecArg(pa, "size")
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
			}
			if !ok {
				return zygo.SexpNull, fmt.Errorf("%s: :size is required", op)
			}
			s.Size = size
		case scene.SolidSphere, scene.SolidCylinder:
			if s.Radius, err = floatArg(pa, "radius", 0); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
			}
			if kind == scene.SolidCylinder {
				if s.Height, err = floatArg(pa, "height", 0); err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
				}
			}
		}
		if s.Translation, _, err = vecArg(pa, "at"); err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
		}
		if s.Rotation, _, err = vecArg(pa, "rotate"); err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
		}

		st.scene.AddSolid(s)
		return &sexpSolid{solid: s}, nil
	}
}

func twoVecs(op string, args []zygo.Sexp) (v3.Vec, v3.Vec, error) {
	if len(args) != 2 {
		return v3.Vec{}, v3.Vec{}, fmt.Errorf("%s requires exactly 2 vectors, got %d arguments", op, len(args))
	}
	a, err := toVec3(args[0])
	if err != nil {
		return v3.Vec{}, v3.Vec{}, fmt.Errorf("%s: first: %w", op, err)
	}
	b, err := toVec3(args[1])
	if err != nil {
		return v3.Vec{}, v3.Vec{}, fmt.Errorf("%s: second: %w", op, err)
	}
	return a, b, nil
}

func onePlane(op string, args []zygo.Sexp) (plane.Surface, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s requires a plane", op)
	}
	s, err := toSurface(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func planeAnd(op string, args []zygo.Sexp) (plane.Surface, zygo.Sexp, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s requires a plane and one argument", op)
	}
	s, err := toSurface(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, args[1], nil
}

// classify dispatches on the shape of x.
func intersects(s plane.Surface, x zygo.Sexp) (bool, error) {
	switch v := x.(type) {
	case *sexpSphere:
		return plane.IntersectsSphere(s, v.sphere), nil
	case *sexpBox:
		return plane.IntersectsBox(s, v.box), nil
	case *sexpSegment:
		return plane.IntersectsSegment(s, v.seg), nil
	}
	pt, err := toVec3(x)
	if err != nil {
		return false, fmt.Errorf("expected point, segment, sphere or box, got %s", describe(x))
	}
	return plane.IntersectsPoint(s, pt), nil
}

func classify(s plane.Surface, x zygo.Sexp) (plane.Classification, error) {
	switch v := x.(type) {
	case *sexpSphere:
		return s.ClassifySphere(v.sphere), nil
	case *sexpBox:
		return s.ClassifyBox(v.box), nil
	case *sexpSegment:
		return s.ClassifySegment(v.seg), nil
	}
	pt, err := toVec3(x)
	if err != nil {
		return 0, fmt.Errorf("expected point, segment, sphere or box, got %s", describe(x))
	}
	return s.Classify(pt), nil
}
