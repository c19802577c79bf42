package engine

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/burl/pkg/asset"
	"github.com/chazu/burl/pkg/op"
	"github.com/chazu/burl/pkg/scad"
	"github.com/chazu/burl/pkg/vocab"
)

// builtin is the zygomys user-function signature.
type builtin = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// ---------------------------------------------------------------------------
// Builtin adapters
// ---------------------------------------------------------------------------

// containBuiltin adapts a variadic geometry constructor: all arguments are
// children.
func containBuiltin(verb string, f func(children ...scad.Expr) (scad.Expr, error)) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		children, err := toExprs(verb, args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		e, err := f(children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	}
}

// vectorBuiltin adapts a constructor taking a leading vector argument
// followed by children, the translate/scale/resize shape.
func vectorBuiltin(verb string, f func(v []float64, children ...scad.Expr) (scad.Expr, error)) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("%s requires a vector argument", name)
		}
		v, err := toFloats(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		children, err := toExprs(verb, args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		e, err := f(v, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	}
}

// modifierBuiltin adapts a single-child wrapper constructor.
func modifierBuiltin(f func(child scad.Expr) (scad.Expr, error)) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("%s takes exactly one expression, got %d", name, len(args))
		}
		child, err := toExpr(name, args[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := f(child)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	}
}

// operatorBuiltin adapts a variadic arithmetic operator.
func operatorBuiltin(f func(args ...any) (any, error)) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		operands := make([]any, len(args))
		for i, a := range args {
			v, err := toOperand(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			operands[i] = v
		}
		r, err := f(operands...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return fromOperand(r)
	}
}

// oneChild reduces a builtin's children to a single expression,
// union-wrapping when necessary.
func oneChild(children []scad.Expr) (scad.Expr, error) {
	if len(children) == 1 {
		return children[0], nil
	}
	return vocab.Union(children...)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the burl CAD vocabulary into a zygomys
// environment. Geometry flows between builtins as sexpExpr values; the
// write builtin appends finished assets to collected.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are recognizable and kebab-case
// names match their registered underscore forms.
func registerBuiltins(env *zygo.Zlisp, collected *[]asset.Asset) {

	// -----------------------------------------------------------------------
	// 2D shapes
	// -----------------------------------------------------------------------

	// (circle 10)
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var r float64
		if len(pa.positional) > 0 {
			f, err := toFloat64(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: %w", err)
			}
			r = f
		}
		if err := pa.float("r", &r); err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		return &sexpExpr{e: vocab.Circle(r)}, nil
	})

	// (square 10 :center true) or (square [10 20] :center true)
	env.AddFunction("square", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("square requires a size argument")
		}
		var center bool
		if err := pa.boolean("center", &center); err != nil {
			return zygo.SexpNull, fmt.Errorf("square: %w", err)
		}
		if f, err := toFloat64(pa.positional[0]); err == nil {
			return &sexpExpr{e: vocab.Square(f, center)}, nil
		}
		size, err := toVec2(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("square: size: %w", err)
		}
		return &sexpExpr{e: vocab.Rectangle(size, center)}, nil
	})

	// (polygon [[0 0] [10 0] [10 10]] :paths [[0 1 2]] :convexity 2)
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("polygon requires a point list")
		}
		points, err := toVec2s(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: points: %w", err)
		}
		var paths [][]int
		if v, ok := pa.kw["paths"]; ok {
			if paths, err = toIntSlices(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: paths: %w", err)
			}
		}
		var convexity int
		if err := pa.integer("convexity", &convexity); err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		return &sexpExpr{e: vocab.Polygon(points, paths, convexity)}, nil
	})

	// (text "burl" :size 8 :font "Liberation Sans" :halign "center")
	env.AddFunction("text", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("text requires a string argument")
		}
		s, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("text: %w", err)
		}
		t := scad.Text{Text: s}
		for kw, dst := range map[string]*string{
			"font": &t.Font, "halign": &t.Halign, "valign": &t.Valign,
			"direction": &t.Direction, "language": &t.Language, "script": &t.Script,
		} {
			if err := pa.str(kw, dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("text: %w", err)
			}
		}
		if err := pa.float("size", &t.Size); err != nil {
			return zygo.SexpNull, fmt.Errorf("text: %w", err)
		}
		if err := pa.float("spacing", &t.Spacing); err != nil {
			return zygo.SexpNull, fmt.Errorf("text: %w", err)
		}
		return &sexpExpr{e: vocab.Text(t)}, nil
	})

	// (import-file "bracket.stl" :layer "outline" :convexity 4)
	env.AddFunction("import_file", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("import-file requires a path argument")
		}
		file, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("import-file: %w", err)
		}
		var layer string
		var convexity int
		if err := pa.str("layer", &layer); err != nil {
			return zygo.SexpNull, fmt.Errorf("import-file: %w", err)
		}
		if err := pa.integer("convexity", &convexity); err != nil {
			return zygo.SexpNull, fmt.Errorf("import-file: %w", err)
		}
		e, err := vocab.Import(file, layer, convexity)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (projection :cut true shape...)
	env.AddFunction("projection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var cut bool
		if err := pa.boolean("cut", &cut); err != nil {
			return zygo.SexpNull, fmt.Errorf("projection: %w", err)
		}
		children, err := toExprs("project", pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		child, err := oneChild(children)
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.Projection(child, cut)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (cut shape...) is projection onto the xy plane itself.
	env.AddFunction("cut", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		children, err := toExprs("project", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		child, err := oneChild(children)
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.Cut(child)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// -----------------------------------------------------------------------
	// 3D shapes
	// -----------------------------------------------------------------------

	// (sphere 10)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var r float64
		if len(pa.positional) > 0 {
			f, err := toFloat64(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
			}
			r = f
		}
		if err := pa.float("r", &r); err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return &sexpExpr{e: vocab.Sphere(r)}, nil
	})

	// (cube [20 10 5] :center true); a scalar size makes a regular cube.
	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("cube requires a size argument")
		}
		var center bool
		if err := pa.boolean("center", &center); err != nil {
			return zygo.SexpNull, fmt.Errorf("cube: %w", err)
		}
		if f, err := toFloat64(pa.positional[0]); err == nil {
			return &sexpExpr{e: vocab.Cube(scad.Vec3{f, f, f}, center)}, nil
		}
		size, err := toVec3(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cube: size: %w", err)
		}
		return &sexpExpr{e: vocab.Cube(size, center)}, nil
	})

	// (cylinder :r 5 :h 20 :center true) or (cylinder :r1 5 :r2 2 :h 20)
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var r, r1, r2, h float64
		var center bool
		for kw, dst := range map[string]*float64{"r": &r, "r1": &r1, "r2": &r2, "h": &h} {
			if err := pa.float(kw, dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
			}
		}
		if err := pa.boolean("center", &center); err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		_, hasR1 := pa.kw["r1"]
		_, hasR2 := pa.kw["r2"]
		if hasR1 || hasR2 {
			return &sexpExpr{e: vocab.Frustum(r1, r2, h, center)}, nil
		}
		return &sexpExpr{e: vocab.Cylinder(r, h, center)}, nil
	})

	// (polyhedron points :faces [[...]] :convexity 10)
	env.AddFunction("polyhedron", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("polyhedron requires a point list")
		}
		points, err := toVec3s(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polyhedron: points: %w", err)
		}
		var faces [][]int
		if v, ok := pa.kw["faces"]; ok {
			if faces, err = toIntSlices(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("polyhedron: faces: %w", err)
			}
		}
		var convexity int
		if err := pa.integer("convexity", &convexity); err != nil {
			return zygo.SexpNull, fmt.Errorf("polyhedron: %w", err)
		}
		return &sexpExpr{e: vocab.Polyhedron(points, faces, convexity)}, nil
	})

	// (surface "heights.dat" :center true :convexity 5 :invert true)
	env.AddFunction("surface", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("surface requires a path argument")
		}
		file, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("surface: %w", err)
		}
		var center, invert bool
		var convexity int
		if err := pa.boolean("center", &center); err != nil {
			return zygo.SexpNull, fmt.Errorf("surface: %w", err)
		}
		if err := pa.boolean("invert", &invert); err != nil {
			return zygo.SexpNull, fmt.Errorf("surface: %w", err)
		}
		if err := pa.integer("convexity", &convexity); err != nil {
			return zygo.SexpNull, fmt.Errorf("surface: %w", err)
		}
		return &sexpExpr{e: vocab.Surface(file, center, convexity, invert)}, nil
	})

	// -----------------------------------------------------------------------
	// Booleans
	// -----------------------------------------------------------------------

	env.AddFunction("union", containBuiltin("contain", vocab.Union))
	env.AddFunction("intersection", containBuiltin("contain", vocab.Intersection))

	// (difference minuend subtrahend...)
	env.AddFunction("difference", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		children, err := toExprs("contain", args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("difference: %w", err)
		}
		if len(children) == 0 {
			return zygo.SexpNull, fmt.Errorf("difference requires a minuend")
		}
		e, err := vocab.Difference(children[0], children[1:]...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// -----------------------------------------------------------------------
	// Transformations
	// -----------------------------------------------------------------------

	env.AddFunction("translate", vectorBuiltin("translate", vocab.Translate))
	env.AddFunction("scale", vectorBuiltin("scale", vocab.Scale))
	env.AddFunction("resize", vectorBuiltin("resize", vocab.Resize))

	// (rotate 1.5707 shape) or (rotate [0 0 1.5707] shape); radians.
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("rotate requires an angle argument")
		}
		var angles []float64
		if f, err := toFloat64(args[0]); err == nil {
			angles = []float64{f}
		} else if angles, err = toFloats(args[0]); err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		children, err := toExprs("rotate", args[1:])
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.Rotate(angles, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (mirror [1 0 0] shape...)
	env.AddFunction("mirror", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("mirror requires an axis argument")
		}
		axes, err := toAxes(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mirror: %w", err)
		}
		children, err := toExprs("mirror", args[1:])
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.Mirror(axes, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (multmatrix [[...] [...] [...] [...]] shape...)
	env.AddFunction("multmatrix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("multmatrix requires a matrix argument")
		}
		m, err := toMat4(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("multmatrix: %w", err)
		}
		children, err := toExprs("transform", args[1:])
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.MultMatrix(m, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (color "red" shape...) or (color [1 0 0 0.5] shape...)
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("color requires a color argument")
		}
		var value any
		if s, err := toString(args[0]); err == nil {
			value = s
		} else if v, err := toVec4(args[0]); err == nil {
			value = v
		} else {
			return zygo.SexpNull, fmt.Errorf("color: expected name or RGBA vector, got %s", args[0].SexpString(nil))
		}
		children, err := toExprs("color", args[1:])
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.Color(value, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (offset :r 2 outline...) or (offset :delta 2 :chamfer true outline...)
	env.AddFunction("offset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var r, delta float64
		var chamfer bool
		if err := pa.float("r", &r); err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}
		if err := pa.float("delta", &delta); err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}
		if err := pa.boolean("chamfer", &chamfer); err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}
		children, err := toExprs("offset", pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		_, round := pa.kw["r"]
		e, err := vocab.Offset(round, r, delta, chamfer, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	env.AddFunction("hull", containBuiltin("form a hull around", vocab.Hull))

	// (minkowski :convexity 4 shape...)
	env.AddFunction("minkowski", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var convexity int
		if err := pa.integer("convexity", &convexity); err != nil {
			return zygo.SexpNull, fmt.Errorf("minkowski: %w", err)
		}
		children, err := toExprs("minkowski-add", pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.Minkowski(convexity, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (render :convexity 4 shape...)
	env.AddFunction("render", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var convexity int
		if err := pa.integer("convexity", &convexity); err != nil {
			return zygo.SexpNull, fmt.Errorf("render: %w", err)
		}
		children, err := toExprs("render", pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.Render(convexity, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (linear-extrude :height 10 :twist 1.57 :center true outline...)
	env.AddFunction("linear_extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		ex := scad.LinearExtrusion{}
		for kw, dst := range map[string]*float64{
			"height": &ex.Height, "twist": &ex.Twist, "scale": &ex.Scale,
		} {
			if err := pa.float(kw, dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("linear-extrude: %w", err)
			}
		}
		if err := pa.boolean("center", &ex.Center); err != nil {
			return zygo.SexpNull, fmt.Errorf("linear-extrude: %w", err)
		}
		if err := pa.integer("slices", &ex.Slices); err != nil {
			return zygo.SexpNull, fmt.Errorf("linear-extrude: %w", err)
		}
		children, err := toExprs("extrude", pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.LinearExtrude(ex, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (rotate-extrude :angle 3.14 :convexity 2 outline...)
	env.AddFunction("rotate_extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		ex := scad.RotationalExtrusion{}
		if err := pa.float("angle", &ex.Angle); err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate-extrude: %w", err)
		}
		if err := pa.integer("convexity", &ex.Convexity); err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate-extrude: %w", err)
		}
		children, err := toExprs("extrude", pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.RotationalExtrude(ex, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// -----------------------------------------------------------------------
	// Modifiers
	// -----------------------------------------------------------------------

	env.AddFunction("background", modifierBuiltin(vocab.Background))
	env.AddFunction("debug", modifierBuiltin(vocab.Debug))
	env.AddFunction("root", modifierBuiltin(vocab.Root))
	env.AddFunction("disable", modifierBuiltin(vocab.Disable))

	// -----------------------------------------------------------------------
	// Modules
	// -----------------------------------------------------------------------

	// (module "arm" body...)
	env.AddFunction("module", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("module requires a name argument")
		}
		moduleName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("module: name: %w", err)
		}
		children, err := toExprs("define module of", args[1:])
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.DefineModule(moduleName, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (call "arm" args...)
	env.AddFunction("call", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("call requires a module name")
		}
		moduleName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("call: name: %w", err)
		}
		children, err := toExprs("call module using", args[1:])
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := vocab.CallModule(moduleName, children...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (children) marks the call-site insertion point in a module body.
	env.AddFunction("children", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &sexpExpr{e: vocab.Children()}, nil
	})

	// -----------------------------------------------------------------------
	// Metadata
	// -----------------------------------------------------------------------

	// (comment "line 1" "line 2") or (comment "caption" shape)
	env.AddFunction("comment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		var lines []string
		for i, a := range args {
			// A trailing expression turns the comment into an annotation.
			if x, ok := a.(*sexpExpr); ok && i == len(args)-1 {
				e, err := vocab.Annotate(x.e, lines...)
				if err != nil {
					return zygo.SexpNull, err
				}
				return &sexpExpr{e: e}, nil
			}
			s, err := toString(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("comment: %w", err)
			}
			lines = append(lines, s)
		}
		return &sexpExpr{e: vocab.Comment(lines...)}, nil
	})

	// (special "$fn") or (special "$fn" 32) or (special "$fn" 32 180)
	env.AddFunction("special", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("special requires a variable name")
		}
		varName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("special: %w", err)
		}
		values := make([]float64, 0, len(args)-1)
		for _, a := range args[1:] {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("special: %w", err)
			}
			values = append(values, f)
		}
		e, err := vocab.Special(varName, values...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpExpr{e: e}, nil
	})

	// (echo "message" 42)
	env.AddFunction("echo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		content := make([]any, len(args))
		for i, a := range args {
			v, err := toOperand(a)
			if err != nil {
				if s, serr := toString(a); serr == nil {
					v = s
				} else {
					return zygo.SexpNull, fmt.Errorf("echo: %w", err)
				}
			}
			content[i] = v
		}
		return &sexpExpr{e: vocab.Echo(content...)}, nil
	})

	// -----------------------------------------------------------------------
	// Arithmetic with geometric fallbacks
	// -----------------------------------------------------------------------

	env.AddFunction("+", operatorBuiltin(op.Add))
	env.AddFunction("-", operatorBuiltin(op.Sub))
	env.AddFunction("*", operatorBuiltin(op.Mul))
	env.AddFunction("/", operatorBuiltin(op.Div))

	// -----------------------------------------------------------------------
	// Assets
	// -----------------------------------------------------------------------

	// (gimbal :translation [0 0 20] :rotation [1 0 0] :distance 500)
	env.AddFunction("gimbal", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cam := asset.Gimbal{}
		if v, ok := pa.kw["translation"]; ok {
			t, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("gimbal: translation: %w", err)
			}
			cam.Translation = t
		}
		if v, ok := pa.kw["rotation"]; ok {
			r, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("gimbal: rotation: %w", err)
			}
			cam.Rotation = r
		}
		if err := pa.float("distance", &cam.Distance); err != nil {
			return zygo.SexpNull, fmt.Errorf("gimbal: %w", err)
		}
		return &sexpCamera{cam: cam}, nil
	})

	// (vector-camera :eye [100 100 50] :center [0 0 0])
	env.AddFunction("vector_camera", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cam := asset.Vector{}
		if v, ok := pa.kw["eye"]; ok {
			e, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vector-camera: eye: %w", err)
			}
			cam.Eye = e
		}
		if v, ok := pa.kw["center"]; ok {
			c, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vector-camera: center: %w", err)
			}
			cam.Center = c
		}
		return &sexpCamera{cam: cam}, nil
	})

	// (image "front.png" :camera (gimbal ...) :size [640 480] :colorscheme "Tomorrow Night")
	env.AddFunction("image", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("image requires a path argument")
		}
		path, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("image: %w", err)
		}
		img := asset.Image{Path: path}
		if v, ok := pa.kw["camera"]; ok {
			c, ok := v.(*sexpCamera)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("image: camera: expected camera, got %s", v.SexpString(nil))
			}
			img.Camera = c.cam
		}
		if v, ok := pa.kw["size"]; ok {
			fs, err := toFloats(v)
			if err != nil || len(fs) != 2 {
				return zygo.SexpNull, fmt.Errorf("image: size: expected [width height]")
			}
			img.Size = [2]int{int(fs[0]), int(fs[1])}
		}
		if err := pa.str("colorscheme", &img.ColorScheme); err != nil {
			return zygo.SexpNull, fmt.Errorf("image: %w", err)
		}
		return &sexpImage{img: img}, nil
	})

	// (asset "bracket" :chiral true :suffixes ["stl"] :modules [...]
	//        :images [...] geometry...)
	env.AddFunction("asset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("asset requires a name argument")
		}
		assetName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("asset: name: %w", err)
		}
		content, err := toExprs("package", pa.positional[1:])
		if err != nil {
			return zygo.SexpNull, err
		}
		a := asset.Asset{
			Name:    assetName,
			Content: func() []scad.Expr { return content },
		}
		if err := pa.boolean("chiral", &a.Chiral); err != nil {
			return zygo.SexpNull, fmt.Errorf("asset: %w", err)
		}
		if err := pa.boolean("mirrored", &a.Mirrored); err != nil {
			return zygo.SexpNull, fmt.Errorf("asset: %w", err)
		}
		if v, ok := pa.kw["suffixes"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("asset: suffixes: %w", err)
			}
			for _, item := range items {
				s, err := toString(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("asset: suffixes: %w", err)
				}
				a.Suffixes = append(a.Suffixes, s)
			}
		}
		if v, ok := pa.kw["modules"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("asset: modules: %w", err)
			}
			for _, item := range items {
				m, ok := item.(*sexpAsset)
				if !ok {
					return zygo.SexpNull, fmt.Errorf("asset: modules: expected asset, got %s", item.SexpString(nil))
				}
				a.Modules = append(a.Modules, m.a)
			}
		}
		if v, ok := pa.kw["images"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("asset: images: %w", err)
			}
			for _, item := range items {
				img, ok := item.(*sexpImage)
				if !ok {
					return zygo.SexpNull, fmt.Errorf("asset: images: expected image, got %s", item.SexpString(nil))
				}
				a.Images = append(a.Images, img.img)
			}
		}
		return &sexpAsset{a: a}, nil
	})

	// (write thing...) collects assets for serialization after the script
	// finishes. Bare geometry is packaged as an unnamed asset.
	env.AddFunction("write", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		for _, arg := range args {
			switch v := arg.(type) {
			case *sexpAsset:
				*collected = append(*collected, v.a)
			case *sexpExpr:
				a, err := asset.New(v.e)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("write: %w", err)
				}
				*collected = append(*collected, a)
			default:
				return zygo.SexpNull, fmt.Errorf("write: expected asset or geometry, got %s", arg.SexpString(nil))
			}
		}
		return zygo.SexpNull, nil
	})
}
