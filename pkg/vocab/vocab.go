// Package vocab provides the smart constructors of the scad intermediate
// representation. Each constructor picks the correct dimensional variant
// for its input and rejects mixed 2D/3D children at construction time, so
// that the transpiler never sees a partially-invalid tree.
//
// The vocabulary is patterned after scad-clj rather than OpenSCAD itself.
package vocab

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chazu/burl/pkg/scad"
)

// ---------------------------------------------------------------------------
// Booleans
// ---------------------------------------------------------------------------

// Union combines children into a single shape. Zero children are legal and
// serialize to an empty block.
func Union(children ...scad.Expr) (scad.Expr, error) {
	return contain("contain", children,
		func(c []scad.Expr) scad.Expr { return scad.Union2D{Children: c} },
		func(c []scad.Expr) scad.Expr { return scad.Union3D{Children: c} })
}

// Difference subtracts all later children from the minuend.
func Difference(minuend scad.Expr, subtrahends ...scad.Expr) (scad.Expr, error) {
	children := append([]scad.Expr{minuend}, subtrahends...)
	return contain("contain", children,
		func(c []scad.Expr) scad.Expr { return scad.Difference2D{Children: c} },
		func(c []scad.Expr) scad.Expr { return scad.Difference3D{Children: c} })
}

// Intersection keeps only the overlap of all children.
func Intersection(children ...scad.Expr) (scad.Expr, error) {
	return contain("contain", children,
		func(c []scad.Expr) scad.Expr { return scad.Intersection2D{Children: c} },
		func(c []scad.Expr) scad.Expr { return scad.Intersection3D{Children: c} })
}

// ---------------------------------------------------------------------------
// 2D shapes
// ---------------------------------------------------------------------------

// Circle builds a circle from its radius.
func Circle(radius float64) scad.Expr {
	return scad.Circle{Radius: radius}
}

// Square builds a square from a scalar size.
func Square(size float64, center bool) scad.Expr {
	return scad.Square{Size: size, Center: center}
}

// Rectangle builds a rectangle from a two-element size.
func Rectangle(size scad.Vec2, center bool) scad.Expr {
	return scad.Rectangle{Size: size, Center: center}
}

// Polygon builds a closed polygon. Paths and convexity are optional.
func Polygon(points []scad.Vec2, paths [][]int, convexity int) scad.Expr {
	return scad.Polygon{Points: points, Paths: paths, Convexity: convexity}
}

// Text renders a string as 2D geometry, with OpenSCAD's defaults for size
// and spacing.
func Text(t scad.Text) scad.Expr {
	if t.Size == 0 {
		t.Size = 10
	}
	if t.Spacing == 0 {
		t.Spacing = 1
	}
	return t
}

// Import reads geometry from a file, dispatching 2D or 3D on the file
// suffix.
func Import(file string, layer string, convexity int) (scad.Expr, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".dxf", ".svg":
		return scad.Import2D{File: file, Layer: layer, Convexity: convexity}, nil
	case ".3mf", ".amf", ".off", ".stl":
		return scad.Import3D{File: file, Layer: layer, Convexity: convexity}, nil
	}
	return nil, &scad.ConstructionError{
		Op:     "import",
		Reason: fmt.Sprintf("unknown file suffix for %q", file),
	}
}

// Projection flattens a 3D child onto the xy plane.
func Projection(child scad.Expr, cut bool) (scad.Expr, error) {
	if err := rejectDim(scad.Dim2, "project", child); err != nil {
		return nil, err
	}
	return scad.Projection{Cut: cut, Child: child}, nil
}

// Cut is a projection restricted to the xy plane itself, as in scad-clj.
func Cut(child scad.Expr) (scad.Expr, error) {
	return Projection(child, true)
}

// ---------------------------------------------------------------------------
// 3D shapes
// ---------------------------------------------------------------------------

// Sphere builds a sphere from its radius.
func Sphere(radius float64) scad.Expr {
	return scad.Sphere{Radius: radius}
}

// Cube builds a cuboid from a three-element size.
func Cube(size scad.Vec3, center bool) scad.Expr {
	return scad.Cube{Size: size, Center: center}
}

// Cylinder builds a right circular cylinder.
func Cylinder(radius, height float64, center bool) scad.Expr {
	return scad.Cylinder{Radius: radius, Height: height, Center: center}
}

// Frustum builds a cylinder with distinct end radii.
func Frustum(r1, r2, height float64, center bool) scad.Expr {
	return scad.Frustum{R1: r1, R2: r2, Height: height, Center: center}
}

// Polyhedron builds an arbitrary polyhedron.
func Polyhedron(points []scad.Vec3, faces [][]int, convexity int) scad.Expr {
	return scad.Polyhedron{Points: points, Faces: faces, Convexity: convexity}
}

// Surface builds a height field from a data file.
func Surface(file string, center bool, convexity int, invert bool) scad.Expr {
	return scad.Surface{File: file, Center: center, Convexity: convexity, Invert: invert}
}

// ---------------------------------------------------------------------------
// Modifiers
// ---------------------------------------------------------------------------

// Background marks its child transparent: OpenSCAD's % modifier.
func Background(child scad.Expr) (scad.Expr, error) {
	return modify(child,
		func(c scad.Expr) scad.Expr { return scad.Background2D{Child: c} },
		func(c scad.Expr) scad.Expr { return scad.Background3D{Child: c} })
}

// Debug highlights its child: OpenSCAD's # modifier.
func Debug(child scad.Expr) (scad.Expr, error) {
	return modify(child,
		func(c scad.Expr) scad.Expr { return scad.Debug2D{Child: c} },
		func(c scad.Expr) scad.Expr { return scad.Debug3D{Child: c} })
}

// Root shows only its child: OpenSCAD's ! modifier.
func Root(child scad.Expr) (scad.Expr, error) {
	return modify(child,
		func(c scad.Expr) scad.Expr { return scad.Root2D{Child: c} },
		func(c scad.Expr) scad.Expr { return scad.Root3D{Child: c} })
}

// Disable excludes its child from rendering: OpenSCAD's * modifier.
func Disable(child scad.Expr) (scad.Expr, error) {
	return modify(child,
		func(c scad.Expr) scad.Expr { return scad.Disable2D{Child: c} },
		func(c scad.Expr) scad.Expr { return scad.Disable3D{Child: c} })
}

// ---------------------------------------------------------------------------
// Modules
// ---------------------------------------------------------------------------

// DefineModule defines a named module. A definition without a body is a
// construction error.
func DefineModule(name string, children ...scad.Expr) (scad.Expr, error) {
	if len(children) == 0 {
		return nil, &scad.ConstructionError{
			Op:     "module",
			Reason: "a module definition requires at least one child",
		}
	}
	d, err := scad.Classify("define module of", children...)
	if err != nil {
		return nil, err
	}
	if d == scad.Dim2 {
		return scad.ModuleDefinition2D{Name: name, Children: children}, nil
	}
	return scad.ModuleDefinition3D{Name: name, Children: children}, nil
}

// CallModule calls a module by name. A call without children has no
// dimensionality of its own.
func CallModule(name string, children ...scad.Expr) (scad.Expr, error) {
	if len(children) == 0 {
		return scad.ModuleCallND{Name: name}, nil
	}
	d, err := scad.Classify("call module using", children...)
	if err != nil {
		return nil, err
	}
	if d == scad.Dim2 {
		return scad.ModuleCall2D{Name: name, Children: children}, nil
	}
	return scad.ModuleCall3D{Name: name, Children: children}, nil
}

// Children marks the place inside a module body where call-site children
// are inserted.
func Children() scad.Expr {
	return scad.ModuleChildren{}
}

// ---------------------------------------------------------------------------
// Metadata
// ---------------------------------------------------------------------------

// Comment exports commentary into the OpenSCAD code. This is intended for
// metadata like license statements, and for making debugging output more
// searchable.
func Comment(lines ...string) scad.Expr {
	return scad.Comment{Lines: lines}
}

// Annotate attaches a comment to the expression it describes.
func Annotate(subject scad.Expr, lines ...string) (scad.Expr, error) {
	c := scad.Comment{Lines: lines}
	d, err := scad.Classify("comment", subject)
	if err != nil {
		return nil, err
	}
	if d == scad.Dim2 {
		return scad.Commented2D{Comment: c, Subject: subject}, nil
	}
	return scad.Commented3D{Comment: c, Subject: subject}, nil
}

// Special reads or assigns one of OpenSCAD's $-variables. Zero values is a
// bare reference, one a plain assignment, two a ternary on $preview.
func Special(name string, values ...float64) (scad.Expr, error) {
	v := scad.SpecialVariable{Name: name}
	switch len(values) {
	case 0:
	case 1:
		v.Preview = &values[0]
	case 2:
		v.Preview = &values[0]
		v.Render = &values[1]
	default:
		return nil, &scad.ConstructionError{
			Op:     "special variable",
			Reason: fmt.Sprintf("at most two values are supported, got %d", len(values)),
		}
	}
	return v, nil
}

// Echo orders content to be printed to the renderer's console.
func Echo(content ...any) scad.Expr {
	return scad.Echo{Content: content}
}

// ---------------------------------------------------------------------------
// Internal
// ---------------------------------------------------------------------------

// contain wraps children of common dimensionality in the matching variant.
func contain(verb string, children []scad.Expr,
	make2d, make3d func([]scad.Expr) scad.Expr) (scad.Expr, error) {
	d, err := scad.Classify(verb, children...)
	if err != nil {
		return nil, err
	}
	if d == scad.Dim2 {
		return make2d(children), nil
	}
	return make3d(children), nil
}

// modify wraps a single expression of known dimensionality.
func modify(child scad.Expr,
	make2d, make3d func(scad.Expr) scad.Expr) (scad.Expr, error) {
	d, err := scad.Classify("modify", child)
	if err != nil {
		return nil, err
	}
	if d == scad.Dim2 {
		return make2d(child), nil
	}
	return make3d(child), nil
}

// rejectDim fails when any listed child belongs to the forbidden
// dimensionality class.
func rejectDim(forbidden scad.Dim, verb string, children ...scad.Expr) error {
	if _, err := scad.Classify(verb, children...); err != nil {
		return err
	}
	for _, c := range children {
		if c.Dim() == forbidden {
			return &scad.ConstructionError{
				Op:     verb,
				Reason: fmt.Sprintf("%s expressions are not supported", forbidden),
			}
		}
	}
	return nil
}
