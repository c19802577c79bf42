package scad

import (
	"math"
	"reflect"
)

// Tau is a full turn in radians, the canonical default for rotational
// extrusion.
const Tau = 2 * math.Pi

// Term describes how a generically-serializable expression renders to
// OpenSCAD: its keyword, which field carries its children, how internal
// field names map to OpenSCAD parameter names, which fields hold radians,
// and which fields have a default that is elided from the output.
//
// Fields without a Rename entry map to the lowercase of their Go name.
// Fields not in Optional are required and always emitted. Optional fields
// are compared against the same field of Prototype and skipped when equal.
type Term struct {
	Keyword   string
	Container string // field holding children; empty for leaf forms
	Rename    map[string]string
	Angles    map[string]bool
	Optional  map[string]bool
	Prototype Expr
}

// terms is the serialization side table for every variant covered by the
// generic rule. Modifiers, modules and the metadata nodes have hand-coded
// transpilation rules instead.
var terms = map[reflect.Type]Term{
	// 2D shapes.
	reflect.TypeOf(Circle{}): {
		Keyword:   "circle",
		Rename:    map[string]string{"Radius": "r"},
		Prototype: Circle{},
	},
	reflect.TypeOf(Square{}): {
		Keyword:   "square",
		Optional:  set("Center"),
		Prototype: Square{},
	},
	reflect.TypeOf(Rectangle{}): {
		Keyword:   "square",
		Optional:  set("Center"),
		Prototype: Rectangle{},
	},
	reflect.TypeOf(Polygon{}): {
		Keyword:   "polygon",
		Optional:  set("Paths", "Convexity"),
		Prototype: Polygon{},
	},
	reflect.TypeOf(Text{}): {
		Keyword: "text",
		Optional: set("Size", "Font", "Halign", "Valign", "Spacing",
			"Direction", "Language", "Script"),
		Prototype: Text{Size: 10, Spacing: 1},
	},
	reflect.TypeOf(Import2D{}): {
		Keyword:   "import",
		Optional:  set("Layer", "Convexity"),
		Prototype: Import2D{},
	},
	reflect.TypeOf(Projection{}): {
		Keyword:   "projection",
		Container: "Child",
		Optional:  set("Cut"),
		Prototype: Projection{},
	},

	// 3D shapes.
	reflect.TypeOf(Sphere{}): {
		Keyword:   "sphere",
		Rename:    map[string]string{"Radius": "r"},
		Prototype: Sphere{},
	},
	reflect.TypeOf(Cube{}): {
		Keyword:   "cube",
		Optional:  set("Center"),
		Prototype: Cube{},
	},
	reflect.TypeOf(Cylinder{}): {
		Keyword:   "cylinder",
		Rename:    map[string]string{"Radius": "r", "Height": "h"},
		Optional:  set("Center"),
		Prototype: Cylinder{},
	},
	reflect.TypeOf(Frustum{}): {
		Keyword:   "cylinder",
		Rename:    map[string]string{"Height": "h"},
		Optional:  set("Center"),
		Prototype: Frustum{},
	},
	reflect.TypeOf(Polyhedron{}): {
		Keyword:   "polyhedron",
		Optional:  set("Convexity"),
		Prototype: Polyhedron{},
	},
	reflect.TypeOf(Import3D{}): {
		Keyword:   "import",
		Optional:  set("Layer", "Convexity"),
		Prototype: Import3D{},
	},
	reflect.TypeOf(Surface{}): {
		Keyword:   "surface",
		Optional:  set("Center", "Convexity", "Invert"),
		Prototype: Surface{},
	},

	// Booleans.
	reflect.TypeOf(Union2D{}):        {Keyword: "union", Container: "Children", Prototype: Union2D{}},
	reflect.TypeOf(Union3D{}):        {Keyword: "union", Container: "Children", Prototype: Union3D{}},
	reflect.TypeOf(Difference2D{}):   {Keyword: "difference", Container: "Children", Prototype: Difference2D{}},
	reflect.TypeOf(Difference3D{}):   {Keyword: "difference", Container: "Children", Prototype: Difference3D{}},
	reflect.TypeOf(Intersection2D{}): {Keyword: "intersection", Container: "Children", Prototype: Intersection2D{}},
	reflect.TypeOf(Intersection3D{}): {Keyword: "intersection", Container: "Children", Prototype: Intersection3D{}},

	// Transformations.
	reflect.TypeOf(Translate2D{}): {Keyword: "translate", Container: "Children", Prototype: Translate2D{}},
	reflect.TypeOf(Translate3D{}): {Keyword: "translate", Container: "Children", Prototype: Translate3D{}},
	reflect.TypeOf(Rotate2D{}): {
		Keyword:   "rotate",
		Container: "Children",
		Rename:    map[string]string{"Angle": "a"},
		Angles:    set("Angle"),
		Prototype: Rotate2D{},
	},
	reflect.TypeOf(Rotate3D{}): {
		Keyword:   "rotate",
		Container: "Children",
		Rename:    map[string]string{"Angles": "a"},
		Angles:    set("Angles"),
		Prototype: Rotate3D{},
	},
	reflect.TypeOf(Scale2D{}):  {Keyword: "scale", Container: "Children", Prototype: Scale2D{}},
	reflect.TypeOf(Scale3D{}):  {Keyword: "scale", Container: "Children", Prototype: Scale3D{}},
	reflect.TypeOf(Resize2D{}): {Keyword: "resize", Container: "Children", Prototype: Resize2D{}},
	reflect.TypeOf(Resize3D{}): {Keyword: "resize", Container: "Children", Prototype: Resize3D{}},
	reflect.TypeOf(Mirror2D{}): {
		Keyword:   "mirror",
		Container: "Children",
		Rename:    map[string]string{"Axes": "v"},
		Prototype: Mirror2D{},
	},
	reflect.TypeOf(Mirror3D{}): {
		Keyword:   "mirror",
		Container: "Children",
		Rename:    map[string]string{"Axes": "v"},
		Prototype: Mirror3D{},
	},
	reflect.TypeOf(MultMatrix2D{}): {
		Keyword:   "multmatrix",
		Container: "Children",
		Rename:    map[string]string{"Matrix": "m"},
		Prototype: MultMatrix2D{},
	},
	reflect.TypeOf(MultMatrix3D{}): {
		Keyword:   "multmatrix",
		Container: "Children",
		Rename:    map[string]string{"Matrix": "m"},
		Prototype: MultMatrix3D{},
	},
	reflect.TypeOf(Color2D{}): {
		Keyword:   "color",
		Container: "Children",
		Rename:    map[string]string{"Value": "c"},
		Prototype: Color2D{},
	},
	reflect.TypeOf(Color3D{}): {
		Keyword:   "color",
		Container: "Children",
		Rename:    map[string]string{"Value": "c"},
		Prototype: Color3D{},
	},
	reflect.TypeOf(RoundedOffset{}): {
		Keyword:   "offset",
		Container: "Children",
		Prototype: RoundedOffset{},
	},
	reflect.TypeOf(AngledOffset{}): {
		Keyword:   "offset",
		Container: "Children",
		Optional:  set("Chamfer"),
		Prototype: AngledOffset{},
	},
	reflect.TypeOf(Hull2D{}): {Keyword: "hull", Container: "Children", Prototype: Hull2D{}},
	reflect.TypeOf(Hull3D{}): {Keyword: "hull", Container: "Children", Prototype: Hull3D{}},
	reflect.TypeOf(Minkowski2D{}): {
		Keyword:   "minkowski",
		Container: "Children",
		Optional:  set("Convexity"),
		Prototype: Minkowski2D{},
	},
	reflect.TypeOf(Minkowski3D{}): {
		Keyword:   "minkowski",
		Container: "Children",
		Optional:  set("Convexity"),
		Prototype: Minkowski3D{},
	},
	reflect.TypeOf(Render3D{}): {
		Keyword:   "render",
		Container: "Children",
		Optional:  set("Convexity"),
		Prototype: Render3D{},
	},

	// Extrusions.
	reflect.TypeOf(LinearExtrusion{}): {
		Keyword:   "linear_extrude",
		Container: "Children",
		Angles:    set("Twist"),
		Optional:  set("Center", "Twist", "Slices", "Scale"),
		Prototype: LinearExtrusion{Scale: 1},
	},
	reflect.TypeOf(RotationalExtrusion{}): {
		Keyword:   "rotate_extrude",
		Container: "Children",
		Angles:    set("Angle"),
		Optional:  set("Angle", "Convexity"),
		Prototype: RotationalExtrusion{Angle: Tau},
	},
}

// TermOf returns serialization metadata for expressions covered by the
// generic transpilation rule.
func TermOf(e Expr) (Term, bool) {
	t, ok := terms[reflect.TypeOf(e)]
	return t, ok
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
