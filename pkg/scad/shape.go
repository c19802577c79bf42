package scad

// ---------------------------------------------------------------------------
// 2D shapes
// ---------------------------------------------------------------------------

// Circle is a circle around the origin.
type Circle struct {
	base2D
	Radius float64
}

// Square is a square, optionally centered on the origin.
type Square struct {
	base2D
	Size   float64
	Center bool
}

// Rectangle is an axis-aligned rectangle. It shares the square keyword in
// OpenSCAD, which takes a two-element size.
type Rectangle struct {
	base2D
	Size   Vec2
	Center bool
}

// Polygon is a closed polygon, optionally with explicit paths indexing into
// its points.
type Polygon struct {
	base2D
	Points    []Vec2
	Paths     [][]int
	Convexity int
}

// Text renders a string of text as 2D geometry.
type Text struct {
	base2D
	Text      string
	Size      float64
	Font      string
	Halign    string
	Valign    string
	Spacing   float64
	Direction string
	Language  string
	Script    string
}

// Import2D reads 2D geometry from a file (DXF, SVG).
type Import2D struct {
	base2D
	File      string
	Layer     string
	Convexity int
}

// Projection flattens a 3D child onto the xy plane. With Cut, only the
// intersection with the plane remains.
type Projection struct {
	base2D
	Cut   bool
	Child Expr
}

// ---------------------------------------------------------------------------
// 3D shapes
// ---------------------------------------------------------------------------

// Sphere is a sphere around the origin.
type Sphere struct {
	base3D
	Radius float64
}

// Cube is a rectangular cuboid, optionally centered on the origin.
type Cube struct {
	base3D
	Size   Vec3
	Center bool
}

// Cylinder is a right circular cylinder.
type Cylinder struct {
	base3D
	Radius float64
	Height float64
	Center bool
}

// Frustum is a conical frustum: a cylinder with distinct radii at its two
// ends. It shares the cylinder keyword in OpenSCAD.
type Frustum struct {
	base3D
	R1     float64
	R2     float64
	Height float64
	Center bool
}

// Polyhedron is an arbitrary polyhedron with faces indexing into its points.
type Polyhedron struct {
	base3D
	Points    []Vec3
	Faces     [][]int
	Convexity int
}

// Import3D reads 3D geometry from a file (STL, OFF, AMF, 3MF).
type Import3D struct {
	base3D
	File      string
	Layer     string
	Convexity int
}

// Surface builds a height field from a data file.
type Surface struct {
	base3D
	File      string
	Center    bool
	Convexity int
	Invert    bool
}
