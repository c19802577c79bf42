package scad

// Transformations carry their children's dimensionality. Angle fields are
// stored in radians; the transpiler converts to degrees at the
// serialization boundary.

// Translate2D moves 2D children by a plane vector.
type Translate2D struct {
	base2D
	V        Vec2
	Children []Expr
}

// Translate3D moves 3D children by a space vector.
type Translate3D struct {
	base3D
	V        Vec3
	Children []Expr
}

// Rotate2D rotates children in the plane by an angle in radians.
type Rotate2D struct {
	base2D
	Angle    float64
	Children []Expr
}

// Rotate3D rotates children by Euler angles in radians.
type Rotate3D struct {
	base3D
	Angles   Vec3
	Children []Expr
}

// Scale2D scales 2D children by per-axis factors.
type Scale2D struct {
	base2D
	V        Vec2
	Children []Expr
}

// Scale3D scales 3D children by per-axis factors.
type Scale3D struct {
	base3D
	V        Vec3
	Children []Expr
}

// Resize2D resizes 2D children to a target size.
type Resize2D struct {
	base2D
	NewSize  Vec2
	Children []Expr
}

// Resize3D resizes 3D children to a target size.
type Resize3D struct {
	base3D
	NewSize  Vec3
	Children []Expr
}

// Mirror2D mirrors 2D children across the plane described by Axes.
type Mirror2D struct {
	base2D
	Axes     Axes
	Children []Expr
}

// Mirror3D mirrors 3D children across the plane described by Axes.
type Mirror3D struct {
	base3D
	Axes     Axes
	Children []Expr
}

// MultMatrix2D applies an affine matrix to 2D children.
type MultMatrix2D struct {
	base2D
	Matrix   Mat4
	Children []Expr
}

// MultMatrix3D applies an affine matrix to 3D children.
type MultMatrix3D struct {
	base3D
	Matrix   Mat4
	Children []Expr
}

// Color2D colors 2D children. Value is a Vec4 RGBA quadruple or a named
// color string.
type Color2D struct {
	base2D
	Value    any
	Children []Expr
}

// Color3D colors 3D children. Value is a Vec4 RGBA quadruple or a named
// color string.
type Color3D struct {
	base3D
	Value    any
	Children []Expr
}

// RoundedOffset grows or shrinks 2D children with rounded corners.
type RoundedOffset struct {
	base2D
	R        float64
	Children []Expr
}

// AngledOffset grows or shrinks 2D children with straight corners,
// optionally chamfered.
type AngledOffset struct {
	base2D
	Delta    float64
	Chamfer  bool
	Children []Expr
}

// Hull2D is the convex hull of 2D children.
type Hull2D struct {
	base2D
	Children []Expr
}

// Hull3D is the convex hull of 3D children.
type Hull3D struct {
	base3D
	Children []Expr
}

// Minkowski2D is the Minkowski sum of 2D children.
type Minkowski2D struct {
	base2D
	Convexity int
	Children  []Expr
}

// Minkowski3D is the Minkowski sum of 3D children.
type Minkowski3D struct {
	base3D
	Convexity int
	Children  []Expr
}

// Render3D forces evaluation of 3D children at compile time.
type Render3D struct {
	base3D
	Convexity int
	Children  []Expr
}
