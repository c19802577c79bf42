package scad

// Boolean containers hold an ordered sequence of same-dimensionality
// children. Construction goes through the vocab package, which classifies
// the children and picks the 2D or 3D variant.

// Union2D is the union of 2D children.
type Union2D struct {
	base2D
	Children []Expr
}

// Union3D is the union of 3D children.
type Union3D struct {
	base3D
	Children []Expr
}

// Difference2D subtracts all later children from the first.
type Difference2D struct {
	base2D
	Children []Expr
}

// Difference3D subtracts all later children from the first.
type Difference3D struct {
	base3D
	Children []Expr
}

// Intersection2D is the intersection of 2D children.
type Intersection2D struct {
	base2D
	Children []Expr
}

// Intersection3D is the intersection of 3D children.
type Intersection3D struct {
	base3D
	Children []Expr
}
