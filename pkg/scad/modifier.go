package scad

// Modifiers wrap a single child with a rendering-time display hint. They
// transpile as a one-character prefix on the child's first output line
// rather than as a block.

// Background2D renders its child transparently (the % modifier).
type Background2D struct {
	base2D
	Child Expr
}

// Background3D renders its child transparently (the % modifier).
type Background3D struct {
	base3D
	Child Expr
}

// Debug2D highlights its child (the # modifier).
type Debug2D struct {
	base2D
	Child Expr
}

// Debug3D highlights its child (the # modifier).
type Debug3D struct {
	base3D
	Child Expr
}

// Root2D shows only its child (the ! modifier).
type Root2D struct {
	base2D
	Child Expr
}

// Root3D shows only its child (the ! modifier).
type Root3D struct {
	base3D
	Child Expr
}

// Disable2D excludes its child from rendering (the * modifier).
type Disable2D struct {
	base2D
	Child Expr
}

// Disable3D excludes its child from rendering (the * modifier).
type Disable3D struct {
	base3D
	Child Expr
}
