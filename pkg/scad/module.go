package scad

// Modules are named, reusable sub-trees: defined once, called by name.

// ModuleDefinition2D defines a named module with a 2D body.
type ModuleDefinition2D struct {
	base2D
	Name     string
	Children []Expr
}

// ModuleDefinition3D defines a named module with a 3D body.
type ModuleDefinition3D struct {
	base3D
	Name     string
	Children []Expr
}

// ModuleCall2D calls a module, passing 2D children.
type ModuleCall2D struct {
	base2D
	Name     string
	Children []Expr
}

// ModuleCall3D calls a module, passing 3D children.
type ModuleCall3D struct {
	base3D
	Name     string
	Children []Expr
}

// ModuleCallND calls a module with no children. The call itself has no
// dimensionality.
type ModuleCallND struct {
	baseND
	Name string
}

// ModuleChildren marks the place inside a module body where the children
// of the call site are inserted.
type ModuleChildren struct {
	baseND
}
