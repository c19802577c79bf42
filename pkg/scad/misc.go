package scad

// Comment holds lines of commentary to appear verbatim in the output.
type Comment struct {
	baseND
	Lines []string
}

// Commented2D pairs a comment with the 2D expression it describes.
type Commented2D struct {
	base2D
	Comment Comment
	Subject Expr
}

// Commented3D pairs a comment with the 3D expression it describes.
type Commented3D struct {
	base3D
	Comment Comment
	Subject Expr
}

// SpecialVariable reads or assigns one of OpenSCAD's $-variables. With no
// values it is a bare reference, with one a plain assignment, and with two
// a ternary assignment keyed on $preview.
type SpecialVariable struct {
	baseND
	Name    string
	Preview *float64
	Render  *float64
}

// Echo prints its content to the renderer's console.
type Echo struct {
	baseND
	Content []any
}
