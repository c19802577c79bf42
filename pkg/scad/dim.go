// Package scad defines the intermediate representation for OpenSCAD
// geometry: a closed set of immutable expression variants with 2D/3D
// dimensionality enforced at construction time.
package scad

// Dim is the dimensionality class of an expression.
type Dim int

const (
	DimNone Dim = iota // dimension-free metadata (comments, echoes, bare calls)
	Dim2
	Dim3
)

func (d Dim) String() string {
	switch d {
	case Dim2:
		return "2D"
	case Dim3:
		return "3D"
	default:
		return "dimension-free"
	}
}

// Expr is one immutable node in the OpenSCAD intermediate representation.
// The set of implementations is closed to this package; the transpiler
// dispatches exhaustively over it.
type Expr interface {
	// Dim reports the dimensionality class of the expression.
	Dim() Dim
	sealed()
}

// base2D, base3D and baseND are embedded by every variant to fix its
// dimensionality class and seal the Expr interface.
type base2D struct{}

func (base2D) Dim() Dim { return Dim2 }
func (base2D) sealed()  {}

type base3D struct{}

func (base3D) Dim() Dim { return Dim3 }
func (base3D) sealed()  {}

type baseND struct{}

func (baseND) Dim() Dim { return DimNone }
func (baseND) sealed()  {}

// Classify determines the common dimensionality of a sequence of child
// expressions. Dimension-free children are acceptable alongside either
// class; a sequence with no dimensioned member classifies as 3D. Mixing 2D
// and 3D children is a DimensionMismatchError, with the position of a
// single minority child named when there is exactly one.
func Classify(verb string, children ...Expr) (Dim, error) {
	var two, three []int
	for i, c := range children {
		if c == nil {
			return 0, notAnExpression(verb, nil)
		}
		switch c.Dim() {
		case Dim2:
			two = append(two, i)
		case Dim3:
			three = append(three, i)
		}
	}

	if len(two) > 0 && len(three) > 0 {
		// OpenSCAD's behaviour on mixed input is poorly defined.
		// Best not to transpile.
		e := &DimensionMismatchError{Verb: verb, Total: len(children)}
		if len(two) == 1 && len(three) != 1 {
			e.Outlier, e.OutlierDim = two[0]+1, Dim2
		} else if len(three) == 1 && len(two) != 1 {
			e.Outlier, e.OutlierDim = three[0]+1, Dim3
		}
		return 0, e
	}

	if len(two) > 0 {
		return Dim2, nil
	}

	// Treat expressions of unknown dimensionality as 3D.
	return Dim3, nil
}

// MatchVector checks that children match the dimensionality implied by a
// vector argument of length 2 or 3, and returns that common dimensionality.
// The argument is assumed to describe the dimensionality of an operation
// upon the children.
func MatchVector(verb string, arg []float64, children ...Expr) (Dim, error) {
	plural := len(children) != 1

	var want Dim
	switch len(arg) {
	case 2:
		want = Dim2
	case 3:
		want = Dim3
	default:
		return 0, &DimensionZeroError{Verb: verb, Arg: arg, Plural: plural}
	}

	got, err := Classify(verb, children...)
	if err != nil {
		return 0, err
	}
	if got != want {
		return 0, &DimensionMismatchError{
			Verb:   verb,
			Arg:    arg,
			Got:    got,
			Want:   want,
			Plural: plural,
		}
	}
	return want, nil
}
