package scad

import (
	"fmt"
	"strings"
)

// ConstructionError reports an expression built with structurally invalid
// arguments, such as a module definition with no children.
type ConstructionError struct {
	Op     string // the operation being constructed
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot construct %s: %s", e.Op, e.Reason)
}

// DimensionMismatchError reports conflicting 2D and 3D input, either among
// the children of one container or between children and a vector argument.
type DimensionMismatchError struct {
	Verb string

	// Child-list form: Total children were classified, and when exactly one
	// belongs to the minority class, Outlier holds its 1-based position.
	Total      int
	Outlier    int
	OutlierDim Dim

	// Argument form: the children's dimensionality Got disagrees with the
	// dimensionality Want implied by the vector argument Arg.
	Arg    []float64
	Got    Dim
	Want   Dim
	Plural bool
}

func (e *DimensionMismatchError) Error() string {
	if e.Arg != nil {
		return fmt.Sprintf("cannot %s %s expression%s with %s argument %s",
			e.Verb, e.Got, pluralSuffix(e.Plural), e.Want, formatArg(e.Arg))
	}
	msg := fmt.Sprintf("cannot %s mixed 2D and 3D expressions", e.Verb)
	if e.Outlier > 0 {
		msg += fmt.Sprintf("; one, in place %d of %d, is %s",
			e.Outlier, e.Total, e.OutlierDim)
	}
	return msg
}

// DimensionZeroError reports a vector argument whose length implies neither
// 2D nor 3D.
type DimensionZeroError struct {
	Verb   string
	Arg    []float64
	Plural bool
}

func (e *DimensionZeroError) Error() string {
	return fmt.Sprintf("cannot %s expression%s with %dD argument %s",
		e.Verb, pluralSuffix(e.Plural), len(e.Arg), formatArg(e.Arg))
}

// NotAnExpressionError reports a value that reached a position expecting an
// Expr but is not one. Value holds a truncated preview for the user.
type NotAnExpressionError struct {
	Verb  string
	Value string
	Type  string
}

func (e *NotAnExpressionError) Error() string {
	return fmt.Sprintf("cannot %s non-OpenSCAD expression %s of type %s",
		e.Verb, e.Value, e.Type)
}

// NotExpression reports value as unusable in a position that expected an
// expression, stringifying and truncating it for the benefit of the user.
func NotExpression(verb string, value any) *NotAnExpressionError {
	return notAnExpression(verb, value)
}

func notAnExpression(verb string, value any) *NotAnExpressionError {
	return &NotAnExpressionError{
		Verb:  verb,
		Value: previewValue(value),
		Type:  fmt.Sprintf("%T", value),
	}
}

// previewValue describes a bad value, truncated when long.
func previewValue(value any) string {
	s := fmt.Sprint(value)
	if len(s) > 30 {
		return fmt.Sprintf("%q... (truncated)", s[:20])
	}
	return fmt.Sprintf("%q", s)
}

func pluralSuffix(plural bool) string {
	if plural {
		return "s"
	}
	return ""
}

func formatArg(arg []float64) string {
	parts := make([]string, len(arg))
	for i, f := range arg {
		parts[i] = fmt.Sprintf("%v", f)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
