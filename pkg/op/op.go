// Package op implements variadic arithmetic operators that fall back to
// CAD operations when given geometric expressions, in the manner of
// Clojure's core arithmetic extended by scad-clj.
package op

import (
	"fmt"

	"github.com/chazu/burl/pkg/scad"
	"github.com/chazu/burl/pkg/vocab"
)

// OperatorError reports misuse of an arithmetic operator.
type OperatorError struct {
	Operator string
	Reason   string
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("%q %s", e.Operator, e.Reason)
}

// Add sums numbers or same-length vectors elementwise. Geometry is
// rejected; unions have their own operator.
func Add(args ...any) (any, error) {
	if len(args) == 0 {
		return float64(0), nil
	}
	if vs, ok := vectors(args); ok {
		return foldVectors(vs, func(a, b float64) float64 { return a + b }), nil
	}
	ns, ok := numbers(args)
	if !ok {
		return nil, &OperatorError{Operator: "+", Reason: "is mathematical; use a union for geometry"}
	}
	sum := ns[0]
	for _, n := range ns[1:] {
		sum += n
	}
	return sum, nil
}

// Sub negates a single operand, subtracts numbers or vectors, and on
// geometric arguments falls back to the difference operation.
func Sub(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, &OperatorError{Operator: "-", Reason: "requires at least one operand"}
	}
	if ns, ok := numbers(args); ok {
		if len(ns) == 1 {
			return -ns[0], nil
		}
		acc := ns[0]
		for _, n := range ns[1:] {
			acc -= n
		}
		return acc, nil
	}
	if vs, ok := vectors(args); ok {
		if len(vs) == 1 {
			out := make([]float64, len(vs[0]))
			for i, n := range vs[0] {
				out[i] = -n
			}
			return out, nil
		}
		return foldVectors(vs, func(a, b float64) float64 { return a - b }), nil
	}
	exprs, err := geometry("-", args)
	if err != nil {
		return nil, err
	}
	return vocab.Difference(exprs[0], exprs[1:]...)
}

// Mul multiplies numbers. A single geometric argument is disabled instead,
// matching OpenSCAD's * modifier.
func Mul(args ...any) (any, error) {
	if len(args) == 0 {
		return float64(1), nil
	}
	if ns, ok := numbers(args); ok {
		prod := ns[0]
		for _, n := range ns[1:] {
			prod *= n
		}
		return prod, nil
	}
	if len(args) != 1 {
		return nil, &OperatorError{Operator: "*", Reason: "requires exactly one non-numeric operand"}
	}
	exprs, err := geometry("*", args)
	if err != nil {
		return nil, err
	}
	return vocab.Disable(exprs[0])
}

// Div divides numbers. A single operand is inverted.
func Div(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, &OperatorError{Operator: "/", Reason: "requires at least one operand"}
	}
	ns, ok := numbers(args)
	if !ok {
		return nil, &OperatorError{Operator: "/", Reason: "is mathematical; it takes numbers only"}
	}
	if len(ns) == 1 {
		return 1 / ns[0], nil
	}
	acc := ns[0]
	for _, n := range ns[1:] {
		acc /= n
	}
	return acc, nil
}

func number(a any) (float64, bool) {
	switch n := a.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func numbers(args []any) ([]float64, bool) {
	out := make([]float64, len(args))
	for i, a := range args {
		n, ok := number(a)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// vectors reports whether all arguments are numeric slices of one common
// length.
func vectors(args []any) ([][]float64, bool) {
	out := make([][]float64, len(args))
	for i, a := range args {
		v, ok := a.([]float64)
		if !ok {
			return nil, false
		}
		if i > 0 && len(v) != len(out[0]) {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func foldVectors(vs [][]float64, f func(a, b float64) float64) []float64 {
	out := make([]float64, len(vs[0]))
	copy(out, vs[0])
	for _, v := range vs[1:] {
		for i, n := range v {
			out[i] = f(out[i], n)
		}
	}
	return out
}

func geometry(operator string, args []any) ([]scad.Expr, error) {
	out := make([]scad.Expr, len(args))
	for i, a := range args {
		e, ok := a.(scad.Expr)
		if !ok {
			return nil, &OperatorError{
				Operator: operator,
				Reason:   fmt.Sprintf("cannot combine %T with geometry", a),
			}
		}
		out[i] = e
	}
	return out, nil
}
