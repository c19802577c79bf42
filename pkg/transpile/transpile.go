// Package transpile converts scad expression trees into OpenSCAD source
// text. Transpilation is a pure function of the tree: the same tree always
// yields the same lines, in deterministic pre-order.
package transpile

import (
	"io"
	"strings"

	"github.com/chazu/burl/pkg/scad"
)

// indent is one nesting level of OpenSCAD block structure.
const indent = "    "

// Transpile renders one expression, and by recursion its entire subtree,
// into ordered lines of OpenSCAD code. The input tree is assumed valid;
// construction-time validation is the vocab package's responsibility.
func Transpile(e scad.Expr) ([]string, error) {
	return lines(e)
}

// Write transpiles each expression and writes the lines to w, with one
// blank line after every top-level expression.
func Write(w io.Writer, exprs ...scad.Expr) error {
	for _, e := range exprs {
		ls, err := lines(e)
		if err != nil {
			return err
		}
		for _, l := range ls {
			if _, err := io.WriteString(w, l+"\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// lines is the dispatcher. Variants with structure the generic metadata
// rule cannot express are handled case by case; everything else goes
// through fromTerm.
func lines(e scad.Expr) ([]string, error) {
	switch v := e.(type) {
	case scad.Comment:
		return commentLines(v), nil

	case scad.Commented2D:
		return commentedLines(v.Comment, v.Subject)
	case scad.Commented3D:
		return commentedLines(v.Comment, v.Subject)

	case scad.SpecialVariable:
		return specialLines(v)

	case scad.Echo:
		return echoLines(v)

	case scad.Background2D:
		return modifier("%", v.Child)
	case scad.Background3D:
		return modifier("%", v.Child)
	case scad.Debug2D:
		return modifier("#", v.Child)
	case scad.Debug3D:
		return modifier("#", v.Child)
	case scad.Root2D:
		return modifier("!", v.Child)
	case scad.Root3D:
		return modifier("!", v.Child)
	case scad.Disable2D:
		return modifier("*", v.Child)
	case scad.Disable3D:
		return modifier("*", v.Child)

	case scad.ModuleDefinition2D:
		return contain("module "+v.Name+"() ", v.Children)
	case scad.ModuleDefinition3D:
		return contain("module "+v.Name+"() ", v.Children)
	case scad.ModuleCall2D:
		return contain(v.Name+"() ", v.Children)
	case scad.ModuleCall3D:
		return contain(v.Name+"() ", v.Children)
	case scad.ModuleCallND:
		return []string{v.Name + "();"}, nil
	case scad.ModuleChildren:
		return []string{"children();"}, nil

	case nil:
		return nil, scad.NotExpression("transpile", nil)
	}

	if t, ok := scad.TermOf(e); ok {
		return fromTerm(e, t)
	}
	return nil, scad.NotExpression("transpile", e)
}

// modifier prepends a one-character modifier symbol to the first line of
// the child's code. OpenSCAD modifiers attach to a single statement; no
// block or indentation is added.
func modifier(symbol string, child scad.Expr) ([]string, error) {
	ls, err := lines(child)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ls))
	out[0] = symbol + ls[0]
	copy(out[1:], ls[1:])
	return out, nil
}

// contain renders a block form: the lead (keyword, parameters and a
// trailing space) followed by the children, indented one level inside
// braces. A container without children still emits an empty-brace block.
func contain(lead string, children []scad.Expr) ([]string, error) {
	if len(children) == 0 {
		return []string{lead + "{};"}, nil
	}
	out := []string{lead + "{"}
	for _, c := range children {
		ls, err := lines(c)
		if err != nil {
			return nil, err
		}
		for _, l := range ls {
			out = append(out, indent+l)
		}
	}
	return append(out, "};"), nil
}

func commentLines(c scad.Comment) []string {
	out := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		out[i] = "// " + l
	}
	return out
}

func commentedLines(c scad.Comment, subject scad.Expr) ([]string, error) {
	ls, err := lines(subject)
	if err != nil {
		return nil, err
	}
	return append(commentLines(c), ls...), nil
}

func specialLines(v scad.SpecialVariable) ([]string, error) {
	switch {
	case v.Preview == nil:
		return []string{v.Name + ";"}, nil
	case v.Render == nil:
		s, err := formatValue(*v.Preview)
		if err != nil {
			return nil, err
		}
		return []string{v.Name + " = " + s + ";"}, nil
	default:
		p, err := formatValue(*v.Preview)
		if err != nil {
			return nil, err
		}
		r, err := formatValue(*v.Render)
		if err != nil {
			return nil, err
		}
		return []string{v.Name + " = $preview ? " + p + " : " + r + ";"}, nil
	}
}

func echoLines(v scad.Echo) ([]string, error) {
	parts := make([]string, len(v.Content))
	for i, c := range v.Content {
		s, err := formatValue(c)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return []string{"echo(" + strings.Join(parts, ", ") + ");"}, nil
}
