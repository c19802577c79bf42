package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/burl/pkg/asset"
	"github.com/chazu/burl/pkg/scad"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms burl Lisp source code before passing it to
// zygomys. It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: linear-extrude -> linear_extrude
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
//  3. ; line comments become // comments, zygomys's comment syntax.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword", preserving := assignment.
		if b[i] == ':' && i+1 < len(b) {
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers. Only when the hyphen sits
		// between identifier characters, so minus stays an operator.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpExpr wraps a scad.Expr so geometry can flow between builtins.
type sexpExpr struct {
	e scad.Expr
}

func (x *sexpExpr) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(scad %s %T)", x.e.Dim(), x.e)
}
func (x *sexpExpr) Type() *zygo.RegisteredType { return nil }

// sexpAsset wraps an asset.Asset built by the asset builtin.
type sexpAsset struct {
	a asset.Asset
}

func (x *sexpAsset) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(asset %q)", x.a.Name)
}
func (x *sexpAsset) Type() *zygo.RegisteredType { return nil }

// sexpImage wraps an asset.Image capture spec.
type sexpImage struct {
	img asset.Image
}

func (x *sexpImage) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(image %q)", x.img.Path)
}
func (x *sexpImage) Type() *zygo.RegisteredType { return nil }

// sexpCamera wraps an asset.Camera setup.
type sexpCamera struct {
	cam asset.Camera
}

func (x *sexpCamera) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(camera %T)", x.cam)
}
func (x *sexpCamera) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value acts as a true flag.
				result.kw[name] = &zygo.SexpBool{Val: true}
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// float extracts an optional numeric keyword argument into dst.
func (a kwArgs) float(name string, dst *float64) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

// boolean extracts an optional boolean keyword argument into dst.
func (a kwArgs) boolean(name string, dst *bool) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	b, err := toBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = b
	return nil
}

// str extracts an optional string keyword argument into dst.
func (a kwArgs) str(name string, dst *string) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	s, err := toString(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = s
	return nil
}

// integer extracts an optional integer keyword argument into dst.
func (a kwArgs) integer(name string, dst *int) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = int(f)
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toExpr extracts a scad.Expr from a builtin's geometry result.
func toExpr(verb string, s zygo.Sexp) (scad.Expr, error) {
	if x, ok := s.(*sexpExpr); ok {
		return x.e, nil
	}
	return nil, scad.NotExpression(verb, s.SexpString(nil))
}

// toExprs converts a builtin's trailing arguments to geometry children,
// skipping nulls so that conditional forms can drop out cleanly.
func toExprs(verb string, args []zygo.Sexp) ([]scad.Expr, error) {
	out := make([]scad.Expr, 0, len(args))
	for _, a := range args {
		if a == zygo.SexpNull {
			continue
		}
		e, err := toExpr(verb, a)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toFloats extracts a numeric vector of any length.
func toFloats(s zygo.Sexp) ([]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat64(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

func toVec2(s zygo.Sexp) (scad.Vec2, error) {
	fs, err := toFloats(s)
	if err != nil {
		return scad.Vec2{}, err
	}
	if len(fs) != 2 {
		return scad.Vec2{}, fmt.Errorf("expected 2 elements, got %d", len(fs))
	}
	return scad.Vec2{fs[0], fs[1]}, nil
}

func toVec3(s zygo.Sexp) (scad.Vec3, error) {
	fs, err := toFloats(s)
	if err != nil {
		return scad.Vec3{}, err
	}
	if len(fs) != 3 {
		return scad.Vec3{}, fmt.Errorf("expected 3 elements, got %d", len(fs))
	}
	return scad.Vec3{fs[0], fs[1], fs[2]}, nil
}

func toVec4(s zygo.Sexp) (scad.Vec4, error) {
	fs, err := toFloats(s)
	if err != nil {
		return scad.Vec4{}, err
	}
	if len(fs) != 4 {
		return scad.Vec4{}, fmt.Errorf("expected 4 elements, got %d", len(fs))
	}
	return scad.Vec4{fs[0], fs[1], fs[2], fs[3]}, nil
}

// toAxes extracts a mirror plane's integer axis coefficients.
func toAxes(s zygo.Sexp) (scad.Axes, error) {
	fs, err := toFloats(s)
	if err != nil {
		return scad.Axes{}, err
	}
	if len(fs) != 3 {
		return scad.Axes{}, fmt.Errorf("expected 3 axis coefficients, got %d", len(fs))
	}
	return scad.Axes{int(fs[0]), int(fs[1]), int(fs[2])}, nil
}

// toMat4 extracts an affine matrix as four rows of four numbers.
func toMat4(s zygo.Sexp) (scad.Mat4, error) {
	rows, err := sexpListToSlice(s)
	if err != nil {
		return scad.Mat4{}, err
	}
	if len(rows) != 4 {
		return scad.Mat4{}, fmt.Errorf("expected 4 matrix rows, got %d", len(rows))
	}
	var m scad.Mat4
	for i, row := range rows {
		v, err := toVec4(row)
		if err != nil {
			return scad.Mat4{}, fmt.Errorf("row %d: %w", i, err)
		}
		m[i] = v
	}
	return m, nil
}

// toVec2s extracts polygon points.
func toVec2s(s zygo.Sexp) ([]scad.Vec2, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]scad.Vec2, len(items))
	for i, item := range items {
		v, err := toVec2(item)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// toVec3s extracts polyhedron points.
func toVec3s(s zygo.Sexp) ([]scad.Vec3, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]scad.Vec3, len(items))
	for i, item := range items {
		v, err := toVec3(item)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// toIntSlices extracts polygon paths or polyhedron faces.
func toIntSlices(s zygo.Sexp) ([][]int, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([][]int, len(items))
	for i, item := range items {
		fs, err := toFloats(item)
		if err != nil {
			return nil, fmt.Errorf("list %d: %w", i, err)
		}
		ints := make([]int, len(fs))
		for j, f := range fs {
			ints[j] = int(f)
		}
		out[i] = ints
	}
	return out, nil
}

// toOperand maps a Sexp to an operand for the arithmetic builtins:
// a number, a numeric vector, or geometry.
func toOperand(s zygo.Sexp) (any, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	case *sexpExpr:
		return v.e, nil
	case *zygo.SexpArray, *zygo.SexpPair:
		return toFloats(s)
	}
	return nil, fmt.Errorf("expected number, vector or geometry, got %T (%s)", s, s.SexpString(nil))
}

// fromOperand maps an arithmetic result back into the environment.
func fromOperand(v any) (zygo.Sexp, error) {
	switch r := v.(type) {
	case float64:
		return &zygo.SexpFloat{Val: r}, nil
	case []float64:
		items := make([]zygo.Sexp, len(r))
		for i, f := range r {
			items[i] = &zygo.SexpFloat{Val: f}
		}
		return &zygo.SexpArray{Val: items}, nil
	case scad.Expr:
		return &sexpExpr{e: r}, nil
	}
	return zygo.SexpNull, fmt.Errorf("cannot return %T to the interpreter", v)
}
