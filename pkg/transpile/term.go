package transpile

import (
	"math"
	"reflect"
	"strings"

	"github.com/chazu/burl/pkg/scad"
)

// fromTerm is the generic transpilation rule, driven entirely by the
// expression's serialization metadata.
func fromTerm(e scad.Expr, t scad.Term) ([]string, error) {
	params, err := termParams(e, t)
	if err != nil {
		return nil, err
	}
	head := t.Keyword + "(" + strings.Join(params, ", ") + ")"
	if t.Container == "" {
		return []string{head + ";"}, nil
	}
	return contain(head+" ", childrenOf(e, t.Container))
}

// termParams builds the name=value parameter list from the expression's
// fields, in definition order. The children-carrying field is skipped;
// optional fields equal to their canonical default are elided; fields
// stored in radians are converted to degrees.
func termParams(e scad.Expr, t scad.Term) ([]string, error) {
	rv := reflect.ValueOf(e)
	rt := rv.Type()
	proto := reflect.ValueOf(t.Prototype)

	var params []string
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" || f.Name == t.Container {
			continue
		}
		value := rv.Field(i).Interface()
		if t.Optional[f.Name] && reflect.DeepEqual(value, proto.Field(i).Interface()) {
			continue
		}
		if t.Angles[f.Name] {
			value = degrees(value)
		}
		name := t.Rename[f.Name]
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		s, err := formatValue(value)
		if err != nil {
			return nil, err
		}
		params = append(params, name+"="+s)
	}
	return params, nil
}

// childrenOf fetches the container field, coercing a single child into a
// one-element sequence.
func childrenOf(e scad.Expr, field string) []scad.Expr {
	v := reflect.ValueOf(e).FieldByName(field).Interface()
	switch c := v.(type) {
	case []scad.Expr:
		return c
	case scad.Expr:
		if c == nil {
			return nil
		}
		return []scad.Expr{c}
	}
	return nil
}

// degrees converts a radian-valued field, scalar or per element of a
// vector, for output.
func degrees(value any) any {
	switch v := value.(type) {
	case float64:
		return radToDeg(v)
	case scad.Vec2:
		return scad.Vec2{radToDeg(v[0]), radToDeg(v[1])}
	case scad.Vec3:
		return scad.Vec3{radToDeg(v[0]), radToDeg(v[1]), radToDeg(v[2])}
	}
	return value
}

func radToDeg(radians float64) float64 {
	return (radians * 180) / math.Pi
}
