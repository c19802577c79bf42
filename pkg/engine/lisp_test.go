package engine

import (
	"errors"
	"testing"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/burl/pkg/scad"
)

func kw(name string) zygo.Sexp {
	return &zygo.SexpStr{S: kwPrefix + name}
}

func num(f float64) zygo.Sexp {
	return &zygo.SexpFloat{Val: f}
}

func arr(items ...zygo.Sexp) zygo.Sexp {
	return &zygo.SexpArray{Val: items}
}

func TestParseArgs(t *testing.T) {
	pa := parseArgs([]zygo.Sexp{
		num(1),
		kw("center"), &zygo.SexpBool{Val: true},
		num(2),
		kw("flag"),
	})

	if len(pa.positional) != 2 {
		t.Errorf("positional count = %d, want 2", len(pa.positional))
	}
	if _, ok := pa.kw["center"]; !ok {
		t.Error("center keyword missing")
	}
	// A trailing keyword with no value behaves as a true flag.
	v, ok := pa.kw["flag"]
	if !ok {
		t.Fatal("flag keyword missing")
	}
	b, err := toBool(v)
	if err != nil || !b {
		t.Errorf("flag = %v (%v), want true", v, err)
	}
}

func TestVectorConversions(t *testing.T) {
	v3, err := toVec3(arr(num(1), num(2), num(3)))
	if err != nil {
		t.Fatalf("toVec3() error: %v", err)
	}
	if v3 != (scad.Vec3{1, 2, 3}) {
		t.Errorf("toVec3() = %v", v3)
	}

	if _, err := toVec3(arr(num(1), num(2))); err == nil {
		t.Error("expected length error from toVec3")
	}

	axes, err := toAxes(arr(num(1), num(0), num(0)))
	if err != nil {
		t.Fatalf("toAxes() error: %v", err)
	}
	if axes != (scad.Axes{1, 0, 0}) {
		t.Errorf("toAxes() = %v", axes)
	}

	faces, err := toIntSlices(arr(arr(num(0), num(1), num(2))))
	if err != nil {
		t.Fatalf("toIntSlices() error: %v", err)
	}
	if len(faces) != 1 || len(faces[0]) != 3 || faces[0][2] != 2 {
		t.Errorf("toIntSlices() = %v", faces)
	}

	m, err := toMat4(arr(
		arr(num(1), num(0), num(0), num(0)),
		arr(num(0), num(1), num(0), num(0)),
		arr(num(0), num(0), num(1), num(0)),
		arr(num(0), num(0), num(0), num(1)),
	))
	if err != nil {
		t.Fatalf("toMat4() error: %v", err)
	}
	if m[3] != (scad.Vec4{0, 0, 0, 1}) {
		t.Errorf("toMat4() bottom row = %v", m[3])
	}
}

func TestOperandRoundTrip(t *testing.T) {
	in, err := toOperand(arr(num(1), num(2)))
	if err != nil {
		t.Fatalf("toOperand() error: %v", err)
	}
	v, ok := in.([]float64)
	if !ok || len(v) != 2 {
		t.Fatalf("toOperand() = %#v, want []float64 of 2", in)
	}

	out, err := fromOperand(v)
	if err != nil {
		t.Fatalf("fromOperand() error: %v", err)
	}
	if _, ok := out.(*zygo.SexpArray); !ok {
		t.Errorf("fromOperand() = %T, want *zygo.SexpArray", out)
	}

	expr, err := fromOperand(scad.Sphere{Radius: 1})
	if err != nil {
		t.Fatalf("fromOperand(expr) error: %v", err)
	}
	if _, ok := expr.(*sexpExpr); !ok {
		t.Errorf("fromOperand(expr) = %T, want *sexpExpr", expr)
	}
}

func TestToExprRejectsJunk(t *testing.T) {
	_, err := toExpr("contain", num(3))
	var bad *scad.NotAnExpressionError
	if !errors.As(err, &bad) {
		t.Fatalf("error = %v, want *NotAnExpressionError", err)
	}
}
