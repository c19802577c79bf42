package vocab

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/chazu/burl/pkg/scad"
)

func TestUnionDispatch(t *testing.T) {
	circle := Circle(1)
	sphere := Sphere(1)

	t.Run("2D children make a 2D union", func(t *testing.T) {
		u, err := Union(circle, circle)
		if err != nil {
			t.Fatalf("Union() error: %v", err)
		}
		if _, ok := u.(scad.Union2D); !ok {
			t.Errorf("Union() = %T, want scad.Union2D", u)
		}
	})

	t.Run("3D children make a 3D union", func(t *testing.T) {
		u, err := Union(sphere, sphere)
		if err != nil {
			t.Fatalf("Union() error: %v", err)
		}
		if _, ok := u.(scad.Union3D); !ok {
			t.Errorf("Union() = %T, want scad.Union3D", u)
		}
	})

	t.Run("empty union defaults to 3D", func(t *testing.T) {
		u, err := Union()
		if err != nil {
			t.Fatalf("Union() error: %v", err)
		}
		if _, ok := u.(scad.Union3D); !ok {
			t.Errorf("Union() = %T, want scad.Union3D", u)
		}
	})

	t.Run("mixed children are rejected", func(t *testing.T) {
		_, err := Union(circle, Cube(scad.Vec3{1, 1, 1}, false))
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "mixed 2D and 3D") {
			t.Errorf("error = %q, want mention of mixed 2D and 3D", err.Error())
		}
	})
}

func TestDifferenceOrder(t *testing.T) {
	minuend := Cube(scad.Vec3{10, 10, 10}, true)
	hole := Cylinder(2, 12, true)
	d, err := Difference(minuend, hole)
	if err != nil {
		t.Fatalf("Difference() error: %v", err)
	}
	diff, ok := d.(scad.Difference3D)
	if !ok {
		t.Fatalf("Difference() = %T, want scad.Difference3D", d)
	}
	if len(diff.Children) != 2 || diff.Children[0] != minuend {
		t.Errorf("minuend is not the first child: %#v", diff.Children)
	}
}

func TestTranslateDimensions(t *testing.T) {
	circle := Circle(1)
	sphere := Sphere(1)

	tests := []struct {
		name     string
		v        []float64
		children []scad.Expr
		want     scad.Expr
		wantErr  string
	}{
		{name: "2D", v: []float64{1, 2}, children: []scad.Expr{circle}, want: scad.Translate2D{}},
		{name: "3D", v: []float64{1, 2, 3}, children: []scad.Expr{sphere}, want: scad.Translate3D{}},
		{
			name:     "argument and child disagree",
			v:        []float64{1, 2, 3},
			children: []scad.Expr{circle},
			wantErr:  "cannot translate 2D expression with 3D argument (1, 2, 3)",
		},
		{
			name:    "degenerate vector",
			v:       []float64{1},
			wantErr: "1D argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Translate(tt.v, tt.children...)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error, got %T", e)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got, want := reflect.TypeOf(e), reflect.TypeOf(tt.want); got != want {
				t.Errorf("Translate() = %v, want %v", got, want)
			}
		})
	}
}

func TestRotateArity(t *testing.T) {
	circle := Circle(1)
	sphere := Sphere(1)

	t.Run("one angle rotates in the plane", func(t *testing.T) {
		e, err := Rotate([]float64{1.5}, circle)
		if err != nil {
			t.Fatalf("Rotate() error: %v", err)
		}
		if _, ok := e.(scad.Rotate2D); !ok {
			t.Errorf("Rotate() = %T, want scad.Rotate2D", e)
		}
	})

	t.Run("three angles rotate in space", func(t *testing.T) {
		e, err := Rotate([]float64{0, 0, 1.5}, sphere)
		if err != nil {
			t.Fatalf("Rotate() error: %v", err)
		}
		if _, ok := e.(scad.Rotate3D); !ok {
			t.Errorf("Rotate() = %T, want scad.Rotate3D", e)
		}
	})

	t.Run("two angles are rejected", func(t *testing.T) {
		_, err := Rotate([]float64{1, 2}, sphere)
		var bad *scad.ConstructionError
		if !errors.As(err, &bad) {
			t.Fatalf("error = %v, want *ConstructionError", err)
		}
	})
}

func TestImportSuffixDispatch(t *testing.T) {
	tests := []struct {
		file    string
		want    scad.Dim
		wantErr bool
	}{
		{file: "outline.svg", want: scad.Dim2},
		{file: "outline.DXF", want: scad.Dim2},
		{file: "part.stl", want: scad.Dim3},
		{file: "part.3mf", want: scad.Dim3},
		{file: "part.off", want: scad.Dim3},
		{file: "part.amf", want: scad.Dim3},
		{file: "notes.txt", wantErr: true},
		{file: "bare", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			e, err := Import(tt.file, "", 0)
			if tt.wantErr {
				var bad *scad.ConstructionError
				if !errors.As(err, &bad) {
					t.Fatalf("error = %v, want *ConstructionError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Import() error: %v", err)
			}
			if e.Dim() != tt.want {
				t.Errorf("Import(%s).Dim() = %v, want %v", tt.file, e.Dim(), tt.want)
			}
		})
	}
}

func TestExtrusionRejects3D(t *testing.T) {
	_, err := LinearExtrude(scad.LinearExtrusion{Height: 5}, Sphere(1))
	if err == nil {
		t.Fatal("expected error extruding a 3D child")
	}
	_, err = RotationalExtrude(scad.RotationalExtrusion{}, Sphere(1))
	if err == nil {
		t.Fatal("expected error extruding a 3D child")
	}
}

func TestExtrusionDefaults(t *testing.T) {
	e, err := LinearExtrude(scad.LinearExtrusion{Height: 5}, Circle(1))
	if err != nil {
		t.Fatalf("LinearExtrude() error: %v", err)
	}
	if got := e.(scad.LinearExtrusion).Scale; got != 1 {
		t.Errorf("Scale = %v, want 1", got)
	}

	r, err := RotationalExtrude(scad.RotationalExtrusion{}, Circle(1))
	if err != nil {
		t.Fatalf("RotationalExtrude() error: %v", err)
	}
	if got := r.(scad.RotationalExtrusion).Angle; got != scad.Tau {
		t.Errorf("Angle = %v, want Tau", got)
	}
}

func TestProjectionRejects2D(t *testing.T) {
	if _, err := Projection(Circle(1), false); err == nil {
		t.Fatal("expected error projecting a 2D child")
	}
	if _, err := Projection(Sphere(1), false); err != nil {
		t.Fatalf("Projection() error: %v", err)
	}
}

func TestOffsetVariants(t *testing.T) {
	e, err := Offset(true, 2, 0, false, Circle(1))
	if err != nil {
		t.Fatalf("Offset() error: %v", err)
	}
	if _, ok := e.(scad.RoundedOffset); !ok {
		t.Errorf("Offset(round) = %T, want scad.RoundedOffset", e)
	}

	e, err = Offset(false, 0, 2, true, Circle(1))
	if err != nil {
		t.Fatalf("Offset() error: %v", err)
	}
	if _, ok := e.(scad.AngledOffset); !ok {
		t.Errorf("Offset(delta) = %T, want scad.AngledOffset", e)
	}

	if _, err := Offset(true, 2, 0, false, Sphere(1)); err == nil {
		t.Fatal("expected error offsetting a 3D child")
	}
}

func TestColorValueValidation(t *testing.T) {
	if _, err := Color("red", Sphere(1)); err != nil {
		t.Fatalf("Color(name) error: %v", err)
	}
	if _, err := Color(scad.Vec4{1, 0, 0, 0.5}, Sphere(1)); err != nil {
		t.Fatalf("Color(rgba) error: %v", err)
	}
	_, err := Color(7, Sphere(1))
	var bad *scad.ConstructionError
	if !errors.As(err, &bad) {
		t.Fatalf("error = %v, want *ConstructionError", err)
	}
}

func TestModules(t *testing.T) {
	t.Run("definition requires a body", func(t *testing.T) {
		_, err := DefineModule("arm")
		var bad *scad.ConstructionError
		if !errors.As(err, &bad) {
			t.Fatalf("error = %v, want *ConstructionError", err)
		}
	})

	t.Run("definition takes the body's dimensionality", func(t *testing.T) {
		d, err := DefineModule("arm", Circle(1))
		if err != nil {
			t.Fatalf("DefineModule() error: %v", err)
		}
		if _, ok := d.(scad.ModuleDefinition2D); !ok {
			t.Errorf("DefineModule() = %T, want scad.ModuleDefinition2D", d)
		}
	})

	t.Run("empty call is dimension-free", func(t *testing.T) {
		c, err := CallModule("arm")
		if err != nil {
			t.Fatalf("CallModule() error: %v", err)
		}
		if c.Dim() != scad.DimNone {
			t.Errorf("Dim() = %v, want dimension-free", c.Dim())
		}
	})

	t.Run("call with children is dimensioned", func(t *testing.T) {
		c, err := CallModule("arm", Sphere(1))
		if err != nil {
			t.Fatalf("CallModule() error: %v", err)
		}
		if _, ok := c.(scad.ModuleCall3D); !ok {
			t.Errorf("CallModule() = %T, want scad.ModuleCall3D", c)
		}
	})
}

func TestSpecialArity(t *testing.T) {
	if _, err := Special("$fn"); err != nil {
		t.Fatalf("Special() error: %v", err)
	}
	if _, err := Special("$fn", 32); err != nil {
		t.Fatalf("Special() error: %v", err)
	}
	if _, err := Special("$fn", 32, 180); err != nil {
		t.Fatalf("Special() error: %v", err)
	}
	_, err := Special("$fn", 1, 2, 3)
	var bad *scad.ConstructionError
	if !errors.As(err, &bad) {
		t.Fatalf("error = %v, want *ConstructionError", err)
	}
}

func TestRenderRejects2D(t *testing.T) {
	if _, err := Render(0, Circle(1)); err == nil {
		t.Fatal("expected error rendering a 2D child")
	}
	if _, err := Render(0, Sphere(1)); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
}
