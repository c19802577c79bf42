package scad

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	circle := Circle{Radius: 1}
	sphere := Sphere{Radius: 1}
	note := Comment{Lines: []string{"n"}}

	tests := []struct {
		name     string
		children []Expr
		want     Dim
		wantErr  string
	}{
		{name: "empty defaults to 3D", want: Dim3},
		{name: "all 2D", children: []Expr{circle, circle}, want: Dim2},
		{name: "all 3D", children: []Expr{sphere, sphere}, want: Dim3},
		{name: "dimension-free only defaults to 3D", children: []Expr{note}, want: Dim3},
		{name: "dimension-free beside 2D", children: []Expr{note, circle}, want: Dim2},
		{name: "dimension-free beside 3D", children: []Expr{note, sphere}, want: Dim3},
		{
			name:     "single 2D outlier first",
			children: []Expr{circle, sphere, sphere},
			wantErr:  "cannot contain mixed 2D and 3D expressions; one, in place 1 of 3, is 2D",
		},
		{
			name:     "single 3D outlier last",
			children: []Expr{circle, circle, sphere},
			wantErr:  "cannot contain mixed 2D and 3D expressions; one, in place 3 of 3, is 3D",
		},
		{
			name:     "one of each is a generic mismatch",
			children: []Expr{circle, sphere},
			wantErr:  "cannot contain mixed 2D and 3D expressions",
		},
		{
			name:     "two outliers of five is a generic mismatch",
			children: []Expr{circle, circle, sphere, sphere, sphere},
			wantErr:  "cannot contain mixed 2D and 3D expressions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify("contain", tt.children...)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
				}
				var mismatch *DimensionMismatchError
				if !errors.As(err, &mismatch) {
					t.Errorf("error type = %T, want *DimensionMismatchError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyNilChild(t *testing.T) {
	_, err := Classify("contain", nil)
	var bad *NotAnExpressionError
	if !errors.As(err, &bad) {
		t.Fatalf("error = %v, want *NotAnExpressionError", err)
	}
}

func TestMatchVector(t *testing.T) {
	circle := Circle{Radius: 1}
	sphere := Sphere{Radius: 1}

	tests := []struct {
		name     string
		arg      []float64
		children []Expr
		want     Dim
		wantErr  string
	}{
		{name: "2D argument over 2D child", arg: []float64{1, 2}, children: []Expr{circle}, want: Dim2},
		{name: "3D argument over 3D child", arg: []float64{1, 2, 3}, children: []Expr{sphere}, want: Dim3},
		{name: "3D argument over no children", arg: []float64{1, 2, 3}, want: Dim3},
		{
			name:     "3D argument over 2D child",
			arg:      []float64{1, 2, 3},
			children: []Expr{circle},
			wantErr:  "cannot translate 2D expression with 3D argument (1, 2, 3)",
		},
		{
			name:     "2D argument over 3D children",
			arg:      []float64{1, 2},
			children: []Expr{sphere, sphere},
			wantErr:  "cannot translate 3D expressions with 2D argument (1, 2)",
		},
		{
			name:    "degenerate argument length",
			arg:     []float64{1},
			wantErr: "cannot translate expressions with 1D argument (1)",
		},
		{
			name:     "mixed children reported before the argument",
			arg:      []float64{1, 2, 3},
			children: []Expr{circle, sphere},
			wantErr:  "cannot translate mixed 2D and 3D expressions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchVector("translate", tt.arg, tt.children...)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MatchVector() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNotExpressionPreview(t *testing.T) {
	err := NotExpression("contain", "a value that is far too long to print whole")
	want := `cannot contain non-OpenSCAD expression "a value that is far "... (truncated) of type string`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}

	err = NotExpression("contain", 42)
	want = `cannot contain non-OpenSCAD expression "42" of type int`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

// TestTermCoverage checks that every generically-serialized variant has
// consistent metadata: a keyword, a prototype of its own type, and a
// container field that exists.
func TestTermCoverage(t *testing.T) {
	samples := []Expr{
		Circle{}, Square{}, Rectangle{}, Polygon{}, Text{}, Import2D{}, Projection{},
		Sphere{}, Cube{}, Cylinder{}, Frustum{}, Polyhedron{}, Import3D{}, Surface{},
		Union2D{}, Union3D{}, Difference2D{}, Difference3D{}, Intersection2D{}, Intersection3D{},
		Translate2D{}, Translate3D{}, Rotate2D{}, Rotate3D{}, Scale2D{}, Scale3D{},
		Resize2D{}, Resize3D{}, Mirror2D{}, Mirror3D{}, MultMatrix2D{}, MultMatrix3D{},
		Color2D{}, Color3D{}, RoundedOffset{}, AngledOffset{}, Hull2D{}, Hull3D{},
		Minkowski2D{}, Minkowski3D{}, Render3D{},
		LinearExtrusion{}, RotationalExtrusion{},
	}
	for _, s := range samples {
		term, ok := TermOf(s)
		if !ok {
			t.Errorf("%T has no serialization metadata", s)
			continue
		}
		if term.Keyword == "" {
			t.Errorf("%T has an empty keyword", s)
		}
		if term.Prototype == nil {
			t.Errorf("%T has no prototype", s)
		}
	}

	// Hand-coded variants must stay out of the side table.
	for _, s := range []Expr{Comment{}, ModuleChildren{}, Background3D{}} {
		if _, ok := TermOf(s); ok {
			t.Errorf("%T should not have generic metadata", s)
		}
	}
}
