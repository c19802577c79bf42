package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/chazu/burl/pkg/scad"
)

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "keyword becomes marker string",
			source: "(cube [1 2 3] :center true)",
			want:   `(cube [1 2 3] "__kw_center" true)`,
		},
		{
			name:   "kebab-case becomes underscore",
			source: "(linear-extrude :height 10)",
			want:   `(linear_extrude "__kw_height" 10)`,
		},
		{
			name:   "minus between numbers survives",
			source: "(- 10 3)",
			want:   "(- 10 3)",
		},
		{
			name:   "strings are untouched",
			source: `(comment "kebab-case :keyword")`,
			want:   `(comment "kebab-case :keyword")`,
		},
		{
			name:   "semicolon comments become slashes",
			source: ";; a note\n(sphere 1)",
			want:   "// a note\n(sphere 1)",
		},
		{
			name:   "assignment operator survives",
			source: "(def x := 1)",
			want:   "(def x := 1)",
		},
		{
			name:   "keyword with hyphen",
			source: "(text \"a\" :halign \"center\")",
			want:   `(text "a" "__kw_halign" "center")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.source); got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantLine int
		wantMsg  string
	}{
		{
			name:     "line info extracted",
			err:      errors.New("Error on line 3: undefined symbol `cubee`"),
			wantLine: 3,
			wantMsg:  "undefined symbol `cubee`",
		},
		{
			name:     "short form",
			err:      errors.New("line 7: unexpected EOF"),
			wantLine: 7,
			wantMsg:  "unexpected EOF",
		},
		{
			name:    "no line info",
			err:     errors.New("something went wrong"),
			wantMsg: "something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(tt.err)
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}
			if errs[0].Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", errs[0].Line, tt.wantLine)
			}
			if errs[0].Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", errs[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestEvaluateEmptySource(t *testing.T) {
	assets, evalErrs, err := NewEngine().Evaluate("   \n  ")
	if err != nil {
		t.Fatalf("Evaluate() fatal error: %v", err)
	}
	if len(evalErrs) != 0 {
		t.Fatalf("Evaluate() eval errors: %v", evalErrs)
	}
	if len(assets) != 0 {
		t.Errorf("empty source produced %d assets", len(assets))
	}
}

func TestEvaluateParseError(t *testing.T) {
	_, evalErrs, err := NewEngine().Evaluate("(cube [1 2 3")
	if err != nil {
		t.Fatalf("Evaluate() fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for unbalanced source")
	}
}

func TestEvaluateWriteCollectsAssets(t *testing.T) {
	source := `(write (asset "box" (cube [10 20 5] :center true)))`
	assets, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("Evaluate() fatal error: %v", err)
	}
	if len(evalErrs) != 0 {
		t.Fatalf("Evaluate() eval errors: %v", evalErrs)
	}
	if len(assets) != 1 {
		t.Fatalf("got %d assets, want 1", len(assets))
	}
	a := assets[0]
	if a.Name != "box" {
		t.Errorf("Name = %q, want box", a.Name)
	}
	content := a.Content()
	if len(content) != 1 {
		t.Fatalf("content has %d expressions, want 1", len(content))
	}
	cube, ok := content[0].(scad.Cube)
	if !ok {
		t.Fatalf("content[0] = %T, want scad.Cube", content[0])
	}
	if cube.Size != (scad.Vec3{10, 20, 5}) || !cube.Center {
		t.Errorf("cube = %#v, want size [10 20 5] centered", cube)
	}
}

func TestEvaluateGeometryPipeline(t *testing.T) {
	source := `
; a plate with a hole
(write
  (asset "plate"
    (difference
      (cube [40 20 5] :center true)
      (cylinder :r 3 :h 10 :center true))))
`
	assets, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("Evaluate() fatal error: %v", err)
	}
	if len(evalErrs) != 0 {
		t.Fatalf("Evaluate() eval errors: %v", evalErrs)
	}
	if len(assets) != 1 {
		t.Fatalf("got %d assets, want 1", len(assets))
	}
	diff, ok := assets[0].Content()[0].(scad.Difference3D)
	if !ok {
		t.Fatalf("content = %T, want scad.Difference3D", assets[0].Content()[0])
	}
	if len(diff.Children) != 2 {
		t.Errorf("difference has %d children, want 2", len(diff.Children))
	}
}

func TestEvaluateDimensionMismatch(t *testing.T) {
	source := `(write (union (circle 1) (cube [1 1 1])))`
	_, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("Evaluate() fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for mixed dimensionality")
	}
	found := false
	for _, e := range evalErrs {
		if strings.Contains(e.Message, "mixed 2D and 3D") {
			found = true
		}
	}
	if !found {
		t.Errorf("no mismatch message in %v", evalErrs)
	}
}
