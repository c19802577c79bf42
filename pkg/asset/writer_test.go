package asset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/burl/pkg/scad"
	"github.com/chazu/burl/pkg/vocab"
)

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()

	a := Asset{
		Name:    "box",
		Content: func() []scad.Expr { return []scad.Expr{vocab.Cube(scad.Vec3{4, 4, 4}, true)} },
	}
	if err := WriteFiles(dir, DefaultOptions(), a, vocab.Sphere(2)); err != nil {
		t.Fatalf("WriteFiles() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "box.scad"))
	if err != nil {
		t.Fatalf("reading box.scad: %v", err)
	}
	want := "cube(size=[4, 4, 4], center=true);\n\n"
	if string(data) != want {
		t.Errorf("box.scad = %q, want %q", data, want)
	}

	// The bare sphere was packaged under a generated name.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	var untitled string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "untitled_") {
			untitled = e.Name()
		}
	}
	if untitled == "" {
		t.Fatalf("no untitled output among %v", entries)
	}
	data, err = os.ReadFile(filepath.Join(dir, untitled))
	if err != nil {
		t.Fatalf("reading %s: %v", untitled, err)
	}
	if string(data) != "sphere(r=2);\n\n" {
		t.Errorf("%s = %q, want a sphere statement", untitled, data)
	}
}

func TestWriteFilesChiralPair(t *testing.T) {
	dir := t.TempDir()
	a := Asset{
		Name:    "wing",
		Chiral:  true,
		Content: func() []scad.Expr { return []scad.Expr{vocab.Cube(scad.Vec3{4, 4, 4}, false)} },
	}
	if err := WriteFiles(dir, DefaultOptions(), a); err != nil {
		t.Fatalf("WriteFiles() error: %v", err)
	}
	for _, name := range []string{"wing.scad", "wing_mirrored.scad"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}
