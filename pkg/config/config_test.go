package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAbsentFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	doc := `
renderer: /usr/local/bin/openscad-nightly
render_dir: build/render
image_size: [800, 600]
color_scheme: DeepOcean
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Renderer != "/usr/local/bin/openscad-nightly" {
		t.Errorf("Renderer = %q", cfg.Renderer)
	}
	if cfg.RenderDir != "build/render" {
		t.Errorf("RenderDir = %q", cfg.RenderDir)
	}
	if cfg.ImageSize != [2]int{800, 600} {
		t.Errorf("ImageSize = %v", cfg.ImageSize)
	}
	if cfg.ColorScheme != "DeepOcean" {
		t.Errorf("ColorScheme = %q", cfg.ColorScheme)
	}
	// Absent fields keep their defaults.
	if cfg.OutputDir != Default().OutputDir {
		t.Errorf("OutputDir = %q, want default", cfg.OutputDir)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(":\n bad"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
