package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/chazu/burl/pkg/transpile"
)

var invocations atomic.Uint64

// WriteFiles refines loosely typed assets and serializes each resulting
// asset to <dir>/<name>.scad. Unnamed assets are numbered by invocation
// and position so that repeated calls from one script do not collide.
func WriteFiles(dir string, opts Options, raws ...any) error {
	invocation := invocations.Add(1) - 1
	for i, raw := range raws {
		a, err := New(raw)
		if err != nil {
			return err
		}
		if a.Name == "" {
			a.Name = fmt.Sprintf("untitled_%d_%d", invocation, i)
		}
		refined, err := Refine(a, opts)
		if err != nil {
			return fmt.Errorf("refining %s: %w", a.Name, err)
		}
		for _, r := range refined {
			if err := writeFile(dir, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeFile(dir string, a Asset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, a.Name+".scad")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := transpile.Write(f, a.Content()...); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
