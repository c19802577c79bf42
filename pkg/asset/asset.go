// Package asset models named CAD deliverables and the refinement pipeline
// that turns a nested asset into flat, serializable output units.
package asset

import (
	"fmt"

	"github.com/chazu/burl/pkg/scad"
)

// Content lazily produces the top-level expressions of an asset. Thunks
// must be idempotent; refinement may evaluate one more than once.
type Content func() []scad.Expr

// Camera describes a renderer viewpoint for still images.
type Camera interface {
	camera()
}

// Gimbal is a translate/rotate/distance camera setup.
type Gimbal struct {
	Translation scad.Vec3
	Rotation    scad.Vec3
	Distance    float64
}

func (Gimbal) camera() {}

// Vector is an eye/center camera setup.
type Vector struct {
	Eye    scad.Vec3
	Center scad.Vec3
}

func (Vector) camera() {}

// Image specifies a two-dimensional picture of an asset. The path is
// relative to the render directory.
type Image struct {
	Path        string
	Camera      Camera
	Size        [2]int
	ColorScheme string
}

// Asset is a named deliverable composed of zero or more models. Nested
// assets under Modules are promoted to named module definitions during
// refinement. Assets are value types; refinement returns new assets
// rather than mutating its input.
type Asset struct {
	Content  Content
	Name     string
	Modules  []Asset
	Suffixes []string
	Images   []Image
	Chiral   bool
	Mirrored bool
}

// New packages loosely typed CAD script output as an asset. It accepts an
// Asset as is, a single expression, a slice of expressions, or a content
// thunk. The name is left empty for the caller to default.
func New(raw any) (Asset, error) {
	switch v := raw.(type) {
	case Asset:
		return v, nil
	case *Asset:
		return *v, nil
	case Content:
		return Asset{Content: v}, nil
	case func() []scad.Expr:
		return Asset{Content: v}, nil
	case []scad.Expr:
		return Asset{Content: func() []scad.Expr { return v }}, nil
	case scad.Expr:
		return Asset{Content: func() []scad.Expr { return []scad.Expr{v} }}, nil
	}
	return Asset{}, fmt.Errorf("cannot package %T as a CAD asset", raw)
}
