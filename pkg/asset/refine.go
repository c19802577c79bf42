package asset

import (
	"github.com/chazu/burl/pkg/scad"
	"github.com/chazu/burl/pkg/vocab"
)

// mirrorAxes reflects across the yz plane.
var mirrorAxes = scad.Axes{1, 0, 0}

// Options control refinement.
type Options struct {
	// FlipChiral mirrors chiral assets and modules that are not already
	// mirrored, and duplicates chiral top-level assets in mirrored form.
	FlipChiral bool
	// RenameMirrored names the mirrored duplicate of a chiral asset.
	RenameMirrored func(string) string
	// RenameChiral names a chiral asset that keeps its original
	// handedness.
	RenameChiral func(string) string
	// RenameAchiral names an asset without handedness.
	RenameAchiral func(string) string
}

// DefaultOptions flip chiral assets, tag mirrored duplicates with a
// _mirrored suffix and leave other names alone.
func DefaultOptions() Options {
	identity := func(name string) string { return name }
	return Options{
		FlipChiral:     true,
		RenameMirrored: func(name string) string { return name + "_mirrored" },
		RenameChiral:   identity,
		RenameAchiral:  identity,
	}
}

// Refine finalizes an asset for serialization: nested modules become named
// module definitions prepended to the parent's own content, and a chiral
// asset is duplicated in mirrored form. The result is one or two
// self-contained assets with no nested modules left.
func Refine(a Asset, opts Options) ([]Asset, error) {
	if a.Chiral && !a.Mirrored && opts.FlipChiral {
		// The whole asset gets a mirrored duplicate, so its modules keep
		// their handedness here; the duplication mirrors them once.
		moduleOpts := opts
		moduleOpts.FlipChiral = false
		flat, err := flatten(a, moduleOpts)
		if err != nil {
			return nil, err
		}
		mirrored, err := mirrorAsset(flat, opts)
		if err != nil {
			return nil, err
		}
		flat.Name = opts.RenameChiral(flat.Name)
		return []Asset{flat, mirrored}, nil
	}
	flat, err := flatten(a, opts)
	if err != nil {
		return nil, err
	}
	if flat.Chiral {
		flat.Name = opts.RenameChiral(flat.Name)
	} else {
		flat.Name = opts.RenameAchiral(flat.Name)
	}
	return []Asset{flat}, nil
}

// flatten folds all nested modules of an asset into its content, module
// definitions first.
func flatten(a Asset, opts Options) (Asset, error) {
	exprs := make([]scad.Expr, 0, len(a.Modules)+1)
	for _, m := range a.Modules {
		def, err := modularize(m, opts)
		if err != nil {
			return Asset{}, err
		}
		exprs = append(exprs, def)
	}
	if a.Content != nil {
		exprs = append(exprs, a.Content()...)
	}
	a.Modules = nil
	a.Content = func() []scad.Expr { return exprs }
	return a, nil
}

// modularize reduces one nested asset to a single named module definition.
// A body of more than one expression is union-wrapped first, and a chiral
// body is mirrored when flipping is on.
func modularize(m Asset, opts Options) (scad.Expr, error) {
	flat, err := flatten(m, opts)
	if err != nil {
		return nil, err
	}
	content := flat.Content()
	var body scad.Expr
	switch len(content) {
	case 0:
		return nil, &scad.ConstructionError{
			Op:     "module",
			Reason: "a module definition requires at least one child",
		}
	case 1:
		body = content[0]
	default:
		if body, err = vocab.Union(content...); err != nil {
			return nil, err
		}
	}
	if m.Chiral && !m.Mirrored && opts.FlipChiral {
		if body, err = vocab.Mirror(mirrorAxes, body); err != nil {
			return nil, err
		}
	}
	return vocab.DefineModule(m.Name, body)
}

// mirrorAsset produces the mirror image of a flattened asset. Module
// definitions are mirrored inside their bodies so that calls to them keep
// working; dimension-free statements pass through unchanged.
func mirrorAsset(a Asset, opts Options) (Asset, error) {
	src := a.Content()
	exprs := make([]scad.Expr, len(src))
	for i, e := range src {
		m, err := mirrorExpr(e)
		if err != nil {
			return Asset{}, err
		}
		exprs[i] = m
	}
	a.Name = opts.RenameMirrored(a.Name)
	a.Mirrored = true
	a.Content = func() []scad.Expr { return exprs }
	return a, nil
}

func mirrorExpr(e scad.Expr) (scad.Expr, error) {
	switch d := e.(type) {
	case scad.ModuleDefinition2D:
		body, err := vocab.Mirror(mirrorAxes, d.Children...)
		if err != nil {
			return nil, err
		}
		return scad.ModuleDefinition2D{Name: d.Name, Children: []scad.Expr{body}}, nil
	case scad.ModuleDefinition3D:
		body, err := vocab.Mirror(mirrorAxes, d.Children...)
		if err != nil {
			return nil, err
		}
		return scad.ModuleDefinition3D{Name: d.Name, Children: []scad.Expr{body}}, nil
	}
	if e.Dim() == scad.DimNone {
		return e, nil
	}
	return vocab.Mirror(mirrorAxes, e)
}
