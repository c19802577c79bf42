package vocab

import (
	"fmt"

	"github.com/chazu/burl/pkg/scad"
)

// Translate moves children along a vector whose length selects the
// dimensionality.
func Translate(v []float64, children ...scad.Expr) (scad.Expr, error) {
	d, err := scad.MatchVector("translate", v, children...)
	if err != nil {
		return nil, err
	}
	if d == scad.Dim2 {
		return scad.Translate2D{V: scad.Vec2{v[0], v[1]}, Children: children}, nil
	}
	return scad.Translate3D{V: scad.Vec3{v[0], v[1], v[2]}, Children: children}, nil
}

// Rotate turns children around the origin. A single angle rotates in the
// plane, three angles rotate in space. Angles are in radians.
func Rotate(angles []float64, children ...scad.Expr) (scad.Expr, error) {
	if _, err := scad.Classify("rotate", children...); err != nil {
		return nil, err
	}
	switch len(angles) {
	case 1:
		return scad.Rotate2D{Angle: angles[0], Children: children}, nil
	case 3:
		return scad.Rotate3D{Angles: scad.Vec3{angles[0], angles[1], angles[2]}, Children: children}, nil
	}
	return nil, &scad.ConstructionError{
		Op:     "rotate",
		Reason: fmt.Sprintf("one or three angles are required, got %d", len(angles)),
	}
}

// Scale multiplies children by per-axis factors.
func Scale(v []float64, children ...scad.Expr) (scad.Expr, error) {
	d, err := scad.MatchVector("scale", v, children...)
	if err != nil {
		return nil, err
	}
	if d == scad.Dim2 {
		return scad.Scale2D{V: scad.Vec2{v[0], v[1]}, Children: children}, nil
	}
	return scad.Scale3D{V: scad.Vec3{v[0], v[1], v[2]}, Children: children}, nil
}

// Resize stretches children to absolute dimensions.
func Resize(newSize []float64, children ...scad.Expr) (scad.Expr, error) {
	d, err := scad.MatchVector("resize", newSize, children...)
	if err != nil {
		return nil, err
	}
	if d == scad.Dim2 {
		return scad.Resize2D{NewSize: scad.Vec2{newSize[0], newSize[1]}, Children: children}, nil
	}
	return scad.Resize3D{NewSize: scad.Vec3{newSize[0], newSize[1], newSize[2]}, Children: children}, nil
}

// Mirror reflects children through a plane described by its normal axes.
func Mirror(axes scad.Axes, children ...scad.Expr) (scad.Expr, error) {
	return contain("mirror", children,
		func(c []scad.Expr) scad.Expr { return scad.Mirror2D{Axes: axes, Children: c} },
		func(c []scad.Expr) scad.Expr { return scad.Mirror3D{Axes: axes, Children: c} })
}

// MultMatrix applies an affine transformation matrix to children.
func MultMatrix(m scad.Mat4, children ...scad.Expr) (scad.Expr, error) {
	return contain("transform", children,
		func(c []scad.Expr) scad.Expr { return scad.MultMatrix2D{Matrix: m, Children: c} },
		func(c []scad.Expr) scad.Expr { return scad.MultMatrix3D{Matrix: m, Children: c} })
}

// Color paints children. The value must be either a color name or an RGBA
// vector with channels in the range 0 to 1.
func Color(value any, children ...scad.Expr) (scad.Expr, error) {
	switch value.(type) {
	case string, scad.Vec4:
	default:
		return nil, &scad.ConstructionError{
			Op:     "color",
			Reason: fmt.Sprintf("a color is named by a string or an RGBA vector, not %T", value),
		}
	}
	return contain("color", children,
		func(c []scad.Expr) scad.Expr { return scad.Color2D{Value: value, Children: c} },
		func(c []scad.Expr) scad.Expr { return scad.Color3D{Value: value, Children: c} })
}

// Offset grows or shrinks a 2D outline. With round set, corners are
// rounded at radius r; otherwise delta displaces the outline with optional
// chamfering.
func Offset(round bool, r, delta float64, chamfer bool, children ...scad.Expr) (scad.Expr, error) {
	if err := rejectDim(scad.Dim3, "offset", children...); err != nil {
		return nil, err
	}
	if round {
		return scad.RoundedOffset{R: r, Children: children}, nil
	}
	return scad.AngledOffset{Delta: delta, Chamfer: chamfer, Children: children}, nil
}

// Hull wraps children in their convex hull.
func Hull(children ...scad.Expr) (scad.Expr, error) {
	return contain("form a hull around", children,
		func(c []scad.Expr) scad.Expr { return scad.Hull2D{Children: c} },
		func(c []scad.Expr) scad.Expr { return scad.Hull3D{Children: c} })
}

// Minkowski computes the Minkowski sum of children.
func Minkowski(convexity int, children ...scad.Expr) (scad.Expr, error) {
	return contain("minkowski-add", children,
		func(c []scad.Expr) scad.Expr { return scad.Minkowski2D{Convexity: convexity, Children: c} },
		func(c []scad.Expr) scad.Expr { return scad.Minkowski3D{Convexity: convexity, Children: c} })
}

// Render forces children to be evaluated in preview mode.
func Render(convexity int, children ...scad.Expr) (scad.Expr, error) {
	if err := rejectDim(scad.Dim2, "render", children...); err != nil {
		return nil, err
	}
	return scad.Render3D{Convexity: convexity, Children: children}, nil
}

// LinearExtrude raises a 2D outline into a 3D solid. Twist is in radians.
func LinearExtrude(e scad.LinearExtrusion, children ...scad.Expr) (scad.Expr, error) {
	if err := rejectDim(scad.Dim3, "extrude", children...); err != nil {
		return nil, err
	}
	if e.Scale == 0 {
		e.Scale = 1
	}
	e.Children = children
	return e, nil
}

// RotationalExtrude sweeps a 2D outline around the z axis. The angle is in
// radians and defaults to a full turn.
func RotationalExtrude(e scad.RotationalExtrusion, children ...scad.Expr) (scad.Expr, error) {
	if err := rejectDim(scad.Dim3, "extrude", children...); err != nil {
		return nil, err
	}
	if e.Angle == 0 {
		e.Angle = scad.Tau
	}
	e.Children = children
	return e, nil
}
