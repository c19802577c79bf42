package scad

// LinearExtrusion sweeps 2D children along the z axis. Twist is stored in
// radians; Scale applies at the far end of the sweep and defaults to 1.
type LinearExtrusion struct {
	base3D
	Height   float64
	Center   bool
	Twist    float64
	Slices   int
	Scale    float64
	Children []Expr
}

// RotationalExtrusion sweeps 2D children around the z axis. Angle is stored
// in radians and defaults to a full turn.
type RotationalExtrusion struct {
	base3D
	Angle     float64
	Convexity int
	Children  []Expr
}
