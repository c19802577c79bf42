package scad

// Vec2 is a point or size in the plane.
type Vec2 [2]float64

// Vec3 is a point or size in space.
type Vec3 [3]float64

// Vec4 is an RGBA color quadruple.
type Vec4 [4]float64

// Mat4 is a row-major affine transformation matrix.
type Mat4 [4]Vec4

// Axes selects mirror axes as integer coefficients, one per axis.
type Axes [3]int
