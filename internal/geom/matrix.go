package geom

import "math"

// Matrix represents a 2D affine transformation matrix.
// Layout: [a, b, c, d, e, f] representing:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a clockwise rotation by the given whole degrees. Any
// integer is accepted; it is wrapped into [0, 360) first.
func Rotate(degrees int) Matrix {
	sin, cos := SinCosDegrees(degrees)
	return Matrix{cos, -sin, sin, cos, 0, 0}
}

// WrapDegrees folds any integer rotation into [0, 360).
func WrapDegrees(degrees int) int {
	return ((degrees % 360) + 360) % 360
}

// SinCosDegrees returns sin and cos of a whole-degree angle, exact at the
// quadrant angles.
func SinCosDegrees(degrees int) (float64, float64) {
	switch WrapDegrees(degrees) {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	rad := float64(degrees) * math.Pi / 180.0
	return math.Sin(rad), math.Cos(rad)
}

// Multiply multiplies this matrix by another: result = m * other
// This applies 'other' first, then 'm'.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[2]*other[1],        // a
		m[1]*other[0] + m[3]*other[1],        // b
		m[0]*other[2] + m[2]*other[3],        // c
		m[1]*other[2] + m[3]*other[3],        // d
		m[0]*other[4] + m[2]*other[5] + m[4], // e
		m[1]*other[4] + m[3]*other[5] + m[5], // f
	}
}

// Apply transforms a point and rounds to drawing units.
func (m Matrix) Apply(p Point) Point {
	x, y := m.ApplyXY(float64(p.X), float64(p.Y))
	return Point{roundInt(x), roundInt(y)}
}

// ApplyF transforms a fractional point.
func (m Matrix) ApplyF(p FPoint) FPoint {
	x, y := m.ApplyXY(float64(p.X), float64(p.Y))
	return FPoint{float32(x), float32(y)}
}

// ApplyXY transforms raw coordinates.
func (m Matrix) ApplyXY(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformBBox transforms a box and returns its axis-aligned bounding box.
func (m Matrix) TransformBBox(b BBox) BBox {
	if b.IsEmpty() {
		return b
	}
	c := b.Corners()
	return BoundsOf(m.Apply(c[0]), m.Apply(c[1]), m.Apply(c[2]), m.Apply(c[3]))
}

// Determinant returns the determinant of the matrix.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse of the matrix, or Identity if not invertible.
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}
}

// Placement builds the matrix that scales, then rotates clockwise, then
// translates to position. A negative scale mirrors the x axis only.
func Placement(position Point, scale float32, rotation int) Matrix {
	sin, cos := SinCosDegrees(rotation)
	sx := float64(scale)
	sy := math.Abs(sx)

	return Matrix{
		cos * sx,  // a
		-sin * sx, // b
		sin * sy,  // c
		cos * sy,  // d
		float64(position.X),
		float64(position.Y),
	}
}

// ToSlice returns the matrix as a float64 slice for JSON serialization.
func (m Matrix) ToSlice() []float64 {
	return []float64{m[0], m[1], m[2], m[3], m[4], m[5]}
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(m[0]-1) < eps &&
		math.Abs(m[1]) < eps &&
		math.Abs(m[2]) < eps &&
		math.Abs(m[3]-1) < eps &&
		math.Abs(m[4]) < eps &&
		math.Abs(m[5]) < eps
}

// TransformPoints applies scale, then rotation, then translation to each
// point and returns the new points.
func TransformPoints(points []Point, position Point, scale float32, rotation int) []Point {
	m := Placement(position, scale, rotation)
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = m.Apply(p)
	}
	return out
}
