// Package geom holds the value types shared by every element: integer
// drawing-unit points, float points for curve approximations, bounding
// boxes and the affine transform used for instance placement.
package geom

import "math"

// Point is a position in integer drawing units. Y grows upward.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Float converts p to an FPoint.
func (p Point) Float() FPoint {
	return FPoint{float32(p.X), float32(p.Y)}
}

// FPoint is a position with fractional drawing units. Curve approximation
// points and spline control points are stored this way.
type FPoint struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// FPt is shorthand for FPoint{x, y}.
func FPt(x, y float32) FPoint {
	return FPoint{X: x, Y: y}
}

// Add returns p+q.
func (p FPoint) Add(q FPoint) FPoint {
	return FPoint{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p FPoint) Sub(q FPoint) FPoint {
	return FPoint{p.X - q.X, p.Y - q.Y}
}

// Round returns the nearest integer point.
func (p FPoint) Round() Point {
	return Point{roundInt(float64(p.X)), roundInt(float64(p.Y))}
}

// Near reports whether p and q differ by at most tol on each axis.
func (p FPoint) Near(q FPoint, tol float64) bool {
	return math.Abs(float64(p.X-q.X)) <= tol && math.Abs(float64(p.Y-q.Y)) <= tol
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// SegmentDistance returns the distance from p to the segment a-b.
func SegmentDistance(a, b, p Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	px := float64(p.X - a.X)
	py := float64(p.Y - a.Y)

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px, py)
	}

	t := (px*dx + py*dy) / lenSq
	switch {
	case t <= 0:
		return math.Hypot(px, py)
	case t >= 1:
		return math.Hypot(px-dx, py-dy)
	}
	return math.Abs(px*dy-py*dx) / math.Sqrt(lenSq)
}

// InsideQuad reports whether p lies inside (or on the edge of) the convex
// quadrilateral q, whose corners may wind either way.
func InsideQuad(p Point, q [4]Point) bool {
	var pos, neg bool
	for i := range q {
		a, b := q[i], q[(i+1)%4]
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
	}
	return !(pos && neg)
}
