package document

import (
	"math"

	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// RSteps is the number of polyline segments used for a full ellipse.
const RSteps = 72

const radfac = math.Pi / 180.0

// Arc is an elliptical arc. A negative Radius traverses it from Angle2 back
// to Angle1. Points caches the polyline approximation built by Calc.
type Arc struct {
	Generic
	cycle
	Position geom.Point
	Radius   int
	YAxis    int
	Angle1   float32
	Angle2   float32
	Style    Style
	Width    float32
	Points   []geom.FPoint
}

// NewArc returns a circular arc and computes its approximation.
func NewArc(center geom.Point, radius int, angle1, angle2 float32) *Arc {
	a := &Arc{
		Generic:  newGeneric(KindArc),
		Position: center,
		Radius:   radius,
		YAxis:    absInt(radius),
		Angle1:   angle1,
		Angle2:   angle2,
		Style:    StyleUnclosed,
		Width:    1,
	}
	a.Calc()
	return a
}

// NewCircle returns a full circle.
func NewCircle(center geom.Point, radius int) *Arc {
	return NewArc(center, radius, 0, 360)
}

// Calc regenerates the polyline from the parametric ellipse equation.
func (a *Arc) Calc() {
	span := a.Angle2 - a.Angle1
	sarc := int(span) * RSteps
	number := sarc/360 + 1
	if sarc%360 != 0 {
		number++
	}
	if number < 2 {
		number = 2
	}

	rx := math.Abs(float64(a.Radius))
	ry := float64(a.YAxis)
	cx, cy := float64(a.Position.X), float64(a.Position.Y)

	pts := make([]geom.FPoint, number)
	delta := radfac * float64(span) / float64(number-1)
	theta := float64(a.Angle1) * radfac
	for i := 0; i < number-1; i++ {
		pts[i] = geom.FPt(float32(cx+rx*math.Cos(theta)), float32(cy+ry*math.Sin(theta)))
		theta += delta
	}
	theta = float64(a.Angle2) * radfac
	pts[number-1] = geom.FPt(float32(cx+rx*math.Cos(theta)), float32(cy+ry*math.Sin(theta)))

	if a.Radius < 0 {
		reverseFPoints(pts)
	}
	a.Points = pts
}

// Reverse flips the traversal direction.
func (a *Arc) Reverse() {
	a.Radius = -a.Radius
	a.Calc()
}

// Start returns the first point of the traversal.
func (a *Arc) Start() geom.FPoint {
	a.ensure()
	return a.Points[0]
}

// End returns the last point of the traversal.
func (a *Arc) End() geom.FPoint {
	a.ensure()
	return a.Points[len(a.Points)-1]
}

func (a *Arc) ensure() {
	if len(a.Points) == 0 {
		a.Calc()
	}
}

func (a *Arc) Copy() Element {
	cp := *a
	cp.Generic = a.copyGeneric()
	cp.cycle = a.copyCycle()
	cp.Points = append([]geom.FPoint(nil), a.Points...)
	return &cp
}

func (a *Arc) Equal(other Element) bool {
	o, ok := other.(*Arc)
	if !ok {
		return false
	}
	return a.Position == o.Position && a.Radius == o.Radius && a.YAxis == o.YAxis &&
		a.Angle1 == o.Angle1 && a.Angle2 == o.Angle2 &&
		a.Style == o.Style && a.Width == o.Width
}

func (a *Arc) BBox(_ *Env, _ float32, extend int, _ *Instance) [4]geom.Point {
	a.ensure()
	return geom.FBoundsOf(a.Points...).Extend(extend).Corners()
}

func (a *Arc) Draw(dc DrawContext) {
	a.ensure()
	dc.Polyline(a.Points, a.Style, a.Width)
}

func (a *Arc) Indicate(dc DrawContext, _ *ElementParam, op *ObjectParam) {
	a.ensure()
	switch {
	case op == nil:
		dc.Marker(a.Position, MarkerParam)
	case op.Which == PropAngle1 || op.Which == PropRadius:
		dc.Marker(a.Start().Round(), MarkerParam)
	case op.Which == PropAngle2:
		dc.Marker(a.End().Round(), MarkerParam)
	case op.Which == PropMinorAxis:
		dc.Marker(geom.Pt(a.Position.X, a.Position.Y+a.YAxis), MarkerParam)
	default:
		dc.Marker(a.Position, MarkerParam)
	}
}

func (a *Arc) Move(delta geom.Point) {
	a.Position = a.Position.Add(delta)
	a.Calc()
}

func reverseFPoints(pts []geom.FPoint) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
