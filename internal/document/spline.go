package document

import (
	"math"

	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// IntSegs is the number of interior points on a spline's approximation.
// With both end points the curve is drawn with IntSegs+2 points.
const IntSegs = 18

// splineCoeffs holds t, t^2 and t^3 for each interior parameter value
// t = (i+1)/(IntSegs+1). Every spline shares them.
var splineCoeffs = func() (c [IntSegs][3]float32) {
	for i := range c {
		t := float32(i+1) / float32(IntSegs+1)
		c[i][0] = t
		c[i][1] = t * t
		c[i][2] = t * t * t
	}
	return c
}()

// Spline is a cubic Bezier curve with a cached approximation.
type Spline struct {
	Generic
	cycle
	Ctrl   [4]geom.FPoint
	Points [IntSegs]geom.FPoint
	Style  Style
	Width  float32
}

// NewSpline returns an open spline through the given control points.
func NewSpline(p0, p1, p2, p3 geom.FPoint) *Spline {
	s := &Spline{
		Generic: newGeneric(KindSpline),
		Ctrl:    [4]geom.FPoint{p0, p1, p2, p3},
		Style:   StyleUnclosed,
		Width:   1,
	}
	s.Calc()
	return s
}

// Calc recomputes the approximation points from the control points.
func (s *Spline) Calc() {
	ax, bx, cx := bezierCoeffs(s.Ctrl[0].X, s.Ctrl[1].X, s.Ctrl[2].X, s.Ctrl[3].X)
	ay, by, cy := bezierCoeffs(s.Ctrl[0].Y, s.Ctrl[1].Y, s.Ctrl[2].Y, s.Ctrl[3].Y)
	for i, k := range splineCoeffs {
		s.Points[i].X = ax*k[2] + bx*k[1] + cx*k[0] + s.Ctrl[0].X
		s.Points[i].Y = ay*k[2] + by*k[1] + cy*k[0] + s.Ctrl[0].Y
	}
}

func bezierCoeffs(p0, p1, p2, p3 float32) (a, b, c float32) {
	c = 3.0 * (p1 - p0)
	b = 3.0*(p2-p1) - c
	a = p3 - p0 - c - b
	return a, b, c
}

// Curve returns the full approximation including both end points.
func (s *Spline) Curve() []geom.FPoint {
	out := make([]geom.FPoint, 0, IntSegs+2)
	out = append(out, s.Ctrl[0])
	out = append(out, s.Points[:]...)
	return append(out, s.Ctrl[3])
}

// Reverse swaps the direction of the curve.
func (s *Spline) Reverse() {
	s.Ctrl[0], s.Ctrl[3] = s.Ctrl[3], s.Ctrl[0]
	s.Ctrl[1], s.Ctrl[2] = s.Ctrl[2], s.Ctrl[1]
	s.Calc()
}

func (s *Spline) Copy() Element {
	cp := *s
	cp.Generic = s.copyGeneric()
	cp.cycle = s.copyCycle()
	return &cp
}

func (s *Spline) Equal(other Element) bool {
	o, ok := other.(*Spline)
	if !ok {
		return false
	}
	return s.Ctrl == o.Ctrl && s.Style == o.Style && s.Width == o.Width
}

func (s *Spline) BBox(_ *Env, _ float32, extend int, _ *Instance) [4]geom.Point {
	return geom.FBoundsOf(s.Curve()...).Extend(extend).Corners()
}

func (s *Spline) Draw(dc DrawContext) {
	dc.Polyline(s.Curve(), s.Style, s.Width)
}

func (s *Spline) Indicate(dc DrawContext, ep *ElementParam, _ *ObjectParam) {
	i := 0
	if ep.Target.Kind == TargetPoint && ep.Target.Point < 4 {
		i = ep.Target.Point
	}
	dc.Marker(s.Ctrl[i].Round(), MarkerParam)
}

func (s *Spline) Move(delta geom.Point) {
	d := delta.Float()
	for i := range s.Ctrl {
		s.Ctrl[i] = s.Ctrl[i].Add(d)
	}
	s.Calc()
}

// AdvanceCycle moves every edited control point to the next one.
func (s *Spline) AdvanceCycle() {
	s.advance(4)
}

// SplinesFromArc decomposes an arc into one to four cubic Beziers, each
// spanning at most a quarter turn. A remainder of 0.01 or less of a quarter
// turn does not earn its own segment.
func SplinesFromArc(a *Arc) []*Spline {
	span := float64(a.Angle2 - a.Angle1)
	fnc := span / 90.0
	n := int(fnc)
	if fnc-float64(n) > 0.01 {
		n++
	}
	n = min(max(n, 1), 4)

	reverse := a.Radius < 0
	rx := math.Abs(float64(a.Radius))
	ry := float64(a.YAxis)
	cx, cy := float64(a.Position.X), float64(a.Position.Y)

	out := make([]*Spline, 0, n)
	for i := range n {
		var nu1, nu2 float64
		if reverse {
			nu1 = float64(a.Angle2) - 90*float64(i)
			nu2 = nu1 - 90
			if i == n-1 {
				nu2 = float64(a.Angle1)
			}
		} else {
			nu1 = float64(a.Angle1) + 90*float64(i)
			nu2 = nu1 + 90
			if i == n-1 {
				nu2 = float64(a.Angle2)
			}
		}

		t1 := parametricAngle(nu1*radfac, rx, ry)
		t2 := parametricAngle(nu2*radfac, rx, ry)
		delta := t2 - t1
		switch {
		case nu2 > nu1:
			for delta <= 0 {
				delta += 2 * math.Pi
			}
		case nu2 < nu1:
			for delta >= 0 {
				delta -= 2 * math.Pi
			}
		}
		t2 = t1 + delta

		e1x, e1y := cx+rx*math.Cos(t1), cy+ry*math.Sin(t1)
		e2x, e2y := cx+rx*math.Cos(t2), cy+ry*math.Sin(t2)
		d1x, d1y := -rx*math.Sin(t1), ry*math.Cos(t1)
		d2x, d2y := -rx*math.Sin(t2), ry*math.Cos(t2)

		beta := math.Tan(delta / 2)
		alpha := math.Sin(delta) * (math.Sqrt(4+3*beta*beta) - 1) / 3

		s := NewSpline(
			geom.FPt(float32(e1x), float32(e1y)),
			geom.FPt(float32(e1x+alpha*d1x), float32(e1y+alpha*d1y)),
			geom.FPt(float32(e2x-alpha*d2x), float32(e2y-alpha*d2y)),
			geom.FPt(float32(e2x), float32(e2y)),
		)
		s.color = a.color
		s.Style = a.Style
		s.Width = a.Width
		out = append(out, s)
	}
	return out
}

// parametricAngle converts a polar angle on the ellipse to its parameter.
func parametricAngle(lambda, rx, ry float64) float64 {
	if rx == 0 || ry == 0 {
		return lambda
	}
	return math.Atan2(math.Sin(lambda)/ry, math.Cos(lambda)/rx)
}

// PathFromArc replaces an arc by a path of Bezier segments.
func PathFromArc(a *Arc) *Path {
	p := NewPath()
	p.color = a.color
	p.Style = a.Style
	p.Width = a.Width
	for _, s := range SplinesFromArc(a) {
		s.color = DefaultColor
		p.Append(s)
	}
	return p
}
