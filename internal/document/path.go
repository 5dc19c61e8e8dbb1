package document

import (
	"fmt"

	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// Path strings polygons, arcs and splines into one outline with a single
// style and width.
type Path struct {
	Generic
	Parts List
	Style Style
	Width float32
}

// NewPath returns an empty, open path.
func NewPath() *Path {
	return &Path{
		Generic: newGeneric(KindPath),
		Style:   StyleUnclosed,
		Width:   1,
	}
}

// Append adds a sub-element. Only polygons, arcs and splines can be part of
// a path.
func (p *Path) Append(e Element) int {
	switch e.Kind() {
	case KindPolygon, KindArc, KindSpline:
	default:
		panic(fmt.Sprintf("document: %s cannot be part of a path", e.Kind()))
	}
	return p.Parts.Append(e)
}

// Points concatenates the sub-element approximations in order.
func (p *Path) Points() []geom.FPoint {
	var out []geom.FPoint
	for _, e := range p.Parts.All() {
		switch sub := e.(type) {
		case *Polygon:
			for _, pt := range sub.Points {
				out = append(out, pt.Float())
			}
		case *Arc:
			sub.ensure()
			out = append(out, sub.Points...)
		case *Spline:
			out = append(out, sub.Curve()...)
		}
	}
	return out
}

func (p *Path) Copy() Element {
	return &Path{
		Generic: p.copyGeneric(),
		Parts:   p.Parts.Copy(),
		Style:   p.Style,
		Width:   p.Width,
	}
}

func (p *Path) Equal(other Element) bool {
	o, ok := other.(*Path)
	if !ok {
		return false
	}
	return p.Style == o.Style && p.Width == o.Width && p.Parts.Equal(&o.Parts)
}

func (p *Path) BBox(env *Env, scale float32, extend int, caller *Instance) [4]geom.Point {
	box := geom.EmptyBBox()
	for _, e := range p.Parts.All() {
		box = box.Union(CornersBBox(e.BBox(env, scale, 0, caller)))
	}
	return box.Extend(extend).Corners()
}

func (p *Path) Draw(dc DrawContext) {
	dc.Polyline(p.Points(), p.Style, p.Width)
}

func (p *Path) Indicate(dc DrawContext, ep *ElementParam, op *ObjectParam) {
	if ep.Target.Kind == TargetPathPoint && ep.Target.Part < p.Parts.Len() {
		if sub := p.Parts.At(ep.Target.Part); sub != nil {
			sub.Indicate(dc, PointParam(ep.Key, ep.Target.Point), op)
			return
		}
	}
	pts := p.Points()
	if len(pts) > 0 {
		dc.Marker(pts[0].Round(), MarkerParam)
	}
}

func (p *Path) Move(delta geom.Point) {
	for _, e := range p.Parts.All() {
		e.Move(delta)
	}
}

// Reverse reverses the order of the sub-elements and each sub-element.
func (p *Path) Reverse() {
	n := p.Parts.Len()
	for i := range n / 2 {
		a, b := p.Parts.At(i), p.Parts.At(n-1-i)
		p.Parts.Set(i, b)
		p.Parts.Set(n-1-i, a)
	}
	for _, e := range p.Parts.All() {
		switch sub := e.(type) {
		case *Polygon:
			sub.Reverse()
		case *Arc:
			sub.Reverse()
		case *Spline:
			sub.Reverse()
		}
	}
}
