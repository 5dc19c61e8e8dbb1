package document

import (
	"slices"

	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// CycleFlags qualify a point selected for interactive editing.
type CycleFlags uint8

const (
	CycleEditX CycleFlags = 1 << iota
	CycleEditY
	CycleLast
)

// PointSelect is one entry of an element's point-edit cycle.
type PointSelect struct {
	Index int
	Flags CycleFlags
}

// cycle is the point-edit selection shared by polygons, arcs and splines.
type cycle struct {
	Cycle []PointSelect
}

// SelectPoint makes point i the only point being edited.
func (c *cycle) SelectPoint(i int) {
	c.Cycle = []PointSelect{{Index: i, Flags: CycleEditX | CycleEditY | CycleLast}}
}

// ClearCycle ends point editing.
func (c *cycle) ClearCycle() {
	c.Cycle = nil
}

func (c *cycle) advance(n int) {
	if n == 0 {
		return
	}
	if len(c.Cycle) == 0 {
		c.SelectPoint(0)
		return
	}
	for i := range c.Cycle {
		c.Cycle[i].Index = (c.Cycle[i].Index + 1) % n
	}
}

func (c cycle) copyCycle() cycle {
	return cycle{Cycle: slices.Clone(c.Cycle)}
}

// Polygon is an open or closed polyline.
type Polygon struct {
	Generic
	cycle
	Points []geom.Point
	Style  Style
	Width  float32
}

// NewPolygon returns a closed polygon with default color and unit width.
func NewPolygon(points ...geom.Point) *Polygon {
	return &Polygon{
		Generic: newGeneric(KindPolygon),
		Points:  slices.Clone(points),
		Width:   1,
	}
}

// NewBox returns the closed rectangle spanning the two corners.
func NewBox(a, b geom.Point) *Polygon {
	return NewPolygon(a, geom.Pt(a.X, b.Y), b, geom.Pt(b.X, a.Y))
}

func (p *Polygon) Copy() Element {
	return &Polygon{
		Generic: p.copyGeneric(),
		cycle:   p.copyCycle(),
		Points:  slices.Clone(p.Points),
		Style:   p.Style,
		Width:   p.Width,
	}
}

func (p *Polygon) Equal(other Element) bool {
	o, ok := other.(*Polygon)
	if !ok {
		return false
	}
	return p.Style == o.Style && p.Width == o.Width && slices.Equal(p.Points, o.Points)
}

func (p *Polygon) BBox(_ *Env, _ float32, extend int, _ *Instance) [4]geom.Point {
	return geom.BoundsOf(p.Points...).Extend(extend).Corners()
}

func (p *Polygon) Draw(dc DrawContext) {
	pts := make([]geom.FPoint, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = pt.Float()
	}
	dc.Polyline(pts, p.Style, p.Width)
}

func (p *Polygon) Indicate(dc DrawContext, ep *ElementParam, _ *ObjectParam) {
	if len(p.Points) == 0 {
		return
	}
	at := p.Points[0]
	if ep.Target.Kind == TargetPoint && ep.Target.Point < len(p.Points) {
		at = p.Points[ep.Target.Point]
	}
	dc.Marker(at, MarkerParam)
}

func (p *Polygon) Move(delta geom.Point) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Add(delta)
	}
}

// Reverse flips the point order in place.
func (p *Polygon) Reverse() {
	slices.Reverse(p.Points)
	for i := range p.Cycle {
		p.Cycle[i].Index = len(p.Points) - 1 - p.Cycle[i].Index
	}
}

// AdvanceCycle moves every edited point to the next vertex.
func (p *Polygon) AdvanceCycle() {
	p.advance(len(p.Points))
}

// CycledPoints returns the vertices currently being edited.
func (p *Polygon) CycledPoints() []geom.Point {
	out := make([]geom.Point, 0, len(p.Cycle))
	for _, c := range p.Cycle {
		if c.Index < len(p.Points) {
			out = append(out, p.Points[c.Index])
		}
	}
	return out
}

// MovePoint moves vertex i to at.
func (p *Polygon) MovePoint(i int, at geom.Point) {
	p.Points[i] = at
}
