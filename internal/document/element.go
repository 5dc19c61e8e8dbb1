// Package document is the element model of the editor: the drawable
// variants, the owning element list, objects (cells) and their instances,
// and the parameter machinery that ties instance overrides to element
// fields.
package document

import (
	"fmt"

	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// Element is one drawable or structural unit of an object.
//
// Equal compares the kind tag and the variant's own fields. It does not
// compare colors; Object.Equal checks colors first as a fast filter.
type Element interface {
	Kind() Kind
	Color() Color
	SetColor(Color)
	Params() []*ElementParam
	AddParam(*ElementParam)
	RemoveParam(key string) bool

	Copy() Element
	Equal(other Element) bool

	// BBox returns the corners of the element's box, rotated with the
	// element, in lower-left, upper-left, upper-right, lower-right order.
	// caller is the instance whose parameters are in effect, or nil.
	BBox(env *Env, scale float32, extend int, caller *Instance) [4]geom.Point
	Draw(dc DrawContext)
	Indicate(dc DrawContext, ep *ElementParam, op *ObjectParam)
	Move(delta geom.Point)
}

// Positionable elements carry their own position, rotation and scale.
type Positionable interface {
	Element
	Place() *Placement
}

// Marker names a decoration drawn at a point rather than an element shape.
type Marker string

const (
	MarkerX     Marker = "x"
	MarkerParam Marker = "param"
	MarkerPoint Marker = "point"
)

// DrawContext receives geometry in the coordinates of the object being
// drawn. The implementation owns the current transform and color.
type DrawContext interface {
	Polyline(points []geom.FPoint, style Style, width float32)
	Text(l *Label)
	Image(g *Graphic)
	Marker(at geom.Point, m Marker)
}

// Extents are the measured dimensions of a label string in drawing units.
// Descent and Base are zero or negative: Base is the baseline of the last
// line relative to the first.
type Extents struct {
	Width   int
	Ascent  int
	Descent int
	Base    int
}

// TextMeasurer computes text extents for a resolved label string.
type TextMeasurer interface {
	Measure(parts []StringPart, scale float32) Extents
}

// ExprEvaluator evaluates expression parameters in the context of the
// instance that supplies them.
type ExprEvaluator interface {
	Eval(expr string, caller *Instance) (string, error)
}

// Env bundles the collaborators element operations call into.
type Env struct {
	Objects *Registry
	Text    TextMeasurer
	Expr    ExprEvaluator
}

func (env *Env) measure(parts []StringPart, scale float32) Extents {
	if env == nil || env.Text == nil {
		return Extents{}
	}
	return env.Text.Measure(parts, scale)
}

// Generic is the state every variant shares: the kind tag, the foreground
// color and the element parameters driving its fields.
type Generic struct {
	kind   Kind
	color  Color
	params []*ElementParam
}

func newGeneric(k Kind) Generic {
	return Generic{kind: k, color: DefaultColor}
}

func (g *Generic) Kind() Kind { return g.kind }

func (g *Generic) Color() Color { return g.color }

func (g *Generic) SetColor(c Color) { g.color = c }

func (g *Generic) Params() []*ElementParam { return g.params }

// AddParam attaches ep, replacing any parameter already bound to the same
// key and target.
func (g *Generic) AddParam(ep *ElementParam) {
	for i, p := range g.params {
		if p.Key == ep.Key && p.Target == ep.Target {
			g.params[i] = ep
			return
		}
	}
	g.params = append(g.params, ep)
}

// RemoveParam detaches every parameter with the given key.
func (g *Generic) RemoveParam(key string) bool {
	kept := g.params[:0]
	for _, p := range g.params {
		if p.Key != key {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(g.params)
	clear(g.params[len(kept):])
	g.params = kept
	return removed
}

// FindParam returns the first parameter bound to key, or nil.
func (g *Generic) FindParam(key string) *ElementParam {
	for _, p := range g.params {
		if p.Key == key {
			return p
		}
	}
	return nil
}

func (g *Generic) copyGeneric() Generic {
	out := Generic{kind: g.kind, color: g.color}
	if len(g.params) > 0 {
		out.params = make([]*ElementParam, len(g.params))
		for i, p := range g.params {
			cp := *p
			out.params[i] = &cp
		}
	}
	return out
}

// Assign overwrites dst's fields with a deep copy of src. Both must be the
// same variant; anything else is a caller bug.
func Assign(dst, src Element) {
	if dst.Kind() != src.Kind() {
		panic(fmt.Sprintf("document: assign %s to %s", src.Kind(), dst.Kind()))
	}
	switch d := dst.(type) {
	case *Instance:
		*d = *src.Copy().(*Instance)
	case *Label:
		*d = *src.Copy().(*Label)
	case *Polygon:
		*d = *src.Copy().(*Polygon)
	case *Arc:
		*d = *src.Copy().(*Arc)
	case *Spline:
		*d = *src.Copy().(*Spline)
	case *Path:
		*d = *src.Copy().(*Path)
	case *Graphic:
		*d = *src.Copy().(*Graphic)
	default:
		panic(fmt.Sprintf("document: assign to unsupported element %T", dst))
	}
}

// Placement is the position, clockwise rotation in degrees and scale of a
// positionable element. Rotation is any integer and is wrapped when drawn.
type Placement struct {
	Position geom.Point
	Rotation int
	Scale    float32
}

func defaultPlacement(at geom.Point) Placement {
	return Placement{Position: at, Scale: 1}
}

// Place returns p so embedding types satisfy Positionable.
func (p *Placement) Place() *Placement { return p }

// Matrix returns the transform from element coordinates to the coordinates
// of the enclosing object.
func (p *Placement) Matrix() geom.Matrix {
	return geom.Placement(p.Position, p.Scale, p.Rotation)
}

// Move translates the position.
func (p *Placement) Move(delta geom.Point) {
	p.Position = p.Position.Add(delta)
}

func (p Placement) equal(o Placement) bool {
	return p.Position == o.Position && p.Rotation == o.Rotation && p.Scale == o.Scale
}

func transformCorners(c [4]geom.Point, p *Placement) [4]geom.Point {
	m := p.Matrix()
	return [4]geom.Point{m.Apply(c[0]), m.Apply(c[1]), m.Apply(c[2]), m.Apply(c[3])}
}

// CornersBBox returns the axis-aligned box enclosing BBox corners.
func CornersBBox(c [4]geom.Point) geom.BBox {
	return geom.BoundsOf(c[0], c[1], c[2], c[3])
}
