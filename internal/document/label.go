package document

import (
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// Label is a positioned text string. Pin labels mark connection points of
// a symbol; info labels carry netlist annotations.
type Label struct {
	Generic
	Placement
	Anchor Anchor
	Pin    PinType
	String LabelString
}

// NewLabel returns a left/bottom-justified label.
func NewLabel(at geom.Point, s LabelString) *Label {
	return &Label{
		Generic:   newGeneric(KindLabel),
		Placement: defaultPlacement(at),
		String:    s.Copy(),
	}
}

// NewPinLabel returns a pin label of the given type.
func NewPinLabel(at geom.Point, pin PinType, s LabelString) *Label {
	l := NewLabel(at, s)
	l.Pin = pin
	return l
}

// IsPin reports whether the label is a local or global pin.
func (l *Label) IsPin() bool {
	return l.Pin == PinLocal || l.Pin == PinGlobal
}

// Resolved returns the string with its parameter regions replaced by the
// values caller sees: caller's overrides, then the declarations of the
// object it places. Without a caller the stored text is returned.
func (l *Label) Resolved(env *Env, caller *Instance) LabelString {
	if caller == nil {
		return l.String
	}
	var obj *Object
	if env != nil && env.Objects != nil {
		obj, _ = env.Objects.Lookup(caller.Ref)
	}
	return l.String.Expand(caller.stringParam(obj))
}

func (l *Label) Copy() Element {
	cp := *l
	cp.Generic = l.copyGeneric()
	cp.String = l.String.Copy()
	return &cp
}

func (l *Label) Equal(other Element) bool {
	o, ok := other.(*Label)
	if !ok {
		return false
	}
	return l.Placement.equal(o.Placement) && l.Anchor == o.Anchor && l.Pin == o.Pin &&
		l.String.Equal(o.String)
}

// BBox places the measured text box according to the anchor bits, pushes
// pin labels off their connection point and transforms the result by the
// label's placement.
func (l *Label) BBox(env *Env, scale float32, extend int, caller *Instance) [4]geom.Point {
	ext := env.measure(l.Resolved(env, caller), scale)
	return l.textCorners(ext, extend)
}

func (l *Label) textCorners(ext Extents, extend int) [4]geom.Point {
	x0 := 0
	if l.Anchor&AnchorNotLeft != 0 {
		if l.Anchor&AnchorRight != 0 {
			x0 = -ext.Width
		} else {
			x0 = -ext.Width / 2
		}
	}

	var y0 int
	switch {
	case l.Anchor&AnchorNotBottom == 0:
		y0 = -ext.Base
	case l.Anchor&AnchorTop != 0:
		y0 = -ext.Ascent
	default:
		y0 = -(ext.Ascent + ext.Base) / 2
	}
	y0 += ext.Descent

	x1 := x0 + ext.Width
	y1 := y0 + ext.Ascent - ext.Descent

	c := [4]geom.Point{
		{X: x0 - extend, Y: y0 - extend},
		{X: x0 - extend, Y: y1 + extend},
		{X: x1 + extend, Y: y1 + extend},
		{X: x1 + extend, Y: y0 - extend},
	}
	if l.Pin != PinNormal {
		dx, dy := pinAdjust(l.Anchor, 1)
		for i := range c {
			c[i].X += dx
			c[i].Y += dy
		}
	}
	return transformCorners(c, &l.Placement)
}

func (l *Label) Draw(dc DrawContext) {
	dc.Text(l)
}

func (l *Label) Indicate(dc DrawContext, _ *ElementParam, _ *ObjectParam) {
	dc.Marker(l.Position, MarkerParam)
}
