package engine

import (
	"log/slog"

	"github.com/snmishra/xcircuit-qt-sub002/internal/document"
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// frame is the drawing context of one traversal call. It is passed by
// value, so a recursive call can never alter its caller's transform or
// level.
type frame struct {
	ctm    geom.Matrix
	level  int
	caller *document.Instance
	// index is the top-level element being drawn, or -1 when drawing
	// something that is not part of the selectable object.
	index      int
	selectable bool
}

// renderer accumulates the display list of one Render call.
type renderer struct {
	env        *document.Env
	view       geom.BBox
	pinPointOn bool
	selected   map[int]bool
	out        []DrawCommand
}

func (r *renderer) culling() bool {
	return r.view.Width > 0 && r.view.Height > 0
}

// painter is the document.DrawContext for one frame.
type painter struct {
	r *renderer
	f frame
}

func (p painter) emit(cmd DrawCommand) {
	cmd.Index = p.f.index
	cmd.Level = p.f.level
	cmd.Selected = p.f.index >= 0 && p.r.selected[p.f.index]
	p.r.out = append(p.r.out, cmd)
}

func (p painter) Polyline(points []geom.FPoint, style document.Style, width float32) {
	if len(points) == 0 {
		return
	}
	world := make([]geom.FPoint, len(points))
	for i, pt := range points {
		world[i] = p.f.ctm.ApplyF(pt)
	}
	p.emit(DrawCommand{
		Op:     OpPolyline,
		Points: world,
		Closed: style.Closed(),
		Style:  style,
		Width:  width,
	})
}

func (p painter) Text(l *document.Label) {
	bounds := p.f.ctm.TransformBBox(document.CornersBBox(l.BBox(p.r.env, 1, 0, p.f.caller)))
	p.emit(DrawCommand{
		Op:        OpText,
		Text:      l.Resolved(p.r.env, p.f.caller).TextOnly(),
		Anchor:    l.Anchor,
		Transform: p.f.ctm.Multiply(l.Matrix()).ToSlice(),
		Bounds:    &bounds,
	})
}

func (p painter) Image(g *document.Graphic) {
	var w, h int
	if g.Source != nil {
		w, h = g.Source.Bounds().Dx(), g.Source.Bounds().Dy()
	}
	bounds := p.f.ctm.TransformBBox(document.CornersBBox(g.BBox(p.r.env, 1, 0, p.f.caller)))
	p.emit(DrawCommand{
		Op:        OpImage,
		Transform: p.f.ctm.Multiply(g.Matrix()).ToSlice(),
		Width:     float32(w),
		Height:    h,
		ImageKey:  g.Key,
		Bounds:    &bounds,
	})
}

func (p painter) Marker(at geom.Point, m document.Marker) {
	world := p.f.ctm.Apply(at)
	p.emit(DrawCommand{Op: OpMarker, At: &world, Marker: m})
}

func (p painter) color(c document.Color) {
	p.emit(DrawCommand{Op: OpColor, Color: &c})
}

// drawInstance draws the object inst refers to. f.ctm maps the enclosing
// object to the page and f.level is inst's own depth; the top-level call
// (level 0) does not apply inst's placement.
//
// passColor is the color inherited from the enclosing drawing. Elements
// with DefaultColor take it; others switch to their own color, and the
// inherited color is restored afterwards. ApplyToAll turns inheritance
// off for the whole subtree.
//
// stack is the remaining edit-in-place push stack, outermost first. The
// instance at its end is drawn separately by the caller and is skipped
// here.
func (r *renderer) drawInstance(f frame, inst *document.Instance, passColor document.Color, stack []*document.Instance) {
	obj, err := r.env.Objects.Lookup(inst.Ref)
	if err != nil {
		slog.Warn("draw: unresolved instance", "ref", inst.Ref, "error", err)
		return
	}

	ctm := f.ctm
	if f.level > 0 {
		ctm = ctm.Multiply(inst.Matrix())
	}

	box := inst.LocalBBox(r.env)
	if f.level == 0 {
		box = box.Union(obj.SchemBBox)
	}
	if r.culling() && !ctm.TransformBBox(box).Intersects(r.view) {
		slog.Debug("draw: culled", "object", obj.Name, "level", f.level)
		return
	}

	if err := document.Substitute(r.env, obj, inst); err != nil {
		slog.Warn("draw: parameter substitution failed", "object", obj.Name, "error", err)
	}

	cur := passColor
	for i, e := range obj.Parts.All() {
		ef := frame{ctm: ctm, level: f.level, caller: inst, index: f.index, selectable: f.selectable}
		if f.level == 0 {
			ef.index = -1
			if f.selectable {
				ef.index = i
			}
		}
		p := painter{r: r, f: ef}

		want := elementColor(e.Color(), passColor)
		if want != cur && (passColor != document.ApplyToAll || want != document.DefaultColor) {
			p.color(want)
			cur = want
		}

		switch el := e.(type) {
		case *document.Polygon:
			if f.level == 0 && el.Style&document.StyleBBox != 0 {
				continue
			}
			el.Draw(p)
		case *document.Instance:
			var rest []*document.Instance
			if len(stack) > 0 && stack[0] == el {
				if len(stack) == 1 {
					continue
				}
				rest = stack[1:]
			}
			childColor := cur
			if passColor == document.ApplyToAll {
				childColor = document.ApplyToAll
			}
			child := frame{ctm: ctm, level: f.level + 1, caller: inst, index: ef.index, selectable: f.selectable}
			r.drawInstance(child, el, childColor, rest)
			if passColor == document.ApplyToAll {
				// the subtree may have switched colors; force the next one out
				cur = document.ApplyToAll
			}
		case *document.Label:
			r.drawLabel(p, el, f.level)
		default:
			e.Draw(p)
		}
	}

	if passColor != document.ApplyToAll && cur != passColor {
		painter{r: r, f: frame{ctm: ctm, level: f.level, index: f.index}}.color(passColor)
	}
}

// elementColor is the color an element is drawn in when its parent draws
// in passColor.
func elementColor(own, passColor document.Color) document.Color {
	if passColor == document.ApplyToAll || own != document.DefaultColor {
		return own
	}
	return passColor
}

// drawLabel applies the pin visibility rules. Ordinary labels and
// everything on the top level are drawn, with an X on pins. Deeper pin and
// info labels are drawn only when marked visible, and pins of the level
// right below the top show just the X when pin points are on.
func (r *renderer) drawLabel(p painter, l *document.Label, level int) {
	x := func() { p.Marker(l.Position, document.MarkerX) }

	if level == 0 || l.Pin == document.PinNormal {
		l.Draw(p)
		if l.IsPin() {
			x()
		}
		return
	}

	visible := l.Anchor&document.AnchorPinVisible != 0
	switch {
	case visible && r.pinPointOn:
		l.Draw(p)
		x()
	case visible:
		l.Draw(p)
	case level == 1 && l.Pin != document.PinInfo && r.pinPointOn:
		x()
	}
}
