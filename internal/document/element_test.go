package document

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// fixedMeasurer gives every character the same advance.
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(parts []StringPart, scale float32) Extents {
	n := len(LabelString(parts).TextOnly())
	return Extents{
		Width:   int(float32(10*n) * scale),
		Ascent:  int(20 * scale),
		Descent: int(-5 * scale),
	}
}

func testEnv(reg *Registry) *Env {
	return &Env{Objects: reg, Text: fixedMeasurer{}}
}

func unitSquare() *Polygon {
	return NewPolygon(geom.Pt(0, 0), geom.Pt(0, 1), geom.Pt(1, 1), geom.Pt(1, 0))
}

func TestCopyIsEqualAndIndependent(t *testing.T) {
	path := NewPath()
	path.Append(NewPolygon(geom.Pt(0, 0), geom.Pt(10, 0)))
	path.Append(NewArc(geom.Pt(10, 10), 10, 270, 360))

	inst := NewInstance(ID("obj_01h455vb4pex5vsknk084sn02q"), geom.Pt(5, 5))
	inst.SetParam(StringParam("value", "1k"))

	tests := []struct {
		name   string
		elem   Element
		mutate func(Element)
	}{
		{"polygon", unitSquare(), func(e Element) { e.(*Polygon).Points[0].X++ }},
		{"arc", NewArc(geom.Pt(0, 0), 50, 0, 180), func(e Element) { e.(*Arc).Angle2 = 90 }},
		{"spline", NewSpline(geom.FPt(0, 0), geom.FPt(1, 2), geom.FPt(3, 2), geom.FPt(4, 0)),
			func(e Element) { e.(*Spline).Ctrl[1].X += 5 }},
		{"path", path, func(e Element) { e.(*Path).Parts.At(0).(*Polygon).Points[0].Y++ }},
		{"label", NewLabel(geom.Pt(3, 4), Plain("hello")), func(e Element) { e.(*Label).String[0].Text = "bye" }},
		{"instance", inst, func(e Element) { e.(*Instance).Overrides[0].Str = "2k" }},
		{"graphic", NewGraphic(geom.Pt(0, 0), image.NewRGBA(image.Rect(0, 0, 4, 4))),
			func(e Element) { e.(*Graphic).Scale = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := tt.elem.Copy()
			require.Equal(t, tt.elem.Kind(), cp.Kind())
			require.True(t, tt.elem.Equal(cp))
			require.True(t, cp.Equal(tt.elem))

			tt.mutate(cp)
			assert.False(t, tt.elem.Equal(cp))
			assert.True(t, tt.elem.Equal(tt.elem.Copy()), "original changed")
		})
	}
}

func TestEqualIgnoresColorAndDiffersByKind(t *testing.T) {
	a := unitSquare()
	b := unitSquare()
	b.SetColor(4)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewLabel(geom.Pt(0, 0), Plain("x"))))
}

func TestCopyDeepCopiesElementParams(t *testing.T) {
	p := unitSquare()
	p.AddParam(PointParam("w", 2))
	cp := p.Copy()
	cp.Params()[0].Key = "h"
	assert.Equal(t, "w", p.Params()[0].Key)
}

func TestAssign(t *testing.T) {
	dst := unitSquare()
	src := NewPolygon(geom.Pt(5, 5), geom.Pt(6, 6))
	Assign(dst, src)
	assert.True(t, dst.Equal(src))

	src.Points[0].X = 100
	assert.Equal(t, 5, dst.Points[0].X)

	assert.Panics(t, func() { Assign(dst, NewLabel(geom.Pt(0, 0), Plain("x"))) })
}

func TestPolygonReverseAndCycle(t *testing.T) {
	p := NewPolygon(geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0))
	p.SelectPoint(0)
	p.Reverse()
	assert.Equal(t, []geom.Point{{2, 0}, {1, 0}, {0, 0}}, p.Points)
	assert.Equal(t, []geom.Point{{0, 0}}, p.CycledPoints())

	p.AdvanceCycle()
	assert.Equal(t, []geom.Point{{2, 0}}, p.CycledPoints())
}

func TestLabelBBoxAnchors(t *testing.T) {
	env := testEnv(nil)
	// "abc": width 30, ascent 20, descent -5
	tests := []struct {
		name   string
		anchor Anchor
		want   geom.BBox
	}{
		{"left bottom", AnchorLeft | AnchorBottom, geom.BBox{LowerLeft: geom.Pt(0, -5), Width: 30, Height: 25}},
		{"center bottom", AnchorHCenter, geom.BBox{LowerLeft: geom.Pt(-15, -5), Width: 30, Height: 25}},
		{"right bottom", AnchorHRight, geom.BBox{LowerLeft: geom.Pt(-30, -5), Width: 30, Height: 25}},
		{"left top", AnchorVTop, geom.BBox{LowerLeft: geom.Pt(0, -25), Width: 30, Height: 25}},
		{"left middle", AnchorVCenter, geom.BBox{LowerLeft: geom.Pt(0, -15), Width: 30, Height: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLabel(geom.Pt(100, 200), Plain("abc"))
			l.Anchor = tt.anchor
			got := CornersBBox(l.BBox(env, 1, 0, nil))
			want := tt.want
			want.LowerLeft = want.LowerLeft.Add(geom.Pt(100, 200))
			assert.Equal(t, want, got)
		})
	}
}

func TestPinLabelIsPadded(t *testing.T) {
	env := testEnv(nil)
	l := NewPinLabel(geom.Pt(0, 0), PinLocal, Plain("a"))
	got := CornersBBox(l.BBox(env, 1, 0, nil))
	assert.Equal(t, geom.Pt(PadSpace, -5+PadSpace), got.LowerLeft)
	assert.True(t, l.IsPin())
	assert.False(t, NewPinLabel(geom.Pt(0, 0), PinInfo, Plain("a")).IsPin())
}

func TestLabelResolvedExpandsOverrides(t *testing.T) {
	s := append(LabelString{Text("R")}, ParamRegion("index", Text("1"))...)
	l := NewLabel(geom.Pt(0, 0), s)
	assert.Equal(t, "R1", l.Resolved(nil, nil).TextOnly())

	inst := NewInstance(ID("obj_01h455vb4pex5vsknk084sn02q"), geom.Pt(0, 0))
	inst.SetParam(StringParam("index", "7"))
	got := l.Resolved(nil, inst)
	assert.Equal(t, "R7", got.TextOnly())
	assert.Equal(t, []string{"index"}, got.ParamKeys())
	assert.Equal(t, "R1", l.String.TextOnly())
}

func TestLabelResolvedUsesDeclaredValues(t *testing.T) {
	reg := NewRegistry()
	env := testEnv(reg)
	obj := reg.New("res")
	obj.AddParam(StringParam("n", "R1"))
	l := NewLabel(geom.Pt(0, 0), ParamRegion("n", Text("?")))
	obj.Add(l)

	plain, err := reg.Instantiate(obj.ID, geom.Pt(0, 0))
	require.NoError(t, err)
	assert.Equal(t, "R1", l.Resolved(env, plain).TextOnly())

	named, err := reg.Instantiate(obj.ID, geom.Pt(0, 0))
	require.NoError(t, err)
	named.SetParam(StringParam("n", "R7"))
	assert.Equal(t, "R7", l.Resolved(env, named).TextOnly())

	assert.Equal(t, "?", l.Resolved(env, nil).TextOnly())
	assert.Equal(t, 20, CornersBBox(l.BBox(env, 1, 0, plain)).Width)
}

func TestGraphicCache(t *testing.T) {
	g := NewGraphic(geom.Pt(0, 0), image.NewRGBA(image.Rect(0, 0, 10, 4)))
	assert.False(t, g.Valid())

	tgt := g.Target()
	require.NotNil(t, tgt)
	assert.Equal(t, image.Rect(0, 0, 10, 4), tgt.Bounds())
	assert.True(t, g.Valid())

	g.Rotation = 90
	g.Scale = 2
	assert.False(t, g.Valid())
	assert.Equal(t, image.Rect(0, 0, 8, 20), g.Target().Bounds())

	cp := g.Copy().(*Graphic)
	assert.False(t, cp.Valid())
	assert.True(t, cp.Equal(g))
}

func TestGraphicBBoxCentred(t *testing.T) {
	g := NewGraphic(geom.Pt(100, 100), image.NewRGBA(image.Rect(0, 0, 10, 4)))
	got := CornersBBox(g.BBox(nil, 1, 0, nil))
	assert.Equal(t, geom.BBox{LowerLeft: geom.Pt(95, 98), Width: 10, Height: 4}, got)
}
