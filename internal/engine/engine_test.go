package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snmishra/xcircuit-qt-sub002/internal/document"
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

type fixedMeasurer struct{}

func (fixedMeasurer) Measure(parts []document.StringPart, scale float32) document.Extents {
	n := len(document.LabelString(parts).TextOnly())
	return document.Extents{
		Width:   int(float32(10*n) * scale),
		Ascent:  int(20 * scale),
		Descent: int(-5 * scale),
	}
}

type fixture struct {
	env  *document.Env
	sym  *document.Object
	page *document.Object
}

// newFixture registers a symbol holding a default-colored square and a
// square in color 5, plus an empty page.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := document.NewRegistry()
	env := &document.Env{Objects: reg, Text: fixedMeasurer{}}

	sym := reg.New("sym")
	sym.Add(document.NewBox(geom.Pt(0, 0), geom.Pt(10, 10)))
	colored := document.NewBox(geom.Pt(20, 0), geom.Pt(30, 10))
	colored.SetColor(5)
	sym.Add(colored)

	return &fixture{env: env, sym: sym, page: reg.NewPage("page")}
}

func (fx *fixture) place(t *testing.T, at geom.Point) *document.Instance {
	t.Helper()
	inst, err := fx.env.Objects.Instantiate(fx.sym.ID, at)
	require.NoError(t, err)
	fx.page.Add(inst)
	return inst
}

func (fx *fixture) engine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := New(fx.env, fx.page.ID, opts)
	require.NoError(t, err)
	return e
}

func ops(cmds []DrawCommand) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Op
	}
	return out
}

func colors(cmds []DrawCommand) []document.Color {
	var out []document.Color
	for _, c := range cmds {
		if c.Op == OpColor {
			out = append(out, *c.Color)
		}
	}
	return out
}

func ofOp(cmds []DrawCommand, op string) []DrawCommand {
	var out []DrawCommand
	for _, c := range cmds {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func TestRenderColorInheritance(t *testing.T) {
	fx := newFixture(t)
	inst := fx.place(t, geom.Pt(0, 0))
	inst.SetColor(2)

	cmds := fx.engine(t, Options{}).Render()

	assert.Equal(t, []string{OpColor, OpPolyline, OpColor, OpPolyline, OpColor, OpColor}, ops(cmds))
	assert.Equal(t, []document.Color{2, 5, 2, document.DefaultColor}, colors(cmds))
}

func TestRenderApplyToAll(t *testing.T) {
	fx := newFixture(t)
	inst := fx.place(t, geom.Pt(0, 0))
	inst.SetColor(2)
	e := fx.engine(t, Options{})

	r := &renderer{env: fx.env, selected: map[int]bool{}}
	r.drawInstance(frame{ctm: geom.Identity(), index: -1}, e.top, document.ApplyToAll, nil)

	assert.Equal(t, []string{OpColor, OpPolyline, OpColor, OpPolyline}, ops(r.out))
	assert.Equal(t, []document.Color{2, 5}, colors(r.out))
}

func TestRenderTransformsNestedGeometry(t *testing.T) {
	fx := newFixture(t)
	fx.place(t, geom.Pt(100, 50))

	lines := ofOp(fx.engine(t, Options{}).Render(), OpPolyline)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Level)
	assert.Equal(t, geom.FPt(100, 50), lines[0].Points[0])
}

func TestRenderSkipsTopLevelBBoxPolygons(t *testing.T) {
	fx := newFixture(t)
	border := document.NewBox(geom.Pt(-10, -10), geom.Pt(50, 50))
	border.Style = document.StyleBBox
	fx.sym.Add(border)
	fx.place(t, geom.Pt(0, 0))
	pageBorder := border.Copy()
	fx.page.Add(pageBorder)

	lines := ofOp(fx.engine(t, Options{}).Render(), OpPolyline)
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 1, l.Level)
	}
}

func TestRenderCullsOutsideView(t *testing.T) {
	fx := newFixture(t)
	fx.page.Add(document.NewBox(geom.Pt(10, 10), geom.Pt(20, 20)))
	fx.place(t, geom.Pt(1000, 1000))

	e := fx.engine(t, Options{View: geom.BBox{LowerLeft: geom.Pt(0, 0), Width: 100, Height: 100}})
	assert.Len(t, ofOp(e.Render(), OpPolyline), 1)

	e.SetView(geom.EmptyBBox())
	assert.Len(t, ofOp(e.Render(), OpPolyline), 3)
}

func TestRenderZeroViewDrawsEverything(t *testing.T) {
	fx := newFixture(t)
	fx.place(t, geom.Pt(0, 0))
	fx.place(t, geom.Pt(500, 0))

	tests := []struct {
		name string
		view geom.BBox
	}{
		{"zero value", geom.BBox{}},
		{"empty", geom.EmptyBBox()},
		{"flat", geom.BBox{LowerLeft: geom.Pt(0, 0), Width: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := fx.engine(t, Options{View: tt.view})
			assert.Len(t, ofOp(e.Render(), OpPolyline), 4)
		})
	}
}

func TestRenderSelectionIndices(t *testing.T) {
	fx := newFixture(t)
	fx.page.Add(document.NewBox(geom.Pt(0, 0), geom.Pt(5, 5)))
	fx.page.Add(document.NewBox(geom.Pt(10, 0), geom.Pt(15, 5)))
	fx.place(t, geom.Pt(0, 0))

	e := fx.engine(t, Options{})
	e.SetSelection([]int{1, 2, 2, 7, -1})
	assert.Equal(t, []int{1, 2}, e.Selection())

	lines := ofOp(e.Render(), OpPolyline)
	require.Len(t, lines, 4)
	assert.Equal(t, 0, lines[0].Index)
	assert.False(t, lines[0].Selected)
	assert.Equal(t, 1, lines[1].Index)
	assert.True(t, lines[1].Selected)
	assert.Equal(t, 2, lines[2].Index)
	assert.Equal(t, 2, lines[3].Index)
	assert.True(t, lines[3].Selected)
}

func TestRenderCachesUntilDirty(t *testing.T) {
	fx := newFixture(t)
	fx.place(t, geom.Pt(0, 0))
	e := fx.engine(t, Options{})

	first := e.Render()
	fx.page.Add(document.NewBox(geom.Pt(0, 0), geom.Pt(5, 5)))
	assert.Len(t, e.Render(), len(first))

	e.MarkDirty()
	assert.Len(t, e.Render(), len(first)+1)
}

func TestPushAndPop(t *testing.T) {
	fx := newFixture(t)
	fx.page.Add(document.NewBox(geom.Pt(-50, -50), geom.Pt(-40, -40)))
	fx.place(t, geom.Pt(100, 0))
	e := fx.engine(t, Options{})

	err := e.Push(0)
	require.ErrorIs(t, err, ErrNotInstance)
	require.ErrorIs(t, e.Push(9), ErrIndexOutOfRange)

	require.NoError(t, e.Push(1))
	assert.Equal(t, 1, e.Depth())
	assert.Same(t, fx.sym, e.Current())

	lines := ofOp(e.Render(), OpPolyline)
	require.Len(t, lines, 2)
	for i, l := range lines {
		assert.Equal(t, 0, l.Level)
		assert.Equal(t, i, l.Index)
	}
	assert.Equal(t, geom.FPt(100, 0), lines[0].Points[0])

	assert.True(t, e.Pop())
	assert.False(t, e.Pop())
	assert.Same(t, fx.page, e.Current())
}

func TestEditInPlaceDrawsSurroundings(t *testing.T) {
	fx := newFixture(t)
	fx.page.Add(document.NewBox(geom.Pt(-50, -50), geom.Pt(-40, -40)))
	fx.place(t, geom.Pt(100, 0))
	fx.place(t, geom.Pt(200, 0))
	e := fx.engine(t, Options{EditInPlace: true})
	require.NoError(t, e.Push(1))

	lines := ofOp(e.Render(), OpPolyline)
	// page box, the other instance, then the entered instance
	require.Len(t, lines, 5)
	assert.Equal(t, -1, lines[0].Index)
	assert.Equal(t, geom.FPt(200, 0), lines[1].Points[0])
	assert.Equal(t, -1, lines[1].Index)
	assert.Equal(t, geom.FPt(100, 0), lines[3].Points[0])
	assert.Equal(t, 0, lines[3].Index)
	assert.Equal(t, 1, lines[4].Index)
}

func TestPinLabelVisibility(t *testing.T) {
	fx := newFixture(t)
	fx.sym.Add(document.NewPinLabel(geom.Pt(0, 0), document.PinLocal, document.Plain("A")))
	fx.sym.Add(document.NewPinLabel(geom.Pt(0, 5), document.PinInfo, document.Plain("spice")))
	fx.place(t, geom.Pt(0, 0))
	fx.page.Add(document.NewPinLabel(geom.Pt(50, 50), document.PinGlobal, document.Plain("VDD")))

	e := fx.engine(t, Options{})
	cmds := e.Render()
	texts := ofOp(cmds, OpText)
	require.Len(t, texts, 1)
	assert.Equal(t, "VDD", texts[0].Text)
	require.Len(t, ofOp(cmds, OpMarker), 1)

	e.SetPinPointOn(true)
	markers := ofOp(e.Render(), OpMarker)
	require.Len(t, markers, 2)
	assert.Equal(t, geom.Pt(0, 0), *markers[0].At)
	assert.Equal(t, document.MarkerX, markers[0].Marker)

	pin := fx.sym.Parts.At(2).(*document.Label)
	pin.Anchor |= document.AnchorPinVisible
	e.MarkDirty()
	texts = ofOp(e.Render(), OpText)
	require.Len(t, texts, 2)
	assert.Equal(t, "A", texts[0].Text)
}

func TestHitTest(t *testing.T) {
	fx := newFixture(t)
	fx.page.Add(document.NewBox(geom.Pt(0, 0), geom.Pt(100, 100)))
	fx.page.Add(document.NewBox(geom.Pt(40, 40), geom.Pt(60, 60)))
	fx.place(t, geom.Pt(500, 500))
	e := fx.engine(t, Options{})

	assert.Equal(t, 1, e.HitTest(geom.Pt(50, 50), 0))
	assert.Equal(t, 0, e.HitTest(geom.Pt(10, 10), 0))
	assert.Equal(t, -1, e.HitTest(geom.Pt(300, 300), 0))
	assert.Equal(t, 0, e.HitTest(geom.Pt(102, 50), 3))

	require.NoError(t, e.Push(2))
	assert.Equal(t, 1, e.HitTest(geom.Pt(525, 505), 0))
}

func TestSelectionBounds(t *testing.T) {
	fx := newFixture(t)
	fx.page.Add(document.NewBox(geom.Pt(0, 0), geom.Pt(10, 10)))
	fx.place(t, geom.Pt(100, 100))
	e := fx.engine(t, Options{})

	assert.JSONEq(t, `{"x":0,"y":0,"width":0,"height":0}`, e.SelectionBoundsJSON())

	e.SetSelection([]int{0, 1})
	b := e.SelectionBounds()
	assert.Equal(t, geom.Pt(0, 0), b.LowerLeft)
	assert.Equal(t, geom.Pt(130, 110), b.UpperRight())
}

func TestRescaleSelected(t *testing.T) {
	fx := newFixture(t)
	fx.page.Add(document.NewBox(geom.Pt(0, 0), geom.Pt(10, 10)))
	label := document.NewLabel(geom.Pt(0, 0), document.Plain("abcd"))
	fx.page.Add(label)
	e := fx.engine(t, Options{})

	_, err := e.RescaleSelected(geom.Pt(80, 40))
	require.ErrorIs(t, err, ErrNothingSelected)

	e.SetSelection([]int{0})
	_, err = e.RescaleSelected(geom.Pt(80, 40))
	require.ErrorIs(t, err, ErrNotPositionable)

	e.SetSelection([]int{1})
	scale, err := e.RescaleSelected(geom.Pt(80, 40))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, scale, 0.01)
	assert.Equal(t, scale, label.Scale)
}

func TestRenderSample(t *testing.T) {
	reg := document.NewRegistry()
	env := &document.Env{Objects: reg, Text: fixedMeasurer{}}
	s, err := document.NewSample(reg, env)
	require.NoError(t, err)

	e, err := New(env, s.Page.ID, Options{})
	require.NoError(t, err)

	var texts []string
	for _, c := range ofOp(e.Render(), OpText) {
		texts = append(texts, c.Text)
	}
	assert.Contains(t, texts, "R1")
	assert.Contains(t, texts, "R2")
	assert.Contains(t, texts, "1k")
	assert.Contains(t, texts, "4.7k")
	assert.Contains(t, texts, "divider")
	assert.NotContains(t, texts, "spice:R1")

	out, err := e.RenderJSON()
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded, len(e.Render()))
}

func TestIndicateParams(t *testing.T) {
	reg := document.NewRegistry()
	env := &document.Env{Objects: reg, Text: fixedMeasurer{}}
	s, err := document.NewSample(reg, env)
	require.NoError(t, err)
	e, err := New(env, s.Page.ID, Options{})
	require.NoError(t, err)

	assert.Empty(t, e.IndicateParams())

	require.NoError(t, e.Push(0))
	marks := e.IndicateParams()
	require.NotEmpty(t, marks)
	var lead *DrawCommand
	for i := range marks {
		if marks[i].Param == "lead" {
			lead = &marks[i]
		}
	}
	require.NotNil(t, lead)
	assert.Equal(t, "64", lead.Value)
	assert.Equal(t, geom.Pt(0, 64), *lead.At)
}

func TestRecalcAfterRenderKeepsDeclaredBox(t *testing.T) {
	reg := document.NewRegistry()
	env := &document.Env{Objects: reg, Text: fixedMeasurer{}}
	s, err := document.NewSample(reg, env)
	require.NoError(t, err)

	page := reg.NewPage("long leads")
	plain, err := reg.Instantiate(s.Resistor.ID, geom.Pt(0, 0))
	require.NoError(t, err)
	page.Add(plain)
	long, err := reg.Instantiate(s.Resistor.ID, geom.Pt(500, 0))
	require.NoError(t, err)
	long.SetParam(document.IntParam("lead", document.PropPositionY, 1000))
	page.Add(long)

	e, err := New(env, page.ID, Options{})
	require.NoError(t, err)
	declared := s.Resistor.BBox
	require.Less(t, declared.Height, 1000)

	e.Render()
	require.NoError(t, e.Recalc())

	assert.Equal(t, declared, s.Resistor.BBox)
	assert.Equal(t, declared, plain.LocalBBox(env))
	assert.Greater(t, long.LocalBBox(env).Height, 1000)
}

func TestDecomposeSelectedArcs(t *testing.T) {
	fx := newFixture(t)
	fx.page.Add(document.NewArc(geom.Pt(0, 0), 10, 0, 180))
	fx.page.Add(document.NewBox(geom.Pt(0, 0), geom.Pt(5, 5)))
	e := fx.engine(t, Options{})

	_, err := e.DecomposeSelectedArcs()
	require.ErrorIs(t, err, ErrNothingSelected)

	e.SetSelection([]int{0, 1})
	n, err := e.DecomposeSelectedArcs()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, ok := fx.page.Parts.At(0).(*document.Path)
	require.True(t, ok)
	assert.Equal(t, 2, p.Parts.Len())
	assert.Len(t, ofOp(e.Render(), OpPolyline), 2)

	_, err = e.DecomposeSelectedArcs()
	require.ErrorIs(t, err, ErrNotArc)
}
