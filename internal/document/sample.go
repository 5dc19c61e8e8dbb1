package document

import (
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// Sample is a small library and a page that uses it.
type Sample struct {
	Resistor *Object
	Ground   *Object
	Dot      *Object
	Page     *Object
}

// NewSample registers a resistor symbol, a ground symbol, a junction dot and
// a page wiring them together. Bounding boxes are computed with env.
func NewSample(reg *Registry, env *Env) (*Sample, error) {
	res := reg.New("resistor")
	res.Library = true
	res.SchemType = SchemFundamental
	res.AddParam(StringParam("value", "1k"))
	res.AddParam(StringParam("index", "1"))
	res.AddParam(IntParam("lead", PropPositionY, 64))

	lead := NewPolygon(geom.Pt(0, 64), geom.Pt(0, 36))
	lead.Style = StyleUnclosed
	lead.AddParam(PointParam("lead", 0))
	res.Add(lead)
	zig := NewPolygon(
		geom.Pt(0, 36), geom.Pt(14, 30), geom.Pt(-14, 18), geom.Pt(14, 6),
		geom.Pt(-14, -6), geom.Pt(14, -18), geom.Pt(-14, -30), geom.Pt(0, -36),
		geom.Pt(0, -64),
	)
	zig.Style = StyleUnclosed
	res.Add(zig)
	res.Add(NewPinLabel(geom.Pt(0, 64), PinLocal, Plain("1")))
	res.Add(NewPinLabel(geom.Pt(0, -64), PinLocal, Plain("2")))

	name := NewLabel(geom.Pt(24, 0), append(LabelString{Text("R")}, ParamRegion("index", Text("1"))...))
	name.Anchor = AnchorVCenter
	name.SetColor(Color(3))
	res.Add(name)
	value := NewLabel(geom.Pt(-24, 0), LabelString(ParamRegion("value", Text("1k"))))
	value.Anchor = AnchorHRight | AnchorVCenter
	res.Add(value)
	spice := NewPinLabel(geom.Pt(0, -96), PinInfo, append(LabelString{Text("spice:R")}, ParamRegion("index", Text("1"))...))
	res.Add(spice)
	res.CalcBBox(env)

	gnd := reg.New("gnd")
	gnd.Library = true
	gnd.SchemType = SchemFundamental
	stem := NewPolygon(geom.Pt(0, 0), geom.Pt(0, -32))
	stem.Style = StyleUnclosed
	gnd.Add(stem)
	for i, w := range []int{32, 20, 8} {
		bar := NewPolygon(geom.Pt(-w, -32-8*i), geom.Pt(w, -32-8*i))
		bar.Style = StyleUnclosed
		gnd.Add(bar)
	}
	gnd.Add(NewPinLabel(geom.Pt(0, 0), PinGlobal, Plain("GND")))
	gnd.CalcBBox(env)

	dot := reg.New("dot")
	dot.Library = true
	dot.SchemType = SchemFundamental
	circ := NewCircle(geom.Pt(0, 0), 6)
	circ.Style = StyleFilled
	dot.Add(circ)
	dot.CalcBBox(env)

	page := reg.NewPage("Page 1")
	r1, err := reg.Instantiate(res.ID, geom.Pt(0, 0))
	if err != nil {
		return nil, err
	}
	page.Add(r1)
	r2, err := reg.Instantiate(res.ID, geom.Pt(160, 0))
	if err != nil {
		return nil, err
	}
	r2.Rotation = 90
	r2.SetParam(StringParam("index", "2"))
	r2.SetParam(StringParam("value", "4.7k"))
	page.Add(r2)
	g, err := reg.Instantiate(gnd.ID, geom.Pt(0, -64))
	if err != nil {
		return nil, err
	}
	page.Add(g)
	d, err := reg.Instantiate(dot.ID, geom.Pt(0, 64))
	if err != nil {
		return nil, err
	}
	page.Add(d)

	wire := NewPolygon(geom.Pt(0, 64), geom.Pt(0, 96), geom.Pt(96, 96), geom.Pt(96, 0))
	wire.Style = StyleUnclosed
	page.Add(wire)
	curve := NewSpline(geom.FPt(224, 0), geom.FPt(256, 64), geom.FPt(288, -64), geom.FPt(320, 0))
	page.Add(curve)
	title := NewLabel(geom.Pt(0, 160), Plain("divider"))
	title.Anchor = AnchorHCenter
	page.Add(title)
	border := NewBox(geom.Pt(-200, -200), geom.Pt(400, 200))
	border.Style = StyleBBox
	page.Add(border)

	for _, e := range page.Parts.All() {
		if inst, ok := e.(*Instance); ok {
			if err := inst.CalcBBox(env); err != nil {
				return nil, err
			}
		}
	}
	page.CalcBBox(env)
	return &Sample{Resistor: res, Ground: gnd, Dot: dot, Page: page}, nil
}
