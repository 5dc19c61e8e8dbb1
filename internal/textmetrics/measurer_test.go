package textmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snmishra/xcircuit-qt-sub002/internal/document"
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// Face7x13: advance 7, ascent 11, descent 2, height 13.

func TestMeasurePlain(t *testing.T) {
	m := New(1)
	got := m.Measure(document.Plain("abc"), 1)
	assert.Equal(t, document.Extents{Width: 21, Ascent: 11, Descent: -2}, got)

	got = m.Measure(document.Plain("a"), 2)
	assert.Equal(t, document.Extents{Width: 14, Ascent: 22, Descent: -4}, got)
}

func TestMeasureUnits(t *testing.T) {
	got := New(2.5).Measure(document.Plain("abc"), 1)
	assert.Equal(t, document.Extents{Width: 53, Ascent: 28, Descent: -5}, got)
}

func TestMeasureMultiline(t *testing.T) {
	s := document.LabelString{
		document.Text("ab"),
		document.Control(document.PartReturn),
		document.Text("abcd"),
	}
	got := New(1).Measure(s, 1)
	assert.Equal(t, 28, got.Width)
	assert.Equal(t, -13, got.Base)
	assert.Equal(t, -15, got.Descent)
	assert.Equal(t, 11, got.Ascent)
}

func TestMeasureSuperscript(t *testing.T) {
	s := document.LabelString{
		document.Text("x"),
		document.Control(document.PartSuperscript),
		document.Text("2"),
		document.Control(document.PartNormalScript),
		document.Text("y"),
	}
	got := New(1).Measure(s, 1)
	// 7 + 7*0.67 + 7
	assert.Equal(t, 19, got.Width)
	// 0.5*11 + 11*0.67
	assert.Equal(t, 13, got.Ascent)
}

func TestMeasureSpacingParts(t *testing.T) {
	s := document.LabelString{
		document.Text("a"),
		document.Control(document.PartHalfSpace),
		document.Kern(10, 0),
		document.FontScale(2),
		document.Text("b"),
	}
	got := New(1).Measure(s, 1)
	// 7 + 3.5 + 10 + 14
	assert.Equal(t, 35, got.Width)
	assert.Equal(t, 22, got.Ascent)
}

func TestMeasurerDrivesLabelBBox(t *testing.T) {
	env := &document.Env{Text: New(1)}
	l := document.NewLabel(geom.Pt(0, 0), document.Plain("abc"))
	l.Anchor = document.AnchorHCenter
	got := document.CornersBBox(l.BBox(env, 1, 0, nil))
	assert.Equal(t, geom.BBox{LowerLeft: geom.Pt(-10, -2), Width: 21, Height: 13}, got)
}
