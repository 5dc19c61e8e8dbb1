// Package textmetrics measures label strings with a bitmap font face.
package textmetrics

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/snmishra/xcircuit-qt-sub002/internal/document"
)

const (
	scriptScale      = 0.67
	subscriptShift   = 0.3
	superscriptShift = 0.5
	tabSpaces        = 4
)

// Measurer computes label extents from a font face. Face metrics are in
// pixels; UnitsPerPixel converts them to drawing units.
type Measurer struct {
	Face          font.Face
	UnitsPerPixel float64
}

// New returns a measurer over basicfont.Face7x13.
func New(unitsPerPixel float64) *Measurer {
	if unitsPerPixel <= 0 {
		unitsPerPixel = 1
	}
	return &Measurer{Face: basicfont.Face7x13, UnitsPerPixel: unitsPerPixel}
}

type cursor struct {
	x, y      float64
	scale     float64
	width     float64
	top, bot  float64
	lineStart float64
	tabStops  []float64
}

func (m *Measurer) px(v fixed.Int26_6) float64 {
	return float64(v) / 64 * m.UnitsPerPixel
}

// Measure returns the width, ascent, descent and baseline of the last line
// for parts drawn at scale. Descent and Base are zero or negative.
func (m *Measurer) Measure(parts []document.StringPart, scale float32) document.Extents {
	metrics := m.Face.Metrics()
	ascent := m.px(metrics.Ascent)
	descent := m.px(metrics.Descent)
	lineHeight := m.px(metrics.Height)
	space := m.px(font.MeasureString(m.Face, " "))

	base := float64(scale)
	c := cursor{scale: base, top: ascent * base, bot: -descent * base}

	grow := func() {
		c.width = max(c.width, c.x)
		c.top = max(c.top, c.y+ascent*c.scale)
		c.bot = min(c.bot, c.y-descent*c.scale)
	}

	for _, p := range parts {
		switch p.Type {
		case document.PartText:
			c.x += m.px(font.MeasureString(m.Face, p.Text)) * c.scale
			grow()
		case document.PartSubscript:
			c.y -= subscriptShift * ascent * c.scale
			c.scale *= scriptScale
		case document.PartSuperscript:
			c.y += superscriptShift * ascent * c.scale
			c.scale *= scriptScale
		case document.PartNormalScript:
			c.y = c.lineStart
			c.scale = base
		case document.PartFontScale:
			c.scale = base * float64(p.Scale)
		case document.PartKern:
			c.x += float64(p.Kern[0])
			c.y += float64(p.Kern[1])
			grow()
		case document.PartHalfSpace:
			c.x += space * c.scale / 2
			grow()
		case document.PartQtrSpace:
			c.x += space * c.scale / 4
			grow()
		case document.PartTabStop:
			c.tabStops = append(c.tabStops, c.x)
		case document.PartTabForward:
			c.x = nextTab(c.tabStops, c.x, space*c.scale*tabSpaces)
			grow()
		case document.PartTabBackward:
			c.x = prevTab(c.tabStops, c.x)
		case document.PartReturn:
			c.lineStart -= lineHeight * base
			c.x, c.y = 0, c.lineStart
			c.scale = base
			grow()
		}
	}

	return document.Extents{
		Width:   roundInt(c.width),
		Ascent:  roundInt(c.top),
		Descent: roundInt(c.bot),
		Base:    roundInt(c.lineStart),
	}
}

func nextTab(stops []float64, x, step float64) float64 {
	for _, s := range stops {
		if s > x {
			return s
		}
	}
	if step <= 0 {
		return x
	}
	return (math.Floor(x/step) + 1) * step
}

func prevTab(stops []float64, x float64) float64 {
	best := 0.0
	for _, s := range stops {
		if s < x && s > best {
			best = s
		}
	}
	return best
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
