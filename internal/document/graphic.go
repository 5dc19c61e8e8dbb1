package document

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// Graphic is an embedded raster image centred on its position. The target
// buffer holds the image rotated and scaled for display and is rebuilt
// whenever rotation or scale differ from the last render.
type Graphic struct {
	Generic
	Placement
	Source image.Image
	// Key names Source for renderers that fetch the image separately.
	Key string

	target *image.RGBA
	trot   int
	tscale float32
	valid  bool
}

// NewGraphic places src centred on at.
func NewGraphic(at geom.Point, src image.Image) *Graphic {
	return &Graphic{
		Generic:   newGeneric(KindGraphic),
		Placement: defaultPlacement(at),
		Source:    src,
	}
}

// Valid reports whether the target buffer matches the current placement.
func (g *Graphic) Valid() bool {
	return g.valid && g.target != nil && g.trot == g.Rotation && g.tscale == g.Scale
}

// Invalidate forces the next Target call to regenerate.
func (g *Graphic) Invalidate() {
	g.valid = false
}

// Target returns the rotated and scaled image, regenerating it if needed.
func (g *Graphic) Target() *image.RGBA {
	if !g.Valid() {
		g.Regenerate()
	}
	return g.target
}

// Regenerate renders the source into a new target buffer sized to the
// rotated, scaled image.
func (g *Graphic) Regenerate() {
	g.trot = g.Rotation
	g.tscale = g.Scale
	g.valid = true
	if g.Source == nil {
		g.target = nil
		return
	}

	sb := g.Source.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	sin, cos := geom.SinCosDegrees(g.Rotation)
	s := math.Abs(float64(g.Scale))

	tw := int(math.Ceil(s * (math.Abs(sw*cos) + math.Abs(sh*sin))))
	th := int(math.Ceil(s * (math.Abs(sw*sin) + math.Abs(sh*cos))))
	if tw < 1 || th < 1 {
		g.target = image.NewRGBA(image.Rect(0, 0, 0, 0))
		return
	}
	g.target = image.NewRGBA(image.Rect(0, 0, tw, th))

	// Image space has y pointing down, so a clockwise turn on the page is
	// a clockwise turn in pixels too.
	sx := float64(g.Scale)
	a := cos * sx
	b := -sin * s
	c := sin * sx
	d := cos * s
	ox, oy := float64(tw)/2, float64(th)/2
	cx, cy := sw/2+float64(sb.Min.X), sh/2+float64(sb.Min.Y)
	m := f64.Aff3{
		a, b, ox - a*cx - b*cy,
		c, d, oy - c*cx - d*cy,
	}
	draw.BiLinear.Transform(g.target, m, g.Source, sb, draw.Over, nil)
}

func (g *Graphic) Copy() Element {
	return &Graphic{
		Generic:   g.copyGeneric(),
		Placement: g.Placement,
		Source:    g.Source,
		Key:       g.Key,
	}
}

func (g *Graphic) Equal(other Element) bool {
	o, ok := other.(*Graphic)
	if !ok {
		return false
	}
	return g.Placement.equal(o.Placement) && g.Source == o.Source
}

func (g *Graphic) BBox(_ *Env, _ float32, extend int, _ *Instance) [4]geom.Point {
	var w, h int
	if g.Source != nil {
		w, h = g.Source.Bounds().Dx(), g.Source.Bounds().Dy()
	}
	box := geom.BBox{LowerLeft: geom.Pt(-w/2, -h/2), Width: w, Height: h}
	return transformCorners(box.Extend(extend).Corners(), &g.Placement)
}

func (g *Graphic) Draw(dc DrawContext) {
	dc.Image(g)
}

func (g *Graphic) Indicate(dc DrawContext, _ *ElementParam, _ *ObjectParam) {
	dc.Marker(g.Position, MarkerParam)
}
