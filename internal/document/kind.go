package document

// Kind is the immutable variant tag of an element.
type Kind uint8

const (
	KindInstance Kind = iota + 1
	KindLabel
	KindPolygon
	KindArc
	KindSpline
	KindPath
	KindGraphic
)

func (k Kind) String() string {
	switch k {
	case KindInstance:
		return "instance"
	case KindLabel:
		return "label"
	case KindPolygon:
		return "polygon"
	case KindArc:
		return "arc"
	case KindSpline:
		return "spline"
	case KindPath:
		return "path"
	case KindGraphic:
		return "graphic"
	default:
		return "unknown"
	}
}

// Color is an index into the editor's color table, or one of the sentinels.
type Color int

const (
	// DefaultColor elements inherit the color of whatever draws them.
	DefaultColor Color = -1
	// ApplyToAll disables color inheritance for a whole traversal.
	ApplyToAll Color = -2
)

// Style holds the stroke and fill bits shared by polygons, arcs, splines
// and paths.
type Style uint16

const (
	StyleUnclosed  Style = 0x0001
	StyleDashed    Style = 0x0002
	StyleDotted    Style = 0x0004
	StyleNoBorder  Style = 0x0008
	StyleFilled    Style = 0x0010
	StyleStipple1  Style = 0x0020
	StyleStipple2  Style = 0x0040
	StyleStipple3  Style = 0x0080
	StyleFillSolid Style = 0x00f0
	StyleOpaque    Style = 0x0100
	StyleBBox      Style = 0x0200
	StyleSquareCap Style = 0x0400
	StyleClipMask  Style = 0x0800
)

// Closed reports whether the outline joins its last point to its first.
func (s Style) Closed() bool {
	return s&StyleUnclosed == 0
}

// Anchor is the label justification bitfield. Horizontal and vertical
// alignment combine bitwise.
type Anchor uint16

const (
	AnchorNotLeft    Anchor = 0x01
	AnchorRight      Anchor = 0x02
	AnchorNotBottom  Anchor = 0x04
	AnchorTop        Anchor = 0x08
	AnchorFlipInv    Anchor = 0x10
	AnchorPinVisible Anchor = 0x20

	AnchorLeft    Anchor = 0
	AnchorHCenter        = AnchorNotLeft
	AnchorHRight         = AnchorNotLeft | AnchorRight
	AnchorBottom  Anchor = 0
	AnchorVCenter        = AnchorNotBottom
	AnchorVTop           = AnchorNotBottom | AnchorTop
)

// PinType distinguishes ordinary labels from connection and info labels.
type PinType uint8

const (
	PinNormal PinType = iota
	PinLocal
	PinGlobal
	PinInfo
)

// PadSpace is the gap between a pin label's text and its connection point.
const PadSpace = 10

// pinAdjust offsets a pin label's box away from its anchor point, in the
// direction given by dir (+1 or -1).
func pinAdjust(anchor Anchor, dir int) (int, int) {
	dx := PadSpace
	if anchor&AnchorNotLeft != 0 {
		if anchor&AnchorRight != 0 {
			dx = -PadSpace
		} else {
			dx = 0
		}
	}
	dy := PadSpace
	if anchor&AnchorNotBottom != 0 {
		if anchor&AnchorTop != 0 {
			dy = -PadSpace
		} else {
			dy = 0
		}
	}
	return dx * dir, dy * dir
}
