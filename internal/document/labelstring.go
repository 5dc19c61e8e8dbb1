package document

import (
	"slices"
	"strings"
)

// PartType is the kind of one label string part. Everything but PartText
// is a control marker that carries no text.
type PartType uint8

const (
	PartText PartType = iota
	PartSubscript
	PartSuperscript
	PartNormalScript
	PartUnderline
	PartOverline
	PartNoLine
	PartTabStop
	PartTabForward
	PartTabBackward
	PartHalfSpace
	PartQtrSpace
	PartReturn
	PartFontName
	PartFontScale
	PartFontColor
	PartMarginStop
	PartKern
	PartParamStart
	PartParamEnd
)

// StringPart is one segment of a label string.
type StringPart struct {
	Type  PartType
	Text  string  // PartText
	Font  int     // PartFontName
	Scale float32 // PartFontScale
	Color Color   // PartFontColor
	Kern  [2]int  // PartKern
	Key   string  // PartParamStart
	Width int     // PartMarginStop
}

// Text returns a literal text part.
func Text(s string) StringPart { return StringPart{Type: PartText, Text: s} }

// Control returns a marker part with no data.
func Control(t PartType) StringPart { return StringPart{Type: t} }

// FontScale returns a font scale change part.
func FontScale(s float32) StringPart { return StringPart{Type: PartFontScale, Scale: s} }

// FontColor returns a font color change part.
func FontColor(c Color) StringPart { return StringPart{Type: PartFontColor, Color: c} }

// FontName returns a font change part.
func FontName(font int) StringPart { return StringPart{Type: PartFontName, Font: font} }

// Kern returns a kerning adjustment part.
func Kern(dx, dy int) StringPart { return StringPart{Type: PartKern, Kern: [2]int{dx, dy}} }

// ParamRegion wraps default text in a region bound to parameter key.
func ParamRegion(key string, def ...StringPart) []StringPart {
	out := []StringPart{{Type: PartParamStart, Key: key}}
	out = append(out, def...)
	return append(out, StringPart{Type: PartParamEnd})
}

// LabelString is an ordered list of string parts.
type LabelString []StringPart

// Plain builds a single-part string.
func Plain(s string) LabelString { return LabelString{Text(s)} }

// Equal compares part by part.
func (s LabelString) Equal(o LabelString) bool {
	return slices.Equal(s, o)
}

// Copy returns an independent copy.
func (s LabelString) Copy() LabelString {
	return slices.Clone(s)
}

// TextOnly concatenates the literal text, dropping control markers.
func (s LabelString) TextOnly() string {
	var b strings.Builder
	for _, p := range s {
		if p.Type == PartText {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// ParamKeys returns the keys of every parameter region, in order.
func (s LabelString) ParamKeys() []string {
	var keys []string
	for _, p := range s {
		if p.Type == PartParamStart {
			keys = append(keys, p.Key)
		}
	}
	return keys
}

// Expand replaces each parameter region whose key has a value in lookup by
// that value. Regions without a value keep their default text. The region
// markers are kept so the result can still be indicated.
func (s LabelString) Expand(lookup func(key string) (string, bool)) LabelString {
	if lookup == nil {
		return s
	}
	out := make(LabelString, 0, len(s))
	for i := 0; i < len(s); i++ {
		p := s[i]
		out = append(out, p)
		if p.Type != PartParamStart {
			continue
		}
		v, ok := lookup(p.Key)
		if !ok {
			continue
		}
		out = append(out, Text(v))
		for i+1 < len(s) && s[i+1].Type != PartParamEnd {
			i++
		}
	}
	return out
}
