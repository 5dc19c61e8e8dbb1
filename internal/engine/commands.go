package engine

import (
	"encoding/json"

	"github.com/snmishra/xcircuit-qt-sub002/internal/document"
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// Draw command operations.
const (
	OpColor    = "color"
	OpPolyline = "polyline"
	OpText     = "text"
	OpImage    = "image"
	OpMarker   = "marker"
)

// DrawCommand is one entry of the display list handed to a renderer.
// Geometry is already in page coordinates; text and images carry the
// transform that places them.
type DrawCommand struct {
	Op        string          `json:"op"`
	Index     int             `json:"index"`               // top-level element the command belongs to
	Level     int             `json:"level"`               // instance nesting depth
	Selected  bool            `json:"selected,omitempty"`  // element is in the selection
	Color     *document.Color `json:"color,omitempty"`     // for "color"
	Points    []geom.FPoint   `json:"points,omitempty"`    // for "polyline"
	Closed    bool            `json:"closed,omitempty"`    // for "polyline"
	Style     document.Style  `json:"style,omitempty"`     // for "polyline"
	Width     float32         `json:"width,omitempty"`     // line width, or image width
	Transform []float64       `json:"transform,omitempty"` // for "text" and "image"
	Text      string          `json:"text,omitempty"`      // for "text"
	Anchor    document.Anchor `json:"anchor,omitempty"`    // for "text"
	Height    int             `json:"height,omitempty"`    // image height
	At        *geom.Point     `json:"at,omitempty"`        // for "marker"
	Marker    document.Marker `json:"marker,omitempty"`    // for "marker"
	Bounds    *geom.BBox      `json:"bounds,omitempty"`    // for "text" and "image"
	Param     string          `json:"param,omitempty"`     // parameter key for indicator markers
	Value     string          `json:"value,omitempty"`     // parameter value for indicator markers
	ImageKey  string          `json:"imageKey,omitempty"`  // for "image"
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		commands = []DrawCommand{}
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// BBoxToJSON serializes a box as x/y/width/height.
func BBoxToJSON(b geom.BBox) string {
	if b.IsEmpty() {
		b = geom.BBox{}
	}
	data, _ := json.Marshal(map[string]int{
		"x":      b.LowerLeft.X,
		"y":      b.LowerLeft.Y,
		"width":  b.Width,
		"height": b.Height,
	})
	return string(data)
}
