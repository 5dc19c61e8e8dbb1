package document

import (
	"math"

	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// Snap describes the editor's snapping mode for rescale drags.
type Snap struct {
	On        bool
	GridSpace float32
	SnapSpace float32
}

// step is the number of scale increments per unit of scale.
func (s Snap) step() float32 {
	if s.SnapSpace == 0 {
		return 1
	}
	return 2 * s.GridSpace / s.SnapSpace
}

// RescaleFromCorner returns the scale that moves the nearest edge of box
// onto corner, where box is the element's outline at scale and anchor is
// the point that stays fixed. A corner outside the box grows the element.
//
// Growth is capped at ten times scale. With snapping on the result is
// rounded to the snap step and never falls below one step; otherwise it
// never falls below a tenth of scale.
func RescaleFromCorner(corner geom.Point, box [4]geom.Point, anchor geom.Point, scale float32, snap Snap) float32 {
	minDist := math.Inf(1)
	for i := range box {
		d := geom.SegmentDistance(box[i], box[(i+1)%4], corner)
		if d < minDist {
			minDist = d
		}
	}
	if !geom.InsideQuad(corner, box) {
		minDist = -minDist
	}

	refDist := geom.Distance(corner, anchor)
	if refDist == minDist {
		refDist = 1 - minDist
	}

	newScale := float32(math.Abs(float64(scale) * refDist / (refDist + minDist)))
	if newScale > 10*scale {
		newScale = 10 * scale
	}

	if snap.On {
		step := snap.step()
		newScale = float32(math.Round(float64(newScale*step))) / step
		if newScale < 1/step {
			newScale = 1 / step
		}
	} else if newScale < 0.1*scale {
		newScale = 0.1 * scale
	}
	return newScale
}

// Rescale sets the scale of a positionable element so that its outline
// reaches corner, anchored at the element's position, and returns the new
// scale.
func Rescale(env *Env, e Positionable, corner geom.Point, snap Snap, caller *Instance) float32 {
	p := e.Place()
	box := e.BBox(env, 1, 0, caller)
	p.Scale = RescaleFromCorner(corner, box, p.Position, p.Scale, snap)
	return p.Scale
}
