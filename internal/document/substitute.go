package document

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// Substitute writes the parameter values seen by inst into the fields of
// obj's elements that are bound to them. Overrides on inst win over the
// object's declarations; a nil inst restores the declared values. Values
// bound through a forwarding parameter become overrides on the nested
// instance.
//
// The object is left holding inst's values until the next call, so callers
// must substitute again before drawing or measuring for another instance.
func Substitute(env *Env, obj *Object, inst *Instance) error {
	if len(obj.Params) == 0 {
		return nil
	}
	for _, e := range obj.Parts.All() {
		eparams := e.Params()
		if len(eparams) == 0 {
			continue
		}
		for _, ep := range eparams {
			value := obj.MatchParam(ep.Key)
			if inst != nil {
				value = inst.ParamValue(obj, ep.Key)
			}
			if value == nil {
				slog.Debug("substitute: unbound parameter", "object", obj.Name, "key", ep.Key)
				continue
			}
			if err := applyParam(env, e, ep, value, inst); err != nil {
				return fmt.Errorf("substitute %q in %s: %w", ep.Key, obj.Name, err)
			}
		}
		switch v := e.(type) {
		case *Arc:
			v.Calc()
		case *Spline:
			v.Calc()
		case *Path:
			for _, sub := range v.Parts.All() {
				switch s := sub.(type) {
				case *Arc:
					s.Calc()
				case *Spline:
					s.Calc()
				}
			}
		}
	}
	return nil
}

func applyParam(env *Env, e Element, ep *ElementParam, value *ObjectParam, inst *Instance) error {
	if ep.Target.Kind == TargetRef {
		nested, ok := e.(*Instance)
		if !ok {
			return fmt.Errorf("forwarding parameter on %s", e.Kind())
		}
		fwd := value.clone()
		fwd.Key = ep.Target.Ref
		nested.SetParam(fwd)
		return nil
	}

	switch value.Which {
	case PropSubstring:
		// Label text is expanded against the calling instance when drawn.
		return nil
	case PropColor:
		v, err := value.Number(env, inst)
		if err != nil {
			return err
		}
		e.SetColor(Color(int(v)))
		return nil
	}

	v, err := value.Number(env, inst)
	if err != nil {
		return err
	}
	return setProperty(e, ep.Target, value.Which, v)
}

func setProperty(e Element, t ParamTarget, which Property, v float64) error {
	n := int(math.Round(v))
	switch which {
	case PropPositionX, PropPositionY:
		return setCoord(e, t, which == PropPositionX, v)
	case PropRotation:
		if p, ok := e.(Positionable); ok {
			p.Place().Rotation = n
			return nil
		}
	case PropScale:
		if p, ok := e.(Positionable); ok {
			p.Place().Scale = float32(v)
			return nil
		}
	case PropAnchor:
		if l, ok := e.(*Label); ok {
			l.Anchor = Anchor(n)
			return nil
		}
	case PropStyle:
		if s := styleOf(e); s != nil {
			*s = Style(n)
			return nil
		}
	case PropLineWidth:
		if w := widthOf(e); w != nil {
			*w = float32(v)
			return nil
		}
	case PropAngle1, PropAngle2, PropRadius, PropMinorAxis:
		a, ok := e.(*Arc)
		if !ok {
			break
		}
		switch which {
		case PropAngle1:
			a.Angle1 = float32(v)
		case PropAngle2:
			a.Angle2 = float32(v)
		case PropRadius:
			a.Radius = n
		case PropMinorAxis:
			a.YAxis = n
		}
		return nil
	case PropNumeric:
		return nil
	}
	return fmt.Errorf("%s cannot take %s", e.Kind(), which)
}

func setCoord(e Element, t ParamTarget, isX bool, v float64) error {
	n := int(math.Round(v))
	set := func(p *geom.Point) {
		if isX {
			p.X = n
		} else {
			p.Y = n
		}
	}
	setF := func(p *geom.FPoint) {
		if isX {
			p.X = float32(v)
		} else {
			p.Y = float32(v)
		}
	}

	if t.Kind == TargetPathPoint {
		path, ok := e.(*Path)
		if !ok || t.Part >= path.Parts.Len() {
			return fmt.Errorf("no path part %d", t.Part)
		}
		sub := path.Parts.At(t.Part)
		if sub == nil {
			return fmt.Errorf("no path part %d", t.Part)
		}
		return setCoord(sub, ParamTarget{Kind: TargetPoint, Point: t.Point}, isX, v)
	}

	switch x := e.(type) {
	case *Polygon:
		if t.Point < 0 || t.Point >= len(x.Points) {
			return fmt.Errorf("no polygon point %d", t.Point)
		}
		set(&x.Points[t.Point])
	case *Spline:
		if t.Point < 0 || t.Point >= len(x.Ctrl) {
			return fmt.Errorf("no spline point %d", t.Point)
		}
		setF(&x.Ctrl[t.Point])
	case *Arc:
		set(&x.Position)
	case Positionable:
		set(&x.Place().Position)
	default:
		return fmt.Errorf("%s has no position", e.Kind())
	}
	return nil
}

func styleOf(e Element) *Style {
	switch x := e.(type) {
	case *Polygon:
		return &x.Style
	case *Arc:
		return &x.Style
	case *Spline:
		return &x.Style
	case *Path:
		return &x.Style
	}
	return nil
}

func widthOf(e Element) *float32 {
	switch x := e.(type) {
	case *Polygon:
		return &x.Width
	case *Arc:
		return &x.Width
	case *Spline:
		return &x.Width
	case *Path:
		return &x.Width
	}
	return nil
}
