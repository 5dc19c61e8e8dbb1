package document

import (
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// Instance places an object. It refers to the object by ID and never owns
// it; the registry must keep the object alive while instances point at it.
//
// Overrides replace the object's declared parameter values for this
// placement only.
type Instance struct {
	Generic
	Placement
	Ref       ID
	Overrides []*ObjectParam

	bbox    geom.BBox
	ownBBox bool
}

// NewInstance places the object ref at the given point.
func NewInstance(ref ID, at geom.Point) *Instance {
	return &Instance{
		Generic:   newGeneric(KindInstance),
		Placement: defaultPlacement(at),
		Ref:       ref,
		bbox:      geom.EmptyBBox(),
	}
}

// SetParam overrides a parameter for this placement. The instance's cached
// box is stale until the next CalcBBox.
func (in *Instance) SetParam(p *ObjectParam) {
	for i, q := range in.Overrides {
		if q.Key == p.Key {
			in.Overrides[i] = p.clone()
			return
		}
	}
	in.Overrides = append(in.Overrides, p.clone())
}

// ClearParam removes an override and reports whether one existed.
func (in *Instance) ClearParam(key string) bool {
	for i, q := range in.Overrides {
		if q.Key == key {
			in.Overrides = append(in.Overrides[:i], in.Overrides[i+1:]...)
			return true
		}
	}
	return false
}

// Override returns the override for key, or nil.
func (in *Instance) Override(key string) *ObjectParam {
	return findObjectParam(in.Overrides, key)
}

// ParamValue returns the override for key if there is one, otherwise the
// declaration on obj.
func (in *Instance) ParamValue(obj *Object, key string) *ObjectParam {
	if p := in.Override(key); p != nil {
		return p
	}
	return obj.MatchParam(key)
}

func (in *Instance) stringParam(obj *Object) func(key string) (string, bool) {
	return func(key string) (string, bool) {
		p := in.Override(key)
		if p == nil && obj != nil {
			p = obj.MatchParam(key)
		}
		if p == nil {
			return "", false
		}
		return p.Text(), true
	}
}

// NeedsOwnBBox reports whether an override can change the geometry of the
// placed object, so the object's shared box does not apply.
func (in *Instance) NeedsOwnBBox(obj *Object) bool {
	for _, p := range in.Overrides {
		decl := obj.MatchParam(p.Key)
		if decl != nil && decl.Which.Geometric() && !decl.Equal(p) {
			return true
		}
	}
	return false
}

// LocalBBox returns the box in the referenced object's coordinates: the
// instance's own box when overrides affect geometry, else the object's.
func (in *Instance) LocalBBox(env *Env) geom.BBox {
	if in.ownBBox {
		return in.bbox
	}
	if env == nil || env.Objects == nil {
		return in.bbox
	}
	obj, err := env.Objects.Lookup(in.Ref)
	if err != nil {
		return in.bbox
	}
	return obj.BBox
}

// CalcBBox refreshes the cached box, substituting this instance's
// parameters when they change the object's geometry. The object's elements
// are left holding this instance's values.
func (in *Instance) CalcBBox(env *Env) error {
	obj, err := env.Objects.Lookup(in.Ref)
	if err != nil {
		return err
	}
	if !in.NeedsOwnBBox(obj) {
		in.ownBBox = false
		in.bbox = obj.BBox
		return nil
	}
	if err := Substitute(env, obj, in); err != nil {
		return err
	}
	in.bbox, _ = obj.ComputeBBox(env, in)
	in.ownBBox = true
	return Substitute(env, obj, nil)
}

func (in *Instance) Copy() Element {
	return &Instance{
		Generic:   in.copyGeneric(),
		Placement: in.Placement,
		Ref:       in.Ref,
		Overrides: copyObjectParams(in.Overrides),
		bbox:      in.bbox,
		ownBBox:   in.ownBBox,
	}
}

// Equal compares the referenced object's identity, the placement and the
// overrides; it never descends into the object.
func (in *Instance) Equal(other Element) bool {
	o, ok := other.(*Instance)
	if !ok {
		return false
	}
	return in.Ref == o.Ref && in.Placement.equal(o.Placement) &&
		sameParamSet(in.Overrides, o.Overrides)
}

func (in *Instance) BBox(env *Env, _ float32, extend int, _ *Instance) [4]geom.Point {
	box := in.LocalBBox(env)
	if box.IsEmpty() {
		box = geom.BBox{}
	}
	return transformCorners(box.Extend(extend).Corners(), &in.Placement)
}

// Draw is a no-op: instances are drawn by the traversal, which owns the
// transform stack and color inheritance.
func (in *Instance) Draw(DrawContext) {}

func (in *Instance) Indicate(dc DrawContext, _ *ElementParam, _ *ObjectParam) {
	dc.Marker(in.Position, MarkerParam)
}
