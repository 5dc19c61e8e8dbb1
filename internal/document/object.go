package document

import (
	"log/slog"

	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

// ID is the registry handle of an object. Instances and schematic/symbol
// associations hold IDs, never pointers.
type ID string

// SchemType says what role an object plays in the schematic hierarchy.
type SchemType uint8

const (
	SchemPrimary SchemType = iota
	SchemSecondary
	SchemTrivial
	SchemSymbol
	SchemFundamental
	SchemNonNetwork
	SchemGlyph
)

func (t SchemType) String() string {
	switch t {
	case SchemPrimary:
		return "primary"
	case SchemSecondary:
		return "secondary"
	case SchemTrivial:
		return "trivial"
	case SchemSymbol:
		return "symbol"
	case SchemFundamental:
		return "fundamental"
	case SchemNonNetwork:
		return "nonnetwork"
	case SchemGlyph:
		return "glyph"
	default:
		return "unknown"
	}
}

// Object is a named, reusable cell: a list of elements plus the parameters
// its instances may override.
//
// BBox covers every element except info labels, whose extent is kept in
// SchemBBox so that annotations do not inflate the symbol outline.
type Object struct {
	ID        ID
	Name      string
	Parts     List
	Params    []*ObjectParam
	BBox      geom.BBox
	SchemBBox geom.BBox
	Symschem  ID
	SchemType SchemType
	// Library objects may hold placeholder slots for instances that live
	// in their instancer.
	Library bool

	pins      []*Label
	netsValid bool
}

// NewObject returns an empty object. Callers normally go through
// Registry.New, which also assigns the ID.
func NewObject(name string) *Object {
	return &Object{
		Name:      name,
		BBox:      geom.EmptyBBox(),
		SchemBBox: geom.EmptyBBox(),
	}
}

// Add appends e and returns its index.
func (o *Object) Add(e Element) int {
	o.InvalidateNets()
	return o.Parts.Append(e)
}

// Remove deletes element i and returns it.
func (o *Object) Remove(i int) Element {
	o.InvalidateNets()
	return o.Parts.Remove(i)
}

// Clear destroys every element. Unlike List.Clear the elements are not
// expected to have another owner.
func (o *Object) Clear() {
	o.Parts = List{}
	o.InvalidateNets()
	o.BBox = geom.EmptyBBox()
	o.SchemBBox = geom.EmptyBBox()
}

// AddParam declares p, replacing an existing declaration with the same key.
func (o *Object) AddParam(p *ObjectParam) {
	for i, q := range o.Params {
		if q.Key == p.Key {
			o.Params[i] = p.clone()
			return
		}
	}
	o.Params = append(o.Params, p.clone())
}

// MatchParam returns the declaration for key, or nil.
func (o *Object) MatchParam(key string) *ObjectParam {
	return findObjectParam(o.Params, key)
}

// RemoveParam drops the declaration for key and detaches it from every
// element. It reports whether the key was declared.
func (o *Object) RemoveParam(key string) bool {
	for i, q := range o.Params {
		if q.Key != key {
			continue
		}
		o.Params = append(o.Params[:i], o.Params[i+1:]...)
		for _, e := range o.Parts.All() {
			e.RemoveParam(key)
		}
		return true
	}
	return false
}

// Copy deep-clones the elements and parameters. The copy keeps the same
// ID; callers adding it to a registry must assign a new one.
func (o *Object) Copy() *Object {
	cp := *o
	cp.Parts = o.Parts.Copy()
	cp.Params = copyObjectParams(o.Params)
	cp.pins = nil
	cp.netsValid = false
	return &cp
}

// Equal reports whether both objects have the same parameters and the same
// elements in any order. Elements are matched greedily: each element of o
// takes the first unused candidate of other with the same color that it
// equals. A symbol/schematic association only matters when both sides set
// one.
func (o *Object) Equal(other *Object) bool {
	if o.Parts.Len() != other.Parts.Len() {
		return false
	}
	if !sameParamSet(o.Params, other.Params) {
		return false
	}

	used := make([]bool, other.Parts.Len())
	for i := range o.Parts.Len() {
		a := o.Parts.Slot(i)
		found := false
		for j := range other.Parts.Len() {
			if used[j] {
				continue
			}
			b := other.Parts.Slot(j)
			if a.IsExternal() || b.IsExternal() {
				if a.IsExternal() && b.IsExternal() {
					used[j], found = true, true
					break
				}
				continue
			}
			if a.elem.Color() == b.elem.Color() && a.elem.Equal(b.elem) {
				used[j], found = true, true
				break
			}
		}
		if !found {
			return false
		}
	}

	if o.Symschem != "" && other.Symschem != "" && o.Symschem != other.Symschem {
		return false
	}
	return true
}

// Find returns the index of the first element of o that is an instance of
// target or contains one further down the hierarchy, or -1. Objects already
// visited are not searched again, so cyclic instancing terminates.
func (o *Object) Find(reg *Registry, target ID) int {
	visited := map[ID]bool{o.ID: true}
	for i, inst := range Each[*Instance](&o.Parts) {
		if inst.Ref == target {
			return i
		}
		if reg != nil && containsInstanceOf(reg, inst.Ref, target, visited) {
			return i
		}
	}
	return -1
}

func containsInstanceOf(reg *Registry, id, target ID, visited map[ID]bool) bool {
	if visited[id] {
		return false
	}
	visited[id] = true
	obj, err := reg.Lookup(id)
	if err != nil {
		slog.Debug("find: dangling instance", "object", id, "error", err)
		return false
	}
	for _, inst := range Each[*Instance](&obj.Parts) {
		if inst.Ref == target || containsInstanceOf(reg, inst.Ref, target, visited) {
			return true
		}
	}
	return false
}

// CalcBBox recomputes BBox and SchemBBox with the declared parameter
// values in effect.
func (o *Object) CalcBBox(env *Env) {
	if err := Substitute(env, o, nil); err != nil {
		slog.Warn("calc bbox: parameter substitution failed", "object", o.Name, "error", err)
	}
	o.BBox, o.SchemBBox = o.ComputeBBox(env, nil)
}

// ComputeBBox returns the element box and the info-label box as seen by
// caller, without storing them.
func (o *Object) ComputeBBox(env *Env, caller *Instance) (box, schem geom.BBox) {
	box, schem = geom.EmptyBBox(), geom.EmptyBBox()
	for _, e := range o.Parts.All() {
		c := CornersBBox(e.BBox(env, 1, 0, caller))
		if l, ok := e.(*Label); ok && l.Pin == PinInfo {
			schem = schem.Union(c)
			continue
		}
		box = box.Union(c)
	}
	return box, schem
}

// Pins returns the object's pin labels, building the list on first use
// after a structural change.
func (o *Object) Pins() []*Label {
	if o.netsValid {
		return o.pins
	}
	o.pins = o.pins[:0]
	for _, l := range Each[*Label](&o.Parts) {
		if l.IsPin() {
			o.pins = append(o.pins, l)
		}
	}
	o.netsValid = true
	return o.pins
}

// InvalidateNets drops the connectivity cache.
func (o *Object) InvalidateNets() {
	o.netsValid = false
	o.pins = nil
}
