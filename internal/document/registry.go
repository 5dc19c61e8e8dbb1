package document

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
	"github.com/snmishra/xcircuit-qt-sub002/internal/typeid"
)

var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrObjectInUse        = errors.New("object is instanced")
	ErrDuplicateObject    = errors.New("object already registered")
	ErrInvalidAssociation = errors.New("inconsistent symbol/schematic association")
	ErrParamNotFound      = errors.New("parameter not found")
)

// Registry owns every object and resolves the IDs instances refer to.
// Removing an object that is still instanced is refused, so a lookup
// through a live instance can only fail for an ID that was never added.
type Registry struct {
	objects map[ID]*Object
}

func NewRegistry() *Registry {
	return &Registry{objects: make(map[ID]*Object)}
}

// New creates, registers and returns an empty library object.
func (r *Registry) New(name string) *Object {
	o := NewObject(name)
	o.ID = ID(typeid.NewObjectID())
	r.objects[o.ID] = o
	return o
}

// NewPage creates, registers and returns an empty top-level page.
func (r *Registry) NewPage(name string) *Object {
	o := NewObject(name)
	o.ID = ID(typeid.NewPageID())
	r.objects[o.ID] = o
	return o
}

// Add registers o, minting an object ID if it has none.
func (r *Registry) Add(o *Object) error {
	if o.ID == "" {
		o.ID = ID(typeid.NewObjectID())
	}
	if err := validateID(o.ID); err != nil {
		return err
	}
	if _, ok := r.objects[o.ID]; ok {
		return fmt.Errorf("add %s: %w", o.ID, ErrDuplicateObject)
	}
	r.objects[o.ID] = o
	return nil
}

// Lookup resolves id.
func (r *Registry) Lookup(id ID) (*Object, error) {
	if o, ok := r.objects[id]; ok {
		return o, nil
	}
	if err := validateID(id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("lookup %s: %w", id, ErrObjectNotFound)
}

func validateID(id ID) error {
	prefix, err := typeid.Prefix(string(id))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	}
	if prefix != typeid.PrefixObject && prefix != typeid.PrefixPage {
		return fmt.Errorf("%w: id %q has prefix %q", ErrObjectNotFound, id, prefix)
	}
	return nil
}

// Remove unregisters id. It fails with ErrObjectInUse while any other
// object still instances it. The association partner, if any, is
// released.
func (r *Registry) Remove(id ID) error {
	o, err := r.Lookup(id)
	if err != nil {
		return err
	}
	for _, other := range r.objects {
		if other.ID == id {
			continue
		}
		for _, inst := range Each[*Instance](&other.Parts) {
			if inst.Ref == id {
				return fmt.Errorf("remove %s: used by %s: %w", id, other.Name, ErrObjectInUse)
			}
		}
	}
	if partner, ok := r.objects[o.Symschem]; ok && partner.Symschem == id {
		partner.Symschem = ""
	}
	delete(r.objects, id)
	return nil
}

// Len returns the number of registered objects.
func (r *Registry) Len() int { return len(r.objects) }

// Objects returns every object ordered by name, then ID.
func (r *Registry) Objects() []*Object {
	out := make([]*Object, 0, len(r.objects))
	for _, o := range r.objects {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b *Object) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// Associate links a symbol with its schematic in both directions. Earlier
// partners of either side are unlinked first.
func (r *Registry) Associate(symbol, schematic ID) error {
	sym, err := r.Lookup(symbol)
	if err != nil {
		return err
	}
	sch, err := r.Lookup(schematic)
	if err != nil {
		return err
	}
	if symbol == schematic {
		return fmt.Errorf("associate %s with itself: %w", symbol, ErrInvalidAssociation)
	}
	r.unlink(sym)
	r.unlink(sch)
	sym.Symschem = schematic
	sym.SchemType = SchemSymbol
	sch.Symschem = symbol
	if sch.SchemType == SchemSymbol {
		sch.SchemType = SchemPrimary
	}
	return nil
}

// unlink clears o's partner and the partner's link back to o.
func (r *Registry) unlink(o *Object) {
	if o.Symschem == "" {
		return
	}
	if partner, err := r.Lookup(o.Symschem); err == nil && partner.Symschem == o.ID {
		partner.Symschem = ""
	}
	o.Symschem = ""
}

// CheckAssociation verifies that when id names a partner, the partner
// exists and names id back.
func (r *Registry) CheckAssociation(id ID) error {
	o, err := r.Lookup(id)
	if err != nil {
		return err
	}
	if o.Symschem == "" {
		return nil
	}
	partner, err := r.Lookup(o.Symschem)
	if err != nil {
		return fmt.Errorf("%s: partner %s: %w", id, o.Symschem, ErrInvalidAssociation)
	}
	if partner.Symschem != "" && partner.Symschem != id {
		return fmt.Errorf("%s -> %s -> %s: %w", id, partner.ID, partner.Symschem, ErrInvalidAssociation)
	}
	return nil
}

// Instantiate returns a new instance of id placed at at.
func (r *Registry) Instantiate(id ID, at geom.Point) (*Instance, error) {
	o, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	inst := NewInstance(o.ID, at)
	inst.bbox = o.BBox
	return inst, nil
}
