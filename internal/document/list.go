package document

import (
	"fmt"
	"iter"
	"slices"
)

// Slot is one entry of a List: either an owned element or a placeholder
// for an instance that lives in its instancer (library definitions only).
type Slot struct {
	elem     Element
	external bool
}

// Owned wraps e as an owned slot.
func Owned(e Element) Slot {
	if e == nil {
		panic("document: owned slot with nil element")
	}
	return Slot{elem: e}
}

// External returns the externally-referenced placeholder slot.
func External() Slot {
	return Slot{external: true}
}

// IsExternal reports whether the slot is a placeholder.
func (s Slot) IsExternal() bool { return s.external }

// Element returns the owned element, or false for a placeholder.
func (s Slot) Element() (Element, bool) {
	return s.elem, !s.external
}

// List is the ordered, owning container of an object's elements. Order is
// z-order for drawing and the order of selection indices.
//
// Appends return the index of the new slot, which stays valid until an
// element before it is removed.
type List struct {
	slots []Slot
	parts int
}

// Len returns the logical length. Slots added with TempAppend are not
// counted until Commit.
func (l *List) Len() int { return l.parts }

// Append takes ownership of e and returns its index. Any pending
// TempAppend slots become part of the list first.
func (l *List) Append(e Element) int {
	l.slots = append(l.slots, Owned(e))
	l.parts = len(l.slots)
	return l.parts - 1
}

// AppendExternal adds a placeholder slot.
func (l *List) AppendExternal() int {
	l.slots = append(l.slots, External())
	l.parts = len(l.slots)
	return l.parts - 1
}

// TempAppend grows storage by one owned slot without counting it in Len.
// The element is reachable through Pending until Commit or Discard.
func (l *List) TempAppend(e Element) int {
	l.slots = append(l.slots, Owned(e))
	return len(l.slots) - 1
}

// Pending returns the slots added by TempAppend and not yet committed.
func (l *List) Pending() []Element {
	var out []Element
	for _, s := range l.slots[l.parts:] {
		out = append(out, s.elem)
	}
	return out
}

// Commit makes every pending slot part of the list.
func (l *List) Commit() {
	l.parts = len(l.slots)
}

// Discard drops pending slots.
func (l *List) Discard() {
	clear(l.slots[l.parts:])
	l.slots = l.slots[:l.parts]
}

// ReplaceLast destroys the last element and installs e in its slot.
func (l *List) ReplaceLast(e Element) {
	if l.parts == 0 {
		panic("document: ReplaceLast on empty list")
	}
	l.slots[l.parts-1] = Owned(e)
}

// TakeLast removes the last committed slot and returns its element to the
// caller without destroying it. Pending slots stay pending. Placeholders
// return nil.
func (l *List) TakeLast() Element {
	if l.parts == 0 {
		return nil
	}
	s := l.slots[l.parts-1]
	l.slots = slices.Delete(l.slots, l.parts-1, l.parts)
	l.parts--
	return s.elem
}

// Clear releases storage without touching the elements; ownership must
// already have moved elsewhere.
func (l *List) Clear() {
	l.slots = nil
	l.parts = 0
}

// Slot returns the slot at i.
func (l *List) Slot(i int) Slot {
	l.check(i)
	return l.slots[i]
}

// At returns the owned element at i, or nil for a placeholder.
func (l *List) At(i int) Element {
	l.check(i)
	return l.slots[i].elem
}

// Set replaces the element at i.
func (l *List) Set(i int, e Element) {
	l.check(i)
	l.slots[i] = Owned(e)
}

// Remove deletes slot i and returns its element.
func (l *List) Remove(i int) Element {
	l.check(i)
	e := l.slots[i].elem
	copy(l.slots[i:], l.slots[i+1:])
	l.slots[len(l.slots)-1] = Slot{}
	l.slots = l.slots[:len(l.slots)-1]
	l.parts--
	return e
}

// Index returns the position of e by identity, or -1.
func (l *List) Index(e Element) int {
	for i, s := range l.slots[:l.parts] {
		if !s.external && s.elem == e {
			return i
		}
	}
	return -1
}

// Raise moves element i to the end (drawn last, on top).
func (l *List) Raise(i int) {
	l.check(i)
	s := l.slots[i]
	copy(l.slots[i:l.parts-1], l.slots[i+1:l.parts])
	l.slots[l.parts-1] = s
}

// Lower moves element i to the front (drawn first, underneath).
func (l *List) Lower(i int) {
	l.check(i)
	s := l.slots[i]
	copy(l.slots[1:i+1], l.slots[:i])
	l.slots[0] = s
}

func (l *List) check(i int) {
	if i < 0 || i >= l.parts {
		panic(fmt.Sprintf("document: list index %d out of range [0,%d)", i, l.parts))
	}
}

// All yields every owned element with its index, skipping placeholders.
func (l *List) All() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		for i, s := range l.slots[:l.parts] {
			if s.external {
				continue
			}
			if !yield(i, s.elem) {
				return
			}
		}
	}
}

// OfKind yields the owned elements whose kind tag is k.
func (l *List) OfKind(k Kind) iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		for i, e := range l.All() {
			if e.Kind() != k {
				continue
			}
			if !yield(i, e) {
				return
			}
		}
	}
}

// Each yields the owned elements of variant T with their indices.
func Each[T Element](l *List) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range l.All() {
			t, ok := e.(T)
			if !ok {
				continue
			}
			if !yield(i, t) {
				return
			}
		}
	}
}

// Copy deep-clones every element; placeholders stay placeholders.
func (l *List) Copy() List {
	out := List{slots: make([]Slot, l.parts), parts: l.parts}
	for i, s := range l.slots[:l.parts] {
		if s.external {
			out.slots[i] = External()
			continue
		}
		out.slots[i] = Owned(s.elem.Copy())
	}
	return out
}

// Equal compares element by element, in order.
func (l *List) Equal(o *List) bool {
	if l.parts != o.parts {
		return false
	}
	for i := range l.parts {
		a, b := l.slots[i], o.slots[i]
		if a.external != b.external {
			return false
		}
		if a.external {
			continue
		}
		if a.elem.Color() != b.elem.Color() || !a.elem.Equal(b.elem) {
			return false
		}
	}
	return true
}
