// Package keybind resolves key presses to editor functions.
//
// A Table holds bindings from (window, key) to a function and an optional
// value. Bindings for a specific window take precedence over bindings for
// all windows; among equally specific bindings the most recently added one
// wins.
package keybind

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
)

var ErrBindingNotFound = errors.New("binding not found")

// Window identifies the window a binding applies to.
type Window = uuid.UUID

// AllWindows is the wildcard window.
var AllWindows = uuid.Nil

// Unspecified is the binding value that matches any value.
const Unspecified = -1

// Binding maps a key in a window to a function. Value carries an argument
// such as a rotation angle or page number, or Unspecified.
type Binding struct {
	Window   Window   `json:"window"`
	Key      KeyState `json:"-"`
	KeyName  string   `json:"key"`
	Function Function `json:"-"`
	FuncName string   `json:"function"`
	Value    int      `json:"value"`
}

func newBinding(w Window, ks KeyState, f Function, value int) *Binding {
	return &Binding{
		Window:   w,
		Key:      ks,
		KeyName:  ks.String(),
		Function: f,
		FuncName: f.String(),
		Value:    value,
	}
}

func (b *Binding) windowMatches(w Window) bool {
	return b.Window == AllWindows || b.Window == w
}

func valuesMatch(a, b int) bool {
	return a == Unspecified || b == Unspecified || a == b
}

// Table is a list of bindings, newest first. It is safe for concurrent use.
type Table struct {
	mu       sync.RWMutex
	bindings []*Binding
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.bindings)
}

// Bindings returns a copy of every binding, newest first.
func (t *Table) Bindings() []Binding {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Binding, len(t.bindings))
	for i, b := range t.bindings {
		out[i] = *b
	}
	return out
}

// BoundFunction returns the function and value bound to ks in window w.
// A binding for w is preferred over an all-windows binding. It returns
// NoFunction and Unspecified when nothing is bound.
func (t *Table) BoundFunction(w Window, ks KeyState) (Function, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var wild *Binding
	for _, b := range t.bindings {
		if b.Key != ks {
			continue
		}
		if b.Window == w && w != AllWindows {
			return b.Function, b.Value
		}
		if wild == nil && b.Window == AllWindows {
			wild = b
		}
	}
	if wild == nil {
		return NoFunction, Unspecified
	}
	return wild.Function, wild.Value
}

// IsBound reports whether ks is bound to f in w with a compatible value.
// Unspecified on either side matches any value.
func (t *Table) IsBound(w Window, ks KeyState, f Function, value int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.find(w, ks, f, value) >= 0
}

func (t *Table) find(w Window, ks KeyState, f Function, value int) int {
	for i, b := range t.bindings {
		if b.windowMatches(w) && b.Key == ks && b.Function == f && valuesMatch(b.Value, value) {
			return i
		}
	}
	return -1
}

// AddBinding binds ks to f in w. It reports false, changing nothing, if an
// equivalent binding already exists.
func (t *Table) AddBinding(w Window, ks KeyState, f Function, value int) (bool, error) {
	if !f.Valid() {
		return false, fmt.Errorf("function %d: %w", f, ErrUnknownFunction)
	}
	if ks.IsZero() {
		return false, fmt.Errorf("empty key: %w", ErrUnknownKey)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.find(w, ks, f, value) >= 0 {
		slog.Debug("keybind: binding exists", "key", ks.String(), "function", f.String())
		return false, nil
	}
	t.bindings = slices.Insert(t.bindings, 0, newBinding(w, ks, f, value))
	return true, nil
}

// AddBindingNames is AddBinding with key and function given by name.
func (t *Table) AddBindingNames(w Window, keyName, funcName string, value int) (bool, error) {
	ks, err := ParseKey(keyName)
	if err != nil {
		return false, err
	}
	f, err := ParseFunction(funcName)
	if err != nil {
		return false, err
	}
	return t.AddBinding(w, ks, f, value)
}

// RemoveBinding removes the first binding of ks to f usable in w.
func (t *Table) RemoveBinding(w Window, ks KeyState, f Function) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.find(w, ks, f, Unspecified)
	if i < 0 {
		return fmt.Errorf("%s -> %s: %w", ks, f, ErrBindingNotFound)
	}
	t.bindings = slices.Delete(t.bindings, i, i+1)
	return nil
}

// BindingsFor returns the keys bound to f in w, newest first.
func (t *Table) BindingsFor(w Window, f Function) []KeyState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []KeyState
	for _, b := range t.bindings {
		if b.Function == f && b.windowMatches(w) && !slices.Contains(out, b.Key) {
			out = append(out, b.Key)
		}
	}
	return out
}

// FunctionKeys returns the names of the keys bound to f in w, joined with
// ", ", or "(unbound)".
func (t *Table) FunctionKeys(w Window, f Function) string {
	keys := t.BindingsFor(w, f)
	if len(keys) == 0 {
		return "(unbound)"
	}
	out := keys[0].String()
	for _, k := range keys[1:] {
		out += ", " + k.String()
	}
	return out
}
