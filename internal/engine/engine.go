package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/snmishra/xcircuit-qt-sub002/internal/document"
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

var (
	ErrNotInstance     = errors.New("element is not an object instance")
	ErrNotPositionable = errors.New("element has no position or scale")
	ErrNothingSelected = errors.New("nothing selected")
	ErrIndexOutOfRange = errors.New("element index out of range")
	ErrNotArc          = errors.New("element is not an arc")
)

// Options are the editor settings the engine draws and edits with.
type Options struct {
	Snap        document.Snap
	PinPointOn  bool
	EditInPlace bool
	// View is the visible part of the page. A box without area, including
	// the zero value, disables culling.
	View geom.BBox
}

// Engine owns the editing state of one window: the page, the push stack of
// entered instances, the selection and the cached display list.
type Engine struct {
	env  *document.Env
	page *document.Object
	top  *document.Instance

	// stack holds the entered instances, outermost first.
	stack []*document.Instance

	opts      Options
	selection []int

	commands []DrawCommand
	dirty    bool
}

// New creates an engine showing page. env.Objects must contain page.
func New(env *document.Env, page document.ID, opts Options) (*Engine, error) {
	obj, err := env.Objects.Lookup(page)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	e := &Engine{
		env:   env,
		page:  obj,
		top:   document.NewInstance(obj.ID, geom.Point{}),
		opts:  opts,
		dirty: true,
	}
	if err := e.Recalc(); err != nil {
		return nil, err
	}
	return e, nil
}

// Page returns the top-level object.
func (e *Engine) Page() *document.Object { return e.page }

// Env returns the collaborators the engine draws with.
func (e *Engine) Env() *document.Env { return e.env }

// Options returns the current settings.
func (e *Engine) Options() Options { return e.opts }

// SetView changes the visible area.
func (e *Engine) SetView(view geom.BBox) {
	e.opts.View = view
	e.dirty = true
}

// SetPinPointOn toggles pin X markers in nested instances.
func (e *Engine) SetPinPointOn(on bool) {
	e.opts.PinPointOn = on
	e.dirty = true
}

// SetEditInPlace toggles drawing the surrounding page while pushed.
func (e *Engine) SetEditInPlace(on bool) {
	e.opts.EditInPlace = on
	e.dirty = true
}

// MarkDirty forces the next Render to rebuild the display list. Callers
// that edit objects directly must call it.
func (e *Engine) MarkDirty() {
	e.dirty = true
}

// --- Navigation ---

// Current returns the object being edited: the one referenced by the
// innermost entered instance, or the page.
func (e *Engine) Current() *document.Object {
	if len(e.stack) == 0 {
		return e.page
	}
	obj, err := e.env.Objects.Lookup(e.stack[len(e.stack)-1].Ref)
	if err != nil {
		return e.page
	}
	return obj
}

func (e *Engine) caller() *document.Instance {
	if len(e.stack) == 0 {
		return nil
	}
	return e.stack[len(e.stack)-1]
}

// Depth returns the number of entered instances.
func (e *Engine) Depth() int { return len(e.stack) }

// Push enters the instance at index of the current object.
func (e *Engine) Push(index int) error {
	cur := e.Current()
	if index < 0 || index >= cur.Parts.Len() {
		return fmt.Errorf("push %d: %w", index, ErrIndexOutOfRange)
	}
	inst, ok := cur.Parts.At(index).(*document.Instance)
	if !ok {
		return fmt.Errorf("push %d: %w", index, ErrNotInstance)
	}
	if _, err := e.env.Objects.Lookup(inst.Ref); err != nil {
		return fmt.Errorf("push %d: %w", index, err)
	}
	e.stack = append(e.stack, inst)
	e.selection = nil
	e.dirty = true
	return nil
}

// Pop leaves the innermost entered instance. It reports false at the top.
func (e *Engine) Pop() bool {
	if len(e.stack) == 0 {
		return false
	}
	e.stack[len(e.stack)-1] = nil
	e.stack = e.stack[:len(e.stack)-1]
	e.selection = nil
	e.dirty = true
	return true
}

// pushMatrix maps the current object's coordinates to the page.
func (e *Engine) pushMatrix() geom.Matrix {
	m := geom.Identity()
	for _, inst := range e.stack {
		m = m.Multiply(inst.Matrix())
	}
	return m
}

// --- Selection ---

// SetSelection replaces the selection with element indices of the current
// object. Out-of-range and duplicate indices are dropped.
func (e *Engine) SetSelection(indices []int) {
	n := e.Current().Parts.Len()
	sel := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < n && !slices.Contains(sel, i) {
			sel = append(sel, i)
		}
	}
	e.selection = sel
	e.dirty = true
}

// Selection returns the selected element indices.
func (e *Engine) Selection() []int {
	return slices.Clone(e.selection)
}

// HitTest returns the index of the topmost element of the current object
// whose box, grown by tolerance, contains the page point p, or -1.
func (e *Engine) HitTest(p geom.Point, tolerance int) int {
	cur := e.Current()
	local := e.pushMatrix().Invert().Apply(p)
	caller := e.caller()
	for i := cur.Parts.Len() - 1; i >= 0; i-- {
		el := cur.Parts.At(i)
		if el == nil {
			continue
		}
		if document.CornersBBox(el.BBox(e.env, 1, tolerance, caller)).Contains(local) {
			return i
		}
	}
	return -1
}

// SelectionBounds returns the page-space box around every selected element.
func (e *Engine) SelectionBounds() geom.BBox {
	cur := e.Current()
	m := e.pushMatrix()
	caller := e.caller()
	box := geom.EmptyBBox()
	for _, i := range e.selection {
		el := cur.Parts.At(i)
		if el == nil {
			continue
		}
		box = box.Union(m.TransformBBox(document.CornersBBox(el.BBox(e.env, 1, 0, caller))))
	}
	return box
}

// SelectionBoundsJSON returns SelectionBounds as JSON.
func (e *Engine) SelectionBoundsJSON() string {
	return BBoxToJSON(e.SelectionBounds())
}

// --- Editing ---

// RescaleSelected rescales the first selected element so that its outline
// reaches the page point corner, and returns the new scale.
func (e *Engine) RescaleSelected(corner geom.Point) (float32, error) {
	if len(e.selection) == 0 {
		return 0, ErrNothingSelected
	}
	cur := e.Current()
	el, ok := cur.Parts.At(e.selection[0]).(document.Positionable)
	if !ok {
		return 0, fmt.Errorf("rescale %d: %w", e.selection[0], ErrNotPositionable)
	}
	local := e.pushMatrix().Invert().Apply(corner)
	scale := document.Rescale(e.env, el, local, e.opts.Snap, e.caller())
	cur.CalcBBox(e.env)
	e.dirty = true
	return scale, nil
}

// DecomposeSelectedArcs replaces every selected arc of the current object
// by a path of Bezier curves and returns how many were replaced. Other
// selected elements are left alone.
func (e *Engine) DecomposeSelectedArcs() (int, error) {
	if len(e.selection) == 0 {
		return 0, ErrNothingSelected
	}
	cur := e.Current()
	n := 0
	for _, i := range e.selection {
		a, ok := cur.Parts.At(i).(*document.Arc)
		if !ok {
			continue
		}
		cur.Parts.Set(i, document.PathFromArc(a))
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("decompose %v: %w", e.selection, ErrNotArc)
	}
	cur.CalcBBox(e.env)
	e.dirty = true
	return n, nil
}

// Recalc recomputes the boxes of every object reachable from the page,
// innermost objects first.
func (e *Engine) Recalc() error {
	done := make(map[document.ID]bool)
	var walk func(obj *document.Object) error
	walk = func(obj *document.Object) error {
		if done[obj.ID] {
			return nil
		}
		done[obj.ID] = true
		for _, inst := range document.Each[*document.Instance](&obj.Parts) {
			child, err := e.env.Objects.Lookup(inst.Ref)
			if err != nil {
				return fmt.Errorf("%s: %w", obj.Name, err)
			}
			if err := walk(child); err != nil {
				return err
			}
			if err := inst.CalcBBox(e.env); err != nil {
				return fmt.Errorf("%s: %w", obj.Name, err)
			}
		}
		obj.CalcBBox(e.env)
		return nil
	}
	if err := walk(e.page); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// --- Queries ---

// Render returns the display list, rebuilding it if anything changed.
func (e *Engine) Render() []DrawCommand {
	if !e.dirty && e.commands != nil {
		return e.commands
	}

	r := &renderer{
		env:        e.env,
		view:       e.opts.View,
		pinPointOn: e.opts.PinPointOn,
		selected:   make(map[int]bool, len(e.selection)),
	}
	for _, i := range e.selection {
		r.selected[i] = true
	}

	top := frame{ctm: geom.Identity(), index: -1}
	if len(e.stack) == 0 {
		top.selectable = true
		r.drawInstance(top, e.top, document.DefaultColor, nil)
	} else {
		if e.opts.EditInPlace {
			r.drawInstance(top, e.top, document.DefaultColor, e.stack)
		}
		inner := frame{ctm: e.pushMatrix(), index: -1, selectable: true}
		r.drawInstance(inner, e.caller(), document.DefaultColor, nil)
	}

	e.commands = r.out
	if e.commands == nil {
		e.commands = []DrawCommand{}
	}
	e.dirty = false
	return e.commands
}

// RenderJSON returns the display list as JSON.
func (e *Engine) RenderJSON() (string, error) {
	return DrawCommandsToJSON(e.Render())
}

// IndicateParams returns markers at every field of the current object
// driven by a parameter, tagged with the parameter key and its value.
func (e *Engine) IndicateParams() []DrawCommand {
	cur := e.Current()
	caller := e.caller()
	r := &renderer{env: e.env}
	for i, el := range cur.Parts.All() {
		p := painter{r: r, f: frame{ctm: e.pushMatrix(), index: i, caller: caller}}
		for _, ep := range el.Params() {
			op := cur.MatchParam(ep.Key)
			if caller != nil {
				op = caller.ParamValue(cur, ep.Key)
			}
			start := len(r.out)
			el.Indicate(p, ep, op)
			for j := start; j < len(r.out); j++ {
				r.out[j].Param = ep.Key
				if op != nil {
					r.out[j].Value = op.Text()
				}
			}
		}
	}
	return r.out
}
