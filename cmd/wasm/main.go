//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/google/uuid"

	"github.com/snmishra/xcircuit-qt-sub002/internal/document"
	"github.com/snmishra/xcircuit-qt-sub002/internal/engine"
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
	"github.com/snmishra/xcircuit-qt-sub002/internal/keybind"
	"github.com/snmishra/xcircuit-qt-sub002/internal/textmetrics"
)

var (
	eng    *engine.Engine
	keys   *keybind.Table
	window = uuid.New()
)

func main() {
	keys = keybind.NewTable()
	keybind.LoadDefaults(keys)

	xc := js.Global().Get("Object").New()

	// --- Commands (frontend → editor) ---
	xc.Set("loadSample", js.FuncOf(loadSample))
	xc.Set("push", js.FuncOf(push))
	xc.Set("pop", js.FuncOf(pop))
	xc.Set("setSelection", js.FuncOf(setSelection))
	xc.Set("setView", js.FuncOf(setView))
	xc.Set("setPinPointOn", js.FuncOf(setPinPointOn))
	xc.Set("setEditInPlace", js.FuncOf(setEditInPlace))
	xc.Set("rescaleSelected", js.FuncOf(rescaleSelected))
	xc.Set("decomposeArcs", js.FuncOf(decomposeArcs))

	// --- Queries (frontend ← editor) ---
	xc.Set("render", js.FuncOf(render))
	xc.Set("hitTest", js.FuncOf(hitTest))
	xc.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	xc.Set("getSelection", js.FuncOf(getSelection))
	xc.Set("indicateParams", js.FuncOf(indicateParams))
	xc.Set("keyFunction", js.FuncOf(keyFunction))

	js.Global().Set("xcEngine", xc)
	js.Global().Set("xcWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorValue(err error) js.Value {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func ok() js.Value {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

func loadSample(this js.Value, args []js.Value) interface{} {
	reg := document.NewRegistry()
	env := &document.Env{Objects: reg, Text: textmetrics.New(2.5)}
	sample, err := document.NewSample(reg, env)
	if err != nil {
		return errorValue(err)
	}
	e, err := engine.New(env, sample.Page.ID, engine.Options{
		Snap: document.Snap{On: true, GridSpace: 32, SnapSpace: 16},
	})
	if err != nil {
		return errorValue(err)
	}
	eng = e
	return ok()
}

func push(this js.Value, args []js.Value) interface{} {
	if eng == nil || len(args) < 1 {
		return nil
	}
	if err := eng.Push(args[0].Int()); err != nil {
		return errorValue(err)
	}
	return ok()
}

func pop(this js.Value, args []js.Value) interface{} {
	if eng == nil {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.Pop())
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if eng == nil {
		return nil
	}
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	indices := make([]int, length)
	for i := 0; i < length; i++ {
		indices[i] = arr.Index(i).Int()
	}
	eng.SetSelection(indices)
	return nil
}

func setView(this js.Value, args []js.Value) interface{} {
	if eng == nil || len(args) < 4 {
		return nil
	}
	eng.SetView(geom.BBox{
		LowerLeft: geom.Pt(args[0].Int(), args[1].Int()),
		Width:     args[2].Int(),
		Height:    args[3].Int(),
	})
	return nil
}

func setPinPointOn(this js.Value, args []js.Value) interface{} {
	if eng == nil || len(args) < 1 {
		return nil
	}
	eng.SetPinPointOn(args[0].Bool())
	return nil
}

func setEditInPlace(this js.Value, args []js.Value) interface{} {
	if eng == nil || len(args) < 1 {
		return nil
	}
	eng.SetEditInPlace(args[0].Bool())
	return nil
}

func rescaleSelected(this js.Value, args []js.Value) interface{} {
	if eng == nil || len(args) < 2 {
		return nil
	}
	scale, err := eng.RescaleSelected(geom.Pt(args[0].Int(), args[1].Int()))
	if err != nil {
		return errorValue(err)
	}
	return js.ValueOf(float64(scale))
}

func decomposeArcs(this js.Value, args []js.Value) interface{} {
	if eng == nil {
		return nil
	}
	n, err := eng.DecomposeSelectedArcs()
	if err != nil {
		return errorValue(err)
	}
	return js.ValueOf(n)
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	if eng == nil {
		return js.ValueOf("[]")
	}
	data, err := eng.RenderJSON()
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(data)
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if eng == nil || len(args) < 2 {
		return js.ValueOf(-1)
	}
	tol := 0
	if len(args) > 2 {
		tol = args[2].Int()
	}
	return js.ValueOf(eng.HitTest(geom.Pt(args[0].Int(), args[1].Int()), tol))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	if eng == nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(eng.SelectionBoundsJSON())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	if eng == nil {
		return js.ValueOf("[]")
	}
	data, _ := json.Marshal(eng.Selection())
	return js.ValueOf(string(data))
}

func indicateParams(this js.Value, args []js.Value) interface{} {
	if eng == nil {
		return js.ValueOf("[]")
	}
	data, err := engine.DrawCommandsToJSON(eng.IndicateParams())
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(data)
}

func keyFunction(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ks, err := keybind.ParseKey(args[0].String())
	if err != nil {
		return errorValue(err)
	}
	f, value := keys.BoundFunction(window, ks)
	return js.ValueOf(map[string]interface{}{
		"function": f.String(),
		"value":    value,
		"bound":    f != keybind.NoFunction,
	})
}
