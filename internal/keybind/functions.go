package keybind

import (
	"errors"
	"fmt"
)

var ErrUnknownFunction = errors.New("unknown function name")

// Function identifies an editor action a key can be bound to.
type Function int

// NoFunction is returned when a key is not bound.
const NoFunction Function = -1

var functionNames = []string{
	"Page", "Anchor", "Superscript", "Subscript", "Normalscript",
	"Font", "Boldfont", "Italicfont", "Normalfont", "Underline",
	"Overline", "ISO_Encoding", "Halfspace", "Quarterspace", "Special",
	"Tab_Stop", "Tab_Forward", "Tab_Backward", "Text_Return", "Text_Delete",
	"Text_Right", "Text_Left", "Text_Up", "Text_Down", "Text_Split",
	"Text_Home", "Text_End", "Linebreak", "Parameter", "Edit_Param",
	"Change_Style", "Edit_Delete", "Edit_Insert", "Edit_Append", "Edit_Next",
	"Attach", "Next_Library", "Library_Directory", "Library_Move", "Library_Copy",
	"Library_Edit", "Library_Delete", "Library_Duplicate", "Library_Hide", "Library_Virtual",
	"Page_Directory", "Library_Pop", "Virtual", "Help", "Redraw",
	"View", "Zoom_In", "Zoom_Out", "Pan", "Double_Snap",
	"Halve_Snap", "Write", "Rotate", "Flip_X", "Flip_Y",
	"Snap", "Snap_To", "Pop", "Push", "Delete",
	"Select", "Box", "Arc", "Text", "Exchange",
	"Copy", "Move", "Join", "Unjoin", "Spline",
	"Edit", "Undo", "Redo", "Select_Save", "Unselect",
	"Dashed", "Dotted", "Solid", "Prompt", "Dot",
	"Wire", "Cancel", "Nothing", "Exit", "Netlist",
	"Swap", "Pin_Label", "Pin_Global", "Info_Label", "Graphic",
	"Select_Box", "Connectivity", "Continue_Element", "Finish_Element", "Continue_Copy",
	"Finish_Copy", "Finish", "Cancel_Last", "Sim", "SPICE",
	"PCB", "SPICE_Flat", "Rescale", "Reorder", "Color",
	"Margin_Stop", "Text_Delete_Param",
}

var functionsByName = func() map[string]Function {
	m := make(map[string]Function, len(functionNames))
	for i, n := range functionNames {
		m[n] = Function(i)
	}
	return m
}()

// NumFunctions is the size of the function table.
func NumFunctions() int { return len(functionNames) }

// ParseFunction returns the function with the given table name.
func ParseFunction(name string) (Function, error) {
	f, ok := functionsByName[name]
	if !ok {
		return NoFunction, fmt.Errorf("%q: %w", name, ErrUnknownFunction)
	}
	return f, nil
}

func mustFunction(name string) Function {
	f, err := ParseFunction(name)
	if err != nil {
		panic(err)
	}
	return f
}

// Valid reports whether f is in the function table.
func (f Function) Valid() bool {
	return f >= 0 && int(f) < len(functionNames)
}

func (f Function) String() string {
	if !f.Valid() {
		return "Nothing"
	}
	return functionNames[f]
}

// Functions used by the default table and by callers in this module.
var (
	FuncPage        = mustFunction("Page")
	FuncRotate      = mustFunction("Rotate")
	FuncArc         = mustFunction("Arc")
	FuncBox         = mustFunction("Box")
	FuncText        = mustFunction("Text")
	FuncDelete      = mustFunction("Delete")
	FuncTextDelete  = mustFunction("Text_Delete")
	FuncSelect      = mustFunction("Select")
	FuncCancel      = mustFunction("Cancel")
	FuncPush        = mustFunction("Push")
	FuncPop         = mustFunction("Pop")
	FuncRescale     = mustFunction("Rescale")
	FuncRedraw      = mustFunction("Redraw")
	FuncZoomIn      = mustFunction("Zoom_In")
	FuncZoomOut     = mustFunction("Zoom_Out")
	FuncFinish      = mustFunction("Finish")
	FuncSnap        = mustFunction("Snap")
	FuncDoubleSnap  = mustFunction("Double_Snap")
	FuncHalveSnap   = mustFunction("Halve_Snap")
	FuncUndo        = mustFunction("Undo")
	FuncRedo        = mustFunction("Redo")
	FuncTextReturn  = mustFunction("Text_Return")
	FuncTabForward  = mustFunction("Tab_Forward")
	FuncTabBackward = mustFunction("Tab_Backward")
)
