package keybind

import "fmt"

type defaultBinding struct {
	key   string
	fn    string
	value int
}

var defaultBindings = []defaultBinding{
	{"Delete", "Text_Delete", Unspecified},
	{"BackSpace", "Text_Delete", Unspecified},
	{"Return", "Text_Return", Unspecified},
	{"Right", "Text_Right", Unspecified},
	{"Left", "Text_Left", Unspecified},
	{"Up", "Text_Up", Unspecified},
	{"Down", "Text_Down", Unspecified},
	{"Home", "Text_Home", Unspecified},
	{"End", "Text_End", Unspecified},
	{"Tab", "Tab_Forward", Unspecified},
	{"Shift_Tab", "Tab_Backward", Unspecified},
	{"Alt_Tab", "Tab_Stop", Unspecified},
	{"Alt_space", "Halfspace", Unspecified},
	{"Control_space", "Quarterspace", Unspecified},
	{"Alt_u", "Superscript", Unspecified},
	{"Alt_d", "Subscript", Unspecified},
	{"Alt_n", "Normalscript", Unspecified},
	{"Alt_b", "Boldfont", Unspecified},
	{"Alt_i", "Italicfont", Unspecified},
	{"Alt_f", "Normalfont", Unspecified},
	{"Alt_o", "Overline", Unspecified},
	{"Alt_l", "Linebreak", Unspecified},
	{"Alt_p", "Parameter", Unspecified},
	{"Alt_x", "Special", Unspecified},

	{"1", "Page", 1},
	{"2", "Page", 2},
	{"3", "Page", 3},
	{"4", "Page", 4},
	{"5", "Page", 5},
	{"6", "Page", 6},
	{"7", "Page", 7},
	{"8", "Page", 8},
	{"9", "Page", 9},
	{"0", "Page", 10},
	{"P", "Page_Directory", Unspecified},
	{"L", "Library_Directory", Unspecified},
	{"l", "Next_Library", Unspecified},
	{"V", "Virtual", Unspecified},
	{"?", "Help", Unspecified},
	{"space", "Redraw", Unspecified},
	{"v", "View", Unspecified},
	{"Z", "Zoom_In", Unspecified},
	{"z", "Zoom_Out", Unspecified},
	{"p", "Pan", Unspecified},
	{"+", "Double_Snap", Unspecified},
	{"-", "Halve_Snap", Unspecified},
	{"Control_w", "Write", Unspecified},
	{"r", "Rotate", 15},
	{"R", "Rotate", -15},
	{"Alt_r", "Rotate", 90},
	{"o", "Rotate", -90},
	{"f", "Flip_X", Unspecified},
	{"F", "Flip_Y", Unspecified},
	{"S", "Snap", Unspecified},
	{"<", "Pop", Unspecified},
	{">", "Push", Unspecified},
	{"Delete", "Delete", Unspecified},
	{"d", "Delete", Unspecified},
	{"Button1", "Select", Unspecified},
	{"Hold_Button1", "Select_Box", Unspecified},
	{"b", "Box", Unspecified},
	{"a", "Arc", Unspecified},
	{"t", "Text", Unspecified},
	{"T", "Pin_Label", Unspecified},
	{"G", "Pin_Global", Unspecified},
	{"I", "Info_Label", Unspecified},
	{"X", "Exchange", Unspecified},
	{"c", "Copy", Unspecified},
	{"m", "Move", Unspecified},
	{"j", "Join", Unspecified},
	{"J", "Unjoin", Unspecified},
	{"s", "Spline", Unspecified},
	{"e", "Edit", Unspecified},
	{"u", "Undo", Unspecified},
	{"U", "Redo", Unspecified},
	{"M", "Select_Save", Unspecified},
	{"x", "Unselect", Unspecified},
	{"|", "Dashed", Unspecified},
	{":", "Dotted", Unspecified},
	{"_", "Solid", Unspecified},
	{"%", "Prompt", Unspecified},
	{".", "Dot", Unspecified},
	{"w", "Wire", Unspecified},
	{"A", "Attach", Unspecified},
	{"/", "Swap", Unspecified},
	{"H", "Rescale", Unspecified},
	{"O", "Reorder", Unspecified},
	{"Alt_q", "Netlist", Unspecified},
	{"Escape", "Cancel", Unspecified},
	{"Button3", "Cancel", Unspecified},
	{"BackSpace", "Cancel_Last", Unspecified},
	{"Button2", "Finish", Unspecified},
	{"Return", "Finish", Unspecified},
	{"Control_q", "Exit", Unspecified},
}

// LoadDefaults adds the standard all-windows bindings to t and returns the
// number added. Bindings already present are left alone.
func LoadDefaults(t *Table) (int, error) {
	added := 0
	for _, d := range defaultBindings {
		ok, err := t.AddBindingNames(AllWindows, d.key, d.fn, d.value)
		if err != nil {
			return added, fmt.Errorf("default binding %s: %w", d.key, err)
		}
		if ok {
			added++
		}
	}
	return added, nil
}
