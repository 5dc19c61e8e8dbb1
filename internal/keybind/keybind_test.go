package keybind

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
)

func TestParseKeyRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		want KeyState
	}{
		{"a", KeyState{Rune: 'a'}},
		{"Z", KeyState{Rune: 'Z'}},
		{"space", KeyState{Rune: ' '}},
		{"_", KeyState{Rune: '_'}},
		{"Control_z", KeyState{Rune: 'z', Modifiers: key.ModControl}},
		{"Shift_Control_Tab", KeyState{Code: key.CodeTab, Modifiers: key.ModShift | key.ModControl}},
		{"Return", KeyState{Code: key.CodeReturnEnter}},
		{"F12", KeyState{Code: key.CodeF12}},
		{"Button3", KeyState{Button: 3}},
		{"Hold_Button1", KeyState{Button: 1, Hold: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.String())
		})
	}
}

func TestParseKeyErrors(t *testing.T) {
	for _, name := range []string{"", "Button9", "Control_", "nosuchkey"} {
		_, err := ParseKey(name)
		assert.ErrorIs(t, err, ErrUnknownKey, name)
	}
}

func TestFromEvent(t *testing.T) {
	ks := FromEvent(key.Event{Rune: 'A', Code: key.CodeA, Modifiers: key.ModShift | key.ModControl})
	assert.Equal(t, "Control_A", ks.String())

	ks = FromEvent(key.Event{Rune: '\r', Code: key.CodeReturnEnter})
	assert.Equal(t, "Return", ks.String())
}

func TestParseFunction(t *testing.T) {
	f, err := ParseFunction("Text_Delete_Param")
	require.NoError(t, err)
	assert.Equal(t, "Text_Delete_Param", f.String())
	assert.Equal(t, NumFunctions()-1, int(f))

	_, err = ParseFunction("Frobnicate")
	require.ErrorIs(t, err, ErrUnknownFunction)
	assert.Equal(t, "Nothing", NoFunction.String())
}

func TestWindowBindingTakesPrecedence(t *testing.T) {
	tbl := NewTable()
	w := uuid.New()
	other := uuid.New()
	k := Key('a')

	_, err := tbl.AddBinding(AllWindows, k, FuncArc, Unspecified)
	require.NoError(t, err)
	_, err = tbl.AddBinding(w, k, FuncBox, Unspecified)
	require.NoError(t, err)

	f, _ := tbl.BoundFunction(w, k)
	assert.Equal(t, FuncBox, f)
	f, _ = tbl.BoundFunction(other, k)
	assert.Equal(t, FuncArc, f)

	// the window binding is found even when the wildcard is newer
	_, err = tbl.AddBinding(AllWindows, k, FuncText, Unspecified)
	require.NoError(t, err)
	f, _ = tbl.BoundFunction(w, k)
	assert.Equal(t, FuncBox, f)
	f, _ = tbl.BoundFunction(other, k)
	assert.Equal(t, FuncText, f)
}

func TestBoundFunctionMiss(t *testing.T) {
	f, v := NewTable().BoundFunction(uuid.New(), Key('q'))
	assert.Equal(t, NoFunction, f)
	assert.Equal(t, Unspecified, v)
}

func TestAddBindingIsIdempotent(t *testing.T) {
	tbl := NewTable()
	ok, err := tbl.AddBinding(AllWindows, Key('a'), FuncArc, Unspecified)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = tbl.AddBinding(AllWindows, Key('a'), FuncArc, Unspecified)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, tbl.Len())

	// an all-windows binding already covers every window
	ok, err = tbl.AddBinding(uuid.New(), Key('a'), FuncArc, Unspecified)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, tbl.Len())
}

func TestIsBoundValueWildcard(t *testing.T) {
	tbl := NewTable()
	r := MustParseKey("r")
	_, err := tbl.AddBinding(AllWindows, r, FuncRotate, 15)
	require.NoError(t, err)

	assert.True(t, tbl.IsBound(AllWindows, r, FuncRotate, 15))
	assert.True(t, tbl.IsBound(AllWindows, r, FuncRotate, Unspecified))
	assert.False(t, tbl.IsBound(AllWindows, r, FuncRotate, 90))
	assert.False(t, tbl.IsBound(AllWindows, r, FuncArc, Unspecified))

	ok, err := tbl.AddBinding(AllWindows, r, FuncRotate, 90)
	require.NoError(t, err)
	assert.True(t, ok)
	f, v := tbl.BoundFunction(uuid.New(), r)
	assert.Equal(t, FuncRotate, f)
	assert.Equal(t, 90, v)
}

func TestAddBindingRejectsInvalid(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.AddBinding(AllWindows, Key('a'), Function(10000), Unspecified)
	require.ErrorIs(t, err, ErrUnknownFunction)
	_, err = tbl.AddBinding(AllWindows, KeyState{}, FuncArc, Unspecified)
	require.ErrorIs(t, err, ErrUnknownKey)
	_, err = tbl.AddBindingNames(AllWindows, "a", "Nope", Unspecified)
	require.ErrorIs(t, err, ErrUnknownFunction)
}

func TestRemoveBinding(t *testing.T) {
	tbl := NewTable()
	w := uuid.New()
	_, err := tbl.AddBinding(w, Key('x'), FuncDelete, Unspecified)
	require.NoError(t, err)

	err = tbl.RemoveBinding(uuid.New(), Key('x'), FuncDelete)
	require.ErrorIs(t, err, ErrBindingNotFound)
	require.ErrorIs(t, tbl.RemoveBinding(w, Key('x'), FuncArc), ErrBindingNotFound)

	require.NoError(t, tbl.RemoveBinding(w, Key('x'), FuncDelete))
	assert.Equal(t, 0, tbl.Len())
}

func TestBindingsFor(t *testing.T) {
	tbl := NewTable()
	w := uuid.New()
	_, err := tbl.AddBindingNames(AllWindows, "Escape", "Cancel", Unspecified)
	require.NoError(t, err)
	_, err = tbl.AddBindingNames(w, "Button3", "Cancel", Unspecified)
	require.NoError(t, err)

	assert.Equal(t, []KeyState{{Button: 3}, {Code: key.CodeEscape}}, tbl.BindingsFor(w, FuncCancel))
	assert.Equal(t, []KeyState{{Code: key.CodeEscape}}, tbl.BindingsFor(uuid.New(), FuncCancel))
	assert.Equal(t, "Button3, Escape", tbl.FunctionKeys(w, FuncCancel))
	assert.Equal(t, "(unbound)", tbl.FunctionKeys(w, FuncPush))
}

func TestLoadDefaults(t *testing.T) {
	tbl := NewTable()
	n, err := LoadDefaults(tbl)
	require.NoError(t, err)
	assert.Equal(t, len(defaultBindings), n)

	n, err = LoadDefaults(tbl)
	require.NoError(t, err)
	assert.Zero(t, n)

	w := uuid.New()
	f, v := tbl.BoundFunction(w, Key('3'))
	assert.Equal(t, FuncPage, f)
	assert.Equal(t, 3, v)

	// later defaults shadow earlier ones on the same key
	f, _ = tbl.BoundFunction(w, MustParseKey("Delete"))
	assert.Equal(t, FuncDelete, f)
	f, _ = tbl.BoundFunction(w, MustParseKey("Return"))
	assert.Equal(t, FuncFinish, f)
	assert.True(t, tbl.IsBound(w, MustParseKey("Return"), FuncTextReturn, Unspecified))
}
