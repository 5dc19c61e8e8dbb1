package keybind

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"
)

var ErrUnknownKey = errors.New("unknown key name")

// KeyState is a key or mouse button together with the modifiers held
// while it was pressed. Exactly one of Rune, Code or Button identifies the
// key: printable keys use Rune, other keys use Code and buttons use Button.
type KeyState struct {
	Rune      rune
	Code      key.Code
	Button    int
	Modifiers key.Modifiers
	// Hold marks a press held past the hold delay.
	Hold bool
}

// Key returns the state of a printable key with no modifiers.
func Key(r rune) KeyState {
	return KeyState{Rune: r}
}

// FromEvent converts a key event into a KeyState.
func FromEvent(e key.Event) KeyState {
	ks := KeyState{Modifiers: e.Modifiers}
	if _, named := codeNames[e.Code]; named || e.Rune <= 0 {
		ks.Code = e.Code
	} else {
		ks.Rune = e.Rune
		// shift is already part of the rune
		ks.Modifiers &^= key.ModShift
	}
	return ks
}

// IsZero reports whether ks names no key at all.
func (ks KeyState) IsZero() bool {
	return ks.Rune == 0 && ks.Code == key.CodeUnknown && ks.Button == 0
}

var modifierNames = []struct {
	prefix string
	mod    key.Modifiers
}{
	{"Shift_", key.ModShift},
	{"Control_", key.ModControl},
	{"Alt_", key.ModAlt},
	{"Meta_", key.ModMeta},
}

var codeNames = map[key.Code]string{
	key.CodeReturnEnter:     "Return",
	key.CodeEscape:          "Escape",
	key.CodeDeleteBackspace: "BackSpace",
	key.CodeDeleteForward:   "Delete",
	key.CodeTab:             "Tab",
	key.CodeInsert:          "Insert",
	key.CodeHome:            "Home",
	key.CodeEnd:             "End",
	key.CodePageUp:          "Prior",
	key.CodePageDown:        "Next",
	key.CodeUpArrow:         "Up",
	key.CodeDownArrow:       "Down",
	key.CodeLeftArrow:       "Left",
	key.CodeRightArrow:      "Right",
	key.CodeF1:              "F1",
	key.CodeF2:              "F2",
	key.CodeF3:              "F3",
	key.CodeF4:              "F4",
	key.CodeF5:              "F5",
	key.CodeF6:              "F6",
	key.CodeF7:              "F7",
	key.CodeF8:              "F8",
	key.CodeF9:              "F9",
	key.CodeF10:             "F10",
	key.CodeF11:             "F11",
	key.CodeF12:             "F12",
	key.CodeKeypadEnter:     "KP_Enter",
}

var namedCodes = func() map[string]key.Code {
	m := make(map[string]key.Code, len(codeNames))
	for c, n := range codeNames {
		m[n] = c
	}
	return m
}()

const maxButton = 5

// ParseKey parses a key name such as "a", "Control_z", "Shift_Tab",
// "space", "Button1" or "Hold_Button1".
func ParseKey(name string) (KeyState, error) {
	var ks KeyState
	rest := name

	if r, ok := strings.CutPrefix(rest, "Hold_"); ok {
		ks.Hold = true
		rest = r
	}
	for {
		found := false
		for _, m := range modifierNames {
			if r, ok := strings.CutPrefix(rest, m.prefix); ok && r != "" {
				ks.Modifiers |= m.mod
				rest = r
				found = true
			}
		}
		if !found {
			break
		}
	}

	switch {
	case rest == "space":
		ks.Rune = ' '
	case strings.HasPrefix(rest, "Button"):
		n, err := strconv.Atoi(strings.TrimPrefix(rest, "Button"))
		if err != nil || n < 1 || n > maxButton {
			return KeyState{}, fmt.Errorf("%q: %w", name, ErrUnknownKey)
		}
		ks.Button = n
	default:
		if c, ok := namedCodes[rest]; ok {
			ks.Code = c
			break
		}
		r, size := utf8.DecodeRuneInString(rest)
		if r == utf8.RuneError || size != len(rest) {
			return KeyState{}, fmt.Errorf("%q: %w", name, ErrUnknownKey)
		}
		ks.Rune = r
	}
	return ks, nil
}

// MustParseKey is ParseKey for names known to be valid.
func MustParseKey(name string) KeyState {
	ks, err := ParseKey(name)
	if err != nil {
		panic(err)
	}
	return ks
}

// String returns the name ParseKey accepts for ks.
func (ks KeyState) String() string {
	var b strings.Builder
	if ks.Hold {
		b.WriteString("Hold_")
	}
	for _, m := range modifierNames {
		if ks.Modifiers&m.mod != 0 {
			b.WriteString(m.prefix)
		}
	}
	switch {
	case ks.Button > 0:
		fmt.Fprintf(&b, "Button%d", ks.Button)
	case ks.Rune == ' ':
		b.WriteString("space")
	case ks.Rune != 0:
		b.WriteRune(ks.Rune)
	default:
		if n, ok := codeNames[ks.Code]; ok {
			b.WriteString(n)
		} else {
			fmt.Fprintf(&b, "Code%d", int(ks.Code))
		}
	}
	return b.String()
}
