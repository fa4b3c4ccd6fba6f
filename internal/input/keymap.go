package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/fresh/internal/renderer/backend"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Binding maps a key specification to an action.
type Binding struct {
	// Keys is the key chord, e.g. "C-s", "S-Left", "M-Right", "F3".
	Keys string

	Command Command

	// Extend is passed through to the action.
	Extend bool

	Description string
}

// Chord is a key with its modifiers.
type Chord struct {
	Key backend.Key
	Mod backend.ModMask
}

func (c Chord) String() string {
	var b strings.Builder
	if c.Mod.Has(backend.ModCtrl) {
		b.WriteString("C-")
	}
	if c.Mod.Has(backend.ModAlt) {
		b.WriteString("M-")
	}
	if c.Mod.Has(backend.ModShift) {
		b.WriteString("S-")
	}
	if c.Key >= runeKeyBase {
		b.WriteRune(rune(c.Key - runeKeyBase))
	} else {
		b.WriteString(c.Key.String())
	}
	return b.String()
}

// Keymap resolves terminal events to actions.
type Keymap struct {
	bindings map[Chord]Binding
}

// NewKeymap builds a keymap from bindings. A later binding for the same
// chord replaces an earlier one.
func NewKeymap(bindings []Binding) (*Keymap, error) {
	km := &Keymap{bindings: make(map[Chord]Binding, len(bindings))}
	for _, b := range bindings {
		if err := km.Bind(b); err != nil {
			return nil, err
		}
	}
	return km, nil
}

// Bind adds or replaces a binding.
func (km *Keymap) Bind(b Binding) error {
	if b.Command == CmdNone {
		return fmt.Errorf("binding %q: no command", b.Keys)
	}
	chord, err := ParseChord(b.Keys)
	if err != nil {
		return err
	}
	km.bindings[chord] = b
	return nil
}

// Lookup returns the binding for a chord.
func (km *Keymap) Lookup(c Chord) (Binding, bool) {
	b, ok := km.bindings[c]
	return b, ok
}

// Len returns the number of bindings.
func (km *Keymap) Len() int {
	return len(km.bindings)
}

// Resolve turns a key or paste event into an action. Printable runes
// without Ctrl or Alt insert themselves, as does a plain Tab; pastes
// insert their text.
func (km *Keymap) Resolve(ev backend.Event) (Action, bool) {
	switch ev.Type {
	case backend.EventPaste:
		if ev.PasteText == "" {
			return Action{}, false
		}
		return Action{Command: CmdInsert, Text: ev.PasteText}, true
	case backend.EventKey:
	default:
		return Action{}, false
	}

	if ev.Key == backend.KeyRune && !ev.Mod.Has(backend.ModCtrl) && !ev.Mod.Has(backend.ModAlt) {
		if !unicode.IsPrint(ev.Rune) {
			return Action{}, false
		}
		return Action{Command: CmdInsert, Text: string(ev.Rune)}, true
	}

	if ev.Key == backend.KeyTab && ev.Mod == backend.ModNone {
		return Action{Command: CmdInsert, Text: "\t"}, true
	}

	chord := Chord{Key: ev.Key, Mod: ev.Mod}
	if ev.Key == backend.KeyRune {
		// Alt+letter bindings are written lower case.
		chord.Key = runeKey(unicode.ToLower(ev.Rune))
	}
	b, ok := km.bindings[chord]
	if !ok {
		return Action{}, false
	}
	return Action{Command: b.Command, Extend: b.Extend}, true
}

// runeKey encodes a rune as a pseudo key above the named keys so it can sit
// in a Chord.
func runeKey(r rune) backend.Key {
	return backend.Key(runeKeyBase + int(r))
}

const runeKeyBase = 1 << 16

var namedKeys = map[string]backend.Key{
	"esc":       backend.KeyEscape,
	"escape":    backend.KeyEscape,
	"enter":     backend.KeyEnter,
	"cr":        backend.KeyEnter,
	"tab":       backend.KeyTab,
	"backtab":   backend.KeyBacktab,
	"backspace": backend.KeyBackspace,
	"bs":        backend.KeyBackspace,
	"delete":    backend.KeyDelete,
	"del":       backend.KeyDelete,
	"insert":    backend.KeyInsert,
	"home":      backend.KeyHome,
	"end":       backend.KeyEnd,
	"pgup":      backend.KeyPageUp,
	"pgdn":      backend.KeyPageDown,
	"up":        backend.KeyUp,
	"down":      backend.KeyDown,
	"left":      backend.KeyLeft,
	"right":     backend.KeyRight,
	"space":     backend.KeyCtrlSpace,
}

// ParseChord parses a key specification such as "C-s", "C-S-Up",
// "M-Right", "F5" or "Enter". Modifiers are C (Ctrl), S (Shift) and
// M or A (Alt), each followed by a hyphen.
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	var mod backend.ModMask
	rest := spec
	for len(rest) > 2 && rest[1] == '-' {
		switch rest[0] {
		case 'C', 'c':
			mod |= backend.ModCtrl
		case 'S', 's':
			mod |= backend.ModShift
		case 'M', 'm', 'A', 'a':
			mod |= backend.ModAlt
		default:
			return Chord{}, fmt.Errorf("%w: %q: unknown modifier %q", ErrInvalidSpec, spec, rest[:1])
		}
		rest = rest[2:]
	}

	if k, ok := namedKeys[strings.ToLower(rest)]; ok {
		if k == backend.KeyCtrlSpace && !mod.Has(backend.ModCtrl) {
			return Chord{}, fmt.Errorf("%w: %q: space needs Ctrl", ErrInvalidSpec, spec)
		}
		if k == backend.KeyCtrlSpace {
			mod &^= backend.ModCtrl
		}
		return Chord{Key: k, Mod: mod}, nil
	}

	if (rest[0] == 'F' || rest[0] == 'f') && len(rest) > 1 {
		if n, err := strconv.Atoi(rest[1:]); err == nil && n >= 1 && n <= 12 && rest[1] != '0' {
			return Chord{Key: backend.KeyF1 + backend.Key(n-1), Mod: mod}, nil
		}
	}

	runes := []rune(rest)
	if len(runes) != 1 {
		return Chord{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	r := unicode.ToLower(runes[0])

	if mod.Has(backend.ModCtrl) {
		k, ok := ctrlKey(r)
		if !ok {
			return Chord{}, fmt.Errorf("%w: %q: no Ctrl code for %q", ErrInvalidSpec, spec, r)
		}
		return Chord{Key: k, Mod: mod &^ backend.ModCtrl}, nil
	}
	if !mod.Has(backend.ModAlt) {
		return Chord{}, fmt.Errorf("%w: %q: plain characters insert themselves", ErrInvalidSpec, spec)
	}
	return Chord{Key: runeKey(r), Mod: mod}, nil
}

// ctrlKey maps a letter to the backend's Ctrl key code.
func ctrlKey(r rune) (backend.Key, bool) {
	for k := backend.KeyCtrlA; k <= backend.KeyCtrlZ; k++ {
		if name := k.String(); name == "Ctrl-"+string(unicode.ToUpper(r)) {
			return k, true
		}
	}
	return backend.KeyNone, false
}
