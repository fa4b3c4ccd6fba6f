// Package backend provides terminal backend abstraction for the renderer.
package backend

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	EventFocus
	// EventClosed is returned once the backend can produce no more events.
	EventClosed
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int

	// Focus event fields
	Focused bool

	// Paste event fields
	PasteText string
}

// KeyEvent is a shorthand for building key events.
func KeyEvent(k Key, r rune, mod ModMask) Event {
	return Event{Type: EventKey, Key: k, Rune: r, Mod: mod}
}

// RuneEvent builds the key event for typing r.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCtrlSpace
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlK
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

var keyNames = map[Key]string{
	KeyRune:      "Rune",
	KeyEscape:    "Esc",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBacktab:   "Backtab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyCtrlSpace: "Ctrl-Space",
}

// String returns a readable key name, e.g. "Ctrl-S" or "F3".
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	case k >= KeyCtrlA && k <= KeyCtrlZ:
		return "Ctrl-" + string(ctrlLetters[k-KeyCtrlA])
	}
	return "None"
}

// ctrlLetters lists the letters of KeyCtrlA..KeyCtrlZ in declaration order.
// H, I, J and M share their codes with editing keys and are left out.
const ctrlLetters = "ABCDEFGKLNOPQRSTUVWXYZ"

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
)

// Color is a palette index; ColorDefault leaves the terminal's color.
type Color int

const ColorDefault Color = -1

// A few palette entries used by the editor chrome.
const (
	ColorBlack Color = iota
	ColorMaroon
	ColorGreen
	ColorOlive
	ColorNavy
	ColorPurple
	ColorTeal
	ColorSilver
	ColorGray
)

// Attr is a set of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrUnderline
	AttrReverse
)

// Style describes how a cell is drawn.
type Style struct {
	Fg, Bg Color
	Attrs  Attr
}

// DefaultStyle uses the terminal's colors and no attributes.
var DefaultStyle = Style{Fg: ColorDefault, Bg: ColorDefault}

// WithAttrs returns a copy of s with a added.
func (s Style) WithAttrs(a Attr) Style {
	s.Attrs |= a
	return s
}

// WithColors returns a copy of s with the given colors.
func (s Style) WithColors(fg, bg Color) Style {
	s.Fg, s.Bg = fg, bg
	return s
}

// Backend defines the interface for terminal/display backends.
// Implementations handle actual drawing to the terminal or other display surfaces.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent places one grapheme cluster at the given position.
	// Positions outside the terminal are silently ignored.
	SetContent(x, y int, text string, style Style)

	// Content returns the grapheme cluster and style at the given position.
	Content(x, y int) (string, Style)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)
}

// NullBackend is an in-memory backend for tests. Its event queue never
// blocks: PollEvent returns EventClosed once the queue is empty.
type NullBackend struct {
	width, height int
	cells         [][]nullCell
	cursorX       int
	cursorY       int
	cursorVisible bool
	events        []Event
}

type nullCell struct {
	text  string
	style Style
}

var emptyCell = nullCell{text: " ", style: DefaultStyle}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{width: width, height: height}
	b.allocate()
	return b
}

func (b *NullBackend) allocate() {
	b.cells = make([][]nullCell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]nullCell, b.width)
	}
	b.Clear()
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetContent(x, y int, text string, style Style) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = nullCell{text: text, style: style}
		// the trailing half of a wide grapheme holds no text
		if runewidth.StringWidth(text) == 2 && x+1 < b.width {
			b.cells[y][x+1] = nullCell{style: style}
		}
	}
}

func (b *NullBackend) Content(x, y int) (string, Style) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		c := b.cells[y][x]
		return c.text, c.style
	}
	return emptyCell.text, emptyCell.style
}

func (b *NullBackend) Clear() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = emptyCell
		}
	}
}

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	if len(b.events) == 0 {
		return Event{Type: EventClosed}
	}
	ev := b.events[0]
	b.events = b.events[1:]
	return ev
}

func (b *NullBackend) PostEvent(event Event) {
	b.events = append(b.events, event)
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// Row returns row y as a string.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var out []byte
	for _, c := range b.cells[y] {
		out = append(out, c.text...)
	}
	return string(out)
}

// Resize simulates a terminal resize and queues the resize event.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
