package cursor

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Text is the read access motions need from a document.
type Text interface {
	Len() int64
	LineCount() (int64, error)
	ByteToLine(offset int64) (int64, error)
	LineStart(line int64) (int64, error)
	LineEnd(line int64) (int64, error)
	LineText(line int64) (string, error)
}

// Columns converts between byte offsets within a line and display columns.
type Columns interface {
	// Column returns the display column of the byte offset within line.
	Column(line string, offset int) int
	// Offset returns the byte offset of the grapheme covering column,
	// or len(line) when column lies past the end.
	Offset(line string, column int) int
}

// Env carries what a motion is computed against.
type Env struct {
	Text       Text
	Columns    Columns
	PageHeight int
}

// Motion is a content-aware cursor movement.
type Motion int

// Motions.
const (
	Left Motion = iota
	Right
	Up
	Down
	WordLeft
	WordRight
	LineStart
	LineEnd
	DocStart
	DocEnd
	PageUp
	PageDown
)

var motionNames = map[Motion]string{
	Left:      "left",
	Right:     "right",
	Up:        "up",
	Down:      "down",
	WordLeft:  "word-left",
	WordRight: "word-right",
	LineStart: "line-start",
	LineEnd:   "line-end",
	DocStart:  "doc-start",
	DocEnd:    "doc-end",
	PageUp:    "page-up",
	PageDown:  "page-down",
}

// String returns the motion name.
func (m Motion) String() string {
	if s, ok := motionNames[m]; ok {
		return s
	}
	return fmt.Sprintf("motion(%d)", int(m))
}

// ParseMotion returns the motion with the given name.
func ParseMotion(name string) (Motion, bool) {
	for m, s := range motionNames {
		if s == name {
			return m, true
		}
	}
	return 0, false
}

// IsVertical reports whether the motion keeps the desired column.
func (m Motion) IsVertical() bool {
	return m == Up || m == Down || m == PageUp || m == PageDown
}

// Apply computes the cursor resulting from motion m. The position is
// clamped to the document before moving.
func Apply(env Env, c Cursor, m Motion, extend bool) (Cursor, error) {
	pos := clamp(c.Position, env.Text.Len())
	line, err := env.Text.ByteToLine(pos)
	if err != nil {
		return c, err
	}
	start, err := env.Text.LineStart(line)
	if err != nil {
		return c, err
	}

	var target ByteOffset
	switch m {
	case Left, Right, WordLeft, WordRight:
		target, err = horizontal(env.Text, m, pos, line, start)
	case LineStart:
		target = start
	case LineEnd:
		target, err = env.Text.LineEnd(line)
	case DocStart:
		target = 0
	case DocEnd:
		target = env.Text.Len()
	case Up, Down, PageUp, PageDown:
		return vertical(env, c, m, pos, line, start, extend)
	default:
		return c, fmt.Errorf("unknown motion %d", m)
	}
	if err != nil {
		return c, err
	}
	return c.MoveTo(target, extend), nil
}

func horizontal(text Text, m Motion, pos ByteOffset, line int64, start ByteOffset) (ByteOffset, error) {
	content, err := text.LineText(line)
	if err != nil {
		return pos, err
	}
	col := int(pos - start)

	switch m {
	case Left, WordLeft:
		if col == 0 {
			if line == 0 {
				return pos, nil
			}
			return text.LineEnd(line - 1)
		}
		if m == Left {
			return start + ByteOffset(prevBoundary(content, col)), nil
		}
		return start + ByteOffset(wordLeft(content, col)), nil
	default:
		if col >= len(content) {
			if pos >= text.Len() {
				return pos, nil
			}
			return text.LineStart(line + 1)
		}
		if m == Right {
			return start + ByteOffset(nextBoundary(content, col)), nil
		}
		return start + ByteOffset(wordRight(content, col)), nil
	}
}

func vertical(env Env, c Cursor, m Motion, pos ByteOffset, line int64, start ByteOffset, extend bool) (Cursor, error) {
	count, err := env.Text.LineCount()
	if err != nil {
		return c, err
	}

	delta := int64(1)
	if m == PageUp || m == PageDown {
		delta = int64(max(env.PageHeight, 1))
	}
	if m == Up || m == PageUp {
		delta = -delta
	}
	target := min(max(line+delta, 0), count-1)
	if target == line {
		stay := c.MoveTo(pos, extend)
		stay.DesiredColumn = c.DesiredColumn
		return stay, nil
	}

	desired := c.DesiredColumn
	if desired < 0 {
		content, err := env.Text.LineText(line)
		if err != nil {
			return c, err
		}
		desired = env.Columns.Column(content, int(pos-start))
	}

	content, err := env.Text.LineText(target)
	if err != nil {
		return c, err
	}
	targetStart, err := env.Text.LineStart(target)
	if err != nil {
		return c, err
	}

	moved := c.MoveTo(targetStart+ByteOffset(env.Columns.Offset(content, desired)), extend)
	moved.DesiredColumn = desired
	return moved, nil
}

// MoveAll applies motion m to every cursor, then drops cursors that
// collapsed onto the same position.
func (cs *CursorSet) MoveAll(env Env, m Motion, extend bool) error {
	moved := make([]Cursor, len(cs.cursors))
	for i, c := range cs.cursors {
		next, err := Apply(env, c, m, extend)
		if err != nil {
			return err
		}
		moved[i] = next
	}
	cs.cursors = moved
	cs.Dedupe()
	return nil
}

// Move applies motion m to a single cursor.
func (cs *CursorSet) Move(env Env, id ID, m Motion, extend bool) error {
	i := cs.index(id)
	if i < 0 {
		return fmt.Errorf("move cursor %d: %w", id, ErrNoSuchCursor)
	}
	next, err := Apply(env, cs.cursors[i], m, extend)
	if err != nil {
		return err
	}
	cs.cursors[i] = next
	return nil
}

// graphemeBounds returns the start offset of every grapheme cluster in s
// followed by len(s).
func graphemeBounds(s string) []int {
	bounds := make([]int, 0, len(s)+1)
	state := -1
	pos := 0
	rest := s
	for len(rest) > 0 {
		bounds = append(bounds, pos)
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
	}
	return append(bounds, len(s))
}

// prevBoundary returns the grapheme boundary before col.
func prevBoundary(s string, col int) int {
	prev := 0
	for _, b := range graphemeBounds(s) {
		if b >= col {
			break
		}
		prev = b
	}
	return prev
}

// nextBoundary returns the grapheme boundary after col.
func nextBoundary(s string, col int) int {
	for _, b := range graphemeBounds(s) {
		if b > col {
			return b
		}
	}
	return len(s)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWordAt(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}

// wordRight skips non-word graphemes, then word graphemes.
func wordRight(s string, col int) int {
	bounds := graphemeBounds(s)
	i := 0
	for i < len(bounds)-1 && bounds[i] < col {
		i++
	}
	for i < len(bounds)-1 && !isWordAt(s, bounds[i]) {
		i++
	}
	for i < len(bounds)-1 && isWordAt(s, bounds[i]) {
		i++
	}
	return bounds[i]
}

// wordLeft skips non-word graphemes backwards, then word graphemes.
func wordLeft(s string, col int) int {
	bounds := graphemeBounds(s)
	i := len(bounds) - 1
	for i > 0 && bounds[i] > col {
		i--
	}
	for i > 0 && !isWordAt(s, bounds[i-1]) {
		i--
	}
	for i > 0 && isWordAt(s, bounds[i-1]) {
		i--
	}
	return bounds[i]
}
