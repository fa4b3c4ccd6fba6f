// Package viewport computes which part of a document is visible on a fixed
// size character grid and maps between buffer offsets and screen cells.
//
// A Viewport stores only its size, its vertical scroll offset (a logical
// line index), its wrap mode and, when wrapping is off, a horizontal scroll
// offset. Everything else (visible lines, row mapping) is recomputed from
// the document on demand. Wrapping and horizontal scrolling are mutually
// exclusive: enabling wrap forces the horizontal offset to zero and no
// operation reintroduces it while wrap is on.
//
// Viewport is not safe for concurrent use; it is owned by the editor's
// single mutation path.
package viewport

import (
	"github.com/dshills/fresh/internal/renderer/layout"
)

// Text is the read access the viewport needs from a document.
type Text interface {
	Len() int64
	LineCount() (int64, error)
	ByteToLine(offset int64) (int64, error)
	LineStart(line int64) (int64, error)
	LineText(line int64) (string, error)
}

// Viewport represents the visible portion of a document.
type Viewport struct {
	// Position in buffer (first visible line)
	topLine    int64
	leftColumn int

	// Size in screen cells
	width  int
	height int

	wrap bool

	layouts *layout.LineCache
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithWrap sets the initial wrap mode. Wrapping is on by default.
func WithWrap(enabled bool) Option {
	return func(v *Viewport) {
		v.wrap = enabled
	}
}

// WithLineCache sets the layout cache used for line layouts.
func WithLineCache(c *layout.LineCache) Option {
	return func(v *Viewport) {
		v.layouts = c
	}
}

// New creates a viewport with the given size.
// Width and height are clamped to a minimum of 1 to prevent underflow.
func New(width, height int, opts ...Option) *Viewport {
	v := &Viewport{
		width:  max(width, 1),
		height: max(height, 1),
		wrap:   true,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.layouts == nil {
		v.layouts = layout.NewLineCache(layout.NewEngine(layout.DefaultTabWidth), 1024)
	}
	return v
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int64 {
	return v.topLine
}

// LeftColumn returns the first visible column. It is always 0 while wrap
// is enabled.
func (v *Viewport) LeftColumn() int {
	return v.leftColumn
}

// Wrap reports whether soft wrapping is enabled.
func (v *Viewport) Wrap() bool {
	return v.wrap
}

// Layouts returns the layout cache.
func (v *Viewport) Layouts() *layout.LineCache {
	return v.layouts
}

// Resize updates the viewport size.
// Width and height are clamped to a minimum of 1 to prevent underflow.
func (v *Viewport) Resize(width, height int) {
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// SetWrap enables or disables wrapping. Enabling it clears the horizontal
// offset.
func (v *Viewport) SetWrap(enabled bool) {
	v.wrap = enabled
	if enabled {
		v.leftColumn = 0
	}
}

// ToggleWrap flips the wrap mode and returns the new state.
func (v *Viewport) ToggleWrap() bool {
	v.SetWrap(!v.wrap)
	return v.wrap
}

// wrapWidth returns the layout wrap width, 0 when not wrapping.
func (v *Viewport) wrapWidth() int {
	if v.wrap {
		return v.width
	}
	return 0
}

// lineLayout returns the layout of line under the current wrap mode.
func (v *Viewport) lineLayout(text Text, line int64) (*layout.LineLayout, error) {
	content, err := text.LineText(line)
	if err != nil {
		return nil, err
	}
	return v.layouts.Get(line, content, v.wrapWidth()), nil
}

// rowsOf returns the number of display rows of line.
func (v *Viewport) rowsOf(text Text, line int64) (int, error) {
	if !v.wrap {
		return 1, nil
	}
	l, err := v.lineLayout(text, line)
	if err != nil {
		return 0, err
	}
	return l.RowCount(), nil
}

// VisibleRange returns the logical lines [start, end) intersecting the
// screen.
func (v *Viewport) VisibleRange(text Text) (start, end int64, err error) {
	count, err := text.LineCount()
	if err != nil {
		return 0, 0, err
	}
	start = min(v.topLine, count-1)
	used := 0
	end = start
	for end < count && used < v.height {
		rows, err := v.rowsOf(text, end)
		if err != nil {
			return 0, 0, err
		}
		used += rows
		end++
	}
	return start, end, nil
}
