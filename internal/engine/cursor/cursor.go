package cursor

import (
	"fmt"

	"github.com/dshills/fresh/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// ID identifies a cursor within its CursorSet.
type ID int

// Cursor is an insertion point with an optional selection anchor.
type Cursor struct {
	ID       ID
	Position ByteOffset

	// Anchor is meaningful only when HasAnchor is set.
	Anchor    ByteOffset
	HasAnchor bool

	// DesiredColumn is the display column vertical motion aims for, or -1
	// when it must be recomputed from Position.
	DesiredColumn int
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	if c.HasAnchor {
		return fmt.Sprintf("Cursor#%d(%d, anchor %d)", c.ID, c.Position, c.Anchor)
	}
	return fmt.Sprintf("Cursor#%d(%d)", c.ID, c.Position)
}

// SelectionRange returns the ordered span between anchor and position.
// It reports false when there is no anchor or the span is empty.
func (c Cursor) SelectionRange() (Range, bool) {
	if !c.HasAnchor || c.Anchor == c.Position {
		return Range{}, false
	}
	return buffer.NewRange(c.Anchor, c.Position), true
}

// HasSelection returns true if the cursor selects a non-empty span.
func (c Cursor) HasSelection() bool {
	_, ok := c.SelectionRange()
	return ok
}

// MoveTo returns the cursor moved to offset. When extend is true the
// anchor is dropped at the old position if not already set; otherwise the
// selection is cleared.
func (c Cursor) MoveTo(offset ByteOffset, extend bool) Cursor {
	if extend {
		if !c.HasAnchor {
			c.Anchor = c.Position
			c.HasAnchor = true
		}
	} else {
		c.HasAnchor = false
		c.Anchor = 0
	}
	c.Position = offset
	c.DesiredColumn = -1
	return c
}

// Select returns the cursor selecting [anchor, position).
func (c Cursor) Select(anchor, position ByteOffset) Cursor {
	c.Anchor = anchor
	c.HasAnchor = true
	c.Position = position
	c.DesiredColumn = -1
	return c
}

// Collapse clears the selection without moving the position.
func (c Cursor) Collapse() Cursor {
	c.HasAnchor = false
	c.Anchor = 0
	return c
}

// Clamp returns the cursor with position and anchor within [0, maxOffset].
func (c Cursor) Clamp(maxOffset ByteOffset) Cursor {
	c.Position = clamp(c.Position, maxOffset)
	if c.HasAnchor {
		c.Anchor = clamp(c.Anchor, maxOffset)
	}
	return c
}

func clamp(offset, maxOffset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}
