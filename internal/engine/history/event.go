package history

import (
	"fmt"
	"time"

	"github.com/dshills/fresh/internal/engine/buffer"
	"github.com/dshills/fresh/internal/engine/cursor"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Kind distinguishes insertions from deletions.
type Kind uint8

const (
	// Insert adds Text at Range.Start; Range is empty.
	Insert Kind = iota + 1
	// Delete removes Range; Text holds the removed content.
	Delete
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Event is an immutable, self-describing record of one atomic edit.
type Event struct {
	Kind     Kind
	Range    Range
	Text     string
	CursorID cursor.ID

	// Group is assigned by the Log when the event is appended.
	Group     uint64
	Timestamp time.Time
}

// NewInsert creates an insertion event.
func NewInsert(position ByteOffset, text string, cursorID cursor.ID) Event {
	return Event{
		Kind:      Insert,
		Range:     Range{Start: position, End: position},
		Text:      text,
		CursorID:  cursorID,
		Timestamp: time.Now(),
	}
}

// NewDelete creates a deletion event. deleted must be the content of r.
func NewDelete(r Range, deleted string, cursorID cursor.ID) Event {
	return Event{
		Kind:      Delete,
		Range:     r,
		Text:      deleted,
		CursorID:  cursorID,
		Timestamp: time.Now(),
	}
}

// Position returns where the edit takes place.
func (e Event) Position() ByteOffset {
	return e.Range.Start
}

// Inverse returns the event that exactly undoes e.
func (e Event) Inverse() Event {
	inv := e
	switch e.Kind {
	case Insert:
		inv.Kind = Delete
		inv.Range = Range{Start: e.Range.Start, End: e.Range.Start + ByteOffset(len(e.Text))}
	case Delete:
		inv.Kind = Insert
		inv.Range = Range{Start: e.Range.Start, End: e.Range.Start}
	}
	return inv
}

// Delta returns the change in document length caused by the event.
func (e Event) Delta() ByteOffset {
	if e.Kind == Delete {
		return -e.Range.Len()
	}
	return ByteOffset(len(e.Text))
}

// Validate checks the event is self-consistent.
func (e Event) Validate() error {
	switch e.Kind {
	case Insert:
		if !e.Range.IsEmpty() {
			return fmt.Errorf("insert with non-empty range %s", e.Range)
		}
	case Delete:
		if e.Range.Len() != ByteOffset(len(e.Text)) {
			return fmt.Errorf("delete of %s carries %d bytes", e.Range, len(e.Text))
		}
	default:
		return fmt.Errorf("unknown event kind %d", e.Kind)
	}
	if e.Range.Start < 0 {
		return fmt.Errorf("event at %d: %w", e.Range.Start, buffer.ErrInvalidOffset)
	}
	return nil
}

// String returns a compact description of the event.
func (e Event) String() string {
	if e.Kind == Insert {
		return fmt.Sprintf("insert %q at %d by #%d", e.Text, e.Range.Start, e.CursorID)
	}
	return fmt.Sprintf("delete %s (%q) by #%d", e.Range, e.Text, e.CursorID)
}
