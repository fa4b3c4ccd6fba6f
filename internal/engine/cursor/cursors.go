package cursor

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNoSuchCursor is returned when an ID is not in the set.
	ErrNoSuchCursor = errors.New("no such cursor")

	// ErrLastCursor is returned when removing the only cursor.
	ErrLastCursor = errors.New("cannot remove the last cursor")

	// ErrPrimaryCursor is returned when removing the primary cursor while
	// other cursors exist.
	ErrPrimaryCursor = errors.New("cannot remove the primary cursor")
)

// CursorSet owns the cursors of one document.
// Cursors are kept in creation order; IDs are never reused.
type CursorSet struct {
	cursors []Cursor
	primary ID
	nextID  ID
}

// NewCursorSet creates a set with a single primary cursor at offset.
func NewCursorSet(offset ByteOffset) *CursorSet {
	cs := &CursorSet{}
	cs.primary = cs.Add(offset)
	return cs
}

// Add creates a cursor at offset and returns its ID.
func (cs *CursorSet) Add(offset ByteOffset) ID {
	id := cs.nextID
	cs.nextID++
	cs.cursors = append(cs.cursors, Cursor{ID: id, Position: offset, DesiredColumn: -1})
	return id
}

// Remove deletes a cursor. The primary cursor can only be removed by
// RemoveSecondary on the others, and the last cursor never.
func (cs *CursorSet) Remove(id ID) error {
	i := cs.index(id)
	if i < 0 {
		return fmt.Errorf("remove cursor %d: %w", id, ErrNoSuchCursor)
	}
	if len(cs.cursors) == 1 {
		return ErrLastCursor
	}
	if id == cs.primary {
		return ErrPrimaryCursor
	}
	cs.cursors = append(cs.cursors[:i], cs.cursors[i+1:]...)
	return nil
}

// Get returns the cursor with the given ID.
func (cs *CursorSet) Get(id ID) (Cursor, bool) {
	i := cs.index(id)
	if i < 0 {
		return Cursor{}, false
	}
	return cs.cursors[i], true
}

// Primary returns the primary cursor.
func (cs *CursorSet) Primary() Cursor {
	c, _ := cs.Get(cs.primary)
	return c
}

// PrimaryID returns the ID of the primary cursor.
func (cs *CursorSet) PrimaryID() ID {
	return cs.primary
}

// SetPrimary designates an existing cursor as primary.
func (cs *CursorSet) SetPrimary(id ID) error {
	if cs.index(id) < 0 {
		return fmt.Errorf("set primary %d: %w", id, ErrNoSuchCursor)
	}
	cs.primary = id
	return nil
}

// Len returns the number of cursors.
func (cs *CursorSet) Len() int {
	return len(cs.cursors)
}

// IsMulti returns true if there are multiple cursors.
func (cs *CursorSet) IsMulti() bool {
	return len(cs.cursors) > 1
}

// All returns a copy of all cursors in creation order.
func (cs *CursorSet) All() []Cursor {
	result := make([]Cursor, len(cs.cursors))
	copy(result, cs.cursors)
	return result
}

// ByPosition returns a copy of all cursors in ascending position order.
// Cursors at the same position keep creation order.
func (cs *CursorSet) ByPosition() []Cursor {
	result := cs.All()
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result
}

// Update replaces the state of the cursor with c.ID.
func (cs *CursorSet) Update(c Cursor) error {
	i := cs.index(c.ID)
	if i < 0 {
		return fmt.Errorf("update cursor %d: %w", c.ID, ErrNoSuchCursor)
	}
	cs.cursors[i] = c
	return nil
}

// Set moves a cursor to offset, optionally extending its selection.
func (cs *CursorSet) Set(id ID, offset ByteOffset, extend bool) error {
	i := cs.index(id)
	if i < 0 {
		return fmt.Errorf("set cursor %d: %w", id, ErrNoSuchCursor)
	}
	cs.cursors[i] = cs.cursors[i].MoveTo(offset, extend)
	return nil
}

// Select sets a cursor's selection to [anchor, position).
func (cs *CursorSet) Select(id ID, anchor, position ByteOffset) error {
	i := cs.index(id)
	if i < 0 {
		return fmt.Errorf("select cursor %d: %w", id, ErrNoSuchCursor)
	}
	cs.cursors[i] = cs.cursors[i].Select(anchor, position)
	return nil
}

// HasSelection returns true if any cursor selects a non-empty span.
func (cs *CursorSet) HasSelection() bool {
	for _, c := range cs.cursors {
		if c.HasSelection() {
			return true
		}
	}
	return false
}

// ClearSelections collapses every selection without moving positions.
func (cs *CursorSet) ClearSelections() {
	for i := range cs.cursors {
		cs.cursors[i] = cs.cursors[i].Collapse()
	}
}

// RemoveSecondary removes every cursor except the primary.
func (cs *CursorSet) RemoveSecondary() {
	if p, ok := cs.Get(cs.primary); ok {
		cs.cursors = []Cursor{p}
	}
}

// Clamp clamps every cursor to [0, maxOffset].
func (cs *CursorSet) Clamp(maxOffset ByteOffset) {
	for i := range cs.cursors {
		cs.cursors[i] = cs.cursors[i].Clamp(maxOffset)
	}
}

// Dedupe removes cursors whose position equals that of an earlier cursor
// in creation order. The primary cursor always survives. It returns the
// IDs removed.
func (cs *CursorSet) Dedupe() []ID {
	if len(cs.cursors) <= 1 {
		return nil
	}

	taken := make(map[ByteOffset]bool, len(cs.cursors))
	taken[cs.Primary().Position] = true

	var removed []ID
	kept := cs.cursors[:0]
	for _, c := range cs.cursors {
		if c.ID != cs.primary {
			if taken[c.Position] {
				removed = append(removed, c.ID)
				continue
			}
			taken[c.Position] = true
		}
		kept = append(kept, c)
	}
	cs.cursors = kept
	return removed
}

// Clone returns a deep copy of the cursor set.
func (cs *CursorSet) Clone() *CursorSet {
	clone := &CursorSet{
		cursors: make([]Cursor, len(cs.cursors)),
		primary: cs.primary,
		nextID:  cs.nextID,
	}
	copy(clone.cursors, cs.cursors)
	return clone
}

func (cs *CursorSet) index(id ID) int {
	for i, c := range cs.cursors {
		if c.ID == id {
			return i
		}
	}
	return -1
}
