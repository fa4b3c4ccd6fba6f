package engine

import (
	"errors"
	"sort"

	"github.com/dshills/fresh/internal/engine/buffer"
	"github.com/dshills/fresh/internal/engine/chunk"
	"github.com/dshills/fresh/internal/engine/cursor"
	"github.com/dshills/fresh/internal/engine/history"
	"github.com/dshills/fresh/internal/renderer/viewport"
)

// Selection is one cursor's selected span and its content.
type Selection struct {
	CursorID cursor.ID
	Range    Range
	Text     string
}

// descending returns cursor IDs ordered by the start of their edit region,
// highest first.
func (s *State) descending() []cursor.ID {
	cs := s.cursors.All()
	start := func(c cursor.Cursor) ByteOffset {
		if r, ok := c.SelectionRange(); ok {
			return r.Start
		}
		return c.Position
	}
	sort.SliceStable(cs, func(i, j int) bool {
		return start(cs[i]) > start(cs[j])
	})
	ids := make([]cursor.ID, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

// forEachCursor runs edit for every cursor, highest position first, as one
// undo group. Each cursor is re-read before its edit so earlier edits in
// the batch are already reflected. Cursors merged away by an earlier edit
// are skipped.
func (s *State) forEachCursor(edit func(c cursor.Cursor) error) error {
	s.log.BeginGroup()
	defer s.log.EndGroup()

	for _, id := range s.descending() {
		c, ok := s.cursors.Get(id)
		if !ok {
			continue
		}
		if err := edit(c); err != nil {
			return err
		}
	}
	return s.Reveal()
}

// deleteSelection deletes c's selection, if any, and reports whether it
// did.
func (s *State) deleteSelection(c cursor.Cursor) (bool, error) {
	r, ok := c.SelectionRange()
	if !ok {
		return false, nil
	}
	e, err := s.deleteEvent(r, c.ID)
	if err != nil {
		return false, err
	}
	return true, s.commit(e)
}

// InsertText replaces every cursor's selection with text, or inserts text
// at every cursor.
func (s *State) InsertText(text string) error {
	return s.forEachCursor(func(c cursor.Cursor) error {
		if _, err := s.deleteSelection(c); err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		c, ok := s.cursors.Get(c.ID)
		if !ok {
			return nil
		}
		return s.commit(history.NewInsert(c.Position, text, c.ID))
	})
}

// Backspace deletes every selection, or the grapheme before each cursor.
func (s *State) Backspace() error {
	return s.deleteUnit(cursor.Left)
}

// DeleteForward deletes every selection, or the grapheme after each cursor.
func (s *State) DeleteForward() error {
	return s.deleteUnit(cursor.Right)
}

// DeleteWordBackward deletes every selection, or back to the previous word
// start.
func (s *State) DeleteWordBackward() error {
	return s.deleteUnit(cursor.WordLeft)
}

// deleteUnit deletes selections, or the span covered by motion m from each
// cursor without a selection.
func (s *State) deleteUnit(m cursor.Motion) error {
	env := s.env()
	return s.forEachCursor(func(c cursor.Cursor) error {
		if done, err := s.deleteSelection(c); done || err != nil {
			return err
		}
		moved, err := cursor.Apply(env, c, m, false)
		if err != nil {
			return err
		}
		r := buffer.NewRange(c.Position, moved.Position)
		if r.IsEmpty() {
			return nil
		}
		e, err := s.deleteEvent(r, c.ID)
		if err != nil {
			return err
		}
		return s.commit(e)
	})
}

// DeleteSelections deletes every non-empty selection, highest first, each
// attributed to its own cursor, as one undo group. It returns the number of
// selections deleted.
func (s *State) DeleteSelections() (int, error) {
	n := 0
	err := s.forEachCursor(func(c cursor.Cursor) error {
		done, err := s.deleteSelection(c)
		if done {
			n++
		}
		return err
	})
	return n, err
}

// Selections returns every non-empty selection in ascending position
// order, with its content.
func (s *State) Selections() ([]Selection, error) {
	var out []Selection
	for _, c := range s.cursors.ByPosition() {
		r, ok := c.SelectionRange()
		if !ok {
			continue
		}
		text, err := s.store.Read(r.Start, r.Len())
		if err != nil {
			return nil, err
		}
		out = append(out, Selection{CursorID: c.ID, Range: r, Text: text})
	}
	return out, nil
}

// Move applies a motion to every cursor, optionally extending selections.
func (s *State) Move(m cursor.Motion, extend bool) error {
	if err := s.cursors.MoveAll(s.env(), m, extend); err != nil {
		return err
	}
	return s.Reveal()
}

// SelectRange makes r the primary cursor's selection, with the cursor at
// r.End.
func (s *State) SelectRange(r Range) error {
	if err := buffer.CheckSpan("select", r.Start, r.Len(), s.store.Len()); err != nil {
		return err
	}
	if err := s.cursors.Select(s.cursors.PrimaryID(), r.Start, r.End); err != nil {
		return err
	}
	return s.Reveal()
}

// SelectAll selects the whole document with a single cursor.
func (s *State) SelectAll() error {
	s.cursors.RemoveSecondary()
	return s.SelectRange(Range{Start: 0, End: s.store.Len()})
}

// SetCursor moves the primary cursor to offset, clamped to the document.
func (s *State) SetCursor(offset ByteOffset, extend bool) error {
	offset = min(max(offset, 0), s.store.Len())
	if err := s.cursors.Set(s.cursors.PrimaryID(), offset, extend); err != nil {
		return err
	}
	return s.Reveal()
}

// AddCursor adds a cursor at offset, clamped to the document, and returns
// its ID. An existing cursor at the same position absorbs it.
func (s *State) AddCursor(offset ByteOffset) cursor.ID {
	offset = min(max(offset, 0), s.store.Len())
	id := s.cursors.Add(offset)
	s.cursors.Dedupe()
	return id
}

// AddCursorVertical adds a cursor one line above (m == cursor.Up) or below
// (m == cursor.Down) the primary cursor and makes it primary.
func (s *State) AddCursorVertical(m cursor.Motion) error {
	p := s.cursors.Primary()
	moved, err := cursor.Apply(s.env(), p, m, false)
	if err != nil {
		return err
	}
	if moved.Position == p.Position {
		return nil
	}
	id := s.cursors.Add(moved.Position)
	s.cursors.Dedupe()
	if _, ok := s.cursors.Get(id); ok {
		if err := s.cursors.SetPrimary(id); err != nil {
			return err
		}
	}
	return s.Reveal()
}

// Escape collapses every selection; with no selection it removes the
// secondary cursors.
func (s *State) Escape() {
	if s.cursors.HasSelection() {
		s.cursors.ClearSelections()
		return
	}
	s.cursors.RemoveSecondary()
}

// Click places the primary cursor at a screen position, dropping the
// other cursors unless extend is set, in which case the primary selection
// is extended.
func (s *State) Click(pos viewport.ScreenPos, extend bool) error {
	offset, err := s.view.ScreenToBuffer(s.store, pos)
	if err != nil {
		return err
	}
	if !extend {
		s.cursors.RemoveSecondary()
	}
	return s.SetCursor(offset, extend)
}

// Resize changes the viewport size.
func (s *State) Resize(width, height int) error {
	s.view.Resize(width, height)
	return s.Reveal()
}

// Scroll scrolls the viewport by delta lines without moving cursors.
func (s *State) Scroll(delta int64) error {
	return s.view.ScrollBy(s.store, delta)
}

// ToggleWrap flips soft wrapping and returns the new state.
func (s *State) ToggleWrap() (bool, error) {
	on := s.view.ToggleWrap()
	return on, s.Reveal()
}

// SetWrap turns soft wrapping on or off.
func (s *State) SetWrap(enabled bool) error {
	if s.view.Wrap() == enabled {
		return nil
	}
	s.view.SetWrap(enabled)
	return s.Reveal()
}

// Undo reverts the last edit group. ErrNothingToUndo reports a no-op.
func (s *State) Undo() error {
	if _, err := s.log.Undo(s); err != nil {
		return err
	}
	return s.Reveal()
}

// Redo re-applies the last undone group. ErrNothingToRedo reports a no-op.
func (s *State) Redo() error {
	if _, err := s.log.Redo(s); err != nil {
		return err
	}
	return s.Reveal()
}

// Save writes the document to its backing file. On failure the document
// stays modified.
func (s *State) Save() error {
	return s.store.Save()
}

// SaveAs writes the document to target, which becomes its file.
func (s *State) SaveAs(target chunk.Backing) error {
	return s.store.SaveAs(target)
}

// IsNoOp reports whether err only signals that there was nothing to undo
// or redo.
func IsNoOp(err error) bool {
	return errors.Is(err, ErrNothingToUndo) || errors.Is(err, ErrNothingToRedo)
}
