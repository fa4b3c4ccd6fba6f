package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/fresh/internal/engine/chunk"
	"github.com/dshills/fresh/internal/engine/cursor"
	"github.com/dshills/fresh/internal/engine/history"
)

func newState(t *testing.T, text string, opts ...Option) *State {
	t.Helper()
	return New(chunk.FromString(text, chunk.WithChunkSize(8)), opts...)
}

func textOf(t *testing.T, s *State) string {
	t.Helper()
	text, err := s.Text()
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	return text
}

func positions(s *State) []ByteOffset {
	var out []ByteOffset
	for _, c := range s.Cursors().ByPosition() {
		out = append(out, c.Position)
	}
	return out
}

func equalOffsets(a, b []ByteOffset) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyShiftLaw(t *testing.T) {
	t.Run("insert before all cursors", func(t *testing.T) {
		s := newState(t, strings.Repeat("x", 40))
		for _, p := range []ByteOffset{10, 20, 30} {
			s.AddCursor(p)
		}
		// Insertion attributed to an unrelated cursor ID.
		if err := s.Apply(history.NewInsert(5, "abc", cursor.ID(99))); err != nil {
			t.Fatal(err)
		}
		want := []ByteOffset{0, 13, 23, 33}
		if got := positions(s); !equalOffsets(got, want) {
			t.Errorf("positions = %v, expected %v", got, want)
		}
	})

	t.Run("delete containing middle cursor", func(t *testing.T) {
		s := newState(t, strings.Repeat("x", 40))
		s.AddCursor(10)
		s.AddCursor(20)
		s.AddCursor(30)

		e, err := s.deleteEvent(Range{Start: 15, End: 25}, cursor.ID(99))
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Apply(e); err != nil {
			t.Fatal(err)
		}
		want := []ByteOffset{0, 10, 15, 20}
		if got := positions(s); !equalOffsets(got, want) {
			t.Errorf("positions = %v, expected %v", got, want)
		}
	})
}

func TestApplyMovesOriginatingCursor(t *testing.T) {
	s := newState(t, "hello world")
	id := s.AddCursor(8)

	if err := s.Apply(history.NewInsert(2, "XY", id)); err != nil {
		t.Fatal(err)
	}
	c, _ := s.Cursors().Get(id)
	if c.Position != 4 {
		t.Errorf("originating cursor at %d, expected end of insertion 4", c.Position)
	}
}

func TestApplyRejectsMismatchedDelete(t *testing.T) {
	s := newState(t, "hello")

	err := s.Apply(history.NewDelete(Range{Start: 0, End: 2}, "xx", 0))
	if !errors.Is(err, ErrEventMismatch) {
		t.Fatalf("expected ErrEventMismatch, got %v", err)
	}
	if got := textOf(t, s); got != "hello" {
		t.Errorf("document changed to %q", got)
	}
	if s.IsModified() {
		t.Error("rejected event marked the document modified")
	}
	if got := s.Cursors().Primary().Position; got != 0 {
		t.Errorf("cursor moved to %d", got)
	}
}

func TestInsertTextMultiCursor(t *testing.T) {
	s := newState(t, "ab\ncd\nef")
	s.AddCursor(3)
	s.AddCursor(6)

	if err := s.InsertText("> "); err != nil {
		t.Fatal(err)
	}
	if got := textOf(t, s); got != "> ab\n> cd\n> ef" {
		t.Errorf("text = %q", got)
	}
	want := []ByteOffset{2, 7, 12}
	if got := positions(s); !equalOffsets(got, want) {
		t.Errorf("positions = %v, expected %v", got, want)
	}

	// One logical action undoes as one group.
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := textOf(t, s); got != "ab\ncd\nef" {
		t.Errorf("after undo = %q", got)
	}
}

func TestInsertReplacesSelection(t *testing.T) {
	s := newState(t, "hello world")
	if err := s.SelectRange(Range{Start: 6, End: 11}); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertText("there"); err != nil {
		t.Fatal(err)
	}
	if got := textOf(t, s); got != "hello there" {
		t.Errorf("text = %q", got)
	}
	if s.Cursors().Primary().HasSelection() {
		t.Error("selection should be gone after replacing it")
	}
}

func TestBackspaceAndDeleteForward(t *testing.T) {
	s := newState(t, "ab\ncé")
	if err := s.SetCursor(3, false); err != nil {
		t.Fatal(err)
	}

	if err := s.Backspace(); err != nil {
		t.Fatal(err)
	}
	if got := textOf(t, s); got != "abcé" {
		t.Errorf("backspace over newline = %q", got)
	}

	if err := s.Move(cursor.Right, false); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteForward(); err != nil {
		t.Fatal(err)
	}
	if got := textOf(t, s); got != "abc" {
		t.Errorf("delete forward over multibyte grapheme = %q", got)
	}

	if err := s.Move(cursor.DocStart, false); err != nil {
		t.Fatal(err)
	}
	if err := s.Backspace(); err != nil {
		t.Fatal(err)
	}
	if s.Log().Len() != 2 {
		t.Errorf("backspace at start should record nothing, log has %d events", s.Log().Len())
	}
}

func TestCutPasteRoundTrip(t *testing.T) {
	const original = "hello world!"
	s := newState(t, original)

	if err := s.SelectRange(Range{Start: 6, End: 11}); err != nil {
		t.Fatal(err)
	}
	sels, err := s.Selections()
	if err != nil {
		t.Fatal(err)
	}
	if len(sels) != 1 || sels[0].Text != "world" {
		t.Fatalf("selection = %+v", sels)
	}

	n, err := s.DeleteSelections()
	if err != nil || n != 1 {
		t.Fatalf("DeleteSelections = %d, %v", n, err)
	}
	if got := textOf(t, s); got != "hello !" {
		t.Fatalf("after cut = %q", got)
	}

	if err := s.SetCursor(6, false); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertText(sels[0].Text); err != nil {
		t.Fatal(err)
	}
	if got := textOf(t, s); got != original {
		t.Errorf("after paste = %q, expected %q", got, original)
	}
}

func TestDeleteSelectionsHighestFirst(t *testing.T) {
	s := newState(t, "one two three four")
	if err := s.SelectRange(Range{Start: 0, End: 3}); err != nil {
		t.Fatal(err)
	}
	a := s.AddCursor(14)
	if err := s.Cursors().Select(a, 14, 18); err != nil {
		t.Fatal(err)
	}
	b := s.AddCursor(4)
	if err := s.Cursors().Select(b, 4, 7); err != nil {
		t.Fatal(err)
	}

	n, err := s.DeleteSelections()
	if err != nil || n != 3 {
		t.Fatalf("DeleteSelections = %d, %v", n, err)
	}
	if got := textOf(t, s); got != "  three " {
		t.Errorf("text = %q", got)
	}

	events := s.Log().Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].CursorID != a || events[1].CursorID != b || events[2].CursorID != 0 {
		t.Errorf("events not highest first with attribution: %v", events)
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := textOf(t, s); got != "one two three four" {
		t.Errorf("after undo = %q", got)
	}
}

func TestUndoRedoNoOps(t *testing.T) {
	s := newState(t, "x")
	if err := s.Undo(); !IsNoOp(err) {
		t.Errorf("expected no-op undo, got %v", err)
	}
	if err := s.Redo(); !IsNoOp(err) {
		t.Errorf("expected no-op redo, got %v", err)
	}
}

func TestLogReplayReproducesContent(t *testing.T) {
	const initial = "alpha\nbeta\ngamma"
	s := newState(t, initial)

	steps := []func() error{
		func() error { return s.Move(cursor.DocEnd, false) },
		func() error { return s.InsertText("\ndelta") },
		func() error { return s.Move(cursor.DocStart, false) },
		func() error { s.AddCursor(6); return nil },
		func() error { return s.InsertText("- ") },
		s.Undo,
		s.Undo,
		s.Redo,
		func() error { return s.Backspace() },
		func() error { return s.InsertText("X") },
	}
	for i, step := range steps {
		if err := step(); err != nil && !IsNoOp(err) {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	replayed := newState(t, initial)
	if err := s.Log().Replay(history.ApplierFunc(replayed.Apply)); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if got, want := textOf(t, replayed), textOf(t, s); got != want {
		t.Errorf("replay = %q, current = %q", got, want)
	}
}

func TestEscape(t *testing.T) {
	s := newState(t, "abcdef")
	if err := s.SelectRange(Range{Start: 1, End: 3}); err != nil {
		t.Fatal(err)
	}
	s.AddCursor(5)

	s.Escape()
	if s.Cursors().HasSelection() {
		t.Error("first escape should collapse selections")
	}
	if s.Cursors().Len() != 2 {
		t.Error("first escape should keep cursors")
	}
	if p := s.Cursors().Primary().Position; p != 3 {
		t.Errorf("collapse moved cursor to %d", p)
	}

	s.Escape()
	if s.Cursors().Len() != 1 {
		t.Error("second escape should remove secondary cursors")
	}
}

func TestAddCursorVertical(t *testing.T) {
	s := newState(t, "abc\ndef\nghi")
	if err := s.SetCursor(1, false); err != nil {
		t.Fatal(err)
	}
	if err := s.AddCursorVertical(cursor.Down); err != nil {
		t.Fatal(err)
	}
	if err := s.AddCursorVertical(cursor.Down); err != nil {
		t.Fatal(err)
	}
	want := []ByteOffset{1, 5, 9}
	if got := positions(s); !equalOffsets(got, want) {
		t.Errorf("positions = %v, expected %v", got, want)
	}
	if s.Cursors().Primary().Position != 9 {
		t.Errorf("newest cursor should be primary")
	}
}

func TestSaveClearsModified(t *testing.T) {
	backing := chunk.NewMemoryBacking([]byte("abc"))
	store, err := chunk.Open(backing)
	if err != nil {
		t.Fatal(err)
	}
	s := New(store)
	if err := s.InsertText("x"); err != nil {
		t.Fatal(err)
	}
	if !s.IsModified() {
		t.Fatal("expected modified")
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if s.IsModified() {
		t.Error("save should clear modified")
	}
	if string(backing.Bytes()) != "xabc" {
		t.Errorf("backing = %q", backing.Bytes())
	}
}
