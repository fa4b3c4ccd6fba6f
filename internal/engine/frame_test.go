package engine

import (
	"strings"
	"testing"

	"github.com/dshills/fresh/internal/engine/cursor"
	"github.com/dshills/fresh/internal/renderer/viewport"
)

func TestFrameRowsAndCursor(t *testing.T) {
	s := newState(t, "hello\nworld", WithSize(20, 5))
	if err := s.SetCursor(8, false); err != nil {
		t.Fatal(err)
	}

	f, err := s.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Rows) != 2 || f.LineCount != 2 {
		t.Fatalf("rows=%d lines=%d", len(f.Rows), f.LineCount)
	}
	if f.Rows[1].Cells[0].Text != "w" || f.Rows[1].Cells[0].Offset != 6 {
		t.Errorf("row 1 first cell = %+v", f.Rows[1].Cells[0])
	}
	if !f.Rows[0].Cells[5].EOL {
		t.Error("row 0 should end with the end-of-line cell")
	}
	if len(f.Cursors) != 1 || !f.Cursors[0].Primary || !f.Cursors[0].Visible {
		t.Fatalf("cursors = %+v", f.Cursors)
	}
	if f.Cursors[0].Pos != (viewport.ScreenPos{Row: 1, Col: 2}) {
		t.Errorf("cursor at %+v, expected row 1 col 2", f.Cursors[0].Pos)
	}
	if f.PrimaryLine != 1 || f.PrimaryColumn != 2 {
		t.Errorf("primary = %d:%d", f.PrimaryLine, f.PrimaryColumn)
	}
}

func TestFrameSelection(t *testing.T) {
	s := newState(t, "abcdef")
	if err := s.SelectRange(Range{Start: 1, End: 4}); err != nil {
		t.Fatal(err)
	}
	f, err := s.Frame()
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range f.Rows[0].Cells {
		want := c.Offset >= 1 && c.Offset < 4 && !c.EOL
		if c.Selected != want {
			t.Errorf("cell %d selected=%v, expected %v", c.Offset, c.Selected, want)
		}
	}
}

func TestWrappedLineEndDoesNotScrollHorizontally(t *testing.T) {
	long := strings.Repeat("word ", 30)
	s := newState(t, long+"\nnext", WithSize(40, 10))

	if err := s.Move(cursor.LineEnd, false); err != nil {
		t.Fatal(err)
	}
	f, err := s.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if f.LeftColumn != 0 {
		t.Errorf("left column = %d with wrap enabled", f.LeftColumn)
	}
	if f.Rows[0].Line != 0 || f.Rows[0].Cells[0].Offset != 0 {
		t.Error("first character of the line should stay on screen")
	}
	p := f.Cursors[0]
	if !p.Visible || p.Pos.Row != 3 || p.Pos.Col != 30 {
		t.Errorf("cursor at %+v visible=%v, expected last wrapped row", p.Pos, p.Visible)
	}

	// Home goes back to the logical line start.
	if err := s.Move(cursor.LineStart, false); err != nil {
		t.Fatal(err)
	}
	if s.Cursors().Primary().Position != 0 {
		t.Errorf("line start = %d", s.Cursors().Primary().Position)
	}
}

func TestToggleWrapScrollsWhenUnwrapped(t *testing.T) {
	long := strings.Repeat("x", 100)
	s := newState(t, long, WithSize(30, 5))
	if err := s.Move(cursor.LineEnd, false); err != nil {
		t.Fatal(err)
	}

	on, err := s.ToggleWrap()
	if err != nil || on {
		t.Fatalf("ToggleWrap = %v, %v", on, err)
	}
	if s.Viewport().LeftColumn() != 71 {
		t.Errorf("unwrapped left column = %d, expected 71", s.Viewport().LeftColumn())
	}

	on, _ = s.ToggleWrap()
	if !on || s.Viewport().LeftColumn() != 0 {
		t.Errorf("re-enabling wrap left column = %d", s.Viewport().LeftColumn())
	}
}

func TestClickPlacesCursor(t *testing.T) {
	s := newState(t, "first\nsecond\nthird", WithSize(20, 5))
	s.AddCursor(2)

	if err := s.Click(viewport.ScreenPos{Row: 1, Col: 3}, false); err != nil {
		t.Fatal(err)
	}
	if s.Cursors().Len() != 1 {
		t.Error("click should drop secondary cursors")
	}
	if p := s.Cursors().Primary().Position; p != 9 {
		t.Errorf("click at row 1 col 3 = %d, expected 9", p)
	}

	if err := s.Click(viewport.ScreenPos{Row: 2, Col: 99}, true); err != nil {
		t.Fatal(err)
	}
	r, ok := s.Cursors().Primary().SelectionRange()
	if !ok || r.Start != 9 || r.End != 18 {
		t.Errorf("shift-click selection = %v, %v", r, ok)
	}
}
