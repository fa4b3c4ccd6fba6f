package cursor

import (
	"errors"
	"testing"

	"github.com/dshills/fresh/internal/engine/buffer"
)

func TestSelectionRange(t *testing.T) {
	tests := []struct {
		name   string
		cursor Cursor
		want   Range
		ok     bool
	}{
		{"no anchor", Cursor{Position: 5}, Range{}, false},
		{"anchor equals position", Cursor{Position: 5, Anchor: 5, HasAnchor: true}, Range{}, false},
		{"forward", Cursor{Position: 10, Anchor: 5, HasAnchor: true}, Range{Start: 5, End: 10}, true},
		{"backward", Cursor{Position: 5, Anchor: 10, HasAnchor: true}, Range{Start: 5, End: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cursor.SelectionRange()
			if ok != tt.ok || got != tt.want {
				t.Errorf("SelectionRange() = %s, %v; expected %s, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCursorMoveToExtend(t *testing.T) {
	c := Cursor{Position: 5, DesiredColumn: 3}

	c = c.MoveTo(8, true)
	if !c.HasAnchor || c.Anchor != 5 || c.Position != 8 {
		t.Errorf("extend from 5 to 8 gave %s", c)
	}
	if c.DesiredColumn != -1 {
		t.Errorf("desired column should reset, got %d", c.DesiredColumn)
	}

	c = c.MoveTo(12, true)
	if c.Anchor != 5 {
		t.Errorf("anchor should stay at 5, got %d", c.Anchor)
	}

	c = c.MoveTo(2, false)
	if c.HasAnchor || c.Position != 2 {
		t.Errorf("plain move should clear selection, got %s", c)
	}
}

func TestCollapseKeepsPosition(t *testing.T) {
	c := Cursor{Position: 3}.Select(9, 3)
	c = c.Collapse()
	if c.HasSelection() || c.Position != 3 {
		t.Errorf("Collapse gave %s", c)
	}
}

func TestCursorSetIDs(t *testing.T) {
	cs := NewCursorSet(0)
	a := cs.Add(10)
	b := cs.Add(20)

	if cs.PrimaryID() != 0 || a != 1 || b != 2 {
		t.Fatalf("unexpected IDs: primary=%d a=%d b=%d", cs.PrimaryID(), a, b)
	}
	if err := cs.Remove(b); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if c := cs.Add(30); c != 3 {
		t.Errorf("IDs must not be reused, got %d", c)
	}
}

func TestCursorSetOrder(t *testing.T) {
	cs := NewCursorSet(50)
	cs.Add(10)
	cs.Add(30)

	var creation []ByteOffset
	for _, c := range cs.All() {
		creation = append(creation, c.Position)
	}
	if creation[0] != 50 || creation[1] != 10 || creation[2] != 30 {
		t.Errorf("All() should be creation order, got %v", creation)
	}

	var positions []ByteOffset
	for _, c := range cs.ByPosition() {
		positions = append(positions, c.Position)
	}
	if positions[0] != 10 || positions[1] != 30 || positions[2] != 50 {
		t.Errorf("ByPosition() should be ascending, got %v", positions)
	}
}

func TestCursorSetRemoveRules(t *testing.T) {
	cs := NewCursorSet(0)
	if err := cs.Remove(cs.PrimaryID()); !errors.Is(err, ErrLastCursor) {
		t.Errorf("expected ErrLastCursor, got %v", err)
	}

	other := cs.Add(5)
	if err := cs.Remove(cs.PrimaryID()); !errors.Is(err, ErrPrimaryCursor) {
		t.Errorf("expected ErrPrimaryCursor, got %v", err)
	}
	if err := cs.Remove(ID(99)); !errors.Is(err, ErrNoSuchCursor) {
		t.Errorf("expected ErrNoSuchCursor, got %v", err)
	}

	if err := cs.SetPrimary(other); err != nil {
		t.Fatalf("SetPrimary failed: %v", err)
	}
	if err := cs.Remove(0); err != nil {
		t.Errorf("removing a former primary should succeed: %v", err)
	}
	if cs.Len() != 1 || cs.Primary().Position != 5 {
		t.Errorf("unexpected set after removal: %v", cs.All())
	}
}

func TestCursorSetDedupeKeepsPrimary(t *testing.T) {
	cs := NewCursorSet(0)
	a := cs.Add(7)
	b := cs.Add(7)
	c := cs.Add(9)
	if err := cs.SetPrimary(b); err != nil {
		t.Fatal(err)
	}

	removed := cs.Dedupe()
	if len(removed) != 1 || removed[0] != a {
		t.Errorf("expected cursor %d removed, got %v", a, removed)
	}
	if _, ok := cs.Get(b); !ok {
		t.Error("primary cursor must survive dedupe")
	}
	if _, ok := cs.Get(c); !ok {
		t.Error("cursor at distinct position must survive dedupe")
	}
}

func TestCursorSetClearAndRemoveSecondary(t *testing.T) {
	cs := NewCursorSet(0)
	if err := cs.Select(cs.PrimaryID(), 0, 4); err != nil {
		t.Fatal(err)
	}
	id := cs.Add(10)
	if err := cs.Set(id, 12, true); err != nil {
		t.Fatal(err)
	}
	if !cs.HasSelection() {
		t.Fatal("expected selections")
	}

	cs.ClearSelections()
	if cs.HasSelection() {
		t.Error("ClearSelections should collapse every selection")
	}
	if p := cs.Primary(); p.Position != 4 {
		t.Errorf("collapse should not move position, got %d", p.Position)
	}

	cs.RemoveSecondary()
	if cs.Len() != 1 || cs.PrimaryID() != 0 {
		t.Errorf("RemoveSecondary left %v", cs.All())
	}
}

func TestShiftLaw(t *testing.T) {
	cursors := []Cursor{{ID: 1, Position: 10}, {ID: 2, Position: 20}, {ID: 3, Position: 30}}

	t.Run("insert before all", func(t *testing.T) {
		for _, c := range cursors {
			got := ShiftForInsert(c, 10, 4)
			if got.Position != c.Position+4 {
				t.Errorf("cursor %d: %d, expected %d", c.ID, got.Position, c.Position+4)
			}
		}
	})

	t.Run("delete containing middle", func(t *testing.T) {
		r := buffer.Range{Start: 15, End: 25}
		want := []ByteOffset{10, 15, 20}
		for i, c := range cursors {
			if got := ShiftForDelete(c, r); got.Position != want[i] {
				t.Errorf("cursor %d: %d, expected %d", c.ID, got.Position, want[i])
			}
		}
	})

	t.Run("anchor follows", func(t *testing.T) {
		c := Cursor{Position: 30, Anchor: 22, HasAnchor: true}
		got := ShiftForDelete(c, buffer.Range{Start: 20, End: 25})
		if got.Anchor != 20 || got.Position != 25 {
			t.Errorf("got %s, expected anchor 20 position 25", got)
		}
	})
}

func TestAdjustForDeletionBoundaries(t *testing.T) {
	r := buffer.Range{Start: 5, End: 10}
	tests := []struct {
		offset, want ByteOffset
	}{
		{4, 4}, {5, 5}, {7, 5}, {10, 5}, {12, 7},
	}
	for _, tt := range tests {
		if got := AdjustForDeletion(tt.offset, r); got != tt.want {
			t.Errorf("AdjustForDeletion(%d) = %d, expected %d", tt.offset, got, tt.want)
		}
	}
}
