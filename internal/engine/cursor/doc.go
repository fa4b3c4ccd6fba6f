// Package cursor provides the cursor and selection model for one document.
//
// The cursor package handles:
//
//   - Identified cursors with an optional selection anchor (Cursor)
//   - The set of cursors of a document and its primary cursor (CursorSet)
//   - Content-aware motions computed against the document text (Motion)
//   - The offset shift rules applied to cursors after an edit
//
// Selection Model:
//
// A cursor has a Position, where typing occurs, and an optional Anchor.
// When the anchor is set and differs from the position, the ordered span
// between them is the cursor's selection. Collapsing a selection clears the
// anchor without moving the position.
//
// Multi-Cursor Support:
//
// CursorSet keeps cursors in creation order and gives each a small integer
// ID that is never reused within the set. Exactly one cursor is primary.
// Operations that need position order (batch deletion, clipboard) use
// ByPosition explicitly.
//
// Motions are computed from buffer offsets and line boundaries, never from
// wrapped screen geometry:
//
//	env := cursor.Env{Text: store, Columns: measurer, PageHeight: 24}
//	if err := cs.MoveAll(env, cursor.Down, false); err != nil {
//		return err
//	}
//
// Shifting cursors after an edit is not done by the set itself; the editor
// state runs one reconciliation pass using ShiftForInsert and ShiftForDelete.
//
// Thread Safety:
//
// Cursor is a value type. CursorSet is not thread-safe; it is owned by the
// editor's single mutation path.
package cursor
