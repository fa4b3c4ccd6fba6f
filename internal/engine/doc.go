// Package engine composes the editing core for one open document.
//
// A State owns exactly one chunked text store, one cursor set, one event
// log and one viewport. Editing intents (typing, deleting, moving, undo)
// are turned into Events; each Event is applied to the store and then one
// centralized reconciliation pass updates every cursor:
//
//   - the originating cursor moves to the end of an insertion or the start
//     of a deletion, dropping its selection
//   - every other cursor (and anchor) follows the shift rule: insertions
//     shift offsets at or after the insertion point forward, deletions shift
//     offsets after the range backward and collapse offsets inside it to
//     the range start
//   - cursors that end up on the same position are merged
//
// Batch edits over several cursors are planned highest position first, so
// an edit never invalidates the offsets of an edit not yet applied, and
// they are grouped in the log so one undo reverts the whole action.
//
// # Basic Usage
//
//	st := engine.New(chunk.FromString("hello"), engine.WithSize(80, 24))
//	st.Move(cursor.DocEnd, false)
//	st.InsertText(" world")
//	st.Undo()
//	frame, _ := st.Frame()
//
// # Thread Safety
//
// State is not thread-safe. All mutation happens on the editor's single
// input-processing path; background work reaches it only through the
// bridge package.
package engine
