// Package history provides the event log behind undo and redo.
//
// History is event sourced rather than snapshot based: every applied edit
// is recorded as an Event that carries enough information to be inverted
// without consulting the document. Memory cost scales with the size of the
// edits, not the size of the document.
//
// # Events
//
// An Event is either an insertion (position and inserted text) or a deletion
// (range and removed text), attributed to the cursor that originated it.
//
// # Log
//
// The Log keeps the applied events in order plus a redo stack:
//
//	log := history.NewLog()
//	log.Append(ev)             // after the edit was applied; clears redo
//	log.Undo(state)            // applies the inverse of the last group
//	log.Redo(state)            // re-applies the last undone group
//
// Replaying Events() from the document's state at log creation reproduces
// the current content exactly, after any sequence of undo and redo.
//
// # Grouping
//
// Events appended between BeginGroup and EndGroup share a group ID and undo
// together, so a multi-cursor cut is one undo step while each deletion stays
// attributed to its own cursor:
//
//	log.BeginGroup()
//	// ... one event per cursor ...
//	log.EndGroup()
package history
