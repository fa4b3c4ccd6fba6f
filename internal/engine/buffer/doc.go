// Package buffer holds the position and range types shared by every part of
// the editing core.
//
// All positions are byte offsets into the UTF-8 content of a document. The
// chunked store, the cursor model, the event log and the viewport all speak
// the same unit, so no conversion happens between layers; only the layout
// engine translates offsets into display cells.
package buffer
