// Package chunk implements the lazily materialized text store used for every
// open document.
//
// A Store partitions the document's address space into an ordered, gap-free
// list of chunks. A chunk is either Loaded (its bytes are held in memory) or
// Unloaded (only its offset, its size and the location of its bytes in the
// backing file are known). Opening a file creates Unloaded chunks only;
// reading or editing a span materializes exactly the chunks overlapping it,
// splitting chunks at the span boundaries first.
//
// # Mutation
//
// Every edit is expressed as a replacement of the span [start, end) with new
// text. The store builds the new chunk list on a copy, performing all I/O
// needed along the way, and swaps it in only when every step succeeded. A
// failed edit therefore leaves the store exactly as it was.
//
// # Lines
//
// Line queries are answered from per-chunk newline counts. Counting an
// Unloaded chunk reads its span from the backing file without retaining it,
// so navigating a very large file by line number does not load it.
//
// # Errors
//
// The store never clamps. Spans outside [0, Len] yield an error wrapping
// buffer.ErrInvalidOffset and failures of the backing file yield an error
// wrapping ErrIO.
package chunk
