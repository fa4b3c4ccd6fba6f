package chunk

import (
	"bytes"
	"fmt"

	"github.com/dshills/fresh/internal/engine/buffer"
)

// Kind identifies whether a chunk's bytes are in memory.
type Kind uint8

const (
	// Unloaded chunks know their offset and size but hold no content.
	Unloaded Kind = iota
	// Loaded chunks hold exactly Size bytes of content.
	Loaded
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Loaded:
		return "loaded"
	case Unloaded:
		return "unloaded"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Chunk is a contiguous span of a document.
type Chunk struct {
	Kind   Kind
	Offset buffer.ByteOffset
	Size   buffer.ByteOffset

	// Data holds the content of a Loaded chunk; len(Data) == Size.
	Data []byte

	// Modified is set once a Loaded chunk diverges from the backing file.
	Modified bool

	// Source is the offset of an Unloaded chunk's bytes in the backing file.
	// Edits before the chunk move Offset but never Source.
	Source buffer.ByteOffset

	lines      int64
	linesKnown bool
}

// End returns the exclusive end offset of the chunk.
func (c Chunk) End() buffer.ByteOffset {
	return c.Offset + c.Size
}

// IsLoaded reports whether the chunk's content is in memory.
func (c Chunk) IsLoaded() bool {
	return c.Kind == Loaded
}

// Contains reports whether offset lies within the chunk.
func (c Chunk) Contains(offset buffer.ByteOffset) bool {
	return offset >= c.Offset && offset < c.End()
}

// String returns a compact description of the chunk.
func (c Chunk) String() string {
	mod := ""
	if c.Modified {
		mod = "*"
	}
	return fmt.Sprintf("%s%s[%d:%d)", c.Kind, mod, c.Offset, c.End())
}

func newLoaded(offset buffer.ByteOffset, data []byte, modified bool) Chunk {
	c := Chunk{
		Kind:     Loaded,
		Offset:   offset,
		Size:     int64(len(data)),
		Data:     data,
		Modified: modified,
		Source:   offset,
	}
	c.lines = int64(bytes.Count(data, newline))
	c.linesKnown = true
	return c
}

// Split divides the chunk at the interior offset at into two adjacent chunks
// of the same kind. Splitting at or outside the chunk's bounds is rejected.
func (c Chunk) Split(at buffer.ByteOffset) (Chunk, Chunk, error) {
	if at <= c.Offset || at >= c.End() {
		return Chunk{}, Chunk{}, fmt.Errorf("split %s at %d: %w", c, at, buffer.ErrInvalidOffset)
	}

	n := at - c.Offset
	if c.Kind == Loaded {
		left := newLoaded(c.Offset, c.Data[:n:n], c.Modified)
		right := newLoaded(at, c.Data[n:], c.Modified)
		return left, right, nil
	}

	left := Chunk{Kind: Unloaded, Offset: c.Offset, Size: n, Source: c.Source}
	right := Chunk{Kind: Unloaded, Offset: at, Size: c.Size - n, Source: c.Source + n}
	return left, right, nil
}

var newline = []byte{'\n'}
