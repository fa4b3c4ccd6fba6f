package buffer

import (
	"errors"
	"fmt"
)

// ByteOffset represents a byte position in a document.
type ByteOffset = int64

// ErrInvalidOffset reports an offset or span addressed outside the valid
// bounds of a document. It signals a contract violation by the caller and
// is never silently clamped by the store.
var ErrInvalidOffset = errors.New("invalid offset")

// Point represents a line and column position.
// Both Line and Column are 0-indexed; Column is in bytes from the line start.
type Point struct {
	Line   int64
	Column int64
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// OffsetError describes an out-of-range access.
type OffsetError struct {
	Op     string
	Offset ByteOffset
	Length ByteOffset
	Size   ByteOffset
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("%s [%d,+%d) outside document of size %d: %v",
		e.Op, e.Offset, e.Length, e.Size, ErrInvalidOffset)
}

func (e *OffsetError) Unwrap() error {
	return ErrInvalidOffset
}

// CheckSpan validates that [offset, offset+length) lies within [0, size].
func CheckSpan(op string, offset, length, size ByteOffset) error {
	if offset < 0 || length < 0 || offset > size || offset+length > size {
		return &OffsetError{Op: op, Offset: offset, Length: length, Size: size}
	}
	return nil
}
