package cursor

// AdjustForInsertion transforms an offset after text of length insertLen is
// inserted at insertOffset. Offsets at or after the insertion point shift
// right.
func AdjustForInsertion(offset, insertOffset, insertLen ByteOffset) ByteOffset {
	// Before insertion: unchanged
	if offset < insertOffset {
		return offset
	}

	// At or after insertion: shift right
	return offset + insertLen
}

// AdjustForDeletion transforms an offset after deleteRange is removed.
// Offsets inside the range collapse to its start.
func AdjustForDeletion(offset ByteOffset, deleteRange Range) ByteOffset {
	// Before deletion: unchanged
	if offset <= deleteRange.Start {
		return offset
	}

	// Within deletion: move to start
	if offset < deleteRange.End {
		return deleteRange.Start
	}

	// After deletion: shift left
	return offset - deleteRange.Len()
}

// ShiftForInsert applies AdjustForInsertion to a cursor's position and
// anchor.
func ShiftForInsert(c Cursor, insertOffset, insertLen ByteOffset) Cursor {
	c.Position = AdjustForInsertion(c.Position, insertOffset, insertLen)
	if c.HasAnchor {
		c.Anchor = AdjustForInsertion(c.Anchor, insertOffset, insertLen)
	}
	return c
}

// ShiftForDelete applies AdjustForDeletion to a cursor's position and
// anchor.
func ShiftForDelete(c Cursor, deleteRange Range) Cursor {
	c.Position = AdjustForDeletion(c.Position, deleteRange)
	if c.HasAnchor {
		c.Anchor = AdjustForDeletion(c.Anchor, deleteRange)
	}
	return c
}
