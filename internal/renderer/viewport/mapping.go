package viewport

import (
	"github.com/dshills/fresh/internal/renderer/layout"
)

// ScreenPos is a position on the grid, relative to the viewport origin.
type ScreenPos struct {
	Row int
	Col int
}

// VisualRow is one display row of the viewport.
type VisualRow struct {
	Line        int64         // Logical line
	SubRow      int           // Wrapped row within the line
	LineStart   int64         // Document offset of the line's first byte
	StartOffset int64         // Document offset of the row's first cell
	StartColumn int           // Line display column shown at screen column 0
	Cells       []layout.Cell // Cells of the row, offsets relative to the line
}

// BufferToScreen maps a document offset to its screen position. visible is
// false when the position is scrolled out of view.
func (v *Viewport) BufferToScreen(text Text, offset int64) (pos ScreenPos, visible bool, err error) {
	line, err := text.ByteToLine(offset)
	if err != nil {
		return ScreenPos{}, false, err
	}
	if line < v.topLine {
		return ScreenPos{}, false, nil
	}
	start, err := text.LineStart(line)
	if err != nil {
		return ScreenPos{}, false, err
	}

	row := 0
	for ln := v.topLine; ln < line; ln++ {
		rows, err := v.rowsOf(text, ln)
		if err != nil {
			return ScreenPos{}, false, err
		}
		row += rows
		if row >= v.height {
			return ScreenPos{}, false, nil
		}
	}

	l, err := v.lineLayout(text, line)
	if err != nil {
		return ScreenPos{}, false, err
	}
	subRow, col := l.Position(int(offset - start))
	pos = ScreenPos{Row: row + subRow, Col: col - v.leftColumn}
	visible = pos.Row < v.height && pos.Col >= 0 && pos.Col < v.width
	return pos, visible, nil
}

// ScreenToBuffer maps a screen position to a document offset. Columns past
// the end of a row map to the row's last cell; rows past the end of the
// document map to the document end.
func (v *Viewport) ScreenToBuffer(text Text, pos ScreenPos) (int64, error) {
	count, err := text.LineCount()
	if err != nil {
		return 0, err
	}
	row := max(pos.Row, 0)
	col := max(pos.Col, 0) + v.leftColumn

	for ln := v.topLine; ln < count; ln++ {
		l, err := v.lineLayout(text, ln)
		if err != nil {
			return 0, err
		}
		if row < l.RowCount() {
			start, err := text.LineStart(ln)
			if err != nil {
				return 0, err
			}
			return start + int64(l.OffsetAt(row, col)), nil
		}
		row -= l.RowCount()
	}
	return text.Len(), nil
}

// Rows returns the display rows currently on screen, at most Height.
func (v *Viewport) Rows(text Text) ([]VisualRow, error) {
	start, end, err := v.VisibleRange(text)
	if err != nil {
		return nil, err
	}

	rows := make([]VisualRow, 0, v.height)
	for ln := start; ln < end && len(rows) < v.height; ln++ {
		l, err := v.lineLayout(text, ln)
		if err != nil {
			return nil, err
		}
		lineStart, err := text.LineStart(ln)
		if err != nil {
			return nil, err
		}
		for r := 0; r < l.RowCount() && len(rows) < v.height; r++ {
			row := l.Rows[r]
			rows = append(rows, VisualRow{
				Line:        ln,
				SubRow:      r,
				LineStart:   lineStart,
				StartOffset: lineStart + int64(row.StartOffset),
				StartColumn: row.StartColumn + v.leftColumn,
				Cells:       v.clip(l.RowCells(r), row.StartColumn),
			})
		}
	}
	return rows, nil
}

// clip drops cells scrolled out horizontally.
func (v *Viewport) clip(cells []layout.Cell, rowStart int) []layout.Cell {
	if v.wrap {
		return cells
	}
	out := cells[:0:0]
	for _, c := range cells {
		col := c.Column - rowStart - v.leftColumn
		if col >= 0 && col < v.width {
			out = append(out, c)
		}
	}
	return out
}
