// Package layout computes how a logical line is laid out in display cells,
// including soft wrapping.
//
// Lines are segmented into grapheme clusters (github.com/rivo/uniseg) and
// measured with github.com/mattn/go-runewidth. Every grapheme occupies at
// least one cell and a tab advances to the next tab stop. The position just
// past the last grapheme is represented by an end-of-line cell one column
// wide, so the cursor always has a distinct cell to sit on.
//
// Wrapping is fixed-width: a grapheme that does not fit in the rest of a
// row starts the next row. Breaking is deterministic for a given line and
// width; it is not word-aware.
package layout

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell is one grapheme (or the end-of-line position) of a laid out line.
type Cell struct {
	Offset int    // Byte offset of the grapheme in the line
	Len    int    // Byte length; 0 for the end-of-line cell
	Column int    // Display column from the start of the line
	Width  int    // Display width, at least 1
	Text   string // Grapheme text; "" for the end-of-line cell
}

// IsEOL returns true for the end-of-line cell.
func (c Cell) IsEOL() bool {
	return c.Len == 0
}

// IsTab returns true if the cell is a tab.
func (c Cell) IsTab() bool {
	return c.Text == "\t"
}

// Row is one display row of a line.
type Row struct {
	First       int // Index of the first cell
	Last        int // Index one past the last cell
	StartColumn int // Display column of the first cell
	StartOffset int // Byte offset of the first cell
}

// LineLayout represents the visual layout of a single buffer line.
type LineLayout struct {
	Line  int64
	Cells []Cell // Graphemes followed by the end-of-line cell
	Rows  []Row  // At least one row
	Width int    // Display width of the content, excluding the end-of-line cell
}

// RowCount returns the number of display rows.
func (l *LineLayout) RowCount() int {
	return len(l.Rows)
}

// CellIndex returns the index of the cell covering byte offset. Offsets
// past the content map to the end-of-line cell.
func (l *LineLayout) CellIndex(offset int) int {
	lo, hi := 0, len(l.Cells)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if l.Cells[mid].Offset <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// RowOf returns the row containing cell index i.
func (l *LineLayout) RowOf(i int) int {
	for r, row := range l.Rows {
		if i < row.Last {
			return r
		}
	}
	return len(l.Rows) - 1
}

// Position returns the display row and the column within that row of byte
// offset.
func (l *LineLayout) Position(offset int) (row, col int) {
	i := l.CellIndex(offset)
	row = l.RowOf(i)
	return row, l.Cells[i].Column - l.Rows[row].StartColumn
}

// OffsetAt returns the byte offset of the cell at col within row. Columns
// past the last cell of the row map to that cell. It is the left inverse of
// Position.
func (l *LineLayout) OffsetAt(row, col int) int {
	if row < 0 {
		return 0
	}
	if row >= len(l.Rows) {
		row = len(l.Rows) - 1
	}
	r := l.Rows[row]
	for i := r.First; i < r.Last; i++ {
		c := l.Cells[i]
		if col < c.Column-r.StartColumn+c.Width {
			return c.Offset
		}
	}
	return l.Cells[r.Last-1].Offset
}

// RowCells returns the cells of row.
func (l *LineLayout) RowCells(row int) []Cell {
	if row < 0 || row >= len(l.Rows) {
		return nil
	}
	r := l.Rows[row]
	return l.Cells[r.First:r.Last]
}

// Engine computes line layouts.
type Engine struct {
	tabs TabStops
}

// NewEngine creates a layout engine with the given tab width.
func NewEngine(tabWidth int) *Engine {
	return &Engine{tabs: NewTabStops(tabWidth)}
}

// TabWidth returns the current tab width.
func (e *Engine) TabWidth() int {
	return e.tabs.Width()
}

// Layout computes the layout of line. A wrapWidth of 0 disables wrapping.
func (e *Engine) Layout(line string, lineNum int64, wrapWidth int) *LineLayout {
	l := &LineLayout{
		Line:  lineNum,
		Cells: make([]Cell, 0, len(line)+1),
	}

	col := 0
	state := -1
	rest := line
	offset := 0
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "\t" {
			w = e.tabs.Next(col) - col
		} else {
			w = graphemeWidth(cluster, w)
		}
		if wrapWidth > 0 && w > wrapWidth {
			w = wrapWidth
		}
		l.Cells = append(l.Cells, Cell{Offset: offset, Len: len(cluster), Column: col, Width: w, Text: cluster})
		offset += len(cluster)
		col += w
	}
	l.Width = col
	l.Cells = append(l.Cells, Cell{Offset: len(line), Column: col, Width: 1})

	l.Rows = wrapRows(l.Cells, wrapWidth)
	return l
}

// wrapRows splits cells into rows no wider than width.
func wrapRows(cells []Cell, width int) []Row {
	row := Row{}
	if width <= 0 {
		row.Last = len(cells)
		return []Row{row}
	}

	var rows []Row
	used := 0
	for i, c := range cells {
		if used > 0 && used+c.Width > width {
			row.Last = i
			rows = append(rows, row)
			row = Row{First: i, StartColumn: c.Column, StartOffset: c.Offset}
			used = 0
		}
		used += c.Width
	}
	row.Last = len(cells)
	return append(rows, row)
}

// graphemeWidth returns the display width of a grapheme, at least 1.
// uniseg's estimate is used as a fallback for clusters runewidth treats as
// zero width.
func graphemeWidth(cluster string, unisegWidth int) int {
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = unisegWidth
	}
	if w <= 0 {
		w = 1
	}
	return w
}

// Column implements cursor.Columns: the unwrapped display column of byte
// offset within line.
func (e *Engine) Column(line string, offset int) int {
	l := e.Layout(line, 0, 0)
	return l.Cells[l.CellIndex(offset)].Column
}

// Offset implements cursor.Columns: the byte offset of the grapheme
// covering display column col, or len(line) past the end.
func (e *Engine) Offset(line string, col int) int {
	l := e.Layout(line, 0, 0)
	return l.OffsetAt(0, col)
}
