package engine

import (
	"github.com/dshills/fresh/internal/engine/cursor"
	"github.com/dshills/fresh/internal/renderer/viewport"
)

// Frame is the render model of a document: everything a renderer needs to
// draw the viewport, computed from buffer positions.
type Frame struct {
	Rows    []FrameRow
	Cursors []FrameCursor

	Width      int
	Height     int
	TopLine    int64
	LeftColumn int
	Wrap       bool
	LineCount  int64

	// Primary cursor location as logical line and byte column, for status
	// display.
	PrimaryLine   int64
	PrimaryColumn int64
}

// FrameRow is one display row.
type FrameRow struct {
	Line        int64
	SubRow      int
	StartOffset ByteOffset
	Cells       []FrameCell
}

// FrameCell is one grapheme on screen.
type FrameCell struct {
	Col      int        // Screen column
	Width    int        // Display width
	Text     string     // Grapheme; tabs are expanded by the renderer
	Offset   ByteOffset // Document offset
	EOL      bool       // End-of-line position
	Selected bool
}

// FrameCursor is a cursor's screen position.
type FrameCursor struct {
	ID      cursor.ID
	Pos     viewport.ScreenPos
	Visible bool
	Primary bool
}

// Frame computes the render model for the current state.
func (s *State) Frame() (Frame, error) {
	f := Frame{
		Width:      s.view.Width(),
		Height:     s.view.Height(),
		TopLine:    s.view.TopLine(),
		LeftColumn: s.view.LeftColumn(),
		Wrap:       s.view.Wrap(),
	}

	count, err := s.store.LineCount()
	if err != nil {
		return Frame{}, err
	}
	f.LineCount = count

	var selections []Range
	for _, c := range s.cursors.All() {
		if r, ok := c.SelectionRange(); ok {
			selections = append(selections, r)
		}
	}
	selected := func(off ByteOffset) bool {
		for _, r := range selections {
			if r.Contains(off) {
				return true
			}
		}
		return false
	}

	rows, err := s.view.Rows(s.store)
	if err != nil {
		return Frame{}, err
	}
	for _, row := range rows {
		fr := FrameRow{Line: row.Line, SubRow: row.SubRow, StartOffset: row.StartOffset}
		for _, c := range row.Cells {
			off := row.LineStart + ByteOffset(c.Offset)
			fr.Cells = append(fr.Cells, FrameCell{
				Col:      c.Column - row.StartColumn,
				Width:    c.Width,
				Text:     c.Text,
				Offset:   off,
				EOL:      c.IsEOL(),
				Selected: !c.IsEOL() && selected(off),
			})
		}
		f.Rows = append(f.Rows, fr)
	}

	primary := s.cursors.PrimaryID()
	for _, c := range s.cursors.All() {
		pos, visible, err := s.view.BufferToScreen(s.store, c.Position)
		if err != nil {
			return Frame{}, err
		}
		f.Cursors = append(f.Cursors, FrameCursor{ID: c.ID, Pos: pos, Visible: visible, Primary: c.ID == primary})
	}

	p := s.cursors.Primary().Position
	if f.PrimaryLine, err = s.store.ByteToLine(p); err != nil {
		return Frame{}, err
	}
	lineStart, err := s.store.LineStart(f.PrimaryLine)
	if err != nil {
		return Frame{}, err
	}
	f.PrimaryColumn = p - lineStart
	return f, nil
}
