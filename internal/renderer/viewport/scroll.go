package viewport

// ScrollTo sets the first visible line, clamped to the document.
func (v *Viewport) ScrollTo(text Text, line int64) error {
	count, err := text.LineCount()
	if err != nil {
		return err
	}
	v.topLine = min(max(line, 0), count-1)
	return nil
}

// ScrollBy scrolls vertically by delta lines.
func (v *Viewport) ScrollBy(text Text, delta int64) error {
	return v.ScrollTo(text, v.topLine+delta)
}

// ScrollHorizontal scrolls horizontally by delta columns. It does nothing
// while wrap is enabled.
func (v *Viewport) ScrollHorizontal(delta int) {
	if v.wrap {
		return
	}
	v.leftColumn = max(v.leftColumn+delta, 0)
}

// PageUp scrolls up by one screen.
func (v *Viewport) PageUp(text Text) error {
	return v.ScrollBy(text, -int64(v.height))
}

// PageDown scrolls down by one screen.
func (v *Viewport) PageDown(text Text) error {
	return v.ScrollBy(text, int64(v.height))
}

// ScrollToReveal scrolls the minimum amount needed to show offset.
//
// Vertical scrolling is by whole logical lines. When the line holding
// offset is taller than the screen it becomes the top line, so its first
// character stays visible. Horizontal scrolling only happens with wrap
// disabled.
func (v *Viewport) ScrollToReveal(text Text, offset int64) error {
	offset = min(max(offset, 0), text.Len())
	line, err := text.ByteToLine(offset)
	if err != nil {
		return err
	}
	start, err := text.LineStart(line)
	if err != nil {
		return err
	}
	l, err := v.lineLayout(text, line)
	if err != nil {
		return err
	}
	row, _ := l.Position(int(offset - start))

	if line < v.topLine {
		v.topLine = line
	} else {
		// Walk up from the cursor's row while the lines above still fit;
		// at most height lines are measured.
		needed := row + 1
		top := line
		for top > v.topLine {
			rows, err := v.rowsOf(text, top-1)
			if err != nil {
				return err
			}
			if needed+rows > v.height {
				break
			}
			needed += rows
			top--
		}
		v.topLine = top
	}

	if v.wrap {
		v.leftColumn = 0
		return nil
	}

	c := l.Cells[l.CellIndex(int(offset-start))]
	if c.Column < v.leftColumn {
		v.leftColumn = c.Column
	} else if c.Column+c.Width > v.leftColumn+v.width {
		v.leftColumn = c.Column + c.Width - v.width
	}
	return nil
}
