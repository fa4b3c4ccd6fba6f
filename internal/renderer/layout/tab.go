package layout

// DefaultTabWidth is used when no valid tab width is configured.
const DefaultTabWidth = 4

// TabStops computes tab stop columns.
type TabStops struct {
	width int
}

// NewTabStops creates tab stops every width columns.
func NewTabStops(width int) TabStops {
	if width < 1 {
		width = DefaultTabWidth
	}
	return TabStops{width: width}
}

// Width returns the distance between tab stops.
func (t TabStops) Width() int {
	return t.width
}

// Next returns the next tab stop column after col.
func (t TabStops) Next(col int) int {
	return col + t.width - (col % t.width)
}

// IsStop returns true if col is a tab stop.
func (t TabStops) IsStop(col int) bool {
	return col%t.width == 0
}
