package renderer

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/fresh/internal/engine"
	"github.com/dshills/fresh/internal/renderer/backend"
)

// GutterWidth is the width of the line number gutter: four digits and " │ ".
const GutterWidth = 7

// Options configures the renderer.
type Options struct {
	ShowLineNumbers bool
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{ShowLineNumbers: true}
}

// Rect is a screen rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Styles used for the editor chrome.
var (
	styleText      = backend.DefaultStyle
	styleGutter    = backend.DefaultStyle.WithAttrs(backend.AttrDim)
	styleSelection = backend.DefaultStyle.WithAttrs(backend.AttrReverse)
	styleCursor    = backend.DefaultStyle.WithAttrs(backend.AttrReverse | backend.AttrUnderline)
	styleTab       = backend.DefaultStyle
	styleTabActive = backend.DefaultStyle.WithColors(backend.ColorOlive, backend.ColorDefault).WithAttrs(backend.AttrBold)
	styleStatus    = backend.DefaultStyle.WithColors(backend.ColorBlack, backend.ColorSilver)
	stylePanel     = backend.DefaultStyle.WithAttrs(backend.AttrDim)
	stylePanelSel  = backend.DefaultStyle.WithAttrs(backend.AttrReverse)
)

// Renderer composes a Model onto a backend: the tab bar on the first row,
// the text area with its gutter, an optional prompt and the status line on
// the last row.
type Renderer struct {
	backend backend.Backend
	opts    Options
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) *Renderer {
	return &Renderer{backend: b, opts: opts}
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return r.opts
}

// SetOptions replaces the options.
func (r *Renderer) SetOptions(opts Options) {
	r.opts = opts
}

func (r *Renderer) gutterWidth() int {
	if r.opts.ShowLineNumbers {
		return GutterWidth
	}
	return 0
}

// TextArea returns the region documents are drawn in for a screen of the
// given size. It is never smaller than one cell.
func (r *Renderer) TextArea(width, height int) Rect {
	g := r.gutterWidth()
	return Rect{X: g, Y: 1, Width: max(width-g, 1), Height: max(height-2, 1)}
}

// Render draws m and flushes the backend.
func (r *Renderer) Render(m Model) {
	width, height := r.backend.Size()
	r.backend.Clear()

	r.renderTabs(m.Tabs, width)
	area := r.TextArea(width, height)
	r.renderText(m.Frame, area)

	cursorX, cursorY, showCursor := r.primaryCursor(m.Frame, area)
	if m.Prompt != nil {
		cursorX, cursorY = r.renderPrompt(m.Prompt, area, width, height)
		showCursor = true
	} else {
		r.fillRow(height-1, width, StatusText(m), styleStatus)
	}

	if showCursor {
		r.backend.ShowCursor(cursorX, cursorY)
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()
}

func (r *Renderer) renderTabs(tabs []Tab, width int) {
	x := 0
	for _, tab := range tabs {
		style := styleTab
		if tab.Active {
			style = styleTabActive
		}
		x = r.drawText(x, 0, tab.Label(), style, width)
		if x >= width {
			return
		}
	}
}

func (r *Renderer) renderText(f engine.Frame, area Rect) {
	secondary := make(map[[2]int]bool)
	for _, c := range f.Cursors {
		if c.Visible && !c.Primary {
			secondary[[2]int{c.Pos.Row, c.Pos.Col}] = true
		}
	}

	for i, row := range f.Rows {
		if i >= area.Height {
			break
		}
		y := area.Y + i
		if r.opts.ShowLineNumbers {
			gutter := "     │ "
			if row.SubRow == 0 {
				gutter = fmt.Sprintf("%4d │ ", row.Line+1)
			}
			r.drawText(0, y, gutter, styleGutter, area.X)
		}

		for _, cell := range row.Cells {
			if cell.Col < 0 || cell.Col+cell.Width > area.Width {
				continue
			}
			x := area.X + cell.Col
			style := styleText
			if cell.Selected {
				style = styleSelection
			}
			if secondary[[2]int{i, cell.Col}] {
				style = styleCursor
			}
			switch {
			case cell.EOL:
				if style != styleText {
					r.backend.SetContent(x, y, " ", style)
				}
			case cell.Text == "\t":
				for dx := 0; dx < cell.Width; dx++ {
					r.backend.SetContent(x+dx, y, " ", style)
				}
			default:
				r.backend.SetContent(x, y, cell.Text, style)
			}
		}
	}
}

func (r *Renderer) primaryCursor(f engine.Frame, area Rect) (x, y int, ok bool) {
	for _, c := range f.Cursors {
		if c.Primary && c.Visible {
			return area.X + c.Pos.Col, area.Y + c.Pos.Row, true
		}
	}
	return 0, 0, false
}

// renderPrompt draws the result list above the status row and the input
// line on it, returning the cursor position at the end of the input.
func (r *Renderer) renderPrompt(p *Prompt, area Rect, width, height int) (int, int) {
	rows := min(len(p.Items), area.Height/2)
	first := 0
	if p.Selected >= rows {
		first = p.Selected - rows + 1
	}
	top := height - 1 - rows
	for i := 0; i < rows; i++ {
		style := stylePanel
		if first+i == p.Selected {
			style = stylePanelSel
		}
		r.fillRow(top+i, width, p.Items[first+i], style)
	}

	line := p.Label + ": " + p.Input
	r.fillRow(height-1, width, line, styleStatus)
	return min(displayWidth(line), width-1), height - 1
}

// fillRow draws text on row y and pads the rest of the row with the same
// style.
func (r *Renderer) fillRow(y, width int, text string, style backend.Style) {
	x := r.drawText(0, y, text, style, width)
	for ; x < width; x++ {
		r.backend.SetContent(x, y, " ", style)
	}
}

// drawText draws text starting at column x, clipped at limit, and returns
// the column after the last grapheme drawn.
func (r *Renderer) drawText(x, y int, text string, style backend.Style, limit int) int {
	state := -1
	for text != "" {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		w := max(runewidth.StringWidth(cluster), 1)
		if x+w > limit {
			break
		}
		r.backend.SetContent(x, y, cluster, style)
		x += w
	}
	return x
}

func displayWidth(s string) int {
	w := 0
	state := -1
	for s != "" {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += max(runewidth.StringWidth(cluster), 1)
	}
	return w
}

// Lines returns the backend contents as text, one string per row with
// trailing blanks removed. It is meant for tests and debugging.
func Lines(b backend.Backend) []string {
	width, height := b.Size()
	lines := make([]string, height)
	for y := 0; y < height; y++ {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			text, _ := b.Content(x, y)
			sb.WriteString(text)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}
