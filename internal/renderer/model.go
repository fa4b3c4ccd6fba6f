package renderer

import (
	"fmt"
	"strings"

	"github.com/dshills/fresh/internal/engine"
)

// NoName is shown for documents without a file.
const NoName = "[No Name]"

// Tab is one entry of the tab bar.
type Tab struct {
	Name     string
	Modified bool
	Active   bool
}

// Label returns the tab text, with a trailing '*' when modified.
func (t Tab) Label() string {
	name := t.Name
	if name == "" {
		name = NoName
	}
	if t.Modified {
		name += "*"
	}
	return " " + name + " "
}

// Prompt is an input line with an optional result list, drawn over the
// bottom of the text area.
type Prompt struct {
	Label    string
	Input    string
	Items    []string
	Selected int
}

// Model is everything drawn in one frame.
type Model struct {
	Tabs  []Tab
	Frame engine.Frame

	// Status line fields
	Path     string
	Modified bool
	Message  string

	Prompt *Prompt
}

// StatusText formats the status line:
// "path [+] | Ln 3, Col 5 | message".
func StatusText(m Model) string {
	var b strings.Builder
	if m.Path == "" {
		b.WriteString(NoName)
	} else {
		b.WriteString(m.Path)
	}
	if m.Modified {
		b.WriteString(" [+]")
	}
	fmt.Fprintf(&b, " | Ln %d, Col %d", m.Frame.PrimaryLine+1, m.Frame.PrimaryColumn)
	if m.Message != "" {
		b.WriteString(" | ")
		b.WriteString(m.Message)
	}
	return b.String()
}
