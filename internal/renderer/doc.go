// Package renderer provides the display layer for the editor.
//
// The renderer draws a Model, built by the application from the active
// document's engine.Frame, onto a Backend:
//
//	┌─────────────────────────────────────────┐
//	│ tabs                                    │
//	├───────┬─────────────────────────────────┤
//	│  12 │ │ text area (engine.Frame rows)   │
//	│       │                                 │
//	├───────┴─────────────────────────────────┤
//	│ path [+] | Ln 12, Col 4 | message       │
//	└─────────────────────────────────────────┘
//
// Layout and wrapping live in the layout and viewport subpackages; the
// renderer only paints cells, so it never touches document text directly.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Render(model)
package renderer
