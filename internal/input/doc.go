// Package input resolves terminal events into editor actions.
//
// The editor is modeless: printable keys insert themselves and every other
// key goes through a fixed table of chords such as "C-s" or "S-Left".
//
//	km := input.DefaultKeymap()
//	if action, ok := km.Resolve(ev); ok {
//	    editor.Execute(action)
//	}
package input
