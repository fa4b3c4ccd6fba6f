package input

// DefaultBindings returns the built-in key table.
func DefaultBindings() []Binding {
	bindings := []Binding{
		// Editing
		{Keys: "Enter", Command: CmdNewline, Description: "Insert newline"},
		{Keys: "Backspace", Command: CmdBackspace, Description: "Delete char before cursor"},
		{Keys: "Delete", Command: CmdDeleteForward, Description: "Delete char after cursor"},
		{Keys: "C-w", Command: CmdDeleteWordBackward, Description: "Delete word before cursor"},
		{Keys: "M-Backspace", Command: CmdDeleteWordBackward, Description: "Delete word before cursor"},
		{Keys: "C-z", Command: CmdUndo, Description: "Undo"},
		{Keys: "C-y", Command: CmdRedo, Description: "Redo"},
		{Keys: "C-c", Command: CmdCopy, Description: "Copy selections"},
		{Keys: "C-x", Command: CmdCut, Description: "Cut selections"},
		{Keys: "C-v", Command: CmdPaste, Description: "Paste"},

		// Selection and cursors
		{Keys: "C-a", Command: CmdSelectAll, Description: "Select all"},
		{Keys: "C-M-Up", Command: CmdAddCursorAbove, Description: "Add cursor above"},
		{Keys: "C-M-Down", Command: CmdAddCursorBelow, Description: "Add cursor below"},
		{Keys: "Esc", Command: CmdEscape, Description: "Clear selections, then extra cursors"},

		// View
		{Keys: "C-l", Command: CmdToggleWrap, Description: "Toggle line wrap"},
		{Keys: "C-Up", Command: CmdScrollUp, Description: "Scroll line up"},
		{Keys: "C-Down", Command: CmdScrollDown, Description: "Scroll line down"},

		// Documents
		{Keys: "C-s", Command: CmdSave, Description: "Save"},
		{Keys: "C-n", Command: CmdNew, Description: "New scratch document"},
		{Keys: "C-o", Command: CmdOpen, Description: "Open file"},
		{Keys: "C-k", Command: CmdClose, Description: "Close document"},
		{Keys: "M-k", Command: CmdForceClose, Description: "Close document discarding changes"},
		{Keys: "M-Right", Command: CmdNextDoc, Description: "Next document"},
		{Keys: "M-Left", Command: CmdPrevDoc, Description: "Previous document"},
		{Keys: "C-PgDn", Command: CmdNextDoc, Description: "Next document"},
		{Keys: "C-PgUp", Command: CmdPrevDoc, Description: "Previous document"},

		// Search
		{Keys: "C-f", Command: CmdGrep, Description: "Search in repository"},
		{Keys: "C-p", Command: CmdFindFile, Description: "Find file in repository"},

		// Application
		{Keys: "C-q", Command: CmdQuit, Description: "Quit"},
		{Keys: "M-q", Command: CmdForceQuit, Description: "Quit discarding changes"},
	}

	// Motions, plain and with Shift to extend the selection.
	motions := []struct {
		keys string
		cmd  Command
		desc string
	}{
		{"Left", CmdMoveLeft, "Move left"},
		{"Right", CmdMoveRight, "Move right"},
		{"Up", CmdMoveUp, "Move up"},
		{"Down", CmdMoveDown, "Move down"},
		{"C-Left", CmdWordLeft, "Move to previous word"},
		{"C-Right", CmdWordRight, "Move to next word"},
		{"Home", CmdLineStart, "Move to line start"},
		{"End", CmdLineEnd, "Move to line end"},
		{"C-Home", CmdDocStart, "Go to document start"},
		{"C-End", CmdDocEnd, "Go to document end"},
		{"PgUp", CmdPageUp, "Page up"},
		{"PgDn", CmdPageDown, "Page down"},
	}
	for _, m := range motions {
		bindings = append(bindings,
			Binding{Keys: m.keys, Command: m.cmd, Description: m.desc},
			Binding{Keys: "S-" + m.keys, Command: m.cmd, Extend: true, Description: m.desc + " extending selection"},
		)
	}
	return bindings
}

// DefaultKeymap returns a keymap holding DefaultBindings.
func DefaultKeymap() *Keymap {
	km, err := NewKeymap(DefaultBindings())
	if err != nil {
		panic("input: invalid default bindings: " + err.Error())
	}
	return km
}
