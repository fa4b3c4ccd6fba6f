package input

// Command names an editor operation. Names follow the "area.operation"
// convention.
type Command string

// Editing commands.
const (
	CmdNone               Command = ""
	CmdInsert             Command = "editor.insert"
	CmdNewline            Command = "editor.newline"
	CmdBackspace          Command = "editor.deleteCharBefore"
	CmdDeleteForward      Command = "editor.deleteCharAfter"
	CmdDeleteWordBackward Command = "editor.deleteWordBefore"
	CmdUndo               Command = "editor.undo"
	CmdRedo               Command = "editor.redo"
	CmdCopy               Command = "clipboard.copy"
	CmdCut                Command = "clipboard.cut"
	CmdPaste              Command = "clipboard.paste"
)

// Cursor and selection commands. Motion commands honor Action.Extend.
const (
	CmdMoveLeft       Command = "cursor.moveLeft"
	CmdMoveRight      Command = "cursor.moveRight"
	CmdMoveUp         Command = "cursor.moveUp"
	CmdMoveDown       Command = "cursor.moveDown"
	CmdWordLeft       Command = "cursor.wordBackward"
	CmdWordRight      Command = "cursor.wordForward"
	CmdLineStart      Command = "cursor.moveLineStart"
	CmdLineEnd        Command = "cursor.moveLineEnd"
	CmdDocStart       Command = "cursor.moveFirstLine"
	CmdDocEnd         Command = "cursor.moveLastLine"
	CmdPageUp         Command = "cursor.pageUp"
	CmdPageDown       Command = "cursor.pageDown"
	CmdSelectAll      Command = "selection.all"
	CmdAddCursorAbove Command = "cursor.addAbove"
	CmdAddCursorBelow Command = "cursor.addBelow"
	CmdEscape         Command = "cursor.escape"
	CmdScrollUp       Command = "view.scrollUp"
	CmdScrollDown     Command = "view.scrollDown"
	CmdToggleWrap     Command = "view.toggleWrap"
)

// Document and application commands.
const (
	CmdSave       Command = "file.save"
	CmdNew        Command = "file.new"
	CmdOpen       Command = "file.open"
	CmdClose      Command = "file.close"
	CmdForceClose Command = "file.forceClose"
	CmdNextDoc    Command = "file.next"
	CmdPrevDoc    Command = "file.previous"
	CmdGrep       Command = "search.grep"
	CmdFindFile   Command = "search.files"
	CmdQuit       Command = "app.quit"
	CmdForceQuit  Command = "app.forceQuit"
)

// Action is a resolved command with its arguments.
type Action struct {
	Command Command

	// Text is the inserted text for CmdInsert.
	Text string

	// Extend grows the selection instead of moving the cursor.
	Extend bool
}

// IsMotion reports whether the command moves cursors.
func (c Command) IsMotion() bool {
	switch c {
	case CmdMoveLeft, CmdMoveRight, CmdMoveUp, CmdMoveDown,
		CmdWordLeft, CmdWordRight, CmdLineStart, CmdLineEnd,
		CmdDocStart, CmdDocEnd, CmdPageUp, CmdPageDown:
		return true
	}
	return false
}

func (a Action) String() string {
	switch {
	case a.Command == CmdInsert:
		return string(a.Command) + "(" + a.Text + ")"
	case a.Extend:
		return string(a.Command) + "+extend"
	}
	return string(a.Command)
}
