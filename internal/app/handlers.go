package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/fresh/internal/engine"
	"github.com/dshills/fresh/internal/engine/cursor"
	"github.com/dshills/fresh/internal/input"
)

// motions maps motion commands to cursor motions.
var motions = map[input.Command]cursor.Motion{
	input.CmdMoveLeft:  cursor.Left,
	input.CmdMoveRight: cursor.Right,
	input.CmdMoveUp:    cursor.Up,
	input.CmdMoveDown:  cursor.Down,
	input.CmdWordLeft:  cursor.WordLeft,
	input.CmdWordRight: cursor.WordRight,
	input.CmdLineStart: cursor.LineStart,
	input.CmdLineEnd:   cursor.LineEnd,
	input.CmdDocStart:  cursor.DocStart,
	input.CmdDocEnd:    cursor.DocEnd,
	input.CmdPageUp:    cursor.PageUp,
	input.CmdPageDown:  cursor.PageDown,
}

// Execute performs an action on the active document or the editor. Every
// outcome is reported on the status line; only ErrQuit is returned.
func (e *Editor) Execute(a input.Action) error {
	var err error
	if e.prompt != nil && a.Command != input.CmdForceQuit {
		err = e.executePrompt(a)
	} else {
		err = e.execute(a)
	}

	switch {
	case err == nil:
	case errors.Is(err, ErrQuit):
		return err
	default:
		e.fail(err)
	}
	return nil
}

// fail reports err on the status line.
func (e *Editor) fail(err error) {
	e.log.Warn("%v", err)
	e.setStatus(statusText(err))
}

func (e *Editor) execute(a input.Action) error {
	doc := e.active()
	st := doc.State

	if m, ok := motions[a.Command]; ok {
		return st.Move(m, a.Extend)
	}

	switch a.Command {
	case input.CmdInsert:
		return st.InsertText(a.Text)
	case input.CmdNewline:
		return st.InsertText("\n")
	case input.CmdBackspace:
		return st.Backspace()
	case input.CmdDeleteForward:
		return st.DeleteForward()
	case input.CmdDeleteWordBackward:
		return st.DeleteWordBackward()

	case input.CmdUndo:
		return e.undo(st)
	case input.CmdRedo:
		return e.redo(st)

	case input.CmdCopy:
		return e.Copy()
	case input.CmdCut:
		return e.Cut()
	case input.CmdPaste:
		return e.Paste()

	case input.CmdSelectAll:
		return st.SelectAll()
	case input.CmdAddCursorAbove:
		return st.AddCursorVertical(cursor.Up)
	case input.CmdAddCursorBelow:
		return st.AddCursorVertical(cursor.Down)
	case input.CmdEscape:
		st.Escape()
		return nil
	case input.CmdScrollUp:
		return st.Scroll(-1)
	case input.CmdScrollDown:
		return st.Scroll(1)
	case input.CmdToggleWrap:
		on, err := st.ToggleWrap()
		if err != nil {
			return err
		}
		if on {
			e.setStatus("Line wrap on")
		} else {
			e.setStatus("Line wrap off")
		}
		return nil

	case input.CmdSave:
		return e.Save()
	case input.CmdNew:
		e.NewDocument()
		return nil
	case input.CmdOpen:
		e.openPrompt(promptOpen)
		return nil
	case input.CmdClose:
		return e.CloseDocument(false)
	case input.CmdForceClose:
		return e.CloseDocument(true)
	case input.CmdNextDoc:
		e.docs.Next()
		return nil
	case input.CmdPrevDoc:
		e.docs.Previous()
		return nil
	case input.CmdGrep:
		return e.startSearch(promptGrep)
	case input.CmdFindFile:
		return e.startSearch(promptFiles)

	case input.CmdQuit:
		return e.Quit(false)
	case input.CmdForceQuit:
		return e.Quit(true)
	}

	e.log.Debug("unhandled command %s", a)
	return nil
}

func (e *Editor) undo(st *engine.State) error {
	err := st.Undo()
	if errors.Is(err, engine.ErrNothingToUndo) {
		e.setStatus("Nothing to undo")
		return nil
	}
	if err == nil {
		e.setStatus("Undo")
	}
	return err
}

func (e *Editor) redo(st *engine.State) error {
	err := st.Redo()
	if errors.Is(err, engine.ErrNothingToRedo) {
		e.setStatus("Nothing to redo")
		return nil
	}
	if err == nil {
		e.setStatus("Redo")
	}
	return err
}

// Copy puts the active document's selections on the clipboard, in
// position order, joined by newlines.
func (e *Editor) Copy() error {
	n, err := e.copySelections()
	if err != nil {
		return err
	}
	e.setStatus(countMessage("Copied", n))
	return nil
}

// Cut copies the selections and deletes them as one undo group.
func (e *Editor) Cut() error {
	if _, err := e.copySelections(); err != nil {
		return err
	}
	n, err := e.active().State.DeleteSelections()
	if err != nil {
		return err
	}
	e.setStatus(countMessage("Cut", n))
	return nil
}

// Paste replaces every selection with the clipboard and inserts it at
// every cursor as one undo group.
func (e *Editor) Paste() error {
	if e.clipboard == "" {
		return ErrClipboardEmpty
	}
	if err := e.active().State.InsertText(e.clipboard); err != nil {
		return err
	}
	e.setStatus("Pasted")
	return nil
}

func (e *Editor) copySelections() (int, error) {
	sels, err := e.active().State.Selections()
	if err != nil {
		return 0, err
	}
	if len(sels) == 0 {
		return 0, ErrNoSelection
	}
	texts := make([]string, len(sels))
	for i, s := range sels {
		texts[i] = s.Text
	}
	e.clipboard = strings.Join(texts, "\n")
	return len(sels), nil
}

// countMessage returns "Copied" for one selection and "Copied 3
// selections" for several.
func countMessage(verb string, n int) string {
	if n <= 1 {
		return verb
	}
	return fmt.Sprintf("%s %d selections", verb, n)
}
