package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dshills/fresh/internal/bridge"
	"github.com/dshills/fresh/internal/input"
	"github.com/dshills/fresh/internal/renderer"
)

type promptKind int

const (
	promptOpen promptKind = iota
	promptGrep
	promptFiles
	promptSaveAs
)

func (k promptKind) label() string {
	switch k {
	case promptGrep:
		return "Grep"
	case promptFiles:
		return "Find file"
	case promptSaveAs:
		return "Save as"
	default:
		return "Open"
	}
}

// requestKind is the bridge kind serving the prompt, if any.
func (k promptKind) requestKind() (bridge.Kind, bool) {
	switch k {
	case promptGrep:
		return bridge.KindGrep, true
	case promptFiles:
		return bridge.KindFiles, true
	default:
		return 0, false
	}
}

// prompt is an input line with a result list. Grep and file prompts issue
// a background request after every change of the input.
type prompt struct {
	kind     promptKind
	input    string
	matches  []bridge.GrepMatch
	files    []string
	selected int
}

func (p *prompt) items() []string {
	switch p.kind {
	case promptGrep:
		items := make([]string, len(p.matches))
		for i, m := range p.matches {
			items[i] = fmt.Sprintf("%s:%d: %s", m.File, m.Line, m.Content)
		}
		return items
	case promptFiles:
		return p.files
	default:
		return nil
	}
}

func (p *prompt) view() *renderer.Prompt {
	return &renderer.Prompt{
		Label:    p.kind.label(),
		Input:    p.input,
		Items:    p.items(),
		Selected: p.selected,
	}
}

func (e *Editor) openPrompt(kind promptKind) {
	e.closePrompt()
	e.prompt = &prompt{kind: kind}
}

func (e *Editor) closePrompt() {
	if e.prompt == nil {
		return
	}
	if kind, ok := e.prompt.kind.requestKind(); ok {
		e.tracker.Cancel(kind)
	}
	e.prompt = nil
}

// startSearch opens a grep or file prompt. The file prompt lists every
// file right away.
func (e *Editor) startSearch(kind promptKind) error {
	if e.searcher == nil {
		return ErrSearchUnavailable
	}
	e.openPrompt(kind)
	if kind == promptFiles {
		e.search()
	}
	return nil
}

// executePrompt handles an action while a prompt is open. Commands that
// do not edit or navigate the prompt are ignored.
func (e *Editor) executePrompt(a input.Action) error {
	p := e.prompt
	switch a.Command {
	case input.CmdInsert:
		text, _, _ := strings.Cut(a.Text, "\n")
		if text == "" {
			return nil
		}
		p.input += text
		e.search()
	case input.CmdBackspace:
		if p.input == "" {
			return nil
		}
		_, size := utf8.DecodeLastRuneInString(p.input)
		p.input = p.input[:len(p.input)-size]
		e.search()
	case input.CmdMoveUp:
		p.selected = max(p.selected-1, 0)
	case input.CmdMoveDown:
		p.selected = min(p.selected+1, max(len(p.items())-1, 0))
	case input.CmdNewline:
		return e.acceptPrompt()
	case input.CmdEscape:
		e.closePrompt()
	}
	return nil
}

// search issues a request for the current input, superseding the previous
// one. An empty grep query clears the results without searching.
func (e *Editor) search() {
	p := e.prompt
	kind, ok := p.kind.requestKind()
	if !ok {
		return
	}
	if kind == bridge.KindGrep && p.input == "" {
		e.tracker.Cancel(kind)
		p.matches, p.selected = nil, 0
		return
	}

	ctx, req := e.tracker.Start(e.ctx, kind, p.input)
	run := e.searcher.Grep
	if kind == bridge.KindFiles {
		run = e.searcher.ListFiles
	}
	e.spawn(ctx, req, run)
}

// spawn runs a producer on its own goroutine. ctx ends when the request is
// superseded or the editor closes. The producer reports through the bridge;
// its error is only logged.
func (e *Editor) spawn(ctx context.Context, req bridge.Request, run func(context.Context, bridge.Sender, bridge.Request) error) {
	log := e.log.WithField("request", req.ID)
	log.Debug("start %s", req)

	out := e.bridge.Sender()
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := run(ctx, out, req); err != nil {
			log.Debug("%s failed: %v", req.Kind, err)
		}
	}()
}

func (e *Editor) applyGrepResults(m bridge.GrepResults) {
	if e.prompt == nil || e.prompt.kind != promptGrep {
		return
	}
	e.prompt.matches = m.Matches
	e.prompt.selected = 0
}

func (e *Editor) applyFileResults(m bridge.FileListResults) {
	if e.prompt == nil || e.prompt.kind != promptFiles {
		return
	}
	e.prompt.files = m.Files
	e.prompt.selected = 0
}

// acceptPrompt acts on the input or the selected result and closes the
// prompt.
func (e *Editor) acceptPrompt() error {
	p := e.prompt
	e.closePrompt()

	switch p.kind {
	case promptOpen:
		path := strings.TrimSpace(p.input)
		if path == "" {
			return nil
		}
		_, err := e.OpenFile(path)
		return err

	case promptSaveAs:
		path := strings.TrimSpace(p.input)
		if path == "" {
			return nil
		}
		return e.SaveAs(path)

	case promptFiles:
		if p.selected >= len(p.files) {
			return nil
		}
		_, err := e.OpenFile(filepath.Join(e.searcher.Dir(), p.files[p.selected]))
		return err

	case promptGrep:
		if p.selected >= len(p.matches) {
			return nil
		}
		m := p.matches[p.selected]
		doc, err := e.OpenFile(filepath.Join(e.searcher.Dir(), m.File))
		if err != nil {
			return err
		}
		return e.jumpTo(doc, m.Line-1, m.Column-1)
	}
	return nil
}

// jumpTo moves the cursor to a 0-based line and byte column, clamped to
// the line.
func (e *Editor) jumpTo(doc *Document, line, column int) error {
	store := doc.State.Store()
	start, err := store.LineStart(int64(max(line, 0)))
	if err != nil {
		return err
	}
	end, err := store.LineEnd(int64(max(line, 0)))
	if err != nil {
		return err
	}
	return doc.State.SetCursor(min(start+int64(max(column, 0)), end), false)
}
