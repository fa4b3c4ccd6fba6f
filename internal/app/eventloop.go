package app

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/fresh/internal/bridge"
	"github.com/dshills/fresh/internal/renderer"
	"github.com/dshills/fresh/internal/renderer/backend"
	"github.com/dshills/fresh/internal/renderer/viewport"
)

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3

// HandleEvent processes one backend event. It returns ErrQuit when the
// editor should exit.
func (e *Editor) HandleEvent(ev backend.Event) error {
	timer := StartTimer()
	defer func() { e.metrics.RecordEvent(timer.Elapsed()) }()

	switch ev.Type {
	case backend.EventResize:
		e.resize(ev.Width, ev.Height)
		return nil
	case backend.EventKey, backend.EventPaste:
		return e.handleKeyEvent(ev)
	case backend.EventMouse:
		return e.handleMouseEvent(ev)
	default:
		return nil
	}
}

func (e *Editor) handleKeyEvent(ev backend.Event) error {
	action, ok := e.keymap.Resolve(ev)
	if !ok {
		e.log.Debug("unbound key %s", ev.Key)
		return nil
	}
	return e.Execute(action)
}

// handleMouseEvent places the cursor on a left click in the text area,
// switches documents on a click in the tab bar and scrolls on the wheel.
func (e *Editor) handleMouseEvent(ev backend.Event) error {
	width, height := e.backend.Size()
	area := e.renderer.TextArea(width, height)
	doc := e.active()

	var err error
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		err = doc.State.Scroll(-wheelLines)
	case backend.MouseWheelDown:
		err = doc.State.Scroll(wheelLines)
	case backend.MouseLeft:
		switch {
		case ev.MouseY == 0:
			if tab := e.tabAt(ev.MouseX); tab != nil {
				err = e.docs.SetActive(tab.ID)
			}
		case ev.MouseY >= area.Y && ev.MouseY < area.Y+area.Height && ev.MouseX >= area.X:
			pos := viewport.ScreenPos{Row: ev.MouseY - area.Y, Col: ev.MouseX - area.X}
			err = doc.State.Click(pos, ev.Mod.Has(backend.ModShift))
		}
	}
	if err != nil {
		e.fail(err)
	}
	return nil
}

// tabAt returns the document whose tab covers column x.
func (e *Editor) tabAt(x int) *Document {
	start := 0
	for _, doc := range e.docs.All() {
		label := renderer.Tab{Name: doc.Name, Modified: doc.IsModified()}.Label()
		end := start + runewidth.StringWidth(label)
		if x >= start && x < end {
			return doc
		}
		start = end
	}
	return nil
}

// resize adapts every document to a new screen size.
func (e *Editor) resize(width, height int) {
	area := e.renderer.TextArea(width, height)
	opts := e.docs.Options()
	opts.Width, opts.Height = area.Width, area.Height
	e.docs.SetOptions(opts)

	for _, doc := range e.docs.All() {
		if err := doc.State.Resize(area.Width, area.Height); err != nil {
			e.log.Warn("resize %s: %v", displayName(doc), err)
		}
	}
}

// Update drains the bridge and applies every result that is still wanted.
// It never blocks and reports whether anything was drained.
func (e *Editor) Update() bool {
	msgs := e.bridge.Drain()
	for _, msg := range msgs {
		if !e.tracker.Accept(msg) {
			e.log.Debug("dropped stale result %s", msg.Request())
			e.metrics.RecordResult(false)
			continue
		}
		e.metrics.RecordResult(true)

		switch m := msg.(type) {
		case bridge.GrepResults:
			e.applyGrepResults(m)
		case bridge.FileListResults:
			e.applyFileResults(m)
		case bridge.ConfigReloaded:
			e.applyConfig(m)
		}
	}
	return len(msgs) > 0
}

// startInputPolling reads backend events on its own goroutine, since
// PollEvent blocks. The goroutine ends after delivering EventClosed or
// when done is closed; shutting the backend down unblocks PollEvent.
func (e *Editor) startInputPolling(done <-chan struct{}) <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		for {
			ev := e.backend.PollEvent()
			select {
			case events <- ev:
			case <-done:
				return
			}
			if ev.Type == backend.EventClosed {
				return
			}
		}
	}()

	return events
}
