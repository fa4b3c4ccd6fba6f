package engine

import (
	"fmt"

	"github.com/dshills/fresh/internal/engine/buffer"
	"github.com/dshills/fresh/internal/engine/chunk"
	"github.com/dshills/fresh/internal/engine/cursor"
	"github.com/dshills/fresh/internal/engine/history"
	"github.com/dshills/fresh/internal/renderer/layout"
	"github.com/dshills/fresh/internal/renderer/viewport"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the document.
	ByteOffset = buffer.ByteOffset

	// Range represents a byte range in the document.
	Range = buffer.Range

	// Event is an invertible edit record.
	Event = history.Event
)

// State is the editing state of one open document.
type State struct {
	store   *chunk.Store
	cursors *cursor.CursorSet
	log     *history.Log
	view    *viewport.Viewport
	layout  *layout.Engine

	width, height int
	wrap          bool
	tabWidth      int
}

// New creates the state for a document backed by store, with one cursor at
// the start of the document.
func New(store *chunk.Store, opts ...Option) *State {
	s := &State{
		store:    store,
		cursors:  cursor.NewCursorSet(0),
		log:      history.NewLog(),
		width:    DefaultWidth,
		height:   DefaultHeight,
		wrap:     true,
		tabWidth: DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.layout = layout.NewEngine(s.tabWidth)
	s.view = viewport.New(s.width, s.height,
		viewport.WithWrap(s.wrap),
		viewport.WithLineCache(layout.NewLineCache(s.layout, DefaultCacheSize)),
	)
	return s
}

// Store returns the document's text store.
func (s *State) Store() *chunk.Store {
	return s.store
}

// Cursors returns the document's cursor set.
func (s *State) Cursors() *cursor.CursorSet {
	return s.cursors
}

// Log returns the document's event log.
func (s *State) Log() *history.Log {
	return s.log
}

// Viewport returns the document's viewport.
func (s *State) Viewport() *viewport.Viewport {
	return s.view
}

// Len returns the document length in bytes.
func (s *State) Len() ByteOffset {
	return s.store.Len()
}

// Text returns the whole document.
func (s *State) Text() (string, error) {
	return s.store.Text()
}

// IsModified reports whether the document has unsaved changes.
func (s *State) IsModified() bool {
	return s.store.IsModified()
}

// env returns the context cursor motions are computed against.
func (s *State) env() cursor.Env {
	return cursor.Env{Text: s.store, Columns: s.layout, PageHeight: s.view.Height()}
}

// Apply applies an event to the store and reconciles every cursor. It
// implements history.Applier, so undo and redo run through the same path.
// Apply does not record the event; see commit.
func (s *State) Apply(e Event) error {
	if err := e.Validate(); err != nil {
		return err
	}

	switch e.Kind {
	case history.Insert:
		if err := s.store.Insert(e.Range.Start, e.Text); err != nil {
			return err
		}
	case history.Delete:
		// Check before deleting, so a rejected event leaves the store
		// untouched, including its modified flag.
		current, err := s.store.Read(e.Range.Start, e.Range.Len())
		if err != nil {
			return err
		}
		if current != e.Text {
			return fmt.Errorf("%s: %w", e, ErrEventMismatch)
		}
		if _, err := s.store.Delete(e.Range); err != nil {
			return err
		}
	}

	s.reconcile(e)
	return nil
}

// reconcile updates every cursor after e was applied.
func (s *State) reconcile(e Event) {
	for _, c := range s.cursors.All() {
		switch {
		case c.ID == e.CursorID && e.Kind == history.Insert:
			c = c.MoveTo(e.Range.Start+ByteOffset(len(e.Text)), false)
		case c.ID == e.CursorID:
			c = c.MoveTo(e.Range.Start, false)
		case e.Kind == history.Insert:
			c = cursor.ShiftForInsert(c, e.Range.Start, ByteOffset(len(e.Text)))
		default:
			c = cursor.ShiftForDelete(c, e.Range)
		}
		_ = s.cursors.Update(c.Clamp(s.store.Len()))
	}
	s.cursors.Dedupe()
}

// commit applies e and records it in the log.
func (s *State) commit(e Event) error {
	if err := s.Apply(e); err != nil {
		return err
	}
	s.log.Append(e)
	return nil
}

// deleteEvent builds a deletion event for r, reading the text it removes.
func (s *State) deleteEvent(r Range, id cursor.ID) (Event, error) {
	text, err := s.store.Read(r.Start, r.Len())
	if err != nil {
		return Event{}, err
	}
	return history.NewDelete(r, text, id), nil
}

// Reveal scrolls the viewport to show the primary cursor.
func (s *State) Reveal() error {
	return s.view.ScrollToReveal(s.store, s.cursors.Primary().Position)
}
