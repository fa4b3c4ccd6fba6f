// Package app is the multi-document editor: it owns the open documents,
// the clipboard and the status line, maps input actions onto document
// intents and runs the single-threaded update loop that background
// producers feed through the bridge.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dshills/fresh/internal/bridge"
	"github.com/dshills/fresh/internal/config"
	"github.com/dshills/fresh/internal/input"
	"github.com/dshills/fresh/internal/renderer"
	"github.com/dshills/fresh/internal/renderer/backend"
)

// DrainInterval is how often the loop checks the bridge while no input
// arrives.
const DrainInterval = 50 * time.Millisecond

// Searcher runs background searches. Each call sends exactly one result
// message for req.
type Searcher interface {
	Dir() string
	Grep(ctx context.Context, out bridge.Sender, req bridge.Request) error
	ListFiles(ctx context.Context, out bridge.Sender, req bridge.Request) error
}

// Options configures an Editor.
type Options struct {
	// Config is the initial configuration. Defaults are used when nil.
	Config *config.Config

	// Backend is the terminal to draw on and read events from.
	Backend backend.Backend

	// Logger receives diagnostics. Logging is discarded when nil.
	Logger *Logger

	// Searcher serves grep and file finding. Search is unavailable when
	// nil.
	Searcher Searcher

	// Keymap maps key events to actions. The default keymap is used when
	// nil.
	Keymap *input.Keymap

	// Bridge carries background results. A new bridge is created when nil.
	Bridge *bridge.Bridge
}

// Editor coordinates documents, input, rendering and background work.
// Everything except the producers it starts runs on the caller's
// goroutine.
type Editor struct {
	cfg      *config.Config
	log      *Logger
	docs     *DocumentManager
	backend  backend.Backend
	renderer *renderer.Renderer
	keymap   *input.Keymap
	bridge   *bridge.Bridge
	tracker  *bridge.Tracker
	searcher Searcher
	metrics  *Metrics

	clipboard string
	message   string
	prompt    *prompt

	// producers
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an editor with no open documents.
func New(opts Options) *Editor {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = NullLogger()
	}
	if opts.Keymap == nil {
		opts.Keymap = input.DefaultKeymap()
	}
	if opts.Bridge == nil {
		opts.Bridge = bridge.New(bridge.DefaultCapacity)
	}
	if opts.Backend == nil {
		opts.Backend = backend.NewNullBackend(80, 24)
	}

	cfg := opts.Config
	r := renderer.New(opts.Backend, renderer.Options{ShowLineNumbers: cfg.Editor.LineNumbers})
	area := r.TextArea(opts.Backend.Size())

	ctx, cancel := context.WithCancel(context.Background())
	e := &Editor{
		cfg:      cfg,
		log:      opts.Logger.WithComponent("editor"),
		backend:  opts.Backend,
		renderer: r,
		keymap:   opts.Keymap,
		bridge:   opts.Bridge,
		tracker:  bridge.NewTracker(),
		searcher: opts.Searcher,
		metrics:  NewMetrics(),
		ctx:      ctx,
		cancel:   cancel,
	}
	e.docs = NewDocumentManager(DocumentOptions{
		Width:     area.Width,
		Height:    area.Height,
		Wrap:      cfg.Editor.LineWrap,
		TabWidth:  cfg.Editor.TabWidth,
		ChunkSize: cfg.Editor.ChunkSize,
	})
	return e
}

// Run initializes the backend and processes input and background results
// until the user quits, ctx is done or the backend closes. It calls Close
// before returning.
func (e *Editor) Run(ctx context.Context) error {
	if err := e.backend.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}
	defer e.backend.Shutdown()
	defer e.Close()

	e.resize(e.backend.Size())
	e.active()
	e.Render()

	done := make(chan struct{})
	defer close(done)
	events := e.startInputPolling(done)

	ticker := time.NewTicker(DrainInterval)
	defer ticker.Stop()

	for {
		changed := false
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if ev.Type == backend.EventClosed {
				return nil
			}
			if err := e.HandleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					e.log.Info("quit")
					return nil
				}
				return err
			}
			changed = true

		case <-ticker.C:
		}

		if e.Update() {
			changed = true
		}
		if changed {
			e.Render()
		}
	}
}

// Close stops background producers and waits for them to finish. Results
// still in the bridge are discarded.
func (e *Editor) Close() {
	e.cancel()
	e.wg.Wait()
	s := e.metrics.Snapshot()
	e.log.WithFields(map[string]any{
		"events":  s.EventCount,
		"renders": s.RenderCount,
		"stale":   s.ResultsStale,
	}).Debug("editor closed")
}

// Render draws the current state.
func (e *Editor) Render() {
	timer := StartTimer()
	e.renderer.Render(e.Model())
	e.metrics.RecordRender(timer.Elapsed())
}

// Model returns the render model for the current state.
func (e *Editor) Model() renderer.Model {
	doc := e.active()

	m := renderer.Model{
		Path:     doc.Path,
		Modified: doc.IsModified(),
		Message:  e.message,
	}
	for _, d := range e.docs.All() {
		m.Tabs = append(m.Tabs, renderer.Tab{
			Name:     d.Name,
			Modified: d.IsModified(),
			Active:   d == doc,
		})
	}

	f, err := doc.State.Frame()
	if err != nil {
		e.log.Error("frame %s: %v", displayName(doc), err)
		m.Message = statusText(err)
	}
	m.Frame = f

	if e.prompt != nil {
		m.Prompt = e.prompt.view()
	}
	return m
}

// active returns the active document, creating a scratch document when
// none is open.
func (e *Editor) active() *Document {
	if doc := e.docs.Active(); doc != nil {
		return doc
	}
	return e.docs.CreateScratch()
}

// Documents returns the document manager.
func (e *Editor) Documents() *DocumentManager {
	return e.docs
}

// Config returns the current configuration.
func (e *Editor) Config() *config.Config {
	return e.cfg
}

// Message returns the status line message.
func (e *Editor) Message() string {
	return e.message
}

// Clipboard returns the clipboard contents.
func (e *Editor) Clipboard() string {
	return e.clipboard
}

// Metrics returns the update loop metrics.
func (e *Editor) Metrics() *Metrics {
	return e.metrics
}

func (e *Editor) setStatus(msg string) {
	e.message = msg
}
