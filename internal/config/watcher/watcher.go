// Package watcher reloads the configuration file when it changes and hands
// the result to the editor through the bridge.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/fresh/internal/bridge"
	"github.com/dshills/fresh/internal/config"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// LoadFunc loads the configuration after a change.
type LoadFunc func() (*config.Config, error)

// Watcher watches one configuration file.
//
// The file's directory is watched rather than the file itself, so editors
// that save by renaming a temporary file over the original are seen.
type Watcher struct {
	path     string
	load     LoadFunc
	sender   bridge.Sender
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for path. The file may not exist yet, but its
// directory must.
func New(path string, load LoadFunc, sender bridge.Sender, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		path:     absPath,
		load:     load,
		sender:   sender,
		debounce: DefaultDebounce,
		fsw:      fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers a ConfigReloaded message after every settled change until
// ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case _, ok := <-w.fsw.Errors:
			// Dropped notifications are recovered by the next change.
			if !ok {
				return nil
			}

		case <-fire:
			fire = nil
			if err := w.reload(ctx); err != nil {
				return err
			}
		}
	}
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) ||
		ev.Op.Has(fsnotify.Rename) || ev.Op.Has(fsnotify.Remove)
}

func (w *Watcher) reload(ctx context.Context) error {
	cfg, err := w.load()
	msg := bridge.ConfigReloaded{
		Req:    bridge.NewRequest(bridge.KindConfig, w.path),
		Config: cfg,
		Err:    err,
	}
	if err != nil {
		msg.Config = nil
	}
	if err := w.sender.Send(ctx, msg); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
