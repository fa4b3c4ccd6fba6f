package app

import (
	"fmt"

	"github.com/dshills/fresh/internal/bridge"
	"github.com/dshills/fresh/internal/renderer"
)

// OpenFile opens path, or activates it when it is already open.
func (e *Editor) OpenFile(path string) (*Document, error) {
	doc, err := e.docs.Open(path)
	if err != nil {
		return nil, err
	}
	e.log.WithField("doc", doc.ID).Info("opened %s (%d bytes)", doc.Path, doc.State.Len())
	e.setStatus("Opened " + doc.Name)
	return doc, nil
}

// NewDocument creates and activates an empty scratch document.
func (e *Editor) NewDocument() *Document {
	doc := e.docs.CreateScratch()
	e.setStatus("New document")
	return doc
}

// Save writes the active document to its file. A scratch document asks
// for a path first.
func (e *Editor) Save() error {
	doc := e.active()
	if doc.IsScratch() {
		e.openPrompt(promptSaveAs)
		return nil
	}
	if err := doc.Save(); err != nil {
		return err
	}
	e.log.WithField("doc", doc.ID).Info("saved %s", doc.Path)
	e.setStatus("Saved " + doc.Name)
	return nil
}

// SaveAs writes the active document to path, which becomes its file.
func (e *Editor) SaveAs(path string) error {
	doc := e.active()
	if err := e.docs.SaveAs(doc.ID, path); err != nil {
		return err
	}
	e.log.WithField("doc", doc.ID).Info("saved %s", doc.Path)
	e.setStatus("Saved " + doc.Name)
	return nil
}

// CloseDocument closes the active document. Without force a modified
// document is kept open; the last document is never closed.
func (e *Editor) CloseDocument(force bool) error {
	doc := e.active()
	if err := e.docs.Close(doc.ID, force); err != nil {
		return err
	}
	e.setStatus("Closed " + displayName(doc))
	return nil
}

// Quit returns ErrQuit. Without force it refuses while any document has
// unsaved changes.
func (e *Editor) Quit(force bool) error {
	if !force {
		if dirty := e.docs.DirtyDocuments(); len(dirty) > 0 {
			e.setStatus(fmt.Sprintf("%d unsaved document(s); save them or force quit (Alt-Q)", len(dirty)))
			return nil
		}
	}
	return ErrQuit
}

// applyConfig switches to a reloaded configuration. Wrap, line numbers and
// the log level change immediately; tab width and chunk size apply to
// documents opened afterwards.
func (e *Editor) applyConfig(m bridge.ConfigReloaded) {
	if m.Err != nil {
		e.log.Warn("config reload: %v", m.Err)
		e.setStatus("Config not reloaded: " + m.Err.Error())
		return
	}

	old, cfg := e.cfg, m.Config
	e.cfg = cfg
	e.log.SetLevel(ParseLogLevel(cfg.Log.Level))

	opts := e.docs.Options()
	opts.Wrap = cfg.Editor.LineWrap
	opts.TabWidth = cfg.Editor.TabWidth
	opts.ChunkSize = cfg.Editor.ChunkSize
	e.docs.SetOptions(opts)

	if cfg.Editor.LineWrap != old.Editor.LineWrap {
		for _, doc := range e.docs.All() {
			if err := doc.State.SetWrap(cfg.Editor.LineWrap); err != nil {
				e.log.Warn("wrap %s: %v", displayName(doc), err)
			}
		}
	}
	if cfg.Editor.LineNumbers != old.Editor.LineNumbers {
		e.renderer.SetOptions(renderer.Options{ShowLineNumbers: cfg.Editor.LineNumbers})
		e.resize(e.backend.Size())
	}

	e.log.Info("configuration reloaded from %s", m.Req.Query)
	e.setStatus("Configuration reloaded")
}
