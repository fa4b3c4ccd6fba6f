package app

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/fresh/internal/engine"
	"github.com/dshills/fresh/internal/engine/chunk"
)

// Document is an open file with its editing state.
type Document struct {
	// ID identifies the document for the editor's lifetime.
	ID uuid.UUID

	// Path is the absolute file path (empty for scratch documents).
	Path string

	// Name is the display name (file name, empty for scratch documents).
	Name string

	// State is the document's buffer, cursors, history and viewport.
	State *engine.State
}

// IsScratch returns true if the document has no file.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.State.IsModified()
}

// Save writes the document to its file.
func (d *Document) Save() error {
	if d.IsScratch() {
		return ErrNoFilePath
	}
	if err := d.State.Save(); err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	return nil
}

// DocumentOptions are applied to documents created by a DocumentManager.
type DocumentOptions struct {
	Width, Height int
	Wrap          bool
	TabWidth      int
	ChunkSize     int64
}

// DocumentManager keeps the open documents in open order and tracks the
// active one. It belongs to the update loop and is not safe for concurrent
// use.
type DocumentManager struct {
	documents map[uuid.UUID]*Document
	order     []uuid.UUID
	active    uuid.UUID
	opts      DocumentOptions
}

// NewDocumentManager creates an empty document manager.
func NewDocumentManager(opts DocumentOptions) *DocumentManager {
	return &DocumentManager{
		documents: make(map[uuid.UUID]*Document),
		opts:      opts,
	}
}

// Options returns the options used for new documents.
func (dm *DocumentManager) Options() DocumentOptions {
	return dm.opts
}

// SetOptions changes the options used for documents opened from now on.
func (dm *DocumentManager) SetOptions(opts DocumentOptions) {
	dm.opts = opts
}

func (dm *DocumentManager) newState(store *chunk.Store) *engine.State {
	return engine.New(store,
		engine.WithSize(dm.opts.Width, dm.opts.Height),
		engine.WithWrap(dm.opts.Wrap),
		engine.WithTabWidth(dm.opts.TabWidth),
	)
}

func (dm *DocumentManager) chunkOptions() []chunk.Option {
	if dm.opts.ChunkSize > 0 {
		return []chunk.Option{chunk.WithChunkSize(dm.opts.ChunkSize)}
	}
	return nil
}

func (dm *DocumentManager) add(doc *Document) *Document {
	dm.documents[doc.ID] = doc
	dm.order = append(dm.order, doc.ID)
	dm.active = doc.ID
	return doc
}

// Open opens the file at path and makes it active. A path that is already
// open activates the existing document. A missing file opens as an empty
// document that is created on save.
func (dm *DocumentManager) Open(path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}

	if doc, ok := dm.Find(absPath); ok {
		dm.active = doc.ID
		return doc, nil
	}

	store, err := chunk.Open(chunk.NewFileBacking(absPath), dm.chunkOptions()...)
	if err != nil {
		return nil, &FileError{Op: "open", Path: absPath, Err: err}
	}

	return dm.add(&Document{
		ID:    uuid.New(),
		Path:  absPath,
		Name:  filepath.Base(absPath),
		State: dm.newState(store),
	}), nil
}

// CreateScratch creates an empty document without a file and makes it
// active.
func (dm *DocumentManager) CreateScratch() *Document {
	return dm.add(&Document{
		ID:    uuid.New(),
		State: dm.newState(chunk.FromString("", dm.chunkOptions()...)),
	})
}

// Close closes a document. The last document and, unless force is set, a
// modified document are not closed; the error then matches
// ErrCloseRejected. The document after the closed one becomes active.
func (dm *DocumentManager) Close(id uuid.UUID, force bool) error {
	doc, ok := dm.documents[id]
	if !ok {
		return ErrDocumentNotFound
	}
	if len(dm.order) == 1 {
		return &CloseError{Name: displayName(doc), Reason: ErrLastDocument}
	}
	if doc.IsModified() && !force {
		return &CloseError{Name: displayName(doc), Reason: ErrUnsavedChanges}
	}

	i := slices.Index(dm.order, id)
	delete(dm.documents, id)
	dm.order = slices.Delete(dm.order, i, i+1)

	if dm.active == id {
		dm.active = dm.order[min(i, len(dm.order)-1)]
	}
	return nil
}

// Active returns the active document, or nil when none is open.
func (dm *DocumentManager) Active() *Document {
	return dm.documents[dm.active]
}

// SetActive makes the document with id active.
func (dm *DocumentManager) SetActive(id uuid.UUID) error {
	if _, ok := dm.documents[id]; !ok {
		return fmt.Errorf("activate %s: %w", id, ErrDocumentNotFound)
	}
	dm.active = id
	return nil
}

// Get returns a document by ID.
func (dm *DocumentManager) Get(id uuid.UUID) (*Document, bool) {
	doc, ok := dm.documents[id]
	return doc, ok
}

// Find returns the document open at the absolute path.
func (dm *DocumentManager) Find(absPath string) (*Document, bool) {
	for _, id := range dm.order {
		if doc := dm.documents[id]; doc.Path == absPath && absPath != "" {
			return doc, true
		}
	}
	return nil, false
}

// SaveAs writes the document to path and binds it to that file. A file
// open in another document is refused.
func (dm *DocumentManager) SaveAs(id uuid.UUID, path string) error {
	doc, ok := dm.documents[id]
	if !ok {
		return fmt.Errorf("save %s: %w", id, ErrDocumentNotFound)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	if other, ok := dm.Find(absPath); ok && other.ID != id {
		return &FileError{Op: "save", Path: absPath, Err: ErrAlreadyOpen}
	}

	if err := doc.State.SaveAs(chunk.NewFileBacking(absPath)); err != nil {
		return &FileError{Op: "save", Path: absPath, Err: err}
	}
	doc.Path = absPath
	doc.Name = filepath.Base(absPath)
	return nil
}

// All returns all open documents in open order.
func (dm *DocumentManager) All() []*Document {
	docs := make([]*Document, 0, len(dm.order))
	for _, id := range dm.order {
		docs = append(docs, dm.documents[id])
	}
	return docs
}

// Count returns the number of open documents.
func (dm *DocumentManager) Count() int {
	return len(dm.order)
}

// DirtyDocuments returns all documents with unsaved changes, in open order.
func (dm *DocumentManager) DirtyDocuments() []*Document {
	var dirty []*Document
	for _, doc := range dm.All() {
		if doc.IsModified() {
			dirty = append(dirty, doc)
		}
	}
	return dirty
}

// HasDirty returns true if any document has unsaved changes.
func (dm *DocumentManager) HasDirty() bool {
	return len(dm.DirtyDocuments()) > 0
}

// Next activates and returns the document after the active one, wrapping
// around.
func (dm *DocumentManager) Next() *Document {
	return dm.cycle(1)
}

// Previous activates and returns the document before the active one,
// wrapping around.
func (dm *DocumentManager) Previous() *Document {
	return dm.cycle(-1)
}

func (dm *DocumentManager) cycle(step int) *Document {
	n := len(dm.order)
	if n == 0 {
		return nil
	}
	i := slices.Index(dm.order, dm.active)
	if i < 0 {
		i = 0
	}
	dm.active = dm.order[((i+step)%n+n)%n]
	return dm.documents[dm.active]
}

// displayName is the name shown for a document in tabs and messages.
func displayName(doc *Document) string {
	if doc.IsScratch() {
		return "[No Name]"
	}
	return doc.Name
}
