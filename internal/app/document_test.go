package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestManager() *DocumentManager {
	return NewDocumentManager(DocumentOptions{Width: 40, Height: 10, Wrap: true, TabWidth: 4, ChunkSize: 16})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDocumentManager_Open(t *testing.T) {
	dm := newTestManager()
	path := writeFile(t, t.TempDir(), "a.txt", "hello\nworld\n")

	doc, err := dm.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.Name != "a.txt" || doc.Path != path {
		t.Errorf("doc = %q %q", doc.Name, doc.Path)
	}
	if doc.ID == uuid.Nil {
		t.Error("expected a document ID")
	}
	if doc.IsModified() || doc.IsScratch() {
		t.Error("fresh file document should be clean and not scratch")
	}
	if dm.Active() != doc {
		t.Error("opened document should be active")
	}
	if got := doc.State.Store().ChunkSize(); got != 16 {
		t.Errorf("chunk size = %d, want 16", got)
	}
}

func TestDocumentManager_OpenSamePathActivates(t *testing.T) {
	dm := newTestManager()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a")
	b := writeFile(t, dir, "b.txt", "b")

	first, _ := dm.Open(a)
	if _, err := dm.Open(b); err != nil {
		t.Fatal(err)
	}
	again, err := dm.Open(filepath.Join(dir, ".", "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if again != first {
		t.Error("reopening a path should return the open document")
	}
	if dm.Count() != 2 || dm.Active() != first {
		t.Errorf("count = %d, active = %v", dm.Count(), dm.Active().Name)
	}
}

func TestDocumentManager_OpenMissingFile(t *testing.T) {
	dm := newTestManager()
	doc, err := dm.Open(filepath.Join(t.TempDir(), "new.txt"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.State.Len() != 0 {
		t.Errorf("len = %d", doc.State.Len())
	}
}

func TestDocumentManager_OpenDirectoryFails(t *testing.T) {
	dm := newTestManager()
	dir := t.TempDir()

	_, err := dm.Open(dir)
	var fe *FileError
	if !errors.As(err, &fe) || fe.Op != "open" {
		t.Fatalf("err = %v, want a FileError", err)
	}
	if dm.Count() != 0 {
		t.Error("failed open should not add a document")
	}
}

func TestDocumentManager_Close(t *testing.T) {
	dm := newTestManager()
	a := dm.CreateScratch()
	b := dm.CreateScratch()
	c := dm.CreateScratch()

	if err := dm.SetActive(b.ID); err != nil {
		t.Fatal(err)
	}
	if err := dm.Close(b.ID, false); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if dm.Active() != c {
		t.Errorf("active after close = %v, want the next document", dm.Active().ID)
	}

	if err := c.State.InsertText("x"); err != nil {
		t.Fatal(err)
	}
	err := dm.Close(c.ID, false)
	if !errors.Is(err, ErrCloseRejected) || !errors.Is(err, ErrUnsavedChanges) {
		t.Errorf("close modified = %v", err)
	}
	if err := dm.Close(c.ID, true); err != nil {
		t.Errorf("forced close = %v", err)
	}
	if dm.Active() != a {
		t.Error("closing the last tab should activate the one before it")
	}

	err = dm.Close(a.ID, true)
	if !errors.Is(err, ErrCloseRejected) || !errors.Is(err, ErrLastDocument) {
		t.Errorf("close last = %v", err)
	}
	if err := dm.Close(uuid.New(), false); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("close unknown = %v", err)
	}
}

func TestDocumentManager_Cycle(t *testing.T) {
	dm := newTestManager()
	if dm.Next() != nil || dm.Active() != nil {
		t.Fatal("empty manager should have no documents")
	}

	a := dm.CreateScratch()
	b := dm.CreateScratch()
	c := dm.CreateScratch()

	tests := []struct {
		name string
		step func() *Document
		want *Document
	}{
		{"next wraps", dm.Next, a},
		{"next", dm.Next, b},
		{"previous", dm.Previous, a},
		{"previous wraps", dm.Previous, c},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.step(); got != tt.want || dm.Active() != tt.want {
				t.Errorf("got %v, want %v", got.ID, tt.want.ID)
			}
		})
	}
}

func TestDocumentManager_Dirty(t *testing.T) {
	dm := newTestManager()
	a := dm.CreateScratch()
	dm.CreateScratch()

	if dm.HasDirty() {
		t.Fatal("new documents should be clean")
	}
	if err := a.State.InsertText("x"); err != nil {
		t.Fatal(err)
	}
	dirty := dm.DirtyDocuments()
	if len(dirty) != 1 || dirty[0] != a || !dm.HasDirty() {
		t.Errorf("dirty = %v", dirty)
	}
}

func TestDocumentManager_SaveAs(t *testing.T) {
	dm := newTestManager()
	dir := t.TempDir()
	taken := writeFile(t, dir, "taken.txt", "other")
	if _, err := dm.Open(taken); err != nil {
		t.Fatal(err)
	}

	scratch := dm.CreateScratch()
	if err := scratch.State.InsertText("draft"); err != nil {
		t.Fatal(err)
	}

	err := dm.SaveAs(scratch.ID, taken)
	if !errors.Is(err, ErrAlreadyOpen) {
		t.Fatalf("saving over an open file = %v", err)
	}
	if !scratch.IsScratch() || !scratch.IsModified() {
		t.Error("refused save should leave the document unchanged")
	}

	path := filepath.Join(dir, "draft.txt")
	if err := dm.SaveAs(scratch.ID, path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if scratch.Path != path || scratch.Name != "draft.txt" || scratch.IsModified() {
		t.Errorf("after save as: path %q, name %q, modified %v", scratch.Path, scratch.Name, scratch.IsModified())
	}
	if data, _ := os.ReadFile(path); string(data) != "draft" {
		t.Errorf("file = %q", data)
	}
	if found, ok := dm.Find(path); !ok || found != scratch {
		t.Error("saved document should be found by its new path")
	}

	if err := dm.SaveAs(uuid.New(), path); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("unknown document = %v", err)
	}
}

func TestDocument_Save(t *testing.T) {
	dm := newTestManager()
	path := writeFile(t, t.TempDir(), "a.txt", "abc")

	doc, err := dm.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.State.InsertText(">"); err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if doc.IsModified() {
		t.Error("saved document should be clean")
	}
	data, _ := os.ReadFile(path)
	if string(data) != ">abc" {
		t.Errorf("file = %q", data)
	}

	scratch := dm.CreateScratch()
	if err := scratch.Save(); !errors.Is(err, ErrNoFilePath) {
		t.Errorf("scratch save = %v", err)
	}
}

func TestSetActiveUnknown(t *testing.T) {
	dm := newTestManager()
	if err := dm.SetActive(uuid.New()); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("err = %v", err)
	}
}
