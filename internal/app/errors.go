package app

import (
	"errors"
	"fmt"
)

// Editor errors.
var (
	// ErrQuit signals that the editor should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoActiveDocument indicates no document is currently active.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrDocumentNotFound indicates a document was not found.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrUnsavedChanges indicates there are unsaved changes.
	ErrUnsavedChanges = errors.New("unsaved changes")

	// ErrLastDocument indicates the only open document cannot be closed.
	ErrLastDocument = errors.New("cannot close the last document")

	// ErrCloseRejected is matched by every refused close.
	ErrCloseRejected = errors.New("close rejected")

	// ErrNoFilePath indicates the document has no file path.
	ErrNoFilePath = errors.New("no file path")

	// ErrAlreadyOpen indicates another document already edits the file.
	ErrAlreadyOpen = errors.New("file is open in another document")

	// ErrClipboardEmpty indicates a paste with nothing copied.
	ErrClipboardEmpty = errors.New("clipboard is empty")

	// ErrSearchUnavailable indicates a search outside a git repository.
	ErrSearchUnavailable = errors.New("search unavailable outside a git repository")

	// ErrNoSelection indicates a copy or cut without a selection.
	ErrNoSelection = errors.New("nothing selected")
)

// FileError represents a failed file operation.
type FileError struct {
	Op   string // "open", "save"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CloseError reports why a document could not be closed. It matches
// ErrCloseRejected and its reason.
type CloseError struct {
	Name   string
	Reason error
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("close %s: %v", e.Name, e.Reason)
}

func (e *CloseError) Unwrap() []error {
	return []error{ErrCloseRejected, e.Reason}
}

// ComponentError represents an error from a specific component.
type ComponentError struct {
	Component string // Component name (e.g., "search", "watcher", "backend")
	Action    string // Action being performed
	Err       error  // Underlying error
}

// NewComponentError creates a new ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{
		Component: component,
		Action:    action,
		Err:       err,
	}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}

	if e.Action != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Component, e.Action, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Component, e.Action)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Component, e.Err)
	}

	return e.Component
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// statusText turns an error into a status line message.
func statusText(err error) string {
	var fe *FileError
	if errors.As(err, &fe) && fe.Path != "" {
		return fmt.Sprintf("Cannot %s %s: %v", fe.Op, fe.Path, fe.Err)
	}
	return "Error: " + err.Error()
}
