package engine

import (
	"errors"

	"github.com/dshills/fresh/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrEventMismatch indicates a deletion event whose recorded text does
	// not match the document. The document is left unchanged.
	ErrEventMismatch = errors.New("event does not match document content")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo
)
