package git

import "errors"

// Error types for git operations.
var (
	// ErrRepositoryNotFound indicates no repository was found.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrEmptyQuery indicates a content search without a pattern.
	ErrEmptyQuery = errors.New("empty query")
)
