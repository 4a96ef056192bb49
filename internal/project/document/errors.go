package document

import (
	"errors"
	"fmt"

	"github.com/dshills/stabilize/internal/engine/block"
)

var (
	// ErrNotLoaded indicates an edit on a document that was never read.
	ErrNotLoaded = errors.New("document not loaded")

	// ErrNotRegular indicates the path is not a regular file.
	ErrNotRegular = errors.New("not a regular file")

	// ErrLineOutOfRange indicates a line index outside the document.
	ErrLineOutOfRange = fmt.Errorf("line index: %w", block.ErrOutOfBounds)
)

// PathError records a failed file operation on a document.
type PathError struct {
	Op   string // open, read, truncate, seek, write, close
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError creates a new PathError.
func NewPathError(op, path string, err error) *PathError {
	return &PathError{Op: op, Path: path, Err: err}
}
