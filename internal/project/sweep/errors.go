package sweep

import (
	"errors"
	"fmt"
)

// ErrPartialFailure is returned by Scan under ContinueOnError when at least
// one file failed.
var ErrPartialFailure = errors.New("sweep finished with failures")

// FileError records the failure of one file during a sweep.
type FileError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// IsPartialFailure returns true if err is or wraps ErrPartialFailure.
func IsPartialFailure(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}
