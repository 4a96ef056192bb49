package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoNormalize is returned when a script defines no normalize function.
	ErrNoNormalize = errors.New("script does not define normalize")

	// ErrBadResult is returned when normalize returns something other than
	// nil or the index of a line outside the block.
	ErrBadResult = errors.New("normalize returned an invalid line index")
)

// ScriptError wraps a failure raised while loading or running a script.
type ScriptError struct {
	Script string
	Err    error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua %s: %v", e.Script, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
