// Package app wires configuration, logging and the stabilizer into one run.
package app

import (
	"errors"
	"fmt"
)

// ErrInitialization indicates the run could not be set up.
var ErrInitialization = errors.New("initialization failed")

// OperationError represents an error that occurred during a specific step
// of a run.
type OperationError struct {
	Op     string // load-config, chdir, stabilize, write-report
	Target string // file or directory the step worked on
	Err    error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
