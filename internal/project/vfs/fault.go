package vfs

import "io/fs"

// Op names a file operation that MemFS can be told to fail.
type Op string

// Operations that accept injected faults.
const (
	OpOpen     Op = "open"
	OpRead     Op = "read"
	OpTruncate Op = "truncate"
	OpSeek     Op = "seek"
	OpWrite    Op = "write"
	OpClose    Op = "close"
)

type faultKey struct {
	path string
	op   Op
}

// FailOn makes every future op on filePath fail with err, wrapped in an
// *fs.PathError. Passing a nil err removes the fault.
func (m *MemFS) FailOn(filePath string, op Op, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := faultKey{path: m.cleanPath(filePath), op: op}
	if err == nil {
		delete(m.faults, key)
		return
	}
	m.faults[key] = err
}

// ClearFaults removes every injected fault.
func (m *MemFS) ClearFaults() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults = make(map[faultKey]error)
}

// fault returns the injected error for (filePath, op), if any. Callers hold
// m.mu.
func (m *MemFS) fault(filePath string, op Op) error {
	if err, ok := m.faults[faultKey{path: filePath, op: op}]; ok {
		return &fs.PathError{Op: string(op), Path: filePath, Err: err}
	}
	return nil
}
