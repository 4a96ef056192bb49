package vfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"
)

var (
	errIsDir    = syscall.EISDIR
	errNotDir   = syscall.ENOTDIR
	errNotUnder = errors.New("target is not under base")
	errClosed   = os.ErrClosed
	errNegative = errors.New("negative offset")
)

// MemFS implements FS using an in-memory file system. Paths are slash
// separated and rooted at "/"; relative paths are resolved against "/".
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu     sync.RWMutex
	files  map[string]*memFile
	dirs   map[string]bool
	faults map[faultKey]error
}

type memFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemFS creates a new in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files:  make(map[string]*memFile),
		dirs:   map[string]bool{"/": true},
		faults: make(map[faultKey]error),
	}
}

// Ensure MemFS implements FS.
var _ FS = (*MemFS)(nil)

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	if err := m.fault(filePath, OpRead); err != nil {
		return nil, err
	}
	f, ok := m.files[filePath]
	if !ok {
		if m.dirs[filePath] {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: errIsDir}
		}
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}

	content := make([]byte, len(f.content))
	copy(content, f.content)
	return content, nil
}

// OpenFile opens a file. os.O_CREATE creates a missing file and os.O_TRUNC
// empties it; other flags are accepted and ignored.
func (m *MemFS) OpenFile(filePath string, flag int, perm fs.FileMode) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)
	if err := m.fault(filePath, OpOpen); err != nil {
		return nil, err
	}
	if m.dirs[filePath] {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: errIsDir}
	}

	f, ok := m.files[filePath]
	if !ok {
		if flag&os.O_CREATE == 0 {
			return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
		}
		if dir := path.Dir(filePath); !m.dirs[dir] {
			return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
		}
		f = &memFile{mode: perm, modTime: time.Now()}
		m.files[filePath] = f
	}
	if flag&os.O_TRUNC != 0 {
		f.content = nil
		f.modTime = time.Now()
	}

	return &memHandle{fs: m, path: filePath}, nil
}

// Stat returns file information.
func (m *MemFS) Stat(filePath string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stat(m.cleanPath(filePath))
}

func (m *MemFS) stat(filePath string) (FileInfo, error) {
	if f, ok := m.files[filePath]; ok {
		return NewFileInfo(filePath, path.Base(filePath), int64(len(f.content)), f.mode, f.modTime, false), nil
	}
	if m.dirs[filePath] {
		return NewFileInfo(filePath, path.Base(filePath), 0, fs.ModeDir|0755, time.Time{}, true), nil
	}
	return FileInfo{}, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
}

// readDir returns the direct children of dirPath sorted by name.
func (m *MemFS) readDir(dirPath string) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.dirs[dirPath] {
		if _, ok := m.files[dirPath]; ok {
			return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: errNotDir}
		}
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrNotExist}
	}

	prefix := dirPath
	if prefix != "/" {
		prefix += "/"
	}

	var entries []FileInfo
	child := func(p string) (string, bool) {
		if !strings.HasPrefix(p, prefix) {
			return "", false
		}
		rest := strings.TrimPrefix(p, prefix)
		return rest, rest != "" && !strings.Contains(rest, "/")
	}
	for p := range m.files {
		if _, ok := child(p); ok {
			info, _ := m.stat(p)
			entries = append(entries, info)
		}
	}
	for d := range m.dirs {
		if _, ok := child(d); ok {
			info, _ := m.stat(d)
			entries = append(entries, info)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// MkdirAll creates a directory and all parent directories.
func (m *MemFS) MkdirAll(dirPath string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dirPath = m.cleanPath(dirPath)
	for p := dirPath; ; p = path.Dir(p) {
		if _, ok := m.files[p]; ok {
			return &fs.PathError{Op: "mkdir", Path: p, Err: errNotDir}
		}
		m.dirs[p] = true
		if p == "/" {
			return nil
		}
	}
}

// WalkDir walks the file tree rooted at root in lexical order.
func (m *MemFS) WalkDir(root string, fn WalkDirFunc) error {
	root = m.cleanPath(root)

	info, err := m.Stat(root)
	if err != nil {
		return fn(root, nil, err)
	}

	err = m.walkDir(root, NewDirEntry(info), fn)
	if err == SkipDir || err == SkipAll {
		return nil
	}
	return err
}

func (m *MemFS) walkDir(dirPath string, d DirEntry, fn WalkDirFunc) error {
	if err := fn(dirPath, d, nil); err != nil {
		if err == SkipDir && d.IsDir() {
			return nil
		}
		return err
	}

	if !d.IsDir() {
		return nil
	}

	entries, err := m.readDir(dirPath)
	if err != nil {
		return fn(dirPath, d, err)
	}

	for _, entry := range entries {
		if err := m.walkDir(entry.Path(), NewDirEntry(entry), fn); err != nil {
			if err == SkipDir {
				continue
			}
			return err
		}
	}
	return nil
}

// Join joins path elements.
func (m *MemFS) Join(elem ...string) string {
	return path.Join(elem...)
}

// Rel returns the relative path from base to target.
func (m *MemFS) Rel(basePath, targetPath string) (string, error) {
	basePath = m.cleanPath(basePath)
	targetPath = m.cleanPath(targetPath)

	if targetPath == basePath {
		return ".", nil
	}
	prefix := basePath
	if prefix != "/" {
		prefix += "/"
	}
	if !strings.HasPrefix(targetPath, prefix) {
		return "", &fs.PathError{Op: "rel", Path: targetPath, Err: errNotUnder}
	}
	return strings.TrimPrefix(targetPath, prefix), nil
}

func (m *MemFS) cleanPath(p string) string {
	p = path.Clean(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// AddFile is a convenience method for adding files during setup.
func (m *MemFS) AddFile(filePath string, content string) error {
	filePath = m.cleanPath(filePath)
	if err := m.MkdirAll(path.Dir(filePath), 0755); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filePath] = &memFile{content: []byte(content), mode: 0644, modTime: time.Now()}
	return nil
}

// Files returns all file paths in the file system.
func (m *MemFS) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]string, 0, len(m.files))
	for f := range m.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// memHandle is an open MemFS file. Writes go straight to the shared file
// content, so a truncate is visible to readers before the handle is closed.
type memHandle struct {
	fs     *MemFS
	path   string
	pos    int64
	closed bool
}

func (h *memHandle) Name() string { return h.path }

func (h *memHandle) Read(p []byte) (int, error) {
	h.fs.mu.RLock()
	defer h.fs.mu.RUnlock()

	f, err := h.file(OpRead)
	if err != nil {
		return 0, err
	}
	if h.pos >= int64(len(f.content)) {
		return 0, io.EOF
	}
	n := copy(p, f.content[h.pos:])
	h.pos += int64(n)
	return n, nil
}

func (h *memHandle) Write(p []byte) (int, error) {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	f, err := h.file(OpWrite)
	if err != nil {
		return 0, err
	}
	end := h.pos + int64(len(p))
	if end > int64(len(f.content)) {
		grown := make([]byte, end)
		copy(grown, f.content)
		f.content = grown
	}
	copy(f.content[h.pos:], p)
	h.pos = end
	f.modTime = time.Now()
	return len(p), nil
}

func (h *memHandle) Seek(offset int64, whence int) (int64, error) {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	f, err := h.file(OpSeek)
	if err != nil {
		return 0, err
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = h.pos + offset
	case io.SeekEnd:
		abs = int64(len(f.content)) + offset
	}
	if abs < 0 {
		return 0, &fs.PathError{Op: string(OpSeek), Path: h.path, Err: errNegative}
	}
	h.pos = abs
	return abs, nil
}

func (h *memHandle) Truncate(size int64) error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	f, err := h.file(OpTruncate)
	if err != nil {
		return err
	}
	if size < 0 {
		return &fs.PathError{Op: string(OpTruncate), Path: h.path, Err: errNegative}
	}
	resized := make([]byte, size)
	copy(resized, f.content)
	f.content = resized
	f.modTime = time.Now()
	return nil
}

func (h *memHandle) Close() error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	if h.closed {
		return &fs.PathError{Op: string(OpClose), Path: h.path, Err: errClosed}
	}
	h.closed = true
	return h.fs.fault(h.path, OpClose)
}

// file returns the backing file after checking the handle state and any
// fault registered for op. Callers hold fs.mu.
func (h *memHandle) file(op Op) (*memFile, error) {
	if h.closed {
		return nil, &fs.PathError{Op: string(op), Path: h.path, Err: errClosed}
	}
	if err := h.fs.fault(h.path, op); err != nil {
		return nil, err
	}
	f, ok := h.fs.files[h.path]
	if !ok {
		return nil, &fs.PathError{Op: string(op), Path: h.path, Err: fs.ErrNotExist}
	}
	return f, nil
}
