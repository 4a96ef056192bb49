// Package vfs provides the file system abstraction documents are read from
// and persisted to.
//
// OSFS is the production implementation. MemFS keeps everything in memory and
// can be told to fail specific operations on specific paths, which is how the
// persistence layer's partial-write behaviour is tested.
package vfs

import (
	"io"
	"io/fs"
	"time"
)

// FS is the subset of file system operations the editing engine needs.
type FS interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// OpenFile opens a file with the given os.O_* flags.
	OpenFile(path string, flag int, perm fs.FileMode) (File, error)

	// Stat returns file information.
	Stat(path string) (FileInfo, error)

	// WalkDir walks the file tree rooted at root in lexical order.
	WalkDir(root string, fn WalkDirFunc) error

	// Join joins path elements.
	Join(elem ...string) string

	// Rel returns the relative path from base to target.
	Rel(basePath, targetPath string) (string, error)
}

// File is an open file handle. *os.File satisfies it.
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Truncate changes the size of the file.
	Truncate(size int64) error

	// Name returns the path the file was opened with.
	Name() string
}

// FileInfo describes a file or directory.
type FileInfo struct {
	path    string
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

// NewFileInfo creates a FileInfo from the given parameters.
func NewFileInfo(path, name string, size int64, mode fs.FileMode, modTime time.Time, isDir bool) FileInfo {
	return FileInfo{
		path:    path,
		name:    name,
		size:    size,
		mode:    mode,
		modTime: modTime,
		isDir:   isDir,
	}
}

// Path returns the full path.
func (fi FileInfo) Path() string { return fi.path }

// Name returns the base name.
func (fi FileInfo) Name() string { return fi.name }

// Size returns the file size in bytes.
func (fi FileInfo) Size() int64 { return fi.size }

// Mode returns the file mode.
func (fi FileInfo) Mode() fs.FileMode { return fi.mode }

// ModTime returns the modification time.
func (fi FileInfo) ModTime() time.Time { return fi.modTime }

// IsDir returns true if this is a directory.
func (fi FileInfo) IsDir() bool { return fi.isDir }

// IsRegular returns true if this is a regular file.
func (fi FileInfo) IsRegular() bool { return fi.mode.IsRegular() }

// WalkDirFunc is the type of function called by WalkDir.
type WalkDirFunc func(path string, d DirEntry, err error) error

// DirEntry is the interface for directory entries.
type DirEntry interface {
	// Name returns the name of the file or directory.
	Name() string

	// IsDir returns true if this is a directory.
	IsDir() bool

	// Info returns the FileInfo for this entry.
	Info() (FileInfo, error)
}

type dirEntry struct {
	info FileInfo
}

// NewDirEntry creates a DirEntry from FileInfo.
func NewDirEntry(info FileInfo) DirEntry {
	return &dirEntry{info: info}
}

func (d *dirEntry) Name() string            { return d.info.Name() }
func (d *dirEntry) IsDir() bool             { return d.info.IsDir() }
func (d *dirEntry) Info() (FileInfo, error) { return d.info, nil }

// SkipDir is used as a return value from WalkDirFunc to indicate that
// the directory named in the call should be skipped.
var SkipDir = fs.SkipDir

// SkipAll is used as a return value from WalkDirFunc to indicate that
// all remaining files and directories should be skipped.
var SkipAll = fs.SkipAll
