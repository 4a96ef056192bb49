package document

import (
	"os"

	"github.com/tliron/commonlog"

	"github.com/dshills/stabilize/internal/engine/lines"
	"github.com/dshills/stabilize/internal/logging"
	"github.com/dshills/stabilize/internal/project/vfs"
)

// Document is one text file and its current content.
type Document struct {
	fs      vfs.FS
	path    string
	content string
	lines   []string
	loaded  bool
	log     commonlog.Logger
}

// Open checks that path is a regular file that can be opened for reading
// and writing and returns an unloaded Document for it.
func Open(fsys vfs.FS, path string) (*Document, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, NewPathError("open", path, err)
	}
	if !info.IsRegular() {
		return nil, NewPathError("open", path, ErrNotRegular)
	}

	f, err := fsys.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, NewPathError("open", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, NewPathError("close", path, err)
	}

	return &Document{
		fs:   fsys,
		path: path,
		log:  logging.WithPath(logging.Logger("document"), path),
	}, nil
}

// Load opens and reads path.
func Load(fsys vfs.FS, path string) (*Document, error) {
	doc, err := Open(fsys, path)
	if err != nil {
		return nil, err
	}
	if err := doc.Read(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Read loads the file content into memory, replacing the current buffer.
func (d *Document) Read() error {
	data, err := d.fs.ReadFile(d.path)
	if err != nil {
		return NewPathError("read", d.path, err)
	}
	d.set(string(data))
	d.loaded = true
	d.log.Debugf("read %d line(s)", len(d.lines))
	return nil
}

// Path returns the document's file path.
func (d *Document) Path() string {
	return d.path
}

// Loaded reports whether the document has been read.
func (d *Document) Loaded() bool {
	return d.loaded
}

// Content returns the current content.
func (d *Document) Content() string {
	return d.content
}

// Lines returns a copy of the current line sequence.
func (d *Document) Lines() []string {
	return lines.Clone(d.lines)
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the line at index i.
func (d *Document) Line(i int) (string, error) {
	if i < 0 || i >= len(d.lines) {
		return "", ErrLineOutOfRange
	}
	return d.lines[i], nil
}

func (d *Document) set(content string) {
	d.content = content
	d.lines = lines.Split(content)
}

func (d *Document) ensureLoaded() error {
	if !d.loaded {
		return NewPathError("edit", d.path, ErrNotLoaded)
	}
	return nil
}
