package document

import (
	"io"
	"os"

	"github.com/dshills/stabilize/internal/project/vfs"
)

// Write replaces the backing file's content with content and makes content
// the in-memory buffer. The file is truncated before the new bytes are
// written; if a later step fails the file may be left empty and the buffer
// keeps its previous value.
func (d *Document) Write(content string) error {
	f, err := d.fs.OpenFile(d.path, os.O_RDWR, 0)
	if err != nil {
		return NewPathError("open", d.path, err)
	}

	if err := d.flush(f, content); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return NewPathError("close", d.path, err)
	}

	before := d.content
	d.set(content)
	d.loaded = true
	d.logWrite(before, content)
	return nil
}

func (d *Document) flush(f vfs.File, content string) error {
	if err := f.Truncate(0); err != nil {
		return NewPathError("truncate", d.path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return NewPathError("seek", d.path, err)
	}
	if _, err := io.WriteString(f, content); err != nil {
		return NewPathError("write", d.path, err)
	}
	return nil
}
