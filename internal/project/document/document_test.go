package document

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/stabilize/internal/engine/anchor"
	"github.com/dshills/stabilize/internal/engine/block"
	"github.com/dshills/stabilize/internal/project/vfs"
)

const testPath = "/src/file.txt"

func newMemDoc(t *testing.T, content string) (*vfs.MemFS, *Document) {
	t.Helper()
	mfs := vfs.NewMemFS()
	if err := mfs.AddFile(testPath, content); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	doc, err := Load(mfs, testPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return mfs, doc
}

func newOSDoc(t *testing.T, content string) (string, *Document) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	doc, err := Load(vfs.NewOSFS(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return path, doc
}

func fileContent(t *testing.T, mfs *vfs.MemFS) string {
	t.Helper()
	data, err := mfs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestDocument_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		content string
		edit    func(d *Document) error
		want    string
	}{
		{
			name:    "replace all",
			content: "foo bar baz ",
			edit:    func(d *Document) error { return d.ReplaceAll("bar ", "") },
			want:    "foo baz ",
		},
		{
			name:    "replace whole line matching",
			content: "foo bar baz ",
			edit: func(d *Document) error {
				return d.ReplaceWholeLineMatching(anchor.Literal("bar"), "an entire new line")
			},
			want: "an entire new line",
		},
		{
			name:    "move line",
			content: "foo\nbar baz\nqux\nquatre",
			edit: func(d *Document) error {
				_, err := d.MoveTo(anchor.Literal("qux"), anchor.Literal("bar"))
				return err
			},
			want: "foo\nqux\nbar baz\nquatre",
		},
		{
			name:    "move block",
			content: "foo\nbar\nbaz qux\nquux\n",
			edit: func(d *Document) error {
				_, err := d.MoveNLinesTo(anchor.Literal("quux"), anchor.Literal("bar"), 1, block.Above)
				return err
			},
			want: "baz qux\nquux\nfoo\nbar\n",
		},
		{
			name:    "replace within line",
			content: "foo\nbar\nbaz qux\nquux\n",
			edit:    func(d *Document) error { return d.ReplaceWithinLine(2, "baz", "changed") },
			want:    "foo\nbar\nchanged qux\nquux\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/memfs", func(t *testing.T) {
			mfs, doc := newMemDoc(t, tt.content)
			if err := tt.edit(doc); err != nil {
				t.Fatalf("edit: %v", err)
			}
			if got := fileContent(t, mfs); got != tt.want {
				t.Errorf("file = %q, want %q", got, tt.want)
			}
			if doc.Content() != tt.want {
				t.Errorf("Content() = %q, want %q", doc.Content(), tt.want)
			}
		})
		t.Run(tt.name+"/osfs", func(t *testing.T) {
			path, doc := newOSDoc(t, tt.content)
			if err := tt.edit(doc); err != nil {
				t.Fatalf("edit: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("file = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestDocument_WriteShrinks(t *testing.T) {
	path, doc := newOSDoc(t, "a much longer original body\n")
	if err := doc.Write("short\n"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "short\n" {
		t.Errorf("file = %q, want %q", data, "short\n")
	}
}

func TestDocument_WriteThenRead(t *testing.T) {
	mfs, doc := newMemDoc(t, "old")
	if err := doc.Write("new\ncontent\n"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := doc.Read(); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Content() != "new\ncontent\n" {
		t.Errorf("Content() = %q, want %q", doc.Content(), "new\ncontent\n")
	}
	if doc.LineCount() != 2 {
		t.Errorf("LineCount() = %d, want 2", doc.LineCount())
	}
	if got := fileContent(t, mfs); got != doc.Content() {
		t.Errorf("file = %q, buffer = %q", got, doc.Content())
	}
}

func TestDocument_WriteFaults(t *testing.T) {
	tests := []struct {
		op       vfs.Op
		wantOp   string
		wantFile string
	}{
		{vfs.OpOpen, "open", "original\n"},
		{vfs.OpTruncate, "truncate", "original\n"},
		{vfs.OpSeek, "seek", ""},
		{vfs.OpWrite, "write", ""},
	}

	injected := errors.New("injected")
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			mfs, doc := newMemDoc(t, "original\n")
			mfs.FailOn(testPath, tt.op, injected)

			err := doc.Write("replacement\n")
			if !errors.Is(err, injected) {
				t.Fatalf("Write error = %v, want %v", err, injected)
			}
			var pe *PathError
			if !errors.As(err, &pe) {
				t.Fatalf("Write error %T is not *PathError", err)
			}
			if pe.Op != tt.wantOp {
				t.Errorf("PathError.Op = %q, want %q", pe.Op, tt.wantOp)
			}
			if doc.Content() != "original\n" {
				t.Errorf("Content() = %q, want buffer unchanged", doc.Content())
			}

			mfs.ClearFaults()
			if got := fileContent(t, mfs); got != tt.wantFile {
				t.Errorf("file = %q, want %q", got, tt.wantFile)
			}
		})
	}
}

func TestDocument_CloseFault(t *testing.T) {
	mfs, doc := newMemDoc(t, "original\n")
	mfs.FailOn(testPath, vfs.OpClose, errors.New("injected"))

	err := doc.Write("replacement\n")
	var pe *PathError
	if !errors.As(err, &pe) || pe.Op != "close" {
		t.Fatalf("Write error = %v, want close PathError", err)
	}
	mfs.ClearFaults()
	if got := fileContent(t, mfs); got != "replacement\n" {
		t.Errorf("file = %q, want %q", got, "replacement\n")
	}
}

func TestOpen(t *testing.T) {
	mfs := vfs.NewMemFS()
	if err := mfs.MkdirAll("/dir", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	_, err := Open(mfs, "/dir")
	if !errors.Is(err, ErrNotRegular) {
		t.Errorf("Open(dir) error = %v, want %v", err, ErrNotRegular)
	}

	_, err = Open(mfs, "/missing.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want %v", err, fs.ErrNotExist)
	}

	if err := mfs.AddFile("/ro.txt", "x"); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	mfs.FailOn("/ro.txt", vfs.OpOpen, fs.ErrPermission)
	_, err = Open(mfs, "/ro.txt")
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("Open(ro) error = %v, want %v", err, fs.ErrPermission)
	}
}

func TestDocument_NotLoaded(t *testing.T) {
	mfs := vfs.NewMemFS()
	if err := mfs.AddFile(testPath, "foo\n"); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	doc, err := Open(mfs, testPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.Loaded() {
		t.Fatal("Loaded() = true before Read")
	}

	edits := map[string]func() error{
		"ReplaceAll":         func() error { return doc.ReplaceAll("foo", "bar") },
		"ReplaceWithinLine":  func() error { return doc.ReplaceWithinLine(0, "foo", "bar") },
		"ReplaceWholeLineAt": func() error { return doc.ReplaceWholeLineAt(0, "bar") },
		"MoveTo": func() error {
			_, err := doc.MoveTo(anchor.Literal("foo"), anchor.Literal("foo"))
			return err
		},
	}
	for name, edit := range edits {
		if err := edit(); !errors.Is(err, ErrNotLoaded) {
			t.Errorf("%s error = %v, want %v", name, err, ErrNotLoaded)
		}
	}
	if got := fileContent(t, mfs); got != "foo\n" {
		t.Errorf("file = %q, want unchanged", got)
	}
}

func TestDocument_LineIndexOutOfRange(t *testing.T) {
	_, doc := newMemDoc(t, "foo\nbar\n")

	for _, i := range []int{-1, 2, 10} {
		if err := doc.ReplaceWithinLine(i, "foo", "x"); !errors.Is(err, block.ErrOutOfBounds) {
			t.Errorf("ReplaceWithinLine(%d) error = %v, want out of bounds", i, err)
		}
		if err := doc.ReplaceWholeLineAt(i, "x"); !errors.Is(err, ErrLineOutOfRange) {
			t.Errorf("ReplaceWholeLineAt(%d) error = %v, want %v", i, err, ErrLineOutOfRange)
		}
		if _, err := doc.Line(i); !errors.Is(err, ErrLineOutOfRange) {
			t.Errorf("Line(%d) error = %v, want %v", i, err, ErrLineOutOfRange)
		}
	}
}

func TestDocument_ReplaceWholeLineAt(t *testing.T) {
	mfs, doc := newMemDoc(t, "one\ntwo\nthree")
	if err := doc.ReplaceWholeLineAt(1, "TWO"); err != nil {
		t.Fatalf("ReplaceWholeLineAt: %v", err)
	}
	if got := fileContent(t, mfs); got != "one\nTWO\nthree\n" {
		t.Errorf("file = %q, want %q", got, "one\nTWO\nthree\n")
	}
}

func TestDocument_ReplaceWithinLineFirstOnly(t *testing.T) {
	mfs, doc := newMemDoc(t, "a a a\na\n")
	if err := doc.ReplaceWithinLine(0, "a", "b"); err != nil {
		t.Fatalf("ReplaceWithinLine: %v", err)
	}
	if got := fileContent(t, mfs); got != "b a a\na\n" {
		t.Errorf("file = %q, want %q", got, "b a a\na\n")
	}
}

func TestDocument_ReplaceAllEmpty(t *testing.T) {
	_, doc := newMemDoc(t, "foo")
	if err := doc.ReplaceAll("", "x"); !errors.Is(err, anchor.ErrEmptyKey) {
		t.Errorf("ReplaceAll(\"\") error = %v, want %v", err, anchor.ErrEmptyKey)
	}
}

func TestDocument_ReplacePattern(t *testing.T) {
	mfs, doc := newMemDoc(t, "(active, a, \"1.0.0\")\n(active, b, \"1.2.0\")\n")
	key := anchor.MustPattern(`^\(active, (\w+),`)
	if err := doc.ReplacePattern(key, "(accepted, ${1},"); err != nil {
		t.Fatalf("ReplacePattern: %v", err)
	}
	want := "(accepted, a, \"1.0.0\")\n(accepted, b, \"1.2.0\")\n"
	if got := fileContent(t, mfs); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestDocument_ReplacePatternLiteralKey(t *testing.T) {
	mfs, doc := newMemDoc(t, "cost: $1 (a.b)\n")
	if err := doc.ReplacePattern(anchor.Literal("(a.b)"), "$x"); err != nil {
		t.Fatalf("ReplacePattern: %v", err)
	}
	if got := fileContent(t, mfs); got != "cost: $1 $x\n" {
		t.Errorf("file = %q, want %q", got, "cost: $1 $x\n")
	}
}

func TestDocument_ReplaceWholeLineMatching(t *testing.T) {
	mfs, doc := newMemDoc(t, "keep\nfoo.bar one\nfooXbar two\nkeep\n")
	if err := doc.ReplaceWholeLineMatching(anchor.Literal("foo.bar"), "new"); err != nil {
		t.Fatalf("ReplaceWholeLineMatching: %v", err)
	}
	want := "keep\nnew\nfooXbar two\nkeep\n"
	if got := fileContent(t, mfs); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestDocument_DeleteLinesContaining(t *testing.T) {
	mfs, doc := newMemDoc(t, "#![feature(x)]\nfn main() {}\n#![feature(x)]\n")
	n, err := doc.DeleteLinesContaining(anchor.Literal("#![feature(x)]"))
	if err != nil {
		t.Fatalf("DeleteLinesContaining: %v", err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}
	if got := fileContent(t, mfs); got != "fn main() {}\n" {
		t.Errorf("file = %q, want %q", got, "fn main() {}\n")
	}
}

func TestDocument_DeleteLinesContainingNoMatch(t *testing.T) {
	mfs, doc := newMemDoc(t, "fn main() {}")
	mfs.FailOn(testPath, vfs.OpOpen, errors.New("must not write"))

	n, err := doc.DeleteLinesContaining(anchor.Literal("#![feature(x)]"))
	if err != nil {
		t.Fatalf("DeleteLinesContaining: %v", err)
	}
	if n != 0 {
		t.Errorf("removed = %d, want 0", n)
	}
}

func TestDocument_DeleteLinesContainingSeparated(t *testing.T) {
	mfs, doc := newMemDoc(t, "a\nx\nb")
	if _, err := doc.DeleteLinesContaining(anchor.Literal("x")); err != nil {
		t.Fatalf("DeleteLinesContaining: %v", err)
	}
	if got := fileContent(t, mfs); got != "a\nb" {
		t.Errorf("file = %q, want %q", got, "a\nb")
	}
}

func TestDocument_MoveToNotFound(t *testing.T) {
	mfs, doc := newMemDoc(t, "foo\nbar\n")

	_, err := doc.MoveTo(anchor.Literal("bar"), anchor.Literal("missing"))
	if !anchor.IsNotFound(err) {
		t.Errorf("MoveTo(missing key) error = %v, want not found", err)
	}
	_, err = doc.MoveTo(anchor.Literal("missing"), anchor.Literal("foo"))
	if !anchor.IsNotFound(err) {
		t.Errorf("MoveTo(missing anchor) error = %v, want not found", err)
	}
	if got := fileContent(t, mfs); got != "foo\nbar\n" {
		t.Errorf("file = %q, want unchanged", got)
	}
}

func TestDocument_MoveToLanding(t *testing.T) {
	_, doc := newMemDoc(t, "a\nb\nc\nd")
	landed, err := doc.MoveTo(anchor.Literal("d"), anchor.Literal("b"))
	if err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if landed != (block.Block{Start: 3, End: 3}) {
		t.Errorf("landed = %v, want [3,3]", landed)
	}
	if line, _ := doc.Line(3); line != "b" {
		t.Errorf("Line(3) = %q, want %q", line, "b")
	}
}

func TestDocument_MoveNLinesToBelow(t *testing.T) {
	mfs, doc := newMemDoc(t, "head\nkey\nbody\nx\ny\n")
	landed, err := doc.MoveNLinesTo(anchor.Literal("y"), anchor.Literal("key"), 1, block.Below)
	if err != nil {
		t.Fatalf("MoveNLinesTo: %v", err)
	}
	want := "head\nx\ny\nkey\nbody\n"
	if got := fileContent(t, mfs); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
	if landed != (block.Block{Start: 3, End: 4}) {
		t.Errorf("landed = %v, want [3,4]", landed)
	}
}

func TestDocument_MoveNLinesToBackward(t *testing.T) {
	mfs, doc := newMemDoc(t, "a\nb\nc\nkey\n")
	if _, err := doc.MoveNLinesTo(anchor.Literal("b"), anchor.Literal("key"), 0, block.Above); err != nil {
		t.Fatalf("MoveNLinesTo: %v", err)
	}
	want := "a\nkey\nb\nc\n"
	if got := fileContent(t, mfs); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestDocument_MoveNLinesToOutOfBounds(t *testing.T) {
	mfs, doc := newMemDoc(t, "a\nkey\nb\n")
	_, err := doc.MoveNLinesTo(anchor.Literal("b"), anchor.Literal("key"), 5, block.Above)
	if !block.IsOutOfBounds(err) {
		t.Errorf("MoveNLinesTo error = %v, want out of bounds", err)
	}
	if got := fileContent(t, mfs); got != "a\nkey\nb\n" {
		t.Errorf("file = %q, want unchanged", got)
	}
}

func TestDocument_MoveNLinesToOverlap(t *testing.T) {
	_, doc := newMemDoc(t, "doc\nkey\nafter\n")
	_, err := doc.MoveNLinesTo(anchor.Literal("doc"), anchor.Literal("key"), 1, block.Above)
	if !errors.Is(err, block.ErrOverlap) {
		t.Errorf("MoveNLinesTo error = %v, want %v", err, block.ErrOverlap)
	}
}

func TestDocument_MoveWithNormalizer(t *testing.T) {
	content := strings.Join([]string{
		"head",
		"",
		"/// doc",
		"active key",
		"",
		"accepted one",
		"tail",
		"",
	}, "\n")
	mfs, doc := newMemDoc(t, content)

	landed, err := doc.MoveNLinesTo(anchor.Literal("accepted"), anchor.Literal("active key"), 1, block.Above,
		WithNormalizer(block.CollapseBlankLines))
	if err != nil {
		t.Fatalf("MoveNLinesTo: %v", err)
	}
	want := "head\n\naccepted one\n/// doc\nactive key\ntail\n"
	if got := fileContent(t, mfs); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
	if landed != (block.Block{Start: 3, End: 4}) {
		t.Errorf("landed = %v, want [3,4]", landed)
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	for _, content := range []string{"", "a", "a\n", "a\nb", "a\nb\n", "\n\n"} {
		mfs, doc := newMemDoc(t, content)
		if err := doc.Write(doc.Content()); err != nil {
			t.Fatalf("Write(%q): %v", content, err)
		}
		if got := fileContent(t, mfs); got != content {
			t.Errorf("round trip of %q = %q", content, got)
		}
	}
}
