package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/stabilize/internal/engine/anchor"
	"github.com/dshills/stabilize/internal/engine/lines"
)

// ReplaceAll replaces every occurrence of from in the whole content with to
// and persists the result. The match is not line scoped.
func (d *Document) ReplaceAll(from, to string) error {
	if err := d.ensureLoaded(); err != nil {
		return err
	}
	if from == "" {
		return anchor.ErrEmptyKey
	}
	return d.Write(strings.ReplaceAll(d.content, from, to))
}

// ReplacePattern replaces every match of key in the whole content with to
// and persists the result. ^ and $ match at line boundaries. For pattern
// keys, to may reference capture groups as in regexp.Expand; literal keys
// insert to verbatim.
func (d *Document) ReplacePattern(key anchor.Key, to string) error {
	if err := d.ensureLoaded(); err != nil {
		return err
	}
	if !key.Valid() {
		return anchor.ErrEmptyKey
	}
	re, err := multiline(key.Expr())
	if err != nil {
		return err
	}
	if key.Kind() == anchor.KindLiteral {
		return d.Write(re.ReplaceAllLiteralString(d.content, to))
	}
	return d.Write(re.ReplaceAllString(d.content, to))
}

// ReplaceWholeLineMatching turns every line containing key into exactly
// replacement and persists the result. Line terminators are kept.
func (d *Document) ReplaceWholeLineMatching(key anchor.Key, replacement string) error {
	if err := d.ensureLoaded(); err != nil {
		return err
	}
	if !key.Valid() {
		return anchor.ErrEmptyKey
	}
	re, err := multiline(fmt.Sprintf(`^.*?(?:%s).*$`, key.Expr()))
	if err != nil {
		return err
	}
	return d.Write(re.ReplaceAllLiteralString(d.content, replacement))
}

// ReplaceWithinLine replaces the first occurrence of from in line index
// only. The content is rebuilt with a newline after every line.
func (d *Document) ReplaceWithinLine(index int, from, to string) error {
	if err := d.ensureLoaded(); err != nil {
		return err
	}
	if index < 0 || index >= len(d.lines) {
		return ErrLineOutOfRange
	}
	ls := d.Lines()
	ls[index] = strings.Replace(ls[index], from, to, 1)
	return d.Write(lines.Join(ls, lines.Terminated))
}

// ReplaceWholeLineAt replaces the entire line index with to. The content is
// rebuilt with a newline after every line.
func (d *Document) ReplaceWholeLineAt(index int, to string) error {
	if err := d.ensureLoaded(); err != nil {
		return err
	}
	if index < 0 || index >= len(d.lines) {
		return ErrLineOutOfRange
	}
	ls := d.Lines()
	ls[index] = to
	return d.Write(lines.Join(ls, lines.Terminated))
}

// DeleteLinesContaining removes every line containing key and returns how
// many were removed. The content keeps its trailing newline convention. The
// file is only written when at least one line was removed.
func (d *Document) DeleteLinesContaining(key anchor.Key) (int, error) {
	if err := d.ensureLoaded(); err != nil {
		return 0, err
	}
	if !key.Valid() {
		return 0, anchor.ErrEmptyKey
	}

	idx := anchor.All(d.lines, key)
	if len(idx) == 0 {
		return 0, nil
	}
	d.log.Debugf("deleting line(s) %v matching %q", idx, key.String())

	kept := make([]string, 0, len(d.lines)-len(idx))
	next := 0
	for i, l := range d.lines {
		if next < len(idx) && idx[next] == i {
			next++
			continue
		}
		kept = append(kept, l)
	}
	if err := d.Write(lines.Join(kept, lines.TerminatorOf(d.content))); err != nil {
		return 0, err
	}
	return len(idx), nil
}

func multiline(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?m)" + expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", anchor.ErrInvalidPattern, err)
	}
	return re, nil
}
