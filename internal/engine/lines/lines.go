// Package lines converts between file content and the line sequences the
// editing engine operates on.
//
// Splitting follows the usual "lines of a text file" reading: a trailing
// newline terminates the last line instead of starting an empty one, so
// "a\nb\n" and "a\nb" both split into ["a", "b"]. Whether the terminator was
// present is reported separately so callers can reproduce it on Join.
package lines

import "strings"

// Newline is the only line separator recognised by the engine.
const Newline = "\n"

// Terminator selects how Join ends the last line.
type Terminator int

const (
	// Separated joins lines with Newline and leaves the last line bare.
	Separated Terminator = iota
	// Terminated appends Newline after every line, including the last.
	Terminated
)

// String returns the name of the terminator mode.
func (t Terminator) String() string {
	switch t {
	case Separated:
		return "separated"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Split splits content into lines. Empty content has no lines.
func Split(content string) []string {
	if content == "" {
		return []string{}
	}
	parts := strings.Split(content, Newline)
	if strings.HasSuffix(content, Newline) {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// TerminatorOf reports the terminator convention used by content.
func TerminatorOf(content string) Terminator {
	if strings.HasSuffix(content, Newline) {
		return Terminated
	}
	return Separated
}

// Join reassembles lines using the given terminator mode.
func Join(ls []string, t Terminator) string {
	if len(ls) == 0 {
		return ""
	}
	if t == Terminated {
		var b strings.Builder
		for _, l := range ls {
			b.WriteString(l)
			b.WriteString(Newline)
		}
		return b.String()
	}
	return strings.Join(ls, Newline)
}

// Clone returns a copy of ls that shares no backing array with it.
func Clone(ls []string) []string {
	out := make([]string, len(ls))
	copy(out, ls)
	return out
}

// Remove returns ls without the line at index i. The input slice is not
// modified.
func Remove(ls []string, i int) []string {
	out := make([]string, 0, len(ls)-1)
	out = append(out, ls[:i]...)
	return append(out, ls[i+1:]...)
}

// IsBlank reports whether a line is empty.
func IsBlank(line string) bool {
	return line == ""
}
