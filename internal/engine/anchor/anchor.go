// Package anchor locates lines by content.
//
// A Key is either a literal substring or a compiled regular expression.
// Literals are escaped before any pattern is built from them, so a feature
// name such as "c++" or "(active," never gets interpreted as regex syntax.
// Matching is always single-line: a key matches a line when it occurs
// anywhere inside that line.
//
// The two locators are not interchangeable. LocateFirst identifies a block
// deterministically by its first textual occurrence. LocateLast resolves an
// insertion point, so a repeated marker always yields insertion after its
// final occurrence. All returns every occurrence.
package anchor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNotFound indicates no line matched the key.
	ErrNotFound = errors.New("cannot find token in file")

	// ErrEmptyKey indicates an empty search key.
	ErrEmptyKey = errors.New("empty search key")

	// ErrInvalidPattern indicates a pattern key failed to compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// NotFoundError reports the token a search failed to find.
type NotFoundError struct {
	Token string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot find the token %s in the file", e.Token)
}

// Is makes errors.Is(err, ErrNotFound) true for any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound returns true if err is or wraps a failed anchor search.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Kind distinguishes literal keys from pattern keys.
type Kind int

const (
	// KindLiteral matches a plain substring.
	KindLiteral Kind = iota
	// KindPattern matches a regular expression.
	KindPattern
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindPattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// Key is a search key. The zero value is not usable; construct keys with
// Literal, Pattern or MustPattern.
type Key struct {
	kind Kind
	text string
	re   *regexp.Regexp
}

// Literal returns a key matching s as a plain substring.
func Literal(s string) Key {
	return Key{
		kind: KindLiteral,
		text: s,
		re:   regexp.MustCompile(regexp.QuoteMeta(s)),
	}
}

// Pattern returns a key matching the regular expression expr.
func Pattern(expr string) (Key, error) {
	if expr == "" {
		return Key{}, ErrEmptyKey
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return Key{kind: KindPattern, text: expr, re: re}, nil
}

// MustPattern is like Pattern but panics on error. It is meant for
// package-level constants.
func MustPattern(expr string) Key {
	k, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return k
}

// Kind returns the key kind.
func (k Key) Kind() Kind { return k.kind }

// String returns the text the key was built from.
func (k Key) String() string { return k.text }

// Expr returns the regular expression source used for matching. For literal
// keys this is the escaped literal.
func (k Key) Expr() string {
	if k.re == nil {
		return ""
	}
	return k.re.String()
}

// Valid reports whether the key can be used for matching.
func (k Key) Valid() bool {
	return k.re != nil && k.text != ""
}

// Match reports whether line contains the key.
func (k Key) Match(line string) bool {
	if k.kind == KindLiteral {
		return strings.Contains(line, k.text)
	}
	return k.re.MatchString(line)
}

func (k Key) check() error {
	if !k.Valid() {
		return ErrEmptyKey
	}
	return nil
}
