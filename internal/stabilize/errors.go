package stabilize

import "errors"

var (
	// ErrNoVersion indicates no quoted version token was found where one
	// was expected.
	ErrNoVersion = errors.New("no version token")

	// ErrNothingAbove indicates the promoted entry landed on the first line,
	// so there is no preceding entry to copy a version from.
	ErrNothingAbove = errors.New("no entry precedes the promoted block")
)
