// Package block moves contiguous runs of lines.
//
// A Block is an inclusive index range. Move relocates a block in place with a
// single rotation over the smallest slice enclosing both the block and its
// destination, so lines outside that slice are never touched and every line
// keeps its relative order.
//
// Destination indices are always expressed in the numbering before the block
// is removed:
//
//   - moving forward (dst past the block), the block ends on dst, i.e. it
//     sits immediately after the line originally at dst;
//   - moving backward (dst before the block), the block starts on dst, so it
//     takes the place of the line originally at dst and that line follows it.
//
// A destination strictly inside the block is rejected with ErrOverlap.
package block

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfBounds indicates a block or destination outside the sequence.
	ErrOutOfBounds = errors.New("the number of places to move is larger than the length of the vector")

	// ErrOverlap indicates a destination inside the block being moved.
	ErrOverlap = errors.New("destination lies inside the moved block")

	// ErrInvalidDirection indicates an unknown direction name.
	ErrInvalidDirection = errors.New("invalid direction")
)

// MoveError describes a rejected move.
type MoveError struct {
	Src int // Block start
	Dst int // Destination index
	N   int // Block length
	Len int // Sequence length
	Err error
}

// Error implements the error interface.
func (e *MoveError) Error() string {
	return fmt.Sprintf("move %d line(s) from %d to %d in %d: %v", e.N, e.Src, e.Dst, e.Len, e.Err)
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// IsOutOfBounds returns true if err is or wraps ErrOutOfBounds.
func IsOutOfBounds(err error) bool {
	return errors.Is(err, ErrOutOfBounds)
}

// Block is an inclusive range of line indices.
type Block struct {
	Start int
	End   int
}

// Len returns the number of lines in the block.
func (b Block) Len() int {
	return b.End - b.Start + 1
}

// Contains reports whether index i lies inside the block.
func (b Block) Contains(i int) bool {
	return i >= b.Start && i <= b.End
}

// String returns a human-readable representation of the block.
func (b Block) String() string {
	return fmt.Sprintf("[%d, %d]", b.Start, b.End)
}

// Direction selects which side of an anchor extra lines are taken from.
type Direction int

const (
	// Above takes the extra lines before the anchor.
	Above Direction = iota
	// Below takes the extra lines after the anchor.
	Below
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Above:
		return "above"
	case Below:
		return "below"
	default:
		return "unknown"
	}
}

// ParseDirection parses "above" or "below" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "above", "":
		return Above, nil
	case "below":
		return Below, nil
	default:
		return Above, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Around returns the block formed by anchor plus n extra lines in dir,
// within a sequence of total lines.
func Around(anchor, n int, dir Direction, total int) (Block, error) {
	var b Block
	switch dir {
	case Above:
		b = Block{Start: anchor - n, End: anchor}
	case Below:
		b = Block{Start: anchor, End: anchor + n}
	default:
		return Block{}, ErrInvalidDirection
	}
	if n < 0 || anchor < 0 || b.Start < 0 || b.End >= total {
		return Block{}, &MoveError{Src: b.Start, Dst: anchor, N: n + 1, Len: total, Err: ErrOutOfBounds}
	}
	return b, nil
}
