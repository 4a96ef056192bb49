package block

import (
	"slices"

	"github.com/dshills/stabilize/internal/engine/lines"
)

// Move relocates the n lines starting at src so they sit next to dst, in
// place. See the package documentation for the exact landing position.
func Move(ls []string, src, dst, n int) error {
	if n == 0 {
		return nil
	}
	if n < 0 || n > len(ls) || src < 0 || src+n > len(ls) || dst < 0 || dst >= len(ls) {
		return &MoveError{Src: src, Dst: dst, N: n, Len: len(ls), Err: ErrOutOfBounds}
	}

	switch {
	case dst < src:
		rotateRight(ls[dst:src+n], n)
	case dst >= src+n-1:
		rotateLeft(ls[src:dst+1], n)
	default:
		return &MoveError{Src: src, Dst: dst, N: n, Len: len(ls), Err: ErrOverlap}
	}
	return nil
}

// Landing returns where a block of n lines moved from src to dst ends up.
func Landing(src, dst, n int) Block {
	if dst < src {
		return Block{Start: dst, End: dst + n - 1}
	}
	return Block{Start: dst - n + 1, End: dst}
}

// Normalizer rewrites the sequence before a block is relocated. It returns
// the new sequence and the index of the single line it removed, or -1 when
// nothing was removed. Normalizers must not touch lines inside blk. An error
// aborts the relocation.
type Normalizer func(ls []string, blk Block) ([]string, int, error)

// Relocate moves blk to dst on a copy of ls, running the normalizers first.
// dst is adjusted for any line a normalizer removed. It returns the new
// sequence and the block's final position.
func Relocate(ls []string, blk Block, dst int, norms ...Normalizer) ([]string, Block, error) {
	if blk.Start < 0 || blk.End >= len(ls) || blk.Len() < 1 {
		return nil, Block{}, &MoveError{Src: blk.Start, Dst: dst, N: blk.Len(), Len: len(ls), Err: ErrOutOfBounds}
	}

	out := lines.Clone(ls)
	for _, norm := range norms {
		if norm == nil {
			continue
		}
		next, removed, err := norm(out, blk)
		if err != nil {
			return nil, Block{}, err
		}
		out = next
		if removed < 0 {
			continue
		}
		if blk.Contains(removed) {
			return nil, Block{}, &MoveError{Src: blk.Start, Dst: dst, N: blk.Len(), Len: len(out), Err: ErrOverlap}
		}
		if removed < blk.Start {
			blk.Start--
			blk.End--
		}
		if removed <= dst {
			dst--
		}
	}

	if err := Move(out, blk.Start, dst, blk.Len()); err != nil {
		return nil, Block{}, err
	}
	return out, Landing(blk.Start, dst, blk.Len()), nil
}

// CollapseBlankLines drops the blank line after blk when the line before it
// is blank too, so moving the block away does not leave two blank lines
// behind.
func CollapseBlankLines(ls []string, blk Block) ([]string, int, error) {
	before, after := blk.Start-1, blk.End+1
	if before < 0 || after >= len(ls) {
		return ls, -1, nil
	}
	if !lines.IsBlank(ls[before]) || !lines.IsBlank(ls[after]) {
		return ls, -1, nil
	}
	return lines.Remove(ls, after), after, nil
}

func rotateLeft(s []string, k int) {
	if len(s) == 0 {
		return
	}
	k %= len(s)
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}

func rotateRight(s []string, k int) {
	if len(s) == 0 {
		return
	}
	rotateLeft(s, len(s)-k%len(s))
}
