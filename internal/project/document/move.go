package document

import (
	"github.com/dshills/stabilize/internal/engine/anchor"
	"github.com/dshills/stabilize/internal/engine/block"
	"github.com/dshills/stabilize/internal/engine/lines"
)

// MoveOption configures a block move.
type MoveOption func(*moveOptions)

type moveOptions struct {
	normalizers []block.Normalizer
}

// WithNormalizer runs norm on the sequence before the block is relocated.
// Normalizers run in the order given.
func WithNormalizer(norm block.Normalizer) MoveOption {
	return func(o *moveOptions) {
		o.normalizers = append(o.normalizers, norm)
	}
}

// MoveTo moves the first line containing key so that it sits after the last
// line containing after, and persists. Lines are rejoined with newlines and
// no trailing terminator. It returns the line's new position.
func (d *Document) MoveTo(after, key anchor.Key, opts ...MoveOption) (block.Block, error) {
	return d.move(after, key, 0, block.Above, lines.Separated, opts)
}

// MoveNLinesTo moves the first line containing key together with n lines
// above or below it so that the block sits after the last line containing
// after, and persists. The output ends with a newline. It returns the
// block's new position.
func (d *Document) MoveNLinesTo(after, key anchor.Key, n int, dir block.Direction, opts ...MoveOption) (block.Block, error) {
	return d.move(after, key, n, dir, lines.Terminated, opts)
}

func (d *Document) move(after, key anchor.Key, n int, dir block.Direction, term lines.Terminator, opts []MoveOption) (block.Block, error) {
	if err := d.ensureLoaded(); err != nil {
		return block.Block{}, err
	}

	var o moveOptions
	for _, opt := range opts {
		opt(&o)
	}

	keyIndex, err := anchor.LocateFirst(d.lines, key)
	if err != nil {
		return block.Block{}, err
	}
	src, err := block.Around(keyIndex, n, dir, len(d.lines))
	if err != nil {
		return block.Block{}, err
	}
	dst, err := anchor.LocateLast(d.lines, after)
	if err != nil {
		return block.Block{}, err
	}

	d.log.Debugf("moving %v after line %d", src, dst)
	moved, landed, err := block.Relocate(d.lines, src, dst, o.normalizers...)
	if err != nil {
		return block.Block{}, err
	}
	if err := d.Write(lines.Join(moved, term)); err != nil {
		return block.Block{}, err
	}
	return landed, nil
}
