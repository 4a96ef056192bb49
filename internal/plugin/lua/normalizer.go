package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stabilize/internal/engine/block"
	"github.com/dshills/stabilize/internal/engine/lines"
	"github.com/dshills/stabilize/internal/project/vfs"
)

// EntryPoint is the global function a normalizer script must define.
const EntryPoint = "normalize"

// Normalizer is a loaded normalizer script.
type Normalizer struct {
	name  string
	state *State
}

// LoadNormalizer reads a script from fsys and loads it.
func LoadNormalizer(fsys vfs.FS, path string, opts ...StateOption) (*Normalizer, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, &ScriptError{Script: path, Err: err}
	}
	return NewNormalizer(path, string(data), opts...)
}

// NewNormalizer loads source under name, which is only used in errors.
func NewNormalizer(name, source string, opts ...StateOption) (*Normalizer, error) {
	state := NewState(opts...)
	if err := state.DoString(source); err != nil {
		state.Close()
		return nil, &ScriptError{Script: name, Err: err}
	}
	if state.GetGlobal(EntryPoint).Type() != lua.LTFunction {
		state.Close()
		return nil, &ScriptError{Script: name, Err: ErrNoNormalize}
	}
	return &Normalizer{name: name, state: state}, nil
}

// Name returns the script name.
func (n *Normalizer) Name() string {
	return n.name
}

// Normalize calls the script's normalize function. Indices cross the
// boundary 1-based.
func (n *Normalizer) Normalize(ls []string, blk block.Block) ([]string, int, error) {
	tbl := n.state.L.NewTable()
	for i, l := range ls {
		tbl.RawSetInt(i+1, lua.LString(l))
	}

	results, err := n.state.Call(EntryPoint, tbl, lua.LNumber(blk.Start+1), lua.LNumber(blk.End+1))
	if err != nil {
		return nil, -1, &ScriptError{Script: n.name, Err: err}
	}
	if len(results) == 0 || results[0] == lua.LNil || results[0] == lua.LFalse {
		return ls, -1, nil
	}

	num, ok := results[0].(lua.LNumber)
	if !ok {
		return nil, -1, &ScriptError{Script: n.name, Err: fmt.Errorf("%w: got %s", ErrBadResult, results[0].Type())}
	}
	idx := int(num) - 1
	if float64(idx+1) != float64(num) || idx < 0 || idx >= len(ls) || blk.Contains(idx) {
		return nil, -1, &ScriptError{Script: n.name, Err: fmt.Errorf("%w: %v", ErrBadResult, num)}
	}
	return lines.Remove(ls, idx), idx, nil
}

// Func returns Normalize as a block.Normalizer.
func (n *Normalizer) Func() block.Normalizer {
	return n.Normalize
}

// Close releases the script's state.
func (n *Normalizer) Close() error {
	return n.state.Close()
}
