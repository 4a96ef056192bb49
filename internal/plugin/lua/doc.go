// Package lua runs user supplied Lua scripts as block normalizers.
//
// A normalizer script defines a global function
//
//	function normalize(lines, first, last)
//	  -- lines is a 1-based array of strings, first..last is the block
//	  -- that is about to move. Return the index of one line outside the
//	  -- block to delete it, or nil to leave the sequence alone.
//	end
//
// Scripts run in a sandboxed State: only the base, table, string and math
// libraries are opened, the loaders (dofile, loadfile, load, loadstring)
// are removed, and every call is bounded by an execution timeout. A small
// "stabilize" module is preloaded with helpers:
//
//	stabilize.is_blank(s)  -- true when s is empty or whitespace only
//	stabilize.log(msg)     -- writes msg to the debug log
//
// Loading a script:
//
//	norm, err := lua.LoadNormalizer(fsys, "collapse.lua")
//	if err != nil {
//	    return err
//	}
//	defer norm.Close()
//
//	_, err = doc.MoveNLinesTo(after, key, 1, block.Above, document.WithNormalizer(norm.Func()))
package lua
