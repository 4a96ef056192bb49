// Package document owns a text file's path and its in-memory line sequence
// and applies line-oriented edits to it.
//
// A Document is synchronised with its backing file only at explicit points:
// Read loads it, and every mutation ends in Write, which replaces the file's
// content in full and updates the in-memory copy to exactly what was
// written. Edits are never batched, so after any successful call the buffer
// and the file agree.
//
// The Document does not keep a file handle between operations; Write opens
// the file, truncates, seeks, writes and closes each time.
//
// Basic usage:
//
//	doc, err := document.Load(vfs.NewOSFS(), "src/libsyntax/feature_gate.rs")
//	if err != nil {
//	    return err
//	}
//	blk, err := doc.MoveNLinesTo(
//	    anchor.Literal("(accepted, "),
//	    anchor.Literal("(active, my_feature,"),
//	    1, block.Above,
//	    document.WithNormalizer(block.CollapseBlankLines),
//	)
//
// A failed write can leave the file truncated. There is no rollback.
package document
