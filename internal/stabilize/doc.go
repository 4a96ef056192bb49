// Package stabilize runs the two edits that stabilize a language feature in
// a compiler source tree:
//
//   - PromoteFeature moves the feature's entry, with its doc comment, from
//     the active table to the end of the accepted table, flips its state
//     and gives it the version of the entry it now follows.
//   - RemoveFeatureGate deletes the #![feature(name)] line from every test
//     file under the UI test directory.
//
// Start runs whichever of the two are enabled, promotion first.
package stabilize
