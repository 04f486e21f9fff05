// Package buffer provides immutable, versioned text snapshots and the
// transactional edit machinery built on top of them.
//
// A Buffer owns the current Snapshot of a document. Snapshots are
// never mutated: applying an EditTransaction produces a new snapshot
// and links it into the buffer's edit chain. Positions are plain byte
// offsets, valid only against the snapshot they were captured on;
// TranslateOffset and TranslateRange walk the edit chain to carry
// positions forward across edits, with a Bias controlling whether a
// position absorbs text inserted exactly at it.
//
// Edits are all-or-nothing. A transaction stages any number of
// Insert/Delete/Replace calls against its original snapshot — staged
// spans must not overlap and are applied simultaneously — and either
// every staged change lands in one new snapshot, or the buffer is
// provably untouched. A staged operation that hits a read-only region
// fails the whole handle.
//
//	tx := buf.CreateEdit()
//	defer tx.Release()
//	tx.Replace(span, "new text")
//	snap, ok := tx.Apply()
package buffer
