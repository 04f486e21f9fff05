package buffer

import "sort"

// EditTransaction stages a batch of replacements against one snapshot
// and applies them atomically. Offsets handed to Insert, Delete, and
// Replace are always interpreted against the original snapshot; they
// are never adjusted for other operations staged in the same handle.
//
// A handle is single-use: after Apply or Cancel it rejects further
// staging. Release is idempotent and cancels an unfinished handle, so
// callers can defer it on every exit path and be certain a failed or
// abandoned transaction leaves the buffer untouched.
type EditTransaction struct {
	buf      *Buffer
	base     *Snapshot
	edits    []Edit
	applied  []Edit
	failed   bool
	finished bool
}

// BaseSnapshot returns the snapshot this transaction was opened on.
func (t *EditTransaction) BaseSnapshot() *Snapshot {
	return t.base
}

// Failed returns true once any staged operation has been rejected.
func (t *EditTransaction) Failed() bool {
	return t.failed
}

// HasEffect returns true if any staged edit would change the text.
func (t *EditTransaction) HasEffect() bool {
	for _, e := range t.edits {
		if !e.IsNoOp() && (e.NewText != t.base.TextRange(e.Range.Start, e.Range.End)) {
			return true
		}
	}
	return false
}

// Insert stages an insertion. Returns false and marks the transaction
// failed if the offset is out of range or inside a read-only region.
func (t *EditTransaction) Insert(offset ByteOffset, text string) bool {
	return t.stage(Edit{Range: Range{Start: offset, End: offset}, NewText: text})
}

// Delete stages a deletion of the given span.
func (t *EditTransaction) Delete(span Range) bool {
	return t.stage(Edit{Range: span})
}

// Replace stages a replacement of the given span.
func (t *EditTransaction) Replace(span Range, text string) bool {
	return t.stage(Edit{Range: span, NewText: text})
}

func (t *EditTransaction) stage(e Edit) bool {
	if t.finished || t.failed {
		t.failed = true
		return false
	}
	if !e.Range.IsValid() || e.Range.Start < 0 || e.Range.End > t.base.Len() {
		t.failed = true
		return false
	}
	if t.buf.intersectsReadOnly(e.Range) {
		t.failed = true
		return false
	}
	t.edits = append(t.edits, e)
	return true
}

// Apply commits all staged edits atomically against the original
// snapshot. It returns the resulting snapshot and true on success. On
// failure — a rejected stage, overlapping spans, or the buffer having
// moved past the original snapshot — it returns the original snapshot
// unchanged and false. A transaction whose edits change nothing
// succeeds without producing a new snapshot.
func (t *EditTransaction) Apply() (*Snapshot, bool) {
	if t.finished {
		return t.base, false
	}
	t.finished = true

	if t.failed {
		return t.base, false
	}

	edits := make([]Edit, 0, len(t.edits))
	for _, e := range t.edits {
		if e.IsNoOp() {
			continue
		}
		edits = append(edits, e)
	}
	if len(edits) == 0 {
		return t.base, true
	}

	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Range.Start < edits[j].Range.Start
	})
	for i := 1; i < len(edits); i++ {
		if edits[i].Range.Start < edits[i-1].Range.End {
			return t.base, false
		}
	}

	changed := false
	for _, e := range edits {
		if e.NewText != t.base.TextRange(e.Range.Start, e.Range.End) {
			changed = true
			break
		}
	}
	if !changed {
		return t.base, true
	}

	next, err := t.buf.commit(t.base, edits)
	if err != nil {
		return t.base, false
	}
	t.applied = edits
	return next, true
}

// AppliedEdits returns the edits committed by a successful Apply, in
// ascending offset order. Nil until Apply produces a new snapshot.
func (t *EditTransaction) AppliedEdits() []Edit {
	return t.applied
}

// Cancel discards the transaction with zero side effects.
func (t *EditTransaction) Cancel() {
	t.finished = true
}

// Release cancels the transaction unless it already finished.
// Safe to call multiple times.
func (t *EditTransaction) Release() {
	if !t.finished {
		t.finished = true
	}
}
