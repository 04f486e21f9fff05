package selection

import (
	"sort"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/virtpos"
)

// Mode selects the shape of a Select call.
type Mode uint8

const (
	// ModeStream is an ordinary contiguous selection.
	ModeStream Mode = iota
	// ModeBox is a rectangular selection defined by two corners.
	ModeBox
)

// Broker owns the selection state of one document view: an ordered
// set of pairwise non-overlapping selections, exactly one of which is
// primary, plus an optional box descriptor that, when present, is the
// authoritative shape. One broker exists per open view; it is passed
// into operations explicitly, never reached through ambient state.
type Broker struct {
	sels    []Selection
	primary int
	box     *Box

	batchDepth int
	needNorm   bool
}

// NewBroker creates a broker with a single caret at offset 0.
func NewBroker() *Broker {
	return &Broker{sels: []Selection{NewCaretAt(0)}}
}

// Select replaces all selections with one stream selection or a box.
func (b *Broker) Select(anchor, active virtpos.VirtualPosition, mode Mode) {
	if mode == ModeBox {
		b.box = &Box{Anchor: anchor, Active: active}
		b.sels = []Selection{New(anchor, active)}
		b.primary = 0
		return
	}
	b.box = nil
	b.sels = []Selection{New(anchor, active)}
	b.primary = 0
}

// SetCaret collapses everything to a single caret.
func (b *Broker) SetCaret(pos virtpos.VirtualPosition) {
	b.box = nil
	b.sels = []Selection{NewCaret(pos)}
	b.primary = 0
}

// AddSelection adds a secondary selection, dropping any box shape.
// The new selection becomes primary, matching a fresh caret gesture.
func (b *Broker) AddSelection(sel Selection) {
	b.box = nil
	b.sels = append(b.sels, sel)
	b.primary = len(b.sels) - 1
	b.normalizeOrDefer()
}

// SetAll replaces all selections. primaryIndex selects the primary;
// out-of-range values fall back to the first selection.
func (b *Broker) SetAll(sels []Selection, primaryIndex int) {
	if len(sels) == 0 {
		b.SetCaret(virtpos.New(0))
		return
	}
	b.box = nil
	b.sels = make([]Selection, len(sels))
	copy(b.sels, sels)
	if primaryIndex < 0 || primaryIndex >= len(sels) {
		primaryIndex = 0
	}
	b.primary = primaryIndex
	b.normalizeOrDefer()
}

// SetBox installs a box selection from corner positions and
// materializes it against the given snapshot.
func (b *Broker) SetBox(box Box, snap *buffer.Snapshot, tabSize int) {
	b.box = &box
	b.sels = box.Materialize(snap, tabSize)
	if len(b.sels) == 0 {
		b.sels = []Selection{NewCaret(box.Active)}
	}
	// The caret lives at the active corner's line.
	if box.IsUpward() {
		b.primary = 0
	} else {
		b.primary = len(b.sels) - 1
	}
}

// ClearSecondary drops all selections except the primary.
func (b *Broker) ClearSecondary() {
	if b.box != nil {
		b.box = nil
	}
	if len(b.sels) > 1 {
		b.sels = []Selection{b.sels[b.primary]}
		b.primary = 0
	}
}

// All returns a copy of the selections in document order.
func (b *Broker) All() []Selection {
	out := make([]Selection, len(b.sels))
	copy(out, b.sels)
	return out
}

// Count returns the number of selections.
func (b *Broker) Count() int {
	return len(b.sels)
}

// Primary returns the primary selection.
func (b *Broker) Primary() Selection {
	return b.sels[b.primary]
}

// PrimaryIndex returns the index of the primary selection.
func (b *Broker) PrimaryIndex() int {
	return b.primary
}

// IsBox returns true when a box selection is active.
func (b *Broker) IsBox() bool {
	return b.box != nil
}

// Box returns the box descriptor, if any.
func (b *Broker) Box() (Box, bool) {
	if b.box == nil {
		return Box{}, false
	}
	return *b.box, true
}

// Remove deletes the selection at index. Removing the primary promotes
// the next selection in document order, or the previous one at the
// tail. The last remaining selection cannot be removed.
func (b *Broker) Remove(index int) {
	if index < 0 || index >= len(b.sels) || len(b.sels) == 1 {
		return
	}
	b.sels = append(b.sels[:index], b.sels[index+1:]...)
	switch {
	case b.primary > index:
		b.primary--
	case b.primary == index && b.primary >= len(b.sels):
		b.primary = len(b.sels) - 1
	}
}

// PerformOnAll applies a transform to every selection, then
// re-normalizes (or defers normalization inside a batch scope).
func (b *Broker) PerformOnAll(transform func(Selection) Selection) {
	for i, sel := range b.sels {
		b.sels[i] = transform(sel)
	}
	b.normalizeOrDefer()
}

// TryPerformOn applies a transform to the selection equal to old.
// If that selection no longer exists — typically merged away during a
// batched multi-selection edit — it reports false and does nothing;
// callers treat that as a silent no-op.
func (b *Broker) TryPerformOn(old Selection, transform func(Selection) Selection) (Selection, bool) {
	for i, sel := range b.sels {
		if sel.Equals(old) {
			b.sels[i] = transform(sel)
			b.normalizeOrDefer()
			return b.sels[i], true
		}
	}
	return Selection{}, false
}

// BeginBatch opens a batch scope: selection-merge normalization is
// deferred until the returned close function runs, so N edits inside
// the scope pay one O(N) merge pass instead of N of them. Scopes nest.
func (b *Broker) BeginBatch() func() {
	b.batchDepth++
	closed := false
	return func() {
		if closed {
			return
		}
		closed = true
		b.batchDepth--
		if b.batchDepth == 0 && b.needNorm {
			b.needNorm = false
			b.normalize()
		}
	}
}

// TranslateTo carries every selection (and the box corners) into a new
// snapshot, then re-normalizes.
func (b *Broker) TranslateTo(from, to *buffer.Snapshot, tabSize int) {
	if from == to {
		return
	}
	if b.box != nil {
		box := b.box.Translate(from, to)
		b.SetBox(box, to, tabSize)
		return
	}
	for i, sel := range b.sels {
		b.sels[i] = sel.Translate(from, to)
	}
	b.normalizeOrDefer()
}

func (b *Broker) normalizeOrDefer() {
	if b.batchDepth > 0 {
		b.needNorm = true
		return
	}
	b.normalize()
}

// normalize sorts selections by extent start and merges touching
// neighbors, preserving the earlier selection's direction and keeping
// the primary designation on whichever merged selection absorbed it.
func (b *Broker) normalize() {
	if len(b.sels) <= 1 {
		return
	}

	type entry struct {
		sel     Selection
		primary bool
	}
	entries := make([]entry, len(b.sels))
	for i, sel := range b.sels {
		entries[i] = entry{sel: sel, primary: i == b.primary}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		si, sj := entries[i].sel.Start(), entries[j].sel.Start()
		if c := si.Compare(sj); c != 0 {
			return c < 0
		}
		return entries[j].sel.End().Before(entries[i].sel.End())
	})

	merged := entries[:1]
	for _, e := range entries[1:] {
		last := &merged[len(merged)-1]
		if last.sel.Touches(e.sel) {
			last.sel = last.sel.Merge(e.sel)
			last.primary = last.primary || e.primary
		} else {
			merged = append(merged, e)
		}
	}

	b.sels = b.sels[:0]
	b.primary = 0
	for i, e := range merged {
		b.sels = append(b.sels, e.sel)
		if e.primary {
			b.primary = i
		}
	}
}
