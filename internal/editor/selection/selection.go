package selection

import (
	"fmt"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/virtpos"
)

// Affinity describes which side of the insertion point the caret
// associates with when a position is ambiguous (e.g. at a wrap point).
type Affinity uint8

const (
	// AffinitySuccessor associates the caret with the following text.
	AffinitySuccessor Affinity = iota
	// AffinityPredecessor associates the caret with the preceding text.
	AffinityPredecessor
)

// Selection is a single caret or contiguous selected span. Anchor is
// where the selection started, Active is the moving end, and Insertion
// is where typed text lands (usually equal to Active).
// Selection is an immutable value type.
type Selection struct {
	Anchor    virtpos.VirtualPosition
	Active    virtpos.VirtualPosition
	Insertion virtpos.VirtualPosition
	Affinity  Affinity
}

// NewCaret creates an empty selection at the given position.
func NewCaret(pos virtpos.VirtualPosition) Selection {
	return Selection{Anchor: pos, Active: pos, Insertion: pos}
}

// NewCaretAt creates an empty selection at a real buffer offset.
func NewCaretAt(offset buffer.ByteOffset) Selection {
	return NewCaret(virtpos.New(offset))
}

// New creates a selection from anchor to active.
func New(anchor, active virtpos.VirtualPosition) Selection {
	return Selection{Anchor: anchor, Active: active, Insertion: active}
}

// NewRange creates a forward selection over real offsets.
func NewRange(start, end buffer.ByteOffset) Selection {
	return New(virtpos.New(start), virtpos.New(end))
}

// IsEmpty returns true if the selection is just a caret.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Active
}

// IsReversed returns true if the active end precedes the anchor.
func (s Selection) IsReversed() bool {
	return s.Active.Before(s.Anchor)
}

// Start returns the earlier of anchor and active.
func (s Selection) Start() virtpos.VirtualPosition {
	return virtpos.Min(s.Anchor, s.Active)
}

// End returns the later of anchor and active.
func (s Selection) End() virtpos.VirtualPosition {
	return virtpos.Max(s.Anchor, s.Active)
}

// Extent returns the minimal virtual span covering anchor and active.
func (s Selection) Extent() (virtpos.VirtualPosition, virtpos.VirtualPosition) {
	return s.Start(), s.End()
}

// Span returns the real byte range covered by the selection.
// Virtual space contributes no bytes.
func (s Selection) Span() buffer.Range {
	return buffer.Range{Start: s.Start().Offset, End: s.End().Offset}
}

// Caret returns the insertion point.
func (s Selection) Caret() virtpos.VirtualPosition {
	return s.Insertion
}

// WithInsertion returns the selection with a different insertion point.
func (s Selection) WithInsertion(pos virtpos.VirtualPosition) Selection {
	s.Insertion = pos
	return s
}

// Collapse returns a caret at the active end.
func (s Selection) Collapse() Selection {
	return NewCaret(s.Active)
}

// CollapseToStart returns a caret at the selection start.
func (s Selection) CollapseToStart() Selection {
	return NewCaret(s.Start())
}

// Touches returns true if the extents overlap or are adjacent.
func (s Selection) Touches(other Selection) bool {
	aStart, aEnd := s.Extent()
	bStart, bEnd := other.Extent()
	return aStart.Compare(bEnd) <= 0 && bStart.Compare(aEnd) <= 0
}

// Merge combines two touching selections into one whose extent covers
// both. The receiver is treated as the earlier selection and its
// reversed-ness is preserved, so a multi-caret gesture keeps its
// direction when selections collide.
func (s Selection) Merge(other Selection) Selection {
	start := virtpos.Min(s.Start(), other.Start())
	end := virtpos.Max(s.End(), other.End())
	if s.IsReversed() {
		m := New(end, start)
		m.Affinity = s.Affinity
		return m
	}
	m := New(start, end)
	m.Affinity = s.Affinity
	return m
}

// Equals returns true if the selections are identical.
func (s Selection) Equals(other Selection) bool {
	return s == other
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Caret(%s)", s.Active)
	}
	return fmt.Sprintf("Selection(%s..%s)", s.Anchor, s.Active)
}

// Translate carries the selection from one snapshot to another.
// The extent start tracks backward and the end tracks forward, so
// unrelated edits at the boundaries do not leak into the selection;
// an empty caret tracks forward so it rides ahead of text inserted at
// it. Virtual spaces are dropped when the translated offset is no
// longer at a physical end of line.
func (s Selection) Translate(from, to *buffer.Snapshot) Selection {
	if from == to {
		return s
	}
	startBias, endBias := buffer.TrackBackward, buffer.TrackForward
	if s.IsEmpty() {
		startBias = buffer.TrackForward
	}
	anchorBias, activeBias := startBias, endBias
	if s.IsReversed() {
		anchorBias, activeBias = endBias, startBias
	}

	anchor := translatePosition(s.Anchor, from, to, anchorBias)
	active := translatePosition(s.Active, from, to, activeBias)
	insertion := translatePosition(s.Insertion, from, to, buffer.TrackForward)

	out := Selection{Anchor: anchor, Active: active, Insertion: insertion, Affinity: s.Affinity}
	return out
}

func translatePosition(v virtpos.VirtualPosition, from, to *buffer.Snapshot, bias buffer.Bias) virtpos.VirtualPosition {
	off, ok := buffer.TranslateOffset(v.Offset, from, to, bias)
	if !ok {
		off = v.Offset
		if off > to.Len() {
			off = to.Len()
		}
	}
	if v.Spaces > 0 && to.IsAtLineEnd(off) {
		return virtpos.NewVirtual(off, v.Spaces)
	}
	return virtpos.New(off)
}
