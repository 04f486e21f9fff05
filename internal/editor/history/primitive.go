package history

import (
	"sort"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/outline"
	"github.com/dshills/editkit/internal/editor/selection"
)

// PrimitiveKind tags an undo primitive. Primitives are plain data
// replayed by one interpreter, not polymorphic objects.
type PrimitiveKind uint8

const (
	// PrimitiveBeforeChange captures caret/selection state before the
	// edit; replayed on undo.
	PrimitiveBeforeChange PrimitiveKind = iota

	// PrimitiveAfterChange captures caret/selection state after the
	// edit; replayed on redo.
	PrimitiveAfterChange

	// PrimitiveCollapsedBefore captures collapsed regions as they were
	// before the edit; re-collapsed on undo.
	PrimitiveCollapsedBefore

	// PrimitiveCollapsedAfter captures collapsed regions as they stand
	// after the edit; re-collapsed on redo.
	PrimitiveCollapsedAfter
)

// String returns the kind name.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveBeforeChange:
		return "before-change"
	case PrimitiveAfterChange:
		return "after-change"
	case PrimitiveCollapsedBefore:
		return "collapsed-before"
	case PrimitiveCollapsedAfter:
		return "collapsed-after"
	default:
		return "unknown"
	}
}

// Primitive is one tagged undo record.
type Primitive struct {
	Kind         PrimitiveKind
	Selections   []selection.Selection
	PrimaryIndex int
	Box          *selection.Box
	Regions      []outline.Region
}

// EditRecord captures one applied replacement in both coordinate
// systems: OldRange/OldText against the pre-edit snapshot (for undo)
// and NewRange/NewText against the post-edit snapshot (for redo).
type EditRecord struct {
	OldRange buffer.Range
	NewRange buffer.Range
	OldText  string
	NewText  string
}

// RecordsFromEdits converts the staged edits of one applied
// transaction into edit records. Edits are expressed against base and
// must be non-overlapping; they are recorded in ascending order.
func RecordsFromEdits(base *buffer.Snapshot, edits []buffer.Edit) []EditRecord {
	sorted := make([]buffer.Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start < sorted[j].Range.Start
	})

	records := make([]EditRecord, 0, len(sorted))
	var delta buffer.ByteOffset
	for _, e := range sorted {
		newStart := e.Range.Start + delta
		records = append(records, EditRecord{
			OldRange: e.Range,
			NewRange: buffer.Range{Start: newStart, End: newStart + buffer.ByteOffset(len(e.NewText))},
			OldText:  base.TextRange(e.Range.Start, e.Range.End),
			NewText:  e.NewText,
		})
		delta += e.Delta()
	}
	return records
}
