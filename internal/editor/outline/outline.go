// Package outline tracks collapsed (folded) regions and the records
// needed to preserve them across structural edits such as line moves.
// The core only needs the minimal protocol: enumerate regions touching
// a span, expand them before the text moves, and re-collapse shifted
// spans afterwards with the manager's own undo hook disabled so the
// replay does not pollute history.
package outline

import "github.com/dshills/editkit/internal/editor/buffer"

// Region is a collapsed span and its caller-supplied tag.
type Region struct {
	Span buffer.Range
	Tag  string
}

// Manager is the outlining collaborator consumed by editing
// operations.
type Manager interface {
	// CollapsedInRange returns collapsed regions intersecting the span.
	CollapsedInRange(span buffer.Range) []Region

	// Collapse folds a span. Returns false if the span is invalid or
	// already collapsed.
	Collapse(span buffer.Range, tag string) bool

	// Expand unfolds the region exactly matching the span. Returns
	// false if no such region exists.
	Expand(span buffer.Range) bool

	// SetUndoEnabled toggles the manager's own undo hook. Programmatic
	// re-collapse during a structural move runs with it disabled.
	SetUndoEnabled(enabled bool)

	// UndoEnabled reports the current undo hook state.
	UndoEnabled() bool
}

// Tracker is the in-memory Manager used by the core and its tests.
type Tracker struct {
	regions     []Region
	undoEnabled bool
}

// NewTracker creates an empty tracker with its undo hook enabled.
func NewTracker() *Tracker {
	return &Tracker{undoEnabled: true}
}

// CollapsedInRange returns collapsed regions intersecting the span.
func (t *Tracker) CollapsedInRange(span buffer.Range) []Region {
	var out []Region
	for _, r := range t.regions {
		if r.Span.Overlaps(span) {
			out = append(out, r)
		}
	}
	return out
}

// Collapse folds a span.
func (t *Tracker) Collapse(span buffer.Range, tag string) bool {
	if !span.IsValid() || span.IsEmpty() {
		return false
	}
	for _, r := range t.regions {
		if r.Span == span {
			return false
		}
	}
	t.regions = append(t.regions, Region{Span: span, Tag: tag})
	return true
}

// Expand unfolds the region exactly matching the span.
func (t *Tracker) Expand(span buffer.Range) bool {
	for i, r := range t.regions {
		if r.Span == span {
			t.regions = append(t.regions[:i], t.regions[i+1:]...)
			return true
		}
	}
	return false
}

// SetUndoEnabled toggles the undo hook.
func (t *Tracker) SetUndoEnabled(enabled bool) {
	t.undoEnabled = enabled
}

// UndoEnabled reports the undo hook state.
func (t *Tracker) UndoEnabled() bool {
	return t.undoEnabled
}

// Regions returns a copy of all collapsed regions.
func (t *Tracker) Regions() []Region {
	out := make([]Region, len(t.regions))
	copy(out, t.regions)
	return out
}

// Capture expands every collapsed region intersecting the span and
// returns records describing them, ready to be re-collapsed at a
// shifted location after a structural move.
func Capture(m Manager, span buffer.Range) []Region {
	regions := m.CollapsedInRange(span)
	for _, r := range regions {
		m.Expand(r.Span)
	}
	return regions
}

// Restore re-collapses captured regions shifted by delta. The
// manager's undo hook is disabled for the duration so the programmatic
// replay records nothing of its own.
func Restore(m Manager, records []Region, delta buffer.ByteOffset) {
	if len(records) == 0 {
		return
	}
	prev := m.UndoEnabled()
	m.SetUndoEnabled(false)
	defer m.SetUndoEnabled(prev)
	for _, r := range records {
		m.Collapse(r.Span.Shift(delta), r.Tag)
	}
}
