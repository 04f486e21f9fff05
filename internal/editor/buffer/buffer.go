package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("staged edits overlap")
	ErrStaleSnapshot    = errors.New("snapshot is not the current buffer state")
)

// LineBreak specifies the line break style used when an operation has
// to synthesize a break sequence.
type LineBreak uint8

const (
	LineBreakLF   LineBreak = iota // Unix: \n
	LineBreakCRLF                  // Windows: \r\n
)

// Sequence returns the actual line break characters.
func (lb LineBreak) Sequence() string {
	if lb == LineBreakCRLF {
		return "\r\n"
	}
	return "\n"
}

// DetectLineBreak returns the dominant line break style in the text.
// Returns LineBreakLF when the text has no breaks.
func DetectLineBreak(text string) LineBreak {
	crlf := strings.Count(text, "\r\n")
	lf := strings.Count(text, "\n") - crlf
	if crlf > lf {
		return LineBreakCRLF
	}
	return LineBreakLF
}

// Buffer owns the current snapshot of a document plus the bookkeeping
// shared by all edits: the preferred line break style and the set of
// read-only regions. Text is only ever changed through an
// EditTransaction obtained from CreateEdit; existing snapshots are
// never mutated.
type Buffer struct {
	mu        sync.Mutex
	current   *Snapshot
	lineBreak LineBreak
	readOnly  []Range
}

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineBreak sets the buffer's preferred line break style.
func WithLineBreak(lb LineBreak) Option {
	return func(b *Buffer) {
		b.lineBreak = lb
	}
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		current:   newSnapshot("", 1),
		lineBreak: LineBreakLF,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer with initial content. The line break
// style is detected from the content unless set explicitly.
func NewFromString(text string, opts ...Option) *Buffer {
	b := &Buffer{
		current:   newSnapshot(text, 1),
		lineBreak: DetectLineBreak(text),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Current returns the current snapshot.
func (b *Buffer) Current() *Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// LineBreak returns the buffer's preferred line break style.
func (b *Buffer) LineBreak() LineBreak {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lineBreak
}

// MarkReadOnly marks a range of the current snapshot as read-only.
// Staged edits intersecting the range fail their whole transaction.
func (b *Buffer) MarkReadOnly(r Range) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = append(b.readOnly, r)
}

// ClearReadOnly removes all read-only regions.
func (b *Buffer) ClearReadOnly() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = nil
}

// ReadOnlyRegions returns a copy of the current read-only ranges.
func (b *Buffer) ReadOnlyRegions() []Range {
	b.mu.Lock()
	defer b.mu.Unlock()
	regions := make([]Range, len(b.readOnly))
	copy(regions, b.readOnly)
	return regions
}

// intersectsReadOnly reports whether an edit at r would touch a
// read-only region. Insertions strictly inside a region count;
// insertions at a region boundary do not.
func (b *Buffer) intersectsReadOnly(r Range) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ro := range b.readOnly {
		if r.IsEmpty() {
			if r.Start > ro.Start && r.Start < ro.End {
				return true
			}
			continue
		}
		if r.Overlaps(ro) {
			return true
		}
	}
	return false
}

// CreateEdit opens a transaction against the current snapshot.
// The caller must finish it with Apply, Cancel, or a deferred Release.
func (b *Buffer) CreateEdit() *EditTransaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &EditTransaction{buf: b, base: b.current}
}

// commit installs the new snapshot built from base plus edits.
// Called by EditTransaction.Apply with edits sorted ascending and
// verified non-overlapping.
func (b *Buffer) commit(base *Snapshot, edits []Edit) (*Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if base != b.current {
		return b.current, ErrStaleSnapshot
	}

	var sb strings.Builder
	sb.Grow(len(base.text))
	var pos ByteOffset
	for _, e := range edits {
		sb.WriteString(base.text[pos:e.Range.Start])
		sb.WriteString(e.NewText)
		pos = e.Range.End
	}
	sb.WriteString(base.text[pos:])

	next := newSnapshot(sb.String(), base.version+1)
	base.succ = &editBatch{edits: edits, to: next}
	b.current = next

	// Read-only regions ride forward with the text they protect.
	for i, ro := range b.readOnly {
		start := transformThroughBatch(ro.Start, edits, TrackBackward)
		end := transformThroughBatch(ro.End, edits, TrackForward)
		if start > end {
			start, end = end, start
		}
		b.readOnly[i] = Range{Start: start, End: end}
	}

	return next, nil
}
