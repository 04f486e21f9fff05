package ops

import (
	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/clipboard"
	"github.com/dshills/editkit/internal/editor/history"
	"github.com/dshills/editkit/internal/editor/options"
	"github.com/dshills/editkit/internal/editor/outline"
	"github.com/dshills/editkit/internal/editor/selection"
	"github.com/dshills/editkit/internal/editor/textnav"
)

// Status is the outcome of one operation. NoOp is a success: the
// operation had nothing to do and left everything untouched. Failed
// means an edit was rejected; the buffer and selection state are
// guaranteed unchanged and no undo entry was recorded.
type Status uint8

const (
	Done Status = iota
	NoOp
	Failed
)

// OK reports whether the operation succeeded (Done or NoOp).
func (s Status) OK() bool {
	return s != Failed
}

func (s Status) String() string {
	switch s {
	case Done:
		return "done"
	case NoOp:
		return "noop"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// SmartIndenter computes a desired indentation column for a line. An
// implementation may decline by returning ok=false, in which case the
// caret falls back to column zero.
type SmartIndenter interface {
	DesiredIndent(snap *buffer.Snapshot, line uint32) (column int, ok bool)
}

// Operations binds one document view's collaborators together and
// exposes the operation catalog. It is owned per view, never shared
// across views, and assumes exclusive synchronous access from one
// editing goroutine.
type Operations struct {
	buf      *buffer.Buffer
	sels     *selection.Broker
	nav      textnav.Navigator
	out      outline.Manager
	hist     *history.History
	clip     clipboard.Clipboard
	opts     options.Options
	indenter SmartIndenter
	search   Searcher
}

// Option configures an Operations instance.
type Option func(*Operations)

// WithSelections supplies the selection broker.
func WithSelections(b *selection.Broker) Option {
	return func(o *Operations) { o.sels = b }
}

// WithNavigator supplies the text-structure navigator.
func WithNavigator(n textnav.Navigator) Option {
	return func(o *Operations) { o.nav = n }
}

// WithOutline supplies the collapsed-region manager.
func WithOutline(m outline.Manager) Option {
	return func(o *Operations) { o.out = m }
}

// WithHistory supplies the undo history.
func WithHistory(h *history.History) Option {
	return func(o *Operations) { o.hist = h }
}

// WithClipboard supplies the clipboard adapter.
func WithClipboard(c clipboard.Clipboard) Option {
	return func(o *Operations) { o.clip = c }
}

// WithOptions supplies the editor options.
func WithOptions(opts options.Options) Option {
	return func(o *Operations) { o.opts = opts }
}

// WithSmartIndenter supplies the smart-indent collaborator.
func WithSmartIndenter(si SmartIndenter) Option {
	return func(o *Operations) { o.indenter = si }
}

// WithSearcher supplies the text-search collaborator.
func WithSearcher(s Searcher) Option {
	return func(o *Operations) { o.search = s }
}

// New creates an operation catalog over a buffer. Collaborators not
// supplied get in-memory defaults.
func New(buf *buffer.Buffer, opts ...Option) *Operations {
	o := &Operations{
		buf:  buf,
		opts: options.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.sels == nil {
		o.sels = selection.NewBroker()
	}
	if o.nav == nil {
		o.nav = textnav.NewUnicode()
	}
	if o.out == nil {
		o.out = outline.NewTracker()
	}
	if o.hist == nil {
		o.hist = history.New(history.DefaultMaxEntries)
	}
	if o.clip == nil {
		o.clip = clipboard.NewMemory()
	}
	if o.search == nil {
		o.search = NewRegexSearcher()
	}
	return o
}

// Buffer returns the underlying buffer.
func (o *Operations) Buffer() *buffer.Buffer {
	return o.buf
}

// Selections returns the selection broker.
func (o *Operations) Selections() *selection.Broker {
	return o.sels
}

// History returns the undo history.
func (o *Operations) History() *history.History {
	return o.hist
}

// Options returns the current option set.
func (o *Operations) Options() options.Options {
	return o.opts
}

// SetOptions replaces the option set.
func (o *Operations) SetOptions(opts options.Options) {
	o.opts = opts
}

// Undo replays the most recent committed operation in reverse.
func (o *Operations) Undo() error {
	return o.hist.Undo(o.env())
}

// Redo replays the most recently undone operation forward.
func (o *Operations) Redo() error {
	return o.hist.Redo(o.env())
}

func (o *Operations) env() history.Env {
	return history.Env{
		Buffer:     o.buf,
		Selections: o.sels,
		Outline:    o.out,
		TabSize:    o.opts.TabSize,
	}
}

func (o *Operations) boxPtr() *selection.Box {
	if b, ok := o.sels.Box(); ok {
		return &b
	}
	return nil
}

// edit carries the in-flight state of one mutating operation: the base
// snapshot, the undo transaction with before-state captured, and the
// open edit handle. Every exit path must end in apply, fail, or noop.
type edit struct {
	o    *Operations
	snap *buffer.Snapshot
	txn  *history.Transaction
	tx   *buffer.EditTransaction
}

func (o *Operations) begin(name string) *edit {
	e := &edit{
		o:    o,
		snap: o.buf.Current(),
		txn:  o.hist.Open(name),
		tx:   o.buf.CreateEdit(),
	}
	e.txn.AddBeforeState(o.sels.All(), o.sels.PrimaryIndex(), o.boxPtr())
	return e
}

// fail aborts the operation: no buffer change, no undo entry.
func (e *edit) fail() Status {
	e.tx.Cancel()
	e.txn.Cancel()
	return Failed
}

// noop discards the operation as a success with nothing to do.
func (e *edit) noop() Status {
	e.tx.Cancel()
	e.txn.Cancel()
	return NoOp
}

// apply commits the staged edits. On a text change it runs reconcile
// (or, when reconcile is nil, the default selection translation),
// records the edit and after-state in the undo transaction, and
// commits it. A successful apply that changed nothing is a no-op and
// records no undo entry.
func (e *edit) apply(reconcile func(old, next *buffer.Snapshot)) Status {
	next, ok := e.tx.Apply()
	if !ok {
		e.txn.Cancel()
		return Failed
	}
	if next == e.snap {
		e.txn.Cancel()
		return NoOp
	}
	if reconcile != nil {
		reconcile(e.snap, next)
	} else {
		e.o.sels.TranslateTo(e.snap, next, e.o.opts.TabSize)
	}
	e.txn.AddEdits(history.RecordsFromEdits(e.snap, e.tx.AppliedEdits()))
	e.txn.AddAfterState(e.o.sels.All(), e.o.sels.PrimaryIndex(), e.o.boxPtr())
	if err := e.txn.Commit(); err != nil {
		return Failed
	}
	return Done
}

// commitSelectionOnly records a selection-state-only transaction for
// operations that moved carets without touching text (virtual-space
// retreat, case caret skip). The new selection state must already be
// in the broker.
func (e *edit) commitSelectionOnly() Status {
	e.tx.Cancel()
	e.txn.AddAfterState(e.o.sels.All(), e.o.sels.PrimaryIndex(), e.o.boxPtr())
	if err := e.txn.Commit(); err != nil {
		return Failed
	}
	return Done
}

// lineRange returns the line span a selection covers. A non-empty
// selection ending exactly at a line start does not include that line.
func lineRange(snap *buffer.Snapshot, sel selection.Selection) (uint32, uint32) {
	start := sel.Start().Offset
	end := sel.End().Offset
	first := snap.LineContaining(start)
	last := snap.LineContaining(end)
	if last > first && !sel.IsEmpty() && end == snap.LineStartOffset(last) {
		last--
	}
	return first, last
}

// firstNonBlankOffset returns the offset of the first character on the
// line that is not a space or tab, or the line end if the line is all
// whitespace.
func firstNonBlankOffset(snap *buffer.Snapshot, line uint32) buffer.ByteOffset {
	start := snap.LineStartOffset(line)
	text := snap.LineText(line)
	for i := 0; i < len(text); i++ {
		if text[i] != ' ' && text[i] != '\t' {
			return start + buffer.ByteOffset(i)
		}
	}
	return start + buffer.ByteOffset(len(text))
}

// lineBlock is a contiguous run of lines treated as one unit by the
// structural line operations.
type lineBlock struct {
	first, last uint32
}

// selectionBlocks merges the line ranges of all current selections
// into disjoint blocks, coalescing blocks that touch so adjacent
// selections move as one unit.
func selectionBlocks(snap *buffer.Snapshot, sels []selection.Selection) []lineBlock {
	blocks := make([]lineBlock, 0, len(sels))
	for _, sel := range sels {
		first, last := lineRange(snap, sel)
		blocks = append(blocks, lineBlock{first: first, last: last})
	}
	if len(blocks) <= 1 {
		return blocks
	}
	merged := blocks[:1]
	for _, b := range blocks[1:] {
		top := &merged[len(merged)-1]
		if b.first <= top.last+1 {
			if b.last > top.last {
				top.last = b.last
			}
			continue
		}
		merged = append(merged, b)
	}
	return merged
}
