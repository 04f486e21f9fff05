package history

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/outline"
	"github.com/dshills/editkit/internal/editor/selection"
)

// Errors returned by history operations.
var (
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrNothingToRedo  = errors.New("nothing to redo")
	ErrTxnFinished    = errors.New("transaction already committed or cancelled")
	ErrReplayConflict = errors.New("buffer state does not match the history entry")
)

// DefaultMaxEntries bounds the undo stack.
const DefaultMaxEntries = 1000

type txnState uint8

const (
	txnOpen txnState = iota
	txnCommitted
	txnCancelled
)

// Transaction accumulates the undo record of one editing operation:
// tagged state primitives plus the edit payload. A cancelled
// transaction leaves no trace, which is how failed or no-op operations
// avoid recording empty undo entries.
type Transaction struct {
	id         uuid.UUID
	name       string
	primitives []Primitive
	edits      []EditRecord
	state      txnState
	hist       *History
}

// ID returns the transaction's unique identifier.
func (t *Transaction) ID() uuid.UUID {
	return t.id
}

// Name returns the caller-supplied operation name.
func (t *Transaction) Name() string {
	return t.name
}

// AddPrimitive stages a tagged undo primitive.
func (t *Transaction) AddPrimitive(p Primitive) {
	if t.state != txnOpen {
		return
	}
	t.primitives = append(t.primitives, p)
}

// AddBeforeState stages the caret/selection state before the edit.
func (t *Transaction) AddBeforeState(sels []selection.Selection, primary int, box *selection.Box) {
	t.AddPrimitive(Primitive{Kind: PrimitiveBeforeChange, Selections: sels, PrimaryIndex: primary, Box: box})
}

// AddAfterState stages the caret/selection state after the edit.
func (t *Transaction) AddAfterState(sels []selection.Selection, primary int, box *selection.Box) {
	t.AddPrimitive(Primitive{Kind: PrimitiveAfterChange, Selections: sels, PrimaryIndex: primary, Box: box})
}

// AddCollapsedBefore stages collapsed regions as they were before the
// edit.
func (t *Transaction) AddCollapsedBefore(regions []outline.Region) {
	if len(regions) == 0 {
		return
	}
	t.AddPrimitive(Primitive{Kind: PrimitiveCollapsedBefore, Regions: regions})
}

// AddCollapsedAfter stages collapsed regions as restored after the
// edit.
func (t *Transaction) AddCollapsedAfter(regions []outline.Region) {
	if len(regions) == 0 {
		return
	}
	t.AddPrimitive(Primitive{Kind: PrimitiveCollapsedAfter, Regions: regions})
}

// AddEdits stages the edit payload of the applied transaction.
func (t *Transaction) AddEdits(records []EditRecord) {
	if t.state != txnOpen {
		return
	}
	t.edits = append(t.edits, records...)
}

// Commit pushes the transaction onto the undo stack and clears redo.
func (t *Transaction) Commit() error {
	if t.state != txnOpen {
		return ErrTxnFinished
	}
	t.state = txnCommitted
	t.hist.push(t)
	return nil
}

// Cancel discards the transaction; nothing is recorded.
func (t *Transaction) Cancel() {
	if t.state == txnOpen {
		t.state = txnCancelled
	}
}

// History holds the undo and redo stacks for one document view.
type History struct {
	undo       []*Transaction
	redo       []*Transaction
	maxEntries int
}

// New creates a history with the given stack bound (DefaultMaxEntries
// if max <= 0).
func New(max int) *History {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &History{maxEntries: max}
}

// Open starts a named undo transaction.
func (h *History) Open(name string) *Transaction {
	return &Transaction{id: uuid.New(), name: name, hist: h}
}

func (h *History) push(t *Transaction) {
	h.undo = append(h.undo, t)
	h.redo = nil
	if len(h.undo) > h.maxEntries {
		h.undo = h.undo[len(h.undo)-h.maxEntries:]
	}
}

// CanUndo reports whether an undo entry exists.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether a redo entry exists.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Depth returns the undo and redo stack depths.
func (h *History) Depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

// Env is the replay environment: the live state the interpreter
// mutates when a transaction is undone or redone.
type Env struct {
	Buffer     *buffer.Buffer
	Selections *selection.Broker
	Outline    outline.Manager
	TabSize    int
}

// Undo replays the most recent transaction in reverse: inverse edits,
// then the before-change caret state and before-edit collapsed
// regions.
func (h *History) Undo(env Env) error {
	if len(h.undo) == 0 {
		return ErrNothingToUndo
	}
	t := h.undo[len(h.undo)-1]
	if err := replay(t, env, true); err != nil {
		return err
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, t)
	return nil
}

// Redo replays the most recently undone transaction forward.
func (h *History) Redo(env Env) error {
	if len(h.redo) == 0 {
		return ErrNothingToRedo
	}
	t := h.redo[len(h.redo)-1]
	if err := replay(t, env, false); err != nil {
		return err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, t)
	return nil
}

// replay is the single interpreter for tagged primitives. Undo stages
// every edit's inverse in one atomic transaction, then restores
// before-state; redo reapplies the edits and restores after-state.
func replay(t *Transaction, env Env, invert bool) error {
	if len(t.edits) > 0 {
		tx := env.Buffer.CreateEdit()
		defer tx.Release()
		for _, rec := range t.edits {
			if invert {
				tx.Replace(rec.NewRange, rec.OldText)
			} else {
				tx.Replace(rec.OldRange, rec.NewText)
			}
		}
		if _, ok := tx.Apply(); !ok {
			return ErrReplayConflict
		}
	}

	wantState := PrimitiveBeforeChange
	wantRegions := PrimitiveCollapsedBefore
	undoRegions := PrimitiveCollapsedAfter
	if !invert {
		wantState = PrimitiveAfterChange
		wantRegions = PrimitiveCollapsedAfter
		undoRegions = PrimitiveCollapsedBefore
	}

	for _, p := range t.primitives {
		switch p.Kind {
		case wantState:
			if env.Selections == nil {
				continue
			}
			if p.Box != nil {
				env.Selections.SetBox(*p.Box, env.Buffer.Current(), env.TabSize)
			} else {
				env.Selections.SetAll(p.Selections, p.PrimaryIndex)
			}
		case undoRegions:
			if env.Outline == nil {
				continue
			}
			replayRegions(env.Outline, p.Regions, false)
		case wantRegions:
			if env.Outline == nil {
				continue
			}
			replayRegions(env.Outline, p.Regions, true)
		}
	}
	return nil
}

// replayRegions expands or re-collapses regions with the outlining
// manager's own undo hook disabled.
func replayRegions(m outline.Manager, regions []outline.Region, collapse bool) {
	prev := m.UndoEnabled()
	m.SetUndoEnabled(false)
	defer m.SetUndoEnabled(prev)
	for _, r := range regions {
		if collapse {
			m.Collapse(r.Span, r.Tag)
		} else {
			m.Expand(r.Span)
		}
	}
}
