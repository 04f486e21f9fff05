package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/options"
	"github.com/dshills/editkit/internal/editor/selection"
	"github.com/dshills/editkit/internal/editor/virtpos"
)

func newTestOps(text string, opts ...options.Option) *Operations {
	return New(buffer.NewFromString(text), WithOptions(options.New(opts...)))
}

func setCaret(o *Operations, off buffer.ByteOffset) {
	o.Selections().SetCaret(virtpos.New(off))
}

func setCarets(o *Operations, offs ...buffer.ByteOffset) {
	sels := make([]selection.Selection, len(offs))
	for i, off := range offs {
		sels[i] = selection.NewCaretAt(off)
	}
	o.Selections().SetAll(sels, 0)
}

func setRange(o *Operations, start, end buffer.ByteOffset) {
	o.Selections().Select(virtpos.New(start), virtpos.New(end), selection.ModeStream)
}

func bufText(o *Operations) string {
	return o.Buffer().Current().Text()
}

// checkInvariants asserts the post-edit selection invariants: every
// position is inside the snapshot and virtual space exists only at
// true end of line.
func checkInvariants(t *testing.T, o *Operations) {
	t.Helper()
	snap := o.Buffer().Current()
	for _, s := range o.Selections().All() {
		for _, v := range []virtpos.VirtualPosition{s.Anchor, s.Active, s.Insertion} {
			require.GreaterOrEqual(t, v.Offset, buffer.ByteOffset(0))
			require.LessOrEqual(t, v.Offset, snap.Len())
			if v.Spaces > 0 {
				require.True(t, snap.IsAtLineEnd(v.Offset),
					"virtual space away from line end at %v", v)
			}
		}
	}
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "done", Done.String())
	require.Equal(t, "noop", NoOp.String())
	require.Equal(t, "failed", Failed.String())
	require.True(t, Done.OK())
	require.True(t, NoOp.OK())
	require.False(t, Failed.OK())
}

func TestNewDefaults(t *testing.T) {
	o := newTestOps("hello")
	require.NotNil(t, o.Selections())
	require.NotNil(t, o.History())
	require.Equal(t, 4, o.Options().TabSize)
	require.Equal(t, 1, o.Selections().Count())
}

func TestNoChangeLeavesSelectionIdentical(t *testing.T) {
	// Upcasing already-upper text applies no change; selection state
	// must come out byte-identical.
	o := newTestOps("ABC DEF")
	setRange(o, 0, 7)
	before := o.Selections().All()

	require.Equal(t, NoOp, o.Upcase())

	after := o.Selections().All()
	require.Equal(t, before, after)
	require.Equal(t, "ABC DEF", bufText(o))
	undo, redo := o.History().Depth()
	require.Zero(t, undo, "no-op must not record an undo entry")
	require.Zero(t, redo)
}

func TestFailedEditLeavesEverythingUntouched(t *testing.T) {
	o := newTestOps("abc def")
	o.Buffer().MarkReadOnly(buffer.NewRange(0, 7))
	setRange(o, 0, 3)
	before := o.Selections().All()

	require.Equal(t, Failed, o.Upcase())

	require.Equal(t, "abc def", bufText(o))
	require.Equal(t, before, o.Selections().All())
	undo, _ := o.History().Depth()
	require.Zero(t, undo)
}

func TestInvariantsAfterEdits(t *testing.T) {
	o := newTestOps("alpha\nbeta\ngamma")
	setCarets(o, 2, 8, 14)

	require.Equal(t, Done, o.InsertText("x"))
	checkInvariants(t, o)
	require.Equal(t, Done, o.Backspace())
	checkInvariants(t, o)
	require.Equal(t, Done, o.DeleteForward())
	checkInvariants(t, o)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	o := newTestOps("abc")
	setCaret(o, 3)

	require.Equal(t, Done, o.InsertText("d"))
	require.Equal(t, "abcd", bufText(o))
	require.Equal(t, buffer.ByteOffset(4), o.Selections().Primary().Caret().Offset)

	require.NoError(t, o.Undo())
	require.Equal(t, "abc", bufText(o))
	require.Equal(t, buffer.ByteOffset(3), o.Selections().Primary().Caret().Offset)

	require.NoError(t, o.Redo())
	require.Equal(t, "abcd", bufText(o))
	require.Equal(t, buffer.ByteOffset(4), o.Selections().Primary().Caret().Offset)
}

func TestUndoRestoresMultiCaretState(t *testing.T) {
	o := newTestOps("one two")
	setCarets(o, 3, 7)

	require.Equal(t, Done, o.InsertText("!"))
	require.Equal(t, "one! two!", bufText(o))

	require.NoError(t, o.Undo())
	require.Equal(t, "one two", bufText(o))
	sels := o.Selections().All()
	require.Len(t, sels, 2)
	require.Equal(t, buffer.ByteOffset(3), sels[0].Caret().Offset)
	require.Equal(t, buffer.ByteOffset(7), sels[1].Caret().Offset)
}
