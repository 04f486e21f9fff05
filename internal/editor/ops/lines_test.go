package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/outline"
)

func TestMoveSelectedLinesUp(t *testing.T) {
	o := newTestOps("line1\nline2\nline3")
	setRange(o, 6, 11) // all of line2

	require.Equal(t, Done, o.MoveSelectedLinesUp())
	require.Equal(t, "line2\nline1\nline3", bufText(o))

	sel := o.Selections().Primary()
	require.Equal(t, buffer.ByteOffset(0), sel.Start().Offset)
	require.Equal(t, buffer.ByteOffset(5), sel.End().Offset)
	checkInvariants(t, o)
}

func TestMoveSelectedLinesDown(t *testing.T) {
	o := newTestOps("line1\nline2\nline3")
	setRange(o, 6, 11)

	require.Equal(t, Done, o.MoveSelectedLinesDown())
	require.Equal(t, "line1\nline3\nline2", bufText(o))
	checkInvariants(t, o)
}

func TestMoveLinesBoundaryNoOp(t *testing.T) {
	o := newTestOps("a\nb")
	setCaret(o, 0)
	require.Equal(t, NoOp, o.MoveSelectedLinesUp())
	require.Equal(t, "a\nb", bufText(o))

	setCaret(o, 2)
	require.Equal(t, NoOp, o.MoveSelectedLinesDown())
	require.Equal(t, "a\nb", bufText(o))
}

func TestMoveLinesEdgeBlockStopsWholeMove(t *testing.T) {
	// One block at the file edge makes the whole move a no-op; the
	// movable block does not move alone.
	o := newTestOps("a\nb\nc\nd")
	setCarets(o, 0, 4)
	require.Equal(t, NoOp, o.MoveSelectedLinesUp())
	require.Equal(t, "a\nb\nc\nd", bufText(o))

	setCarets(o, 2, 6)
	require.Equal(t, NoOp, o.MoveSelectedLinesDown())
	require.Equal(t, "a\nb\nc\nd", bufText(o))
}

func TestMoveLinesSingleEmptyLineNoOp(t *testing.T) {
	o := newTestOps("a\n\nb")
	setCaret(o, 2) // the empty line
	require.Equal(t, NoOp, o.MoveSelectedLinesUp())
	require.Equal(t, "a\n\nb", bufText(o))
}

func TestMoveLinesRelocatesFinalBreak(t *testing.T) {
	// The last line has no trailing break; after the move exactly one
	// line must remain break-less at end of file.
	o := newTestOps("a\nb")
	setCaret(o, 0)
	require.Equal(t, Done, o.MoveSelectedLinesDown())
	require.Equal(t, "b\na", bufText(o))

	o = newTestOps("a\nb")
	setCaret(o, 2)
	require.Equal(t, Done, o.MoveSelectedLinesUp())
	require.Equal(t, "b\na", bufText(o))
}

func TestMoveLinesPreservesCollapsedRegions(t *testing.T) {
	tracker := outline.NewTracker()
	o := New(buffer.NewFromString("l1\nl2\nl3"), WithOutline(tracker))
	require.True(t, tracker.Collapse(buffer.NewRange(3, 5), "fold"))

	setRange(o, 3, 5) // all of l2
	require.Equal(t, Done, o.MoveSelectedLinesUp())
	require.Equal(t, "l2\nl1\nl3", bufText(o))

	regions := tracker.CollapsedInRange(buffer.NewRange(0, 2))
	require.Len(t, regions, 1)
	require.Equal(t, buffer.NewRange(0, 2), regions[0].Span)
	require.Equal(t, "fold", regions[0].Tag)

	// Nothing should remain collapsed at the old location.
	require.Empty(t, tracker.CollapsedInRange(buffer.NewRange(3, 5)))
}

func TestMoveLinesMultiSelection(t *testing.T) {
	o := newTestOps("a\nb\nc\nd\ne")
	setCarets(o, 0, 4) // lines a and c

	require.Equal(t, Done, o.MoveSelectedLinesDown())
	require.Equal(t, "b\na\nd\nc\ne", bufText(o))
	checkInvariants(t, o)
}

func TestDuplicateCaretLine(t *testing.T) {
	o := newTestOps("foo\nbar")
	setCaret(o, 1)

	require.Equal(t, Done, o.DuplicateSelection())
	require.Equal(t, "foo\nfoo\nbar", bufText(o))
	// Caret stays on the original line, now shifted below the copy.
	require.Equal(t, buffer.ByteOffset(5), o.Selections().Primary().Caret().Offset)
}

func TestDuplicateCaretOnFinalBreaklessLine(t *testing.T) {
	o := newTestOps("foo\nbar")
	setCaret(o, 5)

	require.Equal(t, Done, o.DuplicateSelection())
	require.Equal(t, "foo\nbar\nbar", bufText(o))
}

func TestDuplicateNonEmptySelection(t *testing.T) {
	o := newTestOps("abcdef")
	setRange(o, 1, 3) // "bc"

	require.Equal(t, Done, o.DuplicateSelection())
	require.Equal(t, "abcbcdef", bufText(o))
	// The selection stays on the first copy.
	sel := o.Selections().Primary()
	require.Equal(t, buffer.ByteOffset(1), sel.Start().Offset)
	require.Equal(t, buffer.ByteOffset(3), sel.End().Offset)
}

func TestSortSelectedLines(t *testing.T) {
	o := newTestOps("banana\napple\ncherry")
	setRange(o, 0, 19)

	require.Equal(t, Done, o.SortSelectedLines())
	require.Equal(t, "apple\nbanana\ncherry", bufText(o))
}

func TestSortAlreadySortedReverses(t *testing.T) {
	o := newTestOps("a\nb\nc")
	setRange(o, 0, 5)

	require.Equal(t, Done, o.SortSelectedLines())
	require.Equal(t, "c\nb\na", bufText(o))
}

func TestSortTwiceTogglesDirection(t *testing.T) {
	o := newTestOps("b\na\nc")
	setRange(o, 0, 5)

	require.Equal(t, Done, o.SortSelectedLines())
	require.Equal(t, "a\nb\nc", bufText(o))

	setRange(o, 0, 5)
	require.Equal(t, Done, o.SortSelectedLines())
	require.Equal(t, "c\nb\na", bufText(o))
}

func TestSortSingleLineNoOp(t *testing.T) {
	o := newTestOps("only\n")
	setCaret(o, 2)
	require.Equal(t, NoOp, o.SortSelectedLines())
}

func TestJoinSelectedLines(t *testing.T) {
	o := newTestOps("  foo\n  bar\nbaz")
	setRange(o, 0, 14)

	require.Equal(t, Done, o.JoinSelectedLines())
	require.Equal(t, "  foo bar baz", bufText(o))
}

func TestJoinCaretJoinsWithNextLine(t *testing.T) {
	o := newTestOps("foo\nbar\nbaz")
	setCaret(o, 1)

	require.Equal(t, Done, o.JoinSelectedLines())
	require.Equal(t, "foo bar\nbaz", bufText(o))
}

func TestJoinSkipsBlankLines(t *testing.T) {
	o := newTestOps("a\n\nb")
	setRange(o, 0, 4)

	require.Equal(t, Done, o.JoinSelectedLines())
	require.Equal(t, "a b", bufText(o))
}

func TestJoinNormalizesMixedLineBreak(t *testing.T) {
	// The covered line carries a CRLF in an LF buffer; the joined line
	// ends with the buffer's sequence.
	o := New(buffer.NewFromString("aa\nbb\r\ncc", buffer.WithLineBreak(buffer.LineBreakLF)))
	setRange(o, 0, 5)

	require.Equal(t, Done, o.JoinSelectedLines())
	require.Equal(t, "aa bb\ncc", bufText(o))
}

func TestJoinOnLastLineNoOp(t *testing.T) {
	o := newTestOps("a\nb")
	setCaret(o, 2)
	require.Equal(t, NoOp, o.JoinSelectedLines())
}

func TestDeleteBlankLines(t *testing.T) {
	// Caret on the blank line deletes it.
	o := newTestOps("abc\n\ndef")
	setCaret(o, 4)

	require.Equal(t, Done, o.DeleteBlankLines())
	require.Equal(t, "abc\ndef", bufText(o))
}

func TestDeleteBlankLinesRun(t *testing.T) {
	o := newTestOps("a\n\n\n\nb")
	setCaret(o, 3)

	require.Equal(t, Done, o.DeleteBlankLines())
	require.Equal(t, "a\nb", bufText(o))
}

func TestDeleteBlankLinesBelowNonBlank(t *testing.T) {
	o := newTestOps("a\n\n\nb")
	setCaret(o, 0)

	require.Equal(t, Done, o.DeleteBlankLines())
	require.Equal(t, "a\nb", bufText(o))
}

func TestDeleteBlankLinesNoneNoOp(t *testing.T) {
	o := newTestOps("a\nb")
	setCaret(o, 0)
	require.Equal(t, NoOp, o.DeleteBlankLines())
}

func TestTrimTrailingWhitespaceWholeDocument(t *testing.T) {
	o := newTestOps("foo  \nbar\t\nbaz")
	setCaret(o, 0)

	require.Equal(t, Done, o.TrimTrailingWhitespace())
	require.Equal(t, "foo\nbar\nbaz", bufText(o))
}

func TestTrimTrailingWhitespaceSelectionOnly(t *testing.T) {
	o := newTestOps("foo  \nbar  ")
	setRange(o, 0, 3)

	require.Equal(t, Done, o.TrimTrailingWhitespace())
	require.Equal(t, "foo\nbar  ", bufText(o))
}

func TestTrimTrailingWhitespaceCleanNoOp(t *testing.T) {
	o := newTestOps("foo\nbar")
	setCaret(o, 0)
	require.Equal(t, NoOp, o.TrimTrailingWhitespace())
}
