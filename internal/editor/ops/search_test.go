package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/editkit/internal/editor/buffer"
)

func TestReplaceAllRegexCaptures(t *testing.T) {
	o := newTestOps("a.b c.d")
	setCaret(o, 0)

	q := Query{Pattern: `(\w+)\.(\w+)`, Regex: true, MatchCase: true}
	n, st := o.ReplaceAll(q, "$2.$1")
	require.Equal(t, Done, st)
	require.Equal(t, 2, n)
	require.Equal(t, "b.a d.c", bufText(o))
}

func TestReplaceAllLiteral(t *testing.T) {
	o := newTestOps("a.b a.b")

	n, st := o.ReplaceAll(Query{Pattern: "a.b", MatchCase: true}, "xy")
	require.Equal(t, Done, st)
	require.Equal(t, 2, n)
	require.Equal(t, "xy xy", bufText(o))
}

func TestReplaceAllCaseInsensitive(t *testing.T) {
	o := newTestOps("Foo foo FOO")

	n, st := o.ReplaceAll(Query{Pattern: "foo"}, "x")
	require.Equal(t, Done, st)
	require.Equal(t, 3, n)
	require.Equal(t, "x x x", bufText(o))
}

func TestReplaceAllNoMatches(t *testing.T) {
	o := newTestOps("abc")

	n, st := o.ReplaceAll(Query{Pattern: "zzz", MatchCase: true}, "x")
	require.Equal(t, NoOp, st)
	require.Zero(t, n)
	require.Equal(t, "abc", bufText(o))
	require.False(t, o.History().CanUndo())
}

func TestReplaceAllBadPattern(t *testing.T) {
	o := newTestOps("abc")

	n, st := o.ReplaceAll(Query{Pattern: `(`, Regex: true}, "x")
	require.Equal(t, Failed, st)
	require.Zero(t, n)
}

func TestReplaceAllAtomicOnReadOnly(t *testing.T) {
	// One protected match aborts the whole replacement.
	o := newTestOps("aa bb aa")
	o.Buffer().MarkReadOnly(buffer.NewRange(6, 8))

	n, st := o.ReplaceAll(Query{Pattern: "aa", MatchCase: true}, "cc")
	require.Equal(t, Failed, st)
	require.Zero(t, n)
	require.Equal(t, "aa bb aa", bufText(o))
}

func TestReplaceAllUndo(t *testing.T) {
	o := newTestOps("one two one")

	_, st := o.ReplaceAll(Query{Pattern: "one", MatchCase: true}, "1")
	require.Equal(t, Done, st)
	require.Equal(t, "1 two 1", bufText(o))

	require.NoError(t, o.Undo())
	require.Equal(t, "one two one", bufText(o))
}

func TestFind(t *testing.T) {
	o := newTestOps("cat cattle cat")

	spans, err := o.Find(Query{Pattern: `\bcat\b`, Regex: true, MatchCase: true})
	require.NoError(t, err)
	require.Equal(t, []buffer.Range{
		buffer.NewRange(0, 3),
		buffer.NewRange(11, 14),
	}, spans)
}

func TestFindEmptyPattern(t *testing.T) {
	o := newTestOps("abc")

	_, err := o.Find(Query{})
	require.ErrorIs(t, err, ErrBadPattern)
}

func TestRegexSearcherExpandLiteralTemplate(t *testing.T) {
	rs := NewRegexSearcher()
	out, err := rs.Expand("a.b", Query{Pattern: "a.b", MatchCase: true}, "$1")
	require.NoError(t, err)
	require.Equal(t, "$1", out)
}
