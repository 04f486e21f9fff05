package buffer

import (
	"testing"

	"pgregory.net/rapid"
)

func applyOne(t *testing.T, b *Buffer, e Edit) *Snapshot {
	t.Helper()
	tx := b.CreateEdit()
	tx.Replace(e.Range, e.NewText)
	snap, ok := tx.Apply()
	if !ok {
		t.Fatal("apply failed")
	}
	return snap
}

func TestTranslateOffsetBeforeEdit(t *testing.T) {
	b := NewFromString("hello world")
	old := b.Current()
	cur := applyOne(t, b, NewInsert(6, "big "))

	got, ok := TranslateOffset(3, old, cur, TrackBackward)
	if !ok || got != 3 {
		t.Errorf("offset before edit should be unchanged, got %d", got)
	}
}

func TestTranslateOffsetAfterEdit(t *testing.T) {
	b := NewFromString("hello world")
	old := b.Current()
	cur := applyOne(t, b, NewInsert(0, "say "))

	got, ok := TranslateOffset(6, old, cur, TrackBackward)
	if !ok || got != 10 {
		t.Errorf("offset after insertion should shift by 4, got %d", got)
	}
}

func TestTranslateOffsetAtInsertionPoint(t *testing.T) {
	b := NewFromString("ab")
	old := b.Current()
	cur := applyOne(t, b, NewInsert(1, "XY"))

	back, ok := TranslateOffset(1, old, cur, TrackBackward)
	if !ok || back != 1 {
		t.Errorf("backward bias should stay before the insert, got %d", back)
	}
	fwd, ok := TranslateOffset(1, old, cur, TrackForward)
	if !ok || fwd != 3 {
		t.Errorf("forward bias should absorb the insert, got %d", fwd)
	}
}

func TestTranslateOffsetInsideReplacedSpan(t *testing.T) {
	b := NewFromString("abcdef")
	old := b.Current()
	cur := applyOne(t, b, NewEdit(NewRange(1, 5), "XY"))

	back, _ := TranslateOffset(3, old, cur, TrackBackward)
	if back != 1 {
		t.Errorf("backward bias should land at span start, got %d", back)
	}
	fwd, _ := TranslateOffset(3, old, cur, TrackForward)
	if fwd != 3 {
		t.Errorf("forward bias should land past the new text, got %d", fwd)
	}
}

func TestTranslateOffsetMultiBatch(t *testing.T) {
	b := NewFromString("aaa bbb ccc")
	old := b.Current()

	tx := b.CreateEdit()
	tx.Delete(NewRange(0, 4))  // drop "aaa "
	tx.Insert(8, "X")          // before "ccc"
	if _, ok := tx.Apply(); !ok {
		t.Fatal("apply failed")
	}
	cur := applyOne(t, b, NewInsert(0, "zz"))

	// "bbb" started at 4; the delete collapses that offset to 0 and the
	// prepend lands exactly there, so following the character needs
	// forward bias.
	got, ok := TranslateOffset(4, old, cur, TrackForward)
	if !ok || got != 2 {
		t.Errorf("expected 2, got %d", got)
	}

	// Backward bias stays before the prepended text.
	got, ok = TranslateOffset(4, old, cur, TrackBackward)
	if !ok || got != 0 {
		t.Errorf("expected 0, got %d", got)
	}

	// "ccc" started at 8; the delete shifts it to 4, the insert at 8
	// lands before it, the prepend shifts it to 7.
	got, ok = TranslateOffset(8, old, cur, TrackForward)
	if !ok || got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestTranslateOffsetNotDescendant(t *testing.T) {
	b1 := NewFromString("abc")
	b2 := NewFromString("abc")

	if _, ok := TranslateOffset(1, b1.Current(), b2.Current(), TrackForward); ok {
		t.Error("translation across unrelated snapshots should fail")
	}
}

func TestTranslateRange(t *testing.T) {
	b := NewFromString("hello world")
	old := b.Current()
	cur := applyOne(t, b, NewInsert(5, "!!"))

	// Inclusive translation absorbs text inserted at the end boundary.
	r, ok := TranslateRange(NewRange(0, 5), old, cur)
	if !ok || r != NewRange(0, 7) {
		t.Errorf("inclusive range = %v", r)
	}
	r, ok = TranslateRangeExclusive(NewRange(0, 5), old, cur)
	if !ok || r != NewRange(0, 5) {
		t.Errorf("exclusive range = %v", r)
	}
}

// Translated offsets always stay within the new snapshot and preserve
// relative order for a given bias.
func TestTranslateOffsetProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-z\n]{0,40}`).Draw(rt, "text")
		b := NewFromString(text)
		old := b.Current()

		start := rapid.Int64Range(0, int64(len(text))).Draw(rt, "start")
		end := rapid.Int64Range(start, int64(len(text))).Draw(rt, "end")
		repl := rapid.StringMatching(`[a-z\n]{0,10}`).Draw(rt, "repl")

		tx := b.CreateEdit()
		tx.Replace(NewRange(start, end), repl)
		cur, ok := tx.Apply()
		if !ok {
			rt.Fatal("apply failed")
		}

		prev := ByteOffset(-1)
		for off := ByteOffset(0); off <= old.Len(); off++ {
			got, ok := TranslateOffset(off, old, cur, TrackBackward)
			if !ok {
				rt.Fatalf("translation failed at %d", off)
			}
			if got < 0 || got > cur.Len() {
				rt.Fatalf("offset %d translated out of range: %d", off, got)
			}
			if got < prev {
				rt.Fatalf("translation not monotonic at %d", off)
			}
			prev = got
		}
	})
}
