package textnav

import (
	"testing"

	"github.com/dshills/editkit/internal/editor/buffer"
)

func TestNextElementASCII(t *testing.T) {
	snap := buffer.NewFromString("abc").Current()
	nav := NewUnicode()

	if got := nav.NextElement(snap, 0); got != buffer.NewRange(0, 1) {
		t.Errorf("got %v", got)
	}
	if got := nav.NextElement(snap, 3); !got.IsEmpty() {
		t.Errorf("at end, got %v", got)
	}
}

func TestNextElementCombining(t *testing.T) {
	// e + combining acute is one grapheme cluster.
	snap := buffer.NewFromString("éx").Current()
	nav := NewUnicode()

	got := nav.NextElement(snap, 0)
	if got != buffer.NewRange(0, 3) {
		t.Errorf("combining mark should stay in the element, got %v", got)
	}
}

func TestPrevElement(t *testing.T) {
	snap := buffer.NewFromString("abé").Current() // é is 2 bytes
	nav := NewUnicode()

	if got := nav.PrevElement(snap, 4); got != buffer.NewRange(2, 4) {
		t.Errorf("got %v", got)
	}
	if got := nav.PrevElement(snap, 1); got != buffer.NewRange(0, 1) {
		t.Errorf("got %v", got)
	}
	if got := nav.PrevElement(snap, 0); !got.IsEmpty() {
		t.Errorf("at start, got %v", got)
	}
}

func TestPrevElementAcrossCRLF(t *testing.T) {
	snap := buffer.NewFromString("ab\r\ncd").Current()
	nav := NewUnicode()

	got := nav.PrevElement(snap, 4)
	if got != buffer.NewRange(2, 4) {
		t.Errorf("\\r\\n should be one element, got %v", got)
	}
}

func TestPrevElementSurrogatePair(t *testing.T) {
	// 𝕏 is outside the BMP (a surrogate pair in UTF-16, 4 bytes here).
	snap := buffer.NewFromString("a\U0001d54f").Current()
	nav := NewUnicode()

	got := nav.PrevElement(snap, 5)
	if got != buffer.NewRange(1, 5) {
		t.Errorf("got %v", got)
	}
}

func TestWordAt(t *testing.T) {
	snap := buffer.NewFromString("foo bar_baz; qux").Current()
	nav := NewUnicode()

	tests := []struct {
		offset buffer.ByteOffset
		want   buffer.Range
	}{
		{0, buffer.NewRange(0, 3)},   // foo
		{5, buffer.NewRange(4, 11)},  // bar_baz
		{11, buffer.NewRange(11, 12)}, // ;
		{14, buffer.NewRange(13, 16)}, // qux
	}
	for _, tt := range tests {
		if got := nav.WordAt(snap, tt.offset); got != tt.want {
			t.Errorf("WordAt(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestWordAtStopsAtLineBreak(t *testing.T) {
	snap := buffer.NewFromString("foo\nbar").Current()
	nav := NewUnicode()

	if got := nav.WordAt(snap, 5); got != buffer.NewRange(4, 7) {
		t.Errorf("word should not cross the line break, got %v", got)
	}
}

func TestNextWordSkipsPunctuation(t *testing.T) {
	snap := buffer.NewFromString("foo ;;- bar").Current()
	nav := NewUnicode()

	got, ok := nav.NextWord(snap, 3)
	if !ok || got != buffer.NewRange(8, 11) {
		t.Errorf("got %v ok=%v", got, ok)
	}

	if _, ok := nav.NextWord(snap, 11); ok {
		t.Error("no word after the last word")
	}
}

func TestPrevWordStart(t *testing.T) {
	snap := buffer.NewFromString("one two   three").Current()
	nav := NewUnicode()

	// From inside the trailing spaces: spaces plus the word before.
	if got := nav.PrevWordStart(snap, 10); got != 4 {
		t.Errorf("got %d, want 4", got)
	}
	if got := nav.PrevWordStart(snap, 3); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestPrevWordStartStopsAfterLineBreak(t *testing.T) {
	snap := buffer.NewFromString("one\ntwo").Current()
	nav := NewUnicode()

	// Deleting word-back at line start consumes only the break.
	if got := nav.PrevWordStart(snap, 4); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestNextWordEnd(t *testing.T) {
	snap := buffer.NewFromString("one  two\nthree").Current()
	nav := NewUnicode()

	// Word plus trailing spaces, but not the break.
	if got := nav.NextWordEnd(snap, 0); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
	if got := nav.NextWordEnd(snap, 8); got != 9 {
		t.Errorf("at a break only the break goes, got %d", got)
	}
}
