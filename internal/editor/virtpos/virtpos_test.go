package virtpos

import (
	"testing"

	"github.com/dshills/editkit/internal/editor/buffer"
)

func TestCompare(t *testing.T) {
	a := New(5)
	b := NewVirtual(5, 2)
	c := New(6)

	if a.Compare(b) != -1 {
		t.Error("real position should sort before virtual at same offset")
	}
	if b.Compare(c) != -1 {
		t.Error("virtual space at offset 5 sorts before offset 6")
	}
	if a.Compare(a) != 0 {
		t.Error("position should equal itself")
	}
}

func TestIsValid(t *testing.T) {
	snap := buffer.NewFromString("ab\ncd").Current()

	if !New(1).IsValid(snap) {
		t.Error("real mid-line position should be valid")
	}
	if !NewVirtual(2, 3).IsValid(snap) {
		t.Error("virtual space at end of line should be valid")
	}
	if NewVirtual(1, 3).IsValid(snap) {
		t.Error("virtual space mid-line violates the invariant")
	}
	if New(99).IsValid(snap) {
		t.Error("out-of-range offset should be invalid")
	}
}

func TestColumnAtOffset(t *testing.T) {
	snap := buffer.NewFromString("a\tbc\n\tx").Current()

	tests := []struct {
		offset buffer.ByteOffset
		want   int
	}{
		{0, 0},
		{1, 1},  // after 'a'
		{2, 4},  // tab advances to next stop
		{4, 6},  // after "bc"
		{6, 4},  // line 2, after leading tab
	}
	for _, tt := range tests {
		if got := ColumnAtOffset(snap, tt.offset, 4); got != tt.want {
			t.Errorf("ColumnAtOffset(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestColumnWithVirtualSpaces(t *testing.T) {
	snap := buffer.NewFromString("ab").Current()

	if got := Column(snap, NewVirtual(2, 5), 4); got != 7 {
		t.Errorf("expected column 7, got %d", got)
	}
}

func TestPositionForColumn(t *testing.T) {
	snap := buffer.NewFromString("a\tb\nxy").Current()

	if got := PositionForColumn(snap, 0, 4, 4); got != New(2) {
		t.Errorf("column 4 on line 0 = %v", got)
	}
	if got := PositionForColumn(snap, 1, 2, 4); got != New(6) {
		t.Errorf("column 2 on line 1 = %v", got)
	}
	// Past end of line: virtual.
	if got := PositionForColumn(snap, 1, 6, 4); got != NewVirtual(6, 4) {
		t.Errorf("column 6 on line 1 = %v", got)
	}
}

func TestWhitespaceForColumn(t *testing.T) {
	tests := []struct {
		name       string
		origin     int
		target     int
		spacesOnly bool
		want       string
	}{
		{"zero width", 4, 4, false, ""},
		{"target before origin", 6, 4, false, ""},
		{"spaces only", 0, 6, true, "      "},
		{"tabs to stop plus remainder", 0, 6, false, "\t  "},
		{"exact tab stops", 0, 8, false, "\t\t"},
		{"origin past previous stop", 5, 7, false, "  "},
		{"origin mid first tab", 2, 9, false, "\t\t "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WhitespaceForColumn(tt.origin, tt.target, 4, tt.spacesOnly)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWhitespaceForPosition(t *testing.T) {
	snap := buffer.NewFromString("ab").Current()

	got := WhitespaceForPosition(snap, NewVirtual(2, 6), 4, false)
	// Origin column 2, target 8: tabs to column 8 exactly.
	if got != "\t\t" {
		t.Errorf("got %q", got)
	}
	if WhitespaceForPosition(snap, New(2), 4, false) != "" {
		t.Error("real position needs no whitespace")
	}
}
