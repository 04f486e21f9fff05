package virtpos

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/editkit/internal/editor/buffer"
)

// ColumnAtOffset returns the display column of a buffer offset,
// expanding tabs to the next tab stop and using terminal cell widths
// for multi-column glyphs.
func ColumnAtOffset(snap *buffer.Snapshot, offset buffer.ByteOffset, tabSize int) int {
	line := snap.LineContaining(offset)
	return advanceColumn(snap.TextRange(snap.LineStartOffset(line), offset), 0, tabSize)
}

// Column returns the display column of a virtual position.
func Column(snap *buffer.Snapshot, v VirtualPosition, tabSize int) int {
	return ColumnAtOffset(snap, v.Offset, tabSize) + v.Spaces
}

// ColumnAfter returns the display column reached by laying out text
// starting at startCol.
func ColumnAfter(text string, startCol, tabSize int) int {
	return advanceColumn(text, startCol, tabSize)
}

// advanceColumn walks text starting at startCol and returns the
// resulting display column.
func advanceColumn(text string, startCol, tabSize int) int {
	col := startCol
	for _, r := range text {
		if r == '\t' && tabSize > 0 {
			col = col - col%tabSize + tabSize
		} else {
			col += runewidth.RuneWidth(r)
		}
	}
	return col
}

// PositionForColumn returns the position on a line at (or just before)
// the target display column. Columns past the physical end of line
// produce a virtual position.
func PositionForColumn(snap *buffer.Snapshot, line uint32, targetCol, tabSize int) VirtualPosition {
	start := snap.LineStartOffset(line)
	end := snap.LineEndOffset(line)
	text := snap.TextRange(start, end)

	col := 0
	off := start
	for _, r := range text {
		if col >= targetCol {
			return New(off)
		}
		if r == '\t' && tabSize > 0 {
			col = col - col%tabSize + tabSize
		} else {
			col += runewidth.RuneWidth(r)
		}
		off += buffer.ByteOffset(len(string(r)))
	}
	if col >= targetCol {
		return New(off)
	}
	return NewVirtual(end, targetCol-col)
}
