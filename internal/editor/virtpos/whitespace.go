package virtpos

import (
	"strings"

	"github.com/dshills/editkit/internal/editor/buffer"
)

// WhitespaceForColumn computes the exact whitespace string that, when
// inserted at originColumn, lands at targetColumn. When tabs are
// allowed, tabs carry the text to the previous tab stop of the target
// and literal spaces cover the remainder. When spacesOnly is set the
// result is exactly target-origin spaces.
//
// A target at or before the origin yields the empty string, never an
// error.
func WhitespaceForColumn(originColumn, targetColumn, tabSize int, spacesOnly bool) string {
	if targetColumn <= originColumn {
		return ""
	}
	width := targetColumn - originColumn
	if spacesOnly || tabSize <= 0 {
		return strings.Repeat(" ", width)
	}

	spacesAfterPrevTabStop := targetColumn % tabSize
	prevTabStop := targetColumn - spacesAfterPrevTabStop
	tabs := 0
	if prevTabStop > originColumn {
		tabs = (prevTabStop - originColumn + tabSize - 1) / tabSize
	}
	if tabs == 0 {
		return strings.Repeat(" ", width)
	}
	return strings.Repeat("\t", tabs) + strings.Repeat(" ", spacesAfterPrevTabStop)
}

// WhitespaceForPosition computes the whitespace that realizes a
// position's virtual spaces as text at its offset.
func WhitespaceForPosition(snap *buffer.Snapshot, v VirtualPosition, tabSize int, spacesOnly bool) string {
	if v.Spaces == 0 {
		return ""
	}
	origin := ColumnAtOffset(snap, v.Offset, tabSize)
	return WhitespaceForColumn(origin, origin+v.Spaces, tabSize, spacesOnly)
}
