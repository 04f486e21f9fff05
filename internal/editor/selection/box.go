package selection

import (
	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/virtpos"
)

// Box is a rectangular selection described by two corner points. The
// per-line selections it produces are derived from the corners, never
// stored independently; after any edit the shape is recomputed from
// the corners translated into the new snapshot.
type Box struct {
	Anchor virtpos.VirtualPosition
	Active virtpos.VirtualPosition
}

// Materialize produces one selection per covered line, each spanning
// the box's two display columns. Lines shorter than a column edge get
// virtual positions at that column.
func (b Box) Materialize(snap *buffer.Snapshot, tabSize int) []Selection {
	anchorLine := snap.LineContaining(b.Anchor.Offset)
	activeLine := snap.LineContaining(b.Active.Offset)
	startLine, endLine := anchorLine, activeLine
	if startLine > endLine {
		startLine, endLine = endLine, startLine
	}

	anchorCol := virtpos.Column(snap, b.Anchor, tabSize)
	activeCol := virtpos.Column(snap, b.Active, tabSize)

	sels := make([]Selection, 0, endLine-startLine+1)
	for line := startLine; line <= endLine; line++ {
		a := virtpos.PositionForColumn(snap, line, anchorCol, tabSize)
		c := virtpos.PositionForColumn(snap, line, activeCol, tabSize)
		sels = append(sels, New(a, c))
	}
	return sels
}

// Translate carries the box corners into a new snapshot.
func (b Box) Translate(from, to *buffer.Snapshot) Box {
	return Box{
		Anchor: translatePosition(b.Anchor, from, to, buffer.TrackBackward),
		Active: translatePosition(b.Active, from, to, buffer.TrackForward),
	}
}

// IsUpward returns true if the active corner is on an earlier line or
// offset than the anchor corner.
func (b Box) IsUpward() bool {
	return b.Active.Before(b.Anchor)
}
