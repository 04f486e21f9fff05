package ops

import (
	"strings"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/selection"
	"github.com/dshills/editkit/internal/editor/virtpos"
)

// InsertText types text at every selection, replacing any selected
// spans. A caret in virtual space is realized by synthesizing its
// leading whitespace first. In overwrite mode an empty caret replaces
// the element after it unless the caret sits at end of line. A box
// selection receives the text on every covered line.
func (o *Operations) InsertText(text string) Status {
	if text == "" {
		return NoOp
	}
	snap := o.buf.Current()
	tabSize := o.opts.TabSize
	spacesOnly := o.opts.ConvertTabsToSpaces

	sels := o.sels.All()

	e := o.begin("insert text")
	defer e.tx.Release()

	// Remember where each caret should land: the end of its replaced
	// span, carried into the new snapshot.
	ends := make([]buffer.ByteOffset, len(sels))

	for i, s := range sels {
		span := s.Span()
		prefix := ""
		caret := s.Caret()
		if s.IsEmpty() {
			if caret.Spaces > 0 {
				prefix = virtpos.WhitespaceForPosition(snap, caret, tabSize, spacesOnly)
			} else if o.opts.OverwriteMode && !snap.IsAtLineEnd(caret.Offset) {
				span = o.nav.NextElement(snap, caret.Offset)
			}
		}
		if !e.tx.Replace(span, prefix+text) {
			return e.fail()
		}
		ends[i] = span.End
	}

	return e.apply(func(old, next *buffer.Snapshot) {
		out := make([]selection.Selection, len(sels))
		for i, end := range ends {
			off, _ := buffer.TranslateOffset(end, old, next, buffer.TrackForward)
			out[i] = selection.NewCaretAt(off)
		}
		primary := o.sels.PrimaryIndex()
		if primary >= len(out) {
			primary = len(out) - 1
		}
		// A box selection collapses to per-line carets after typing.
		o.sels.SetAll(out, primary)
	})
}

// InsertNewline inserts the buffer's line-break sequence at every
// selection, optionally trimming the departed line's trailing
// whitespace, and repositions each caret at its line's smart-indent
// column when the indenter offers one. With insert-final-newline set,
// a missing terminating break is added in the same transaction.
func (o *Operations) InsertNewline() Status {
	snap := o.buf.Current()
	breakSeq := o.buf.LineBreak().Sequence()
	sels := o.sels.All()

	e := o.begin("insert newline")
	defer e.tx.Release()

	touchedEnd := false
	for _, s := range sels {
		span := s.Span()
		if o.opts.TrimTrailingWhitespaceOnNewline {
			line := snap.LineContaining(span.Start)
			lineStart := snap.LineStartOffset(line)
			left := snap.TextRange(lineStart, span.Start)
			trimmed := strings.TrimRight(left, " \t")
			span.Start = lineStart + buffer.ByteOffset(len(trimmed))
		}
		if !e.tx.Replace(span, breakSeq) {
			return e.fail()
		}
		if span.End == snap.Len() {
			touchedEnd = true
		}
	}
	if o.opts.InsertFinalNewline && !touchedEnd && snap.Len() > 0 &&
		!strings.HasSuffix(snap.Text(), "\n") {
		if !e.tx.Insert(snap.Len(), breakSeq) {
			return e.fail()
		}
	}

	return e.apply(func(old, next *buffer.Snapshot) {
		o.sels.TranslateTo(old, next, o.opts.TabSize)
		if o.indenter == nil {
			return
		}
		out := o.sels.All()
		changed := false
		for i, s := range out {
			if !s.IsEmpty() {
				continue
			}
			line := next.LineContaining(s.Caret().Offset)
			col, ok := o.indenter.DesiredIndent(next, line)
			if !ok || col <= 0 {
				continue
			}
			out[i] = selection.NewCaret(virtpos.PositionForColumn(next, line, col, o.opts.TabSize))
			changed = true
		}
		if changed {
			o.sels.SetAll(out, o.sels.PrimaryIndex())
		}
	})
}

// InsertTextAsBox pastes text as a rectangle: each input line lands at
// the primary caret's display column on successive buffer lines, with
// trailing lines synthesized past end of file. The pasted region is
// reselected as a box afterward.
func (o *Operations) InsertTextAsBox(text string) Status {
	if text == "" {
		return NoOp
	}
	snap := o.buf.Current()
	tabSize := o.opts.TabSize
	spacesOnly := o.opts.ConvertTabsToSpaces
	breakSeq := o.buf.LineBreak().Sequence()

	lines := splitLines(text)
	caret := o.sels.Primary().Caret()
	startLine := snap.LineContaining(caret.Offset)
	col := virtpos.Column(snap, caret, tabSize)

	e := o.begin("insert box")
	defer e.tx.Release()

	var tail strings.Builder
	for i, lt := range lines {
		bl := startLine + uint32(i)
		if bl < snap.LineCount() {
			pos := virtpos.PositionForColumn(snap, bl, col, tabSize)
			prefix := virtpos.WhitespaceForPosition(snap, pos, tabSize, spacesOnly)
			if !e.tx.Insert(pos.Offset, prefix+lt) {
				return e.fail()
			}
			continue
		}
		tail.WriteString(breakSeq)
		tail.WriteString(virtpos.WhitespaceForColumn(0, col, tabSize, spacesOnly))
		tail.WriteString(lt)
	}
	if tail.Len() > 0 {
		if !e.tx.Insert(snap.Len(), tail.String()) {
			return e.fail()
		}
	}

	endLine := startLine + uint32(len(lines)) - 1
	endCol := virtpos.ColumnAfter(lines[len(lines)-1], col, tabSize)
	return e.apply(func(old, next *buffer.Snapshot) {
		box := selection.Box{
			Anchor: virtpos.PositionForColumn(next, startLine, col, tabSize),
			Active: virtpos.PositionForColumn(next, endLine, endCol, tabSize),
		}
		o.sels.SetBox(box, next, tabSize)
	})
}

// splitLines splits clipboard text into lines, accepting either break
// style. A trailing break does not produce a final empty line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
