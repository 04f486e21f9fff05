package ops

import (
	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/selection"
	"github.com/dshills/editkit/internal/editor/virtpos"
)

// Backspace deletes one text element before each caret, or each
// selection's text. A caret in virtual space retreats one virtual
// column without touching the buffer; a caret at the document start is
// left alone. The element decision tree: a collapsed region ending at
// the caret is deleted whole, a \r\n pair atomically, anything else
// one code point at a time so incremental IME composition can retract
// its last unit.
func (o *Operations) Backspace() Status {
	snap := o.buf.Current()
	sels := o.sels.All()

	updated := make([]selection.Selection, len(sels))
	copy(updated, sels)

	var deletes []buffer.Range
	changedSel := false

	// Deletions are planned in reverse offset order so earlier carets
	// stay valid while later ones are resolved.
	for i := len(sels) - 1; i >= 0; i-- {
		s := sels[i]
		if !s.IsEmpty() {
			deletes = append(deletes, s.Span())
			continue
		}
		caret := s.Caret()
		if caret.Spaces > 0 {
			pos := virtpos.NewVirtual(caret.Offset, caret.Spaces-1)
			updated[i] = selection.NewCaret(pos)
			changedSel = true
			continue
		}
		if caret.Offset == 0 {
			continue
		}
		if span, ok := o.elementBefore(snap, caret.Offset); ok {
			deletes = append(deletes, span)
		}
	}

	if len(deletes) == 0 {
		if !changedSel {
			return NoOp
		}
		e := o.begin("backspace")
		defer e.tx.Release()
		o.sels.SetAll(updated, o.sels.PrimaryIndex())
		return e.commitSelectionOnly()
	}

	e := o.begin("backspace")
	defer e.tx.Release()
	for _, span := range deletes {
		if !e.tx.Delete(span) {
			return e.fail()
		}
	}
	box, hadBox := o.sels.Box()
	return e.apply(func(old, next *buffer.Snapshot) {
		if changedSel {
			o.sels.SetAll(updated, o.sels.PrimaryIndex())
		}
		o.sels.TranslateTo(old, next, o.opts.TabSize)
		if hadBox {
			o.sels.SetBox(box.Translate(old, next), next, o.opts.TabSize)
		}
	})
}

// elementBefore resolves the deletable element ending at offset.
func (o *Operations) elementBefore(snap *buffer.Snapshot, offset buffer.ByteOffset) (buffer.Range, bool) {
	if offset <= 0 {
		return buffer.Range{}, false
	}
	for _, r := range o.out.CollapsedInRange(buffer.NewRange(offset-1, offset)) {
		if r.Span.End == offset && r.Span.Len() > 1 {
			return r.Span, true
		}
	}
	if offset >= 2 && snap.TextRange(offset-2, offset) == "\r\n" {
		return buffer.NewRange(offset-2, offset), true
	}
	_, size := snap.RuneBefore(offset)
	if size == 0 {
		return buffer.Range{}, false
	}
	return buffer.NewRange(offset-buffer.ByteOffset(size), offset), true
}

// DeleteForward deletes the text element after each caret, or each
// selection's text. Collapsed regions starting at the caret are
// deleted whole; the element unit is otherwise a grapheme cluster, so
// \r\n and combining sequences go atomically.
func (o *Operations) DeleteForward() Status {
	snap := o.buf.Current()
	sels := o.sels.All()

	var deletes []buffer.Range
	for i := len(sels) - 1; i >= 0; i-- {
		s := sels[i]
		if !s.IsEmpty() {
			deletes = append(deletes, s.Span())
			continue
		}
		off := s.Caret().Offset
		if off >= snap.Len() {
			continue
		}
		span := o.elementAfter(snap, off)
		if !span.IsEmpty() {
			deletes = append(deletes, span)
		}
	}
	if len(deletes) == 0 {
		return NoOp
	}

	e := o.begin("delete")
	defer e.tx.Release()
	for _, span := range deletes {
		if !e.tx.Delete(span) {
			return e.fail()
		}
	}
	box, hadBox := o.sels.Box()
	return e.apply(func(old, next *buffer.Snapshot) {
		o.sels.TranslateTo(old, next, o.opts.TabSize)
		if hadBox {
			o.sels.SetBox(box.Translate(old, next), next, o.opts.TabSize)
		}
	})
}

func (o *Operations) elementAfter(snap *buffer.Snapshot, offset buffer.ByteOffset) buffer.Range {
	for _, r := range o.out.CollapsedInRange(buffer.NewRange(offset, offset+1)) {
		if r.Span.Start == offset && r.Span.Len() > 1 {
			return r.Span
		}
	}
	return o.nav.NextElement(snap, offset)
}

// DeleteWordLeft deletes from each caret back to the previous word
// start; non-empty selections just delete their text.
func (o *Operations) DeleteWordLeft() Status {
	snap := o.buf.Current()
	sels := o.sels.All()

	var deletes []buffer.Range
	for i := len(sels) - 1; i >= 0; i-- {
		s := sels[i]
		if !s.IsEmpty() {
			deletes = append(deletes, s.Span())
			continue
		}
		off := s.Caret().Offset
		start := o.nav.PrevWordStart(snap, off)
		if start < off {
			deletes = append(deletes, buffer.NewRange(start, off))
		}
	}
	if len(deletes) == 0 {
		return NoOp
	}

	e := o.begin("delete word left")
	defer e.tx.Release()
	for _, span := range deletes {
		if !e.tx.Delete(span) {
			return e.fail()
		}
	}
	return e.apply(nil)
}

// DeleteWordRight deletes from each caret to the next word end;
// non-empty selections just delete their text.
func (o *Operations) DeleteWordRight() Status {
	snap := o.buf.Current()
	sels := o.sels.All()

	var deletes []buffer.Range
	for i := len(sels) - 1; i >= 0; i-- {
		s := sels[i]
		if !s.IsEmpty() {
			deletes = append(deletes, s.Span())
			continue
		}
		off := s.Caret().Offset
		end := o.nav.NextWordEnd(snap, off)
		if end > off {
			deletes = append(deletes, buffer.NewRange(off, end))
		}
	}
	if len(deletes) == 0 {
		return NoOp
	}

	e := o.begin("delete word right")
	defer e.tx.Release()
	for _, span := range deletes {
		if !e.tx.Delete(span) {
			return e.fail()
		}
	}
	return e.apply(nil)
}

// DeleteHorizontalWhitespace normalizes space and tab runs in each
// selection's span, or the caret's line for empty selections. If any
// run in a span is longer than one character, every such run collapses
// to a single space, except runs touching the span edges, which are
// deleted outright. When all runs are single characters they are
// simply deleted.
func (o *Operations) DeleteHorizontalWhitespace() Status {
	snap := o.buf.Current()
	sels := o.sels.All()

	seen := make(map[buffer.Range]bool)
	spans := make([]buffer.Range, 0, len(sels))
	for _, s := range sels {
		var span buffer.Range
		if s.IsEmpty() {
			span = snap.LineExtent(snap.LineContaining(s.Caret().Offset))
		} else {
			span = s.Span()
		}
		if seen[span] {
			continue
		}
		seen[span] = true
		spans = append(spans, span)
	}

	e := o.begin("delete horizontal whitespace")
	defer e.tx.Release()

	staged := false
	for _, span := range spans {
		text := snap.TextRange(span.Start, span.End)
		type wsRun struct{ start, end int }
		var runs []wsRun
		for i := 0; i < len(text); {
			if text[i] != ' ' && text[i] != '\t' {
				i++
				continue
			}
			j := i
			for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
			runs = append(runs, wsRun{start: i, end: j})
			i = j
		}
		if len(runs) == 0 {
			continue
		}

		anyMulti := false
		for _, r := range runs {
			if r.end-r.start > 1 {
				anyMulti = true
				break
			}
		}

		for _, r := range runs {
			rSpan := buffer.NewRange(span.Start+buffer.ByteOffset(r.start), span.Start+buffer.ByteOffset(r.end))
			if anyMulti {
				if r.end-r.start == 1 {
					continue
				}
				if r.start == 0 || r.end == len(text) {
					if !e.tx.Delete(rSpan) {
						return e.fail()
					}
				} else if !e.tx.Replace(rSpan, " ") {
					return e.fail()
				}
			} else if !e.tx.Delete(rSpan) {
				return e.fail()
			}
			staged = true
		}
	}
	if !staged {
		return e.noop()
	}
	return e.apply(nil)
}
