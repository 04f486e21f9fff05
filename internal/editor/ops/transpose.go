package ops

import (
	"strings"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/selection"
	"github.com/dshills/editkit/internal/editor/textnav"
)

// TransposeCharacter swaps the text elements on either side of each
// caret with two coupled replacements in one transaction. At end of
// line the two elements before the caret are swapped instead; swaps
// never cross a line break.
func (o *Operations) TransposeCharacter() Status {
	snap := o.buf.Current()
	sels := o.sels.All()

	e := o.begin("transpose characters")
	defer e.tx.Release()

	caretEnds := make(map[int]buffer.ByteOffset)
	staged := false
	for i, s := range sels {
		if !s.IsEmpty() {
			continue
		}
		off := s.Caret().Offset
		a := o.nav.PrevElement(snap, off)
		b := o.nav.NextElement(snap, off)
		if snap.IsAtLineEnd(off) {
			b = a
			a = o.nav.PrevElement(snap, b.Start)
		}
		if a.IsEmpty() || b.IsEmpty() || a == b {
			continue
		}
		at := snap.TextRange(a.Start, a.End)
		bt := snap.TextRange(b.Start, b.End)
		if isBreakText(at) || isBreakText(bt) {
			continue
		}
		if !e.tx.Replace(a, bt) || !e.tx.Replace(b, at) {
			return e.fail()
		}
		caretEnds[i] = b.End
		staged = true
	}
	if !staged {
		return e.noop()
	}
	return e.apply(func(old, next *buffer.Snapshot) {
		o.transposeReconcile(old, next, caretEnds)
	})
}

// TransposeWord swaps the word at each caret with the next word,
// skipping any punctuation between them. A caret on the last word of
// the buffer is a no-op.
func (o *Operations) TransposeWord() Status {
	snap := o.buf.Current()
	sels := o.sels.All()

	e := o.begin("transpose words")
	defer e.tx.Release()

	caretEnds := make(map[int]buffer.ByteOffset)
	staged := false
	for i, s := range sels {
		if !s.IsEmpty() {
			continue
		}
		w1, ok := o.wordAtOrBefore(snap, s.Caret().Offset)
		if !ok {
			continue
		}
		w2, ok := o.nav.NextWord(snap, w1.End)
		if !ok {
			continue
		}
		t1 := snap.TextRange(w1.Start, w1.End)
		t2 := snap.TextRange(w2.Start, w2.End)
		if !e.tx.Replace(w1, t2) || !e.tx.Replace(w2, t1) {
			return e.fail()
		}
		caretEnds[i] = w2.End
		staged = true
	}
	if !staged {
		return e.noop()
	}
	return e.apply(func(old, next *buffer.Snapshot) {
		o.transposeReconcile(old, next, caretEnds)
	})
}

// TransposeLine swaps each caret's line with the line above it. The
// caret travels with its line.
func (o *Operations) TransposeLine() Status {
	snap := o.buf.Current()
	sels := o.sels.All()

	e := o.begin("transpose lines")
	defer e.tx.Release()

	type swap struct {
		span  buffer.Range // caret line extent with break, old snapshot
		delta buffer.ByteOffset
	}
	swaps := make([]swap, 0, len(sels))
	used := make(map[uint32]bool)
	staged := false
	for _, s := range sels {
		if !s.IsEmpty() {
			continue
		}
		line := snap.LineContaining(s.Caret().Offset)
		if line == 0 || used[line] || used[line-1] {
			continue
		}
		used[line] = true
		used[line-1] = true

		above := line - 1
		aboveStart := snap.LineStartOffset(above)
		aboveCore := snap.LineText(above)
		aboveBreak := snap.LineBreakText(above)
		core := snap.LineText(line)
		brk := snap.LineBreakText(line)

		combined := buffer.NewRange(aboveStart, snap.LineExtentWithBreak(line).End)
		if !e.tx.Replace(combined, core+aboveBreak+aboveCore+brk) {
			return e.fail()
		}
		swaps = append(swaps, swap{
			span:  snap.LineExtentWithBreak(line),
			delta: -buffer.ByteOffset(len(aboveCore) + len(aboveBreak)),
		})
		staged = true
	}
	if !staged {
		return e.noop()
	}
	return e.apply(func(old, next *buffer.Snapshot) {
		sels := o.sels.All()
		for i, s := range sels {
			for _, sw := range swaps {
				if s.Start().Offset >= sw.span.Start && s.Start().Offset <= sw.span.End {
					sels[i] = shiftSelection(s, sw.delta)
					break
				}
			}
		}
		o.sels.SetAll(sels, o.sels.PrimaryIndex())
	})
}

// wordAtOrBefore finds the word containing the offset, or the nearest
// word before it.
func (o *Operations) wordAtOrBefore(snap *buffer.Snapshot, off buffer.ByteOffset) (buffer.Range, bool) {
	r := o.nav.WordAt(snap, off)
	if !r.IsEmpty() && isWordText(snap.TextRange(r.Start, r.End)) {
		return r, true
	}
	p := r.Start
	for p > 0 {
		pr, size := snap.RuneBefore(p)
		if size == 0 {
			break
		}
		if pr == '\n' || pr == '\r' {
			break
		}
		p -= buffer.ByteOffset(size)
		w := o.nav.WordAt(snap, p)
		if isWordText(snap.TextRange(w.Start, w.End)) {
			return w, true
		}
		p = w.Start
	}
	return buffer.Range{}, false
}

func isWordText(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !textnav.IsWordRune(r) {
			return false
		}
	}
	return true
}

func (o *Operations) transposeReconcile(old, next *buffer.Snapshot, caretEnds map[int]buffer.ByteOffset) {
	o.sels.TranslateTo(old, next, o.opts.TabSize)
	out := o.sels.All()
	for i, end := range caretEnds {
		if i >= len(out) {
			continue
		}
		off, _ := buffer.TranslateOffset(end, old, next, buffer.TrackForward)
		out[i] = selection.NewCaretAt(off)
	}
	o.sels.SetAll(out, o.sels.PrimaryIndex())
}

func isBreakText(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
