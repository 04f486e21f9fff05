package ops

import (
	"strings"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/clipboard"
	"github.com/dshills/editkit/internal/editor/selection"
)

// clipPlan is the shared cut/copy computation: the payload to write
// and the spans a cut would delete.
type clipPlan struct {
	payload clipboard.Payload
	deletes []buffer.Range
}

func (o *Operations) planClip() (clipPlan, bool) {
	snap := o.buf.Current()
	sels := o.sels.All()
	breakSeq := o.buf.LineBreak().Sequence()

	if box, ok := o.sels.Box(); ok {
		lines := box.Materialize(snap, o.opts.TabSize)
		parts := make([]string, 0, len(lines))
		var plan clipPlan
		for _, s := range lines {
			span := s.Span()
			parts = append(parts, snap.TextRange(span.Start, span.End))
			if !span.IsEmpty() {
				plan.deletes = append(plan.deletes, span)
			}
		}
		plan.payload = clipboard.Payload{Text: strings.Join(parts, "\n"), Kind: clipboard.KindBox}
		return plan, true
	}

	allEmpty := true
	for _, s := range sels {
		if !s.IsEmpty() {
			allEmpty = false
			break
		}
	}

	var plan clipPlan
	if allEmpty {
		// Whole-line cut/copy.
		seen := make(map[uint32]bool)
		var sb strings.Builder
		for _, s := range sels {
			line := snap.LineContaining(s.Caret().Offset)
			if seen[line] {
				continue
			}
			seen[line] = true
			if snap.IsBlankLine(line) && !o.opts.CutCopyBlankLineIfNoSelection {
				continue
			}
			sb.WriteString(snap.LineText(line))
			brk := snap.LineBreakText(line)
			if brk == "" {
				brk = breakSeq
			}
			sb.WriteString(brk)
			plan.deletes = append(plan.deletes, snap.LineExtentWithBreak(line))
		}
		if sb.Len() == 0 {
			return plan, false
		}
		plan.payload = clipboard.Payload{Text: sb.String(), Kind: clipboard.KindLines}
		return plan, true
	}

	parts := make([]string, 0, len(sels))
	for _, s := range sels {
		if s.IsEmpty() {
			continue
		}
		span := s.Span()
		parts = append(parts, snap.TextRange(span.Start, span.End))
		plan.deletes = append(plan.deletes, span)
	}
	plan.payload = clipboard.Payload{Text: strings.Join(parts, breakSeq), Kind: clipboard.KindStream}
	return plan, true
}

// CopySelection writes the selected text to the clipboard: box
// payloads for box selections, whole lines for empty selections, a
// plain stream otherwise. The buffer is untouched.
func (o *Operations) CopySelection() Status {
	plan, ok := o.planClip()
	if !ok {
		return NoOp
	}
	if !o.clip.Write(plan.payload) {
		return Failed
	}
	return Done
}

// CutSelection copies like CopySelection, then deletes the copied
// spans in one transaction. A clipboard failure aborts before any
// edit.
func (o *Operations) CutSelection() Status {
	plan, ok := o.planClip()
	if !ok {
		return NoOp
	}
	if !o.clip.Write(plan.payload) {
		return Failed
	}
	if len(plan.deletes) == 0 {
		return Done
	}

	e := o.begin("cut")
	defer e.tx.Release()
	for _, span := range plan.deletes {
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

// Paste inserts the clipboard contents, reproducing the payload's
// shape: box payloads paste as a rectangle, line payloads insert whole
// lines above each caret's line, stream payloads type at the caret.
func (o *Operations) Paste() Status {
	p, ok := o.clip.Read()
	if !ok {
		return Failed
	}
	if p.Text == "" {
		return NoOp
	}

	switch p.Kind {
	case clipboard.KindBox:
		return o.InsertTextAsBox(p.Text)
	case clipboard.KindLines:
		return o.pasteLines(p.Text)
	default:
		return o.InsertText(p.Text)
	}
}

func (o *Operations) pasteLines(text string) Status {
	snap := o.buf.Current()
	if !strings.HasSuffix(text, "\n") {
		text += o.buf.LineBreak().Sequence()
	}

	seen := make(map[buffer.ByteOffset]bool)
	var offsets []buffer.ByteOffset
	for _, s := range o.sels.All() {
		start := snap.LineStartOffset(snap.LineContaining(s.Caret().Offset))
		if seen[start] {
			continue
		}
		seen[start] = true
		offsets = append(offsets, start)
	}

	e := o.begin("paste")
	defer e.tx.Release()
	for _, off := range offsets {
		if !e.tx.Insert(off, text) {
			return e.fail()
		}
	}
	return e.apply(nil)
}

// SelectAll selects the whole document with one selection. Unless
// move-caret-on-select-all is set, the insertion point stays where it
// was.
func (o *Operations) SelectAll() Status {
	snap := o.buf.Current()
	if snap.IsEmpty() {
		return NoOp
	}
	old := o.sels.Primary().Caret()
	sel := selection.NewRange(0, snap.Len())
	if !o.opts.MoveCaretOnSelectAll {
		sel = sel.WithInsertion(old)
	}
	o.sels.SetAll([]selection.Selection{sel}, 0)
	return Done
}
