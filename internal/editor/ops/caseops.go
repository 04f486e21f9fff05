package ops

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/selection"
)

// Upcase converts the selected text, or the element at each caret, to
// upper case.
func (o *Operations) Upcase() Status {
	return o.convertCase("upcase", cases.Upper(language.Und).String)
}

// Downcase converts the selected text, or the element at each caret,
// to lower case.
func (o *Operations) Downcase() Status {
	return o.convertCase("downcase", cases.Lower(language.Und).String)
}

// Capitalize title-cases the selected text, or the element at each
// caret.
func (o *Operations) Capitalize() Status {
	return o.convertCase("capitalize", cases.Title(language.Und).String)
}

// ToggleCase flips the case of every cased rune in the selected text,
// or the element at each caret.
func (o *Operations) ToggleCase() Status {
	return o.convertCase("toggle case", toggleCase)
}

func toggleCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		default:
			return r
		}
	}, s)
}

// convertCase applies a transform to each non-empty selection's span.
// An empty caret converts exactly one text element and steps past it,
// advancing even when the element is already in the target case so
// repeated invocations walk the line; a caret at the physical end of
// line steps over the break with no edit.
func (o *Operations) convertCase(name string, transform func(string) string) Status {
	snap := o.buf.Current()
	sels := o.sels.All()

	updated := make([]selection.Selection, len(sels))
	copy(updated, sels)
	changedSel := false

	// Carets that edited an element advance past it afterward; track
	// the element end so it can be carried into the new snapshot.
	caretEnds := make(map[int]buffer.ByteOffset)

	e := o.begin(name)
	defer e.tx.Release()

	staged := false
	for i, s := range sels {
		var span buffer.Range
		if s.IsEmpty() {
			caret := s.Caret()
			if caret.Spaces > 0 || snap.IsAtLineEnd(caret.Offset) {
				el := o.nav.NextElement(snap, caret.Offset)
				if el.IsEmpty() {
					continue
				}
				updated[i] = selection.NewCaretAt(el.End)
				changedSel = true
				continue
			}
			span = o.nav.NextElement(snap, caret.Offset)
			if el := snap.TextRange(span.Start, span.End); transform(el) == el {
				// Already in the target case: step over it.
				updated[i] = selection.NewCaretAt(span.End)
				changedSel = true
				continue
			}
			caretEnds[i] = span.End
		} else {
			span = s.Span()
		}
		text := snap.TextRange(span.Start, span.End)
		next := transform(text)
		if !e.tx.Replace(span, next) {
			return e.fail()
		}
		if next != text {
			staged = true
		}
	}

	if !staged {
		if !changedSel {
			return e.noop()
		}
		o.sels.SetAll(updated, o.sels.PrimaryIndex())
		return e.commitSelectionOnly()
	}
	return e.apply(func(old, next *buffer.Snapshot) {
		if changedSel {
			o.sels.SetAll(updated, o.sels.PrimaryIndex())
		}
		o.sels.TranslateTo(old, next, o.opts.TabSize)
		if len(caretEnds) == 0 {
			return
		}
		out := o.sels.All()
		for i, end := range caretEnds {
			if i >= len(out) {
				continue
			}
			off, _ := buffer.TranslateOffset(end, old, next, buffer.TrackForward)
			out[i] = selection.NewCaretAt(off)
		}
		o.sels.SetAll(out, o.sels.PrimaryIndex())
	})
}
