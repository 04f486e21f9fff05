package ops

import (
	"strings"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/selection"
	"github.com/dshills/editkit/internal/editor/virtpos"
)

func nextStop(col, width int) int {
	return (col/width + 1) * width
}

func prevStop(col, width int) int {
	if col <= 0 {
		return 0
	}
	return (col - 1) / width * width
}

// caretIndentWhitespace synthesizes the whitespace a caret-level
// indent inserts. A gap shorter than one tab width is always spaces,
// so indenting just past existing text nudges by literal spaces
// instead of a tab that would render the same but save a wider
// character.
func caretIndentWhitespace(origin, target, tabSize int, spacesOnly bool) string {
	if target <= origin {
		return ""
	}
	if spacesOnly || target-origin < tabSize {
		return strings.Repeat(" ", target-origin)
	}
	return virtpos.WhitespaceForColumn(origin, target, tabSize, false)
}

// Indent shifts the selected text one level right. An empty caret
// inserts whitespace to the next indent stop; a non-empty single-line
// selection aligns its start to the next tab stop; a multi-line
// selection indents each non-blank line at its first non-whitespace
// character, with lines shared between simultaneous selections
// indented once. A box selection indents at the box's columns,
// realizing virtual space where a line is short. A selection covering
// only blank lines succeeds without editing.
func (o *Operations) Indent() Status {
	snap := o.buf.Current()
	tabSize := o.opts.TabSize
	indentSize := o.opts.IndentSize
	spacesOnly := o.opts.ConvertTabsToSpaces

	e := o.begin("indent")
	defer e.tx.Release()

	if box, ok := o.sels.Box(); ok {
		for _, s := range box.Materialize(snap, tabSize) {
			start := s.Start()
			physCol := virtpos.ColumnAtOffset(snap, start.Offset, tabSize)
			col := virtpos.Column(snap, start, tabSize)
			ws := virtpos.WhitespaceForColumn(physCol, col, tabSize, spacesOnly) +
				virtpos.WhitespaceForColumn(col, col+indentSize, tabSize, spacesOnly)
			if ws == "" {
				continue
			}
			if !e.tx.Insert(start.Offset, ws) {
				return e.fail()
			}
		}
		return e.apply(func(old, next *buffer.Snapshot) {
			o.sels.SetBox(box.Translate(old, next), next, o.opts.TabSize)
		})
	}

	sels := o.sels.All()
	processed := make(map[uint32]bool)
	virtualCarets := make(map[int]bool)
	staged := false

	for i, s := range sels {
		first, last := lineRange(snap, s)
		switch {
		case s.IsEmpty():
			caret := s.Caret()
			physCol := virtpos.ColumnAtOffset(snap, caret.Offset, tabSize)
			col := virtpos.Column(snap, caret, tabSize)
			target := nextStop(col, indentSize)
			ws := virtpos.WhitespaceForColumn(physCol, col, tabSize, spacesOnly) +
				caretIndentWhitespace(col, target, tabSize, spacesOnly)
			if ws == "" {
				continue
			}
			if !e.tx.Insert(caret.Offset, ws) {
				return e.fail()
			}
			if caret.Spaces > 0 {
				virtualCarets[i] = true
			}
			staged = true

		case first == last:
			start := s.Start().Offset
			col := virtpos.ColumnAtOffset(snap, start, tabSize)
			ws := virtpos.WhitespaceForColumn(col, nextStop(col, tabSize), tabSize, spacesOnly)
			if ws == "" {
				continue
			}
			if !e.tx.Insert(start, ws) {
				return e.fail()
			}
			staged = true

		default:
			for line := first; line <= last; line++ {
				if processed[line] {
					continue
				}
				processed[line] = true
				if snap.IsBlankLine(line) {
					continue
				}
				off := firstNonBlankOffset(snap, line)
				col := virtpos.ColumnAtOffset(snap, off, tabSize)
				ws := virtpos.WhitespaceForColumn(col, col+indentSize, tabSize, spacesOnly)
				if !e.tx.Insert(off, ws) {
					return e.fail()
				}
				staged = true
			}
		}
	}
	if !staged {
		return e.noop()
	}
	return e.apply(func(old, next *buffer.Snapshot) {
		o.sels.TranslateTo(old, next, tabSize)
		if len(virtualCarets) == 0 {
			return
		}
		out := o.sels.All()
		for i := range out {
			if virtualCarets[i] && out[i].IsEmpty() {
				out[i] = selection.NewCaretAt(out[i].Caret().Offset)
			}
		}
		o.sels.SetAll(out, o.sels.PrimaryIndex())
	})
}

// Unindent shifts the selected text up to one level left. A caret in
// virtual space retreats to the previous indent stop without editing;
// otherwise leading whitespace is removed per line, stopping early at
// the first non-whitespace character.
func (o *Operations) Unindent() Status {
	snap := o.buf.Current()
	tabSize := o.opts.TabSize
	indentSize := o.opts.IndentSize

	sels := o.sels.All()
	updated := make([]selection.Selection, len(sels))
	copy(updated, sels)
	changedSel := false

	processed := make(map[uint32]bool)
	var deletes []buffer.Range

	unindentLine := func(line uint32) {
		if processed[line] {
			return
		}
		processed[line] = true
		text := snap.LineText(line)
		col, i := 0, 0
	scan:
		for i < len(text) && col < indentSize {
			switch text[i] {
			case ' ':
				col++
			case '\t':
				col = col/tabSize*tabSize + tabSize
			default:
				// Stop early at the first non-whitespace character.
				break scan
			}
			i++
		}
		if i > 0 {
			start := snap.LineStartOffset(line)
			deletes = append(deletes, buffer.NewRange(start, start+buffer.ByteOffset(i)))
		}
	}

	for i, s := range sels {
		if s.IsEmpty() {
			caret := s.Caret()
			if caret.Spaces > 0 {
				col := virtpos.Column(snap, caret, tabSize)
				target := prevStop(col, indentSize)
				physCol := virtpos.ColumnAtOffset(snap, caret.Offset, tabSize)
				spaces := target - physCol
				if spaces < 0 {
					spaces = 0
				}
				updated[i] = selection.NewCaret(virtpos.NewVirtual(caret.Offset, spaces))
				changedSel = true
				continue
			}
			unindentLine(snap.LineContaining(caret.Offset))
			continue
		}
		first, last := lineRange(snap, s)
		for line := first; line <= last; line++ {
			unindentLine(line)
		}
	}

	if len(deletes) == 0 {
		if !changedSel {
			return NoOp
		}
		e := o.begin("unindent")
		defer e.tx.Release()
		o.sels.SetAll(updated, o.sels.PrimaryIndex())
		return e.commitSelectionOnly()
	}

	e := o.begin("unindent")
	defer e.tx.Release()
	for _, span := range deletes {
		if !e.tx.Delete(span) {
			return e.fail()
		}
	}
	return e.apply(func(old, next *buffer.Snapshot) {
		if changedSel {
			o.sels.SetAll(updated, o.sels.PrimaryIndex())
		}
		o.sels.TranslateTo(old, next, tabSize)
	})
}

// Tabify rewrites each covered line's leading whitespace with tabs.
// With no selection the whole document is processed.
func (o *Operations) Tabify() Status {
	return o.retabLines(true)
}

// Untabify rewrites each covered line's leading whitespace with
// spaces. With no selection the whole document is processed.
func (o *Operations) Untabify() Status {
	return o.retabLines(false)
}

func (o *Operations) retabLines(toTabs bool) Status {
	snap := o.buf.Current()
	tabSize := o.opts.TabSize
	sels := o.sels.All()

	hasSelection := false
	for _, s := range sels {
		if !s.IsEmpty() {
			hasSelection = true
			break
		}
	}

	e := o.begin("retab")
	defer e.tx.Release()

	staged := false
	retab := func(from, to uint32) bool {
		for line := from; line <= to; line++ {
			text := snap.LineText(line)
			i, col := 0, 0
			for i < len(text) {
				if text[i] == ' ' {
					col++
				} else if text[i] == '\t' {
					col = col/tabSize*tabSize + tabSize
				} else {
					break
				}
				i++
			}
			if i == 0 {
				continue
			}
			var want string
			if toTabs {
				want = virtpos.WhitespaceForColumn(0, col, tabSize, false)
			} else {
				want = strings.Repeat(" ", col)
			}
			if want == text[:i] {
				continue
			}
			start := snap.LineStartOffset(line)
			if !e.tx.Replace(buffer.NewRange(start, start+buffer.ByteOffset(i)), want) {
				return false
			}
			staged = true
		}
		return true
	}

	if hasSelection {
		for _, b := range selectionBlocks(snap, sels) {
			if !retab(b.first, b.last) {
				return e.fail()
			}
		}
	} else if !retab(0, snap.LineCount()-1) {
		return e.fail()
	}
	if !staged {
		return e.noop()
	}
	return e.apply(nil)
}
