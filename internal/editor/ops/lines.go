package ops

import (
	"sort"
	"strings"

	"github.com/dshills/editkit/internal/editor/buffer"
	"github.com/dshills/editkit/internal/editor/outline"
	"github.com/dshills/editkit/internal/editor/selection"
	"github.com/dshills/editkit/internal/editor/virtpos"
)

// MoveSelectedLinesUp moves every selected line block one line up.
func (o *Operations) MoveSelectedLinesUp() Status {
	return o.moveLines(-1)
}

// MoveSelectedLinesDown moves every selected line block one line down.
func (o *Operations) MoveSelectedLinesDown() Status {
	return o.moveLines(1)
}

func (o *Operations) moveLines(dir int) Status {
	snap := o.buf.Current()
	blocks := selectionBlocks(snap, o.sels.All())
	if len(blocks) == 0 {
		return NoOp
	}
	if len(blocks) == 1 && blocks[0].first == blocks[0].last && snap.LineText(blocks[0].first) == "" {
		return NoOp
	}
	lastLine := snap.LineCount() - 1
	for _, b := range blocks {
		if dir < 0 && b.first == 0 {
			return NoOp
		}
		if dir > 0 && b.last >= lastLine {
			return NoOp
		}
	}

	e := o.begin("move lines")
	defer e.tx.Release()

	type moved struct {
		span    buffer.Range // block extent with break, old snapshot
		delta   buffer.ByteOffset
		regions []outline.Region
	}
	moves := make([]moved, 0, len(blocks))
	var allBefore []outline.Region

	for _, b := range blocks {
		blockStart := snap.LineStartOffset(b.first)
		blockCore := snap.TextRange(blockStart, snap.LineEndOffset(b.last))
		blockBreak := snap.LineBreakText(b.last)
		blockSpan := buffer.NewRange(blockStart, snap.LineExtentWithBreak(b.last).End)

		var combined buffer.Range
		var newText string
		var delta buffer.ByteOffset
		if dir > 0 {
			below := b.last + 1
			belowCore := snap.LineText(below)
			belowBreak := snap.LineBreakText(below)
			combined = buffer.NewRange(blockStart, snap.LineExtentWithBreak(below).End)
			newText = belowCore + blockBreak + blockCore + belowBreak
			delta = buffer.ByteOffset(len(belowCore) + len(blockBreak))
		} else {
			above := b.first - 1
			aboveStart := snap.LineStartOffset(above)
			aboveCore := snap.LineText(above)
			aboveBreak := snap.LineBreakText(above)
			combined = buffer.NewRange(aboveStart, snap.LineExtentWithBreak(b.last).End)
			newText = blockCore + aboveBreak + aboveCore + blockBreak
			delta = -buffer.ByteOffset(len(aboveCore) + len(aboveBreak))
		}

		regions := outline.Capture(o.out, blockSpan)
		allBefore = append(allBefore, regions...)
		if !e.tx.Replace(combined, newText) {
			return e.fail()
		}
		moves = append(moves, moved{span: blockSpan, delta: delta, regions: regions})
	}
	if len(allBefore) > 0 && o.opts.OutliningUndo {
		e.txn.AddCollapsedBefore(allBefore)
	}

	return e.apply(func(old, next *buffer.Snapshot) {
		shiftFor := func(off buffer.ByteOffset) buffer.ByteOffset {
			for _, m := range moves {
				if off >= m.span.Start && off <= m.span.End {
					return m.delta
				}
			}
			return 0
		}
		sels := o.sels.All()
		for i, s := range sels {
			sels[i] = shiftSelection(s, shiftFor(s.Start().Offset))
		}
		o.sels.SetAll(sels, o.sels.PrimaryIndex())

		var allAfter []outline.Region
		for _, m := range moves {
			if len(m.regions) == 0 {
				continue
			}
			shifted := make([]outline.Region, len(m.regions))
			for i, r := range m.regions {
				shifted[i] = outline.Region{Span: r.Span.Shift(m.delta), Tag: r.Tag}
			}
			outline.Restore(o.out, shifted, 0)
			allAfter = append(allAfter, shifted...)
		}
		if len(allAfter) > 0 && o.opts.OutliningUndo {
			e.txn.AddCollapsedAfter(allAfter)
		}
	})
}

func shiftSelection(s selection.Selection, delta buffer.ByteOffset) selection.Selection {
	if delta == 0 {
		return s
	}
	shift := func(v virtpos.VirtualPosition) virtpos.VirtualPosition {
		v.Offset += delta
		return v
	}
	s.Anchor = shift(s.Anchor)
	s.Active = shift(s.Active)
	s.Insertion = shift(s.Insertion)
	return s
}

// DuplicateSelection copies each selection's text. An empty selection
// duplicates its whole line, placing the copy above so the caret stays
// on the original; a non-empty selection gets its copy appended after
// the selected span, leaving the selection on the original text.
func (o *Operations) DuplicateSelection() Status {
	snap := o.buf.Current()
	sels := o.sels.All()
	if len(sels) == 0 {
		return NoOp
	}

	e := o.begin("duplicate")
	defer e.tx.Release()

	type ins struct {
		off  buffer.ByteOffset
		n    buffer.ByteOffset
		incl bool // shift points sitting exactly at off
	}
	inserts := make([]ins, 0, len(sels))

	seenLines := make(map[uint32]bool)
	for _, s := range sels {
		if s.IsEmpty() {
			line := snap.LineContaining(s.Caret().Offset)
			if seenLines[line] {
				continue
			}
			seenLines[line] = true
			core := snap.LineText(line)
			brk := snap.LineBreakText(line)
			if brk == "" {
				// Break-less final line: append below instead.
				end := snap.LineEndOffset(line)
				text := o.buf.LineBreak().Sequence() + core
				if !e.tx.Insert(end, text) {
					return e.fail()
				}
				inserts = append(inserts, ins{off: end, n: buffer.ByteOffset(len(text)), incl: false})
				continue
			}
			start := snap.LineStartOffset(line)
			text := core + brk
			if !e.tx.Insert(start, text) {
				return e.fail()
			}
			inserts = append(inserts, ins{off: start, n: buffer.ByteOffset(len(text)), incl: true})
			continue
		}
		span := s.Span()
		text := snap.TextRange(span.Start, span.End)
		if !e.tx.Insert(span.End, text) {
			return e.fail()
		}
		inserts = append(inserts, ins{off: span.End, n: buffer.ByteOffset(len(text)), incl: false})
	}

	return e.apply(func(old, next *buffer.Snapshot) {
		shift := func(v virtpos.VirtualPosition) virtpos.VirtualPosition {
			var d buffer.ByteOffset
			for _, in := range inserts {
				if in.off < v.Offset || (in.incl && in.off == v.Offset) {
					d += in.n
				}
			}
			v.Offset += d
			return v
		}
		out := o.sels.All()
		for i, s := range out {
			s.Anchor = shift(s.Anchor)
			s.Active = shift(s.Active)
			s.Insertion = shift(s.Insertion)
			out[i] = s
		}
		o.sels.SetAll(out, o.sels.PrimaryIndex())
	})
}

// SortSelectedLines stable-sorts each selection's line block by
// ordinal comparison. A block already in sorted order is reversed
// instead, so repeated invocation toggles the direction.
func (o *Operations) SortSelectedLines() Status {
	snap := o.buf.Current()
	blocks := selectionBlocks(snap, o.sels.All())

	e := o.begin("sort lines")
	defer e.tx.Release()

	staged := false
	for _, b := range blocks {
		if b.first == b.last {
			continue
		}
		n := int(b.last - b.first + 1)
		cores := make([]string, n)
		breaks := make([]string, n)
		for i := 0; i < n; i++ {
			line := b.first + uint32(i)
			cores[i] = snap.LineText(line)
			breaks[i] = snap.LineBreakText(line)
		}

		sorted := make([]string, n)
		copy(sorted, cores)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		alreadySorted := true
		for i := range cores {
			if cores[i] != sorted[i] {
				alreadySorted = false
				break
			}
		}
		if alreadySorted {
			for i := range sorted {
				sorted[i] = cores[n-1-i]
			}
		}

		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteString(sorted[i])
			sb.WriteString(breaks[i])
		}
		span := buffer.NewRange(snap.LineStartOffset(b.first), snap.LineExtentWithBreak(b.last).End)
		if !e.tx.Replace(span, sb.String()) {
			return e.fail()
		}
		staged = true
	}
	if !staged {
		return e.noop()
	}
	return e.apply(nil)
}

// JoinSelectedLines concatenates the trimmed text of every line a
// selection covers, separated by single spaces, keeping the first
// line's leading indentation and terminating with the buffer's line
// break sequence. An empty selection joins its line with the next one.
func (o *Operations) JoinSelectedLines() Status {
	snap := o.buf.Current()
	breakSeq := o.buf.LineBreak().Sequence()
	blocks := selectionBlocks(snap, o.sels.All())

	e := o.begin("join lines")
	defer e.tx.Release()

	staged := false
	for _, b := range blocks {
		first, last := b.first, b.last
		if first == last {
			if last+1 >= snap.LineCount() {
				continue
			}
			last++
		}
		startOff := firstNonBlankOffset(snap, first)
		parts := make([]string, 0, last-first+1)
		for line := first; line <= last; line++ {
			var core string
			if line == first {
				// Leading indentation is excluded from the replaced span.
				core = snap.TextRange(startOff, snap.LineEndOffset(line))
			} else {
				core = snap.LineText(line)
			}
			core = strings.Trim(core, " \t")
			if core != "" {
				parts = append(parts, core)
			}
		}
		span := buffer.NewRange(startOff, snap.LineEndOffset(last))
		repl := strings.Join(parts, " ")
		if snap.LineBreakText(last) != "" {
			// Terminate with the buffer's computed sequence, not
			// whatever break the last covered line happened to carry.
			span.End = snap.LineExtentWithBreak(last).End
			repl += breakSeq
		}
		if !e.tx.Replace(span, repl) {
			return e.fail()
		}
		staged = true
	}
	if !staged {
		return e.noop()
	}
	return e.apply(nil)
}

// DeleteBlankLines deletes the contiguous run of blank lines
// containing each caret's line, or the run immediately below it when
// the caret's line is not blank.
func (o *Operations) DeleteBlankLines() Status {
	snap := o.buf.Current()
	sels := o.sels.All()

	type run struct{ first, last uint32 }
	var runs []run
	seen := make(map[uint32]bool)
	for _, s := range sels {
		line := snap.LineContaining(s.Start().Offset)
		if !snap.IsBlankLine(line) {
			if line+1 >= snap.LineCount() || !snap.IsBlankLine(line+1) {
				continue
			}
			line++
		}
		first, last := line, line
		for first > 0 && snap.IsBlankLine(first-1) {
			first--
		}
		for last+1 < snap.LineCount() && snap.IsBlankLine(last+1) {
			last++
		}
		if seen[first] {
			continue
		}
		seen[first] = true
		runs = append(runs, run{first: first, last: last})
	}
	if len(runs) == 0 {
		return NoOp
	}

	e := o.begin("delete blank lines")
	defer e.tx.Release()
	for _, r := range runs {
		span := buffer.NewRange(snap.LineStartOffset(r.first), snap.LineExtentWithBreak(r.last).End)
		if span.IsEmpty() {
			continue
		}
		if !e.tx.Delete(span) {
			return e.fail()
		}
	}
	return e.apply(nil)
}

// TrimTrailingWhitespace removes trailing spaces and tabs from every
// line a non-empty selection covers, or from the whole document when
// all selections are empty.
func (o *Operations) TrimTrailingWhitespace() Status {
	snap := o.buf.Current()
	sels := o.sels.All()

	wholeDoc := true
	for _, s := range sels {
		if !s.IsEmpty() {
			wholeDoc = false
			break
		}
	}

	e := o.begin("trim trailing whitespace")
	defer e.tx.Release()

	staged := false
	trimLines := func(from, to uint32) bool {
		for line := from; line <= to; line++ {
			core := snap.LineText(line)
			trimmed := strings.TrimRight(core, " \t")
			if len(trimmed) == len(core) {
				continue
			}
			start := snap.LineStartOffset(line)
			span := buffer.NewRange(start+buffer.ByteOffset(len(trimmed)), start+buffer.ByteOffset(len(core)))
			if !e.tx.Delete(span) {
				return false
			}
			staged = true
		}
		return true
	}

	if wholeDoc {
		if !trimLines(0, snap.LineCount()-1) {
			return e.fail()
		}
	} else {
		for _, b := range selectionBlocks(snap, sels) {
			if !trimLines(b.first, b.last) {
				return e.fail()
			}
		}
	}
	if !staged {
		return e.noop()
	}
	return e.apply(nil)
}
