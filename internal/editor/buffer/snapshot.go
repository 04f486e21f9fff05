package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Snapshot is an immutable view of buffer text at one version.
// Every position in this package is meaningful only relative to a
// specific snapshot; positions captured against an older snapshot must
// be translated (see TranslateOffset) before use against a newer one.
type Snapshot struct {
	text       string
	lineStarts []ByteOffset
	version    Version
	id         uuid.UUID

	// succ is set exactly once, under the owning buffer's lock, when an
	// edit batch is applied on top of this snapshot. It links the edit
	// chain used by position translation.
	succ *editBatch
}

// editBatch records one applied transaction: the edits (sorted by
// ascending start, expressed against the source snapshot) and the
// snapshot they produced.
type editBatch struct {
	edits []Edit
	to    *Snapshot
}

func newSnapshot(text string, version Version) *Snapshot {
	s := &Snapshot{
		text:    text,
		version: version,
		id:      uuid.New(),
	}
	s.lineStarts = indexLines(text)
	return s
}

// indexLines computes the starting offset of every line.
// A line begins at offset 0 and after every \n. A lone \r is not a
// line break; \r\n is treated as a single two-byte break.
func indexLines(text string) []ByteOffset {
	starts := []ByteOffset{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return starts
}

// Text returns the full snapshot content.
func (s *Snapshot) Text() string {
	return s.text
}

// TextRange returns text in the given byte range, clamped to the
// snapshot bounds.
func (s *Snapshot) TextRange(start, end ByteOffset) string {
	if start < 0 {
		start = 0
	}
	if end > ByteOffset(len(s.text)) {
		end = ByteOffset(len(s.text))
	}
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return ByteOffset(len(s.text))
}

// IsEmpty returns true if the snapshot holds no text.
func (s *Snapshot) IsEmpty() bool {
	return len(s.text) == 0
}

// Version returns the snapshot's version number.
func (s *Snapshot) Version() Version {
	return s.version
}

// ID returns the snapshot's unique identifier.
func (s *Snapshot) ID() uuid.UUID {
	return s.id
}

// LineCount returns the number of lines. An empty snapshot has one
// (empty) line.
func (s *Snapshot) LineCount() uint32 {
	return uint32(len(s.lineStarts))
}

// LineStartOffset returns the byte offset of the start of a line.
func (s *Snapshot) LineStartOffset(line uint32) ByteOffset {
	if int(line) >= len(s.lineStarts) {
		return ByteOffset(len(s.text))
	}
	return s.lineStarts[line]
}

// LineEndOffset returns the byte offset of the end of a line, before
// its line break.
func (s *Snapshot) LineEndOffset(line uint32) ByteOffset {
	end := s.lineEndWithBreak(line)
	return end - ByteOffset(len(s.LineBreakText(line)))
}

// lineEndWithBreak returns the offset just past the line's break (or
// the snapshot end for the last line).
func (s *Snapshot) lineEndWithBreak(line uint32) ByteOffset {
	if int(line)+1 < len(s.lineStarts) {
		return s.lineStarts[line+1]
	}
	return ByteOffset(len(s.text))
}

// LineBreakText returns the line's break sequence: "\n", "\r\n", or ""
// for the last line of the snapshot.
func (s *Snapshot) LineBreakText(line uint32) string {
	if int(line)+1 >= len(s.lineStarts) {
		return ""
	}
	next := s.lineStarts[line+1]
	if next >= 2 && s.text[next-2] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// LineText returns the text of a specific line without its break.
func (s *Snapshot) LineText(line uint32) string {
	return s.TextRange(s.LineStartOffset(line), s.LineEndOffset(line))
}

// LineExtent returns the line's range excluding its break.
func (s *Snapshot) LineExtent(line uint32) Range {
	return Range{Start: s.LineStartOffset(line), End: s.LineEndOffset(line)}
}

// LineExtentWithBreak returns the line's range including its break.
func (s *Snapshot) LineExtentWithBreak(line uint32) Range {
	return Range{Start: s.LineStartOffset(line), End: s.lineEndWithBreak(line)}
}

// LineContaining returns the line holding the given offset.
// Offsets past the end belong to the last line.
func (s *Snapshot) LineContaining(offset ByteOffset) uint32 {
	lo, hi := 0, len(s.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return uint32(lo)
}

// IsBlankLine returns true if the line is empty or all whitespace.
func (s *Snapshot) IsBlankLine(line uint32) bool {
	return strings.TrimSpace(s.LineText(line)) == ""
}

// OffsetToPoint converts a byte offset to a line/column position.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) Point {
	line := s.LineContaining(offset)
	return Point{Line: line, Column: uint32(offset - s.lineStarts[line])}
}

// PointToOffset converts a line/column position to a byte offset.
func (s *Snapshot) PointToOffset(p Point) ByteOffset {
	start := s.LineStartOffset(p.Line)
	off := start + ByteOffset(p.Column)
	if end := s.lineEndWithBreak(p.Line); off > end {
		off = end
	}
	return off
}

// RuneAt returns the rune starting at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (s *Snapshot) RuneAt(offset ByteOffset) (rune, int) {
	if offset < 0 || offset >= ByteOffset(len(s.text)) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.text[offset:])
}

// RuneBefore returns the rune ending at the given byte offset.
// Returns utf8.RuneError and size 0 at the snapshot start.
func (s *Snapshot) RuneBefore(offset ByteOffset) (rune, int) {
	if offset <= 0 || offset > ByteOffset(len(s.text)) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(s.text[:offset])
}

// IsAtLineEnd returns true if the offset sits at a line's physical end
// (immediately before the line break, or at the snapshot end).
func (s *Snapshot) IsAtLineEnd(offset ByteOffset) bool {
	line := s.LineContaining(offset)
	return offset == s.LineEndOffset(line)
}
