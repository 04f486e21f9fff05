// Package textnav resolves text-structure boundaries: the "text
// element" (the smallest caret-stop unit, a grapheme cluster) and word
// spans. Editing operations consume the Navigator interface so a
// language-aware implementation can be substituted; the default is
// Unicode segmentation via uniseg.
package textnav

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/editkit/internal/editor/buffer"
)

// Navigator answers span queries over a snapshot.
type Navigator interface {
	// NextElement returns the text element starting at offset, or an
	// empty range at the snapshot end.
	NextElement(snap *buffer.Snapshot, offset buffer.ByteOffset) buffer.Range

	// PrevElement returns the text element ending at offset, or an
	// empty range at the snapshot start.
	PrevElement(snap *buffer.Snapshot, offset buffer.ByteOffset) buffer.Range

	// WordAt returns the word (or run of non-word characters)
	// containing the offset.
	WordAt(snap *buffer.Snapshot, offset buffer.ByteOffset) buffer.Range

	// NextWord returns the first word span starting at or after
	// offset, skipping whitespace and punctuation runs. The second
	// result is false when no word follows.
	NextWord(snap *buffer.Snapshot, offset buffer.ByteOffset) (buffer.Range, bool)

	// PrevWordStart returns the start of the word (or run) preceding
	// the offset, for word-wise backward deletion.
	PrevWordStart(snap *buffer.Snapshot, offset buffer.ByteOffset) buffer.ByteOffset

	// NextWordEnd returns the end of the word (or run) following the
	// offset, for word-wise forward deletion.
	NextWordEnd(snap *buffer.Snapshot, offset buffer.ByteOffset) buffer.ByteOffset
}

// Unicode is the default Navigator built on grapheme clusters and
// simple word classes (word characters, whitespace, punctuation).
type Unicode struct{}

// NewUnicode creates the default navigator.
func NewUnicode() *Unicode {
	return &Unicode{}
}

// IsWordRune reports whether a rune belongs to a word: letters,
// digits, and underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

type runeClass uint8

const (
	classWord runeClass = iota
	classSpace
	classPunct
)

func classify(r rune) runeClass {
	switch {
	case IsWordRune(r):
		return classWord
	case unicode.IsSpace(r):
		return classSpace
	default:
		return classPunct
	}
}

// NextElement returns the grapheme cluster starting at offset.
// A \r\n pair is one element.
func (u *Unicode) NextElement(snap *buffer.Snapshot, offset buffer.ByteOffset) buffer.Range {
	if offset < 0 || offset >= snap.Len() {
		return buffer.Range{Start: snap.Len(), End: snap.Len()}
	}
	rest := snap.TextRange(offset, snap.Len())
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
	return buffer.Range{Start: offset, End: offset + buffer.ByteOffset(len(cluster))}
}

// PrevElement returns the grapheme cluster ending at offset. The scan
// restarts at the line start, which bounds the walk without splitting
// clusters (grapheme clusters never span line breaks).
func (u *Unicode) PrevElement(snap *buffer.Snapshot, offset buffer.ByteOffset) buffer.Range {
	if offset <= 0 {
		return buffer.Range{}
	}
	line := snap.LineContaining(offset)
	start := snap.LineStartOffset(line)
	if offset == start {
		// Step over the previous line's break as one element.
		if line == 0 {
			return buffer.Range{}
		}
		brk := snap.LineBreakText(line - 1)
		return buffer.Range{Start: offset - buffer.ByteOffset(len(brk)), End: offset}
	}

	text := snap.TextRange(start, offset)
	last := buffer.Range{Start: start, End: offset}
	state := -1
	pos := start
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		last = buffer.Range{Start: pos, End: pos + buffer.ByteOffset(len(cluster))}
		pos = last.End
	}
	return last
}

// WordAt returns the run of same-class runes containing the offset.
func (u *Unicode) WordAt(snap *buffer.Snapshot, offset buffer.ByteOffset) buffer.Range {
	if snap.IsEmpty() {
		return buffer.Range{}
	}
	if offset >= snap.Len() {
		offset = snap.Len() - 1
	}
	r, _ := snap.RuneAt(offset)
	if r == utf8.RuneError {
		return buffer.Range{Start: offset, End: offset}
	}
	class := classify(r)

	start := offset
	for start > 0 {
		pr, size := snap.RuneBefore(start)
		if size == 0 || classify(pr) != class || pr == '\n' || pr == '\r' {
			break
		}
		start -= buffer.ByteOffset(size)
	}
	end := offset
	for end < snap.Len() {
		nr, size := snap.RuneAt(end)
		if size == 0 || classify(nr) != class || nr == '\n' || nr == '\r' {
			break
		}
		end += buffer.ByteOffset(size)
	}
	return buffer.Range{Start: start, End: end}
}

// NextWord returns the first span of word runes at or after offset.
func (u *Unicode) NextWord(snap *buffer.Snapshot, offset buffer.ByteOffset) (buffer.Range, bool) {
	off := offset
	for off < snap.Len() {
		r, size := snap.RuneAt(off)
		if size == 0 {
			break
		}
		if IsWordRune(r) {
			return u.WordAt(snap, off), true
		}
		off += buffer.ByteOffset(size)
	}
	return buffer.Range{}, false
}

// PrevWordStart returns the start of the word-wise deletion span
// ending at offset: trailing whitespace is consumed together with the
// word before it.
func (u *Unicode) PrevWordStart(snap *buffer.Snapshot, offset buffer.ByteOffset) buffer.ByteOffset {
	off := offset
	// Skip whitespace (but stop after a line break: deleting the break
	// alone joins the lines).
	for off > 0 {
		r, size := snap.RuneBefore(off)
		if size == 0 || !unicode.IsSpace(r) {
			break
		}
		off -= buffer.ByteOffset(size)
		if r == '\n' {
			if off > 0 {
				if pr, ps := snap.RuneBefore(off); pr == '\r' {
					off -= buffer.ByteOffset(ps)
				}
			}
			return off
		}
	}
	if off == 0 {
		return 0
	}
	r, _ := snap.RuneBefore(off)
	class := classify(r)
	for off > 0 {
		pr, size := snap.RuneBefore(off)
		if size == 0 || classify(pr) != class {
			break
		}
		off -= buffer.ByteOffset(size)
	}
	return off
}

// NextWordEnd returns the end of the word-wise deletion span starting
// at offset: a word (or punctuation run) plus any whitespace after it.
func (u *Unicode) NextWordEnd(snap *buffer.Snapshot, offset buffer.ByteOffset) buffer.ByteOffset {
	off := offset
	if off >= snap.Len() {
		return snap.Len()
	}
	r, _ := snap.RuneAt(off)
	if r == '\n' || r == '\r' {
		// Delete just the break.
		if r == '\r' {
			if nr, _ := snap.RuneAt(off + 1); nr == '\n' {
				return off + 2
			}
		}
		return off + 1
	}
	class := classify(r)
	for off < snap.Len() {
		nr, size := snap.RuneAt(off)
		if size == 0 || classify(nr) != class || nr == '\n' || nr == '\r' {
			break
		}
		off += buffer.ByteOffset(size)
	}
	// Absorb trailing spaces and tabs, not the line break.
	for off < snap.Len() {
		nr, size := snap.RuneAt(off)
		if nr != ' ' && nr != '\t' {
			break
		}
		off += buffer.ByteOffset(size)
	}
	return off
}
