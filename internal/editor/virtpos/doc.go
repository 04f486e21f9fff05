// Package virtpos models caret positions that may float past the
// physical end of a line ("virtual space") and the display-column
// arithmetic that connects buffer offsets, tab stops, and multi-column
// glyphs. Virtual space is synthesized into real whitespace only when
// text is actually typed at a virtual position.
package virtpos
