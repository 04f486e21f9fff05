package virtpos

import (
	"fmt"

	"github.com/dshills/editkit/internal/editor/buffer"
)

// VirtualPosition is a caret position that may extend past the
// physical end of a line. Spaces counts virtual columns beyond the
// buffer offset; the invariant is that Spaces > 0 only when Offset
// sits at the true end of its line.
type VirtualPosition struct {
	Offset buffer.ByteOffset
	Spaces int
}

// New creates a real (non-virtual) position.
func New(offset buffer.ByteOffset) VirtualPosition {
	return VirtualPosition{Offset: offset}
}

// NewVirtual creates a position with virtual spaces past end-of-line.
func NewVirtual(offset buffer.ByteOffset, spaces int) VirtualPosition {
	if spaces < 0 {
		spaces = 0
	}
	return VirtualPosition{Offset: offset, Spaces: spaces}
}

// IsReal returns true if the position has no virtual spaces.
func (v VirtualPosition) IsReal() bool {
	return v.Spaces == 0
}

// IsValid reports whether the position upholds the virtual-space
// invariant against the given snapshot: offset in range, and virtual
// spaces only at a physical end of line.
func (v VirtualPosition) IsValid(snap *buffer.Snapshot) bool {
	if v.Offset < 0 || v.Offset > snap.Len() || v.Spaces < 0 {
		return false
	}
	return v.Spaces == 0 || snap.IsAtLineEnd(v.Offset)
}

// Compare orders positions by buffer offset, breaking ties by virtual
// space count.
func (v VirtualPosition) Compare(other VirtualPosition) int {
	if v.Offset != other.Offset {
		if v.Offset < other.Offset {
			return -1
		}
		return 1
	}
	if v.Spaces != other.Spaces {
		if v.Spaces < other.Spaces {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if v comes before other.
func (v VirtualPosition) Before(other VirtualPosition) bool {
	return v.Compare(other) < 0
}

// Equals returns true if the positions are identical.
func (v VirtualPosition) Equals(other VirtualPosition) bool {
	return v == other
}

// String returns a human-readable representation of the position.
func (v VirtualPosition) String() string {
	if v.Spaces == 0 {
		return fmt.Sprintf("@%d", v.Offset)
	}
	return fmt.Sprintf("@%d+%dv", v.Offset, v.Spaces)
}

// Min returns the earlier of two positions.
func Min(a, b VirtualPosition) VirtualPosition {
	if a.Before(b) {
		return a
	}
	return b
}

// Max returns the later of two positions.
func Max(a, b VirtualPosition) VirtualPosition {
	if a.Before(b) {
		return b
	}
	return a
}
