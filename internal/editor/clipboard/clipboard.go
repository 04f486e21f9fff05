// Package clipboard tags cut/copy payloads with the selection shape
// that produced them, so paste can reconstruct a line or box selection
// instead of a plain stream insert. Actual OS clipboard I/O is
// delegated; its failures degrade to a reported false, never a panic.
package clipboard

// Kind describes the selection shape a payload was produced from.
type Kind uint8

const (
	// KindStream is an ordinary contiguous copy.
	KindStream Kind = iota
	// KindLines marks a whole-line cut/copy made with an empty
	// selection; paste inserts above the caret's line.
	KindLines
	// KindBox marks a rectangular copy; paste re-inserts it as a box.
	KindBox
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLines:
		return "lines"
	case KindBox:
		return "box"
	default:
		return "stream"
	}
}

// Payload is clipboard text plus its shape tag.
type Payload struct {
	Text string
	Kind Kind
}

// Clipboard is the collaborator interface consumed by editing
// operations. Both methods report failure as a boolean; external
// clipboard contention must never crash an operation.
type Clipboard interface {
	Write(p Payload) bool
	Read() (Payload, bool)
}

// Memory is an in-process clipboard for tests and headless use.
type Memory struct {
	payload Payload
	has     bool
}

// NewMemory creates an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// Write stores the payload.
func (m *Memory) Write(p Payload) bool {
	m.payload = p
	m.has = true
	return true
}

// Read returns the stored payload.
func (m *Memory) Read() (Payload, bool) {
	if !m.has {
		return Payload{}, false
	}
	return m.payload, true
}
