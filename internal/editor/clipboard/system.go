package clipboard

import (
	sysclip "github.com/atotto/clipboard"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// System bridges to the OS clipboard. The OS clipboard carries only
// plain text, so the shape tag is kept as a JSON note beside the text
// we last wrote; on read the note is honored only while the system
// text still matches it. Text written by other applications therefore
// always reads back as a plain stream payload.
type System struct {
	note string
}

// NewSystem creates a system clipboard adapter.
func NewSystem() *System {
	return &System{}
}

// Write puts the payload text on the OS clipboard and remembers its
// shape. Returns false if the OS clipboard is unavailable.
func (s *System) Write(p Payload) bool {
	if err := sysclip.WriteAll(p.Text); err != nil {
		return false
	}
	note, err := sjson.Set("", "text", p.Text)
	if err == nil {
		note, err = sjson.Set(note, "kind", p.Kind.String())
	}
	if err != nil {
		s.note = ""
		return true
	}
	s.note = note
	return true
}

// Read fetches the OS clipboard text and reattaches the shape tag if
// the text is still the one this adapter wrote.
func (s *System) Read() (Payload, bool) {
	text, err := sysclip.ReadAll()
	if err != nil {
		return Payload{}, false
	}
	p := Payload{Text: text, Kind: KindStream}
	if s.note != "" && gjson.Get(s.note, "text").String() == text {
		switch gjson.Get(s.note, "kind").String() {
		case "lines":
			p.Kind = KindLines
		case "box":
			p.Kind = KindBox
		}
	}
	return p, true
}
