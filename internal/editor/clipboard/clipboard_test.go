package clipboard

import "testing"

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	if _, ok := m.Read(); ok {
		t.Error("empty clipboard should report false")
	}

	if !m.Write(Payload{Text: "a\nb", Kind: KindBox}) {
		t.Fatal("write failed")
	}
	p, ok := m.Read()
	if !ok || p.Text != "a\nb" || p.Kind != KindBox {
		t.Errorf("got %+v ok=%v", p, ok)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindStream, "stream"},
		{KindLines, "lines"},
		{KindBox, "box"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
