package utf8

import "testing"

func decodeAll(t *testing.T, in []byte) []rune {
	t.Helper()
	var m Machine
	var out []rune
	for _, b := range in {
		state, cp := m.Feed(b)
		switch state {
		case Accept:
			out = append(out, cp)
		case Reject:
			out = append(out, 0xfffd)
			m.Reset()
		}
	}
	return out
}

func TestFeed(t *testing.T) {
	tt := []struct {
		name string
		in   []byte
		want []rune
	}{
		{"ascii", []byte("Hi!"), []rune{'H', 'i', '!'}},
		{"two-byte", []byte("caf\xc3\xa9"), []rune{'c', 'a', 'f', 0xe9}},
		{"three-byte euro", []byte("\xe2\x82\xac"), []rune{0x20ac}},
		{"four-byte emoji", []byte("\xf0\x9f\x98\x80"), []rune{0x1f600}},
		{"lone continuation byte", []byte{0x80}, []rune{0xfffd}},
		{"overlong two-byte rejected", []byte{0xc0, 0x80}, []rune{0xfffd, 0xfffd}},
		{"surrogate range rejected", []byte{0xed, 0xa0}, []rune{0xfffd}},
		{"truncated sequence rejects on the bad byte", []byte{0xe2, 0x82, 'x'}, []rune{0xfffd}},
	}
	for _, c := range tt {
		t.Run(c.name, func(t *testing.T) {
			got := decodeAll(t, c.in)
			if len(got) != len(c.want) {
				t.Fatalf("got %x, want %x", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("rune %d: got %x, want %x", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestGetModes(t *testing.T) {
	var m Machine

	if cp, ok := Get(&m, 0xe9, false, false); !ok || cp != (0xe9&0x7f) {
		t.Errorf("7-bit mode: got %x, ok=%v", cp, ok)
	}
	if cp, ok := Get(&m, 0xe9, false, true); !ok || cp != 0xe9 {
		t.Errorf("8-bit mode: got %x, ok=%v", cp, ok)
	}

	m.Reset()
	if _, ok := Get(&m, 0xc3, true, false); ok {
		t.Errorf("utf8 mode: expected first byte of a 2-byte sequence to need more input")
	}
	if cp, ok := Get(&m, 0xa9, true, false); !ok || cp != 0xe9 {
		t.Errorf("utf8 mode: got %x, ok=%v, want e9", cp, ok)
	}
}
