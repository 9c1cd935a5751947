// Package utf8 implements a byte-fed UTF-8 decoder state machine.
//
// Two terminal outputs exist: Accept (a complete codepoint is ready) and
// Reject (the byte sequence is malformed; callers substitute U+FFFD and
// reset the machine). Every other internal state means "need more
// bytes." The machine validates sequence length, continuation-byte
// shape, overlong encodings and the UTF-16 surrogate range, same as any
// conformant UTF-8 decoder.
package utf8

// State is the decoder's internal state.
type State uint8

const (
	Accept State = iota
	Reject
	need1 // one continuation byte remains
	need2 // two continuation bytes remain
	need3 // three continuation bytes remain
)

// Machine is a byte-fed UTF-8 decoder. Its zero value is usable.
type Machine struct {
	state State
	cp    rune
	// lower/upper bound the first continuation byte, to reject
	// overlong encodings and the surrogate range (E0/ED special cases).
	lo, hi byte
}

// Reset returns the machine to its initial state, discarding any
// partially-decoded codepoint.
func (m *Machine) Reset() {
	*m = Machine{}
}

// Feed advances the machine by one byte, returning the state reached.
// When the returned state is Accept, cp holds the decoded codepoint.
func (m *Machine) Feed(b byte) (state State, cp rune) {
	switch m.state {
	case Accept, Reject:
		return m.start(b)
	default:
		return m.cont(b)
	}
}

func (m *Machine) start(b byte) (State, rune) {
	switch {
	case b < 0x80:
		m.state = Accept
		m.cp = rune(b)
	case b >= 0xc2 && b <= 0xdf:
		m.state = need1
		m.cp = rune(b & 0x1f)
		m.lo, m.hi = 0x80, 0xbf
	case b == 0xe0:
		m.state = need2
		m.cp = rune(b & 0x0f)
		m.lo, m.hi = 0xa0, 0xbf // excludes overlong
	case b == 0xed:
		m.state = need2
		m.cp = rune(b & 0x0f)
		m.lo, m.hi = 0x80, 0x9f // excludes surrogate range
	case (b >= 0xe1 && b <= 0xec) || b == 0xee || b == 0xef:
		m.state = need2
		m.cp = rune(b & 0x0f)
		m.lo, m.hi = 0x80, 0xbf
	case b == 0xf0:
		m.state = need3
		m.cp = rune(b & 0x07)
		m.lo, m.hi = 0x90, 0xbf // excludes overlong
	case b >= 0xf1 && b <= 0xf3:
		m.state = need3
		m.cp = rune(b & 0x07)
		m.lo, m.hi = 0x80, 0xbf
	case b == 0xf4:
		m.state = need3
		m.cp = rune(b & 0x07)
		m.lo, m.hi = 0x80, 0x8f // excludes codepoints above U+10FFFF
	default:
		m.state = Reject
	}
	return m.state, m.cp
}

func (m *Machine) cont(b byte) (State, rune) {
	if b < m.lo || b > m.hi {
		m.state = Reject
		return m.state, m.cp
	}
	// only the first continuation byte is bounds-checked by lo/hi;
	// subsequent ones follow the generic 0x80-0xbf rule.
	m.lo, m.hi = 0x80, 0xbf

	m.cp = (m.cp << 6) | rune(b&0x3f)
	switch m.state {
	case need3:
		m.state = need2
	case need2:
		m.state = need1
	case need1:
		m.state = Accept
	}
	return m.state, m.cp
}

// Get decodes a single byte in the context of the 7-bit/8-bit mode
// flags described in spec §4.1: when utf8Mode is false the byte is
// masked (7-bit: &0x7f, 8-bit: passed through) and handed straight back
// as a codepoint without touching the decoder state. ok is false only
// while a UTF-8 sequence is still awaiting continuation bytes.
func Get(m *Machine, b byte, utf8Mode bool, eightBit bool) (cp rune, ok bool) {
	if !utf8Mode {
		if eightBit {
			return rune(b), true
		}
		return rune(b & 0x7f), true
	}

	state, got := m.Feed(b)
	switch state {
	case Accept:
		return got, true
	case Reject:
		m.Reset()
		return 0xfffd, true
	default:
		return 0, false
	}
}
