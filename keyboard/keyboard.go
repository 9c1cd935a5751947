// Package keyboard encodes keyboard events into the outbound escape-byte
// sequences a VT500-class terminal sends to its connected process.
//
// Grounded on tsm_vte_handle_keyboard in
// _examples/original_source/src/tsm/tsm-vte.c (lines 2482-3059): the
// Ctrl-cluster table, the DECCKM-dependent arrow/Home/End encodings,
// the keypad-application-mode numeric pad, and the F1-F20 table
// (Shift+F1..F10 send the F11..F20 codes; Shift+F11..F20 append ";2").
// The one-shot Alt/PREPEND_ESCAPE flag lives on the VTE mode word per
// spec §4.11, so Encode ignores the Alt modifier and leaves the ESC
// prefix to the caller rather than holding mutable mode state itself.
package keyboard

// Mod is a bitmask of held modifier keys.
type Mod uint8

const (
	Shift Mod = 1 << iota
	Control
	Alt
)

// Key names one non-printing key. Printing keys are carried via the
// Event.Unicode/ASCII fields instead.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyBackspace
	KeyTab
	KeyLinefeed
	KeyReturn
	KeyEscape
	KeyKPEnter
	KeyKPSpace
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPAdd
	KeyKPSubtract
	KeyKPMultiply
	KeyKPDivide
	KeyKPSeparator
	KeyKPDecimal
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
)

// Event describes one key press handed to Encode. ASCII carries the
// ASCII-layout keysym used for Ctrl-shortcut matching regardless of the
// active keyboard layout (xterm-compatible Ctrl+C behavior); Unicode
// carries the decoded printable character, 0 if the key has none.
type Event struct {
	Key     Key
	ASCII   rune
	Unicode rune
	Mods    Mod
}

// Encoder turns Events into outbound bytes according to the VTE's
// current cursor-key and keypad modes.
type Encoder struct {
	CursorKeyMode         bool // DECCKM
	KeypadApplicationMode bool // DECKPAM
	SevenBit              bool
	EightBit              bool
}

var ctrlLetter = map[rune]byte{
	'a': 1, 'A': 1, 'b': 2, 'B': 2, 'c': 3, 'C': 3, 'd': 4, 'D': 4,
	'e': 5, 'E': 5, 'f': 6, 'F': 6, 'g': 7, 'G': 7, 'h': 8, 'H': 8,
	'i': 9, 'I': 9, 'j': 10, 'J': 10, 'k': 11, 'K': 11, 'l': 12, 'L': 12,
	'm': 13, 'M': 13, 'n': 14, 'N': 14, 'o': 15, 'O': 15, 'p': 16, 'P': 16,
	'q': 17, 'Q': 17, 'r': 18, 'R': 18, 's': 19, 'S': 19, 't': 20, 'T': 20,
	'u': 21, 'U': 21, 'v': 22, 'V': 22, 'w': 23, 'W': 23, 'x': 24, 'X': 24,
	'y': 25, 'Y': 25, 'z': 26, 'Z': 26,
	'2': 0, ' ': 0,
	'^': 30, '_': 31,

	// Ctrl+digit and the shifted-bracket/backslash/grave/slash aliases a
	// US keyboard reaches for instead of the control key itself.
	'3': 27, '[': 27, '{': 27,
	'4': 28, '\\': 28, '|': 28,
	'5': 29, ']': 29, '}': 29,
	'6': 30, '`': 30, '~': 30,
	'7': 31, '/': 31, '?': 31,
	'8': 0x7f,
}

// Encode returns the outbound bytes for ev. The caller (the VTE's mode
// word owns PREPEND_ESCAPE) is responsible for prepending ESC when the
// Alt modifier is held; Encode only renders the key itself.
func (e *Encoder) Encode(ev Event) (out []byte, ok bool) {
	if ev.Mods&Control != 0 {
		sym := ev.ASCII
		if sym == 0 {
			sym = ev.Unicode
		}
		if b, isCtrl := ctrlLetter[sym]; isCtrl {
			return []byte{b}, true
		}
	}

	if b, ok := e.encodeKey(ev); ok {
		return b, true
	}

	if ev.Unicode != 0 {
		return e.encodeUnicode(ev.Unicode)
	}
	return nil, false
}

func (e *Encoder) encodeUnicode(r rune) ([]byte, bool) {
	switch {
	case e.SevenBit:
		if r > 0x7f {
			return []byte{'?'}, true
		}
		return []byte{byte(r)}, true
	case e.EightBit:
		if r > 0xff {
			return []byte{'?'}, true
		}
		return []byte{byte(r)}, true
	default:
		return []byte(string(r)), true
	}
}

func (e *Encoder) kpOr(appSeq string, plain byte) []byte {
	if e.KeypadApplicationMode {
		return append([]byte{0x1b}, appSeq...)
	}
	return []byte{plain}
}

func (e *Encoder) cursorSeq(ctrl bool, ctrlFinal, appFinal, plainFinal byte) []byte {
	switch {
	case ctrl:
		return []byte{0x1b, '[', '1', ';', '5', ctrlFinal}
	case e.CursorKeyMode:
		return []byte{0x1b, 'O', appFinal}
	default:
		return []byte{0x1b, '[', plainFinal}
	}
}

func (e *Encoder) encodeKey(ev Event) ([]byte, bool) {
	ctrl := ev.Mods&Control != 0
	shift := ev.Mods&Shift != 0

	switch ev.Key {
	case KeyBackspace:
		return []byte{0x7f}, true
	case KeyTab:
		return []byte{0x09}, true
	case KeyLinefeed:
		return []byte{0x0a}, true
	case KeyReturn:
		return []byte{0x0d}, true
	case KeyEscape:
		return []byte{0x1b}, true
	case KeyKPEnter:
		if e.KeypadApplicationMode {
			return []byte{0x1b, 'O', 'M'}, true
		}
		return []byte{0x0d, 0x0a}, true
	case KeyInsert:
		return []byte{0x1b, '[', '2', '~'}, true
	case KeyDelete:
		return []byte{0x1b, '[', '3', '~'}, true
	case KeyPageUp:
		return []byte{0x1b, '[', '5', '~'}, true
	case KeyPageDown:
		return []byte{0x1b, '[', '6', '~'}, true
	case KeyUp:
		return e.cursorSeq(ctrl, 'A', 'A', 'A'), true
	case KeyDown:
		return e.cursorSeq(ctrl, 'B', 'B', 'B'), true
	case KeyRight:
		return e.cursorSeq(ctrl, 'C', 'C', 'C'), true
	case KeyLeft:
		return e.cursorSeq(ctrl, 'D', 'D', 'D'), true
	case KeyHome:
		switch {
		case ctrl:
			return []byte{0x1b, '[', '1', ';', '5', 'H'}, true
		case e.CursorKeyMode:
			return []byte{0x1b, 'O', 'H'}, true
		default:
			return []byte{0x1b, '[', 'H'}, true
		}
	case KeyEnd:
		switch {
		case ctrl:
			return []byte{0x1b, '[', '1', ';', '5', 'F'}, true
		case e.CursorKeyMode:
			return []byte{0x1b, 'O', 'F'}, true
		default:
			return []byte{0x1b, '[', 'F'}, true
		}
	case KeyKPSpace:
		return []byte{' '}, true
	case KeyKP0:
		return e.kpOr("Op", '0'), true
	case KeyKP1:
		return e.kpOr("Oq", '1'), true
	case KeyKP2:
		return e.kpOr("Or", '2'), true
	case KeyKP3:
		return e.kpOr("Os", '3'), true
	case KeyKP4:
		return e.kpOr("Ot", '4'), true
	case KeyKP5:
		return e.kpOr("Ou", '5'), true
	case KeyKP6:
		return e.kpOr("Ov", '6'), true
	case KeyKP7:
		return e.kpOr("Ow", '7'), true
	case KeyKP8:
		return e.kpOr("Ox", '8'), true
	case KeyKP9:
		return e.kpOr("Oy", '9'), true
	case KeyKPSubtract:
		return e.kpOr("Om", '-'), true
	case KeyKPSeparator:
		return e.kpOr("Ol", ','), true
	case KeyKPDecimal:
		return e.kpOr("On", '.'), true
	case KeyKPDivide:
		return e.kpOr("Oj", '/'), true
	case KeyKPMultiply:
		return e.kpOr("Oo", '*'), true
	case KeyKPAdd:
		return e.kpOr("Ok", '+'), true
	case KeyF1:
		if shift {
			return []byte{0x1b, '[', '2', '3', '~'}, true
		}
		return []byte{0x1b, 'O', 'P'}, true
	case KeyF2:
		if shift {
			return []byte{0x1b, '[', '2', '4', '~'}, true
		}
		return []byte{0x1b, 'O', 'Q'}, true
	case KeyF3:
		if shift {
			return []byte{0x1b, '[', '2', '5', '~'}, true
		}
		return []byte{0x1b, 'O', 'R'}, true
	case KeyF4:
		if shift {
			return []byte{0x1b, '[', '2', '6', '~'}, true
		}
		return []byte{0x1b, 'O', 'S'}, true
	case KeyF5:
		return f(shift, "28", "15"), true
	case KeyF6:
		return f(shift, "29", "17"), true
	case KeyF7:
		return f(shift, "31", "18"), true
	case KeyF8:
		return f(shift, "32", "19"), true
	case KeyF9:
		return f(shift, "33", "20"), true
	case KeyF10:
		return f(shift, "34", "21"), true
	case KeyF11:
		return fShiftSuffix(shift, "23"), true
	case KeyF12:
		return fShiftSuffix(shift, "24"), true
	case KeyF13:
		return fShiftSuffix(shift, "25"), true
	case KeyF14:
		return fShiftSuffix(shift, "26"), true
	case KeyF15:
		return fShiftSuffix(shift, "28"), true
	case KeyF16:
		return fShiftSuffix(shift, "29"), true
	case KeyF17:
		return fShiftSuffix(shift, "31"), true
	case KeyF18:
		return fShiftSuffix(shift, "32"), true
	case KeyF19:
		return fShiftSuffix(shift, "33"), true
	case KeyF20:
		return fShiftSuffix(shift, "34"), true
	default:
		return nil, false
	}
}

// f renders the F5-F10 family: plain sends "ESC [ <plain> ~", Shift
// substitutes a distinct code rather than appending ";2", matching
// tsm_vte_handle_keyboard's F5-F10 cases.
func f(shift bool, shiftCode, plainCode string) []byte {
	code := plainCode
	if shift {
		code = shiftCode
	}
	out := append([]byte{0x1b, '['}, code...)
	return append(out, '~')
}

// fShiftSuffix renders the F11-F20 family: Shift appends ";2" ahead of
// the final '~', matching tsm_vte_handle_keyboard's F11-F20 cases.
func fShiftSuffix(shift bool, code string) []byte {
	out := append([]byte{0x1b, '['}, code...)
	if shift {
		out = append(out, ';', '2')
	}
	return append(out, '~')
}
