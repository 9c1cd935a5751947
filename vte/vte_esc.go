package vte

import "github.com/subhav/vte/charset"

// escDispatch handles an ESC_DISPATCH action: final is the byte that
// completed the sequence, with any collected intermediates recorded in
// v.csiFlags/v.intermediates. Grounded on set_charset/do_esc in
// tsm-vte.c (lines ~896-1010).
func (v *VTE) escDispatch(final byte) {
	if v.csiFlags&(csiPopen|csiPclose|csiMult|csiPlus) != 0 {
		v.setCharset(final)
		return
	}

	if v.csiFlags&csiSpace != 0 {
		switch final {
		case 'F': // S7C1T
			v.setMode(ModeUseC1, false)
		case 'G': // S8C1T
			v.setMode(ModeUseC1, true)
		}
		return
	}

	if v.csiFlags != 0 {
		// Unknown combination of intermediates; ignore, matching the
		// original's silent drop for unrecognized ESC sequences.
		return
	}

	switch final {
	case 'D': // IND
		v.con.MoveDown(1, true)
	case 'E': // NEL
		v.con.Newline()
	case 'H': // HTS
		v.con.SetTabstop()
	case 'M': // RI
		v.con.MoveUp(1, true)
	case 'N': // SS2
		s := g2
		v.glt = &s
	case 'O': // SS3
		s := g3
		v.glt = &s
	case 'Z': // DECID
		v.sendPrimaryDA()
	case '~': // LS1R
		v.gr = g1
	case 'n': // LS2
		v.gl = g2
	case '}': // LS2R
		v.gr = g2
	case 'o': // LS3
		v.gl = g3
	case '|': // LS3R
		v.gr = g3
	case '=': // DECKPAM
		v.mode |= ModeKeypadApplication
	case '>': // DECKPNM
		v.mode &^= ModeKeypadApplication
	case 'c': // RIS
		v.HardReset()
	case '7': // DECSC
		v.saveCursor()
	case '8': // DECRC
		v.restoreCursor()
	default:
		v.log.Debug().Str("final", string(final)).Msg("unhandled esc sequence")
	}
}

// setCharset designates a character set into G0-G3 per which open/close
// intermediate was collected, matching set_charset. Non-recognized
// final bytes (most national-variant designators) fall back to
// UnicodeUpper, matching the original's placeholder handling — it never
// builds the real national tables either.
func (v *VTE) setCharset(final byte) {
	name := charsetName(final)

	switch {
	case v.csiFlags&csiPopen != 0:
		v.g[g0] = charset.Lookup(name)
	case v.csiFlags&csiPclose != 0:
		v.g[g1] = charset.Lookup(name)
	case v.csiFlags&csiMult != 0:
		v.g[g2] = charset.Lookup(name)
	case v.csiFlags&csiPlus != 0:
		v.g[g3] = charset.Lookup(name)
	}
}

func charsetName(final byte) charset.Name {
	switch final {
	case 'B':
		return charset.UnicodeLower
	case '<':
		return charset.DECSupplementalGraphics
	case '0':
		return charset.DECSpecialGraphics
	case 'A', '4', 'C', '5', 'R', 'Q', 'K', 'Y', 'E', '6', 'Z', 'H', '7', '=':
		return charset.UnicodeUpper
	default:
		return charset.UnicodeUpper
	}
}
