package vte

import "strconv"

// csiDispatch handles a CSI_DISPATCH action: final is the final byte
// that completed the sequence. Grounded on do_csi in tsm-vte.c
// (lines ~1660-1900).
func (v *VTE) csiDispatch(final byte) {
	switch final {
	case 'A': // CUU
		v.con.MoveUp(v.posArg(0), false)
	case 'B', 'e': // CUD, VPR
		v.con.MoveDown(v.posArg(0), false)
	case 'C': // CUF
		v.con.MoveRight(v.posArg(0))
	case 'D': // CUB
		v.con.MoveLeft(v.posArg(0))
	case 'd': // VPA
		v.con.MoveTo(v.con.CursorX(), v.arg(0, 1)-1)
	case 'H', 'f': // CUP, HVP
		row := v.arg(0, 1)
		col := v.arg(1, 1)
		v.con.MoveTo(col-1, row-1)
	case 'G': // CHA
		v.con.MoveTo(v.arg(0, 1)-1, v.con.CursorY())
	case 'J': // ED
		v.eraseDisplay(v.arg(0, 0))
	case 'K': // EL
		v.eraseLine(v.arg(0, 0))
	case 'X': // ECH
		v.con.EraseChars(v.posArg(0))
	case 'm': // SGR
		if v.csiFlags&csiGT == 0 {
			v.handleSGR()
		}
	case 'p':
		v.csiP()
	case 'h': // SM/DECSET
		v.setModes(true)
	case 'l': // RM/DECRST
		v.setModes(false)
	case 'r': // DECSTBM
		v.con.SetMargins(v.arg(0, 0), v.arg(1, 0))
	case 'c': // DA
		v.csiDevAttr()
	case 'L': // IL
		v.con.InsertLines(v.posArg(0))
	case 'M': // DL
		v.con.DeleteLines(v.posArg(0))
	case 'g': // TBC
		switch v.arg(0, 0) {
		case 3:
			v.con.ResetAllTabstops()
		default:
			v.con.ResetTabstop()
		}
	case '@': // ICH
		v.con.InsertChars(v.posArg(0))
	case 'P': // DCH
		v.con.DeleteChars(v.posArg(0))
	case 'Z': // CBT
		v.con.TabLeft(v.posArg(0))
	case 'I': // CHT
		v.con.TabRight(v.posArg(0))
	case 'n': // DSR
		v.csiDSR()
	case 'S': // SU
		v.con.ScrollUp(v.posArg(0))
	case 'T': // SD
		v.con.ScrollDown(v.posArg(0))
	default:
		v.log.Debug().Str("final", string(final)).Msg("unhandled csi sequence")
	}
}

// posArg returns the i-th CSI argument defaulting to 1, clamped to at
// least 1, matching the CUU/CUD/.../IL/DL-family convention that a
// zero or absent count still moves by one.
func (v *VTE) posArg(i int) int {
	n := v.arg(i, 1)
	if n <= 0 {
		return 1
	}
	return n
}

func (v *VTE) eraseDisplay(mode int) {
	protect := v.csiFlags&csiWhat != 0
	switch mode {
	case 1:
		v.con.EraseScreenToCursor(protect)
	case 2:
		v.con.EraseScreen(protect)
	default:
		v.con.EraseCursorToScreen(protect)
	}
}

func (v *VTE) eraseLine(mode int) {
	protect := v.csiFlags&csiWhat != 0
	switch mode {
	case 1:
		v.con.EraseHomeToCursor(protect)
	case 2:
		v.con.EraseCurrentLine(protect)
	default:
		v.con.EraseCursorToEnd(protect)
	}
}

// csiP handles the several sequences ending in 'p': DECSTR (soft reset)
// under '!', DECRQM under '$' (ignored when it's a private-mode query),
// the X11-visual-cursor report (approximated as a soft reset) under
// '>', and DECSCL (compat mode) otherwise.
func (v *VTE) csiP() {
	switch {
	case v.csiFlags&csiGT != 0:
		v.Reset()
	case v.csiFlags&csiBang != 0:
		v.Reset()
	case v.csiFlags&csiCash != 0:
		if v.csiFlags&csiWhat == 0 {
			v.Reset()
		}
	default:
		v.compatMode()
	}
}

// compatMode implements DECSCL: a soft reset followed by selecting the
// operating level and, for 8-bit levels with the right sub-parameter,
// enabling C1 control codes. Grounded on csi_compat_mode.
func (v *VTE) compatMode() {
	v.Reset()
	switch v.arg(0, 61) {
	case 61:
		v.mode |= Mode7Bit
		v.mode &^= Mode8Bit
	case 62, 63, 64:
		v.mode |= Mode8Bit
		v.mode &^= Mode7Bit
		if a := v.arg(1, 0); a == 1 || a == 2 {
			v.mode |= ModeUseC1
		}
	}
}

// csiDevAttr implements csi_dev_attr: it only answers when at most one
// parameter was given and that parameter is absent or explicitly 0 or
// less, matching `csi_argc<=1 && csi_argv[0]<=0` — so both a bare
// "CSI c" and an explicit "CSI 0 c" reply, but "CSI 1 c" does not.
func (v *VTE) csiDevAttr() {
	if len(v.csiArgs) > 1 || v.arg(0, 0) > 0 {
		v.log.Debug().Msg("unhandled DA")
		return
	}
	switch {
	case v.csiFlags == 0:
		v.sendPrimaryDA()
	case v.csiFlags&csiGT != 0:
		v.write(false, []byte("\x1b[>1;1;0c"))
	}
}

func (v *VTE) csiDSR() {
	switch v.arg(0, 0) {
	case 5:
		v.write(false, []byte("\x1b[0n"))
	case 6:
		row := v.con.CursorY() + 1
		col := v.con.CursorX() + 1
		s := "\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "R"
		if len(s) > 64 {
			s = "\x1b[0;0R"
		}
		v.write(false, []byte(s))
	}
}
