package vte

import "github.com/subhav/vte/screen"

// setModes applies CSI h (on) / CSI l (off) to the ANSI modes (no
// leading '?') or the DEC private modes (leading '?', csiWhat set),
// over every argument present. Grounded on csi_mode in tsm-vte.c
// (lines ~1372-1620).
func (v *VTE) setModes(on bool) {
	for i := range v.csiArgs {
		n := v.arg(i, -1)
		if n < 0 {
			continue
		}
		if v.csiFlags&csiWhat != 0 {
			v.setPrivateMode(n, on)
		} else {
			v.setANSIMode(n, on)
		}
	}
}

func (v *VTE) setANSIMode(n int, on bool) {
	switch n {
	case 2: // KAM
		v.setMode(ModeKeyboardAction, on)
	case 4: // IRM
		v.setMode(ModeInsertReplace, on)
		v.con.ResetFlags(screen.InsertMode)
		if on {
			v.con.SetFlags(screen.InsertMode)
		}
	case 12: // SRM
		v.setMode(ModeSendReceive, on)
	case 20: // LNM
		v.setMode(ModeLineFeedNewLine, on)
	}
}

func (v *VTE) setPrivateMode(n int, on bool) {
	switch n {
	case 1: // DECCKM
		v.setMode(ModeCursorKey, on)
	case 2, 3, 4: // DECANM, DECCOLM, DECSCLM: not applicable (no VT52,
		// no dynamic resize, no smooth scroll over a scrollback buffer)
	case 5: // DECSCNM
		v.setMode(ModeInverseScreen, on)
		v.con.ResetFlags(screen.Inverse)
		if on {
			v.con.SetFlags(screen.Inverse)
		}
	case 6: // DECOM
		v.setMode(ModeOrigin, on)
		v.con.ResetFlags(screen.RelOrigin)
		if on {
			v.con.SetFlags(screen.RelOrigin)
		}
	case 7: // DECAWM
		v.setMode(ModeAutoWrap, on)
		v.con.ResetFlags(screen.AutoWrap)
		if on {
			v.con.SetFlags(screen.AutoWrap)
		}
	case 8: // DECARM
		v.setMode(ModeAutoRepeat, on)
	case 12: // blinking cursor: no distinct cursor-blink flag to toggle
	case 18, 19: // DECPFF, DECPEX: printer modes, not applicable
	case 25: // DECTCEM
		v.setMode(ModeTextCursor, on)
		v.con.ResetFlags(screen.HideCursor)
		if !on {
			v.con.SetFlags(screen.HideCursor)
		}
	case 42: // DECNRCM
		v.setMode(ModeNationalCharset, on)
	case 47, 1047, 1048, 1049:
		v.setAlternateScreen(n, on)
	}
}

// setAlternateScreen implements the 47/1047/1048/1049 family, all
// suppressed when ModeTiteInhibit is set. Grounded verbatim on the
// set/reset branches of csi_mode's DEC-private-mode switch in
// tsm-vte.c (cases 47/1047/1048/1049):
//   - 47 is a plain flag toggle, never erases.
//   - 1047 set just toggles the flag; reset erases the (still current,
//     alternate) screen *before* switching back to the primary buffer.
//   - 1048 only saves/restores the cursor position, independent of
//     which buffer is active.
//   - 1049 set saves the cursor, switches to the alternate buffer, then
//     erases it; reset switches back to the primary buffer first and
//     only then restores the saved cursor position. It never erases on
//     the way out.
func (v *VTE) setAlternateScreen(n int, on bool) {
	if v.Has(ModeTiteInhibit) {
		return
	}

	switch n {
	case 47:
		v.toggleAlternate(on)
	case 1047:
		if on {
			v.toggleAlternate(true)
		} else {
			v.con.EraseScreen(false)
			v.toggleAlternate(false)
		}
	case 1048:
		v.altCursorSave(on)
	case 1049:
		if on {
			v.altCursorSave(true)
			v.toggleAlternate(true)
			v.con.EraseScreen(false)
		} else {
			v.toggleAlternate(false)
			v.altCursorSave(false)
		}
	}
}

func (v *VTE) toggleAlternate(on bool) {
	if on {
		v.con.SetFlags(screen.Alternate)
	} else {
		v.con.ResetFlags(screen.Alternate)
	}
	if v.altScreenFn != nil {
		v.altScreenFn(on)
	}
}

func (v *VTE) altCursorSave(save bool) {
	if save {
		v.altCursorX = v.con.CursorX()
		v.altCursorY = v.con.CursorY()
		return
	}
	v.con.MoveTo(v.altCursorX, v.altCursorY)
}
