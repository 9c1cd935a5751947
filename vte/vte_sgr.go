package vte

import "github.com/subhav/vte/palette"

// handleSGR applies a CSI...m sequence to v.cattr, then resolves it to
// RGB and refreshes the screen's erase attribute when background-color
// erase is active. Grounded on csi_attribute in tsm-vte.c
// (lines ~1148-1330).
func (v *VTE) handleSGR() {
	if len(v.csiArgs) == 0 {
		v.resetAttr()
	} else {
		i := 0
		for i < len(v.csiArgs) {
			i += v.applySGRCode(v.arg(i, 0), v.csiArgs[i:])
		}
	}

	v.resolveColor(&v.cattr)
	if v.Has(ModeBackgroundColorErase) {
		v.con.SetDefAttr(v.cattr)
	}
}

func (v *VTE) resetAttr() {
	v.cattr = v.defAttr
}

// applySGRCode applies one SGR parameter and returns how many of rest
// (rest[0] is the code itself) it consumed, so extended 38/48 sequences
// can pull in their trailing sub-parameters.
func (v *VTE) applySGRCode(code int, rest []int) int {
	switch {
	case code == 0:
		v.resetAttr()
	case code == 1:
		v.cattr.Bold = true
	case code == 3:
		v.cattr.Italic = true
	case code == 4:
		v.cattr.Underline = true
	case code == 5:
		v.cattr.Blink = true
	case code == 7:
		v.cattr.Inverse = true
	case code == 22:
		v.cattr.Bold = false
	case code == 23:
		v.cattr.Italic = false
	case code == 24:
		v.cattr.Underline = false
	case code == 25:
		v.cattr.Blink = false
	case code == 27:
		v.cattr.Inverse = false
	case code == 39:
		v.cattr.FCCode = int(palette.Foreground)
	case code == 49:
		v.cattr.BCCode = int(palette.Background)
	case code >= 30 && code <= 37:
		v.cattr.FCCode = code - 30
	case code >= 40 && code <= 47:
		v.cattr.BCCode = code - 40
	case code >= 90 && code <= 97:
		v.cattr.FCCode = code - 90 + 8
	case code >= 100 && code <= 107:
		v.cattr.BCCode = code - 100 + 8
	case code == 38:
		return v.applyExtendedColor(rest, true)
	case code == 48:
		return v.applyExtendedColor(rest, false)
	}
	return 1
}

// applyExtendedColor consumes a 38/48 extended-color sub-sequence:
// either ";5;<n>" (256-color) or ";2;<r>;<g>;<b>" (truecolor). rest[0]
// is the 38/48 code itself; the count returned includes it.
func (v *VTE) applyExtendedColor(rest []int, fg bool) int {
	if len(rest) < 2 {
		return len(rest)
	}
	switch rest[1] {
	case 5:
		if len(rest) < 3 {
			return len(rest)
		}
		rgb, code, isCode := palette.Resolve256(rest[2])
		if fg {
			if isCode {
				v.cattr.FCCode = code
			} else {
				v.cattr.FCCode = -1
				v.cattr.FR, v.cattr.FG, v.cattr.FB = rgb.R, rgb.G, rgb.B
			}
		} else {
			if isCode {
				v.cattr.BCCode = code
			} else {
				v.cattr.BCCode = -1
				v.cattr.BR, v.cattr.BG, v.cattr.BB = rgb.R, rgb.G, rgb.B
			}
		}
		return 3
	case 2:
		if len(rest) < 5 {
			return len(rest)
		}
		r, g, b := uint8(rest[2]), uint8(rest[3]), uint8(rest[4])
		if fg {
			v.cattr.FCCode = -1
			v.cattr.FR, v.cattr.FG, v.cattr.FB = r, g, b
		} else {
			v.cattr.BCCode = -1
			v.cattr.BR, v.cattr.BG, v.cattr.BB = r, g, b
		}
		return 5
	default:
		return 2
	}
}
