// Package vte wires together the parser, utf8 decoder, charset tables,
// palette and screen packages into one addressable terminal emulator
// instance, matching the struct tsm_vte lifecycle in
// _examples/original_source/src/tsm/tsm-vte.c: construction binds a
// screen, runs a soft reset and an initial erase; Reset/HardReset mirror
// tsm_vte_reset/tsm_vte_hard_reset; Input/Write mirror
// tsm_vte_input/vte_write_debug including the local-echo re-entry guard;
// HandleKey mirrors tsm_vte_handle_keyboard.
//
// The functional-options constructor (Option func(*VTE)) generalizes
// terminal.RichTextTerminalOption (subhav-terminal_parser,
// terminal/terminal.go) to this package's larger configuration surface.
package vte

import (
	"github.com/rs/zerolog"

	"github.com/subhav/vte/ascii"
	"github.com/subhav/vte/charset"
	"github.com/subhav/vte/keyboard"
	"github.com/subhav/vte/palette"
	"github.com/subhav/vte/parser"
	"github.com/subhav/vte/screen"
	"github.com/subhav/vte/utf8"
)

// Mode is the VTE's flag word. Bit meanings and the public control
// sequences that toggle them are listed next to each constant.
type Mode uint32

const (
	ModeKeyboardAction       Mode = 1 << iota // KAM, CSI 2 h/l
	ModeInsertReplace                         // IRM, CSI 4 h/l
	ModeSendReceive                           // SRM, CSI 12 h/l; unset means local echo
	ModeLineFeedNewLine                       // LNM, CSI 20 h/l
	ModeCursorKey                             // DECCKM, CSI ?1 h/l
	ModeKeypadApplication                     // DECKPAM (ESC =) / DECKPNM (ESC >)
	ModeInverseScreen                         // DECSCNM, CSI ?5 h/l
	ModeOrigin                                // DECOM, CSI ?6 h/l
	ModeAutoWrap                              // DECAWM, CSI ?7 h/l
	ModeAutoRepeat                             // DECARM, CSI ?8 h/l
	ModeTextCursor                            // DECTCEM, CSI ?25 h/l
	ModeNationalCharset                       // DECNRCM, CSI ?42 h/l
	ModeBackgroundColorErase                  // BCE
	ModePrependEscape                         // one-shot Alt-sends-ESC
	ModeTiteInhibit                           // suppresses ?47/?1047/?1048/?1049
	Mode7Bit
	Mode8Bit
	ModeUseC1
)

// Has reports whether every bit in m is set in the VTE's mode word.
func (v *VTE) Has(m Mode) bool { return v.mode&m == m }

func (v *VTE) setMode(m Mode, on bool) {
	if on {
		v.mode |= m
	} else {
		v.mode &^= m
	}
}

// gset indexes one of the four G0-G3 character-set slots.
type gset int

const (
	g0 gset = iota
	g1
	g2
	g3
)

type savedState struct {
	cursorX, cursorY int
	origin, wrap     bool
	gl, gr           gset
	cattr            screen.Attr
}

// csiFlag records which intermediate bytes were collected in the
// current CSI/ESC sequence, per the CSI_* bitmask in tsm-vte.c's
// do_collect.
type csiFlag uint16

const (
	csiBang csiFlag = 1 << iota
	csiCash
	csiWhat
	csiGT
	csiSpace
	csiSquote
	csiDquote
	csiMult
	csiPlus
	csiPopen
	csiPclose
)

// VTE is one Virtual Terminal Emulator instance bound to a Screen.
type VTE struct {
	con *screen.Screen
	log zerolog.Logger

	writeFn     func([]byte)
	bellFn      func()
	oscFn       func(params []string)
	altScreenFn func(entering bool)

	mach  utf8.Machine
	mp    parser.Machine
	depth int // re-entry guard for local echo, mirrors vte->parse_cnt

	mode Mode

	g        [4]*charset.Table
	gl, gr   gset
	glt, grt *gset

	cattr   screen.Attr
	defAttr screen.Attr
	pal     palette.Table

	paletteName   string
	customPalette *palette.Table

	altCursorX, altCursorY int

	saved savedState

	csiArgs  []int
	csiFlags csiFlag

	intermediates []byte
	oscBuf        []byte
	dcsBuf        []byte
}

// Option configures a VTE at construction time.
type Option func(*VTE)

// WithWriter sets the callback the VTE uses to send outbound bytes
// (replies, or keyboard input forwarded to the child process).
func WithWriter(fn func([]byte)) Option {
	return func(v *VTE) { v.writeFn = fn }
}

// WithBell sets the callback fired on BEL (0x07).
func WithBell(fn func()) Option {
	return func(v *VTE) { v.bellFn = fn }
}

// WithOSC sets the callback fired when an OSC string completes; params
// is the string split on ';'.
func WithOSC(fn func(params []string)) Option {
	return func(v *VTE) { v.oscFn = fn }
}

// WithAltScreenHook sets a callback fired whenever the 47/1047/1049
// alternate-screen family is entered or left. A client running two
// renderers side by side (e.g. an HTML transcript of the scrollback
// plus a live grid view) can use it to tell full-screen applications
// apart from line-oriented ones, the same distinction
// terminal.RichTextTerminal used its upgrade hook for.
func WithAltScreenHook(fn func(entering bool)) Option {
	return func(v *VTE) { v.altScreenFn = fn }
}

// WithLogger overrides the VTE's zerolog logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(v *VTE) { v.log = l }
}

// WithPalette selects one of the built-in named palettes, or "custom" to
// use the table supplied via WithCustomPalette/SetCustomPalette; unknown
// names (and "custom" with no table set) fall back to the default
// VGA-like table, mirroring tsm_vte_set_palette/get_palette.
func WithPalette(name string) Option {
	return func(v *VTE) { v.SetPaletteName(name) }
}

// WithCustomPalette installs a caller-supplied 18-slot table as the
// "custom" palette and selects it, mirroring tsm_vte_set_custom_palette.
func WithCustomPalette(tbl palette.Table) Option {
	return func(v *VTE) { v.SetCustomPalette(tbl) }
}

// SetPaletteName selects a built-in palette by the names Named()
// accepts, or "custom" for the table last passed to SetCustomPalette.
// Mirrors tsm_vte_set_palette: it re-derives def_attr/cattr from the
// newly active palette and erases the screen.
func (v *VTE) SetPaletteName(name string) {
	v.paletteName = name
	v.resolvePalette()
}

// SetCustomPalette installs tbl as the "custom" palette slot and
// switches to it, mirroring tsm_vte_set_custom_palette.
func (v *VTE) SetCustomPalette(tbl palette.Table) {
	v.customPalette = &tbl
	v.paletteName = "custom"
	v.resolvePalette()
}

// resolvePalette implements get_palette: the "custom" name only resolves
// to the caller-supplied table when one has actually been set, otherwise
// every name (including "custom" with no table) falls through to the
// built-in lookup in Named.
func (v *VTE) resolvePalette() {
	if v.paletteName == "custom" && v.customPalette != nil {
		v.pal = *v.customPalette
	} else {
		v.pal, _ = palette.Named(v.paletteName)
	}
	v.updatePaletteAttr()
}

// New creates a VTE bound to con, performs a soft reset, and erases the
// screen, mirroring tsm_vte_new.
func New(con *screen.Screen, opts ...Option) *VTE {
	v := &VTE{
		con: con,
		log: zerolog.Nop(),
		pal: mustDefaultPalette(),
	}
	v.updatePaletteAttr()

	for _, opt := range opts {
		opt(v)
	}

	v.Reset()
	v.con.EraseScreen(false)
	return v
}

func mustDefaultPalette() palette.Table {
	t, _ := palette.Named("")
	return t
}

func (v *VTE) updatePaletteAttr() {
	v.defAttr = screen.Attr{FCCode: int(palette.Foreground), BCCode: int(palette.Background)}
	v.resolveColor(&v.defAttr)
	v.cattr = v.defAttr
	v.con.SetDefAttr(v.defAttr)
	v.con.EraseScreen(false)
}

// resolveColor fills in RGB fields from color-code slots, per to_rgb:
// bold brightens a dark (<8) foreground code, and any out-of-range code
// falls back to the reserved foreground/background slot.
func (v *VTE) resolveColor(a *screen.Attr) {
	if a.FCCode >= 0 {
		code := a.FCCode
		if a.Bold {
			code = palette.Brighten(code)
		}
		if code >= int(palette.NumSlots) {
			code = int(palette.Foreground)
		}
		rgb := v.pal[code]
		a.FR, a.FG, a.FB = rgb.R, rgb.G, rgb.B
	}
	if a.BCCode >= 0 {
		code := a.BCCode
		if code >= int(palette.NumSlots) {
			code = int(palette.Background)
		}
		rgb := v.pal[code]
		a.BR, a.BG, a.BB = rgb.R, rgb.G, rgb.B
	}
}

func (v *VTE) resetSavedState() {
	v.saved = savedState{
		gl:   g0,
		gr:   g1,
		wrap: true,
	}
	v.saved.cattr = v.defAttr
}

// Reset performs a soft reset: parser state, G-sets, current attribute
// and most mode flags return to their initial values. Mirrors
// tsm_vte_reset.
func (v *VTE) Reset() {
	v.mode = ModeTextCursor | ModeAutoRepeat | ModeSendReceive | ModeAutoWrap | ModeBackgroundColorErase

	v.con.Reset()
	v.con.SetFlags(screen.AutoWrap)

	v.mach.Reset()
	v.mp.Reset()

	v.gl, v.gr = g0, g1
	v.glt, v.grt = nil, nil
	v.g[g0] = charset.Lookup(charset.UnicodeLower)
	v.g[g1] = charset.Lookup(charset.UnicodeUpper)
	v.g[g2] = charset.Lookup(charset.UnicodeLower)
	v.g[g3] = charset.Lookup(charset.UnicodeUpper)

	v.cattr = v.defAttr
	v.resolveColor(&v.cattr)
	v.con.SetDefAttr(v.defAttr)

	v.resetSavedState()
}

// HardReset performs a soft reset plus a full screen erase, scrollback
// clear and cursor home. Mirrors tsm_vte_hard_reset.
func (v *VTE) HardReset() {
	v.Reset()
	v.con.EraseScreen(false)
	v.con.ClearScrollback()
	v.con.MoveTo(0, 0)
}

// saveCursor implements DECSC (ESC 7).
func (v *VTE) saveCursor() {
	v.saved.cursorX = v.con.CursorX()
	v.saved.cursorY = v.con.CursorY()
	v.saved.cattr = v.cattr
	v.saved.gl = v.gl
	v.saved.gr = v.gr
	v.saved.wrap = v.Has(ModeAutoWrap)
	v.saved.origin = v.Has(ModeOrigin)
}

// restoreCursor implements DECRC (ESC 8).
func (v *VTE) restoreCursor() {
	v.con.MoveTo(v.saved.cursorX, v.saved.cursorY)
	v.cattr = v.saved.cattr
	v.resolveColor(&v.cattr)
	if v.Has(ModeBackgroundColorErase) {
		v.con.SetDefAttr(v.cattr)
	}
	v.gl = v.saved.gl
	v.gr = v.saved.gr

	v.setMode(ModeAutoWrap, v.saved.wrap)
	v.con.ResetFlags(screen.AutoWrap)
	if v.saved.wrap {
		v.con.SetFlags(screen.AutoWrap)
	}

	v.setMode(ModeOrigin, v.saved.origin)
	v.con.ResetFlags(screen.RelOrigin)
	if v.saved.origin {
		v.con.SetFlags(screen.RelOrigin)
	}
}

// sendPrimaryDA answers a Device Attributes request.
func (v *VTE) sendPrimaryDA() {
	v.write(false, []byte("\x1b[?60;1;6;9;15c"))
}

// Input feeds raw bytes from the child process through the UTF-8
// decoder and parser, dispatching actions as they're produced. Mirrors
// tsm_vte_input.
func (v *VTE) Input(data []byte) {
	v.depth++
	defer func() { v.depth-- }()

	for _, b := range data {
		cp, ok := utf8.Get(&v.mach, b, !v.Has(Mode7Bit) && !v.Has(Mode8Bit), v.Has(Mode8Bit))
		if !ok {
			continue
		}
		for _, ev := range v.mp.Feed(cp) {
			v.dispatch(ev)
		}
	}
}

func (v *VTE) dispatch(ev parser.Event) {
	switch ev.Action {
	case parser.ActionPrint:
		v.print(ev.Rune)
	case parser.ActionExecute:
		v.execute(ev.Rune)
	case parser.ActionClear:
		v.clear()
	case parser.ActionCollect:
		v.collect(ev.Rune)
	case parser.ActionParam:
		v.param(ev.Rune)
	case parser.ActionEscDispatch:
		v.escDispatch(byte(ev.Rune))
	case parser.ActionCsiDispatch:
		v.csiDispatch(byte(ev.Rune))
	case parser.ActionDcsStart:
		v.dcsBuf = v.dcsBuf[:0]
	case parser.ActionDcsCollect:
		v.dcsBuf = appendRune(v.dcsBuf, ev.Rune)
	case parser.ActionDcsEnd:
		// DCS payload is parsed but not interpreted by this core.
	case parser.ActionOscStart:
		v.oscBuf = v.oscBuf[:0]
	case parser.ActionOscCollect:
		v.oscBuf = appendRune(v.oscBuf, ev.Rune)
	case parser.ActionOscEnd:
		v.oscEnd()
	}
}

func appendRune(buf []byte, r rune) []byte {
	return append(buf, []byte(string(r))...)
}

func (v *VTE) oscEnd() {
	if v.oscFn == nil {
		return
	}
	params := splitOSC(string(v.oscBuf))
	v.oscFn(params)
}

func splitOSC(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// mapGL maps v through the G0-G3 indirection per vte_map: GL covers
// 33-126, GR covers 161-254, everything else (32, 127, 160, 255, >255)
// is identity. A single-shift override is consumed on first use.
func (v *VTE) mapGL(r rune) rune {
	switch {
	case r >= 33 && r <= 126:
		t := v.g[v.gl]
		if v.glt != nil {
			t = v.g[*v.glt]
			v.glt = nil
		}
		return t.Translate(r, false)
	case r >= 161 && r <= 254:
		t := v.g[v.gr]
		if v.grt != nil {
			t = v.g[*v.grt]
			v.grt = nil
		}
		return t.Translate(r, true)
	default:
		return r
	}
}

func (v *VTE) print(r rune) {
	v.con.Write(v.mapGL(r), v.cattr)
}

// execute runs do_execute: the C0/C1 control-character table.
func (v *VTE) execute(r rune) {
	switch byte(r) {
	case ascii.NUL:
	case ascii.ENQ:
		v.write(false, []byte{ascii.ACK})
	case ascii.BEL:
		if v.bellFn != nil {
			v.bellFn()
		}
	case ascii.BS:
		v.con.MoveLeft(1)
	case ascii.TAB:
		v.con.TabRight(1)
	case ascii.LF, ascii.VT, ascii.FF:
		if v.Has(ModeLineFeedNewLine) {
			v.con.Newline()
		} else {
			v.con.MoveDown(1, true)
		}
	case ascii.CR:
		v.con.LineHome()
	case ascii.SO:
		v.gl = g1
	case ascii.SI:
		v.gl = g0
	case ascii.CAN, ascii.SUB:
		if byte(r) == ascii.SUB {
			v.con.Write(0xbf, v.cattr)
		}
	case ascii.ESC:
	case ascii.IND:
		v.con.MoveDown(1, true)
	case ascii.NEL:
		v.con.Newline()
	case ascii.HTS:
		v.con.SetTabstop()
	case ascii.RI:
		v.con.MoveUp(1, true)
	case ascii.SS2:
		s := g2
		v.glt = &s
	case ascii.SS3:
		s := g3
		v.glt = &s
	case ascii.SCI: // DECID
		v.sendPrimaryDA()
	case ascii.ST:
	default:
		v.log.Debug().Uint32("ctrl", uint32(r)).Msg("unhandled control char")
	}
}

func (v *VTE) clear() {
	v.csiArgs = v.csiArgs[:0]
	v.csiFlags = 0
	v.intermediates = v.intermediates[:0]
}

func (v *VTE) collect(r rune) {
	switch r {
	case '!':
		v.csiFlags |= csiBang
	case '$':
		v.csiFlags |= csiCash
	case '?':
		v.csiFlags |= csiWhat
	case '>':
		v.csiFlags |= csiGT
	case ' ':
		v.csiFlags |= csiSpace
	case '\'':
		v.csiFlags |= csiSquote
	case '"':
		v.csiFlags |= csiDquote
	case '*':
		v.csiFlags |= csiMult
	case '+':
		v.csiFlags |= csiPlus
	case '(':
		v.csiFlags |= csiPopen
	case ')':
		v.csiFlags |= csiPclose
	}
	v.intermediates = append(v.intermediates, byte(r))
}

// maxCSIArgs caps the parameter vector at 16 slots, matching
// CSI_ARG_MAX/the fixed-capacity csi_argv array in tsm-vte.c: a
// semicolon beyond the 16th slot saturates instead of growing the
// vector, and digits once saturated land in the final slot.
const maxCSIArgs = 16

func (v *VTE) param(r rune) {
	if r == ';' {
		if len(v.csiArgs) < maxCSIArgs {
			v.csiArgs = append(v.csiArgs, -1)
		}
		return
	}
	if len(v.csiArgs) == 0 {
		v.csiArgs = append(v.csiArgs, -1)
	}
	i := len(v.csiArgs) - 1
	if v.csiArgs[i] > 0xffff {
		return
	}
	d := int(r - '0')
	if v.csiArgs[i] <= 0 {
		v.csiArgs[i] = d
	} else {
		v.csiArgs[i] = v.csiArgs[i]*10 + d
	}
}

// arg returns the i-th CSI argument, or def when absent/unset (-1).
func (v *VTE) arg(i, def int) int {
	if i < 0 || i >= len(v.csiArgs) || v.csiArgs[i] < 0 {
		return def
	}
	return v.csiArgs[i]
}

// write sends p to the child process, answering a keypress or a parser
// reply, and performs the re-entry-bounded local echo described in
// vte_write_debug: re-entrant writes made from inside Input (depth>0)
// never loop back, matching the re-entry-counter rule in spec §3.
func (v *VTE) write(raw bool, p []byte) {
	_ = raw
	echo := v.depth == 0 && !v.Has(ModeSendReceive)
	if echo {
		if v.Has(ModePrependEscape) {
			v.Input([]byte{0x1b})
		}
		v.Input(p)
	}
	if v.Has(ModePrependEscape) && v.writeFn != nil {
		v.writeFn([]byte{0x1b})
	}
	if v.writeFn != nil {
		v.writeFn(p)
	}
	v.mode &^= ModePrependEscape
}

// HandleKey encodes one keyboard event and writes it to the child
// process, returning false only when the key produces no output (no
// matching key, no ASCII/unicode fallback). Mirrors
// tsm_vte_handle_keyboard.
func (v *VTE) HandleKey(ev keyboard.Event) bool {
	if ev.Mods&keyboard.Alt != 0 {
		v.mode |= ModePrependEscape
	}

	enc := keyboard.Encoder{
		CursorKeyMode:         v.Has(ModeCursorKey),
		KeypadApplicationMode: v.Has(ModeKeypadApplication),
		SevenBit:              v.Has(Mode7Bit),
		EightBit:              v.Has(Mode8Bit),
	}

	out, ok := enc.Encode(ev)
	if !ok {
		v.mode &^= ModePrependEscape
		return false
	}
	v.write(false, out)
	return true
}
