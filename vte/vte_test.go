package vte

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subhav/vte/keyboard"
	"github.com/subhav/vte/palette"
	"github.com/subhav/vte/screen"
)

func newTestVTE() (*VTE, *screen.Screen) {
	con := screen.New(10, 4)
	v := New(con)
	return v, con
}

func TestInputPrintsPlainText(t *testing.T) {
	v, con := newTestVTE()
	v.Input([]byte("Hi"))
	require.Equal(t, 'H', con.Cell(0, 0).Rune)
	require.Equal(t, 'i', con.Cell(1, 0).Rune)
	require.Equal(t, 2, con.CursorX())
}

func TestCursorMovementCSI(t *testing.T) {
	v, con := newTestVTE()
	v.Input([]byte("\x1b[3;5H"))
	assert.Equal(t, 4, con.CursorX())
	assert.Equal(t, 2, con.CursorY())
}

func TestSGRBasicColor(t *testing.T) {
	v, con := newTestVTE()
	v.Input([]byte("\x1b[31mX"))
	cell := con.Cell(0, 0)
	assert.Equal(t, 'X', cell.Rune)
	assert.Equal(t, 1, cell.Attr.FCCode)
	red := v.pal[palette.Red]
	assert.Equal(t, red, palette.RGB{R: cell.Attr.FR, G: cell.Attr.FG, B: cell.Attr.FB})
}

func TestSGRBoldBrightensColorCode(t *testing.T) {
	v, con := newTestVTE()
	v.Input([]byte("\x1b[1;31mX"))
	cell := con.Cell(0, 0)
	lightRed := v.pal[palette.LightRed]
	assert.Equal(t, lightRed, palette.RGB{R: cell.Attr.FR, G: cell.Attr.FG, B: cell.Attr.FB})
}

func TestSGRTruecolor(t *testing.T) {
	v, con := newTestVTE()
	v.Input([]byte("\x1b[38;2;10;20;30mX"))
	cell := con.Cell(0, 0)
	assert.Equal(t, -1, cell.Attr.FCCode)
	assert.EqualValues(t, 10, cell.Attr.FR)
	assert.EqualValues(t, 20, cell.Attr.FG)
	assert.EqualValues(t, 30, cell.Attr.FB)
	_ = v
}

func TestSGRResetRestoresDefaults(t *testing.T) {
	v, con := newTestVTE()
	v.Input([]byte("\x1b[1;31m\x1b[0mX"))
	cell := con.Cell(0, 0)
	assert.False(t, cell.Attr.Bold)
	assert.Equal(t, v.defAttr.FCCode, cell.Attr.FCCode)
}

func TestDECSETAutoWrapToggle(t *testing.T) {
	v, con := newTestVTE()
	v.Input([]byte("\x1b[?7l")) // disable DECAWM
	assert.False(t, v.Has(ModeAutoWrap))
	assert.False(t, con.HasFlag(screen.AutoWrap))

	v.Input([]byte("\x1b[?7h"))
	assert.True(t, v.Has(ModeAutoWrap))
	assert.True(t, con.HasFlag(screen.AutoWrap))
}

func TestDECSCDECRCRoundtrip(t *testing.T) {
	v, con := newTestVTE()
	v.Input([]byte("\x1b[3;3H")) // move to (2,2)
	v.Input([]byte("\x1b7"))     // DECSC
	v.Input([]byte("\x1b[1;1H"))
	v.Input([]byte("\x1b8")) // DECRC
	assert.Equal(t, 2, con.CursorX())
	assert.Equal(t, 2, con.CursorY())
}

func TestRISHardResetsCursorAndScreen(t *testing.T) {
	v, con := newTestVTE()
	v.Input([]byte("ABC\x1b[2;2H"))
	v.Input([]byte("\x1bc")) // RIS
	assert.Equal(t, 0, con.CursorX())
	assert.Equal(t, 0, con.CursorY())
	assert.Equal(t, rune(' '), con.Cell(0, 0).Rune)
}

func TestPrimaryDeviceAttributesRequest(t *testing.T) {
	var got []byte
	v, _ := newTestVTEWithWriter(func(p []byte) { got = append(got, p...) })
	v.Input([]byte("\x1b[c"))
	assert.Equal(t, "\x1b[?60;1;6;9;15c", string(got))
}

func newTestVTEWithWriter(fn func([]byte)) (*VTE, *screen.Screen) {
	con := screen.New(10, 4)
	v := New(con, WithWriter(fn))
	return v, con
}

func TestOSCCallbackFires(t *testing.T) {
	var params []string
	con := screen.New(10, 4)
	v := New(con, WithOSC(func(p []string) { params = p }))
	v.Input([]byte("\x1b]0;my title\x07"))
	require.Equal(t, []string{"0", "my title"}, params)
}

func TestHandleKeyWritesEncodedBytes(t *testing.T) {
	var got []byte
	con := screen.New(10, 4)
	v := New(con, WithWriter(func(p []byte) { got = append(got, p...) }))

	ok := v.HandleKey(keyboard.Event{Key: keyboard.KeyReturn})
	assert.True(t, ok)
	assert.Equal(t, []byte{0x0d}, got)
}

func TestHandleKeyAltPrependsEscape(t *testing.T) {
	var got []byte
	con := screen.New(10, 4)
	v := New(con, WithWriter(func(p []byte) { got = append(got, p...) }))

	v.HandleKey(keyboard.Event{Unicode: 'x', Mods: keyboard.Alt})
	assert.Equal(t, []byte{0x1b, 'x'}, got)

	got = nil
	v.HandleKey(keyboard.Event{Unicode: 'y'})
	assert.Equal(t, []byte{'y'}, got)
}

func TestLocalEchoWhenSendReceiveModeOff(t *testing.T) {
	con := screen.New(10, 4)
	v := New(con)
	v.Input([]byte("\x1b[12l")) // RM 12: clear SRM, enabling local echo

	ok := v.HandleKey(keyboard.Event{Unicode: 'z'})
	require.True(t, ok)
	assert.Equal(t, 'z', con.Cell(0, 0).Rune)
}

func TestNoLocalEchoBySendReceiveModeDefault(t *testing.T) {
	con := screen.New(10, 4)
	v := New(con)

	ok := v.HandleKey(keyboard.Event{Unicode: 'z'})
	require.True(t, ok)
	assert.Equal(t, rune(' '), con.Cell(0, 0).Rune)
}

func TestAltScreenHookFiresOnEnterAndLeave(t *testing.T) {
	con := screen.New(10, 4)
	var events []bool
	v := New(con, WithAltScreenHook(func(entering bool) { events = append(events, entering) }))

	v.Input([]byte("\x1b[?1049h"))
	v.Input([]byte("\x1b[?1049l"))

	require.Equal(t, []bool{true, false}, events)
}

func TestG1DesignationAndShiftOut(t *testing.T) {
	v, con := newTestVTE()
	v.Input([]byte("\x1b)0")) // designate DEC special graphics into G1
	v.Input([]byte{0x0e})     // SO: gl = g1
	v.Input([]byte("q"))      // q maps to a horizontal line in DEC special graphics
	assert.Equal(t, '─', con.Cell(0, 0).Rune)
}

func TestDeviceAttributesExplicitZeroParamStillReplies(t *testing.T) {
	var got []byte
	v, _ := newTestVTEWithWriter(func(p []byte) { got = append(got, p...) })
	v.Input([]byte("\x1b[0c"))
	assert.Equal(t, "\x1b[?60;1;6;9;15c", string(got))
}

func TestDeviceAttributesNonZeroParamIsIgnored(t *testing.T) {
	var got []byte
	v, _ := newTestVTEWithWriter(func(p []byte) { got = append(got, p...) })
	v.Input([]byte("\x1b[1c"))
	assert.Empty(t, got)
}

func TestCSIParamCountSaturatesAtSixteen(t *testing.T) {
	v, _ := newTestVTE()
	var params string
	for i := 0; i < 20; i++ {
		params += "1;"
	}
	v.Input([]byte("\x1b[" + params + "m"))
	assert.LessOrEqual(t, len(v.csiArgs), 16)
}

func TestCustomPaletteSelectsSuppliedTable(t *testing.T) {
	con := screen.New(10, 4)
	var tbl palette.Table
	tbl[palette.Red] = palette.RGB{R: 10, G: 20, B: 30}
	v := New(con, WithCustomPalette(tbl))
	v.Input([]byte("\x1b[31mX"))
	cell := con.Cell(0, 0)
	assert.Equal(t, palette.RGB{R: 10, G: 20, B: 30}, palette.RGB{R: cell.Attr.FR, G: cell.Attr.FG, B: cell.Attr.FB})
}

func TestCustomPaletteNameWithoutTableFallsBackToDefault(t *testing.T) {
	con := screen.New(10, 4)
	v := New(con, WithPalette("custom"))
	defaultPal, _ := palette.Named("default")
	assert.Equal(t, defaultPal, v.pal)
}

func TestSetCustomPaletteAtRuntimeSwitchesPalette(t *testing.T) {
	con := screen.New(10, 4)
	v := New(con)
	var tbl palette.Table
	tbl[palette.Blue] = palette.RGB{R: 1, G: 2, B: 3}
	v.SetCustomPalette(tbl)
	v.Input([]byte("\x1b[34mX"))
	cell := con.Cell(0, 0)
	assert.Equal(t, palette.RGB{R: 1, G: 2, B: 3}, palette.RGB{R: cell.Attr.FR, G: cell.Attr.FG, B: cell.Attr.FB})
}

func TestAlternateScreen1049ErasesAlternateOnEntryNotOnExit(t *testing.T) {
	con := screen.New(10, 4)
	v := New(con)
	v.Input([]byte("A")) // primary buffer gets an 'A' at (0,0)

	v.Input([]byte("\x1b[?1049h")) // enter alternate: switch + erase
	assert.Equal(t, rune(' '), con.Cell(0, 0).Rune)

	v.Input([]byte("B")) // write into the alternate buffer

	v.Input([]byte("\x1b[?1049l")) // leave alternate: switch back, no erase
	assert.Equal(t, 'A', con.Cell(0, 0).Rune)
}

func TestAlternateScreen1047ErasesAlternateNotPrimary(t *testing.T) {
	con := screen.New(10, 4)
	v := New(con)
	v.Input([]byte("A")) // primary buffer gets an 'A' at (0,0)

	v.Input([]byte("\x1b[?1047h")) // enter: no erase
	v.Input([]byte("B"))           // write into the alternate buffer at the unmoved cursor (1,0)
	assert.Equal(t, 'B', con.Cell(1, 0).Rune)

	v.Input([]byte("\x1b[?1047l")) // leave: erase the alternate buffer before switching back
	assert.Equal(t, 'A', con.Cell(0, 0).Rune)
}
