package keyboard

import (
	"bytes"
	"testing"
)

func TestControlLetters(t *testing.T) {
	e := &Encoder{}
	tt := []struct {
		ascii rune
		want  byte
	}{
		{'a', 1},
		{'C', 3},
		{'[', 27},
		{' ', 0},
	}
	for _, c := range tt {
		out, ok := e.Encode(Event{ASCII: c.ascii, Unicode: c.ascii, Mods: Control})
		if !ok || len(out) != 1 || out[0] != c.want {
			t.Errorf("Ctrl+%q: got %v, ok=%v, want [%d]", c.ascii, out, ok, c.want)
		}
	}
}

func TestControlDigitAndPunctuationAliases(t *testing.T) {
	e := &Encoder{}
	cases := []struct {
		ascii rune
		want  byte
	}{
		{'3', 27}, {'{', 27},
		{'4', 28}, {'\\', 28}, {'|', 28},
		{'5', 29}, {']', 29}, {'}', 29},
		{'6', 30}, {'`', 30}, {'~', 30},
		{'7', 31}, {'/', 31}, {'?', 31},
		{'8', 0x7f},
	}
	for _, c := range cases {
		out, ok := e.Encode(Event{ASCII: c.ascii, Unicode: c.ascii, Mods: Control})
		if !ok || len(out) != 1 || out[0] != c.want {
			t.Errorf("Ctrl+%q: got %v, ok=%v, want [%d]", c.ascii, out, ok, c.want)
		}
	}
}

func TestArrowKeysRespectCursorKeyMode(t *testing.T) {
	e := &Encoder{}
	out, ok := e.Encode(Event{Key: KeyUp})
	if !ok || !bytes.Equal(out, []byte{0x1b, '[', 'A'}) {
		t.Errorf("normal mode Up: got %q", out)
	}

	e.CursorKeyMode = true
	out, ok = e.Encode(Event{Key: KeyUp})
	if !ok || !bytes.Equal(out, []byte{0x1b, 'O', 'A'}) {
		t.Errorf("DECCKM Up: got %q", out)
	}
}

func TestCtrlArrowAlwaysUsesCSIForm(t *testing.T) {
	e := &Encoder{CursorKeyMode: true}
	out, ok := e.Encode(Event{Key: KeyRight, Mods: Control})
	want := []byte{0x1b, '[', '1', ';', '5', 'C'}
	if !ok || !bytes.Equal(out, want) {
		t.Errorf("Ctrl+Right under DECCKM: got %q, want %q", out, want)
	}
}

func TestKeypadApplicationMode(t *testing.T) {
	e := &Encoder{}
	out, _ := e.Encode(Event{Key: KeyKP5})
	if !bytes.Equal(out, []byte{'5'}) {
		t.Errorf("numeric keypad mode KP5: got %q, want %q", out, "5")
	}

	e.KeypadApplicationMode = true
	out, _ = e.Encode(Event{Key: KeyKP5})
	if !bytes.Equal(out, []byte{0x1b, 'O', 'u'}) {
		t.Errorf("application keypad mode KP5: got %q", out)
	}
}

func TestF1ThroughF4UseDistinctShiftCodes(t *testing.T) {
	e := &Encoder{}
	out, _ := e.Encode(Event{Key: KeyF1})
	if !bytes.Equal(out, []byte{0x1b, 'O', 'P'}) {
		t.Errorf("plain F1: got %q", out)
	}
	out, _ = e.Encode(Event{Key: KeyF1, Mods: Shift})
	if !bytes.Equal(out, []byte{0x1b, '[', '2', '3', '~'}) {
		t.Errorf("shift F1: got %q", out)
	}
}

func TestF11ThroughF20AppendShiftSuffix(t *testing.T) {
	e := &Encoder{}
	out, _ := e.Encode(Event{Key: KeyF11})
	if !bytes.Equal(out, []byte{0x1b, '[', '2', '3', '~'}) {
		t.Errorf("plain F11: got %q", out)
	}
	out, _ = e.Encode(Event{Key: KeyF11, Mods: Shift})
	if !bytes.Equal(out, []byte{0x1b, '[', '2', '3', ';', '2', '~'}) {
		t.Errorf("shift F11: got %q", out)
	}
}

func TestUnicodeFallback(t *testing.T) {
	e := &Encoder{}
	out, ok := e.Encode(Event{Unicode: 'é'})
	if !ok || string(out) != "é" {
		t.Errorf("unicode passthrough: got %q", out)
	}

	e.SevenBit = true
	out, ok = e.Encode(Event{Unicode: 'é'})
	if !ok || !bytes.Equal(out, []byte{'?'}) {
		t.Errorf("7-bit mode should substitute '?': got %q", out)
	}
}

func TestNoKeyNoUnicodeFails(t *testing.T) {
	e := &Encoder{}
	_, ok := e.Encode(Event{})
	if ok {
		t.Errorf("empty event should not encode to anything")
	}
}
