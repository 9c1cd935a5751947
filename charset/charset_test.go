package charset

import "testing"

func TestLookupIdentity(t *testing.T) {
	tbl := Lookup(UnicodeLower)
	if got := tbl.Translate('A', false); got != 'A' {
		t.Errorf("unicode-lower GL translate of 'A': got %q, want 'A'", got)
	}
	tbl = Lookup(UnicodeUpper)
	if got := tbl.Translate('z', false); got != 'z' {
		t.Errorf("unicode-upper GL translate of 'z': got %q, want 'z'", got)
	}
}

func TestDECSpecialGraphics(t *testing.T) {
	tbl := Lookup(DECSpecialGraphics)
	tt := []struct {
		in   rune
		want rune
	}{
		{'q', '─'},
		{'x', '│'},
		{'`', '◆'},
		{'A', 'A'}, // outside the 0x60-0x7e remap range, falls back to identity
	}
	for _, c := range tt {
		if got := tbl.Translate(c.in, false); got != c.want {
			t.Errorf("Translate(%q, false) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDECSupplementalGraphics(t *testing.T) {
	tbl := Lookup(DECSupplementalGraphics)
	if got := tbl.Translate(0xe9, true); got != 0xe9 {
		t.Errorf("GR translate of 0xe9: got %#x, want 0xe9", got)
	}
}

func TestTranslateBoundary(t *testing.T) {
	tbl := Lookup(UnicodeLower)
	tt := []struct {
		v  rune
		gr bool
	}{
		{32, false},
		{127, false},
		{160, true},
		{255, true},
		{300, false},
	}
	for _, c := range tt {
		if got := tbl.Translate(c.v, c.gr); got != c.v {
			t.Errorf("Translate(%d, gr=%v) = %d, want identity %d", c.v, c.gr, got, c.v)
		}
	}
}
