package palette

import "testing"

func TestNamedFallback(t *testing.T) {
	tt := []struct {
		name  string
		found bool
	}{
		{"solarized", true},
		{"solarized-black", true},
		{"solarized-white", true},
		{"soft-black", true},
		{"base16-dark", true},
		{"base16-light", true},
		{"", false},
		{"not-a-palette", false},
	}
	for _, c := range tt {
		tbl, found := Named(c.name)
		if found != c.found {
			t.Errorf("Named(%q) found = %v, want %v", c.name, found, c.found)
		}
		if !found && tbl != builtin {
			t.Errorf("Named(%q) should fall back to the built-in table", c.name)
		}
	}
}

func TestResolve256(t *testing.T) {
	tt := []struct {
		index   int
		wantRGB RGB
		code    int
		isCode  bool
	}{
		{4, RGB{}, 4, true},
		{16, RGB{0, 0, 0}, -1, false},
		{21, RGB{0, 0, 0xff}, -1, false},
		{231, RGB{0xff, 0xff, 0xff}, -1, false},
		{232, RGB{8, 8, 8}, -1, false},
		{255, RGB{238, 238, 238}, -1, false},
	}
	for _, c := range tt {
		rgb, code, isCode := Resolve256(c.index)
		if isCode != c.isCode || code != c.code {
			t.Errorf("Resolve256(%d) code/isCode = %d/%v, want %d/%v", c.index, code, isCode, c.code, c.isCode)
		}
		if !isCode && rgb != c.wantRGB {
			t.Errorf("Resolve256(%d) rgb = %+v, want %+v", c.index, rgb, c.wantRGB)
		}
	}
}

func TestBrighten(t *testing.T) {
	tt := []struct{ in, want int }{
		{0, 8},
		{7, 15},
		{8, 8},
		{15, 15},
		{-1, -1},
	}
	for _, c := range tt {
		if got := Brighten(c.in); got != c.want {
			t.Errorf("Brighten(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
