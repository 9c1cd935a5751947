// Package render converts a screen.Screen grid into an HTML transcript.
//
// It generalizes the single-infinite-line HTML renderer in
// terminal/render.go (subhav-terminal_parser) to the rectangular,
// scrollback-backed grid in package screen: runs of cells sharing a
// rendition are wrapped in one <span style="..."> each, the same
// run-length approach the original used for its node slices.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/subhav/vte/screen"
)

// Lines renders the scrollback history followed by the visible screen,
// one HTML line per row.
func Lines(s *screen.Screen) []string {
	sb := s.Scrollback()
	out := make([]string, 0, len(sb)+s.Rows())
	for _, row := range sb {
		out = append(out, renderRow(row))
	}
	for y := 0; y < s.Rows(); y++ {
		row := make([]screen.Cell, s.Cols())
		for x := 0; x < s.Cols(); x++ {
			row[x] = s.Cell(x, y)
		}
		out = append(out, renderRow(row))
	}
	return out
}

// Document wraps Lines in a minimal standalone HTML page using a
// monospace font, suitable for writing straight to a file.
func Document(s *screen.Screen) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("body{background:#000;color:#fff;font-family:monospace;white-space:pre;}")
	b.WriteString("</style></head><body>\n")
	for _, line := range Lines(s) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

func renderRow(cells []screen.Cell) string {
	var raw strings.Builder
	open := false
	prev := screen.Attr{}

	closeSpan := func() {
		if open {
			raw.WriteString("</span>")
			open = false
		}
	}
	openSpan := func(a screen.Attr) {
		if a == (screen.Attr{}) {
			return
		}
		raw.WriteString("<span style=\"")
		if a.Bold {
			raw.WriteString("font-weight:bold;")
		}
		if a.Italic {
			raw.WriteString("font-style:italic;")
		}
		if a.Underline {
			raw.WriteString("text-decoration:underline;")
		}
		if a.Blink {
			raw.WriteString("text-decoration:blink;")
		}
		fr, fg, fb := a.FR, a.FG, a.FB
		br, bg, bb := a.BR, a.BG, a.BB
		if a.Inverse {
			fr, fg, fb, br, bg, bb = br, bg, bb, fr, fg, fb
		}
		fmt.Fprintf(&raw, "color:#%02x%02x%02x;", fr, fg, fb)
		fmt.Fprintf(&raw, "background-color:#%02x%02x%02x;", br, bg, bb)
		raw.WriteString("\">")
		open = true
	}

	for _, c := range cells {
		if c.Attr != prev {
			closeSpan()
			openSpan(c.Attr)
			prev = c.Attr
		}
		raw.WriteString(html.EscapeString(string(c.Rune)))
	}
	closeSpan()
	return raw.String()
}
