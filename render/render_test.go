package render

import (
	"strings"
	"testing"

	"github.com/subhav/vte/screen"
)

func TestLinesPlainTextHasNoSpans(t *testing.T) {
	s := screen.New(5, 1)
	s.Write('h', screen.Attr{})
	s.Write('i', screen.Attr{})

	lines := Lines(s)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if strings.Contains(lines[0], "<span") {
		t.Errorf("unstyled text should not be wrapped in a span: %q", lines[0])
	}
	if !strings.HasPrefix(lines[0], "hi") {
		t.Errorf("got %q, want it to start with %q", lines[0], "hi")
	}
}

func TestLinesEscapesHTML(t *testing.T) {
	s := screen.New(5, 1)
	s.Write('<', screen.Attr{})
	lines := Lines(s)
	if !strings.Contains(lines[0], "&lt;") {
		t.Errorf("got %q, want escaped '<'", lines[0])
	}
}

func TestLinesOpensSpanForStyledRuns(t *testing.T) {
	s := screen.New(5, 1)
	s.Write('a', screen.Attr{Bold: true})
	s.Write('b', screen.Attr{})

	line := Lines(s)[0]
	if !strings.Contains(line, "font-weight:bold") {
		t.Errorf("bold cell missing style: %q", line)
	}
	if strings.Count(line, "<span") != 1 {
		t.Errorf("expected exactly one span for the one styled run: %q", line)
	}
}

func TestLinesInverseSwapsColors(t *testing.T) {
	s := screen.New(1, 1)
	s.Write('x', screen.Attr{Inverse: true, FR: 1, FG: 2, FB: 3, BR: 4, BG: 5, BB: 6})
	line := Lines(s)[0]
	if !strings.Contains(line, "color:#040506;") {
		t.Errorf("inverse foreground should use background RGB: %q", line)
	}
	if !strings.Contains(line, "background-color:#010203;") {
		t.Errorf("inverse background should use foreground RGB: %q", line)
	}
}

func TestDocumentWrapsInHTMLShell(t *testing.T) {
	s := screen.New(3, 1)
	s.Write('a', screen.Attr{})
	doc := Document(s)
	if !strings.Contains(doc, "<html>") || !strings.Contains(doc, "</html>") {
		t.Errorf("Document should produce a full HTML page: %q", doc)
	}
}
