// Package screen implements the character-cell grid the VTE drives.
//
// This is the concrete SCREEN collaborator the VTE spec names "out of
// scope, by interface only." A working implementation is supplied here
// so the module runs end-to-end; it generalizes the single-infinite-line
// model in terminal/screen.go (subhav-terminal_parser) into a proper
// rectangular grid with cursor, margins, an alternate buffer, a
// scrollback ring, and tabstops.
package screen

// Flag is a bitmask of screen-level display flags toggled by VTE modes.
type Flag uint32

const (
	InsertMode Flag = 1 << iota
	Inverse
	RelOrigin
	AutoWrap
	HideCursor
	Alternate
)

// Attr is one cell's rendition. FCCode/BCCode hold the ANSI color-code
// slot in use (-1 when the color is explicit RGB, per spec §3).
type Attr struct {
	Bold, Italic, Underline, Blink, Inverse, Protect bool
	FCCode, BCCode                                   int
	FR, FG, FB                                        uint8
	BR, BG, BB                                        uint8
}

// Cell is one grid position: a rune plus its rendition.
type Cell struct {
	Rune rune
	Attr Attr
}

// Screen is a fixed-size character-cell grid.
type Screen struct {
	rows, cols int

	primary []Cell
	altBuf  []Cell

	scrollback [][]Cell
	maxScrollback int

	cursorX, cursorY int
	altCursorX, altCursorY int

	marginTop, marginBottom int

	tabstops []bool

	flags Flag

	defAttr Attr
}

// New creates a Screen with the given dimensions. cols and rows must be
// positive; dynamic resize is a declared Non-goal.
func New(cols, rows int) *Screen {
	s := &Screen{
		rows:          rows,
		cols:          cols,
		maxScrollback: 10000,
	}
	s.primary = make([]Cell, cols*rows)
	s.altBuf = make([]Cell, cols*rows)
	s.tabstops = make([]bool, cols)
	s.marginBottom = rows - 1
	s.ResetAllTabstops()
	return s
}

func (s *Screen) grid() []Cell {
	if s.flags&Alternate != 0 {
		return s.altBuf
	}
	return s.primary
}

func (s *Screen) idx(x, y int) int { return y*s.cols + x }

// CursorX returns the 0-based cursor column.
func (s *Screen) CursorX() int { return s.cursorX }

// CursorY returns the 0-based cursor row.
func (s *Screen) CursorY() int { return s.cursorY }

func (s *Screen) clampX(x int) int {
	if x < 0 {
		return 0
	}
	if x >= s.cols {
		return s.cols - 1
	}
	return x
}

func (s *Screen) clampY(y int) int {
	top, bot := 0, s.rows-1
	if s.flags&RelOrigin != 0 {
		top, bot = s.marginTop, s.marginBottom
	}
	if y < top {
		return top
	}
	if y > bot {
		return bot
	}
	return y
}

// MoveTo sets the cursor to an absolute position, clamped to the grid
// (or to the scroll region when origin mode is active).
func (s *Screen) MoveTo(x, y int) {
	s.cursorX = s.clampX(x)
	s.cursorY = s.clampY(y)
}

// MoveLeft moves the cursor left by n columns, clamped at column 0.
func (s *Screen) MoveLeft(n int) {
	s.cursorX = s.clampX(s.cursorX - n)
}

// MoveRight moves the cursor right by n columns, clamped at the last
// column.
func (s *Screen) MoveRight(n int) {
	s.cursorX = s.clampX(s.cursorX + n)
}

// MoveUp moves the cursor up by n rows. When scroll is true and the
// cursor is already at the top margin, the scroll region scrolls down
// instead of the cursor going past the margin.
func (s *Screen) MoveUp(n int, scroll bool) {
	for i := 0; i < n; i++ {
		if s.cursorY > s.marginTop {
			s.cursorY--
			continue
		}
		if scroll {
			s.ScrollDown(1)
		}
	}
}

// MoveDown moves the cursor down by n rows, scrolling the region up
// when scroll is true and the cursor is at the bottom margin.
func (s *Screen) MoveDown(n int, scroll bool) {
	for i := 0; i < n; i++ {
		if s.cursorY < s.marginBottom {
			s.cursorY++
			continue
		}
		if scroll {
			s.ScrollUp(1)
		}
	}
}

// LineHome moves the cursor to column 0 of the current row (CR).
func (s *Screen) LineHome() { s.cursorX = 0 }

// Newline performs a CR+LF: column 0, one row down with scroll.
func (s *Screen) Newline() {
	s.cursorX = 0
	s.MoveDown(1, true)
}

// ScrollUp scrolls the active scroll region up by n rows, pushing
// departing top-margin rows (only in the primary buffer, unscrolled
// region) into scrollback.
func (s *Screen) ScrollUp(n int) {
	g := s.grid()
	for i := 0; i < n; i++ {
		if s.marginTop == 0 && s.flags&Alternate == 0 {
			row := make([]Cell, s.cols)
			copy(row, g[s.idx(0, s.marginTop):s.idx(0, s.marginTop)+s.cols])
			s.scrollback = append(s.scrollback, row)
			if len(s.scrollback) > s.maxScrollback {
				s.scrollback = s.scrollback[1:]
			}
		}
		copy(g[s.idx(0, s.marginTop):], g[s.idx(0, s.marginTop+1):s.idx(0, s.marginBottom+1)])
		s.clearRow(s.marginBottom)
	}
}

// ScrollDown scrolls the active scroll region down by n rows.
func (s *Screen) ScrollDown(n int) {
	g := s.grid()
	for i := 0; i < n; i++ {
		copy(g[s.idx(0, s.marginTop+1):s.idx(0, s.marginBottom+1)], g[s.idx(0, s.marginTop):])
		s.clearRow(s.marginTop)
	}
}

func (s *Screen) clearRow(y int) {
	g := s.grid()
	row := g[s.idx(0, y) : s.idx(0, y)+s.cols]
	for i := range row {
		row[i] = Cell{Rune: ' ', Attr: s.defAttr}
	}
}

// TabLeft moves the cursor to the n-th previous tabstop (CBT).
func (s *Screen) TabLeft(n int) {
	for i := 0; i < n; i++ {
		x := s.cursorX - 1
		for x > 0 && !s.tabstops[x] {
			x--
		}
		s.cursorX = s.clampX(x)
	}
}

// TabRight moves the cursor to the n-th next tabstop (HT/CHT).
func (s *Screen) TabRight(n int) {
	for i := 0; i < n; i++ {
		x := s.cursorX + 1
		for x < s.cols-1 && !s.tabstops[x] {
			x++
		}
		s.cursorX = s.clampX(x)
	}
}

// SetTabstop sets a tabstop at the cursor column.
func (s *Screen) SetTabstop() { s.tabstops[s.cursorX] = true }

// ResetTabstop clears the tabstop at the cursor column.
func (s *Screen) ResetTabstop() { s.tabstops[s.cursorX] = false }

// ResetAllTabstops clears all tabstops and re-sets the default
// every-8-columns ruler.
func (s *Screen) ResetAllTabstops() {
	for i := range s.tabstops {
		s.tabstops[i] = i != 0 && i%8 == 0
	}
}

// SetMargins sets the scroll region. top/bottom are 1-based inclusive
// per DECSTBM; 0 selects the full screen in either position.
func (s *Screen) SetMargins(top, bottom int) {
	if top <= 0 {
		top = 1
	}
	if bottom <= 0 || bottom > s.rows {
		bottom = s.rows
	}
	if top >= bottom {
		top, bottom = 1, s.rows
	}
	s.marginTop = top - 1
	s.marginBottom = bottom - 1
	s.cursorX, s.cursorY = 0, s.clampY(0)
}

// InsertLines inserts n blank lines at the cursor row, pushing rows
// at/below it down within the scroll region.
func (s *Screen) InsertLines(n int) {
	g := s.grid()
	for i := 0; i < n; i++ {
		copy(g[s.idx(0, s.cursorY+1):s.idx(0, s.marginBottom+1)], g[s.idx(0, s.cursorY):])
		s.clearRow(s.cursorY)
	}
}

// DeleteLines deletes n lines at the cursor row, pulling rows below it
// up within the scroll region.
func (s *Screen) DeleteLines(n int) {
	g := s.grid()
	for i := 0; i < n; i++ {
		copy(g[s.idx(0, s.cursorY):s.idx(0, s.marginBottom+1)], g[s.idx(0, s.cursorY+1):])
		s.clearRow(s.marginBottom)
	}
}

// InsertChars inserts n blank cells at the cursor, shifting the
// remainder of the row right (overflow is discarded).
func (s *Screen) InsertChars(n int) {
	g := s.grid()
	rowStart := s.idx(0, s.cursorY)
	row := g[rowStart : rowStart+s.cols]
	copy(row[s.cursorX+n:], row[s.cursorX:])
	for i := s.cursorX; i < s.cursorX+n && i < s.cols; i++ {
		row[i] = Cell{Rune: ' ', Attr: s.defAttr}
	}
}

// DeleteChars deletes n cells at the cursor, shifting the remainder of
// the row left and filling the tail with blanks.
func (s *Screen) DeleteChars(n int) {
	g := s.grid()
	rowStart := s.idx(0, s.cursorY)
	row := g[rowStart : rowStart+s.cols]
	copy(row[s.cursorX:], row[s.cursorX+n:])
	for i := s.cols - n; i < s.cols; i++ {
		if i >= s.cursorX {
			row[i] = Cell{Rune: ' ', Attr: s.defAttr}
		}
	}
}

// EraseChars blanks n cells starting at the cursor, without shifting.
func (s *Screen) EraseChars(n int) {
	g := s.grid()
	rowStart := s.idx(0, s.cursorY)
	for i := s.cursorX; i < s.cursorX+n && i < s.cols; i++ {
		g[rowStart+i] = Cell{Rune: ' ', Attr: s.defAttr}
	}
}

func (s *Screen) eraseAttr(protect bool) Attr {
	a := s.defAttr
	a.Protect = protect
	return a
}

func (s *Screen) eraseCell(protect bool) Cell {
	return Cell{Rune: ' ', Attr: s.eraseAttr(protect)}
}

func (s *Screen) eraseRange(from, to int, protect bool) {
	g := s.grid()
	cell := s.eraseCell(protect)
	for i := from; i < to; i++ {
		if g[i].Attr.Protect {
			continue
		}
		g[i] = cell
	}
}

// EraseCursorToEnd blanks from the cursor to the end of its line.
func (s *Screen) EraseCursorToEnd(protect bool) {
	rowStart := s.idx(0, s.cursorY)
	s.eraseRange(rowStart+s.cursorX, rowStart+s.cols, protect)
}

// EraseHomeToCursor blanks from the start of the cursor's line through
// the cursor, inclusive.
func (s *Screen) EraseHomeToCursor(protect bool) {
	rowStart := s.idx(0, s.cursorY)
	s.eraseRange(rowStart, rowStart+s.cursorX+1, protect)
}

// EraseCurrentLine blanks the entire cursor row.
func (s *Screen) EraseCurrentLine(protect bool) {
	rowStart := s.idx(0, s.cursorY)
	s.eraseRange(rowStart, rowStart+s.cols, protect)
}

// EraseCursorToScreen blanks from the cursor to the end of the screen.
func (s *Screen) EraseCursorToScreen(protect bool) {
	s.EraseCursorToEnd(protect)
	rowStart := s.idx(0, s.cursorY+1)
	s.eraseRange(rowStart, len(s.grid()), protect)
}

// EraseScreenToCursor blanks from the start of the screen to the
// cursor, inclusive.
func (s *Screen) EraseScreenToCursor(protect bool) {
	s.EraseHomeToCursor(protect)
	s.eraseRange(0, s.idx(0, s.cursorY), protect)
}

// EraseScreen blanks the entire active grid.
func (s *Screen) EraseScreen(protect bool) {
	s.eraseRange(0, len(s.grid()), protect)
}

// ClearScrollback discards all scrollback history.
func (s *Screen) ClearScrollback() { s.scrollback = nil }

// Write places a glyph with the given attribute at the cursor and
// advances it, wrapping at the right margin when AutoWrap is set.
func (s *Screen) Write(r rune, attr Attr) {
	if s.cursorX >= s.cols {
		if s.flags&AutoWrap != 0 {
			s.cursorX = 0
			s.MoveDown(1, true)
		} else {
			s.cursorX = s.cols - 1
		}
	}
	g := s.grid()
	pos := s.idx(s.cursorX, s.cursorY)
	if s.flags&InsertMode != 0 {
		rowStart := s.idx(0, s.cursorY)
		row := g[rowStart : rowStart+s.cols]
		copy(row[s.cursorX+1:], row[s.cursorX:])
	}
	g[pos] = Cell{Rune: r, Attr: attr}
	s.cursorX++
}

// SetDefAttr sets the attribute used to fill cells on erase.
func (s *Screen) SetDefAttr(attr Attr) { s.defAttr = attr }

// SetFlags ORs the given flags into the screen's flag word.
func (s *Screen) SetFlags(f Flag) { s.flags |= f }

// ResetFlags clears the given flags from the screen's flag word.
func (s *Screen) ResetFlags(f Flag) { s.flags &^= f }

// HasFlag reports whether every bit in f is set.
func (s *Screen) HasFlag(f Flag) bool { return s.flags&f == f }

// Reset clears the grid, margins, tabstops and cursor to their initial
// state without touching scrollback (callers needing a hard reset also
// call ClearScrollback and MoveTo(0,0), per VTE §3).
func (s *Screen) Reset() {
	for i := range s.primary {
		s.primary[i] = Cell{Rune: ' '}
	}
	for i := range s.altBuf {
		s.altBuf[i] = Cell{Rune: ' '}
	}
	s.cursorX, s.cursorY = 0, 0
	s.altCursorX, s.altCursorY = 0, 0
	s.marginTop, s.marginBottom = 0, s.rows-1
	s.ResetAllTabstops()
}

// Cell returns the cell at (x, y) in the active buffer, for rendering.
func (s *Screen) Cell(x, y int) Cell {
	return s.grid()[s.idx(x, y)]
}

// Rows reports the grid height.
func (s *Screen) Rows() int { return s.rows }

// Cols reports the grid width.
func (s *Screen) Cols() int { return s.cols }

// Scrollback returns the scrollback rows, oldest first.
func (s *Screen) Scrollback() [][]Cell { return s.scrollback }
