// Package palette holds the VTE's built-in color tables and the helpers
// (Resolve256, Brighten) the VTE uses when it resolves
// (foreground-code, background-code, bold) attribute triples into RGB.
//
// Transcribed from the libtsm color_palette* tables
// (_examples/original_source/src/tsm/tsm-vte.c, lines 202-354): seven
// built-in 18-slot palettes plus a caller-supplied custom slot.
package palette

// Slot indexes one of the 16 named ANSI colors plus the two reserved
// foreground/background slots.
type Slot int

const (
	Black Slot = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	LightGrey
	DarkGrey
	LightRed
	LightGreen
	LightYellow
	LightBlue
	LightMagenta
	LightCyan
	White
	Foreground
	Background

	NumSlots
)

// RGB is one resolved color triple.
type RGB struct {
	R, G, B uint8
}

// Table is an 18-slot RGB palette.
type Table [NumSlots]RGB

var builtin = Table{
	Black:        {0, 0, 0},
	Red:          {205, 0, 0},
	Green:        {0, 205, 0},
	Yellow:       {205, 205, 0},
	Blue:         {0, 0, 238},
	Magenta:      {205, 0, 205},
	Cyan:         {0, 205, 205},
	LightGrey:    {229, 229, 229},
	DarkGrey:     {127, 127, 127},
	LightRed:     {255, 0, 0},
	LightGreen:   {0, 255, 0},
	LightYellow:  {255, 255, 0},
	LightBlue:    {92, 92, 255},
	LightMagenta: {255, 0, 255},
	LightCyan:    {0, 255, 255},
	White:        {255, 255, 255},
	Foreground:   {229, 229, 229},
	Background:   {0, 0, 0},
}

var solarized = Table{
	Black:        {7, 54, 66},
	Red:          {220, 50, 47},
	Green:        {133, 153, 0},
	Yellow:       {181, 137, 0},
	Blue:         {38, 139, 210},
	Magenta:      {211, 54, 130},
	Cyan:         {42, 161, 152},
	LightGrey:    {238, 232, 213},
	DarkGrey:     {0, 43, 54},
	LightRed:     {203, 75, 22},
	LightGreen:   {88, 110, 117},
	LightYellow:  {101, 123, 131},
	LightBlue:    {131, 148, 150},
	LightMagenta: {108, 113, 196},
	LightCyan:    {147, 161, 161},
	White:        {253, 246, 227},
	Foreground:   {238, 232, 213},
	Background:   {7, 54, 66},
}

var solarizedBlack = Table{
	Black:        {0, 0, 0},
	Red:          {220, 50, 47},
	Green:        {133, 153, 0},
	Yellow:       {181, 137, 0},
	Blue:         {38, 139, 210},
	Magenta:      {211, 54, 130},
	Cyan:         {42, 161, 152},
	LightGrey:    {238, 232, 213},
	DarkGrey:     {0, 43, 54},
	LightRed:     {203, 75, 22},
	LightGreen:   {88, 110, 117},
	LightYellow:  {101, 123, 131},
	LightBlue:    {131, 148, 150},
	LightMagenta: {108, 113, 196},
	LightCyan:    {147, 161, 161},
	White:        {253, 246, 227},
	Foreground:   {238, 232, 213},
	Background:   {0, 0, 0},
}

var solarizedWhite = Table{
	Black:        {7, 54, 66},
	Red:          {220, 50, 47},
	Green:        {133, 153, 0},
	Yellow:       {181, 137, 0},
	Blue:         {38, 139, 210},
	Magenta:      {211, 54, 130},
	Cyan:         {42, 161, 152},
	LightGrey:    {238, 232, 213},
	DarkGrey:     {0, 43, 54},
	LightRed:     {203, 75, 22},
	LightGreen:   {88, 110, 117},
	LightYellow:  {101, 123, 131},
	LightBlue:    {131, 148, 150},
	LightMagenta: {108, 113, 196},
	LightCyan:    {147, 161, 161},
	White:        {253, 246, 227},
	Foreground:   {7, 54, 66},
	Background:   {238, 232, 213},
}

var softBlack = Table{
	Black:        {0x3f, 0x3f, 0x3f},
	Red:          {0x70, 0x50, 0x50},
	Green:        {0x60, 0xb4, 0x8a},
	Yellow:       {0xdf, 0xaf, 0x8f},
	Blue:         {0x9a, 0xb8, 0xd7},
	Magenta:      {0xdc, 0x8c, 0xc3},
	Cyan:         {0x8c, 0xd0, 0xd3},
	LightGrey:    {0xff, 0xff, 0xff},
	DarkGrey:     {0x70, 0x90, 0x80},
	LightRed:     {0xdc, 0xa3, 0xa3},
	LightGreen:   {0x72, 0xd5, 0xa3},
	LightYellow:  {0xf0, 0xdf, 0xaf},
	LightBlue:    {0x94, 0xbf, 0xf3},
	LightMagenta: {0xec, 0x93, 0xd3},
	LightCyan:    {0x93, 0xe0, 0xe3},
	White:        {0xdc, 0xdc, 0xcc},
	Foreground:   {0xdc, 0xdc, 0xcc},
	Background:   {0x2c, 0x2c, 0x2c},
}

var base16Dark = Table{
	Black:        {0x00, 0x00, 0x00},
	Red:          {0xab, 0x46, 0x42},
	Green:        {0xa1, 0xb5, 0x6c},
	Yellow:       {0xf7, 0xca, 0x88},
	Blue:         {0x7c, 0xaf, 0xc2},
	Magenta:      {0xba, 0x8b, 0xaf},
	Cyan:         {0x86, 0xc1, 0xb9},
	LightGrey:    {0xaa, 0xaa, 0xaa},
	DarkGrey:     {0x55, 0x55, 0x55},
	LightRed:     {0xab, 0x46, 0x42},
	LightGreen:   {0xa1, 0xb5, 0x6c},
	LightYellow:  {0xf7, 0xca, 0x88},
	LightBlue:    {0x7c, 0xaf, 0xc2},
	LightMagenta: {0xba, 0x8b, 0xaf},
	LightCyan:    {0x86, 0xc1, 0xb9},
	White:        {0xff, 0xff, 0xff},
	Foreground:   {0xd8, 0xd8, 0xd8},
	Background:   {0x18, 0x18, 0x18},
}

var base16Light = Table{
	Black:        {0x00, 0x00, 0x00},
	Red:          {0xab, 0x46, 0x42},
	Green:        {0xa1, 0xb5, 0x6c},
	Yellow:       {0xf7, 0xca, 0x88},
	Blue:         {0x7c, 0xaf, 0xc2},
	Magenta:      {0xba, 0x8b, 0xaf},
	Cyan:         {0x86, 0xc1, 0xb9},
	LightGrey:    {0xaa, 0xaa, 0xaa},
	DarkGrey:     {0x55, 0x55, 0x55},
	LightRed:     {0xab, 0x46, 0x42},
	LightGreen:   {0xa1, 0xb5, 0x6c},
	LightYellow:  {0xf7, 0xca, 0x88},
	LightBlue:    {0x7c, 0xaf, 0xc2},
	LightMagenta: {0xba, 0x8b, 0xaf},
	LightCyan:    {0x86, 0xc1, 0xb9},
	White:        {0xff, 0xff, 0xff},
	Foreground:   {0x18, 0x18, 0x18},
	Background:   {0xd8, 0xd8, 0xd8},
}

// Named looks up a built-in palette by the names listed in spec §6.
// Unknown or empty names return the default VGA-like table, false.
func Named(name string) (Table, bool) {
	switch name {
	case "solarized":
		return solarized, true
	case "solarized-black":
		return solarizedBlack, true
	case "solarized-white":
		return solarizedWhite, true
	case "soft-black":
		return softBlack, true
	case "base16-dark":
		return base16Dark, true
	case "base16-light":
		return base16Light, true
	default:
		return builtin, false
	}
}

// Cube6 holds the 6-level color ramp used for the ECMA-48 256-color
// cube (indices 16-231) and its companion grayscale ramp (232-255).
var Cube6 = [6]uint8{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}

// Resolve256 decodes an extended-color 256-color index (0-255) into an
// RGB triple per spec §4.7. Indices 0-15 are reported as a color code
// instead (isCode true) so the caller can track it as a named slot.
func Resolve256(index int) (rgb RGB, code int, isCode bool) {
	switch {
	case index < 16:
		return RGB{}, index, true
	case index < 232:
		i := index - 16
		b := Cube6[i%6]
		i /= 6
		g := Cube6[i%6]
		i /= 6
		r := Cube6[i%6]
		return RGB{r, g, b}, -1, false
	default:
		v := uint8((index-232)*10 + 8)
		return RGB{v, v, v}, -1, false
	}
}

// Brighten maps a dark color code (0-7) to its bright counterpart
// (8-15), matching libtsm's to_rgb(): bold text always renders in the
// light variant of a set color code, even when the terminal doesn't
// otherwise render bold glyphs distinctly.
func Brighten(code int) int {
	if code >= 0 && code < 8 {
		return code + 8
	}
	return code
}
