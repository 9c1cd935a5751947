// Command vtecat runs a child process attached to a pty, feeds its
// output through a vte.VTE, and renders the resulting screen grid to
// stdout once the child exits. It also forwards the controlling
// terminal's raw keystrokes to the child, so vtecat can run a full
// interactive shell.
//
// Adapted from main.go (subhav-terminal_parser): the same
// pty.Open/exec.Command/cmd.Wait skeleton, generalized from an
// http-serving demo to a direct pty-to-VTE-to-stdout pipeline, using
// golang.org/x/term for raw-mode stdin, golang.org/x/sys/unix for the
// window-size query, and
// zerolog for structured logging in place of the log standard package.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/subhav/vte/render"
	"github.com/subhav/vte/screen"
	"github.com/subhav/vte/vte"
)

// stdinWinsize queries the controlling terminal's current size via a
// direct TIOCGWINSZ ioctl, overriding the -cols/-rows flag defaults
// when stdin is a real tty.
func stdinWinsize() (cols, rows int, ok bool) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdin.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 0, 0, false
	}
	return int(ws.Col), int(ws.Row), true
}

func main() {
	paletteName := flag.String("palette", "", "named color palette (solarized, solarized-black, solarized-white, soft-black, base16-dark, base16-light)")
	cols := flag.Int("cols", 80, "screen columns")
	rows := flag.Int("rows", 24, "screen rows")
	htmlOut := flag.String("html", "", "write an HTML transcript of the session (scrollback + final screen) to this path")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Str("cmd", "vtecat").Logger()

	if flag.NArg() < 1 {
		log.Fatal().Msg("usage: vtecat <command> <args>...")
	}

	if wc, wr, ok := stdinWinsize(); ok {
		*cols, *rows = wc, wr
	}

	if err := run(log, *paletteName, *htmlOut, *cols, *rows, flag.Args()); err != nil {
		log.Fatal().Err(err).Msg("vtecat failed")
	}
}

func run(log zerolog.Logger, paletteName, htmlOut string, cols, rows int, args []string) error {
	con := screen.New(cols, rows)
	emu := vte.New(con,
		vte.WithLogger(log),
		vte.WithPalette(paletteName),
		vte.WithBell(func() { fmt.Fprint(os.Stderr, "\a") }),
	)

	cmd := exec.Command(args[0], args[1:]...)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("starting pty: %w", err)
	}
	defer ptmx.Close()

	_ = pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})

	sizeCh := make(chan os.Signal, 1)
	signal.Notify(sizeCh, syscall.SIGWINCH)
	go func() {
		for range sizeCh {
			// The screen grid's dimensions are fixed for its lifetime
			// (spec §3, dynamic resize is a declared Non-goal); we still
			// copy the controlling terminal's size onto the pty so the
			// child's ioctl queries return something sane.
			_ = pty.InheritSize(os.Stdin, ptmx)
		}
	}()
	sizeCh <- syscall.SIGWINCH

	var restore func() error
	if term.IsTerminal(int(os.Stdin.Fd())) {
		old, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err == nil {
			restore = func() error { return term.Restore(int(os.Stdin.Fd()), old) }
			defer restore()
		}
	}

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				if _, werr := ptmx.Write(buf[:n]); werr != nil {
					log.Debug().Err(werr).Msg("write to pty failed")
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			emu.Input(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				log.Debug().Err(err).Msg("reading from pty ended")
			}
			break
		}
	}

	_ = cmd.Wait()
	if restore != nil {
		_ = restore()
	}

	renderScreen(con)

	if htmlOut != "" {
		if err := os.WriteFile(htmlOut, []byte(render.Document(con)), 0o644); err != nil {
			log.Warn().Err(err).Str("path", htmlOut).Msg("writing HTML transcript failed")
		}
	}
	return nil
}

// renderScreen writes the final screen grid to stdout as plain text,
// one line per row, without the scrollback; blank rows are not trimmed.
func renderScreen(con *screen.Screen) {
	for y := 0; y < con.Rows(); y++ {
		line := make([]rune, con.Cols())
		for x := 0; x < con.Cols(); x++ {
			line[x] = con.Cell(x, y).Rune
		}
		fmt.Println(string(line))
	}
}
