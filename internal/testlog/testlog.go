// Package testlog adapts Go's testing.T into a zerolog writer, so
// package tests can pass vte.WithLogger(testlog.New(t)) and have every
// log line show up attributed to the failing test instead of vanishing
// into stderr.
package testlog

import "github.com/rs/zerolog"

// T is the subset of *testing.T this package needs.
type T interface {
	Logf(format string, args ...interface{})
}

// writer is an io.Writer that forwards each Write to t.Logf.
type writer struct {
	t T
}

func (w writer) Write(p []byte) (int, error) {
	w.t.Logf("%s", p)
	return len(p), nil
}

// New returns a zerolog.Logger that writes through t.Logf.
func New(t T) zerolog.Logger {
	return zerolog.New(writer{t: t}).With().Timestamp().Logger()
}
