// Package dlog provides the minimal logging wrapper used across debclose.
package dlog

import (
	"fmt"
	"io"
)

// Logger is a minimal wrapper around an io.Writer, in the style of a plain
// prefixed line logger rather than a structured logging framework.
type Logger struct {
	io.Writer
	Verbose bool
}

// New returns a new Logger that writes to w.
func New(w io.Writer) *Logger {
	return &Logger{Writer: w}
}

// Logln logs a line.
func (l *Logger) Logln(args ...interface{}) {
	fmt.Fprintln(l, args...)
}

// Logf logs a formatted string.
func (l *Logger) Logf(f string, args ...interface{}) {
	fmt.Fprintf(l, f, args...)
}

// LogPkgfln logs a formatted line prefixed with "debclose: ".
func (l *Logger) LogPkgfln(format string, args ...interface{}) {
	fmt.Fprintf(l, "debclose: "+format+"\n", args...)
}

// Tracef logs a formatted line only when Verbose is enabled. Used by the
// closure walker to narrate visit/skip decisions and by the fetcher to
// narrate fetch attempts.
func (l *Logger) Tracef(format string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	fmt.Fprintf(l, format+"\n", args...)
}
