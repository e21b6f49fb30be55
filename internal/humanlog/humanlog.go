// Package humanlog is the error/banner-printing collaborator every fatal
// or startup message routes through, following the teacher's direct
// fmt.Printf/slog mix in cmd/consumption/main.go: banners are const
// templates printed with fmt.Printf, operational messages go through
// log/slog, and nothing in the sampling hot path touches either.
package humanlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

// Logger prints startup banners and fatal/warning messages to stdout/stderr,
// honoring the resolved --quiet/--verbose/--color settings.
type Logger struct {
	out     io.Writer
	errOut  io.Writer
	quiet   bool
	color   bool
	slogger *slog.Logger
}

// ResolveColor implements --color auto|always|never: auto checks whether
// out is a terminal (golang.org/x/term.IsTerminal) and honors NO_COLOR.
func ResolveColor(mode string, out *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return term.IsTerminal(int(out.Fd()))
	}
}

// New builds a Logger and the process-wide slog.Logger it wraps. level
// follows the teacher's quiet/default/verbose mapping (LevelWarn,
// LevelInfo, LevelDebug).
func New(quiet, verbose, color bool) *Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose:
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{
		out:     os.Stdout,
		errOut:  os.Stderr,
		quiet:   quiet,
		color:   color,
		slogger: slog.New(handler),
	}
}

// Slog returns the underlying structured logger for threading into
// component constructors.
func (l *Logger) Slog() *slog.Logger { return l.slogger }

// Banner prints a startup banner, suppressed under --quiet.
func (l *Logger) Banner(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Fatal prints a colored error line (when color is enabled) and logs it at
// error level. Callers are expected to os.Exit after calling this.
func (l *Logger) Fatal(msg string, args ...any) {
	if l.color {
		fmt.Fprintf(l.errOut, "%serror:%s %s\n", colorRed, colorReset, msg)
	} else {
		fmt.Fprintf(l.errOut, "error: %s\n", msg)
	}
	l.slogger.Error(msg, args...)
}

// Warn prints a colored warning line and logs it at warn level.
func (l *Logger) Warn(msg string, args ...any) {
	if !l.quiet {
		if l.color {
			fmt.Fprintf(l.errOut, "%swarning:%s %s\n", colorYellow, colorReset, msg)
		} else {
			fmt.Fprintf(l.errOut, "warning: %s\n", msg)
		}
	}
	l.slogger.Warn(msg, args...)
}
