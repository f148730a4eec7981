// Package logger writes prefixed, coloured log lines. Info goes to stdout,
// Warn and Error go to stderr.
package logger

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

var (
	// Info is the normal log, on stdout.
	Info *log.Logger
	// Warn is for recoverable problems such as skipped workbook rows.
	Warn *log.Logger
	// Error is for failures, on stderr.
	Error *log.Logger
)

func init() {
	SetOutput(os.Stdout, os.Stderr)
}

// SetOutput redirects the loggers. Tests use it to capture output.
func SetOutput(stdout, stderr io.Writer) {
	Info = log.New(stdout, color.New(color.FgCyan).Sprint("[info] "), log.LstdFlags|log.Lmsgprefix)
	Warn = log.New(stderr, color.New(color.FgYellow).Sprint("[warn] "), log.LstdFlags|log.Lmsgprefix)
	Error = log.New(stderr, color.New(color.FgRed, color.Bold).Sprint("[err]  "), log.LstdFlags|log.Lmsgprefix)
}

// Printf logs to Info.
func Printf(format string, v ...any) {
	Info.Printf(format, v...)
}

// Warnf logs to Warn.
func Warnf(format string, v ...any) {
	Warn.Printf(format, v...)
}

// Errorf logs to Error.
func Errorf(format string, v ...any) {
	Error.Printf(format, v...)
}
