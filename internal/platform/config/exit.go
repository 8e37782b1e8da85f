package config

import (
	"fmt"
	"io"
	"os"
)

// ExitCodeFailure is returned by CLI entry points when a command fails.
const ExitCodeFailure = 1

// Exitf writes a formatted error message to stderr and exits with ExitCodeFailure.
func Exitf(format string, args ...any) {
	Fprintf(os.Stderr, format, args...)
	os.Exit(ExitCodeFailure)
}

// Fprintf writes a newline-terminated message, ignoring write failures.
func Fprintf(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
