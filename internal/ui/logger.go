package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	outMu sync.Mutex
	out   io.Writer = os.Stdout

	successMark = color.New(color.FgGreen).Sprint("✓")
	warningMark = color.New(color.FgYellow).Sprint("⚠")
)

// SetOutput redirects Logf and friends; it returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

// Logf logs a formatted message to the current output.
func Logf(format string, args ...interface{}) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, format, args...)
}

// Log writes a plain message followed by a newline.
func Log(msg string) {
	Logf("%s\n", msg)
}

// Successf logs a message prefixed with a green check mark.
func Successf(format string, args ...interface{}) {
	Logf("%s %s\n", successMark, fmt.Sprintf(format, args...))
}

// Warnf logs a message prefixed with a yellow warning sign.
func Warnf(format string, args ...interface{}) {
	Logf("%s %s\n", warningMark, fmt.Sprintf(format, args...))
}
