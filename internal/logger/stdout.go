package logger

import (
	"fmt"
	"io"
	"os"
)

type StdoutLogger struct {
	Verbose bool
	Out     io.Writer
}

func NewStdoutLogger(verbose bool) *StdoutLogger {
	return &StdoutLogger{Verbose: verbose, Out: os.Stdout}
}

func (l *StdoutLogger) Logf(format string, args ...interface{}) {
	fmt.Fprintf(l.out(), format, args...)
}
func (l *StdoutLogger) Log(msg string) { fmt.Fprintln(l.out(), msg) }

func (l *StdoutLogger) Debugf(format string, args ...interface{}) {
	if l.Verbose {
		fmt.Fprintf(l.out(), format, args...)
	}
}

func (l *StdoutLogger) out() io.Writer {
	if l.Out == nil {
		return os.Stdout
	}
	return l.Out
}
