package logger

// Logger is the output sink used across hooklog. Debugf output is only shown
// in verbose mode.
type Logger interface {
	Logf(format string, args ...interface{})
	Log(msg string)
	Debugf(format string, args ...interface{})
}

// Spinner displays progress for a long-running operation.
// Implementations should be safe for single-threaded Start/Stop/Fail usage.
type Spinner interface {
	// Update changes the spinner text while running.
	Update(text string)
	// Stop stops the spinner and prints a success indicator.
	Stop()
	// Fail stops the spinner and prints a failure indicator.
	Fail()
}

// noOpSpinner is used when output is non-interactive (e.g., tests, piped output).
// It performs no rendering to keep output stable.
type noOpSpinner struct{}

func (n *noOpSpinner) Update(text string) {}
func (n *noOpSpinner) Stop()              {}
func (n *noOpSpinner) Fail()              {}

// Nop discards everything
type Nop struct{}

func (Nop) Logf(format string, args ...interface{})   {}
func (Nop) Log(msg string)                            {}
func (Nop) Debugf(format string, args ...interface{}) {}

// StartSpinner starts a spinner when l renders to a terminal and returns a
// no-op spinner otherwise.
func StartSpinner(l Logger, text string) Spinner {
	if ui, ok := l.(*UILogger); ok {
		return ui.StartSpinner(text)
	}
	return &noOpSpinner{}
}
