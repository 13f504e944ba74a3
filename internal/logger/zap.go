package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger writes structured JSON log lines, one per message.
type ZapLogger struct {
	log *zap.SugaredLogger
}

// NewZapLogger builds a production zap logger; verbose lowers the level to debug.
func NewZapLogger(verbose bool) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	config.Sampling = nil
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &ZapLogger{log: l.Sugar()}, nil
}

// NewZapLoggerFrom wraps an existing zap logger.
func NewZapLoggerFrom(l *zap.Logger) *ZapLogger {
	return &ZapLogger{log: l.Sugar()}
}

func (l *ZapLogger) Logf(format string, args ...interface{}) {
	l.log.Info(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

func (l *ZapLogger) Log(msg string) { l.log.Info(msg) }

func (l *ZapLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

// With returns a logger that adds key/value pairs to every entry.
func (l *ZapLogger) With(keysAndValues ...interface{}) *ZapLogger {
	return &ZapLogger{log: l.log.With(keysAndValues...)}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error { return l.log.Sync() }
