package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	l := &StdoutLogger{Out: &buf}
	l.Logf("a %d\n", 1)
	l.Debugf("hidden\n")
	l.Log("b")
	assert.Equal(t, "a 1\nb\n", buf.String())

	buf.Reset()
	l.Verbose = true
	l.Debugf("shown\n")
	assert.Equal(t, "shown\n", buf.String())
}

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewZapLoggerFrom(zap.New(core))

	l.Logf("transformed %s\n", "App.jsx")
	l.Debugf("dropped at info level")
	l.With("path", "App.jsx", "hooks", 2).Log("done")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "transformed App.jsx", entries[0].Message)
	assert.Equal(t, "done", entries[1].Message)
	assert.Equal(t, map[string]interface{}{"path": "App.jsx", "hooks": int64(2)}, entries[1].ContextMap())
}

func TestStartSpinner_NonUILogger(t *testing.T) {
	s := StartSpinner(Nop{}, "working")
	require.NotNil(t, s)
	s.Update("still working")
	s.Stop()
	s.Fail()
}
