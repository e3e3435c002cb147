package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_FileSink(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "loans.log")
	var fallback bytes.Buffer

	log := newLogger(Log{LogLevel: zapcore.InfoLevel, Sink: path}, "loans", zapcore.AddSync(&fallback))
	log.Info("started")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"logger":"loans"`)
	require.Contains(t, string(data), `"msg":"started"`)
	require.Empty(t, fallback.String())
}

func TestNewLogger_BadSinkIsReported(t *testing.T) {
	t.Parallel()
	sink := filepath.Join(t.TempDir(), "missing", "loans.log")
	var fallback bytes.Buffer

	log := newLogger(Log{LogLevel: zapcore.InfoLevel, Sink: sink}, "loans", zapcore.AddSync(&fallback))
	log.Info("started")

	out := fallback.String()
	require.Contains(t, out, "open log sink")
	require.Contains(t, out, sink)
	require.Contains(t, out, `"msg":"started"`)
}
