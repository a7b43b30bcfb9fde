package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), "level %q", name)
	}
}

func TestNewWritesConsoleLines(t *testing.T) {
	var buf bytes.Buffer
	log, closeLog := New(Options{Level: "info", Stderr: &buf})

	log.Debugw("hidden")
	log.Infow("session created", "seed", 42)
	Printf{Log: log}.Printf("ssh %s", "connect")
	closeLog()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "session created")
	assert.Contains(t, out, `"seed": 42`)
	assert.Contains(t, out, "ssh connect")
}

func TestNewRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alienfield.log")
	log, closeLog := New(Options{File: path, Level: "debug"})
	log.Debug("to file")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_FILE", "/tmp/x.log")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_MAX_SIZE_MB", "bogus")

	opts := FromEnv()
	assert.Equal(t, "/tmp/x.log", opts.File)
	assert.Equal(t, "warn", opts.Level)
	assert.Equal(t, 10, opts.MaxSizeMB)
}

func TestNopDiscards(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Infow("dropped", "k", 1) })
}
