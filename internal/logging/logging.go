// Package logging builds the zap loggers shared by every host.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tomz197/alienfield/internal/config"
)

// Options selects the log sink and level.
type Options struct {
	// File is the rotating log file. Empty logs to Stderr.
	File      string
	MaxSizeMB int
	Level     string
	// Stderr overrides os.Stderr, mainly for tests.
	Stderr io.Writer
}

// FromEnv reads LOG_FILE, LOG_LEVEL and LOG_MAX_SIZE_MB.
func FromEnv() Options {
	return Options{
		File:      config.GetEnv("LOG_FILE", ""),
		MaxSizeMB: config.GetEnvInt("LOG_MAX_SIZE_MB", 10),
		Level:     config.GetEnv("LOG_LEVEL", "info"),
	}
}

// New builds a console-encoded SugaredLogger. The returned close function
// flushes the logger and releases the log file, if any.
func New(opts Options) (*zap.SugaredLogger, func()) {
	var ws zapcore.WriteSyncer
	var closer io.Closer
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    max(opts.MaxSizeMB, 1),
			MaxBackups: 3,
			MaxAge:     7,
		}
		ws = zapcore.AddSync(lj)
		closer = lj
	} else {
		out := opts.Stderr
		if out == nil {
			out = os.Stderr
		}
		ws = zapcore.AddSync(out)
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, ParseLevel(opts.Level))
	log := zap.New(core, zap.AddCaller()).Sugar()

	return log, func() {
		_ = log.Sync()
		if closer != nil {
			_ = closer.Close()
		}
	}
}

// ParseLevel maps a level name to a zap level. Unknown names yield Info.
func ParseLevel(name string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Printf adapts a SugaredLogger to Printf-style logger interfaces such as
// the one wish's logging middleware expects.
type Printf struct {
	Log *zap.SugaredLogger
}

func (p Printf) Printf(format string, v ...any) {
	p.Log.Infof(format, v...)
}
