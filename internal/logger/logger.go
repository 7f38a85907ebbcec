// Package logger builds the zap logger shared by every component and captures
// panics to crash logs in the data directory.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	// Level is a zap level name ("debug", "info", "warn", "error"). Empty means info.
	Level string
	// Verbose forces debug level.
	Verbose bool
	// JSON selects the JSON encoder; the default is the console encoder.
	JSON bool
	// File, when set, receives the logs instead of stderr (used by the TUI).
	File string
}

// New builds a logger. The returned AtomicLevel can change the level at runtime.
func New(opts Options) (*zap.Logger, zap.AtomicLevel, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	atom := zap.NewAtomicLevelAt(level)

	config := zap.NewProductionConfig()
	config.Level = atom
	config.Sampling = nil
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if !opts.JSON {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, zap.AtomicLevel{}, fmt.Errorf("create log directory: %w", err)
		}
		config.OutputPaths = []string{opts.File}
		config.ErrorOutputPaths = []string{opts.File}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, atom, nil
}

// ParseLevel converts a level name. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// Component returns a child logger tagged with a component name.
func Component(l *zap.Logger, name string) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return l.With(zap.String("component", name))
}
