// Package logging builds the process logger used by the command-line tools.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger on stderr at the named level ("debug", "info",
// "warn", "error"). The returned AtomicLevel changes the level of the live
// logger, so a config reload can adjust verbosity without rebuilding it.
func New(level string) (*zap.Logger, zap.AtomicLevel, error) {
	atomic := zap.NewAtomicLevel()
	if err := SetLevel(atomic, level); err != nil {
		return nil, atomic, err
	}

	config := zap.Config{
		Level:       atomic,
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, atomic, fmt.Errorf("build logger: %w", err)
	}
	return logger, atomic, nil
}

// SetLevel parses level and applies it to atomic. An empty level means info.
func SetLevel(atomic zap.AtomicLevel, level string) error {
	if level == "" {
		atomic.SetLevel(zapcore.InfoLevel)
		return nil
	}
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	atomic.SetLevel(parsed)
	return nil
}
