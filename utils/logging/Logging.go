// Package logging builds the structured loggers used by experiments
// and the command line interface
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log formats
const (
	Console string = "console"
	JSON    string = "json"
)

// New returns a new logger writing to standard error at the argument
// level ("debug", "info", "warn", or "error") in the argument format
func New(level, format string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	var config zap.Config
	switch format {
	case Console:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	case JSON:
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("new: unknown log format %q", format)
	}
	config.Level = atomicLevel

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return logger, nil
}
