// Package logger constructs the zap loggers used across the module.
package logger

import "go.uber.org/zap"

// LoggerConfig controls logger construction.
type LoggerConfig struct {
	// Debug switches to a development logger with debug-level output.
	Debug bool
}

// NewLogger returns a production JSON logger by default, or a development
// console logger with debug-level output when Debug is set.
func NewLogger(cfg *LoggerConfig) (*zap.Logger, error) {
	if cfg == nil {
		cfg = &LoggerConfig{}
	}
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
