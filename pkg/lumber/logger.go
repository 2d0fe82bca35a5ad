package lumber

import (
	errs "github.com/autoqa/autoqa/pkg/errors"
)

// Logger is the logging interface used across autoqa.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// LoggingConfig stores the config for the logger.
type LoggingConfig struct {
	EnableConsole     bool
	ConsoleJSONFormat bool
	ConsoleLevel      string
	EnableFile        bool
	FileJSONFormat    bool
	FileLevel         string
	FileLocation      string
}

// Log levels.
const (
	Debug = "debug"
	Info  = "info"
	Warn  = "warn"
	Error = "error"
	Fatal = "fatal"
)

// InstanceZapLogger is the zap backed logger instance.
const InstanceZapLogger = iota

// NewLogger returns a logger instance for the given backend.
func NewLogger(config *LoggingConfig, verbose bool, loggerInstance int) (Logger, error) {
	if !verbose {
		config.ConsoleLevel = Info
		config.FileLevel = Info
	}
	switch loggerInstance {
	case InstanceZapLogger:
		return newZapLogger(config)
	default:
		return nil, errs.ErrInvalidLoggerInstance
	}
}
