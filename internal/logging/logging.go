package logging

import (
	"bytes"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// stdout carries the protocol, so nothing in this package ever writes to it.

type AppLogger struct {
	logger *log.Logger
	debug  bool
}

var (
	defaultLogger *AppLogger
	once          sync.Once
)

// GetDefault returns the default logger instance (singleton-like for convenience)
func GetDefault() *AppLogger {
	once.Do(func() {
		defaultLogger = NewAppLogger()
	})
	return defaultLogger
}

// Package-level convenience functions over the default logger
func Error(msg string, keyvals ...interface{}) {
	GetDefault().Error(msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) {
	GetDefault().Debug(msg, keyvals...)
}

// DebugEnabled reports whether DEBUG or FILEMCP_DEBUG is set
func DebugEnabled() bool {
	return os.Getenv("DEBUG") != "" || os.Getenv("FILEMCP_DEBUG") != ""
}

// NewAppLogger builds a logger from the environment. Most callers want
// GetDefault instead, so that every package shares one destination.
func NewAppLogger() *AppLogger {
	if !DebugEnabled() {
		// Production: warnings and errors to stderr only
		return NewAppLoggerTo(os.Stderr, false)
	}

	// Development: log to a state file, cleared on each run
	logPath, err := xdg.StateFile("filemcp/filemcp.log")
	if err != nil {
		panic(fmt.Sprintf("Failed to resolve debug log path: %v", err))
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		panic(fmt.Sprintf("Failed to create debug log file: %v", err))
	}

	al := NewAppLoggerTo(logFile, true)
	al.Info("Debug logging enabled", "log_file", logPath)
	return al
}

// NewAppLoggerTo creates a logger writing to w, at debug level when debug is
// set and warn level otherwise.
func NewAppLoggerTo(w io.Writer, debug bool) *AppLogger {
	return &AppLogger{
		logger: newLogger(w, debug),
		debug:  debug,
	}
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	if debug {
		logger := log.NewWithOptions(w, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "FileMCP",
		})
		logger.SetLevel(log.DebugLevel)
		return logger
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "FileMCP",
	})
	logger.SetLevel(log.WarnLevel)
	return logger
}

// Log application events
func (al *AppLogger) Info(msg string, keyvals ...interface{}) {
	al.logger.Info(msg, keyvals...)
}

func (al *AppLogger) Warn(msg string, keyvals ...interface{}) {
	al.logger.Warn(msg, keyvals...)
}

func (al *AppLogger) Error(msg string, keyvals ...interface{}) {
	al.logger.Error(msg, keyvals...)
}

func (al *AppLogger) Debug(msg string, keyvals ...interface{}) {
	if al.debug {
		al.logger.Debug(msg, keyvals...)
	}
}

// With returns a logger that adds keyvals to every entry
func (al *AppLogger) With(keyvals ...interface{}) *AppLogger {
	return &AppLogger{
		logger: al.logger.With(keyvals...),
		debug:  al.debug,
	}
}

// StandardLog adapts the logger for libraries that expect a *log.Logger.
// Everything written through it is logged at error level.
func (al *AppLogger) StandardLog() *stdlog.Logger {
	return al.logger.StandardLog(log.StandardLogOptions{
		ForceLevel: log.ErrorLevel,
	})
}

// Pretty print any object
func (al *AppLogger) DebugObject(name string, obj interface{}) {
	if al.debug {
		al.logger.Debug("Object dump", "name", name, "object", fmt.Sprintf("%+v", obj))
	}
}

// Log performance metrics
func (al *AppLogger) LogPerformance(operation string, start time.Time) {
	if al.debug {
		duration := time.Since(start)
		al.logger.Debug("Performance",
			"operation", operation,
			"duration", duration,
		)
	}
}

// Log tool invocations for debugging
func (al *AppLogger) LogToolCall(tool, requestID string) {
	if al.debug {
		al.logger.Debug("Tool call",
			"tool", tool,
			"request_id", requestID,
		)
	}
}

// Testing Helper - NewTestLogger creates a logger that writes to a buffer for testing
func NewTestLogger() (*AppLogger, *bytes.Buffer) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false, // Easier to test without timestamps
		ReportCaller:    false,
		Prefix:          "Test",
	})
	logger.SetLevel(log.DebugLevel)

	return &AppLogger{
		logger: logger,
		debug:  true,
	}, &buf
}
