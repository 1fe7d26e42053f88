// Package logging wraps charmbracelet/log behind a small AppLogger.
//
// Everything goes to stderr: on the stdio transport, stdout carries the
// MCP protocol and must stay clean. When DEBUG is set, logs also go to a
// file at debug level so a full trace of tool invocations survives the
// session.
package logging

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// AppLogger is the structured logger handed to every component.
type AppLogger struct {
	logger *log.Logger
	debug  bool
}

// New creates the process logger. With debug enabled it tees output to
// logPath (truncated on each run) at debug level; otherwise it writes
// warnings and errors to stderr only.
func New(debug bool, logPath string) *AppLogger {
	var w io.Writer = os.Stderr
	level := log.WarnLevel

	if debug {
		level = log.DebugLevel
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644); err == nil {
			w = io.MultiWriter(os.Stderr, f)
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "polarion-mcp",
	})
	logger.SetLevel(level)

	return &AppLogger{logger: logger, debug: debug}
}

func (al *AppLogger) Info(msg string, keyvals ...any) {
	al.logger.Info(msg, keyvals...)
}

func (al *AppLogger) Warn(msg string, keyvals ...any) {
	al.logger.Warn(msg, keyvals...)
}

func (al *AppLogger) Error(msg string, keyvals ...any) {
	al.logger.Error(msg, keyvals...)
}

func (al *AppLogger) Debug(msg string, keyvals ...any) {
	if al.debug {
		al.logger.Debug(msg, keyvals...)
	}
}

// NewTestLogger returns a debug-level logger writing into a buffer so
// tests can assert on log output without timestamps.
func NewTestLogger() (*AppLogger, *bytes.Buffer) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false,
		Prefix:          "test",
	})
	logger.SetLevel(log.DebugLevel)

	return &AppLogger{logger: logger, debug: true}, &buf
}
