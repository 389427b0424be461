// Package debug provides logging setup for the plugin.
//
// Logging is configured by an explicit Setup call owned by the host adapter.
// Nothing here runs at package init or on value construction, and nothing
// may be called from the audio thread.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultLogPath is where plugin logs go unless configured otherwise
const DefaultLogPath = "/tmp/ddconrod2.log"

// Config selects the log destination and verbosity
type Config struct {
	// Path of the log file. Empty logs to stderr.
	Path string
	// Level is a logrus level name ("debug", "info", "warn", ...)
	Level string
}

// DefaultConfig logs to DefaultLogPath at info level
func DefaultConfig() Config {
	return Config{
		Path:  DefaultLogPath,
		Level: "info",
	}
}

// Logger is a logrus logger that owns its output file
type Logger struct {
	*logrus.Logger
	file *os.File
}

// Setup creates a logger from cfg
func Setup(cfg Config) (*Logger, error) {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log level: %w", err)
		}
		level = parsed
	}

	l := &Logger{Logger: logrus.New()}
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if cfg.Path == "" {
		l.SetOutput(os.Stderr)
		return l, nil
	}

	// Create log directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l.file = file
	l.SetOutput(file)

	return l, nil
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	l := &Logger{Logger: logrus.New()}
	l.SetOutput(io.Discard)
	return l
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
