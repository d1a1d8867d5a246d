package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"corona-observer/src/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// base is shared by every named Logger so that Configure redirects them all.
var base = newBase(os.Stderr)

func newBase(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// -----------------------------------------------------------------------------

// Configure points all loggers at the configured file and level. The TUI owns
// the terminal, so a file is the only safe target while it runs. The returned
// closer flushes the rotating file.
func Configure(cfg *models.MConfig) (io.Closer, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	base.SetLevel(level)

	if cfg.LogFile == "" {
		base.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28,
	}
	base.SetOutput(file)
	return file, nil
}

// SetOutput redirects every logger, mainly for tests and -print mode.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

// ParseLevel maps the config level names (DEBUG, INFO, WARNING, ERROR) to logrus.
func ParseLevel(level string) (logrus.Level, error) {
	if level == "" {
		return logrus.InfoLevel, nil
	}
	l, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}

// -----------------------------------------------------------------------------

// Logger provides structured logging functionality
type Logger struct {
	name  string
	entry *logrus.Entry
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger instance
func NewLogger(name string) *Logger {
	return &Logger{
		name:  name,
		entry: base.WithField("component", name),
	}
}

// Named returns a logger for a sub-component, e.g. "CSSESource.confirmed".
func (l *Logger) Named(name string) *Logger {
	return NewLogger(l.name + "." + name)
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// -----------------------------------------------------------------------------

// Warning logs recoverable problems
func (l *Logger) Warning(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application. It also echoes to
// stderr since the log file may not be where the user is looking.
func (l *Logger) Critical(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.entry.Error("CRITICAL: " + msg)
	fmt.Fprintf(os.Stderr, "[%s] CRITICAL: %s\n", l.name, msg)
	os.Exit(1)
}
