// Package log writes reconciliation traces to a log file under the data
// directory, keeping them out of command output.
package log

import (
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"time"
)

// Logger appends timestamped lines to a single log file.
type Logger struct {
	file *os.File
}

// New opens (or creates) plansync.log in the given directory.
func New(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(logDir, "plansync.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{file: file}, nil
}

// Infof writes a line to the log file only.
func (l *Logger) Infof(format string, args ...interface{}) {
	_, _ = fmt.Fprint(l.file, l.line(format, args...))
}

// Errorf writes a line to both stderr and the log file.
func (l *Logger) Errorf(format string, args ...interface{}) {
	line := l.line(format, args...)
	_, _ = fmt.Fprint(os.Stderr, line)
	_, _ = fmt.Fprint(l.file, line)
}

func (l *Logger) line(format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	return fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), msg)
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

var globalLogger *Logger

// Init initializes the global logger and redirects the standard log
// package to the file, so stray log.Printf calls don't mix into command
// output.
func Init(logDir string) error {
	logger, err := New(logDir)
	if err != nil {
		return err
	}
	globalLogger = logger

	stdlog.SetOutput(logger.file)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)
	return nil
}

// Infof writes to the log file through the global logger. Without Init it
// is a no-op: informational traces have no place in command output.
func Infof(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Infof(format, args...)
	}
}

// Errorf writes to stderr and the log file through the global logger.
func Errorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}
