// Package logger wraps charmbracelet/log with the events the pqlite CLI reports.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at info level.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level.
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// LevelFor maps the CLI verbosity flags to a log level.
// Quiet wins over verbose.
func LevelFor(quiet, verbose bool) log.Level {
	switch {
	case quiet:
		return log.ErrorLevel
	case verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return New(io.Discard)
}

// ConfigLoaded logs which config file was applied.
func (l *Logger) ConfigLoaded(path string) {
	l.Debug("config loaded", "path", path)
}

// PoolStarted logs the resolved worker count.
func (l *Logger) PoolStarted(size int) {
	l.Debug("pool started", "workers", size)
}

// FileConverted logs a successful conversion.
func (l *Logger) FileConverted(source, dest string, size int, duration time.Duration) {
	l.Info("file converted",
		"source", source,
		"dest", dest,
		"size", humanize.Bytes(uint64(max(size, 0))),
		"duration", duration.Round(time.Millisecond))
}

// FileError logs an error for a specific file.
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// BatchCompleted logs the outcome of a batch conversion.
func (l *Logger) BatchCompleted(succeeded, failed int, duration time.Duration) {
	l.Info("batch completed",
		"succeeded", succeeded,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// WatchStarted logs the paths a watcher observes.
func (l *Logger) WatchStarted(paths []string) {
	l.Info("watching", "paths", len(paths))
	for _, p := range paths {
		l.Debug("watch path", "path", p)
	}
}

// Skipped logs when a file event is ignored.
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
