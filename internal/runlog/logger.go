// Package runlog provides file-based logging for swatchsheet runs.
// Standard output carries generated documents and previews, so diagnostics
// go to a separate file chosen with --log.
package runlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes timestamped key=value lines to a file.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	closer  io.Closer
	enabled bool
}

// Log is the global logger instance.
var Log = &Logger{}

// Init points the global logger at the specified file.
// If path is empty, logging is disabled.
func Init(path string) error {
	if path == "" {
		Log.mu.Lock()
		Log.enabled = false
		Log.mu.Unlock()
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	Log.SetOutput(f)
	Log.mu.Lock()
	Log.closer = f
	Log.mu.Unlock()
	Log.Info("Logger initialized", "path", path)
	return nil
}

// SetOutput directs the logger at w and enables it. A nil writer disables it.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.closer = nil
	l.enabled = w != nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = false
	if l.closer != nil {
		err := l.closer.Close()
		l.closer = nil
		return err
	}
	return nil
}

// Enabled returns whether logging is active.
func (l *Logger) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Writer returns the underlying io.Writer for use with other logging libraries.
func (l *Logger) Writer() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || l.out == nil {
		return io.Discard
	}
	return l.out
}

func (l *Logger) log(level string, msg string, keyvals ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || l.out == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	line := fmt.Sprintf("%s [%s] %s", timestamp, level, msg)

	for i := 0; i < len(keyvals)-1; i += 2 {
		line += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
	}

	fmt.Fprintln(l.out, line)
	if f, ok := l.out.(*os.File); ok {
		f.Sync()
	}
}

// Debug logs a debug message with optional key-value pairs.
func (l *Logger) Debug(msg string, keyvals ...any) {
	l.log("DEBUG", msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func (l *Logger) Info(msg string, keyvals ...any) {
	l.log("INFO", msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func (l *Logger) Warn(msg string, keyvals ...any) {
	l.log("WARN", msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func (l *Logger) Error(msg string, keyvals ...any) {
	l.log("ERROR", msg, keyvals...)
}

// Timed logs the duration of an operation. Usage:
//
//	defer runlog.Log.Timed("generate sheet")()
func (l *Logger) Timed(operation string) func() {
	if !l.Enabled() {
		return func() {}
	}
	start := time.Now()
	l.Debug(operation, "status", "started")
	return func() {
		l.Debug(operation, "status", "completed", "duration", time.Since(start))
	}
}
