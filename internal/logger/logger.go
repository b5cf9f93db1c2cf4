package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the path to the session log file, relative to the working directory (project root when run via go run ./cmd/game).
const LogFilePath = "logs/sandbox.txt"

// Logger stores lines of text (drag lifecycle, config warnings) in memory and appends them to a file on disk.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	now   func() time.Time
}

// New returns a new Logger writing to LogFilePath and ensures the logs directory exists.
func New() *Logger {
	dir := filepath.Dir(LogFilePath)
	_ = os.MkdirAll(dir, 0755)
	return &Logger{path: LogFilePath, lines: make([]string, 0), now: time.Now}
}

// NewMemory returns a Logger that keeps lines in memory only. Used by tests and headless runs.
func NewMemory() *Logger {
	return &Logger{lines: make([]string, 0), now: time.Now}
}

// Log appends a line to the logger and, if file-backed, to the log file. Each entry is prefixed with [timestamp] using computer time.
// A nil Logger discards the line.
func (l *Logger) Log(line string) {
	if l == nil {
		return
	}
	ts := l.now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats according to a format specifier and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
