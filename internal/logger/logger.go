package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the simulation log file, relative to the working directory (project root when run via go run ./cmd/rigidsim).
const DefaultPath = "logs/sim.txt"

// Logger stores lines of text (lifecycle events, commands, run-loop exits) in memory and appends them to a file on disk.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	now   func() time.Time
}

// New returns a new Logger writing to path and ensures its directory exists.
// An empty path keeps lines in memory only.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0), now: time.Now}
}

// Path returns the log file path, or "" for a memory-only logger.
func (l *Logger) Path() string {
	return l.path
}

// Log appends a line to the logger and appends it to the log file on disk. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
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

// Logf formats according to format and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns a copy of the last n stored lines.
func (l *Logger) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.lines) {
		n = len(l.lines)
	}
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	copy(out, l.lines[len(l.lines)-n:])
	return out
}
