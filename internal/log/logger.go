// Package log provides leveled, thread-safe logging to a file. The store
// packages never log; only the CLI layer does.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level, case-insensitively. Unrecognized
// strings map to LevelWarn.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelWarn
	}
}

// Logger writes leveled messages to a file.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	minLevel Level
}

// New creates a logger appending to the file at logPath, creating parent
// directories as needed.
func New(logPath string, minLevel Level) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{file: file, minLevel: minLevel}, nil
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

func (l *Logger) log(level Level, format string, args ...any) {
	if l == nil || level < l.minLevel {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("%s %-5s %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		level.String(),
		fmt.Sprintf(format, args...))

	if _, err := l.file.WriteString(line); err != nil && level >= LevelError {
		fmt.Fprintf(os.Stderr, "logger: write failed: %v\n", err)
	}
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

// Nop is a logger that discards everything. Useful for tests and for
// running with logging disabled.
type Nop struct{}

func (Nop) Debug(_ string, _ ...any) {}
func (Nop) Info(_ string, _ ...any)  {}
func (Nop) Warn(_ string, _ ...any)  {}
func (Nop) Error(_ string, _ ...any) {}
func (Nop) Close() error             { return nil }

// Sink is the small logging surface the CLI layer depends on.
type Sink interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Close() error
}

var (
	_ Sink = (*Logger)(nil)
	_ Sink = Nop{}
)
