// Package logging provides structured JSON logging for liftbook.
//
// Sync failures are deliberately silent toward the user (offline-first),
// so the log stream is the only place transport problems show up.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Level represents a log severity level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the wire name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Fields carries structured context attached to a log line.
type Fields map[string]interface{}

// Logger writes level-filtered JSON lines to a single writer.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel Level
}

var (
	global *Logger
	once   sync.Once
)

// Init initializes the global logger. Subsequent calls are no-ops.
func Init(out io.Writer, minLevel Level) {
	once.Do(func() {
		global = &Logger{out: out, minLevel: minLevel}
	})
}

// Get returns the global logger, initializing a default one if needed.
func Get() *Logger {
	if global == nil {
		Init(os.Stdout, LevelInfo)
	}
	return global
}

// line is the serialized shape of one log record.
type line struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	Fields    Fields `json:"fields,omitempty"`
}

func (l *Logger) log(level Level, message string, err error, fields Fields) {
	if level < l.minLevel {
		return
	}

	rec := line{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		rec.Error = err.Error()
	}

	data, jsonErr := json.Marshal(rec)
	if jsonErr != nil {
		log.Printf("logging: marshal failed: %v", jsonErr)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, string(data))
}

// Debug logs a debug message.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, nil, fields)
}

// Info logs an info message.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, nil, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, nil, fields)
}

// Error logs an error message with its cause.
func (l *Logger) Error(message string, err error, fields Fields) {
	l.log(LevelError, message, err, fields)
}

// Package-level helpers using the global logger.

func Debug(message string, fields Fields) { Get().Debug(message, fields) }

func Info(message string, fields Fields) { Get().Info(message, fields) }

func Warn(message string, fields Fields) { Get().Warn(message, fields) }

func Error(message string, err error, fields Fields) { Get().Error(message, err, fields) }
