// Package logger provides leveled logging for apache2-vhost.
//
// The logger writes diagnostic detail to stderr, separate from the listings
// and rendered configs that go to stdout. It is a thin wrapper around a zap
// console core so call sites keep a printf-style API.
//
// # Log Levels
//
//   - Debug: each filesystem step as it is performed
//   - Info: resolved paths and configuration decisions
//   - Warn: conditions that do not stop the command
//   - Error: the failing error chain, logged with LogError in verbose mode
//
// # Initialization
//
// Initialize the logger from the --verbose flag:
//
//	logger.Init(verbose)  // verbose=true enables Debug level
//
// By default only Warn and Error messages are shown.
//
// # Output Format
//
//	2026-10-16T10:30:45.123Z  [DEBUG]  writing config  {"document_root": "/var/www/example", "host": "example.com", "path": "/etc/apache2/sites-available/example.com.vhost.conf"}
//	2026-10-16T10:30:45.124Z  [INFO]   resolved root  {"root": "/etc/apache2", "source": "binary"}
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
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

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// Logger handles leveled logging with thread-safe output.
type Logger struct {
	mu    sync.Mutex
	level Level
	atom  zap.AtomicLevel
	zl    *zap.Logger
}

// Global logger instance.
var std = newLogger(os.Stderr, LevelWarn)

func newLogger(w io.Writer, level Level) *Logger {
	l := &Logger{
		level: level,
		atom:  zap.NewAtomicLevelAt(level.zapLevel()),
	}
	l.zl = zap.New(newCore(w, l.atom))
	return l
}

// newCore builds the console core, bracketing level names like "[WARN]".
func newCore(w io.Writer, atom zap.AtomicLevel) zapcore.Core {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + l.CapitalString() + "]")
	}
	encCfg.NameKey = ""
	encCfg.CallerKey = ""
	encCfg.StacktraceKey = ""

	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		atom,
	)
}

// Init initializes the global logger with the specified verbosity.
// When verbose is true, Debug and Info levels are enabled.
// When verbose is false, only Warn and Error are shown.
func Init(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelWarn)
	}
}

// SetLevel sets the minimum log level for the global logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
	std.atom.SetLevel(level.zapLevel())
}

// SetOutput sets the output destination for the global logger.
// A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	std.mu.Lock()
	defer std.mu.Unlock()
	std.zl = zap.New(newCore(w, std.atom))
}

// Sync flushes buffered entries. Call before the process exits.
func Sync() {
	_ = current().Sync()
}

func current() *zap.Logger {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.zl
}

func write(level Level, msg string, fields ...zap.Field) {
	zl := current()
	switch level {
	case LevelDebug:
		zl.Debug(msg, fields...)
	case LevelInfo:
		zl.Info(msg, fields...)
	case LevelWarn:
		zl.Warn(msg, fields...)
	default:
		zl.Error(msg, fields...)
	}
}

// toFields converts a map into zap fields ordered by key.
func toFields(fields map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

// Debug logs a debug message.
// Only shown when verbose mode is enabled.
func Debug(format string, args ...interface{}) {
	write(LevelDebug, fmt.Sprintf(format, args...))
}

// Info logs an informational message.
// Only shown when verbose mode is enabled.
func Info(format string, args ...interface{}) {
	write(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	write(LevelWarn, fmt.Sprintf(format, args...))
}

// DebugFields logs a debug message with structured fields.
func DebugFields(msg string, fields map[string]interface{}) {
	write(LevelDebug, msg, toFields(fields)...)
}

// InfoFields logs an informational message with structured fields.
func InfoFields(msg string, fields map[string]interface{}) {
	write(LevelInfo, msg, toFields(fields)...)
}

// WarnFields logs a warning message with structured fields.
func WarnFields(msg string, fields map[string]interface{}) {
	write(LevelWarn, msg, toFields(fields)...)
}

// LogError logs an error with additional context message.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	write(LevelError, msg, zap.Error(err))
}
