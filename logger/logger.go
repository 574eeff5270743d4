package logger

import (
	"os"
	"strings"
)

// LogLevel defines the severity threshold for a Logger.
type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// LevelFromString converts a level name into a LogLevel. Unknown strings
// fall back to warn, which is the default chattiness for the CLI.
func LevelFromString(s string) LogLevel {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelNone
	default:
		return LevelWarn
	}
}

// LevelFromVerbosity maps a counted -v flag onto a LogLevel: no flag shows
// warnings and errors only, -v adds info, -vv adds debug, -vvv adds trace.
func LevelFromVerbosity(v int) LogLevel {
	switch {
	case v <= 0:
		return LevelWarn
	case v == 1:
		return LevelInfo
	case v == 2:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// GetLevelFromEnv reads MODCACHE_LOG_LEVEL and converts it into a LogLevel.
func GetLevelFromEnv() LogLevel {
	return LevelFromString(os.Getenv("MODCACHE_LOG_LEVEL"))
}

// Logger is an interface for leveled logging.
type Logger interface {
	// With will return a new logger using metadata as the base context
	With(metadata map[string]any) Logger
	// Trace level logging
	Trace(msg string, args ...any)
	// Debug level logging
	Debug(msg string, args ...any)
	// Info level logging
	Info(msg string, args ...any)
	// Warning level logging
	Warn(msg string, args ...any)
	// Error level logging
	Error(msg string, args ...any)
	// IsLevelEnabled returns true if the given log level is enabled
	IsLevelEnabled(level LogLevel) bool
}
