package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
)

const isWindows = runtime.GOOS == "windows"

var noColor = os.Getenv("TERM") == "dumb" ||
	(!isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()))

func color(val string) string {
	if isWindows || noColor {
		return ""
	}
	return val
}

const (
	reset   = "\033[0m"
	red     = "\033[31m"
	green   = "\033[32m"
	yellow  = "\033[33m"
	blue    = "\033[34m"
	magenta = "\033[35m"
	gray    = "\033[1;90m"
)

type consoleLogger struct {
	out      io.Writer
	logLevel LogLevel
	metadata map[string]any
}

var _ Logger = (*consoleLogger)(nil)

// NewConsoleLogger returns a Logger that writes colorized, leveled lines to
// stderr, keeping stdout free for command output.
func NewConsoleLogger(level LogLevel) Logger {
	return &consoleLogger{out: os.Stderr, logLevel: level}
}

// NewConsoleLoggerWithWriter is NewConsoleLogger with an explicit sink.
func NewConsoleLoggerWithWriter(out io.Writer, level LogLevel) Logger {
	return &consoleLogger{out: out, logLevel: level}
}

func (c *consoleLogger) With(metadata map[string]any) Logger {
	kv := make(map[string]any, len(c.metadata)+len(metadata))
	for k, v := range c.metadata {
		kv[k] = v
	}
	for k, v := range metadata {
		kv[k] = v
	}
	return &consoleLogger{out: c.out, logLevel: c.logLevel, metadata: kv}
}

func (c *consoleLogger) IsLevelEnabled(level LogLevel) bool {
	return level >= c.logLevel
}

func (c *consoleLogger) log(level LogLevel, levelColor, tag, msg string, args ...any) {
	if !c.IsLevelEnabled(level) {
		return
	}
	line := msg
	if len(args) > 0 {
		line = fmt.Sprintf(msg, args...)
	}
	suffix := c.metadataSuffix()
	fmt.Fprintf(c.out, "%s[%s]%s %s%s\n", color(levelColor), tag, color(reset), line, suffix)
}

func (c *consoleLogger) metadataSuffix() string {
	if len(c.metadata) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c.metadata))
	for k := range c.metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s%s=%v%s", color(gray), k, c.metadata[k], color(reset))
	}
	return sb.String()
}

func (c *consoleLogger) Trace(msg string, args ...any) {
	c.log(LevelTrace, magenta, "TRACE", msg, args...)
}

func (c *consoleLogger) Debug(msg string, args ...any) {
	c.log(LevelDebug, blue, "DEBUG", msg, args...)
}

func (c *consoleLogger) Info(msg string, args ...any) {
	c.log(LevelInfo, green, "INFO", msg, args...)
}

func (c *consoleLogger) Warn(msg string, args ...any) {
	c.log(LevelWarn, yellow, "WARN", msg, args...)
}

func (c *consoleLogger) Error(msg string, args ...any) {
	c.log(LevelError, red, "ERROR", msg, args...)
}
