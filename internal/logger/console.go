// Package logger provides the diagnostic console logger for minigrep.
//
// Diagnostics go to stderr so they never interleave with match output on
// stdout. Messages carry [HH:MM:SS] timestamps and are filtered by level.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs diagnostics to a writer with timestamps and thread
// safety. It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(format string, args ...interface{}) {
	cl.logWithLevel("TRACE", format, args...)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(format string, args ...interface{}) {
	cl.logWithLevel("DEBUG", format, args...)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(format string, args ...interface{}) {
	cl.logWithLevel("INFO", format, args...)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(format string, args ...interface{}) {
	cl.logWithLevel("WARN", format, args...)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(format string, args ...interface{}) {
	cl.logWithLevel("ERROR", format, args...)
}

// logWithLevel writes a "[HH:MM:SS] [LEVEL] message" line if the level
// passes the configured filter.
func (cl *ConsoleLogger) logWithLevel(level string, format string, args ...interface{}) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	timestamp := time.Now().Format("15:04:05")
	tag := fmt.Sprintf("[%s]", level)
	if cl.colorOutput {
		tag = levelColor(level).Sprint(tag)
	}
	fmt.Fprintf(cl.writer, "[%s] %s %s\n", timestamp, tag, fmt.Sprintf(format, args...))
}

// levelColor returns the display color for a level tag.
func levelColor(level string) *color.Color {
	switch level {
	case "ERROR":
		return color.New(color.FgRed)
	case "WARN":
		return color.New(color.FgYellow)
	case "DEBUG", "TRACE":
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgWhite)
	}
}
