// Package logging builds the charmbracelet/log logger used by todo.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix is the default prefix on every log line.
const Prefix = "todo"

// Options holds configuration for the diagnostic logger.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultOptions returns default options for diagnostic logging.
func DefaultOptions() Options {
	return Options{
		Level:     log.WarnLevel,
		Formatter: log.TextFormatter,
		Prefix:    Prefix,
	}
}

// New creates a logger writing to w. Diagnostics go to stderr in normal
// use so they never mix with command output.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// FromConfig creates a logger from string configuration values.
func FromConfig(w io.Writer, level, format string, timestamps, caller bool) *log.Logger {
	return New(w, Options{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(format),
		ReportTimestamp: timestamps,
		ReportCaller:    caller,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel parses a string log level. Unknown values fall back to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name. Unknown values fall back to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
