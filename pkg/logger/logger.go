// Package logger wraps log/slog with the handful of helpers the pyrs
// pipeline uses.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu            sync.Mutex
	defaultLogger *slog.Logger
	logFile       *os.File
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logger configuration
type Config struct {
	Level     LogLevel
	Format    string // "text" or "json"
	Output    io.Writer
	AddSource bool
	LogFile   string
}

// DefaultConfig logs warnings and errors as text on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: "text",
		Output: os.Stderr,
	}
}

// ParseLevel accepts debug, info, warn (or warning) and error.
func ParseLevel(value string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("logger: unknown level %q", value)
}

// Init replaces the package logger. A previously opened log file is closed.
func Init(cfg Config) error {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	var file *os.File
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("logger: open %s: %w", cfg.LogFile, err)
		}
		file = f
		output = f
	}
	switch cfg.Format {
	case "", "text", "json":
	default:
		if file != nil {
			file.Close()
		}
		return fmt.Errorf("logger: unknown format %q", cfg.Format)
	}

	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	defaultLogger = slog.New(handler)
	return nil
}

// Close releases the log file opened by Init, if any, and falls back to
// slog's default logger.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = nil
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.Default()
}

func Debug(msg string, args ...any) { current().Debug(msg, args...) }
func Info(msg string, args ...any)  { current().Info(msg, args...) }
func Warn(msg string, args ...any)  { current().Warn(msg, args...) }
func Error(msg string, args ...any) { current().Error(msg, args...) }

// With returns a new logger with the given attributes
func With(args ...any) *slog.Logger {
	return current().With(args...)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Pipeline helpers

func LogFileProcessing(file string) {
	Debug("Processing file", "file", file)
}

func LogParsing(file string, nodeCount int) {
	Debug("Parsing complete", "file", file, "nodes", nodeCount)
}

func LogParseFailure(file string, line int, msg string) {
	Warn("Parse failed", "file", file, "line", line, "message", msg)
}

// LogTranslation reports a finished file; unsupported constructs raise the
// level to warn.
func LogTranslation(file string, fragments, unsupported int) {
	if unsupported > 0 {
		Warn("Translation left unsupported constructs", "file", file, "fragments", fragments, "unsupported", unsupported)
		return
	}
	Debug("Translation complete", "file", file, "fragments", fragments)
}

func LogFetch(kind, location string) {
	Debug("Fetching source", "kind", kind, "location", location)
}
