// Package logger provides standardized logging utilities for the soundshift engine.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Global logger instance
var defaultLogger *slog.Logger

// LogLevel represents the logging level
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

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:     LevelInfo,
		Format:    "text",
		Output:    os.Stderr,
		AddSource: false,
	}
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	var handler slog.Handler

	output := cfg.Output
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		output = file
	}

	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)

	return nil
}

// InitDev initializes logging for development (debug level, text format)
func InitDev() {
	_ = Init(Config{
		Level:     LevelDebug,
		Format:    "text",
		Output:    os.Stderr,
		AddSource: true,
	})
}

// InitProd initializes logging for production (info level, json format)
func InitProd(logDir string) error {
	logPath := filepath.Join(logDir, "soundshift.log")
	return Init(Config{
		Level:     LevelInfo,
		Format:    "json",
		LogFile:   logPath,
		AddSource: false,
	})
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

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Error(msg, args...)
	}
}

// With returns a new logger with the given attributes
func With(args ...any) *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger.With(args...)
	}
	return slog.Default().With(args...)
}

// WithGroup returns a new logger with the given group
func WithGroup(name string) *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger.WithGroup(name)
	}
	return slog.Default().WithGroup(name)
}

// Engine-specific logging helpers. These cover the "degrade gracefully"
// paths named in the error-handling design: unknown graphemes, unknown
// feature labels, and opaque modifier pass-through never fail a call,
// but they are worth a debug trail.

// LogUnknownGrapheme logs a parser encountering a grapheme absent from
// the active feature system's inventory.
func LogUnknownGrapheme(grapheme string, system string) {
	Debug("unknown grapheme, using empty feature set", "grapheme", grapheme, "system", system)
}

// LogUnknownFeature logs geometry or feature-arithmetic code encountering
// a label the geometry tree doesn't know about.
func LogUnknownFeature(label string) {
	Debug("unknown feature label, treated as opaque", "label", label)
}

// LogOpaqueModifier logs a modifier string that referenced an unresolved
// feature during forward or backward application.
func LogOpaqueModifier(modifier string, context string) {
	Debug("modifier passed through opaquely", "modifier", modifier, "context", context)
}

// LogRuleParsed logs a successfully parsed rule.
func LogRuleParsed(source string, anteLen, postLen int, hasContext bool) {
	Debug("rule parsed", "source", source, "ante_tokens", anteLen, "post_tokens", postLen, "has_context", hasContext)
}

// LogForwardApplied logs a forward application and how many sites matched.
func LogForwardApplied(ruleSource string, sites int) {
	Debug("forward application complete", "rule", ruleSource, "sites", sites)
}

// LogBackwardApplied logs a backward enumeration and its candidate count.
func LogBackwardApplied(ruleSource string, candidates int) {
	Debug("backward enumeration complete", "rule", ruleSource, "candidates", candidates)
}

// LogResourceLoaded logs a successful resource-table load.
func LogResourceLoaded(resource string, rows int) {
	Info("resource loaded", "resource", resource, "rows", rows)
}

// LogSystemRegistered logs a feature system being registered with the
// process-wide registry.
func LogSystemRegistered(name string, isDefault bool) {
	Info("feature system registered", "name", name, "default", isDefault)
}
