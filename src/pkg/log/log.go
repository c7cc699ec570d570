// Package log provides leveled, structured logging to files.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"techtracker/local-app/src/pkg/model"
)

// Fields holds structured attributes attached to a log message.
type Fields map[string]interface{}

// Logger writes JSON log records to a main log file and mirrors errors to a
// separate error log file.
type Logger struct {
	mainLogger  *slog.Logger
	errorLogger *slog.Logger
	mainFile    *os.File
	errorFile   *os.File
	level       LogLevel
}

// NewLogger creates a new Logger instance writing to the log folder from the
// configuration.
func NewLogger(cfg *model.Config, level LogLevel) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open main log file
	mainFilePath := filepath.Join(cfg.LogFolder, cfg.MainLog)
	mainFile, err := os.OpenFile(mainFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open main log file: %w", err)
	}

	// Open error log file
	errorFilePath := filepath.Join(cfg.LogFolder, cfg.ErrorLog)
	errorFile, err := os.OpenFile(errorFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		mainFile.Close()
		return nil, fmt.Errorf("failed to open error log file: %w", err)
	}

	mainLogger := slog.New(slog.NewJSONHandler(mainFile, &slog.HandlerOptions{
		Level: level.toSlogLevel(),
	}))
	errorLogger := slog.New(slog.NewJSONHandler(errorFile, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	return &Logger{
		mainLogger:  mainLogger,
		errorLogger: errorLogger,
		mainFile:    mainFile,
		errorFile:   errorFile,
		level:       level,
	}, nil
}

// Info logs an informational message with optional fields.
func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.mainLogger.LogAttrs(ctx, slog.LevelInfo, msg, fieldsToAttrs(fields)...)
}

// Warn logs a warning message with optional fields.
func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.mainLogger.LogAttrs(ctx, slog.LevelWarn, msg, fieldsToAttrs(fields)...)
}

// Debug logs a debug message with optional fields.
func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.mainLogger.LogAttrs(ctx, slog.LevelDebug, msg, fieldsToAttrs(fields)...)
}

// Error logs an error message with optional fields to both log files.
func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	attrs := fieldsToAttrs(fields)
	l.mainLogger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	l.errorLogger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// Close closes all log files.
func (l *Logger) Close() error {
	if err := l.mainFile.Close(); err != nil {
		return fmt.Errorf("failed to close main log file: %w", err)
	}
	if err := l.errorFile.Close(); err != nil {
		return fmt.Errorf("failed to close error log file: %w", err)
	}
	return nil
}

// fieldsToAttrs converts a Fields map to slog attributes.
func fieldsToAttrs(fields Fields) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
