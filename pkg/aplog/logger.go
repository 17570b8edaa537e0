// Package aplog provides a slog-based logger with single-line, CLI-friendly
// output for apifyctl and for debug logging inside the API client.
package aplog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with convenience methods.
type Logger struct {
	*slog.Logger
}

// cliHandler formats records as: <level prefix> message key=value, key=value
type cliHandler struct {
	level  slog.Level
	output io.Writer
	attrs  []slog.Attr
}

func (h *cliHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *cliHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	switch r.Level {
	case slog.LevelDebug:
		b.WriteString("🔍 ")
	case slog.LevelWarn:
		b.WriteString("⚠️  ")
	case slog.LevelError:
		b.WriteString("❌ ")
	}

	b.WriteString(r.Message)

	first := true
	writeAttr := func(a slog.Attr) {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(a.Key)
		b.WriteString("=")
		b.WriteString(a.Value.String())
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})

	b.WriteString("\n")
	_, err := io.WriteString(h.output, b.String())
	return err
}

func (h *cliHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &cliHandler{level: h.level, output: h.output, attrs: merged}
}

func (h *cliHandler) WithGroup(name string) slog.Handler {
	// Groups are flattened; the CLI output has no nesting to express them.
	return h
}

// New creates a logger writing to output at the given level. A nil output
// defaults to stdout.
func New(level slog.Level, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}
	return &Logger{Logger: slog.New(&cliHandler{level: level, output: output})}
}

// NewDefault creates a logger with INFO level.
func NewDefault() *Logger {
	return New(slog.LevelInfo, os.Stdout)
}

// NewVerbose creates a logger with DEBUG level, used by apifyctl --verbose
// to show every API request the client issues.
func NewVerbose() *Logger {
	return New(slog.LevelDebug, os.Stdout)
}

// Fatal logs at ERROR level and exits with code 1.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	os.Exit(1)
}

// Fatalf formats and logs at ERROR level, then exits with code 1.
func (l *Logger) Fatalf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
