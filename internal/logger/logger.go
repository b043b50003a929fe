package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	name     string
	file     string
	function string
}

func New(name string) Logger {
	return Logger{name: name}
}

// Setup installs the process wide handler used by every Logger.
func Setup(level, format string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l Logger) File(file string) Logger {
	l.file = file
	return l
}

func (l Logger) Function(function string) Logger {
	l.function = function
	return l
}

func (l Logger) with(args []any) []any {
	attrs := make([]any, 0, len(args)+6)
	attrs = append(attrs, "package", l.name)
	if l.file != "" {
		attrs = append(attrs, "file", l.file)
	}
	if l.function != "" {
		attrs = append(attrs, "function", l.function)
	}
	return append(attrs, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.handler().Debug(msg, l.with(args)...)
}

func (l Logger) Info(msg string, args ...any) {
	l.handler().Info(msg, l.with(args)...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.handler().Warn(msg, l.with(args)...)
}

// Err logs msg with err attached and returns an error wrapping err.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	if err == nil {
		return errors.New(msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Er logs msg with err attached without returning anything.
func (l Logger) Er(msg string, err error, args ...any) {
	args = append(args, "error", err)
	l.handler().Error(msg, l.with(args)...)
}

// Error logs msg at error level and returns it as an error.
func (l Logger) Error(msg string, args ...any) error {
	l.handler().Error(msg, l.with(args)...)
	return errors.New(msg)
}

func (l Logger) ErrMsg(msg string) error {
	return l.Error(msg)
}

func (l Logger) ErMsg(msg string) {
	l.handler().Error(msg, l.with(nil)...)
}

// handler resolves the default at call time so loggers built before Setup still follow it.
func (l Logger) handler() *slog.Logger {
	return slog.Default()
}
