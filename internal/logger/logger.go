// Package logger builds the process-wide slog handler: a colorized tint
// handler on the console during development, JSON with file rotation in
// production.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/echoverse-team/echoverse/internal/env"
)

// Options configure the logger.
type Options struct {
	logToFile  bool
	logFile    string
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
}

// Option mutates Options.
type Option func(*Options)

// WithLogToFile enables or disables logging to a rotated file.
func WithLogToFile(enabled bool) Option {
	return func(o *Options) { o.logToFile = enabled }
}

// WithLogFile sets the log file path.
func WithLogFile(path string) Option {
	return func(o *Options) { o.logFile = path }
}

// WithRotation overrides the lumberjack rotation limits.
func WithRotation(maxSizeMB, maxBackups, maxAgeDays int) Option {
	return func(o *Options) {
		o.maxSizeMB = maxSizeMB
		o.maxBackups = maxBackups
		o.maxAgeDays = maxAgeDays
	}
}

// New creates a slog.Logger for the given environment.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	options := &Options{
		logFile:    filepath.Join("logs", "echoverse.log"),
		maxSizeMB:  20,
		maxBackups: 5,
		maxAgeDays: 28,
	}
	for _, opt := range opts {
		opt(options)
	}

	var writers []io.Writer

	level := slog.LevelDebug
	if environment.IsProduction() {
		level = slog.LevelInfo
	}

	if options.logToFile {
		writers = append(writers, &lumberjack.Logger{
			Filename:   options.logFile,
			MaxSize:    options.maxSizeMB,
			MaxBackups: options.maxBackups,
			MaxAge:     options.maxAgeDays,
			Compress:   true,
		})
	}

	if environment.IsProduction() {
		writers = append(writers, os.Stdout)
		return slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
			Level: level,
		}))
	}

	console := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})

	if len(writers) == 0 {
		return slog.New(console)
	}

	file := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(teeHandler{console, file})
}

// teeHandler fans records out to both handlers.
type teeHandler struct {
	a, b slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.a.Enabled(ctx, level) || t.b.Enabled(ctx, level)
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	if t.a.Enabled(ctx, r.Level) {
		if err := t.a.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	if t.b.Enabled(ctx, r.Level) {
		return t.b.Handle(ctx, r.Clone())
	}
	return nil
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{t.a.WithAttrs(attrs), t.b.WithAttrs(attrs)}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{t.a.WithGroup(name), t.b.WithGroup(name)}
}
