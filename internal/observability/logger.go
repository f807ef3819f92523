package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options — куда и с каким уровнем писать лог
type Options struct {
	LogPath    string
	LogLevel   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Stdout по умолчанию os.Stdout
	Stdout io.Writer
}

// Logger — структурированный JSON-лог (stdout + файл с ротацией)
type Logger struct {
	log    *slog.Logger
	closer io.Closer
}

func NewLogger(opts Options) *Logger {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	var (
		out    io.Writer = stdout
		closer io.Closer
	)

	if opts.LogPath != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.LogPath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(stdout, rotator)
		closer = rotator
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: ParseLevel(opts.LogLevel)})
	return &Logger{log: slog.New(handler), closer: closer}
}

// NewNopLogger — логгер, который всё выбрасывает (для тестов)
func NewNopLogger() *Logger {
	return &Logger{log: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// ParseLevel переводит строку из конфига в slog.Level (по умолчанию info)
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With возвращает дочерний логгер с постоянными полями
func (l *Logger) With(fields ...any) *Logger {
	return &Logger{log: l.log.With(fields...), closer: l.closer}
}

func (l *Logger) Debug(msg string, fields ...any) {
	l.log.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...any) {
	l.log.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...any) {
	l.log.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...any) {
	l.log.Error(msg, fields...)
}

// Close закрывает файл лога
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
