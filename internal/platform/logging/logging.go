package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config captures logging configuration options.
type Config struct {
	Level    string
	Dir      string
	Filename string
}

// Logger wraps slog with printf-style leveled helpers used across the server.
type Logger struct {
	slogger *slog.Logger
	file    *os.File
}

// DefaultLogger is used by components that were not handed an explicit logger.
var DefaultLogger = &Logger{slogger: slog.New(newTextHandler(os.Stdout, slog.LevelInfo))}

type textHandler struct {
	writer io.Writer
	level  slog.Level
	mu     sync.Mutex
}

func newTextHandler(w io.Writer, level slog.Level) *textHandler {
	return &textHandler{writer: w, level: level}
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	timeStr := r.Time.Format("2006-01-02 15:04:05.000")
	_, err := fmt.Fprintf(h.writer, "[%s] [%s] %s\n", timeStr, r.Level.String(), r.Message)
	return err
}

func (h *textHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *textHandler) WithGroup(string) slog.Handler      { return h }

// New creates a Logger writing to stdout and, when Dir is set, to a log file.
func New(cfg Config) (*Logger, error) {
	level := parseLevel(cfg.Level)

	writer := io.Writer(os.Stdout)
	var file *os.File
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		name := cfg.Filename
		if name == "" {
			name = "server.log"
		}
		f, err := os.OpenFile(filepath.Join(cfg.Dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		writer = io.MultiWriter(os.Stdout, f)
	}

	return &Logger{
		slogger: slog.New(newTextHandler(writer, level)),
		file:    file,
	}, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Slog exposes the structured logger for integrations that want slog directly.
func (l *Logger) Slog() *slog.Logger {
	return l.slogger
}

// Close releases the log file, if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) Debug(format string, args ...any) {
	l.slogger.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.slogger.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.slogger.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.slogger.Error(fmt.Sprintf(format, args...))
}

// DebugTag logs with a bracketed module tag, e.g. [HTTP] or [EXPORT].
func (l *Logger) DebugTag(tag, format string, args ...any) {
	l.slogger.Debug(fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, args...)))
}

func (l *Logger) InfoTag(tag, format string, args ...any) {
	l.slogger.Info(fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, args...)))
}

func (l *Logger) WarnTag(tag, format string, args ...any) {
	l.slogger.Warn(fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, args...)))
}

func (l *Logger) ErrorTag(tag, format string, args ...any) {
	l.slogger.Error(fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, args...)))
}
