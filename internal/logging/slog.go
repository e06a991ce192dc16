package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
)

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// Nop returns a logger that drops everything.
func Nop() *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ParseLevel maps debug/info/warn/error (case-insensitive) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// New builds a text logger at the given level. With an empty file the output
// goes to stderr; otherwise to file, rotated once it grows past 10 MB. The
// returned closer releases the file and must be called on shutdown.
func New(level, file string) (*SlogLogger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if file != "" {
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		w, closer = rotating, rotating
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return NewSlogLogger(slog.New(h)), closer, nil
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
