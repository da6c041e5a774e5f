// Package logging builds the process slog logger.
//
// Console output uses charmbracelet/log for the pretty format and slog's own
// text/JSON handlers otherwise. When a file path is configured, records are
// also written to a size-rotated file.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Format names a console output format.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatText   Format = "text"
	FormatJSON   Format = "json"
)

// Config controls logger construction.
type Config struct {
	Level      string `env:"ECOHOME_LOG_LEVEL" envDefault:"info"`
	Format     string `env:"ECOHOME_LOG_FORMAT" envDefault:"pretty"`
	FilePath   string `env:"ECOHOME_LOG_FILE"`
	MaxSizeMB  int    `env:"ECOHOME_LOG_MAX_SIZE_MB" envDefault:"50"`
	MaxBackups int    `env:"ECOHOME_LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"ECOHOME_LOG_MAX_AGE_DAYS" envDefault:"14"`
	Prefix     string `env:"-"`
}

// Logger owns the slog logger and any file it writes to.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// New builds a logger writing to w (stderr when nil) and, optionally, a rotated file.
func New(cfg Config, w io.Writer) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	var closer io.Closer
	if path := strings.TrimSpace(cfg.FilePath); path != "" {
		file := newRotatingFile(path, cfg)
		w = io.MultiWriter(w, file)
		closer = file
	}

	var handler slog.Handler
	switch Format(strings.ToLower(strings.TrimSpace(cfg.Format))) {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatText:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case FormatPretty, "":
		handler = charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			Prefix:          strings.TrimSpace(cfg.Prefix),
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
		})
	default:
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("unknown log format: %s", cfg.Format)
	}

	return &Logger{Logger: slog.New(handler), closer: closer}, nil
}

// Close releases the rotated log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel converts a level name to slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.New("unknown log level: " + level)
	}
}

func newRotatingFile(path string, cfg Config) *lumberjack.Logger {
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 50
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 3
	}
	maxAge := cfg.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 14
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}
}
