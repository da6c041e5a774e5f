// Package cmd holds the startup plumbing shared by service commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ecohome/ecohome/internal/platform/config"
	"github.com/ecohome/ecohome/internal/platform/otel"
)

// ServiceWeb names the browser-facing service in telemetry and logs.
const ServiceWeb = "web"

const defaultTelemetryFlush = 5 * time.Second

// Service describes the process being started.
type Service struct {
	Name string
	// Logger receives telemetry flush failures. Defaults to slog.Default.
	Logger *slog.Logger
	// FlushTimeout bounds the final telemetry export.
	FlushTimeout time.Duration
}

// ParseConfig fills cfg from environment. A nil map reads the process
// environment; tests pass their own.
func ParseConfig[T any](cfg *T, environment map[string]string) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnvFrom(cfg, environment)
}

// ParseArgs applies command-line overrides registered on fs.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	return fs.Parse(append([]string(nil), args...))
}

// Run starts tracing for svc, calls run, and flushes tracing once run returns.
func Run(ctx context.Context, svc Service, run func(context.Context) error) error {
	name := strings.TrimSpace(svc.Name)
	switch {
	case name == "":
		return errors.New("service name is required")
	case run == nil:
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := svc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	flush := svc.FlushTimeout
	if flush <= 0 {
		flush = defaultTelemetryFlush
	}

	shutdown, err := otel.Setup(ctx, name)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), flush)
		defer cancel()
		if shutdownErr := shutdown(flushCtx); shutdownErr != nil {
			logger.Error("telemetry flush failed", "service", name, "error", shutdownErr)
		}
	}()
	return run(ctx)
}
