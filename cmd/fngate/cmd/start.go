package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	gatewayhttp "github.com/fn-gate/fngate/internal/adapter/inbound/http"
	auditstore "github.com/fn-gate/fngate/internal/adapter/outbound/audit"
	"github.com/fn-gate/fngate/internal/config"
	"github.com/fn-gate/fngate/internal/domain/audit"
	"github.com/fn-gate/fngate/internal/handlers/check"
	"github.com/fn-gate/fngate/internal/handlers/dedupe"
	"github.com/fn-gate/fngate/internal/service"
	"github.com/fn-gate/fngate/internal/telemetry"
	"github.com/fn-gate/fngate/pkg/handler"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gateway server",
	Long: `Start the fngate HTTP gateway.

The gateway serves:
  GET  /health                    liveness probe, no auth
  GET  /                          status line, no auth
  GET  /metrics                   Prometheus metrics, no auth
  POST /v1/check                  authenticated handler invocation
  POST /v1/identify-duplicates    authenticated handler invocation

Authenticated routes require "Authorization: Bearer <token>" matching
INTERNAL_AUTH_TOKEN. Handler modules are resolved before the listener
opens; an unresolvable handler aborts startup.`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

// handlerModules binds route names to their externally supplied handler
// module references. Modules may export a bare callable or a Handler or
// Default member; Resolve adapts all three shapes.
func handlerModules() map[string]any {
	return map[string]any{
		"check":               check.Module,
		"identify-duplicates": dedupe.Module,
	}
}

// resolveRoutes resolves every handler module up front so the process fails
// fast instead of serving a route that can never succeed.
func resolveRoutes(modules map[string]any) ([]gatewayhttp.Route, error) {
	routes := make([]gatewayhttp.Route, 0, len(modules))
	for name, module := range modules {
		fn, err := handler.Resolve(module)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", name, err)
		}
		routes = append(routes, gatewayhttp.Route{Name: name, Invoke: fn})
	}
	return routes, nil
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))
	if file := config.ConfigFileUsed(); file != "" {
		logger.Info("loaded config", "file", file)
	}
	if cfg.Auth.Token == "" {
		logger.Warn("INTERNAL_AUTH_TOKEN is not set; authenticated routes will answer 500 until it is configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		return err
	}
	logger.Info("fngate stopped")
	return nil
}

// run wires all components together and serves until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Resolve handlers first: an unresolvable handler must prevent the
	// process from accepting any traffic.
	routes, err := resolveRoutes(handlerModules())
	if err != nil {
		return fmt.Errorf("handler resolution failed: %w", err)
	}
	logger.Info("handlers resolved", "routes", len(routes))

	// Tracing (optional).
	if cfg.Telemetry.TraceEnabled {
		shutdown, err := telemetry.Setup(ctx, Version, logger)
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				logger.Error("trace shutdown failed", "error", err)
			}
		}()
	}

	// Audit trail.
	store, err := createAuditStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to create audit store: %w", err)
	}
	defer func() { _ = store.Close() }()

	flushInterval, err := time.ParseDuration(cfg.Audit.FlushInterval)
	if err != nil {
		flushInterval = time.Second
		logger.Warn("invalid flush_interval, using default", "value", cfg.Audit.FlushInterval, "default", "1s")
	}
	sendTimeout, err := time.ParseDuration(cfg.Audit.SendTimeout)
	if err != nil {
		sendTimeout = 100 * time.Millisecond
		logger.Warn("invalid send_timeout, using default", "value", cfg.Audit.SendTimeout, "default", "100ms")
	}

	auditService := service.NewAuditService(store, logger,
		service.WithChannelSize(cfg.Audit.ChannelSize),
		service.WithBatchSize(cfg.Audit.BatchSize),
		service.WithFlushInterval(flushInterval),
		service.WithSendTimeout(sendTimeout),
		service.WithWarningThreshold(cfg.Audit.WarningThreshold),
	)
	auditService.Start(ctx)
	defer auditService.Stop()

	// Gateway and transport.
	gateway := gatewayhttp.NewGateway(cfg.Auth.Token, logger, routes,
		gatewayhttp.WithAuditService(auditService),
	)
	transport := gatewayhttp.NewTransport(gateway,
		gatewayhttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		gatewayhttp.WithLogger(logger),
	)
	return transport.Start(ctx)
}

// createAuditStore builds the audit sink selected by audit.output.
func createAuditStore(cfg *config.Config) (audit.Store, error) {
	output := cfg.Audit.Output
	switch {
	case output == "stdout":
		return auditstore.NewStdoutStore(), nil
	case strings.HasPrefix(output, "file://"):
		return auditstore.NewFileStore(strings.TrimPrefix(output, "file://"))
	case strings.HasPrefix(output, "sqlite://"):
		return auditstore.NewSQLiteStore(strings.TrimPrefix(output, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported audit output: %q", output)
	}
}

// parseLogLevel maps the configured log level to slog.
func parseLogLevel(level string) slog.Level {
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
