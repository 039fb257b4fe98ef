// Package serve implements the perfscope serve command.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/perfscope-io/perfscope/internal/config"
	"github.com/perfscope-io/perfscope/internal/logging"
	"github.com/perfscope-io/perfscope/internal/mcp"
	"github.com/perfscope-io/perfscope/pkg/version"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var (
		configFile   string
		transport    string
		host         string
		port         int
		stateless    bool
		logLevel     string
		logPretty    bool
		topProcesses int
		perfPath     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the perfscope MCP server",
		Long: `Start the perfscope MCP server.

The server exposes host telemetry (CPU, memory, disk, network, processes)
and a perf-based sampling profiler as MCP tools.

Transports:
  stdio            JSON-RPC over stdin/stdout (default; for local MCP clients)
  sse              HTTP with server-sent events at /sse and /message
  streamable-http  Streamable HTTP at /mcp (use --stateless behind a load balancer)

The HTTP transports also expose /health and /info probe endpoints.

Configuration sources (in order of precedence):
1. Command-line flags
2. Environment variables (PERFSCOPE_*)
3. Config file (--config flag)
4. Defaults

Environment Variables:
  PERFSCOPE_HOST        - Bind address for HTTP transports
  PERFSCOPE_PORT        - Port for HTTP transports
  PERFSCOPE_TRANSPORT   - stdio, sse, or streamable-http
  PERFSCOPE_LOG_LEVEL   - Logging level (trace, debug, info, warn, error)
  PERFSCOPE_PERF_PATH   - Path to the perf binary

Examples:
  # stdio transport for a local MCP client
  perfscope serve

  # SSE transport on the default port
  perfscope serve --transport sse

  # Streamable HTTP behind a load balancer
  perfscope serve --transport streamable-http --port 8080 --stateless

  # Development mode (pretty logging)
  perfscope serve --transport sse --log-level debug --log-pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// Flags override file and environment values.
			flags := cmd.Flags()
			if flags.Changed("transport") {
				cfg.Server.Transport = transport
			}
			if flags.Changed("host") {
				cfg.Server.Host = host
			}
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if flags.Changed("stateless") {
				cfg.Server.Stateless = stateless
			}
			if flags.Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if flags.Changed("log-pretty") {
				cfg.Logging.Pretty = logPretty
			}
			if flags.Changed("top-processes") {
				cfg.Collectors.TopProcesses = topProcesses
			}
			if flags.Changed("perf-path") {
				cfg.Profiler.PerfPath = perfPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&transport, "transport", "t", config.TransportStdio, "Transport: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "Bind address for HTTP transports")
	cmd.Flags().IntVarP(&port, "port", "p", 22222, "Port for HTTP transports")
	cmd.Flags().BoolVar(&stateless, "stateless", false, "Run the streamable HTTP transport without session state")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Logging level (trace, debug, info, warn, error)")
	cmd.Flags().BoolVar(&logPretty, "log-pretty", false, "Human-readable console logging")
	cmd.Flags().IntVar(&topProcesses, "top-processes", 10, "Number of top processes in process metrics")
	cmd.Flags().StringVar(&perfPath, "perf-path", "perf", "Path to the perf binary")

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	// Logs go to stderr: on the stdio transport, stdout carries the protocol.
	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	logger.Info().
		Str("version", version.Version).
		Str("transport", cfg.Server.Transport).
		Msg("Starting perfscope")

	server := mcp.New(buildDeps(cfg, logger), mcp.Config{
		Name:         "perfscope",
		Version:      version.Version,
		AuditEnabled: cfg.Server.Transport != config.TransportStdio,
	}, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Server.Transport {
	case config.TransportSSE:
		return server.ServeSSE(ctx, cfg.Server.Host, cfg.Server.Port)
	case config.TransportStreamable:
		return server.ServeStreamableHTTP(ctx, cfg.Server.Host, cfg.Server.Port, cfg.Server.Stateless)
	default:
		return server.ServeStdio()
	}
}
