package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
)

// httpReadHeaderTimeout bounds slow-header clients on the HTTP transports.
const httpReadHeaderTimeout = 10 * time.Second

// ServeSSE serves the MCP protocol over HTTP with server-sent events.
// The MCP endpoints live at /sse and /message; /health and /info are
// plain JSON endpoints for probes. Blocks until ctx is cancelled or the
// listener fails.
func (s *Server) ServeSSE(ctx context.Context, host string, port int) error {
	sseServer := server.NewSSEServer(s.mcpServer)
	return s.serveHTTP(ctx, host, port, "sse", sseServer)
}

// ServeStreamableHTTP serves the MCP protocol over the streamable HTTP
// transport at /mcp. When stateless is true no session state is kept, so
// any request can hit any replica behind a load balancer.
func (s *Server) ServeStreamableHTTP(ctx context.Context, host string, port int, stateless bool) error {
	httpServer := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(stateless),
	)
	return s.serveHTTP(ctx, host, port, "streamable-http", httpServer)
}

func (s *Server) serveHTTP(ctx context.Context, host string, port int, transport string, handler http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/info", s.infoHandler(transport))

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: httpReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("transport", transport).
			Str("addr", addr).
			Msg("Starting MCP server on HTTP")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		s.logger.Info().Msg("MCP server stopped")
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

func (s *Server) infoHandler(transport string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"server":         s.config.Name,
			"version":        s.config.Version,
			"transport":      transport,
			"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
			"tool_count":     len(s.toolNames),
			"tools":          s.ListToolNames(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
