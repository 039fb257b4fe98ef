// Package mcp exposes host telemetry and the perf profiler as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/perfscope-io/perfscope/internal/collector"
	"github.com/perfscope-io/perfscope/internal/profiler"
)

// ProcessProfiler is the profiling capability consumed by the profile tool.
type ProcessProfiler interface {
	Profile(ctx context.Context, req profiler.SamplingRequest) *profiler.ProfileResult
	Describe() string
}

// Deps holds the collaborators injected into the server. There is no global
// collector state; every capability is constructed explicitly and passed in.
type Deps struct {
	SystemInfo *collector.SystemInfoCollector
	CPU        *collector.CPUCollector
	Memory     *collector.MemoryCollector
	Disk       *collector.DiskCollector
	Network    *collector.NetworkCollector
	Process    *collector.ProcessCollector
	Summary    *collector.SummaryCollector
	Profiler   ProcessProfiler
}

// Config contains configuration for the MCP server.
type Config struct {
	// Name is the server name advertised during the MCP handshake.
	Name string

	// Version is the advertised server version.
	Version string

	// EnabledTools optionally restricts which tools are available.
	// If empty, all tools are enabled.
	EnabledTools []string

	// AuditEnabled logs every tool invocation with its arguments.
	AuditEnabled bool
}

// Server wraps the MCP server and exposes the telemetry and profiling tools.
type Server struct {
	mcpServer *server.MCPServer
	deps      Deps
	config    Config
	logger    zerolog.Logger
	startedAt time.Time
	toolNames []string
}

// New creates a new MCP server instance with all tools registered.
func New(deps Deps, config Config, logger zerolog.Logger) *Server {
	if config.Name == "" {
		config.Name = "perfscope"
	}
	if config.Version == "" {
		config.Version = "dev"
	}

	s := &Server{
		mcpServer: server.NewMCPServer(
			config.Name,
			config.Version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
		deps:      deps,
		config:    config,
		logger:    logger.With().Str("component", "mcp_server").Logger(),
		startedAt: time.Now(),
	}

	s.registerTools()

	s.logger.Info().
		Int("tool_count", len(s.toolNames)).
		Msg("MCP server initialized")

	return s
}

// ServeStdio serves the MCP protocol over stdin/stdout. This blocks until
// the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info().Msg("Starting MCP server on stdio")
	return server.ServeStdio(s.mcpServer)
}

// ListToolNames returns the names of all registered tools.
func (s *Server) ListToolNames() []string {
	names := make([]string, len(s.toolNames))
	copy(names, s.toolNames)
	return names
}

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	s.registerSystemInfoTool()
	s.registerCPUMetricsTool()
	s.registerMemoryMetricsTool()
	s.registerDiskMetricsTool()
	s.registerNetworkMetricsTool()
	s.registerProcessMetricsTool()
	s.registerAllMetricsTool()
	s.registerPerformanceSummaryTool()
	s.registerSearchProcessesTool()
	s.registerProfileProcessTool()
}

// isToolEnabled checks if a tool is enabled based on configuration.
func (s *Server) isToolEnabled(toolName string) bool {
	if len(s.config.EnabledTools) == 0 {
		// All tools enabled by default.
		return true
	}
	for _, enabled := range s.config.EnabledTools {
		if enabled == toolName {
			return true
		}
	}
	return false
}

// auditToolCall logs a tool invocation if auditing is enabled.
func (s *Server) auditToolCall(toolName string, args interface{}) {
	if !s.config.AuditEnabled {
		return
	}
	argsJSON, _ := json.Marshal(args)
	s.logger.Info().
		Str("tool", toolName).
		RawJSON("args", argsJSON).
		Msg("MCP tool called")
}

// generateInputSchema generates a JSON schema from a Go type.
func generateInputSchema(inputType interface{}) (map[string]any, error) {
	// Use reflector without $ref/$defs to get inline schema that MCP
	// clients can understand.
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(inputType)

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	var schemaMap map[string]any
	if err := json.Unmarshal(schemaBytes, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	// Remove JSON Schema draft-specific fields that MCP clients don't expect.
	delete(schemaMap, "$schema")
	delete(schemaMap, "$id")

	return schemaMap, nil
}

// registerToolWithSchema generates the input schema, creates the tool and
// registers it with the underlying MCP server.
func (s *Server) registerToolWithSchema(
	name string,
	description string,
	inputType interface{},
	handler func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error),
) {
	if !s.isToolEnabled(name) {
		return
	}

	inputSchema, err := generateInputSchema(inputType)
	if err != nil {
		s.logger.Error().Err(err).Str("tool", name).Msg("Failed to generate input schema")
		return
	}

	schemaBytes, err := json.Marshal(inputSchema)
	if err != nil {
		s.logger.Error().Err(err).Str("tool", name).Msg("Failed to marshal schema")
		return
	}

	tool := mcpgo.NewToolWithRawSchema(name, description, schemaBytes)
	s.mcpServer.AddTool(tool, handler)
	s.toolNames = append(s.toolNames, name)

	s.logger.Debug().Str("tool", name).Msg("Tool registered")
}

// parseArguments decodes the request arguments into input.
func parseArguments(request mcpgo.CallToolRequest, input interface{}) error {
	if request.Params.Arguments == nil {
		return nil
	}
	argBytes, err := json.Marshal(request.Params.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}
	if err := json.Unmarshal(argBytes, input); err != nil {
		return fmt.Errorf("failed to parse arguments: %w", err)
	}
	return nil
}

// jsonResult renders data as a pretty-printed JSON text result.
func jsonResult(data any) (*mcpgo.CallToolResult, error) {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcpgo.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcpgo.NewToolResultText(string(payload)), nil
}
