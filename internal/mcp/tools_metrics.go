package mcp

import (
	"context"
	"fmt"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/perfscope-io/perfscope/internal/collector"
)

// collectorHandler adapts a parameterless collector into a tool handler.
func (s *Server) collectorHandler(name string, c collector.Collector) func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		s.auditToolCall(name, nil)

		metrics, err := c.Collect(ctx)
		if err != nil {
			return mcpgo.NewToolResultError(fmt.Sprintf("failed to collect metrics: %v", err)), nil
		}
		return jsonResult(metrics)
	}
}

func (s *Server) registerSystemInfoTool() {
	s.registerToolWithSchema(
		"get_system_info",
		s.deps.SystemInfo.Describe(),
		EmptyInput{},
		s.collectorHandler("get_system_info", s.deps.SystemInfo),
	)
}

func (s *Server) registerCPUMetricsTool() {
	s.registerToolWithSchema(
		"get_cpu_metrics",
		s.deps.CPU.Describe(),
		EmptyInput{},
		s.collectorHandler("get_cpu_metrics", s.deps.CPU),
	)
}

func (s *Server) registerMemoryMetricsTool() {
	s.registerToolWithSchema(
		"get_memory_metrics",
		s.deps.Memory.Describe(),
		EmptyInput{},
		s.collectorHandler("get_memory_metrics", s.deps.Memory),
	)
}

func (s *Server) registerDiskMetricsTool() {
	s.registerToolWithSchema(
		"get_disk_metrics",
		s.deps.Disk.Describe(),
		EmptyInput{},
		s.collectorHandler("get_disk_metrics", s.deps.Disk),
	)
}

func (s *Server) registerNetworkMetricsTool() {
	s.registerToolWithSchema(
		"get_network_metrics",
		s.deps.Network.Describe(),
		EmptyInput{},
		s.collectorHandler("get_network_metrics", s.deps.Network),
	)
}

func (s *Server) registerProcessMetricsTool() {
	s.registerToolWithSchema(
		"get_process_metrics",
		s.deps.Process.Describe(),
		ProcessMetricsInput{},
		s.handleProcessMetrics,
	)
}

func (s *Server) handleProcessMetrics(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	var input ProcessMetricsInput
	if err := parseArguments(request, &input); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	s.auditToolCall("get_process_metrics", input)

	// A per-call top_n overrides the configured collector.
	c := s.deps.Process
	if input.TopN != nil {
		if *input.TopN < 1 {
			return mcpgo.NewToolResultError(fmt.Sprintf("Invalid top_n: %d", *input.TopN)), nil
		}
		c = collector.NewProcessCollector(*input.TopN)
	}

	metrics, err := c.Collect(ctx)
	if err != nil {
		return mcpgo.NewToolResultError(fmt.Sprintf("failed to collect process metrics: %v", err)), nil
	}
	return jsonResult(metrics)
}

func (s *Server) registerAllMetricsTool() {
	s.registerToolWithSchema(
		"get_all_metrics",
		"Collects a combined snapshot of system info and CPU, memory, disk, network, and optionally process metrics.",
		AllMetricsInput{},
		s.handleAllMetrics,
	)
}

func (s *Server) handleAllMetrics(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	var input AllMetricsInput
	if err := parseArguments(request, &input); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	s.auditToolCall("get_all_metrics", input)

	includeProcesses := true
	if input.IncludeProcesses != nil {
		includeProcesses = *input.IncludeProcesses
	}

	snapshot := map[string]any{}
	sections := []struct {
		key string
		c   collector.Collector
	}{
		{"system", s.deps.SystemInfo},
		{"cpu", s.deps.CPU},
		{"memory", s.deps.Memory},
		{"disk", s.deps.Disk},
		{"network", s.deps.Network},
	}
	for _, section := range sections {
		metrics, err := section.c.Collect(ctx)
		if err != nil {
			return mcpgo.NewToolResultError(
				fmt.Sprintf("failed to collect %s metrics: %v", section.key, err)), nil
		}
		snapshot[section.key] = metrics
	}

	if includeProcesses {
		metrics, err := s.deps.Process.Collect(ctx)
		if err != nil {
			return mcpgo.NewToolResultError(
				fmt.Sprintf("failed to collect process metrics: %v", err)), nil
		}
		snapshot["processes"] = metrics
	}

	return jsonResult(snapshot)
}

func (s *Server) registerPerformanceSummaryTool() {
	s.registerToolWithSchema(
		"get_performance_summary",
		s.deps.Summary.Describe(),
		EmptyInput{},
		s.collectorHandler("get_performance_summary", s.deps.Summary),
	)
}

func (s *Server) registerSearchProcessesTool() {
	s.registerToolWithSchema(
		"search_processes",
		"Searches running processes by name or command line substring.",
		SearchProcessesInput{},
		s.handleSearchProcesses,
	)
}

func (s *Server) handleSearchProcesses(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	var input SearchProcessesInput
	if err := parseArguments(request, &input); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	s.auditToolCall("search_processes", input)

	if input.Keyword == "" {
		return mcpgo.NewToolResultError("'keyword' parameter is required"), nil
	}

	caseSensitive := false
	if input.CaseSensitive != nil {
		caseSensitive = *input.CaseSensitive
	}

	result, err := s.deps.Process.SearchProcesses(ctx, input.Keyword, caseSensitive)
	if err != nil {
		return mcpgo.NewToolResultError(fmt.Sprintf("failed to search processes: %v", err)), nil
	}
	return jsonResult(result)
}
