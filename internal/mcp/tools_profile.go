package mcp

import (
	"context"
	"fmt"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/perfscope-io/perfscope/internal/profiler"
)

const profileToolDescription = "Profiles a running process with the perf sampling profiler and returns " +
	"flame-graph-ready call stacks plus top functions by overhead. Blocks for the " +
	"full sampling duration (default 10s, max 300s)."

func (s *Server) registerProfileProcessTool() {
	s.registerToolWithSchema(
		"profile_process",
		profileToolDescription,
		ProfileProcessInput{},
		s.handleProfileProcess,
	)
}

func (s *Server) handleProfileProcess(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	var input ProfileProcessInput
	if err := parseArguments(request, &input); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	s.auditToolCall("profile_process", input)

	if input.PID <= 0 {
		return mcpgo.NewToolResultError(fmt.Sprintf("Invalid PID: %d", input.PID)), nil
	}

	req := profiler.NewRequest(input.PID)
	if input.Duration != nil {
		req.Duration = *input.Duration
	}
	if input.Frequency != nil {
		req.Frequency = *input.Frequency
	}
	if input.Event != nil {
		req.Event = *input.Event
	}

	// Range checks belong here too: the profiler re-validates, but a
	// descriptive tool error beats a failure result for bad input.
	if req.Duration < 1 || req.Duration > 300 {
		return mcpgo.NewToolResultError("Duration must be between 1 and 300 seconds"), nil
	}
	if req.Frequency < 1 || req.Frequency > 10000 {
		return mcpgo.NewToolResultError("Frequency must be between 1 and 10000 Hz"), nil
	}

	result := s.deps.Profiler.Profile(ctx, req)
	return jsonResult(result)
}
