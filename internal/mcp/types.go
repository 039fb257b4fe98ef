package mcp

// Input types for MCP tools.
// Optional fields use pointers to allow nil values.

// EmptyInput is the input for tools that take no parameters.
type EmptyInput struct{}

// ProcessMetricsInput is the input for get_process_metrics.
type ProcessMetricsInput struct {
	TopN *int `json:"top_n,omitempty" jsonschema:"description=Number of top processes to return,default=10"`
}

// AllMetricsInput is the input for get_all_metrics.
type AllMetricsInput struct {
	IncludeProcesses *bool `json:"include_processes,omitempty" jsonschema:"description=Include per-process metrics in the snapshot,default=true"`
}

// SearchProcessesInput is the input for search_processes.
type SearchProcessesInput struct {
	Keyword       string `json:"keyword" jsonschema:"description=Substring to match against process names and command lines"`
	CaseSensitive *bool  `json:"case_sensitive,omitempty" jsonschema:"description=Match case sensitively,default=false"`
}

// ProfileProcessInput is the input for profile_process.
type ProfileProcessInput struct {
	PID       int     `json:"pid" jsonschema:"description=Process ID to profile (required)"`
	Duration  *int    `json:"duration,omitempty" jsonschema:"description=Sampling duration in seconds (1-300),default=10"`
	Frequency *int    `json:"frequency,omitempty" jsonschema:"description=Sampling frequency in Hz (1-10000),default=99"`
	Event     *string `json:"event,omitempty" jsonschema:"description=Perf event to record,enum=cpu-clock,enum=cycles,enum=instructions,enum=cache-misses,default=cpu-clock"`
}
