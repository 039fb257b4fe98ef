package profiler

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Limits applied to the assembled result. Raw text fields are capped so a
// single profile response stays within a bounded payload size.
const (
	maxRawStackChars = 10000
	maxReportChars   = 5000

	// Request parameter bounds, enforced defensively even though the
	// dispatch layer validates them first.
	minDuration  = 1
	maxDuration  = 300
	minFrequency = 1
	maxFrequency = 10000

	// Defaults applied when the caller omits optional parameters.
	DefaultDuration  = 10
	DefaultFrequency = 99
	DefaultEvent     = "cpu-clock"

	timestampFormat = "2006-01-02 15:04:05"
)

// SamplingRequest describes one profiling run. It is validated before the
// session starts and echoed back in the result.
type SamplingRequest struct {
	PID       int    `json:"pid"`
	Duration  int    `json:"duration"`
	Frequency int    `json:"frequency"`
	Event     string `json:"event"`
}

// NewRequest returns a request for pid with default duration, frequency
// and event.
func NewRequest(pid int) SamplingRequest {
	return SamplingRequest{
		PID:       pid,
		Duration:  DefaultDuration,
		Frequency: DefaultFrequency,
		Event:     DefaultEvent,
	}
}

// ApplyDefaults fills zero-valued optional fields with their defaults.
func (r *SamplingRequest) ApplyDefaults() {
	if r.Duration == 0 {
		r.Duration = DefaultDuration
	}
	if r.Frequency == 0 {
		r.Frequency = DefaultFrequency
	}
	if r.Event == "" {
		r.Event = DefaultEvent
	}
}

// Validate rejects out-of-range parameters with a descriptive error rather
// than passing them through to the external tool uninspected.
func (r SamplingRequest) Validate() *SamplingError {
	if r.PID <= 0 {
		return newSamplingError(ErrInvalidRequest, fmt.Sprintf("Invalid PID: %d", r.PID))
	}
	if r.Duration < minDuration || r.Duration > maxDuration {
		return newSamplingError(ErrInvalidRequest,
			fmt.Sprintf("Duration must be between %d and %d seconds", minDuration, maxDuration))
	}
	if r.Frequency < minFrequency || r.Frequency > maxFrequency {
		return newSamplingError(ErrInvalidRequest,
			fmt.Sprintf("Frequency must be between %d and %d Hz", minFrequency, maxFrequency))
	}
	return nil
}

// StackSample is one observed call stack at one point in time. Stack is
// ordered root-first (the reverse of perf script's leaf-first emission), as
// flame graph tooling expects.
type StackSample struct {
	Command   string   `json:"command"`
	PID       int      `json:"pid"`
	Timestamp string   `json:"timestamp"`
	Stack     []string `json:"stack"`
}

// HotFunction is one row of the "top functions by overhead" table.
type HotFunction struct {
	OverheadPercent float64 `json:"overhead_percent"`
	Command         string  `json:"command"`
	Function        string  `json:"function"`
}

// Statistics aggregates the report-summary table.
//
// TotalSamples is the count of accepted top-function rows (capped at 20), not
// the sampler's true event count. This mirrors the long-standing behavior of
// the field; redefining it would break consumers keying on the old meaning.
type Statistics struct {
	TotalSamples int           `json:"total_samples"`
	TopFunctions []HotFunction `json:"top_functions"`
}

// ProfileResult is the final outcome of a profiling request. On failure only
// Success, Error and optionally Help are populated.
type ProfileResult struct {
	Success        bool          `json:"success"`
	Error          string        `json:"error,omitempty"`
	Help           string        `json:"help,omitempty"`
	PID            int           `json:"pid,omitempty"`
	Duration       int           `json:"duration,omitempty"`
	Frequency      int           `json:"frequency,omitempty"`
	Event          string        `json:"event,omitempty"`
	Timestamp      string        `json:"timestamp,omitempty"`
	Statistics     *Statistics   `json:"statistics,omitempty"`
	FlameGraphData []StackSample `json:"flame_graph_data,omitempty"`
	RawStackTraces string        `json:"raw_stack_traces,omitempty"`
	ReportSummary  string        `json:"report_summary,omitempty"`
}

// assembleResult combines the request with the raw text buffers into the
// final success result. This is the only constructor of Success=true results.
func assembleResult(req SamplingRequest, rawStackTraces, reportSummary string, now time.Time) *ProfileResult {
	stats := ExtractStatistics(reportSummary)
	return &ProfileResult{
		Success:        true,
		PID:            req.PID,
		Duration:       req.Duration,
		Frequency:      req.Frequency,
		Event:          req.Event,
		Timestamp:      now.Format(timestampFormat),
		Statistics:     &stats,
		FlameGraphData: ParseStackSamples(rawStackTraces),
		RawStackTraces: truncateString(rawStackTraces, maxRawStackChars),
		ReportSummary:  truncateString(reportSummary, maxReportChars),
		Help:           "Use flame_graph_data to generate flame graph visualization",
	}
}

// failureResult converts a sampling error into the failure result shape.
func failureResult(serr *SamplingError) *ProfileResult {
	return &ProfileResult{
		Success: false,
		Error:   serr.Message,
		Help:    serr.Help,
	}
}

// truncateString caps s at max characters without splitting a multi-byte
// rune. Strings already under the cap are returned unchanged.
func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
