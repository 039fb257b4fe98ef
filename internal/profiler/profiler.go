// Package profiler drives the perf sampling profiler over a running process
// and transforms its textual output into flame-graph-ready stack samples and
// aggregated hot-function statistics.
//
// A profiling run executes three perf sub-commands strictly in sequence:
// record (capture samples for the requested duration), script (dump each
// sample as text) and report (summarize overhead per function). Every
// subprocess failure mode is converted into a structured failure result; a
// profiling request never surfaces as a raw error to the dispatch layer.
package profiler

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/perfscope-io/perfscope/internal/errors"
)

// Phase timeouts. The record phase gets the requested duration plus a grace
// period; script and report run against an already-captured file.
const (
	probeTimeout  = 5 * time.Second
	recordGrace   = 10 * time.Second
	scriptTimeout = 30 * time.Second
	reportTimeout = 30 * time.Second
)

// Config configures the profiler.
type Config struct {
	// PerfPath is the perf binary to invoke (default "perf", resolved via PATH).
	PerfPath string
}

// DefaultConfig returns the default profiler configuration.
func DefaultConfig() Config {
	return Config{PerfPath: "perf"}
}

// Profiler runs perf sampling sessions. Concurrent sessions are safe: each
// run allocates its own temporary capture location and child processes, and
// the profiler itself holds no mutable state.
type Profiler struct {
	perfPath string
	runner   commandRunner
	logger   zerolog.Logger
}

// New creates a profiler.
func New(cfg Config, logger zerolog.Logger) *Profiler {
	perfPath := cfg.PerfPath
	if perfPath == "" {
		perfPath = "perf"
	}
	return &Profiler{
		perfPath: perfPath,
		runner:   systemRunner{},
		logger:   logger.With().Str("component", "profiler").Logger(),
	}
}

// Describe returns a human-readable description of the profiler capability.
func (p *Profiler) Describe() string {
	return "Collects performance profile data using perf for flame graph generation."
}

// Profile runs one sampling session and always returns a result: Success=true
// with stacks and statistics, or Success=false with a diagnosable error.
//
// The call blocks for the full requested duration plus processing time;
// callers expecting concurrent multi-tenant use should apply their own
// request-level timeout around it.
func (p *Profiler) Profile(ctx context.Context, req SamplingRequest) *ProfileResult {
	req.ApplyDefaults()
	if serr := req.Validate(); serr != nil {
		return failureResult(serr)
	}

	raw, serr := p.runSession(ctx, req)
	if serr != nil {
		p.logger.Warn().
			Str("kind", string(serr.Kind)).
			Int("pid", req.PID).
			Str("stderr", serr.Stderr).
			Msg("Profiling session failed")
		return failureResult(serr)
	}

	result := assembleResult(req, raw.stackTraces, raw.reportSummary, time.Now())
	if len(result.FlameGraphData) == 0 && raw.stackTraces != "" {
		// Parse degraded: we captured text but recognized no samples.
		p.logger.Warn().
			Int("pid", req.PID).
			Int("raw_len", len(raw.stackTraces)).
			Msg("No stack samples recognized in perf script output")
	}

	p.logger.Info().
		Int("pid", req.PID).
		Int("samples", len(result.FlameGraphData)).
		Int("top_functions", len(result.Statistics.TopFunctions)).
		Msg("Profiling session complete")
	return result
}

// sessionOutput holds the raw text buffers produced by a sampling session.
type sessionOutput struct {
	stackTraces   string
	reportSummary string
}

// runSession executes the three-phase capture pipeline against a scoped
// temporary perf.data file. The file location is reclaimed on every exit
// path, success or failure.
func (p *Profiler) runSession(ctx context.Context, req SamplingRequest) (sessionOutput, *SamplingError) {
	var out sessionOutput

	if !p.toolAvailable(ctx) {
		return out, &SamplingError{
			Kind:    ErrToolUnavailable,
			Message: "perf tool is not available on this system",
			Help:    perfInstallHelp,
		}
	}

	if serr := checkProcess(req.PID); serr != nil {
		return out, serr
	}

	sessionID := uuid.NewString()
	logger := p.logger.With().Str("session_id", sessionID).Int("pid", req.PID).Logger()

	tempDir, err := os.MkdirTemp("", "perfscope-"+sessionID)
	if err != nil {
		return out, newSamplingError(ErrRecordFailed,
			fmt.Sprintf("Failed to create temporary directory: %v", err))
	}
	defer errors.DeferRemoveAll(logger, tempDir, "Failed to remove capture directory")

	dataFile := filepath.Join(tempDir, "perf.data")

	// Record phase: sample the target while a fixed-duration sleep runs as
	// the workload driver.
	logger.Debug().
		Int("duration", req.Duration).
		Int("frequency", req.Frequency).
		Str("event", req.Event).
		Msg("Starting perf record")

	recordTimeout := time.Duration(req.Duration)*time.Second + recordGrace
	recordRes, err := p.runner.Run(ctx, recordTimeout, p.perfPath,
		"record",
		"-F", strconv.Itoa(req.Frequency),
		"-p", strconv.Itoa(req.PID),
		"-g",
		"-e", req.Event,
		"-o", dataFile,
		"--", "sleep", strconv.Itoa(req.Duration),
	)
	if err != nil {
		return out, classifyRecordError(err, recordRes, req.Duration)
	}

	// Script phase: dump the captured samples as per-sample text.
	scriptRes, err := p.runner.Run(ctx, scriptTimeout, p.perfPath, "script", "-i", dataFile)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return out, newSamplingError(ErrScriptTimeout, "perf script timed out")
		}
		serr := newSamplingError(ErrScriptFailed,
			fmt.Sprintf("perf script failed: %s", scriptRes.stderr))
		serr.Stderr = scriptRes.stderr
		return out, serr
	}
	out.stackTraces = scriptRes.stdout

	// Report phase: summarize overhead per function. Failure here degrades
	// to an empty summary; the stack data is already in hand.
	reportRes, err := p.runner.Run(ctx, reportTimeout, p.perfPath,
		"report", "-i", dataFile, "--stdio", "--no-children")
	if err != nil {
		logger.Warn().Err(err).Msg("perf report failed, continuing without summary")
	} else {
		out.reportSummary = reportRes.stdout
	}

	return out, nil
}

// classifyRecordError maps a record-phase failure to its error kind.
func classifyRecordError(err error, res execResult, duration int) *SamplingError {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return newSamplingError(ErrRecordTimeout,
			fmt.Sprintf("perf record timed out after %d seconds", duration+int(recordGrace.Seconds())))
	case stderrors.Is(err, exec.ErrNotFound):
		// The tool vanished between the availability probe and the run.
		return &SamplingError{
			Kind:    ErrToolUnavailable,
			Message: "perf tool is not available on this system",
			Help:    perfInstallHelp,
		}
	default:
		serr := newSamplingError(ErrRecordFailed,
			fmt.Sprintf("perf record failed: %s", res.stderr))
		serr.Stderr = res.stderr
		return serr
	}
}
