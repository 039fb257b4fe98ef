package profiler

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplingRequest_ApplyDefaults(t *testing.T) {
	req := SamplingRequest{PID: 42}
	req.ApplyDefaults()

	assert.Equal(t, DefaultDuration, req.Duration)
	assert.Equal(t, DefaultFrequency, req.Frequency)
	assert.Equal(t, DefaultEvent, req.Event)

	// Explicit values are preserved.
	req = SamplingRequest{PID: 42, Duration: 30, Frequency: 200, Event: "cycles"}
	req.ApplyDefaults()
	assert.Equal(t, 30, req.Duration)
	assert.Equal(t, 200, req.Frequency)
	assert.Equal(t, "cycles", req.Event)
}

func TestSamplingRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		req      SamplingRequest
		wantKind ErrorKind
		wantMsg  string
	}{
		{
			name: "valid",
			req:  SamplingRequest{PID: 1, Duration: 10, Frequency: 99, Event: "cpu-clock"},
		},
		{
			name:     "zero pid",
			req:      SamplingRequest{PID: 0, Duration: 10, Frequency: 99},
			wantKind: ErrInvalidRequest,
			wantMsg:  "Invalid PID: 0",
		},
		{
			name:     "negative pid",
			req:      SamplingRequest{PID: -5, Duration: 10, Frequency: 99},
			wantKind: ErrInvalidRequest,
			wantMsg:  "Invalid PID: -5",
		},
		{
			name:     "duration too long",
			req:      SamplingRequest{PID: 1, Duration: 301, Frequency: 99},
			wantKind: ErrInvalidRequest,
			wantMsg:  "Duration must be between 1 and 300 seconds",
		},
		{
			name:     "frequency too high",
			req:      SamplingRequest{PID: 1, Duration: 10, Frequency: 10001},
			wantKind: ErrInvalidRequest,
			wantMsg:  "Frequency must be between 1 and 10000 Hz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serr := tt.req.Validate()
			if tt.wantKind == "" {
				assert.Nil(t, serr)
				return
			}
			require.NotNil(t, serr)
			assert.Equal(t, tt.wantKind, serr.Kind)
			assert.Equal(t, tt.wantMsg, serr.Message)
		})
	}
}

func TestAssembleResult(t *testing.T) {
	req := SamplingRequest{PID: 111, Duration: 10, Frequency: 99, Event: "cpu-clock"}
	report := reportHeader + "12.34%  python  [.]  do_work\n"
	now := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)

	result := assembleResult(req, sampleDump, report, now)

	assert.True(t, result.Success)
	assert.Equal(t, 111, result.PID)
	assert.Equal(t, 10, result.Duration)
	assert.Equal(t, 99, result.Frequency)
	assert.Equal(t, "cpu-clock", result.Event)
	assert.Equal(t, "2026-08-23 14:30:00", result.Timestamp)

	require.Len(t, result.FlameGraphData, 1)
	assert.Equal(t, []string{"bar", "foo"}, result.FlameGraphData[0].Stack)

	require.NotNil(t, result.Statistics)
	assert.Equal(t, 1, result.Statistics.TotalSamples)

	// Short inputs pass through untouched.
	assert.Equal(t, sampleDump, result.RawStackTraces)
	assert.Equal(t, report, result.ReportSummary)
}

func TestAssembleResult_CapsRawText(t *testing.T) {
	req := SamplingRequest{PID: 1, Duration: 10, Frequency: 99, Event: "cpu-clock"}
	longStacks := strings.Repeat("x", maxRawStackChars+500)
	longReport := strings.Repeat("y", maxReportChars+500)

	result := assembleResult(req, longStacks, longReport, time.Now())

	assert.Len(t, result.RawStackTraces, maxRawStackChars)
	assert.Len(t, result.ReportSummary, maxReportChars)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 10))
	assert.Equal(t, "abc", truncateString("abcdef", 3))

	// Never cut in the middle of a multi-byte rune.
	s := strings.Repeat("a", 9) + "héllo"
	got := truncateString(s, 11)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 11)
}

func TestFailureResult(t *testing.T) {
	serr := &SamplingError{
		Kind:    ErrToolUnavailable,
		Message: "perf tool is not available on this system",
		Help:    perfInstallHelp,
	}

	result := failureResult(serr)

	assert.False(t, result.Success)
	assert.Equal(t, "perf tool is not available on this system", result.Error)
	assert.Equal(t, perfInstallHelp, result.Help)
	assert.Nil(t, result.Statistics)
	assert.Empty(t, result.FlameGraphData)
}
