package profiler

// ErrorKind classifies the failure modes of a sampling run.
type ErrorKind string

const (
	// ErrInvalidRequest indicates the request parameters failed validation.
	ErrInvalidRequest ErrorKind = "invalid_request"
	// ErrToolUnavailable indicates the perf binary is missing or not invocable.
	ErrToolUnavailable ErrorKind = "tool_unavailable"
	// ErrProcessNotFound indicates the target PID does not exist.
	ErrProcessNotFound ErrorKind = "process_not_found"
	// ErrPermissionDenied indicates the target PID exists but cannot be signalled.
	ErrPermissionDenied ErrorKind = "permission_denied"
	// ErrRecordFailed indicates perf record exited non-zero.
	ErrRecordFailed ErrorKind = "record_failed"
	// ErrRecordTimeout indicates perf record exceeded duration + grace.
	ErrRecordTimeout ErrorKind = "record_timeout"
	// ErrScriptFailed indicates perf script exited non-zero.
	ErrScriptFailed ErrorKind = "script_failed"
	// ErrScriptTimeout indicates perf script exceeded its timeout.
	ErrScriptTimeout ErrorKind = "script_timeout"
)

// SamplingError is the structured failure value produced by a sampling run.
// Every external-process failure mode is converted into one of these; the
// profiler never lets a subprocess error escape as a raw error.
type SamplingError struct {
	Kind    ErrorKind
	Message string
	// Help carries user-facing guidance (e.g. how to install perf).
	Help string
	// Stderr carries captured subprocess stderr for diagnosis.
	Stderr string
}

// Error implements the error interface.
func (e *SamplingError) Error() string {
	return e.Message
}

func newSamplingError(kind ErrorKind, message string) *SamplingError {
	return &SamplingError{Kind: kind, Message: message}
}
