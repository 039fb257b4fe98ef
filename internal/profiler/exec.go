package profiler

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// execResult holds the captured output of a finished subprocess.
type execResult struct {
	stdout string
	stderr string
}

// commandRunner abstracts subprocess invocation so the session runner can be
// tested without a real perf binary.
type commandRunner interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (execResult, error)
}

// systemRunner executes commands with os/exec.
type systemRunner struct{}

// Run invokes name with args under the given timeout and captures its output.
// A timeout is reported as context.DeadlineExceeded; a non-zero exit as
// *exec.ExitError; a missing binary as exec.ErrNotFound.
func (systemRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (execResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := execResult{stdout: stdout.String(), stderr: stderr.String()}

	// Distinguish a deadline kill from an ordinary non-zero exit.
	if runCtx.Err() == context.DeadlineExceeded {
		return result, context.DeadlineExceeded
	}
	return result, err
}
