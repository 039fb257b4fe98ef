package profiler

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// perfInstallHelp is returned with ToolUnavailable failures.
const perfInstallHelp = "Install perf with: apt-get install linux-tools-generic (Ubuntu/Debian) or yum install perf (RHEL/CentOS)"

// toolAvailable reports whether the perf binary exists and responds to
// --version within the probe timeout. Availability is re-checked on every
// profiling request; the tool can appear or disappear between calls.
func (p *Profiler) toolAvailable(ctx context.Context) bool {
	_, err := p.runner.Run(ctx, probeTimeout, p.perfPath, "--version")
	return err == nil
}

// checkProcess sends a zero-effect signal to pid to verify it is alive and
// accessible. Returns nil when the process can be profiled.
func checkProcess(pid int) *SamplingError {
	err := unix.Kill(pid, 0)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EPERM):
		// The process exists but we lack privilege to signal it.
		return newSamplingError(ErrPermissionDenied,
			fmt.Sprintf("Permission denied to access process %d", pid))
	default:
		// ESRCH, or anything else we cannot interpret as "alive".
		return newSamplingError(ErrProcessNotFound,
			fmt.Sprintf("Process with PID %d does not exist", pid))
	}
}
