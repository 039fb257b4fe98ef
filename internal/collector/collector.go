// Package collector implements host telemetry collection (CPU, memory, disk,
// network, process) using gopsutil. Each collector produces a JSON-ready
// snapshot of one subsystem's OS counters.
package collector

import (
	"context"
	"fmt"
	"math"
)

// Collector is the capability interface shared by all telemetry collectors.
// The profiler is the one capability whose primary operation takes parameters
// instead; it lives in the profiler package.
type Collector interface {
	// Collect returns a point-in-time snapshot of the subsystem's metrics.
	Collect(ctx context.Context) (any, error)
	// Describe returns a human-readable description of what is measured.
	Describe() string
}

// humanBytes converts a byte count to a human-readable string ("1.50 GB").
func humanBytes(value float64) string {
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.2f PB", value)
}

// round2 rounds to two decimal places, matching the precision the metrics
// are reported with.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
