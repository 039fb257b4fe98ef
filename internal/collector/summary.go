package collector

import (
	"context"
	"fmt"
	"time"
)

// Health thresholds for the derived performance summary.
const (
	cpuWarnPercent  = 70
	cpuCritPercent  = 90
	memWarnPercent  = 80
	memCritPercent  = 95
	swapWarnPercent = 50
	diskWarnPercent = 80
	diskCritPercent = 95
)

// PerformanceSummary is a derived health report over CPU, memory and disk.
type PerformanceSummary struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Summary   SummaryOverview `json:"summary"`
	Issues    []string        `json:"issues"`
	Warnings  []string        `json:"warnings"`
}

// SummaryOverview carries the headline numbers behind the status.
type SummaryOverview struct {
	CPUPercent      float64 `json:"cpu_percent"`
	LoadAverage1Min float64 `json:"load_average_1min"`
	MemoryPercent   float64 `json:"memory_percent"`
	SwapPercent     float64 `json:"swap_percent"`
}

// SummaryCollector derives a health report from the CPU, memory and disk
// collectors.
type SummaryCollector struct {
	cpu    *CPUCollector
	memory *MemoryCollector
	disk   *DiskCollector
}

// NewSummaryCollector creates a summary collector over the given collectors.
func NewSummaryCollector(cpu *CPUCollector, memory *MemoryCollector, disk *DiskCollector) *SummaryCollector {
	return &SummaryCollector{cpu: cpu, memory: memory, disk: disk}
}

// Collect implements Collector.
func (c *SummaryCollector) Collect(ctx context.Context) (any, error) {
	cpuRaw, err := c.cpu.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect CPU metrics: %w", err)
	}
	memRaw, err := c.memory.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect memory metrics: %w", err)
	}
	diskRaw, err := c.disk.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect disk metrics: %w", err)
	}

	summary := classifyHealth(cpuRaw.(CPUMetrics), memRaw.(MemoryMetrics), diskRaw.(DiskMetrics))
	return summary, nil
}

// classifyHealth applies the health thresholds to one set of snapshots.
func classifyHealth(cpu CPUMetrics, memory MemoryMetrics, disk DiskMetrics) PerformanceSummary {
	issues := []string{}
	warnings := []string{}

	switch {
	case cpu.OverallPercent > cpuCritPercent:
		issues = append(issues, fmt.Sprintf("Critical: CPU usage is very high (%.2f%%)", cpu.OverallPercent))
	case cpu.OverallPercent > cpuWarnPercent:
		warnings = append(warnings, fmt.Sprintf("Warning: CPU usage is elevated (%.2f%%)", cpu.OverallPercent))
	}

	cores := float64(cpu.CoreCountLogical)
	switch {
	case cores > 0 && cpu.LoadAverage.Load1 > cores*2:
		issues = append(issues, fmt.Sprintf("Critical: Load average (%.2f) is very high", cpu.LoadAverage.Load1))
	case cores > 0 && cpu.LoadAverage.Load1 > cores:
		warnings = append(warnings, fmt.Sprintf("Warning: Load average (%.2f) exceeds core count", cpu.LoadAverage.Load1))
	}

	switch {
	case memory.Virtual.Percent > memCritPercent:
		issues = append(issues, fmt.Sprintf("Critical: Memory usage is critical (%.2f%%)", memory.Virtual.Percent))
	case memory.Virtual.Percent > memWarnPercent:
		warnings = append(warnings, fmt.Sprintf("Warning: Memory usage is high (%.2f%%)", memory.Virtual.Percent))
	}

	if memory.Swap.Percent > swapWarnPercent {
		warnings = append(warnings, fmt.Sprintf("Warning: Swap usage is high (%.2f%%)", memory.Swap.Percent))
	}

	for _, partition := range disk.Partitions {
		switch {
		case partition.Percent > diskCritPercent:
			issues = append(issues, fmt.Sprintf("Critical: Disk %s is almost full (%.2f%%)", partition.Mountpoint, partition.Percent))
		case partition.Percent > diskWarnPercent:
			warnings = append(warnings, fmt.Sprintf("Warning: Disk %s usage is high (%.2f%%)", partition.Mountpoint, partition.Percent))
		}
	}

	status := "healthy"
	if len(warnings) > 0 {
		status = "warning"
	}
	if len(issues) > 0 {
		status = "critical"
	}

	return PerformanceSummary{
		Status:    status,
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: SummaryOverview{
			CPUPercent:      cpu.OverallPercent,
			LoadAverage1Min: cpu.LoadAverage.Load1,
			MemoryPercent:   memory.Virtual.Percent,
			SwapPercent:     memory.Swap.Percent,
		},
		Issues:   issues,
		Warnings: warnings,
	}
}

// Describe implements Collector.
func (c *SummaryCollector) Describe() string {
	return "Generates a performance health summary with detected issues and warnings."
}
