package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
)

// CPUMetrics is the snapshot produced by CPUCollector.
type CPUMetrics struct {
	OverallPercent    float64     `json:"overall_percent"`
	PerCorePercent    []float64   `json:"per_core_percent"`
	CoreCountPhysical int         `json:"core_count_physical"`
	CoreCountLogical  int         `json:"core_count_logical"`
	Frequency         []CoreFreq  `json:"frequency"`
	Times             CPUTimes    `json:"times"`
	LoadAverage       LoadAverage `json:"load_average"`
}

// CoreFreq is the reported frequency of one logical core.
type CoreFreq struct {
	Core       int     `json:"core"`
	CurrentMHz float64 `json:"current_mhz"`
}

// CPUTimes is the cumulative CPU time split in seconds.
type CPUTimes struct {
	User    float64 `json:"user"`
	System  float64 `json:"system"`
	Idle    float64 `json:"idle"`
	Iowait  float64 `json:"iowait"`
	Irq     float64 `json:"irq"`
	Softirq float64 `json:"softirq"`
}

// LoadAverage is the 1/5/15-minute run-queue load.
type LoadAverage struct {
	Load1  float64 `json:"1min"`
	Load5  float64 `json:"5min"`
	Load15 float64 `json:"15min"`
}

// CPUCollector collects CPU utilization, frequency, times and load average.
type CPUCollector struct{}

// NewCPUCollector creates a CPU collector.
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{}
}

// Collect samples per-core utilization over a one-second window and reads
// frequency, cumulative times and load averages.
func (c *CPUCollector) Collect(ctx context.Context) (any, error) {
	perCore, err := cpu.PercentWithContext(ctx, time.Second, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU percent: %w", err)
	}
	if len(perCore) == 0 {
		return nil, fmt.Errorf("no CPU percentages returned")
	}

	var overall float64
	for i, p := range perCore {
		perCore[i] = round2(p)
		overall += p
	}
	overall = round2(overall / float64(len(perCore)))

	physical, err := cpu.CountsWithContext(ctx, false)
	if err != nil {
		physical = 0
	}
	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		logical = 0
	}

	metrics := CPUMetrics{
		OverallPercent:    overall,
		PerCorePercent:    perCore,
		CoreCountPhysical: physical,
		CoreCountLogical:  logical,
		Frequency:         []CoreFreq{},
	}

	// Frequency and times are best-effort; missing counters leave zero values.
	if infos, err := cpu.InfoWithContext(ctx); err == nil {
		for i, info := range infos {
			metrics.Frequency = append(metrics.Frequency, CoreFreq{
				Core:       i,
				CurrentMHz: round2(info.Mhz),
			})
		}
	}

	if times, err := cpu.TimesWithContext(ctx, false); err == nil && len(times) > 0 {
		metrics.Times = CPUTimes{
			User:    round2(times[0].User),
			System:  round2(times[0].System),
			Idle:    round2(times[0].Idle),
			Iowait:  round2(times[0].Iowait),
			Irq:     round2(times[0].Irq),
			Softirq: round2(times[0].Softirq),
		}
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		metrics.LoadAverage = LoadAverage{
			Load1:  round2(avg.Load1),
			Load5:  round2(avg.Load5),
			Load15: round2(avg.Load15),
		}
	}

	return metrics, nil
}

// Describe implements Collector.
func (c *CPUCollector) Describe() string {
	return "Collects CPU usage, frequency, load average, and time distribution metrics."
}
