package collector

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// DiskMetrics is the snapshot produced by DiskCollector.
type DiskMetrics struct {
	Partitions []PartitionUsage      `json:"partitions"`
	IOCounters map[string]DiskIOStat `json:"io_counters"`
}

// PartitionUsage reports usage of one mounted partition.
type PartitionUsage struct {
	Device     string  `json:"device"`
	Mountpoint string  `json:"mountpoint"`
	Fstype     string  `json:"fstype"`
	Opts       string  `json:"opts"`
	TotalBytes uint64  `json:"total_bytes"`
	TotalHuman string  `json:"total_human"`
	UsedBytes  uint64  `json:"used_bytes"`
	UsedHuman  string  `json:"used_human"`
	FreeBytes  uint64  `json:"free_bytes"`
	FreeHuman  string  `json:"free_human"`
	Percent    float64 `json:"percent"`
}

// DiskIOStat reports cumulative I/O counters of one block device.
type DiskIOStat struct {
	ReadCount   uint64 `json:"read_count"`
	WriteCount  uint64 `json:"write_count"`
	ReadBytes   uint64 `json:"read_bytes"`
	ReadHuman   string `json:"read_human"`
	WriteBytes  uint64 `json:"write_bytes"`
	WriteHuman  string `json:"write_human"`
	ReadTimeMs  uint64 `json:"read_time_ms"`
	WriteTimeMs uint64 `json:"write_time_ms"`
	BusyTimeMs  uint64 `json:"busy_time_ms"`
}

// DiskCollector collects partition usage and per-device I/O statistics.
type DiskCollector struct{}

// NewDiskCollector creates a disk collector.
func NewDiskCollector() *DiskCollector {
	return &DiskCollector{}
}

// Collect implements Collector. Partitions that cannot be statted (stale
// mounts, permission) are skipped rather than failing the snapshot.
func (c *DiskCollector) Collect(ctx context.Context) (any, error) {
	metrics := DiskMetrics{
		Partitions: []PartitionUsage{},
		IOCounters: map[string]DiskIOStat{},
	}

	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err == nil {
		for _, partition := range partitions {
			usage, err := disk.UsageWithContext(ctx, partition.Mountpoint)
			if err != nil {
				continue
			}
			metrics.Partitions = append(metrics.Partitions, PartitionUsage{
				Device:     partition.Device,
				Mountpoint: partition.Mountpoint,
				Fstype:     partition.Fstype,
				Opts:       strings.Join(partition.Opts, ","),
				TotalBytes: usage.Total,
				TotalHuman: humanBytes(float64(usage.Total)),
				UsedBytes:  usage.Used,
				UsedHuman:  humanBytes(float64(usage.Used)),
				FreeBytes:  usage.Free,
				FreeHuman:  humanBytes(float64(usage.Free)),
				Percent:    round2(usage.UsedPercent),
			})
		}
	}

	if counters, err := disk.IOCountersWithContext(ctx); err == nil {
		for name, counter := range counters {
			metrics.IOCounters[name] = DiskIOStat{
				ReadCount:   counter.ReadCount,
				WriteCount:  counter.WriteCount,
				ReadBytes:   counter.ReadBytes,
				ReadHuman:   humanBytes(float64(counter.ReadBytes)),
				WriteBytes:  counter.WriteBytes,
				WriteHuman:  humanBytes(float64(counter.WriteBytes)),
				ReadTimeMs:  counter.ReadTime,
				WriteTimeMs: counter.WriteTime,
				BusyTimeMs:  counter.IoTime,
			}
		}
	}

	return metrics, nil
}

// Describe implements Collector.
func (c *DiskCollector) Describe() string {
	return "Collects disk partition usage and I/O statistics including read/write counts and times."
}
