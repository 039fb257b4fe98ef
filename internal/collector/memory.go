package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"
)

// MemoryMetrics is the snapshot produced by MemoryCollector.
type MemoryMetrics struct {
	Virtual VirtualMemory `json:"virtual"`
	Swap    SwapMemory    `json:"swap"`
}

// VirtualMemory reports RAM usage.
type VirtualMemory struct {
	TotalBytes     uint64  `json:"total_bytes"`
	TotalHuman     string  `json:"total_human"`
	AvailableBytes uint64  `json:"available_bytes"`
	AvailableHuman string  `json:"available_human"`
	UsedBytes      uint64  `json:"used_bytes"`
	UsedHuman      string  `json:"used_human"`
	FreeBytes      uint64  `json:"free_bytes"`
	FreeHuman      string  `json:"free_human"`
	Percent        float64 `json:"percent"`
	BuffersBytes   uint64  `json:"buffers_bytes"`
	CachedBytes    uint64  `json:"cached_bytes"`
	SharedBytes    uint64  `json:"shared_bytes"`
}

// SwapMemory reports swap usage.
type SwapMemory struct {
	TotalBytes uint64  `json:"total_bytes"`
	TotalHuman string  `json:"total_human"`
	UsedBytes  uint64  `json:"used_bytes"`
	UsedHuman  string  `json:"used_human"`
	FreeBytes  uint64  `json:"free_bytes"`
	FreeHuman  string  `json:"free_human"`
	Percent    float64 `json:"percent"`
	SinBytes   uint64  `json:"sin_bytes"`
	SoutBytes  uint64  `json:"sout_bytes"`
}

// MemoryCollector collects virtual memory and swap metrics.
type MemoryCollector struct{}

// NewMemoryCollector creates a memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Collect implements Collector.
func (c *MemoryCollector) Collect(ctx context.Context) (any, error) {
	virtual, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get memory stats: %w", err)
	}
	swap, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get swap stats: %w", err)
	}

	return MemoryMetrics{
		Virtual: VirtualMemory{
			TotalBytes:     virtual.Total,
			TotalHuman:     humanBytes(float64(virtual.Total)),
			AvailableBytes: virtual.Available,
			AvailableHuman: humanBytes(float64(virtual.Available)),
			UsedBytes:      virtual.Used,
			UsedHuman:      humanBytes(float64(virtual.Used)),
			FreeBytes:      virtual.Free,
			FreeHuman:      humanBytes(float64(virtual.Free)),
			Percent:        round2(virtual.UsedPercent),
			BuffersBytes:   virtual.Buffers,
			CachedBytes:    virtual.Cached,
			SharedBytes:    virtual.Shared,
		},
		Swap: SwapMemory{
			TotalBytes: swap.Total,
			TotalHuman: humanBytes(float64(swap.Total)),
			UsedBytes:  swap.Used,
			UsedHuman:  humanBytes(float64(swap.Used)),
			FreeBytes:  swap.Free,
			FreeHuman:  humanBytes(float64(swap.Free)),
			Percent:    round2(swap.UsedPercent),
			SinBytes:   swap.Sin,
			SoutBytes:  swap.Sout,
		},
	}, nil
}

// Describe implements Collector.
func (c *MemoryCollector) Describe() string {
	return "Collects virtual memory and swap usage metrics including buffers and cache."
}
