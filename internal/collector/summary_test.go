package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthyInputs() (CPUMetrics, MemoryMetrics, DiskMetrics) {
	cpu := CPUMetrics{
		OverallPercent:   10,
		CoreCountLogical: 8,
		LoadAverage:      LoadAverage{Load1: 1.0},
	}
	memory := MemoryMetrics{
		Virtual: VirtualMemory{Percent: 40},
		Swap:    SwapMemory{Percent: 0},
	}
	disk := DiskMetrics{
		Partitions: []PartitionUsage{{Mountpoint: "/", Percent: 55}},
	}
	return cpu, memory, disk
}

func TestClassifyHealth_Healthy(t *testing.T) {
	cpu, memory, disk := healthyInputs()

	summary := classifyHealth(cpu, memory, disk)

	assert.Equal(t, "healthy", summary.Status)
	assert.Empty(t, summary.Issues)
	assert.Empty(t, summary.Warnings)
	assert.Equal(t, 10.0, summary.Summary.CPUPercent)
	assert.Equal(t, 40.0, summary.Summary.MemoryPercent)
}

func TestClassifyHealth_Warnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CPUMetrics, *MemoryMetrics, *DiskMetrics)
		want   string
	}{
		{
			name:   "elevated cpu",
			mutate: func(c *CPUMetrics, _ *MemoryMetrics, _ *DiskMetrics) { c.OverallPercent = 75 },
			want:   "CPU usage is elevated",
		},
		{
			name:   "load exceeds cores",
			mutate: func(c *CPUMetrics, _ *MemoryMetrics, _ *DiskMetrics) { c.LoadAverage.Load1 = 10 },
			want:   "exceeds core count",
		},
		{
			name:   "high memory",
			mutate: func(_ *CPUMetrics, m *MemoryMetrics, _ *DiskMetrics) { m.Virtual.Percent = 85 },
			want:   "Memory usage is high",
		},
		{
			name:   "high swap",
			mutate: func(_ *CPUMetrics, m *MemoryMetrics, _ *DiskMetrics) { m.Swap.Percent = 60 },
			want:   "Swap usage is high",
		},
		{
			name:   "high disk",
			mutate: func(_ *CPUMetrics, _ *MemoryMetrics, d *DiskMetrics) { d.Partitions[0].Percent = 85 },
			want:   "usage is high",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, memory, disk := healthyInputs()
			tt.mutate(&cpu, &memory, &disk)

			summary := classifyHealth(cpu, memory, disk)

			assert.Equal(t, "warning", summary.Status)
			require.Len(t, summary.Warnings, 1)
			assert.Contains(t, summary.Warnings[0], tt.want)
		})
	}
}

func TestClassifyHealth_Critical(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CPUMetrics, *MemoryMetrics, *DiskMetrics)
		want   string
	}{
		{
			name:   "cpu very high",
			mutate: func(c *CPUMetrics, _ *MemoryMetrics, _ *DiskMetrics) { c.OverallPercent = 95 },
			want:   "CPU usage is very high",
		},
		{
			name:   "load very high",
			mutate: func(c *CPUMetrics, _ *MemoryMetrics, _ *DiskMetrics) { c.LoadAverage.Load1 = 20 },
			want:   "Load average",
		},
		{
			name:   "memory critical",
			mutate: func(_ *CPUMetrics, m *MemoryMetrics, _ *DiskMetrics) { m.Virtual.Percent = 97 },
			want:   "Memory usage is critical",
		},
		{
			name:   "disk almost full",
			mutate: func(_ *CPUMetrics, _ *MemoryMetrics, d *DiskMetrics) { d.Partitions[0].Percent = 98 },
			want:   "almost full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, memory, disk := healthyInputs()
			tt.mutate(&cpu, &memory, &disk)

			summary := classifyHealth(cpu, memory, disk)

			assert.Equal(t, "critical", summary.Status)
			require.Len(t, summary.Issues, 1)
			assert.Contains(t, summary.Issues[0], tt.want)
		})
	}
}

func TestClassifyHealth_IssuesOutrankWarnings(t *testing.T) {
	cpu, memory, disk := healthyInputs()
	cpu.OverallPercent = 95
	memory.Swap.Percent = 60

	summary := classifyHealth(cpu, memory, disk)

	assert.Equal(t, "critical", summary.Status)
	assert.NotEmpty(t, summary.Issues)
	assert.NotEmpty(t, summary.Warnings)
}

func TestSummaryCollector_Collect(t *testing.T) {
	collector := NewSummaryCollector(NewCPUCollector(), NewMemoryCollector(), NewDiskCollector())

	raw, err := collector.Collect(context.Background())
	require.NoError(t, err)

	summary, ok := raw.(PerformanceSummary)
	require.True(t, ok)
	assert.Contains(t, []string{"healthy", "warning", "critical"}, summary.Status)
	assert.NotNil(t, summary.Issues)
	assert.NotNil(t, summary.Warnings)
}
