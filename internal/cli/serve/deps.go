package serve

import (
	"github.com/rs/zerolog"

	"github.com/perfscope-io/perfscope/internal/collector"
	"github.com/perfscope-io/perfscope/internal/config"
	"github.com/perfscope-io/perfscope/internal/mcp"
	"github.com/perfscope-io/perfscope/internal/profiler"
)

// buildDeps wires the collectors and the profiler from configuration.
func buildDeps(cfg config.Config, logger zerolog.Logger) mcp.Deps {
	cpu := collector.NewCPUCollector()
	memory := collector.NewMemoryCollector()
	disk := collector.NewDiskCollector()

	return mcp.Deps{
		SystemInfo: collector.NewSystemInfoCollector(),
		CPU:        cpu,
		Memory:     memory,
		Disk:       disk,
		Network:    collector.NewNetworkCollector(),
		Process:    collector.NewProcessCollector(cfg.Collectors.TopProcesses),
		Summary:    collector.NewSummaryCollector(cpu, memory, disk),
		Profiler: profiler.New(profiler.Config{
			PerfPath: cfg.Profiler.PerfPath,
		}, logger),
	}
}
