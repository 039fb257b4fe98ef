package collector

import (
	"context"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// DefaultTopN is the default number of top consumers reported.
const DefaultTopN = 10

// ProcessMetrics is the snapshot produced by ProcessCollector.
type ProcessMetrics struct {
	TotalCount         int            `json:"total_count"`
	StatusSummary      map[string]int `json:"status_summary"`
	TopCPUConsumers    []ProcessInfo  `json:"top_cpu_consumers"`
	TopMemoryConsumers []ProcessInfo  `json:"top_memory_consumers"`
}

// ProcessInfo describes one running process.
type ProcessInfo struct {
	PID            int32   `json:"pid"`
	Name           string  `json:"name"`
	Username       string  `json:"username"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryPercent  float64 `json:"memory_percent"`
	MemoryRSSBytes uint64  `json:"memory_rss_bytes"`
	MemoryRSSHuman string  `json:"memory_rss_human"`
	MemoryVMSBytes uint64  `json:"memory_vms_bytes"`
	Status         string  `json:"status"`
	NumThreads     int32   `json:"num_threads"`
}

// SearchResult is returned by SearchProcesses.
type SearchResult struct {
	Keyword       string        `json:"keyword"`
	CaseSensitive bool          `json:"case_sensitive"`
	MatchCount    int           `json:"match_count"`
	Matches       []ProcessInfo `json:"matches"`
}

// ProcessCollector collects per-process statistics and top consumers.
type ProcessCollector struct {
	topN int
}

// NewProcessCollector creates a process collector reporting the top topN
// consumers. Non-positive topN falls back to DefaultTopN.
func NewProcessCollector(topN int) *ProcessCollector {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &ProcessCollector{topN: topN}
}

// Collect implements Collector. Processes that vanish or deny access during
// enumeration are skipped.
func (c *ProcessCollector) Collect(ctx context.Context) (any, error) {
	infos, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	statusSummary := map[string]int{}
	for _, info := range infos {
		statusSummary[info.Status]++
	}

	topCPU := make([]ProcessInfo, len(infos))
	copy(topCPU, infos)
	sort.SliceStable(topCPU, func(i, j int) bool {
		return topCPU[i].CPUPercent > topCPU[j].CPUPercent
	})
	if len(topCPU) > c.topN {
		topCPU = topCPU[:c.topN]
	}

	topMem := make([]ProcessInfo, len(infos))
	copy(topMem, infos)
	sort.SliceStable(topMem, func(i, j int) bool {
		return topMem[i].MemoryPercent > topMem[j].MemoryPercent
	})
	if len(topMem) > c.topN {
		topMem = topMem[:c.topN]
	}

	return ProcessMetrics{
		TotalCount:         len(infos),
		StatusSummary:      statusSummary,
		TopCPUConsumers:    topCPU,
		TopMemoryConsumers: topMem,
	}, nil
}

// SearchProcesses returns processes whose name or command line contains the
// keyword.
func (c *ProcessCollector) SearchProcesses(ctx context.Context, keyword string, caseSensitive bool) (SearchResult, error) {
	result := SearchResult{
		Keyword:       keyword,
		CaseSensitive: caseSensitive,
		Matches:       []ProcessInfo{},
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return result, err
	}

	needle := keyword
	if !caseSensitive {
		needle = strings.ToLower(keyword)
	}

	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}
		cmdline, _ := proc.CmdlineWithContext(ctx)

		haystack := name + " " + cmdline
		if !caseSensitive {
			haystack = strings.ToLower(haystack)
		}
		if needle == "" || !strings.Contains(haystack, needle) {
			continue
		}
		result.Matches = append(result.Matches, c.describeProcess(ctx, proc))
	}

	result.MatchCount = len(result.Matches)
	return result, nil
}

// snapshot enumerates all accessible processes.
func (c *ProcessCollector) snapshot(ctx context.Context) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]ProcessInfo, 0, len(procs))
	for _, proc := range procs {
		if _, err := proc.NameWithContext(ctx); err != nil {
			continue
		}
		infos = append(infos, c.describeProcess(ctx, proc))
	}
	return infos, nil
}

// describeProcess reads one process's fields, degrading unreadable fields to
// zero values.
func (c *ProcessCollector) describeProcess(ctx context.Context, proc *process.Process) ProcessInfo {
	info := ProcessInfo{PID: proc.Pid}

	info.Name, _ = proc.NameWithContext(ctx)
	info.Username, _ = proc.UsernameWithContext(ctx)

	if cpuPercent, err := proc.CPUPercentWithContext(ctx); err == nil {
		info.CPUPercent = round2(cpuPercent)
	}
	if memPercent, err := proc.MemoryPercentWithContext(ctx); err == nil {
		info.MemoryPercent = round2(float64(memPercent))
	}
	if memInfo, err := proc.MemoryInfoWithContext(ctx); err == nil && memInfo != nil {
		info.MemoryRSSBytes = memInfo.RSS
		info.MemoryVMSBytes = memInfo.VMS
	}
	info.MemoryRSSHuman = humanBytes(float64(info.MemoryRSSBytes))

	if status, err := proc.StatusWithContext(ctx); err == nil && len(status) > 0 {
		info.Status = status[0]
	}
	if threads, err := proc.NumThreadsWithContext(ctx); err == nil {
		info.NumThreads = threads
	}

	return info
}

// Describe implements Collector.
func (c *ProcessCollector) Describe() string {
	return "Collects process statistics including top CPU and memory consumers."
}
