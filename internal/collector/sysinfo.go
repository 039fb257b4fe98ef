package collector

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

// SystemInfo is the snapshot produced by SystemInfoCollector.
type SystemInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelVersion   string `json:"kernel_version"`
	KernelArch      string `json:"kernel_arch"`
	UptimeSeconds   uint64 `json:"uptime_seconds"`
	BootTime        string `json:"boot_time"`
	GoVersion       string `json:"go_version"`
	Timestamp       string `json:"timestamp"`
}

// SystemInfoCollector reports static host identity and uptime.
type SystemInfoCollector struct{}

// NewSystemInfoCollector creates a system info collector.
func NewSystemInfoCollector() *SystemInfoCollector {
	return &SystemInfoCollector{}
}

// Collect implements Collector.
func (c *SystemInfoCollector) Collect(ctx context.Context) (any, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	return SystemInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		KernelArch:      info.KernelArch,
		UptimeSeconds:   info.Uptime,
		BootTime:        time.Unix(int64(info.BootTime), 0).Format(time.RFC3339),
		GoVersion:       runtime.Version(),
		Timestamp:       time.Now().Format(time.RFC3339),
	}, nil
}

// Describe implements Collector.
func (c *SystemInfoCollector) Describe() string {
	return "Get basic system information including hostname, OS, kernel version, and architecture."
}
