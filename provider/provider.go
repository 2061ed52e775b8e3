// Package provider abstracts host metric retrieval behind per-category,
// strongly typed calls so the snapshot builder can degrade gracefully when a
// single category is unavailable.
package provider

import "time"

// SystemInfo is host identity and uptime.
type SystemInfo struct {
	Hostname     string
	Platform     string
	Architecture string
	BootTime     time.Time
	UptimeHours  float64
}

// CPUInfo is aggregate CPU usage and topology.
type CPUInfo struct {
	UsagePercent  float64
	LogicalCores  int
	PhysicalCores int
	FrequencyMhz  float64
	HasFrequency  bool
	Load1         float64
	Load5         float64
	Load15        float64
	HasLoad       bool
}

// MemoryInfo is virtual memory and swap usage, bytes.
type MemoryInfo struct {
	Total       uint64
	Available   uint64
	Used        uint64
	UsedPercent float64
	SwapTotal   uint64
	SwapUsed    uint64
	SwapPercent float64
}

// Partition identifies one mounted filesystem.
type Partition struct {
	Device     string
	Mountpoint string
	Fstype     string
}

// DiskUsage is usage of one mounted filesystem, bytes.
type DiskUsage struct {
	Total       uint64
	Used        uint64
	Free        uint64
	UsedPercent float64
}

// NetCounters are cumulative per-interface I/O counters.
type NetCounters struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
	ErrorsIn    uint64
	ErrorsOut   uint64
}

// ProcessInfo is one process with its resource shares.
type ProcessInfo struct {
	Pid           int32
	Name          string
	CpuPercent    float64
	MemoryPercent float64
}

// Provider supplies raw OS metrics one category at a time. Each call either
// returns data for its category or an error; callers are expected to treat
// failures as degradation, not abort.
type Provider interface {
	// Ping verifies that basic metric capability is available at all. It is
	// the startup probe: a failure here is the only fatal condition.
	Ping() error
	System() (SystemInfo, error)
	CPU() (CPUInfo, error)
	Memory() (MemoryInfo, error)
	Partitions() ([]Partition, error)
	Usage(mountpoint string) (DiskUsage, error)
	Network() (map[string]NetCounters, error)
	Processes() ([]ProcessInfo, error)
}
