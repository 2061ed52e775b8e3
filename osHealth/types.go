// This file defines the types used in the osHealth package
//
// It provides the following types:
// - HealthSnapshot: One immutable point-in-time capture of every category
// - ThresholdConfig: The alert limits a snapshot is evaluated against
// - Alert: A derived record for a metric that exceeded its limit

package osHealth

import (
	"time"

	"github.com/sysward/syshealth/provider"
)

// Top-N size for the per-process lists, matching the fixed sampling depth of
// the collector.
const TopProcesses = 5

// MountUsage is usage of a single mounted filesystem within a snapshot.
type MountUsage struct {
	Device      string
	Mountpoint  string
	Fstype      string
	Total       uint64
	Used        uint64
	UsedPercent float64
}

// CollectionError records a category (or mount) that failed to sample.
type CollectionError struct {
	Category string
	Detail   string
}

// HealthSnapshot is one point-in-time capture of all monitored categories.
// A snapshot is always producible: categories that fail to sample stay at
// their zero value and record a CollectionError instead.
type HealthSnapshot struct {
	Timestamp        time.Time
	System           provider.SystemInfo
	CPU              provider.CPUInfo
	Memory           provider.MemoryInfo
	Disk             []MountUsage
	Network          map[string]provider.NetCounters
	TopCpu           []provider.ProcessInfo
	TopMemory        []provider.ProcessInfo
	TotalProcesses   int
	CollectionErrors []CollectionError
}

// ThresholdConfig carries the per-category alert limits, percent.
type ThresholdConfig struct {
	Cpu    float64
	Memory float64
	Disk   float64
}

// Category is one independently-failing unit of collection and alerting.
type Category string

const (
	CategoryCpu    Category = "CPU"
	CategoryMemory Category = "Memory"
	CategoryDisk   Category = "Disk"
)

// Severity of an alert. Only Warning is emitted today; Critical is reserved
// for a future escalation tier.
type Severity string

const (
	SeverityWarning  Severity = "Warning"
	SeverityCritical Severity = "Critical"
)

// Alert indicates one metric exceeded its configured threshold. Alerts are
// derived fresh from a snapshot each cycle and never mutated.
type Alert struct {
	Category  Category
	Severity  Severity
	Subject   string
	Observed  float64
	Threshold float64
	Message   string
}
