// This file implements the persisted snapshot form
//
// It provides functions to:
// - Map a snapshot and its alerts into the saved JSON layout
// - Serialize the result for the caller to write out

package osHealth

import (
	"encoding/json"
	"math"
	"time"

	"github.com/sysward/syshealth/common"
)

// Report is the persisted form of a snapshot plus its alerts. Field names are
// the stable on-disk contract; percentages pass through unrounded, byte
// counts become gigabytes at two decimals.
type Report struct {
	Timestamp          string                  `json:"timestamp"`
	System             ReportSystem            `json:"system"`
	CPU                ReportCPU               `json:"cpu"`
	Memory             ReportMemory            `json:"memory"`
	Disk               []ReportMount           `json:"disk"`
	Network            map[string]ReportNet    `json:"network"`
	TotalProcesses     int                     `json:"total_processes"`
	TopCpuProcesses    []ReportCpuProcess      `json:"top_cpu_processes"`
	TopMemoryProcesses []ReportMemoryProcess   `json:"top_memory_processes"`
	Alerts             []ReportAlert           `json:"alerts"`
	CollectionErrors   []ReportCollectionError `json:"collection_errors"`
}

type ReportSystem struct {
	Hostname     string  `json:"hostname"`
	Platform     string  `json:"platform"`
	Architecture string  `json:"architecture"`
	BootTime     string  `json:"boot_time"`
	UptimeHours  float64 `json:"uptime_hours"`
}

type ReportCPU struct {
	UsagePercent  float64    `json:"usage_percent"`
	LogicalCores  int        `json:"logical_cores"`
	PhysicalCores int        `json:"physical_cores"`
	FrequencyMhz  *float64   `json:"frequency_mhz"`
	LoadAverage   *[]float64 `json:"load_average"`
}

type ReportMemory struct {
	TotalGB         float64 `json:"total_gb"`
	AvailableGB     float64 `json:"available_gb"`
	UsedGB          float64 `json:"used_gb"`
	UsedPercent     float64 `json:"used_percent"`
	SwapTotalGB     float64 `json:"swap_total_gb"`
	SwapUsedGB      float64 `json:"swap_used_gb"`
	SwapUsedPercent float64 `json:"swap_used_percent"`
}

type ReportMount struct {
	Mount       string  `json:"mount"`
	UsedPercent float64 `json:"used_percent"`
	UsedGB      float64 `json:"used_gb"`
	TotalGB     float64 `json:"total_gb"`
}

type ReportNet struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
	ErrorsIn    uint64 `json:"errors_in"`
	ErrorsOut   uint64 `json:"errors_out"`
}

type ReportCpuProcess struct {
	Pid        int32   `json:"pid"`
	Name       string  `json:"name"`
	CpuPercent float64 `json:"cpu_percent"`
}

type ReportMemoryProcess struct {
	Pid           int32   `json:"pid"`
	Name          string  `json:"name"`
	MemoryPercent float64 `json:"memory_percent"`
}

type ReportAlert struct {
	Category  string  `json:"category"`
	Severity  string  `json:"severity"`
	Subject   string  `json:"subject"`
	Observed  float64 `json:"observed"`
	Threshold float64 `json:"threshold"`
	Message   string  `json:"message"`
}

type ReportCollectionError struct {
	Category string `json:"category"`
	Detail   string `json:"detail"`
}

// NewReport maps a snapshot and its alerts into the persisted layout.
func NewReport(snap HealthSnapshot, alerts []Alert) Report {
	report := Report{
		Timestamp: snap.Timestamp.Format(time.RFC3339),
		System: ReportSystem{
			Hostname:     snap.System.Hostname,
			Platform:     snap.System.Platform,
			Architecture: snap.System.Architecture,
			UptimeHours:  math.Round(snap.System.UptimeHours*100) / 100,
		},
		CPU: ReportCPU{
			UsagePercent:  snap.CPU.UsagePercent,
			LogicalCores:  snap.CPU.LogicalCores,
			PhysicalCores: snap.CPU.PhysicalCores,
		},
		Memory: ReportMemory{
			TotalGB:         common.BytesToGB(snap.Memory.Total),
			AvailableGB:     common.BytesToGB(snap.Memory.Available),
			UsedGB:          common.BytesToGB(snap.Memory.Used),
			UsedPercent:     snap.Memory.UsedPercent,
			SwapTotalGB:     common.BytesToGB(snap.Memory.SwapTotal),
			SwapUsedGB:      common.BytesToGB(snap.Memory.SwapUsed),
			SwapUsedPercent: snap.Memory.SwapPercent,
		},
		Disk:               []ReportMount{},
		Network:            map[string]ReportNet{},
		TotalProcesses:     snap.TotalProcesses,
		TopCpuProcesses:    []ReportCpuProcess{},
		TopMemoryProcesses: []ReportMemoryProcess{},
		Alerts:             []ReportAlert{},
		CollectionErrors:   []ReportCollectionError{},
	}

	if !snap.System.BootTime.IsZero() {
		report.System.BootTime = snap.System.BootTime.Format("2006-01-02 15:04:05")
	}
	if snap.CPU.HasFrequency {
		mhz := math.Round(snap.CPU.FrequencyMhz*100) / 100
		report.CPU.FrequencyMhz = &mhz
	}
	if snap.CPU.HasLoad {
		load := []float64{snap.CPU.Load1, snap.CPU.Load5, snap.CPU.Load15}
		report.CPU.LoadAverage = &load
	}

	for _, mount := range snap.Disk {
		report.Disk = append(report.Disk, ReportMount{
			Mount:       mount.Mountpoint,
			UsedPercent: mount.UsedPercent,
			UsedGB:      common.BytesToGB(mount.Used),
			TotalGB:     common.BytesToGB(mount.Total),
		})
	}

	for name, counters := range snap.Network {
		report.Network[name] = ReportNet{
			BytesSent:   counters.BytesSent,
			BytesRecv:   counters.BytesRecv,
			PacketsSent: counters.PacketsSent,
			PacketsRecv: counters.PacketsRecv,
			ErrorsIn:    counters.ErrorsIn,
			ErrorsOut:   counters.ErrorsOut,
		}
	}

	for _, proc := range snap.TopCpu {
		report.TopCpuProcesses = append(report.TopCpuProcesses, ReportCpuProcess{
			Pid:        proc.Pid,
			Name:       proc.Name,
			CpuPercent: proc.CpuPercent,
		})
	}
	for _, proc := range snap.TopMemory {
		report.TopMemoryProcesses = append(report.TopMemoryProcesses, ReportMemoryProcess{
			Pid:           proc.Pid,
			Name:          proc.Name,
			MemoryPercent: proc.MemoryPercent,
		})
	}

	for _, alert := range alerts {
		report.Alerts = append(report.Alerts, ReportAlert{
			Category:  string(alert.Category),
			Severity:  string(alert.Severity),
			Subject:   alert.Subject,
			Observed:  alert.Observed,
			Threshold: alert.Threshold,
			Message:   alert.Message,
		})
	}

	for _, ce := range snap.CollectionErrors {
		report.CollectionErrors = append(report.CollectionErrors, ReportCollectionError{
			Category: ce.Category,
			Detail:   ce.Detail,
		})
	}

	return report
}

// Serialize returns the persisted JSON for a snapshot and its alerts. The
// caller owns writing it to storage.
func Serialize(snap HealthSnapshot, alerts []Alert) ([]byte, error) {
	return json.MarshalIndent(NewReport(snap, alerts), "", "  ")
}
