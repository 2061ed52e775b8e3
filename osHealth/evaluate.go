// This file implements threshold evaluation
//
// It provides functions to:
// - Compare a snapshot against configured limits
// - Produce alerts in a fixed, reproducible order
//
// The main function is:
// - Evaluate(): Returns alerts for metrics strictly over their threshold

package osHealth

import "fmt"

// DefaultThresholds returns the stock alert limits (80/85/90).
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{Cpu: 80, Memory: 85, Disk: 90}
}

// Evaluate compares the snapshot against the thresholds and returns alerts in
// a fixed order: CPU, then memory, then disk mounts in snapshot order. Only
// values strictly above their threshold alert; equality does not. Evaluation
// is pure and never re-queries the provider.
func Evaluate(snap HealthSnapshot, cfg ThresholdConfig) []Alert {
	var alerts []Alert

	if snap.CPU.UsagePercent > cfg.Cpu {
		alerts = append(alerts, Alert{
			Category:  CategoryCpu,
			Severity:  SeverityWarning,
			Subject:   "CPU",
			Observed:  snap.CPU.UsagePercent,
			Threshold: cfg.Cpu,
			Message: fmt.Sprintf("HIGH CPU USAGE: %.1f%% (threshold: %.1f%%)",
				snap.CPU.UsagePercent, cfg.Cpu),
		})
	}

	if snap.Memory.UsedPercent > cfg.Memory {
		alerts = append(alerts, Alert{
			Category:  CategoryMemory,
			Severity:  SeverityWarning,
			Subject:   "Memory",
			Observed:  snap.Memory.UsedPercent,
			Threshold: cfg.Memory,
			Message: fmt.Sprintf("HIGH MEMORY USAGE: %.1f%% (threshold: %.1f%%)",
				snap.Memory.UsedPercent, cfg.Memory),
		})
	}

	for _, mount := range snap.Disk {
		if mount.UsedPercent > cfg.Disk {
			alerts = append(alerts, Alert{
				Category:  CategoryDisk,
				Severity:  SeverityWarning,
				Subject:   mount.Mountpoint,
				Observed:  mount.UsedPercent,
				Threshold: cfg.Disk,
				Message: fmt.Sprintf("HIGH DISK USAGE: %s at %.1f%% (threshold: %.1f%%)",
					mount.Mountpoint, mount.UsedPercent, cfg.Disk),
			})
		}
	}

	return alerts
}
