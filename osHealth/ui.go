package osHealth

import (
	"fmt"
	"strings"

	"github.com/sysward/syshealth/common"
)

// Render produces the boxed summary of a snapshot and its alerts. The
// threshold config drives the limit-vs-current coloring of the usage lines.
func Render(snap HealthSnapshot, alerts []Alert, cfg ThresholdConfig) string {
	return common.DisplayBox("syshealth", renderSections(snap, alerts, cfg))
}

func renderSections(snap HealthSnapshot, alerts []Alert, cfg ThresholdConfig) string {
	var sb strings.Builder

	sb.WriteString(common.SectionTitle("System Health Summary"))
	sb.WriteString("\n")
	sb.WriteString(common.ListItem("Checked", snap.Timestamp.Format("2006-01-02 15:04:05")))
	sb.WriteString("\n")
	sb.WriteString(common.ListItem("Host", snap.System.Hostname+" ("+snap.System.Platform+")"))
	sb.WriteString("\n")
	sb.WriteString(common.ListItem("Uptime", fmt.Sprintf("%.2f hours", snap.System.UptimeHours)))
	sb.WriteString("\n\n")

	sb.WriteString(common.SectionTitle("CPU"))
	sb.WriteString("\n")
	sb.WriteString(common.StatusListItem("Usage",
		fmt.Sprintf("%.0f%%", cfg.Cpu),
		fmt.Sprintf("%.1f%%", snap.CPU.UsagePercent),
		snap.CPU.UsagePercent <= cfg.Cpu))
	sb.WriteString("\n")
	sb.WriteString(common.ListItem("Cores", fmt.Sprintf("%d logical, %d physical",
		snap.CPU.LogicalCores, snap.CPU.PhysicalCores)))
	sb.WriteString("\n\n")

	sb.WriteString(common.SectionTitle("Memory"))
	sb.WriteString("\n")
	sb.WriteString(common.StatusListItem("Usage",
		fmt.Sprintf("%.0f%%", cfg.Memory),
		fmt.Sprintf("%.1f%%, %.1f GB / %.1f GB",
			snap.Memory.UsedPercent,
			float64(snap.Memory.Used)/(1024*1024*1024),
			float64(snap.Memory.Total)/(1024*1024*1024)),
		snap.Memory.UsedPercent <= cfg.Memory))
	sb.WriteString("\n")

	if len(snap.Disk) > 0 {
		sb.WriteString("\n")
		sb.WriteString(common.SectionTitle("Disk Usage"))
		sb.WriteString("\n")
		for _, mount := range snap.Disk {
			sb.WriteString(common.StatusListItem(mount.Mountpoint,
				fmt.Sprintf("%.0f%%", cfg.Disk),
				fmt.Sprintf("%.1f%%, %.1f GB / %.1f GB",
					mount.UsedPercent,
					float64(mount.Used)/(1024*1024*1024),
					float64(mount.Total)/(1024*1024*1024)),
				mount.UsedPercent <= cfg.Disk))
			sb.WriteString("\n")
		}
	}

	if len(snap.CollectionErrors) > 0 {
		sb.WriteString("\n")
		sb.WriteString(common.SectionTitle("Collection Errors"))
		sb.WriteString("\n")
		for _, ce := range snap.CollectionErrors {
			sb.WriteString(common.WarningListItem(ce.Category + ": " + ce.Detail))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(common.SectionTitle("Alerts"))
	sb.WriteString("\n")
	if len(alerts) > 0 {
		for _, alert := range alerts {
			sb.WriteString(common.WarningListItem(alert.Message))
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString(common.ListItem("Status", "No alerts - system is healthy!"))
		sb.WriteString("\n")
	}

	return sb.String()
}
