// This file implements webhook alarm signalling for threshold alerts
//
// It provides functions to:
// - Send a down alarm when a category starts exceeding its threshold
// - Send an up alarm when it recovers
// - Render exceeded partitions as a table for the alarm body

package osHealth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sysward/syshealth/common"
)

// CheckAlarms signals the configured webhooks about threshold state changes.
// Down alarms fire once when a category starts exceeding, up alarms once when
// it recovers; the state files under the tmp dir suppress repeats.
func CheckAlarms(snap HealthSnapshot, alerts []Alert, cfg ThresholdConfig) {
	if !common.Conf.Alarm.Enabled {
		return
	}

	byCategory := map[Category][]Alert{}
	for _, alert := range alerts {
		byCategory[alert.Category] = append(byCategory[alert.Category], alert)
	}

	if cpuAlerts := byCategory[CategoryCpu]; len(cpuAlerts) > 0 {
		common.AlarmCheckDown("cpu", cpuAlerts[0].Message)
	} else {
		common.AlarmCheckUp("cpu", fmt.Sprintf("CPU usage went below %.1f%% (Current: %.1f%%)",
			cfg.Cpu, snap.CPU.UsagePercent))
	}

	if memAlerts := byCategory[CategoryMemory]; len(memAlerts) > 0 {
		common.AlarmCheckDown("memory", memAlerts[0].Message)
	} else {
		common.AlarmCheckUp("memory", fmt.Sprintf("Memory usage went below %.1f%% (Current: %.1f%%)",
			cfg.Memory, snap.Memory.UsedPercent))
	}

	if diskAlerts := byCategory[CategoryDisk]; len(diskAlerts) > 0 {
		common.AlarmCheckDown("disk", exceededDiskMessage(snap, diskAlerts, cfg))
	} else {
		common.AlarmCheckUp("disk", fmt.Sprintf("All partitions are now under the limit of %.0f%%", cfg.Disk))
	}
}

// exceededDiskMessage renders the exceeded partitions as a table for the
// alarm body.
func exceededDiskMessage(snap HealthSnapshot, diskAlerts []Alert, cfg ThresholdConfig) string {
	exceeded := map[string]bool{}
	for _, alert := range diskAlerts {
		exceeded[alert.Subject] = true
	}

	var tableData [][]string
	for _, mount := range snap.Disk {
		if !exceeded[mount.Mountpoint] {
			continue
		}
		tableData = append(tableData, []string{
			strconv.FormatFloat(mount.UsedPercent, 'f', 0, 64),
			common.ConvertBytes(mount.Used),
			common.ConvertBytes(mount.Total),
			mount.Device,
			mount.Mountpoint,
		})
	}

	output := &strings.Builder{}
	table := tablewriter.NewWriter(output)
	table.SetHeader([]string{"%", "Used", "Total", "Partition", "Mount Point"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.AppendBulk(tableData)
	table.Render()

	return "Partition usage level has exceeded to " + strconv.FormatFloat(cfg.Disk, 'f', 0, 64) +
		"% for the following partitions;\n\n" + output.String()
}
