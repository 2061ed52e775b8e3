// This file implements snapshot collection
//
// It provides functions to:
// - Sample every metric category through a Provider
// - Degrade per category instead of failing the whole snapshot
//
// The main function is:
// - Build(): Collects all categories into a HealthSnapshot

package osHealth

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sysward/syshealth/provider"
)

// Build samples every category through p and assembles a HealthSnapshot. It
// never fails: a category that errors records a CollectionError and keeps its
// zero value, and the remaining categories are still collected.
func Build(p provider.Provider, excludedMountpoints []string) HealthSnapshot {
	snap := HealthSnapshot{
		Timestamp: time.Now(),
		Disk:      []MountUsage{},
		Network:   map[string]provider.NetCounters{},
		TopCpu:    []provider.ProcessInfo{},
		TopMemory: []provider.ProcessInfo{},
	}

	fail := func(category string, err error) {
		log.Debug().Err(err).Str("category", category).Msg("Category failed to sample")
		snap.CollectionErrors = append(snap.CollectionErrors, CollectionError{
			Category: category,
			Detail:   err.Error(),
		})
	}

	if system, err := p.System(); err == nil {
		snap.System = system
	} else {
		fail("system", err)
		snap.System.Hostname = "unknown"
		snap.System.Platform = "unknown"
	}

	if cpuInfo, err := p.CPU(); err == nil {
		snap.CPU = cpuInfo
	} else {
		fail("cpu", err)
	}

	if memInfo, err := p.Memory(); err == nil {
		snap.Memory = memInfo
	} else {
		fail("memory", err)
	}

	snap.Disk = collectDisk(p, excludedMountpoints, fail)

	if counters, err := p.Network(); err == nil {
		snap.Network = counters
	} else {
		fail("network", err)
	}

	if procs, err := p.Processes(); err == nil {
		snap.TotalProcesses = len(procs)
		snap.TopCpu = topBy(procs, func(pr provider.ProcessInfo) float64 { return pr.CpuPercent })
		snap.TopMemory = topBy(procs, func(pr provider.ProcessInfo) float64 { return pr.MemoryPercent })
	} else {
		fail("processes", err)
	}

	return snap
}

// collectDisk enumerates mounted partitions. A partition whose usage query
// fails is skipped individually, keyed by its mountpoint in the collection
// errors, without aborting the remaining partitions.
func collectDisk(p provider.Provider, excludedMountpoints []string, fail func(string, error)) []MountUsage {
	mounts := []MountUsage{}

	partitions, err := p.Partitions()
	if err != nil {
		fail("disk", err)
		return mounts
	}

	for _, partition := range partitions {
		if isExcluded(partition.Mountpoint, excludedMountpoints) {
			log.Debug().Msg("Skipping excluded mountpoint: " + partition.Mountpoint)
			continue
		}

		usage, err := p.Usage(partition.Mountpoint)
		if err != nil {
			fail("disk:"+partition.Mountpoint, err)
			continue
		}

		mounts = append(mounts, MountUsage{
			Device:      partition.Device,
			Mountpoint:  partition.Mountpoint,
			Fstype:      partition.Fstype,
			Total:       usage.Total,
			Used:        usage.Used,
			UsedPercent: usage.UsedPercent,
		})
	}

	return mounts
}

func isExcluded(mountpoint string, excluded []string) bool {
	for _, prefix := range excluded {
		if strings.HasPrefix(mountpoint, prefix) {
			return true
		}
	}
	return false
}

// topBy returns the TopProcesses highest entries by the given metric. The
// sort is stable so ties keep the provider's natural ordering.
func topBy(procs []provider.ProcessInfo, metric func(provider.ProcessInfo) float64) []provider.ProcessInfo {
	sorted := make([]provider.ProcessInfo, len(procs))
	copy(sorted, procs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return metric(sorted[i]) > metric(sorted[j])
	})

	if len(sorted) > TopProcesses {
		sorted = sorted[:TopProcesses]
	}
	return sorted
}
