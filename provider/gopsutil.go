package provider

import (
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// Gopsutil is the real Provider backed by shirou/gopsutil.
type Gopsutil struct {
	// Sampling window for the aggregate CPU percentage.
	CpuSampleInterval time.Duration
}

// NewGopsutil returns a Provider that queries the local host.
func NewGopsutil() *Gopsutil {
	return &Gopsutil{CpuSampleInterval: time.Second}
}

func (g *Gopsutil) Ping() error {
	if _, err := host.Info(); err != nil {
		return fmt.Errorf("host info unavailable: %w", err)
	}
	return nil
}

func (g *Gopsutil) System() (SystemInfo, error) {
	info, err := host.Info()
	if err != nil {
		return SystemInfo{}, err
	}

	uptime := time.Duration(info.Uptime) * time.Second
	return SystemInfo{
		Hostname:     info.Hostname,
		Platform:     info.Platform,
		Architecture: runtime.GOARCH,
		BootTime:     time.Unix(int64(info.BootTime), 0),
		UptimeHours:  uptime.Hours(),
	}, nil
}

func (g *Gopsutil) CPU() (CPUInfo, error) {
	percents, err := cpu.Percent(g.CpuSampleInterval, false)
	if err != nil {
		return CPUInfo{}, err
	}
	if len(percents) == 0 {
		return CPUInfo{}, fmt.Errorf("no aggregate cpu sample returned")
	}

	info := CPUInfo{UsagePercent: percents[0]}

	if logical, err := cpu.Counts(true); err == nil {
		info.LogicalCores = logical
	}
	if physical, err := cpu.Counts(false); err == nil {
		info.PhysicalCores = physical
	}

	// Frequency and load average are best-effort; not every platform
	// reports them.
	if stats, err := cpu.Info(); err == nil && len(stats) > 0 && stats[0].Mhz > 0 {
		info.FrequencyMhz = stats[0].Mhz
		info.HasFrequency = true
	}
	if avg, err := load.Avg(); err == nil {
		info.Load1 = avg.Load1
		info.Load5 = avg.Load5
		info.Load15 = avg.Load15
		info.HasLoad = true
	}

	return info, nil
}

func (g *Gopsutil) Memory() (MemoryInfo, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return MemoryInfo{}, err
	}

	info := MemoryInfo{
		Total:       vm.Total,
		Available:   vm.Available,
		Used:        vm.Used,
		UsedPercent: vm.UsedPercent,
	}

	if swap, err := mem.SwapMemory(); err == nil {
		info.SwapTotal = swap.Total
		info.SwapUsed = swap.Used
		info.SwapPercent = swap.UsedPercent
	}

	return info, nil
}

func (g *Gopsutil) Partitions() ([]Partition, error) {
	stats, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}

	parts := make([]Partition, 0, len(stats))
	for _, p := range stats {
		parts = append(parts, Partition{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
		})
	}
	return parts, nil
}

func (g *Gopsutil) Usage(mountpoint string) (DiskUsage, error) {
	usage, err := disk.Usage(mountpoint)
	if err != nil {
		return DiskUsage{}, err
	}
	return DiskUsage{
		Total:       usage.Total,
		Used:        usage.Used,
		Free:        usage.Free,
		UsedPercent: usage.UsedPercent,
	}, nil
}

func (g *Gopsutil) Network() (map[string]NetCounters, error) {
	stats, err := net.IOCounters(true)
	if err != nil {
		return nil, err
	}

	counters := make(map[string]NetCounters, len(stats))
	for _, s := range stats {
		counters[s.Name] = NetCounters{
			BytesSent:   s.BytesSent,
			BytesRecv:   s.BytesRecv,
			PacketsSent: s.PacketsSent,
			PacketsRecv: s.PacketsRecv,
			ErrorsIn:    s.Errin,
			ErrorsOut:   s.Errout,
		}
	}
	return counters, nil
}

func (g *Gopsutil) Processes() ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		// Individual processes can vanish or deny access mid-iteration;
		// skip them like psutil's AccessDenied handling.
		name, err := p.Name()
		if err != nil {
			continue
		}
		cpuPct, err := p.CPUPercent()
		if err != nil {
			continue
		}
		memPct, err := p.MemoryPercent()
		if err != nil {
			continue
		}
		infos = append(infos, ProcessInfo{
			Pid:           p.Pid,
			Name:          name,
			CpuPercent:    cpuPct,
			MemoryPercent: float64(memPct),
		})
	}
	return infos, nil
}
