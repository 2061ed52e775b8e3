package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysward/syshealth/osHealth"
	"github.com/sysward/syshealth/provider"
)

func TestSchedulerRunOnceExecutesSingleCycle(t *testing.T) {
	calls := 0
	s := &Scheduler{
		Interval: time.Millisecond,
		Cycle: func() error {
			calls++
			return nil
		},
	}

	require.NoError(t, s.RunOnce())
	assert.Equal(t, 1, calls)
}

func TestSchedulerRunOnceSurfacesFailure(t *testing.T) {
	s := &Scheduler{
		Cycle: func() error { return errors.New("sampling broke") },
	}

	err := s.RunOnce()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sampling broke")
}

func TestSchedulerContainsPanics(t *testing.T) {
	s := &Scheduler{
		Cycle: func() error { panic("provider exploded") },
	}

	err := s.RunOnce()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider exploded")
}

func TestSchedulerContinuesPastFailedCycle(t *testing.T) {
	// A failure on the 2nd cycle only must not end the loop: the 3rd cycle
	// still runs.
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	s := &Scheduler{
		Interval: time.Millisecond,
		Cycle: func() error {
			calls++
			if calls == 2 {
				return errors.New("transient hiccup")
			}
			if calls >= 3 {
				cancel()
			}
			return nil
		},
	}

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}

	assert.GreaterOrEqual(t, calls, 3)
}

func TestSchedulerStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	s := &Scheduler{
		// Long interval: cancellation must interrupt the sleep, not wait
		// it out.
		Interval: time.Hour,
		Cycle: func() error {
			calls++
			return nil
		},
	}

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cancellation did not interrupt the interval sleep")
	}

	assert.Equal(t, 1, calls)
}

// staticProvider satisfies provider.Provider with fixed healthy data.
type staticProvider struct{}

func (staticProvider) Ping() error { return nil }
func (staticProvider) System() (provider.SystemInfo, error) {
	return provider.SystemInfo{Hostname: "test-host", Platform: "linux", UptimeHours: 1}, nil
}
func (staticProvider) CPU() (provider.CPUInfo, error) {
	return provider.CPUInfo{UsagePercent: 10, LogicalCores: 2, PhysicalCores: 2}, nil
}
func (staticProvider) Memory() (provider.MemoryInfo, error) {
	return provider.MemoryInfo{Total: 8 << 30, Used: 2 << 30, UsedPercent: 25}, nil
}
func (staticProvider) Partitions() ([]provider.Partition, error) {
	return []provider.Partition{{Mountpoint: "/", Device: "/dev/sda1", Fstype: "ext4"}}, nil
}
func (staticProvider) Usage(string) (provider.DiskUsage, error) {
	return provider.DiskUsage{Total: 10 << 30, Used: 5 << 30, UsedPercent: 50}, nil
}
func (staticProvider) Network() (map[string]provider.NetCounters, error) {
	return map[string]provider.NetCounters{}, nil
}
func (staticProvider) Processes() ([]provider.ProcessInfo, error) {
	return []provider.ProcessInfo{}, nil
}

func TestRunCycleSavesReport(t *testing.T) {
	output := filepath.Join(t.TempDir(), "health.json")

	deps := Deps{
		Provider:   staticProvider{},
		Thresholds: osHealth.DefaultThresholds(),
		Save:       true,
		Output:     output,
	}

	require.NoError(t, RunCycle(deps))

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var report osHealth.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "test-host", report.System.Hostname)
	assert.Empty(t, report.Alerts)
}

func TestIntervalPrecedence(t *testing.T) {
	assert.Equal(t, 10*time.Second, Interval(10))
	// Falls back to the built-in default when neither flag nor config set it
	assert.Equal(t, 30*time.Second, Interval(0))
}
