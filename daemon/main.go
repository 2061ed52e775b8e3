// Package daemon drives monitoring cycles: a single build-evaluate-report
// pass, or a repeating loop at a fixed interval with per-cycle failure
// containment.
package daemon

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sysward/syshealth/common"
	"github.com/sysward/syshealth/healthdb"
	"github.com/sysward/syshealth/osHealth"
	"github.com/sysward/syshealth/provider"
)

// Module key for the cached last report.
const dbModule = "osHealth"

// Deps carries everything one monitoring cycle needs.
type Deps struct {
	Provider            provider.Provider
	Thresholds          osHealth.ThresholdConfig
	ExcludedMountpoints []string
	Save                bool
	Output              string
	CacheReport         bool
}

// RunCycle executes one full cycle: build a snapshot, evaluate it, print the
// summary, signal alarms and persist the report. The snapshot and its alerts
// live only for this cycle.
func RunCycle(deps Deps) error {
	snap := osHealth.Build(deps.Provider, deps.ExcludedMountpoints)
	alerts := osHealth.Evaluate(snap, deps.Thresholds)

	fmt.Println(osHealth.Render(snap, alerts, deps.Thresholds))

	osHealth.CheckAlarms(snap, alerts, deps.Thresholds)

	data, err := osHealth.Serialize(snap, alerts)
	if err != nil {
		return fmt.Errorf("serializing report: %w", err)
	}

	if deps.CacheReport {
		if err := healthdb.PutJSON(dbModule, "last_report", string(data), snap.Timestamp); err != nil {
			log.Error().Err(err).Msg("Failed to cache report")
		}
	}

	if deps.Save {
		saveReport(data, deps.Output, snap.Timestamp)
	}

	return nil
}

// saveReport writes the serialized report to disk. A write failure is
// reported and otherwise ignored: it does not affect the in-memory snapshot
// and must not abort continuous mode.
func saveReport(data []byte, output string, ts time.Time) {
	filename := output
	if filename == "" {
		filename = "system_health_" + ts.Format("20060102_150405") + ".json"
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		log.Error().Err(err).Str("file", filename).Msg("Error saving report to file")
		return
	}
	fmt.Println("Health data saved to: " + filename)
}

// Scheduler repeats cycles at a fixed interval until cancelled. The only
// cross-cycle state it keeps is the interval timer and the cycle counter.
type Scheduler struct {
	Interval time.Duration
	Cycle    func() error
}

// RunOnce executes exactly one cycle and returns its outcome.
func (s *Scheduler) RunOnce() error {
	return s.safeCycle()
}

// Run repeats cycles until ctx is cancelled. Each cycle's failure is logged
// and the loop continues; only cancellation ends it. After a cycle the loop
// sleeps for max(0, interval - cycle duration), interruptibly.
func (s *Scheduler) Run(ctx context.Context) {
	cycles := 0
	for {
		start := time.Now()
		cycles++

		if err := s.safeCycle(); err != nil {
			log.Error().
				Err(err).
				Str("category", "cycle").
				Int("cycle", cycles).
				Msg("Cycle failed, continuing")
		}

		sleep := s.Interval - time.Since(start)
		if sleep < 0 {
			sleep = 0
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info().Int("cycles", cycles).Msg("Monitoring stopped")
			return
		case <-timer.C:
		}
	}
}

// safeCycle runs the cycle function with panic containment so one bad sample
// cannot kill a long-running monitor.
func (s *Scheduler) safeCycle() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panicked: %v", r)
		}
	}()
	return s.Cycle()
}

// LastReport returns the most recent cached report JSON, if any.
func LastReport() (string, time.Time, bool, error) {
	return healthdb.GetJSON(dbModule, "last_report")
}

// ClearCache removes the cached last report.
func ClearCache() error {
	return healthdb.Delete(dbModule, "last_report")
}

// Interval returns the continuous-mode interval: the flag value when given,
// otherwise the configured default.
func Interval(flagSeconds int) time.Duration {
	seconds := flagSeconds
	if seconds <= 0 {
		seconds = common.Conf.Daemon.Interval
	}
	if seconds <= 0 {
		seconds = common.DefaultInterval
	}
	return time.Duration(seconds) * time.Second
}
