package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sysward/syshealth/common"
	"github.com/sysward/syshealth/daemon"
	"github.com/sysward/syshealth/osHealth"
	"github.com/sysward/syshealth/provider"
)

var SyshealthVersion = "devel"

var RootCmd = &cobra.Command{
	Use:     "syshealth",
	Short:   "Host health monitor with threshold alerting",
	Version: SyshealthVersion,
	Run:     Run,
}

func main() {
	RootCmd.Flags().Bool("save", false, "Save results to JSON file")
	RootCmd.Flags().StringP("output", "o", "", "Output filename")
	RootCmd.Flags().Float64("cpu-threshold", common.DefaultCpuThreshold, "CPU alert threshold (percent)")
	RootCmd.Flags().Float64("memory-threshold", common.DefaultMemoryThreshold, "Memory alert threshold (percent)")
	RootCmd.Flags().Float64("disk-threshold", common.DefaultDiskThreshold, "Disk alert threshold (percent)")
	RootCmd.Flags().BoolP("continuous", "c", false, "Run continuously (Ctrl+C to stop)")
	RootCmd.Flags().IntP("interval", "i", 0, "Interval in seconds for continuous monitoring")
	RootCmd.Flags().Bool("last", false, "Print the last cached report without sampling")
	RootCmd.Flags().Bool("clear-cache", false, "Remove the cached report and exit")

	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func Run(cmd *cobra.Command, args []string) {
	common.ScriptName = "syshealth"
	common.Version = SyshealthVersion
	common.InitLogger()
	common.Init()

	if last, _ := cmd.Flags().GetBool("last"); last {
		printLastReport()
		return
	}

	if clear, _ := cmd.Flags().GetBool("clear-cache"); clear {
		if err := daemon.ClearCache(); err != nil {
			log.Error().Err(err).Msg("Failed to clear cached report")
			os.Exit(1)
		}
		fmt.Println("Cleared cached report")
		return
	}

	thresholds := thresholdsFromFlags(cmd)

	prov := provider.NewGopsutil()
	if err := prov.Ping(); err != nil {
		log.Error().Err(err).Msg("No metrics capability available")
		os.Exit(1)
	}

	save, _ := cmd.Flags().GetBool("save")
	output, _ := cmd.Flags().GetString("output")

	deps := daemon.Deps{
		Provider:            prov,
		Thresholds:          thresholds,
		ExcludedMountpoints: common.Conf.Excluded_Mountpoints,
		Save:                save,
		Output:              output,
		CacheReport:         true,
	}

	continuous, _ := cmd.Flags().GetBool("continuous")
	intervalFlag, _ := cmd.Flags().GetInt("interval")

	sched := &daemon.Scheduler{
		Interval: daemon.Interval(intervalFlag),
		Cycle:    func() error { return daemon.RunCycle(deps) },
	}

	if continuous {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Starting continuous monitoring (interval: %d seconds)\n", int(sched.Interval.Seconds()))
		fmt.Println("Press Ctrl+C to stop")

		sched.Run(ctx)
		fmt.Println("\nMonitoring stopped by user")
		return
	}

	if err := sched.RunOnce(); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		os.Exit(1)
	}
}

// thresholdsFromFlags merges the configured thresholds with any explicitly
// set flags; flags win.
func thresholdsFromFlags(cmd *cobra.Command) osHealth.ThresholdConfig {
	thresholds := osHealth.ThresholdConfig{
		Cpu:    common.Conf.Thresholds.Cpu,
		Memory: common.Conf.Thresholds.Memory,
		Disk:   common.Conf.Thresholds.Disk,
	}

	if cmd.Flags().Changed("cpu-threshold") {
		thresholds.Cpu, _ = cmd.Flags().GetFloat64("cpu-threshold")
	}
	if cmd.Flags().Changed("memory-threshold") {
		thresholds.Memory, _ = cmd.Flags().GetFloat64("memory-threshold")
	}
	if cmd.Flags().Changed("disk-threshold") {
		thresholds.Disk, _ = cmd.Flags().GetFloat64("disk-threshold")
	}

	return thresholds
}

func printLastReport() {
	report, cachedAt, found, err := daemon.LastReport()
	if err != nil {
		log.Error().Err(err).Msg("Failed to read cached report")
		os.Exit(1)
	}
	if !found {
		fmt.Println("No cached report available")
		return
	}
	fmt.Println(report)
	log.Debug().Time("cached_at", cachedAt).Msg("Printed cached report")
}
