package common

import (
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog/log"
)

var TmpDir = "/tmp/syshealth/"
var ScriptName string
var Version = "devel"

// Init prepares the shared runtime state: the tmp directory used for alarm
// state files and the global config.
func Init() {
	if _, err := os.Stat(TmpDir); os.IsNotExist(err) {
		if err := os.MkdirAll(TmpDir, 0755); err != nil {
			fmt.Println("Error creating tmp directory: \n" + TmpDir + "\n" + err.Error())
			os.Exit(1)
		}
	}

	if ConfExists("syshealth") {
		ConfInit("syshealth", &Conf)
		return
	}

	Conf.Thresholds.Cpu = DefaultCpuThreshold
	Conf.Thresholds.Memory = DefaultMemoryThreshold
	Conf.Thresholds.Disk = DefaultDiskThreshold
	Conf.Daemon.Interval = DefaultInterval
	if Conf.Identifier == "" {
		hostname, _ := os.Hostname()
		Conf.Identifier = hostname
	}
}

func LogError(err string) {
	log.Error().Msg(err)
}

// ConvertBytes renders a byte count with a human-readable unit.
func ConvertBytes(bytes uint64) string {
	var sizes = []string{"B", "KB", "MB", "GB", "TB", "EB"}

	if bytes == 0 {
		return "0 B"
	}

	if bytes > uint64(math.MaxInt64) {
		bytes = uint64(math.MaxInt64)
	}
	floatBytes := float64(bytes)
	var i int

	for i = 0; floatBytes >= 1024 && i < len(sizes)-1; i++ {
		floatBytes /= 1024
	}

	if i >= 2 {
		return fmt.Sprintf("%.2f %s", floatBytes, sizes[i])
	}

	return fmt.Sprintf("%d %s", uint64(floatBytes), sizes[i])
}

// BytesToGB converts a byte count to gigabytes rounded to two decimals, the
// unit used in serialized reports.
func BytesToGB(bytes uint64) float64 {
	return math.Round(float64(bytes)/(1024*1024*1024)*100) / 100
}
