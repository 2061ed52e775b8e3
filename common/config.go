package common

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the syshealth configuration shared by every check.
type Config struct {
	Identifier string

	Thresholds struct {
		Cpu    float64
		Memory float64
		Disk   float64
	}

	Excluded_Mountpoints []string

	Alarm struct {
		Enabled      bool
		Webhook_urls []string
	}

	Daemon struct {
		Interval int
	}
}

// Default alert thresholds, percent.
const (
	DefaultCpuThreshold    = 80.0
	DefaultMemoryThreshold = 85.0
	DefaultDiskThreshold   = 90.0
	DefaultInterval        = 30
)

var Conf Config

func configPaths() []string {
	paths := []string{"/etc/syshealth"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "syshealth"))
	}
	return paths
}

// ConfExists reports whether the named config file is present in any of the
// search paths.
func ConfExists(configName string) bool {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	for _, p := range configPaths() {
		v.AddConfigPath(p)
	}
	return v.ReadInConfig() == nil
}

// ConfInit loads the named config file into config. A missing file is not an
// error; defaults apply and flags may still override everything.
func ConfInit(configName string, config *Config) {
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	for _, p := range configPaths() {
		viper.AddConfigPath(p)
	}

	viper.SetDefault("thresholds.cpu", DefaultCpuThreshold)
	viper.SetDefault("thresholds.memory", DefaultMemoryThreshold)
	viper.SetDefault("thresholds.disk", DefaultDiskThreshold)
	viper.SetDefault("daemon.interval", DefaultInterval)

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			LogError("Fatal error while trying to parse the config file: \n" + err.Error())
			panic(err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		LogError("Fatal error while trying to unmarshal the config file: \n" + err.Error())
		panic(err)
	}

	if config.Identifier == "" {
		hostname, _ := os.Hostname()
		config.Identifier = hostname
	}
}
