package common

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger: pretty console output on
// stdout plus JSON records appended to a logfile. Level comes from
// SYSHEALTH_LOGLEVEL (default info).
func InitLogger() {
	userMode := os.Geteuid() != 0

	lvl := os.Getenv("SYSHEALTH_LOGLEVEL")
	if lvl == "" {
		lvl = "info"
	}

	level, err := zerolog.ParseLevel(lvl)
	if err != nil {
		level = zerolog.InfoLevel
		log.Warn().
			Str("provided_level", lvl).
			Str("default_level", level.String()).
			Msg("Invalid log level provided, using default")
	}
	zerolog.SetGlobalLevel(level)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "timestamp"

	logfilePath := "/var/log/syshealth.log"
	if userMode {
		xdgStateHome := os.Getenv("XDG_STATE_HOME")
		if xdgStateHome == "" {
			xdgStateHome = os.Getenv("HOME") + "/.local/state"
		}
		if _, err := os.Stat(xdgStateHome + "/syshealth"); os.IsNotExist(err) {
			os.MkdirAll(xdgStateHome+"/syshealth", 0755)
		}
		logfilePath = xdgStateHome + "/syshealth/syshealth.log"
	}

	logFile, err := os.OpenFile(logfilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stderr\n", logfilePath, err)
		logFile = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    os.Getenv("SYSHEALTH_NOCOLOR") == "true" || os.Getenv("SYSHEALTH_NOCOLOR") == "1",
	}

	output := zerolog.MultiLevelWriter(consoleWriter, logFile)

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("component", "syshealth").
		Str("version", Version)

	if hostname, err := os.Hostname(); err == nil {
		logger = logger.Str("hostname", hostname)
	}

	log.Logger = logger.Logger()

	log.Debug().
		Str("level", level.String()).
		Str("log_file", filepath.Clean(logfilePath)).
		Bool("user_mode", userMode).
		Msg("Logger initialized")
}
