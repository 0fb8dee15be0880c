package logger

import (
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/tinybird-labs/tb-migrate/pkg/shared/config"
)

// NewLogger builds a named hclog logger. The level comes from the config
// file, then the TB_MIGRATE_LOG_LEVEL environment variable, then INFO.
func NewLogger(config *config.Config, name string) hclog.Logger {
	var logLevel hclog.Level

	if config != nil && config.Logger.Level != "" {
		logLevel = getLogLevel(strings.ToUpper(config.Logger.Level))
	} else {
		logLevel = getLogLevel(strings.ToUpper(os.Getenv("TB_MIGRATE_LOG_LEVEL")))
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		Output:      os.Stdout,
		Level:       logLevel,
	})

	return logger
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
