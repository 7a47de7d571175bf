package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

// ParseLogLevel maps a LOG_LEVEL value to a fiber log level, defaulting to info
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

// SetupLogger configures the default fiber logger
func SetupLogger(level string) {
	log.SetLevel(ParseLogLevel(level))
}
