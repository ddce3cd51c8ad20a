package log

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// LevelEnv names the environment variable holding the log level.
	LevelEnv = "MIGRATE_LOGLEVEL"
	// FormatEnv names the environment variable holding the log format.
	FormatEnv = "MIGRATE_LOGFORMAT"
)

var log = logrus.New()

func init() {
	log.Formatter = NewFormatter(os.Getenv(FormatEnv))
	log.Level = ParseLevel(os.Getenv(LevelEnv))
	log.Out = os.Stderr
}

// Get returns the shared logger. Migration scripts write their document
// to stdout in some setups, so log output goes to stderr by default.
func Get() Logger {
	return fromLogrusLogger(log)
}

// NewFormatter returns a logrus formatter for the given format name.
// Only "json" is recognised, anything else yields the text formatter.
func NewFormatter(format string) logrus.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		}
	default:
		return newLogrusTextFormatter()
	}
}

// ParseLevel maps a level name to a Level, defaulting to InfoLevel.
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return ErrorLevel
	case "warn", "warning":
		return WarnLevel
	case "debug":
		return DebugLevel
	default:
		return InfoLevel
	}
}
