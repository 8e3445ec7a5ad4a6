package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures the process logger with the given level name.
// Unknown levels fall back to info.
func SetupLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
