package shared

import (
	"io"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a charmbracelet logger at the named level. Debug
// overrides whatever level was configured.
func SetupLogger(w io.Writer, level string, debug bool) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if debug {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// SetupStructuredLogger configures a logger that writes JSON lines
func SetupStructuredLogger(w io.Writer, debug bool) *log.Logger {
	lvl := log.InfoLevel
	if debug {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Formatter:       log.JSONFormatter,
	})
}
