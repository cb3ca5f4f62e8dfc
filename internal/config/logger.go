package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates the structured logger shared by a process. Unknown levels
// fall back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "futbolito",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
