// Package logging builds the leveled console logger shared by commands.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level. Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
		TimeFormat:      time.TimeOnly,
	})
}

// Component returns a child logger prefixed with a component name.
func Component(logger *log.Logger, name string) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger.WithPrefix(name)
}
