// Package logging builds the hclog logger shared by the CLI commands.
package logging

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// New creates a logger writing to w at the given level. Unknown levels fall back to info.
func New(level string, w io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "jgrab",
		Level:  lvl,
		Output: w,
	})
}
