package logging

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// New builds the root logger. Unknown levels fall back to warn.
func New(level string, out io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "studylog",
		Level:  lvl,
		Output: out,
	})
}

// Discard is used by tests and by callers that do not care about diagnostics.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})
}
