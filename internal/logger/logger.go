// Package logger sets up the leveled, formatted logging used by sdelab.
package logger

import (
	"io"

	"github.com/op/go-logging"
)

// defaultLogFormat defines the format used for log output.
const defaultLogFormat = "%{color}%{time:15:04:05.000} %{level:-8s} %{shortpkg}/%{shortfunc}%{color:reset}: %{message}"

// Module is the logger name shared by all packages.
const Module = "sdelab"

// New installs a backend writing to out at the given level and returns the
// module logger. Unknown levels fall back to INFO.
func New(out io.Writer, level string) *logging.Logger {
	backend := logging.NewLogBackend(out, "", 0)

	format := logging.MustStringFormatter(defaultLogFormat)
	fmtBackend := logging.NewBackendFormatter(backend, format)

	lvlBackend := logging.AddModuleLevel(fmtBackend)
	lvlBackend.SetLevel(ParseLevel(level), "")

	logging.SetBackend(lvlBackend)
	return logging.MustGetLogger(Module)
}

// ParseLevel maps a level name such as "debug" or "WARNING" to a level.
func ParseLevel(level string) logging.Level {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return logging.INFO
	}
	return lvl
}

// Get returns the module logger with whatever backend is installed.
func Get() *logging.Logger {
	return logging.MustGetLogger(Module)
}
