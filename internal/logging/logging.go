// Package logging configures the process-wide logger and hands out named
// component loggers.
//
// Logging goes through commonlog with its simple backend. Verbosity follows
// commonlog's scale: 0 logs notices and above (a successful run prints
// nothing), 1 adds info, 2 and above add debug.
package logging

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Root is the name every component logger is nested under.
const Root = "stabilize"

// Verbosity levels accepted by Configure.
const (
	VerbosityQuiet  = -4
	VerbosityError  = -2
	VerbosityWarn   = -1
	VerbosityNotice = 0
	VerbosityInfo   = 1
	VerbosityDebug  = 2
)

// ParseVerbosity parses a level name into a verbosity. Unknown names map to
// VerbosityNotice.
func ParseVerbosity(s string) int {
	switch strings.ToLower(s) {
	case "quiet", "none", "off":
		return VerbosityQuiet
	case "error":
		return VerbosityError
	case "warn", "warning":
		return VerbosityWarn
	case "info":
		return VerbosityInfo
	case "debug", "trace":
		return VerbosityDebug
	default:
		return VerbosityNotice
	}
}

// Configure sets the global verbosity and destination. An empty path logs
// to stderr.
func Configure(verbosity int, path string) {
	if path == "" {
		commonlog.Configure(verbosity, nil)
		return
	}
	commonlog.Configure(verbosity, &path)
}

// Logger returns the logger for a component, e.g. Logger("sweep") logs as
// "stabilize.sweep".
func Logger(component string) commonlog.Logger {
	if component == "" {
		return commonlog.GetLogger(Root)
	}
	return commonlog.GetLogger(Root + "." + component)
}

// NewRunID returns a fresh identifier for one invocation.
func NewRunID() string {
	return uuid.NewString()
}

// WithRun tags every message of log with the run identifier.
func WithRun(log commonlog.Logger, runID string) commonlog.Logger {
	return commonlog.NewKeyValueLogger(log, "run", runID)
}

// WithPath tags every message of log with a file path.
func WithPath(log commonlog.Logger, path string) commonlog.Logger {
	return commonlog.NewKeyValueLogger(log, "path", path)
}
