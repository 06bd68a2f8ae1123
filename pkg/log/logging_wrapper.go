package log

import (
	"strings"

	"github.com/tacusci/logging/v2"
)

// errorOnly mutes debug, info and warn. tacusci keeps its error level
// unexported so it cannot be selected directly.
var errorOnly bool

var Debug = func(format string, a ...interface{}) {
	if errorOnly {
		return
	}
	logging.Debug(format, a...) //nolint
}

var Info = func(format string, a ...interface{}) {
	if errorOnly {
		return
	}
	logging.Info(format, a...) //nolint
}

var Warn = func(format string, a ...interface{}) {
	if errorOnly {
		return
	}
	logging.Warn(format, a...) //nolint
}

var Error = func(format string, a ...interface{}) {
	logging.Error(format, a...) //nolint
}

// SetLevel applies one of "silent", "debug", "info", "warn" or "error".
// Anything else falls back to warn.
func SetLevel(name string) {
	logging.ColorLogLevelLabelOnly = true
	logging.CallbackLabel = false
	errorOnly = false
	switch strings.ToLower(name) {
	case "silent":
		logging.CurrentLoggingLevel = logging.SilentLevel
	case "debug":
		logging.CurrentLoggingLevel = logging.DebugLevel
		logging.CallbackLabel = true
	case "info":
		logging.CurrentLoggingLevel = logging.InfoLevel
	case "error":
		logging.CurrentLoggingLevel = logging.InfoLevel
		errorOnly = true
	default:
		logging.CurrentLoggingLevel = logging.WarnLevel
	}
}
