package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tacusci/logging/v2"
)

var stderr io.Writer = os.Stderr

// RouteToStderr swaps the debug, info and warn loggers for ones that write
// to stderr, leaving stdout free for command output. The tacusci level
// ordering and line format are kept.
func RouteToStderr() {
	Debug = stderrLogger(debugRank, "DEBUG", color.New(color.FgYellow))
	Warn = stderrLogger(warnRank, "WARN", color.New(color.FgYellow))
	Info = stderrLogger(infoRank, "INFO", color.New(color.FgGreen))
}

const (
	silentRank = iota
	debugRank
	warnRank
	infoRank
	errorRank
)

func currentRank() int {
	if errorOnly {
		return errorRank
	}
	switch logging.CurrentLoggingLevel {
	case logging.SilentLevel:
		return silentRank
	case logging.DebugLevel:
		return debugRank
	case logging.InfoLevel:
		return infoRank
	default:
		return warnRank
	}
}

func stderrLogger(rank int, label string, c *color.Color) func(string, ...interface{}) {
	return func(format string, a ...interface{}) {
		current := currentRank()
		if current == silentRank || current > rank {
			return
		}
		fmt.Fprintf(
			stderr, "%s [%s] %s\n",
			time.Now().Format("2006-01-02 15:04:05"), c.Sprint(label), fmt.Sprintf(format, a...),
		)
	}
}
