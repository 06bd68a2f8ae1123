package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/frameextract/pkg/log"
)

func resetLoggers() func() {
	debugRef, infoRef, warnRef := log.Debug, log.Info, log.Warn
	return func() {
		log.Debug, log.Info, log.Warn = debugRef, infoRef, warnRef
		log.SetLevel("warn")
	}
}

func TestRouteToStderrWritesWarningsAtWarnLevel(t *testing.T) {
	is := is.New(t)
	defer resetLoggers()()

	buf := bytes.Buffer{}
	defer log.OverloadStderr(&buf)()

	log.SetLevel("warn")
	log.RouteToStderr()
	log.Warn("skipped frame %d", 74)

	is.True(strings.Contains(buf.String(), "WARN"))
	is.True(strings.HasSuffix(buf.String(), "skipped frame 74\n"))
}

func TestRouteToStderrHonoursDebugGate(t *testing.T) {
	is := is.New(t)
	defer resetLoggers()()

	buf := bytes.Buffer{}
	defer log.OverloadStderr(&buf)()

	log.SetLevel("warn")
	log.RouteToStderr()
	log.Debug("not shown")
	is.Equal(buf.Len(), 0)

	log.SetLevel("debug")
	log.Debug("shown")
	is.True(strings.Contains(buf.String(), "shown"))
}

func TestRouteToStderrWritesNothingWhenSilent(t *testing.T) {
	is := is.New(t)
	defer resetLoggers()()

	buf := bytes.Buffer{}
	defer log.OverloadStderr(&buf)()

	log.SetLevel("silent")
	log.RouteToStderr()
	log.Warn("nope")
	log.Info("nope")
	is.Equal(buf.Len(), 0)
}

func TestRouteToStderrWritesOnlyErrorsAtErrorLevel(t *testing.T) {
	is := is.New(t)
	defer resetLoggers()()

	buf := bytes.Buffer{}
	defer log.OverloadStderr(&buf)()

	log.SetLevel("error")
	log.RouteToStderr()
	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("hidden")
	is.Equal(buf.Len(), 0)

	log.SetLevel("info")
	log.Info("visible again")
	is.True(strings.Contains(buf.String(), "visible again"))
}
