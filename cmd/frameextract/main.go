package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/tacusci/logging/v2"
	"github.com/tauraamui/frameextract/pkg/log"
)

const (
	name        = "frameextract"
	description = "Extracts representative frames from videos as embeddable JPEG data URLs"
)

var (
	fs     afero.Fs  = afero.NewOsFs()
	stdout io.Writer = os.Stdout
)

func init() {
	logging.CallbackLabelLevel = 5
	log.SetLevel(os.Getenv("FRAMEEXTRACT_LOG_LEVEL"))
	// stdout is reserved for extracted records
	log.RouteToStderr()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
