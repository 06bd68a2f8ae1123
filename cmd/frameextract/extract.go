package main

import (
	"strings"

	"github.com/tauraamui/frameextract/pkg/config"
	"github.com/tauraamui/frameextract/pkg/configdef"
	"github.com/tauraamui/frameextract/pkg/extract"
	"github.com/tauraamui/frameextract/pkg/log"
	"github.com/tauraamui/frameextract/pkg/video/videobackend"
	"github.com/tauraamui/xerror"
	"github.com/urfave/cli/v2"
)

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "extract frames from a video and print them as JSON records",
		ArgsUsage: "<video>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "keyframes, scenes or timestamps"},
			&cli.IntFlag{Name: "num-frames", Aliases: []string{"n"}, Usage: "number of evenly spaced frames in keyframes mode"},
			&cli.Float64Flag{Name: "threshold", Aliases: []string{"t"}, Usage: "mean luminance difference that counts as a scene change"},
			&cli.StringFlag{Name: "timestamps", Usage: "JSON or YAML file of timestamp marks, required in timestamps mode"},
			&cli.IntFlag{Name: "max-width", Usage: "largest output frame width, 0 for no limit"},
			&cli.IntFlag{Name: "max-height", Usage: "largest output frame height, 0 for no limit"},
			&cli.StringFlag{Name: "backend", Usage: "video backend, opencv or mock"},
			&cli.StringFlag{Name: "log-level", Usage: "silent, debug, info, warn or error"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write records to this file instead of stdout"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: formatJSON, Usage: "json or yaml"},
		},
		Action: runExtract,
	}
}

func runExtract(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return xerror.New("extract needs exactly one video path")
	}
	path := c.Args().First()

	values, err := resolveValues(c)
	if err != nil {
		return err
	}
	log.SetLevel(values.LogLevel)

	opts, err := optionsFromValues(values)
	if err != nil {
		return err
	}
	if opts.Mode == extract.ModeTimestamps {
		if !c.IsSet("timestamps") {
			return xerror.Errorf("%w: timestamps mode needs --timestamps", extract.ErrInvalidParameters)
		}
		marks, err := extract.LoadMarks(fs, c.String("timestamps"))
		if err != nil {
			return err
		}
		opts.Marks = marks
	}

	records, err := extract.New(videobackend.Resolve(values.Backend)).Extract(c.Context, path, opts)
	if err != nil {
		return err
	}
	log.Info("Extracted %d frames from %s", len(records), path)

	pretty := c.IsSet("output") || stdoutIsTerminal()
	data, err := encodeOutput(records, c.String("format"), pretty)
	if err != nil {
		return err
	}
	return writeOutput(c.String("output"), data)
}

// resolveValues layers any flags given on the command line over the
// resolved config.
func resolveValues(c *cli.Context) (configdef.Values, error) {
	values, err := config.DefaultResolver().Resolve()
	if err != nil {
		return configdef.Values{}, err
	}

	if c.IsSet("log-level") {
		values.LogLevel = c.String("log-level")
	}
	if c.IsSet("backend") {
		values.Backend = c.String("backend")
	}
	if c.IsSet("mode") {
		values.Extraction.Mode = c.String("mode")
	}
	if c.IsSet("num-frames") {
		values.Extraction.NumFrames = c.Int("num-frames")
	}
	if c.IsSet("threshold") {
		values.Extraction.Threshold = c.Float64("threshold")
	}
	if c.IsSet("max-width") {
		values.Extraction.MaxWidth = c.Int("max-width")
	}
	if c.IsSet("max-height") {
		values.Extraction.MaxHeight = c.Int("max-height")
	}

	values.LogLevel = normaliseName(values.LogLevel)
	values.Backend = normaliseName(values.Backend)
	values.Extraction.Mode = normaliseName(values.Extraction.Mode)

	if err := values.RunValidate(); err != nil {
		return configdef.Values{}, xerror.Errorf("%w: %v", extract.ErrInvalidParameters, err)
	}
	return values, nil
}

func optionsFromValues(values configdef.Values) (extract.Options, error) {
	mode, err := extract.ParseMode(values.Extraction.Mode)
	if err != nil {
		return extract.Options{}, err
	}
	return extract.Options{
		Mode:      mode,
		NumFrames: values.Extraction.NumFrames,
		Threshold: values.Extraction.Threshold,
		MaxWidth:  values.Extraction.MaxWidth,
		MaxHeight: values.Extraction.MaxHeight,
	}, nil
}

// normaliseName matches names the way extract.ParseMode does, so "Scenes"
// and " scenes" both validate.
func normaliseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
