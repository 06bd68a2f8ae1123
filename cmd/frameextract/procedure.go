package main

import (
	"github.com/spf13/afero"
	"github.com/tauraamui/frameextract/pkg/procedure"
	"github.com/tauraamui/xerror"
	"github.com/urfave/cli/v2"
)

func procedureCommand() *cli.Command {
	return &cli.Command{
		Name:  "procedure",
		Usage: "work with generated procedure documents",
		Subcommands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "parse sectioned procedure text into a structured record",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the record to this file instead of stdout"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: formatJSON, Usage: "json, yaml or text"},
				},
				Action: runProcedureParse,
			},
		},
	}
}

func runProcedureParse(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return xerror.New("procedure parse needs exactly one file")
	}

	path := c.Args().First()
	text, err := afero.ReadFile(fs, path)
	if err != nil {
		return xerror.Errorf("unable to read procedure file %s: %w", path, err)
	}

	p, err := procedure.Parse(string(text))
	if err != nil {
		return xerror.Errorf("%s: %w", path, err)
	}

	if c.String("format") == "text" {
		return writeOutput(c.String("output"), []byte(procedure.Format(p)))
	}

	data, err := encodeOutput(p, c.String("format"), true)
	if err != nil {
		return err
	}
	return writeOutput(c.String("output"), data)
}
