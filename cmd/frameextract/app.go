package main

import (
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:                 name,
		Usage:                description,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			extractCommand(),
			configCommand(),
			procedureCommand(),
		},
	}
}
