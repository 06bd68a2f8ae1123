package main

import (
	"errors"

	"github.com/tauraamui/frameextract/pkg/config"
	"github.com/tauraamui/frameextract/pkg/configdef"
	"github.com/tauraamui/frameextract/pkg/log"
	"github.com/urfave/cli/v2"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "manage the frameextract config file",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write the default config file",
				Action: func(c *cli.Context) error {
					err := config.DefaultCreator().Create()
					if errors.Is(err, configdef.ErrConfigAlreadyExists) {
						log.Warn(err.Error())
						return nil
					}
					return err
				},
			},
			{
				Name:  "remove",
				Usage: "delete the config file",
				Action: func(c *cli.Context) error {
					err := config.DefaultDestroyer().Destroy()
					if errors.Is(err, configdef.ErrConfigNotFound) {
						log.Warn(err.Error())
						return nil
					}
					return err
				},
			},
			{
				Name:  "show",
				Usage: "print the resolved config",
				Action: func(c *cli.Context) error {
					values, err := config.DefaultResolver().Resolve()
					if err != nil {
						return err
					}
					data, err := encodeOutput(values, formatJSON, true)
					if err != nil {
						return err
					}
					return writeOutput("", data)
				},
			},
		},
	}
}
