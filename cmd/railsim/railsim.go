package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railsim/pkg/config"
	simulationcli "github.com/travigo/railsim/pkg/simulation/cli"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("RAILSIM_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("RAILSIM_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "railsim",
		Description: "Railway network simulation with a ticket office",

		Commands: append(simulationcli.RegisterCLI(),
			config.RegisterCLI(),
		),
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
