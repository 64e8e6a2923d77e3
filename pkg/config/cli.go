package config

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/travigo/railsim/pkg/network"
	"github.com/travigo/railsim/pkg/util"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// ConfigFlag is shared by every command that loads a setup. It falls back
// to RAILSIM_CONFIG and then the built-in network.
func ConfigFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   util.GetEnvironmentVariable("RAILSIM_CONFIG", ""),
		Usage:   "YAML file describing the simulation, defaults to the built-in network",
	}
}

type stationInspection struct {
	Name     string
	X, Y     float64
	Outgoing []string
}

type trainInspection struct {
	Number string
	Start  string
	Wagons []string
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "network",
		Usage: "Inspect the railway network of a setup",
		Subcommands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "print the stations, routes and fleet",
				Flags: []cli.Flag{
					ConfigFlag(),
					&cli.BoolFlag{
						Name:  "yaml",
						Usage: "print the fully resolved setup as YAML",
					},
				},
				Action: func(c *cli.Context) error {
					config, err := Load(c.String("config"))
					if err != nil {
						return err
					}

					if c.Bool("yaml") {
						encoder := yaml.NewEncoder(c.App.Writer)
						encoder.SetIndent(2)
						defer encoder.Close()

						return encoder.Encode(config)
					}

					railNetwork, err := config.BuildNetwork()
					if err != nil {
						return err
					}

					var stations []stationInspection
					for _, station := range railNetwork.Stations() {
						inspection := stationInspection{
							Name: station.Name(),
							X:    station.Coordinate().X,
							Y:    station.Coordinate().Y,
						}
						for _, route := range railNetwork.Outgoing(station) {
							inspection.Outgoing = append(inspection.Outgoing,
								fmt.Sprintf("%s (%.1f km)", route.Destination().Name(), network.Distance(route.Origin(), route.Destination())))
						}
						stations = append(stations, inspection)
					}
					pretty.Fprintf(c.App.Writer, "%# v\n", stations)

					var trains []trainInspection
					for _, trainConfig := range config.Trains {
						inspection := trainInspection{
							Number: trainConfig.Number,
							Start:  trainConfig.Start,
						}
						for _, wagonConfig := range trainConfig.Wagons {
							inspection.Wagons = append(inspection.Wagons, fmt.Sprintf("%s:%s", wagonConfig.Number, wagonConfig.Type))
						}
						trains = append(trains, inspection)
					}
					pretty.Fprintf(c.App.Writer, "%# v\n", trains)

					return nil
				},
			},
		},
	}
}
