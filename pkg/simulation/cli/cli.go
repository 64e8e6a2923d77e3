package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/travigo/railsim/pkg/config"
	"github.com/travigo/railsim/pkg/kassa"
	"github.com/travigo/railsim/pkg/report"
	"github.com/travigo/railsim/pkg/simulation"
	"github.com/urfave/cli/v2"
)

func outputFlags() []cli.Flag {
	return []cli.Flag{
		config.ConfigFlag(),
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "random seed, overrides the setup; zero picks one from the clock",
		},
		&cli.Float64Flag{
			Name:  "speed",
			Usage: "simulation speed multiplier, overrides the setup",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "report format, text or json",
		},
		&cli.StringSliceFlag{
			Name:  "groups",
			Value: cli.NewStringSlice(report.GroupSummary),
			Usage: "report groups to include (summary, detailed)",
		},
		&cli.StringFlag{
			Name:  "ledger-csv",
			Usage: "write the ticket ledger as CSV to this path",
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: "only export tickets matching this expression, e.g. 'WagonType == \"coupe\"'",
		},
	}
}

func RegisterCLI() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "simulate",
			Usage: "run the simulation for a fixed number of ticks in virtual time",
			Flags: append(outputFlags(),
				&cli.IntFlag{
					Name:  "ticks",
					Value: 1000,
					Usage: "number of ticks to simulate",
				},
			),
			Action: func(c *cli.Context) error {
				setup, seed, err := loadSetup(c)
				if err != nil {
					return err
				}

				world, err := setup.BuildWorld(seed)
				if err != nil {
					return err
				}

				stepper, err := simulation.NewStepper(world, setup.Settings())
				if err != nil {
					return err
				}

				log.Info().Int("ticks", c.Int("ticks")).Int64("seed", seed).Msg("Starting simulation")
				stepper.Run(c.Int("ticks"))

				return writeOutputs(c, world.Statistics(), world.Kassa().Ledger(), world.Ticks(), seed)
			},
		},
		{
			Name:  "run",
			Usage: "run the simulation against the wall clock until interrupted",
			Flags: append(outputFlags(),
				&cli.DurationFlag{
					Name:  "duration",
					Usage: "stop after this long, runs until SIGINT when unset",
				},
				&cli.DurationFlag{
					Name:  "stats-interval",
					Value: 5 * time.Second,
					Usage: "how often to log statistics",
				},
			),
			Action: func(c *cli.Context) error {
				setup, seed, err := loadSetup(c)
				if err != nil {
					return err
				}

				world, err := setup.BuildWorld(seed)
				if err != nil {
					return err
				}

				settings := setup.Settings()
				driver, err := simulation.NewDriver(world, settings)
				if err != nil {
					return err
				}

				ctx, cancel := context.WithCancel(c.Context)
				defer cancel()
				if duration := c.Duration("duration"); duration > 0 {
					ctx, cancel = context.WithTimeout(ctx, duration)
					defer cancel()
				}

				signals := make(chan os.Signal, 1)
				signal.Notify(signals, syscall.SIGINT)
				defer signal.Stop(signals)

				go func() {
					select {
					case <-signals:
						log.Info().Msg("Stopping simulation")
						cancel()
					case <-ctx.Done():
						return
					}

					<-signals // hard exit on second signal (in case shutdown gets stuck)
					os.Exit(1)
				}()

				var wg conc.WaitGroup
				var runErr error
				wg.Go(func() {
					runErr = driver.Run(ctx)
				})

				if err := driver.Start(); err == nil {
					log.Info().Int64("seed", seed).Msg("Simulation running")
					wg.Go(func() {
						logStatistics(ctx, driver, c.Duration("stats-interval"))
					})
				}

				wg.Wait()
				if runErr != nil {
					return runErr
				}

				// The driver loop has exited so the world can be read directly.
				return writeOutputs(c, world.Statistics(), world.Kassa().Ledger(), world.Ticks(), seed)
			},
		},
	}
}

func loadSetup(c *cli.Context) (*config.Config, int64, error) {
	setup, err := config.Load(c.String("config"))
	if err != nil {
		return nil, 0, err
	}

	if c.IsSet("speed") {
		setup.Simulation.Speed = c.Float64("speed")
	}
	if c.IsSet("seed") {
		setup.Simulation.Seed = c.Int64("seed")
	}

	return setup, setup.Seed(), nil
}

func logStatistics(ctx context.Context, driver *simulation.Driver, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := driver.Statistics()
			if err != nil {
				return
			}

			log.Info().
				Time("time", stats.Time).
				Int("sales", stats.Sales).
				Int("denied", stats.Denied).
				Float64("revenue", stats.TotalRevenue).
				Int("onboard", stats.Onboard).
				Msg("Simulation statistics")
		}
	}
}

func writeOutputs(c *cli.Context, stats simulation.Statistics, ledger []kassa.Ticket, ticks int, seed int64) error {
	groups := c.StringSlice("groups")
	result := report.FromStatistics(stats, ticks, seed)

	if err := writeReport(c.App.Writer, c.String("format"), result, groups); err != nil {
		return err
	}

	path := c.String("ledger-csv")
	if path == "" {
		return nil
	}

	var filter *report.TicketFilter
	if source := c.String("filter"); source != "" {
		var err error
		if filter, err = report.NewTicketFilter(source); err != nil {
			return err
		}
	}

	rows, err := filter.Apply(report.TicketRows(ledger))
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := report.WriteCSV(file, rows); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("tickets", len(rows)).Msg("Wrote ticket ledger")
	return nil
}

func writeReport(w io.Writer, format string, result report.Report, groups []string) error {
	switch strings.ToLower(format) {
	case "json":
		data, err := report.MarshalJSON(result, groups)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text", "":
		return report.WriteText(w, result, groups)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
