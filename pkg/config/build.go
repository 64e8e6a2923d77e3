package config

import (
	"fmt"
	"math/rand"
	"time"

	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/railsim/pkg/network"
	"github.com/travigo/railsim/pkg/passenger"
	"github.com/travigo/railsim/pkg/simulation"
	"github.com/travigo/railsim/pkg/wagon"
)

// BuildNetwork creates the stations and routes described by the setup.
func (c *Config) BuildNetwork() (*network.Network, error) {
	stations := make([]*network.Station, 0, len(c.Network.Stations))
	for _, station := range c.Network.Stations {
		stations = append(stations, network.NewStation(station.Name, network.Coordinate{X: station.X, Y: station.Y}))
	}

	var routes []network.RouteDefinition
	if c.Network.FullyConnected {
		routes = network.FullyConnected(stations)
	}
	for _, route := range c.Network.Routes {
		routes = append(routes, network.RouteDefinition{
			Origin:      route.From,
			Destination: route.To,
			Direction:   network.Direction(route.Direction),
		})
	}

	return network.New(stations, routes)
}

// BuildFleet creates fresh, empty wagons on every call.
func (c *Config) BuildFleet() ([]simulation.TrainDefinition, error) {
	fleet := make([]simulation.TrainDefinition, 0, len(c.Trains))

	for _, trainConfig := range c.Trains {
		definition := simulation.TrainDefinition{
			Number: trainConfig.Number,
			Start:  trainConfig.Start,
		}

		for _, wagonConfig := range trainConfig.Wagons {
			carriage, err := buildWagon(wagonConfig)
			if err != nil {
				return nil, fmt.Errorf("train %q: %w", trainConfig.Number, err)
			}
			definition.Wagons = append(definition.Wagons, carriage)
		}

		fleet = append(fleet, definition)
	}

	return fleet, nil
}

func buildWagon(config WagonConfig) (wagon.Wagon, error) {
	wagonType, ok := wagon.ParseType(config.Type)
	if !ok {
		return nil, fmt.Errorf("wagon %q: unknown type %q", config.Number, config.Type)
	}

	switch wagonType {
	case wagon.TypeSeated:
		return wagon.NewSeated(config.Number, config.Seats, config.PricePerKM, config.Amenities...), nil
	case wagon.TypePlatskart:
		return wagon.NewPlatskart(config.Number, config.Seats, config.PricePerKM, config.Amenities...), nil
	case wagon.TypeCoupe:
		surcharge := wagon.DefaultBeddingSurcharge
		if config.BeddingSurcharge != nil {
			surcharge = *config.BeddingSurcharge
		}
		return wagon.NewCoupe(config.Number, config.Seats, config.PricePerKM, surcharge, config.Amenities...), nil
	default:
		return wagon.NewService(config.Number, config.Service), nil
	}
}

func (c *Config) GeneratorConfig() passenger.GeneratorConfig {
	generatorConfig := passenger.GeneratorConfig{
		MinBatch:   c.Generation.MinBatch,
		MaxBatch:   c.Generation.MaxBatch,
		WagonTypes: append([]string(nil), c.Generation.WagonTypes...),
		Amenities:  append([]string(nil), c.Generation.Amenities...),
	}
	if c.Generation.BeddingProbability != nil {
		generatorConfig.BeddingProbability = *c.Generation.BeddingProbability
	}
	return generatorConfig
}

func (c *Config) Settings() simulation.Settings {
	return simulation.Settings{
		TickInterval:       c.Simulation.TickInterval,
		GenerationInterval: c.Generation.Interval,
		DwellDelay:         c.Simulation.DwellDelay,
	}
}

func (c *Config) NewContext() (*simulation.Context, error) {
	start, err := time.Parse(time.RFC3339, c.Simulation.ClockStart)
	if err != nil {
		return nil, fmt.Errorf("clock start: %w", err)
	}

	step, err := iso8601.ParseISO8601(c.Simulation.ClockStep)
	if err != nil {
		return nil, fmt.Errorf("clock step: %w", err)
	}

	return simulation.NewContext(start, step, c.Simulation.Speed)
}

// Seed returns the configured seed, or a clock-derived one when unset.
func (c *Config) Seed() int64 {
	if c.Simulation.Seed != 0 {
		return c.Simulation.Seed
	}
	return time.Now().UnixNano()
}

// BuildWorld assembles a ready to run world. Route choice and passenger
// generation draw from separate sources derived from seed.
func (c *Config) BuildWorld(seed int64) (*simulation.World, error) {
	railNetwork, err := c.BuildNetwork()
	if err != nil {
		return nil, err
	}

	fleet, err := c.BuildFleet()
	if err != nil {
		return nil, err
	}

	simulationContext, err := c.NewContext()
	if err != nil {
		return nil, err
	}

	return simulation.NewWorld(simulation.WorldOptions{
		Network:   railNetwork,
		Fleet:     fleet,
		Generator: passenger.NewGenerator(c.GeneratorConfig(), rand.New(rand.NewSource(seed+1))),
		Chooser:   rand.New(rand.NewSource(seed)),
		Context:   simulationContext,
		Step:      c.Simulation.Step,
	})
}
