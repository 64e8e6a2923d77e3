package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
	"github.com/travigo/railsim/pkg/wagon"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var defaultConfig = mustParse(defaultYAML)

func mustParse(data []byte) *Config {
	config, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return config
}

// Default returns a private copy of the built-in setup.
func Default() *Config {
	var config Config
	if err := copier.CopyWithOption(&config, defaultConfig, copier.Option{DeepCopy: true}); err != nil {
		panic(err)
	}
	return &config
}

// Load reads the setup at path, or the built-in one when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Parse decodes a YAML setup, fills unset simulation and generation values
// with their defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var config Config

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := validator.New().Struct(config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	s := &c.Simulation
	if s.TickInterval == 0 {
		s.TickInterval = 50 * time.Millisecond
	}
	if s.DwellDelay == 0 {
		s.DwellDelay = time.Second
	}
	if s.Step == 0 {
		s.Step = 0.01
	}
	if s.Speed == 0 {
		s.Speed = 1
	}
	if s.ClockStart == "" {
		s.ClockStart = "2024-01-01T08:00:00Z"
	}
	if s.ClockStep == "" {
		s.ClockStep = "PT1M"
	}

	for i := range c.Trains {
		for j := range c.Trains[i].Wagons {
			carriage := &c.Trains[i].Wagons[j]
			if carriage.BeddingSurcharge == nil && strings.EqualFold(carriage.Type, string(wagon.TypeCoupe)) {
				surcharge := wagon.DefaultBeddingSurcharge
				carriage.BeddingSurcharge = &surcharge
			}
		}
	}

	g := &c.Generation
	if g.Interval == 0 {
		g.Interval = 12 * time.Second
	}
	if g.MinBatch == 0 && g.MaxBatch == 0 {
		g.MinBatch = 5
		g.MaxBatch = 10
	}
	if g.WagonTypes == nil {
		g.WagonTypes = []string{"seated", "platskart", "coupe"}
	}
	if g.Amenities == nil {
		g.Amenities = []string{"TV", "phone"}
	}
	if g.BeddingProbability == nil {
		probability := 0.3
		g.BeddingProbability = &probability
	}
}
