// Package config loads the setup of a simulation: timing, passenger
// generation, the station network and the fleet. Setups are YAML files
// validated with struct tags; an embedded default reproduces the classic
// six-station network.
package config

import (
	"time"
)

type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Generation GenerationConfig `yaml:"generation"`
	Network    NetworkConfig    `yaml:"network"`
	Trains     []TrainConfig    `yaml:"trains" validate:"required,min=1,dive"`
}

type SimulationConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" validate:"gte=0"`
	DwellDelay   time.Duration `yaml:"dwell_delay" validate:"gte=0"`
	Step         float64       `yaml:"step" validate:"gte=0"`
	Speed        float64       `yaml:"speed" validate:"gte=0"`
	ClockStart   string        `yaml:"clock_start" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ClockStep    string        `yaml:"clock_step" validate:"omitempty,startswith=P"`

	// Seed fixes every random choice of a run. Zero picks one from the clock.
	Seed int64 `yaml:"seed"`
}

type GenerationConfig struct {
	Interval           time.Duration `yaml:"interval" validate:"gte=0"`
	MinBatch           int           `yaml:"min_batch" validate:"gte=0"`
	MaxBatch           int           `yaml:"max_batch" validate:"gtefield=MinBatch"`
	WagonTypes         []string      `yaml:"wagon_types" validate:"dive,oneof=seated platskart coupe"`
	Amenities          []string      `yaml:"amenities" validate:"dive,required"`
	BeddingProbability *float64      `yaml:"bedding_probability" validate:"omitempty,gte=0,lte=1"`
}

type NetworkConfig struct {
	Stations       []StationConfig `yaml:"stations" validate:"required,min=1,dive"`
	Routes         []RouteConfig   `yaml:"routes" validate:"dive"`
	FullyConnected bool            `yaml:"fully_connected"`
}

type StationConfig struct {
	Name string  `yaml:"name" validate:"required"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type RouteConfig struct {
	From      string `yaml:"from" validate:"required"`
	To        string `yaml:"to" validate:"required"`
	Direction string `yaml:"direction" validate:"omitempty,oneof=forward backward"`
}

type TrainConfig struct {
	Number string        `yaml:"number" validate:"required"`
	Start  string        `yaml:"start" validate:"required"`
	Wagons []WagonConfig `yaml:"wagons" validate:"required,min=1,dive"`
}

type WagonConfig struct {
	Number           string   `yaml:"number" validate:"required"`
	Type             string   `yaml:"type" validate:"required,oneof=service seated platskart coupe"`
	Seats            int      `yaml:"seats" validate:"gte=0"`
	PricePerKM       float64  `yaml:"price_per_km" validate:"gte=0"`
	BeddingSurcharge *float64 `yaml:"bedding_surcharge" validate:"omitempty,gte=0"`
	Amenities        []string `yaml:"amenities"`
	Service          string   `yaml:"service"`
}
