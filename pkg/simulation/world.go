// Package simulation ties the network, the fleet and the kassa together
// and drives them through time.
//
// All state changes happen inside World methods, and a World is only ever
// used from one goroutine at a time: either a Stepper advancing virtual
// ticks, or the loop goroutine of a Driver running against the wall clock.
package simulation

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railsim/pkg/kassa"
	"github.com/travigo/railsim/pkg/network"
	"github.com/travigo/railsim/pkg/passenger"
	"github.com/travigo/railsim/pkg/train"
	"github.com/travigo/railsim/pkg/wagon"
)

var (
	ErrNoTrains            = errors.New("fleet is empty")
	ErrUnknownTrainStation = errors.New("train starts at unknown station")
	ErrDuplicateTrain      = errors.New("duplicate train number")
	ErrUnknownTrain        = errors.New("unknown train")
)

type TrainDefinition struct {
	Number string
	Start  string
	Wagons []wagon.Wagon
}

type WorldOptions struct {
	Network   *network.Network
	Fleet     []TrainDefinition
	Generator *passenger.Generator
	Chooser   train.Chooser
	Context   *Context

	// Step is the position a train covers per tick at speed 1.
	Step float64
}

type World struct {
	network   *network.Network
	trains    []*train.Train
	trainByID map[string]*train.Train
	kassa     *kassa.Kassa
	generator *passenger.Generator
	context   *Context
	step      float64

	ticks       int
	generated   int
	disembarked int
}

// ArrivalResult summarises the passenger handling at one stop.
type ArrivalResult struct {
	Train       string
	Station     string
	Target      string
	Disembarked int
	Boarded     int
	Denied      int
}

func NewWorld(options WorldOptions) (*World, error) {
	if options.Network == nil {
		return nil, network.ErrNoStations
	}
	if len(options.Fleet) == 0 {
		return nil, ErrNoTrains
	}
	if options.Context == nil {
		return nil, errors.New("simulation context is required")
	}
	if options.Chooser == nil {
		return nil, errors.New("route chooser is required")
	}
	if options.Step < 0 {
		return nil, errors.New("step must not be negative")
	}

	w := &World{
		network:   options.Network,
		trainByID: make(map[string]*train.Train, len(options.Fleet)),
		generator: options.Generator,
		context:   options.Context,
		step:      options.Step,
	}

	for _, definition := range options.Fleet {
		start, ok := options.Network.Station(definition.Start)
		if !ok {
			return nil, fmt.Errorf("train %q: %w %q", definition.Number, ErrUnknownTrainStation, definition.Start)
		}
		if _, exists := w.trainByID[definition.Number]; exists {
			return nil, fmt.Errorf("%w %q", ErrDuplicateTrain, definition.Number)
		}

		t := train.New(definition.Number, start, definition.Wagons, options.Network, options.Chooser)
		w.trains = append(w.trains, t)
		w.trainByID[definition.Number] = t
	}

	w.kassa = kassa.New(w.trains)

	return w, nil
}

func (w *World) Network() *network.Network {
	return w.network
}

func (w *World) Kassa() *kassa.Kassa {
	return w.kassa
}

func (w *World) Context() *Context {
	return w.context
}

func (w *World) Trains() []*train.Train {
	return w.kassa.Trains()
}

// Ticks is the number of movement ticks played so far.
func (w *World) Ticks() int {
	return w.ticks
}

// Tick runs one movement tick: the clock moves on, trains that arrived
// since the last tick have their passengers handled, then every train not
// waiting advances. The trains handled in this tick are returned so the
// caller can schedule the end of their dwell.
func (w *World) Tick() []ArrivalResult {
	w.ticks++
	w.context.AdvanceClock()

	var arrivals []ArrivalResult
	for _, t := range w.trains {
		if t.NeedsProcessing() {
			arrivals = append(arrivals, w.handleArrival(t))
		}
	}

	step := w.step * w.context.Speed
	for _, t := range w.trains {
		if t.IsWaiting() {
			continue
		}

		if t.Advance(step) {
			log.Debug().
				Str("train", t.Number()).
				Str("station", t.CurrentStation().Name()).
				Msg("Train arrived")
		}
	}

	return arrivals
}

// handleArrival lets off the passengers whose journey ends here, then
// sells tickets to those waiting for the train's next destination.
func (w *World) handleArrival(t *train.Train) ArrivalResult {
	station := t.CurrentStation()
	result := ArrivalResult{
		Train:   t.Number(),
		Station: station.Name(),
	}

	result.Disembarked = t.Disembark(station.Name())
	w.disembarked += result.Disembarked

	if target := t.TargetStation(); target != nil {
		result.Target = target.Name()

		for _, p := range station.WaitingFor(target.Name()) {
			if _, sold := w.kassa.AttemptSale(p, station); sold {
				station.RemovePassenger(p)
				result.Boarded++
			} else {
				result.Denied++
			}
		}
	}

	t.MarkProcessed()

	log.Debug().
		Str("train", result.Train).
		Str("station", result.Station).
		Str("target", result.Target).
		Int("disembarked", result.Disembarked).
		Int("boarded", result.Boarded).
		Int("denied", result.Denied).
		Msg("Processed arrival")

	return result
}

// CompleteDwell ends the dwell of the named train. Trains with nowhere to
// go stay put and are picked up again on the next tick.
func (w *World) CompleteDwell(number string) error {
	t, ok := w.trainByID[number]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownTrain, number)
	}

	err := t.Depart()
	if errors.Is(err, train.ErrNoRoute) {
		log.Debug().
			Str("train", t.Number()).
			Str("station", t.CurrentStation().Name()).
			Msg("No route out of station, train stays waiting")
		return nil
	}
	if err != nil {
		return err
	}

	log.Debug().
		Str("train", t.Number()).
		Str("from", t.CurrentStation().Name()).
		Str("to", t.TargetStation().Name()).
		Msg("Train departed")

	return nil
}

// GeneratePassengers adds a fresh batch of passengers to every station and
// returns how many were created.
func (w *World) GeneratePassengers() int {
	if w.generator == nil {
		return 0
	}

	names := w.network.StationNames()
	total := 0

	for _, station := range w.network.Stations() {
		for _, p := range w.generator.Batch(station.Name(), names, w.context.Now) {
			station.AddPassenger(p)
			total++
		}
	}
	w.generated += total

	log.Debug().Int("passengers", total).Time("clock", w.context.Now).Msg("Generated passengers")

	return total
}

// Generated is the number of passengers ever created by GeneratePassengers.
func (w *World) Generated() int {
	return w.generated
}

// Disembarked is the number of passengers that have reached their
// destination and left the simulation.
func (w *World) Disembarked() int {
	return w.disembarked
}
