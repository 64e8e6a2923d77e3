package simulation

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/travigo/railsim/pkg/kassa"
)

var ErrDriverStopped = errors.New("simulation driver is not running")

// Driver runs a World against the wall clock. A single loop goroutine owns
// the world; movement ticks, generation pulses, dwell completions and
// commands from other goroutines are all serialised through it.
type Driver struct {
	world    *World
	settings Settings

	commands  chan func()
	dwellDone chan string
	done      chan struct{}
}

func NewDriver(world *World, settings Settings) (*Driver, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &Driver{
		world:     world,
		settings:  settings,
		commands:  make(chan func()),
		dwellDone: make(chan string),
		done:      make(chan struct{}),
	}, nil
}

// Run blocks until ctx is cancelled. Passenger generation starts straight
// away; train movement waits for Start.
func (d *Driver) Run(ctx context.Context) error {
	var wg conc.WaitGroup
	wg.Go(func() {
		d.loop(ctx)
	})

	if recovered := wg.WaitAndRecover(); recovered != nil {
		return recovered.AsError()
	}

	return nil
}

func (d *Driver) loop(ctx context.Context) {
	defer close(d.done)

	ticker := time.NewTicker(d.settings.TickInterval)
	defer ticker.Stop()

	generation := time.NewTimer(0)
	defer generation.Stop()

	dwellTimers := map[string]*time.Timer{}
	defer func() {
		for _, timer := range dwellTimers {
			timer.Stop()
		}
	}()

	simulation := d.world.Context()
	simulation.Generating = true

	log.Info().
		Dur("tick", d.settings.TickInterval).
		Dur("generation", d.settings.GenerationInterval).
		Dur("dwell", d.settings.DwellDelay).
		Float64("speed", simulation.Speed).
		Msg("Simulation driver started")

	for {
		select {
		case <-ctx.Done():
			simulation.Running = false
			simulation.Generating = false
			log.Info().Time("clock", simulation.Now).Msg("Simulation driver stopped")
			return
		case command := <-d.commands:
			command()
		case <-ticker.C:
			if !simulation.Running {
				continue
			}

			for _, arrival := range d.world.Tick() {
				number := arrival.Train
				if _, pending := dwellTimers[number]; pending {
					continue
				}

				dwellTimers[number] = time.AfterFunc(d.settings.DwellDelay, func() {
					select {
					case d.dwellDone <- number:
					case <-d.done:
					}
				})
			}
		case number := <-d.dwellDone:
			delete(dwellTimers, number)
			if err := d.world.CompleteDwell(number); err != nil {
				log.Error().Err(err).Str("train", number).Msg("Failed to complete dwell")
			}
		case <-generation.C:
			if simulation.Generating {
				d.world.GeneratePassengers()
			}
			generation.Reset(d.settings.generationDelay(simulation.Speed))
		}
	}
}

// do runs command on the loop goroutine and waits for it to finish.
func (d *Driver) do(command func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		command()
		close(finished)
	}

	select {
	case d.commands <- wrapped:
	case <-d.done:
		return ErrDriverStopped
	}

	<-finished

	return nil
}

// Start lets trains move.
func (d *Driver) Start() error {
	return d.do(func() {
		if !d.world.Context().Running {
			d.world.Context().Running = true
			log.Info().Msg("Simulation started")
		}
	})
}

// Pause stops train movement. Dwells already under way still complete, and
// passengers keep arriving at stations.
func (d *Driver) Pause() error {
	return d.do(func() {
		if d.world.Context().Running {
			d.world.Context().Running = false
			log.Info().Msg("Simulation paused")
		}
	})
}

// SetSpeed changes the multiplier for movement steps and generation
// intervals. Dwell delays are not affected.
func (d *Driver) SetSpeed(speed float64) error {
	var err error
	if doErr := d.do(func() {
		err = d.world.Context().SetSpeed(speed)
		if err == nil {
			log.Info().Float64("speed", speed).Msg("Simulation speed changed")
		}
	}); doErr != nil {
		return doErr
	}

	return err
}

func (d *Driver) Statistics() (Statistics, error) {
	var statistics Statistics
	err := d.do(func() {
		statistics = d.world.Statistics()
	})

	return statistics, err
}

func (d *Driver) Snapshot() (Snapshot, error) {
	var snapshot Snapshot
	err := d.do(func() {
		snapshot = d.world.Snapshot()
	})

	return snapshot, err
}

func (d *Driver) Ledger() ([]kassa.Ticket, error) {
	var ledger []kassa.Ticket
	err := d.do(func() {
		ledger = d.world.Kassa().Ledger()
	})

	return ledger, err
}
