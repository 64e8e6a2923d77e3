package simulation

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// Stepper runs a World in virtual time. Dwell and generation delays are
// converted to whole movement ticks, so a run is reproducible for a given
// seed and never sleeps.
type Stepper struct {
	world    *World
	settings Settings

	dwellTicks      int
	dwellRemaining  map[string]int
	dwellOrder      []string
	untilGeneration int
	ticks           int
}

func NewStepper(world *World, settings Settings) (*Stepper, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	world.Context().Running = true
	world.Context().Generating = true

	return &Stepper{
		world:          world,
		settings:       settings,
		dwellTicks:     ticksFor(settings.DwellDelay, settings.TickInterval),
		dwellRemaining: map[string]int{},
	}, nil
}

// ticksFor is the number of whole ticks needed to cover delay, at least one.
func ticksFor(delay time.Duration, tick time.Duration) int {
	ticks := int(math.Ceil(float64(delay) / float64(tick)))
	if ticks < 1 {
		return 1
	}
	return ticks
}

func (s *Stepper) World() *World {
	return s.world
}

func (s *Stepper) Ticks() int {
	return s.ticks
}

// Step plays one movement tick: due dwell completions first, then the
// generation pulse if due, then the tick itself.
func (s *Stepper) Step() []ArrivalResult {
	s.completeDwells()

	context := s.world.Context()
	if context.Generating {
		if s.untilGeneration <= 0 {
			s.world.GeneratePassengers()
			s.untilGeneration = ticksFor(s.settings.generationDelay(context.Speed), s.settings.TickInterval)
		}
		s.untilGeneration--
	}

	var arrivals []ArrivalResult
	if context.Running {
		arrivals = s.world.Tick()
		for _, arrival := range arrivals {
			if _, pending := s.dwellRemaining[arrival.Train]; !pending {
				s.dwellOrder = append(s.dwellOrder, arrival.Train)
			}
			s.dwellRemaining[arrival.Train] = s.dwellTicks
		}
	}
	s.ticks++

	return arrivals
}

func (s *Stepper) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		s.Step()
	}
}

func (s *Stepper) completeDwells() {
	var pending []string

	for _, number := range s.dwellOrder {
		s.dwellRemaining[number]--
		if s.dwellRemaining[number] > 0 {
			pending = append(pending, number)
			continue
		}

		delete(s.dwellRemaining, number)
		if err := s.world.CompleteDwell(number); err != nil {
			log.Error().Err(err).Str("train", number).Msg("Failed to complete dwell")
		}
	}

	s.dwellOrder = pending
}
