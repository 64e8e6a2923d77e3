package simulation

import (
	"errors"
	"time"
)

// Settings are the real-time intervals of the three scheduled tasks.
type Settings struct {
	TickInterval       time.Duration
	GenerationInterval time.Duration
	DwellDelay         time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		TickInterval:       50 * time.Millisecond,
		GenerationInterval: 12 * time.Second,
		DwellDelay:         time.Second,
	}
}

func (s Settings) Validate() error {
	switch {
	case s.TickInterval <= 0:
		return errors.New("tick interval must be positive")
	case s.GenerationInterval <= 0:
		return errors.New("generation interval must be positive")
	case s.DwellDelay < 0:
		return errors.New("dwell delay must not be negative")
	}

	return nil
}

// generationDelay scales the generation interval inversely with speed.
func (s Settings) generationDelay(speed float64) time.Duration {
	return time.Duration(float64(s.GenerationInterval) / speed)
}
