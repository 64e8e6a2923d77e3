package simulation

import (
	"errors"
	"fmt"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

var ErrInvalidSpeed = errors.New("simulation speed must be positive")

// Context is the state shared by everything driving a simulation: the
// simulated clock, the speed multiplier and the running flags.
type Context struct {
	Now       time.Time
	ClockStep iso8601.Duration

	Speed float64

	Running    bool
	Generating bool
}

func NewContext(start time.Time, clockStep iso8601.Duration, speed float64) (*Context, error) {
	if speed <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpeed, speed)
	}

	return &Context{
		Now:       start,
		ClockStep: clockStep,
		Speed:     speed,
	}, nil
}

// AdvanceClock moves simulated time on by one clock step.
func (c *Context) AdvanceClock() {
	c.Now = c.ClockStep.Shift(c.Now)
}

func (c *Context) SetSpeed(speed float64) error {
	if speed <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, speed)
	}

	c.Speed = speed

	return nil
}
