package network

import (
	"github.com/travigo/railsim/pkg/passenger"
	"golang.org/x/exp/slices"
)

// Coordinate is a planar position; distances between stations are the
// straight line between their coordinates.
type Coordinate struct {
	X float64
	Y float64
}

type Station struct {
	name       string
	coordinate Coordinate

	waiting  []*passenger.Passenger
	departed int
}

func NewStation(name string, coordinate Coordinate) *Station {
	return &Station{
		name:       name,
		coordinate: coordinate,
	}
}

func (s *Station) Name() string {
	return s.name
}

func (s *Station) Coordinate() Coordinate {
	return s.coordinate
}

func (s *Station) AddPassenger(p *passenger.Passenger) {
	s.waiting = append(s.waiting, p)
}

// RemovePassenger takes a passenger off the queue and counts them as
// departed. Passengers that are not queued here are ignored.
func (s *Station) RemovePassenger(p *passenger.Passenger) bool {
	index := slices.Index(s.waiting, p)
	if index < 0 {
		return false
	}

	s.waiting = slices.Delete(s.waiting, index, index+1)
	s.departed++

	return true
}

// Waiting returns a copy of the queue in arrival order.
func (s *Station) Waiting() []*passenger.Passenger {
	return slices.Clone(s.waiting)
}

func (s *Station) WaitingFor(destination string) []*passenger.Passenger {
	var matching []*passenger.Passenger
	for _, p := range s.waiting {
		if p.Destination() == destination {
			matching = append(matching, p)
		}
	}

	return matching
}

func (s *Station) PassengerCount() int {
	return len(s.waiting)
}

func (s *Station) DepartedCount() int {
	return s.departed
}
