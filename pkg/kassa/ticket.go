package kassa

import (
	"github.com/travigo/railsim/pkg/network"
	"github.com/travigo/railsim/pkg/passenger"
	"github.com/travigo/railsim/pkg/train"
	"github.com/travigo/railsim/pkg/wagon"
)

// Ticket records one completed sale. It has no setters; once issued its
// fields never change.
type Ticket struct {
	train     *train.Train
	wagon     *wagon.PassengerWagon
	passenger *passenger.Passenger
	price     float64
	departure *network.Station
}

func (t Ticket) Train() *train.Train {
	return t.train
}

func (t Ticket) Wagon() *wagon.PassengerWagon {
	return t.wagon
}

func (t Ticket) Passenger() *passenger.Passenger {
	return t.passenger
}

func (t Ticket) Price() float64 {
	return t.price
}

func (t Ticket) DepartureStation() *network.Station {
	return t.departure
}
