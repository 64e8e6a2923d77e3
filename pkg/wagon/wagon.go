// Package wagon models the units a train is assembled from. A wagon is
// either a service wagon, which never carries passengers, or a passenger
// wagon of one of the seated, platskart or coupe types.
//
// Callers tell the variants apart with a type switch on Wagon:
//
//	switch w := w.(type) {
//	case *wagon.PassengerWagon:
//		...
//	case *wagon.ServiceWagon:
//		...
//	}
package wagon

import (
	"strings"

	"github.com/travigo/railsim/pkg/passenger"
	"github.com/travigo/railsim/pkg/util"
	"golang.org/x/exp/slices"
)

type Type string

const (
	TypeService   Type = "service"
	TypeSeated    Type = "seated"
	TypePlatskart Type = "platskart"
	TypeCoupe     Type = "coupe"
)

// DefaultBeddingSurcharge is the surcharge given to coupe wagons whose
// setup does not name one.
const DefaultBeddingSurcharge = 100.0

// ParseType resolves a wagon type name case-insensitively.
func ParseType(name string) (Type, bool) {
	for _, wagonType := range []Type{TypeService, TypeSeated, TypePlatskart, TypeCoupe} {
		if strings.EqualFold(name, string(wagonType)) {
			return wagonType, true
		}
	}

	return "", false
}

type Wagon interface {
	Number() string
	Type() Type
}

type ServiceWagon struct {
	number  string
	service string
}

func NewService(number string, service string) *ServiceWagon {
	return &ServiceWagon{
		number:  number,
		service: service,
	}
}

func (w *ServiceWagon) Number() string {
	return w.number
}

func (w *ServiceWagon) Type() Type {
	return TypeService
}

func (w *ServiceWagon) Service() string {
	return w.service
}

// PassengerWagon is a seated, platskart or coupe wagon. Its occupant list
// never grows beyond the seat count.
type PassengerWagon struct {
	number     string
	wagonType  Type
	seats      int
	pricePerKM float64
	amenities  []string

	beddingSurcharge float64

	passengers []*passenger.Passenger
}

func NewSeated(number string, seats int, pricePerKM float64, amenities ...string) *PassengerWagon {
	return newPassengerWagon(number, TypeSeated, seats, pricePerKM, 0, amenities)
}

func NewPlatskart(number string, seats int, pricePerKM float64, amenities ...string) *PassengerWagon {
	return newPassengerWagon(number, TypePlatskart, seats, pricePerKM, 0, amenities)
}

func NewCoupe(number string, seats int, pricePerKM float64, beddingSurcharge float64, amenities ...string) *PassengerWagon {
	return newPassengerWagon(number, TypeCoupe, seats, pricePerKM, beddingSurcharge, amenities)
}

func newPassengerWagon(number string, wagonType Type, seats int, pricePerKM float64, beddingSurcharge float64, amenities []string) *PassengerWagon {
	if seats < 0 {
		seats = 0
	}

	return &PassengerWagon{
		number:           number,
		wagonType:        wagonType,
		seats:            seats,
		pricePerKM:       pricePerKM,
		amenities:        slices.Clone(amenities),
		beddingSurcharge: beddingSurcharge,
	}
}

func (w *PassengerWagon) Number() string {
	return w.number
}

func (w *PassengerWagon) Type() Type {
	return w.wagonType
}

func (w *PassengerWagon) Seats() int {
	return w.seats
}

func (w *PassengerWagon) PricePerKM() float64 {
	return w.pricePerKM
}

// BeddingSurcharge is zero for every type except coupe.
func (w *PassengerWagon) BeddingSurcharge() float64 {
	return w.beddingSurcharge
}

func (w *PassengerWagon) Amenities() []string {
	return slices.Clone(w.amenities)
}

func (w *PassengerWagon) HasAmenity(amenity string) bool {
	return slices.Contains(w.amenities, amenity)
}

func (w *PassengerWagon) PassengerCount() int {
	return len(w.passengers)
}

func (w *PassengerWagon) IsFull() bool {
	return len(w.passengers) >= w.seats
}

func (w *PassengerWagon) Passengers() []*passenger.Passenger {
	return slices.Clone(w.passengers)
}

// Board seats the passenger if a seat is free.
func (w *PassengerWagon) Board(p *passenger.Passenger) bool {
	if w.IsFull() {
		return false
	}

	w.passengers = append(w.passengers, p)

	return true
}

// ClearArrivals removes and returns every occupant travelling to
// destination.
func (w *PassengerWagon) ClearArrivals(destination string) []*passenger.Passenger {
	var arrived []*passenger.Passenger

	util.InPlaceFilter(&w.passengers, func(p *passenger.Passenger) bool {
		if p.Destination() == destination {
			arrived = append(arrived, p)
			return false
		}
		return true
	})

	return arrived
}
