// Package train implements the train movement state machine.
//
// A train is either travelling along a route towards its target station or
// waiting at its current station. Advance moves a travelling train and
// reports arrival once its position reaches 1.0. Depart returns a waiting
// train to travelling once its dwell is over.
package train

import (
	"errors"

	"github.com/travigo/railsim/pkg/network"
	"github.com/travigo/railsim/pkg/wagon"
)

var ErrNoRoute = errors.New("no outgoing route from current station")

// RouteSource gives the routes a train may leave a station by.
type RouteSource interface {
	Outgoing(station *network.Station) []network.Route
}

// Chooser picks an index in [0, n). *rand.Rand satisfies it.
type Chooser interface {
	Intn(n int) int
}

type Train struct {
	number string

	currentStation *network.Station
	targetStation  *network.Station
	currentRoute   *network.Route
	position       float64

	waiting   bool
	processed bool

	wagons []wagon.Wagon

	routes  RouteSource
	chooser Chooser
}

// New places a train at start in the unrouted state. The first Advance
// picks its first route.
func New(number string, start *network.Station, wagons []wagon.Wagon, routes RouteSource, chooser Chooser) *Train {
	assembled := make([]wagon.Wagon, len(wagons))
	copy(assembled, wagons)

	return &Train{
		number:         number,
		currentStation: start,
		wagons:         assembled,
		routes:         routes,
		chooser:        chooser,
	}
}

func (t *Train) Number() string {
	return t.number
}

func (t *Train) CurrentStation() *network.Station {
	return t.currentStation
}

// TargetStation is nil while the train has no route planned.
func (t *Train) TargetStation() *network.Station {
	return t.targetStation
}

func (t *Train) CurrentRoute() (network.Route, bool) {
	if t.currentRoute == nil {
		return network.Route{}, false
	}
	return *t.currentRoute, true
}

func (t *Train) Position() float64 {
	return t.position
}

func (t *Train) IsWaiting() bool {
	return t.waiting
}

func (t *Train) Wagons() []wagon.Wagon {
	wagons := make([]wagon.Wagon, len(t.wagons))
	copy(wagons, t.wagons)

	return wagons
}

func (t *Train) PassengerWagons() []*wagon.PassengerWagon {
	var passengerWagons []*wagon.PassengerWagon
	for _, w := range t.wagons {
		if pw, ok := w.(*wagon.PassengerWagon); ok {
			passengerWagons = append(passengerWagons, pw)
		}
	}

	return passengerWagons
}

func (t *Train) PassengerCount() int {
	total := 0
	for _, w := range t.PassengerWagons() {
		total += w.PassengerCount()
	}

	return total
}

func (t *Train) SeatCount() int {
	total := 0
	for _, w := range t.PassengerWagons() {
		total += w.Seats()
	}

	return total
}

// NeedsProcessing reports whether the train has arrived somewhere and its
// passengers have not been handled for this stop yet.
func (t *Train) NeedsProcessing() bool {
	return t.waiting && !t.processed
}

func (t *Train) MarkProcessed() {
	t.processed = true
}

// Disembark removes every occupant whose destination is station and
// returns how many left the train.
func (t *Train) Disembark(station string) int {
	total := 0
	for _, w := range t.PassengerWagons() {
		total += len(w.ClearArrivals(station))
	}

	return total
}

// Advance moves the train by step along its route. It returns true when
// the move brought the train to its target. Waiting trains ignore it.
func (t *Train) Advance(step float64) bool {
	if t.waiting {
		return false
	}

	if t.targetStation == nil {
		if !t.chooseRoute() {
			t.wait()
		}
		return false
	}

	t.position += step
	if t.position < 1.0 {
		return false
	}

	t.currentStation = t.targetStation
	t.wait()
	t.chooseRoute()

	return true
}

// Depart ends the dwell and chooses the route to leave on. The choice is
// made afresh, so it can differ from the target planned on arrival. With
// nowhere to go the train stays waiting with ErrNoRoute and the stop
// counts as unprocessed again so it is revisited.
func (t *Train) Depart() error {
	if !t.waiting {
		return nil
	}

	if !t.chooseRoute() {
		t.processed = false
		return ErrNoRoute
	}

	t.waiting = false
	t.position = 0.0

	return nil
}

func (t *Train) wait() {
	t.waiting = true
	t.processed = false
	t.position = 0.0
}

func (t *Train) chooseRoute() bool {
	candidates := t.routes.Outgoing(t.currentStation)
	if len(candidates) == 0 {
		t.targetStation = nil
		t.currentRoute = nil
		t.position = 0.0
		return false
	}

	route := candidates[t.chooser.Intn(len(candidates))]
	t.currentRoute = &route
	t.targetStation = route.Destination()
	t.position = 0.0

	return true
}
