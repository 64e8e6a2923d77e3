// Package network holds the fixed station set and the directed routes
// between stations. Beyond passenger queues on stations it has no
// behaviour other than adjacency and distance lookups.
package network

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoStations        = errors.New("network has no stations")
	ErrNoRoutes          = errors.New("network has several stations but no routes")
	ErrDuplicateStation  = errors.New("duplicate station")
	ErrUnknownStation    = errors.New("unknown station")
	ErrInvalidStationKey = errors.New("station name is empty")
)

// RouteDefinition names the two ends of a route by station name.
type RouteDefinition struct {
	Origin      string
	Destination string
	Direction   Direction
}

type Network struct {
	stations      []*Station
	stationByName map[string]*Station

	routes   []Route
	outgoing map[string][]Route
}

// New builds the network, refusing setups the simulation cannot run on.
func New(stations []*Station, routes []RouteDefinition) (*Network, error) {
	if len(stations) == 0 {
		return nil, ErrNoStations
	}

	n := &Network{
		stationByName: make(map[string]*Station, len(stations)),
		outgoing:      make(map[string][]Route, len(stations)),
	}

	for _, station := range stations {
		if station.Name() == "" {
			return nil, ErrInvalidStationKey
		}
		if _, exists := n.stationByName[station.Name()]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStation, station.Name())
		}

		n.stations = append(n.stations, station)
		n.stationByName[station.Name()] = station
	}

	for _, definition := range routes {
		origin, ok := n.stationByName[definition.Origin]
		if !ok {
			return nil, fmt.Errorf("route %s: %w %q", RouteName(definition.Origin, definition.Destination), ErrUnknownStation, definition.Origin)
		}
		destination, ok := n.stationByName[definition.Destination]
		if !ok {
			return nil, fmt.Errorf("route %s: %w %q", RouteName(definition.Origin, definition.Destination), ErrUnknownStation, definition.Destination)
		}

		direction := definition.Direction
		if direction == "" {
			direction = DirectionForward
		}

		route := NewRoute(origin, destination, direction)
		n.routes = append(n.routes, route)

		if origin != destination {
			n.outgoing[origin.Name()] = append(n.outgoing[origin.Name()], route)
		}
	}

	if len(n.stations) > 1 && len(n.routes) == 0 {
		return nil, ErrNoRoutes
	}

	return n, nil
}

// FullyConnected returns a route definition for every ordered pair of
// distinct stations.
func FullyConnected(stations []*Station) []RouteDefinition {
	var routes []RouteDefinition

	for i, origin := range stations {
		for j, destination := range stations {
			if i == j {
				continue
			}

			direction := DirectionForward
			if j < i {
				direction = DirectionBackward
			}

			routes = append(routes, RouteDefinition{
				Origin:      origin.Name(),
				Destination: destination.Name(),
				Direction:   direction,
			})
		}
	}

	return routes
}

func (n *Network) Station(name string) (*Station, bool) {
	station, ok := n.stationByName[name]
	return station, ok
}

func (n *Network) Stations() []*Station {
	stations := make([]*Station, len(n.stations))
	copy(stations, n.stations)

	return stations
}

func (n *Network) StationNames() []string {
	names := make([]string, 0, len(n.stations))
	for _, station := range n.stations {
		names = append(names, station.Name())
	}

	return names
}

func (n *Network) Routes() []Route {
	routes := make([]Route, len(n.routes))
	copy(routes, n.routes)

	return routes
}

// Outgoing lists the routes leaving station towards a different station,
// in the order they were declared.
func (n *Network) Outgoing(station *Station) []Route {
	if station == nil {
		return nil
	}

	outgoing := n.outgoing[station.Name()]
	routes := make([]Route, len(outgoing))
	copy(routes, outgoing)

	return routes
}

// Distance is the euclidean distance between two stations.
func Distance(a *Station, b *Station) float64 {
	dx := b.coordinate.X - a.coordinate.X
	dy := b.coordinate.Y - a.coordinate.Y

	return math.Sqrt(dx*dx + dy*dy)
}
