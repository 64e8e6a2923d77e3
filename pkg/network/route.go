package network

type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// Route is a directed line between two stations. The direction tag is
// informational only and plays no part in movement.
type Route struct {
	origin      *Station
	destination *Station
	direction   Direction
}

func NewRoute(origin *Station, destination *Station, direction Direction) Route {
	return Route{
		origin:      origin,
		destination: destination,
		direction:   direction,
	}
}

func (r Route) Origin() *Station {
	return r.origin
}

func (r Route) Destination() *Station {
	return r.destination
}

func (r Route) Direction() Direction {
	return r.direction
}

func (r Route) String() string {
	return RouteName(r.origin.Name(), r.destination.Name())
}

// RouteName is the key used for per-route statistics.
func RouteName(origin string, destination string) string {
	return origin + " - " + destination
}
