package train

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railsim/pkg/network"
	"github.com/travigo/railsim/pkg/passenger"
	"github.com/travigo/railsim/pkg/wagon"
)

type fixedChooser struct {
	index int
	calls int
}

func (c *fixedChooser) Intn(n int) int {
	c.calls++
	return c.index % n
}

func twoStationNetwork(t *testing.T) (*network.Network, *network.Station, *network.Station) {
	s1 := network.NewStation("S1", network.Coordinate{})
	s2 := network.NewStation("S2", network.Coordinate{X: 100})

	n, err := network.New([]*network.Station{s1, s2}, []network.RouteDefinition{
		{Origin: "S1", Destination: "S2", Direction: network.DirectionForward},
		{Origin: "S2", Destination: "S1", Direction: network.DirectionBackward},
	})
	require.NoError(t, err)

	return n, s1, s2
}

func TestFirstAdvanceChoosesRoute(t *testing.T) {
	n, s1, s2 := twoStationNetwork(t)
	tr := New("001", s1, nil, n, &fixedChooser{})

	assert.Nil(t, tr.TargetStation())
	assert.False(t, tr.Advance(0.5))
	assert.Equal(t, s2, tr.TargetStation())
	assert.Equal(t, 0.0, tr.Position())
	assert.False(t, tr.IsWaiting())

	route, ok := tr.CurrentRoute()
	require.True(t, ok)
	assert.Equal(t, s1, route.Origin())
	assert.Equal(t, s2, route.Destination())
}

func TestAdvanceToArrival(t *testing.T) {
	n, s1, s2 := twoStationNetwork(t)
	tr := New("001", s1, nil, n, &fixedChooser{})
	tr.Advance(0)

	for i := 0; i < 3; i++ {
		assert.False(t, tr.Advance(0.25))
	}
	assert.InDelta(t, 0.75, tr.Position(), 1e-9)

	assert.True(t, tr.Advance(0.25))
	assert.True(t, tr.IsWaiting())
	assert.Equal(t, 0.0, tr.Position())
	assert.Equal(t, s2, tr.CurrentStation())
	assert.Equal(t, s1, tr.TargetStation())
	assert.True(t, tr.NeedsProcessing())

	// Waiting trains do not move.
	assert.False(t, tr.Advance(5))
	assert.Equal(t, 0.0, tr.Position())
	assert.Equal(t, s2, tr.CurrentStation())

	tr.MarkProcessed()
	assert.False(t, tr.NeedsProcessing())

	require.NoError(t, tr.Depart())
	assert.False(t, tr.IsWaiting())
	assert.Equal(t, s1, tr.TargetStation())
	assert.Equal(t, 0.0, tr.Position())
}

func TestIsolatedStationKeepsTrainWaiting(t *testing.T) {
	a := network.NewStation("A", network.Coordinate{})
	b := network.NewStation("B", network.Coordinate{X: 1})
	isolated := network.NewStation("Isolated", network.Coordinate{X: 5})

	n, err := network.New([]*network.Station{a, b, isolated}, []network.RouteDefinition{
		{Origin: "A", Destination: "B"},
	})
	require.NoError(t, err)

	chooser := &fixedChooser{}
	tr := New("009", isolated, nil, n, chooser)

	tr.Advance(0.1)
	assert.True(t, tr.IsWaiting())
	assert.Nil(t, tr.TargetStation())

	for i := 0; i < 10; i++ {
		tr.MarkProcessed()
		assert.ErrorIs(t, tr.Depart(), ErrNoRoute)
		assert.True(t, tr.IsWaiting())
		assert.True(t, tr.NeedsProcessing())
		assert.Equal(t, isolated, tr.CurrentStation())
		assert.Equal(t, 0.0, tr.Position())
		assert.False(t, tr.Advance(0.5))
	}
	assert.Equal(t, 0, chooser.calls)
}

func TestRouteChoiceValidity(t *testing.T) {
	stations := []*network.Station{
		network.NewStation("A", network.Coordinate{}),
		network.NewStation("B", network.Coordinate{X: 1}),
		network.NewStation("C", network.Coordinate{Y: 1}),
		network.NewStation("D", network.Coordinate{X: 1, Y: 1}),
	}
	routes := append(network.FullyConnected(stations), network.RouteDefinition{Origin: "A", Destination: "A"})
	n, err := network.New(stations, routes)
	require.NoError(t, err)

	tr := New("001", stations[0], nil, n, rand.New(rand.NewSource(3)))
	tr.Advance(0)

	for i := 0; i < 200; i++ {
		origin := tr.CurrentStation()
		target := tr.TargetStation()
		require.NotNil(t, target)
		assert.NotEqual(t, origin, target)

		route, ok := tr.CurrentRoute()
		require.True(t, ok)
		assert.Equal(t, origin, route.Origin())
		assert.Equal(t, target, route.Destination())

		for !tr.Advance(0.3) {
		}
		require.NoError(t, tr.Depart())
	}
}

func TestDisembarkAndCounts(t *testing.T) {
	n, s1, _ := twoStationNetwork(t)
	seated := wagon.NewSeated("W1", 2, 2.0)
	coupe := wagon.NewCoupe("W3", 1, 3.0, 150)
	tr := New("001", s1, []wagon.Wagon{seated, wagon.NewService("S1", "restaurant"), coupe}, n, &fixedChooser{})

	require.True(t, seated.Board(passenger.New("S2", time.Time{}, passenger.Preferences{})))
	require.True(t, seated.Board(passenger.New("S1", time.Time{}, passenger.Preferences{})))
	require.True(t, coupe.Board(passenger.New("S2", time.Time{}, passenger.Preferences{})))

	assert.Len(t, tr.Wagons(), 3)
	assert.Len(t, tr.PassengerWagons(), 2)
	assert.Equal(t, 3, tr.PassengerCount())
	assert.Equal(t, 3, tr.SeatCount())

	assert.Equal(t, 2, tr.Disembark("S2"))
	assert.Equal(t, 1, tr.PassengerCount())
}

type sequenceChooser struct {
	picks []int
	calls int
}

func (c *sequenceChooser) Intn(n int) int {
	pick := c.picks[c.calls%len(c.picks)] % n
	c.calls++
	return pick
}

func TestDepartChoosesRouteAgain(t *testing.T) {
	stations := []*network.Station{
		network.NewStation("A", network.Coordinate{}),
		network.NewStation("B", network.Coordinate{X: 1}),
		network.NewStation("C", network.Coordinate{Y: 1}),
	}
	n, err := network.New(stations, network.FullyConnected(stations))
	require.NoError(t, err)

	chooser := &sequenceChooser{picks: []int{0, 0, 1}}
	tr := New("001", stations[0], nil, n, chooser)

	tr.Advance(0)
	assert.Equal(t, stations[1], tr.TargetStation())

	require.True(t, tr.Advance(1.0))
	assert.Equal(t, stations[1], tr.CurrentStation())
	assert.Equal(t, stations[0], tr.TargetStation())
	assert.Equal(t, 2, chooser.calls)

	tr.MarkProcessed()
	require.NoError(t, tr.Depart())
	assert.Equal(t, 3, chooser.calls)
	assert.False(t, tr.IsWaiting())

	// The departure pick replaces the target planned on arrival.
	assert.Equal(t, stations[2], tr.TargetStation())
	assert.NotEqual(t, tr.CurrentStation(), tr.TargetStation())

	route, ok := tr.CurrentRoute()
	require.True(t, ok)
	assert.Equal(t, stations[1], route.Origin())
	assert.Equal(t, stations[2], route.Destination())
	assert.Contains(t, n.Outgoing(stations[1]), route)
}
