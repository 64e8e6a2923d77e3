package simulation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railsim/pkg/network"
	"github.com/travigo/railsim/pkg/passenger"
	"github.com/travigo/railsim/pkg/wagon"

	iso8601 "github.com/senseyeio/duration"
)

type firstChooser struct{}

func (firstChooser) Intn(int) int { return 0 }

var testStart = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func newTestContext(t *testing.T) *Context {
	step, err := iso8601.ParseISO8601("PT1M")
	require.NoError(t, err)

	c, err := NewContext(testStart, step, 1.0)
	require.NoError(t, err)

	return c
}

func twoStations(t *testing.T) *network.Network {
	stations := []*network.Station{
		network.NewStation("S1", network.Coordinate{}),
		network.NewStation("S2", network.Coordinate{X: 100}),
	}

	n, err := network.New(stations, network.FullyConnected(stations))
	require.NoError(t, err)

	return n
}

func TestNewWorldValidation(t *testing.T) {
	n := twoStations(t)
	c := newTestContext(t)

	_, err := NewWorld(WorldOptions{Network: n, Context: c, Chooser: firstChooser{}})
	assert.ErrorIs(t, err, ErrNoTrains)

	_, err = NewWorld(WorldOptions{Network: n, Context: c, Chooser: firstChooser{}, Fleet: []TrainDefinition{{Number: "001", Start: "Nowhere"}}})
	assert.ErrorIs(t, err, ErrUnknownTrainStation)

	_, err = NewWorld(WorldOptions{Network: n, Context: c, Chooser: firstChooser{}, Fleet: []TrainDefinition{
		{Number: "001", Start: "S1"},
		{Number: "001", Start: "S2"},
	}})
	assert.ErrorIs(t, err, ErrDuplicateTrain)

	_, err = NewWorld(WorldOptions{Context: c, Chooser: firstChooser{}, Fleet: []TrainDefinition{{Number: "001", Start: "S1"}}})
	assert.ErrorIs(t, err, network.ErrNoStations)
}

func TestArrivalWorkflow(t *testing.T) {
	n := twoStations(t)
	s1, _ := n.Station("S1")
	s2, _ := n.Station("S2")
	seated := wagon.NewSeated("W1", 2, 2.0)

	world, err := NewWorld(WorldOptions{
		Network: n,
		Fleet:   []TrainDefinition{{Number: "001", Start: "S1", Wagons: []wagon.Wagon{seated}}},
		Chooser: firstChooser{},
		Context: newTestContext(t),
		Step:    0.5,
	})
	require.NoError(t, err)

	toS2 := passenger.New("S2", testStart, passenger.Preferences{})
	s1.AddPassenger(toS2)

	// First tick routes the train, the next two bring it to S2.
	assert.Empty(t, world.Tick())
	assert.Empty(t, world.Tick())
	assert.Empty(t, world.Tick())
	require.True(t, world.Trains()[0].IsWaiting())
	assert.Equal(t, s2, world.Trains()[0].CurrentStation())

	// Nobody boarded at S1: the train was never waiting there.
	assert.Equal(t, 1, s1.PassengerCount())

	toS1 := passenger.New("S1", testStart, passenger.Preferences{})
	s2.AddPassenger(toS1)
	s2.AddPassenger(passenger.New("S1", testStart, passenger.Preferences{WagonType: "coupe"}))

	arrivals := world.Tick()
	require.Len(t, arrivals, 1)
	assert.Equal(t, ArrivalResult{Train: "001", Station: "S2", Target: "S1", Boarded: 1, Denied: 1}, arrivals[0])
	assert.Equal(t, 1, s2.PassengerCount())
	assert.Equal(t, 1, s2.DepartedCount())
	assert.Equal(t, []*passenger.Passenger{toS1}, seated.Passengers())

	// Processing happens once per stop.
	assert.Empty(t, world.Tick())

	require.NoError(t, world.CompleteDwell("001"))
	assert.False(t, world.Trains()[0].IsWaiting())

	world.Tick()
	arrivals = world.Tick()
	assert.Empty(t, arrivals)

	arrivals = world.Tick()
	require.Len(t, arrivals, 1)
	assert.Equal(t, "S1", arrivals[0].Station)
	assert.Equal(t, 1, arrivals[0].Disembarked)
	assert.Equal(t, 1, arrivals[0].Boarded)
	assert.Equal(t, 0, s1.PassengerCount())
	assert.Equal(t, []*passenger.Passenger{toS2}, seated.Passengers())
	assert.Equal(t, 1, world.Disembarked())

	statistics := world.Statistics()
	assert.Equal(t, 2, statistics.Sales)
	assert.Equal(t, 1, statistics.Denied)
	assert.Equal(t, 400.0, statistics.TotalRevenue)
	assert.Equal(t, 1, statistics.Onboard)
	assert.Equal(t, testStart.Add(8*time.Minute), statistics.Time)
}

func TestCompleteDwellUnknownTrain(t *testing.T) {
	world, err := NewWorld(WorldOptions{
		Network: twoStations(t),
		Fleet:   []TrainDefinition{{Number: "001", Start: "S1"}},
		Chooser: firstChooser{},
		Context: newTestContext(t),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, world.CompleteDwell("404"), ErrUnknownTrain)
}

func TestIsolatedTrainIsRevisited(t *testing.T) {
	stations := []*network.Station{
		network.NewStation("A", network.Coordinate{}),
		network.NewStation("B", network.Coordinate{X: 1}),
		network.NewStation("Island", network.Coordinate{X: 9}),
	}
	n, err := network.New(stations, []network.RouteDefinition{{Origin: "A", Destination: "B"}, {Origin: "B", Destination: "A"}})
	require.NoError(t, err)

	world, err := NewWorld(WorldOptions{
		Network: n,
		Fleet:   []TrainDefinition{{Number: "007", Start: "Island", Wagons: []wagon.Wagon{wagon.NewSeated("W1", 1, 1)}}},
		Chooser: firstChooser{},
		Context: newTestContext(t),
		Step:    0.1,
	})
	require.NoError(t, err)

	world.Tick()
	for i := 0; i < 5; i++ {
		arrivals := world.Tick()
		require.Len(t, arrivals, 1)
		assert.Equal(t, "Island", arrivals[0].Station)
		assert.Empty(t, arrivals[0].Target)

		require.NoError(t, world.CompleteDwell("007"))
		tr := world.Trains()[0]
		assert.True(t, tr.IsWaiting())
		assert.Nil(t, tr.TargetStation())
	}
}

func TestGeneratePassengers(t *testing.T) {
	generator := passenger.NewGenerator(passenger.GeneratorConfig{
		MinBatch:   5,
		MaxBatch:   10,
		WagonTypes: []string{"seated", "platskart", "coupe"},
		Amenities:  []string{passenger.AmenityTV, passenger.AmenityPhone},
	}, rand.New(rand.NewSource(1)))

	world, err := NewWorld(WorldOptions{
		Network:   twoStations(t),
		Fleet:     []TrainDefinition{{Number: "001", Start: "S1"}},
		Generator: generator,
		Chooser:   firstChooser{},
		Context:   newTestContext(t),
	})
	require.NoError(t, err)

	total := world.GeneratePassengers()
	assert.GreaterOrEqual(t, total, 10)
	assert.LessOrEqual(t, total, 20)
	assert.Equal(t, total, world.Generated())

	waiting := 0
	for _, station := range world.Network().Stations() {
		waiting += station.PassengerCount()
		for _, p := range station.Waiting() {
			assert.NotEqual(t, station.Name(), p.Destination())
			assert.Equal(t, testStart, p.TravelDate())
		}
	}
	assert.Equal(t, total, waiting)
}

func TestSnapshot(t *testing.T) {
	world, err := NewWorld(WorldOptions{
		Network: twoStations(t),
		Fleet: []TrainDefinition{{Number: "001", Start: "S1", Wagons: []wagon.Wagon{
			wagon.NewSeated("W1", 50, 2.0, passenger.AmenityTV),
			wagon.NewService("S1", "restaurant"),
		}}},
		Chooser: firstChooser{},
		Context: newTestContext(t),
		Step:    0.25,
	})
	require.NoError(t, err)

	world.Tick()
	world.Tick()

	snapshot := world.Snapshot()
	require.Len(t, snapshot.Trains, 1)
	view := snapshot.Trains[0]
	assert.Equal(t, "S1", view.CurrentStation)
	assert.Equal(t, "S2", view.TargetStation)
	assert.Equal(t, 0.25, view.Position)
	assert.False(t, view.Waiting)
	assert.Equal(t, 50, view.Seats)
	assert.Equal(t, []WagonView{
		{Number: "W1", Type: wagon.TypeSeated, Seats: 50, Amenities: []string{passenger.AmenityTV}, PricePerKM: 2.0},
		{Number: "S1", Type: wagon.TypeService, Service: "restaurant"},
	}, view.Wagons)
	assert.Len(t, snapshot.Stations, 2)
	assert.Equal(t, 1.0, snapshot.Speed)
}
