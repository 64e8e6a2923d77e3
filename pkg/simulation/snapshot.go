package simulation

import (
	"time"

	"github.com/travigo/railsim/pkg/kassa"
	"github.com/travigo/railsim/pkg/network"
	"github.com/travigo/railsim/pkg/wagon"
)

type WagonView struct {
	Number           string
	Type             wagon.Type
	Service          string
	Passengers       int
	Seats            int
	Amenities        []string
	PricePerKM       float64
	BeddingSurcharge float64
}

type TrainView struct {
	Number         string
	CurrentStation string
	TargetStation  string
	Position       float64
	Waiting        bool
	Passengers     int
	Seats          int
	Wagons         []WagonView
}

type StationView struct {
	Name       string
	Coordinate network.Coordinate
	Waiting    int
	Departed   int
}

// Snapshot is a read-only copy of the live state, safe to hand to another
// goroutine.
type Snapshot struct {
	Time    time.Time
	Speed   float64
	Running bool

	Trains   []TrainView
	Stations []StationView
}

// Statistics is everything the kassa and stations report, derived on
// demand.
type Statistics struct {
	Time time.Time

	Sales        int
	Denied       int
	TotalRevenue float64

	WagonLoad map[wagon.Type]kassa.Load
	RouteLoad map[string]kassa.Load
	Revenue   kassa.RevenueStats

	Stations []StationView

	Generated   int
	Disembarked int
	Onboard     int
}

func (w *World) Snapshot() Snapshot {
	snapshot := Snapshot{
		Time:     w.context.Now,
		Speed:    w.context.Speed,
		Running:  w.context.Running,
		Stations: w.stationViews(),
	}

	for _, t := range w.trains {
		view := TrainView{
			Number:         t.Number(),
			CurrentStation: t.CurrentStation().Name(),
			Position:       t.Position(),
			Waiting:        t.IsWaiting(),
			Passengers:     t.PassengerCount(),
			Seats:          t.SeatCount(),
		}
		if target := t.TargetStation(); target != nil {
			view.TargetStation = target.Name()
		}

		for _, carriage := range t.Wagons() {
			switch carriage := carriage.(type) {
			case *wagon.PassengerWagon:
				view.Wagons = append(view.Wagons, WagonView{
					Number:           carriage.Number(),
					Type:             carriage.Type(),
					Passengers:       carriage.PassengerCount(),
					Seats:            carriage.Seats(),
					Amenities:        carriage.Amenities(),
					PricePerKM:       carriage.PricePerKM(),
					BeddingSurcharge: carriage.BeddingSurcharge(),
				})
			case *wagon.ServiceWagon:
				view.Wagons = append(view.Wagons, WagonView{
					Number:  carriage.Number(),
					Type:    carriage.Type(),
					Service: carriage.Service(),
				})
			}
		}

		snapshot.Trains = append(snapshot.Trains, view)
	}

	return snapshot
}

func (w *World) Statistics() Statistics {
	onboard := 0
	for _, t := range w.trains {
		onboard += t.PassengerCount()
	}

	return Statistics{
		Time:         w.context.Now,
		Sales:        w.kassa.Sales(),
		Denied:       w.kassa.DeniedCount(),
		TotalRevenue: w.kassa.TotalRevenue(),
		WagonLoad:    w.kassa.WagonLoad(),
		RouteLoad:    w.kassa.RouteLoad(),
		Revenue:      w.kassa.Revenue(),
		Stations:     w.stationViews(),
		Generated:    w.generated,
		Disembarked:  w.disembarked,
		Onboard:      onboard,
	}
}

func (w *World) stationViews() []StationView {
	var views []StationView
	for _, station := range w.network.Stations() {
		views = append(views, StationView{
			Name:       station.Name(),
			Coordinate: station.Coordinate(),
			Waiting:    station.PassengerCount(),
			Departed:   station.DepartedCount(),
		})
	}

	return views
}
