// Package report turns simulation statistics and the kassa ledger into
// output: grouped JSON, a plain text summary and CSV ticket exports.
package report

import (
	"encoding/json"
	"time"

	"github.com/liip/sheriff"
	"github.com/travigo/railsim/pkg/kassa"
	"github.com/travigo/railsim/pkg/simulation"
	"golang.org/x/exp/slices"
)

const (
	GroupSummary  = "summary"
	GroupDetailed = "detailed"
)

type Report struct {
	Time  string `json:"time" groups:"summary,detailed"`
	Ticks int    `json:"ticks" groups:"summary,detailed"`
	Seed  int64  `json:"seed" groups:"summary,detailed"`

	Sales        int     `json:"sales" groups:"summary,detailed"`
	Denied       int     `json:"denied" groups:"summary,detailed"`
	TotalRevenue float64 `json:"total_revenue" groups:"summary,detailed"`

	Generated   int `json:"generated" groups:"summary,detailed"`
	Disembarked int `json:"disembarked" groups:"summary,detailed"`
	Onboard     int `json:"onboard" groups:"summary,detailed"`

	WagonLoad map[string]Load `json:"wagon_load" groups:"detailed"`
	RouteLoad map[string]Load `json:"route_load" groups:"detailed"`

	RevenueByTrain     []Amount           `json:"revenue_by_train" groups:"detailed"`
	RevenueByStation   []Amount           `json:"revenue_by_station" groups:"detailed"`
	RevenueByWagonType map[string]float64 `json:"revenue_by_wagon_type" groups:"detailed"`

	Stations []Station `json:"stations" groups:"detailed"`
}

type Load struct {
	Occupied int     `json:"occupied" groups:"summary,detailed"`
	Seats    int     `json:"seats" groups:"summary,detailed"`
	Ratio    float64 `json:"ratio" groups:"summary,detailed"`
}

type Amount struct {
	Key    string  `json:"key" groups:"summary,detailed"`
	Amount float64 `json:"amount" groups:"summary,detailed"`
}

type Station struct {
	Name     string `json:"name" groups:"summary,detailed"`
	Waiting  int    `json:"waiting" groups:"summary,detailed"`
	Departed int    `json:"departed" groups:"summary,detailed"`
}

func FromStatistics(stats simulation.Statistics, ticks int, seed int64) Report {
	report := Report{
		Time:         stats.Time.Format(time.RFC3339),
		Ticks:        ticks,
		Seed:         seed,
		Sales:        stats.Sales,
		Denied:       stats.Denied,
		TotalRevenue: stats.TotalRevenue,
		Generated:    stats.Generated,
		Disembarked:  stats.Disembarked,
		Onboard:      stats.Onboard,

		WagonLoad:          map[string]Load{},
		RouteLoad:          map[string]Load{},
		RevenueByWagonType: map[string]float64{},
	}

	for wagonType, load := range stats.WagonLoad {
		report.WagonLoad[string(wagonType)] = newLoad(load)
	}
	for route, load := range stats.RouteLoad {
		report.RouteLoad[route] = newLoad(load)
	}

	for _, revenue := range stats.Revenue.ByTrain {
		report.RevenueByTrain = append(report.RevenueByTrain, Amount{Key: revenue.Key, Amount: revenue.Amount})
	}
	for _, revenue := range stats.Revenue.ByStation {
		report.RevenueByStation = append(report.RevenueByStation, Amount{Key: revenue.Key, Amount: revenue.Amount})
	}
	for wagonType, amount := range stats.Revenue.ByWagonType {
		report.RevenueByWagonType[string(wagonType)] = amount
	}

	for _, station := range stats.Stations {
		report.Stations = append(report.Stations, Station{
			Name:     station.Name,
			Waiting:  station.Waiting,
			Departed: station.Departed,
		})
	}

	return report
}

func newLoad(load kassa.Load) Load {
	return Load{
		Occupied: load.Occupied,
		Seats:    load.Seats,
		Ratio:    load.Ratio(),
	}
}

// MarshalJSON reduces the report to the requested groups. With no groups
// only the summary is kept.
func MarshalJSON(report Report, groups []string) ([]byte, error) {
	if len(groups) == 0 {
		groups = []string{GroupSummary}
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, report)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(reduced, "", "  ")
}

func hasGroup(groups []string, group string) bool {
	return slices.Contains(groups, group)
}
