package kassa

import (
	"cmp"
	"strconv"

	"github.com/travigo/railsim/pkg/network"
	"github.com/travigo/railsim/pkg/wagon"
	"golang.org/x/exp/slices"
)

type Load struct {
	Occupied int
	Seats    int
}

// Ratio is the occupied share of seats, zero when there are no seats.
func (l Load) Ratio() float64 {
	if l.Seats == 0 {
		return 0
	}
	return float64(l.Occupied) / float64(l.Seats)
}

type Revenue struct {
	Key    string
	Amount float64
}

type RevenueStats struct {
	ByTrain     []Revenue
	ByStation   []Revenue
	ByWagonType map[wagon.Type]float64
}

// WagonLoad sums occupancy of every passenger wagon in the fleet by type.
func (k *Kassa) WagonLoad() map[wagon.Type]Load {
	stats := map[wagon.Type]Load{}

	for _, t := range k.trains {
		for _, w := range t.PassengerWagons() {
			load := stats[w.Type()]
			load.Occupied += w.PassengerCount()
			load.Seats += w.Seats()
			stats[w.Type()] = load
		}
	}

	return stats
}

// RouteLoad sums occupancy of trains with a planned target, keyed by the
// "origin - target" pair regardless of which train runs it.
func (k *Kassa) RouteLoad() map[string]Load {
	stats := map[string]Load{}

	for _, t := range k.trains {
		target := t.TargetStation()
		if target == nil {
			continue
		}

		route := network.RouteName(t.CurrentStation().Name(), target.Name())
		load := stats[route]
		load.Occupied += t.PassengerCount()
		load.Seats += t.SeatCount()
		stats[route] = load
	}

	return stats
}

func (k *Kassa) Revenue() RevenueStats {
	byTrain := map[string]float64{}
	byStation := map[string]float64{}
	byWagonType := map[wagon.Type]float64{}

	for _, ticket := range k.ledger {
		byTrain[ticket.Train().Number()] += ticket.Price()
		byStation[ticket.DepartureStation().Name()] += ticket.Price()
		byWagonType[ticket.Wagon().Type()] += ticket.Price()
	}

	trainRevenue := revenueList(byTrain)
	slices.SortFunc(trainRevenue, func(a, b Revenue) int {
		return compareTrainNumbers(a.Key, b.Key)
	})

	stationRevenue := revenueList(byStation)
	slices.SortFunc(stationRevenue, func(a, b Revenue) int {
		return cmp.Compare(a.Key, b.Key)
	})

	return RevenueStats{
		ByTrain:     trainRevenue,
		ByStation:   stationRevenue,
		ByWagonType: byWagonType,
	}
}

func (k *Kassa) TotalRevenue() float64 {
	total := 0.0
	for _, ticket := range k.ledger {
		total += ticket.Price()
	}

	return total
}

func revenueList(amounts map[string]float64) []Revenue {
	list := make([]Revenue, 0, len(amounts))
	for key, amount := range amounts {
		list = append(list, Revenue{Key: key, Amount: amount})
	}

	return list
}

// compareTrainNumbers orders numeric train numbers by value, then any
// non-numeric ones lexically after them.
func compareTrainNumbers(a string, b string) int {
	aNumber, aErr := strconv.Atoi(a)
	bNumber, bErr := strconv.Atoi(b)

	switch {
	case aErr == nil && bErr == nil:
		if c := cmp.Compare(aNumber, bNumber); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}
