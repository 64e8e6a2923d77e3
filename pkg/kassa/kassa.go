// Package kassa is the booking engine. It matches a waiting passenger to
// the first compatible vacancy on a train about to leave for the
// passenger's destination, prices the journey and keeps the ledger of
// sales along with the count of denied requests.
//
// Matching is first-fit: trains are tried in fleet order and wagons in
// assembly order, and the first wagon with a free seat that satisfies the
// passenger's wagon type and amenity requests gets the passenger. There is
// no search for the cheapest or best fitting seat.
package kassa

import (
	"strings"

	"github.com/travigo/railsim/pkg/network"
	"github.com/travigo/railsim/pkg/passenger"
	"github.com/travigo/railsim/pkg/train"
	"github.com/travigo/railsim/pkg/wagon"
)

type Kassa struct {
	trains []*train.Train

	ledger []Ticket
	denied int
}

func New(trains []*train.Train) *Kassa {
	fleet := make([]*train.Train, len(trains))
	copy(fleet, trains)

	return &Kassa{
		trains: fleet,
	}
}

func (k *Kassa) Trains() []*train.Train {
	trains := make([]*train.Train, len(k.trains))
	copy(trains, k.trains)

	return trains
}

// AttemptSale tries to seat p on a train at origin bound for p's
// destination. A false result is a denial: the passenger stays where they
// are and the only changes are the denial counter and p's denial reason.
func (k *Kassa) AttemptSale(p *passenger.Passenger, origin *network.Station) (Ticket, bool) {
	candidates := k.candidateTrains(p.Destination(), origin)
	if len(candidates) == 0 {
		k.deny(p, passenger.DenialReasonNoTrain)
		return Ticket{}, false
	}

	preferences := p.Preferences()
	reason := passenger.DenialReasonNone

	for _, candidate := range candidates {
		for _, w := range candidate.Wagons() {
			passengerWagon, ok := w.(*wagon.PassengerWagon)
			if !ok || passengerWagon.IsFull() {
				continue
			}

			if mismatch := checkPreferences(passengerWagon, preferences); mismatch != passenger.DenialReasonNone {
				if reason == passenger.DenialReasonNone {
					reason = mismatch
				}
				continue
			}

			if !passengerWagon.Board(p) {
				continue
			}

			distance := network.Distance(candidate.CurrentStation(), candidate.TargetStation())
			ticket := Ticket{
				train:     candidate,
				wagon:     passengerWagon,
				passenger: p,
				price:     Fare(passengerWagon, distance, preferences),
				departure: candidate.CurrentStation(),
			}
			k.ledger = append(k.ledger, ticket)

			return ticket, true
		}
	}

	if reason == passenger.DenialReasonNone {
		reason = passenger.DenialReasonNoVacancy
	}
	k.deny(p, reason)

	return Ticket{}, false
}

func (k *Kassa) candidateTrains(destination string, origin *network.Station) []*train.Train {
	var candidates []*train.Train

	for _, t := range k.trains {
		target := t.TargetStation()
		if target == nil {
			continue
		}
		if t.CurrentStation().Name() == origin.Name() && target.Name() == destination {
			candidates = append(candidates, t)
		}
	}

	return candidates
}

func checkPreferences(w *wagon.PassengerWagon, preferences passenger.Preferences) passenger.DenialReason {
	if preferences.WagonType != "" && !strings.EqualFold(preferences.WagonType, string(w.Type())) {
		return passenger.DenialReasonWagonTypeMismatch
	}

	for _, amenity := range preferences.Amenities {
		if !w.HasAmenity(amenity) {
			return passenger.DenialReasonMissingAmenity
		}
	}

	return passenger.DenialReasonNone
}

func (k *Kassa) deny(p *passenger.Passenger, reason passenger.DenialReason) {
	k.denied++
	p.Deny(reason)
}

// Ledger returns the tickets sold so far, oldest first.
func (k *Kassa) Ledger() []Ticket {
	ledger := make([]Ticket, len(k.ledger))
	copy(ledger, k.ledger)

	return ledger
}

func (k *Kassa) Sales() int {
	return len(k.ledger)
}

func (k *Kassa) DeniedCount() int {
	return k.denied
}
