package kassa

import (
	"github.com/travigo/railsim/pkg/passenger"
	"github.com/travigo/railsim/pkg/wagon"
)

const (
	tvSurchargeRate    = 1.10
	phoneSurchargeRate = 1.05
)

// Fare prices a journey of distance in w for the given preferences.
//
// The order of the steps is fixed so totals are reproducible to the bit:
// the per-km base, then the coupe bedding surcharge, then the TV rate,
// then the phone rate. The conversion keeps the base from being fused
// with the surcharge addition.
func Fare(w *wagon.PassengerWagon, distance float64, preferences passenger.Preferences) float64 {
	price := float64(w.PricePerKM() * distance)

	if w.Type() == wagon.TypeCoupe && preferences.Bedding {
		price += w.BeddingSurcharge()
	}
	if preferences.WantsAmenity(passenger.AmenityTV) {
		price *= tvSurchargeRate
	}
	if preferences.WantsAmenity(passenger.AmenityPhone) {
		price *= phoneSurchargeRate
	}

	return price
}
