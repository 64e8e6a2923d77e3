package passenger

import (
	"time"

	"golang.org/x/exp/slices"
)

const (
	AmenityTV    = "TV"
	AmenityPhone = "phone"
)

type DenialReason string

const (
	DenialReasonNone              DenialReason = ""
	DenialReasonNoTrain           DenialReason = "no-train"
	DenialReasonWagonTypeMismatch DenialReason = "wagon-type-mismatch"
	DenialReasonMissingAmenity    DenialReason = "missing-amenity"
	DenialReasonNoVacancy         DenialReason = "no-vacancy"
)

// Preferences is what a passenger asks of the wagon they travel in.
// An empty WagonType accepts any passenger wagon.
type Preferences struct {
	WagonType string
	Amenities []string
	Bedding   bool
}

func (p Preferences) WantsAmenity(amenity string) bool {
	return slices.Contains(p.Amenities, amenity)
}

type Passenger struct {
	destination string
	travelDate  time.Time
	preferences Preferences

	deniedReason DenialReason
}

func New(destination string, travelDate time.Time, preferences Preferences) *Passenger {
	preferences.Amenities = slices.Clone(preferences.Amenities)

	return &Passenger{
		destination: destination,
		travelDate:  travelDate,
		preferences: preferences,
	}
}

func (p *Passenger) Destination() string {
	return p.destination
}

func (p *Passenger) TravelDate() time.Time {
	return p.travelDate
}

func (p *Passenger) Preferences() Preferences {
	preferences := p.preferences
	preferences.Amenities = slices.Clone(p.preferences.Amenities)

	return preferences
}

func (p *Passenger) DeniedReason() DenialReason {
	return p.deniedReason
}

// Deny records why the latest sale attempt for this passenger failed.
func (p *Passenger) Deny(reason DenialReason) {
	p.deniedReason = reason
}
