package passenger

import (
	"math/rand"
	"time"
)

type GeneratorConfig struct {
	MinBatch int
	MaxBatch int

	WagonTypes         []string
	Amenities          []string
	BeddingProbability float64
}

// Generator produces randomised passengers for a station. All randomness
// comes from the supplied source so a fixed seed gives a fixed stream.
type Generator struct {
	config GeneratorConfig
	rand   *rand.Rand
}

func NewGenerator(config GeneratorConfig, source *rand.Rand) *Generator {
	if config.MaxBatch < config.MinBatch {
		config.MaxBatch = config.MinBatch
	}

	return &Generator{
		config: config,
		rand:   source,
	}
}

// Batch generates passengers queued at origin, each bound for one of the
// other stations. Nothing is generated when origin is the only station.
func (g *Generator) Batch(origin string, stations []string, travelDate time.Time) []*Passenger {
	var destinations []string
	for _, station := range stations {
		if station != origin {
			destinations = append(destinations, station)
		}
	}
	if len(destinations) == 0 {
		return nil
	}

	size := g.config.MinBatch + g.rand.Intn(g.config.MaxBatch-g.config.MinBatch+1)
	batch := make([]*Passenger, 0, size)

	for i := 0; i < size; i++ {
		destination := destinations[g.rand.Intn(len(destinations))]
		batch = append(batch, New(destination, travelDate, g.preferences()))
	}

	return batch
}

func (g *Generator) preferences() Preferences {
	preferences := Preferences{}

	if len(g.config.WagonTypes) > 0 {
		preferences.WagonType = g.config.WagonTypes[g.rand.Intn(len(g.config.WagonTypes))]
	}

	sampleSize := g.rand.Intn(len(g.config.Amenities) + 1)
	for _, index := range g.rand.Perm(len(g.config.Amenities))[:sampleSize] {
		preferences.Amenities = append(preferences.Amenities, g.config.Amenities[index])
	}

	preferences.Bedding = g.rand.Float64() < g.config.BeddingProbability

	return preferences
}
