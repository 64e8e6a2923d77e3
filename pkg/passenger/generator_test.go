package passenger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGeneratorConfig = GeneratorConfig{
	MinBatch:           5,
	MaxBatch:           10,
	WagonTypes:         []string{"seated", "platskart", "coupe"},
	Amenities:          []string{AmenityTV, AmenityPhone},
	BeddingProbability: 0.3,
}

func TestGeneratorBatch(t *testing.T) {
	generator := NewGenerator(testGeneratorConfig, rand.New(rand.NewSource(42)))
	travelDate := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	stations := []string{"A", "B", "C"}

	for i := 0; i < 50; i++ {
		batch := generator.Batch("A", stations, travelDate)

		require.GreaterOrEqual(t, len(batch), 5)
		require.LessOrEqual(t, len(batch), 10)

		for _, p := range batch {
			assert.NotEqual(t, "A", p.Destination())
			assert.Contains(t, []string{"B", "C"}, p.Destination())
			assert.Contains(t, testGeneratorConfig.WagonTypes, p.Preferences().WagonType)
			assert.LessOrEqual(t, len(p.Preferences().Amenities), 2)
			assert.Equal(t, travelDate, p.TravelDate())
			assert.Equal(t, DenialReasonNone, p.DeniedReason())
		}
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	first := NewGenerator(testGeneratorConfig, rand.New(rand.NewSource(7)))
	second := NewGenerator(testGeneratorConfig, rand.New(rand.NewSource(7)))
	stations := []string{"A", "B", "C", "D"}

	a := first.Batch("B", stations, time.Time{})
	b := second.Batch("B", stations, time.Time{})

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Destination(), b[i].Destination())
		assert.Equal(t, a[i].Preferences(), b[i].Preferences())
	}
}

func TestGeneratorSingleStation(t *testing.T) {
	generator := NewGenerator(testGeneratorConfig, rand.New(rand.NewSource(1)))

	assert.Empty(t, generator.Batch("A", []string{"A"}, time.Time{}))
}

func TestPassengerPreferencesAreCopied(t *testing.T) {
	amenities := []string{AmenityTV}
	p := New("B", time.Time{}, Preferences{WagonType: "seated", Amenities: amenities})

	amenities[0] = "changed"
	assert.True(t, p.Preferences().WantsAmenity(AmenityTV))

	preferences := p.Preferences()
	preferences.Amenities[0] = "changed"
	assert.True(t, p.Preferences().WantsAmenity(AmenityTV))
}

func TestPassengerDeny(t *testing.T) {
	p := New("B", time.Time{}, Preferences{})

	p.Deny(DenialReasonNoTrain)
	assert.Equal(t, DenialReasonNoTrain, p.DeniedReason())

	p.Deny(DenialReasonNoVacancy)
	assert.Equal(t, DenialReasonNoVacancy, p.DeniedReason())
}
