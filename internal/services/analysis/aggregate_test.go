package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"faredash/internal/models"
)

func TestMean_EmptyIsZero(t *testing.T) {
	// Deliberate policy: the average of no records is 0, never NaN.
	assert.Equal(t, 0.0, mean(nil, price))
	assert.Equal(t, 0.0, mean([]models.FareRecord{}, price))
}

func TestMean(t *testing.T) {
	records := []models.FareRecord{
		{PriceEur: 100},
		{PriceEur: 150},
		{PriceEur: 110},
	}
	assert.InDelta(t, 120.0, mean(records, price), 1e-9)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 120.0, roundPrice(119.5))
	assert.Equal(t, 119.0, roundPrice(119.4))
	assert.Equal(t, 1.3, round1(1.25))
	assert.Equal(t, 0.7, round1(0.66))
}

func TestGroupBy_KeepsInputOrderWithinGroups(t *testing.T) {
	records := []models.FareRecord{
		{Airline: "TAP", PriceEur: 1},
		{Airline: "KLM", PriceEur: 2},
		{Airline: "TAP", PriceEur: 3},
	}

	groups := groupBy(records, func(r *models.FareRecord) string { return r.Airline })

	assert.Len(t, groups, 2)
	assert.Equal(t, []float64{1, 3}, []float64{groups["TAP"][0].PriceEur, groups["TAP"][1].PriceEur})
}
