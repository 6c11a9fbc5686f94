package analysis

import (
	"math"

	"faredash/internal/models"
)

// groupBy buckets records by the extracted key. Records keep their input
// order within each group; displayed order is imposed by each consumer.
func groupBy[K comparable](records []models.FareRecord, key func(*models.FareRecord) K) map[K][]models.FareRecord {
	groups := make(map[K][]models.FareRecord)
	for i := range records {
		k := key(&records[i])
		groups[k] = append(groups[k], records[i])
	}
	return groups
}

// mean averages the extracted field. The mean of zero records is 0.
func mean(records []models.FareRecord, field func(*models.FareRecord) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for i := range records {
		sum += field(&records[i])
	}
	return sum / float64(len(records))
}

// roundPrice rounds to a whole amount for display.
func roundPrice(v float64) float64 {
	return math.Round(v)
}

// round1 rounds to one decimal, used for stops and layover averages.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func price(r *models.FareRecord) float64 { return r.PriceEur }
