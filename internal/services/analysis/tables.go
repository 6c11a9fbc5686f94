package analysis

import (
	"sort"

	"faredash/internal/models"
)

// ItineraryRows picks the cheapest itinerary per outbound date. Inside a
// date group the records get a stable ascending price sort, so equal prices
// keep their original relative order and the earliest input record wins the
// tie. Rows come back sorted ascending by date.
func ItineraryRows(records []models.FareRecord) []models.ItineraryRow {
	byDate := groupBy(records, func(r *models.FareRecord) string { return r.OutboundDate })

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := make([]models.ItineraryRow, 0, len(dates))
	for _, date := range dates {
		group := byDate[date]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].PriceEur < group[j].PriceEur
		})
		best := group[0]
		rows = append(rows, models.ItineraryRow{
			OutboundDate:   best.OutboundDate,
			ReturnDate:     best.ReturnDate,
			Origin:         best.Origin,
			Airline:        best.Airline,
			TripLengthDays: best.TripLengthDays,
			Stops:          best.Stops,
			PriceEur:       best.PriceEur,
		})
	}
	return rows
}

// AirlineRows summarizes the filtered set per airline. A missing airline is
// its own bucket (empty name). Rows come back sorted ascending by average
// price, airline name breaking ties.
func AirlineRows(records []models.FareRecord) []models.AirlineRow {
	byAirline := groupBy(records, func(r *models.FareRecord) string { return r.Airline })

	names := make([]string, 0, len(byAirline))
	for name := range byAirline {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]models.AirlineRow, 0, len(names))
	for _, name := range names {
		group := byAirline[name]
		rows = append(rows, models.AirlineRow{
			Airline:     name,
			AvgPriceEur: int(roundPrice(mean(group, price))),
			AvgStops: round1(mean(group, func(r *models.FareRecord) float64 {
				return float64(r.Stops)
			})),
			AvgLayoverHours: round1(mean(group, func(r *models.FareRecord) float64 {
				return r.MaxLayoverHours
			})),
			Quotes: len(group),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgPriceEur < rows[j].AvgPriceEur
	})
	return rows
}
