package analysis

import "faredash/internal/models"

// tripLengthTolerance is the allowed deviation, in days, from the desired
// trip length.
const tripLengthTolerance = 2

// Filter returns the subset of records satisfying every criterion, in input
// order. It never mutates its input.
func Filter(records []models.FareRecord, c models.FilterCriteria) []models.FareRecord {
	out := make([]models.FareRecord, 0, len(records))
	for i := range records {
		if matches(&records[i], &c) {
			out = append(out, records[i])
		}
	}
	return out
}

func matches(r *models.FareRecord, c *models.FilterCriteria) bool {
	if r.DestinationIata != c.Destination {
		return false
	}
	if !c.OriginAllowed(r.Origin) {
		return false
	}

	outbound, ok := r.OutboundTime()
	if !ok || outbound.Before(c.WindowStart) || outbound.After(c.WindowEnd) {
		return false
	}

	diff := r.TripLengthDays - c.TripLengthDays
	if diff < 0 {
		diff = -diff
	}
	if diff > tripLengthTolerance {
		return false
	}

	// MaxStopsAny disables the stops predicate entirely.
	if c.MaxStops != models.MaxStopsAny && r.Stops > c.MaxStops {
		return false
	}
	if r.MaxLayoverHours > c.MaxLayoverHours {
		return false
	}
	if c.AirlineExcluded(r.Airline) {
		return false
	}

	return true
}
