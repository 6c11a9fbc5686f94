package models

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// MaxStopsAny is the sentinel selector value meaning the stops predicate
// always passes.
const MaxStopsAny = 3

// FareRecord is one observed quote for an origin/destination/date itinerary.
// Records are immutable once loaded; dates are ISO calendar dates as they
// appear on the wire.
type FareRecord struct {
	Origin              string  `json:"origin"`
	DestinationIata     string  `json:"destinationIata"`
	Airline             string  `json:"airline,omitempty"`
	OutboundDate        string  `json:"outboundDate"`
	ReturnDate          string  `json:"returnDate,omitempty"`
	TripLengthDays      int     `json:"tripLengthDays"`
	DaysBeforeDeparture int     `json:"daysBeforeDeparture"`
	Stops               int     `json:"stops"`
	MaxLayoverHours     float64 `json:"maxLayoverHours"`
	PriceEur            float64 `json:"priceEur"`
}

// Route returns the "ORIGIN-DEST" key used by the monthly dataset.
func (r *FareRecord) Route() string {
	return r.Origin + "-" + r.DestinationIata
}

// OutboundTime parses the outbound date. The zero time and false are
// returned for malformed dates; callers treat those as non-matching.
func (r *FareRecord) OutboundTime() (time.Time, bool) {
	t, err := time.Parse(dateLayout, r.OutboundDate)
	return t, err == nil
}

// Dataset is the in-memory fare dataset for one load. GeneratedAt is the
// ETL timestamp when present, empty otherwise.
type Dataset struct {
	GeneratedAt string
	Currency    string
	Records     []FareRecord
}

// FilterCriteria holds the user-selected filter values for one analysis run.
// It is a transient value object, rebuilt on every request.
type FilterCriteria struct {
	Destination      string
	Origins          map[string]bool
	WindowStart      time.Time
	WindowEnd        time.Time
	TripLengthDays   int
	MaxStops         int
	MaxLayoverHours  float64
	ExcludedAirlines map[string]bool
}

// OriginAllowed reports whether the record origin is selected. An empty
// origin set matches nothing.
func (c *FilterCriteria) OriginAllowed(origin string) bool {
	return c.Origins[origin]
}

// AirlineExcluded is a case-insensitive membership test against the
// excluded-airline set.
func (c *FilterCriteria) AirlineExcluded(airline string) bool {
	if len(c.ExcludedAirlines) == 0 {
		return false
	}
	return c.ExcludedAirlines[strings.ToLower(strings.TrimSpace(airline))]
}
