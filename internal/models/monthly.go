package models

// WeekBucketsPerMonth is the fixed number of week-buckets a month is
// coarsened into for the calendar view.
const WeekBucketsPerMonth = 4

// PricePoint is one observed lowest fare.
type PricePoint struct {
	Price    *float64 `json:"price"`
	Currency string   `json:"currency,omitempty"`
}

// WeekBuckets holds the four per-month buckets. A nil entry means no fare
// was observed for that bucket.
type WeekBuckets [WeekBucketsPerMonth]*PricePoint

// CalendarYear maps two-digit month ("01".."12") to its week buckets.
type CalendarYear map[string]WeekBuckets

// MonthlyLowest is the canonical form of the monthly dataset. The source
// file carries two key spaces under each route: per-date entries feeding the
// route overview, and per-year calendars feeding the comparison chart. Both
// are kept here after decoding.
type MonthlyLowest struct {
	// Daily maps route -> ISO date -> lowest fare for that day.
	Daily map[string]map[string]PricePoint
	// Calendar maps route -> year ("2026") -> month buckets.
	Calendar map[string]map[string]CalendarYear
}

// HasYear reports top-level presence of a year for a route. This is the
// check that decides whether a reference-year series is emitted at all, as
// opposed to a present year with gaps.
func (m *MonthlyLowest) HasYear(route, year string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Calendar[route][year]
	return ok
}

// MonthBuckets returns the buckets for one route/year/month, and whether the
// month is present in the data.
func (m *MonthlyLowest) MonthBuckets(route, year, month string) (WeekBuckets, bool) {
	if m == nil {
		return WeekBuckets{}, false
	}
	buckets, ok := m.Calendar[route][year][month]
	return buckets, ok
}
