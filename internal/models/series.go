package models

// ChartSeries is an ordered label sequence paired 1:1 with nullable values.
// Gaps stay nil; bridging them is the renderer's job.
type ChartSeries struct {
	Name   string     `json:"name,omitempty"`
	Labels []string   `json:"labels"`
	Values []*float64 `json:"values"`
}

// AirlineRow is one row of the airline summary table.
type AirlineRow struct {
	Airline         string  `json:"airline" csv:"airline"`
	AvgPriceEur     int     `json:"avgPriceEur" csv:"avg_price_eur"`
	AvgStops        float64 `json:"avgStops" csv:"avg_stops"`
	AvgLayoverHours float64 `json:"avgLayoverHours" csv:"avg_layover_hours"`
	Quotes          int     `json:"quotes" csv:"quotes"`
}

// ItineraryRow is the cheapest itinerary for one outbound date.
type ItineraryRow struct {
	OutboundDate   string  `json:"outboundDate" csv:"outbound_date"`
	ReturnDate     string  `json:"returnDate,omitempty" csv:"return_date"`
	Origin         string  `json:"origin" csv:"origin"`
	Airline        string  `json:"airline,omitempty" csv:"airline"`
	TripLengthDays int     `json:"tripLengthDays" csv:"trip_length_days"`
	Stops          int     `json:"stops" csv:"stops"`
	PriceEur       float64 `json:"priceEur" csv:"price_eur"`
}
