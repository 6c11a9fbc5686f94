package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"faredash/config"
	"faredash/internal/models"
)

// AnalysisResponse is one full dashboard recompute.
type AnalysisResponse struct {
	GeneratedAt string                `json:"generatedAt,omitempty"`
	Matches     int                   `json:"matches"`
	BuyTiming   models.ChartSeries    `json:"buyTiming"`
	Airlines    []models.AirlineRow   `json:"airlines"`
	Itineraries []models.ItineraryRow `json:"itineraries"`
}

// CalendarResponse carries the current-year calendar series, plus the prior
// reference year when present in the data.
type CalendarResponse struct {
	Route  string               `json:"route"`
	Year   int                  `json:"year"`
	Series []models.ChartSeries `json:"series"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: dest"`
}

// GetAnalysis godoc
// @Summary Run the fare analysis
// @Description Filters the fare dataset by the given criteria and returns the buy-timing series, airline summary and itinerary table
// @Tags Analysis
// @Produce json
// @Param dest query string true "Destination IATA code" example(LIS)
// @Param origins query string false "Comma-separated origin codes; empty selects nothing" example(AMS,EIN)
// @Param start query string false "Window start date (YYYY-MM-DD, default today)"
// @Param tripLength query integer false "Desired trip length in days (default 14, matched with a 2-day tolerance)"
// @Param maxStops query integer false "Maximum stops 0-3; 3 means any" minimum(0) maximum(3)
// @Param maxLayover query number false "Maximum layover hours (default 24)"
// @Param exclude query string false "Comma-separated excluded airlines (case-insensitive)"
// @Success 200 {object} AnalysisResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/analysis [get]
func (r *routes) handleAnalysis(c *fiber.Ctx) error {
	criteria, err := r.parseCriteria(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	result := r.service.Run(*criteria)

	return c.JSON(AnalysisResponse{
		GeneratedAt: result.GeneratedAt,
		Matches:     result.Matches,
		BuyTiming:   result.BuyTiming,
		Airlines:    result.Airlines,
		Itineraries: result.Itineraries,
	})
}

// GetCalendar godoc
// @Summary Monthly lowest-fare calendar
// @Description Returns the 48-bucket calendar series for a route and year, with the prior year alongside when available
// @Tags Analysis
// @Produce json
// @Param route query string true "Route key" example(AMS-LIS)
// @Param year query integer false "Year (default current)"
// @Success 200 {object} CalendarResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/calendar [get]
func (r *routes) handleCalendar(c *fiber.Ctx) error {
	route := c.Query("route")
	if route == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Missing required parameter: route"})
	}

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid year"})
		}
		year = parsed
	}

	return c.JSON(CalendarResponse{
		Route:  route,
		Year:   year,
		Series: r.service.Calendar(route, year),
	})
}

// GetOverview godoc
// @Summary Route overview series
// @Description Returns the per-route daily lowest-fare series over the union of observed dates
// @Tags Analysis
// @Produce json
// @Success 200 {object} analysis.OverviewSeries
// @Router /api/overview [get]
func (r *routes) handleOverview(c *fiber.Ctx) error {
	return c.JSON(r.service.Overview())
}

// GetDestinations godoc
// @Summary Destination lookup table
// @Description Returns the country/city/IATA rows backing the destination selector
// @Tags Analysis
// @Produce json
// @Success 200 {array} config.Destination
// @Router /api/destinations [get]
func (r *routes) handleDestinations(c *fiber.Ctx) error {
	destinations := r.cfg.Destinations
	if destinations == nil {
		destinations = []config.Destination{}
	}
	return c.JSON(destinations)
}

// PostRefresh godoc
// @Summary Reload the datasets
// @Tags Analysis
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/refresh [post]
func (r *routes) handleRefresh(c *fiber.Ctx) error {
	r.service.Refresh(c.Context())
	return c.JSON(fiber.Map{"status": "ok"})
}

// parseCriteria builds the filter criteria from query parameters and
// configured defaults. An origins parameter that is present but empty
// selects no origins, which filters everything out; that is the literal
// selection, not a fallback.
func (r *routes) parseCriteria(c *fiber.Ctx) (*models.FilterCriteria, error) {
	dest := c.Query("dest")
	if dest == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Missing required parameter: dest")
	}

	origins := map[string]bool{}
	if c.Request().URI().QueryArgs().Has("origins") {
		for _, o := range strings.Split(c.Query("origins"), ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins[strings.ToUpper(o)] = true
			}
		}
	} else {
		for _, o := range r.cfg.Origins {
			origins[o] = true
		}
	}

	windowStart := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid start date format, expected YYYY-MM-DD")
		}
		windowStart = parsed
	}

	windowEnd, err := r.cfg.SeasonEnd()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid season end configuration")
	}

	tripLength := 14
	if raw := c.Query("tripLength"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid tripLength, expected a positive integer")
		}
		tripLength = parsed
	}

	maxStops := models.MaxStopsAny
	if raw := c.Query("maxStops"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > models.MaxStopsAny {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid maxStops, expected 0-3")
		}
		maxStops = parsed
	}

	maxLayover := 24.0
	if raw := c.Query("maxLayover"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid maxLayover, expected a non-negative number")
		}
		maxLayover = parsed
	}

	excluded := map[string]bool{}
	for _, name := range strings.Split(c.Query("exclude"), ",") {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			excluded[name] = true
		}
	}

	return &models.FilterCriteria{
		Destination:      dest,
		Origins:          origins,
		WindowStart:      windowStart,
		WindowEnd:        windowEnd,
		TripLengthDays:   tripLength,
		MaxStops:         maxStops,
		MaxLayoverHours:  maxLayover,
		ExcludedAirlines: excluded,
	}, nil
}
