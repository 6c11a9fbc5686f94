package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faredash/config"
	v1 "faredash/internal/controllers/http/v1"
	"faredash/internal/models"
	"faredash/internal/services/analysis"
	"faredash/pkg/logger"
)

// stubService implements the router's service interface.
type stubService struct {
	refreshed    int
	lastCriteria *models.FilterCriteria
	result       analysis.Result
	calendar     []models.ChartSeries
	overview     analysis.OverviewSeries
}

func (s *stubService) Refresh(ctx context.Context) { s.refreshed++ }

func (s *stubService) Run(c models.FilterCriteria) analysis.Result {
	s.lastCriteria = &c
	return s.result
}

func (s *stubService) Calendar(route string, year int) []models.ChartSeries {
	return s.calendar
}

func (s *stubService) Overview() analysis.OverviewSeries { return s.overview }

func newTestApp(service *stubService) *fiber.App {
	app := fiber.New()
	cfg := &config.Config{
		Origins: []string{"AMS", "EIN"},
		Season:  config.SeasonConfig{End: "2026-09-30"},
		Destinations: []config.Destination{
			{Country: "Portugal", City: "Lisbon", Iata: "LIS"},
		},
	}
	v1.NewRouter(app, service, cfg, logger.NewZapLogger("test-app", io.Discard))
	return app
}

func TestHandleAnalysis_MissingDest(t *testing.T) {
	app := newTestApp(&stubService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/analysis", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleAnalysis_Defaults(t *testing.T) {
	service := &stubService{}
	app := newTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/analysis?dest=LIS", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, service.lastCriteria)
	c := service.lastCriteria
	assert.Equal(t, "LIS", c.Destination)
	assert.Equal(t, map[string]bool{"AMS": true, "EIN": true}, c.Origins)
	assert.Equal(t, models.MaxStopsAny, c.MaxStops)
	assert.Equal(t, 24.0, c.MaxLayoverHours)
	assert.Equal(t, 14, c.TripLengthDays)
	assert.Equal(t, "2026-09-30", c.WindowEnd.Format("2006-01-02"))
}

func TestHandleAnalysis_EmptyOriginsParamSelectsNothing(t *testing.T) {
	service := &stubService{}
	app := newTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/analysis?dest=LIS&origins=", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, service.lastCriteria)
	assert.Empty(t, service.lastCriteria.Origins)
}

func TestHandleAnalysis_CriteriaParsing(t *testing.T) {
	service := &stubService{}
	app := newTestApp(service)

	url := "/api/analysis?dest=LIS&origins=ams&start=2026-07-15&tripLength=10&maxStops=1&maxLayover=6.5&exclude=Ryanair,%20Wizz%20Air"
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	c := service.lastCriteria
	require.NotNil(t, c)
	assert.Equal(t, map[string]bool{"AMS": true}, c.Origins)
	assert.Equal(t, "2026-07-15", c.WindowStart.Format("2006-01-02"))
	assert.Equal(t, 10, c.TripLengthDays)
	assert.Equal(t, 1, c.MaxStops)
	assert.Equal(t, 6.5, c.MaxLayoverHours)
	assert.Equal(t, map[string]bool{"ryanair": true, "wizz air": true}, c.ExcludedAirlines)
}

func TestHandleAnalysis_InvalidParams(t *testing.T) {
	app := newTestApp(&stubService{})

	for _, url := range []string{
		"/api/analysis?dest=LIS&start=20-07-2026",
		"/api/analysis?dest=LIS&tripLength=zero",
		"/api/analysis?dest=LIS&tripLength=-3",
		"/api/analysis?dest=LIS&maxStops=5",
		"/api/analysis?dest=LIS&maxLayover=-1",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, url)
	}
}

func TestHandleCalendar(t *testing.T) {
	service := &stubService{
		calendar: []models.ChartSeries{{Name: "2026"}},
	}
	app := newTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/calendar?route=AMS-LIS&year=2026", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body v1.CalendarResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "AMS-LIS", body.Route)
	assert.Equal(t, 2026, body.Year)
	require.Len(t, body.Series, 1)
}

func TestHandleCalendar_BadRequests(t *testing.T) {
	app := newTestApp(&stubService{})

	for _, url := range []string{
		"/api/calendar",
		"/api/calendar?route=AMS-LIS&year=lots",
		"/api/calendar?route=AMS-LIS&year=1800",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, url)
	}
}

func TestHandleDestinations(t *testing.T) {
	app := newTestApp(&stubService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/destinations", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []config.Destination
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "LIS", rows[0].Iata)
}

func TestHandleRefresh(t *testing.T) {
	service := &stubService{}
	app := newTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, service.refreshed)
}

func TestHandleExportAirlines(t *testing.T) {
	service := &stubService{
		result: analysis.Result{
			Airlines: []models.AirlineRow{
				{Airline: "KLM", AvgPriceEur: 110, AvgStops: 1.5, AvgLayoverHours: 3.5, Quotes: 2},
			},
		},
	}
	app := newTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/export/airlines.csv", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode) // dest still required

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/export/airlines.csv?dest=LIS", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "airline,avg_price_eur,avg_stops,avg_layover_hours,quotes")
	assert.Contains(t, string(body), "KLM,110,1.5,3.5,2")
}

func TestHandleExportItineraries(t *testing.T) {
	service := &stubService{
		result: analysis.Result{
			Itineraries: []models.ItineraryRow{
				{OutboundDate: "2026-07-20", ReturnDate: "2026-08-10", Origin: "AMS", Airline: "KLM", TripLengthDays: 21, Stops: 1, PriceEur: 95},
			},
		},
	}
	app := newTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/export/itineraries.csv?dest=LIS", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "outbound_date,return_date,origin,airline,trip_length_days,stops,price_eur")
	assert.Contains(t, string(body), "2026-07-20")
}

func TestHandleOverview(t *testing.T) {
	service := &stubService{
		overview: analysis.OverviewSeries{
			Labels: []string{"2026-07-01"},
			Routes: []models.ChartSeries{{Name: "AMS-LIS"}},
		},
	}
	app := newTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/overview", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body analysis.OverviewSeries
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"2026-07-01"}, body.Labels)
}
