package http

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"faredash/config"
	"faredash/internal/models"
	"faredash/internal/services/analysis"
	"faredash/pkg/logger"
)

// analysisService is the slice of the analysis service the handlers need.
type analysisService interface {
	Refresh(ctx context.Context)
	Run(criteria models.FilterCriteria) analysis.Result
	Calendar(route string, year int) []models.ChartSeries
	Overview() analysis.OverviewSeries
}

type routes struct {
	service analysisService
	cfg     *config.Config
	l       *logger.Logger
}

func NewRouter(
	app *fiber.App,
	service analysisService,
	cfg *config.Config,
	l *logger.Logger,
) {
	r := &routes{
		service: service,
		cfg:     cfg,
		l:       l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		swaggerData, err := os.ReadFile("docs/swagger.json")
		if err != nil {
			return c.Status(fiber.ErrInternalServerError.Code).JSON(ErrorResponse{Error: "Failed to read Swagger documentation"})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(swaggerData)
	})
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	api := app.Group("/api")
	api.Get("/analysis", r.handleAnalysis)
	api.Get("/calendar", r.handleCalendar)
	api.Get("/overview", r.handleOverview)
	api.Get("/destinations", r.handleDestinations)
	api.Get("/export/airlines.csv", r.handleExportAirlines)
	api.Get("/export/itineraries.csv", r.handleExportItineraries)
	api.Post("/refresh", r.handleRefresh)

	app.Get("/charts/buy-timing.png", r.handleBuyTimingChart)
	app.Get("/charts/calendar.png", r.handleCalendarChart)
}
