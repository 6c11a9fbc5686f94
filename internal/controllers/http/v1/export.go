package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jszwec/csvutil"
)

// ExportAirlines godoc
// @Summary Airline summary as CSV
// @Description Same criteria parameters as /api/analysis, table rows encoded as CSV
// @Tags Export
// @Produce text/csv
// @Param dest query string true "Destination IATA code"
// @Success 200 {string} string
// @Failure 400 {object} ErrorResponse
// @Router /api/export/airlines.csv [get]
func (r *routes) handleExportAirlines(c *fiber.Ctx) error {
	criteria, err := r.parseCriteria(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	result := r.service.Run(*criteria)
	return r.sendCSV(c, "airlines.csv", result.Airlines)
}

// ExportItineraries godoc
// @Summary Itinerary table as CSV
// @Description Same criteria parameters as /api/analysis, table rows encoded as CSV
// @Tags Export
// @Produce text/csv
// @Param dest query string true "Destination IATA code"
// @Success 200 {string} string
// @Failure 400 {object} ErrorResponse
// @Router /api/export/itineraries.csv [get]
func (r *routes) handleExportItineraries(c *fiber.Ctx) error {
	criteria, err := r.parseCriteria(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	result := r.service.Run(*criteria)
	return r.sendCSV(c, "itineraries.csv", result.Itineraries)
}

func (r *routes) sendCSV(c *fiber.Ctx, filename string, rows any) error {
	data, err := csvutil.Marshal(rows)
	if err != nil {
		r.l.Error(err, map[string]any{"filename": filename})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Failed to encode CSV"})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
