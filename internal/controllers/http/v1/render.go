package http

import (
	"bytes"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"

	"faredash/internal/models"
)

// GetBuyTimingChart godoc
// @Summary Buy-timing chart as PNG
// @Description Server-rendered line chart of average price by days before departure; same criteria parameters as /api/analysis
// @Tags Charts
// @Produce image/png
// @Param dest query string true "Destination IATA code"
// @Success 200 {string} binary
// @Failure 400 {object} ErrorResponse
// @Router /charts/buy-timing.png [get]
func (r *routes) handleBuyTimingChart(c *fiber.Ctx) error {
	criteria, err := r.parseCriteria(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	result := r.service.Run(*criteria)
	series := result.BuyTiming
	series.Name = "Avg price (EUR)"

	png, err := renderLinePNG("Average price by days before departure", series)
	if err != nil {
		r.l.Debug("buy-timing chart skipped", map[string]any{"reason": err.Error()})
		return c.SendStatus(fiber.StatusNoContent)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// GetCalendarChart godoc
// @Summary Calendar comparison chart as PNG
// @Tags Charts
// @Produce image/png
// @Param route query string true "Route key" example(AMS-LIS)
// @Param year query integer false "Year (default current)"
// @Success 200 {string} binary
// @Failure 400 {object} ErrorResponse
// @Router /charts/calendar.png [get]
func (r *routes) handleCalendarChart(c *fiber.Ctx) error {
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

	png, err := renderLinePNG("Lowest fare calendar "+route, r.service.Calendar(route, year)...)
	if err != nil {
		r.l.Debug("calendar chart skipped", map[string]any{"route": route, "reason": err.Error()})
		return c.SendStatus(fiber.StatusNoContent)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// renderLinePNG draws the series as a line chart. Nil values become gaps by
// dropping the point; go-chart draws straight between the neighbours, which
// matches how the dashboard renderer bridges gaps.
func renderLinePNG(title string, series ...models.ChartSeries) ([]byte, error) {
	var out []chart.Series
	var labels []string

	for _, s := range series {
		if labels == nil && len(s.Labels) > 0 {
			labels = s.Labels
		}

		var xs, ys []float64
		for i, v := range s.Values {
			if v == nil {
				continue
			}
			xs = append(xs, float64(i))
			ys = append(ys, *v)
		}
		if len(xs) < 2 {
			// go-chart needs two points to draw a line
			continue
		}
		out = append(out, chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys})
	}

	if len(out) == 0 {
		return nil, errors.New("not enough data points to render")
	}

	ch := chart.Chart{
		Title:      title,
		Width:      1000,
		Height:     420,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      chart.XAxis{Ticks: axisTicks(labels)},
		Series:     out,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "render chart")
	}
	return buf.Bytes(), nil
}

// axisTicks thins the label sequence to at most a dozen ticks.
func axisTicks(labels []string) []chart.Tick {
	if len(labels) == 0 {
		return nil
	}
	step := len(labels) / 12
	if step < 1 {
		step = 1
	}
	var ticks []chart.Tick
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	return ticks
}
