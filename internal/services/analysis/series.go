package analysis

import (
	"fmt"
	"sort"
	"strconv"

	"faredash/internal/models"
)

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// BuyTimingSeries groups records by days-before-departure and returns one
// point per observed key: labels sorted ascending numerically, values the
// rounded average price. Absent keys simply do not appear; the day range is
// not assumed contiguous.
func BuyTimingSeries(records []models.FareRecord) models.ChartSeries {
	groups := groupBy(records, func(r *models.FareRecord) int { return r.DaysBeforeDeparture })

	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	s := models.ChartSeries{
		Labels: make([]string, 0, len(keys)),
		Values: make([]*float64, 0, len(keys)),
	}
	for _, k := range keys {
		avg := roundPrice(mean(groups[k], price))
		s.Labels = append(s.Labels, strconv.Itoa(k))
		s.Values = append(s.Values, &avg)
	}
	return s
}

// MonthlyCalendarSeries flattens one route/year of the monthly dataset into
// the canonical Jan W1 .. Dec W4 order. The output is always exactly 48
// labels and 48 values; months missing from the data contribute four nils.
func MonthlyCalendarSeries(m *models.MonthlyLowest, route, year string) models.ChartSeries {
	n := len(monthNames) * models.WeekBucketsPerMonth
	s := models.ChartSeries{
		Name:   year,
		Labels: make([]string, 0, n),
		Values: make([]*float64, 0, n),
	}

	for i, name := range monthNames {
		month := fmt.Sprintf("%02d", i+1)
		buckets, _ := m.MonthBuckets(route, year, month)
		for w := 0; w < models.WeekBucketsPerMonth; w++ {
			s.Labels = append(s.Labels, fmt.Sprintf("%s W%d", name, w+1))
			if p := buckets[w]; p != nil && p.Price != nil {
				v := *p.Price
				s.Values = append(s.Values, &v)
			} else {
				s.Values = append(s.Values, nil)
			}
		}
	}
	return s
}

// CalendarComparison returns the current-year series, plus the prior
// reference year only when that year exists for the route at all. A prior
// year with gaps is included; a prior year absent from the data is omitted
// rather than emitted as all nils.
func CalendarComparison(m *models.MonthlyLowest, route string, year int) []models.ChartSeries {
	series := []models.ChartSeries{
		MonthlyCalendarSeries(m, route, strconv.Itoa(year)),
	}
	prior := strconv.Itoa(year - 1)
	if m.HasYear(route, prior) {
		series = append(series, MonthlyCalendarSeries(m, route, prior))
	}
	return series
}

// OverviewSeries is the route-overview chart: one daily series per route
// over the union of observed dates.
type OverviewSeries struct {
	Labels []string             `json:"labels"`
	Routes []models.ChartSeries `json:"routes"`
}

// RouteOverview aligns every route's daily lowest fares on a shared sorted
// date axis, with nil where a route has no fare for a date.
func RouteOverview(m *models.MonthlyLowest) OverviewSeries {
	out := OverviewSeries{Labels: []string{}, Routes: []models.ChartSeries{}}
	if m == nil {
		return out
	}

	dateSet := map[string]bool{}
	routes := make([]string, 0, len(m.Daily))
	for route, days := range m.Daily {
		routes = append(routes, route)
		for date := range days {
			dateSet[date] = true
		}
	}
	sort.Strings(routes)

	for date := range dateSet {
		out.Labels = append(out.Labels, date)
	}
	sort.Strings(out.Labels)

	for _, route := range routes {
		s := models.ChartSeries{
			Name:   route,
			Values: make([]*float64, 0, len(out.Labels)),
		}
		for _, date := range out.Labels {
			if p, ok := m.Daily[route][date]; ok && p.Price != nil {
				v := *p.Price
				s.Values = append(s.Values, &v)
			} else {
				s.Values = append(s.Values, nil)
			}
		}
		out.Routes = append(out.Routes, s)
	}
	return out
}
