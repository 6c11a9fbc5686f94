package repositories

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"faredash/internal/models"
	"faredash/pkg/logger"
)

// StaticJSONRepository fetches the dashboard datasets from static file
// hosting. No caching headers are honored; every fetch is a full reload.
type StaticJSONRepository struct {
	baseURL     string
	samplePath  string
	monthlyPath string
	httpClient  HTTPClient
	l           *logger.Logger
}

func NewStaticJSONRepository(baseURL, samplePath, monthlyPath string, l *logger.Logger, httpClient HTTPClient) *StaticJSONRepository {
	return &StaticJSONRepository{
		baseURL:     strings.TrimRight(baseURL, "/"),
		samplePath:  samplePath,
		monthlyPath: monthlyPath,
		httpClient:  httpClient,
		l:           l,
	}
}

func (r *StaticJSONRepository) FetchRecords(ctx context.Context) (*models.Dataset, error) {
	body, err := r.get(ctx, r.samplePath)
	if err != nil {
		return nil, err
	}
	return decodeDataset(body)
}

func (r *StaticJSONRepository) FetchMonthlyLowest(ctx context.Context) (*models.MonthlyLowest, error) {
	body, err := r.get(ctx, r.monthlyPath)
	if err != nil {
		return nil, err
	}
	return decodeMonthlyLowest(body)
}

func (r *StaticJSONRepository) get(ctx context.Context, path string) ([]byte, error) {
	url := r.baseURL + "/" + strings.TrimLeft(path, "/")

	r.l.Debug("fetching dataset", map[string]any{"url": url})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	return body, nil
}

// decodeDataset accepts either a bare array of records or the wrapped
// payload the ETL writes ({generated_at, currency, records}).
func decodeDataset(body []byte) (*models.Dataset, error) {
	var records []models.FareRecord
	if err := json.Unmarshal(body, &records); err == nil {
		return &models.Dataset{Records: records}, nil
	}

	var wrapped struct {
		GeneratedAt string              `json:"generated_at"`
		Currency    string              `json:"currency"`
		Records     []models.FareRecord `json:"records"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, errors.Wrap(err, "decode sample data")
	}

	return &models.Dataset{
		GeneratedAt: wrapped.GeneratedAt,
		Currency:    wrapped.Currency,
		Records:     wrapped.Records,
	}, nil
}

// decodeMonthlyLowest reads the monthly dataset. Under each route, keys are
// either calendar dates (per-day lowest fare) or years (per-month week
// buckets); both key spaces may appear in the same file. Calendars missing
// for a route/year that has daily data are derived from the daily entries.
func decodeMonthlyLowest(body []byte) (*models.MonthlyLowest, error) {
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "decode monthly lowest")
	}

	out := &models.MonthlyLowest{
		Daily:    map[string]map[string]models.PricePoint{},
		Calendar: map[string]map[string]models.CalendarYear{},
	}

	for route, entries := range raw {
		for key, rawVal := range entries {
			switch {
			case isISODate(key):
				var point models.PricePoint
				if err := json.Unmarshal(rawVal, &point); err != nil {
					continue
				}
				if out.Daily[route] == nil {
					out.Daily[route] = map[string]models.PricePoint{}
				}
				out.Daily[route][key] = point

			case isYear(key):
				var months map[string][]*models.PricePoint
				if err := json.Unmarshal(rawVal, &months); err != nil {
					continue
				}
				year := models.CalendarYear{}
				for month, points := range months {
					year[month] = normalizeBuckets(points)
				}
				if out.Calendar[route] == nil {
					out.Calendar[route] = map[string]models.CalendarYear{}
				}
				out.Calendar[route][key] = year
			}
		}
	}

	deriveCalendars(out)

	return out, nil
}

// normalizeBuckets pads or truncates to the fixed bucket count so the
// exactly-four invariant holds regardless of what the file carries.
func normalizeBuckets(points []*models.PricePoint) models.WeekBuckets {
	var buckets models.WeekBuckets
	for i := 0; i < models.WeekBucketsPerMonth && i < len(points); i++ {
		buckets[i] = points[i]
	}
	return buckets
}

// deriveCalendars fills week buckets from daily entries for route/years the
// file has no calendar for. Calendars present in the file win.
func deriveCalendars(m *models.MonthlyLowest) {
	fromFile := map[string]map[string]bool{}
	for route, years := range m.Calendar {
		fromFile[route] = map[string]bool{}
		for year := range years {
			fromFile[route][year] = true
		}
	}

	for route, days := range m.Daily {
		for date, point := range days {
			if point.Price == nil {
				continue
			}
			t, err := time.Parse("2006-01-02", date)
			if err != nil {
				continue
			}
			year := t.Format("2006")
			if fromFile[route][year] {
				continue
			}
			month := t.Format("01")
			idx := weekBucketIndex(t.Day())

			if m.Calendar[route] == nil {
				m.Calendar[route] = map[string]models.CalendarYear{}
			}
			if m.Calendar[route][year] == nil {
				m.Calendar[route][year] = models.CalendarYear{}
			}
			buckets := m.Calendar[route][year][month]
			if buckets[idx] == nil || *point.Price < *buckets[idx].Price {
				p := point
				buckets[idx] = &p
			}
			m.Calendar[route][year][month] = buckets
		}
	}
}

func weekBucketIndex(day int) int {
	switch {
	case day <= 7:
		return 0
	case day <= 14:
		return 1
	case day <= 21:
		return 2
	default:
		return 3
	}
}

func isISODate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
