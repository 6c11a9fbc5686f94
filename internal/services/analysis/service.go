package analysis

import (
	"context"
	"sync"

	"faredash/internal/models"
	"faredash/internal/repositories"
	"faredash/pkg/logger"
)

// AnalysisService owns the dataset snapshot and runs the full dashboard
// recompute over it. All derived output is computed from scratch per call;
// nothing incremental is kept between runs.
type AnalysisService struct {
	repo repositories.FareRepository
	l    *logger.Logger

	mu      sync.Mutex
	gen     uint64
	dataset *models.Dataset
	monthly *models.MonthlyLowest
}

func NewAnalysisService(repo repositories.FareRepository, l *logger.Logger) *AnalysisService {
	return &AnalysisService{
		repo:    repo,
		l:       l,
		dataset: &models.Dataset{},
	}
}

// Result is one full analysis run over the current snapshot.
type Result struct {
	GeneratedAt string
	Matches     int
	BuyTiming   models.ChartSeries
	Airlines    []models.AirlineRow
	Itineraries []models.ItineraryRow
}

// Refresh reloads both datasets. The two fetches run concurrently with no
// ordering between them, since they feed disjoint outputs. Each fails soft:
// a failed fare fetch publishes an empty record list, a failed monthly fetch
// keeps the previous monthly data. A refresh that a newer one has overtaken
// discards its result instead of overwriting the newer snapshot.
func (s *AnalysisService) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	var (
		wg      sync.WaitGroup
		dataset *models.Dataset
		monthly *models.MonthlyLowest
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		d, err := s.repo.FetchRecords(ctx)
		if err != nil {
			s.l.Warning("fare dataset fetch failed, using empty dataset", map[string]any{"err": err.Error()})
			d = &models.Dataset{}
		}
		dataset = d
	}()
	go func() {
		defer wg.Done()
		m, err := s.repo.FetchMonthlyLowest(ctx)
		if err != nil {
			s.l.Warning("monthly dataset fetch failed, keeping previous data", map[string]any{"err": err.Error()})
			return
		}
		monthly = m
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.gen {
		s.l.Debug("discarding stale refresh", map[string]any{"generation": gen, "latest": s.gen})
		return
	}
	s.dataset = dataset
	if monthly != nil {
		s.monthly = monthly
	}

	s.l.Info("datasets refreshed", map[string]any{
		"records":     len(dataset.Records),
		"hasMonthly":  s.monthly != nil,
		"generatedAt": dataset.GeneratedAt,
	})
}

// Snapshot returns the current immutable dataset pointers.
func (s *AnalysisService) Snapshot() (*models.Dataset, *models.MonthlyLowest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset, s.monthly
}

// Run recomputes the filtered set and every derived table and series.
func (s *AnalysisService) Run(criteria models.FilterCriteria) Result {
	dataset, _ := s.Snapshot()
	filtered := Filter(dataset.Records, criteria)

	s.l.Debug("analysis run", map[string]any{
		"destination": criteria.Destination,
		"total":       len(dataset.Records),
		"matches":     len(filtered),
	})

	return Result{
		GeneratedAt: dataset.GeneratedAt,
		Matches:     len(filtered),
		BuyTiming:   BuyTimingSeries(filtered),
		Airlines:    AirlineRows(filtered),
		Itineraries: ItineraryRows(filtered),
	}
}

// Calendar returns the calendar-comparison series for a route and year.
func (s *AnalysisService) Calendar(route string, year int) []models.ChartSeries {
	_, monthly := s.Snapshot()
	return CalendarComparison(monthly, route, year)
}

// Overview returns the per-route daily overview series.
func (s *AnalysisService) Overview() OverviewSeries {
	_, monthly := s.Snapshot()
	return RouteOverview(monthly)
}
