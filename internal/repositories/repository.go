package repositories

import (
	"context"
	"net/http"
	"time"

	"faredash/config"
	"faredash/internal/models"
	"faredash/pkg/logger"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FareRepository loads the two static datasets the dashboard is built from.
type FareRepository interface {
	FetchRecords(ctx context.Context) (*models.Dataset, error)
	FetchMonthlyLowest(ctx context.Context) (*models.MonthlyLowest, error)
}

func InitFareRepository(cfg *config.Config, l *logger.Logger) FareRepository {
	client := &http.Client{
		Timeout: time.Duration(cfg.Data.FetchTimeoutSec) * time.Second,
	}
	return NewStaticJSONRepository(
		cfg.Data.BaseURL,
		cfg.Data.SampleDataPath,
		cfg.Data.MonthlyLowestPath,
		l,
		client,
	)
}
