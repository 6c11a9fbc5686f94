package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "config/config.yaml"

type Config struct {
	AppName    string `envconfig:"APP_NAME" default:"faredash"`
	AppVersion string `envconfig:"APP_VERSION" default:"1.0.0"`
	Port       string `envconfig:"PORT" default:"8080"`
	SentryDSN  string `envconfig:"SENTRY_DSN"`

	Data         DataConfig    `yaml:"data"`
	Season       SeasonConfig  `yaml:"season"`
	Origins      []string      `envconfig:"ORIGINS" yaml:"origins"`
	Destinations []Destination `yaml:"destinations"`
}

type DataConfig struct {
	BaseURL           string `envconfig:"DATA_BASE_URL" yaml:"base_url"`
	SampleDataPath    string `envconfig:"DATA_SAMPLE_PATH" yaml:"sample_data_path"`
	MonthlyLowestPath string `envconfig:"DATA_MONTHLY_PATH" yaml:"monthly_lowest_path"`
	FetchTimeoutSec   int    `envconfig:"DATA_FETCH_TIMEOUT" yaml:"fetch_timeout_seconds"`
	RefreshMinutes    int    `envconfig:"DATA_REFRESH_MINUTES" yaml:"refresh_minutes"`
}

type SeasonConfig struct {
	// End is the fixed end-of-season boundary for the outbound date window.
	End string `envconfig:"SEASON_END" yaml:"end"`
}

// Destination is one row of the country/city/IATA lookup table backing the
// destination selector.
type Destination struct {
	Country string `yaml:"country" json:"country"`
	City    string `yaml:"city" json:"city"`
	Iata    string `yaml:"iata" json:"iata"`
}

func NewConfig() (*Config, error) {
	return NewConfigFromFile(DefaultConfigFile)
}

// NewConfigFromFile loads the YAML file when present, then overrides with
// environment variables. A missing file is not an error.
func NewConfigFromFile(path string) (*Config, error) {
	var cnf Config

	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	}

	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	cnf.applyDefaults()

	return &cnf, nil
}

func (c *Config) applyDefaults() {
	if c.Data.BaseURL == "" {
		c.Data.BaseURL = "http://localhost:8000"
	}
	if c.Data.SampleDataPath == "" {
		c.Data.SampleDataPath = "data/sample_data.json"
	}
	if c.Data.MonthlyLowestPath == "" {
		c.Data.MonthlyLowestPath = "data/monthly_lowest.json"
	}
	if c.Data.FetchTimeoutSec == 0 {
		c.Data.FetchTimeoutSec = 30
	}
	if c.Season.End == "" {
		c.Season.End = "2026-09-30"
	}
	if len(c.Origins) == 0 {
		c.Origins = []string{"AMS", "EIN"}
	}
}

// SeasonEnd parses the configured boundary date.
func (c *Config) SeasonEnd() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Season.End)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse season end %q: %w", c.Season.End, err)
	}
	return t, nil
}

// DestinationByIata returns the lookup row for an airport code.
func (c *Config) DestinationByIata(iata string) (*Destination, bool) {
	for i := range c.Destinations {
		if c.Destinations[i].Iata == iata {
			return &c.Destinations[i], true
		}
	}
	return nil, false
}
