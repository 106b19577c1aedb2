package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Security. An empty key disables ingest authentication.
	IngestAPIKey string `envconfig:"INGEST_API_KEY"`

	// Event bus
	EventQueueSize      int    `envconfig:"EVENT_QUEUE_SIZE" default:"256"`
	QueueOverflowPolicy string `envconfig:"QUEUE_OVERFLOW_POLICY" default:"drop_oldest"`

	// Pipeline
	IngestTimeout        time.Duration `envconfig:"INGEST_TIMEOUT" default:"10s"`
	PipelineDrainTimeout time.Duration `envconfig:"PIPELINE_DRAIN_TIMEOUT" default:"5s"`

	// Readiness
	CheckinWarningMinutes float64       `envconfig:"CHECKIN_WARNING_MINUTES" default:"50"`
	CheckinOverdueMinutes float64       `envconfig:"CHECKIN_OVERDUE_MINUTES" default:"60"`
	IneligibleStatuses    []string      `envconfig:"INELIGIBLE_STATUSES" default:"staged"`
	ReadinessInterval     time.Duration `envconfig:"READINESS_INTERVAL" default:"30s"`

	// Rate limiting
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"1000"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// Observability
	MetricsPort int `envconfig:"METRICS_PORT" default:"9091"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
