package core

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/status-im/price-dashboard/api"
	"github.com/status-im/price-dashboard/cache"
	"github.com/status-im/price-dashboard/config"
	"github.com/status-im/price-dashboard/dashboard"
	"github.com/status-im/price-dashboard/metrics"
	"github.com/status-im/price-dashboard/priceapi"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	location, err := cfg.Dashboard.Location()
	if err != nil {
		return nil, err
	}

	failures := cache.NewFailureLog(cfg.FailureLog)

	client := priceapi.NewClient(cfg.OverrideAPIBaseURL, priceapi.Options{
		Request: priceapi.RequestOptions{
			ConnectionTimeout: cfg.Dashboard.ConnectionTimeout,
			RequestTimeout:    cfg.Dashboard.RequestTimeout,
		},
		Limiter:              priceapi.NewLimiter(cfg.Dashboard.RateLimitPerMinute, cfg.Dashboard.Burst),
		PriceStatusHandler:   metrics.NewMetricsWriter(metrics.SourcePrice),
		HistoryStatusHandler: metrics.NewMetricsWriter(metrics.SourceHistory),
	})
	log.Info().Str("base_url", client.BaseURL()).Msg("Price API client configured")

	controller := dashboard.NewController(cfg.Dashboard, location, client, failures)

	// Gauges follow every state replacement
	registry.Register(newStateObserver(controller))
	registry.Register(controller)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := api.New(port, controller, cfg.Dashboard.UpdateInterval)
	registry.Register(server)

	return registry, nil
}
