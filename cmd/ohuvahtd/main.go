// Package main provides the entrypoint for the ohuvaht monitoring daemon.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ohuvaht/ohuvaht/internal/api"
	"github.com/ohuvaht/ohuvaht/internal/api/middleware"
	"github.com/ohuvaht/ohuvaht/internal/catalog"
	"github.com/ohuvaht/ohuvaht/internal/monitoring"
	"github.com/ohuvaht/ohuvaht/internal/monitoring/ohuseire"
	"github.com/ohuvaht/ohuvaht/internal/provider/resilience"
	"github.com/ohuvaht/ohuvaht/internal/telemetry"
	"github.com/ohuvaht/ohuvaht/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "ohuvaht"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().Str("build_time", BuildTime).Msg("starting ohuvaht monitoring daemon")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    envStr("APP_ENV", "development"),
		OTLPEndpoint:   envStr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Enabled:        os.Getenv("OTEL_ENABLED") == "true",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	httpMetrics, err := middleware.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize HTTP metrics")
	}
	engineMetrics, err := monitoring.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize engine metrics")
	}

	// Upstream client with circuit breaker and health registry
	registry := resilience.NewRegistry()
	upstreamTimeout := envDuration("UPSTREAM_TIMEOUT", ohuseire.DefaultTimeout)
	httpClient := resilience.NewClient(resilience.ClientConfig{
		Name:    ohuseire.UpstreamName,
		Timeout: upstreamTimeout,
	})
	registry.Register(ohuseire.UpstreamName, httpClient)

	client := ohuseire.NewClient(ohuseire.ClientConfig{
		BaseURL:    envStr("OHUSEIRE_BASE_URL", ohuseire.DefaultBaseURL),
		HTTPClient: httpClient,
		Registry:   registry,
	})

	// Category -> station selection
	stations, err := stationsFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid station configuration")
	}
	log.Info().Interface("stations", stations).Msg("station selection loaded")

	cat := catalog.Default()
	service := monitoring.NewService(monitoring.ServiceConfig{
		Fetcher:           client,
		Catalog:           cat,
		Logger:            log.With().Str("component", "monitoring").Logger(),
		Stations:          stations,
		MaxRetries:        envInt("FETCH_MAX_RETRIES", 3),
		RetryDelay:        envDuration("FETCH_RETRY_DELAY", 2*time.Second),
		WindowDays:        envInt("FETCH_WINDOW_DAYS", 3),
		MaxHistoricalDays: envInt("FETCH_MAX_HISTORICAL_DAYS", 7),
		Concurrency:       envInt("FETCH_CONCURRENCY", 1),
		Metrics:           engineMetrics,
	})

	runner := worker.NewRunner(worker.RunnerConfig{
		Service:  service,
		Logger:   log.With().Str("component", "runner").Logger(),
		Interval: envDuration("REFRESH_INTERVAL", time.Hour),
	})
	go runner.Run(ctx)

	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		ServiceName: serviceName,
		Logger:      log,
		Metrics:     httpMetrics,
		Service:     service,
		Runner:      runner,
		Catalog:     cat,
		Registry:    registry,
	})

	server := &http.Server{
		Addr:         ":" + envStr("APP_PORT", "8080"),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server forced to shutdown")
	}
	log.Info().Msg("daemon stopped")
}

// stationsFromEnv reads the category -> station selection. MONITOR_CATEGORIES
// picks the active categories; STATION_<CATEGORY> overrides the default
// station per category.
func stationsFromEnv() (map[monitoring.Category]int, error) {
	defaults := map[monitoring.Category]int{
		monitoring.CategoryAirQuality: 8,  // Tartu
		monitoring.CategoryPollen:     23, // Tallinn
		monitoring.CategoryRadiation:  53, // Tallinna kiirgus
	}

	active := envStr("MONITOR_CATEGORIES", "airquality,pollen,radiation")
	stations := make(map[monitoring.Category]int)
	for _, name := range strings.Split(active, ",") {
		cat, err := monitoring.ParseCategory(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		stations[cat] = envInt("STATION_"+strings.ToUpper(string(cat)), defaults[cat])
	}
	return stations, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
