// Package worker provides the scheduled refresh loop for the monitoring
// engine. The engine never self-schedules; the runner owns the timer and the
// out-of-band force-refresh signal.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ohuvaht/ohuvaht/internal/monitoring"
)

// RunnerConfig holds configuration for the refresh runner.
type RunnerConfig struct {
	// Service is the refresh engine driven by the runner.
	Service *monitoring.Service

	// Logger for runner events.
	Logger zerolog.Logger

	// Interval between refresh cycles (default: 1 hour).
	Interval time.Duration

	// CycleTimeout bounds one refresh cycle (default: 10 minutes). The
	// engine's own worst case is timeout x retries x historical window;
	// this is a backstop above that.
	CycleTimeout time.Duration
}

// Metrics tracks refresh runner statistics.
type Metrics struct {
	TotalCycles       int64
	FailedCycles      int64
	ForcedCycles      int64
	LastCycleAt       time.Time
	LastCycleDuration time.Duration
	LastError         string
}

// Runner invokes the refresh engine on a fixed interval and on demand.
type Runner struct {
	service      *monitoring.Service
	logger       zerolog.Logger
	interval     time.Duration
	cycleTimeout time.Duration
	force        chan struct{}

	mu      sync.RWMutex
	metrics Metrics
}

// NewRunner creates a new refresh runner.
func NewRunner(cfg RunnerConfig) *Runner {
	interval := cfg.Interval
	if interval == 0 {
		interval = time.Hour
	}
	cycleTimeout := cfg.CycleTimeout
	if cycleTimeout == 0 {
		cycleTimeout = 10 * time.Minute
	}
	return &Runner{
		service:      cfg.Service,
		logger:       cfg.Logger,
		interval:     interval,
		cycleTimeout: cycleTimeout,
		force:        make(chan struct{}, 1),
	}
}

// Run executes an initial refresh and then loops until the context is
// cancelled, refreshing on every tick and on every force-refresh signal.
func (r *Runner) Run(ctx context.Context) {
	r.logger.Info().Dur("interval", r.interval).Msg("refresh runner started")

	r.runCycle(ctx, false)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("refresh runner stopped")
			return
		case <-ticker.C:
			r.runCycle(ctx, false)
		case <-r.force:
			r.runCycle(ctx, true)
		}
	}
}

// ForceRefresh schedules an out-of-band refresh cycle. It never blocks;
// if a forced cycle is already pending the signal is coalesced.
func (r *Runner) ForceRefresh() {
	select {
	case r.force <- struct{}{}:
	default:
	}
}

// Metrics returns a copy of the current runner metrics.
func (r *Runner) Metrics() Metrics {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metrics
}

func (r *Runner) runCycle(ctx context.Context, forced bool) {
	start := time.Now()
	cycleCtx, cancel := context.WithTimeout(ctx, r.cycleTimeout)
	defer cancel()

	_, err := r.service.Refresh(cycleCtx)
	duration := time.Since(start)

	r.mu.Lock()
	r.metrics.TotalCycles++
	if forced {
		r.metrics.ForcedCycles++
	}
	r.metrics.LastCycleAt = time.Now()
	r.metrics.LastCycleDuration = duration
	if err != nil {
		r.metrics.FailedCycles++
		r.metrics.LastError = err.Error()
	} else {
		r.metrics.LastError = ""
	}
	r.mu.Unlock()

	if err != nil {
		r.logger.Error().Err(err).Bool("forced", forced).Msg("refresh cycle failed")
		return
	}
	r.logger.Info().Dur("duration", duration).Bool("forced", forced).Msg("refresh cycle finished")
}
