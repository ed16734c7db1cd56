package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Fetcher issues one upstream request per (category, station, date-range)
// tuple. Implementations classify failures into the package error taxonomy.
type Fetcher interface {
	FetchRange(ctx context.Context, cat Category, stationID int, indicators []int, r DateRange) (CategoryResult, error)
}

// Catalog is the static, read-only station/indicator lookup the engine
// consults. It is injected at construction time.
type Catalog interface {
	// StationIndicators returns the ordered indicator ids a station exposes,
	// or an empty slice if the station is unknown.
	StationIndicators(cat Category, stationID int) []int
}

// ServiceConfig holds configuration for the refresh engine.
type ServiceConfig struct {
	// Fetcher performs the upstream requests.
	Fetcher Fetcher

	// Catalog resolves stations to indicator lists.
	Catalog Catalog

	// Logger for engine events.
	Logger zerolog.Logger

	// Stations maps each configured category to its selected station id.
	// Only categories present here are refreshed.
	Stations map[Category]int

	// MaxRetries is the total number of attempts per fetch (default: 3).
	MaxRetries int

	// RetryDelay is the fixed wait between attempts (default: 2 seconds).
	RetryDelay time.Duration

	// WindowDays is how many days back the current fetch window extends,
	// in addition to today (default: 3).
	WindowDays int

	// MaxHistoricalDays bounds the total lookback of the historical
	// fallback search (default: 7).
	MaxHistoricalDays int

	// Historical marks categories whose upstream data may lag behind the
	// current window and therefore get the historical fallback search.
	// Defaults to pollen only.
	Historical map[Category]bool

	// Concurrency is the number of categories fetched in parallel
	// (default: 1, sequential).
	Concurrency int

	// Metrics records engine instrumentation. Optional.
	Metrics *Metrics

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Service drives one full refresh cycle across all configured categories and
// keeps the last-known-good snapshot plus per-category diagnostics.
type Service struct {
	fetcher    Fetcher
	catalog    Catalog
	logger     zerolog.Logger
	stations   map[Category]int
	categories []Category
	historical map[Category]bool

	maxRetries        int
	retryDelay        time.Duration
	windowDays        int
	maxHistoricalDays int
	concurrency       int

	metrics  *Metrics
	statuses *StatusStore
	now      func() time.Time

	mu        sync.RWMutex
	cached    Snapshot
	hasCached bool
}

// NewService creates a new refresh engine.
func NewService(cfg ServiceConfig) *Service {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 3
	}
	retryDelay := cfg.RetryDelay
	if retryDelay == 0 {
		retryDelay = 2 * time.Second
	}
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = 3
	}
	maxHistoricalDays := cfg.MaxHistoricalDays
	if maxHistoricalDays <= 0 {
		maxHistoricalDays = 7
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	historical := cfg.Historical
	if historical == nil {
		historical = map[Category]bool{CategoryPollen: true}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	// Stable category order: the known-category order filtered to what is
	// configured.
	var categories []Category
	for _, cat := range Categories() {
		if _, ok := cfg.Stations[cat]; ok {
			categories = append(categories, cat)
		}
	}

	return &Service{
		fetcher:           cfg.Fetcher,
		catalog:           cfg.Catalog,
		logger:            cfg.Logger,
		stations:          cfg.Stations,
		categories:        categories,
		historical:        historical,
		maxRetries:        maxRetries,
		retryDelay:        retryDelay,
		windowDays:        windowDays,
		maxHistoricalDays: maxHistoricalDays,
		concurrency:       concurrency,
		metrics:           cfg.Metrics,
		statuses:          NewStatusStore(),
		now:               now,
	}
}

// Categories returns the configured categories in refresh order.
func (s *Service) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Snapshot returns the most recent non-failed snapshot, if any.
func (s *Service) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached, s.hasCached
}

// Status returns the diagnostics record for a category.
func (s *Service) Status(cat Category) (CategoryStatus, bool) {
	return s.statuses.Get(cat)
}

// Statuses returns diagnostics for all recorded categories.
func (s *Service) Statuses() map[Category]CategoryStatus {
	return s.statuses.All()
}

// LastSuccessfulRange returns the most recent date range that yielded data
// for a category.
func (s *Service) LastSuccessfulRange(cat Category) (DateRange, bool) {
	return s.statuses.LastSuccessful(cat)
}

// Refresh runs one full cycle across all configured categories and returns
// the aggregate snapshot. Per-category fetch failures never abort the cycle;
// they surface as empty results with diagnostics. A failure outside the fetch
// path returns the cached snapshot if one exists, or ErrUpdateFailed.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	s.logger.Info().Int("categories", len(s.categories)).Msg("starting refresh cycle")

	// Configuration is validated up front: a broken station mapping is an
	// orchestration failure, not a per-category fetch failure.
	for _, cat := range s.categories {
		if id := s.stations[cat]; id <= 0 {
			return s.recoverCycle(fmt.Errorf("station id %d configured for category %s", id, cat))
		}
	}

	snapshot := make(Snapshot, len(s.categories))
	var fatal error

	if s.concurrency > 1 {
		snapshot, fatal = s.refreshConcurrent(ctx)
	} else {
		for _, cat := range s.categories {
			result, err := s.refreshCategory(ctx, cat)
			if err != nil {
				fatal = err
				break
			}
			snapshot[cat] = result
		}
	}

	if fatal != nil {
		return s.recoverCycle(fatal)
	}

	s.mu.Lock()
	s.cached = snapshot
	s.hasCached = true
	s.mu.Unlock()

	duration := time.Since(start)
	s.metrics.recordCycle(ctx, duration, true)
	s.logger.Info().Dur("duration", duration).Msg("refresh cycle completed")
	return snapshot, nil
}

// refreshConcurrent fans the per-category fetches out over a bounded worker
// pool behind a single join point. Categories share no mutable state except
// the diagnostics store, which is mutex-guarded.
func (s *Service) refreshConcurrent(ctx context.Context) (Snapshot, error) {
	type outcome struct {
		cat    Category
		result CategoryResult
		err    error
	}

	jobs := make(chan Category, len(s.categories))
	results := make(chan outcome, len(s.categories))

	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cat := range jobs {
				result, err := s.refreshCategory(ctx, cat)
				results <- outcome{cat: cat, result: result, err: err}
			}
		}()
	}

	for _, cat := range s.categories {
		jobs <- cat
	}
	close(jobs)

	wg.Wait()
	close(results)

	snapshot := make(Snapshot, len(s.categories))
	var fatal error
	for o := range results {
		if o.err != nil {
			fatal = o.err
			continue
		}
		snapshot[o.cat] = o.result
	}
	return snapshot, fatal
}

// refreshCategory fetches one category. The returned error is non-nil only
// for failures that must abort the cycle (caller bugs); transient upstream
// failures collapse to an empty result with diagnostics recorded.
func (s *Service) refreshCategory(ctx context.Context, cat Category) (CategoryResult, error) {
	station := s.stations[cat]
	indicators := s.catalog.StationIndicators(cat, station)
	if len(indicators) == 0 {
		// Nothing to fetch for this station; skip without any HTTP call.
		s.logger.Debug().
			Str("category", string(cat)).
			Int("station", station).
			Msg("station has no indicators, skipping")
		s.statuses.RecordNoData(cat, DateRange{}, s.now())
		return CategoryResult{}, nil
	}

	window := WindowEndingAt(s.now(), s.windowDays)
	if s.historical[cat] {
		return s.fetchWithFallback(ctx, cat, station, indicators, window)
	}

	result, err := s.fetchRetried(ctx, cat, station, indicators, window)
	if err != nil {
		if !retryable(err) {
			return nil, err
		}
		s.statuses.RecordFailure(cat, window, err, s.now())
		return CategoryResult{}, nil
	}
	if result.Empty() {
		s.statuses.RecordNoData(cat, window, s.now())
	} else {
		s.statuses.RecordSuccess(cat, window, s.now())
	}
	return result, nil
}

// fetchWithFallback first tries the current extended window, then walks
// backward day-by-day through the bounded historical horizon, most recent
// first, stopping at the first non-empty result. If the whole horizon is
// empty it re-issues one fetch for the last range that ever yielded data.
func (s *Service) fetchWithFallback(ctx context.Context, cat Category, station int, indicators []int, window DateRange) (CategoryResult, error) {
	var lastErr error

	result, err := s.fetchRetried(ctx, cat, station, indicators, window)
	if err != nil {
		if !retryable(err) {
			return nil, err
		}
		lastErr = err
	}
	if !result.Empty() {
		s.statuses.RecordSuccess(cat, window, s.now())
		s.metrics.recordFallbackDepth(ctx, cat, 0)
		return result, nil
	}

	today := truncateToDay(s.now())
	for days := s.windowDays + 1; days <= s.maxHistoricalDays; days++ {
		r := SingleDayRange(today.AddDate(0, 0, -days))
		result, err = s.fetchRetried(ctx, cat, station, indicators, r)
		if err != nil {
			if !retryable(err) {
				return nil, err
			}
			lastErr = err
			continue
		}
		if !result.Empty() {
			s.logger.Info().
				Str("category", string(cat)).
				Int("days_back", days).
				Stringer("range", r).
				Msg("found historical data")
			s.statuses.RecordSuccess(cat, r, s.now())
			s.metrics.recordFallbackDepth(ctx, cat, days)
			return result, nil
		}
	}

	// Nothing in the horizon; as a last resort re-check the range that
	// yielded data most recently.
	if last, ok := s.statuses.LastSuccessful(cat); ok {
		result, err = s.fetchRetried(ctx, cat, station, indicators, last)
		if err != nil {
			if !retryable(err) {
				return nil, err
			}
			s.statuses.RecordFailure(cat, last, err, s.now())
			return CategoryResult{}, nil
		}
		if result.Empty() {
			s.statuses.RecordNoData(cat, last, s.now())
		} else {
			s.statuses.RecordSuccess(cat, last, s.now())
		}
		return result, nil
	}

	if lastErr != nil {
		s.statuses.RecordFailure(cat, window, lastErr, s.now())
	} else {
		s.statuses.RecordNoData(cat, window, s.now())
	}
	return CategoryResult{}, nil
}

// fetchRetried wraps one fetch with bounded fixed-delay retry. Transient
// failures (non-200 status, timeout, transport, decode) are retried up to the
// attempt budget; malformed input propagates immediately.
func (s *Service) fetchRetried(ctx context.Context, cat Category, station int, indicators []int, r DateRange) (CategoryResult, error) {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryDelay), uint64(s.maxRetries-1)),
		ctx,
	)

	var result CategoryResult
	attempt := 0
	operation := func() error {
		attempt++
		res, err := s.fetcher.FetchRange(ctx, cat, station, indicators, r)
		s.metrics.recordFetch(ctx, cat, err)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("category", string(cat)).
				Stringer("range", r).
				Int("attempt", attempt).
				Msg("fetch attempt failed")
			if !retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return CategoryResult{}, err
	}
	return result, nil
}

// recoverCycle handles a failure outside the per-category fetch path. With a
// cached snapshot available it returns that unchanged, marking diagnostics;
// without one the failure is fatal for the caller to handle.
func (s *Service) recoverCycle(cause error) (Snapshot, error) {
	s.logger.Error().Err(cause).Msg("refresh cycle failed outside the fetch path")
	s.metrics.recordCycle(context.Background(), 0, false)

	s.mu.RLock()
	cached, ok := s.cached, s.hasCached
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUpdateFailed, cause)
	}

	now := s.now()
	for _, cat := range s.categories {
		s.statuses.RecordFailure(cat, DateRange{}, cause, now)
	}
	s.logger.Warn().Msg("serving cached snapshot after failed cycle")
	return cached, nil
}
