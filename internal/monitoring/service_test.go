package monitoring_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohuvaht/ohuvaht/internal/monitoring"
)

// fixedNow pins the engine clock: the current window is 12.03-15.03 and the
// historical horizon walks 11.03, 10.03, 09.03, 08.03.
var fixedNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

type fetchCall struct {
	cat        monitoring.Category
	station    int
	indicators []int
	rng        monitoring.DateRange
}

type fakeFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	respond func(fetchCall) (monitoring.CategoryResult, error)
}

func (f *fakeFetcher) FetchRange(_ context.Context, cat monitoring.Category, stationID int, indicators []int, r monitoring.DateRange) (monitoring.CategoryResult, error) {
	f.mu.Lock()
	call := fetchCall{cat: cat, station: stationID, indicators: indicators, rng: r}
	f.calls = append(f.calls, call)
	respond := f.respond
	f.mu.Unlock()
	return respond(call)
}

func (f *fakeFetcher) setRespond(fn func(fetchCall) (monitoring.CategoryResult, error)) {
	f.mu.Lock()
	f.respond = fn
	f.mu.Unlock()
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) ranges() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.rng.QueryValue()
	}
	return out
}

type fakeCatalog struct {
	indicators map[monitoring.Category][]int
}

func (c fakeCatalog) StationIndicators(cat monitoring.Category, _ int) []int {
	return c.indicators[cat]
}

func measurementsFor(indicator int, value monitoring.Value, r monitoring.DateRange) monitoring.CategoryResult {
	result := monitoring.CategoryResult{}
	result.Add(monitoring.Measurement{
		Indicator:   indicator,
		Station:     8,
		Value:       value,
		MeasuredAt:  "2025-03-15 09:00:00",
		FetchRange:  r,
		RetrievedAt: fixedNow,
	})
	return result
}

func newTestService(fetcher *fakeFetcher, mutate func(*monitoring.ServiceConfig)) *monitoring.Service {
	cfg := monitoring.ServiceConfig{
		Fetcher: fetcher,
		Catalog: fakeCatalog{indicators: map[monitoring.Category][]int{
			monitoring.CategoryAirQuality: {1, 3, 6},
			monitoring.CategoryPollen:     {31, 33},
			monitoring.CategoryRadiation:  {80},
		}},
		Logger:     zerolog.Nop(),
		Stations:   map[monitoring.Category]int{monitoring.CategoryAirQuality: 8},
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		Now:        func() time.Time { return fixedNow },
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return monitoring.NewService(cfg)
}

func TestRefresh_SuccessPopulatesSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(call fetchCall) (monitoring.CategoryResult, error) {
		return measurementsFor(1, "12.4", call.rng), nil
	})
	svc := newTestService(fetcher, nil)

	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Contains(t, snapshot, monitoring.CategoryAirQuality)
	assert.Len(t, snapshot[monitoring.CategoryAirQuality][1], 1)
	assert.Equal(t, 1, fetcher.callCount())

	status, ok := svc.Status(monitoring.CategoryAirQuality)
	require.True(t, ok)
	assert.Equal(t, monitoring.StatusSuccess, status.Status)

	last, ok := svc.LastSuccessfulRange(monitoring.CategoryAirQuality)
	require.True(t, ok)
	assert.Equal(t, "12.03.2025,15.03.2025", last.QueryValue())

	cached, ok := svc.Snapshot()
	require.True(t, ok)
	assert.Equal(t, snapshot, cached)
}

func TestRefresh_StationWithoutIndicatorsSkipsFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(fetchCall) (monitoring.CategoryResult, error) {
		return nil, errors.New("should not be called")
	})
	svc := newTestService(fetcher, func(cfg *monitoring.ServiceConfig) {
		cfg.Catalog = fakeCatalog{indicators: map[monitoring.Category][]int{}}
	})

	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Zero(t, fetcher.callCount(), "a station without indicators must not reach the network")
	assert.True(t, snapshot[monitoring.CategoryAirQuality].Empty())

	status, ok := svc.Status(monitoring.CategoryAirQuality)
	require.True(t, ok)
	assert.Equal(t, monitoring.StatusNoData, status.Status)
}

func TestRefresh_ServerErrorExhaustsRetryBudget(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(fetchCall) (monitoring.CategoryResult, error) {
		return nil, &monitoring.StatusError{StatusCode: 503}
	})
	svc := newTestService(fetcher, nil)

	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err, "fetch failures never abort the cycle")
	assert.Equal(t, 3, fetcher.callCount(), "exactly MaxRetries attempts")
	assert.True(t, snapshot[monitoring.CategoryAirQuality].Empty())

	status, ok := svc.Status(monitoring.CategoryAirQuality)
	require.True(t, ok)
	assert.Equal(t, monitoring.StatusFailed, status.Status)
	assert.Equal(t, 503, status.HTTPStatus)
	assert.NotEmpty(t, status.Error)
	require.NotNil(t, status.LastAttempted)
	assert.Equal(t, "12.03.2025,15.03.2025", status.LastAttempted.QueryValue())
}

func TestRefresh_TimeoutAndTransportClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want monitoring.Status
	}{
		{"timeout", &monitoring.TimeoutError{Err: context.DeadlineExceeded}, monitoring.StatusTimeout},
		{"transport", &monitoring.TransportError{Err: errors.New("connection refused")}, monitoring.StatusConnectionError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			fetcher.setRespond(func(fetchCall) (monitoring.CategoryResult, error) {
				return nil, tc.err
			})
			svc := newTestService(fetcher, nil)

			_, err := svc.Refresh(context.Background())
			require.NoError(t, err)

			status, ok := svc.Status(monitoring.CategoryAirQuality)
			require.True(t, ok)
			assert.Equal(t, tc.want, status.Status)
		})
	}
}

func TestRefresh_OneCategoryFailingLeavesOthersIntact(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(call fetchCall) (monitoring.CategoryResult, error) {
		if call.cat == monitoring.CategoryAirQuality {
			return nil, &monitoring.TransportError{Err: errors.New("connection reset")}
		}
		return measurementsFor(80, "0.091", call.rng), nil
	})
	svc := newTestService(fetcher, func(cfg *monitoring.ServiceConfig) {
		cfg.Stations = map[monitoring.Category]int{
			monitoring.CategoryAirQuality: 8,
			monitoring.CategoryRadiation:  53,
		}
	})

	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, snapshot[monitoring.CategoryAirQuality].Empty())
	assert.False(t, snapshot[monitoring.CategoryRadiation].Empty())

	aq, _ := svc.Status(monitoring.CategoryAirQuality)
	assert.Equal(t, monitoring.StatusConnectionError, aq.Status)
	rad, _ := svc.Status(monitoring.CategoryRadiation)
	assert.Equal(t, monitoring.StatusSuccess, rad.Status)
}

func TestHistoricalFallback_CurrentWindowHit(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(call fetchCall) (monitoring.CategoryResult, error) {
		return measurementsFor(31, "42", call.rng), nil
	})
	svc := newTestService(fetcher, func(cfg *monitoring.ServiceConfig) {
		cfg.Stations = map[monitoring.Category]int{monitoring.CategoryPollen: 23}
	})

	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, snapshot[monitoring.CategoryPollen].Empty())
	assert.Equal(t, []string{"12.03.2025,15.03.2025"}, fetcher.ranges())
}

func TestHistoricalFallback_WalksBackwardToFirstHit(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(call fetchCall) (monitoring.CategoryResult, error) {
		if call.rng.QueryValue() == "10.03.2025,10.03.2025" {
			return measurementsFor(31, "17", call.rng), nil
		}
		return monitoring.CategoryResult{}, nil
	})
	svc := newTestService(fetcher, func(cfg *monitoring.ServiceConfig) {
		cfg.Stations = map[monitoring.Category]int{monitoring.CategoryPollen: 23}
	})

	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, snapshot[monitoring.CategoryPollen].Empty())

	// Window first, then single days most recent first, stopping at the hit.
	assert.Equal(t, []string{
		"12.03.2025,15.03.2025",
		"11.03.2025,11.03.2025",
		"10.03.2025,10.03.2025",
	}, fetcher.ranges())

	last, ok := svc.LastSuccessfulRange(monitoring.CategoryPollen)
	require.True(t, ok)
	assert.Equal(t, "10.03.2025,10.03.2025", last.QueryValue())

	status, _ := svc.Status(monitoring.CategoryPollen)
	assert.Equal(t, monitoring.StatusSuccess, status.Status)
}

func TestHistoricalFallback_HorizonExhaustedWithoutHistory(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(fetchCall) (monitoring.CategoryResult, error) {
		return monitoring.CategoryResult{}, nil
	})
	svc := newTestService(fetcher, func(cfg *monitoring.ServiceConfig) {
		cfg.Stations = map[monitoring.Category]int{monitoring.CategoryPollen: 23}
	})

	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, snapshot[monitoring.CategoryPollen].Empty())

	// Window plus days 4..7 back, never beyond the horizon.
	assert.Equal(t, []string{
		"12.03.2025,15.03.2025",
		"11.03.2025,11.03.2025",
		"10.03.2025,10.03.2025",
		"09.03.2025,09.03.2025",
		"08.03.2025,08.03.2025",
	}, fetcher.ranges())

	status, _ := svc.Status(monitoring.CategoryPollen)
	assert.Equal(t, monitoring.StatusNoData, status.Status)
	_, ok := svc.LastSuccessfulRange(monitoring.CategoryPollen)
	assert.False(t, ok)
}

func TestHistoricalFallback_ReissuesLastSuccessfulRange(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(call fetchCall) (monitoring.CategoryResult, error) {
		if call.rng.QueryValue() == "12.03.2025,15.03.2025" {
			return measurementsFor(31, "9", call.rng), nil
		}
		return monitoring.CategoryResult{}, nil
	})

	nowVal := fixedNow
	svc := newTestService(fetcher, func(cfg *monitoring.ServiceConfig) {
		cfg.Stations = map[monitoring.Category]int{monitoring.CategoryPollen: 23}
		cfg.Now = func() time.Time { return nowVal }
	})

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	// Five days later the current horizon is empty; the engine falls back to
	// the range that last yielded data.
	nowVal = fixedNow.AddDate(0, 0, 5)
	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, snapshot[monitoring.CategoryPollen].Empty())

	ranges := fetcher.ranges()
	assert.Equal(t, "12.03.2025,15.03.2025", ranges[len(ranges)-1],
		"final fetch re-issues the last successful range")

	status, _ := svc.Status(monitoring.CategoryPollen)
	assert.Equal(t, monitoring.StatusSuccess, status.Status)
}

func TestRefresh_MalformedInputIsFatalWithoutCache(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(fetchCall) (monitoring.CategoryResult, error) {
		return nil, &monitoring.MalformedInputError{Field: "indicators", Detail: "indicator list is empty"}
	})
	svc := newTestService(fetcher, nil)

	snapshot, err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, monitoring.ErrUpdateFailed)
	assert.Nil(t, snapshot)
	assert.Equal(t, 1, fetcher.callCount(), "malformed input is never retried")
}

func TestRefresh_FatalServesCachedSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(call fetchCall) (monitoring.CategoryResult, error) {
		return measurementsFor(1, "3.3", call.rng), nil
	})
	svc := newTestService(fetcher, nil)

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	fetcher.setRespond(func(fetchCall) (monitoring.CategoryResult, error) {
		return nil, &monitoring.MalformedInputError{Field: "range", Detail: "date range is not well-formed"}
	})

	second, err := svc.Refresh(context.Background())
	require.NoError(t, err, "a cached snapshot absorbs the fatal cycle")
	assert.Equal(t, first, second)

	status, ok := svc.Status(monitoring.CategoryAirQuality)
	require.True(t, ok)
	assert.Equal(t, monitoring.StatusFailed, status.Status)

	last, ok := svc.LastSuccessfulRange(monitoring.CategoryAirQuality)
	require.True(t, ok)
	assert.Equal(t, "12.03.2025,15.03.2025", last.QueryValue(),
		"failed cycles never move the last-successful marker")
}

func TestRefresh_InvalidStationConfigIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(fetchCall) (monitoring.CategoryResult, error) {
		return monitoring.CategoryResult{}, nil
	})
	svc := newTestService(fetcher, func(cfg *monitoring.ServiceConfig) {
		cfg.Stations = map[monitoring.Category]int{monitoring.CategoryAirQuality: -1}
	})

	_, err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, monitoring.ErrUpdateFailed)
	assert.Zero(t, fetcher.callCount())
}

func TestRefresh_ConcurrentCategories(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.setRespond(func(call fetchCall) (monitoring.CategoryResult, error) {
		return measurementsFor(call.indicators[0], "1", call.rng), nil
	})
	svc := newTestService(fetcher, func(cfg *monitoring.ServiceConfig) {
		cfg.Stations = map[monitoring.Category]int{
			monitoring.CategoryAirQuality: 8,
			monitoring.CategoryPollen:     23,
			monitoring.CategoryRadiation:  53,
		}
		cfg.Concurrency = 3
	})

	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot, 3)
	for _, cat := range svc.Categories() {
		assert.False(t, snapshot[cat].Empty(), "category %s", cat)
	}
}

func TestService_CategoriesFollowKnownOrder(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestService(fetcher, func(cfg *monitoring.ServiceConfig) {
		cfg.Stations = map[monitoring.Category]int{
			monitoring.CategoryRadiation:  53,
			monitoring.CategoryAirQuality: 8,
		}
	})
	assert.Equal(t, []monitoring.Category{
		monitoring.CategoryAirQuality,
		monitoring.CategoryRadiation,
	}, svc.Categories())
}
