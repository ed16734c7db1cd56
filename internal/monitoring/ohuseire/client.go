// Package ohuseire provides a client for the Estonian ambient monitoring API
// at ohuseire.ee.
package ohuseire

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ohuvaht/ohuvaht/internal/monitoring"
	"github.com/ohuvaht/ohuvaht/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the monitoring data endpoint.
	DefaultBaseURL = "https://ohuseire.ee/api/monitoring/en"

	// UpstreamName identifies this upstream.
	UpstreamName = "ohuseire"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the ohuseire client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a circuit-breaker
	// guarded client with DefaultTimeout is created.
	HTTPClient HTTPDoer

	// Timeout for individual requests when the default client is used.
	Timeout time.Duration

	// Registry receives success/failure notifications for the ops health
	// surface. Optional.
	Registry *resilience.Registry
}

// Client fetches measurement data from the ohuseire API.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	registry   *resilience.Registry
	now        func() time.Time
}

// NewClient creates a new ohuseire client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:    UpstreamName,
			Timeout: timeout,
		})
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		registry:   cfg.Registry,
		now:        time.Now,
	}
}

// record is one measurement as the API reports it.
type record struct {
	Indicator int              `json:"indicator"`
	Measured  string           `json:"measured"`
	Value     monitoring.Value `json:"value"`
	Station   int              `json:"station"`
}

// FetchRange performs a single GET for the given category, station and date
// range and groups the response records by indicator id. It does not retry;
// transient failures are reported through the monitoring error taxonomy.
func (c *Client) FetchRange(ctx context.Context, cat monitoring.Category, stationID int, indicators []int, r monitoring.DateRange) (monitoring.CategoryResult, error) {
	if stationID <= 0 {
		return nil, &monitoring.MalformedInputError{Field: "station", Detail: "station id must be positive"}
	}
	if len(indicators) == 0 {
		return nil, &monitoring.MalformedInputError{Field: "indicators", Detail: "indicator list is empty"}
	}
	if !r.Valid() {
		return nil, &monitoring.MalformedInputError{Field: "range", Detail: "date range is not well-formed"}
	}

	query := url.Values{}
	query.Set("stations", strconv.Itoa(stationID))
	query.Set("indicators", joinInts(indicators))
	query.Set("range", r.QueryValue())
	query.Set("type", cat.APIType())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, &monitoring.MalformedInputError{Field: "url", Detail: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(classifyTransport(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, c.fail(&monitoring.StatusError{StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(classifyTransport(err))
	}

	records, err := decodeRecords(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, c.fail(err)
	}
	if c.registry != nil {
		c.registry.RecordSuccess(UpstreamName)
	}

	retrieved := c.now()
	result := make(monitoring.CategoryResult, len(records))
	for _, rec := range records {
		result.Add(monitoring.Measurement{
			Indicator:   rec.Indicator,
			Station:     rec.Station,
			Value:       rec.Value,
			MeasuredAt:  rec.Measured,
			FetchRange:  r,
			RetrievedAt: retrieved,
		})
	}
	return result, nil
}

// fail reports the error to the health registry and passes it through.
func (c *Client) fail(err error) error {
	if c.registry != nil {
		c.registry.RecordFailure(UpstreamName, err)
	}
	return err
}

// classifyTransport maps a transport-level failure to the error taxonomy.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &monitoring.TimeoutError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &monitoring.TimeoutError{Err: err}
	}
	return &monitoring.TransportError{Err: err}
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
