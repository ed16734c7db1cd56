package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// UpstreamHealth is the observable health of one upstream API.
type UpstreamHealth struct {
	// Name is the upstream identifier.
	Name string `json:"name"`

	// CircuitState is the current circuit breaker state.
	CircuitState string `json:"circuit_state"`

	// Counts contains circuit breaker statistics.
	Counts gobreaker.Counts `json:"counts"`

	// LastSuccessAt is the timestamp of the last successful request.
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`

	// LastFailureAt is the timestamp of the last failed request.
	LastFailureAt *time.Time `json:"last_failure_at,omitempty"`

	// LastError is the most recent error message, if any.
	LastError string `json:"last_error,omitempty"`
}

// Healthy reports whether the upstream circuit is closed.
func (h *UpstreamHealth) Healthy() bool {
	return h.CircuitState == gobreaker.StateClosed.String()
}

// Registry tracks upstream clients and their health, for the ops surface.
type Registry struct {
	mu        sync.RWMutex
	upstreams map[string]*registeredUpstream
}

type registeredUpstream struct {
	client        *Client
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewRegistry creates an empty upstream registry.
func NewRegistry() *Registry {
	return &Registry{upstreams: make(map[string]*registeredUpstream)}
}

// Register adds an upstream client to the registry.
func (r *Registry) Register(name string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upstreams[name] = &registeredUpstream{client: client}
}

// RecordSuccess records a successful request for an upstream.
func (r *Registry) RecordSuccess(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.upstreams[name]; ok {
		now := time.Now()
		u.lastSuccessAt = &now
	}
}

// RecordFailure records a failed request for an upstream.
func (r *Registry) RecordFailure(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.upstreams[name]; ok {
		now := time.Now()
		u.lastFailureAt = &now
		if err != nil {
			u.lastError = err.Error()
		}
	}
}

// Health returns the health of a specific upstream, or nil if unknown.
func (r *Registry) Health(name string) *UpstreamHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.upstreams[name]
	if !ok {
		return nil
	}
	return healthOf(name, u)
}

// AllHealth returns the health of every registered upstream.
func (r *Registry) AllHealth() []*UpstreamHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()
	health := make([]*UpstreamHealth, 0, len(r.upstreams))
	for name, u := range r.upstreams {
		health = append(health, healthOf(name, u))
	}
	return health
}

func healthOf(name string, u *registeredUpstream) *UpstreamHealth {
	return &UpstreamHealth{
		Name:          name,
		CircuitState:  u.client.CircuitBreakerState().String(),
		Counts:        u.client.CircuitBreakerCounts(),
		LastSuccessAt: u.lastSuccessAt,
		LastFailureAt: u.lastFailureAt,
		LastError:     u.lastError,
	}
}
