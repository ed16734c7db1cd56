package monitoring

import (
	"errors"
	"sync"
	"time"
)

// Status classifies the outcome of the most recent fetch for a category.
type Status string

const (
	StatusUnknown         Status = "unknown"
	StatusSuccess         Status = "success"
	StatusNoData          Status = "no_data"
	StatusConnectionError Status = "connection_error"
	StatusTimeout         Status = "timeout"
	StatusFailed          Status = "error"
)

// CategoryStatus is the diagnostics record for one category, overwritten
// every cycle.
type CategoryStatus struct {
	// Status is the outcome of the last attempt.
	Status Status `json:"status"`

	// Error holds the last error text, empty on success.
	Error string `json:"error,omitempty"`

	// HTTPStatus is the last upstream HTTP status, when applicable.
	HTTPStatus int `json:"http_status,omitempty"`

	// LastChecked is when the category was last attempted.
	LastChecked time.Time `json:"last_checked"`

	// LastAttempted is the date range of the last attempt.
	LastAttempted *DateRange `json:"last_attempted,omitempty"`

	// LastSuccessful is the most recent date range that yielded non-empty
	// data. It only ever advances to a range that produced measurements.
	LastSuccessful *DateRange `json:"last_successful,omitempty"`
}

// StatusStore is the process-wide diagnostics record per category. The
// orchestrator is the only writer; readers may consult it at any time.
type StatusStore struct {
	mu          sync.RWMutex
	statuses    map[Category]CategoryStatus
	lastSuccess map[Category]DateRange
}

// NewStatusStore creates an empty diagnostics store.
func NewStatusStore() *StatusStore {
	return &StatusStore{
		statuses:    make(map[Category]CategoryStatus),
		lastSuccess: make(map[Category]DateRange),
	}
}

// Get returns the diagnostics record for a category.
func (s *StatusStore) Get(cat Category) (CategoryStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.statuses[cat]
	if !ok {
		return CategoryStatus{Status: StatusUnknown}, false
	}
	return s.withLastSuccess(cat, st), true
}

// All returns diagnostics for every recorded category.
func (s *StatusStore) All() map[Category]CategoryStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Category]CategoryStatus, len(s.statuses))
	for cat, st := range s.statuses {
		out[cat] = s.withLastSuccess(cat, st)
	}
	return out
}

// LastSuccessful returns the most recent date range that yielded data for a
// category.
func (s *StatusStore) LastSuccessful(cat Category) (DateRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.lastSuccess[cat]
	return r, ok
}

// RecordSuccess marks a category as freshly fetched and advances its
// last-successful range.
func (s *StatusStore) RecordSuccess(cat Category, attempted DateRange, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSuccess[cat] = attempted
	r := attempted
	s.statuses[cat] = CategoryStatus{
		Status:        StatusSuccess,
		LastChecked:   at,
		LastAttempted: &r,
	}
}

// RecordNoData marks a category as attempted with an empty result. The
// last-successful marker is left untouched.
func (s *StatusStore) RecordNoData(cat Category, attempted DateRange, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := CategoryStatus{Status: StatusNoData, LastChecked: at}
	if attempted.Valid() {
		r := attempted
		st.LastAttempted = &r
	}
	s.statuses[cat] = st
}

// RecordFailure marks a category as failed, classifying the error into a
// status and capturing the upstream HTTP status when present.
func (s *StatusStore) RecordFailure(cat Category, attempted DateRange, err error, at time.Time) {
	status, httpStatus := classify(err)
	s.mu.Lock()
	defer s.mu.Unlock()
	st := CategoryStatus{
		Status:      status,
		Error:       err.Error(),
		HTTPStatus:  httpStatus,
		LastChecked: at,
	}
	if attempted.Valid() {
		r := attempted
		st.LastAttempted = &r
	}
	s.statuses[cat] = st
}

func (s *StatusStore) withLastSuccess(cat Category, st CategoryStatus) CategoryStatus {
	if r, ok := s.lastSuccess[cat]; ok {
		last := r
		st.LastSuccessful = &last
	}
	return st
}

// classify maps an error from the fetch path to a diagnostics status.
func classify(err error) (Status, int) {
	var (
		statusErr    *StatusError
		transportErr *TransportError
		timeoutErr   *TimeoutError
		decodeErr    *DecodeError
	)
	switch {
	case errors.As(err, &timeoutErr):
		return StatusTimeout, 0
	case errors.As(err, &transportErr):
		return StatusConnectionError, 0
	case errors.As(err, &statusErr):
		return StatusFailed, statusErr.StatusCode
	case errors.As(err, &decodeErr):
		return StatusFailed, 0
	default:
		return StatusFailed, 0
	}
}
