package monitoring_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohuvaht/ohuvaht/internal/monitoring"
)

func TestDateRange_QueryValue(t *testing.T) {
	r := monitoring.NewDateRange(
		time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC),
		time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
	)
	assert.Equal(t, "12.03.2025,15.03.2025", r.QueryValue())
	assert.Equal(t, 4, r.Days())
}

func TestSingleDayRange(t *testing.T) {
	day := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	r := monitoring.SingleDayRange(day)
	assert.Equal(t, "10.03.2025,10.03.2025", r.QueryValue())
	assert.Equal(t, 1, r.Days())
	assert.True(t, r.Valid())
}

func TestWindowEndingAt(t *testing.T) {
	end := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	r := monitoring.WindowEndingAt(end, 3)
	assert.Equal(t, "12.03.2025,15.03.2025", r.QueryValue())
}

func TestWindowEndingAt_CrossesMonthBoundary(t *testing.T) {
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	r := monitoring.WindowEndingAt(end, 3)
	assert.Equal(t, "26.02.2025,01.03.2025", r.QueryValue())
}

func TestParseDateRange(t *testing.T) {
	r, err := monitoring.ParseDateRange("01.02.2025,03.02.2025")
	require.NoError(t, err)
	assert.Equal(t, "01.02.2025,03.02.2025", r.QueryValue())

	_, err = monitoring.ParseDateRange("01.02.2025")
	require.Error(t, err)
	var malformed *monitoring.MalformedInputError
	assert.ErrorAs(t, err, &malformed)

	_, err = monitoring.ParseDateRange("2025-02-01,2025-02-03")
	assert.Error(t, err)
}

func TestDateRange_Valid(t *testing.T) {
	assert.False(t, monitoring.DateRange{}.Valid())

	inverted := monitoring.NewDateRange(
		time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
	)
	assert.False(t, inverted.Valid())
}

func TestDateRange_JSONRoundTrip(t *testing.T) {
	r := monitoring.NewDateRange(
		time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `"12.03.2025,15.03.2025"`, string(data))

	var parsed monitoring.DateRange
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, r.Equal(parsed))
}
