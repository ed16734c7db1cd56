// Package monitoring provides the data-refresh engine for Estonian environmental
// measurements: periodic fetches per category, bounded retry, historical fallback
// and a last-known-good snapshot cache.
package monitoring

import (
	"encoding/json"
	"strconv"
	"time"
)

// Category identifies one of the measured environmental domains.
type Category string

const (
	CategoryAirQuality Category = "airquality"
	CategoryPollen     Category = "pollen"
	CategoryRadiation  Category = "radiation"
)

// Categories returns all known categories in a stable order.
func Categories() []Category {
	return []Category{CategoryAirQuality, CategoryPollen, CategoryRadiation}
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryAirQuality, CategoryPollen, CategoryRadiation:
		return Category(s), nil
	}
	return "", &MalformedInputError{Field: "category", Detail: "unknown category " + strconv.Quote(s)}
}

// APIType returns the upstream type tag for the category.
func (c Category) APIType() string {
	switch c {
	case CategoryPollen:
		return "POLLEN"
	case CategoryRadiation:
		return "RADIATION"
	default:
		return "INDICATOR"
	}
}

// Value holds a measured value exactly as received from the upstream API,
// which reports values either as JSON numbers or as strings. No unit
// conversion is applied at the engine boundary.
type Value string

// UnmarshalJSON accepts both numeric and string representations.
func (v *Value) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Value(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = Value(s)
	return nil
}

// MarshalJSON emits the value as a string so the raw representation survives.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

// Float64 parses the raw value as a number.
func (v Value) Float64() (float64, error) {
	return strconv.ParseFloat(string(v), 64)
}

// Measurement is one observed value with engine-added provenance.
// Immutable once created.
type Measurement struct {
	// Indicator is the catalog indicator id.
	Indicator int `json:"indicator"`

	// Station is the reporting station id.
	Station int `json:"station"`

	// Value is the measured value as received (string or number upstream).
	Value Value `json:"value"`

	// MeasuredAt is the upstream measurement timestamp, kept verbatim.
	MeasuredAt string `json:"measured"`

	// FetchRange is the date range used in the request that produced this value.
	FetchRange DateRange `json:"fetch_range"`

	// RetrievedAt is the wall-clock time the value was retrieved.
	RetrievedAt time.Time `json:"retrieved_at"`
}

// CategoryResult maps indicator id to the measurements returned for it,
// in API response order. An empty result means no data was found.
type CategoryResult map[int][]Measurement

// Add appends a measurement under its indicator id.
func (r CategoryResult) Add(m Measurement) {
	r[m.Indicator] = append(r[m.Indicator], m)
}

// Empty reports whether the result carries no measurements at all.
func (r CategoryResult) Empty() bool {
	for _, ms := range r {
		if len(ms) > 0 {
			return false
		}
	}
	return true
}

// Snapshot is the complete per-category result set produced by one refresh
// cycle. It is the engine's sole externally visible output.
type Snapshot map[Category]CategoryResult
