// Package catalog holds the static station and indicator tables for the
// Estonian environmental monitoring network. The tables are read-only; the
// Catalog is built once and injected wherever lookups are needed.
package catalog

import (
	"sort"

	"github.com/ohuvaht/ohuvaht/internal/monitoring"
)

// Indicator describes one measured quantity.
type Indicator struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Formula     string `json:"formula,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Description string `json:"description,omitempty"`
}

// Station describes one monitoring location and the ordered set of
// indicators it reports.
type Station struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Indicators []int  `json:"indicators"`
}

// Catalog is an immutable lookup over the station and indicator tables.
type Catalog struct {
	indicators map[monitoring.Category]map[int]Indicator
	stations   map[monitoring.Category]map[int]Station
}

// Default builds the catalog from the built-in tables.
func Default() *Catalog {
	return &Catalog{
		indicators: map[monitoring.Category]map[int]Indicator{
			monitoring.CategoryAirQuality: airQualityIndicators,
			monitoring.CategoryPollen:     pollenIndicators,
			monitoring.CategoryRadiation:  radiationIndicators,
		},
		stations: map[monitoring.Category]map[int]Station{
			monitoring.CategoryAirQuality: airQualityStations,
			monitoring.CategoryPollen:     pollenStations,
			monitoring.CategoryRadiation:  radiationStations,
		},
	}
}

// StationIndicators returns the ordered indicator ids a station exposes, or
// an empty slice if the station is unknown for the category.
func (c *Catalog) StationIndicators(cat monitoring.Category, stationID int) []int {
	station, ok := c.stations[cat][stationID]
	if !ok {
		return nil
	}
	out := make([]int, len(station.Indicators))
	copy(out, station.Indicators)
	return out
}

// Indicator looks up indicator metadata.
func (c *Catalog) Indicator(cat monitoring.Category, id int) (Indicator, bool) {
	ind, ok := c.indicators[cat][id]
	return ind, ok
}

// Station looks up station metadata.
func (c *Catalog) Station(cat monitoring.Category, id int) (Station, bool) {
	station, ok := c.stations[cat][id]
	return station, ok
}

// Stations lists the stations of a category, sorted by id.
func (c *Catalog) Stations(cat monitoring.Category) []Station {
	table := c.stations[cat]
	out := make([]Station, 0, len(table))
	for _, s := range table {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Indicators lists the indicators of a category, sorted by id.
func (c *Catalog) Indicators(cat monitoring.Category) []Indicator {
	table := c.indicators[cat]
	out := make([]Indicator, 0, len(table))
	for _, ind := range table {
		out = append(out, ind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
