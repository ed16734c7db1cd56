package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohuvaht/ohuvaht/internal/catalog"
	"github.com/ohuvaht/ohuvaht/internal/monitoring"
)

func TestStationIndicators_OrderPreserved(t *testing.T) {
	c := catalog.Default()

	// Tartu reports particulates first; the upstream order matters for the
	// fetch query.
	got := c.StationIndicators(monitoring.CategoryAirQuality, 8)
	assert.Equal(t, []int{21, 23, 4, 3, 1, 6, 37, 41, 66}, got)
}

func TestStationIndicators_UnknownStation(t *testing.T) {
	c := catalog.Default()
	assert.Empty(t, c.StationIndicators(monitoring.CategoryAirQuality, 999))
	assert.Empty(t, c.StationIndicators(monitoring.CategoryPollen, 8), "station ids are per category")
}

func TestStationIndicators_ReturnsCopy(t *testing.T) {
	c := catalog.Default()
	first := c.StationIndicators(monitoring.CategoryRadiation, 53)
	require.NotEmpty(t, first)
	first[0] = -1
	assert.Equal(t, []int{80}, c.StationIndicators(monitoring.CategoryRadiation, 53))
}

func TestIndicatorLookup(t *testing.T) {
	c := catalog.Default()

	pm25, ok := c.Indicator(monitoring.CategoryAirQuality, 23)
	require.True(t, ok)
	assert.Equal(t, "PM2.5", pm25.Name)
	assert.Equal(t, "μg/m³", pm25.Unit)

	_, ok = c.Indicator(monitoring.CategoryPollen, 23)
	assert.False(t, ok)

	radiation, ok := c.Indicator(monitoring.CategoryRadiation, 80)
	require.True(t, ok)
	assert.Equal(t, "nSv/h", radiation.Unit)
}

func TestStations_SortedByID(t *testing.T) {
	c := catalog.Default()

	stations := c.Stations(monitoring.CategoryPollen)
	require.Len(t, stations, 5)
	for i := 1; i < len(stations); i++ {
		assert.Less(t, stations[i-1].ID, stations[i].ID)
	}
	assert.Equal(t, "Tallinn", stations[0].Name)
}

func TestIndicators_PerCategory(t *testing.T) {
	c := catalog.Default()

	assert.Len(t, c.Indicators(monitoring.CategoryPollen), 8)
	assert.Len(t, c.Indicators(monitoring.CategoryRadiation), 1)

	air := c.Indicators(monitoring.CategoryAirQuality)
	require.NotEmpty(t, air)
	for i := 1; i < len(air); i++ {
		assert.Less(t, air[i-1].ID, air[i].ID)
	}
}

func TestEveryStationIndicatorPresent(t *testing.T) {
	c := catalog.Default()

	// Some stations report indicators with no metadata entry (for example
	// ids 81 and 82 at Vilsandi); the engine must still fetch them, so the
	// tables are only checked for the radiation and pollen categories where
	// the sets are closed.
	for _, cat := range []monitoring.Category{monitoring.CategoryPollen, monitoring.CategoryRadiation} {
		for _, station := range c.Stations(cat) {
			for _, id := range station.Indicators {
				_, ok := c.Indicator(cat, id)
				assert.True(t, ok, "category %s station %d indicator %d", cat, station.ID, id)
			}
		}
	}
}
