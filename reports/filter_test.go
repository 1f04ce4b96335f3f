package reports

import (
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter_Defaults(t *testing.T) {
	f := ParseFilter(url.Values{}, DefaultConfig())

	assert.Equal(t, "", f.Query)
	assert.Nil(t, f.Start)
	assert.Nil(t, f.End)
	assert.Equal(t, DefaultThresholds(), f.Thresholds)
	assert.Equal(t, DefaultOverdueDays, f.Days)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPerPage, f.PerPage)
}

func TestParseFilter_Overrides(t *testing.T) {
	values := url.Values{
		"q":         {"  chen "},
		"min_sys":   {"200"},
		"min_dia":   {"100"},
		"min_glu":   {"140.5"},
		"min_hba1c": {"7"},
		"days":      {"60"},
		"page":      {"3"},
		"per_page":  {"1000"},
		"start":     {"2025-03-01"},
		"end":       {"2025-03-10"},
	}

	f := ParseFilter(values, DefaultConfig())

	assert.Equal(t, "chen", f.Query)
	assert.Equal(t, Thresholds{SBPHigh: 200, DBPHigh: 100, GlucoseHigh: 140.5, HbA1cHigh: 7}, f.Thresholds)
	assert.Equal(t, 60, f.Days)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, MaxPerPage, f.PerPage)
	require.NotNil(t, f.Start)
	require.NotNil(t, f.End)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), *f.Start)
	assert.Equal(t, time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC), *f.End)
	assert.Equal(t, "2025-03-10", f.EndDate)
}

func TestParseFilter_MalformedValuesFallBack(t *testing.T) {
	cfg := Config{
		Thresholds:  Thresholds{SBPHigh: 150, DBPHigh: 95, GlucoseHigh: 130, HbA1cHigh: 7},
		OverdueDays: 14,
	}
	values := url.Values{
		"min_sys":   {"high"},
		"min_dia":   {"0"},
		"min_glu":   {"NaN"},
		"min_hba1c": {"-1"},
		"days":      {"soon"},
		"page":      {"-2"},
		"start":     {"03/01/2025"},
		"end":       {"2025-02-30"},
	}

	f := ParseFilter(values, cfg)

	assert.Equal(t, cfg.Thresholds, f.Thresholds)
	assert.Equal(t, 14, f.Days)
	assert.Equal(t, 1, f.Page)
	assert.Nil(t, f.Start)
	assert.Nil(t, f.End)
	assert.Empty(t, f.StartDate)
}

func TestFilter_InRangeBoundaries(t *testing.T) {
	f := ParseFilter(url.Values{"start": {"2025-03-01"}, "end": {"2025-03-10"}}, DefaultConfig())

	assert.True(t, f.InRange(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, f.InRange(time.Date(2025, time.March, 10, 23, 59, 59, 0, time.UTC)))
	assert.False(t, f.InRange(time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, f.InRange(time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC)))
}

func TestPaginate(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Paginate(rows, 1, 2))
	assert.Equal(t, []int{5}, Paginate(rows, 3, 2))
	assert.Equal(t, []int{}, Paginate(rows, 4, 2))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Paginate(rows, 0, 0))
}

func TestPaginate_HugeValues(t *testing.T) {
	rows := []int{1, 2, 3}

	assert.Equal(t, []int{}, Paginate(rows, math.MaxInt, 50))
	assert.Equal(t, []int{}, Paginate(rows, math.MaxInt/50+2, 50))
	assert.Equal(t, []int{1, 2, 3}, Paginate(rows, 1, math.MaxInt))
}

func TestParseFilter_HugePageListsNothing(t *testing.T) {
	f := ParseFilter(url.Values{"page": {"9223372036854775807"}}, DefaultConfig())

	assert.Equal(t, math.MaxInt, f.Page)
	assert.Empty(t, Paginate([]int{1, 2, 3}, f.Page, f.PerPage))
}
