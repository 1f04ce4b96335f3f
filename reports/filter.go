package reports

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format of the start and end query parameters.
const DateLayout = "2006-01-02"

const (
	DefaultPerPage = 50
	MaxPerPage     = 200
)

// Config carries the defaults a report request falls back to.
type Config struct {
	Thresholds  Thresholds
	OverdueDays int
}

// DefaultConfig returns the built-in report defaults.
func DefaultConfig() Config {
	return Config{Thresholds: DefaultThresholds(), OverdueDays: DefaultOverdueDays}
}

// Filter is the parsed form of a report request.
type Filter struct {
	Query      string     `json:"q"`
	StartDate  string     `json:"start,omitempty"`
	EndDate    string     `json:"end,omitempty"`
	Start      *time.Time `json:"-"`
	End        *time.Time `json:"-"`
	Thresholds Thresholds `json:"thresholds"`
	Days       int        `json:"days"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
}

// ParseFilter builds a Filter from query parameters. Malformed or missing
// values never fail the request: each one silently falls back to its default.
func ParseFilter(values url.Values, cfg Config) Filter {
	f := Filter{
		Query: strings.TrimSpace(values.Get("q")),
		Thresholds: Thresholds{
			SBPHigh:     positiveInt(values.Get("min_sys"), cfg.Thresholds.SBPHigh),
			DBPHigh:     positiveInt(values.Get("min_dia"), cfg.Thresholds.DBPHigh),
			GlucoseHigh: positiveFloat(values.Get("min_glu"), cfg.Thresholds.GlucoseHigh),
			HbA1cHigh:   positiveFloat(values.Get("min_hba1c"), cfg.Thresholds.HbA1cHigh),
		},
		Days:    positiveInt(values.Get("days"), cfg.OverdueDays),
		Page:    positiveInt(values.Get("page"), 1),
		PerPage: positiveInt(values.Get("per_page"), DefaultPerPage),
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}

	if start, ok := parseDate(values.Get("start")); ok {
		f.Start = &start
		f.StartDate = start.Format(DateLayout)
	}
	if end, ok := parseDate(values.Get("end")); ok {
		// the whole end day is included
		exclusive := end.Add(day)
		f.End = &exclusive
		f.EndDate = end.Format(DateLayout)
	}
	return f
}

// InRange reports whether t falls inside [Start, End).
func (f Filter) InRange(t time.Time) bool {
	if f.Start != nil && t.Before(*f.Start) {
		return false
	}
	if f.End != nil && !t.Before(*f.End) {
		return false
	}
	return true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func positiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func positiveFloat(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// Paginate returns the rows of the given 1-based page.
func Paginate[T any](rows []T, page, perPage int) []T {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	// compare before multiplying so a huge page cannot overflow
	pages := len(rows) / perPage
	if len(rows)%perPage != 0 {
		pages++
	}
	if page > pages {
		return []T{}
	}
	start := (page - 1) * perPage
	end := len(rows)
	if perPage < end-start {
		end = start + perPage
	}
	return rows[start:end]
}
