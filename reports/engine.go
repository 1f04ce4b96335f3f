package reports

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"MediTrack/models"
)

// Store is the read side of the data store the reports are computed from.
type Store interface {
	// SearchPatients returns every patient whose name, mrn or phone contains
	// query, ignoring case. An empty query matches all patients.
	SearchPatients(ctx context.Context, query string) ([]models.Patient, error)
	// ListVitals returns all vital signs of the given patients.
	ListVitals(ctx context.Context, patientIDs []uint) ([]models.VitalSign, error)
	// ListLabs returns all lab results of the given patients.
	ListLabs(ctx context.Context, patientIDs []uint) ([]models.LabResult, error)
}

// HypertensionRow is a patient together with its flagged latest vital sign.
type HypertensionRow struct {
	Patient models.Patient   `json:"patient"`
	Vital   models.VitalSign `json:"vital"`
}

// GlycemiaRow is a patient together with its flagged latest lab result.
type GlycemiaRow struct {
	Patient models.Patient   `json:"patient"`
	Lab     models.LabResult `json:"lab"`
}

// OverdueRow is a patient without recent activity.
type OverdueRow struct {
	Patient      models.Patient `json:"patient"`
	LastActivity time.Time      `json:"last_activity"`
	DaysSince    *int           `json:"days_since"`
}

// Summary is the dashboard overview.
type Summary struct {
	TotalPatients     int          `json:"total_patients"`
	HypertensionCount int          `json:"hypertension_count"`
	HypertensionPct   float64      `json:"hypertension_pct"`
	GlycemiaCount     int          `json:"glycemia_count"`
	GlycemiaPct       float64      `json:"glycemia_pct"`
	Thresholds        Thresholds   `json:"thresholds"`
	Weekly            []WeekBucket `json:"weekly"`
}

// Engine computes the clinical reports. It keeps no state between calls, so
// the listing and the CSV export of a filter always see the same rows.
type Engine struct {
	store  Store
	config Config
	now    func() time.Time
}

// NewEngine creates a report engine reading from store.
func NewEngine(store Store, config Config) *Engine {
	return &Engine{store: store, config: config, now: time.Now}
}

// SetClock replaces the engine's time source.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Config returns the defaults requests fall back to.
func (e *Engine) Config() Config {
	return e.config
}

// Now returns the current time of the engine's clock in UTC.
func (e *Engine) Now() time.Time {
	return e.now().UTC()
}

// Hypertension lists patients whose latest vital sign is at or above the
// filter's blood pressure thresholds, newest reading first.
func (e *Engine) Hypertension(ctx context.Context, f Filter) ([]HypertensionRow, error) {
	patients, err := e.store.SearchPatients(ctx, f.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	rows := []HypertensionRow{}
	if len(patients) == 0 {
		return rows, nil
	}

	vitals, err := e.store.ListVitals(ctx, patientIDs(patients))
	if err != nil {
		return nil, fmt.Errorf("failed to list vital signs: %w", err)
	}
	latest := Latest(vitals)

	for _, p := range patients {
		v, ok := latest[p.ID]
		if !ok || !f.Thresholds.Hypertensive(v) || !f.InRange(v.RecordedAt) {
			continue
		}
		rows = append(rows, HypertensionRow{Patient: p, Vital: v})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return newestFirst(rows[i].Vital.RecordedAt, rows[j].Vital.RecordedAt, rows[i].Patient.ID, rows[j].Patient.ID)
	})
	return rows, nil
}

// Glycemia lists patients whose latest lab result is at or above the filter's
// glucose or HbA1c thresholds, newest result first.
func (e *Engine) Glycemia(ctx context.Context, f Filter) ([]GlycemiaRow, error) {
	patients, err := e.store.SearchPatients(ctx, f.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	rows := []GlycemiaRow{}
	if len(patients) == 0 {
		return rows, nil
	}

	labs, err := e.store.ListLabs(ctx, patientIDs(patients))
	if err != nil {
		return nil, fmt.Errorf("failed to list lab results: %w", err)
	}
	latest := Latest(labs)

	for _, p := range patients {
		l, ok := latest[p.ID]
		if !ok || !f.Thresholds.Hyperglycemic(l) || !f.InRange(l.RecordedAt) {
			continue
		}
		rows = append(rows, GlycemiaRow{Patient: p, Lab: l})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return newestFirst(rows[i].Lab.RecordedAt, rows[j].Lab.RecordedAt, rows[i].Patient.ID, rows[j].Patient.ID)
	})
	return rows, nil
}

// Overdue lists patients whose last activity is older than f.Days days,
// most overdue first.
func (e *Engine) Overdue(ctx context.Context, f Filter) ([]OverdueRow, error) {
	now := e.Now()
	patients, err := e.store.SearchPatients(ctx, f.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	rows := []OverdueRow{}
	if len(patients) == 0 {
		return rows, nil
	}

	ids := patientIDs(patients)
	vitals, err := e.store.ListVitals(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list vital signs: %w", err)
	}
	labs, err := e.store.ListLabs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab results: %w", err)
	}
	latestVitals := Latest(vitals)
	latestLabs := Latest(labs)

	for _, p := range patients {
		var vital *models.VitalSign
		if v, ok := latestVitals[p.ID]; ok {
			vital = &v
		}
		var lab *models.LabResult
		if l, ok := latestLabs[p.ID]; ok {
			lab = &l
		}
		last := LastActivity(p, vital, lab)
		if !Overdue(last, now, f.Days) {
			continue
		}
		rows = append(rows, OverdueRow{Patient: p, LastActivity: last, DaysSince: DaysSince(last, now)})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].LastActivity.Equal(rows[j].LastActivity) {
			return rows[i].LastActivity.Before(rows[j].LastActivity)
		}
		return rows[i].Patient.ID < rows[j].Patient.ID
	})
	return rows, nil
}

// Dashboard summarises the whole patient population with the default thresholds.
func (e *Engine) Dashboard(ctx context.Context) (*Summary, error) {
	now := e.Now()
	patients, err := e.store.SearchPatients(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	summary := &Summary{
		TotalPatients: len(patients),
		Thresholds:    e.config.Thresholds,
	}

	created := make([]time.Time, 0, len(patients))
	for _, p := range patients {
		created = append(created, p.CreatedAt)
	}
	summary.Weekly = WeeklyCounts(created, now, DashboardWeeks)

	if len(patients) == 0 {
		return summary, nil
	}

	ids := patientIDs(patients)
	vitals, err := e.store.ListVitals(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list vital signs: %w", err)
	}
	labs, err := e.store.ListLabs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab results: %w", err)
	}

	for _, v := range Latest(vitals) {
		if e.config.Thresholds.Hypertensive(v) {
			summary.HypertensionCount++
		}
	}
	for _, l := range Latest(labs) {
		if e.config.Thresholds.Hyperglycemic(l) {
			summary.GlycemiaCount++
		}
	}
	summary.HypertensionPct = percent(summary.HypertensionCount, summary.TotalPatients)
	summary.GlycemiaPct = percent(summary.GlycemiaCount, summary.TotalPatients)
	return summary, nil
}

func patientIDs(patients []models.Patient) []uint {
	ids := make([]uint, 0, len(patients))
	for _, p := range patients {
		ids = append(ids, p.ID)
	}
	return ids
}

func newestFirst(a, b time.Time, idA, idB uint) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA < idB
}

// percent returns part/total as a percentage rounded to one decimal.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
