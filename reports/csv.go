package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// TimeLayout is how timestamps are rendered in CSV exports.
const TimeLayout = "2006-01-02 15:04"

var (
	hypertensionHeader = []string{"created_at", "mrn", "name", "phone", "sbp", "dbp", "hr", "spo2", "recorded_at"}
	glycemiaHeader     = []string{"created_at", "mrn", "name", "phone", "glucose_mg_dl", "hba1c_pct", "recorded_at"}
	overdueHeader      = []string{"mrn", "name", "phone", "last_activity", "days_since"}
)

// WriteHypertensionCSV serialises rows in the order given.
func WriteHypertensionCSV(w io.Writer, rows []HypertensionRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, hypertensionHeader)
	for _, r := range rows {
		records = append(records, []string{
			formatTime(r.Patient.CreatedAt),
			optString(r.Patient.MRN),
			r.Patient.Name,
			optString(r.Patient.Phone),
			optInt(r.Vital.Systolic),
			optInt(r.Vital.Diastolic),
			optInt(r.Vital.HeartRate),
			optInt(r.Vital.SpO2),
			formatTime(r.Vital.RecordedAt),
		})
	}
	return writeAll(w, records)
}

// WriteGlycemiaCSV serialises rows in the order given.
func WriteGlycemiaCSV(w io.Writer, rows []GlycemiaRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, glycemiaHeader)
	for _, r := range rows {
		records = append(records, []string{
			formatTime(r.Patient.CreatedAt),
			optString(r.Patient.MRN),
			r.Patient.Name,
			optString(r.Patient.Phone),
			optFloat(r.Lab.Glucose),
			optFloat(r.Lab.HbA1c),
			formatTime(r.Lab.RecordedAt),
		})
	}
	return writeAll(w, records)
}

// WriteOverdueCSV serialises rows in the order given.
func WriteOverdueCSV(w io.Writer, rows []OverdueRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, overdueHeader)
	for _, r := range rows {
		records = append(records, []string{
			optString(r.Patient.MRN),
			r.Patient.Name,
			optString(r.Patient.Phone),
			formatTime(r.LastActivity),
			optInt(r.DaysSince),
		})
	}
	return writeAll(w, records)
}

// Attachment names of the exports.
const (
	HypertensionFilename = "hypertension.csv"
	GlycemiaFilename     = "glycemia.csv"
)

// OverdueFilename is the attachment name of an overdue export.
func OverdueFilename(days int) string {
	return fmt.Sprintf("overdue_%dd.csv", days)
}

func writeAll(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
