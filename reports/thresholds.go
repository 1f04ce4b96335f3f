package reports

import (
	"MediTrack/models"
)

// Default clinical thresholds.
const (
	DefaultSBPHigh     = 140
	DefaultDBPHigh     = 90
	DefaultGlucoseHigh = 126.0
	DefaultHbA1cHigh   = 6.5
	DefaultOverdueDays = 30
)

// Thresholds holds the cut-offs at or above which a reading is flagged.
type Thresholds struct {
	SBPHigh     int     `json:"sbp_high"`
	DBPHigh     int     `json:"dbp_high"`
	GlucoseHigh float64 `json:"glucose_high"`
	HbA1cHigh   float64 `json:"hba1c_high"`
}

// DefaultThresholds returns the clinic-wide defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SBPHigh:     DefaultSBPHigh,
		DBPHigh:     DefaultDBPHigh,
		GlucoseHigh: DefaultGlucoseHigh,
		HbA1cHigh:   DefaultHbA1cHigh,
	}
}

// Hypertensive reports whether the systolic or the diastolic value reaches its
// threshold. A missing value never triggers its own condition.
func (t Thresholds) Hypertensive(v models.VitalSign) bool {
	if v.Systolic != nil && *v.Systolic >= t.SBPHigh {
		return true
	}
	return v.Diastolic != nil && *v.Diastolic >= t.DBPHigh
}

// Hyperglycemic reports whether glucose or HbA1c reaches its threshold.
func (t Thresholds) Hyperglycemic(l models.LabResult) bool {
	if l.Glucose != nil && *l.Glucose >= t.GlucoseHigh {
		return true
	}
	return l.HbA1c != nil && *l.HbA1c >= t.HbA1cHigh
}
