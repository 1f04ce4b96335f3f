package reports

import (
	"time"

	"MediTrack/models"
)

const day = 24 * time.Hour

// LastActivity returns the latest of the patient's creation time and the
// recorded times of its latest vital and lab. Missing readings fall back to the
// creation time, so the result is never before CreatedAt.
func LastActivity(p models.Patient, vital *models.VitalSign, lab *models.LabResult) time.Time {
	last := p.CreatedAt
	if vital != nil && vital.RecordedAt.After(last) {
		last = vital.RecordedAt
	}
	if lab != nil && lab.RecordedAt.After(last) {
		last = lab.RecordedAt
	}
	return last
}

// Overdue reports whether last is strictly older than days before now.
func Overdue(last, now time.Time, days int) bool {
	return last.Before(now.AddDate(0, 0, -days))
}

// DaysSince returns the number of whole days elapsed between last and now, or
// nil when last is unknown.
func DaysSince(last, now time.Time) *int {
	if last.IsZero() {
		return nil
	}
	days := int(now.Sub(last) / day)
	return &days
}
