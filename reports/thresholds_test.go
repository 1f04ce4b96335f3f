package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MediTrack/models"
)

func TestThresholds_Hypertensive(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name string
		sbp  *int
		dbp  *int
		want bool
	}{
		{"both normal", intPtr(120), intPtr(80), false},
		{"systolic at threshold", intPtr(140), intPtr(80), true},
		{"diastolic at threshold", intPtr(120), intPtr(90), true},
		{"systolic missing diastolic high", nil, intPtr(95), true},
		{"diastolic missing systolic high", intPtr(160), nil, true},
		{"systolic missing diastolic normal", nil, intPtr(70), false},
		{"both missing", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := models.VitalSign{Systolic: tt.sbp, Diastolic: tt.dbp}
			assert.Equal(t, tt.want, th.Hypertensive(v))
		})
	}
}

func TestThresholds_Hyperglycemic(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name    string
		glucose *float64
		hba1c   *float64
		want    bool
	}{
		{"both normal", floatPtr(99), floatPtr(5.4), false},
		{"glucose at threshold", floatPtr(126), nil, true},
		{"hba1c at threshold", nil, floatPtr(6.5), true},
		{"hba1c just below", floatPtr(100), floatPtr(6.49), false},
		{"both missing", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := models.LabResult{Glucose: tt.glucose, HbA1c: tt.hba1c}
			assert.Equal(t, tt.want, th.Hyperglycemic(l))
		})
	}
}

func TestThresholds_RaisingNeverAddsFlags(t *testing.T) {
	var vitals []models.VitalSign
	for sbp := 100; sbp <= 200; sbp += 7 {
		for dbp := 60; dbp <= 120; dbp += 9 {
			vitals = append(vitals, models.VitalSign{Systolic: intPtr(sbp), Diastolic: intPtr(dbp)})
		}
		vitals = append(vitals, models.VitalSign{Systolic: intPtr(sbp)})
	}

	previous := len(vitals) + 1
	for raise := 0; raise <= 80; raise += 10 {
		th := Thresholds{SBPHigh: 120 + raise, DBPHigh: 80 + raise}
		lower := Thresholds{SBPHigh: 120 + raise - 10, DBPHigh: 80 + raise - 10}
		flagged := 0
		for _, v := range vitals {
			if th.Hypertensive(v) {
				flagged++
				assert.True(t, lower.Hypertensive(v), "reading flagged at a higher threshold must be flagged at a lower one")
			}
		}
		assert.LessOrEqual(t, flagged, previous)
		previous = flagged
	}
}
