package reports

import (
	"context"
	"strings"
	"time"

	"MediTrack/models"
)

var t0 = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)

type memoryStore struct {
	patients []models.Patient
	vitals   []models.VitalSign
	labs     []models.LabResult
	err      error
}

func (s *memoryStore) SearchPatients(_ context.Context, query string) ([]models.Patient, error) {
	if s.err != nil {
		return nil, s.err
	}
	query = strings.ToLower(query)
	out := []models.Patient{}
	for _, p := range s.patients {
		if query == "" ||
			strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(optString(p.MRN)), query) ||
			strings.Contains(strings.ToLower(optString(p.Phone)), query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memoryStore) ListVitals(_ context.Context, ids []uint) ([]models.VitalSign, error) {
	wanted := idSet(ids)
	out := []models.VitalSign{}
	for _, v := range s.vitals {
		if wanted[v.PatientID] {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *memoryStore) ListLabs(_ context.Context, ids []uint) ([]models.LabResult, error) {
	wanted := idSet(ids)
	out := []models.LabResult{}
	for _, l := range s.labs {
		if wanted[l.PatientID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func idSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func patient(id uint, name string, created time.Time) models.Patient {
	return models.Patient{ID: id, Name: name, CreatedAt: created}
}

func vital(id, patientID uint, sbp, dbp *int, at time.Time) models.VitalSign {
	return models.VitalSign{ID: id, PatientID: patientID, Systolic: sbp, Diastolic: dbp, RecordedAt: at}
}

func lab(id, patientID uint, glucose, hba1c *float64, at time.Time) models.LabResult {
	return models.LabResult{ID: id, PatientID: patientID, Glucose: glucose, HbA1c: hba1c, RecordedAt: at}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
