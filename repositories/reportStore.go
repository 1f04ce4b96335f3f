package repositories

import (
	"context"

	"MediTrack/models"
	"MediTrack/reports"
)

// ReportStore is the database backed reports.Store.
type ReportStore struct {
	patients *PatientRepository
	records  *RecordRepository
}

var _ reports.Store = (*ReportStore)(nil)

func NewReportStore(patients *PatientRepository, records *RecordRepository) *ReportStore {
	return &ReportStore{patients: patients, records: records}
}

func (s *ReportStore) SearchPatients(ctx context.Context, query string) ([]models.Patient, error) {
	return s.patients.Search(ctx, query)
}

func (s *ReportStore) ListVitals(ctx context.Context, patientIDs []uint) ([]models.VitalSign, error) {
	return s.records.ListVitals(ctx, patientIDs)
}

func (s *ReportStore) ListLabs(ctx context.Context, patientIDs []uint) ([]models.LabResult, error) {
	return s.records.ListLabs(ctx, patientIDs)
}
