package services

import (
	"context"
	"time"

	"MediTrack/models"
	"MediTrack/utils"
)

// RecordStore is the persistence of vital signs and lab results.
type RecordStore interface {
	CreateVital(ctx context.Context, vital *models.VitalSign) error
	CreateLab(ctx context.Context, lab *models.LabResult) error
	VitalsByPatient(ctx context.Context, patientID uint) ([]models.VitalSign, error)
	LabsByPatient(ctx context.Context, patientID uint) ([]models.LabResult, error)
}

// RecordService records measurements against existing patients.
type RecordService struct {
	patients PatientStore
	records  RecordStore
	now      func() time.Time
}

func NewRecordService(patients PatientStore, records RecordStore) *RecordService {
	return &RecordService{patients: patients, records: records, now: time.Now}
}

// AddVital records a vital sign. A missing recorded_at means now.
func (s *RecordService) AddVital(ctx context.Context, patientID uint, in models.VitalInput) (*models.VitalSign, error) {
	if err := utils.ValidateVitalInput(in); err != nil {
		return nil, validationError(err)
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	recordedAt, err := utils.ParseRecordedAt(in.RecordedAt, s.now())
	if err != nil {
		return nil, validationError(err)
	}

	vital := &models.VitalSign{
		PatientID:  patientID,
		Systolic:   in.Systolic,
		Diastolic:  in.Diastolic,
		HeartRate:  in.HeartRate,
		SpO2:       in.SpO2,
		RecordedAt: recordedAt,
	}
	if err := s.records.CreateVital(ctx, vital); err != nil {
		return nil, err
	}
	return vital, nil
}

// AddLab records a lab result. A missing recorded_at means now.
func (s *RecordService) AddLab(ctx context.Context, patientID uint, in models.LabInput) (*models.LabResult, error) {
	if err := utils.ValidateLabInput(in); err != nil {
		return nil, validationError(err)
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	recordedAt, err := utils.ParseRecordedAt(in.RecordedAt, s.now())
	if err != nil {
		return nil, validationError(err)
	}

	lab := &models.LabResult{
		PatientID:  patientID,
		Glucose:    in.Glucose,
		HbA1c:      in.HbA1c,
		RecordedAt: recordedAt,
	}
	if err := s.records.CreateLab(ctx, lab); err != nil {
		return nil, err
	}
	return lab, nil
}

func (s *RecordService) Vitals(ctx context.Context, patientID uint) ([]models.VitalSign, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.records.VitalsByPatient(ctx, patientID)
}

func (s *RecordService) Labs(ctx context.Context, patientID uint) ([]models.LabResult, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.records.LabsByPatient(ctx, patientID)
}
