package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"MediTrack/models"
)

// idChunk bounds the number of bind parameters per IN query.
const idChunk = 5000

// RecordRepository stores vital signs and lab results.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) CreateVital(ctx context.Context, vital *models.VitalSign) error {
	if err := r.db.WithContext(ctx).Create(vital).Error; err != nil {
		return fmt.Errorf("failed to create vital sign: %w", err)
	}
	return nil
}

func (r *RecordRepository) CreateLab(ctx context.Context, lab *models.LabResult) error {
	if err := r.db.WithContext(ctx).Create(lab).Error; err != nil {
		return fmt.Errorf("failed to create lab result: %w", err)
	}
	return nil
}

// VitalsByPatient returns the patient's vital signs in chronological order.
func (r *RecordRepository) VitalsByPatient(ctx context.Context, patientID uint) ([]models.VitalSign, error) {
	var vitals []models.VitalSign
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("recorded_at ASC").Order("id ASC").
		Find(&vitals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vital signs: %w", err)
	}
	return vitals, nil
}

// LabsByPatient returns the patient's lab results in chronological order.
func (r *RecordRepository) LabsByPatient(ctx context.Context, patientID uint) ([]models.LabResult, error) {
	var labs []models.LabResult
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("recorded_at ASC").Order("id ASC").
		Find(&labs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lab results: %w", err)
	}
	return labs, nil
}

// ListVitals returns every vital sign of the given patients.
func (r *RecordRepository) ListVitals(ctx context.Context, patientIDs []uint) ([]models.VitalSign, error) {
	out := []models.VitalSign{}
	for _, ids := range chunk(patientIDs, idChunk) {
		var vitals []models.VitalSign
		if err := r.db.WithContext(ctx).Where("patient_id IN ?", ids).Find(&vitals).Error; err != nil {
			return nil, fmt.Errorf("failed to list vital signs: %w", err)
		}
		out = append(out, vitals...)
	}
	return out, nil
}

// ListLabs returns every lab result of the given patients.
func (r *RecordRepository) ListLabs(ctx context.Context, patientIDs []uint) ([]models.LabResult, error) {
	out := []models.LabResult{}
	for _, ids := range chunk(patientIDs, idChunk) {
		var labs []models.LabResult
		if err := r.db.WithContext(ctx).Where("patient_id IN ?", ids).Find(&labs).Error; err != nil {
			return nil, fmt.Errorf("failed to list lab results: %w", err)
		}
		out = append(out, labs...)
	}
	return out, nil
}

func chunk(ids []uint, size int) [][]uint {
	var out [][]uint
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}
