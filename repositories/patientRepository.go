package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"MediTrack/cache"
	"MediTrack/database"
	"MediTrack/models"
)

const (
	PatientCacheExpiry = 24 * time.Hour
	queryTimeout       = 5 * time.Second
)

type PatientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) *PatientRepository {
	return &PatientRepository{db: db, cache: cache}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	patient.ID = 0
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return translatePatientError(err, "failed to create patient")
	}
	return nil
}

// GetByID returns a patient, serving it from the cache when possible.
func (r *PatientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cacheKey := r.getPatientCacheKey(id)
	var patient models.Patient
	if hit, err := r.cache.GetJSON(ctx, cacheKey, &patient); err != nil {
		log.Warn().Err(err).Uint("patient_id", id).Msg("failed to get patient from cache")
	} else if hit {
		return &patient, nil
	}

	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, patient, PatientCacheExpiry); err != nil {
		log.Warn().Err(err).Uint("patient_id", id).Msg("failed to set patient in cache")
	}
	return &patient, nil
}

// Search lists patients whose name, MRN or phone contains query, ignoring
// case, newest first. An empty query lists everyone.
func (r *PatientRepository) Search(ctx context.Context, query string) ([]models.Patient, error) {
	var patients []models.Patient
	tx := r.db.WithContext(ctx).Model(&models.Patient{})
	if query = strings.TrimSpace(query); query != "" {
		like := "%" + escapeLike(strings.ToLower(query)) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(mrn, '')) LIKE ? OR LOWER(COALESCE(phone, '')) LIKE ?", like, like, like)
	}
	if err := tx.Order("created_at DESC").Order("id DESC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	return database.WithLock(ctx, r.getPatientLockKey(patient.ID), database.DefaultLockOptions, func() error {
		result := r.db.WithContext(ctx).Model(&models.Patient{ID: patient.ID}).
			Select("mrn", "name", "gender", "dob", "phone", "email", "address", "medical_history", "note").
			Updates(patient)
		if result.Error != nil {
			return translatePatientError(result.Error, "failed to update patient")
		}
		if result.RowsAffected == 0 {
			return ErrPatientNotFound
		}
		r.invalidate(ctx, patient.ID)
		return nil
	})
}

// DeletePatientAndRelated removes the patient with all vital signs and lab
// results in one transaction.
func (r *PatientRepository) DeletePatientAndRelated(ctx context.Context, id uint) error {
	return database.WithLock(ctx, r.getPatientLockKey(id), database.DefaultLockOptions, func() error {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("patient_id = ?", id).Delete(&models.VitalSign{}).Error; err != nil {
				return fmt.Errorf("failed to delete vital signs: %w", err)
			}
			if err := tx.Where("patient_id = ?", id).Delete(&models.LabResult{}).Error; err != nil {
				return fmt.Errorf("failed to delete lab results: %w", err)
			}
			result := tx.Delete(&models.Patient{}, "id = ?", id)
			if result.Error != nil {
				return fmt.Errorf("failed to delete patient: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrPatientNotFound
			}
			return nil
		})
		if err != nil {
			return err
		}
		r.invalidate(ctx, id)
		return nil
	})
}

func (r *PatientRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(id)); err != nil {
		log.Warn().Err(err).Uint("patient_id", id).Msg("failed to delete patient cache")
	}
}

func (r *PatientRepository) getPatientCacheKey(id uint) string {
	return fmt.Sprintf("patient:%d", id)
}

func (r *PatientRepository) getPatientLockKey(id uint) string {
	return fmt.Sprintf("patient_lock:%d", id)
}

func translatePatientError(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMRN
	}
	return fmt.Errorf("%s: %w", msg, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
