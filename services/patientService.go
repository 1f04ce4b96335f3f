package services

import (
	"context"
	"time"

	"MediTrack/models"
	"MediTrack/utils"
)

// SeriesLayout formats the labels of the chart series.
const SeriesLayout = "2006-01-02 15:04"

// PatientStore is the persistence the patient service needs.
type PatientStore interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	Search(ctx context.Context, query string) ([]models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	DeletePatientAndRelated(ctx context.Context, id uint) error
}

// PatientDetail is a patient together with its measurement history.
type PatientDetail struct {
	Patient models.Patient     `json:"patient"`
	Age     *int               `json:"age"`
	Vitals  []models.VitalSign `json:"vitals"`
	Labs    []models.LabResult `json:"labs"`
	Charts  ChartSeries        `json:"charts"`
}

// ChartSeries holds parallel arrays for plotting, one entry per record.
type ChartSeries struct {
	VitalLabels []string   `json:"vital_labels"`
	Systolic    []*int     `json:"sbp"`
	Diastolic   []*int     `json:"dbp"`
	HeartRate   []*int     `json:"hr"`
	SpO2        []*int     `json:"spo2"`
	LabLabels   []string   `json:"lab_labels"`
	Glucose     []*float64 `json:"glucose"`
	HbA1c       []*float64 `json:"hba1c"`
}

type PatientService struct {
	repository PatientStore
	records    RecordStore
	now        func() time.Time
}

func NewPatientService(repository PatientStore, records RecordStore) *PatientService {
	return &PatientService{repository: repository, records: records, now: time.Now}
}

func (s *PatientService) Create(ctx context.Context, in models.PatientInput) (*models.Patient, error) {
	if err := utils.ValidatePatientInput(in, s.now().UTC()); err != nil {
		return nil, validationError(err)
	}
	var patient models.Patient
	in.Apply(&patient)
	if err := s.repository.Create(ctx, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (s *PatientService) Search(ctx context.Context, query string) ([]models.Patient, error) {
	return s.repository.Search(ctx, query)
}

func (s *PatientService) Update(ctx context.Context, id uint, in models.PatientInput) (*models.Patient, error) {
	if err := utils.ValidatePatientInput(in, s.now().UTC()); err != nil {
		return nil, validationError(err)
	}
	patient, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(patient)
	if err := s.repository.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// Delete removes the patient and every measurement recorded for it.
func (s *PatientService) Delete(ctx context.Context, id uint) error {
	return s.repository.DeletePatientAndRelated(ctx, id)
}

// Detail returns the patient with age, chronological history and chart series.
func (s *PatientService) Detail(ctx context.Context, id uint) (*PatientDetail, error) {
	patient, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vitals, err := s.records.VitalsByPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	labs, err := s.records.LabsByPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &PatientDetail{
		Patient: *patient,
		Age:     patient.AgeAt(s.now().UTC()),
		Vitals:  vitals,
		Labs:    labs,
		Charts:  buildSeries(vitals, labs),
	}
	return detail, nil
}

func buildSeries(vitals []models.VitalSign, labs []models.LabResult) ChartSeries {
	cs := ChartSeries{
		VitalLabels: make([]string, 0, len(vitals)),
		Systolic:    make([]*int, 0, len(vitals)),
		Diastolic:   make([]*int, 0, len(vitals)),
		HeartRate:   make([]*int, 0, len(vitals)),
		SpO2:        make([]*int, 0, len(vitals)),
		LabLabels:   make([]string, 0, len(labs)),
		Glucose:     make([]*float64, 0, len(labs)),
		HbA1c:       make([]*float64, 0, len(labs)),
	}
	for _, v := range vitals {
		cs.VitalLabels = append(cs.VitalLabels, v.RecordedAt.UTC().Format(SeriesLayout))
		cs.Systolic = append(cs.Systolic, v.Systolic)
		cs.Diastolic = append(cs.Diastolic, v.Diastolic)
		cs.HeartRate = append(cs.HeartRate, v.HeartRate)
		cs.SpO2 = append(cs.SpO2, v.SpO2)
	}
	for _, l := range labs {
		cs.LabLabels = append(cs.LabLabels, l.RecordedAt.UTC().Format(SeriesLayout))
		cs.Glucose = append(cs.Glucose, l.Glucose)
		cs.HbA1c = append(cs.HbA1c, l.HbA1c)
	}
	return cs
}
