package models

import (
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// PatientInput is the body of a patient create or update request.
type PatientInput struct {
	Name           string `json:"name"`
	MRN            string `json:"mrn"`
	Gender         string `json:"gender"`
	DateOfBirth    string `json:"dob"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history"`
	Note           string `json:"note"`
}

// Apply copies the input onto p. Blank optional fields become NULL.
// The input must have been validated.
func (in PatientInput) Apply(p *Patient) {
	p.Name = strings.TrimSpace(in.Name)
	p.MRN = optional(in.MRN)
	p.Gender = optional(in.Gender)
	p.Phone = optional(in.Phone)
	p.Email = optional(in.Email)
	p.Address = optional(in.Address)
	p.MedicalHistory = optional(in.MedicalHistory)
	p.Note = optional(in.Note)

	p.DateOfBirth = nil
	if dob, err := time.Parse(DateLayout, strings.TrimSpace(in.DateOfBirth)); err == nil {
		p.DateOfBirth = &dob
	}
}

// VitalInput is the body of a vital sign entry.
type VitalInput struct {
	Systolic   *int   `json:"systolic"`
	Diastolic  *int   `json:"diastolic"`
	HeartRate  *int   `json:"heart_rate"`
	SpO2       *int   `json:"spo2"`
	RecordedAt string `json:"recorded_at"`
}

// LabInput is the body of a lab result entry.
type LabInput struct {
	Glucose    *float64 `json:"glucose"`
	HbA1c      *float64 `json:"hba1c"`
	RecordedAt string   `json:"recorded_at"`
}

// Credentials is the body of a login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
