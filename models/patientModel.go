package models

import (
	"time"
)

// Gender values accepted for a patient. An empty value means "not specified".
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "Other"
)

// Patient model
type Patient struct {
	ID             uint        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	MRN            *string     `gorm:"column:mrn;size:32;uniqueIndex" json:"mrn"`
	Name           string      `gorm:"column:name;size:80;not null;index" json:"name"`
	Gender         *string     `gorm:"column:gender;size:10" json:"gender"`
	DateOfBirth    *time.Time  `gorm:"column:dob;type:date" json:"dob"`
	Phone          *string     `gorm:"column:phone;size:30" json:"phone"`
	Email          *string     `gorm:"column:email;size:120" json:"email"`
	Address        *string     `gorm:"column:address;size:255" json:"address"`
	MedicalHistory *string     `gorm:"column:medical_history;type:text" json:"medical_history"`
	Note           *string     `gorm:"column:note;type:text" json:"note"`
	CreatedAt      time.Time   `gorm:"column:created_at;autoCreateTime;<-:create;index" json:"created_at"`
	Vitals         []VitalSign `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Labs           []LabResult `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// AgeAt returns the patient's age in whole years on the given day, or nil when
// the date of birth is unknown.
func (p Patient) AgeAt(now time.Time) *int {
	if p.DateOfBirth == nil {
		return nil
	}
	dob := *p.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return &age
}

// VitalSign model. Every measurement is optional.
type VitalSign struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID  uint      `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Systolic   *int      `gorm:"column:systolic" json:"systolic"`
	Diastolic  *int      `gorm:"column:diastolic" json:"diastolic"`
	HeartRate  *int      `gorm:"column:heart_rate" json:"heart_rate"`
	SpO2       *int      `gorm:"column:spo2" json:"spo2"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null;index" json:"recorded_at"`
}

func (VitalSign) TableName() string {
	return "vital_sign"
}

func (v VitalSign) RecordID() uint          { return v.ID }
func (v VitalSign) OwnerID() uint           { return v.PatientID }
func (v VitalSign) RecordedTime() time.Time { return v.RecordedAt }

// LabResult model. Glucose is in mg/dL, HbA1c in percent.
type LabResult struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID  uint      `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Glucose    *float64  `gorm:"column:glucose" json:"glucose"`
	HbA1c      *float64  `gorm:"column:hba1c" json:"hba1c"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null;index" json:"recorded_at"`
}

func (LabResult) TableName() string {
	return "lab_result"
}

func (l LabResult) RecordID() uint          { return l.ID }
func (l LabResult) OwnerID() uint           { return l.PatientID }
func (l LabResult) RecordedTime() time.Time { return l.RecordedAt }
