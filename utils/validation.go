package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"MediTrack/models"
)

// RecordedAtLayout is the minute precision format accepted for measurement times.
const RecordedAtLayout = "2006-01-02T15:04"

var (
	ErrInvalidDate   = errors.New("must be a date in YYYY-MM-DD format")
	ErrFutureDate    = errors.New("must not be in the future")
	ErrInvalidGender = errors.New("must be one of M, F or Other")
	ErrInvalidTime   = errors.New("must be a time in YYYY-MM-DDTHH:MM or RFC3339 format")
	ErrInvalidRole   = errors.New("must be admin or clinician")
)

// ValidatePatientInput validates a patient form. now is used to reject
// dates of birth in the future.
func ValidatePatientInput(in models.PatientInput, now time.Time) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.By(trimmedRequired), validation.RuneLength(0, 80)),
		validation.Field(&in.MRN, validation.RuneLength(0, 32)),
		validation.Field(&in.Gender, validation.By(validGender)),
		validation.Field(&in.DateOfBirth, validation.By(pastDate(now))),
		validation.Field(&in.Phone, validation.RuneLength(0, 30)),
		validation.Field(&in.Email, validation.RuneLength(0, 120), is.EmailFormat),
		validation.Field(&in.Address, validation.RuneLength(0, 255)),
		validation.Field(&in.MedicalHistory, validation.RuneLength(0, 5000)),
		validation.Field(&in.Note, validation.RuneLength(0, 5000)),
	)
}

// ValidateVitalInput validates a vital sign entry.
func ValidateVitalInput(in models.VitalInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Systolic, validation.By(intBetween(50, 300))),
		validation.Field(&in.Diastolic, validation.By(intBetween(30, 200))),
		validation.Field(&in.HeartRate, validation.By(intBetween(20, 250))),
		validation.Field(&in.SpO2, validation.By(intBetween(50, 100))),
		validation.Field(&in.RecordedAt, validation.By(recordedAt)),
	)
}

// ValidateLabInput validates a lab result entry.
func ValidateLabInput(in models.LabInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Glucose, validation.By(floatBetween(0, 1000))),
		validation.Field(&in.HbA1c, validation.By(floatBetween(0, 25))),
		validation.Field(&in.RecordedAt, validation.By(recordedAt)),
	)
}

// ValidateUserData validates a new staff account.
func ValidateUserData(username, password, role string) error {
	return validation.Errors{
		"username": validation.Validate(username, validation.Required, validation.Length(3, 64), is.PrintableASCII),
		"password": validation.Validate(password, validation.Required, validation.Length(6, 72)),
		"role":     validation.Validate(role, validation.Required, validation.By(validRole)),
	}.Filter()
}

// ParseRecordedAt parses a measurement time. An empty value means now.
func ParseRecordedAt(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.UTC(), nil
	}
	if t, err := time.ParseInLocation(RecordedAtLayout, value, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidTime
}

func trimmedRequired(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
}

func validGender(value interface{}) error {
	switch strings.TrimSpace(value.(string)) {
	case "", models.GenderMale, models.GenderFemale, models.GenderOther:
		return nil
	}
	return ErrInvalidGender
}

func validRole(value interface{}) error {
	if !models.ValidRole(value.(string)) {
		return ErrInvalidRole
	}
	return nil
}

func pastDate(now time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		s := strings.TrimSpace(value.(string))
		if s == "" {
			return nil
		}
		dob, err := time.Parse(models.DateLayout, s)
		if err != nil {
			return ErrInvalidDate
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if dob.After(today) {
			return ErrFutureDate
		}
		return nil
	}
}

func recordedAt(value interface{}) error {
	_, err := ParseRecordedAt(value.(string), time.Now())
	return err
}

// intBetween checks an optional integer. Zero is not treated as empty.
func intBetween(min, max int) validation.RuleFunc {
	return func(value interface{}) error {
		v, _ := value.(*int)
		if v == nil {
			return nil
		}
		if *v < min || *v > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}

func floatBetween(min, max float64) validation.RuleFunc {
	return func(value interface{}) error {
		v, _ := value.(*float64)
		if v == nil {
			return nil
		}
		if *v < min || *v > max {
			return fmt.Errorf("must be between %g and %g", min, max)
		}
		return nil
	}
}
