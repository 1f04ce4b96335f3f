package repositories

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrDuplicateMRN    = errors.New("a patient with this MRN already exists")
	ErrUsernameTaken   = errors.New("username already exists")
)
