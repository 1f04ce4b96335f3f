package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediTrack/models"
	"MediTrack/repositories"
	"MediTrack/utils"
)

var now = time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

type fakePatients struct {
	nextID   uint
	patients map[uint]models.Patient
	deleted  []uint
}

func newFakePatients() *fakePatients {
	return &fakePatients{patients: map[uint]models.Patient{}}
}

func (f *fakePatients) Create(_ context.Context, p *models.Patient) error {
	for _, existing := range f.patients {
		if p.MRN != nil && existing.MRN != nil && *p.MRN == *existing.MRN {
			return repositories.ErrDuplicateMRN
		}
	}
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = now
	f.patients[p.ID] = *p
	return nil
}

func (f *fakePatients) GetByID(_ context.Context, id uint) (*models.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, repositories.ErrPatientNotFound
	}
	return &p, nil
}

func (f *fakePatients) Search(_ context.Context, _ string) ([]models.Patient, error) {
	out := []models.Patient{}
	for _, p := range f.patients {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePatients) Update(_ context.Context, p *models.Patient) error {
	if _, ok := f.patients[p.ID]; !ok {
		return repositories.ErrPatientNotFound
	}
	f.patients[p.ID] = *p
	return nil
}

func (f *fakePatients) DeletePatientAndRelated(_ context.Context, id uint) error {
	if _, ok := f.patients[id]; !ok {
		return repositories.ErrPatientNotFound
	}
	delete(f.patients, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRecords struct {
	vitals []models.VitalSign
	labs   []models.LabResult
}

func (f *fakeRecords) CreateVital(_ context.Context, v *models.VitalSign) error {
	v.ID = uint(len(f.vitals) + 1)
	f.vitals = append(f.vitals, *v)
	return nil
}

func (f *fakeRecords) CreateLab(_ context.Context, l *models.LabResult) error {
	l.ID = uint(len(f.labs) + 1)
	f.labs = append(f.labs, *l)
	return nil
}

func (f *fakeRecords) VitalsByPatient(_ context.Context, id uint) ([]models.VitalSign, error) {
	out := []models.VitalSign{}
	for _, v := range f.vitals {
		if v.PatientID == id {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeRecords) LabsByPatient(_ context.Context, id uint) ([]models.LabResult, error) {
	out := []models.LabResult{}
	for _, l := range f.labs {
		if l.PatientID == id {
			out = append(out, l)
		}
	}
	return out, nil
}

func fixedNow() time.Time { return now }

func TestPatientService_CreateAndUpdate(t *testing.T) {
	patients := newFakePatients()
	svc := NewPatientService(patients, &fakeRecords{})
	svc.now = fixedNow
	ctx := context.Background()

	p, err := svc.Create(ctx, models.PatientInput{Name: "Chen Mei", MRN: "A001", Phone: " "})
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.ID)
	assert.Nil(t, p.Phone)

	_, err = svc.Create(ctx, models.PatientInput{Name: "Other", MRN: "A001"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateMRN)

	_, err = svc.Create(ctx, models.PatientInput{})
	assert.True(t, IsValidation(err))

	updated, err := svc.Update(ctx, p.ID, models.PatientInput{Name: "Chen Mei-Ling", Gender: "F"})
	require.NoError(t, err)
	assert.Equal(t, "Chen Mei-Ling", updated.Name)
	assert.Nil(t, updated.MRN)
	assert.Equal(t, now, updated.CreatedAt, "created_at is kept")

	_, err = svc.Update(ctx, 99, models.PatientInput{Name: "Ghost"})
	assert.ErrorIs(t, err, repositories.ErrPatientNotFound)
}

func TestPatientService_Delete(t *testing.T) {
	patients := newFakePatients()
	svc := NewPatientService(patients, &fakeRecords{})
	ctx := context.Background()

	p, err := svc.Create(ctx, models.PatientInput{Name: "Amy"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.Equal(t, []uint{p.ID}, patients.deleted)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), repositories.ErrPatientNotFound)
}

func TestPatientService_Detail(t *testing.T) {
	patients := newFakePatients()
	records := &fakeRecords{}
	svc := NewPatientService(patients, records)
	svc.now = fixedNow
	ctx := context.Background()

	p, err := svc.Create(ctx, models.PatientInput{Name: "Amy", DateOfBirth: "1980-03-15"})
	require.NoError(t, err)
	sbp := 130
	glucose := 101.5
	records.vitals = []models.VitalSign{{ID: 1, PatientID: p.ID, Systolic: &sbp, RecordedAt: now.Add(-time.Hour)}}
	records.labs = []models.LabResult{{ID: 1, PatientID: p.ID, Glucose: &glucose, RecordedAt: now.Add(-2 * time.Hour)}}

	detail, err := svc.Detail(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Age)
	assert.Equal(t, 44, *detail.Age)
	assert.Len(t, detail.Vitals, 1)
	assert.Equal(t, []string{"2025-03-12 09:00"}, detail.Charts.VitalLabels)
	assert.Equal(t, []*int{&sbp}, detail.Charts.Systolic)
	assert.Equal(t, []*int{nil}, detail.Charts.Diastolic)
	assert.Equal(t, []string{"2025-03-12 08:00"}, detail.Charts.LabLabels)

	_, err = svc.Detail(ctx, 42)
	assert.ErrorIs(t, err, repositories.ErrPatientNotFound)
}

func TestRecordService(t *testing.T) {
	patients := newFakePatients()
	records := &fakeRecords{}
	svc := NewRecordService(patients, records)
	svc.now = fixedNow
	ctx := context.Background()
	require.NoError(t, patients.Create(ctx, &models.Patient{Name: "Amy"}))

	sbp := 150
	vital, err := svc.AddVital(ctx, 1, models.VitalInput{Systolic: &sbp})
	require.NoError(t, err)
	assert.Equal(t, now, vital.RecordedAt)

	vital, err = svc.AddVital(ctx, 1, models.VitalInput{Systolic: &sbp, RecordedAt: "2025-03-01T08:30"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 1, 8, 30, 0, 0, time.UTC), vital.RecordedAt)

	bad := 400
	_, err = svc.AddVital(ctx, 1, models.VitalInput{Systolic: &bad})
	assert.True(t, IsValidation(err))

	_, err = svc.AddVital(ctx, 2, models.VitalInput{Systolic: &sbp})
	assert.ErrorIs(t, err, repositories.ErrPatientNotFound)

	a1c := 7.0
	lab, err := svc.AddLab(ctx, 1, models.LabInput{HbA1c: &a1c})
	require.NoError(t, err)
	assert.Equal(t, uint(1), lab.PatientID)

	vitals, err := svc.Vitals(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, vitals, 2)
	_, err = svc.Labs(ctx, 2)
	assert.ErrorIs(t, err, repositories.ErrPatientNotFound)
}

type fakeUsers struct {
	users []models.User
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return repositories.ErrUsernameTaken
		}
	}
	user.ID = uint(len(f.users) + 1)
	f.users = append(f.users, *user)
	return nil
}

func TestUserService(t *testing.T) {
	tokens, err := utils.NewTokenMaker("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)
	svc := NewUserService(&fakeUsers{}, tokens)
	ctx := context.Background()

	user, err := svc.ValidateAndCreateUser(ctx, "nurse", "secret1", models.RoleClinician)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, err = svc.ValidateAndCreateUser(ctx, "nurse", "secret1", models.RoleClinician)
	assert.ErrorIs(t, err, repositories.ErrUsernameTaken)
	_, err = svc.ValidateAndCreateUser(ctx, "x", "", "root")
	assert.True(t, IsValidation(err))

	result, err := svc.Login(ctx, models.Credentials{Username: "nurse", Password: "secret1"})
	require.NoError(t, err)
	claims, err := tokens.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleClinician, claims.Role)

	_, err = svc.Login(ctx, models.Credentials{Username: "nurse", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, models.Credentials{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
