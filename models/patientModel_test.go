package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatient_AgeAt(t *testing.T) {
	dob := time.Date(1980, time.March, 15, 0, 0, 0, 0, time.UTC)
	p := Patient{DateOfBirth: &dob}

	before := p.AgeAt(time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC))
	on := p.AgeAt(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, before)
	require.NotNil(t, on)
	assert.Equal(t, 44, *before)
	assert.Equal(t, 45, *on)
}

func TestPatient_AgeAtLeapDay(t *testing.T) {
	dob := time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)
	p := Patient{DateOfBirth: &dob}

	assert.Equal(t, 24, *p.AgeAt(time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 25, *p.AgeAt(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPatient_AgeAtWithoutBirthDate(t *testing.T) {
	assert.Nil(t, Patient{}.AgeAt(time.Now()))
}
