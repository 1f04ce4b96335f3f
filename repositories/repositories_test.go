package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	assert.Nil(t, chunk(nil, 2))
	assert.Equal(t, [][]uint{{1, 2}, {3, 4}, {5}}, chunk([]uint{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]uint{{1, 2}}, chunk([]uint{1, 2}, 2))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
	assert.Equal(t, "chen", escapeLike("chen"))
}

func TestCacheKeys(t *testing.T) {
	r := &PatientRepository{}
	assert.Equal(t, "patient:42", r.getPatientCacheKey(42))
	assert.Equal(t, "patient_lock:42", r.getPatientLockKey(42))
}
