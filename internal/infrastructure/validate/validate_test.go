package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripName(t *testing.T) {
	v := TripName()

	assert.NoError(t, v("Goa Weekend"))

	err := v("   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tripName")

	assert.Error(t, v(strings.Repeat("a", 121)))
}

func TestTripCode(t *testing.T) {
	v := TripCode()

	assert.NoError(t, v("AB12CD"))
	assert.Error(t, v(""))
	assert.Error(t, v("ABC"))
	assert.Error(t, v("AB-2CD"))
}

func TestOneOf(t *testing.T) {
	v := OneOf("mongo", "memory")
	assert.NoError(t, v("memory"))
	assert.EqualError(t, v("sql"), "must be one of: mongo, memory")
}

func TestDate(t *testing.T) {
	v := Date()
	assert.NoError(t, v("2025-03-10"))
	assert.NoError(t, v("2025-03-10T10:00:00Z"))
	assert.Error(t, v("10/03/2025"))
}

func TestWithinDays(t *testing.T) {
	v := WithinDays("2025-01-01", 7)

	assert.NoError(t, v("2025-01-07"))
	assert.NoError(t, v("2024-12-25"))
	assert.Error(t, v("2025-01-08"))
	assert.Error(t, v("9999-12-31"))
	assert.NoError(t, WithinDays("soon", 7)("9999-12-31"))
}
