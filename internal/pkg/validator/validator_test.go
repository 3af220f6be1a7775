package validator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidLatitude(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidLatitude(0))
	assert.True(t, IsValidLatitude(-31.9505))
	assert.True(t, IsValidLatitude(90))
	assert.True(t, IsValidLatitude(-90))
	assert.False(t, IsValidLatitude(90.0001))
	assert.False(t, IsValidLatitude(-91))
	assert.False(t, IsValidLatitude(math.NaN()))
}

func TestIsValidLongitude(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidLongitude(115.8605))
	assert.True(t, IsValidLongitude(180))
	assert.True(t, IsValidLongitude(-180))
	assert.False(t, IsValidLongitude(180.5))
	assert.False(t, IsValidLongitude(math.NaN()))
}

func TestIsValidTimeOfDay(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidTimeOfDay("07:00"))
	assert.True(t, IsValidTimeOfDay("07:00:00"))
	assert.True(t, IsValidTimeOfDay("23:59:59"))
	assert.False(t, IsValidTimeOfDay("24:00"))
	assert.False(t, IsValidTimeOfDay("7am"))
	assert.False(t, IsValidTimeOfDay(""))
}

func TestIsValidEmployeeCode(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidEmployeeCode("EMP0001"))
	assert.True(t, IsValidEmployeeCode("EMP12345"))
	assert.False(t, IsValidEmployeeCode("emp0001"))
	assert.False(t, IsValidEmployeeCode("EMP01"))
	assert.False(t, IsValidEmployeeCode(""))
}

func TestIsValidWorksiteCode(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidWorksiteCode("SITE001"))
	assert.True(t, IsValidWorksiteCode("SITE9999"))
	assert.False(t, IsValidWorksiteCode("SITE01"))
	assert.False(t, IsValidWorksiteCode("site001"))
}

func TestIsValidQRToken(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidQRToken("7d7c0dff9b20d506503c920c84b2d5ce0874b42ebfa9dd900f5aadcfb0c7313c"))
	assert.False(t, IsValidQRToken("7d7c0dff"))
	assert.False(t, IsValidQRToken(""))
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		{Field: "latitude", Message: "latitude must be between -90 and 90"},
		{Field: "employee_id", Message: "employee_id is required"},
	}
	assert.Equal(t, "latitude: latitude must be between -90 and 90; employee_id: employee_id is required", errs.Error())

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "employee_id is required", m["employee_id"])
}
