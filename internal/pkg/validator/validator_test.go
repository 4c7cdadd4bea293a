package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-03-12")
	assert.True(t, ok)

	_, ok = IsValidDate("12-03-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-02-30")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2024-01-15T10:30:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15T10:30:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15 10:30:00")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	opts := []string{"week", "month"}
	assert.True(t, IsInSlice("week", opts))
	assert.False(t, IsInSlice("day", opts))
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date must be in YYYY-MM-DD format"},
		{Field: "type", Message: "type must be one of: week, month"},
	}
	assert.Equal(t, "date: date must be in YYYY-MM-DD format; type: type must be one of: week, month", errs.Error())
	assert.Len(t, errs.ToMap(), 2)
}
