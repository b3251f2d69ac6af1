package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcademicYearContainsDate(t *testing.T) {
	year := &AcademicYear{
		StartDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, year.ContainsDate(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, year.ContainsDate(time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, year.ContainsDate(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))

	assert.False(t, year.ContainsDate(time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, year.ContainsDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))

	// Время суток не влияет на попадание в окно
	assert.True(t, year.ContainsDate(time.Date(2025, 5, 31, 23, 59, 0, 0, time.UTC)))
}
