package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayFromTime(t *testing.T) {
	cases := []struct {
		calendar time.Weekday
		domain   Weekday
	}{
		{time.Monday, WeekdayMonday},
		{time.Tuesday, WeekdayTuesday},
		{time.Wednesday, WeekdayWednesday},
		{time.Thursday, WeekdayThursday},
		{time.Friday, WeekdayFriday},
		{time.Saturday, WeekdaySaturday},
		{time.Sunday, WeekdaySunday},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.domain, WeekdayFromTime(tc.calendar), tc.calendar.String())
	}
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "Monday", WeekdayMonday.String())
	assert.Equal(t, "Sunday", WeekdaySunday.String())
	assert.Equal(t, "Weekday(?)", Weekday(0).String())
}
