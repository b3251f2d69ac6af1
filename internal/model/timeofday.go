package model

import (
	"fmt"
	"time"
)

// TimeOfDay — время в пределах суток в минутах от полуночи.
// Хранится одним числом, потому что входит в уникальные ключи
// (group, weekday, start_time) и (group, date, start_time).
type TimeOfDay int

// NewTimeOfDay создаёт время суток из часа и минуты
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay разбирает строку вида "15:04"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}

	return NewTimeOfDay(hour, minute), nil
}

// Hour возвращает час (0-23)
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute возвращает минуту (0-59)
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// String форматирует время как "15:04"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On возвращает момент времени: дата d + это время суток
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location())
}
