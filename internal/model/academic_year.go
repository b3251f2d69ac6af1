package model

import "time"

// AcademicYear — учебный год, окно действия для генерации занятий
type AcademicYear struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"` // например: 2025/2026
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ContainsDate проверяет, что дата попадает в [StartDate, EndDate] включительно
func (y *AcademicYear) ContainsDate(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(y.StartDate)) && !day.After(DateOnly(y.EndDate))
}

// DateOnly отбрасывает время суток, сравниваем только календарные даты
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
