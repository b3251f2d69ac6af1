package model

import "time"

// ClassSession — конкретное занятие группы на дату.
// Создаётся генератором из ScheduleBlock или вручную.
// Уникально по (group, date, start_time).
type ClassSession struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	TeacherID   int64     `json:"teacher_id"`
	SubjectID   *int64    `json:"subject_id"`
	Date        time.Time `json:"date"`
	StartTime   TimeOfDay `json:"start_time"`
	EndTime     TimeOfDay `json:"end_time"`
	Topic       string    `json:"topic"`
	Notes       string    `json:"notes"`
	IsOnline    bool      `json:"is_online"`
	Location    string    `json:"location"`
	MeetingLink string    `json:"meeting_link"`

	// Эфемерный QR-токен для отметки посещаемости
	QRToken          string     `json:"-"`
	QRTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Group *Group `json:"group,omitempty"`
}

// StartsAt возвращает момент начала занятия
func (s *ClassSession) StartsAt() time.Time {
	return s.StartTime.On(s.Date)
}

// QRTokenValid проверяет токен: непустой, совпадает посимвольно и не истёк.
// Во всех остальных случаях false, ошибок не бывает.
func (s *ClassSession) QRTokenValid(token string, now time.Time) bool {
	return token != "" &&
		s.QRToken != "" &&
		token == s.QRToken &&
		s.QRTokenExpiresAt != nil &&
		!now.After(*s.QRTokenExpiresAt)
}
