package model

import "time"

// Notification event constants
const (
	EventSessionReminder = "SESSION_REMINDER"
)

// NotificationLog — журнал отправленных уведомлений. Уникальность
// (event, session, student) гарантирует, что напоминание не уйдёт дважды.
type NotificationLog struct {
	ID        int64     `json:"id"`
	Event     string    `json:"event"`
	SessionID int64     `json:"session_id"`
	StudentID int64     `json:"student_id"`
	SentAt    time.Time `json:"sent_at"`
}
