package model

import "time"

// Student — ученик центра. CheckinCode — постоянный код для ручной
// отметки посещаемости (не путать с QR-токеном занятия).
type Student struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ParentID       *int64    `json:"parent_id"`
	CheckinCode    string    `json:"checkin_code"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	TelegramChatID *int64    `json:"telegram_chat_id"` // куда слать напоминания, может быть nil
	CreatedAt      time.Time `json:"created_at"`
}

// DisplayName возвращает имя для показа после успешной отметки
func (s *Student) DisplayName() string {
	return s.FirstName + " " + s.LastName
}
