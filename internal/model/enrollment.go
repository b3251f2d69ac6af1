package model

import "time"

// Enrollment — запись ученика в группу. Только активная запись даёт
// право отмечаться на занятиях группы.
type Enrollment struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	GroupID   int64     `json:"group_id"`
	JoinedOn  time.Time `json:"joined_on"`
	IsActive  bool      `json:"is_active"`
}
