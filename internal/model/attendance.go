package model

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// Attendance — отметка посещаемости. Не больше одной записи на пару
// (session, student); повторные отметки обновляют существующую.
type Attendance struct {
	ID        int64            `json:"id"`
	SessionID int64            `json:"session_id"`
	StudentID int64            `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
	Note      string           `json:"note"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
