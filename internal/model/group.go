package model

import "time"

// Grade constants
const (
	GradeG1    = "G1"
	GradeG2    = "G2"
	GradeG3    = "G3"
	GradeG4    = "G4"
	GradeG5    = "G5"
	GradeOther = "OTHER"
)

// Group — учебная группа внутри учебного года
type Group struct {
	ID             int64     `json:"id"`
	AcademicYearID int64     `json:"academic_year_id"`
	TeacherID      int64     `json:"teacher_id"`
	SubjectID      *int64    `json:"subject_id"` // предмет по умолчанию, может быть nil
	Name           string    `json:"name"`
	Grade          string    `json:"grade"`
	Capacity       int       `json:"capacity"`
	Note           string    `json:"note"`
	CreatedAt      time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	AcademicYear *AcademicYear `json:"academic_year,omitempty"`
}
