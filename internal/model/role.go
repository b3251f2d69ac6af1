package model

// RoleKind определяет роль аутентифицированного пользователя
type RoleKind string

const (
	RoleNone    RoleKind = "none"
	RoleTeacher RoleKind = "teacher"
	RoleParent  RoleKind = "parent"
	RoleStudent RoleKind = "student"
)

// Role — роль пользователя, разрешается один раз при аутентификации
// и дальше передаётся в контексте запроса. Заполнено только поле,
// соответствующее Kind.
type Role struct {
	Kind      RoleKind `json:"kind"`
	TeacherID int64    `json:"teacher_id,omitempty"`
	ParentID  int64    `json:"parent_id,omitempty"`
	StudentID int64    `json:"student_id,omitempty"` // id ученика, не профиля
}

// IsTeacher проверяет, что роль — учитель
func (r Role) IsTeacher() bool {
	return r.Kind == RoleTeacher
}

// IsStudent проверяет, что роль — ученик
func (r Role) IsStudent() bool {
	return r.Kind == RoleStudent
}
