package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/Freeeeeet/tutor_portal/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository разрешает роль пользователя по его профилям.
// Роль определяется один раз на запрос — вместо угадывания по наличию
// атрибутов при каждом обращении.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository создаёт новый репозиторий
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// ResolveRole определяет роль пользователя: учитель, родитель, ученик
// или none, если профилей нет. Порядок проверки фиксированный —
// учительский профиль имеет приоритет.
func (r *ProfileRepository) ResolveRole(ctx context.Context, userID int64) (model.Role, error) {
	var teacherID int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM teacher_profiles WHERE user_id = $1`, userID).Scan(&teacherID)
	if err == nil {
		return model.Role{Kind: model.RoleTeacher, TeacherID: teacherID}, nil
	}
	if !base.IsNotFound(err) {
		return model.Role{}, fmt.Errorf("resolve teacher profile: %w", err)
	}

	var parentID int64
	err = r.pool.QueryRow(ctx, `SELECT id FROM parent_profiles WHERE user_id = $1`, userID).Scan(&parentID)
	if err == nil {
		return model.Role{Kind: model.RoleParent, ParentID: parentID}, nil
	}
	if !base.IsNotFound(err) {
		return model.Role{}, fmt.Errorf("resolve parent profile: %w", err)
	}

	var studentID int64
	err = r.pool.QueryRow(ctx, `SELECT student_id FROM student_profiles WHERE user_id = $1`, userID).Scan(&studentID)
	if err == nil {
		return model.Role{Kind: model.RoleStudent, StudentID: studentID}, nil
	}
	if !base.IsNotFound(err) {
		return model.Role{}, fmt.Errorf("resolve student profile: %w", err)
	}

	return model.Role{Kind: model.RoleNone}, nil
}
