package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnrollmentRepository управляет записями учеников в группы
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository создаёт новый репозиторий
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Create записывает ученика в группу. Повторная запись той же пары
// (student, group) — no-op благодаря уникальному ограничению.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, group_id, is_active)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, group_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, enrollment.StudentID, enrollment.GroupID, enrollment.IsActive)
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}

	return nil
}

// IsActiveMember проверяет, есть ли у ученика активная запись в группу
func (r *EnrollmentRepository) IsActiveMember(ctx context.Context, studentID, groupID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM enrollments
			WHERE student_id = $1 AND group_id = $2 AND is_active = true
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, studentID, groupID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active enrollment: %w", err)
	}

	return exists, nil
}

// Deactivate снимает ученика с группы
func (r *EnrollmentRepository) Deactivate(ctx context.Context, studentID, groupID int64) error {
	query := `UPDATE enrollments SET is_active = false WHERE student_id = $1 AND group_id = $2`

	_, err := r.pool.Exec(ctx, query, studentID, groupID)
	if err != nil {
		return fmt.Errorf("deactivate enrollment: %w", err)
	}

	return nil
}
