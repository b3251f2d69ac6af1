package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/Freeeeeet/tutor_portal/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GroupRepository управляет группами в базе данных
type GroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository создаёт новый репозиторий
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

// Create создаёт новую группу
func (r *GroupRepository) Create(ctx context.Context, group *model.Group) error {
	query := `
		INSERT INTO groups (academic_year_id, teacher_id, subject_id, name, grade, capacity, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		group.AcademicYearID,
		group.TeacherID,
		group.SubjectID,
		group.Name,
		group.Grade,
		group.Capacity,
		group.Note,
	).Scan(&group.ID, &group.CreatedAt)

	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	return nil
}

// GetByID получает группу по ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	query := `
		SELECT id, academic_year_id, teacher_id, subject_id, name, grade, capacity, note, created_at
		FROM groups
		WHERE id = $1
	`

	var group model.Group
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.AcademicYearID,
		&group.TeacherID,
		&group.SubjectID,
		&group.Name,
		&group.Grade,
		&group.Capacity,
		&group.Note,
		&group.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group by id: %w", err)
	}

	return &group, nil
}

// GetByTeacherID получает все группы учителя
func (r *GroupRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Group, error) {
	query := `
		SELECT id, academic_year_id, teacher_id, subject_id, name, grade, capacity, note, created_at
		FROM groups
		WHERE teacher_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get groups by teacher: %w", err)
	}
	defer rows.Close()

	return scanGroups(rows)
}

func scanGroups(rows pgx.Rows) ([]*model.Group, error) {
	var groups []*model.Group
	for rows.Next() {
		group := &model.Group{}
		err := rows.Scan(
			&group.ID,
			&group.AcademicYearID,
			&group.TeacherID,
			&group.SubjectID,
			&group.Name,
			&group.Grade,
			&group.Capacity,
			&group.Note,
			&group.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, nil
}
