package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScheduleBlockRepository управляет недельными блоками расписания
type ScheduleBlockRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleBlockRepository создаёт новый репозиторий
func NewScheduleBlockRepository(pool *pgxpool.Pool) *ScheduleBlockRepository {
	return &ScheduleBlockRepository{pool: pool}
}

// Create создаёт новый блок расписания
func (r *ScheduleBlockRepository) Create(ctx context.Context, block *model.ScheduleBlock) error {
	query := `
		INSERT INTO schedule_blocks (group_id, weekday, start_time, end_time, is_online, location, meeting_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		block.GroupID,
		block.Weekday,
		block.StartTime,
		block.EndTime,
		block.IsOnline,
		block.Location,
		block.MeetingLink,
	).Scan(&block.ID, &block.CreatedAt)

	if err != nil {
		return fmt.Errorf("create schedule block: %w", err)
	}

	return nil
}

// GetByGroupID получает все блоки группы
func (r *ScheduleBlockRepository) GetByGroupID(ctx context.Context, groupID int64) ([]*model.ScheduleBlock, error) {
	query := `
		SELECT id, group_id, weekday, start_time, end_time, is_online, location, meeting_link, created_at
		FROM schedule_blocks
		WHERE group_id = $1
		ORDER BY weekday, start_time
	`

	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("get schedule blocks by group: %w", err)
	}
	defer rows.Close()

	var blocks []*model.ScheduleBlock
	for rows.Next() {
		block := &model.ScheduleBlock{}
		err := rows.Scan(
			&block.ID,
			&block.GroupID,
			&block.Weekday,
			&block.StartTime,
			&block.EndTime,
			&block.IsOnline,
			&block.Location,
			&block.MeetingLink,
			&block.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan schedule block: %w", err)
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}

// ListForGeneration получает блоки вместе с группой и учебным годом —
// всё, что нужно генератору занятий. teacherID сужает выборку до групп
// одного учителя, nil — все группы.
func (r *ScheduleBlockRepository) ListForGeneration(ctx context.Context, teacherID *int64) ([]*model.ScheduleBlock, error) {
	query := `
		SELECT b.id, b.group_id, b.weekday, b.start_time, b.end_time, b.is_online, b.location, b.meeting_link, b.created_at,
		       g.id, g.academic_year_id, g.teacher_id, g.subject_id, g.name, g.grade, g.capacity, g.note, g.created_at,
		       y.id, y.name, y.start_date, y.end_date, y.is_active, y.created_at
		FROM schedule_blocks b
		JOIN groups g ON g.id = b.group_id
		JOIN academic_years y ON y.id = g.academic_year_id
		WHERE $1::bigint IS NULL OR g.teacher_id = $1
		ORDER BY b.weekday, b.start_time
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list schedule blocks for generation: %w", err)
	}
	defer rows.Close()

	return scanBlocksWithGroup(rows)
}

func scanBlocksWithGroup(rows pgx.Rows) ([]*model.ScheduleBlock, error) {
	var blocks []*model.ScheduleBlock
	for rows.Next() {
		block := &model.ScheduleBlock{
			Group: &model.Group{AcademicYear: &model.AcademicYear{}},
		}
		err := rows.Scan(
			&block.ID,
			&block.GroupID,
			&block.Weekday,
			&block.StartTime,
			&block.EndTime,
			&block.IsOnline,
			&block.Location,
			&block.MeetingLink,
			&block.CreatedAt,
			&block.Group.ID,
			&block.Group.AcademicYearID,
			&block.Group.TeacherID,
			&block.Group.SubjectID,
			&block.Group.Name,
			&block.Group.Grade,
			&block.Group.Capacity,
			&block.Group.Note,
			&block.Group.CreatedAt,
			&block.Group.AcademicYear.ID,
			&block.Group.AcademicYear.Name,
			&block.Group.AcademicYear.StartDate,
			&block.Group.AcademicYear.EndDate,
			&block.Group.AcademicYear.IsActive,
			&block.Group.AcademicYear.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan schedule block with group: %w", err)
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}
