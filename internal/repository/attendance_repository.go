package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/Freeeeeet/tutor_portal/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttendanceRepository управляет отметками посещаемости
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository создаёт новый репозиторий
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// UpsertPresent атомарно отмечает ученика присутствующим. Если записи
// нет — создаёт со статусом PRESENT; если есть — переводит в PRESENT.
// Двойной скан одного кода даёт ровно одну строку.
func (r *AttendanceRepository) UpsertPresent(ctx context.Context, sessionID, studentID int64) (*model.Attendance, error) {
	query := `
		INSERT INTO attendances (session_id, student_id, status, note)
		VALUES ($1, $2, $3, '')
		ON CONFLICT (session_id, student_id)
		DO UPDATE SET status = $3, updated_at = now()
		RETURNING id, session_id, student_id, status, note, created_at, updated_at
	`

	var att model.Attendance
	err := r.pool.QueryRow(ctx, query, sessionID, studentID, model.AttendancePresent).Scan(
		&att.ID,
		&att.SessionID,
		&att.StudentID,
		&att.Status,
		&att.Note,
		&att.CreatedAt,
		&att.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}

	return &att, nil
}

// SetStatus выставляет статус вручную (учитель правит журнал)
func (r *AttendanceRepository) SetStatus(ctx context.Context, sessionID, studentID int64, status model.AttendanceStatus, note string) (*model.Attendance, error) {
	query := `
		INSERT INTO attendances (session_id, student_id, status, note)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, student_id)
		DO UPDATE SET status = $3, note = $4, updated_at = now()
		RETURNING id, session_id, student_id, status, note, created_at, updated_at
	`

	var att model.Attendance
	err := r.pool.QueryRow(ctx, query, sessionID, studentID, status, note).Scan(
		&att.ID,
		&att.SessionID,
		&att.StudentID,
		&att.Status,
		&att.Note,
		&att.CreatedAt,
		&att.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("set attendance status: %w", err)
	}

	return &att, nil
}

// GetBySessionAndStudent получает отметку для пары (session, student)
func (r *AttendanceRepository) GetBySessionAndStudent(ctx context.Context, sessionID, studentID int64) (*model.Attendance, error) {
	query := `
		SELECT id, session_id, student_id, status, note, created_at, updated_at
		FROM attendances
		WHERE session_id = $1 AND student_id = $2
	`

	var att model.Attendance
	err := r.pool.QueryRow(ctx, query, sessionID, studentID).Scan(
		&att.ID,
		&att.SessionID,
		&att.StudentID,
		&att.Status,
		&att.Note,
		&att.CreatedAt,
		&att.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}

	return &att, nil
}

// ListBySession получает все отметки занятия
func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionID int64) ([]*model.Attendance, error) {
	query := `
		SELECT id, session_id, student_id, status, note, created_at, updated_at
		FROM attendances
		WHERE session_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list attendance by session: %w", err)
	}
	defer rows.Close()

	var list []*model.Attendance
	for rows.Next() {
		att := &model.Attendance{}
		err := rows.Scan(
			&att.ID,
			&att.SessionID,
			&att.StudentID,
			&att.Status,
			&att.Note,
			&att.CreatedAt,
			&att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, att)
	}

	return list, nil
}
