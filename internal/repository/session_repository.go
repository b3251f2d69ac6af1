package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/Freeeeeet/tutor_portal/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository управляет занятиями в базе данных
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository создаёт новый репозиторий
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

const sessionColumns = `id, group_id, teacher_id, subject_id, date, start_time, end_time, topic, notes, is_online, location, meeting_link, qr_token, qr_token_expires_at, created_at`

// InsertIfAbsent атомарно создаёт занятие, если его ещё нет по ключу
// (group, date, start_time). Возвращает true, если строка создана.
// Конфликт по ключу — штатный no-op, а не ошибка: генератор может
// запускаться параллельно (вручную и по расписанию).
func (r *SessionRepository) InsertIfAbsent(ctx context.Context, session *model.ClassSession) (bool, error) {
	query := `
		INSERT INTO class_sessions (group_id, teacher_id, subject_id, date, start_time, end_time, topic, notes, is_online, location, meeting_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (group_id, date, start_time) DO NOTHING
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		session.GroupID,
		session.TeacherID,
		session.SubjectID,
		session.Date,
		session.StartTime,
		session.EndTime,
		session.Topic,
		session.Notes,
		session.IsOnline,
		session.Location,
		session.MeetingLink,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			// Занятие на этот слот уже существует
			return false, nil
		}
		return false, fmt.Errorf("insert session: %w", err)
	}

	return true, nil
}

// GetByID получает занятие по ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.ClassSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM class_sessions WHERE id = $1`

	session, err := scanSession(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by id: %w", err)
	}

	return session, nil
}

// GetByGroupAndDateRange получает занятия группы в диапазоне дат
func (r *SessionRepository) GetByGroupAndDateRange(ctx context.Context, groupID int64, from, to time.Time) ([]*model.ClassSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM class_sessions
		WHERE group_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, start_time
	`

	rows, err := r.pool.Query(ctx, query, groupID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get sessions by group and range: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListStartingBetween получает занятия, начинающиеся в окне [from, to].
// Начало занятия — date + start_time (минуты от полуночи).
func (r *SessionRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*model.ClassSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM class_sessions
		WHERE date + make_interval(mins => start_time) BETWEEN $1 AND $2
		ORDER BY date, start_time
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sessions starting between: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// UpdateQRToken записывает новый QR-токен и срок его действия
func (r *SessionRepository) UpdateQRToken(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	query := `UPDATE class_sessions SET qr_token = $2, qr_token_expires_at = $3 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, token, expiresAt)
	if err != nil {
		return fmt.Errorf("update qr token: %w", err)
	}

	return nil
}

// ClearExpiredQRTokens очищает токены, срок которых прошёл.
// Возвращает количество очищенных занятий.
func (r *SessionRepository) ClearExpiredQRTokens(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE class_sessions
		SET qr_token = '', qr_token_expires_at = NULL
		WHERE qr_token_expires_at IS NOT NULL AND qr_token_expires_at < $1
	`

	tag, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("clear expired qr tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UpdateTopicNotes обновляет тему и заметки занятия
func (r *SessionRepository) UpdateTopicNotes(ctx context.Context, id int64, topic, notes string) error {
	query := `UPDATE class_sessions SET topic = $2, notes = $3 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, topic, notes)
	if err != nil {
		return fmt.Errorf("update topic and notes: %w", err)
	}

	return nil
}

func scanSession(row pgx.Row) (*model.ClassSession, error) {
	var session model.ClassSession
	err := row.Scan(
		&session.ID,
		&session.GroupID,
		&session.TeacherID,
		&session.SubjectID,
		&session.Date,
		&session.StartTime,
		&session.EndTime,
		&session.Topic,
		&session.Notes,
		&session.IsOnline,
		&session.Location,
		&session.MeetingLink,
		&session.QRToken,
		&session.QRTokenExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func scanSessions(rows pgx.Rows) ([]*model.ClassSession, error) {
	var sessions []*model.ClassSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}
