package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationLogRepository — журнал отправленных уведомлений.
// Страховка от повторной отправки напоминаний.
type NotificationLogRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationLogRepository создаёт новый репозиторий
func NewNotificationLogRepository(pool *pgxpool.Pool) *NotificationLogRepository {
	return &NotificationLogRepository{pool: pool}
}

// AlreadySent проверяет, было ли уведомление уже отправлено
func (r *NotificationLogRepository) AlreadySent(ctx context.Context, event string, sessionID, studentID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM notification_log
			WHERE event = $1 AND session_id = $2 AND student_id = $3
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, event, sessionID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check notification sent: %w", err)
	}

	return exists, nil
}

// Record фиксирует отправленное уведомление. Повторная запись той же
// тройки (event, session, student) — no-op.
func (r *NotificationLogRepository) Record(ctx context.Context, event string, sessionID, studentID int64) error {
	query := `
		INSERT INTO notification_log (event, session_id, student_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (event, session_id, student_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, event, sessionID, studentID)
	if err != nil {
		return fmt.Errorf("record notification: %w", err)
	}

	return nil
}
