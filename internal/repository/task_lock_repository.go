package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskLockRepository — именованные блокировки с TTL для фоновых задач.
// Нужны, чтобы перекрывающиеся запуски рассылки напоминаний не слали
// уведомления дважды. Это защита от дублей побочных эффектов, а не от
// порчи данных: окончательную дедупликацию даёт notification_log.
type TaskLockRepository struct {
	pool *pgxpool.Pool
}

// NewTaskLockRepository создаёт новый репозиторий
func NewTaskLockRepository(pool *pgxpool.Pool) *TaskLockRepository {
	return &TaskLockRepository{pool: pool}
}

// TryAcquire пытается взять блокировку name на срок ttl.
// Возвращает false, если блокировка занята и ещё не истекла.
func (r *TaskLockRepository) TryAcquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	query := `
		INSERT INTO task_locks (name, locked_until)
		VALUES ($1, now() + make_interval(secs => $2))
		ON CONFLICT (name)
		DO UPDATE SET locked_until = excluded.locked_until
		WHERE task_locks.locked_until <= now()
		RETURNING name
	`

	var got string
	err := r.pool.QueryRow(ctx, query, name, ttl.Seconds()).Scan(&got)
	if err != nil {
		if base.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("try acquire task lock: %w", err)
	}

	return true, nil
}

// Release освобождает блокировку
func (r *TaskLockRepository) Release(ctx context.Context, name string) error {
	query := `DELETE FROM task_locks WHERE name = $1`

	_, err := r.pool.Exec(ctx, query, name)
	if err != nil {
		return fmt.Errorf("release task lock: %w", err)
	}

	return nil
}
