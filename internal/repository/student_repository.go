package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/Freeeeeet/tutor_portal/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StudentRepository управляет учениками в базе данных
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository создаёт новый репозиторий
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, first_name, last_name, parent_id, checkin_code, phone, email, telegram_chat_id, created_at`

// Create создаёт нового ученика
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (first_name, last_name, parent_id, checkin_code, phone, email, telegram_chat_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		student.FirstName,
		student.LastName,
		student.ParentID,
		student.CheckinCode,
		student.Phone,
		student.Email,
		student.TelegramChatID,
	).Scan(&student.ID, &student.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("checkin code %q is already taken: %w", student.CheckinCode, err)
		}
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByID получает ученика по ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := r.scanOne(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return student, nil
}

// GetByCheckinCode ищет ученика по коду для отметки посещаемости
func (r *StudentRepository) GetByCheckinCode(ctx context.Context, code string) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE checkin_code = $1`

	student, err := r.scanOne(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		return nil, fmt.Errorf("get student by checkin code: %w", err)
	}

	return student, nil
}

// CheckinCodeExists проверяет, занят ли код
func (r *StudentRepository) CheckinCodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM students WHERE checkin_code = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check checkin code exists: %w", err)
	}

	return exists, nil
}

// GetActiveByGroupID получает учеников с активной записью в группу
func (r *StudentRepository) GetActiveByGroupID(ctx context.Context, groupID int64) ([]*model.Student, error) {
	query := `
		SELECT s.id, s.first_name, s.last_name, s.parent_id, s.checkin_code, s.phone, s.email, s.telegram_chat_id, s.created_at
		FROM students s
		JOIN enrollments e ON e.student_id = s.id
		WHERE e.group_id = $1 AND e.is_active = true
		ORDER BY s.last_name, s.first_name
	`

	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("get students by group: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		student := &model.Student{}
		err := rows.Scan(
			&student.ID,
			&student.FirstName,
			&student.LastName,
			&student.ParentID,
			&student.CheckinCode,
			&student.Phone,
			&student.Email,
			&student.TelegramChatID,
			&student.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}

	return students, nil
}

func (r *StudentRepository) scanOne(row pgx.Row) (*model.Student, error) {
	var student model.Student
	err := row.Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.ParentID,
		&student.CheckinCode,
		&student.Phone,
		&student.Email,
		&student.TelegramChatID,
		&student.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &student, nil
}
