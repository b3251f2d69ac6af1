package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/Freeeeeet/tutor_portal/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AcademicYearRepository управляет учебными годами в базе данных
type AcademicYearRepository struct {
	pool *pgxpool.Pool
}

// NewAcademicYearRepository создаёт новый репозиторий
func NewAcademicYearRepository(pool *pgxpool.Pool) *AcademicYearRepository {
	return &AcademicYearRepository{pool: pool}
}

// Create создаёт новый учебный год
func (r *AcademicYearRepository) Create(ctx context.Context, year *model.AcademicYear) error {
	query := `
		INSERT INTO academic_years (name, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		year.Name,
		year.StartDate,
		year.EndDate,
		year.IsActive,
	).Scan(&year.ID, &year.CreatedAt)

	if err != nil {
		return fmt.Errorf("create academic year: %w", err)
	}

	return nil
}

// GetByID получает учебный год по ID
func (r *AcademicYearRepository) GetByID(ctx context.Context, id int64) (*model.AcademicYear, error) {
	query := `
		SELECT id, name, start_date, end_date, is_active, created_at
		FROM academic_years
		WHERE id = $1
	`

	var year model.AcademicYear
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&year.ID,
		&year.Name,
		&year.StartDate,
		&year.EndDate,
		&year.IsActive,
		&year.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get academic year by id: %w", err)
	}

	return &year, nil
}

// GetActive получает все активные учебные годы
func (r *AcademicYearRepository) GetActive(ctx context.Context) ([]*model.AcademicYear, error) {
	query := `
		SELECT id, name, start_date, end_date, is_active, created_at
		FROM academic_years
		WHERE is_active = true
		ORDER BY start_date
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get active academic years: %w", err)
	}
	defer rows.Close()

	var years []*model.AcademicYear
	for rows.Next() {
		year := &model.AcademicYear{}
		err := rows.Scan(
			&year.ID,
			&year.Name,
			&year.StartDate,
			&year.EndDate,
			&year.IsActive,
			&year.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan academic year: %w", err)
		}
		years = append(years, year)
	}

	return years, nil
}

// SetActive переключает активность учебного года
func (r *AcademicYearRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE academic_years SET is_active = $2 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("set academic year active: %w", err)
	}

	return nil
}
