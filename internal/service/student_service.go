package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"go.uber.org/zap"
)

// studentRegistry — операции над справочником учеников
type studentRegistry interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	GetByCheckinCode(ctx context.Context, code string) (*model.Student, error)
	CheckinCodeExists(ctx context.Context, code string) (bool, error)
}

// StudentService управляет справочником учеников
type StudentService struct {
	studentRepo studentRegistry
	logger      *zap.Logger
}

// NewStudentService создаёт новый сервис
func NewStudentService(studentRepo studentRegistry, logger *zap.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// CreateStudent создаёт ученика. Если код отметки не задан,
// генерирует уникальный.
func (s *StudentService) CreateStudent(ctx context.Context, student *model.Student) error {
	if student.CheckinCode == "" {
		code, err := s.generateCheckinCode(ctx)
		if err != nil {
			return fmt.Errorf("generate checkin code: %w", err)
		}
		student.CheckinCode = code
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	s.logger.Info("Student created",
		zap.Int64("student_id", student.ID),
		zap.String("checkin_code", student.CheckinCode))

	return nil
}

// GetByCheckinCode ищет ученика по коду отметки
func (s *StudentService) GetByCheckinCode(ctx context.Context, code string) (*model.Student, error) {
	return s.studentRepo.GetByCheckinCode(ctx, code)
}

// generateCheckinCode генерирует уникальный 8-символьный код отметки
func (s *StudentService) generateCheckinCode(ctx context.Context) (string, error) {
	const maxAttempts = 10

	for i := 0; i < maxAttempts; i++ {
		buf := make([]byte, 6)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate random bytes: %w", err)
		}

		code := base32.StdEncoding.EncodeToString(buf)
		code = strings.TrimRight(code, "=")
		if len(code) > 8 {
			code = code[:8]
		}

		exists, err := s.studentRepo.CheckinCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code exists: %w", err)
		}

		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique code after %d attempts", maxAttempts)
}
