package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"go.uber.org/zap"
)

// Границы TTL для QR-токена. Экран отметки живёт от десятков секунд
// до нескольких минут; всё вне этих границ — ошибка вызывающего кода.
const (
	MinQRTokenTTL = 10 * time.Second
	MaxQRTokenTTL = 10 * time.Minute
)

// sessionTokenStore — операции над занятием, нужные для отметки
type sessionTokenStore interface {
	GetByID(ctx context.Context, id int64) (*model.ClassSession, error)
	UpdateQRToken(ctx context.Context, id int64, token string, expiresAt time.Time) error
	ClearExpiredQRTokens(ctx context.Context, now time.Time) (int64, error)
}

// studentDirectory ищет учеников по id и коду отметки
type studentDirectory interface {
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	GetByCheckinCode(ctx context.Context, code string) (*model.Student, error)
}

// enrollmentChecker проверяет активную запись ученика в группу
type enrollmentChecker interface {
	IsActiveMember(ctx context.Context, studentID, groupID int64) (bool, error)
}

// attendanceStore атомарно фиксирует присутствие
type attendanceStore interface {
	UpsertPresent(ctx context.Context, sessionID, studentID int64) (*model.Attendance, error)
}

// CheckInResult — успешная отметка: запись журнала и сам ученик
// (его имя показываем на экране)
type CheckInResult struct {
	Attendance *model.Attendance
	Student    *model.Student
}

// AttendanceService выпускает QR-токены занятий и отмечает посещаемость
type AttendanceService struct {
	sessionRepo    sessionTokenStore
	studentRepo    studentDirectory
	enrollmentRepo enrollmentChecker
	attendanceRepo attendanceStore
	defaultTTL     time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

// NewAttendanceService создаёт новый сервис. defaultTTL применяется,
// когда вызывающий код не передал свой TTL.
func NewAttendanceService(
	sessionRepo sessionTokenStore,
	studentRepo studentDirectory,
	enrollmentRepo enrollmentChecker,
	attendanceRepo attendanceStore,
	defaultTTL time.Duration,
	logger *zap.Logger,
) *AttendanceService {
	if defaultTTL <= 0 {
		defaultTTL = 60 * time.Second
	}

	return &AttendanceService{
		sessionRepo:    sessionRepo,
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
		attendanceRepo: attendanceRepo,
		defaultTTL:     defaultTTL,
		logger:         logger,
		now:            time.Now,
	}
}

// GetSession получает занятие по ID
func (s *AttendanceService) GetSession(ctx context.Context, sessionID int64) (*model.ClassSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// RefreshQRToken выпускает новый токен занятия со сроком действия ttl
// (0 — дефолтный TTL сервиса). Старый токен сразу перестаёт действовать:
// последний записанный всегда выигрывает.
func (s *AttendanceService) RefreshQRToken(ctx context.Context, sessionID int64, ttl time.Duration) (*model.ClassSession, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if ttl < MinQRTokenTTL {
		ttl = MinQRTokenTTL
	}
	if ttl > MaxQRTokenTTL {
		ttl = MaxQRTokenTTL
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	token, err := newQRToken()
	if err != nil {
		return nil, fmt.Errorf("generate qr token: %w", err)
	}

	expiresAt := s.now().Add(ttl)
	if err := s.sessionRepo.UpdateQRToken(ctx, session.ID, token, expiresAt); err != nil {
		return nil, fmt.Errorf("store qr token: %w", err)
	}

	session.QRToken = token
	session.QRTokenExpiresAt = &expiresAt

	s.logger.Info("QR token refreshed",
		zap.Int64("session_id", session.ID),
		zap.Duration("ttl", ttl))

	return session, nil
}

// TokenIsValid проверяет токен занятия. Никогда не возвращает ошибку:
// любой сомнительный случай — просто false.
func (s *AttendanceService) TokenIsValid(session *model.ClassSession, token string) bool {
	return session.QRTokenValid(token, s.now())
}

// CheckInByCode отмечает ученика по его постоянному коду
// (киоск/экран сканирования). Возвращает ErrTokenInvalid,
// ErrUnknownCode или ErrNotEnrolled при отказе.
func (s *AttendanceService) CheckInByCode(ctx context.Context, sessionID int64, token, code string) (*CheckInResult, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !s.TokenIsValid(session, token) {
		return nil, ErrTokenInvalid
	}

	student, err := s.studentRepo.GetByCheckinCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("lookup student by code: %w", err)
	}
	if student == nil {
		return nil, ErrUnknownCode
	}

	return s.checkIn(ctx, session, student)
}

// CheckInSelf отмечает аутентифицированного ученика по его профилю
func (s *AttendanceService) CheckInSelf(ctx context.Context, sessionID, studentID int64, token string) (*CheckInResult, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !s.TokenIsValid(session, token) {
		return nil, ErrTokenInvalid
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		// Профиль ссылается на несуществующего ученика — это уже
		// порча данных, а не отказ
		return nil, fmt.Errorf("student %d referenced by profile does not exist", studentID)
	}

	return s.checkIn(ctx, session, student)
}

// checkIn — общая часть обоих потоков: проверка записи в группу
// и атомарный upsert отметки
func (s *AttendanceService) checkIn(ctx context.Context, session *model.ClassSession, student *model.Student) (*CheckInResult, error) {
	enrolled, err := s.enrollmentRepo.IsActiveMember(ctx, student.ID, session.GroupID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	att, err := s.attendanceRepo.UpsertPresent(ctx, session.ID, student.ID)
	if err != nil {
		return nil, fmt.Errorf("record attendance: %w", err)
	}

	s.logger.Info("Student checked in",
		zap.Int64("session_id", session.ID),
		zap.Int64("student_id", student.ID))

	return &CheckInResult{Attendance: att, Student: student}, nil
}

// CleanupExpiredTokens очищает истёкшие QR-токены. Вызывается
// периодической фоновой задачей, к корректности отметки отношения
// не имеет: истёкший токен и так ничего не авторизует.
func (s *AttendanceService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	cleared, err := s.sessionRepo.ClearExpiredQRTokens(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("cleanup expired qr tokens: %w", err)
	}

	if cleared > 0 {
		s.logger.Debug("Expired QR tokens cleared", zap.Int64("count", cleared))
	}

	return cleared, nil
}

// newQRToken генерирует криптослучайный токен (32 символа base64url)
func newQRToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
