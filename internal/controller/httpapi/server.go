package httpapi

import (
	"context"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/Freeeeeet/tutor_portal/internal/repository"
	"github.com/Freeeeeet/tutor_portal/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RoleResolver определяет роль аутентифицированного пользователя
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID int64) (model.Role, error)
}

// Server — HTTP-граница ядра: генерация занятий, QR-экран и отметка
// посещаемости. Аутентификация внешняя: шлюз передаёт id пользователя
// в заголовке, здесь он один раз превращается в роль.
type Server struct {
	echo        *echo.Echo
	scheduling  *service.SchedulingService
	attendance  *service.AttendanceService
	students    *service.StudentService
	groupRepo   *repository.GroupRepository
	blockRepo   *repository.ScheduleBlockRepository
	sessionRepo *repository.SessionRepository
	roles       RoleResolver
	baseURL     string
	logger      *zap.Logger
}

// NewServer создаёт HTTP-сервер и регистрирует маршруты
func NewServer(
	scheduling *service.SchedulingService,
	attendance *service.AttendanceService,
	students *service.StudentService,
	groupRepo *repository.GroupRepository,
	blockRepo *repository.ScheduleBlockRepository,
	sessionRepo *repository.SessionRepository,
	roles RoleResolver,
	baseURL string,
	logger *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()

	s := &Server{
		echo:        e,
		scheduling:  scheduling,
		attendance:  attendance,
		students:    students,
		groupRepo:   groupRepo,
		blockRepo:   blockRepo,
		sessionRepo: sessionRepo,
		roles:       roles,
		baseURL:     baseURL,
		logger:      logger,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("HTTP request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))
	e.Use(s.resolveRole)

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api")

	// Генерация занятий — только учитель
	api.POST("/sessions/generate", s.handleGenerate, s.requireTeacher)
	api.POST("/sessions/generate-upcoming", s.handleGenerateUpcoming, s.requireTeacher)

	// QR-экран занятия — только учитель
	api.POST("/sessions/:id/qr/refresh", s.handleRefreshQR, s.requireTeacher)
	api.GET("/sessions/:id/qr.png", s.handleQRImage, s.requireTeacher)

	// Правка темы/заметок — только учитель
	api.PATCH("/sessions/:id", s.handleUpdateSession, s.requireTeacher)

	// Отметка посещаемости: киоск по коду и ученик сам за себя
	api.POST("/sessions/:id/checkin", s.handleCheckInByCode)
	api.POST("/sessions/:id/checkin/self", s.handleCheckInSelf, s.requireStudent)

	// Справочник учеников — только учитель
	api.POST("/students", s.handleCreateStudent, s.requireTeacher)

	// Недельная сетка группы картинкой
	api.GET("/groups/:id/schedule.png", s.handleGroupScheduleImage)
}

// Start запускает HTTP-сервер
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown останавливает сервер
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
