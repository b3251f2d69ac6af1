package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/service"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами портала: ежедневная генерация
// занятий, очистка истёкших QR-токенов и рассылка напоминаний
type Scheduler struct {
	scheduling *service.SchedulingService
	attendance *service.AttendanceService
	reminders  *service.ReminderService

	generateDaysAhead int
	reminderWindow    time.Duration

	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(
	scheduling *service.SchedulingService,
	attendance *service.AttendanceService,
	reminders *service.ReminderService,
	generateDaysAhead int,
	reminderWindow time.Duration,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		scheduling:        scheduling,
		attendance:        attendance,
		reminders:         reminders,
		generateDaysAhead: generateDaysAhead,
		reminderWindow:    reminderWindow,
		logger:            logger,
		stopChan:          make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runSessionGenerationTask(ctx)
	go s.runQRCleanupTask(ctx)
	go s.runReminderTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runSessionGenerationTask раз в сутки генерирует занятия на
// generateDaysAhead дней вперёд
func (s *Scheduler) runSessionGenerationTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.generateSessions(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.generateSessions(ctx)
		case <-s.stopChan:
			s.logger.Info("Session generation task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session generation task cancelled")
			return
		}
	}
}

// generateSessions генерирует занятия для всех групп
func (s *Scheduler) generateSessions(ctx context.Context) {
	created, err := s.scheduling.GenerateUpcoming(ctx, s.generateDaysAhead, true, nil)
	if err != nil {
		s.logger.Error("Failed to generate sessions", zap.Error(err))
		return
	}

	s.logger.Info("Automatic session generation completed", zap.Int("created", created))
}

// runQRCleanupTask раз в минуту чистит истёкшие QR-токены
func (s *Scheduler) runQRCleanupTask(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.attendance.CleanupExpiredTokens(ctx); err != nil {
				s.logger.Error("Failed to cleanup expired QR tokens", zap.Error(err))
			}
		case <-s.stopChan:
			s.logger.Info("QR cleanup task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("QR cleanup task cancelled")
			return
		}
	}
}

// runReminderTask периодически рассылает напоминания о занятиях,
// начинающихся в ближайшем окне. Интервал — четверть окна, чтобы
// занятие не проскочило между запусками.
func (s *Scheduler) runReminderTask(ctx context.Context) {
	interval := s.reminderWindow / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.reminders.SendRemindersWindow(ctx, s.reminderWindow); err != nil {
				s.logger.Error("Failed to send session reminders", zap.Error(err))
			}
		case <-s.stopChan:
			s.logger.Info("Reminder task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Reminder task cancelled")
			return
		}
	}
}
