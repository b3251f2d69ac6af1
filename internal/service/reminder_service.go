package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Имя блокировки рассылки — фиксированное, чтобы перекрывающиеся
// запуски исключали друг друга
const reminderLockName = "send_session_reminders_window"

// Notifier доставляет напоминание о занятии ученику
type Notifier interface {
	SendSessionReminder(ctx context.Context, student *model.Student, session *model.ClassSession) error
}

// sessionWindowLister отдаёт занятия, начинающиеся в окне времени
type sessionWindowLister interface {
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*model.ClassSession, error)
}

// groupRoster отдаёт активных учеников группы
type groupRoster interface {
	GetActiveByGroupID(ctx context.Context, groupID int64) ([]*model.Student, error)
}

// notificationLog — журнал отправленного, дедупликация
type notificationLog interface {
	AlreadySent(ctx context.Context, event string, sessionID, studentID int64) (bool, error)
	Record(ctx context.Context, event string, sessionID, studentID int64) error
}

// taskLocker — именованные блокировки с TTL
type taskLocker interface {
	TryAcquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name string) error
}

// ReminderService рассылает напоминания о занятиях, начинающихся
// в ближайшем окне
type ReminderService struct {
	sessionRepo sessionWindowLister
	studentRepo groupRoster
	logRepo     notificationLog
	lockRepo    taskLocker
	notifier    Notifier
	logger      *zap.Logger
	now         func() time.Time
}

// NewReminderService создаёт новый сервис
func NewReminderService(
	sessionRepo sessionWindowLister,
	studentRepo groupRoster,
	logRepo notificationLog,
	lockRepo taskLocker,
	notifier Notifier,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		sessionRepo: sessionRepo,
		studentRepo: studentRepo,
		logRepo:     logRepo,
		lockRepo:    lockRepo,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// SendRemindersWindow шлёт напоминания по занятиям, начинающимся в
// [now, now+window]. Блокировка с TTL в половину окна (минимум минута)
// не даёт двум запускам работать одновременно; окончательную защиту от
// дублей даёт журнал уведомлений. Возвращает число отправленных.
func (s *ReminderService) SendRemindersWindow(ctx context.Context, window time.Duration) (int, error) {
	lockTTL := window / 2
	if lockTTL < time.Minute {
		lockTTL = time.Minute
	}

	got, err := s.lockRepo.TryAcquire(ctx, reminderLockName, lockTTL)
	if err != nil {
		return 0, fmt.Errorf("acquire reminder lock: %w", err)
	}
	if !got {
		// Другой запуск уже работает
		s.logger.Info("Reminder sweep already running, skipping")
		return 0, nil
	}
	defer func() {
		if err := s.lockRepo.Release(ctx, reminderLockName); err != nil {
			s.logger.Warn("Failed to release reminder lock", zap.Error(err))
		}
	}()

	now := s.now()
	sessions, err := s.sessionRepo.ListStartingBetween(ctx, now, now.Add(window))
	if err != nil {
		return 0, fmt.Errorf("list upcoming sessions: %w", err)
	}

	sent := 0
	for _, session := range sessions {
		count, err := s.remindForSession(ctx, session)
		if err != nil {
			// Одно неудачное занятие не останавливает рассылку
			s.logger.Error("Failed to send reminders for session",
				zap.Int64("session_id", session.ID),
				zap.Error(err))
			continue
		}
		sent += count
	}

	s.logger.Info("Reminder sweep completed",
		zap.Int("sessions", len(sessions)),
		zap.Int("sent", sent))

	return sent, nil
}

// remindForSession шлёт напоминания всем активным ученикам группы занятия
func (s *ReminderService) remindForSession(ctx context.Context, session *model.ClassSession) (int, error) {
	students, err := s.studentRepo.GetActiveByGroupID(ctx, session.GroupID)
	if err != nil {
		return 0, fmt.Errorf("get group roster: %w", err)
	}

	sent := 0
	for _, student := range students {
		already, err := s.logRepo.AlreadySent(ctx, model.EventSessionReminder, session.ID, student.ID)
		if err != nil {
			s.logger.Warn("Failed to check notification log",
				zap.Int64("student_id", student.ID),
				zap.Error(err))
			continue
		}
		if already {
			continue
		}

		if err := s.deliver(ctx, student, session); err != nil {
			s.logger.Warn("Failed to deliver reminder",
				zap.Int64("session_id", session.ID),
				zap.Int64("student_id", student.ID),
				zap.Error(err))
			continue
		}

		if err := s.logRepo.Record(ctx, model.EventSessionReminder, session.ID, student.ID); err != nil {
			s.logger.Warn("Failed to record notification",
				zap.Int64("student_id", student.ID),
				zap.Error(err))
		}
		sent++
	}

	return sent, nil
}

// deliver отправляет напоминание с повторами и экспоненциальной задержкой
func (s *ReminderService) deliver(ctx context.Context, student *model.Student, session *model.ClassSession) error {
	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.notifier.SendSessionReminder(ctx, student, session); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
