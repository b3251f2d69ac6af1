package notify

import (
	"context"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"go.uber.org/zap"
)

// ConsoleNotifier пишет напоминания в лог вместо реальной отправки.
// Используется в разработке и когда Telegram-токен не задан.
type ConsoleNotifier struct {
	logger *zap.Logger
}

// NewConsoleNotifier создаёт новый нотификатор
func NewConsoleNotifier(logger *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger}
}

// SendSessionReminder логирует напоминание
func (n *ConsoleNotifier) SendSessionReminder(_ context.Context, student *model.Student, session *model.ClassSession) error {
	n.logger.Info("Session reminder (console)",
		zap.Int64("student_id", student.ID),
		zap.String("student", student.DisplayName()),
		zap.Int64("session_id", session.ID),
		zap.Time("date", session.Date),
		zap.String("start_time", session.StartTime.String()))
	return nil
}
