package notify

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// TelegramNotifier шлёт напоминания ученикам в Telegram
type TelegramNotifier struct {
	bot    *bot.Bot
	logger *zap.Logger
}

// NewTelegramNotifier создаёт нотификатор поверх бота с данным токеном
func NewTelegramNotifier(token string, logger *zap.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: b, logger: logger}, nil
}

// SendSessionReminder отправляет ученику напоминание о занятии.
// Ученик без привязанного чата просто пропускается.
func (n *TelegramNotifier) SendSessionReminder(ctx context.Context, student *model.Student, session *model.ClassSession) error {
	if student.TelegramChatID == nil {
		n.logger.Debug("Student has no telegram chat, skipping reminder",
			zap.Int64("student_id", student.ID))
		return nil
	}

	text := fmt.Sprintf(
		"📅 Напоминание: занятие %s в %s–%s",
		session.Date.Format("02.01.2006"),
		session.StartTime,
		session.EndTime,
	)
	if session.IsOnline && session.MeetingLink != "" {
		text += "\n🔗 " + session.MeetingLink
	} else if session.Location != "" {
		text += "\n📍 " + session.Location
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: *student.TelegramChatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send telegram reminder: %w", err)
	}

	return nil
}
