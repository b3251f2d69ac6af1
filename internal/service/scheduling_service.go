package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"go.uber.org/zap"
)

// blockSource отдаёт блоки расписания вместе с группой и учебным годом
type blockSource interface {
	ListForGeneration(ctx context.Context, teacherID *int64) ([]*model.ScheduleBlock, error)
}

// sessionCreator — операции генератора над занятиями
type sessionCreator interface {
	InsertIfAbsent(ctx context.Context, session *model.ClassSession) (bool, error)
}

// SchedulingService разворачивает недельные блоки расписания
// в конкретные занятия
type SchedulingService struct {
	blockRepo   blockSource
	sessionRepo sessionCreator
	logger      *zap.Logger
	now         func() time.Time
}

// NewSchedulingService создаёт новый сервис
func NewSchedulingService(blockRepo blockSource, sessionRepo sessionCreator, logger *zap.Logger) *SchedulingService {
	return &SchedulingService{
		blockRepo:   blockRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// GenerateSessionsForRange создаёт занятия из блоков расписания для
// каждого дня диапазона [startDate, endDate] включительно.
// Учитывает окно учебного года (активен и содержит дату), пропускает
// уже существующие занятия. teacherID сужает генерацию до групп одного
// учителя. Возвращает число созданных занятий; повторный запуск на тех
// же данных создаёт 0.
func (s *SchedulingService) GenerateSessionsForRange(ctx context.Context, startDate, endDate time.Time, teacherID *int64) (int, error) {
	blocks, err := s.blockRepo.ListForGeneration(ctx, teacherID)
	if err != nil {
		return 0, fmt.Errorf("list schedule blocks: %w", err)
	}

	// Раскладываем блоки по дням недели, чтобы не сканировать весь
	// список на каждую дату
	byWeekday := make(map[model.Weekday][]*model.ScheduleBlock)
	for _, block := range blocks {
		byWeekday[block.Weekday] = append(byWeekday[block.Weekday], block)
	}

	createdCount := 0
	start := model.DateOnly(startDate)
	end := model.DateOnly(endDate)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, block := range byWeekday[model.WeekdayFromTime(d.Weekday())] {
			year := block.Group.AcademicYear

			// Год должен быть активен, и дата — внутри его окна
			if !year.IsActive || !year.ContainsDate(d) {
				continue
			}

			session := &model.ClassSession{
				GroupID:     block.GroupID,
				TeacherID:   block.Group.TeacherID,
				SubjectID:   block.Group.SubjectID,
				Date:        d,
				StartTime:   block.StartTime,
				EndTime:     block.EndTime,
				IsOnline:    block.IsOnline,
				Location:    block.Location,
				MeetingLink: block.MeetingLink,
			}

			created, err := s.sessionRepo.InsertIfAbsent(ctx, session)
			if err != nil {
				// Ошибка одной вставки не прерывает генерацию остальных
				s.logger.Warn("Failed to create session",
					zap.Int64("group_id", block.GroupID),
					zap.Time("date", d),
					zap.String("start_time", block.StartTime.String()),
					zap.Error(err))
				continue
			}

			if created {
				createdCount++
			}
		}
	}

	s.logger.Info("Session generation completed",
		zap.Time("start_date", start),
		zap.Time("end_date", end),
		zap.Int("created", createdCount))

	return createdCount, nil
}

// GenerateUpcoming генерирует занятия на ближайшие days дней
// (по умолчанию 7). fromToday=true — начиная с сегодня, иначе с завтра.
func (s *SchedulingService) GenerateUpcoming(ctx context.Context, days int, fromToday bool, teacherID *int64) (int, error) {
	if days <= 0 {
		days = 7
	}

	start := model.DateOnly(s.now())
	if !fromToday {
		start = start.AddDate(0, 0, 1)
	}
	end := start.AddDate(0, 0, days-1)

	return s.GenerateSessionsForRange(ctx, start, end, teacherID)
}
