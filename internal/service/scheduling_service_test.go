package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBlockSource struct {
	blocks []*model.ScheduleBlock
}

func (f *fakeBlockSource) ListForGeneration(_ context.Context, teacherID *int64) ([]*model.ScheduleBlock, error) {
	if teacherID == nil {
		return f.blocks, nil
	}

	var out []*model.ScheduleBlock
	for _, b := range f.blocks {
		if b.Group.TeacherID == *teacherID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeSessionStore struct {
	sessions map[string]*model.ClassSession
	nextID   int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*model.ClassSession)}
}

func (f *fakeSessionStore) InsertIfAbsent(_ context.Context, s *model.ClassSession) (bool, error) {
	key := fmt.Sprintf("%d|%s|%d", s.GroupID, s.Date.Format("2006-01-02"), s.StartTime)
	if _, ok := f.sessions[key]; ok {
		return false, nil
	}

	f.nextID++
	s.ID = f.nextID
	f.sessions[key] = s
	return true, nil
}

func (f *fakeSessionStore) dates() []string {
	var out []string
	for key := range f.sessions {
		out = append(out, key)
	}
	return out
}

func activeYear() *model.AcademicYear {
	return &model.AcademicYear{
		ID:        1,
		Name:      "2024/2025",
		StartDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
}

func wednesdayBlock(year *model.AcademicYear) *model.ScheduleBlock {
	return &model.ScheduleBlock{
		ID:        1,
		GroupID:   10,
		Weekday:   model.WeekdayWednesday,
		StartTime: model.NewTimeOfDay(16, 0),
		EndTime:   model.NewTimeOfDay(17, 30),
		Group: &model.Group{
			ID:           10,
			TeacherID:    100,
			AcademicYear: year,
		},
	}
}

func TestGenerateSessionsForRange_ExpandsWeeklyBlocks(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewSchedulingService(&fakeBlockSource{blocks: []*model.ScheduleBlock{wednesdayBlock(activeYear())}}, store, zap.NewNop())

	created, err := svc.GenerateSessionsForRange(context.Background(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		nil)
	require.NoError(t, err)

	// Среды января 2025: 1, 8, 15, 22, 29
	assert.Equal(t, 5, created)
	assert.Len(t, store.sessions, 5)
	for _, day := range []string{"2025-01-01", "2025-01-08", "2025-01-15", "2025-01-22", "2025-01-29"} {
		assert.Contains(t, store.dates(), fmt.Sprintf("10|%s|960", day))
	}
}

func TestGenerateSessionsForRange_Idempotent(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewSchedulingService(&fakeBlockSource{blocks: []*model.ScheduleBlock{wednesdayBlock(activeYear())}}, store, zap.NewNop())

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	created, err := svc.GenerateSessionsForRange(context.Background(), start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, created)

	// Повторный запуск на тех же данных ничего не создаёт
	created, err = svc.GenerateSessionsForRange(context.Background(), start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, store.sessions, 5)
}

func TestGenerateSessionsForRange_AcademicYearWindow(t *testing.T) {
	year := activeYear()
	year.EndDate = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	store := newFakeSessionStore()
	svc := NewSchedulingService(&fakeBlockSource{blocks: []*model.ScheduleBlock{wednesdayBlock(year)}}, store, zap.NewNop())

	created, err := svc.GenerateSessionsForRange(context.Background(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		nil)
	require.NoError(t, err)

	// Последний день года (15 января, среда) ещё входит в окно
	assert.Equal(t, 3, created)
}

func TestGenerateSessionsForRange_InactiveYearSkipped(t *testing.T) {
	year := activeYear()
	year.IsActive = false

	store := newFakeSessionStore()
	svc := NewSchedulingService(&fakeBlockSource{blocks: []*model.ScheduleBlock{wednesdayBlock(year)}}, store, zap.NewNop())

	created, err := svc.GenerateSessionsForRange(context.Background(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		nil)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestGenerateSessionsForRange_TeacherScope(t *testing.T) {
	year := activeYear()
	mine := wednesdayBlock(year)

	other := wednesdayBlock(year)
	other.ID = 2
	other.GroupID = 20
	other.Group = &model.Group{ID: 20, TeacherID: 200, AcademicYear: year}

	store := newFakeSessionStore()
	svc := NewSchedulingService(&fakeBlockSource{blocks: []*model.ScheduleBlock{mine, other}}, store, zap.NewNop())

	teacherID := int64(100)
	created, err := svc.GenerateSessionsForRange(context.Background(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
		&teacherID)
	require.NoError(t, err)

	assert.Equal(t, 1, created)
	for _, s := range store.sessions {
		assert.Equal(t, int64(10), s.GroupID)
	}
}

func TestGenerateUpcoming(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewSchedulingService(&fakeBlockSource{blocks: []*model.ScheduleBlock{wednesdayBlock(activeYear())}}, store, zap.NewNop())

	// Среда 15 января 2025
	svc.now = func() time.Time { return time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC) }

	created, err := svc.GenerateUpcoming(context.Background(), 7, true, nil)
	require.NoError(t, err)
	// Неделя со среды по вторник включает одну среду
	assert.Equal(t, 1, created)

	created, err = svc.GenerateUpcoming(context.Background(), 14, true, nil)
	require.NoError(t, err)
	// Две недели добавляют ещё одну среду
	assert.Equal(t, 1, created)

	// fromToday=false сдвигает старт на завтра: сегодняшняя среда не входит
	store2 := newFakeSessionStore()
	svc2 := NewSchedulingService(&fakeBlockSource{blocks: []*model.ScheduleBlock{wednesdayBlock(activeYear())}}, store2, zap.NewNop())
	svc2.now = svc.now

	created, err = svc2.GenerateUpcoming(context.Background(), 7, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Contains(t, store2.dates(), "10|2025-01-22|960")
}
