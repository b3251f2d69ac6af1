package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWindowLister struct {
	sessions []*model.ClassSession
	calls    int
}

func (f *fakeWindowLister) ListStartingBetween(_ context.Context, from, to time.Time) ([]*model.ClassSession, error) {
	f.calls++

	var out []*model.ClassSession
	for _, s := range f.sessions {
		at := s.StartsAt()
		if !at.Before(from) && !at.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeRoster struct {
	byGroup map[int64][]*model.Student
}

func (f *fakeRoster) GetActiveByGroupID(_ context.Context, groupID int64) ([]*model.Student, error) {
	return f.byGroup[groupID], nil
}

type fakeNotificationLog struct {
	sent map[[2]int64]bool // (sessionID, studentID)
}

func newFakeNotificationLog() *fakeNotificationLog {
	return &fakeNotificationLog{sent: make(map[[2]int64]bool)}
}

func (f *fakeNotificationLog) AlreadySent(_ context.Context, _ string, sessionID, studentID int64) (bool, error) {
	return f.sent[[2]int64{sessionID, studentID}], nil
}

func (f *fakeNotificationLog) Record(_ context.Context, _ string, sessionID, studentID int64) error {
	f.sent[[2]int64{sessionID, studentID}] = true
	return nil
}

type fakeLocker struct {
	busy     bool
	acquired int
	released int
}

func (f *fakeLocker) TryAcquire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	if f.busy {
		return false, nil
	}
	f.acquired++
	return true, nil
}

func (f *fakeLocker) Release(_ context.Context, _ string) error {
	f.released++
	return nil
}

type fakeNotifier struct {
	delivered [][2]int64 // (sessionID, studentID)
}

func (f *fakeNotifier) SendSessionReminder(_ context.Context, student *model.Student, session *model.ClassSession) error {
	f.delivered = append(f.delivered, [2]int64{session.ID, student.ID})
	return nil
}

func reminderFixtureSessions() []*model.ClassSession {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	return []*model.ClassSession{
		{ID: 1, GroupID: 10, Date: date, StartTime: model.NewTimeOfDay(16, 0)},
		{ID: 2, GroupID: 20, Date: date, StartTime: model.NewTimeOfDay(19, 0)}, // вне окна
	}
}

func TestSendRemindersWindow(t *testing.T) {
	lister := &fakeWindowLister{sessions: reminderFixtureSessions()}
	roster := &fakeRoster{byGroup: map[int64][]*model.Student{
		10: {{ID: 7, FirstName: "Аня"}, {ID: 8, FirstName: "Пётр"}},
		20: {{ID: 9, FirstName: "Вера"}},
	}}
	log := newFakeNotificationLog()
	locker := &fakeLocker{}
	notifier := &fakeNotifier{}

	svc := NewReminderService(lister, roster, log, locker, notifier, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC) }

	sent, err := svc.SendRemindersWindow(context.Background(), 2*time.Hour)
	require.NoError(t, err)

	// Занятие в 16:00 попадает в окно [15:00, 17:00], в 19:00 нет
	assert.Equal(t, 2, sent)
	assert.ElementsMatch(t, [][2]int64{{1, 7}, {1, 8}}, notifier.delivered)
	assert.Equal(t, 1, locker.acquired)
	assert.Equal(t, 1, locker.released)
}

func TestSendRemindersWindow_Deduplicates(t *testing.T) {
	lister := &fakeWindowLister{sessions: reminderFixtureSessions()}
	roster := &fakeRoster{byGroup: map[int64][]*model.Student{
		10: {{ID: 7}, {ID: 8}},
	}}
	log := newFakeNotificationLog()
	locker := &fakeLocker{}
	notifier := &fakeNotifier{}

	svc := NewReminderService(lister, roster, log, locker, notifier, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC) }

	sent, err := svc.SendRemindersWindow(context.Background(), 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	// Повторный проход того же окна ничего не шлёт
	sent, err = svc.SendRemindersWindow(context.Background(), 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, notifier.delivered, 2)
}

func TestSendRemindersWindow_LockBusy(t *testing.T) {
	lister := &fakeWindowLister{sessions: reminderFixtureSessions()}
	locker := &fakeLocker{busy: true}
	notifier := &fakeNotifier{}

	svc := NewReminderService(lister, &fakeRoster{}, newFakeNotificationLog(), locker, notifier, zap.NewNop())

	sent, err := svc.SendRemindersWindow(context.Background(), 2*time.Hour)
	require.NoError(t, err)

	// Параллельный запуск не трогает ни базу, ни доставку
	assert.Equal(t, 0, sent)
	assert.Zero(t, lister.calls)
	assert.Empty(t, notifier.delivered)
	assert.Zero(t, locker.released)
}
