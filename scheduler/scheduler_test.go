package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/napominalka-bot/models"
)

type fakeStore struct {
	reminders []*models.Reminder
	deleted   []int64
	listErr   error
	deleteErr error
}

func (s *fakeStore) GetAllReminders() ([]*models.Reminder, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.reminders, nil
}

func (s *fakeStore) DeleteReminder(reminderID int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, reminderID)
	return nil
}

type fakeTransport struct {
	sent    []int64
	results map[int64]DeliveryResult
	errs    map[int64]error
}

func (t *fakeTransport) SendReminder(ownerID int64, text string) (DeliveryResult, error) {
	t.sent = append(t.sent, ownerID)
	if err := t.errs[ownerID]; err != nil {
		return Delivered, err
	}
	return t.results[ownerID], nil
}

func newTestScheduler(store *fakeStore, transport *fakeTransport, now time.Time) *Scheduler {
	s := New(store, transport, zerolog.Nop(), 0)
	s.now = func() time.Time { return now }
	return s
}

func TestIsDateCame(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 30, 10, 0, time.Local)

	cases := []struct {
		name   string
		notify time.Time
		want   bool
	}{
		{"прошедшее время", now.Add(-time.Hour), true},
		{"та же минута, секунды позади", time.Date(2026, 9, 1, 12, 30, 3, 0, time.Local), true},
		// Совпадение по минуте наступает, даже если секунды еще впереди
		{"та же минута, секунды впереди", time.Date(2026, 9, 1, 12, 30, 45, 0, time.Local), true},
		{"следующая минута", time.Date(2026, 9, 1, 12, 31, 0, 0, time.Local), false},
		{"будущий день", now.AddDate(0, 0, 1), false},
		{"та же минута другого дня", time.Date(2026, 9, 2, 12, 30, 10, 0, time.Local), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, isDateCame(now, tc.notify))
		})
	}
}

func TestSweepPartitionsByDueTime(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 30, 10, 0, time.Local)
	store := &fakeStore{reminders: []*models.Reminder{
		{ID: 1, OwnerID: 10, NotifyTime: now.Add(-time.Hour), Text: "прошедшее"},
		{ID: 2, OwnerID: 20, NotifyTime: time.Date(2026, 9, 1, 12, 30, 45, 0, time.Local), Text: "текущая минута"},
		{ID: 3, OwnerID: 30, NotifyTime: now.Add(time.Hour), Text: "будущее"},
	}}
	transport := &fakeTransport{results: map[int64]DeliveryResult{}, errs: map[int64]error{}}

	newTestScheduler(store, transport, now).Sweep()

	require.Equal(t, []int64{10, 20}, transport.sent)
	require.Equal(t, []int64{1, 2}, store.deleted)
}

func TestSweepDeletesUnreachable(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 30, 0, 0, time.Local)
	store := &fakeStore{reminders: []*models.Reminder{
		{ID: 1, OwnerID: 10, NotifyTime: now.Add(-time.Minute)},
		{ID: 2, OwnerID: 20, NotifyTime: now.Add(-time.Minute)},
	}}
	transport := &fakeTransport{
		results: map[int64]DeliveryResult{10: Unreachable, 20: Delivered},
		errs:    map[int64]error{},
	}

	newTestScheduler(store, transport, now).Sweep()

	// Недоступный получатель не приводит к повторам: напоминание удалено,
	// обход продолжен
	require.Equal(t, []int64{10, 20}, transport.sent)
	require.Equal(t, []int64{1, 2}, store.deleted)
}

func TestSweepKeepsReminderOnTransportError(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 30, 0, 0, time.Local)
	store := &fakeStore{reminders: []*models.Reminder{
		{ID: 1, OwnerID: 10, NotifyTime: now.Add(-time.Minute)},
		{ID: 2, OwnerID: 20, NotifyTime: now.Add(-time.Minute)},
	}}
	transport := &fakeTransport{
		results: map[int64]DeliveryResult{},
		errs:    map[int64]error{10: errors.New("api недоступен")},
	}

	newTestScheduler(store, transport, now).Sweep()

	// Первое напоминание осталось до следующего прохода, второе обработано
	require.Equal(t, []int64{10, 20}, transport.sent)
	require.Equal(t, []int64{2}, store.deleted)
}

func TestSweepStopsOnListError(t *testing.T) {
	store := &fakeStore{listErr: errors.New("база недоступна")}
	transport := &fakeTransport{}

	newTestScheduler(store, transport, time.Now()).Sweep()

	require.Empty(t, transport.sent)
	require.Empty(t, store.deleted)
}
