package models

import (
	"testing"
	"time"
)

func TestDraftNotifyTime(t *testing.T) {
	draft := &DraftReminder{
		Text:   "позвонить маме",
		Date:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local),
		Hour:   18,
		Minute: 45,
	}

	got := draft.NotifyTime()
	want := time.Date(2026, 9, 2, 18, 45, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("ожидалось %v, получено %v", want, got)
	}
}

func TestDraftNotifyTimeMidnight(t *testing.T) {
	draft := &DraftReminder{
		Date: time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local),
	}

	got := draft.NotifyTime()
	want := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("ожидалось %v, получено %v", want, got)
	}
}
