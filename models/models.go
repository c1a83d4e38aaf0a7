package models

import (
	"time"
)

// User представляет информацию о пользователе
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// Reminder представляет напоминание, сохраненное в базе данных
type Reminder struct {
	ID         int64
	OwnerID    int64
	NotifyTime time.Time
	Text       string
	CreatedAt  time.Time
}

// DraftReminder хранит промежуточные данные создаваемого напоминания.
// Заполняется по шагам: текст, дата, час, минута.
type DraftReminder struct {
	Text   string
	Date   time.Time
	Hour   int
	Minute int
}

// NotifyTime собирает итоговое время отправки из даты, часа и минуты
func (d *DraftReminder) NotifyTime() time.Time {
	return time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), d.Hour, d.Minute, 0, 0, d.Date.Location())
}

// UserState хранит состояние диалога с пользователем
type UserState struct {
	State string
	Draft *DraftReminder
}

// Возможные состояния диалога создания напоминания.
// Отсутствие записи в хранилище состояний означает, что диалог не начат.
const (
	StateAwaitText   = "await_text"
	StateAwaitDate   = "await_date"
	StateAwaitHour   = "await_hour"
	StateAwaitMinute = "await_minute"
)
