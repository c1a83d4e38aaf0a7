package utils

import (
	"time"
)

// FormatDisplayDate форматирует дату отправки для отображения пользователю
func FormatDisplayDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDisplayTime форматирует время отправки для отображения пользователю
func FormatDisplayTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatNotifyTime форматирует дату и время отправки одной строкой
func FormatNotifyTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
