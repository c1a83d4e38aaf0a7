package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCalendarKeyboard(t *testing.T) {
	// Сентябрь 2026 начинается со вторника и содержит 30 дней
	keyboard := calendarKeyboard(2026, time.September)

	// Заголовок, дни недели и 5 недель
	require.Len(t, keyboard.InlineKeyboard, 7)
	require.Equal(t, "Сентябрь 2026", keyboard.InlineKeyboard[0][1].Text)

	// Первая ячейка сетки пустая (понедельник), вторая — первое число
	firstWeek := keyboard.InlineKeyboard[2]
	require.Len(t, firstWeek, 7)
	require.Equal(t, callbackCalIgnore, *firstWeek[0].CallbackData)
	require.Equal(t, "1", firstWeek[1].Text)
	require.Equal(t, callbackCalDayPrefix+"2026-09-01", *firstWeek[1].CallbackData)

	// Перелистывание указывает на соседние месяцы
	require.Equal(t, callbackCalPrevPrefix+"2026-08", *keyboard.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, callbackCalNextPrefix+"2026-10", *keyboard.InlineKeyboard[0][2].CallbackData)
}

func TestParseCalendarDay(t *testing.T) {
	date, err := parseCalendarDay(callbackCalDayPrefix + "2026-09-02")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local), date)

	_, err = parseCalendarDay(callbackCalDayPrefix + "мусор")
	require.Error(t, err)
}

func TestParseCalendarMonth(t *testing.T) {
	year, month, err := parseCalendarMonth(callbackCalNextPrefix+"2026-10", callbackCalNextPrefix)
	require.NoError(t, err)
	require.Equal(t, 2026, year)
	require.Equal(t, time.October, month)
}
