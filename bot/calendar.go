package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback-данные календаря выбора даты
const (
	callbackCalDayPrefix  = "cal_day_"
	callbackCalPrevPrefix = "cal_prev_"
	callbackCalNextPrefix = "cal_next_"
	callbackCalIgnore     = "cal_ignore"

	calMonthLayout = "2006-01"
	calDayLayout   = "2006-01-02"
)

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var weekdayNames = [...]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// calendarKeyboard строит inline календарь на указанный месяц:
// заголовок с перелистыванием, строка дней недели и сетка чисел
func calendarKeyboard(year int, month time.Month) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup()

	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	prevMonth := firstDay.AddDate(0, -1, 0)
	nextMonth := firstDay.AddDate(0, 1, 0)

	// Заголовок: «  Сентябрь 2026  »
	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("«", callbackCalPrevPrefix+prevMonth.Format(calMonthLayout)),
		tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s %d", monthNames[month-1], year), callbackCalIgnore),
		tgbotapi.NewInlineKeyboardButtonData("»", callbackCalNextPrefix+nextMonth.Format(calMonthLayout)),
	))

	// Дни недели
	weekdays := tgbotapi.NewInlineKeyboardRow()
	for _, name := range weekdayNames {
		weekdays = append(weekdays, tgbotapi.NewInlineKeyboardButtonData(name, callbackCalIgnore))
	}
	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, weekdays)

	// Сетка чисел, неделя начинается с понедельника
	daysInMonth := nextMonth.AddDate(0, 0, -1).Day()
	offset := (int(firstDay.Weekday()) + 6) % 7

	row := tgbotapi.NewInlineKeyboardRow()
	for i := 0; i < offset; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", callbackCalIgnore))
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d", day),
			callbackCalDayPrefix+date.Format(calDayLayout),
		))
		if len(row) == 7 {
			keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, row)
			row = tgbotapi.NewInlineKeyboardRow()
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", callbackCalIgnore))
		}
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, row)
	}

	return keyboard
}

// parseCalendarDay разбирает дату из callback-данных кнопки дня
func parseCalendarDay(data string) (time.Time, error) {
	raw := strings.TrimPrefix(data, callbackCalDayPrefix)
	date, err := time.ParseInLocation(calDayLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("не удалось разобрать дату календаря %q: %w", raw, err)
	}
	return date, nil
}

// parseCalendarMonth разбирает месяц из callback-данных перелистывания
func parseCalendarMonth(data, prefix string) (int, time.Month, error) {
	raw := strings.TrimPrefix(data, prefix)
	month, err := time.ParseInLocation(calMonthLayout, raw, time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("не удалось разобрать месяц календаря %q: %w", raw, err)
	}
	return month.Year(), month.Month(), nil
}
