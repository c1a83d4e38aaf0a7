package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Кнопки главного меню и отмены
const (
	btnAddReminder  = "➕ Добавить напоминание"
	btnReminderList = "📋 Мои напоминания"
	btnCancel       = "❌ Отмена"
)

// Префиксы callback-данных inline кнопок
const (
	callbackHourPrefix   = "hour_"
	callbackMinutePrefix = "minute_"
	callbackDeletePrefix = "delete_reminder_"
)

// mainMenuKeyboard возвращает основную reply-клавиатуру
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddReminder),
			tgbotapi.NewKeyboardButton(btnReminderList),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// cancelKeyboard возвращает клавиатуру с единственной кнопкой отмены,
// доступной на любом шаге создания напоминания
func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// hoursKeyboard возвращает сетку выбора часа отправки (0-23)
func hoursKeyboard() tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup()
	for row := 0; row < 4; row++ {
		buttons := tgbotapi.NewInlineKeyboardRow()
		for col := 0; col < 6; col++ {
			hour := row*6 + col
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%02d", hour),
				fmt.Sprintf("%s%d", callbackHourPrefix, hour),
			))
		}
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, buttons)
	}
	return keyboard
}

// minutesKeyboard возвращает сетку выбора минуты отправки с шагом 5
func minutesKeyboard() tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup()
	for row := 0; row < 2; row++ {
		buttons := tgbotapi.NewInlineKeyboardRow()
		for col := 0; col < 6; col++ {
			minute := (row*6 + col) * 5
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%02d", minute),
				fmt.Sprintf("%s%d", callbackMinutePrefix, minute),
			))
		}
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, buttons)
	}
	return keyboard
}

// reminderParamsKeyboard возвращает кнопку удаления для элемента списка
func reminderParamsKeyboard(reminderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"🗑 Удалить",
				fmt.Sprintf("%s%d", callbackDeletePrefix, reminderID),
			),
		),
	)
}

// emptyInlineKeyboard используется для снятия устаревших inline кнопок,
// чтобы сделанный выбор нельзя было повторить
func emptyInlineKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	}
}
