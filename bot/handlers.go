package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/napominalka-bot/models"
	"github.com/yourusername/napominalka-bot/utils"
)

// handleMessage обрабатывает текстовые сообщения
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	userID := message.From.ID
	chatID := message.Chat.ID

	// Отмена доступна из любого состояния и обрабатывается раньше
	// всего остального
	if message.Text == btnCancel || (message.IsCommand() && message.Command() == "cancel") {
		b.cancelDialogue(userID, chatID)
		return
	}

	// Внутри диалога любой текст — это ввод текущего шага: на шаге
	// текста он сохраняется как есть, даже если совпадает с кнопкой
	// меню или командой. Кнопки и команды срабатывают только вне диалога.
	if userState, exists := b.getUserState(userID); exists {
		switch userState.State {
		case models.StateAwaitText:
			b.submitReminderText(userID, chatID, message.Text)

		case models.StateAwaitDate, models.StateAwaitHour, models.StateAwaitMinute:
			// На этих шагах ожидается нажатие кнопки, а не текст
			b.send(tgbotapi.NewMessage(chatID, "Выбери значение кнопками выше или нажми «"+btnCancel+"»"))

		default:
			b.log.Warn().Str("state", userState.State).Int64("user_id", userID).Msg("необработанное состояние диалога")
			b.cancelDialogue(userID, chatID)
		}
		return
	}

	if message.IsCommand() {
		b.handleCommand(message)
		return
	}

	switch message.Text {
	case btnAddReminder:
		b.startComposition(userID, chatID)
	case btnReminderList:
		b.sendRemindersList(userID, chatID)
	default:
		// Вне диалога произвольный текст возвращает главное меню
		b.sendMainMenu(chatID)
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		user := &models.User{
			ID:        userID,
			Username:  message.From.UserName,
			FirstName: message.From.FirstName,
			LastName:  message.From.LastName,
		}
		if err := b.storage.UpsertUser(user); err != nil {
			b.log.Error().Err(err).Int64("user_id", userID).Msg("не удалось сохранить пользователя")
		}

		msg := tgbotapi.NewMessage(chatID,
			"Привет! Я напомню обо всем, что попросишь.\n\nСоздай напоминалку кнопкой «"+btnAddReminder+"»")
		msg.ReplyMarkup = mainMenuKeyboard()
		b.send(msg)

	case "help":
		b.send(tgbotapi.NewMessage(chatID,
			"«"+btnAddReminder+"» — создать напоминалку: текст, дата, час, минута.\n"+
				"«"+btnReminderList+"» — показать активные напоминалки.\n"+
				"/cancel — прервать создание."))

	default:
		b.send(tgbotapi.NewMessage(chatID, "Неизвестная команда. Посмотри /help"))
	}
}

// handleCallbackQuery обрабатывает нажатия inline кнопок
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Убираем "часики" на кнопке
	b.request(tgbotapi.NewCallback(query.ID, ""))

	if query.Message == nil || query.From == nil {
		return
	}

	data := query.Data
	switch {
	case strings.HasPrefix(data, callbackDeletePrefix):
		b.deleteReminderByCallback(query)

	case data == callbackCalIgnore:
		// Декоративные кнопки календаря

	case strings.HasPrefix(data, callbackCalPrevPrefix), strings.HasPrefix(data, callbackCalNextPrefix):
		b.flipCalendar(query)

	case strings.HasPrefix(data, callbackCalDayPrefix):
		b.submitDate(query)

	case strings.HasPrefix(data, callbackHourPrefix):
		b.submitHour(query)

	case strings.HasPrefix(data, callbackMinutePrefix):
		b.submitMinute(query)

	default:
		b.log.Warn().Str("data", data).Msg("неизвестные callback-данные")
	}
}

// startComposition начинает диалог создания напоминания
func (b *Bot) startComposition(userID, chatID int64) {
	if !b.allowAction(userID, actionAddReminder) {
		return
	}

	b.startDialogue(userID)

	msg := tgbotapi.NewMessage(chatID, "✍ Введи текст напоминалки одним сообщением:")
	msg.ReplyMarkup = cancelKeyboard()
	b.send(msg)
}

// submitReminderText сохраняет текст и показывает календарь выбора даты
func (b *Bot) submitReminderText(userID, chatID int64, text string) {
	if !b.allowAction(userID, actionSubmitText) {
		return
	}

	userState, exists := b.getUserState(userID)
	if !exists {
		return
	}
	// Текст сохраняется как есть, без обработки
	userState.Draft.Text = text
	b.setUserState(userID, models.StateAwaitDate)

	currentTime := b.now()
	msg := tgbotapi.NewMessage(chatID, "Отлично! Теперь выбери дату отправки напоминалки:")
	msg.ReplyMarkup = calendarKeyboard(currentTime.Year(), currentTime.Month())
	b.send(msg)
}

// flipCalendar перелистывает календарь на соседний месяц
func (b *Bot) flipCalendar(query *tgbotapi.CallbackQuery) {
	userState, exists := b.getUserState(query.From.ID)
	if !exists || userState.State != models.StateAwaitDate {
		return
	}

	prefix := callbackCalPrevPrefix
	if strings.HasPrefix(query.Data, callbackCalNextPrefix) {
		prefix = callbackCalNextPrefix
	}

	year, month, err := parseCalendarMonth(query.Data, prefix)
	if err != nil {
		b.log.Error().Err(err).Msg("ошибка перелистывания календаря")
		return
	}

	b.request(tgbotapi.NewEditMessageReplyMarkup(
		query.Message.Chat.ID, query.Message.MessageID, calendarKeyboard(year, month)))
}

// submitDate сохраняет выбранную дату и показывает выбор часа
func (b *Bot) submitDate(query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	chatID := query.Message.Chat.ID

	userState, exists := b.getUserState(userID)
	if !exists || userState.State != models.StateAwaitDate {
		return
	}

	date, err := parseCalendarDay(query.Data)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", userID).Msg("ошибка выбора даты")
		return
	}

	userState.Draft.Date = date
	b.setUserState(userID, models.StateAwaitHour)

	b.request(tgbotapi.NewEditMessageText(chatID, query.Message.MessageID,
		fmt.Sprintf("Дата отправки: %s\n\n⏰ Выбери час отправки:", utils.FormatDisplayDate(date))))
	b.request(tgbotapi.NewEditMessageReplyMarkup(chatID, query.Message.MessageID, hoursKeyboard()))
}

// submitHour сохраняет выбранный час и показывает выбор минуты
func (b *Bot) submitHour(query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	chatID := query.Message.Chat.ID

	userState, exists := b.getUserState(userID)
	if !exists || userState.State != models.StateAwaitHour {
		return
	}

	hour, err := strconv.Atoi(strings.TrimPrefix(query.Data, callbackHourPrefix))
	if err != nil || hour < 0 || hour > 23 {
		b.log.Error().Str("data", query.Data).Int64("user_id", userID).Msg("некорректный час")
		return
	}

	userState.Draft.Hour = hour
	b.setUserState(userID, models.StateAwaitMinute)

	b.request(tgbotapi.NewEditMessageText(chatID, query.Message.MessageID,
		fmt.Sprintf("Дата отправки: %s.\nВремя отправки: %d:X.\n\n⏰ Выбери минуту отправки:",
			utils.FormatDisplayDate(userState.Draft.Date), hour)))
	b.request(tgbotapi.NewEditMessageReplyMarkup(chatID, query.Message.MessageID, minutesKeyboard()))
}

// submitMinute сохраняет минуту и завершает создание напоминания:
// проверяет, что время в будущем, что лимит не превышен, и пишет в базу
func (b *Bot) submitMinute(query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	chatID := query.Message.Chat.ID

	userState, exists := b.getUserState(userID)
	if !exists || userState.State != models.StateAwaitMinute {
		return
	}

	minute, err := strconv.Atoi(strings.TrimPrefix(query.Data, callbackMinutePrefix))
	if err != nil || minute < 0 || minute > 59 {
		// Клавиатура остается на месте, выбор можно повторить
		b.log.Error().Str("data", query.Data).Int64("user_id", userID).Msg("некорректная минута")
		return
	}

	// После принятого выбора снимаем клавиатуру, чтобы его нельзя
	// было повторить
	b.request(tgbotapi.NewEditMessageReplyMarkup(chatID, query.Message.MessageID, emptyInlineKeyboard()))

	userState.Draft.Minute = minute
	notifyTime := userState.Draft.NotifyTime()

	resultText := b.commitReminder(userID, userState.Draft, notifyTime)
	b.request(tgbotapi.NewEditMessageText(chatID, query.Message.MessageID, resultText))

	b.request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))
	time.Sleep(b.menuPause)

	msg := tgbotapi.NewMessage(chatID, "🔙 Возвращаемся в главное меню!")
	msg.ReplyMarkup = mainMenuKeyboard()
	b.send(msg)

	b.clearUserState(userID)
}

// commitReminder валидирует черновик и сохраняет напоминание.
// Возвращает текст с итогом для пользователя.
func (b *Bot) commitReminder(userID int64, draft *models.DraftReminder, notifyTime time.Time) string {
	// Время отправки должно быть строго в будущем
	if !b.now().Before(notifyTime) {
		return fmt.Sprintf("Дата отправки: %s.\n\n❌ Эта дата уже прошла, напоминалка не создана!",
			utils.FormatNotifyTime(notifyTime))
	}

	count, err := b.storage.CountRemindersByOwner(userID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", userID).Msg("не удалось посчитать напоминания")
		return "❌ Произошла ошибка, попробуй еще раз позже."
	}
	if count >= b.remindersLimit {
		return fmt.Sprintf("❌ У тебя уже %d напоминалок — это максимум. Удали что-нибудь из списка.", count)
	}

	_, err = b.storage.AddReminder(&models.Reminder{
		OwnerID:    userID,
		NotifyTime: notifyTime,
		Text:       draft.Text,
	})
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", userID).Msg("не удалось сохранить напоминание")
		return "❌ Произошла ошибка, попробуй еще раз позже."
	}

	b.log.Info().Int64("user_id", userID).Time("notify_time", notifyTime).Msg("напоминание создано")
	return fmt.Sprintf("Дата отправки: %s.\nВремя отправки: %s.\n\n👍 Молодец, все данные заполнены, так держать!",
		utils.FormatDisplayDate(notifyTime), utils.FormatDisplayTime(notifyTime))
}

// cancelDialogue прерывает диалог из любого состояния и убирает черновик
func (b *Bot) cancelDialogue(userID, chatID int64) {
	b.clearUserState(userID)

	msg := tgbotapi.NewMessage(chatID, "Отмена!")
	msg.ReplyMarkup = mainMenuKeyboard()
	b.send(msg)
}

// sendRemindersList отправляет список напоминаний пользователя,
// по одному сообщению с кнопкой удаления на каждое
func (b *Bot) sendRemindersList(userID, chatID int64) {
	reminders, err := b.storage.GetRemindersByOwner(userID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", userID).Msg("не удалось получить список напоминаний")
		b.send(tgbotapi.NewMessage(chatID, "❌ Произошла ошибка, попробуй еще раз позже."))
		return
	}

	if len(reminders) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "У тебя пока нет напоминалок."))
		return
	}

	for _, reminder := range reminders {
		b.request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))
		time.Sleep(b.listPause)

		msg := tgbotapi.NewMessage(chatID,
			fmt.Sprintf("📅 %s\n\n%s", utils.FormatNotifyTime(reminder.NotifyTime), reminder.Text))
		msg.ReplyMarkup = reminderParamsKeyboard(reminder.ID)
		b.send(msg)
	}
}

// deleteReminderByCallback удаляет напоминание по кнопке из списка.
// Кнопка показывается только владельцу, поэтому владение не перепроверяется.
func (b *Bot) deleteReminderByCallback(query *tgbotapi.CallbackQuery) {
	reminderID, err := strconv.ParseInt(strings.TrimPrefix(query.Data, callbackDeletePrefix), 10, 64)
	if err != nil {
		b.log.Error().Str("data", query.Data).Msg("некорректный ID напоминания")
		return
	}

	if err := b.storage.DeleteReminder(reminderID); err != nil {
		b.log.Error().Err(err).Int64("reminder_id", reminderID).Msg("не удалось удалить напоминание")
		return
	}

	chatID := query.Message.Chat.ID
	b.request(tgbotapi.NewEditMessageReplyMarkup(chatID, query.Message.MessageID, emptyInlineKeyboard()))
	b.request(tgbotapi.NewDeleteMessage(chatID, query.Message.MessageID))
}

// send отправляет сообщение, логируя ошибку транспорта
func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.sender.Send(c); err != nil {
		b.log.Error().Err(err).Msg("ошибка при отправке сообщения")
	}
}

// request выполняет запрос к API, логируя ошибку транспорта
func (b *Bot) request(c tgbotapi.Chattable) {
	if _, err := b.sender.Request(c); err != nil {
		b.log.Error().Err(err).Msg("ошибка запроса к Telegram API")
	}
}

// sendMainMenu отправляет основное меню
func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Что будем делать?")
	msg.ReplyMarkup = mainMenuKeyboard()
	b.send(msg)
}
