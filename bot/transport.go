package bot

import (
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/napominalka-bot/scheduler"
)

// SendReminder доставляет напоминание получателю. Недоступность получателя
// (бот заблокирован, аккаунт удален, чат неизвестен) — ожидаемый исход,
// он возвращается как результат, а не как ошибка.
func (b *Bot) SendReminder(ownerID int64, text string) (scheduler.DeliveryResult, error) {
	msg := tgbotapi.NewMessage(ownerID, "🔔 Напоминание:\n\n"+text)

	_, err := b.sender.Send(msg)
	if err == nil {
		return scheduler.Delivered, nil
	}
	if isUnreachable(err) {
		return scheduler.Unreachable, nil
	}
	return scheduler.Delivered, err
}

// Фрагменты описаний ошибок Bot API для недоступных получателей
var unreachableMessages = []string{
	"bot was blocked by the user",
	"user is deactivated",
	"chat not found",
}

func isUnreachable(err error) bool {
	var apiErr *tgbotapi.Error
	message := err.Error()
	if errors.As(err, &apiErr) {
		message = apiErr.Message
	}

	for _, fragment := range unreachableMessages {
		if strings.Contains(message, fragment) {
			return true
		}
	}
	return false
}
