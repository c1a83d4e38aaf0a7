package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/napominalka-bot/models"
)

// DeliveryResult описывает исход попытки отправки напоминания
type DeliveryResult int

const (
	// Delivered — напоминание доставлено получателю
	Delivered DeliveryResult = iota
	// Unreachable — получатель недоступен: заблокировал бота,
	// удалил аккаунт или идентификатор чата неизвестен
	Unreachable
)

// Store — доступ планировщика к хранилищу напоминаний
type Store interface {
	GetAllReminders() ([]*models.Reminder, error)
	DeleteReminder(reminderID int64) error
}

// Transport отправляет напоминание получателю. Недоступность получателя
// возвращается как результат, а не как ошибка: обход списка должен
// продолжаться независимо от исхода отправки.
type Transport interface {
	SendReminder(ownerID int64, text string) (DeliveryResult, error)
}

// Scheduler периодически проверяет напоминания и отправляет наступившие
type Scheduler struct {
	store     Store
	transport Transport
	log       zerolog.Logger

	// Пауза между отправками, чтобы не упереться в лимиты Telegram
	pause time.Duration

	// now подменяется в тестах
	now func() time.Time
}

// New создает планировщик
func New(store Store, transport Transport, log zerolog.Logger, pause time.Duration) *Scheduler {
	return &Scheduler{
		store:     store,
		transport: transport,
		log:       log,
		pause:     pause,
		now:       time.Now,
	}
}

// Sweep выполняет один проход по всем напоминаниям: отправляет наступившие
// и удаляет их из базы. Напоминание удаляется и при недоступности получателя —
// повторных попыток не делается. Ошибки хранилища или транспорта оставляют
// напоминание до следующего прохода.
func (s *Scheduler) Sweep() {
	reminders, err := s.store.GetAllReminders()
	if err != nil {
		s.log.Error().Err(err).Msg("не удалось загрузить напоминания")
		return
	}

	currentTime := s.now()

	for _, reminder := range reminders {
		if !isDateCame(currentTime, reminder.NotifyTime) {
			continue
		}

		result, err := s.transport.SendReminder(reminder.OwnerID, reminder.Text)
		if err != nil {
			// Неожиданная ошибка транспорта: оставляем напоминание
			// до следующего прохода
			s.log.Error().Err(err).
				Int64("reminder_id", reminder.ID).
				Int64("owner_id", reminder.OwnerID).
				Msg("ошибка при отправке напоминания")
			continue
		}

		if result == Unreachable {
			s.log.Debug().
				Int64("reminder_id", reminder.ID).
				Int64("owner_id", reminder.OwnerID).
				Msg("получатель недоступен, напоминание будет удалено")
		}

		if err := s.store.DeleteReminder(reminder.ID); err != nil {
			s.log.Error().Err(err).
				Int64("reminder_id", reminder.ID).
				Msg("не удалось удалить отправленное напоминание")
			continue
		}

		time.Sleep(s.pause)
	}
}

// isDateCame сообщает, наступило ли время напоминания: текущее время
// совпадает с ним с точностью до минуты либо уже прошло его.
// Совпадение по минуте считается наступлением, даже если секунды
// напоминания еще впереди — сравнение "прошло" при этом остается точным.
func isDateCame(currentTime, notifyTime time.Time) bool {
	if currentTime.Year() == notifyTime.Year() &&
		currentTime.Month() == notifyTime.Month() &&
		currentTime.Day() == notifyTime.Day() &&
		currentTime.Hour() == notifyTime.Hour() &&
		currentTime.Minute() == notifyTime.Minute() {
		return true
	}
	return currentTime.After(notifyTime)
}
