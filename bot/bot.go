package bot

import (
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/yourusername/napominalka-bot/config"
	"github.com/yourusername/napominalka-bot/models"
)

// Storage — доступ бота к хранилищу пользователей и напоминаний
type Storage interface {
	UpsertUser(user *models.User) error
	AddReminder(reminder *models.Reminder) (int64, error)
	DeleteReminder(reminderID int64) error
	CountRemindersByOwner(ownerID int64) (int, error)
	GetRemindersByOwner(ownerID int64) ([]*models.Reminder, error)
}

// Sender — используемая ботом часть клиента Telegram API
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot представляет Telegram бота
type Bot struct {
	api     *tgbotapi.BotAPI
	sender  Sender
	storage Storage
	log     zerolog.Logger

	remindersLimit int

	// Состояния диалогов пользователей. Запись создается при начале
	// диалога и удаляется при его завершении или отмене.
	statesMutex sync.RWMutex
	userStates  map[int64]*models.UserState

	// Ограничители частоты, отдельный на каждую пару пользователь-действие
	limitersMutex  sync.Mutex
	limiters       map[limiterKey]*rate.Limiter
	throttleBurst  int
	throttleWindow time.Duration

	// Паузы перед возвратом в меню и между элементами списка
	menuPause time.Duration
	listPause time.Duration

	// now подменяется в тестах
	now func() time.Time
}

// NewBot создает нового бота
func NewBot(cfg *config.Config, storage Storage, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании бота: %w", err)
	}

	return &Bot{
		api:            api,
		sender:         api,
		storage:        storage,
		log:            log,
		remindersLimit: cfg.RemindersLimit,
		userStates:     make(map[int64]*models.UserState),
		limiters:       make(map[limiterKey]*rate.Limiter),
		throttleBurst:  cfg.ThrottleBurst,
		throttleWindow: cfg.ThrottleWindow,
		menuPause:      time.Second,
		listPause:      300 * time.Millisecond,
		now:            time.Now,
	}, nil
}

// Start запускает цикл обработки обновлений. Обновления обрабатываются
// последовательно: шаг диалога завершается целиком до следующего ввода.
func (b *Bot) Start() {
	b.log.Info().Str("username", b.api.Self.UserName).Msg("бот авторизован")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			b.handleMessage(update.Message)
		} else if update.CallbackQuery != nil {
			b.handleCallbackQuery(update.CallbackQuery)
		}
	}
}

// getUserState возвращает состояние диалога пользователя, если диалог начат
func (b *Bot) getUserState(userID int64) (*models.UserState, bool) {
	b.statesMutex.RLock()
	defer b.statesMutex.RUnlock()

	state, exists := b.userStates[userID]
	return state, exists
}

// startDialogue создает состояние диалога с пустым черновиком
func (b *Bot) startDialogue(userID int64) {
	b.statesMutex.Lock()
	defer b.statesMutex.Unlock()

	b.userStates[userID] = &models.UserState{
		State: models.StateAwaitText,
		Draft: &models.DraftReminder{},
	}
}

// setUserState переводит начатый диалог в следующее состояние
func (b *Bot) setUserState(userID int64, state string) {
	b.statesMutex.Lock()
	defer b.statesMutex.Unlock()

	if userState, exists := b.userStates[userID]; exists {
		userState.State = state
	}
}

// clearUserState завершает диалог и удаляет черновик
func (b *Bot) clearUserState(userID int64) {
	b.statesMutex.Lock()
	defer b.statesMutex.Unlock()

	delete(b.userStates, userID)
}

// Ограничиваемые действия
const (
	actionAddReminder = "add_reminder"
	actionSubmitText  = "submit_text"
)

type limiterKey struct {
	userID int64
	action string
}

// allowAction проверяет ограничитель частоты для действия пользователя.
// Действия ограничиваются независимо друг от друга; лишние срабатывания
// молча отбрасываются вызывающей стороной.
func (b *Bot) allowAction(userID int64, action string) bool {
	b.limitersMutex.Lock()
	defer b.limitersMutex.Unlock()

	key := limiterKey{userID: userID, action: action}
	limiter, exists := b.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(b.throttleWindow), b.throttleBurst)
		b.limiters[key] = limiter
	}

	return limiter.Allow()
}
