package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config содержит настройки приложения
type Config struct {
	BotToken     string `env:"BOT_TOKEN" env-required:"true"`
	DatabasePath string `env:"DATABASE_PATH" env-default:"./data/reminder.db"`
	LogLevel     string `env:"LOG_LEVEL" env-default:"info"`

	// Ограничение на количество активных напоминаний у одного пользователя
	RemindersLimit int `env:"REMINDERS_LIMIT" env-default:"10"`

	// Расписание проверки напоминаний в формате cron
	SweepSchedule string `env:"SWEEP_SCHEDULE" env-default:"* * * * *"`
	// Пауза между отправками внутри одной проверки
	SweepPause time.Duration `env:"SWEEP_PAUSE" env-default:"100ms"`

	// Защита от случайных двойных нажатий
	ThrottleBurst  int           `env:"THROTTLE_BURST" env-default:"2"`
	ThrottleWindow time.Duration `env:"THROTTLE_WINDOW" env-default:"3s"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфигурацию: %w", err)
	}
	return &cfg, nil
}
