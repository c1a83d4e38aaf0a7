package main

import (
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/yourusername/napominalka-bot/bot"
	"github.com/yourusername/napominalka-bot/config"
	"github.com/yourusername/napominalka-bot/db"
	"github.com/yourusername/napominalka-bot/scheduler"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.LoadConfig()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("ошибка конфигурации")
	}

	// Настраиваем логирование
	log := newLogger(cfg.LogLevel)
	log.Info().Msg("запуск napominalka-bot...")

	// Инициализируем базу данных
	database, err := db.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка при инициализации базы данных")
	}
	defer database.Close()

	// Создаем схему базы данных
	if err := database.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("ошибка при создании схемы базы данных")
	}

	// Создаем экземпляр бота
	telegramBot, err := bot.NewBot(cfg, database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка при создании бота")
	}

	// Настраиваем периодическую проверку напоминаний
	sweeper := scheduler.New(database, telegramBot, log, cfg.SweepPause)

	cronRunner := cron.New()
	_, err = cronRunner.AddFunc(cfg.SweepSchedule, sweeper.Sweep)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.SweepSchedule).Msg("ошибка при настройке планировщика")
	}

	cronRunner.Start()
	defer cronRunner.Stop()

	// Запускаем бота
	log.Info().Msg("бот успешно запущен")
	telegramBot.Start()
}

// newLogger создает консольный логгер с указанным уровнем
func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}
