package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yourusername/napominalka-bot/models"
)

// Формат хранения времени отправки в колонке notify_time
const timeLayout = time.RFC3339

// DB представляет экземпляр базы данных
type DB struct {
	*sql.DB
}

// NewDB инициализирует соединение с базой данных
func NewDB(dbPath string) (*DB, error) {
	// Создаем директорию для БД, если она не существует
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию для БД: %w", err)
	}

	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу данных: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	return &DB{database}, nil
}

// InitSchema инициализирует схему базы данных
func (db *DB) InitSchema() error {
	// Создаем таблицу пользователей
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		username TEXT,
		first_name TEXT,
		last_name TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("не удалось создать таблицу users: %w", err)
	}

	// Создаем таблицу напоминаний
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS reminders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		owner_id INTEGER NOT NULL,
		notify_time TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("не удалось создать таблицу reminders: %w", err)
	}

	return nil
}

// UpsertUser сохраняет пользователя, обновляя данные, если он уже есть
func (db *DB) UpsertUser(user *models.User) error {
	_, err := db.Exec(`
	INSERT INTO users (id, username, first_name, last_name) VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET username = excluded.username,
		first_name = excluded.first_name, last_name = excluded.last_name`,
		user.ID, user.Username, user.FirstName, user.LastName,
	)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении пользователя: %w", err)
	}
	return nil
}

// AddReminder создает новое напоминание и возвращает его ID
func (db *DB) AddReminder(reminder *models.Reminder) (int64, error) {
	result, err := db.Exec(
		"INSERT INTO reminders (owner_id, notify_time, text) VALUES (?, ?, ?)",
		reminder.OwnerID, reminder.NotifyTime.Format(timeLayout), reminder.Text,
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании напоминания: %w", err)
	}

	reminderID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID нового напоминания: %w", err)
	}

	return reminderID, nil
}

// DeleteReminder удаляет напоминание
func (db *DB) DeleteReminder(reminderID int64) error {
	_, err := db.Exec("DELETE FROM reminders WHERE id = ?", reminderID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении напоминания: %w", err)
	}
	return nil
}

// CountRemindersByOwner возвращает количество активных напоминаний пользователя
func (db *DB) CountRemindersByOwner(ownerID int64) (int, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM reminders WHERE owner_id = ?", ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете напоминаний: %w", err)
	}
	return count, nil
}

// GetRemindersByOwner получает все напоминания пользователя
func (db *DB) GetRemindersByOwner(ownerID int64) ([]*models.Reminder, error) {
	rows, err := db.Query(
		"SELECT id, owner_id, notify_time, text, created_at FROM reminders WHERE owner_id = ? ORDER BY notify_time",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении напоминаний пользователя: %w", err)
	}
	defer rows.Close()

	return scanReminders(rows)
}

// GetAllReminders получает все напоминания для проверки планировщиком
func (db *DB) GetAllReminders() ([]*models.Reminder, error) {
	rows, err := db.Query(
		"SELECT id, owner_id, notify_time, text, created_at FROM reminders ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка напоминаний: %w", err)
	}
	defer rows.Close()

	return scanReminders(rows)
}

func scanReminders(rows *sql.Rows) ([]*models.Reminder, error) {
	reminders := []*models.Reminder{}
	for rows.Next() {
		reminder := &models.Reminder{}
		var notifyTime string

		err := rows.Scan(
			&reminder.ID, &reminder.OwnerID, &notifyTime, &reminder.Text, &reminder.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании данных напоминания: %w", err)
		}

		reminder.NotifyTime, err = time.Parse(timeLayout, notifyTime)
		if err != nil {
			return nil, fmt.Errorf("ошибка при разборе времени напоминания: %w", err)
		}

		reminders = append(reminders, reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по напоминаниям: %w", err)
	}

	return reminders, nil
}
