package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	Environment    string
	HTTPAddr       string
	TelegramToken  string
	MigrationsPath string

	// Внешний адрес портала — из него собирается URL в QR-коде
	PublicBaseURL string

	// Сколько живёт QR-токен по умолчанию, если вызывающий код
	// не передал свой TTL
	QRTokenTTL time.Duration

	// Окно рассылки напоминаний о занятиях
	ReminderWindow time.Duration

	// На сколько дней вперёд генерирует занятия фоновая задача
	GenerateDaysAhead int
}

// Load читает конфигурацию из .env файла и переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:             os.Getenv("DB_DSN"),
		Environment:       getEnv("ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		TelegramToken:     os.Getenv("TELEGRAM_TOKEN"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "migrations"),
		PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		QRTokenTTL:        time.Duration(getEnvInt("QR_TOKEN_TTL_SECONDS", 60)) * time.Second,
		ReminderWindow:    time.Duration(getEnvInt("REMINDER_WINDOW_MINUTES", 120)) * time.Minute,
		GenerateDaysAhead: getEnvInt("GENERATE_DAYS_AHEAD", 7),
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}

	return n
}
