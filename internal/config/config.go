package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	SessionSecret string

	GinMode string
	Port    string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	AdminEmail   string

	// WarningSweepSpec is the cron spec for the overdue warning sweep.
	WarningSweepSpec string

	OpenAIAPIKey string
}

func Load() *Config {
	// Missing .env is fine; env vars may come from the environment.
	_ = godotenv.Load()

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "reliefnet"),
		DBPassword: getEnv("DB_PASSWORD", "reliefnet"),
		DBName:     getEnv("DB_NAME", "reliefnet"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),

		GinMode: getEnv("GIN_MODE", "debug"),
		Port:    getEnv("PORT", "8080"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@reliefnet.local"),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),

		WarningSweepSpec: getEnv("WARNING_SWEEP_SPEC", "@every 5m"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
