// Package config loads runtime configuration from the environment
package config

import (
	"os"
	"strconv"
)

// Config holds every runtime setting. Values come from environment
// variables (a .env file is loaded by the entrypoints).
type Config struct {
	// HTTP
	HTTPAddr string

	// Document store
	DataFile string

	// Readings archive
	ArchiveDBPath string
	// Cron spec for the collector snapshot job
	SnapshotSchedule string

	// Telegram. A zero chat ID means the bot answers every chat.
	TelegramBotToken string
	TelegramChatID   int64

	// Rainfall outlook bulletin; empty keeps the default source
	RainfallURL string
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":5000"),
		DataFile:         getEnv("DATA_FILE", ""),
		ArchiveDBPath:    getEnv("ARCHIVE_DB_PATH", ""),
		SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "0 * * * *"),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvInt64("TELEGRAM_CHAT_ID", 0),
		RainfallURL:      getEnv("RAINFALL_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
