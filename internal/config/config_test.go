package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	// Blank values read as unset
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SNAPSHOT_SCHEDULE", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg := Load()

	if cfg.HTTPAddr != ":5000" {
		t.Errorf("Expected default address :5000, got %s", cfg.HTTPAddr)
	}
	if cfg.SnapshotSchedule != "0 * * * *" {
		t.Errorf("Expected hourly snapshot schedule, got %s", cfg.SnapshotSchedule)
	}
	if cfg.TelegramChatID != 0 {
		t.Errorf("Expected open chat ID by default, got %d", cfg.TelegramChatID)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("TELEGRAM_CHAT_ID", "123456789")

	cfg := Load()
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected address :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.TelegramChatID != 123456789 {
		t.Errorf("Expected chat ID 123456789, got %d", cfg.TelegramChatID)
	}
}

func TestLoadBadChatIDFallsBack(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	if cfg := Load(); cfg.TelegramChatID != 0 {
		t.Errorf("Expected unparseable chat ID to fall back to 0, got %d", cfg.TelegramChatID)
	}
}
