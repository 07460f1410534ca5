package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("BOARD_DB_PATH", "/tmp/board-test.db")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("PASSWORD_PEPPER", "testpepper")
	os.Setenv("IP_PEPPER", "testippepper")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/board-test.db" {
		t.Fatalf("unexpected database path: %q", cfg.Database.Path)
	}
	if cfg.Redis.Host == "" || cfg.Board.PasswordPepper == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.Board.PostCooldown != 10*time.Second || cfg.Board.CommentCooldown != 6*time.Second {
		t.Fatalf("unexpected cooldown defaults: %+v", cfg.Board)
	}
	if cfg.Server.Port == "" {
		t.Fatalf("server port default missing")
	}
}
