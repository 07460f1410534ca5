package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Board     BoardConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	// Path is the sqlite database file backing the board.
	Path string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RateLimitConfig controls the optional global request limiter; the per-write
// cooldowns live in BoardConfig.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type BoardConfig struct {
	PasswordPepper  string
	IPPepper        string
	PostCooldown    time.Duration
	CommentCooldown time.Duration
	DebugErrors     bool
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8790")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("BOARD_DB_PATH", "./board.db")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("POST_COOLDOWN_SECONDS", 10)
	viper.SetDefault("COMMENT_COOLDOWN_SECONDS", 6)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path: viper.GetString("BOARD_DB_PATH"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled: viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   viper.GetInt("RATE_LIMIT_BURST"),
		},
		Board: BoardConfig{
			PasswordPepper:  os.Getenv("PASSWORD_PEPPER"),
			IPPepper:        os.Getenv("IP_PEPPER"),
			PostCooldown:    time.Duration(viper.GetInt("POST_COOLDOWN_SECONDS")) * time.Second,
			CommentCooldown: time.Duration(viper.GetInt("COMMENT_COOLDOWN_SECONDS")) * time.Second,
			DebugErrors:     viper.GetBool("BOARD_DEBUG_ERRORS"),
		},
	}

	// Basic validation
	if cfg.Board.PasswordPepper == "" {
		log.Println("WARNING: PASSWORD_PEPPER is not set; set a secure value in production")
	}

	return cfg, nil
}
