package config

import (
	"log/slog"
	"os"
	"strconv"
)

const (
	EnvDevelopment = "DEV"
	EnvProduction  = "PROD"
)

type AppConfig struct {
	PostgresURL          string
	RedisURL             string
	ListenAddr           string
	ProxyURL             string
	RedditBaseURL        string
	UserAgent            string
	DefaultPostLimit     int
	CommentScanLimit     int
	ScanConcurrency      int
	ResultTTLMinutes     int
	HistoryRetentionDays int
	AppEnv               string // EnvDevelopment or EnvProduction
	LogLevel             slog.Level
}

var Config AppConfig

func LoadConfig() {
	cfg := AppConfig{}

	cfg.AppEnv = os.Getenv("APP_ENV")
	cfg.PostgresURL = loadRequired("POSTGRES_URL")
	cfg.RedisURL = loadRequired("REDIS_URL")
	cfg.ListenAddr = loadOptional("LISTEN_ADDR", ":8080")
	cfg.ProxyURL = loadOptional("PROXY_URL", "")
	cfg.RedditBaseURL = loadOptional("REDDIT_BASE_URL", "https://www.reddit.com")
	cfg.UserAgent = loadOptional("REDDIT_USER_AGENT", "redscan/1.0")
	cfg.DefaultPostLimit = loadOptionalInt("DEFAULT_POST_LIMIT", 50)
	cfg.CommentScanLimit = loadOptionalInt("COMMENT_SCAN_LIMIT", 20)
	cfg.ScanConcurrency = loadOptionalInt("SCAN_CONCURRENCY", 4)
	cfg.ResultTTLMinutes = loadOptionalInt("RESULT_TTL_MINUTES", 60)
	cfg.HistoryRetentionDays = loadOptionalInt("HISTORY_RETENTION_DAYS", 30)

	lvlString := loadOptional("LOG_LEVEL", "INFO")
	var err error
	cfg.LogLevel, err = parseLogLevel(lvlString)
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	Config = cfg
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func loadRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Required env var not set", "key", key)
		os.Exit(1)
	}
	return value
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func loadOptionalInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Error("Invalid int env var, using default", "key", key, "value", value)
		return defaultValue
	}
	return n
}

func (c AppConfig) IsProduction() bool {
	return Config.AppEnv == EnvProduction
}
