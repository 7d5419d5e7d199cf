package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                     string
	DatabaseDSN                string
	RateLimit                  int
	RedisAddr                  string
	ReconcileLockKey           string
	ShutdownTimeoutSeconds     int
	MaintenanceIntervalMinutes int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	cfg := Config{
		AppURL:                     fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:                getEnv("DATABASE_DSN", "daily_tasks.db"),
		RateLimit:                  getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		RedisAddr:                  getEnv("REDIS_ADDR", ""),
		ReconcileLockKey:           getEnv("RECONCILE_LOCK_KEY", "daily_task_reconcile_lock"),
		ShutdownTimeoutSeconds:     getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		MaintenanceIntervalMinutes: getEnvAsInt("MAINTENANCE_INTERVAL_MINUTES", 0),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.RedisAddr != "" && cfg.ReconcileLockKey == "" {
		log.Fatal("RECONCILE_LOCK_KEY must not be empty when REDIS_ADDR is set")
	}
	if cfg.MaintenanceIntervalMinutes < 0 {
		log.Fatal("MAINTENANCE_INTERVAL_MINUTES must not be negative")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
