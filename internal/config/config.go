package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port           string
	DatabaseURL    string
	RequestTimeout time.Duration
	// Rate provider
	Provider        string
	ExchangeAPIBase string
	// Redis (account lock)
	LockBackend   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LockTTL       time.Duration
	LockRetry     time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:             getEnv("ENV", "local"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RequestTimeout:  time.Duration(atoiDef(getEnv("REQUEST_TIMEOUT_MS", "3000"), 3000)) * time.Millisecond,
		Provider:        getEnv("PROVIDER", "fake"),
		ExchangeAPIBase: getEnv("EXCHANGE_API_BASE", "https://quotation-api-cdn.dunamu.com/v1/forex/recent"),
		LockBackend:     getEnv("LOCK_BACKEND", "local"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         atoiDef(getEnv("REDIS_DB", "0"), 0),
		LockTTL:         time.Duration(atoiDef(getEnv("LOCK_TTL_MS", "30000"), 30000)) * time.Millisecond,
		LockRetry:       time.Duration(atoiDef(getEnv("LOCK_RETRY_MS", "25"), 25)) * time.Millisecond,
	}
}
