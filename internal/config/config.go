// Package config loads host configuration from the environment, with an
// optional .env file for development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the host binary needs to run.
type Config struct {
	// RedisAddr is the store address; empty disables online play.
	RedisAddr     string
	RedisPassword string
	// DatabaseURL enables result persistence when set.
	DatabaseURL string
	// ThinkDelay paces computer opponents.
	ThinkDelay time.Duration
	// LogLevel is a logrus level name.
	LogLevel string
}

// Load reads .env if present, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env")
	}

	cfg := Config{
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ThinkDelay:    800 * time.Millisecond,
		LogLevel:      envOr("LOG_LEVEL", "info"),
	}
	if ms, err := strconv.Atoi(os.Getenv("AI_THINK_DELAY_MS")); err == nil && ms >= 0 {
		cfg.ThinkDelay = time.Duration(ms) * time.Millisecond
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
