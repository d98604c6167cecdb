package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the service reads from the environment. The JWT
// signing secret is injected here and never appears as a literal anywhere
// in the codebase.
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	HTTPAddr      string
	WorkerCount   int
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:    ":8080",
		WorkerCount: 1,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR not set")
	}

	redisDB := os.Getenv("REDIS_DB")
	if redisDB == "" {
		return nil, fmt.Errorf("REDIS_DB not set")
	}
	idx, err := strconv.Atoi(redisDB)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
	}
	cfg.RedisDB = idx

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}

	if v := os.Getenv("WORKER_COUNT"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil || c <= 0 {
			return nil, fmt.Errorf("invalid WORKER_COUNT: %q", v)
		}
		cfg.WorkerCount = c
	}

	return cfg, nil
}
