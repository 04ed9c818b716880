package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Cheertaboi/maxreward-console/internal/backend"
	"github.com/Cheertaboi/maxreward-console/pkg/db"
)

type Config struct {
	HTTPAddr       string
	LogLevel       logrus.Level
	Backend        backend.Config
	CacheTTL       time.Duration
	RedisURL       string
	RateLimitRPS   float64
	RateLimitBurst int
	Postgres       db.PostgresConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	timeout, err := getDuration("BACKEND_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	ttl, err := getDuration("CACHE_TTL", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	backendRPS, err := getFloat("BACKEND_RPS", 20)
	if err != nil {
		return Config{}, err
	}
	rps, err := getFloat("RATE_LIMIT_RPS", 10)
	if err != nil {
		return Config{}, err
	}
	burst, err := getInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return Config{}, err
	}
	pg, err := db.LoadPostgresConfig()
	if err != nil {
		return Config{}, fmt.Errorf("DB_PORT: %w", err)
	}

	cfg := Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		LogLevel: level,
		Backend: backend.Config{
			BaseURL: os.Getenv("BACKEND_BASE_URL"),
			Token:   os.Getenv("BACKEND_TOKEN"),
			Timeout: timeout,
			RPS:     backendRPS,
			Burst:   int(backendRPS) + 1,
		},
		CacheTTL:       ttl,
		RedisURL:       os.Getenv("REDIS_URL"),
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
		Postgres:       pg,
	}
	if cfg.Backend.BaseURL == "" {
		return Config{}, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
