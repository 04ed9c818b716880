package db

import (
	"os"
	"strconv"
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether a database was configured at all.
func (c PostgresConfig) Enabled() bool {
	return c.Host != ""
}

func LoadPostgresConfig() (PostgresConfig, error) {
	port := 5432
	if raw := os.Getenv("DB_PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return PostgresConfig{}, err
		}
		port = p
	}
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	return PostgresConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     port,
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  sslMode,
	}, nil
}
