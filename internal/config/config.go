// Package config loads process settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     string
	LogLevel string

	MetricsEnabled bool
	MetricsToken   string

	// DatabaseURL selects the Postgres order journal. Empty keeps orders in memory.
	DatabaseURL string

	CartWriteLimit  int
	CartWriteWindow time.Duration
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		Port:            getenv("PORT", "8000"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		MetricsEnabled:  boolenv("METRICS_ENABLED", true),
		MetricsToken:    os.Getenv("METRICS_TOKEN"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		CartWriteLimit:  atoienv("CART_WRITE_LIMIT", 120),
		CartWriteWindow: durenvs("CART_WRITE_WINDOW_SECONDS", 60),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT_SECONDS", 10),
	}
}

func (c Config) Addr() string { return ":" + c.Port }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoienv(k string, def int) int {
	n, err := strconv.Atoi(getenv(k, ""))
	if err != nil {
		return def
	}
	return n
}

func boolenv(k string, def bool) bool {
	b, err := strconv.ParseBool(getenv(k, ""))
	if err != nil {
		return def
	}
	return b
}

func durenvs(k string, defSec int) time.Duration {
	return time.Duration(atoienv(k, defSec)) * time.Second
}
