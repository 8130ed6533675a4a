// Package config reads the process configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr      = ":8080"
	DefaultMaxTodos  = 100
	DefaultSeedURL   = "https://jsonplaceholder.typicode.com"
	DefaultSeedLimit = 8
)

type Config struct {
	Addr     string
	LogLevel string

	// Store
	MaxTodos       int
	EnablePriority bool
	SeedFile       string // initial tasks; non-empty file suppresses the remote load

	// Remote seed source
	SeedURL   string
	SeedLimit int

	// Middleware knobs
	RateRPS   float64
	RateBurst int

	// Tracing exporter: "", "stdout" or "otlp"
	TraceExporter string
}

// Load builds the config from the environment. A missing .env file is
// fine; set variables always win over file values.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:           envStr("ADDR", DefaultAddr),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		MaxTodos:       envInt("MAX_TODOS", DefaultMaxTodos),
		EnablePriority: envBool("ENABLE_PRIORITY", true),
		SeedFile:       envStr("SEED_FILE", ""),
		SeedURL:        envStr("SEED_URL", DefaultSeedURL),
		SeedLimit:      envInt("SEED_LIMIT", DefaultSeedLimit),
		RateRPS:        envFloat("RATE_RPS", 0), // 0 disables rate limiting
		RateBurst:      envInt("RATE_BURST", 10),
		TraceExporter:  strings.ToLower(envStr("TRACE_EXPORTER", "")),
	}
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil && v > 0 {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64); err == nil && v > 0 {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
