// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/wanderplan/internal/itinerary"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to info.
	// Valid values: debug, info, warn, error.
	LogLevel slog.Level

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// GeminiAPIKey enables plan generation and travel estimates. Optional:
	// without it generation yields no items and estimates are "Unknown".
	GeminiAPIKey string

	// GeminiModel is the model used for generation. Defaults to "gemini-2.5-flash".
	GeminiModel string

	// GenerationTimeout bounds each call to the external generator or
	// estimator. Defaults to 60s.
	GenerationTimeout time.Duration

	// ReorderPolicy selects what moving an item does: "slots" (default) swaps
	// positions and time slots, "position" swaps positions only.
	ReorderPolicy itinerary.ReorderPolicy
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every variable that could not be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	var invalid []string

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		invalid = append(invalid, "LOG_LEVEL")
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}
	cfg.MaxBodyBytes = maxBody

	timeout, err := time.ParseDuration(getEnv("GENERATION_TIMEOUT", "60s"))
	if err != nil || timeout <= 0 {
		invalid = append(invalid, "GENERATION_TIMEOUT")
	}
	cfg.GenerationTimeout = timeout

	if cfg.ReorderPolicy, err = itinerary.ParseReorderPolicy(os.Getenv("REORDER_POLICY")); err != nil {
		invalid = append(invalid, "REORDER_POLICY")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
